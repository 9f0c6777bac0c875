// Package palette maps sequence characters to pixel colors.
//
// The default palette uses the classic nucleotide colors. Custom
// palettes load from TOML files with a [colors] table mapping a single
// character to an "#RRGGBB" hex string; lookups for characters absent
// from the table always resolve to the default color (black), never
// fail.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/genotile/genotile/pkg/errors"
)

// Default color for characters with no palette entry.
var defaultColor = color.RGBA{0, 0, 0, 255}

// Palette is a byte → color table. The zero value maps every character
// to black; use Default or Load for a populated palette.
type Palette struct {
	colors [256]color.RGBA
	set    [256]bool
}

// Default returns the standard nucleotide palette: A red, G green,
// T sand, C blue, N near-black. Upper and lower case map alike.
func Default() *Palette {
	p := &Palette{}
	p.assign('A', color.RGBA{255, 0, 0, 255})
	p.assign('G', color.RGBA{0, 255, 0, 255})
	p.assign('T', color.RGBA{250, 240, 114, 255})
	p.assign('C', color.RGBA{0, 0, 255, 255})
	p.assign('N', color.RGBA{30, 30, 30, 255})
	return p
}

// assign sets both cases of a nucleotide letter.
func (p *Palette) assign(b byte, c color.RGBA) {
	p.Set(b, c)
	p.Set(b|0x20, c) // lowercase
}

// Set maps one character to a color.
func (p *Palette) Set(b byte, c color.RGBA) {
	p.colors[b] = c
	p.set[b] = true
}

// Color returns the color for a sequence character. Unknown characters
// get black.
func (p *Palette) Color(b byte) color.RGBA {
	if !p.set[b] {
		return defaultColor
	}
	return p.colors[b]
}

// Has reports whether a character has an explicit palette entry.
func (p *Palette) Has(b byte) bool {
	return p.set[b]
}

// paletteFile is the TOML shape of a custom palette.
type paletteFile struct {
	Colors map[string]string `toml:"colors"`
}

// Load reads a palette from a TOML file. Entries override the default
// palette, so a partial file recolors only the characters it names.
//
//	[colors]
//	A = "#FF0000"
//	a = "#FF0000"
//	N = "#1E1E1E"
func Load(path string) (*Palette, error) {
	var file paletteFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "failed to load palette %s", path)
	}

	p := Default()
	for key, hex := range file.Colors {
		if len(key) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "palette key %q must be a single character", key)
		}
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette entry %q", key)
		}
		p.Set(key[0], c)
	}
	return p, nil
}

// parseHexColor parses "#RRGGBB" (leading '#' optional).
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must be 6 hex digits", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not valid hex: %w", s, err)
	}
	return color.RGBA{r, g, b, 255}, nil
}
