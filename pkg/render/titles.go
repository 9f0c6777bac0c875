package render

import (
	"image"
	"image/color"
	"image/draw"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/genotile/genotile/pkg/errors"
	"github.com/genotile/genotile/pkg/layout"
)

// Title font sizes. Line labels are small; column labels are rotated and
// mid-sized; full row labels for whole chromosomes are enormous because
// the image is, too.
const (
	fontSizeLine   = 10
	fontSizeColumn = 38
	fontSizeRow    = 380
)

// TitleBox is the placement of one contig label: the raster region
// reserved by the contig's title padding, plus how to typeset into it.
type TitleBox struct {
	UpperLeft image.Point
	Width     int
	Height    int
	// Rotated marks column-sized titles, drawn vertically: exactly when
	// the title padding equals the column tier's chunk size.
	Rotated  bool
	FontSize float64
}

// TitleBoxFor computes a contig's label box from its planned segment and
// the linear cursor at the segment's start. The box spans from the first
// title position to two short of the title's end, mapped through the big
// variant so placement is identical for small and large images.
func TitleBoxFor(h layout.Hierarchy, cursor int64, seg layout.Segment) TitleBox {
	m := h.BigMapper()
	start := cursor + seg.Reset
	ul := m.Map(start)
	br := m.Map(start + seg.Title - 2)

	box := TitleBox{
		UpperLeft: image.Point{X: int(ul.X), Y: int(ul.Y)},
		Width:     int(br.X - ul.X),
		Height:    int(br.Y - ul.Y),
		FontSize:  fontSizeLine,
	}
	// These thresholds are exact checks against specific tiers: a title
	// the size of one column chunk is rotated, and a title at or above
	// one row chunk gets the chromosome-scale font.
	if seg.Title == h[2].ChunkSize {
		box.Width, box.Height = box.Height, box.Width
		box.Rotated = true
		box.FontSize = fontSizeColumn
	}
	if seg.Title >= h[3].ChunkSize {
		box.FontSize = fontSizeRow
	}
	return box
}

// DrawTitles renders every contig's label into its reserved title
// region. It walks the same cursor the pixel pass used, so labels land
// exactly where the planner reserved space for them.
func DrawTitles(img *image.RGBA, h layout.Hierarchy, contigs []Contig) error {
	var cursor int64
	for _, c := range contigs {
		box := TitleBoxFor(h, cursor, c.Segment)
		if err := drawTitle(img, box, c.Segment.Name); err != nil {
			return err
		}
		cursor += c.Segment.Extent()
	}
	return nil
}

// drawTitle typesets one label into its box and pastes it onto the
// canvas. Later title writes may overwrite padding pixels inside their
// own reserved region, never outside it.
func drawTitle(img *image.RGBA, box TitleBox, name string) error {
	if box.Width <= 0 || box.Height <= 0 {
		return nil
	}
	lines := titleLines(name, box)

	face, err := titleFace(box.FontSize)
	if err != nil {
		return err
	}
	defer face.Close()

	txt := image.NewRGBA(image.Rect(0, 0, box.Width, box.Height))
	metrics := face.Metrics()
	y := metrics.Ascent.Ceil()
	for _, line := range lines {
		d := &font.Drawer{
			Dst:  txt,
			Src:  image.NewUniform(color.Black),
			Face: face,
			Dot:  fixed.P(0, y),
		}
		d.DrawString(line)
		y += metrics.Height.Ceil()
	}

	at := box.UpperLeft
	if box.Rotated {
		txt = rotate90(txt)
		at.X += 15 // nudge off the column edge
	}
	target := image.Rect(at.X, at.Y, at.X+txt.Rect.Dx(), at.Y+txt.Rect.Dy())
	draw.Draw(img, target.Intersect(img.Bounds()), txt, image.Point{}, draw.Over)
	return nil
}

// titleLines wraps a prettified contig name to the character budget of
// the box's font size.
func titleLines(name string, box TitleBox) []string {
	pretty := PrettyName(name)
	switch {
	case box.FontSize >= fontSizeRow:
		return firstN(wrapText(pretty, 250), 2)
	case box.Rotated:
		return firstN(wrapText(pretty, 50), 2)
	default:
		// Cram every last bit into the line labels; there is not much
		// room at this size.
		wrapped := append(wrapText(pretty, 18), "", "")
		second := wrapped[1] + " " + wrapped[2]
		if len(second) > 18 {
			second = second[:18]
		}
		return []string{wrapped[0], strings.TrimRight(second, " ")}
	}
}

var colonSpacing = regexp.MustCompile(`([^:]*\S):(\S[^:]*)`)

// PrettyName cleans a contig header for display. Assembly headers tend
// to be underscore-and-pipe soup; wrapping needs whitespace to break on.
func PrettyName(name string) string {
	pretty := strings.NewReplacer("_", " ", "|", " ").Replace(name)
	pretty = strings.ReplaceAll(pretty, "chromosome chromosome", "chromosome")
	pretty = colonSpacing.ReplaceAllString(pretty, "$1: $2")
	pretty = colonSpacing.ReplaceAllString(pretty, "$1: $2")
	return pretty
}

// wrapText greedily wraps s on whitespace to at most width characters
// per line. A word longer than the width gets a line of its own.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) <= width {
			current += " " + w
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

// firstN returns at most n leading elements of lines.
func firstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// rotate90 rotates an image a quarter turn counter-clockwise, expanding
// the bounds, so column titles read bottom-to-top along their column.
func rotate90(src *image.RGBA) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(y, w-1-x, src.RGBAAt(src.Rect.Min.X+x, src.Rect.Min.Y+y))
		}
	}
	return dst
}

var (
	titleFontOnce sync.Once
	titleFont     *opentype.Font
	titleFontErr  error
)

// titleFace opens the embedded label font at the given size.
func titleFace(size float64) (font.Face, error) {
	titleFontOnce.Do(func() {
		titleFont, titleFontErr = opentype.Parse(goregular.TTF)
	})
	if titleFontErr != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, titleFontErr, "failed to parse label font")
	}
	face, err := opentype.NewFace(titleFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to open label font at %gpt", size)
	}
	return face, nil
}
