// Package render rasterizes planned segments onto an RGBA canvas.
//
// The renderer is a thin walk over the layout engine: it advances a
// linear cursor through each segment's padding and sequence, asks the
// coordinate mapper for the pixel each character occupies, and writes
// the palette color there. Titles are drawn in a second pass into each
// segment's reserved title region.
package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/genotile/genotile/pkg/layout"
	"github.com/genotile/genotile/pkg/palette"
)

// Contig pairs a planned segment with its sequence bytes.
type Contig struct {
	Segment layout.Segment
	Seq     []byte
}

// Stats summarizes one draw pass.
type Stats struct {
	// Drawn counts sequence pixels written to the canvas.
	Drawn int64
	// Skipped counts pixels the mapper placed outside the canvas. A
	// non-zero count means the mapper and the canvas sizer disagreed;
	// the offending pixels are dropped so a long render still produces
	// partial output.
	Skipped int64
}

// NewCanvas allocates a white RGBA canvas of the given dimensions.
func NewCanvas(width, height int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// Draw rasterizes every contig onto img. Planning has already fixed each
// segment's linear placement, so contigs render in parallel: each worker
// owns a disjoint offset range and therefore a disjoint pixel region.
// workers <= 0 means one goroutine per contig.
func Draw(ctx context.Context, img *image.RGBA, m layout.Mapper, pal *palette.Palette, contigs []Contig, workers int) (Stats, error) {
	// Starting cursor per contig, from the sequential plan.
	starts := make([]int64, len(contigs))
	var cursor int64
	for i, c := range contigs {
		starts[i] = cursor
		cursor += c.Segment.Extent()
	}

	var drawn, skipped atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range contigs {
		i := i
		g.Go(func() error {
			c := contigs[i]
			d, s := drawContig(ctx, img, m, pal, c, starts[i])
			drawn.Add(d)
			skipped.Add(s)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return Stats{Drawn: drawn.Load(), Skipped: skipped.Load()}, nil
}

// drawContig writes one pixel per sequence character, starting after the
// contig's reset and title padding.
func drawContig(ctx context.Context, img *image.RGBA, m layout.Mapper, pal *palette.Palette, c Contig, start int64) (drawn, skipped int64) {
	bounds := img.Bounds()
	offset := start + c.Segment.Reset + c.Segment.Title

	for i, ch := range c.Seq {
		// Cancellation check amortized over a full line of pixels.
		if i%4096 == 0 {
			select {
			case <-ctx.Done():
				return drawn, skipped
			default:
			}
		}
		p := m.Map(offset + int64(i))
		x, y := int(p.X), int(p.Y)
		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			skipped++
			continue
		}
		img.SetRGBA(x, y, pal.Color(ch))
		drawn++
	}
	return drawn, skipped
}
