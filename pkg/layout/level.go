package layout

import (
	"github.com/genotile/genotile/pkg/errors"
)

// Axis identifies which screen axis a tier advances along.
type Axis int

// The two raster axes. Tiers alternate: even tier indexes advance X,
// odd tier indexes advance Y.
const (
	AxisX Axis = iota
	AxisY
)

// Level describes one tier of the nesting hierarchy.
//
// A Level is immutable once the Hierarchy is built. Modulo is the number
// of sibling units that repeat before the parent tier advances, ChunkSize
// is the number of linear sequence positions one unit of this tier spans,
// Padding is the pixel gap inserted between repeating units of this tier,
// and Thickness is the pixel extent one step of this tier advances along
// its axis.
type Level struct {
	Name      string
	Modulo    int64
	ChunkSize int64
	Padding   int64
	Thickness int64
}

// Capacity returns the linear extent covered by a full repeat of this
// tier: Modulo * ChunkSize.
func (l Level) Capacity() int64 {
	return l.Modulo * l.ChunkSize
}

// Spec names a derived tier and its sibling count. Everything else about
// a derived tier follows from the tiers beneath it.
type Spec struct {
	Name   string
	Modulo int64
}

// Hierarchy is an ordered chain of Levels from finest to coarsest.
type Hierarchy []Level

// basePaddingUnit scales the geometric padding growth for derived tiers:
// tier k >= 2 gets 6 * 3^(k-2) pixels of padding, so nested gaps stay
// visually distinguishable at every zoom level. An empirically chosen
// visual constant.
const basePaddingUnit = 6

// Build constructs a Hierarchy from explicitly sized base tiers plus a
// chain of derived tiers. Each derived tier's chunk size is the capacity
// of the tier beneath it, and its thickness is the full pixel extent of
// the last tier on the same axis plus this tier's padding. Build rejects
// hierarchies where any tier has a non-positive modulo, chunk size, or
// thickness.
func Build(base []Level, derived []Spec) (Hierarchy, error) {
	if len(base) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "hierarchy needs at least two base tiers, got %d", len(base))
	}

	h := make(Hierarchy, 0, len(base)+len(derived))
	h = append(h, base...)

	for _, spec := range derived {
		child := h[len(h)-1]
		lastParallel := h[len(h)-2]
		padding := int64(basePaddingUnit) * pow3(len(h)-2)
		h = append(h, Level{
			Name:      spec.Name,
			Modulo:    spec.Modulo,
			ChunkSize: child.Modulo * child.ChunkSize,
			Padding:   padding,
			Thickness: lastParallel.Modulo*lastParallel.Thickness + padding,
		})
	}

	for i, l := range h {
		if l.Modulo <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "tier %d (%s): modulo must be positive, got %d", i, l.Name, l.Modulo)
		}
		if l.ChunkSize <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "tier %d (%s): chunk size must be positive, got %d", i, l.Name, l.ChunkSize)
		}
		if l.Thickness <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "tier %d (%s): thickness must be positive, got %d", i, l.Name, l.Thickness)
		}
		if l.Padding < 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "tier %d (%s): padding must be non-negative, got %d", i, l.Name, l.Padding)
		}
	}

	return h, nil
}

// Default returns the standard eight-tier hierarchy: 100 positions per
// line, 1000 lines per column, 100 columns per row, 10 rows per tile,
// 3x4 tiles per super-tile, 9 super-tile columns, and effectively
// unbounded super-tile rows. Its total capacity exceeds ten terabases.
func Default() Hierarchy {
	h, err := Build(
		[]Level{
			{Name: "XInColumn", Modulo: 100, ChunkSize: 1, Padding: 0, Thickness: 1},
			{Name: "LineInColumn", Modulo: 1000, ChunkSize: 100, Padding: 0, Thickness: 1},
		},
		[]Spec{
			{Name: "ColumnInRow", Modulo: 100},
			{Name: "RowInTile", Modulo: 10},
			{Name: "XInTile", Modulo: 3},
			{Name: "YInTile", Modulo: 4},
			{Name: "TileColumn", Modulo: 9},
			{Name: "TileRow", Modulo: 999},
		},
	)
	if err != nil {
		// The default geometry is fixed at compile time; Build can only
		// reject it if the constants above are edited into an invalid state.
		panic(err)
	}
	return h
}

// Axis returns the screen axis tier i advances along.
func (h Hierarchy) Axis(i int) Axis {
	if i%2 == 0 {
		return AxisX
	}
	return AxisY
}

// Capacity returns the total linear extent addressable by the hierarchy:
// the capacity of its coarsest tier.
func (h Hierarchy) Capacity() int64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1].Capacity()
}

// pow3 returns 3^n for small non-negative n.
func pow3(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}
