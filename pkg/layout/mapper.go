package layout

// BigThreshold is the largest linear extent (sequence plus padding) the
// standard mapper addresses: the chunk size of the YInTile tier. Inputs
// longer than this must use the big mapper, which adds one coarse tile
// tier so the image keeps tiling outward along both axes. Both mappers
// agree exactly on every offset below this threshold.
const BigThreshold = 300_000_000

// Point is a pixel coordinate on the raster.
type Point struct {
	X, Y int64
}

// Mapper maps a linear offset to a pixel coordinate by walking an active
// tier list. Every tier but the outermost is reduced modulo its sibling
// count; the outermost grows unbounded so the layout never overflows a
// tier's address space. The zero Mapper is not usable; obtain one from
// Hierarchy.Mapper, Hierarchy.BigMapper, or MapperFor.
type Mapper struct {
	levels []Level
}

// Mapper returns the standard-variant mapper, valid for offsets below
// BigThreshold. It walks the five finest tiers with XInTile unbounded.
func (h Hierarchy) Mapper() Mapper {
	return Mapper{levels: h[:5]}
}

// BigMapper returns the big-variant mapper for very large images. It
// walks the seven finest tiers with TileColumn unbounded, so extremely
// long genomes continue to tile outward instead of overflowing a single
// tier.
func (h Hierarchy) BigMapper() Mapper {
	return Mapper{levels: h[:7]}
}

// MapperFor picks the mapper variant appropriate for an image of
// totalLength linear units.
func MapperFor(h Hierarchy, totalLength int64) Mapper {
	if totalLength > BigThreshold {
		return h.BigMapper()
	}
	return h.Mapper()
}

// Map returns the pixel occupied by linear offset i. The walk is exact
// integer arithmetic throughout: for each tier, the number of whole
// chunks at that tier (modulo the sibling count, except for the
// outermost tier) times the tier's thickness accumulates onto the
// tier's axis.
func (m Mapper) Map(i int64) Point {
	var xy [2]int64
	for k, lv := range m.levels {
		if i < lv.ChunkSize {
			// Finer tiers already placed the offset; coarser tiers
			// would all contribute zero.
			break
		}
		units := i / lv.ChunkSize
		if k < len(m.levels)-1 {
			units %= lv.Modulo
		}
		xy[k%2] += lv.Thickness * units
	}
	return Point{X: xy[0], Y: xy[1]}
}

// Levels exposes the active tier list, finest first. The returned slice
// must not be mutated.
func (m Mapper) Levels() []Level {
	return m.levels
}
