// Package layout implements the tiled layout engine that maps a
// one-dimensional genome onto a two-dimensional raster.
//
// A sequence has no natural 2D structure, so the engine nests several
// levels of rows, columns, and tiles (a "tiled layout") that keep any
// prefix of the sequence browsable at multiple zoom levels: a single
// base, a line, a column, a tile, a chromosome. The package has four
// parts:
//
//   - Hierarchy: an ordered chain of Levels, built bottom-up, each tier
//     derived from the tiers beneath it. Tiers alternate between the X
//     and Y axis.
//   - Planner: computes the whitespace (reset, title, tail padding)
//     inserted around each contig so contig boundaries land on clean
//     tier boundaries and labels have reserved room.
//   - Mapper: the pure offset → (x, y) pixel function. Two variants
//     share one implementation: the standard mapper covers images up to
//     BigThreshold linear units, the big mapper adds a coarse tile tier
//     so whole genomes keep tiling outward along both axes.
//   - Size: the minimal canvas dimensions the hierarchy will touch for
//     a given linear length.
//
// All arithmetic is exact int64; the same input always produces the
// same pixel, bit for bit.
package layout
