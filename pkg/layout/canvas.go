package layout

// Size computes the minimum canvas width and height that the hierarchy
// touches for an image of totalLength linear units (sequence plus all
// planned padding).
//
// For each tier, the number of units actually reached is
// ceil(totalLength / chunk) clamped to the tier's sibling count. A tier
// with more than one reached unit is active, and contributes
// thickness * units to its axis. The canvas dimension per axis is the
// maximum contribution over that axis's active tiers, not a sum: a
// coarser tier's thickness already encompasses everything beneath it.
func (h Hierarchy) Size(totalLength int64) (width, height int64) {
	var wh [2]int64
	for i, lv := range h {
		units := ceilDiv(totalLength, lv.ChunkSize)
		if units > lv.Modulo {
			units = lv.Modulo
		}
		if units > 1 {
			if ext := lv.Thickness * units; ext > wh[i%2] {
				wh[i%2] = ext
			}
		}
	}
	return wh[0], wh[1]
}

// ceilDiv returns ceil(a / b) for positive b.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
