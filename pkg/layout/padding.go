package layout

// MinTitleGap is the smallest linear extent reserved for a contig label:
// one 20 px line of text plus 6 px of vertical padding, times the 100
// positions spanned by each raster line. An empirically chosen visual
// constant.
const MinTitleGap = (20 + 6) * 100

// Padding is the whitespace planned around one contig.
type Padding struct {
	// Reset is the blank extent inserted before the contig so its first
	// position lands on a clean tier boundary.
	Reset int64
	// Title is the extent reserved for the contig's rendered label.
	Title int64
	// Tail is the blank extent after the contig, stopping one unit short
	// of the next boundary so the following contig never touches this one.
	Tail int64
}

// Planner computes contig padding against a fixed hierarchy.
type Planner struct {
	levels Hierarchy
}

// NewPlanner returns a Planner for h.
func NewPlanner(h Hierarchy) Planner {
	return Planner{levels: h}
}

// Plan decides the whitespace around a contig of the given length when
// the cursor has already consumed the given linear extent.
//
// Single-contig inputs need no alignment and get zero padding. Otherwise
// the planner picks the first tier whose chunk size can hold the contig
// plus a minimum label gap, reserves label space of at least one full
// unit of the tier below (scaling up for long contigs), and rounds the
// cursor up to a clean boundary. When the contig plus its label still
// fits in the space remaining before the selected tier's next boundary,
// the reset only rounds to the finer tier below, wasting fewer pixels.
//
// If no tier can hold the contig, Plan degrades to zero padding; an
// oversized contig is an accepted limitation, not an error.
func (p Planner) Plan(cursor, length int64, multiContig bool) Padding {
	if !multiContig {
		return Padding{}
	}

	// Tier 0 spans a single position and can never hold a contig, so the
	// scan starts at the line tier.
	for i := 1; i < len(p.levels); i++ {
		level := p.levels[i]
		if length+MinTitleGap >= level.ChunkSize {
			continue
		}
		finer := p.levels[i-1]

		title := finer.ChunkSize
		if title < MinTitleGap {
			title = MinTitleGap
		}

		// Bigger reset when the contig is close to filling what is left
		// of the current chunk; there should always be at least one full
		// gap before the next boundary.
		resetLevel := level
		if spaceRemaining := level.ChunkSize - cursor%level.ChunkSize; length+title < spaceRemaining {
			resetLevel = finer
		}
		var reset int64
		if cursor != 0 {
			reset = resetLevel.ChunkSize - cursor%resetLevel.ChunkSize
		}

		filled := cursor + title + reset + length
		tail := finer.ChunkSize - filled%finer.ChunkSize - 1

		return Padding{Reset: reset, Title: title, Tail: tail}
	}

	return Padding{}
}

// Segment is a contig plus its planned surrounding whitespace. An
// ordered sequence of Segments fully covers the canvas's linear extent.
type Segment struct {
	Name   string
	Length int64
	Padding
}

// Extent is the total linear span the segment occupies: padding plus
// sequence.
func (s Segment) Extent() int64 {
	return s.Reset + s.Title + s.Length + s.Tail
}

// NamedLength is a (contig name, sequence length) pair, the planner's
// only required knowledge of a contig.
type NamedLength struct {
	Name   string
	Length int64
}

// PlanSegments runs the planner over an ordered contig list, threading
// the linear cursor as an explicit fold. It returns the planned segments
// and the total linear length, which feeds Hierarchy.Size. Planning is
// deterministic: the same input list always yields the same segments.
//
// Each segment's padding depends on the exact cumulative cursor left by
// all prior segments, so this step is inherently sequential; rendering
// may then proceed per segment in parallel.
func PlanSegments(h Hierarchy, contigs []NamedLength) ([]Segment, int64) {
	planner := NewPlanner(h)
	multi := len(contigs) > 1

	segments := make([]Segment, 0, len(contigs))
	var cursor int64
	for _, c := range contigs {
		pad := planner.Plan(cursor, c.Length, multi)
		seg := Segment{Name: c.Name, Length: c.Length, Padding: pad}
		segments = append(segments, seg)
		cursor += seg.Extent()
	}
	return segments, cursor
}
