package render

import (
	"image"
	"reflect"
	"testing"

	"github.com/genotile/genotile/pkg/layout"
)

func TestTitleBoxLineLabel(t *testing.T) {
	h := layout.Default()

	// A 50 kbp contig at cursor zero gets the minimum title gap: 26
	// lines of 100 positions each.
	segments, _ := layout.PlanSegments(h, []layout.NamedLength{
		{Name: "chr1", Length: 50_000},
		{Name: "chr2", Length: 50_000},
	})
	box := TitleBoxFor(h, 0, segments[0])

	if box.Rotated {
		t.Error("line label should not be rotated")
	}
	if box.FontSize != fontSizeLine {
		t.Errorf("FontSize = %v, want %v", box.FontSize, fontSizeLine)
	}
	if box.UpperLeft != (image.Point{0, 0}) {
		t.Errorf("UpperLeft = %v, want origin", box.UpperLeft)
	}
	// Title spans offsets 0..2598: 98 pixels across, 25 lines down.
	if box.Width != 98 || box.Height != 25 {
		t.Errorf("box = %dx%d, want 98x25", box.Width, box.Height)
	}
}

func TestTitleBoxColumnLabelRotated(t *testing.T) {
	h := layout.Default()

	// A 150 kbp contig reserves a full column for its title, which is
	// exactly the rotation threshold.
	segments, _ := layout.PlanSegments(h, []layout.NamedLength{
		{Name: "big", Length: 150_000},
		{Name: "other", Length: 150_000},
	})
	seg := segments[0]
	if seg.Title != h[2].ChunkSize {
		t.Fatalf("Title = %d, want one column chunk %d", seg.Title, h[2].ChunkSize)
	}

	box := TitleBoxFor(h, 0, seg)
	if !box.Rotated {
		t.Error("column-sized title should be rotated")
	}
	if box.FontSize != fontSizeColumn {
		t.Errorf("FontSize = %v, want %v", box.FontSize, fontSizeColumn)
	}
	// Width and height are swapped for the rotated label.
	if box.Width != 999 || box.Height != 98 {
		t.Errorf("box = %dx%d, want 999x98", box.Width, box.Height)
	}
}

func TestTitleBoxRowLabelFont(t *testing.T) {
	h := layout.Default()

	// A 50 Mbp contig needs a tile chunk; its title reserves a full row
	// and gets the chromosome-scale font.
	segments, _ := layout.PlanSegments(h, []layout.NamedLength{
		{Name: "chrX", Length: 50_000_000},
		{Name: "chrY", Length: 50_000_000},
	})
	seg := segments[0]
	if seg.Title < h[3].ChunkSize {
		t.Fatalf("Title = %d, want at least one row chunk %d", seg.Title, h[3].ChunkSize)
	}

	box := TitleBoxFor(h, 0, seg)
	if box.FontSize != fontSizeRow {
		t.Errorf("FontSize = %v, want %v", box.FontSize, fontSizeRow)
	}
	if box.Rotated {
		t.Error("row label should not be rotated")
	}
}

func TestPrettyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chr1_assembly|v2", "chr1 assembly v2"},
		{"chromosome chromosome 1", "chromosome 1"},
		{"name:value", "name: value"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := PrettyName(tt.in); got != tt.want {
			t.Errorf("PrettyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"short", 18, []string{"short"}},
		{"", 18, []string{""}},
		{"supercalifragilistic", 5, []string{"supercalifragilistic"}},
	}
	for _, tt := range tests {
		if got := wrapText(tt.in, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %v, want %v", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestDrawTitlesStaysInReservedRegions(t *testing.T) {
	h := layout.Default()
	contigs := planContigs(h, map[string]string{
		"chr1": "ACGT",
		"chr2": "ACGT",
	}, "chr1", "chr2")

	var total int64
	for _, c := range contigs {
		total += c.Segment.Extent()
	}
	w, hh := h.Size(total)
	img := NewCanvas(w, hh)

	if err := DrawTitles(img, h, contigs); err != nil {
		t.Fatalf("DrawTitles() error = %v", err)
	}
}
