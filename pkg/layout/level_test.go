package layout

import (
	"testing"

	"github.com/genotile/genotile/pkg/errors"
)

func TestDefaultHierarchyGeometry(t *testing.T) {
	h := Default()

	want := []Level{
		{Name: "XInColumn", Modulo: 100, ChunkSize: 1, Padding: 0, Thickness: 1},
		{Name: "LineInColumn", Modulo: 1000, ChunkSize: 100, Padding: 0, Thickness: 1},
		{Name: "ColumnInRow", Modulo: 100, ChunkSize: 100_000, Padding: 6, Thickness: 106},
		{Name: "RowInTile", Modulo: 10, ChunkSize: 10_000_000, Padding: 18, Thickness: 1018},
		{Name: "XInTile", Modulo: 3, ChunkSize: 100_000_000, Padding: 54, Thickness: 10654},
		{Name: "YInTile", Modulo: 4, ChunkSize: 300_000_000, Padding: 162, Thickness: 10342},
		{Name: "TileColumn", Modulo: 9, ChunkSize: 1_200_000_000, Padding: 486, Thickness: 32448},
		{Name: "TileRow", Modulo: 999, ChunkSize: 10_800_000_000, Padding: 1458, Thickness: 42826},
	}

	if len(h) != len(want) {
		t.Fatalf("len(h) = %d, want %d", len(h), len(want))
	}
	for i, w := range want {
		if h[i] != w {
			t.Errorf("tier %d = %+v, want %+v", i, h[i], w)
		}
	}
}

func TestHierarchyInvariants(t *testing.T) {
	h := Default()

	for i := 1; i < len(h); i++ {
		if h[i].ChunkSize <= h[i-1].ChunkSize {
			t.Errorf("tier %d chunk size %d not greater than tier %d chunk size %d",
				i, h[i].ChunkSize, i-1, h[i-1].ChunkSize)
		}
	}

	for i := 2; i < len(h); i++ {
		if got, want := h[i].ChunkSize, h[i-1].Modulo*h[i-1].ChunkSize; got != want {
			t.Errorf("tier %d chunk size = %d, want modulo*chunk of tier below = %d", i, got, want)
		}
		if got, want := h[i].Thickness, h[i-2].Modulo*h[i-2].Thickness+h[i].Padding; got != want {
			t.Errorf("tier %d thickness = %d, want %d", i, got, want)
		}
	}
}

func TestHierarchyAxisAlternates(t *testing.T) {
	h := Default()
	for i := range h {
		want := AxisX
		if i%2 == 1 {
			want = AxisY
		}
		if got := h.Axis(i); got != want {
			t.Errorf("Axis(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestHierarchyCapacity(t *testing.T) {
	h := Default()
	// 999 tile rows of 10.8 Gbp each.
	if got, want := h.Capacity(), int64(999)*10_800_000_000; got != want {
		t.Errorf("Capacity() = %d, want %d", got, want)
	}
}

func TestBuildRejectsInvalidTiers(t *testing.T) {
	tests := []struct {
		name    string
		base    []Level
		derived []Spec
	}{
		{
			name: "zero modulo",
			base: []Level{
				{Name: "a", Modulo: 0, ChunkSize: 1, Thickness: 1},
				{Name: "b", Modulo: 10, ChunkSize: 100, Thickness: 1},
			},
		},
		{
			name: "negative chunk size",
			base: []Level{
				{Name: "a", Modulo: 10, ChunkSize: -1, Thickness: 1},
				{Name: "b", Modulo: 10, ChunkSize: 100, Thickness: 1},
			},
		},
		{
			name: "zero thickness",
			base: []Level{
				{Name: "a", Modulo: 10, ChunkSize: 1, Thickness: 0},
				{Name: "b", Modulo: 10, ChunkSize: 10, Thickness: 1},
			},
		},
		{
			name: "too few base tiers",
			base: []Level{
				{Name: "a", Modulo: 10, ChunkSize: 1, Thickness: 1},
			},
		},
		{
			name: "derived tier with zero modulo",
			base: []Level{
				{Name: "a", Modulo: 100, ChunkSize: 1, Thickness: 1},
				{Name: "b", Modulo: 1000, ChunkSize: 100, Thickness: 1},
			},
			derived: []Spec{{Name: "c", Modulo: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.base, tt.derived)
			if err == nil {
				t.Fatal("Build() error = nil, want ConfigurationError")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLevelCapacity(t *testing.T) {
	l := Level{Modulo: 100, ChunkSize: 1000}
	if got := l.Capacity(); got != 100_000 {
		t.Errorf("Capacity() = %d, want 100000", got)
	}
}
