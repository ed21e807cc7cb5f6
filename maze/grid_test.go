package maze

import (
	"errors"
	"testing"
)

func TestParse_RoundTrip(t *testing.T) {
	text := "..#\n#..\n.#.\n"

	g, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("dimensions %dx%d, want 3x3", g.Rows(), g.Cols())
	}
	if g.String() != text {
		t.Errorf("got\n%s\nwant\n%s", g.String(), text)
	}
	if g.OpenCount() != 6 {
		t.Errorf("open count %d, want 6", g.OpenCount())
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty text: expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := Parse("...\n..\n"); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("ragged rows: expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := Parse("..x\n"); err == nil {
		t.Error("expected error for unknown glyph")
	}
}

func TestGrid_Bounds(t *testing.T) {
	g, _ := Parse("..\n..\n")

	tests := []struct {
		p    Point
		in   bool
		open bool
	}{
		{Point{0, 0}, true, true},
		{Point{1, 1}, true, true},
		{Point{-1, 0}, false, false},
		{Point{0, 2}, false, false},
		{Point{2, 0}, false, false},
	}

	for _, tt := range tests {
		if got := g.InBounds(tt.p); got != tt.in {
			t.Errorf("InBounds(%v) = %v, want %v", tt.p, got, tt.in)
		}
		if got := g.IsOpen(tt.p); got != tt.open {
			t.Errorf("IsOpen(%v) = %v, want %v", tt.p, got, tt.open)
		}
	}
}

func TestGrid_IndexRoundTrip(t *testing.T) {
	g := newGrid(4, 7)
	for i := 0; i < g.Size(); i++ {
		if got := g.Index(g.PointAt(i)); got != i {
			t.Fatalf("Index(PointAt(%d)) = %d", i, got)
		}
	}
}
