package maze

import (
	"errors"
	"testing"
)

func TestMove_Deltas(t *testing.T) {
	tests := []struct {
		m      Move
		delta  Point
		keypad int
	}{
		{Up, Point{0, -1}, 8},
		{Down, Point{0, 1}, 2},
		{Left, Point{-1, 0}, 4},
		{Right, Point{1, 0}, 6},
	}

	for _, tt := range tests {
		if got := tt.m.Delta(); got != tt.delta {
			t.Errorf("%v.Delta() = %v, want %v", tt.m, got, tt.delta)
		}
		if got := tt.m.Keypad(); got != tt.keypad {
			t.Errorf("%v.Keypad() = %d, want %d", tt.m, got, tt.keypad)
		}
		back, err := FromKeypad(tt.keypad)
		if err != nil || back != tt.m {
			t.Errorf("FromKeypad(%d) = %v, %v", tt.keypad, back, err)
		}
	}
}

func TestMove_InvalidCodes(t *testing.T) {
	if _, err := FromKeypad(5); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
	if _, err := FromRune('x'); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
	if Move(9).Valid() {
		t.Error("Move(9) reported valid")
	}
	if Move(9).Delta() != (Point{}) {
		t.Error("invalid move should have zero delta")
	}
}

func TestParseGenome_Encodings(t *testing.T) {
	want := []Move{Up, Left, Down, Right}

	inputs := []string{
		"8426",
		"[8, 4, 2, 6]",
		"wasd",
		"U L D R",
	}

	for _, in := range inputs {
		got, err := ParseGenome(in)
		if err != nil {
			t.Fatalf("ParseGenome(%q): %v", in, err)
		}
		if len(got) != len(want) {
			t.Fatalf("ParseGenome(%q) length %d", in, len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ParseGenome(%q)[%d] = %v, want %v", in, i, got[i], want[i])
			}
		}
	}

	if FormatGenome(want) != "8426" {
		t.Errorf("FormatGenome = %q", FormatGenome(want))
	}
}

func TestParseGenome_RejectsUnknown(t *testing.T) {
	if _, err := ParseGenome("88x2"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
}
