package tracking

import (
	"cmp"
	"testing"
)

type score int

func (s score) Compare(other score) int { return cmp.Compare(s, other) }

func TestHistory_RunningBest(t *testing.T) {
	h := NewHistory[string, score](4)

	h.Push(0, "a", 5, 1, Stats{}, 1)
	h.Push(1, "b", 3, 0, Stats{}, 1) // regression, best-ever stays
	h.Push(2, "c", 9, 2, Stats{}, 1)
	last := h.Push(3, "d", 9, 4, Stats{}, 1) // tie keeps earliest

	best, sc, ok := h.BestEver()
	if !ok || best != "c" || sc != 9 {
		t.Fatalf("best ever = %q,%d,%v want c,9,true", best, sc, ok)
	}
	if last.BestEverGeneration != 2 {
		t.Errorf("best ever generation %d, want 2", last.BestEverGeneration)
	}
	if last.Improved {
		t.Error("tie should not count as improvement")
	}
	if h.Stagnation() != 1 {
		t.Errorf("stagnation %d, want 1", h.Stagnation())
	}

	records := h.Records()
	if len(records) != 4 {
		t.Fatalf("records %d, want 4", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].BestEverScore < records[i-1].BestEverScore {
			t.Errorf("best ever decreased at generation %d", i)
		}
	}
	if records[1].Best != "b" || records[1].BestEver != "a" {
		t.Errorf("generation 1: best %q best-ever %q", records[1].Best, records[1].BestEver)
	}
}

func TestHistory_StagnationResetsOnImprovement(t *testing.T) {
	h := NewHistory[int, score](0)

	h.Push(0, 0, 1, 0, Stats{}, 1)
	h.Push(1, 1, 1, 0, Stats{}, 1)
	h.Push(2, 2, 0, 0, Stats{}, 1)
	if h.Stagnation() != 2 {
		t.Fatalf("stagnation %d, want 2", h.Stagnation())
	}

	h.Push(3, 3, 2, 0, Stats{}, 1)
	if h.Stagnation() != 0 {
		t.Errorf("stagnation %d after improvement, want 0", h.Stagnation())
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory[int, score](2)
	h.Push(0, 7, 7, 7, Stats{Mean: 7}, 1)

	h.Reset()

	if h.Len() != 0 {
		t.Errorf("len %d after reset", h.Len())
	}
	if _, _, ok := h.BestEver(); ok {
		t.Error("best ever survived reset")
	}
	if _, ok := h.Last(); ok {
		t.Error("last record survived reset")
	}
}
