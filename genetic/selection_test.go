package genetic

import (
	"cmp"
	"errors"
	"slices"
	"testing"
)

type score int

func (s score) Compare(other score) int { return cmp.Compare(s, other) }
func (s score) Float() float64          { return float64(s) }

func TestSurvivorCount(t *testing.T) {
	tests := []struct {
		n        int
		fraction float64
		want     int
		clamped  bool
	}{
		{100, 0.06, 6, false},
		{300, 0.01, 3, false},
		{10, 0.25, 3, false}, // ceil(2.5)
		{10, 0, 1, true},
		{10, -1, 1, true},
		{10, 5, 10, false},
		{1, 0.5, 1, false},
	}

	for _, tt := range tests {
		got, err := SurvivorCount(tt.n, tt.fraction)
		if got != tt.want {
			t.Errorf("SurvivorCount(%d, %g) = %d, want %d", tt.n, tt.fraction, got, tt.want)
		}
		if clamped := errors.Is(err, ErrEmptySelection); clamped != tt.clamped {
			t.Errorf("SurvivorCount(%d, %g) clamp error = %v", tt.n, tt.fraction, err)
		}
	}

	if _, err := SurvivorCount(0, 0.5); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("expected ErrEmptyPopulation, got %v", err)
	}
}

func TestSelectBest_TopWithIndexTieBreak(t *testing.T) {
	pop := []string{"a", "b", "c", "d", "e"}
	scores := []score{3, 9, 3, 9, 1}

	got, err := SelectBest(pop, scores, 0.6)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := []string{"b", "d", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelectBest_ReturnsOneToLen(t *testing.T) {
	pop := make([]int, 17)
	scores := make([]score, 17)
	for i := range pop {
		pop[i] = i
		scores[i] = score(i % 5)
	}

	for _, fraction := range []float64{-0.5, 0, 0.001, 0.06, 0.5, 0.999, 1, 3} {
		got, err := SelectBest(pop, scores, fraction)
		if err != nil {
			t.Fatalf("fraction %g: %v", fraction, err)
		}
		if len(got) < 1 || len(got) > len(pop) {
			t.Errorf("fraction %g: %d survivors", fraction, len(got))
		}
	}
}

func TestSelectBest_Errors(t *testing.T) {
	if _, err := SelectBest([]int{}, []score{}, 0.5); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("empty: got %v", err)
	}
	if _, err := SelectBest([]int{1, 2}, []score{1}, 0.5); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestRank_Stable(t *testing.T) {
	members := []Candidate[int, score]{
		{Score: 2}, {Score: 5}, {Score: 2}, {Score: 5}, {Score: 0},
	}
	got := Rank(members)
	want := []int{1, 3, 0, 2, 4}
	if !slices.Equal(got, want) {
		t.Errorf("rank = %v, want %v", got, want)
	}
}
