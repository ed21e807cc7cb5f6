package genetic

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrEmptySelection marks a survivor fraction that rounds to zero; callers clamp to one
	ErrEmptySelection = errors.New("selection would keep no survivors")
	// ErrEmptyPopulation is returned when there is nothing to select from
	ErrEmptyPopulation = errors.New("empty population")
)

// SurvivorCount returns ceil(n*fraction) clamped to [1, n].
// The error is ErrEmptySelection when the unclamped count was zero, the count is still usable.
func SurvivorCount(n int, fraction float64) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyPopulation
	}

	k := int(math.Ceil(float64(n) * fraction))
	if k > n {
		k = n
	}
	if k < 1 {
		return 1, fmt.Errorf("%w: fraction %g of %d, keeping 1", ErrEmptySelection, fraction, n)
	}
	return k, nil
}

// Rank returns candidate positions ordered best first.
// The sort is stable so equal scores keep ascending index order.
func Rank[S Solution, F Fitness[F]](members []Candidate[S, F]) []int {
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return members[b].Score.Compare(members[a].Score)
	})
	return order
}

// SelectBest returns the top ceil(len*fraction) solutions, clamped to at least one.
// Ties break by lower index. A zero-survivor fraction is clamped silently; the engine logs it.
func SelectBest[S Solution, F Fitness[F]](population []S, scores []F, fraction float64) ([]S, error) {
	if len(population) == 0 {
		return nil, ErrEmptyPopulation
	}
	if len(scores) != len(population) {
		return nil, fmt.Errorf("selection: %d scores for %d solutions", len(scores), len(population))
	}

	k, _ := SurvivorCount(len(population), fraction)

	members := make([]Candidate[S, F], len(population))
	for i := range population {
		members[i] = Candidate[S, F]{Data: population[i], Score: scores[i], Index: i}
	}

	out := make([]S, 0, k)
	for _, idx := range Rank(members)[:k] {
		out = append(out, population[idx])
	}
	return out, nil
}
