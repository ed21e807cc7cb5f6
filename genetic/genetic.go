// Package genetic is a generic genetic algorithm engine.
// It has no knowledge of the maze domain; solutions, scores and operators are supplied by the caller.
package genetic

import (
	"math/rand/v2"
	"slices"
)

// --- Selection Operators ---

// TruncationSelector keeps the best size candidates, ties broken by lower index
type TruncationSelector[S Solution, F Fitness[F]] struct{}

func (TruncationSelector[S, F]) Select(pool *Pool[S, F], size int, _ *rand.Rand) []Candidate[S, F] {
	size = min(size, len(pool.Members))
	selected := make([]Candidate[S, F], 0, size)
	for _, idx := range Rank(pool.Members)[:size] {
		selected = append(selected, pool.Members[idx])
	}
	return selected
}

// TournamentSelector samples small groups and keeps the best of each
type TournamentSelector[S Solution, F Fitness[F]] struct {
	// TournamentSize is the number of candidates competing in each tournament
	TournamentSize int
	// WithReplacement allows a candidate to win more than one tournament
	WithReplacement bool
}

func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	poolSize := len(pool.Members)
	if poolSize == 0 || size <= 0 {
		return nil
	}
	if !ts.WithReplacement {
		size = min(size, poolSize)
	}

	tournSize := ts.TournamentSize
	if tournSize < 1 {
		tournSize = 2
	}
	tournSize = min(tournSize, poolSize)

	selected := make([]Candidate[S, F], 0, size)
	taken := make([]bool, poolSize)

	for len(selected) < size {
		winner := -1
		for i := 0; i < tournSize; i++ {
			idx := rng.IntN(poolSize)
			if !ts.WithReplacement && taken[idx] {
				continue
			}
			if winner < 0 || pool.Members[idx].Score.Compare(pool.Members[winner].Score) > 0 ||
				(pool.Members[idx].Score.Compare(pool.Members[winner].Score) == 0 && idx < winner) {
				winner = idx
			}
		}
		if winner < 0 {
			// Every draw hit a previous winner, take the best remaining
			for _, idx := range Rank(pool.Members) {
				if !taken[idx] {
					winner = idx
					break
				}
			}
		}

		taken[winner] = true
		selected = append(selected, pool.Members[winner])
	}

	return selected
}

// RouletteSelector draws candidates with probability proportional to their shifted float score
type RouletteSelector[S Solution, F Fitness[F]] struct{}

func (RouletteSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	if len(pool.Members) == 0 || size <= 0 {
		return nil
	}

	// Shift so the worst candidate keeps a small non-zero weight
	lowest := pool.Members[0].Score.Float()
	for _, c := range pool.Members[1:] {
		lowest = min(lowest, c.Score.Float())
	}

	cumulative := make([]float64, len(pool.Members))
	total := 0.0
	for i, c := range pool.Members {
		total += c.Score.Float() - lowest + 1
		cumulative[i] = total
	}

	selected := make([]Candidate[S, F], size)
	for i := range selected {
		spin := rng.Float64() * total
		j, _ := slices.BinarySearch(cumulative, spin)
		selected[i] = pool.Members[min(j, len(pool.Members)-1)]
	}
	return selected
}

// --- Recombination Operators ---

// UniformCombiner performs uniform ("scattered") crossover
// Each gene has equal probability of coming from either parent
type UniformCombiner[S ~[]T, T any, F Fitness[F]] struct {
	// MixProbability is the chance of taking a gene from the first parent
	MixProbability float64
}

func (uc *UniformCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if len(parents) < 2 {
		return cloneParents(parents)
	}

	parent1, parent2 := parents[0].Data, parents[1].Data
	length := min(len(parent1), len(parent2))

	offspring1 := make(S, length)
	offspring2 := make(S, length)

	for i := 0; i < length; i++ {
		if rng.Float64() < uc.MixProbability {
			offspring1[i] = parent1[i]
			offspring2[i] = parent2[i]
		} else {
			offspring1[i] = parent2[i]
			offspring2[i] = parent1[i]
		}
	}

	return []S{offspring1, offspring2}
}

// NPointCombiner splits parents at N random cut points and alternates segments
type NPointCombiner[S ~[]T, T any, F Fitness[F]] struct {
	Points int
}

func (nc *NPointCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if len(parents) < 2 {
		return cloneParents(parents)
	}

	parent1, parent2 := parents[0].Data, parents[1].Data
	length := min(len(parent1), len(parent2))

	points := make([]int, 0, nc.Points+2)
	points = append(points, 0)
	for i := 0; i < nc.Points && length > 1; i++ {
		points = append(points, rng.IntN(length-1)+1)
	}
	points = append(points, length)
	slices.Sort(points)

	offspring1 := make(S, length)
	offspring2 := make(S, length)

	useParent1 := true
	for i := 0; i < len(points)-1; i++ {
		for j := points[i]; j < points[i+1]; j++ {
			if useParent1 {
				offspring1[j] = parent1[j]
				offspring2[j] = parent2[j]
			} else {
				offspring1[j] = parent2[j]
				offspring2[j] = parent1[j]
			}
		}
		useParent1 = !useParent1
	}

	return []S{offspring1, offspring2}
}

// RateCombiner applies Inner with probability Rate, otherwise the parents pass through as copies
type RateCombiner[S ~[]T, T any, F Fitness[F]] struct {
	Inner Combiner[S, F]
	Rate  float64
}

func (rc *RateCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if rc.Inner != nil && rng.Float64() < rc.Rate {
		return rc.Inner.Combine(parents, rng)
	}
	out := make([]S, len(parents))
	for i, p := range parents {
		out[i] = slices.Clone(p.Data)
	}
	return out
}

func cloneParents[S ~[]T, T any, F Fitness[F]](parents []Candidate[S, F]) []S {
	out := make([]S, 0, len(parents))
	for _, p := range parents {
		out = append(out, slices.Clone(p.Data))
	}
	return out
}
