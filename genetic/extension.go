package genetic

import (
	"math/rand/v2"
)

// --- Sequence Initializers and Perturbators ---

// UniformInitializer creates fixed-length sequences with each gene drawn uniformly from Alphabet
type UniformInitializer[S ~[]T, T any] struct {
	Alphabet []T
	Length   int
}

// Generate implements InitializerFunc
func (ui *UniformInitializer[S, T]) Generate(rng *rand.Rand) S {
	solution := make(S, ui.Length)
	if len(ui.Alphabet) == 0 {
		return solution
	}
	for i := range solution {
		solution[i] = ui.Alphabet[rng.IntN(len(ui.Alphabet))]
	}
	return solution
}

// ResetPerturbator replaces each gene with probability rate by a uniform draw from Alphabet.
// The draw may return the same symbol.
type ResetPerturbator[S ~[]T, T any] struct {
	Alphabet []T
}

func (rp *ResetPerturbator[S, T]) Perturb(solution *S, rate float64, rng *rand.Rand) {
	if solution == nil || len(rp.Alphabet) == 0 {
		return
	}

	for i := range *solution {
		if rng.Float64() < rate {
			(*solution)[i] = rp.Alphabet[rng.IntN(len(rp.Alphabet))]
		}
	}
}
