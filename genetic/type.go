package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/maze-runner/genetic/tracking"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Fitness is a totally ordered quality score, higher is better.
// Float projects the score onto a line for pool statistics only, ordering always uses Compare.
type Fitness[F any] interface {
	Compare(other F) int
	Float() float64
}

// --- Core Data Structures ---

// Candidate is a solution with its evaluated score
type Candidate[S Solution, F Fitness[F]] struct {
	Data  S
	Score F
	// Index is the candidate's position in its pool, used as the selection tie-break
	Index int
	// Err holds the evaluation error when Score is the floor fitness
	Err error
}

// Pool is the working set of candidates at one generation
type Pool[S Solution, F Fitness[F]] struct {
	Members    []Candidate[S, F]
	Generation int
	Stats      PoolStats[F]
}

// PoolStats summarises the scores of a pool
type PoolStats[F Fitness[F]] struct {
	Best     F
	Worst    F
	Mean     float64
	StdDev   float64
	Failures int
}

// Solutions returns the pool's solutions in index order
func (p *Pool[S, F]) Solutions() []S {
	out := make([]S, len(p.Members))
	for i, c := range p.Members {
		out[i] = c.Data
	}
	return out
}

// Scores returns the pool's scores in index order
func (p *Pool[S, F]) Scores() []F {
	out := make([]F, len(p.Members))
	for i, c := range p.Members {
		out[i] = c.Score
	}
	return out
}

// --- Function Types ---

// EvaluatorFunc scores a solution; it must be safe for concurrent use
type EvaluatorFunc[S Solution, F Fitness[F]] func(solution S) (F, error)

// InitializerFunc creates one initial solution from the population RNG
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// TerminationFunc reports whether the run should stop after the pool was evaluated
type TerminationFunc[S Solution, F Fitness[F]] func(pool *Pool[S, F], iteration int) bool

// ObserverFunc receives every generation record, called from the engine goroutine
type ObserverFunc[S Solution, F Fitness[F]] func(rec tracking.Record[S, F])

// --- Core Operators as Interfaces ---

// Selector chooses parents for reproduction
type Selector[S Solution, F Fitness[F]] interface {
	// Select returns up to size candidates, the pool is not modified
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner recombines parent solutions into offspring
type Combiner[S Solution, F Fitness[F]] interface {
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator mutates a solution in place
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in place, rate controls intensity (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
