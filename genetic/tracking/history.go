// Package tracking keeps per-generation records of an evolution run and the best solution seen so far
package tracking

// Comparable is a totally ordered score, higher is better
type Comparable[F any] interface {
	Compare(other F) int
}

// Stats summarises one generation's scores
type Stats struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Failures int     `json:"failures"` // Evaluations scored at the floor after an error
}

// Record is the observable state after one generation has been evaluated
type Record[S any, F Comparable[F]] struct {
	Generation int `json:"generation"`

	Best       S `json:"best"`
	BestScore  F `json:"best_score"`
	WorstScore F `json:"worst_score"`

	BestEver           S   `json:"best_ever"`
	BestEverScore      F   `json:"best_ever_score"`
	BestEverGeneration int `json:"best_ever_generation"`

	Stats     Stats `json:"stats"`
	Survivors int   `json:"survivors"`

	// Improved is true when this generation replaced the best-ever solution
	Improved bool `json:"improved"`
}

// History accumulates records and maintains the running best across all generations
// Elitism is not assumed: a generation's best may be worse than an earlier one
type History[S any, F Comparable[F]] struct {
	records []Record[S, F]

	hasBest       bool
	bestEver      S
	bestEverScore F
	bestEverGen   int

	stagnant int
}

// NewHistory creates a history with capacity for the expected generation count
func NewHistory[S any, F Comparable[F]](capacity int) *History[S, F] {
	if capacity < 0 {
		capacity = 0
	}
	return &History[S, F]{records: make([]Record[S, F], 0, capacity)}
}

// Push records one generation and returns the completed record.
// The best-ever solution is replaced only on strict improvement, so ties keep the earliest.
func (h *History[S, F]) Push(generation int, best S, bestScore, worstScore F, stats Stats, survivors int) Record[S, F] {
	improved := !h.hasBest || bestScore.Compare(h.bestEverScore) > 0
	if improved {
		h.hasBest = true
		h.bestEver = best
		h.bestEverScore = bestScore
		h.bestEverGen = generation
		h.stagnant = 0
	} else {
		h.stagnant++
	}

	rec := Record[S, F]{
		Generation:         generation,
		Best:               best,
		BestScore:          bestScore,
		WorstScore:         worstScore,
		BestEver:           h.bestEver,
		BestEverScore:      h.bestEverScore,
		BestEverGeneration: h.bestEverGen,
		Stats:              stats,
		Survivors:          survivors,
		Improved:           improved,
	}
	h.records = append(h.records, rec)
	return rec
}

// BestEver returns the best solution recorded, ok is false before the first Push
func (h *History[S, F]) BestEver() (best S, score F, ok bool) {
	return h.bestEver, h.bestEverScore, h.hasBest
}

// Stagnation returns consecutive generations without best-ever improvement
func (h *History[S, F]) Stagnation() int {
	return h.stagnant
}

// Records returns a copy of all records in generation order
func (h *History[S, F]) Records() []Record[S, F] {
	out := make([]Record[S, F], len(h.records))
	copy(out, h.records)
	return out
}

// Last returns the most recent record
func (h *History[S, F]) Last() (Record[S, F], bool) {
	if len(h.records) == 0 {
		return Record[S, F]{}, false
	}
	return h.records[len(h.records)-1], true
}

func (h *History[S, F]) Len() int {
	return len(h.records)
}

// Reset clears all records and the running best
func (h *History[S, F]) Reset() {
	var zeroS S
	var zeroF F
	h.records = h.records[:0]
	h.hasBest = false
	h.bestEver = zeroS
	h.bestEverScore = zeroF
	h.bestEverGen = 0
	h.stagnant = 0
}
