package genetic

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/maze-runner/genetic/fitness"
	"github.com/lixenwraith/maze-runner/genetic/tracking"
	"github.com/lixenwraith/maze-runner/parameter"
)

// ErrEvaluationPanic wraps a panic recovered from an evaluator call
var ErrEvaluationPanic = errors.New("evaluator panicked")

// State is the engine's position in the generation cycle
type State int32

const (
	StateInitialized State = iota
	StateEvaluating
	StateSelecting
	StateBreeding
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateEvaluating:
		return "evaluating"
	case StateSelecting:
		return "selecting"
	case StateBreeding:
		return "breeding"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// --- Algorithm Engine ---

// Engine runs the generation cycle: evaluate, record, select, breed.
// Evaluation runs in parallel; everything that consumes randomness runs on the engine goroutine.
type Engine[S Solution, F Fitness[F]] struct {
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]
	terminator  TerminationFunc[S, F]
	observer    ObserverFunc[S, F]

	config EngineConfig
	floor  F

	// Population sampling and breeding draw from separate streams
	rng      *rand.Rand
	breedRng *rand.Rand

	state       atomic.Int32
	currentPool *Pool[S, F]
	history     *tracking.History[S, F]
	best        Candidate[S, F]
	hasBest     bool
	clampWarned bool

	semaphore chan struct{}
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates in every generation
	PoolSize int
	// SelectionFraction is the share of the pool kept as parents, rounded up and clamped to [1, PoolSize]
	SelectionFraction float64
	// EliteCount is the number of best candidates carried over unchanged
	EliteCount int
	// PerturbationRate is the probability that an offspring is perturbed at all (0-1)
	PerturbationRate float64
	// PerturbationStrength is the per-gene perturbation probability (0-1)
	PerturbationStrength float64
	// MaxIterations is the number of generations evaluated
	MaxIterations int
	// Patience stops the run after this many generations without best-ever improvement (0 = off)
	Patience int
	// Parallelism bounds concurrent evaluations (0 = GOMAXPROCS)
	Parallelism int
	// Seed drives population sampling (0 for random seed)
	Seed uint64
	// BreedSeed drives parent draws, crossover and perturbation (0 for random seed)
	BreedSeed uint64
	// Strict aborts the run on the first evaluator error instead of scoring at the floor
	Strict bool
}

// DefaultConfig returns the batch driver defaults
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:             parameter.GAPoolSize,
		SelectionFraction:    parameter.GASelectionFraction,
		EliteCount:           parameter.GAEliteCount,
		PerturbationRate:     parameter.GAPerturbationRate,
		PerturbationStrength: parameter.GAPerturbationStrength,
		MaxIterations:        parameter.GAMaxIterations,
		Patience:             parameter.GAPatience,
		Parallelism:          parameter.GAParallelism,
		Seed:                 parameter.GAPopulationSeed,
		BreedSeed:            parameter.GABreedSeed,
	}
}

// NewEngine creates an engine with the specified operators, perturbator may be nil
func NewEngine[S Solution, F Fitness[F]](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) *Engine[S, F] {
	if config.Parallelism <= 0 {
		config.Parallelism = runtime.GOMAXPROCS(0)
	}
	if config.MaxIterations < 1 {
		config.MaxIterations = 1
	}
	if config.EliteCount < 0 {
		config.EliteCount = 0
	}

	e := &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		history:     tracking.NewHistory[S, F](config.MaxIterations),
		semaphore:   make(chan struct{}, config.Parallelism),
	}
	e.seed()
	return e
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func (e *Engine[S, F]) seed() {
	e.rng = newRand(e.config.Seed)
	e.breedRng = newRand(e.config.BreedSeed)
}

// SetTerminator sets a custom termination condition, checked after each evaluation
func (e *Engine[S, F]) SetTerminator(terminator TerminationFunc[S, F]) {
	e.terminator = terminator
}

// SetObserver registers a callback receiving every generation record
func (e *Engine[S, F]) SetObserver(observer ObserverFunc[S, F]) {
	e.observer = observer
}

// SetFloor sets the score assigned to candidates whose evaluation failed
func (e *Engine[S, F]) SetFloor(floor F) {
	e.floor = floor
}

// Config returns the normalized configuration
func (e *Engine[S, F]) Config() EngineConfig {
	return e.config
}

// State returns the current phase, safe to call from any goroutine
func (e *Engine[S, F]) State() State {
	return State(e.state.Load())
}

func (e *Engine[S, F]) setState(s State) {
	e.state.Store(int32(s))
}

// Run executes generations until a termination condition holds.
// Each call restarts from a fresh population with the configured seeds.
func (e *Engine[S, F]) Run(ctx context.Context) (*Pool[S, F], error) {
	if e.config.PoolSize <= 0 {
		return nil, ErrEmptyPopulation
	}
	defer e.setState(StateTerminated)

	e.setState(StateInitialized)
	e.seed()
	e.history.Reset()
	e.hasBest = false
	e.clampWarned = false
	e.initializePool()

	for iteration := 0; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return e.currentPool, err
		}

		e.setState(StateEvaluating)
		if err := e.evaluatePool(); err != nil {
			return e.currentPool, err
		}

		survivors := e.survivorCount()
		rec := e.record(survivors)
		if e.observer != nil {
			e.observer(rec)
		}

		if e.shouldStop(iteration) {
			return e.currentPool, nil
		}

		e.setState(StateSelecting)
		parents := e.selector.Select(e.currentPool, survivors, e.breedRng)
		if len(parents) == 0 {
			return e.currentPool, fmt.Errorf("generation %d: %w", iteration, ErrEmptySelection)
		}

		e.setState(StateBreeding)
		if err := e.breed(parents); err != nil {
			return e.currentPool, err
		}
	}
}

// initializePool samples the first generation sequentially from the population RNG
func (e *Engine[S, F]) initializePool() {
	candidates := make([]Candidate[S, F], e.config.PoolSize)
	for i := range candidates {
		candidates[i] = Candidate[S, F]{Data: e.initializer(e.rng), Index: i}
	}
	e.currentPool = &Pool[S, F]{Members: candidates}
}

// evaluatePool scores every member in parallel, each worker writing only its own slot
func (e *Engine[S, F]) evaluatePool() error {
	members := e.currentPool.Members
	errs := make([]error, len(members))

	var wg sync.WaitGroup
	for i := range members {
		wg.Add(1)
		e.semaphore <- struct{}{} // Acquire semaphore

		go func(idx int) {
			defer wg.Done()
			defer func() { <-e.semaphore }() // Release semaphore
			defer func() {
				if r := recover(); r != nil {
					errs[idx] = fmt.Errorf("%w: %v", ErrEvaluationPanic, r)
				}
			}()

			score, err := e.evaluator(members[idx].Data)
			if err != nil {
				errs[idx] = err
				return
			}
			members[idx].Score = score
		}(i)
	}
	wg.Wait()

	failures := 0
	var first error
	for i, err := range errs {
		members[i].Err = err
		if err == nil {
			continue
		}
		if e.config.Strict {
			return fmt.Errorf("generation %d candidate %d: %w", e.currentPool.Generation, i, err)
		}
		if first == nil {
			first = fmt.Errorf("candidate %d: %w", i, err)
		}
		members[i].Score = e.floor
		failures++
	}
	if failures > 0 {
		log.Printf("genetic: generation %d: %d evaluation(s) failed and were scored at the floor, first: %v",
			e.currentPool.Generation, failures, first)
	}

	e.currentPool.Stats = calculateStats(members, failures)
	return nil
}

func (e *Engine[S, F]) survivorCount() int {
	k, err := SurvivorCount(len(e.currentPool.Members), e.config.SelectionFraction)
	if err != nil && !e.clampWarned {
		log.Printf("genetic: warning: %v", err)
		e.clampWarned = true
	}
	return k
}

// record folds the evaluated pool into the history, updating the best-ever candidate
func (e *Engine[S, F]) record(survivors int) tracking.Record[S, F] {
	pool := e.currentPool

	best := pool.Members[0]
	for _, c := range pool.Members[1:] {
		if c.Score.Compare(best.Score) > 0 {
			best = c
		}
	}

	rec := e.history.Push(pool.Generation, best.Data, best.Score, pool.Stats.Worst,
		tracking.Stats{
			Mean:     pool.Stats.Mean,
			StdDev:   pool.Stats.StdDev,
			Failures: pool.Stats.Failures,
		}, survivors)

	if rec.Improved {
		e.best = best
		e.hasBest = true
	}
	return rec
}

func (e *Engine[S, F]) shouldStop(iteration int) bool {
	if iteration+1 >= e.config.MaxIterations {
		return true
	}
	if e.config.Patience > 0 && e.history.Stagnation() >= e.config.Patience {
		return true
	}
	return e.terminator != nil && e.terminator(e.currentPool, iteration)
}

// breed replaces the current pool with elites plus offspring of the selected parents
func (e *Engine[S, F]) breed(parents []Candidate[S, F]) error {
	size := e.config.PoolSize
	next := make([]Candidate[S, F], 0, size)

	if e.config.EliteCount > 0 {
		ranked := Rank(e.currentPool.Members)
		for _, idx := range ranked[:min(e.config.EliteCount, len(ranked), size)] {
			next = append(next, Candidate[S, F]{Data: e.currentPool.Members[idx].Data})
		}
	}

	for len(next) < size {
		pair := []Candidate[S, F]{
			parents[e.breedRng.IntN(len(parents))],
			parents[e.breedRng.IntN(len(parents))],
		}

		offspring := e.combiner.Combine(pair, e.breedRng)
		if len(offspring) == 0 {
			return fmt.Errorf("generation %d: combiner produced no offspring", e.currentPool.Generation)
		}

		for i := range offspring {
			if len(next) >= size {
				break
			}
			if e.perturbator != nil && e.breedRng.Float64() < e.config.PerturbationRate {
				e.perturbator.Perturb(&offspring[i], e.config.PerturbationStrength, e.breedRng)
			}
			next = append(next, Candidate[S, F]{Data: offspring[i]})
		}
	}

	for i := range next {
		next[i].Index = i
	}

	e.currentPool = &Pool[S, F]{
		Members:    next,
		Generation: e.currentPool.Generation + 1,
	}
	return nil
}

// calculateStats computes best and worst over every member and the spread of the float projection
// over successful evaluations only, floor-scored failures are reported through Failures
func calculateStats[S Solution, F Fitness[F]](candidates []Candidate[S, F], failures int) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		Best:     candidates[0].Score,
		Worst:    candidates[0].Score,
		Failures: failures,
	}

	values := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		stats.Best = fitness.Max(stats.Best, c.Score)
		stats.Worst = fitness.Min(stats.Worst, c.Score)
		if c.Err == nil {
			values = append(values, c.Score.Float())
		}
	}

	switch len(values) {
	case 0:
	case 1:
		stats.Mean = values[0]
	default:
		stats.Mean, stats.StdDev = stat.MeanStdDev(values, nil)
	}
	return stats
}

// Pool returns the most recent pool
func (e *Engine[S, F]) Pool() *Pool[S, F] {
	return e.currentPool
}

// History returns one record per evaluated generation
func (e *Engine[S, F]) History() []tracking.Record[S, F] {
	return e.history.Records()
}

// Best returns the best candidate found in any generation; ties keep the earliest
func (e *Engine[S, F]) Best() (Candidate[S, F], error) {
	if !e.hasBest {
		return Candidate[S, F]{}, ErrEmptyPopulation
	}
	return e.best, nil
}
