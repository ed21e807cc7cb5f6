package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/maze-runner/genetic"
	"github.com/lixenwraith/maze-runner/genetic/fitness"
	"github.com/lixenwraith/maze-runner/genetic/tracking"
	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
)

// Record is one generation of a maze run
type Record = tracking.Record[Genome, fitness.Pair]

// Selection picks the parent selection operator
type Selection uint8

const (
	SelectTruncation Selection = iota
	SelectTournament
	SelectRoulette
)

func (s Selection) String() string {
	switch s {
	case SelectTruncation:
		return "truncation"
	case SelectTournament:
		return "tournament"
	case SelectRoulette:
		return "roulette"
	}
	return fmt.Sprintf("Selection(%d)", uint8(s))
}

func ParseSelection(s string) (Selection, error) {
	switch s {
	case "truncation", "top":
		return SelectTruncation, nil
	case "tournament":
		return SelectTournament, nil
	case "roulette":
		return SelectRoulette, nil
	}
	return 0, fmt.Errorf("unknown selection %q", s)
}

// Crossover picks the recombination operator
type Crossover uint8

const (
	// CrossoverUniform takes each gene from either parent ("scattered")
	CrossoverUniform Crossover = iota
	CrossoverOnePoint
	CrossoverTwoPoint
)

func (c Crossover) String() string {
	switch c {
	case CrossoverUniform:
		return "uniform"
	case CrossoverOnePoint:
		return "one-point"
	case CrossoverTwoPoint:
		return "two-point"
	}
	return fmt.Sprintf("Crossover(%d)", uint8(c))
}

func ParseCrossover(s string) (Crossover, error) {
	switch s {
	case "uniform", "scattered":
		return CrossoverUniform, nil
	case "one-point", "single":
		return CrossoverOnePoint, nil
	case "two-point":
		return CrossoverTwoPoint, nil
	}
	return 0, fmt.Errorf("unknown crossover %q", s)
}

type Config struct {
	Maze         maze.Config
	GenomeLength int
	Engine       genetic.EngineConfig
	Evaluator    EvaluatorConfig

	Selection      Selection
	TournamentSize int

	Crossover      Crossover
	CrossoverRate  float64
	MixProbability float64

	// StopAtGoal ends the run after the first generation whose best genome finishes on the goal
	StopAtGoal bool
}

// DefaultConfig is the 20x20 corner goal run: 100 genomes of 200 moves for 50 generations
func DefaultConfig() Config {
	cfg := Config{
		Maze:           maze.DefaultConfig(),
		GenomeLength:   parameter.GAGenomeLength,
		Engine:         genetic.DefaultConfig(),
		Evaluator:      DefaultEvaluatorConfig(),
		Selection:      SelectTruncation,
		TournamentSize: parameter.GATournamentSize,
		Crossover:      CrossoverUniform,
		CrossoverRate:  parameter.GACrossoverRate,
		MixProbability: parameter.GACrossoverMixProbability,
	}
	return cfg
}

// ReferenceConfig is the 15x15 centre goal run: 300 genomes of 130 moves, top 1% kept
func ReferenceConfig() Config {
	cfg := DefaultConfig()
	cfg.Maze = maze.ReferenceConfig()
	cfg.GenomeLength = parameter.GAReferenceGenomeLength
	cfg.Engine.PoolSize = parameter.GAReferencePoolSize
	cfg.Engine.SelectionFraction = parameter.GAReferenceSelectionFraction
	return cfg
}

func (c Config) Validate() error {
	if err := c.Maze.Validate(); err != nil {
		return err
	}
	if c.GenomeLength <= 0 {
		return fmt.Errorf("genome length must be positive, got %d", c.GenomeLength)
	}
	if c.Engine.PoolSize <= 0 {
		return fmt.Errorf("%w: pool size %d", genetic.ErrEmptyPopulation, c.Engine.PoolSize)
	}
	if c.Engine.MaxIterations <= 0 {
		return fmt.Errorf("generation count must be positive, got %d", c.Engine.MaxIterations)
	}
	if c.Evaluator.ParkBonus < 0 {
		return fmt.Errorf("park bonus must not be negative, got %d", c.Evaluator.ParkBonus)
	}
	for name, v := range map[string]float64{
		"crossover rate":        c.CrossoverRate,
		"mix probability":       c.MixProbability,
		"perturbation rate":     c.Engine.PerturbationRate,
		"perturbation strength": c.Engine.PerturbationStrength,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %g outside [0, 1]", name, v)
		}
	}
	return nil
}

// Report is the outcome of one experiment
type Report struct {
	Maze        maze.Result
	Best        Genome
	Fitness     fitness.Pair
	Assessment  Assessment
	Generations int
	Records     []Record
	Duration    time.Duration
}

// Experiment owns one maze and one engine configured for it
type Experiment struct {
	cfg       Config
	maze      maze.Result
	evaluator *Evaluator
	engine    *genetic.Engine[Genome, fitness.Pair]
}

// NewExperiment generates the maze and builds the engine; nothing runs until Run
func NewExperiment(cfg Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result, err := maze.Generate(cfg.Maze)
	if err != nil {
		return nil, fmt.Errorf("generate maze: %w", err)
	}

	evalCfg := cfg.Evaluator
	evalCfg.GenomeLength = cfg.GenomeLength
	evaluator := NewEvaluator(result.Grid, result.Start, result.Goal, evalCfg)

	engine := genetic.NewEngine[Genome, fitness.Pair](
		evaluator.Evaluate,
		NewInitializer(cfg.GenomeLength).Generate,
		newSelector(cfg),
		newCombiner(cfg),
		NewPerturbator(),
		cfg.Engine,
	)
	engine.SetFloor(evaluator.Floor())

	x := &Experiment{
		cfg:       cfg,
		maze:      result,
		evaluator: evaluator,
		engine:    engine,
	}
	if cfg.StopAtGoal {
		engine.SetTerminator(x.goalReached)
	}
	return x, nil
}

func newSelector(cfg Config) genetic.Selector[Genome, fitness.Pair] {
	switch cfg.Selection {
	case SelectTournament:
		return &genetic.TournamentSelector[Genome, fitness.Pair]{TournamentSize: cfg.TournamentSize}
	case SelectRoulette:
		return genetic.RouletteSelector[Genome, fitness.Pair]{}
	default:
		return genetic.TruncationSelector[Genome, fitness.Pair]{}
	}
}

func newCombiner(cfg Config) genetic.Combiner[Genome, fitness.Pair] {
	var inner genetic.Combiner[Genome, fitness.Pair]
	switch cfg.Crossover {
	case CrossoverOnePoint:
		inner = &genetic.NPointCombiner[Genome, maze.Move, fitness.Pair]{Points: 1}
	case CrossoverTwoPoint:
		inner = &genetic.NPointCombiner[Genome, maze.Move, fitness.Pair]{Points: 2}
	default:
		inner = &genetic.UniformCombiner[Genome, maze.Move, fitness.Pair]{MixProbability: cfg.MixProbability}
	}
	return &genetic.RateCombiner[Genome, maze.Move, fitness.Pair]{Inner: inner, Rate: cfg.CrossoverRate}
}

// goalReached replays the generation best and reports whether it ends on the goal
func (x *Experiment) goalReached(pool *genetic.Pool[Genome, fitness.Pair], _ int) bool {
	if len(pool.Members) == 0 {
		return false
	}
	best := pool.Members[0]
	for _, c := range pool.Members[1:] {
		if c.Score.Compare(best.Score) > 0 {
			best = c
		}
	}
	a, err := x.evaluator.Assess(best.Data)
	return err == nil && a.AtGoal
}

func (x *Experiment) Config() Config {
	return x.cfg
}

// Maze returns the generated maze, shared read-only by every evaluation
func (x *Experiment) Maze() maze.Result {
	return x.maze
}

func (x *Experiment) Evaluator() *Evaluator {
	return x.evaluator
}

// Observe registers a per-generation callback, called on the goroutine running Run
func (x *Experiment) Observe(fn genetic.ObserverFunc[Genome, fitness.Pair]) {
	x.engine.SetObserver(fn)
}

func (x *Experiment) State() genetic.State {
	return x.engine.State()
}

// Run evolves until a stopping condition holds.
// On cancellation the report covers the generations completed so far and the context error is returned.
func (x *Experiment) Run(ctx context.Context) (Report, error) {
	started := time.Now()
	_, runErr := x.engine.Run(ctx)

	report := Report{
		Maze:     x.maze,
		Records:  x.engine.History(),
		Duration: time.Since(started),
	}
	report.Generations = len(report.Records)

	best, err := x.engine.Best()
	if err != nil {
		if runErr != nil {
			return report, runErr
		}
		return report, err
	}

	report.Best = best.Data
	report.Fitness = best.Score
	if a, err := x.evaluator.Assess(best.Data); err == nil {
		report.Assessment = a
	}
	return report, runErr
}

// Run builds and runs one experiment
func Run(ctx context.Context, cfg Config) (Report, error) {
	x, err := NewExperiment(cfg)
	if err != nil {
		return Report{}, err
	}
	return x.Run(ctx)
}
