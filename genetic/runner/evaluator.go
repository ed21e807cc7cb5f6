// Package runner wires the maze domain into the genetic engine: genome encoding, fitness and experiments
package runner

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/genetic/fitness"
	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/navigation"
	"github.com/lixenwraith/maze-runner/parameter"
)

// ErrGenomeLengthMismatch is returned for genomes whose length differs from the configured length
var ErrGenomeLengthMismatch = errors.New("genome length mismatch")

// Mode selects the fitness shape
type Mode uint8

const (
	// ModePair scores (smartness, -distance)
	ModePair Mode = iota
	// ModeScalar scores smartness plus the goal bonus, secondary is always zero
	ModeScalar
)

func (m Mode) String() string {
	switch m {
	case ModePair:
		return "pair"
	case ModeScalar:
		return "scalar"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "pair", "tuple":
		return ModePair, nil
	case "scalar":
		return ModeScalar, nil
	}
	return 0, fmt.Errorf("unknown fitness mode %q", s)
}

// Priority orders the pair components
type Priority uint8

const (
	PrioritySmartness Priority = iota
	PriorityDistance
)

func (p Priority) String() string {
	switch p {
	case PrioritySmartness:
		return "smartness"
	case PriorityDistance:
		return "distance"
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "smartness":
		return PrioritySmartness, nil
	case "distance":
		return PriorityDistance, nil
	}
	return 0, fmt.Errorf("unknown fitness priority %q", s)
}

// Metric selects how distance to the goal is measured
type Metric uint8

const (
	// MetricPath is the BFS hop count through open cells
	MetricPath Metric = iota
	// MetricManhattan ignores walls
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricPath:
		return "path"
	case MetricManhattan:
		return "manhattan"
	}
	return fmt.Sprintf("Metric(%d)", uint8(m))
}

func ParseMetric(s string) (Metric, error) {
	switch s {
	case "path", "bfs":
		return MetricPath, nil
	case "manhattan":
		return MetricManhattan, nil
	}
	return 0, fmt.Errorf("unknown distance metric %q", s)
}

type EvaluatorConfig struct {
	Mode     Mode
	Priority Priority
	Metric   Metric
	Halt     agent.HaltPolicy

	// PenaltyWeight is subtracted per invalid move
	PenaltyWeight int
	// GoalBonus is added in scalar mode when the final position is the goal
	GoalBonus int
	// ParkBonus is added per idle move under HaltAtGoal
	ParkBonus int

	// GenomeLength is the required genome length, 0 accepts any
	GenomeLength int
}

func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		Mode:          ModePair,
		Priority:      PrioritySmartness,
		Metric:        MetricPath,
		Halt:          agent.ContinueAtGoal,
		PenaltyWeight: parameter.FitnessPenaltyWeight,
		GoalBonus:     parameter.FitnessGoalBonus,
		ParkBonus:     parameter.FitnessParkBonus,
		GenomeLength:  parameter.GAGenomeLength,
	}
}

// Assessment is the full breakdown behind one fitness value
type Assessment struct {
	Outcome   agent.Outcome
	Smartness int
	// Distance is the final position's distance to the goal, the sentinel when unreachable
	Distance  int
	Reachable bool
	AtGoal    bool
	Fitness   fitness.Pair
}

// Evaluator scores genomes against one maze.
// The distance field is computed once from the goal and only read afterwards, so one evaluator serves
// every worker of a generation.
type Evaluator struct {
	cfg      EvaluatorConfig
	sim      agent.Simulator
	start    maze.Point
	field    *navigation.DistanceField
	sentinel int
}

func NewEvaluator(grid *maze.Grid, start, goal maze.Point, cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{
		cfg:      cfg,
		sim:      agent.Simulator{Grid: grid, Goal: goal, Policy: cfg.Halt},
		start:    start,
		field:    navigation.NewDistanceField(grid, goal),
		sentinel: navigation.Unreachable(grid),
	}
}

func (e *Evaluator) Config() EvaluatorConfig {
	return e.cfg
}

// Sentinel is the distance reported when the goal cannot be reached
func (e *Evaluator) Sentinel() int {
	return e.sentinel
}

// Evaluate returns the fitness of genome, implements the engine's evaluator signature
func (e *Evaluator) Evaluate(genome Genome) (fitness.Pair, error) {
	a, err := e.Assess(genome)
	if err != nil {
		return fitness.Pair{}, err
	}
	return a.Fitness, nil
}

// Assess replays genome and returns the fitness with its components
func (e *Evaluator) Assess(genome Genome) (Assessment, error) {
	if e.cfg.GenomeLength > 0 && len(genome) != e.cfg.GenomeLength {
		return Assessment{}, fmt.Errorf("%w: got %d moves, want %d", ErrGenomeLengthMismatch, len(genome), e.cfg.GenomeLength)
	}

	out := e.sim.Run(genome, e.start)
	a := Assessment{
		Outcome:   out,
		Smartness: out.Valid - out.Invalid*e.cfg.PenaltyWeight + out.Idle*e.cfg.ParkBonus,
		AtGoal:    out.Final == e.sim.Goal,
	}

	switch e.cfg.Metric {
	case MetricManhattan:
		a.Distance = navigation.ManhattanDistance(out.Final, e.sim.Goal)
		a.Reachable = true
	default:
		a.Distance, a.Reachable = e.field.Distance(out.Final)
		if !a.Reachable {
			a.Distance = e.sentinel
		}
	}

	switch {
	case e.cfg.Mode == ModeScalar:
		score := a.Smartness
		if a.AtGoal {
			score += e.cfg.GoalBonus
		}
		a.Fitness = fitness.Pair{Primary: score}
	case e.cfg.Priority == PriorityDistance:
		a.Fitness = fitness.Pair{Primary: -a.Distance, Secondary: a.Smartness}
	default:
		a.Fitness = fitness.Pair{Primary: a.Smartness, Secondary: -a.Distance}
	}
	return a, nil
}

// Floor is a fitness strictly below anything Assess can return for a configured-length genome
func (e *Evaluator) Floor() fitness.Pair {
	length := max(e.cfg.GenomeLength, 1)
	// A negative park bonus can cost up to one bonus per move
	worstSmartness := -length*max(e.cfg.PenaltyWeight, 1) + length*min(e.cfg.ParkBonus, 0) - 1
	worstDistance := -e.sentinel - 1

	switch {
	case e.cfg.Mode == ModeScalar:
		return fitness.Pair{Primary: worstSmartness}
	case e.cfg.Priority == PriorityDistance:
		return fitness.Pair{Primary: worstDistance, Secondary: worstSmartness}
	default:
		return fitness.Pair{Primary: worstSmartness, Secondary: worstDistance}
	}
}

// Evaluate scores genome with default settings and no length check
func Evaluate(grid *maze.Grid, genome Genome, start, goal maze.Point) fitness.Pair {
	cfg := DefaultEvaluatorConfig()
	cfg.GenomeLength = 0
	f, _ := NewEvaluator(grid, start, goal, cfg).Evaluate(genome)
	return f
}
