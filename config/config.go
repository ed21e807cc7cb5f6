// Package config loads batch run settings from INI files
package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/genetic/runner"
	"github.com/lixenwraith/maze-runner/maze"
)

// File mirrors the INI layout, one struct per section
type File struct {
	Maze      MazeSection
	Evolution EvolutionSection
	Fitness   FitnessSection
	Output    OutputSection
}

type MazeSection struct {
	Rows int    `ini:"rows"`
	Cols int    `ini:"cols"`
	Seed uint64 `ini:"seed"`
	Goal string `ini:"goal"` // center, corner or "x,y"
}

type EvolutionSection struct {
	PoolSize          int     `ini:"pop_size"`
	GenomeLength      int     `ini:"genome_length"`
	Generations       int     `ini:"generations"`
	SelectionFraction float64 `ini:"top_n"`
	Selection         string  `ini:"selection"` // truncation, tournament, roulette
	TournamentSize    int     `ini:"tournament_size"`
	EliteCount        int     `ini:"elitism"`
	Crossover         string  `ini:"crossover"` // uniform, one-point, two-point
	CrossoverRate     float64 `ini:"crossover_rate"`
	MixProbability    float64 `ini:"mix_probability"`
	MutationChance    float64 `ini:"mutation_chance"` // Probability an offspring is mutated
	MutationRate      float64 `ini:"mutation_rate"`   // Per-gene replacement probability
	Patience          int     `ini:"patience"`
	Workers           int     `ini:"workers"`
	Seed              uint64  `ini:"seed"`
	BreedSeed         uint64  `ini:"breed_seed"`
	StopAtGoal        bool    `ini:"stop_at_goal"`
	Strict            bool    `ini:"strict"`
}

type FitnessSection struct {
	Mode          string `ini:"mode"`     // pair, scalar
	Priority      string `ini:"priority"` // smartness, distance
	Metric        string `ini:"metric"`   // path, manhattan
	HaltAtGoal    bool   `ini:"halt_at_goal"`
	PenaltyWeight int    `ini:"penalty_weight"`
	GoalBonus     int    `ini:"goal_bonus"`
	ParkBonus     int    `ini:"park_bonus"`
}

type OutputSection struct {
	Store string `ini:"store"` // memory, sqlite
	DB    string `ini:"db"`
	Plot  string `ini:"plot"`
	Watch string `ini:"watch"`
	Log   string `ini:"log"`
	Quiet bool   `ini:"quiet"`
}

// Defaults returns a File holding the default experiment settings
func Defaults() *File {
	return FromRunner(runner.DefaultConfig())
}

// FromRunner expresses cfg in file form
func FromRunner(cfg runner.Config) *File {
	goal := cfg.Maze.Placement.String()
	if cfg.Maze.Goal != nil {
		goal = fmt.Sprintf("%d,%d", cfg.Maze.Goal.X, cfg.Maze.Goal.Y)
	}

	return &File{
		Maze: MazeSection{
			Rows: cfg.Maze.Rows,
			Cols: cfg.Maze.Cols,
			Seed: cfg.Maze.Seed,
			Goal: goal,
		},
		Evolution: EvolutionSection{
			PoolSize:          cfg.Engine.PoolSize,
			GenomeLength:      cfg.GenomeLength,
			Generations:       cfg.Engine.MaxIterations,
			SelectionFraction: cfg.Engine.SelectionFraction,
			Selection:         cfg.Selection.String(),
			TournamentSize:    cfg.TournamentSize,
			EliteCount:        cfg.Engine.EliteCount,
			Crossover:         cfg.Crossover.String(),
			CrossoverRate:     cfg.CrossoverRate,
			MixProbability:    cfg.MixProbability,
			MutationChance:    cfg.Engine.PerturbationRate,
			MutationRate:      cfg.Engine.PerturbationStrength,
			Patience:          cfg.Engine.Patience,
			Workers:           cfg.Engine.Parallelism,
			Seed:              cfg.Engine.Seed,
			BreedSeed:         cfg.Engine.BreedSeed,
			StopAtGoal:        cfg.StopAtGoal,
			Strict:            cfg.Engine.Strict,
		},
		Fitness: FitnessSection{
			Mode:          cfg.Evaluator.Mode.String(),
			Priority:      cfg.Evaluator.Priority.String(),
			Metric:        cfg.Evaluator.Metric.String(),
			HaltAtGoal:    cfg.Evaluator.Halt == agent.HaltAtGoal,
			PenaltyWeight: cfg.Evaluator.PenaltyWeight,
			GoalBonus:     cfg.Evaluator.GoalBonus,
			ParkBonus:     cfg.Evaluator.ParkBonus,
		},
		Output: OutputSection{
			Store: "memory",
		},
	}
}

// Load reads an INI file over the defaults; keys absent from the file keep their default
func Load(path string) (*File, error) {
	return load(Defaults(), path)
}

// LoadBytes is Load for in-memory sources
func LoadBytes(data []byte) (*File, error) {
	return load(Defaults(), data)
}

func load(f *File, source any) (*File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
		Insensitive:                 true,
	}, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	sections := []struct {
		name string
		dst  any
	}{
		{"maze", &f.Maze},
		{"evolution", &f.Evolution},
		{"fitness", &f.Fitness},
		{"output", &f.Output},
	}
	for _, s := range sections {
		if err := cfg.Section(s.name).MapTo(s.dst); err != nil {
			return nil, fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}

	f.Maze.Goal = cleanIniString(f.Maze.Goal)
	f.Evolution.Selection = cleanIniString(f.Evolution.Selection)
	f.Evolution.Crossover = cleanIniString(f.Evolution.Crossover)
	f.Fitness.Mode = cleanIniString(f.Fitness.Mode)
	f.Fitness.Priority = cleanIniString(f.Fitness.Priority)
	f.Fitness.Metric = cleanIniString(f.Fitness.Metric)
	f.Output.Store = cleanIniString(f.Output.Store)

	return f, nil
}

// WriteTo renders the file in the layout Load reads
func (f *File) WriteTo(w io.Writer) (int64, error) {
	cfg := ini.Empty()
	sections := []struct {
		name string
		src  any
	}{
		{"maze", &f.Maze},
		{"evolution", &f.Evolution},
		{"fitness", &f.Fitness},
		{"output", &f.Output},
	}
	for _, s := range sections {
		sec, err := cfg.NewSection(s.name)
		if err != nil {
			return 0, err
		}
		if err := sec.ReflectFrom(s.src); err != nil {
			return 0, fmt.Errorf("failed to reflect [%s] section: %w", s.name, err)
		}
	}
	return cfg.WriteTo(w)
}

// Runner converts the file into an experiment configuration
func (f *File) Runner() (runner.Config, error) {
	cfg := runner.DefaultConfig()

	cfg.Maze.Rows = f.Maze.Rows
	cfg.Maze.Cols = f.Maze.Cols
	cfg.Maze.Seed = f.Maze.Seed
	if err := applyGoal(&cfg.Maze, f.Maze.Goal); err != nil {
		return cfg, err
	}

	ev := f.Evolution
	cfg.GenomeLength = ev.GenomeLength
	cfg.Engine.PoolSize = ev.PoolSize
	cfg.Engine.MaxIterations = ev.Generations
	cfg.Engine.SelectionFraction = ev.SelectionFraction
	cfg.Engine.EliteCount = ev.EliteCount
	cfg.Engine.PerturbationRate = ev.MutationChance
	cfg.Engine.PerturbationStrength = ev.MutationRate
	cfg.Engine.Patience = ev.Patience
	cfg.Engine.Parallelism = ev.Workers
	cfg.Engine.Seed = ev.Seed
	cfg.Engine.BreedSeed = ev.BreedSeed
	cfg.Engine.Strict = ev.Strict
	cfg.TournamentSize = ev.TournamentSize
	cfg.CrossoverRate = ev.CrossoverRate
	cfg.MixProbability = ev.MixProbability
	cfg.StopAtGoal = ev.StopAtGoal

	var err error
	if cfg.Selection, err = runner.ParseSelection(ev.Selection); err != nil {
		return cfg, err
	}
	if cfg.Crossover, err = runner.ParseCrossover(ev.Crossover); err != nil {
		return cfg, err
	}

	fit := f.Fitness
	if cfg.Evaluator.Mode, err = runner.ParseMode(fit.Mode); err != nil {
		return cfg, err
	}
	if cfg.Evaluator.Priority, err = runner.ParsePriority(fit.Priority); err != nil {
		return cfg, err
	}
	if cfg.Evaluator.Metric, err = runner.ParseMetric(fit.Metric); err != nil {
		return cfg, err
	}
	cfg.Evaluator.Halt = agent.ContinueAtGoal
	if fit.HaltAtGoal {
		cfg.Evaluator.Halt = agent.HaltAtGoal
	}
	cfg.Evaluator.PenaltyWeight = fit.PenaltyWeight
	cfg.Evaluator.GoalBonus = fit.GoalBonus
	cfg.Evaluator.ParkBonus = fit.ParkBonus

	return cfg, cfg.Validate()
}

// applyGoal accepts a placement name or an explicit "x,y" cell
func applyGoal(mc *maze.Config, goal string) error {
	if goal == "" {
		return nil
	}
	if x, y, ok := strings.Cut(goal, ","); ok {
		gx, errX := strconv.Atoi(strings.TrimSpace(x))
		gy, errY := strconv.Atoi(strings.TrimSpace(y))
		if errX != nil || errY != nil {
			return fmt.Errorf("invalid goal cell %q", goal)
		}
		mc.Goal = &maze.Point{X: gx, Y: gy}
		return nil
	}

	placement, err := maze.ParseGoalPlacement(goal)
	if err != nil {
		return err
	}
	mc.Placement = placement
	mc.Goal = nil
	return nil
}

// cleanIniString trims whitespace and surrounding quotes
func cleanIniString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.ToLower(s)
}
