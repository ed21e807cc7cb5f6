package main

import (
	"flag"
	"io"

	"github.com/lixenwraith/maze-runner/config"
)

// Flags bind straight into a config.File, so parsing after the file is loaded leaves only
// explicitly set flags overriding it

func mazeFlags(fs *flag.FlagSet, f *config.File) {
	fs.IntVar(&f.Maze.Rows, "rows", f.Maze.Rows, "maze rows")
	fs.IntVar(&f.Maze.Cols, "cols", f.Maze.Cols, "maze columns")
	fs.StringVar(&f.Maze.Goal, "goal", f.Maze.Goal, "goal cell: center, corner or x,y")
	fs.Uint64Var(&f.Maze.Seed, "maze-seed", f.Maze.Seed, "maze carving seed")
}

func evolutionFlags(fs *flag.FlagSet, f *config.File) {
	ev := &f.Evolution
	fs.IntVar(&ev.PoolSize, "pop", ev.PoolSize, "population size")
	fs.IntVar(&ev.GenomeLength, "len", ev.GenomeLength, "genome length in moves")
	fs.IntVar(&ev.Generations, "gens", ev.Generations, "maximum generations")
	fs.Float64Var(&ev.SelectionFraction, "top", ev.SelectionFraction, "fraction of the population kept as parents")
	fs.StringVar(&ev.Selection, "selection", ev.Selection, "selection: truncation, tournament, roulette")
	fs.IntVar(&ev.TournamentSize, "tournament", ev.TournamentSize, "tournament size")
	fs.IntVar(&ev.EliteCount, "elite", ev.EliteCount, "best genomes copied unchanged into the next generation")
	fs.Float64Var(&ev.CrossoverRate, "crossover", ev.CrossoverRate, "probability a parent pair is crossed")
	fs.StringVar(&ev.Crossover, "crossover-style", ev.Crossover, "crossover: uniform, one-point, two-point")
	fs.Float64Var(&ev.MixProbability, "mix", ev.MixProbability, "uniform crossover gene swap probability")
	fs.Float64Var(&ev.MutationChance, "mutation", ev.MutationChance, "probability an offspring is mutated")
	fs.Float64Var(&ev.MutationRate, "mutation-rate", ev.MutationRate, "per-move replacement probability of a mutated offspring")
	fs.IntVar(&ev.Patience, "patience", ev.Patience, "stop after this many generations without improvement (0 = off)")
	fs.IntVar(&ev.Workers, "workers", ev.Workers, "parallel evaluations (0 = GOMAXPROCS)")
	fs.Uint64Var(&ev.Seed, "seed", ev.Seed, "population seed (0 = random)")
	fs.Uint64Var(&ev.BreedSeed, "breed-seed", ev.BreedSeed, "breeding seed (0 = random)")
	fs.BoolVar(&ev.StopAtGoal, "stop-at-goal", ev.StopAtGoal, "stop once a generation's best finishes on the goal")
	fs.BoolVar(&ev.Strict, "strict", ev.Strict, "abort on the first evaluation error")
}

func fitnessFlags(fs *flag.FlagSet, f *config.File) {
	fit := &f.Fitness
	fs.StringVar(&fit.Mode, "mode", fit.Mode, "fitness: pair or scalar")
	fs.StringVar(&fit.Priority, "priority", fit.Priority, "pair order: smartness or distance")
	fs.StringVar(&fit.Metric, "metric", fit.Metric, "distance metric: path or manhattan")
	fs.BoolVar(&fit.HaltAtGoal, "halt", fit.HaltAtGoal, "park the agent once it reaches the goal")
	fs.IntVar(&fit.PenaltyWeight, "penalty", fit.PenaltyWeight, "smartness cost of a wall bump")
	fs.IntVar(&fit.GoalBonus, "goal-bonus", fit.GoalBonus, "scalar mode bonus for finishing on the goal")
	fs.IntVar(&fit.ParkBonus, "park-bonus", fit.ParkBonus, "smartness per move parked on the goal")
}

func outputFlags(fs *flag.FlagSet, f *config.File) {
	out := &f.Output
	fs.StringVar(&out.Store, "store", out.Store, "run ledger: memory or sqlite")
	fs.StringVar(&out.DB, "db", out.DB, "sqlite ledger path")
	fs.StringVar(&out.Plot, "plot", out.Plot, "write a progress chart to this file")
	fs.StringVar(&out.Watch, "watch", out.Watch, "serve the websocket progress feed on this address")
	fs.StringVar(&out.Log, "log", out.Log, "log file (default stderr)")
	fs.BoolVar(&out.Quiet, "quiet", out.Quiet, "suppress logs and per-generation progress")
}

// parseWithConfig parses args twice: once to find -config, then over the loaded file
func parseWithConfig(name string, args []string, stderr io.Writer, bind ...func(*flag.FlagSet, *config.File)) (*flag.FlagSet, *config.File, error) {
	build := func(f *config.File, path *string) *flag.FlagSet {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.StringVar(path, "config", *path, "INI configuration file")
		for _, b := range bind {
			b(fs, f)
		}
		return fs
	}

	var path string
	probe := build(config.Defaults(), &path)
	probe.SetOutput(io.Discard)
	if probeErr := probe.Parse(args); probeErr != nil {
		// Report through the real flag set so usage shows once
		if err := build(config.Defaults(), &path).Parse(args); err != nil {
			return nil, nil, err
		}
		return nil, nil, probeErr
	}

	file := config.Defaults()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		file = loaded
	}

	fs := build(file, &path)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fs, file, nil
}
