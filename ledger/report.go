package ledger

import (
	"time"

	"github.com/lixenwraith/maze-runner/genetic/runner"
)

// FromReport flattens an experiment report into ledger rows
func FromReport(id string, cfg runner.Config, report runner.Report, settings string) (Run, []Generation) {
	run := Run{
		ID:            id,
		CreatedAt:     time.Now(),
		Duration:      report.Duration,
		Rows:          cfg.Maze.Rows,
		Cols:          cfg.Maze.Cols,
		MazeSeed:      cfg.Maze.Seed,
		GoalX:         report.Maze.Goal.X,
		GoalY:         report.Maze.Goal.Y,
		PoolSize:      cfg.Engine.PoolSize,
		GenomeLength:  cfg.GenomeLength,
		Generations:   report.Generations,
		Seed:          cfg.Engine.Seed,
		BreedSeed:     cfg.Engine.BreedSeed,
		Best:          report.Best.String(),
		BestPrimary:   report.Fitness.Primary,
		BestSecondary: report.Fitness.Secondary,
		AtGoal:        report.Assessment.AtGoal,
		Settings:      settings,
	}

	gens := make([]Generation, len(report.Records))
	for i, rec := range report.Records {
		gens[i] = GenerationFromRecord(id, rec)
	}
	return run, gens
}

// GenerationFromRecord converts one engine record
func GenerationFromRecord(runID string, rec runner.Record) Generation {
	return Generation{
		RunID:             runID,
		Index:             rec.Generation,
		BestPrimary:       rec.BestScore.Primary,
		BestSecondary:     rec.BestScore.Secondary,
		BestEverPrimary:   rec.BestEverScore.Primary,
		BestEverSecondary: rec.BestEverScore.Secondary,
		Mean:              rec.Stats.Mean,
		StdDev:            rec.Stats.StdDev,
		Survivors:         rec.Survivors,
		Failures:          rec.Stats.Failures,
	}
}
