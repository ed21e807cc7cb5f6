// Package ledger records run summaries and per-generation records
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run is the summary of one finished (or interrupted) evolution run
type Run struct {
	ID        string
	CreatedAt time.Time
	Duration  time.Duration

	Rows, Cols   int
	MazeSeed     uint64
	GoalX, GoalY int

	PoolSize     int
	GenomeLength int
	Generations  int
	Seed         uint64
	BreedSeed    uint64

	// Best is the best-ever genome in keypad digits
	Best          string
	BestPrimary   int
	BestSecondary int
	AtGoal        bool

	// Settings holds the effective configuration as INI text
	Settings string
}

// Generation is one generation record of a run
type Generation struct {
	RunID string
	Index int

	BestPrimary       int
	BestSecondary     int
	BestEverPrimary   int
	BestEverSecondary int

	Mean      float64
	StdDev    float64
	Survivors int
	Failures  int
}

// Store persists runs and their generation records
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	// ListRuns returns every run, newest first
	ListRuns(ctx context.Context) ([]Run, error)
	SaveGenerations(ctx context.Context, runID string, gens []Generation) error
	GetGenerations(ctx context.Context, runID string) ([]Generation, error)
	Close() error
}

// NewStore creates an uninitialized store of the given kind
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if sqlitePath == "" {
			return nil, fmt.Errorf("sqlite store needs a database path")
		}
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// NewRunID returns a fresh random run identifier
func NewRunID() string {
	return uuid.NewString()
}

// Resolve finds a run by exact ID, "latest", or a unique ID prefix
func Resolve(ctx context.Context, store Store, ref string) (Run, error) {
	if ref != "latest" {
		if run, ok, err := store.GetRun(ctx, ref); err != nil || ok {
			return run, err
		}
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return Run{}, err
	}
	if ref == "latest" {
		if len(runs) == 0 {
			return Run{}, fmt.Errorf("no runs recorded")
		}
		return runs[0], nil
	}

	var match []Run
	for _, r := range runs {
		if ref != "" && strings.HasPrefix(r.ID, ref) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 0:
		return Run{}, fmt.Errorf("run %q not found", ref)
	case 1:
		return match[0], nil
	default:
		return Run{}, fmt.Errorf("run prefix %q is ambiguous (%d matches)", ref, len(match))
	}
}
