package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, duration_ns, maze_rows, maze_cols, maze_seed, goal_x, goal_y,
			pool_size, genome_length, generations, seed, breed_seed,
			best, best_primary, best_secondary, at_goal, settings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			duration_ns = excluded.duration_ns,
			generations = excluded.generations,
			best = excluded.best,
			best_primary = excluded.best_primary,
			best_secondary = excluded.best_secondary,
			at_goal = excluded.at_goal,
			settings = excluded.settings
	`,
		run.ID, run.CreatedAt.UnixNano(), int64(run.Duration), run.Rows, run.Cols,
		int64(run.MazeSeed), run.GoalX, run.GoalY,
		run.PoolSize, run.GenomeLength, run.Generations, int64(run.Seed), int64(run.BreedSeed),
		run.Best, run.BestPrimary, run.BestSecondary, run.AtGoal, run.Settings,
	)
	return err
}

const runColumns = `id, created_at, duration_ns, maze_rows, maze_cols, maze_seed, goal_x, goal_y,
	pool_size, genome_length, generations, seed, breed_seed,
	best, best_primary, best_secondary, at_goal, settings`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run                       Run
		created, duration         int64
		mazeSeed, seed, breedSeed int64
	)
	err := row.Scan(
		&run.ID, &created, &duration, &run.Rows, &run.Cols, &mazeSeed, &run.GoalX, &run.GoalY,
		&run.PoolSize, &run.GenomeLength, &run.Generations, &seed, &breedSeed,
		&run.Best, &run.BestPrimary, &run.BestSecondary, &run.AtGoal, &run.Settings,
	)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(0, created)
	run.Duration = time.Duration(duration)
	run.MazeSeed = uint64(mazeSeed)
	run.Seed = uint64(seed)
	run.BreedSeed = uint64(breedSeed)
	return run, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	run, err := scanRun(db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) SaveGenerations(ctx context.Context, runID string, gens []Generation) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM generations WHERE run_id = ?`, runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO generations (
			run_id, idx, best_primary, best_secondary, best_ever_primary, best_ever_secondary,
			mean, std_dev, survivors, failures
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range gens {
		if _, err := stmt.ExecContext(ctx,
			runID, g.Index, g.BestPrimary, g.BestSecondary, g.BestEverPrimary, g.BestEverSecondary,
			g.Mean, g.StdDev, g.Survivors, g.Failures,
		); err != nil {
			return fmt.Errorf("insert generation %d: %w", g.Index, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetGenerations(ctx context.Context, runID string) ([]Generation, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, idx, best_primary, best_secondary, best_ever_primary, best_ever_secondary,
			mean, std_dev, survivors, failures
		FROM generations WHERE run_id = ? ORDER BY idx
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(
			&g.RunID, &g.Index, &g.BestPrimary, &g.BestSecondary, &g.BestEverPrimary, &g.BestEverSecondary,
			&g.Mean, &g.StdDev, &g.Survivors, &g.Failures,
		); err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			maze_rows INTEGER NOT NULL,
			maze_cols INTEGER NOT NULL,
			maze_seed INTEGER NOT NULL,
			goal_x INTEGER NOT NULL,
			goal_y INTEGER NOT NULL,
			pool_size INTEGER NOT NULL,
			genome_length INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			breed_seed INTEGER NOT NULL,
			best TEXT NOT NULL,
			best_primary INTEGER NOT NULL,
			best_secondary INTEGER NOT NULL,
			at_goal INTEGER NOT NULL,
			settings TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			best_primary INTEGER NOT NULL,
			best_secondary INTEGER NOT NULL,
			best_ever_primary INTEGER NOT NULL,
			best_ever_secondary INTEGER NOT NULL,
			mean REAL NOT NULL,
			std_dev REAL NOT NULL,
			survivors INTEGER NOT NULL,
			failures INTEGER NOT NULL,
			PRIMARY KEY (run_id, idx)
		);
	`)
	return err
}
