// Command maze-play walks a generated maze in the terminal, by keyboard or by replaying a genome
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-runner/config"
	"github.com/lixenwraith/maze-runner/ledger"
	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
	"github.com/lixenwraith/maze-runner/play"
)

var (
	configPath = flag.String("config", "", "INI configuration file ([maze] section is used)")
	rows       = flag.Int("rows", parameter.MazeRows, "maze rows")
	cols       = flag.Int("cols", parameter.MazeCols, "maze columns")
	goal       = flag.String("goal", "corner", "goal cell: center, corner or x,y")
	mazeSeed   = flag.Uint64("maze-seed", parameter.MazeSeed, "maze carving seed")
	genomeText = flag.String("genome", "", "replay this genome (keypad digits, wasd or UDLR)")
	runRef     = flag.String("run", "", "replay the best genome of a recorded run (ID, prefix or latest)")
	storeKind  = flag.String("store", "sqlite", "run ledger for -run: memory or sqlite")
	dbPath     = flag.String("db", parameter.LedgerPath, "sqlite ledger path")
	mute       = flag.Bool("mute", false, "disable sound")
)

func main() {
	flag.Parse()

	m, moves, err := resolve(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "maze-play: %v\n", err)
		os.Exit(1)
	}

	var cues play.Cues = play.Silent{}
	if !*mute {
		if sp, err := play.NewSpeaker(); err != nil {
			// Non-fatal, play continues without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			cues = sp
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		cues.Close()
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		cues.Close()
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	session := play.NewSession(m)
	if len(moves) > 0 {
		session.LoadReplay(moves)
	}
	view := play.NewView(screen, session, cues)

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			view.Close()
			fmt.Fprintf(os.Stderr, "\nMAZE-PLAY CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	view.Run()
	view.Close()

	fmt.Printf("valid %d, bumps %d, goal reached %v\n", session.Valid(), session.Invalid(), session.Won())
}

// resolve builds the maze and the optional replay from flags, a config file or a ledger run
func resolve(ctx context.Context) (maze.Result, []maze.Move, error) {
	if *runRef != "" {
		return fromLedger(ctx)
	}

	file := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return maze.Result{}, nil, err
		}
		file = loaded
	}

	// Explicit flags override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			file.Maze.Rows = *rows
		case "cols":
			file.Maze.Cols = *cols
		case "goal":
			file.Maze.Goal = *goal
		case "maze-seed":
			file.Maze.Seed = *mazeSeed
		}
	})

	cfg, err := file.Runner()
	if err != nil {
		return maze.Result{}, nil, err
	}
	m, err := maze.Generate(cfg.Maze)
	if err != nil {
		return maze.Result{}, nil, err
	}

	var moves []maze.Move
	if *genomeText != "" {
		if moves, err = maze.ParseGenome(*genomeText); err != nil {
			return maze.Result{}, nil, err
		}
	}
	return m, moves, nil
}

func fromLedger(ctx context.Context) (maze.Result, []maze.Move, error) {
	store, err := ledger.NewStore(*storeKind, *dbPath)
	if err != nil {
		return maze.Result{}, nil, err
	}
	if err := store.Init(ctx); err != nil {
		return maze.Result{}, nil, err
	}
	defer store.Close()

	run, err := ledger.Resolve(ctx, store, *runRef)
	if err != nil {
		return maze.Result{}, nil, err
	}

	m, err := maze.Generate(maze.Config{
		Rows: run.Rows,
		Cols: run.Cols,
		Seed: run.MazeSeed,
		Goal: &maze.Point{X: run.GoalX, Y: run.GoalY},
	})
	if err != nil {
		return maze.Result{}, nil, err
	}

	moves, err := maze.ParseGenome(run.Best)
	if err != nil {
		return maze.Result{}, nil, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return m, moves, nil
}
