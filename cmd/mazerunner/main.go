// Command mazerunner evolves move sequences that walk a generated maze toward its goal
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/chart"
	"github.com/lixenwraith/maze-runner/config"
	"github.com/lixenwraith/maze-runner/feed"
	"github.com/lixenwraith/maze-runner/genetic/runner"
	"github.com/lixenwraith/maze-runner/ledger"
	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
)

const usage = `usage: mazerunner <command> [flags]

commands:
  evolve    run the genetic search and print the best genome
  score     score one genome against a maze
  runs      list recorded runs
  history   print the generation records of a run
  config    print the effective configuration as INI

run "mazerunner <command> -h" for command flags
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mazerunner: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "evolve":
		err = evolve(ctx, rest, stdout, stderr)
	case "score":
		err = score(rest, stdout, stderr)
	case "runs":
		err = runs(ctx, rest, stdout, stderr)
	case "history":
		err = history(ctx, rest, stdout, stderr)
	case "config":
		err = dumpConfig(rest, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// --- evolve ---

func evolve(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_, file, err := parseWithConfig("evolve", args, stderr, mazeFlags, evolutionFlags, fitnessFlags, outputFlags)
	if err != nil {
		return err
	}

	closeLog, err := setupLog(file.Output, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := file.Runner()
	if err != nil {
		return err
	}
	exp, err := runner.NewExperiment(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, file.Output.Store, file.Output.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := ledger.NewRunID()
	log.Printf("run %s: %dx%d maze seed %d, goal %v, %d genomes of %d moves",
		runID, cfg.Maze.Rows, cfg.Maze.Cols, cfg.Maze.Seed, exp.Maze().Goal, cfg.Engine.PoolSize, cfg.GenomeLength)

	var hub *feed.Hub
	feedDone := make(chan error, 1)
	if addr := file.Output.Watch; addr != "" {
		hub = feed.NewHub()
		feedCtx, cancelFeed := context.WithCancel(ctx)
		defer func() {
			cancelFeed()
			if err := <-feedDone; err != nil {
				log.Printf("feed: %v", err)
			}
		}()
		go func() { feedDone <- feed.Serve(feedCtx, addr, hub) }()
		log.Printf("progress feed on ws://%s%s", addr, parameter.FeedPath)
	}

	quiet := file.Output.Quiet
	exp.Observe(func(rec runner.Record) {
		if !quiet {
			fmt.Fprintf(stdout, "gen %4d  best %-12s  best-ever %-12s  mean %8.2f  sd %7.2f\n",
				rec.Generation, rec.BestScore, rec.BestEverScore, rec.Stats.Mean, rec.Stats.StdDev)
		}
		if hub != nil {
			hub.Publish(feed.ProgressMessage(runID, rec))
		}
	})

	report, runErr := exp.Run(ctx)
	if len(report.Records) == 0 {
		return runErr
	}

	var settings bytes.Buffer
	if _, err := file.WriteTo(&settings); err != nil {
		log.Printf("failed to encode settings: %v", err)
	}
	rec, gens := ledger.FromReport(runID, cfg, report, settings.String())
	if err := store.SaveRun(ctx, rec); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if err := store.SaveGenerations(ctx, runID, gens); err != nil {
		return fmt.Errorf("failed to save generations: %w", err)
	}

	if hub != nil {
		hub.Publish(feed.SummaryMessage(runID, report))
	}

	if path := file.Output.Plot; path != "" {
		title := fmt.Sprintf("%dx%d maze, seed %d", cfg.Maze.Rows, cfg.Maze.Cols, cfg.Maze.Seed)
		if err := chart.Save(chart.FromRecords(report.Records), title, path); err != nil {
			return err
		}
		log.Printf("chart written to %s", path)
	}

	printReport(stdout, runID, report)
	return runErr
}

func printReport(w io.Writer, runID string, report runner.Report) {
	a := report.Assessment
	fmt.Fprintf(w, "\nrun         %s\n", runID)
	fmt.Fprintf(w, "generations %d in %v\n", report.Generations, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "fitness     %s\n", report.Fitness)
	fmt.Fprintf(w, "moves       valid %d, invalid %d, idle %d\n", a.Outcome.Valid, a.Outcome.Invalid, a.Outcome.Idle)
	fmt.Fprintf(w, "final       %v, distance %d, at goal %v\n", a.Outcome.Final, a.Distance, a.AtGoal)
	fmt.Fprintf(w, "genome      %s\n", report.Best)
}

// --- score ---

func score(args []string, stdout, stderr io.Writer) error {
	var genomeText string
	var draw bool
	fs, file, err := parseWithConfig("score", args, stderr, mazeFlags, fitnessFlags,
		func(fs *flag.FlagSet, _ *config.File) {
			fs.StringVar(&genomeText, "genome", "", "genome in keypad digits, wasd or UDLR (or pass as argument)")
			fs.BoolVar(&draw, "draw", false, "draw the maze with the walked trail")
		})
	if err != nil {
		return err
	}
	if genomeText == "" {
		genomeText = strings.Join(fs.Args(), "")
	}
	if genomeText == "" {
		return errors.New("no genome given")
	}

	genome, err := runner.ParseGenome(genomeText)
	if err != nil {
		return err
	}

	cfg, err := file.Runner()
	if err != nil {
		return err
	}
	m, err := maze.Generate(cfg.Maze)
	if err != nil {
		return err
	}

	evCfg := cfg.Evaluator
	evCfg.GenomeLength = 0
	a, err := runner.NewEvaluator(m.Grid, m.Start, m.Goal, evCfg).Assess(genome)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "fitness  %s\n", a.Fitness)
	fmt.Fprintf(stdout, "moves    %d: valid %d, invalid %d, idle %d\n", len(genome), a.Outcome.Valid, a.Outcome.Invalid, a.Outcome.Idle)
	fmt.Fprintf(stdout, "final    %v, distance %d, at goal %v\n", a.Outcome.Final, a.Distance, a.AtGoal)

	if draw {
		fmt.Fprintln(stdout)
		trail := agent.Trace(m.Grid, genome, m.Start)
		return maze.Draw(stdout, m.Grid, maze.DrawOptions{
			Start:  &m.Start,
			Goal:   &m.Goal,
			Player: &a.Outcome.Final,
			Path:   trail,
			Spaced: true,
		})
	}
	return nil
}

// --- ledger commands ---

func ledgerFlags(name string, args []string, stderr io.Writer) (*flag.FlagSet, string, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	kind := fs.String("store", "sqlite", "run ledger: memory or sqlite")
	db := fs.String("db", parameter.LedgerPath, "sqlite ledger path")
	err := fs.Parse(args)
	return fs, *kind, *db, err
}

func runs(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_, kind, db, err := ledgerFlags("runs", args, stderr)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, kind, db)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(stdout, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMAZE\tPOP\tLEN\tGENS\tFITNESS\tGOAL")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d/%d\t%d\t%d\t%d\t(%d, %d)\t%v\n",
			r.ID, r.CreatedAt.Format(time.DateTime), r.Rows, r.Cols, r.MazeSeed,
			r.PoolSize, r.GenomeLength, r.Generations, r.BestPrimary, r.BestSecondary, r.AtGoal)
	}
	return tw.Flush()
}

func history(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var ref, plotPath string
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kind := fs.String("store", "sqlite", "run ledger: memory or sqlite")
	db := fs.String("db", parameter.LedgerPath, "sqlite ledger path")
	fs.StringVar(&ref, "run", "latest", "run ID, unique ID prefix or latest")
	fs.StringVar(&plotPath, "plot", "", "write a progress chart to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *kind, *db)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := ledger.Resolve(ctx, store, ref)
	if err != nil {
		return err
	}
	gens, err := store.GetGenerations(ctx, r.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "run %s: %dx%d maze seed %d, best (%d, %d)\n",
		r.ID, r.Rows, r.Cols, r.MazeSeed, r.BestPrimary, r.BestSecondary)
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "GEN\tBEST\tBEST-EVER\tMEAN\tSD\tKEPT\tFAILED\t")
	for _, g := range gens {
		fmt.Fprintf(tw, "%d\t(%d, %d)\t(%d, %d)\t%.2f\t%.2f\t%d\t%d\t\n",
			g.Index, g.BestPrimary, g.BestSecondary, g.BestEverPrimary, g.BestEverSecondary,
			g.Mean, g.StdDev, g.Survivors, g.Failures)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if plotPath != "" {
		return chart.Save(chart.FromLedger(gens), "run "+r.ID, plotPath)
	}
	return nil
}

// --- config ---

func dumpConfig(args []string, stdout, stderr io.Writer) error {
	_, file, err := parseWithConfig("config", args, stderr, mazeFlags, evolutionFlags, fitnessFlags, outputFlags)
	if err != nil {
		return err
	}
	if _, err := file.Runner(); err != nil {
		return err
	}
	_, err = file.WriteTo(stdout)
	return err
}

// --- helpers ---

func openStore(ctx context.Context, kind, db string) (ledger.Store, error) {
	if kind == "sqlite" && db == "" {
		db = parameter.LedgerPath
	}
	store, err := ledger.NewStore(kind, db)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return store, nil
}

// setupLog routes the standard logger to the configured file, or discards it when quiet
func setupLog(out config.OutputSection, stderr io.Writer) (func(), error) {
	switch {
	case out.Quiet:
		log.SetOutput(io.Discard)
	case out.Log != "":
		f, err := os.OpenFile(out.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return func() {
			log.SetOutput(stderr)
			f.Close()
		}, nil
	default:
		log.SetOutput(stderr)
	}
	return func() { log.SetOutput(stderr) }, nil
}
