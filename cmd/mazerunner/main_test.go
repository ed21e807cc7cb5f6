package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/maze-runner/config"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_UnknownCommand(t *testing.T) {
	if _, err := runCmd(t, "fly"); err == nil {
		t.Error("expected error for unknown command")
	}
	if _, err := runCmd(t); err == nil {
		t.Error("expected error without a command")
	}
	if _, err := runCmd(t, "evolve", "-h"); err != nil {
		t.Errorf("help should not fail: %v", err)
	}
}

func TestScore_ReportsMoves(t *testing.T) {
	out, err := runCmd(t, "score", "-rows", "15", "-cols", "15", "-goal", "center", "-draw", "66662222")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(out, "moves    8:") {
		t.Errorf("missing move count in output:\n%s", out)
	}
	if !strings.Contains(out, "O") {
		t.Errorf("drawn maze missing goal:\n%s", out)
	}

	if _, err := runCmd(t, "score", "-genome", "66x"); err == nil {
		t.Error("expected error for invalid genome")
	}
}

func TestConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ini")
	ini := "[evolution]\npop_size = 7\ngenerations = 9\n"
	if err := os.WriteFile(path, []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "config", "-config", path, "-gens", "4")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	f, err := config.LoadBytes([]byte(out))
	if err != nil {
		t.Fatalf("reload dumped config: %v\n%s", err, out)
	}
	if f.Evolution.PoolSize != 7 {
		t.Errorf("pop_size = %d, want 7 from file", f.Evolution.PoolSize)
	}
	if f.Evolution.Generations != 4 {
		t.Errorf("generations = %d, want 4 from flag", f.Evolution.Generations)
	}
	if f.Evolution.GenomeLength != config.Defaults().Evolution.GenomeLength {
		t.Errorf("genome_length = %d, want default", f.Evolution.GenomeLength)
	}
}

func TestEvolve_RecordsRun(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ledger.db")
	plot := filepath.Join(dir, "progress.png")

	out, err := runCmd(t, "evolve",
		"-rows", "7", "-cols", "7", "-pop", "12", "-len", "30", "-gens", "3",
		"-seed", "1", "-breed-seed", "2", "-workers", "2",
		"-store", "sqlite", "-db", db, "-plot", plot, "-quiet")
	if err != nil {
		t.Fatalf("evolve: %v", err)
	}
	if strings.Contains(out, "gen    0") {
		t.Error("quiet run printed per-generation progress")
	}
	if !strings.Contains(out, "genome ") {
		t.Errorf("missing best genome in output:\n%s", out)
	}
	if _, err := os.Stat(plot); err != nil {
		t.Errorf("chart not written: %v", err)
	}

	out, err = runCmd(t, "runs", "-db", db)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, "7x7/") {
		t.Errorf("run missing from listing:\n%s", out)
	}

	out, err = runCmd(t, "history", "-db", db, "-run", "latest")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 5 {
		t.Errorf("history printed %d lines, want header, column row and 3 generations:\n%s", lines, out)
	}
}

func TestEvolve_InvalidConfig(t *testing.T) {
	if _, err := runCmd(t, "evolve", "-rows", "1", "-quiet"); err == nil {
		t.Error("expected error for a one-row maze")
	}
	if _, err := runCmd(t, "evolve", "-selection", "lottery", "-quiet"); err == nil {
		t.Error("expected error for unknown selection")
	}
}
