package chart

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/maze-runner/genetic/runner"
	"github.com/lixenwraith/maze-runner/ledger"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestSave_FromRun(t *testing.T) {
	cfg := runner.ReferenceConfig()
	cfg.Engine.PoolSize = 20
	cfg.Engine.MaxIterations = 5

	report, err := runner.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	points := FromRecords(report.Records)
	if len(points) != 5 {
		t.Fatalf("points %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].BestEver < points[i-1].BestEver {
			t.Errorf("best ever projection dropped at %d", i)
		}
	}

	out := filepath.Join(t.TempDir(), "progress.png")
	if err := Save(points, "reference", out); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestFromLedger(t *testing.T) {
	points := FromLedger([]ledger.Generation{
		{Index: 0, BestPrimary: 10, BestSecondary: -4, BestEverPrimary: 10, BestEverSecondary: -4, Mean: 2},
		{Index: 1, BestPrimary: 12, BestSecondary: -1, BestEverPrimary: 12, BestEverSecondary: -1, Mean: 3},
	})
	if points[1].Best != 11 || points[0].BestEver != 6 || points[1].Mean != 3 {
		t.Errorf("points %+v", points)
	}
}

func TestSave_Empty(t *testing.T) {
	if err := Save(nil, "empty", filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("expected error for empty series")
	}
}
