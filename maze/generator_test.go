package maze

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := ReferenceConfig()

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !a.Grid.Equal(b.Grid) {
		t.Fatalf("same seed produced different grids:\n%s\nvs\n%s", a.Grid, b.Grid)
	}
	if a.Grid.String() != b.Grid.String() {
		t.Error("rendered grids differ for the same seed")
	}
}

func TestGenerate_SeedChangesLayout(t *testing.T) {
	cfg := ReferenceConfig()
	a, _ := Generate(cfg)

	cfg.Seed = 43
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if a.Grid.Equal(b.Grid) {
		t.Error("expected different seeds to carve different mazes")
	}
}

func TestGenerate_EndpointsOpen(t *testing.T) {
	configs := []Config{
		ReferenceConfig(),
		DefaultConfig(),
		{Rows: 2, Cols: 2, Seed: 1, Placement: GoalCorner},
		{Rows: 9, Cols: 4, Seed: 5, Placement: GoalCenter},
		{Rows: 11, Cols: 11, Seed: 9, Goal: &Point{X: 3, Y: 7}},
	}

	for _, cfg := range configs {
		for seed := uint64(0); seed < 20; seed++ {
			cfg.Seed = seed
			res, err := Generate(cfg)
			if err != nil {
				t.Fatalf("%dx%d seed %d: %v", cfg.Rows, cfg.Cols, seed, err)
			}
			if !res.Grid.IsOpen(res.Start) {
				t.Errorf("%dx%d seed %d: start %v is a wall", cfg.Rows, cfg.Cols, seed, res.Start)
			}
			if !res.Grid.IsOpen(res.Goal) {
				t.Errorf("%dx%d seed %d: goal %v is a wall", cfg.Rows, cfg.Cols, seed, res.Goal)
			}
			if res.Goal != cfg.GoalPoint() {
				t.Errorf("goal = %v, want %v", res.Goal, cfg.GoalPoint())
			}
		}
	}
}

func TestGenerate_ReferenceCenterReachable(t *testing.T) {
	res, err := Generate(ReferenceConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if res.Goal != (Point{7, 7}) {
		t.Fatalf("goal = %v, want (7,7)", res.Goal)
	}
	if len(res.Solution) == 0 {
		t.Fatal("expected a solution path to the centre")
	}
	if res.Solution[0] != res.Start || res.Solution[len(res.Solution)-1] != res.Goal {
		t.Errorf("solution endpoints %v..%v", res.Solution[0], res.Solution[len(res.Solution)-1])
	}

	for i := 1; i < len(res.Solution); i++ {
		a, b := res.Solution[i-1], res.Solution[i]
		dx, dy := a.X-b.X, a.Y-b.Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("non-adjacent step %v -> %v", a, b)
		}
		if !res.Grid.IsOpen(b) {
			t.Fatalf("solution crosses wall at %v", b)
		}
	}
}

func TestGenerate_EvenDimensionsBridgeCorner(t *testing.T) {
	res, err := Generate(DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if res.Goal != (Point{19, 19}) {
		t.Fatalf("goal = %v, want (19,19)", res.Goal)
	}

	// Trailing row and column are outside the carving lattice
	open := 0
	for x := 0; x < 20; x++ {
		if res.Grid.IsOpen(Point{x, 19}) {
			open++
		}
	}
	if open != 2 {
		t.Errorf("expected goal plus one bridge cell open on last row, got %d", open)
	}
	if !res.Grid.IsOpen(Point{18, 19}) {
		t.Error("expected bridge to the left of the corner goal")
	}
}

func TestGenerate_LatticeFullyCarved(t *testing.T) {
	res, err := Generate(ReferenceConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for y := 0; y < 15; y += 2 {
		for x := 0; x < 15; x += 2 {
			if !res.Grid.IsOpen(Point{x, y}) {
				t.Errorf("lattice cell %v left uncarved", Point{x, y})
			}
		}
	}
}

func TestGenerate_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero", Config{}},
		{"one row", Config{Rows: 1, Cols: 15}},
		{"one col", Config{Rows: 15, Cols: 1}},
		{"negative", Config{Rows: -3, Cols: 5}},
		{"goal outside", Config{Rows: 5, Cols: 5, Goal: &Point{X: 5, Y: 0}}},
		{"start outside", Config{Rows: 5, Cols: 5, Start: Point{X: -1, Y: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.cfg)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestForceOpen_IsolatedGoalGetsBridge(t *testing.T) {
	g, err := Parse(`
		.....
		.###.
		.###.
		.###.
		.....
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	forceOpen(g, Point{2, 2})

	if !g.IsOpen(Point{2, 2}) {
		t.Fatal("goal not opened")
	}
	if !g.IsOpen(Point{1, 2}) {
		t.Errorf("expected left neighbour bridge, got\n%s", g)
	}
	if solveBFS(g, Point{0, 0}, Point{2, 2}) == nil {
		t.Error("bridge does not connect goal")
	}
}

func TestDraw_Overlays(t *testing.T) {
	g, _ := Parse(`
		..#
		#..
	`)
	start, goal, player := Point{0, 0}, Point{2, 1}, Point{1, 1}

	var sb strings.Builder
	if err := Draw(&sb, g, DrawOptions{
		Start:  &start,
		Goal:   &goal,
		Player: &player,
		Path:   []Point{{1, 0}},
	}); err != nil {
		t.Fatalf("draw: %v", err)
	}

	want := "S*#\n#PO\n"
	if sb.String() != want {
		t.Errorf("got\n%s\nwant\n%s", sb.String(), want)
	}
}
