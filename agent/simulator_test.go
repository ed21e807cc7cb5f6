package agent

import (
	"testing"

	"github.com/lixenwraith/maze-runner/maze"
)

func referenceGrid(t *testing.T) maze.Result {
	t.Helper()
	res, err := maze.Generate(maze.ReferenceConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return res
}

func TestSimulate_EmptyGenome(t *testing.T) {
	res := referenceGrid(t)

	out := Simulate(res.Grid, nil, res.Start)

	if out.Final != res.Start {
		t.Errorf("final %v, want start %v", out.Final, res.Start)
	}
	if out.Valid != 0 || out.Invalid != 0 || out.Idle != 0 {
		t.Errorf("expected zero counts, got %+v", out)
	}
}

func TestSimulate_MoveCountsSumToLength(t *testing.T) {
	res := referenceGrid(t)

	genomes := []string{
		"8642",
		"66666666222222224444",
		"2626262626262626262626262626",
		"8888444422226666",
	}

	for _, text := range genomes {
		moves, err := maze.ParseGenome(text)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		out := Simulate(res.Grid, moves, res.Start)
		if out.Valid+out.Invalid != len(moves) {
			t.Errorf("%s: valid %d + invalid %d != %d", text, out.Valid, out.Invalid, len(moves))
		}
		if !res.Grid.IsOpen(out.Final) {
			t.Errorf("%s: ended on wall %v", text, out.Final)
		}
	}
}

func TestSimulate_BoundaryGenomes(t *testing.T) {
	res := referenceGrid(t)

	for _, m := range []maze.Move{maze.Up, maze.Left} {
		moves := make([]maze.Move, 130)
		for i := range moves {
			moves[i] = m
		}

		out := Simulate(res.Grid, moves, maze.Point{X: 0, Y: 0})

		if out.Valid != 0 {
			t.Errorf("all %v: valid = %d, want 0", m, out.Valid)
		}
		if out.Invalid != len(moves) {
			t.Errorf("all %v: invalid = %d, want %d", m, out.Invalid, len(moves))
		}
		if out.Final != (maze.Point{X: 0, Y: 0}) {
			t.Errorf("all %v: moved to %v", m, out.Final)
		}
	}
}

func TestSimulator_HaltPolicy(t *testing.T) {
	g, err := maze.Parse(`
		...
		##.
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	goal := maze.Point{X: 2, Y: 0}
	moves, _ := maze.ParseGenome("6666")

	cont := Simulator{Grid: g, Goal: goal, Policy: ContinueAtGoal}.Run(moves, maze.Point{X: 0, Y: 0})
	if cont.ReachedAt != 1 {
		t.Errorf("continue: reachedAt %d, want 1", cont.ReachedAt)
	}
	if cont.Valid != 2 || cont.Invalid != 2 || cont.Idle != 0 {
		t.Errorf("continue: %+v", cont)
	}

	halt := Simulator{Grid: g, Goal: goal, Policy: HaltAtGoal}.Run(moves, maze.Point{X: 0, Y: 0})
	if halt.Final != goal {
		t.Errorf("halt: final %v", halt.Final)
	}
	if halt.Valid != 2 || halt.Invalid != 0 || halt.Idle != 2 {
		t.Errorf("halt: %+v", halt)
	}
	if halt.Valid+halt.Invalid+halt.Idle != len(moves) {
		t.Error("halt: counts do not cover every move")
	}

	// Walking off the goal again is allowed when continuing
	back, _ := maze.ParseGenome("6664")
	out := Simulator{Grid: g, Goal: goal, Policy: ContinueAtGoal}.Run(back, maze.Point{X: 0, Y: 0})
	if out.Final != (maze.Point{X: 1, Y: 0}) {
		t.Errorf("continue: final %v, want (1,0)", out.Final)
	}
}

func TestStep_Rule(t *testing.T) {
	g, _ := maze.Parse(`
		.#
		..
	`)

	tests := []struct {
		pos  maze.Point
		m    maze.Move
		want maze.Point
		ok   bool
	}{
		{maze.Point{X: 0, Y: 0}, maze.Right, maze.Point{X: 0, Y: 0}, false}, // wall
		{maze.Point{X: 0, Y: 0}, maze.Up, maze.Point{X: 0, Y: 0}, false},    // boundary
		{maze.Point{X: 0, Y: 0}, maze.Down, maze.Point{X: 0, Y: 1}, true},
		{maze.Point{X: 0, Y: 1}, maze.Right, maze.Point{X: 1, Y: 1}, true},
		{maze.Point{X: 1, Y: 1}, maze.Move(7), maze.Point{X: 1, Y: 1}, false},
	}

	for _, tt := range tests {
		got, ok := Step(g, tt.pos, tt.m)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Step(%v, %v) = %v,%v want %v,%v", tt.pos, tt.m, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTrace_LengthAndEndpoints(t *testing.T) {
	res := referenceGrid(t)
	moves, _ := maze.ParseGenome("2222666688884444")

	trail := Trace(res.Grid, moves, res.Start)
	out := Simulate(res.Grid, moves, res.Start)

	if len(trail) != len(moves)+1 {
		t.Fatalf("trail length %d", len(trail))
	}
	if trail[0] != res.Start || trail[len(trail)-1] != out.Final {
		t.Errorf("trail endpoints %v..%v, want %v..%v", trail[0], trail[len(trail)-1], res.Start, out.Final)
	}
}
