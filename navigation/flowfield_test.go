package navigation

import (
	"testing"

	"github.com/lixenwraith/maze-runner/maze"
)

func TestDistanceField_MatchesBFS(t *testing.T) {
	res, err := maze.Generate(maze.ReferenceConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	g := res.Grid
	field := NewDistanceField(g, res.Goal)

	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			p := maze.Point{X: x, Y: y}
			want, wantOK := ShortestDistance(g, p, res.Goal)
			got, gotOK := field.Distance(p)
			if got != want || gotOK != wantOK {
				t.Fatalf("%v: field=%d,%v bfs=%d,%v", p, got, gotOK, want, wantOK)
			}
		}
	}

	if field.Reached() != g.OpenCount() {
		t.Errorf("reached %d of %d open cells in a connected maze", field.Reached(), g.OpenCount())
	}
}

func TestDistanceField_NextFollowsGradient(t *testing.T) {
	res, err := maze.Generate(maze.DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	field := NewDistanceField(res.Grid, res.Goal)

	pos := res.Start
	steps := 0
	for pos != res.Goal {
		m, ok := field.Next(pos)
		if !ok {
			t.Fatalf("no gradient at %v", pos)
		}
		pos = pos.Add(m.Delta())
		if !res.Grid.IsOpen(pos) {
			t.Fatalf("gradient walked into wall at %v", pos)
		}
		steps++
	}

	if steps != len(res.Solution)-1 {
		t.Errorf("followed %d steps, shortest is %d", steps, len(res.Solution)-1)
	}
	if _, ok := field.Next(res.Goal); ok {
		t.Error("expected no move at the target")
	}
}

func TestDistanceField_Fallback(t *testing.T) {
	g := mustParse(t, `
		..#.
		..#.
	`)
	field := NewDistanceField(g, maze.Point{X: 0, Y: 0})
	sentinel := Unreachable(g)

	if sentinel != 8 {
		t.Errorf("sentinel %d, want rows*cols=8", sentinel)
	}
	if d := field.DistanceOr(maze.Point{X: 3, Y: 1}, sentinel); d != sentinel {
		t.Errorf("disconnected cell distance %d, want sentinel", d)
	}
	if d := field.DistanceOr(maze.Point{X: 1, Y: 1}, sentinel); d != 2 {
		t.Errorf("distance %d, want 2", d)
	}
	if field.Target() != (maze.Point{X: 0, Y: 0}) {
		t.Errorf("target %v", field.Target())
	}
}
