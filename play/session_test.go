package play

import (
	"testing"

	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/maze"
)

func corridor(t *testing.T) maze.Result {
	t.Helper()
	g, err := maze.Parse(`
		....
		.###
	`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return maze.Result{Grid: g, Start: maze.Point{X: 0, Y: 0}, Goal: maze.Point{X: 3, Y: 0}}
}

func TestSession_MoveAndBump(t *testing.T) {
	s := NewSession(corridor(t))

	if res := s.Move(maze.Up); !res.Bumped || res.Moved {
		t.Errorf("move off grid: %+v", res)
	}
	if res := s.Move(maze.Right); !res.Moved {
		t.Errorf("move right: %+v", res)
	}
	if res := s.Move(maze.Down); !res.Bumped {
		t.Errorf("move into wall: %+v", res)
	}

	if s.Position() != (maze.Point{X: 1, Y: 0}) {
		t.Errorf("position = %v", s.Position())
	}
	if s.Valid() != 1 || s.Invalid() != 2 {
		t.Errorf("valid/invalid = %d/%d, want 1/2", s.Valid(), s.Invalid())
	}
}

func TestSession_ReachedOnce(t *testing.T) {
	s := NewSession(corridor(t))

	var reached int
	for _, m := range []maze.Move{maze.Right, maze.Right, maze.Right, maze.Left, maze.Right} {
		if s.Move(m).Reached {
			reached++
		}
	}
	if reached != 1 {
		t.Errorf("reached reported %d times, want 1", reached)
	}
	if !s.Won() {
		t.Error("expected session won")
	}

	s.Reset()
	if s.Won() || s.Valid() != 0 || len(s.Trail()) != 1 {
		t.Errorf("reset left state: won=%v valid=%d trail=%d", s.Won(), s.Valid(), len(s.Trail()))
	}
}

func TestSession_ReplayMatchesSimulator(t *testing.T) {
	m := corridor(t)
	moves, err := maze.ParseGenome("2866684426")
	if err != nil {
		t.Fatalf("parse genome: %v", err)
	}

	s := NewSession(m)
	s.LoadReplay(moves)
	for {
		if _, ok := s.Advance(); !ok {
			break
		}
	}

	want := agent.Simulate(m.Grid, moves, m.Start)
	if s.Position() != want.Final {
		t.Errorf("final = %v, want %v", s.Position(), want.Final)
	}
	if s.Valid() != want.Valid || s.Invalid() != want.Invalid {
		t.Errorf("valid/invalid = %d/%d, want %d/%d", s.Valid(), s.Invalid(), want.Valid, want.Invalid)
	}
	if played, total := s.ReplayProgress(); played != total || total != len(moves) {
		t.Errorf("progress = %d/%d", played, total)
	}
	if s.Replaying() {
		t.Error("replay should be exhausted")
	}

	trace := agent.Trace(m.Grid, moves, m.Start)
	if trace[len(trace)-1] != s.Position() {
		t.Errorf("trace end %v != position %v", trace[len(trace)-1], s.Position())
	}
}

func TestSession_LoadReplayRestarts(t *testing.T) {
	s := NewSession(corridor(t))
	s.Move(maze.Right)
	s.Move(maze.Right)

	s.LoadReplay([]maze.Move{maze.Down})
	if s.Position() != (maze.Point{X: 0, Y: 0}) || s.Valid() != 0 {
		t.Fatalf("replay load did not restart: pos=%v valid=%d", s.Position(), s.Valid())
	}

	res, ok := s.Advance()
	if !ok || !res.Moved {
		t.Errorf("advance = %+v, %v", res, ok)
	}
	if _, ok := s.Advance(); ok {
		t.Error("expected exhausted replay")
	}
}
