// Package agent replays move sequences against a maze using the single-step movement rule
package agent

import (
	"fmt"

	"github.com/lixenwraith/maze-runner/maze"
)

// HaltPolicy decides what happens to moves left over once the goal is reached
type HaltPolicy uint8

const (
	// ContinueAtGoal keeps executing moves after the goal, the agent may walk off it again
	ContinueAtGoal HaltPolicy = iota
	// HaltAtGoal parks the agent on the goal, remaining moves count as idle
	HaltAtGoal
)

func (p HaltPolicy) String() string {
	switch p {
	case ContinueAtGoal:
		return "continue"
	case HaltAtGoal:
		return "halt"
	}
	return fmt.Sprintf("HaltPolicy(%d)", uint8(p))
}

// Outcome summarises one replay
// Valid + Invalid + Idle always equals the number of moves replayed
type Outcome struct {
	Final   maze.Point
	Valid   int
	Invalid int
	Idle    int

	// ReachedAt is the index of the move that first entered the goal, -1 if never
	ReachedAt int
}

// Step applies one move: the target must be inside the grid and open, otherwise pos is returned unchanged
func Step(g *maze.Grid, pos maze.Point, m maze.Move) (maze.Point, bool) {
	if !m.Valid() {
		return pos, false
	}
	next := pos.Add(m.Delta())
	if !g.IsOpen(next) {
		return pos, false
	}
	return next, true
}

// Simulator replays genomes against a fixed grid and goal
// It holds no mutable state and may be shared by concurrent evaluations
type Simulator struct {
	Grid   *maze.Grid
	Goal   maze.Point
	Policy HaltPolicy
}

// Run replays moves in order from start
func (s Simulator) Run(moves []maze.Move, start maze.Point) Outcome {
	out := Outcome{Final: start, ReachedAt: -1}
	if start == s.Goal {
		out.ReachedAt = 0
	}

	pos := start
	for i, m := range moves {
		if s.Policy == HaltAtGoal && out.ReachedAt >= 0 {
			out.Idle = len(moves) - i
			break
		}

		next, ok := Step(s.Grid, pos, m)
		if !ok {
			out.Invalid++
			continue
		}
		pos = next
		out.Valid++
		if pos == s.Goal && out.ReachedAt < 0 {
			out.ReachedAt = i
		}
	}

	out.Final = pos
	return out
}

// Simulate replays moves from start without a goal, every move is executed
func Simulate(g *maze.Grid, moves []maze.Move, start maze.Point) Outcome {
	s := Simulator{Grid: g, Goal: maze.Point{X: -1, Y: -1}}
	return s.Run(moves, start)
}

// Trace returns every position visited, starting with start, one entry per move
func Trace(g *maze.Grid, moves []maze.Move, start maze.Point) []maze.Point {
	trail := make([]maze.Point, 0, len(moves)+1)
	trail = append(trail, start)
	pos := start
	for _, m := range moves {
		pos, _ = Step(g, pos, m)
		trail = append(trail, pos)
	}
	return trail
}
