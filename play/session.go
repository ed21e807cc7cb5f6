// Package play is the interactive maze view: keyboard play and genome replay on a terminal
package play

import (
	"github.com/lixenwraith/maze-runner/agent"
	"github.com/lixenwraith/maze-runner/maze"
)

// StepResult describes what one requested move did
type StepResult struct {
	Moved   bool
	Bumped  bool
	Reached bool // First arrival at the goal
}

// Session is the renderer-independent play state.
// Moves use the same step rule as the simulator, so a replay ends where the evaluator says it does.
type Session struct {
	maze maze.Result

	pos     maze.Point
	valid   int
	invalid int
	won     bool
	trail   []maze.Point

	replay    []maze.Move
	replayIdx int
}

func NewSession(m maze.Result) *Session {
	s := &Session{maze: m}
	s.Reset()
	return s
}

// Reset returns the player to the start and clears counters, a loaded replay restarts
func (s *Session) Reset() {
	s.pos = s.maze.Start
	s.valid = 0
	s.invalid = 0
	s.won = s.pos == s.maze.Goal
	s.trail = append(s.trail[:0], s.pos)
	s.replayIdx = 0
}

// Move applies one move
func (s *Session) Move(m maze.Move) StepResult {
	next, ok := agent.Step(s.maze.Grid, s.pos, m)
	if !ok {
		s.invalid++
		return StepResult{Bumped: true}
	}

	s.pos = next
	s.valid++
	s.trail = append(s.trail, next)

	res := StepResult{Moved: true}
	if next == s.maze.Goal && !s.won {
		s.won = true
		res.Reached = true
	}
	return res
}

// LoadReplay restarts the session with moves queued for Advance
func (s *Session) LoadReplay(moves []maze.Move) {
	s.replay = append(s.replay[:0], moves...)
	s.Reset()
}

// Advance plays the next queued move, ok is false once the replay is exhausted
func (s *Session) Advance() (StepResult, bool) {
	if s.replayIdx >= len(s.replay) {
		return StepResult{}, false
	}
	m := s.replay[s.replayIdx]
	s.replayIdx++
	return s.Move(m), true
}

func (s *Session) Maze() maze.Result    { return s.maze }
func (s *Session) Position() maze.Point { return s.pos }
func (s *Session) Valid() int           { return s.valid }
func (s *Session) Invalid() int         { return s.invalid }
func (s *Session) Won() bool            { return s.won }
func (s *Session) Trail() []maze.Point  { return s.trail }
func (s *Session) Replaying() bool      { return s.replayIdx < len(s.replay) }

// ReplayProgress returns moves played and total queued
func (s *Session) ReplayProgress() (int, int) {
	return s.replayIdx, len(s.replay)
}
