package play

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-runner/maze"
	"github.com/lixenwraith/maze-runner/parameter"
)

// Grid origin on screen, the status line occupies row 0
const (
	gridTop  = 2
	gridLeft = 1
)

var (
	styleWall   = tcell.StyleDefault.Background(tcell.ColorGray)
	styleOpen   = tcell.StyleDefault
	styleTrail  = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleGoal   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStart  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleBumped = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// View renders a Session on a tcell screen and routes keys into it
type View struct {
	screen  tcell.Screen
	session *Session
	cues    Cues

	bumped   bool
	bumpTime time.Time
	paused   bool
}

// NewView takes ownership of an initialized screen, cues may be nil
func NewView(screen tcell.Screen, session *Session, cues Cues) *View {
	if cues == nil {
		cues = Silent{}
	}
	return &View{screen: screen, session: session, cues: cues}
}

// Run blocks until the player quits
func (v *View) Run() {
	frame := time.NewTicker(parameter.PlayFrameInterval)
	defer frame.Stop()
	step := time.NewTicker(parameter.PlayReplayStep)
	defer step.Stop()

	events := make(chan tcell.Event, parameter.PlayEventBuffer)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, events, done)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return
			}

		case <-step.C:
			if !v.paused {
				if res, ok := v.session.Advance(); ok {
					v.apply(res)
				}
			}

		case <-frame.C:
			v.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one input event, false means quit
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.apply(v.session.Move(maze.Up))
		case tcell.KeyDown:
			v.apply(v.session.Move(maze.Down))
		case tcell.KeyLeft:
			v.apply(v.session.Move(maze.Left))
		case tcell.KeyRight:
			v.apply(v.session.Move(maze.Right))
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q':
				return false
			case 'r':
				v.session.Reset()
				v.bumped = false
			case ' ':
				v.paused = !v.paused
			default:
				if m, err := maze.FromRune(r); err == nil {
					v.apply(v.session.Move(m))
				}
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) apply(res StepResult) {
	if res.Bumped {
		v.bumped = true
		v.bumpTime = time.Now()
		v.cues.Bump()
	}
	if res.Reached {
		v.cues.Goal()
	}
}

// Draw renders the grid and status line
func (v *View) Draw() {
	v.screen.Clear()

	if v.bumped && time.Since(v.bumpTime) > parameter.PlayBumpBlink {
		v.bumped = false
	}

	s := v.session
	m := s.Maze()
	trail := make(map[maze.Point]bool, len(s.Trail()))
	for _, p := range s.Trail() {
		trail[p] = true
	}

	for y := 0; y < m.Grid.Rows(); y++ {
		for x := 0; x < m.Grid.Cols(); x++ {
			p := maze.Point{X: x, Y: y}
			r, style := ' ', styleOpen
			switch {
			case p == s.Position():
				r, style = parameter.GlyphPlayer, stylePlayer
				if v.bumped {
					style = styleBumped
				}
			case p == m.Goal:
				r, style = parameter.GlyphGoal, styleGoal
			case p == m.Start:
				r, style = parameter.GlyphStart, styleStart
			case !m.Grid.IsOpen(p):
				style = styleWall
			case trail[p]:
				r, style = '·', styleTrail
			}
			// Two columns per cell keeps the grid roughly square
			sx := gridLeft + 2*x
			v.screen.SetContent(sx, gridTop+y, r, nil, style)
			v.screen.SetContent(sx+1, gridTop+y, ' ', nil, style)
		}
	}

	v.drawText(0, 0, v.status(), styleStatus)
	v.screen.Show()
}

func (v *View) status() string {
	s := v.session
	line := fmt.Sprintf("valid %d  bumps %d", s.Valid(), s.Invalid())
	if played, total := s.ReplayProgress(); total > 0 {
		line += fmt.Sprintf("  replay %d/%d", played, total)
		if v.paused {
			line += " (paused)"
		}
	}
	if s.Won() {
		line += "  GOAL"
	}
	return line + "  [arrows/wasd move, r reset, q quit]"
}

func (v *View) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Close releases audio and restores the terminal
func (v *View) Close() {
	v.cues.Close()
	v.screen.Fini()
}
