package parameter

import "time"

// Player - Interactive Renderer
const (
	// PlayFrameInterval is the redraw tick of the terminal renderer (~60 FPS)
	PlayFrameInterval = 16 * time.Millisecond

	// PlayReplayStep is the delay between replayed genome moves
	PlayReplayStep = 80 * time.Millisecond

	// PlayBumpBlink is how long the player glyph stays red after hitting a wall
	PlayBumpBlink = 300 * time.Millisecond

	// PlayEventBuffer is the capacity of the input event channel
	PlayEventBuffer = 100
)

// Player - Sound Cues
const (
	PlaySampleRate   = 44100
	PlayBumpFreq     = 220.0
	PlayGoalFreq     = 880.0
	PlayBumpDuration = 40 * time.Millisecond
	PlayGoalDuration = 250 * time.Millisecond
)
