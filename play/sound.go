package play

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/maze-runner/parameter"
)

// Cues receives the audible events of a session
type Cues interface {
	Bump()
	Goal()
	Close()
}

// Silent discards every cue
type Silent struct{}

func (Silent) Bump()  {}
func (Silent) Goal()  {}
func (Silent) Close() {}

// Speaker plays short sine tones through the system audio device
type Speaker struct {
	rate beep.SampleRate
}

// NewSpeaker opens the audio device with a 100ms buffer
func NewSpeaker() (*Speaker, error) {
	rate := beep.SampleRate(parameter.PlaySampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{rate: rate}, nil
}

func (s *Speaker) Bump() { s.tone(parameter.PlayBumpFreq, parameter.PlayBumpDuration) }
func (s *Speaker) Goal() { s.tone(parameter.PlayGoalFreq, parameter.PlayGoalDuration) }

func (s *Speaker) Close() {
	speaker.Close()
}

func (s *Speaker) tone(freq float64, d time.Duration) {
	sine, err := generators.SineTone(s.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}
