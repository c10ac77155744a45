package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	blipHz       = 660
	blipDuration = 30 * time.Millisecond
)

// Player emits a short tone when a stack spawns. A nil Player is silent, so
// callers can wire Blip unconditionally.
type Player struct {
	enabled bool
}

// NewPlayer opens the speaker. Failure leaves the rain silent but running.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Player{enabled: true}, nil
}

// Blip plays the spawn tone without blocking the caller.
func (p *Player) Blip() {
	if p == nil || !p.enabled {
		return
	}
	tone, err := generators.SineTone(sampleRate, blipHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(blipDuration), tone))
}

// Close shuts the speaker down.
func (p *Player) Close() {
	if p != nil && p.enabled {
		speaker.Close()
	}
}
