// Package chime synthesizes the short sounds that acknowledge a recognized
// heart and plays them through the system speaker.
package chime

import (
	"time"

	"github.com/gopxl/beep"
)

// Bell and blip timing.
const (
	BellDuration    = 900 * time.Millisecond
	bellAttack      = 5 * time.Millisecond
	bellRelease     = 800 * time.Millisecond
	overtoneRelease = 400 * time.Millisecond
	secondBellDelay = 120 * time.Millisecond

	BlipDuration = 80 * time.Millisecond
	blipRelease  = 60 * time.Millisecond
)

// Bell returns a single bell strike at freq: the fundamental plus a quieter
// octave overtone that dies away first.
func Bell(freq float64, rate beep.SampleRate) beep.Streamer {
	fund := newEnvelope(newSine(freq, BellDuration, rate), BellDuration, bellAttack, bellRelease, rate)
	over := newEnvelope(newSine(freq*2, BellDuration, rate), BellDuration, bellAttack, overtoneRelease, rate)
	return beep.Mix(gain(fund, 0.7), gain(over, 0.3))
}

// Heart returns the recognition chime: A5 followed by E6 a moment later.
func Heart(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		gain(Bell(880, rate), 0.6),
		beep.Seq(beep.Silence(rate.N(secondBellDelay)), gain(Bell(1318.5, rate), 0.5)),
	)
}

// Blip returns a soft low tick for a stroke that was not a heart.
func Blip(rate beep.SampleRate) beep.Streamer {
	osc := newSine(220, BlipDuration, rate)
	return gain(newEnvelope(osc, BlipDuration, bellAttack, blipRelease, rate), 0.25)
}
