package flurry

import (
	"time"

	"go.uber.org/zap"
)

// debugStats accumulates per-step timing between debug log lines.
// Only populated when Engine.debug is true.
type debugStats struct {
	frames    int
	stepTime  time.Duration
	worstStep time.Duration
	window    float64 // simulated seconds since the last log line
}

// debugLogInterval is how much simulated time passes between debug log lines.
const debugLogInterval = 1.0

// SetDebugMode enables or disables step timing. When enabled, average and
// worst step durations are logged at debug level once per simulated second.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	e.stats = debugStats{}
}

func (e *Engine) debugRecord(d time.Duration, dt float64) {
	s := &e.stats
	s.frames++
	s.stepTime += d
	if d > s.worstStep {
		s.worstStep = d
	}
	s.window += dt
	if s.window < debugLogInterval {
		return
	}
	e.log.Debug("step timing",
		zap.Int("frames", s.frames),
		zap.Int("particles", e.Count()),
		zap.Duration("avg", s.stepTime/time.Duration(s.frames)),
		zap.Duration("worst", s.worstStep),
		zap.Float64("openness", e.state.Openness),
		zap.Stringer("shape", e.morph.Kind()),
	)
	*s = debugStats{}
}
