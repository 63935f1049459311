// Package handsim stands in for a camera hand tracker. It replays a looping
// gesture routine through flurry.HandState and publishes the resulting
// control signals on a latch at a fixed cadence, from its own goroutine.
package handsim

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/flurry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config controls the simulated tracker.
type Config struct {
	Rate   float64       // signals per second
	Burst  int           // limiter burst
	Period time.Duration // length of one gesture routine
}

// DefaultConfig matches a typical webcam recognizer cadence.
func DefaultConfig() Config {
	return Config{Rate: 30, Burst: 1, Period: 12 * time.Second}
}

// step is one stretch of the routine, starting at phase from (in [0, 1)).
type step struct {
	from    float64
	gesture flurry.HandGesture
	score   float64
}

// routine opens, closes, flashes a victory sign, drops out of view briefly,
// then opens again.
var routine = []step{
	{0.00, flurry.GestureOpenPalm, 0.9},
	{0.40, flurry.GestureClosedFist, 0.85},
	{0.80, flurry.GestureVictory, 0.8},
	{0.85, flurry.GestureNone, 0},
	{0.90, flurry.GestureOpenPalm, 0.9},
}

// Simulator publishes simulated hand signals.
type Simulator struct {
	cfg      Config
	latch    *flurry.SignalLatch
	limiter  *rate.Limiter
	log      *zap.Logger
	hand     flurry.HandState
	last     flurry.HandGesture
	triggers chan flurry.Trigger
}

// New returns a simulator that publishes on latch.
func New(cfg Config, latch *flurry.SignalLatch, log *zap.Logger) (*Simulator, error) {
	if cfg.Rate <= 0 || cfg.Burst <= 0 {
		return nil, errors.New("handsim: rate and burst must be positive")
	}
	if cfg.Period <= 0 {
		return nil, errors.New("handsim: period must be positive")
	}
	if latch == nil {
		return nil, errors.New("handsim: nil latch")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{
		cfg:      cfg,
		latch:    latch,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		log:      log.Named("handsim"),
		triggers: make(chan flurry.Trigger, 1),
	}, nil
}

// Triggers delivers recognized gesture triggers. A trigger is dropped if the
// previous one has not been received yet.
func (s *Simulator) Triggers() <-chan flurry.Trigger {
	return s.triggers
}

// Run publishes signals until ctx is done. It returns nil on cancellation.
func (s *Simulator) Run(ctx context.Context) error {
	start := time.Now()
	s.log.Info("hand simulator started", zap.Float64("rate", s.cfg.Rate), zap.Duration("period", s.cfg.Period))
	defer s.log.Info("hand simulator stopped")
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.tick(time.Since(start))
	}
}

// tick observes the routine at elapsed and publishes the hand signal.
func (s *Simulator) tick(elapsed time.Duration) {
	phase := math.Mod(elapsed.Seconds()/s.cfg.Period.Seconds(), 1)
	st := routine[0]
	for _, r := range routine {
		if phase >= r.from {
			st = r
		}
	}

	if st.gesture == flurry.GestureNone {
		if s.last != flurry.GestureNone {
			s.hand.Lost()
			s.log.Debug("hand lost")
		}
	} else {
		wrist := mgl32.Vec3{
			float32(0.5 + 0.3*math.Sin(2*math.Pi*phase)),
			float32(0.5 + 0.2*math.Sin(4*math.Pi*phase)),
			0,
		}
		trig := s.hand.Observe(st.gesture, st.score, &wrist)
		if trig != flurry.TriggerNone && st.gesture != s.last {
			select {
			case s.triggers <- trig:
			default:
			}
			s.log.Debug("gesture trigger", zap.String("gesture", string(st.gesture)))
		}
	}
	s.last = st.gesture
	s.latch.Publish(s.hand.Signal())
}
