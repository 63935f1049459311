package chime

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/flurry"
	"go.uber.org/zap"
)

// Player mixes chimes into the speaker and reacts to engine events: the
// heart chime when the heart shape starts, a blip for rejected strokes.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	master  *effects.Volume
	log     *zap.Logger
	started bool
}

// NewPlayer returns a player at the given sample rate. volume is a log2 gain
// applied to everything it plays (0 is unity, -1 is half). Nothing is heard
// until Start.
func NewPlayer(rate int, volume float64, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	mixer := &beep.Mixer{}
	return &Player{
		rate:   beep.SampleRate(rate),
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: volume, Silent: math.IsInf(volume, -1)},
		log:    log.Named("chime"),
	}
}

// Start opens the speaker and begins streaming the mix.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.master)
	p.started = true
	p.log.Debug("speaker started", zap.Int("sample_rate", int(p.rate)))
	return nil
}

// Close stops every sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.started = false
}

// Play queues s on the mix. It is dropped when the player is not started.
func (p *Player) Play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// EmitEvent implements flurry.EventSink.
func (p *Player) EmitEvent(ev flurry.Event) {
	if s := p.soundFor(ev); s != nil {
		p.Play(s)
	}
}

func (p *Player) soundFor(ev flurry.Event) beep.Streamer {
	switch {
	case ev.Type == flurry.EventShapeChanged && ev.Shape == flurry.ShapeHeart:
		return Heart(p.rate)
	case ev.Type == flurry.EventStrokeRejected:
		return Blip(p.rate)
	}
	return nil
}
