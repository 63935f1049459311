package flurry

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Engine defaults.
const (
	DefaultParticleCount = 6000
	DefaultParticleSize  = 0.08
	MaxParticleSize      = 0.35
)

// Config configures an Engine.
type Config struct {
	// Count is the number of particles. Must be positive.
	Count int
	// Shape is the initial target shape.
	Shape ShapeKind
	// Color is the initial particle color. The zero value selects DefaultColor.
	Color Color
	// ParticleSize is the base point size in scene units. Zero selects
	// DefaultParticleSize.
	ParticleSize float64
	// Seed seeds the engine's random source. Zero draws a fresh seed, so
	// stochastic shapes differ run to run.
	Seed uint64
	// Tuning overrides DefaultTuning when non-nil.
	Tuning *Tuning
	// Logger receives configuration and debug logs. Nil disables logging.
	Logger *zap.Logger
	// Events, if set, receives engine events.
	Events EventSink
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Count:        DefaultParticleCount,
		Shape:        ShapeSphere,
		Color:        DefaultColor,
		ParticleSize: DefaultParticleSize,
	}
}

// State is the smoothed, time-dependent part of the simulation.
type State struct {
	Openness float64 // smoothed openness in [0, 1]
	Rotation float64 // global rotation angle in radians
	Elapsed  float64 // simulated seconds
}

// Advance returns the state dt seconds later under sig. With no usable
// signal the openness target breathes around BreathCenter.
func (s State) Advance(sig *ControlSignal, dt float64, tn *Tuning) State {
	dt = sanitizeDT(dt)
	s.Elapsed += dt
	target := tn.BreathCenter + math.Sin(s.Elapsed*tn.BreathRate)*tn.BreathDepth
	if sig.usable() {
		target = clamp01(sig.Openness)
	}
	s.Openness = smoothToward(s.Openness, target, dt, tn.SmoothingRate)
	s.Rotation = s.Elapsed * tn.RotationRate
	return s
}

// maxStepDT bounds the time a single Step integrates. Longer frames (a
// stalled host, a dragged window) advance the simulation by this much only.
const maxStepDT = 0.1

// sanitizeDT maps negative, NaN and infinite frame deltas to 0.
func sanitizeDT(dt float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}
	return dt
}

// smoothToward is a time-based exponential low-pass step. The blend factor
// is capped at 1 so the result never passes target.
func smoothToward(cur, target, dt, rate float64) float64 {
	a := math.Min(1, dt*rate)
	return cur + (target-cur)*a
}

// Frame holds the per-frame visual parameters a renderer needs alongside
// the position buffer.
type Frame struct {
	Rotation       float64   // spin around the vertical axis, radians
	SizeMultiplier float64   // breathing pulse applied to the point size
	PointSize      float64   // ParticleSize * SizeMultiplier
	Color          Color     // current (possibly fading) color
	Openness       float64   // smoothed openness
	Expansion      float64   // scale applied to shape targets
	Shape          ShapeKind // active shape kind
	MorphProgress  float64   // 1 when settled
}

// Engine owns the particle buffers and advances them once per frame.
// It is not safe for concurrent use; hand signals from other goroutines
// through a SignalLatch.
type Engine struct {
	tuning Tuning
	log    *zap.Logger
	events EventSink
	rng    *rand.Rand

	positions []float32
	speeds    []float32
	sizes     []float32
	targets   [shapeKindCount][]float32

	morph *Morph
	state State
	pulse float64
	size  float64
	color colorTween

	debug bool
	stats debugStats
}

// NewEngine validates cfg, allocates every buffer and generates all shape
// targets up front.
func NewEngine(cfg Config) (*Engine, error) {
	if !cfg.Shape.Valid() {
		return nil, fmt.Errorf("new engine: %w: %d", ErrUnknownShape, uint8(cfg.Shape))
	}
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("new engine: %w: %d", ErrInvalidCount, cfg.Count)
	}
	if cfg.ParticleSize == 0 {
		cfg.ParticleSize = DefaultParticleSize
	}
	if err := checkParticleSize(cfg.ParticleSize); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if cfg.Color == (Color{}) {
		cfg.Color = DefaultColor
	}

	e := &Engine{
		tuning: DefaultTuning(),
		log:    cfg.Logger,
		events: cfg.Events,
		morph:  NewMorph(cfg.Shape),
		pulse:  1,
		size:   cfg.ParticleSize,
		color:  newColorTween(cfg.Color),
	}
	if cfg.Tuning != nil {
		e.tuning = *cfg.Tuning
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	e.state.Openness = e.tuning.BreathCenter

	e.allocate(cfg.Count)
	e.log.Info("engine configured",
		zap.Int("particles", cfg.Count),
		zap.Stringer("shape", cfg.Shape),
		zap.String("color", cfg.Color.Hex()),
		zap.Float64("particle_size", cfg.ParticleSize),
	)
	return e, nil
}

// allocate (re)builds every per-particle buffer for n particles.
func (e *Engine) allocate(n int) {
	e.positions = make([]float32, n*3)
	e.speeds = make([]float32, n)
	e.sizes = make([]float32, n)
	for k := range e.targets {
		e.targets[k] = make([]float32, n*3)
		generateInto(e.targets[k], ShapeKind(k), e.rng)
	}
	half := e.tuning.ScatterExtent / 2
	scatter := Range{Min: -half, Max: half}
	for i := range e.positions {
		e.positions[i] = float32(scatter.Random(e.rng))
	}
	for i := range e.sizes {
		s := e.tuning.SizeRange.Random(e.rng)
		e.sizes[i] = float32(s)
		e.speeds[i] = float32(e.tuning.ApproachBase + s*e.tuning.ApproachSizeGain)
	}
	e.morph.Settle()
}

// Step advances the simulation by dt seconds. sig may be nil when no input
// has arrived; malformed signals are treated the same way. dt is capped at
// 0.1s.
func (e *Engine) Step(dt float64, sig *ControlSignal) {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	dt = math.Min(sanitizeDT(dt), maxStepDT)
	e.state = e.state.Advance(sig, dt, &e.tuning)
	tn := &e.tuning
	expansion := tn.BaseExpansion + e.state.Openness*tn.ExpansionRange
	e.pulse = 1 + math.Sin(e.state.Elapsed*tn.PulseRate)*tn.PulseDepth

	if e.morph.Advance(dt, tn.MorphRate) {
		e.emit(Event{Type: EventMorphSettled, Shape: e.morph.Kind()})
	}

	f := fieldFrame{
		dt:        dt,
		elapsed:   e.state.Elapsed,
		openness:  e.state.Openness,
		expansion: expansion,
		pulse:     e.pulse,
	}
	if sig.usable() {
		f.present = true
		f.poi = sig.PointOfInterest
	}
	stepField(e.positions, e.targets[e.morph.Kind()], e.speeds, e.morph, f, tn)
	e.color.Update(dt)

	if e.debug {
		e.debugRecord(time.Since(t0), dt)
	}
}

// SetShapeKind starts a morph toward kind from the current live positions.
// Requesting the active kind is a no-op; requesting a new kind mid-morph
// restarts the morph from wherever particles are now.
func (e *Engine) SetShapeKind(kind ShapeKind) error {
	if !kind.Valid() {
		e.log.Warn("rejected shape request", zap.Uint8("kind", uint8(kind)))
		return fmt.Errorf("set shape: %w: %d", ErrUnknownShape, uint8(kind))
	}
	e.beginMorph(kind)
	return nil
}

// beginMorph switches to a valid kind, doing nothing when it is already
// active.
func (e *Engine) beginMorph(kind ShapeKind) {
	prev := e.morph.Kind()
	if kind == prev {
		return
	}
	e.morph.Begin(e.positions, kind)
	e.log.Info("shape changed", zap.Stringer("from", prev), zap.Stringer("to", kind))
	e.emit(Event{Type: EventShapeChanged, Shape: kind, Previous: prev})
}

// SetColor fades the particle color to c over Tuning.ColorFade seconds.
func (e *Engine) SetColor(c Color) {
	if c == e.color.Target() {
		return
	}
	e.color.retarget(c, e.tuning.ColorFade, ease.OutCubic)
	e.log.Info("color changed", zap.String("color", c.Hex()))
	e.emit(Event{Type: EventColorChanged, Color: c, Shape: e.morph.Kind()})
}

// SetParticleSize sets the base point size. It must lie in (0, MaxParticleSize].
func (e *Engine) SetParticleSize(size float64) error {
	if err := checkParticleSize(size); err != nil {
		return fmt.Errorf("set particle size: %w", err)
	}
	e.size = size
	return nil
}

// SetParticleCount reallocates every buffer for n particles and regenerates
// all shape targets. Particles restart from a random scatter; any morph in
// flight is dropped.
func (e *Engine) SetParticleCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("set particle count: %w: %d", ErrInvalidCount, n)
	}
	if n == e.Count() {
		return nil
	}
	prev := e.Count()
	e.allocate(n)
	e.log.Info("particle count changed", zap.Int("from", prev), zap.Int("to", n))
	e.emit(Event{Type: EventCountChanged, Count: n, Shape: e.morph.Kind()})
	return nil
}

// Trigger applies a recognized gesture. TriggerHeart switches to the heart
// shape in the love palette unless the heart is already active. It reports
// whether anything changed.
func (e *Engine) Trigger(t Trigger) bool {
	if t != TriggerHeart || e.morph.Kind() == ShapeHeart {
		return false
	}
	e.beginMorph(ShapeHeart)
	e.SetColor(PaletteLove.Color)
	return true
}

// Positions returns the live position buffer, 3 values per particle. The
// slice is owned by the engine and rewritten by every Step; callers must
// not modify it.
func (e *Engine) Positions() []float32 {
	return e.positions
}

// Sizes returns each particle's size factor, drawn once at allocation.
// Callers must not modify it.
func (e *Engine) Sizes() []float32 {
	return e.sizes
}

// Count returns the number of particles.
func (e *Engine) Count() int {
	return len(e.sizes)
}

// Shape returns the active shape kind.
func (e *Engine) Shape() ShapeKind {
	return e.morph.Kind()
}

// State returns the smoothed simulation state.
func (e *Engine) State() State {
	return e.state
}

// Tuning returns a pointer to the engine's motion constants for live tuning.
func (e *Engine) Tuning() *Tuning {
	return &e.tuning
}

// Frame returns the visual parameters for the current frame.
func (e *Engine) Frame() Frame {
	tn := &e.tuning
	return Frame{
		Rotation:       e.state.Rotation,
		SizeMultiplier: e.pulse,
		PointSize:      e.size * e.pulse,
		Color:          e.color.Color(),
		Openness:       e.state.Openness,
		Expansion:      tn.BaseExpansion + e.state.Openness*tn.ExpansionRange,
		Shape:          e.morph.Kind(),
		MorphProgress:  e.morph.Progress(),
	}
}

func (e *Engine) emit(ev Event) {
	if e.events != nil {
		e.events.EmitEvent(ev)
	}
}

func checkParticleSize(size float64) error {
	if !(size > 0) || size > MaxParticleSize {
		return fmt.Errorf("%w: %v", ErrInvalidParticleSize, size)
	}
	return nil
}
