package flurry

import "github.com/tanema/gween/ease"

// Morph blends particle targets from a snapshot of live positions toward a
// new shape. It is Settled when progress is 1 and no snapshot is held, and
// Morphing otherwise.
type Morph struct {
	previous []float32
	progress float64
	kind     ShapeKind
	eased    float32
	ease     ease.TweenFunc
}

// NewMorph returns a settled Morph on kind.
func NewMorph(kind ShapeKind) *Morph {
	return &Morph{progress: 1, kind: kind, eased: 1, ease: ease.OutCubic}
}

// Kind returns the shape the morph is heading to (or resting on).
func (m *Morph) Kind() ShapeKind {
	return m.kind
}

// Progress returns the morph progress in [0, 1].
func (m *Morph) Progress() float64 {
	return m.progress
}

// Morphing reports whether a morph is in flight.
func (m *Morph) Morphing() bool {
	return m.previous != nil
}

// Begin starts a morph toward kind from the live positions. A morph already
// in flight is discarded: the new source is wherever particles are now.
func (m *Morph) Begin(live []float32, kind ShapeKind) {
	m.previous = make([]float32, len(live))
	copy(m.previous, live)
	m.progress = 0
	m.eased = 0
	m.kind = kind
}

// Advance moves progress forward by dt*rate, clamped to 1. It reports
// whether this call settled the morph, in which case the snapshot has been
// released.
func (m *Morph) Advance(dt, rate float64) bool {
	if m.previous == nil {
		return false
	}
	if dt > 0 && rate > 0 {
		m.progress += dt * rate
	}
	if m.progress >= 1 {
		m.progress = 1
		m.eased = 1
		m.previous = nil
		return true
	}
	m.eased = m.ease(float32(m.progress), 0, 1, 1)
	return false
}

// Settle ends any morph immediately.
func (m *Morph) Settle() {
	m.previous = nil
	m.progress = 1
	m.eased = 1
}

// Blend returns the blended target for component j (a flat buffer index) of
// target, scaled by expansion. The snapshot is not scaled: it holds live
// positions that already include the expansion they were rendered with.
func (m *Morph) Blend(j int, target []float32, expansion float64) float64 {
	t := float64(target[j]) * expansion
	if m.previous == nil {
		return t
	}
	return lerp(float64(m.previous[j]), t, float64(m.eased))
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
