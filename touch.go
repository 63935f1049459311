package flurry

import (
	"math"
	"time"
)

const (
	doubleTapWindow = 300 * time.Millisecond
	swipeGain       = 2.0
	relaxFactor     = 0.1
	relaxEpsilon    = 0.01
)

// TouchController simulates a hand on touch screens. A vertical swipe sets
// openness (up opens, down closes), the finger position is the point of
// interest, and a double tap asks for the next shape in ShapeCycle. After
// the finger lifts, openness relaxes back to neutral one Tick at a time.
type TouchController struct {
	viewW, viewH float64

	active   bool
	relaxing bool
	startY   float64
	x, y     float64
	openness float64
	lastTap  time.Time
	cycle    int
}

// NewTouchController returns a controller for a viewport of w by h pixels.
func NewTouchController(w, h float64) *TouchController {
	return &TouchController{viewW: w, viewH: h, openness: 0.5}
}

// Resize updates the viewport size.
func (t *TouchController) Resize(w, h float64) {
	t.viewW, t.viewH = w, h
}

// Start registers a finger landing at (x, y). On a double tap it returns the
// next shape in the cycle and true.
func (t *TouchController) Start(x, y float64, now time.Time) (ShapeKind, bool) {
	t.active = true
	t.relaxing = false
	t.startY = y
	t.setPosition(x, y)

	double := !t.lastTap.IsZero() && now.Sub(t.lastTap) < doubleTapWindow
	t.lastTap = now
	if !double {
		return 0, false
	}
	t.cycle = (t.cycle + 1) % len(ShapeCycle)
	return ShapeCycle[t.cycle], true
}

// SyncShape aligns the double-tap cycle with kind, the shape currently
// shown, so the next double tap asks for the shape after it. Kinds outside
// ShapeCycle leave the cycle unchanged.
func (t *TouchController) SyncShape(kind ShapeKind) {
	for i, k := range ShapeCycle {
		if k == kind {
			t.cycle = i
			return
		}
	}
}

// Move tracks the finger. Openness follows the vertical distance from the
// touch start, normalized by the viewport height.
func (t *TouchController) Move(x, y float64) {
	if !t.active {
		return
	}
	if t.viewH > 0 {
		t.openness = clamp01(0.5 + (t.startY-y)/t.viewH*swipeGain)
	}
	t.setPosition(x, y)
}

// End registers the finger lifting; openness starts relaxing toward 0.5.
func (t *TouchController) End() {
	if !t.active {
		return
	}
	t.active = false
	t.relaxing = true
}

// Tick advances the post-release relaxation by one step.
func (t *TouchController) Tick() {
	if !t.relaxing {
		return
	}
	t.openness += (0.5 - t.openness) * relaxFactor
	if math.Abs(t.openness-0.5) <= relaxEpsilon {
		t.openness = 0.5
		t.relaxing = false
	}
}

// Openness returns the current openness target.
func (t *TouchController) Openness() float64 {
	return t.openness
}

// Signal returns the control signal for the current touch state. Presence
// holds while a finger is down and while openness is still relaxing.
func (t *TouchController) Signal() ControlSignal {
	return ControlSignal{
		Openness:        t.openness,
		PointOfInterest: HandToScene(t.x, t.y),
		Presence:        t.active || t.relaxing,
	}
}

func (t *TouchController) setPosition(x, y float64) {
	if t.viewW > 0 && t.viewH > 0 {
		t.x, t.y = x/t.viewW, y/t.viewH
	}
}
