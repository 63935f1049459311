package flurry

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// ControlSignal is the per-tick input produced by a hand tracker or a
// touch/mouse simulator. The engine only reads it.
type ControlSignal struct {
	// Openness is the target openness in [0, 1]; 1 is an open hand.
	Openness float64
	// PointOfInterest is the scene-space position particles react to.
	PointOfInterest mgl32.Vec3
	// Presence reports whether live input is currently available.
	Presence bool
}

// usable reports whether s can drive the field. Missing or non-finite
// signals fall back to breathing mode.
func (s *ControlSignal) usable() bool {
	if s == nil || !s.Presence {
		return false
	}
	if math.IsNaN(s.Openness) || math.IsInf(s.Openness, 0) {
		return false
	}
	for _, c := range s.PointOfInterest {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

// SignalLatch hands the latest ControlSignal from a producer goroutine to the
// render loop. Load never blocks and returns the last published value until a
// newer one arrives.
type SignalLatch struct {
	cur atomic.Pointer[ControlSignal]
	seq atomic.Uint64
}

// Publish replaces the latched signal.
func (l *SignalLatch) Publish(s ControlSignal) {
	l.cur.Store(&s)
	l.seq.Add(1)
}

// Load returns the most recent signal, or nil if nothing was published yet.
func (l *SignalLatch) Load() *ControlSignal {
	return l.cur.Load()
}

// Seq returns the number of signals published so far.
func (l *SignalLatch) Seq() uint64 {
	return l.seq.Load()
}

// Hand tracker mapping from normalized image coordinates to scene space.
const (
	handSpanX       = 8.0
	handSpanY       = 5.0
	handDepth       = 2.0
	gestureMinScore = 0.5
)

// HandToScene maps a normalized wrist position (x, y in [0,1], y down) to the
// scene-space point of interest.
func HandToScene(x, y float64) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((x - 0.5) * handSpanX),
		float32(-(y - 0.5) * handSpanY),
		handDepth,
	}
}

// HandGesture is a named gesture produced by an external recognizer.
type HandGesture string

const (
	GestureNone       HandGesture = "None"
	GestureOpenPalm   HandGesture = "Open_Palm"
	GestureClosedFist HandGesture = "Closed_Fist"
	GestureVictory    HandGesture = "Victory"
	GestureILoveYou   HandGesture = "ILoveYou"
)

// HandState folds recognizer output into a ControlSignal.
type HandState struct {
	openness float64
	hand     mgl32.Vec2
	present  bool
	gesture  HandGesture
}

// Observe records one recognizer result. Results scoring at or below 0.5
// are ignored. Open palm and closed fist set the openness target; other
// gestures keep the previous one. wrist, if non-nil, is the normalized
// wrist landmark. Victory and I-love-you gestures return TriggerHeart.
func (h *HandState) Observe(g HandGesture, score float64, wrist *mgl32.Vec3) Trigger {
	if score <= gestureMinScore {
		return TriggerNone
	}
	switch g {
	case GestureOpenPalm:
		h.openness = 1
	case GestureClosedFist:
		h.openness = 0
	}
	h.gesture = g
	h.present = true
	if wrist != nil {
		h.hand = wrist.Vec2()
	}
	if g == GestureVictory || g == GestureILoveYou {
		return TriggerHeart
	}
	return TriggerNone
}

// Lost marks the hand as gone; the engine falls back to breathing.
func (h *HandState) Lost() {
	h.present = false
	h.gesture = GestureNone
}

// Gesture returns the last accepted gesture.
func (h *HandState) Gesture() HandGesture {
	return h.gesture
}

// Signal returns the control signal for the current hand state.
func (h *HandState) Signal() ControlSignal {
	return ControlSignal{
		Openness:        h.openness,
		PointOfInterest: HandToScene(float64(h.hand.X()), float64(h.hand.Y())),
		Presence:        h.present,
	}
}
