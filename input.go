package flurry

import (
	"math"

	"go.uber.org/zap"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	defaultStrokeCap    = 256
)

// StrokeRecorder turns press / move / release pointer input into strokes
// and classifies each one on release. A press that never leaves the drag
// dead zone is a click and is never classified.
type StrokeRecorder struct {
	events   EventSink
	log      *zap.Logger
	deadZone float64

	down     bool
	dragging bool
	startX   float64
	startY   float64
	path     []Vec2
	last     StrokeResult
}

// NewStrokeRecorder creates a recorder that reports results to events
// (which may be nil) and logs rejections at debug level on log (nil for none).
func NewStrokeRecorder(events EventSink, log *zap.Logger) *StrokeRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &StrokeRecorder{
		events:   events,
		log:      log,
		deadZone: defaultDragDeadZone,
		path:     make([]Vec2, 0, defaultStrokeCap),
	}
}

// SetDragDeadZone sets the distance in pixels the pointer must travel
// before a press turns into a stroke.
func (r *StrokeRecorder) SetDragDeadZone(pixels float64) {
	r.deadZone = pixels
}

// Press begins a gesture at (x, y). Any unfinished stroke is discarded.
func (r *StrokeRecorder) Press(x, y float64) {
	r.down = true
	r.dragging = false
	r.startX, r.startY = x, y
	r.path = append(r.path[:0], Vec2{x, y})
}

// Move extends the gesture while the pointer is held.
func (r *StrokeRecorder) Move(x, y float64) {
	if !r.down {
		return
	}
	r.path = append(r.path, Vec2{x, y})
	if !r.dragging && math.Hypot(x-r.startX, y-r.startY) >= r.deadZone {
		r.dragging = true
	}
}

// Release ends the gesture at (x, y). It returns the classification and
// true when the gesture was a stroke, or false for a click. A release at
// the last recorded point adds nothing to the path.
func (r *StrokeRecorder) Release(x, y float64) (StrokeResult, bool) {
	if !r.down {
		return StrokeResult{}, false
	}
	if n := len(r.path); n == 0 || r.path[n-1] != (Vec2{x, y}) {
		r.Move(x, y)
	}
	r.down = false
	if !r.dragging {
		r.path = r.path[:0]
		return StrokeResult{}, false
	}
	r.dragging = false
	res := r.Classify(r.path)
	r.path = r.path[:0]
	return res, true
}

// Classify runs ClassifyStroke on points and reports the result.
func (r *StrokeRecorder) Classify(points []Vec2) StrokeResult {
	res := ClassifyStroke(points)
	r.last = res
	ev := Event{Type: EventStrokeRejected, Stroke: res}
	if res.Matched {
		ev.Type = EventStrokeRecognized
		r.log.Info("heart stroke recognized", zap.Int("points", res.Points))
	} else {
		r.log.Debug("stroke rejected",
			zap.Stringer("reason", res.Reason),
			zap.Int("points", res.Points),
			zap.Float64("width", res.Bounds.Width),
			zap.Float64("height", res.Bounds.Height),
		)
	}
	if r.events != nil {
		r.events.EmitEvent(ev)
	}
	return res
}

// Drawing reports whether a stroke is being collected.
func (r *StrokeRecorder) Drawing() bool {
	return r.dragging
}

// Path returns the points of the stroke in progress. The slice is reused
// by the recorder; copy it to keep it.
func (r *StrokeRecorder) Path() []Vec2 {
	return r.path
}

// Last returns the most recent classification.
func (r *StrokeRecorder) Last() StrokeResult {
	return r.last
}

// PointerSignal derives a control signal from a desktop pointer: the hover
// position becomes the point of interest and openness is nudged from the
// keyboard or wheel.
type PointerSignal struct {
	openness float64
	x, y     float64
	inside   bool
}

// NewPointerSignal returns a pointer source at neutral openness.
func NewPointerSignal() *PointerSignal {
	return &PointerSignal{openness: 0.5}
}

// Hover records the pointer position within a viewport of w by h pixels.
func (p *PointerSignal) Hover(x, y, w, h float64) {
	p.inside = w > 0 && h > 0 && x >= 0 && y >= 0 && x <= w && y <= h
	if p.inside {
		p.x, p.y = x/w, y/h
	}
}

// Leave marks the pointer as outside the viewport.
func (p *PointerSignal) Leave() {
	p.inside = false
}

// Nudge adds delta to the openness target, clamped to [0, 1].
func (p *PointerSignal) Nudge(delta float64) {
	p.openness = clamp01(p.openness + delta)
}

// Openness returns the current openness target.
func (p *PointerSignal) Openness() float64 {
	return p.openness
}

// Signal returns the control signal for the pointer state.
func (p *PointerSignal) Signal() ControlSignal {
	return ControlSignal{
		Openness:        p.openness,
		PointOfInterest: HandToScene(p.x, p.y),
		Presence:        p.inside,
	}
}
