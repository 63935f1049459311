package flurry

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// --- StrokeRecorder tests ---

func TestStrokeRecorder_ClickIsNotAStroke(t *testing.T) {
	var log eventLog
	r := NewStrokeRecorder(&log, nil)
	r.Press(100, 100)
	r.Move(102, 101) // inside the dead zone
	if r.Drawing() {
		t.Error("movement inside the dead zone started a stroke")
	}
	if _, ok := r.Release(102, 101); ok {
		t.Error("click reported as a stroke")
	}
	if len(log.events) != 0 {
		t.Errorf("click emitted %d events", len(log.events))
	}
}

func TestStrokeRecorder_MoveWithoutPress(t *testing.T) {
	r := NewStrokeRecorder(nil, nil)
	r.Move(10, 10)
	if len(r.Path()) != 0 || r.Drawing() {
		t.Error("Move without Press should be ignored")
	}
	if _, ok := r.Release(10, 10); ok {
		t.Error("Release without Press should report nothing")
	}
}

func TestStrokeRecorder_HeartRecognized(t *testing.T) {
	var log eventLog
	core, logs := observer.New(zap.InfoLevel)
	r := NewStrokeRecorder(&log, zap.New(core))

	res, ok := r.Replay(HeartStroke(400, 300, 240, 64))
	if !ok || !res.Matched {
		t.Fatalf("heart replay = %+v, %v", res, ok)
	}
	if len(log.events) != 1 || log.events[0].Type != EventStrokeRecognized {
		t.Fatalf("events = %+v", log.events)
	}
	if log.events[0].Stroke.Points != 64 {
		t.Errorf("event points = %d, want 64", log.events[0].Stroke.Points)
	}
	if r.Last() != res {
		t.Error("Last should return the latest result")
	}
	if logs.FilterMessage("heart stroke recognized").Len() != 1 {
		t.Error("missing recognition log")
	}
	if len(r.Path()) != 0 {
		t.Error("path should reset after release")
	}
}

func TestStrokeRecorder_LineRejected(t *testing.T) {
	var log eventLog
	r := NewStrokeRecorder(&log, nil)
	res, ok := r.Replay(LineStroke(0, 0, 300, 300, 30))
	if !ok || res.Matched || res.Reason != RejectOpen {
		t.Fatalf("line replay = %+v, %v", res, ok)
	}
	if log.count(EventStrokeRejected) != 1 {
		t.Errorf("events = %+v", log.events)
	}
}

func TestStrokeRecorder_ReleaseAtLastPoint(t *testing.T) {
	pts := HeartStroke(400, 300, 240, 64)
	r := NewStrokeRecorder(nil, nil)
	r.Press(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.Move(p.X, p.Y)
	}
	last := pts[len(pts)-1]
	res, ok := r.Release(last.X, last.Y)
	if !ok || res.Points != 64 {
		t.Errorf("release at last move = %d points, %v; want 64, true", res.Points, ok)
	}

	r.Press(0, 0)
	r.Move(100, 0)
	res, _ = r.Release(200, 0)
	if res.Points != 3 {
		t.Errorf("release past last move = %d points, want 3", res.Points)
	}
}

func TestStrokeRecorder_PressDiscardsUnfinished(t *testing.T) {
	r := NewStrokeRecorder(nil, nil)
	r.Press(0, 0)
	r.Move(50, 50)
	r.Press(200, 200)
	if len(r.Path()) != 1 || r.Drawing() {
		t.Errorf("path = %v after a second press", r.Path())
	}
}

func TestStrokeRecorder_DeadZone(t *testing.T) {
	r := NewStrokeRecorder(nil, nil)
	r.SetDragDeadZone(20)
	r.Press(0, 0)
	r.Move(10, 0)
	if r.Drawing() {
		t.Error("10px move started a stroke with a 20px dead zone")
	}
	r.Move(25, 0)
	if !r.Drawing() {
		t.Error("25px move should start a stroke")
	}
}

func TestReplay_Empty(t *testing.T) {
	r := NewStrokeRecorder(nil, nil)
	if _, ok := r.Replay(nil); ok {
		t.Error("empty replay reported a stroke")
	}
	if _, ok := r.Replay([]Vec2{{5, 5}}); ok {
		t.Error("single point replay reported a stroke")
	}
}

// --- Synthetic stroke tests ---

func TestSyntheticStrokes(t *testing.T) {
	h := HeartStroke(400, 300, 240, 64)
	if len(h) != 64 {
		t.Fatalf("len = %d", len(h))
	}
	assertWithin(t, "heart closes x", h[0].X, h[63].X, 1e-9)
	assertWithin(t, "heart closes y", h[0].Y, h[63].Y, 1e-9)
	if h[10].X >= 400 {
		t.Errorf("heart should sweep left first, point 10 at x=%v", h[10].X)
	}

	c := CircleStroke(0, 0, 10, 5)
	assertWithin(t, "circle top", c[0].Y, -10, 1e-9)
	assertWithin(t, "circle left", c[1].X, -10, 1e-9)

	l := LineStroke(0, 0, 10, 20, 3)
	if l[1] != (Vec2{5, 10}) {
		t.Errorf("line midpoint = %v", l[1])
	}
	if len(LineStroke(0, 0, 1, 1, 0)) != 2 {
		t.Error("n below 2 should clamp to 2")
	}
}

// --- PointerSignal tests ---

func TestPointerSignal(t *testing.T) {
	p := NewPointerSignal()
	if p.Signal().Presence {
		t.Error("no presence before hover")
	}
	p.Hover(200, 150, 800, 600)
	sig := p.Signal()
	if !sig.Presence || sig.PointOfInterest != HandToScene(0.25, 0.25) {
		t.Errorf("hover signal = %+v", sig)
	}
	assertNear(t, "Openness", sig.Openness, 0.5)

	p.Nudge(0.3)
	p.Nudge(0.3)
	assertNear(t, "Openness clamped", p.Openness(), 1)
	p.Nudge(-2)
	assertNear(t, "Openness clamped low", p.Openness(), 0)

	p.Hover(900, 100, 800, 600)
	if p.Signal().Presence {
		t.Error("outside the viewport should drop presence")
	}
	p.Hover(10, 10, 800, 600)
	p.Leave()
	if p.Signal().Presence {
		t.Error("Leave should drop presence")
	}
}

func TestStrokePreset(t *testing.T) {
	want := map[string]bool{"heart": true, "circle": true, "line": false}
	for _, name := range StrokePresetNames {
		pts, ok := StrokePreset(name)
		if !ok {
			t.Fatalf("preset %q missing", name)
		}
		if got := ClassifyStroke(pts).Matched; got != want[name] {
			t.Errorf("preset %q matched = %v, want %v", name, got, want[name])
		}
	}
	if _, ok := StrokePreset("star"); ok {
		t.Error("unknown preset should not resolve")
	}
}
