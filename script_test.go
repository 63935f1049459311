package flurry

import (
	"errors"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "shape", "shape": "dna"},
			{"action": "palette", "palette": "ocean"},
			{"action": "color", "color": "#112233"},
			{"action": "signal", "openness": 0.9, "x": 0.5, "y": 0.5},
			{"action": "stroke", "preset": "heart", "label": "draw"},
			{"action": "stroke", "points": [[0, 0], [10, 10]]},
			{"action": "count", "count": 500},
			{"action": "wait", "frames": 3},
			{"action": "lost"}
		]
	}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.steps) != 9 {
		t.Fatalf("expected 9 steps, got %d", len(s.steps))
	}
	if s.steps[0].kind != ShapeHelix {
		t.Errorf("step 0 kind = %v", s.steps[0].kind)
	}
	if s.steps[1].color != PaletteOcean.Color {
		t.Errorf("step 1 color = %v", s.steps[1].color)
	}
	if s.steps[2].color.Hex() != "#112233" {
		t.Errorf("step 2 color = %v", s.steps[2].color.Hex())
	}
	if pts := s.steps[5].strokePoints(); len(pts) != 2 || pts[1] != (Vec2{10, 10}) {
		t.Errorf("step 5 points = %v", pts)
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "explode"}]}`},
		{"unknown shape", `{"steps": [{"action": "shape", "shape": "torus"}]}`},
		{"bad color", `{"steps": [{"action": "color", "color": "red"}]}`},
		{"unknown palette", `{"steps": [{"action": "palette", "palette": "mud"}]}`},
		{"stroke without points", `{"steps": [{"action": "stroke"}]}`},
		{"unknown preset", `{"steps": [{"action": "stroke", "preset": "star"}]}`},
		{"zero count", `{"steps": [{"action": "count", "count": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScript_WrapsSentinels(t *testing.T) {
	_, err := LoadScript([]byte(`{"steps": [{"action": "shape", "shape": "torus"}]}`))
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("err = %v, want ErrUnknownShape", err)
	}
}

func TestScript_Run(t *testing.T) {
	s, err := LoadScript([]byte(`{
		"steps": [
			{"action": "shape", "shape": "cube"},
			{"action": "wait", "frames": 3},
			{"action": "signal", "openness": 1, "x": 0.5, "y": 0.5},
			{"action": "stroke", "preset": "heart", "label": "draw"},
			{"action": "lost"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(t, 50, nil)
	rec := NewStrokeRecorder(nil, nil)

	var signals []*ControlSignal
	for frame := 0; !s.Done(); frame++ {
		if frame > 20 {
			t.Fatal("script never finished")
		}
		sig := s.Step(e, rec)
		signals = append(signals, sig)
		e.Step(frameDT, sig)
		if frame == 0 && e.Shape() != ShapeCube {
			t.Errorf("frame 0 shape = %v, want cube", e.Shape())
		}
	}

	if len(signals) != 7 {
		t.Fatalf("ran %d frames, want 7", len(signals))
	}
	for i := 0; i < 4; i++ {
		if signals[i] != nil {
			t.Errorf("frame %d signal = %+v, want nil", i, signals[i])
		}
	}
	if signals[4] == nil || signals[4].Openness != 1 || !signals[4].Presence {
		t.Errorf("frame 4 signal = %+v", signals[4])
	}
	if signals[6] != nil {
		t.Error("lost should clear the signal")
	}
	if e.Shape() != ShapeHeart {
		t.Errorf("shape = %v, want heart after the stroke", e.Shape())
	}
	if rec.Last().Matched != true {
		t.Error("recorder should hold the matched stroke")
	}
	if s.Label() != "" {
		t.Errorf("Label = %q, want the last step's empty label", s.Label())
	}
}

func TestScript_Label(t *testing.T) {
	s, _ := LoadScript([]byte(`{"steps": [{"action": "wait", "label": "pause"}, {"action": "lost"}]}`))
	if s.Label() != "" {
		t.Error("Label before any step should be empty")
	}
	e := newTestEngine(t, 5, nil)
	s.Step(e, NewStrokeRecorder(nil, nil))
	if s.Label() != "pause" {
		t.Errorf("Label = %q, want pause", s.Label())
	}
}
