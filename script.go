package flurry

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var scriptJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// scriptStep is a single action in a script.
type scriptStep struct {
	Action   string       `json:"action"`
	Label    string       `json:"label,omitempty"`
	Shape    string       `json:"shape,omitempty"`
	Color    string       `json:"color,omitempty"`
	Palette  string       `json:"palette,omitempty"`
	Openness float64      `json:"openness,omitempty"`
	X        float64      `json:"x,omitempty"`
	Y        float64      `json:"y,omitempty"`
	Preset   string       `json:"preset,omitempty"`
	Points   [][2]float64 `json:"points,omitempty"`
	Count    int          `json:"count,omitempty"`
	Frames   int          `json:"frames,omitempty"`

	// resolved at load time
	kind  ShapeKind
	color Color
}

// scriptDoc is the top-level JSON structure of a script.
type scriptDoc struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences engine commands, control signals and strokes across
// frames for headless runs and automated checks. Call Step once per frame.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	signal    *ControlSignal
	done      bool
}

// LoadScript parses and validates a JSON script. Unknown actions, shapes,
// colors and presets are rejected here rather than mid-run.
func LoadScript(data []byte) (*Script, error) {
	var doc scriptDoc
	if err := scriptJSON.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i := range doc.Steps {
		if err := doc.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

func (st *scriptStep) resolve() error {
	switch st.Action {
	case "shape":
		k, err := ParseShapeKind(st.Shape)
		if err != nil {
			return err
		}
		st.kind = k
	case "color":
		c, err := ParseHexColor(st.Color)
		if err != nil {
			return err
		}
		st.color = c
	case "palette":
		p, ok := LookupPalette(st.Palette)
		if !ok {
			return fmt.Errorf("unknown palette %q", st.Palette)
		}
		st.color = p.Color
	case "stroke":
		if st.Preset == "" && len(st.Points) == 0 {
			return fmt.Errorf("stroke needs a preset or points")
		}
		if st.Preset != "" {
			if _, ok := strokePresets[st.Preset]; !ok {
				return fmt.Errorf("unknown stroke preset %q", st.Preset)
			}
		}
	case "count":
		if st.Count <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidCount, st.Count)
		}
	case "signal", "lost", "wait":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// Label returns the label of the most recently executed step.
func (s *Script) Label() string {
	if s.cursor == 0 {
		return ""
	}
	return s.steps[s.cursor-1].Label
}

// Step runs at most one script step and returns the control signal to feed
// into Engine.Step for this frame (nil when no input is present). Matched
// strokes trigger the heart on e.
func (s *Script) Step(e *Engine, rec *StrokeRecorder) *ControlSignal {
	if s.done {
		return s.signal
	}
	if s.waitCount > 0 {
		s.waitCount--
		return s.signal
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return s.signal
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "shape":
		_ = e.SetShapeKind(st.kind)
	case "color", "palette":
		e.SetColor(st.color)
	case "count":
		_ = e.SetParticleCount(st.Count)
	case "signal":
		s.signal = &ControlSignal{
			Openness:        clamp01(st.Openness),
			PointOfInterest: HandToScene(st.X, st.Y),
			Presence:        true,
		}
	case "lost":
		s.signal = nil
	case "stroke":
		pts := st.strokePoints()
		if res, ok := rec.Replay(pts); ok && res.Matched {
			e.Trigger(TriggerHeart)
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
	return s.signal
}

func (st *scriptStep) strokePoints() []Vec2 {
	if st.Preset != "" {
		return strokePresets[st.Preset]()
	}
	pts := make([]Vec2, len(st.Points))
	for i, p := range st.Points {
		pts[i] = Vec2{X: p[0], Y: p[1]}
	}
	return pts
}
