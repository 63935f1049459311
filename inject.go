package flurry

import "math"

// Synthetic strokes stand in for a person drawing with the pointer. They are
// used by scripts, the classify command and tests, the same way injected
// drags replay pointer input.

// strokePresets are the synthetic strokes available by name.
var strokePresets = map[string]func() []Vec2{
	"heart":  func() []Vec2 { return HeartStroke(400, 300, 240, 64) },
	"circle": func() []Vec2 { return CircleStroke(400, 300, 120, 48) },
	"line":   func() []Vec2 { return LineStroke(100, 300, 700, 300, 30) },
}

// StrokePresetNames lists the preset strokes in sorted order.
var StrokePresetNames = []string{"circle", "heart", "line"}

// StrokePreset returns the synthetic stroke called name, drawn on an
// 800x600 canvas.
func StrokePreset(name string) ([]Vec2, bool) {
	f, ok := strokePresets[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// HeartStroke returns a closed heart outline of n points centered on (cx, cy)
// and roughly size pixels tall, in pointer space (Y down). The path starts at
// the top notch, sweeps the left lobe, reaches the bottom cusp, then the
// right lobe and returns to the start.
func HeartStroke(cx, cy, size float64, n int) []Vec2 {
	if n < 2 {
		n = 2
	}
	// The curve spans x in [-16, 16] and y in [-17, 12].
	s := size / 29
	pts := make([]Vec2, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n-1)
		x, y := heartCurve(t)
		pts[i] = Vec2{X: cx - x*s, Y: cy - (y+2.5)*s}
	}
	return pts
}

// CircleStroke returns a closed circle of n points starting at the top and
// running counter-clockwise on screen (left side first).
func CircleStroke(cx, cy, radius float64, n int) []Vec2 {
	if n < 2 {
		n = 2
	}
	pts := make([]Vec2, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n-1)
		pts[i] = Vec2{X: cx - radius*math.Sin(t), Y: cy - radius*math.Cos(t)}
	}
	return pts
}

// LineStroke returns n points evenly spaced from (x0, y0) to (x1, y1).
func LineStroke(x0, y0, x1, y1 float64, n int) []Vec2 {
	if n < 2 {
		n = 2
	}
	pts := make([]Vec2, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = Vec2{X: lerp(x0, x1, t), Y: lerp(y0, y1, t)}
	}
	return pts
}

// Replay feeds points through r as one press / move / release gesture and
// returns the classification.
func (r *StrokeRecorder) Replay(points []Vec2) (StrokeResult, bool) {
	if len(points) == 0 {
		return StrokeResult{}, false
	}
	r.Press(points[0].X, points[0].Y)
	for i := 1; i < len(points)-1; i++ {
		r.Move(points[i].X, points[i].Y)
	}
	last := points[len(points)-1]
	return r.Release(last.X, last.Y)
}
