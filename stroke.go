package flurry

import (
	"fmt"
	"math"
)

// Stroke classifier gates. Sizes are in raw pointer pixels; the rest are in
// the stroke's own normalized [0,1] bounding box.
const (
	StrokeMinPoints  = 20
	StrokeMinExtent  = 50.0
	strokeMaxGap     = 0.3
	strokeCuspMinY   = 0.8
	strokeCenterLow  = 0.3
	strokeCenterHigh = 0.7
)

// StrokeReject names the first classifier gate a stroke failed.
type StrokeReject uint8

const (
	RejectNone     StrokeReject = iota // stroke matched
	RejectTooShort                     // fewer than StrokeMinPoints points
	RejectTooSmall                     // bounding box narrower or shorter than StrokeMinExtent
	RejectOpen                         // endpoints too far apart to be a closed loop
	RejectNoCusp                       // lowest point is not bottom-centered
	RejectNoLobes                      // missing left or right lobe excursion
)

var rejectNames = [...]string{"none", "too-short", "too-small", "open", "no-cusp", "no-lobes"}

func (r StrokeReject) String() string {
	if int(r) >= len(rejectNames) {
		return fmt.Sprintf("StrokeReject(%d)", uint8(r))
	}
	return rejectNames[r]
}

// StrokeResult is the outcome of ClassifyStroke.
type StrokeResult struct {
	Matched bool
	Reason  StrokeReject
	Points  int
	Bounds  Rect
}

// ClassifyStroke decides whether a freehand pointer path looks like a heart.
//
// It is a coarse topology check, not a curve fit: the path must be long
// enough, large enough, closed, have its lowest point bottom-centered (the
// cusp) and swing left before the cusp and right after it. Pointer Y grows
// downward, so the cusp is the point with the largest normalized Y.
func ClassifyStroke(points []Vec2) StrokeResult {
	res := StrokeResult{Points: len(points)}
	if len(points) < StrokeMinPoints {
		res.Reason = RejectTooShort
		return res
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY
	res.Bounds = Rect{X: minX, Y: minY, Width: w, Height: h}
	if w < StrokeMinExtent || h < StrokeMinExtent {
		res.Reason = RejectTooSmall
		return res
	}

	norm := func(p Vec2) Vec2 {
		return Vec2{X: (p.X - minX) / w, Y: (p.Y - minY) / h}
	}

	first, last := norm(points[0]), norm(points[len(points)-1])
	if math.Hypot(first.X-last.X, first.Y-last.Y) > strokeMaxGap {
		res.Reason = RejectOpen
		return res
	}

	cusp := 0
	cuspY := -1.0
	for i, p := range points {
		if y := norm(p).Y; y > cuspY {
			cuspY = y
			cusp = i
		}
	}
	c := norm(points[cusp])
	if c.Y < strokeCuspMinY || c.X < strokeCenterLow || c.X > strokeCenterHigh {
		res.Reason = RejectNoCusp
		return res
	}

	wentLeft := false
	for _, p := range points[:cusp] {
		if norm(p).X < strokeCenterLow {
			wentLeft = true
			break
		}
	}
	wentRight := false
	for _, p := range points[cusp:] {
		if norm(p).X > strokeCenterHigh {
			wentRight = true
			break
		}
	}
	if !wentLeft || !wentRight {
		res.Reason = RejectNoLobes
		return res
	}

	res.Matched = true
	return res
}
