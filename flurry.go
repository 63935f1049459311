package flurry

import (
	"fmt"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D point in pointer (device pixel) space. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// ShapeKind selects one of the procedural target clouds.
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota // Fibonacci sphere, deterministic
	ShapeCube                    // uniform fill of an axis-aligned cube
	ShapeGalaxy                  // three-armed flattened spiral
	ShapeHelix                   // two counter-phase strands
	ShapeHeart                   // parametric heart with depth
	shapeKindCount
)

// ShapeCycle is the order a double tap walks through shapes.
var ShapeCycle = []ShapeKind{ShapeSphere, ShapeHeart, ShapeGalaxy, ShapeHelix, ShapeCube}

var shapeNames = [shapeKindCount]string{"sphere", "cube", "galaxy", "helix", "heart"}

// String returns the lowercase shape name.
func (k ShapeKind) String() string {
	if k >= shapeKindCount {
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
	return shapeNames[k]
}

// Valid reports whether k names a known shape.
func (k ShapeKind) Valid() bool {
	return k < shapeKindCount
}

// ParseShapeKind maps a shape name to its ShapeKind. "dna" and "twist" are
// accepted as aliases for helix.
func ParseShapeKind(name string) (ShapeKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "dna", "twist":
		return ShapeHelix, nil
	}
	for i, n := range shapeNames {
		if n == name {
			return ShapeKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Trigger is a symbolic request raised by gesture recognition.
type Trigger uint8

const (
	TriggerNone  Trigger = iota // nothing recognized
	TriggerHeart                // heart stroke or victory gesture
)

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventShapeChanged     EventType = iota // active shape kind changed, morph started
	EventMorphSettled                      // morph progress reached 1
	EventColorChanged                      // SetColor accepted a new color
	EventCountChanged                      // particle buffers were reallocated
	EventStrokeRecognized                  // a stroke passed every classifier gate
	EventStrokeRejected                    // a stroke failed a classifier gate
)

var eventNames = [...]string{"shape-changed", "morph-settled", "color-changed", "count-changed", "stroke-recognized", "stroke-rejected"}

func (t EventType) String() string {
	if int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
	return eventNames[t]
}

// Event carries engine and stroke notifications to an EventSink.
type Event struct {
	Type     EventType
	Shape    ShapeKind
	Previous ShapeKind
	Color    Color
	Count    int
	Stroke   StrokeResult
}

// EventSink receives engine events. Set one on Config or StrokeRecorder to
// bridge events into an ECS or UI layer.
type EventSink interface {
	EmitEvent(event Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(Event)

// EmitEvent calls f(event).
func (f EventFunc) EmitEvent(event Event) {
	f(event)
}

// clamp01 limits v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
