package ecs

import (
	"github.com/phanxgames/flurry"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for flurry events. Events are
// queued on publish and delivered by ProcessEvents.
var EngineEventType = events.NewEventType[flurry.Event]()

// SceneState mirrors the engine's observable state.
type SceneState struct {
	Shape     flurry.ShapeKind
	Color     flurry.Color
	Count     int
	Morphing  bool
	Hearts    int // recognized heart strokes
	Rejected  int // rejected strokes
	LastEvent flurry.EventType
}

// Scene is the component holding SceneState.
var Scene = donburi.NewComponentType[SceneState]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink that publishes to EngineEventType on
// world.
func NewDonburiSink(world donburi.World) flurry.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event flurry.Event) {
	EngineEventType.Publish(s.world, event)
}

// Track creates an entity holding SceneState and subscribes it to
// EngineEventType. It returns the entity.
func Track(world donburi.World) donburi.Entity {
	entity := world.Create(Scene)
	EngineEventType.Subscribe(world, func(w donburi.World, ev flurry.Event) {
		if !w.Valid(entity) {
			return
		}
		apply(Scene.Get(w.Entry(entity)), ev)
	})
	return entity
}

func apply(st *SceneState, ev flurry.Event) {
	st.LastEvent = ev.Type
	switch ev.Type {
	case flurry.EventShapeChanged:
		st.Shape = ev.Shape
		st.Morphing = true
	case flurry.EventMorphSettled:
		st.Shape = ev.Shape
		st.Morphing = false
	case flurry.EventColorChanged:
		st.Color = ev.Color
	case flurry.EventCountChanged:
		st.Count = ev.Count
	case flurry.EventStrokeRecognized:
		st.Hearts++
	case flurry.EventStrokeRejected:
		st.Rejected++
	}
}
