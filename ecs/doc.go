// Package ecs bridges flurry engine events into a [Donburi] world.
//
// [NewDonburiSink] publishes every engine and stroke event as an
// [EngineEventType] event. [Track] keeps a [SceneState] component up to date
// from those events so systems can query the current shape, color and
// particle count like any other component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene := ecs.Track(world)
//	cfg.Events = ecs.NewDonburiSink(world)
//	...
//	ecs.EngineEventType.ProcessEvents(world)
//	state := ecs.Scene.Get(world.Entry(scene))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
