// Package flurry is a particle choreography engine: a fixed pool of particles
// that continuously reshapes itself into procedural forms and reacts to a
// live control signal.
//
// Flurry does not render and does not capture input. A host (an [Ebitengine]
// window, a terminal, a test) owns the render loop, feeds a [ControlSignal]
// into [Engine.Step] once per frame and draws [Engine.Positions] with the
// parameters from [Engine.Frame].
//
// # Quick start
//
//	eng, err := flurry.NewEngine(flurry.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	for each frame {
//		eng.Step(dt, latch.Load())
//		draw(eng.Positions(), eng.Frame())
//	}
//
// # Shapes and morphing
//
// [Generate] builds the point cloud of a [ShapeKind]: sphere, cube, galaxy,
// helix and heart. [Engine.SetShapeKind] snapshots where particles are right
// now and eases from there to the new cloud ([Morph]), so a shape change
// never jumps, even in the middle of another morph.
//
// # Control signal
//
// A [ControlSignal] carries openness in [0, 1], a scene-space point of
// interest and a presence flag. Open input expands the cloud and repels
// nearby particles; closed input contracts it and attracts them. Without
// presence the engine breathes on its own. Producers running on other
// goroutines publish through a [SignalLatch]. [HandState], [TouchController]
// and [PointerSignal] turn recognizer output, touches and mouse hover into
// signals.
//
// # Strokes
//
// [ClassifyStroke] decides whether a freehand pointer path is a heart.
// [StrokeRecorder] collects press / move / release input into strokes and
// reports results through an [EventSink]; a match is usually answered with
// [Engine.Trigger].
//
// [Ebitengine]: https://ebitengine.org
package flurry
