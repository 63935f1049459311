package cmd

import (
	"github.com/phanxgames/flurry"
	"github.com/phanxgames/flurry/internal/observability"
	"github.com/spf13/cobra"
)

// addEngineFlags registers the flags shared by every command that builds
// an engine.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Int("particles", flurry.DefaultParticleCount, "number of particles")
	cmd.Flags().String("shape", flurry.ShapeSphere.String(), "initial shape (sphere, cube, galaxy, helix, heart)")
	cmd.Flags().String("color", flurry.DefaultColor.Hex(), "particle color as #rrggbb or a palette name")
	cmd.Flags().Uint64("seed", 0, "random seed, 0 for a fresh one")
	cmd.Flags().Bool("debug", false, "log per-step timings")
}

// newEngine builds the engine described by a's config. Events go to the
// event logger and then to each of sinks.
func (a *app) newEngine(sinks ...flurry.EventSink) (*flurry.Engine, flurry.EventSink, error) {
	events := append(observability.Fanout{observability.NewEventLogger(a.log)}, sinks...)
	fc, err := a.cfg.Engine.Flurry(a.log, events)
	if err != nil {
		return nil, nil, err
	}
	eng, err := flurry.NewEngine(fc)
	if err != nil {
		return nil, nil, err
	}
	eng.SetDebugMode(a.cfg.Engine.Debug)
	return eng, events, nil
}
