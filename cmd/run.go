package cmd

import (
	"context"
	"fmt"

	"github.com/phanxgames/flurry"
	"github.com/phanxgames/flurry/chime"
	"github.com/phanxgames/flurry/internal/handsim"
	"github.com/phanxgames/flurry/internal/viewer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRunCmd() *cobra.Command {
	var mute, hud bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Open the particle window",
		Long: `Opens a window with the particle engine. Input comes from the mouse
(strokes and hover), touch (swipes and double taps) or a simulated hand
tracker, selected with --source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if mute {
				a.cfg.Audio.Enabled = false
			}
			return runViewer(cmd.Context(), a, hud)
		},
	}
	addEngineFlags(runCmd)
	runCmd.Flags().String("source", viewer.SourcePointer, "input source (pointer, touch, sim, none)")
	runCmd.Flags().Int("width", 1280, "window width")
	runCmd.Flags().Int("height", 720, "window height")
	runCmd.Flags().BoolVar(&mute, "mute", false, "disable the recognition chime")
	runCmd.Flags().BoolVar(&hud, "hud", true, "show the HUD")
	return runCmd
}

// runViewer runs the window on the calling goroutine and the simulated
// tracker, when selected, beside it. Closing the window stops everything.
func runViewer(ctx context.Context, a *app, hud bool) error {
	var sinks []flurry.EventSink
	if a.cfg.Audio.Enabled {
		player := chime.NewPlayer(a.cfg.Audio.SampleRate, a.cfg.Audio.Volume, a.log)
		if err := player.Start(); err != nil {
			a.log.Warn("audio unavailable, continuing without chime", zap.Error(err))
		} else {
			defer player.Close()
			sinks = append(sinks, player)
		}
	}

	eng, events, err := a.newEngine(sinks...)
	if err != nil {
		return err
	}

	opts := viewer.Options{
		Width:          a.cfg.Viewer.Width,
		Height:         a.cfg.Viewer.Height,
		Title:          a.cfg.Viewer.Title,
		FOV:            a.cfg.Viewer.FOV,
		CameraDistance: a.cfg.Viewer.CameraDistance,
		TPS:            a.cfg.Viewer.TPS,
		Source:         a.cfg.Input.Source,
		DragDeadZone:   a.cfg.Input.DragDeadZone,
		ShowHUD:        hud,
		ScreenshotDir:  a.cfg.Viewer.ScreenshotDir,
		Events:         events,
		Logger:         a.log,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if a.cfg.Input.Source == viewer.SourceSim {
		latch := &flurry.SignalLatch{}
		sim, err := handsim.New(handsim.Config{
			Rate:   a.cfg.Input.SimRate,
			Burst:  a.cfg.Input.SimBurst,
			Period: handsim.DefaultConfig().Period,
		}, latch, a.log)
		if err != nil {
			return err
		}
		opts.Latch = latch
		opts.Triggers = sim.Triggers()
		g.Go(func() error { return sim.Run(ctx) })
	}

	game, err := viewer.New(eng, opts)
	if err != nil {
		return err
	}
	runErr := viewer.Run(game)
	cancel()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("input source: %w", err)
	}
	return runErr
}
