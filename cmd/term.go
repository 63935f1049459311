package cmd

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/flurry"
	"github.com/phanxgames/flurry/internal/handsim"
	"github.com/phanxgames/flurry/internal/term"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newTermCmd() *cobra.Command {
	var fps int
	var sim bool

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "Render the particles in the terminal",
		Long: `Draws the particle cloud as density glyphs. Drag with the mouse to draw
strokes, press 1-5 to pick a shape, p to cycle palettes, q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()
			return runTerm(cmd.Context(), a, screen, fps, sim)
		},
	}
	addEngineFlags(termCmd)
	termCmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	termCmd.Flags().BoolVar(&sim, "sim", false, "drive the engine from the simulated hand tracker")
	return termCmd
}

func runTerm(ctx context.Context, a *app, screen tcell.Screen, fps int, sim bool) error {
	eng, events, err := a.newEngine()
	if err != nil {
		return err
	}
	opts := term.Options{FPS: fps, Events: events, Logger: a.log}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	if sim {
		latch := &flurry.SignalLatch{}
		s, err := handsim.New(handsim.Config{
			Rate:   a.cfg.Input.SimRate,
			Burst:  a.cfg.Input.SimBurst,
			Period: handsim.DefaultConfig().Period,
		}, latch, a.log)
		if err != nil {
			return err
		}
		opts.Latch = latch
		opts.Triggers = s.Triggers()
		g.Go(func() error { return s.Run(ctx) })
	}

	g.Go(func() error {
		defer cancel()
		return term.New(screen, eng, opts).Run(ctx)
	})
	return g.Wait()
}
