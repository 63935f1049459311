// Package viewer hosts a flurry engine in an Ebitengine window.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/flurry"
	"go.uber.org/zap"
)

// Input sources.
const (
	SourcePointer = "pointer"
	SourceTouch   = "touch"
	SourceSim     = "sim"
	SourceNone    = "none"
)

const (
	minParticles = 500
	maxParticles = 48000
	nudgeStep    = 0.05
)

var (
	clearColor  = color.RGBA{R: 5, G: 5, B: 12, A: 255}
	strokeColor = color.RGBA{R: 255, G: 255, B: 255, A: 160}
)

// Options configures a Game.
type Options struct {
	Width, Height  int
	Title          string
	FOV            float64
	CameraDistance float64
	TPS            int
	Source         string
	DragDeadZone   float64
	ShowHUD        bool
	ScreenshotDir  string

	// Latch and Triggers feed signals from a producer goroutine when Source
	// is SourceSim.
	Latch    *flurry.SignalLatch
	Triggers <-chan flurry.Trigger
	// Events receives stroke results alongside the engine's own sink.
	Events flurry.EventSink
	Logger *zap.Logger
}

// Game implements ebiten.Game around an Engine.
type Game struct {
	eng  *flurry.Engine
	opts Options
	log  *zap.Logger
	cam  *Camera
	dots batch

	rec     *flurry.StrokeRecorder
	pointer *flurry.PointerSignal
	touch   *flurry.TouchController

	touchIDs    []ebiten.TouchID
	activeTouch ebiten.TouchID
	touching    bool
	palette     int
	hud         bool
	shots       []string
	w, h        int
}

// New returns a Game driving eng.
func New(eng *flurry.Engine, opts Options) (*Game, error) {
	switch opts.Source {
	case SourcePointer, SourceTouch, SourceNone:
	case SourceSim:
		if opts.Latch == nil {
			return nil, errors.New("viewer: sim source needs a latch")
		}
	default:
		return nil, fmt.Errorf("viewer: unknown input source %q", opts.Source)
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = DefaultScreenshotDir
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		eng:     eng,
		opts:    opts,
		log:     log.Named("viewer"),
		cam:     NewCamera(opts.FOV, opts.CameraDistance, opts.Width, opts.Height),
		rec:     flurry.NewStrokeRecorder(opts.Events, log),
		pointer: flurry.NewPointerSignal(),
		touch:   flurry.NewTouchController(float64(opts.Width), float64(opts.Height)),
		hud:     opts.ShowHUD,
		w:       opts.Width,
		h:       opts.Height,
		palette: -1,
	}
	g.rec.SetDragDeadZone(opts.DragDeadZone)
	return g, nil
}

// Run opens the window and blocks until it closes.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.opts.TPS)
	g.log.Info("window opening",
		zap.Int("width", g.opts.Width),
		zap.Int("height", g.opts.Height),
		zap.String("source", g.opts.Source),
	)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()

	var sig *flurry.ControlSignal
	switch g.opts.Source {
	case SourcePointer:
		sig = g.updatePointer()
	case SourceTouch:
		sig = g.updateTouch()
	case SourceSim:
		sig = g.updateSim()
	}
	g.eng.Step(1/float64(ebiten.TPS()), sig)
	return nil
}

// handleKeys applies keyboard commands: 1-5 pick a shape, P cycles palettes,
// +/- scale the particle count, H toggles the HUD, S saves a screenshot.
func (g *Game) handleKeys() {
	for i, k := range shapeKeys {
		if inpututil.IsKeyJustPressed(k) {
			_ = g.eng.SetShapeKind(flurry.ShapeKind(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.palette = (g.palette + 1) % len(flurry.Palettes)
		g.eng.SetColor(flurry.Palettes[g.palette].Color)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.setCount(g.eng.Count() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.setCount(g.eng.Count() / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Screenshot(g.eng.Shape().String())
	}
}

var shapeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

func (g *Game) setCount(n int) {
	n = clampCount(n)
	if err := g.eng.SetParticleCount(n); err != nil {
		g.log.Warn("particle count rejected", zap.Int("count", n), zap.Error(err))
	}
}

func clampCount(n int) int {
	return max(minParticles, min(maxParticles, n))
}

// updatePointer draws strokes with the left button and uses hover as the
// point of interest. The wheel and arrow keys adjust openness.
func (g *Game) updatePointer() *flurry.ControlSignal {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	g.pointer.Hover(x, y, float64(g.w), float64(g.h))

	_, wheel := ebiten.Wheel()
	if wheel != 0 {
		g.pointer.Nudge(wheel * nudgeStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.pointer.Nudge(nudgeStep / 4)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.pointer.Nudge(-nudgeStep / 4)
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.rec.Press(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if res, ok := g.rec.Release(x, y); ok && res.Matched {
			g.eng.Trigger(flurry.TriggerHeart)
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.rec.Move(x, y)
	}

	sig := g.pointer.Signal()
	return &sig
}

// updateTouch follows the first finger down through the touch controller.
func (g *Game) updateTouch() *flurry.ControlSignal {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	if !g.touching && len(g.touchIDs) > 0 {
		g.activeTouch = g.touchIDs[0]
		g.touching = true
		tx, ty := ebiten.TouchPosition(g.activeTouch)
		g.touch.SyncShape(g.eng.Shape())
		if k, ok := g.touch.Start(float64(tx), float64(ty), time.Now()); ok {
			_ = g.eng.SetShapeKind(k)
		}
	}
	if g.touching {
		if inpututil.IsTouchJustReleased(g.activeTouch) {
			g.touch.End()
			g.touching = false
		} else {
			tx, ty := ebiten.TouchPosition(g.activeTouch)
			g.touch.Move(float64(tx), float64(ty))
		}
	}
	g.touch.Tick()
	sig := g.touch.Signal()
	return &sig
}

// updateSim reads the latest published signal and any pending trigger.
func (g *Game) updateSim() *flurry.ControlSignal {
	if g.opts.Triggers != nil {
		select {
		case t := <-g.opts.Triggers:
			g.eng.Trigger(t)
		default:
		}
	}
	return g.opts.Latch.Load()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	g.dots.build(g.eng.Positions(), g.eng.Sizes(), g.eng.Frame(), g.cam)
	g.dots.draw(screen)

	if g.rec.Drawing() {
		path := g.rec.Path()
		for i := 1; i < len(path); i++ {
			a, b := path[i-1], path[i]
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, strokeColor, true)
		}
	}
	g.flushScreenshots(screen)
	if g.hud {
		ebitenutil.DebugPrint(screen, g.hudText())
	}
}

func (g *Game) hudText() string {
	f := g.eng.Frame()
	return fmt.Sprintf("FPS %.0f  particles %d\nshape %s  morph %.0f%%\nopenness %.2f  color %s\n1-5 shape  P palette  +/- count  S shot  H hud",
		ebiten.ActualFPS(), g.eng.Count(), f.Shape, f.MorphProgress*100, f.Openness, f.Color.Hex())
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.cam.Resize(g.w, g.h)
		g.touch.Resize(float64(g.w), float64(g.h))
	}
	return g.w, g.h
}
