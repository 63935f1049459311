// Package term draws a flurry engine as density glyphs in a terminal.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/flurry"
	"go.uber.org/zap"
)

const (
	// Terminal cells are scaled to approximate pixels so strokes drawn with
	// the mouse meet the same size thresholds as window strokes.
	cellW = 8
	cellH = 16

	// sceneSpan is the scene width mapped onto the terminal width.
	sceneSpan = 10.0
	// cellAspect corrects for cells being about twice as tall as wide.
	cellAspect = 2.0

	nudgeStep = 0.05
)

// ramp maps cell density to glyphs, sparse to dense.
var ramp = []rune(" .:-=+*#%@")

// Options configures a Renderer.
type Options struct {
	FPS int
	// Latch supplies signals from a producer goroutine; when nil the mouse
	// position and the arrow keys drive the signal.
	Latch    *flurry.SignalLatch
	Triggers <-chan flurry.Trigger
	Events   flurry.EventSink
	Logger   *zap.Logger
}

// Renderer runs an engine against a tcell screen.
type Renderer struct {
	screen tcell.Screen
	eng    *flurry.Engine
	opts   Options
	log    *zap.Logger

	rec       *flurry.StrokeRecorder
	pointer   *flurry.PointerSignal
	mouseDown bool

	w, h    int
	density []uint16
	palette int
}

// New returns a renderer drawing eng on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, eng *flurry.Engine, opts Options) *Renderer {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		screen:  screen,
		eng:     eng,
		opts:    opts,
		log:     log.Named("term"),
		rec:     flurry.NewStrokeRecorder(opts.Events, log),
		pointer: flurry.NewPointerSignal(),
		palette: -1,
	}
	r.resize(screen.Size())
	return r
}

func (r *Renderer) resize(w, h int) {
	r.w, r.h = w, h
	if n := w * h; cap(r.density) >= n {
		r.density = r.density[:n]
	} else {
		r.density = make([]uint16, n)
	}
}

// Run polls input and renders frames until ctx is canceled or the user
// quits.
func (r *Renderer) Run(ctx context.Context) error {
	r.screen.EnableMouse()
	defer r.screen.DisableMouse()

	frame := time.Second / time.Duration(r.opts.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	r.log.Info("terminal renderer started", zap.Int("width", r.w), zap.Int("height", r.h))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			r.Tick(frame.Seconds())
			r.Draw()
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		r.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		r.resize(r.screen.Size())
		r.screen.Sync()
	}
	return true
}

func (r *Renderer) handleKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		r.pointer.Nudge(nudgeStep)
	case tcell.KeyDown:
		r.pointer.Nudge(-nudgeStep)
	case tcell.KeyRune:
		switch {
		case ch >= '1' && ch <= '5':
			_ = r.eng.SetShapeKind(flurry.ShapeKind(ch - '1'))
		case ch == 'p':
			r.palette = (r.palette + 1) % len(flurry.Palettes)
			r.eng.SetColor(flurry.Palettes[r.palette].Color)
		case ch == 'q':
			return false
		}
	}
	return true
}

// handleMouse feeds button 1 drags to the stroke recorder and hover to the
// pointer signal.
func (r *Renderer) handleMouse(cx, cy int, buttons tcell.ButtonMask) {
	x, y := float64(cx*cellW), float64(cy*cellH)
	r.pointer.Hover(x, y, float64(r.w*cellW), float64(r.h*cellH))

	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !r.mouseDown:
		r.mouseDown = true
		r.rec.Press(x, y)
	case pressed:
		r.rec.Move(x, y)
	case r.mouseDown:
		r.mouseDown = false
		if res, ok := r.rec.Release(x, y); ok && res.Matched {
			r.eng.Trigger(flurry.TriggerHeart)
		}
	}
}

// Tick advances the engine by dt seconds.
func (r *Renderer) Tick(dt float64) {
	var sig *flurry.ControlSignal
	if r.opts.Latch != nil {
		if r.opts.Triggers != nil {
			select {
			case t := <-r.opts.Triggers:
				r.eng.Trigger(t)
			default:
			}
		}
		sig = r.opts.Latch.Load()
	} else {
		s := r.pointer.Signal()
		sig = &s
	}
	r.eng.Step(dt, sig)
}

// accumulate projects every particle onto the cell grid and returns the
// highest cell count.
func (r *Renderer) accumulate(positions []float32, rotation float64) uint16 {
	clear(r.density)
	if r.w == 0 || r.h == 0 {
		return 0
	}
	rot := mgl32.Rotate3DY(float32(rotation))
	scale := float64(r.w) / sceneSpan
	var peak uint16
	for i := 0; i+2 < len(positions); i += 3 {
		p := rot.Mul3x1(mgl32.Vec3{positions[i], positions[i+1], positions[i+2]})
		cx := int(float64(r.w)/2 + float64(p.X())*scale)
		cy := int(float64(r.h)/2 - float64(p.Y())*scale/cellAspect)
		if cx < 0 || cy < 0 || cx >= r.w || cy >= r.h {
			continue
		}
		c := &r.density[cy*r.w+cx]
		if *c < ^uint16(0) {
			*c++
		}
		peak = max(peak, *c)
	}
	return peak
}

func glyph(count, peak uint16) rune {
	if count == 0 || peak == 0 {
		return ramp[0]
	}
	i := int(count) * (len(ramp) - 1) / int(peak)
	return ramp[max(1, min(i, len(ramp)-1))]
}

func styleFor(c flurry.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		int32(c.R*255), int32(c.G*255), int32(c.B*255),
	))
}

// Draw renders the current frame and shows it.
func (r *Renderer) Draw() {
	f := r.eng.Frame()
	peak := r.accumulate(r.eng.Positions(), f.Rotation)
	style := styleFor(f.Color)

	r.screen.Clear()
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			if c := r.density[y*r.w+x]; c > 0 {
				r.screen.SetContent(x, y, glyph(c, peak), nil, style)
			}
		}
	}
	if r.rec.Drawing() {
		trail := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		for _, p := range r.rec.Path() {
			r.screen.SetContent(int(p.X)/cellW, int(p.Y)/cellH, '·', nil, trail)
		}
	}
	status := f.Shape.String() + "  1-5 shape  p palette  q quit"
	for i, ch := range status {
		if i >= r.w {
			break
		}
		r.screen.SetContent(i, r.h-1, ch, nil, tcell.StyleDefault.Dim(true))
	}
	r.screen.Show()
}
