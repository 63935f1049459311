package flurry

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// colorTween fades the R, G and B channels of a color toward a target. It
// mirrors a gween tween group: Update advances every channel and Done is set
// once all of them finish.
type colorTween struct {
	tweens [3]*gween.Tween
	cur    Color
	to     Color
	Done   bool
}

func newColorTween(c Color) colorTween {
	return colorTween{cur: c, to: c, Done: true}
}

// retarget starts a fade from the current color to to over duration seconds.
// A non-positive duration snaps immediately.
func (g *colorTween) retarget(to Color, duration float64, fn ease.TweenFunc) {
	g.to = to
	if duration <= 0 {
		g.cur = to
		g.Done = true
		return
	}
	d := float32(duration)
	g.tweens[0] = gween.New(float32(g.cur.R), float32(to.R), d, fn)
	g.tweens[1] = gween.New(float32(g.cur.G), float32(to.G), d, fn)
	g.tweens[2] = gween.New(float32(g.cur.B), float32(to.B), d, fn)
	g.cur.A = to.A
	g.Done = false
}

// Update advances the fade by dt seconds.
func (g *colorTween) Update(dt float64) {
	if g.Done {
		return
	}
	fields := [3]*float64{&g.cur.R, &g.cur.G, &g.cur.B}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(float32(dt))
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		g.cur = g.to
	}
	g.Done = allDone
}

// Color returns the color at the current point of the fade.
func (g *colorTween) Color() Color {
	return g.cur
}

// Target returns the color the fade is heading to.
func (g *colorTween) Target() Color {
	return g.to
}
