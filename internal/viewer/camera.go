package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearPlane = 0.1
	farPlane  = 100
)

// Camera projects scene-space particles onto the screen. It sits on the +Z
// axis looking at the origin; the scene spins around Y in front of it.
type Camera struct {
	FOV      float64 // vertical field of view, degrees
	Distance float64 // distance from the origin

	w, h     int
	rotation float64
	proj     mgl32.Mat4
	mvp      mgl32.Mat4
	dirty    bool
}

// NewCamera returns a camera for a w by h pixel viewport.
func NewCamera(fov, distance float64, w, h int) *Camera {
	return &Camera{FOV: fov, Distance: distance, w: w, h: h, dirty: true}
}

// Resize updates the viewport size.
func (c *Camera) Resize(w, h int) {
	if w != c.w || h != c.h {
		c.w, c.h = w, h
		c.dirty = true
	}
}

// SetRotation sets the scene's spin around the vertical axis.
func (c *Camera) SetRotation(rad float64) {
	if rad != c.rotation {
		c.rotation = rad
		c.dirty = true
	}
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	aspect := float32(1)
	if c.h > 0 {
		aspect = float32(c.w) / float32(c.h)
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(float32(c.FOV)), aspect, nearPlane, farPlane)
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 0, float32(c.Distance)},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
	model := mgl32.HomogRotate3DY(float32(c.rotation))
	c.mvp = c.proj.Mul4(view).Mul4(model)
	c.dirty = false
}

// WorldToScreen projects p to screen pixels. scale is the number of pixels
// one scene unit covers at p's depth. ok is false for points behind the
// near plane.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy, scale float32, ok bool) {
	c.update()
	clip := c.mvp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= nearPlane {
		return 0, 0, 0, false
	}
	hw, hh := float32(c.w)/2, float32(c.h)/2
	sx = (clip.X()/w + 1) * hw
	sy = (1 - clip.Y()/w) * hh
	scale = c.proj.At(1, 1) * hh / w
	return sx, sy, scale, true
}
