package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/flurry"
)

const dotSize = 32

// minDotPixels keeps far particles from vanishing below a pixel.
const minDotPixels = 0.75

var dotImage *ebiten.Image

// ensureDotImage returns a soft round glow, premultiplied, white.
func ensureDotImage() *ebiten.Image {
	if dotImage == nil {
		dotImage = ebiten.NewImage(dotSize, dotSize)
		dotImage.WritePixels(dotPixels(dotSize))
	}
	return dotImage
}

// dotPixels renders a size by size radial falloff as premultiplied RGBA.
func dotPixels(size int) []byte {
	pix := make([]byte, size*size*4)
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			a := math.Max(0, 1-d)
			a *= a
			v := byte(a*255 + 0.5)
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	return pix
}

// batch accumulates one DrawTriangles32 call worth of particle quads.
type batch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

// build fills b with one camera-facing quad per visible particle. positions
// holds 3 values per particle and sizes one factor per particle.
func (b *batch) build(positions, sizes []float32, f flurry.Frame, cam *Camera) {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	cam.SetRotation(f.Rotation)

	col := f.Color
	cr := float32(col.R * col.A)
	cg := float32(col.G * col.A)
	cb := float32(col.B * col.A)
	ca := float32(col.A)

	n := len(sizes)
	if len(positions)/3 < n {
		n = len(positions) / 3
	}
	for i := 0; i < n; i++ {
		p := mgl32.Vec3{positions[i*3], positions[i*3+1], positions[i*3+2]}
		sx, sy, scale, ok := cam.WorldToScreen(p)
		if !ok {
			continue
		}
		half := float32(f.PointSize) * sizes[i] * scale / 2
		if half < minDotPixels/2 {
			half = minDotPixels / 2
		}

		base := uint32(len(b.verts))
		qx := [4]float32{sx - half, sx + half, sx - half, sx + half}
		qy := [4]float32{sy - half, sy - half, sy + half, sy + half}
		ux := [4]float32{0, dotSize, 0, dotSize}
		uy := [4]float32{0, 0, dotSize, dotSize}
		for j := 0; j < 4; j++ {
			b.verts = append(b.verts, ebiten.Vertex{
				DstX:   qx[j],
				DstY:   qy[j],
				SrcX:   ux[j],
				SrcY:   uy[j],
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		b.inds = append(b.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
}

// draw submits the batch with additive blending, so draw order does not
// matter and dense regions glow.
func (b *batch) draw(target *ebiten.Image) {
	if len(b.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = ebiten.BlendLighter
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(b.verts, b.inds, ensureDotImage(), &op)
}
