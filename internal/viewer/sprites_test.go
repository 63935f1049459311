package viewer

import (
	"testing"

	"github.com/phanxgames/flurry"
)

func TestDotPixels(t *testing.T) {
	pix := dotPixels(9)
	center := (4*9 + 4) * 4
	if pix[center+3] != 255 {
		t.Errorf("center alpha = %d, want 255", pix[center+3])
	}
	if pix[3] != 0 {
		t.Errorf("corner alpha = %d, want 0", pix[3])
	}
	for i := 0; i < len(pix); i += 4 {
		if pix[i] > pix[i+3] {
			t.Fatalf("pixel %d not premultiplied: %v", i/4, pix[i:i+4])
		}
	}
}

func TestBatchBuild(t *testing.T) {
	cam := NewCamera(60, 10, 640, 480)
	positions := []float32{
		0, 0, 0,
		1, 1, 0,
		0, 0, 20, // behind the camera
	}
	sizes := []float32{1, 2, 1}
	f := flurry.Frame{PointSize: 0.1, Color: flurry.Color{R: 1, G: 0.5, B: 0, A: 1}}

	var b batch
	b.build(positions, sizes, f, cam)
	if len(b.verts) != 8 || len(b.inds) != 12 {
		t.Fatalf("verts %d inds %d, want 8 and 12", len(b.verts), len(b.inds))
	}

	// First quad is centered on the screen center.
	v := b.verts
	cx := (v[0].DstX + v[3].DstX) / 2
	cy := (v[0].DstY + v[3].DstY) / 2
	if !near(cx, 320) || !near(cy, 240) {
		t.Errorf("quad center = (%v, %v)", cx, cy)
	}
	// The second particle is twice as large at about the same depth.
	w0 := v[1].DstX - v[0].DstX
	w1 := v[5].DstX - v[4].DstX
	if w1 < 1.9*w0 {
		t.Errorf("size factor not applied: %v vs %v", w1, w0)
	}
	if v[0].ColorR != 1 || v[0].ColorG != 0.5 || v[0].ColorB != 0 || v[0].ColorA != 1 {
		t.Errorf("vertex color = %v %v %v %v", v[0].ColorR, v[0].ColorG, v[0].ColorB, v[0].ColorA)
	}
	if b.inds[6] != 4 {
		t.Errorf("second quad indices start at %d, want 4", b.inds[6])
	}

	// Rebuilding reuses the buffers.
	b.build(positions[:3], sizes[:1], f, cam)
	if len(b.verts) != 4 {
		t.Errorf("rebuild verts = %d, want 4", len(b.verts))
	}
}

func TestBatchBuild_MinimumSize(t *testing.T) {
	cam := NewCamera(60, 10, 640, 480)
	var b batch
	b.build([]float32{0, 0, 0}, []float32{1}, flurry.Frame{PointSize: 0, Color: flurry.ColorWhite}, cam)
	if w := b.verts[1].DstX - b.verts[0].DstX; !near(w, minDotPixels) {
		t.Errorf("dot width = %v, want %v", w, minDotPixels)
	}
}
