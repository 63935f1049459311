package flurry

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestGenerate_Length(t *testing.T) {
	for k := ShapeKind(0); k < shapeKindCount; k++ {
		for _, n := range []int{1, 7, 1000} {
			buf, err := Generate(k, n, seeded(1))
			if err != nil {
				t.Fatalf("Generate(%v, %d): %v", k, n, err)
			}
			if len(buf) != 3*n {
				t.Errorf("Generate(%v, %d) len = %d, want %d", k, n, len(buf), 3*n)
			}
		}
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	for k := ShapeKind(0); k < shapeKindCount; k++ {
		buf, err := Generate(k, 0, nil)
		if err != nil {
			t.Fatalf("Generate(%v, 0): %v", k, err)
		}
		if buf == nil || len(buf) != 0 {
			t.Errorf("Generate(%v, 0) = %v, want empty non-nil buffer", k, buf)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := Generate(ShapeCube, -1, nil); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("negative count: err = %v, want ErrInvalidCount", err)
	}
	if _, err := Generate(shapeKindCount, 10, nil); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("unknown kind: err = %v, want ErrUnknownShape", err)
	}
}

func TestGenerate_SphereDeterministic(t *testing.T) {
	a, _ := Generate(ShapeSphere, 500, seeded(1))
	b, _ := Generate(ShapeSphere, 500, seeded(99))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("sphere differs between calls (-first +second):\n%s", diff)
	}
}

func TestGenerate_SphereOnRadius(t *testing.T) {
	buf, _ := Generate(ShapeSphere, 300, nil)
	for i := 0; i < 300; i++ {
		x, y, z := float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2])
		assertWithin(t, "radius", math.Sqrt(x*x+y*y+z*z), sphereRadius, 1e-5)
	}
	// The first point sits on the pole.
	assertWithin(t, "z[0]", float64(buf[2]), -sphereRadius, 1e-5)
}

func TestGenerate_SeededReproducible(t *testing.T) {
	for _, k := range []ShapeKind{ShapeCube, ShapeGalaxy, ShapeHelix, ShapeHeart} {
		a, _ := Generate(k, 200, seeded(7))
		b, _ := Generate(k, 200, seeded(7))
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%v not reproducible with equal seeds:\n%s", k, diff)
		}
	}
}

func TestGenerate_Bounds(t *testing.T) {
	const n = 4000
	const slack = 1e-4

	t.Run("cube", func(t *testing.T) {
		buf, _ := Generate(ShapeCube, n, seeded(3))
		for i, v := range buf {
			if math.Abs(float64(v)) > cubeSide/2+slack {
				t.Fatalf("component %d = %v outside the cube", i, v)
			}
		}
	})

	t.Run("galaxy", func(t *testing.T) {
		buf, _ := Generate(ShapeGalaxy, n, seeded(3))
		maxR := galaxyRadius + galaxyJitter/2*math.Sqrt2
		for i := 0; i < n; i++ {
			x, y, z := float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2])
			if r := math.Hypot(x, z); r > maxR+slack {
				t.Fatalf("particle %d radial distance %v > %v", i, r, maxR)
			}
			if math.Abs(y) > galaxyRadius*galaxyFlatten/2+slack {
				t.Fatalf("particle %d |y| = %v, disc too thick", i, y)
			}
		}
	})

	t.Run("helix", func(t *testing.T) {
		buf, _ := Generate(ShapeHelix, n, seeded(3))
		j := helixJitter / 2
		for i := 0; i < n; i++ {
			x, y, z := float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2])
			if math.Abs(y) > helixLength/2+j+slack {
				t.Fatalf("particle %d y = %v beyond the strand ends", i, y)
			}
			r := math.Hypot(x, z)
			if r < helixRadius-j*math.Sqrt2-slack || r > helixRadius+j*math.Sqrt2+slack {
				t.Fatalf("particle %d radial distance %v off the strand", i, r)
			}
		}
	})

	t.Run("heart", func(t *testing.T) {
		buf, _ := Generate(ShapeHeart, n, seeded(3))
		j := heartJitter / 2
		for i := 0; i < n; i++ {
			x, y, z := float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2])
			if math.Abs(x) > 16*heartScale+j+slack {
				t.Fatalf("particle %d x = %v", i, x)
			}
			if y < -17*heartScale-j-slack || y > 12*heartScale+j+slack {
				t.Fatalf("particle %d y = %v", i, y)
			}
			if math.Abs(z) > heartDepth/2+heartDepthJitter/2+slack {
				t.Fatalf("particle %d z = %v", i, z)
			}
		}
	})
}

func TestRangeRandom(t *testing.T) {
	r := Range{Min: 0.5, Max: 2}
	rng := seeded(5)
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < r.Min || v > r.Max {
			t.Fatalf("Random() = %v outside [%v, %v]", v, r.Min, r.Max)
		}
	}
	if got := (Range{Min: 3, Max: 3}).Random(nil); got != 3 {
		t.Errorf("degenerate range = %v, want 3", got)
	}
}
