package flurry

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Shape dimensions in scene units, before expansion is applied.
const (
	sphereRadius     = 2.5
	cubeSide         = 4.0
	galaxyRadius     = 5.0
	galaxySpin       = 4.0
	galaxyFlatten    = 0.2
	galaxyJitter     = 0.5
	helixLength      = 12.0
	helixRadius      = 2.0
	helixPitch       = 2.0
	helixJitter      = 0.5
	heartScale       = 0.4
	heartDepth       = 2.5
	heartJitter      = 0.3
	heartDepthJitter = heartJitter * 0.5
)

// Generate returns the canonical point cloud for kind as a flat buffer of
// count*3 values (x, y, z per particle).
//
// The sphere is index-ordered and deterministic. Every other shape draws from
// rng and is not reproducible unless the caller supplies a seeded generator.
// A nil rng uses the package-level source.
func Generate(kind ShapeKind, count int, rng *rand.Rand) ([]float32, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, uint8(kind))
	}
	buf := make([]float32, count*3)
	generateInto(buf, kind, rng)
	return buf, nil
}

// generateInto fills buf (len = 3N) with kind's point cloud. kind must be valid.
func generateInto(buf []float32, kind ShapeKind, rng *rand.Rand) {
	n := len(buf) / 3
	u := uniform(rng)
	for i := 0; i < n; i++ {
		var x, y, z float64
		switch kind {
		case ShapeSphere:
			x, y, z = spherePoint(i, n)
		case ShapeCube:
			x = (u() - 0.5) * cubeSide
			y = (u() - 0.5) * cubeSide
			z = (u() - 0.5) * cubeSide
		case ShapeGalaxy:
			radius := u() * galaxyRadius
			angle := radius*galaxySpin + float64(i%3)*(2*math.Pi/3)
			x = radius*math.Cos(angle) + (u()-0.5)*galaxyJitter
			y = (u() - 0.5) * radius * galaxyFlatten
			z = radius*math.Sin(angle) + (u()-0.5)*galaxyJitter
		case ShapeHelix:
			h := (u() - 0.5) * helixLength
			phase := h * helixPitch
			if i%2 == 1 {
				phase += math.Pi
			}
			x = math.Cos(phase)*helixRadius + (u()-0.5)*helixJitter
			y = h + (u()-0.5)*helixJitter
			z = math.Sin(phase)*helixRadius + (u()-0.5)*helixJitter
		case ShapeHeart:
			t := u() * 2 * math.Pi
			x, y = heartCurve(t)
			x *= heartScale
			y *= heartScale
			z = (math.Sqrt(u()) - 0.5) * heartDepth
			x += (u() - 0.5) * heartJitter
			y += (u() - 0.5) * heartJitter
			z += (u() - 0.5) * heartDepthJitter
		}
		i3 := i * 3
		buf[i3] = float32(x)
		buf[i3+1] = float32(y)
		buf[i3+2] = float32(z)
	}
}

// spherePoint returns the i-th of n points on the Fibonacci sphere.
func spherePoint(i, n int) (x, y, z float64) {
	phi := math.Acos(-1 + 2*float64(i)/float64(n))
	theta := math.Sqrt(float64(n)*math.Pi) * phi
	x = sphereRadius * math.Sin(phi) * math.Cos(theta)
	y = sphereRadius * math.Sin(phi) * math.Sin(theta)
	z = sphereRadius * math.Cos(phi)
	return x, y, z
}

// heartCurve evaluates the classic parametric heart at t. Y grows upward.
func heartCurve(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return x, y
}

// uniform returns a [0, 1) sampler bound to rng, or to the global source.
func uniform(rng *rand.Rand) func() float64 {
	if rng == nil {
		return rand.Float64
	}
	return rng.Float64
}

// Random returns a random float64 in [Min, Max] drawn from rng (nil uses the
// global source).
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + uniform(rng)()*(r.Max-r.Min)
}
