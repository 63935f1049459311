package flurry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tuning holds the constants of the motion model. DefaultTuning reproduces
// the reference look; tests zero individual terms to isolate behavior.
type Tuning struct {
	SmoothingRate    float64 // openness low-pass rate, 1/s
	BaseExpansion    float64 // expansion at openness 0
	ExpansionRange   float64 // added expansion at openness 1
	MorphRate        float64 // morph progress per second
	ApproachBase     float64 // approach speed shared by every particle, 1/s
	ApproachSizeGain float64 // extra approach speed per unit of particle size
	SizeRange        Range   // per-particle size factor, drawn once
	WanderAmplitude  float64 // wander displacement per second at expansion 1
	WanderPhaseStep  float64 // wander phase offset between neighbours
	PulseRate        float64 // breathing glow angular rate, rad/s
	PulseDepth       float64 // breathing glow amplitude around 1
	BreathCenter     float64 // ambient openness center without input
	BreathDepth      float64 // ambient openness amplitude
	BreathRate       float64 // ambient openness angular rate, rad/s
	RepulsionBias    float64 // openness at which the point of interest is neutral
	ForceConstant    float64 // attraction/repulsion strength
	InfluenceRadius2 float64 // squared distance within which the force applies
	RotationRate     float64 // slow spin, rad/s
	ScatterExtent    float64 // side of the cube initial positions are drawn from
	ColorFade        float64 // seconds SetColor takes to reach the new color
}

// DefaultTuning returns the reference motion constants.
func DefaultTuning() Tuning {
	return Tuning{
		SmoothingRate:    3,
		BaseExpansion:    0.3,
		ExpansionRange:   1.8,
		MorphRate:        1.5,
		ApproachBase:     2.5,
		ApproachSizeGain: 0.5,
		SizeRange:        Range{Min: 0.5, Max: 2.0},
		WanderAmplitude:  1.8,
		WanderPhaseStep:  0.1,
		PulseRate:        2,
		PulseDepth:       0.1,
		BreathCenter:     0.5,
		BreathDepth:      0.15,
		BreathRate:       0.8,
		RepulsionBias:    0.5,
		ForceConstant:    8,
		InfluenceRadius2: 15,
		RotationRate:     0.08,
		ScatterExtent:    15,
		ColorFade:        0.6,
	}
}

// Wander angular rates per axis.
const (
	wanderRateX = 1.5
	wanderRateY = 1.2
	wanderRateZ = 1.8
)

// fieldFrame is the per-frame input to the particle loop.
type fieldFrame struct {
	dt        float64
	elapsed   float64
	openness  float64
	expansion float64
	pulse     float64
	present   bool
	poi       mgl32.Vec3
}

// stepField advances every particle one frame toward its blended target.
// pos is mutated in place; target is the active shape's unscaled cloud and
// speed holds each particle's approach speed.
func stepField(pos, target, speed []float32, m *Morph, f fieldFrame, tn *Tuning) {
	n := len(pos) / 3
	amp := tn.WanderAmplitude * f.expansion * f.pulse * f.dt
	force := (tn.RepulsionBias - f.openness) * tn.ForceConstant
	px, py, pz := float64(f.poi[0]), float64(f.poi[1]), float64(f.poi[2])

	for i := 0; i < n; i++ {
		i3 := i * 3
		tx := m.Blend(i3, target, f.expansion)
		ty := m.Blend(i3+1, target, f.expansion)
		tz := m.Blend(i3+2, target, f.expansion)

		cx := float64(pos[i3])
		cy := float64(pos[i3+1])
		cz := float64(pos[i3+2])

		k := math.Min(1, float64(speed[i])*f.dt)
		cx += (tx - cx) * k
		cy += (ty - cy) * k
		cz += (tz - cz) * k

		if amp != 0 {
			phase := float64(i) * tn.WanderPhaseStep
			cx += math.Sin(f.elapsed*wanderRateX+phase) * amp
			cy += math.Cos(f.elapsed*wanderRateY+phase) * amp
			cz += math.Sin(f.elapsed*wanderRateZ+phase) * amp
		}

		if f.present {
			dx, dy, dz := px-cx, py-cy, pz-cz
			d2 := dx*dx + dy*dy + dz*dz
			if d2 < tn.InfluenceRadius2 {
				s := force / (1 + d2) * f.dt
				cx += dx * s
				cy += dy * s
				cz += dz * s
			}
		}

		pos[i3] = float32(cx)
		pos[i3+1] = float32(cy)
		pos[i3+2] = float32(cz)
	}
}
