package flurry

import "errors"

var (
	// ErrUnknownShape is returned for a ShapeKind outside the known set.
	ErrUnknownShape = errors.New("flurry: unknown shape kind")
	// ErrInvalidCount is returned for a negative particle count, or a
	// non-positive count where an engine needs particles.
	ErrInvalidCount = errors.New("flurry: invalid particle count")
	// ErrInvalidParticleSize is returned for a particle size outside (0, MaxParticleSize].
	ErrInvalidParticleSize = errors.New("flurry: invalid particle size")
	// ErrInvalidColor is returned when a hex color cannot be parsed.
	ErrInvalidColor = errors.New("flurry: invalid color")
)
