// Package systems contains the per-frame simulations behind the effects layer.
// Nothing in this package draws; renderers read the state it exposes.
package systems

import "errors"

var (
	// ErrNoSurface is returned when the particle field has nothing to draw on.
	ErrNoSurface = errors.New("particle field: no drawing surface")
	// ErrNoMount is returned when the mascot has no mount point.
	ErrNoMount = errors.New("mascot: no mount point")
)

// Surface is a viewport-sized render target owned by a renderer.
// Simulations read its size and resize it in lockstep with the viewport.
type Surface interface {
	Size() (w, h float32)
	Resize(w, h float32)
}

// MemorySurface is a Surface with no backing pixels, used headless and in tests.
type MemorySurface struct {
	W, H    float32
	Resizes int
}

// NewMemorySurface creates a memory surface of the given size.
func NewMemorySurface(w, h float32) *MemorySurface {
	return &MemorySurface{W: w, H: h}
}

// Size returns the surface size.
func (s *MemorySurface) Size() (float32, float32) {
	return s.W, s.H
}

// Resize records the new size.
func (s *MemorySurface) Resize(w, h float32) {
	s.W, s.H = w, h
	s.Resizes++
}
