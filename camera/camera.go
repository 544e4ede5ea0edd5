// Package camera provides the perspective camera used by the mascot view.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ndcEpsilon absorbs rounding for points exactly on the frustum edge.
const ndcEpsilon = 1e-9

// Camera is a right-handed perspective camera looking down -Z from its
// position toward Target, with +Y up.
type Camera struct {
	// FovY is the vertical field of view in degrees
	FovY float64

	// Aspect is viewport width over height
	Aspect float64

	// Clip planes
	Near, Far float64

	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Viewport dimensions in CSS-style logical pixels
	ViewportW, ViewportH float32
}

// New creates a camera at distance z on the +Z axis looking at the origin.
func New(fovY, near, far, z float64, viewportW, viewportH float32) *Camera {
	c := &Camera{
		FovY:     fovY,
		Aspect:   1,
		Near:     near,
		Far:      far,
		Position: r3.Vec{Z: z},
		Up:       r3.Vec{Y: 1},
	}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates the viewport and aspect ratio. A zero-height viewport keeps
// the previous aspect.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if viewportW > 0 && viewportH > 0 {
		c.Aspect = float64(viewportW) / float64(viewportH)
	}
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// WorldToScreen projects a world point into viewport pixels, origin top-left.
// Points behind the near plane or beyond the far plane are not visible.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float32, visible bool) {
	right, up, forward := c.basis()
	rel := r3.Sub(p, c.Position)

	depth := r3.Dot(rel, forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}

	f := 1 / math.Tan(c.FovY*math.Pi/360)
	ndcX := r3.Dot(rel, right) * f / (c.Aspect * depth)
	ndcY := r3.Dot(rel, up) * f / depth

	sx = float32((ndcX + 1) / 2 * float64(c.ViewportW))
	sy = float32((1 - ndcY) / 2 * float64(c.ViewportH))
	visible = math.Abs(ndcX) <= 1+ndcEpsilon && math.Abs(ndcY) <= 1+ndcEpsilon
	return sx, sy, visible
}

// VisibleHalfExtents returns the half width and height of the view frustum
// cross-section at the given depth.
func (c *Camera) VisibleHalfExtents(depth float64) (halfW, halfH float64) {
	halfH = depth * math.Tan(c.FovY*math.Pi/360)
	return halfH * c.Aspect, halfH
}

// NormalizePointer maps viewport pixels into [-1, 1] on both axes with the
// origin at the viewport center and +Y up. A zero-size viewport yields (0, 0).
func (c *Camera) NormalizePointer(x, y float32) (nx, ny float32) {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return 0, 0
	}
	nx = x/c.ViewportW*2 - 1
	ny = -(y/c.ViewportH*2 - 1)
	return nx, ny
}

// EffectivePixelRatio caps the device pixel ratio. Non-positive ratios are
// treated as 1.
func EffectivePixelRatio(dpr, max float64) float64 {
	if dpr <= 0 {
		dpr = 1
	}
	if max > 0 && dpr > max {
		return max
	}
	return dpr
}

// BackingSize returns the render target size in physical pixels for a
// logical viewport at the capped pixel ratio.
func BackingSize(viewportW, viewportH float32, dpr, max float64) (w, h int32) {
	r := EffectivePixelRatio(dpr, max)
	w = int32(math.Round(float64(viewportW) * r))
	h = int32(math.Round(float64(viewportH) * r))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
