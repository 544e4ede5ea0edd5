package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/systems"
)

// Particle colours.
var (
	ambientRGB = [3]uint8{0, 217, 255}
	trailRGB   = [3]uint8{0, 240, 255}
)

const (
	linkAlpha   = 0.15
	glowScale   = 3   // Per-particle glow radius as a multiple of its radius
	glowOpacity = 0.5 // Glow centre alpha relative to particle opacity
)

// ParticleRenderer draws a particle field into its canvas.
type ParticleRenderer struct {
	canvas *Canvas
}

// NewParticleRenderer creates a particle renderer drawing into canvas.
func NewParticleRenderer(canvas *Canvas) *ParticleRenderer {
	return &ParticleRenderer{canvas: canvas}
}

// Canvas returns the backing canvas.
func (r *ParticleRenderer) Canvas() *Canvas {
	return r.canvas
}

// Draw renders the field back to front: ambient particles, links, pointer
// glow, then trails.
func (r *ParticleRenderer) Draw(field *systems.ParticleField) {
	caps := field.Caps()

	r.canvas.Begin()
	rl.BeginMode2D(rl.Camera2D{Zoom: r.canvas.Ratio()})

	for _, p := range field.Ambient() {
		drawDot(p.X, p.Y, p.Radius, p.Opacity, ambientRGB, caps.Glow)
	}

	links := field.Links()
	if len(links) > 0 {
		// One batch for every segment
		c := rgba(ambientRGB, linkAlpha)
		rl.Begin(rl.Lines)
		rl.Color4ub(c.R, c.G, c.B, c.A)
		for _, s := range links {
			rl.Vertex2f(s.X1, s.Y1)
			rl.Vertex2f(s.X2, s.Y2)
		}
		rl.End()
	}

	if caps.Glow {
		if ptr := field.Pointer(); ptr.Observed {
			drawPointerGlow(ptr.X, ptr.Y, float32(field.Config().PointerGlow))
		}
	}

	for _, p := range field.Trails() {
		drawDot(p.X, p.Y, p.Radius, p.Opacity, trailRGB, caps.Glow)
	}

	rl.EndMode2D()
	r.canvas.End()
}

func drawDot(x, y, radius, opacity float32, rgb [3]uint8, glow bool) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, rgba(rgb, opacity))
	if glow {
		rl.DrawCircleGradient(int32(x), int32(y), radius*glowScale, rgba(rgb, opacity*glowOpacity), rgba(rgb, 0))
	}
}

// drawPointerGlow approximates a three-stop radial gradient (0.1, 0.05 at
// half radius, 0) with two stacked two-stop gradients.
func drawPointerGlow(x, y, radius float32) {
	rl.DrawCircleGradient(int32(x), int32(y), radius, rgba(ambientRGB, 0.05), rgba(ambientRGB, 0))
	rl.DrawCircleGradient(int32(x), int32(y), radius/2, rgba(ambientRGB, 0.05), rgba(ambientRGB, 0))
}

// rgba builds a colour from an RGB triple and an alpha in [0, 1].
func rgba(rgb [3]uint8, alpha float32) rl.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return rl.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha * 255)}
}
