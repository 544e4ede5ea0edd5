package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/systems"
)

const (
	orbFalloff = 0.7 // Gradient reaches transparent at 70% of the orb radius
	orbBlur    = 30  // Extra soft edge in pixels
)

// OrbRenderer draws floating orbs straight onto the framebuffer.
type OrbRenderer struct{}

// NewOrbRenderer creates a new orb renderer.
func NewOrbRenderer() *OrbRenderer {
	return &OrbRenderer{}
}

// Draw renders every placement as a soft radial blob. Elliptical orbs are
// drawn as circles stretched on the matrix stack.
func (r *OrbRenderer) Draw(placements []systems.OrbPlacement) {
	for _, o := range placements {
		if o.W <= 0 || o.H <= 0 {
			continue
		}
		radius := o.W/2*orbFalloff + orbBlur

		rl.PushMatrix()
		rl.Translatef(o.X, o.Y, 0)
		rl.Scalef(1, o.H/o.W, 1)
		rl.DrawCircleGradient(0, 0, radius, rgba(ambientRGB, o.Alpha), rgba(ambientRGB, 0))
		rl.PopMatrix()
	}
}
