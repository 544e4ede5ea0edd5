package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/ambient/components"
)

// Shade returns the lit colour of a surface point p with normal n, channels
// in [0, 1]. Each channel is base · (emissive + (1 − emissive) · incoming),
// where incoming sums ambient light and point lights weighted by a linear
// range falloff and the facing term. A zero normal faces every light.
func Shade(mat components.Material, p, n r3.Vec, lights []components.Light) (r, g, b float64) {
	var in [3]float64
	unitN := n
	hasNormal := r3.Norm(n) > 0
	if hasNormal {
		unitN = r3.Unit(n)
	}

	for _, l := range lights {
		lr, lg, lb := components.RGB(l.Color)
		w := l.Intensity
		if l.Kind == components.LightPoint {
			toLight := r3.Sub(l.Position, p)
			d := r3.Norm(toLight)
			if l.Range > 0 {
				w *= clampF64(1-d/l.Range, 0, 1)
			}
			if hasNormal && d > 0 {
				w *= clampF64(r3.Dot(unitN, r3.Scale(1/d, toLight)), 0, 1)
			}
		}
		in[0] += lr * w
		in[1] += lg * w
		in[2] += lb * w
	}

	br, bg, bb := components.RGB(mat.Color)
	em := clampF64(mat.Emissive, 0, 1)
	r = br * (em + (1-em)*clampF64(in[0], 0, 1))
	g = bg * (em + (1-em)*clampF64(in[1], 0, 1))
	b = bb * (em + (1-em)*clampF64(in[2], 0, 1))
	return r, g, b
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
