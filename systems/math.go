package systems

import (
	"math"
	"math/rand"
)

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// wrap maps v into [0, size) for any v. A non-positive size collapses to 0,
// which keeps a transiently zero-size surface a no-op instead of a NaN.
func wrap(v, size float32) float32 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	r := float32(math.Mod(float64(v), float64(size)))
	if r < 0 {
		r += size
	}
	// r+size can round up to size for tiny negative r
	if r >= size {
		r = 0
	}
	return r
}

// randRange returns a float32 in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float32 {
	return float32(lo + rng.Float64()*(hi-lo))
}

// randSymmetric returns a float32 in [-span/2, span/2).
func randSymmetric(rng *rand.Rand, span float64) float32 {
	return float32((rng.Float64() - 0.5) * span)
}
