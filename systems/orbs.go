package systems

import (
	"log/slog"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/ambient/config"
)

// Orb is one floating glow blob. Position is stored as fractions of its
// band so a resize needs no re-layout.
type Orb struct {
	Band     int
	FX, FY   float32 // Center as a fraction of the band, in [0.1, 0.9)
	W, H     float32 // Diameters in pixels
	PeriodMs float64
}

// OrbPlacement is an orb resolved against the viewport at the current time.
type OrbPlacement struct {
	X, Y  float32 // Center in pixels, drift applied
	W, H  float32
	Alpha float32
}

// OrbDecorator lays out orbs across horizontal bands of the viewport and
// animates their drift. It is inert when the capability gate is off.
type OrbDecorator struct {
	cfg     config.OrbsConfig
	enabled bool
	noise   opensimplex.Noise

	orbs   []Orb
	placed []OrbPlacement
	now    float64
}

// NewOrbDecorator performs the one-time layout. Bands with index divisible
// by EveryNth receive one orb each.
func NewOrbDecorator(cfg config.OrbsConfig, caps config.Capabilities, rng *rand.Rand) *OrbDecorator {
	d := &OrbDecorator{
		cfg:     cfg,
		enabled: caps.Orbs,
		noise:   opensimplex.NewNormalized(rng.Int63()),
	}
	if !d.enabled {
		slog.Info("orbs disabled for device profile")
		return d
	}
	d.layout(rng)

	slog.Info("orbs initialized", "orbs", len(d.orbs), "sections", cfg.Sections)
	return d
}

func (d *OrbDecorator) layout(rng *rand.Rand) {
	cfg := d.cfg
	nth := cfg.EveryNth
	if nth < 1 {
		nth = 1
	}
	d.orbs = d.orbs[:0]
	for band := 0; band < cfg.Sections; band++ {
		if band%nth != 0 {
			continue
		}
		d.orbs = append(d.orbs, Orb{
			Band:     band,
			W:        randRange(rng, cfg.SizeMin, cfg.SizeMax),
			H:        randRange(rng, cfg.SizeMin, cfg.SizeMax),
			FX:       randRange(rng, 0.1, 0.9),
			FY:       randRange(rng, 0.1, 0.9),
			PeriodMs: (cfg.PeriodMinSec + rng.Float64()*(cfg.PeriodMaxSec-cfg.PeriodMinSec)) * 1000,
		})
	}
	d.placed = make([]OrbPlacement, len(d.orbs))
}

// SetEnabled turns the decorator on or off. Enabling a decorator that was
// built disabled lays the orbs out with rng.
func (d *OrbDecorator) SetEnabled(on bool, rng *rand.Rand) {
	if on && len(d.orbs) == 0 {
		d.layout(rng)
	}
	d.enabled = on
}

// Enabled reports whether the decorator draws anything.
func (d *OrbDecorator) Enabled() bool {
	return d.enabled
}

// Orbs returns the layout. The slice is owned by the decorator.
func (d *OrbDecorator) Orbs() []Orb {
	return d.orbs
}

// Frame records the animation time in milliseconds.
func (d *OrbDecorator) Frame(ts float64) {
	d.now = ts
}

// Offset returns the drift of orb i at time ms. It eases from (0, 0) to
// (drift, -drift) at half period and back.
func (d *OrbDecorator) Offset(i int, ms float64) (dx, dy float32) {
	period := d.orbs[i].PeriodMs
	if period <= 0 {
		return 0, 0
	}
	u := math.Mod(ms, period) / period
	if u < 0 {
		u++
	}
	var s float64
	if u < 0.5 {
		s = easeInOut(u * 2)
	} else {
		s = easeInOut(2 - u*2)
	}
	drift := float32(d.cfg.Drift * s)
	return drift, -drift
}

// Shimmer returns the alpha multiplier of orb i at time ms, in [0.85, 1.15].
func (d *OrbDecorator) Shimmer(i int, ms float64) float32 {
	n := d.noise.Eval2(ms*d.cfg.ShimmerSpeed, float64(i)*7.31)
	return float32(0.85 + 0.3*math.Max(0, math.Min(1, n)))
}

// Placements resolves every orb against a w×h viewport at the last frame
// time. The slice is reused between calls.
func (d *OrbDecorator) Placements(w, h float32) []OrbPlacement {
	if !d.enabled || d.cfg.Sections <= 0 {
		return nil
	}
	bandH := h / float32(d.cfg.Sections)
	alpha := float32(d.cfg.Alpha)
	for i, o := range d.orbs {
		dx, dy := d.Offset(i, d.now)
		d.placed[i] = OrbPlacement{
			X:     o.FX*w + dx,
			Y:     (float32(o.Band)+o.FY)*bandH + dy,
			W:     o.W,
			H:     o.H,
			Alpha: alpha * d.Shimmer(i, d.now),
		}
	}
	return d.placed
}

// easeInOut is a smoothstep over [0, 1].
func easeInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
