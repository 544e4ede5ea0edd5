package systems

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/ambient/config"
)

// AmbientParticle is a long-lived point with a pulsing opacity.
type AmbientParticle struct {
	X, Y       float32
	VX, VY     float32
	Radius     float32
	Opacity    float32
	Phase      float32 // Pulse phase in [0, 2π)
	PulseSpeed float32 // Phase advance per frame
}

// TrailParticle is a short-lived particle emitted by pointer movement.
type TrailParticle struct {
	X, Y    float32
	VX, VY  float32
	Radius  float32
	Opacity float32
	Life    float32 // 1 at emission, removed once it reaches 0
	Decay   float64 // Life lost per frame

	age   int
	steps int // ceil(1/Decay): frames until removal
}

// Segment is one proximity line between two ambient particles.
type Segment struct {
	X1, Y1, X2, Y2 float32
}

// FieldStats holds counters for the most recent frame.
type FieldStats struct {
	Updated      bool // False when the frame was skipped (hidden)
	Resized      bool
	Emitted      int // Trail particles emitted since the previous frame
	Expired      int // Trail particles removed this frame
	Links        int
	PairsChecked int
}

// ParticleField owns the ambient particle set, the pointer trail and the
// proximity overlay for one drawing surface.
type ParticleField struct {
	cfg     config.ParticlesConfig
	trail   config.TrailConfig
	caps    config.Capabilities
	surface Surface
	pointer *Pointer
	rng     *rand.Rand

	width, height float32
	connectSq     float32
	attractSq     float32

	ambient []AmbientParticle
	trails  []TrailParticle
	links   []Segment

	grid       *SpatialGrid
	candidates []int32

	resize  *Debouncer
	visible bool

	stats        FieldStats
	pendingEmits int
}

// NewParticleField creates a particle field drawing onto surface and seeds the
// ambient set from the surface size. pointer is shared with other readers; if
// nil the field keeps its own. A nil surface is a configuration error.
func NewParticleField(cfg *config.Config, caps config.Capabilities, surface Surface, pointer *Pointer, rng *rand.Rand) (*ParticleField, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if pointer == nil {
		pointer = &Pointer{}
	}

	w, h := surface.Size()
	f := &ParticleField{
		cfg:       cfg.Particles,
		trail:     cfg.Trail,
		caps:      caps,
		surface:   surface,
		pointer:   pointer,
		rng:       rng,
		width:     w,
		height:    h,
		connectSq: caps.ConnectDistanceSq(),
		attractSq: cfg.Derived.AttractRadiusSq,
		resize:    NewDebouncer(cfg.Particles.ResizeDebounceMs),
		visible:   true,
		trails:    make([]TrailParticle, 0, 64),
	}
	f.Seed()

	slog.Info("particle field initialized",
		"particles", len(f.ambient),
		"width", w,
		"height", h,
		"links", caps.Links,
		"attraction", caps.Attraction,
		"trails", caps.Trails,
	)

	return f, nil
}

// Seed replaces the whole ambient set with freshly randomized particles
// spread uniformly over the current surface.
func (f *ParticleField) Seed() {
	n := f.caps.ParticleCount
	if cap(f.ambient) < n {
		f.ambient = make([]AmbientParticle, n)
	}
	f.ambient = f.ambient[:n]

	for i := range f.ambient {
		f.ambient[i] = AmbientParticle{
			X:          f.rng.Float32() * f.width,
			Y:          f.rng.Float32() * f.height,
			Radius:     randRange(f.rng, f.cfg.RadiusMin, f.cfg.RadiusMax),
			VX:         randSymmetric(f.rng, f.cfg.SpeedRange),
			VY:         randSymmetric(f.rng, f.cfg.SpeedRange),
			Opacity:    randRange(f.rng, f.cfg.OpacityMin, f.cfg.OpacityMax),
			PulseSpeed: randRange(f.rng, f.cfg.PulseSpeedMin, f.cfg.PulseSpeedMax),
			Phase:      randRange(f.rng, 0, 2*math.Pi),
		}
		// rng.Float32 is in [0,1), but the product can round up to the edge
		f.ambient[i].X = wrap(f.ambient[i].X, f.width)
		f.ambient[i].Y = wrap(f.ambient[i].Y, f.height)
	}
}

// OnResize records a viewport size change. It is applied by Frame once the
// viewport has been stable for the debounce interval.
func (f *ParticleField) OnResize(w, h float32, ts float64) {
	f.resize.Push(w, h, ts)
}

// OnPointerMove records the pointer and may emit one trail particle.
func (f *ParticleField) OnPointerMove(x, y float32) {
	f.pointer.Move(x, y)
	if !f.caps.Trails {
		return
	}
	if f.rng.Float64() <= f.trail.EmitThreshold {
		return
	}
	f.EmitTrail(x, y)
}

// EmitTrail adds a trail particle at (x, y) unconditionally.
func (f *ParticleField) EmitTrail(x, y float32) {
	decay := f.trail.DecayMin + f.rng.Float64()*(f.trail.DecayMax-f.trail.DecayMin)
	f.AddTrail(TrailParticle{
		X:      x,
		Y:      y,
		Radius: randRange(f.rng, f.trail.RadiusMin, f.trail.RadiusMax),
		VX:     randSymmetric(f.rng, f.trail.SpeedRange),
		VY:     randSymmetric(f.rng, f.trail.SpeedRange),
		Decay:  decay,
	})
}

// AddTrail appends a trail particle with full life. Decay must be positive.
func (f *ParticleField) AddTrail(p TrailParticle) {
	if p.Decay <= 0 {
		return
	}
	p.Life = 1
	p.Opacity = 1
	p.age = 0
	p.steps = trailSteps(p.Decay)
	f.trails = append(f.trails, p)
	f.pendingEmits++
}

// maxTrailSteps bounds the lifetime of a trail with a vanishing decay.
const maxTrailSteps = math.MaxInt32

// trailSteps returns ceil(1/decay), the number of updates a trail survives.
func trailSteps(decay float64) int {
	steps := math.Ceil(1 / decay)
	if steps > maxTrailSteps {
		return maxTrailSteps
	}
	return int(steps)
}

// SetVisible suspends (false) or resumes (true) per-frame mutation.
func (f *ParticleField) SetVisible(v bool) {
	f.visible = v
}

// Visible reports whether per-frame work is running.
func (f *ParticleField) Visible() bool {
	return f.visible
}

// Frame is the per-frame callback: it applies a settled resize, then updates
// the simulation. While hidden it does nothing at all; a resize that settled
// in the meantime stays pending and applies on the first visible frame.
func (f *ParticleField) Frame(ts float64) {
	f.stats = FieldStats{}

	if !f.visible {
		return
	}

	if w, h, ok := f.resize.Poll(ts); ok {
		f.surface.Resize(w, h)
		f.width, f.height = w, h
		f.Seed()
		f.stats.Resized = true
		slog.Debug("particle field resized", "width", w, "height", h, "particles", len(f.ambient))
	}

	f.Update()
}

// Update advances the field by one frame.
func (f *ParticleField) Update() {
	f.stats.Updated = true
	f.stats.Emitted = f.pendingEmits
	f.pendingEmits = 0

	f.updateAmbient()

	f.links = f.links[:0]
	if f.caps.Links {
		f.updateLinks()
	}

	if f.caps.Trails {
		f.updateTrails()
	}
}

// updateAmbient integrates, pulses, attracts and wraps every ambient particle.
func (f *ParticleField) updateAmbient() {
	base := float32(f.cfg.OpacityBase)
	amp := float32(f.cfg.OpacityAmplitude)
	attract := f.caps.Attraction && f.pointer.Observed
	radius := float32(f.cfg.AttractRadius)
	force := float32(f.cfg.AttractForce)
	px, py := f.pointer.X, f.pointer.Y

	for i := range f.ambient {
		p := &f.ambient[i]

		p.X += p.VX
		p.Y += p.VY

		p.Phase = wrap(p.Phase+p.PulseSpeed, 2*math.Pi)
		p.Opacity = clampFloat(base+float32(math.Sin(float64(p.Phase)))*amp, 0, base+amp)

		if attract {
			dx := px - p.X
			dy := py - p.Y
			dSq := dx*dx + dy*dy
			// dSq > 0 guards the only division
			if dSq < f.attractSq && dSq > 0 {
				d := float32(math.Sqrt(float64(dSq)))
				pull := (radius - d) / radius * force
				p.X += dx / d * pull
				p.Y += dy / d * pull
			}
		}

		p.X = wrap(p.X, f.width)
		p.Y = wrap(p.Y, f.height)
	}
}

// updateLinks collects one segment per unordered pair closer than the
// connection distance. Points are bucketed into cells one connection
// distance wide, so each point only tests the neighbors in its 3x3 block.
// Squared distances avoid the sqrt.
func (f *ParticleField) updateLinks() {
	if f.grid == nil {
		f.grid = NewSpatialGrid(f.width, f.height, float32(f.caps.ConnectDistance))
	} else {
		f.grid.Reset(f.width, f.height, float32(f.caps.ConnectDistance))
	}
	for i := range f.ambient {
		f.grid.Insert(i, f.ambient[i].X, f.ambient[i].Y)
	}

	checked := 0
	for i := range f.ambient {
		a := &f.ambient[i]
		f.candidates = f.grid.NeighborsInto(f.candidates[:0], a.X, a.Y)
		for _, j := range f.candidates {
			// Each pair is tested from its lower index only
			if int(j) <= i {
				continue
			}
			b := &f.ambient[j]
			checked++
			if distanceSq(a.X, a.Y, b.X, b.Y) < f.connectSq {
				f.links = append(f.links, Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
			}
		}
	}
	f.stats.PairsChecked = checked
	f.stats.Links = len(f.links)
}

// updateTrails advances trail particles and filters out the expired ones in place.
func (f *ParticleField) updateTrails() {
	drag := float32(f.trail.Drag)
	alive := 0
	for i := range f.trails {
		p := &f.trails[i]

		p.X += p.VX
		p.Y += p.VY
		p.age++
		if p.age >= p.steps {
			f.stats.Expired++
			continue
		}
		p.Life = clamp01(float32(1 - float64(p.age)*p.Decay))
		p.Opacity = p.Life
		p.VX *= drag
		p.VY *= drag

		f.trails[alive] = *p
		alive++
	}
	f.trails = f.trails[:alive]
}

// SetCaps swaps the capability set. A new particle count re-seeds the
// ambient set; disabling trails drops the active trail.
func (f *ParticleField) SetCaps(caps config.Capabilities) {
	reseed := caps.ParticleCount != f.caps.ParticleCount
	f.caps = caps
	f.connectSq = caps.ConnectDistanceSq()
	if !caps.Trails {
		f.trails = f.trails[:0]
	}
	if !caps.Links {
		f.links = f.links[:0]
	}
	if reseed {
		f.Seed()
	}
}

// SetAttractForce changes the attraction force scale.
func (f *ParticleField) SetAttractForce(force float64) {
	f.cfg.AttractForce = force
}

// Caps returns the active capability set.
func (f *ParticleField) Caps() config.Capabilities {
	return f.caps
}

// Config returns the active particle parameters.
func (f *ParticleField) Config() config.ParticlesConfig {
	return f.cfg
}

// Ambient returns the ambient particles. The slice is owned by the field.
func (f *ParticleField) Ambient() []AmbientParticle {
	return f.ambient
}

// Trails returns the active trail particles. The slice is owned by the field.
func (f *ParticleField) Trails() []TrailParticle {
	return f.trails
}

// Links returns this frame's proximity segments. The slice is owned by the field.
func (f *ParticleField) Links() []Segment {
	return f.links
}

// Pointer returns the pointer state the field reads.
func (f *ParticleField) Pointer() Pointer {
	return *f.pointer
}

// Size returns the current field extent.
func (f *ParticleField) Size() (w, h float32) {
	return f.width, f.height
}

// Stats returns counters for the most recent frame.
func (f *ParticleField) Stats() FieldStats {
	return f.stats
}
