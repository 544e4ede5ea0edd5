package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/ambient/config"
)

func newTestField(t *testing.T, w, h float32, caps config.Capabilities) (*ParticleField, *MemorySurface) {
	t.Helper()
	surface := NewMemorySurface(w, h)
	f, err := NewParticleField(config.Defaults(), caps, surface, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("creating field: %v", err)
	}
	return f, surface
}

func desktopCaps() config.Capabilities {
	return config.Defaults().Profiles.Desktop
}

func TestNewParticleFieldRequiresSurface(t *testing.T) {
	_, err := NewParticleField(config.Defaults(), desktopCaps(), nil, nil, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}

func TestSeedRanges(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())

	if len(f.Ambient()) != 60 {
		t.Fatalf("expected 60 particles, got %d", len(f.Ambient()))
	}
	for i, p := range f.Ambient() {
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Errorf("particle %d seeded outside surface: (%f, %f)", i, p.X, p.Y)
		}
		if p.Radius < 1 || p.Radius >= 3 {
			t.Errorf("particle %d radius %f outside [1,3)", i, p.Radius)
		}
		if p.VX < -0.25 || p.VX >= 0.25 || p.VY < -0.25 || p.VY >= 0.25 {
			t.Errorf("particle %d velocity (%f, %f) outside [-0.25,0.25)", i, p.VX, p.VY)
		}
		if p.PulseSpeed < 0.01 || p.PulseSpeed >= 0.03 {
			t.Errorf("particle %d pulse speed %f outside [0.01,0.03)", i, p.PulseSpeed)
		}
	}
}

func TestWrapInvariant(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())

	// Velocities far larger than the surface still wrap
	speeds := []float32{0.3, -7, 250, -1900, 12345}
	for i := range f.ambient {
		f.ambient[i].VX = speeds[i%len(speeds)]
		f.ambient[i].VY = -speeds[(i+2)%len(speeds)]
	}
	f.pointer.Move(400, 300)

	for step := 0; step < 500; step++ {
		f.Update()
		for i, p := range f.Ambient() {
			if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
				t.Fatalf("step %d: particle %d escaped to (%f, %f)", step, i, p.X, p.Y)
			}
		}
	}
}

func TestWrapFunction(t *testing.T) {
	tests := []struct {
		v, size, want float32
	}{
		{5, 10, 5},
		{-1, 10, 9},
		{10, 10, 0},
		{25, 10, 5},
		{-25, 10, 5},
		{3, 0, 0},
	}
	for _, tc := range tests {
		if got := wrap(tc.v, tc.size); math.Abs(float64(got-tc.want)) > 1e-5 {
			t.Errorf("wrap(%f, %f) = %f, want %f", tc.v, tc.size, got, tc.want)
		}
	}
	if got := wrap(-1e-9, 10); got < 0 || got >= 10 {
		t.Errorf("wrap of tiny negative escaped range: %f", got)
	}
}

func TestOpacityBound(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())

	for step := 0; step < 2000; step++ {
		f.Update()
		for i, p := range f.Ambient() {
			if p.Opacity < 0 || p.Opacity > 0.6 {
				t.Fatalf("step %d: particle %d opacity %f outside [0,0.6]", step, i, p.Opacity)
			}
		}
	}
}

func TestOpacityIsContinuous(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	prev := make([]float32, len(f.Ambient()))
	f.Update()
	for i, p := range f.Ambient() {
		prev[i] = p.Opacity
	}

	// Max pulse speed 0.03 rad/frame with amplitude 0.3 bounds the step
	for step := 0; step < 500; step++ {
		f.Update()
		for i, p := range f.Ambient() {
			if d := math.Abs(float64(p.Opacity - prev[i])); d > 0.3*0.03+1e-4 {
				t.Fatalf("step %d: particle %d opacity jumped by %f", step, i, d)
			}
			prev[i] = p.Opacity
		}
	}
}

func TestTrailRemovedAfterCeilSteps(t *testing.T) {
	tests := []struct {
		decay float64
		want  int
	}{
		{0.05, 20},
		{0.03, 34},
		{0.02, 50},
		{0.045, 23},
		{0.5, 2},
		{1, 1},
	}

	for _, tc := range tests {
		f, _ := newTestField(t, 800, 600, desktopCaps())
		f.AddTrail(TrailParticle{X: 10, Y: 10, Decay: tc.decay})

		steps := 0
		for len(f.Trails()) > 0 {
			f.Update()
			steps++
			if steps > 1000 {
				t.Fatalf("decay %f: trail never expired", tc.decay)
			}
		}
		if steps != tc.want {
			t.Errorf("decay %f: removed after %d steps, want %d", tc.decay, steps, tc.want)
		}
	}
}

func TestTrailTinyDecayStaysAlive(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	f.AddTrail(TrailParticle{X: 10, Y: 10, Decay: 1e-10})

	for i := 0; i < 5; i++ {
		f.Update()
	}
	if len(f.Trails()) != 1 {
		t.Fatalf("trail with decay 1e-10 expired after 5 updates")
	}
	if f.Trails()[0].steps != maxTrailSteps {
		t.Errorf("expected steps capped at %d, got %d", maxTrailSteps, f.Trails()[0].steps)
	}
}

func TestTrailUpdate(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	f.AddTrail(TrailParticle{X: 100, Y: 100, VX: 1, VY: -2, Radius: 3, Decay: 0.1})

	f.Update()
	p := f.Trails()[0]

	if p.X != 101 || p.Y != 98 {
		t.Errorf("expected position (101, 98), got (%f, %f)", p.X, p.Y)
	}
	if math.Abs(float64(p.Life)-0.9) > 1e-6 {
		t.Errorf("expected life 0.9, got %f", p.Life)
	}
	if p.Opacity != p.Life {
		t.Errorf("opacity %f should track life %f", p.Opacity, p.Life)
	}
	if math.Abs(float64(p.VX)-0.98) > 1e-6 || math.Abs(float64(p.VY)+1.96) > 1e-6 {
		t.Errorf("expected damped velocity (0.98, -1.96), got (%f, %f)", p.VX, p.VY)
	}
}

func TestTrailFilterKeepsOnlyLiving(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	f.AddTrail(TrailParticle{Decay: 0.5})  // 2 steps
	f.AddTrail(TrailParticle{Decay: 0.1})  // 10 steps
	f.AddTrail(TrailParticle{Decay: 0.25}) // 4 steps
	f.AddTrail(TrailParticle{Decay: 0})    // rejected

	if len(f.Trails()) != 3 {
		t.Fatalf("expected 3 trails, got %d", len(f.Trails()))
	}

	f.Update()
	f.Update()
	if len(f.Trails()) != 2 {
		t.Fatalf("expected 2 trails after 2 steps, got %d", len(f.Trails()))
	}
	for _, p := range f.Trails() {
		if p.Life <= 0 {
			t.Errorf("trail with life %f survived the filter", p.Life)
		}
	}
	if f.Stats().Expired != 1 {
		t.Errorf("expected 1 expiry on the second step, got %d", f.Stats().Expired)
	}
}

func TestLinkBoundary(t *testing.T) {
	caps := desktopCaps()
	caps.ParticleCount = 2
	caps.ConnectDistance = 100
	f, _ := newTestField(t, 1000, 1000, caps)

	place := func(dx float32) {
		f.ambient[0] = AmbientParticle{X: 100, Y: 100}
		f.ambient[1] = AmbientParticle{X: 100 + dx, Y: 100}
		f.links = f.links[:0]
		f.updateLinks()
	}

	// Squared distance exactly equal to the threshold: no line
	place(100)
	if len(f.Links()) != 0 {
		t.Errorf("expected no link at exactly the threshold, got %d", len(f.Links()))
	}

	// Epsilon inside: a line
	place(99.99)
	if len(f.Links()) != 1 {
		t.Fatalf("expected a link just inside the threshold, got %d", len(f.Links()))
	}
	seg := f.Links()[0]
	if seg.X1 != 100 || seg.Y1 != 100 || seg.X2 <= seg.X1 {
		t.Errorf("unexpected segment %+v", seg)
	}
}

func TestLinksCountEveryPairOnce(t *testing.T) {
	caps := desktopCaps()
	caps.ParticleCount = 5
	caps.ConnectDistance = 50
	f, _ := newTestField(t, 1000, 1000, caps)

	// All five particles within 50 of each other
	for i := range f.ambient {
		f.ambient[i] = AmbientParticle{X: 500 + float32(i), Y: 500}
	}
	f.links = f.links[:0]
	f.updateLinks()

	if len(f.Links()) != 10 {
		t.Errorf("expected 10 links for 5 close particles, got %d", len(f.Links()))
	}
	if f.Stats().PairsChecked != 10 {
		t.Errorf("expected 10 pairs checked, got %d", f.Stats().PairsChecked)
	}
}

func TestLinksDisabled(t *testing.T) {
	caps := config.Defaults().Profiles.Constrained
	f, _ := newTestField(t, 100, 100, caps)

	f.Update()
	if len(f.Links()) != 0 {
		t.Errorf("links disabled but %d segments produced", len(f.Links()))
	}
}

func TestAttraction(t *testing.T) {
	caps := desktopCaps()
	caps.ParticleCount = 1
	f, _ := newTestField(t, 1000, 1000, caps)
	f.ambient[0] = AmbientParticle{X: 400, Y: 500}

	// Pointer never observed: no pull
	f.Update()
	if f.ambient[0].X != 400 {
		t.Fatalf("particle moved without pointer: x=%f", f.ambient[0].X)
	}

	f.OnPointerMove(500, 500)
	f.ambient[0] = AmbientParticle{X: 400, Y: 500}
	f.Update()

	// distance 100 -> force (200-100)/200 * 0.5 = 0.25 toward the pointer
	if got := f.ambient[0].X; math.Abs(float64(got)-400.25) > 1e-4 {
		t.Errorf("expected x=400.25 after attraction, got %f", got)
	}
	if f.ambient[0].Y != 500 {
		t.Errorf("expected y unchanged, got %f", f.ambient[0].Y)
	}

	// Outside the radius: no pull
	f.ambient[0] = AmbientParticle{X: 100, Y: 500}
	f.Update()
	if f.ambient[0].X != 100 {
		t.Errorf("particle outside radius moved: x=%f", f.ambient[0].X)
	}

	// On top of the pointer: no division by zero
	f.ambient[0] = AmbientParticle{X: 500, Y: 500}
	f.Update()
	if math.IsNaN(float64(f.ambient[0].X)) {
		t.Error("particle at pointer produced NaN")
	}
}

func TestAttractionDisabledByCaps(t *testing.T) {
	caps := desktopCaps()
	caps.ParticleCount = 1
	caps.Attraction = false
	f, _ := newTestField(t, 1000, 1000, caps)
	f.OnPointerMove(500, 500)
	f.ambient[0] = AmbientParticle{X: 400, Y: 500}

	f.Update()
	if f.ambient[0].X != 400 {
		t.Errorf("attraction disabled but particle moved to %f", f.ambient[0].X)
	}
}

func TestTrailEmissionProbability(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())

	for i := 0; i < 10000; i++ {
		f.OnPointerMove(float32(i%800), 300)
	}
	n := len(f.Trails())
	// 10% emission with some slack
	if n < 800 || n > 1200 {
		t.Errorf("expected roughly 1000 emissions from 10000 moves, got %d", n)
	}
	for _, p := range f.Trails() {
		if p.Decay < 0.02 || p.Decay >= 0.05 {
			t.Fatalf("trail decay %f outside [0.02,0.05)", p.Decay)
		}
	}
}

func TestTrailsDisabledOnConstrained(t *testing.T) {
	f, _ := newTestField(t, 400, 400, config.Defaults().Profiles.Constrained)

	for i := 0; i < 1000; i++ {
		f.OnPointerMove(10, 10)
	}
	if len(f.Trails()) != 0 {
		t.Errorf("constrained profile emitted %d trails", len(f.Trails()))
	}
	if !f.Pointer().Observed {
		t.Error("pointer should still be recorded")
	}
}

func TestResizeScenario(t *testing.T) {
	f, surface := newTestField(t, 800, 600, desktopCaps())
	if len(f.Ambient()) != 60 {
		t.Fatalf("expected 60 particles, got %d", len(f.Ambient()))
	}

	f.OnResize(400, 300, 1000)

	// Not settled yet
	f.Frame(1100)
	if w, _ := f.Size(); w != 800 {
		t.Fatalf("resize applied before debounce interval: width %f", w)
	}

	f.Frame(1150)
	if w, h := f.Size(); w != 400 || h != 300 {
		t.Fatalf("expected 400x300 after debounce, got %fx%f", w, h)
	}
	if surface.W != 400 || surface.H != 300 || surface.Resizes != 1 {
		t.Errorf("surface not resized in lockstep: %+v", surface)
	}
	if len(f.Ambient()) != 60 {
		t.Errorf("expected 60 particles after resize, got %d", len(f.Ambient()))
	}
	for i, p := range f.Ambient() {
		if p.X < 0 || p.X >= 400 || p.Y < 0 || p.Y >= 300 {
			t.Errorf("particle %d outside resized surface: (%f, %f)", i, p.X, p.Y)
		}
	}
}

func TestResizeDebounceRestartsOnNewInput(t *testing.T) {
	f, surface := newTestField(t, 800, 600, desktopCaps())

	f.OnResize(700, 500, 0)
	f.Frame(100)
	f.OnResize(600, 400, 120)
	f.Frame(200) // 80ms after the last input
	if surface.Resizes != 0 {
		t.Fatal("resize fired before input settled")
	}
	f.Frame(270)
	if surface.Resizes != 1 || surface.W != 600 {
		t.Errorf("expected a single resize to 600, got %d resizes at width %f", surface.Resizes, surface.W)
	}
}

func TestZeroSizeSurface(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	f.OnResize(0, 0, 0)
	f.Frame(200)

	for i := 0; i < 10; i++ {
		f.Frame(float64(200 + i*16))
	}
	for _, p := range f.Ambient() {
		if p.X != 0 || p.Y != 0 || math.IsNaN(float64(p.Opacity)) {
			t.Fatalf("zero-size surface produced particle %+v", p)
		}
	}
}

func TestVisibilityScenario(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	f.AddTrail(TrailParticle{X: 1, Y: 1, VX: 1, Decay: 0.01})
	f.Frame(0)

	before := append([]AmbientParticle(nil), f.Ambient()...)
	trailsBefore := append([]TrailParticle(nil), f.Trails()...)

	f.SetVisible(false)
	for i := 1; i <= 30; i++ {
		f.Frame(float64(i) * 16)
		if f.Stats().Updated {
			t.Fatal("hidden frame reported an update")
		}
	}

	for i := range before {
		if before[i] != f.Ambient()[i] {
			t.Fatalf("particle %d mutated while hidden: %+v -> %+v", i, before[i], f.Ambient()[i])
		}
	}
	if len(trailsBefore) != len(f.Trails()) || trailsBefore[0] != f.Trails()[0] {
		t.Fatal("trail mutated while hidden")
	}

	f.SetVisible(true)
	f.Frame(31 * 16)
	if !f.Stats().Updated {
		t.Fatal("visible frame did not update")
	}
	changed := false
	for i := range before {
		if before[i] != f.Ambient()[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("expected mutation to resume on the first visible frame")
	}
}

func TestResizeWhileHiddenWaitsForVisibility(t *testing.T) {
	f, surface := newTestField(t, 800, 600, desktopCaps())
	f.Frame(0)
	before := append([]AmbientParticle(nil), f.Ambient()...)

	f.SetVisible(false)
	f.OnResize(400, 300, 0)
	for i := 1; i <= 20; i++ {
		f.Frame(float64(i) * 16.7)
		if f.Stats().Resized {
			t.Fatalf("frame %d: resize applied while hidden", i)
		}
	}

	if surface.Resizes != 0 {
		t.Errorf("surface resized while hidden: %+v", surface)
	}
	if w, h := f.Size(); w != 800 || h != 600 {
		t.Errorf("field size changed while hidden: %vx%v", w, h)
	}
	for i := range before {
		if before[i] != f.Ambient()[i] {
			t.Fatalf("particle %d re-seeded while hidden", i)
		}
	}

	// The settled size lands on the first visible frame
	f.SetVisible(true)
	f.Frame(21 * 16.7)
	if !f.Stats().Resized || !f.Stats().Updated {
		t.Fatalf("expected resize and update on the first visible frame, got %+v", f.Stats())
	}
	if surface.W != 400 || surface.H != 300 || surface.Resizes != 1 {
		t.Errorf("surface not resized in lockstep: %+v", surface)
	}
	for i, p := range f.Ambient() {
		if p.X < 0 || p.X >= 400 || p.Y < 0 || p.Y >= 300 {
			t.Fatalf("particle %d outside resized surface: (%f, %f)", i, p.X, p.Y)
		}
	}
}

func TestSetCapsReseedsOnCountChange(t *testing.T) {
	f, _ := newTestField(t, 800, 600, desktopCaps())
	f.AddTrail(TrailParticle{Decay: 0.1})

	caps := f.Caps()
	caps.ParticleCount = 12
	caps.Trails = false
	f.SetCaps(caps)

	if len(f.Ambient()) != 12 {
		t.Errorf("expected 12 particles after caps change, got %d", len(f.Ambient()))
	}
	if len(f.Trails()) != 0 {
		t.Errorf("disabling trails should drop the active trail, got %d", len(f.Trails()))
	}
}
