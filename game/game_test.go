package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/ambient/config"
	"github.com/pthm-cable/ambient/systems"
	"github.com/pthm-cable/ambient/telemetry"
)

func newHeadless(t *testing.T, mutate func(*Options)) *Game {
	t.Helper()
	opts := DefaultOptions()
	opts.Config = config.Defaults()
	opts.Headless = true
	if mutate != nil {
		mutate(&opts)
	}
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func run(g *Game, frames int) {
	for i := 0; i < frames; i++ {
		g.UpdateHeadless()
	}
}

func TestNewGameDesktop(t *testing.T) {
	g := newHeadless(t, nil)

	if g.Class() != config.DeviceDesktop {
		t.Errorf("1280px viewport should be desktop, got %s", g.Class())
	}
	if n := len(g.Field().Ambient()); n != 60 {
		t.Errorf("expected 60 ambient particles, got %d", n)
	}
	if len(g.Orbs().Orbs()) != 3 {
		t.Errorf("expected 3 orbs, got %d", len(g.Orbs().Orbs()))
	}
	if g.Mascot() == nil {
		t.Fatal("mascot should be mounted")
	}
	if w, h := g.Size(); w != 1280 || h != 800 {
		t.Errorf("expected configured screen size, got %vx%v", w, h)
	}
}

func TestNewGameProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		width   int
		want    config.DeviceClass
	}{
		{"auto wide", "auto", 1280, config.DeviceDesktop},
		{"auto narrow", "auto", 600, config.DeviceConstrained},
		{"auto at threshold", "", 768, config.DeviceConstrained},
		{"forced desktop", "desktop", 600, config.DeviceDesktop},
		{"forced constrained", "constrained", 1280, config.DeviceConstrained},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newHeadless(t, func(o *Options) {
				o.Profile = tt.profile
				o.Width, o.Height = tt.width, 700
			})
			if g.Class() != tt.want {
				t.Errorf("got %s, want %s", g.Class(), tt.want)
			}
		})
	}
}

func TestNewGameRejectsUnknownProfile(t *testing.T) {
	opts := DefaultOptions()
	opts.Config = config.Defaults()
	opts.Headless = true
	opts.Profile = "tablet"
	if _, err := NewGame(opts); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestConstrainedProfileSkipsExtras(t *testing.T) {
	g := newHeadless(t, func(o *Options) {
		o.Profile = "constrained"
		o.PointerPath = PointerOrbit
	})
	run(g, 120)

	if n := len(g.Field().Ambient()); n != 30 {
		t.Errorf("expected 30 ambient particles, got %d", n)
	}
	if len(g.Field().Links()) != 0 {
		t.Error("constrained profile should draw no links")
	}
	if len(g.Field().Trails()) != 0 {
		t.Error("constrained profile should emit no trails")
	}
	if g.Orbs().Placements(1280, 800) != nil {
		t.Error("constrained profile should place no orbs")
	}
}

func TestCallbacksRescheduleEveryFrame(t *testing.T) {
	g := newHeadless(t, nil)

	for i := 1; i <= 30; i++ {
		g.UpdateHeadless()
		if p := g.scheduler.Pending(); p != 3 {
			t.Fatalf("frame %d: expected 3 pending callbacks, got %d", i, p)
		}
	}
	if g.Mascot().Frames() != 30 {
		t.Errorf("expected 30 mascot updates, got %d", g.Mascot().Frames())
	}
	if g.Frames() != 30 {
		t.Errorf("expected 30 frames, got %d", g.Frames())
	}
}

func TestVisibilitySuspendsAndResumes(t *testing.T) {
	g := newHeadless(t, nil)
	run(g, 5)

	g.Dispatch(Visibility(false))
	if !g.Hidden() {
		t.Fatal("game should be hidden")
	}
	before := append(g.Field().Ambient()[:0:0], g.Field().Ambient()...)
	mascotFrames := g.Mascot().Frames()

	run(g, 10)

	if g.Field().Stats().Updated {
		t.Error("hidden field should not update")
	}
	for i, p := range g.Field().Ambient() {
		if p != before[i] {
			t.Fatalf("particle %d moved while hidden", i)
		}
	}
	if g.Mascot().Frames() != mascotFrames {
		t.Errorf("mascot updated while hidden: %d -> %d", mascotFrames, g.Mascot().Frames())
	}
	if g.scheduler.Pending() != 3 {
		t.Errorf("callbacks should stay scheduled while hidden, got %d", g.scheduler.Pending())
	}

	g.Dispatch(Visibility(true))
	run(g, 1)
	if !g.Field().Stats().Updated {
		t.Error("field should resume on the first visible frame")
	}
	if g.Mascot().Frames() != mascotFrames+1 {
		t.Error("mascot should resume on the first visible frame")
	}
}

func TestResizeDebouncedForFieldImmediateForMascot(t *testing.T) {
	g := newHeadless(t, nil)
	run(g, 3)

	g.Dispatch(Resize(400, 300))

	cam := g.Mascot().Camera()
	if math.Abs(cam.Aspect-4.0/3.0) > 1e-9 {
		t.Errorf("mascot aspect should follow immediately, got %v", cam.Aspect)
	}
	if w, h := g.Field().Size(); w != 1280 || h != 800 {
		t.Errorf("field should wait for the debounce, got %vx%v", w, h)
	}

	// 150ms at ~16.7ms per frame
	run(g, 12)
	if w, h := g.Field().Size(); w != 400 || h != 300 {
		t.Fatalf("field should be 400x300 after debounce, got %vx%v", w, h)
	}
	for i, p := range g.Field().Ambient() {
		if p.X < 0 || p.X >= 400 || p.Y < 0 || p.Y >= 300 {
			t.Fatalf("particle %d at (%v, %v) outside resized field", i, p.X, p.Y)
		}
	}

	// A repeated size is not a new event
	g.Dispatch(Resize(400, 300))
	if g.Field().Stats().Resized {
		t.Error("unexpected resize")
	}
}

func TestOrbitPointerDrivesMascot(t *testing.T) {
	g := newHeadless(t, func(o *Options) { o.PointerPath = PointerOrbit })
	run(g, 90)

	if !g.Field().Pointer().Observed {
		t.Fatal("orbit path should move the pointer")
	}
	pose := g.Mascot().Pose()
	if pose.TargetYaw == 0 && pose.TargetPitch == 0 {
		t.Error("mascot should have a non-zero target")
	}
	if math.Abs(pose.Yaw) > 0.5 || math.Abs(pose.Pitch) > 0.3 {
		t.Errorf("pose (%v, %v) exceeds its scale", pose.Yaw, pose.Pitch)
	}
}

func TestOrbitPointerGeometry(t *testing.T) {
	tests := []struct {
		ts   float64
		x, y float32
	}{
		{0, 400 + 180, 300},
		{1500, 400, 300 + 180},
		{3000, 400 - 180, 300},
		{6000, 400 + 180, 300},
	}
	for _, tt := range tests {
		x, y := orbitPointer(tt.ts, 800, 600)
		if math.Abs(float64(x-tt.x)) > 1e-3 || math.Abs(float64(y-tt.y)) > 1e-3 {
			t.Errorf("orbitPointer(%v) = (%v, %v), want (%v, %v)", tt.ts, x, y, tt.x, tt.y)
		}
	}
}

func TestSetCapsReachesComponents(t *testing.T) {
	g := newHeadless(t, func(o *Options) { o.Profile = "constrained" })

	caps := g.Caps()
	caps.Links = true
	caps.Orbs = true
	g.SetCaps(caps)
	run(g, 1)

	if !g.Field().Caps().Links {
		t.Error("field should see links enabled")
	}
	if len(g.Orbs().Placements(1280, 800)) != 3 {
		t.Error("enabling orbs should lay them out")
	}
}

func TestMascotDisabledByConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Mascot.Enabled = false
	g := newHeadless(t, func(o *Options) { o.Config = cfg })

	if g.Mascot() != nil {
		t.Fatal("mascot should be skipped")
	}
	run(g, 10)
	if g.scheduler.Pending() != 2 {
		t.Errorf("expected 2 pending callbacks without mascot, got %d", g.scheduler.Pending())
	}
}

func TestStatsWindowFlush(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := newHeadless(t, func(o *Options) {
		o.StatsWindowSec = 0.5
		o.OutputDir = dir
		o.PointerPath = PointerOrbit
	})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	// A little over two seconds at 60fps
	run(g, 135)

	if len(windows) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(windows))
	}
	for i, w := range windows {
		if w.AmbientCount != 60 {
			t.Errorf("window %d: ambient %d, want 60", i, w.AmbientCount)
		}
		if w.Frames == 0 || w.HiddenFrames != 0 {
			t.Errorf("window %d: frames %d hidden %d", i, w.Frames, w.HiddenFrames)
		}
		if math.Abs(w.FrameMsMean-1000.0/60) > 1e-6 {
			t.Errorf("window %d: frame interval %v", i, w.FrameMsMean)
		}
	}

	for _, name := range []string{"telemetry.csv", "perf.csv", "phases.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestHeadlessProfileTimesSimulationWithoutDraw(t *testing.T) {
	g := newHeadless(t, nil)
	run(g, 30)

	prof := g.perf.Profile()
	if prof.Frames != 30 {
		t.Fatalf("expected 30 profiled frames, got %d", prof.Frames)
	}
	ids := g.registry.IDs()
	if len(prof.Phases) != len(ids) {
		t.Fatalf("profile has %d phases, registry %d systems", len(prof.Phases), len(ids))
	}
	for i, ph := range prof.Phases {
		if ph.Name != ids[i] {
			t.Errorf("phase %d = %q, registry has %q", i, ph.Name, ids[i])
		}
	}

	draw, _ := prof.Phase(systems.SystemDraw)
	if draw.Mean != 0 {
		t.Errorf("headless frames never draw, got %v", draw.Mean)
	}
	particles, _ := prof.Phase(systems.SystemParticles)
	if particles.Mean <= 0 {
		t.Error("particle phase should be timed")
	}

	// Field load rides along with the timings
	if prof.PairsChecked <= 0 {
		t.Errorf("desktop profile checks link pairs, got %v", prof.PairsChecked)
	}
	if prof.PairsChecked > 60*59/2 {
		t.Errorf("grid should check no more than every pair, got %v", prof.PairsChecked)
	}
}
