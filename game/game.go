// Package game wires the effects layer together and drives it frame by frame.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/ambient/config"
	"github.com/pthm-cable/ambient/frame"
	"github.com/pthm-cable/ambient/renderer"
	"github.com/pthm-cable/ambient/systems"
	"github.com/pthm-cable/ambient/telemetry"
	"github.com/pthm-cable/ambient/ui"
)

// Game wires the effects together: it owns the frame scheduler, routes host
// events to the components and draws them back to front.
type Game struct {
	cfg      *config.Config
	rng      *rand.Rand
	class    config.DeviceClass
	caps     config.Capabilities
	headless bool

	width, height float32
	hidden        bool // Host reports the surface as not visible
	paused        bool // Forced hidden from the keyboard

	scheduler *frame.Scheduler
	pointer   systems.Pointer
	field     *systems.ParticleField
	orbs      *systems.OrbDecorator
	mascot    *systems.MascotScene // nil when the mascot is unavailable

	// Rendering (nil in headless mode)
	particleCanvas   *renderer.Canvas
	mascotCanvas     *renderer.Canvas
	particleRenderer *renderer.ParticleRenderer
	orbRenderer      *renderer.OrbRenderer
	mascotRenderer   *renderer.MascotRenderer

	// UI
	hud         *ui.HUD
	perfPanel   *ui.PerfPanel
	tuning      *ui.TuningPanel
	gates       *ui.GateRegistry
	tuningState ui.TuningState
	showPerf    bool

	// Telemetry
	perf          *telemetry.FrameProfiler
	registry      *systems.SystemRegistry
	collector     *telemetry.Collector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	pointerPath string
	frames      int
}

// NewGame builds every component for the configured device profile.
// A particle field that cannot be created is fatal; a mascot that cannot be
// mounted is logged and skipped.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	w, h := float32(opts.Width), float32(opts.Height)
	if w <= 0 || h <= 0 {
		w, h = cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	}
	dpr := opts.PixelRatio
	if dpr <= 0 {
		dpr = 1
	}

	class, forced, err := config.ParseDeviceClass(opts.Profile)
	if err != nil {
		return nil, err
	}
	if !forced {
		class = cfg.Classify(int(w), cfg.Device.Touch)
	}
	caps := cfg.Capabilities(class)

	g := &Game{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		class:       class,
		caps:        caps,
		headless:    opts.Headless,
		width:       w,
		height:      h,
		scheduler:   frame.NewScheduler(),
		pointerPath: opts.PointerPath,
		logStats:    opts.LogStats,
		tuningState: ui.TuningState{AttractForce: float32(cfg.Particles.AttractForce)},
	}

	// Surfaces
	var particleSurface, mascotSurface systems.Surface
	if opts.Headless {
		particleSurface = systems.NewMemorySurface(w, h)
		mascotSurface = systems.NewMemorySurface(w, h)
	} else {
		g.particleCanvas = renderer.NewCanvas(w, h, dpr, cfg.Screen.MaxPixelRatio)
		g.mascotCanvas = renderer.NewCanvas(w, h, dpr, cfg.Screen.MaxPixelRatio)
		particleSurface = g.particleCanvas
		mascotSurface = g.mascotCanvas
	}

	g.field, err = systems.NewParticleField(cfg, caps, particleSurface, &g.pointer, g.rng)
	if err != nil {
		return nil, fmt.Errorf("creating particle field: %w", err)
	}

	g.orbs = systems.NewOrbDecorator(cfg.Orbs, caps, g.rng)

	if cfg.Mascot.Enabled {
		g.mascot, err = systems.NewMascotScene(cfg.Mascot, mascotSurface)
		if err != nil {
			slog.Warn("mascot unavailable", "error", err)
			g.mascot = nil
		}
	}

	if !opts.Headless {
		g.particleRenderer = renderer.NewParticleRenderer(g.particleCanvas)
		g.orbRenderer = renderer.NewOrbRenderer()
		g.mascotRenderer = renderer.NewMascotRenderer(g.mascotCanvas)

		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(ui.AnchorBottomRight, 240)
		g.tuning = ui.NewTuningPanel(ui.AnchorTopRight, 220)
		g.gates = ui.NewGateRegistry(caps)
	}

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.registry = systems.NewSystemRegistry()
	g.perf = telemetry.NewFrameProfiler(cfg.Telemetry.ProfileWindow, g.registry.IDs())
	g.collector = telemetry.NewCollector(statsWindow)
	g.bookmarks = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Warn("telemetry output disabled", "dir", opts.OutputDir, "error", err)
		g.outputManager = nil
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteConfig(cfg); err != nil {
			slog.Warn("failed to write config snapshot", "error", err)
		}
	}

	// Every animated component keeps itself scheduled
	g.scheduler.Request(g.particleFrame)
	g.scheduler.Request(g.orbFrame)
	if g.mascot != nil {
		g.scheduler.Request(g.mascotFrame)
	}

	slog.Info("effects initialized",
		"profile", class.String(),
		"width", w,
		"height", h,
		"headless", opts.Headless,
		"mascot", g.mascot != nil,
		"seed", opts.Seed,
	)

	return g, nil
}

func (g *Game) particleFrame(ts float64) {
	g.perf.Phase(systems.SystemParticles)
	g.field.Frame(ts)
	g.scheduler.Request(g.particleFrame)
}

func (g *Game) orbFrame(ts float64) {
	g.perf.Phase(systems.SystemOrbs)
	if !g.hidden {
		g.orbs.Frame(ts)
	}
	g.scheduler.Request(g.orbFrame)
}

func (g *Game) mascotFrame(ts float64) {
	g.perf.Phase(systems.SystemMascot)
	if !g.hidden {
		g.mascot.Update(ts)
	}
	g.scheduler.Request(g.mascotFrame)
}

// Frame runs one animation frame at ts milliseconds: every scheduled
// callback, then telemetry.
func (g *Game) Frame(ts float64) {
	g.scheduler.Tick(ts)

	g.perf.Phase(systems.SystemTelemetry)
	g.recordFrame(g.scheduler.LastTimestamp())
	g.frames++
}

// UpdateHeadless advances one frame on a fixed clock, driving the synthetic
// pointer when one is configured.
func (g *Game) UpdateHeadless() {
	ts := float64(g.frames) * g.cfg.Derived.FrameMs

	g.perf.BeginFrame()
	if g.pointerPath == PointerOrbit {
		x, y := orbitPointer(ts, g.width, g.height)
		g.Dispatch(PointerMove(x, y))
	}
	g.Frame(ts)
	g.perf.EndFrame(g.frameWork())
}

// frameWork reports the field's load for the frame just run.
func (g *Game) frameWork() telemetry.FrameWork {
	st := g.field.Stats()
	return telemetry.FrameWork{
		PairsChecked: st.PairsChecked,
		Links:        st.Links,
		Trails:       len(g.field.Trails()),
	}
}

// SetCaps replaces the active capability set on every component.
func (g *Game) SetCaps(caps config.Capabilities) {
	g.caps = caps
	g.field.SetCaps(caps)
	g.orbs.SetEnabled(caps.Orbs, g.rng)
	slog.Info("capabilities changed",
		"links", caps.Links,
		"glow", caps.Glow,
		"attraction", caps.Attraction,
		"trails", caps.Trails,
		"orbs", caps.Orbs,
	)
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Frames returns the number of frames run.
func (g *Game) Frames() int {
	return g.frames
}

// Caps returns the active capability set.
func (g *Game) Caps() config.Capabilities {
	return g.caps
}

// Class returns the device class chosen at construction.
func (g *Game) Class() config.DeviceClass {
	return g.class
}

// Hidden reports whether per-frame work is suspended.
func (g *Game) Hidden() bool {
	return g.hidden
}

// Size returns the viewport size last reported by the host.
func (g *Game) Size() (w, h float32) {
	return g.width, g.height
}

// Field returns the particle field.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Orbs returns the orb decorator.
func (g *Game) Orbs() *systems.OrbDecorator {
	return g.orbs
}

// Mascot returns the mascot scene, or nil if it could not be mounted.
func (g *Game) Mascot() *systems.MascotScene {
	return g.mascot
}

// Unload releases GPU resources and closes telemetry output.
func (g *Game) Unload() {
	if g.particleCanvas != nil {
		g.particleCanvas.Unload()
	}
	if g.mascotCanvas != nil {
		g.mascotCanvas.Unload()
	}
	if g.mascotRenderer != nil {
		g.mascotRenderer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
}
