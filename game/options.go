package game

import "github.com/pthm-cable/ambient/config"

// Pointer paths for headless runs.
const (
	PointerNone  = "none"
	PointerOrbit = "orbit"
)

// Options configures game construction.
type Options struct {
	Config *config.Config // nil = config.Cfg()

	Seed     int64
	Headless bool
	Profile  string // "auto", "desktop" or "constrained"

	// Viewport in logical pixels; zero uses the configured screen size.
	Width, Height int
	PixelRatio    float64 // Device pixel ratio; zero means 1

	PointerPath    string // Headless synthetic pointer: PointerNone or PointerOrbit
	LogStats       bool
	StatsWindowSec float64 // Zero uses telemetry.stats_window
	OutputDir      string  // Empty disables CSV output
}

// DefaultOptions returns options for a graphical run at the configured screen size.
func DefaultOptions() Options {
	return Options{
		Seed:        42,
		Profile:     "auto",
		PointerPath: PointerNone,
	}
}
