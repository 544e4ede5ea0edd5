package telemetry

// FrameSample is what one frame contributes to the current window.
type FrameSample struct {
	TimestampMs float64
	Updated     bool // False for frames skipped while hidden
	Resized     bool
	Ambient     int
	Trails      int
	Links       int
	Emitted     int
	Expired     int
	MascotYaw   float64
	MascotPitch float64
}

// Collector accumulates frame samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationMs float64

	// Current window tracking
	windowStartMs float64
	started       bool
	lastTs        float64
	hasLast       bool

	frames       int
	hiddenFrames int
	resizes      int
	emitted      int
	expired      int
	trails       []float64
	links        []float64
	intervals    []float64
	last         FrameSample
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds of frame time.
func NewCollector(windowDurationSec float64) *Collector {
	ms := windowDurationSec * 1000
	if ms <= 0 {
		ms = 1000
	}
	return &Collector{windowDurationMs: ms}
}

// Record adds one frame to the current window.
func (c *Collector) Record(s FrameSample) {
	if !c.started {
		c.windowStartMs = s.TimestampMs
		c.started = true
	}
	if c.hasLast {
		c.intervals = append(c.intervals, s.TimestampMs-c.lastTs)
	}
	c.lastTs = s.TimestampMs
	c.hasLast = true

	c.frames++
	if !s.Updated {
		c.hiddenFrames++
	}
	if s.Resized {
		c.resizes++
	}
	c.emitted += s.Emitted
	c.expired += s.Expired
	c.trails = append(c.trails, float64(s.Trails))
	c.links = append(c.links, float64(s.Links))
	c.last = s
}

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush(nowMs float64) bool {
	return c.started && nowMs-c.windowStartMs >= c.windowDurationMs
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(nowMs float64) WindowStats {
	trailsMean, trailsP90, trailsMax := ComputeSeriesStats(c.trails)
	linksMean, linksP90, _ := ComputeSeriesStats(c.links)
	frameMean, frameStd, frameP90 := ComputeIntervalStats(c.intervals)

	stats := WindowStats{
		WindowStartMs: c.windowStartMs,
		WindowEndMs:   nowMs,

		Frames:        c.frames,
		HiddenFrames:  c.hiddenFrames,
		Resizes:       c.resizes,
		AmbientCount:  c.last.Ambient,
		TrailsEmitted: c.emitted,
		TrailsExpired: c.expired,

		TrailsMean: trailsMean,
		TrailsP90:  trailsP90,
		TrailsMax:  trailsMax,

		LinksMean: linksMean,
		LinksP90:  linksP90,

		FrameMsMean: frameMean,
		FrameMsStd:  frameStd,
		FrameMsP90:  frameP90,

		MascotYaw:   c.last.MascotYaw,
		MascotPitch: c.last.MascotPitch,
	}

	// Reset for next window; frame interval continuity is kept
	c.windowStartMs = nowMs
	c.frames = 0
	c.hiddenFrames = 0
	c.resizes = 0
	c.emitted = 0
	c.expired = 0
	c.trails = c.trails[:0]
	c.links = c.links[:0]
	c.intervals = c.intervals[:0]

	return stats
}

// WindowDurationMs returns the window length in milliseconds.
func (c *Collector) WindowDurationMs() float64 {
	return c.windowDurationMs
}
