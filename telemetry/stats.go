// Package telemetry collects per-window effect stats, frame timings and bookmarks.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartMs float64 `csv:"-"`
	WindowEndMs   float64 `csv:"window_end_ms"`

	// Frame accounting
	Frames        int `csv:"frames"`
	HiddenFrames  int `csv:"hidden_frames"`
	Resizes       int `csv:"resizes"`
	AmbientCount  int `csv:"ambient"`
	TrailsEmitted int `csv:"trails_emitted"`
	TrailsExpired int `csv:"trails_expired"`

	// Active trail particles per frame
	TrailsMean float64 `csv:"trails_mean"`
	TrailsP90  float64 `csv:"trails_p90"`
	TrailsMax  float64 `csv:"trails_max"`

	// Proximity links per frame
	LinksMean float64 `csv:"links_mean"`
	LinksP90  float64 `csv:"links_p90"`

	// Frame interval in milliseconds
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsStd  float64 `csv:"frame_ms_std"`
	FrameMsP90  float64 `csv:"frame_ms_p90"`

	// Mascot pose at window end
	MascotYaw   float64 `csv:"mascot_yaw"`
	MascotPitch float64 `csv:"mascot_pitch"`
}

// Quantile returns the empirical p-quantile of values. values need not be
// sorted; an empty slice yields 0.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(clampP(p), stat.Empirical, sorted, nil)
}

// ComputeSeriesStats calculates mean, p90 and max of a per-frame series.
func ComputeSeriesStats(values []float64) (mean, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	max = sorted[n-1]
	return mean, p90, max
}

// ComputeIntervalStats calculates mean, standard deviation and p90 of frame
// intervals. A single sample has zero deviation.
func ComputeIntervalStats(values []float64) (mean, std, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n > 1 {
		mean, std = stat.MeanStdDev(sorted, nil)
	} else {
		mean = sorted[0]
	}
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p90
}

func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start_ms", s.WindowStartMs),
		slog.Float64("window_end_ms", s.WindowEndMs),
		slog.Int("frames", s.Frames),
		slog.Int("hidden_frames", s.HiddenFrames),
		slog.Int("resizes", s.Resizes),
		slog.Int("ambient", s.AmbientCount),
		slog.Int("trails_emitted", s.TrailsEmitted),
		slog.Int("trails_expired", s.TrailsExpired),
		slog.Float64("trails_mean", s.TrailsMean),
		slog.Float64("trails_p90", s.TrailsP90),
		slog.Float64("trails_max", s.TrailsMax),
		slog.Float64("links_mean", s.LinksMean),
		slog.Float64("links_p90", s.LinksP90),
		slog.Float64("frame_ms_mean", s.FrameMsMean),
		slog.Float64("frame_ms_std", s.FrameMsStd),
		slog.Float64("frame_ms_p90", s.FrameMsP90),
		slog.Float64("mascot_yaw", s.MascotYaw),
		slog.Float64("mascot_pitch", s.MascotPitch),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
