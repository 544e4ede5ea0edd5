package game

import (
	"log/slog"

	"github.com/pthm-cable/ambient/telemetry"
)

// recordFrame adds this frame to the stats window and flushes it when due.
func (g *Game) recordFrame(ts float64) {
	st := g.field.Stats()
	sample := telemetry.FrameSample{
		TimestampMs: ts,
		Updated:     st.Updated,
		Resized:     st.Resized,
		Ambient:     len(g.field.Ambient()),
		Trails:      len(g.field.Trails()),
		Links:       st.Links,
		Emitted:     st.Emitted,
		Expired:     st.Expired,
	}
	if g.mascot != nil {
		pose := g.mascot.Pose()
		sample.MascotYaw = pose.Yaw
		sample.MascotPitch = pose.Pitch
	}
	g.collector.Record(sample)

	g.flushTelemetry(ts)
}

// flushTelemetry closes the stats window once it has covered its duration.
func (g *Game) flushTelemetry(ts float64) {
	if !g.collector.ShouldFlush(ts) {
		return
	}

	stats := g.collector.Flush(ts)
	prof := g.perf.Profile()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		prof.LogStats()
	}

	bookmarks := g.bookmarks.Check(stats)
	for _, b := range bookmarks {
		b.LogBookmark()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write stats window", "error", err)
		}
		if err := g.outputManager.WriteProfile(prof, stats.WindowEndMs); err != nil {
			slog.Error("failed to write frame profile", "error", err)
		}
		for _, b := range bookmarks {
			if err := g.outputManager.WriteBookmark(b); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
