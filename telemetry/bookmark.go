package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStutter    BookmarkType = "stutter"
	BookmarkLinkSurge  BookmarkType = "link_surge"
	BookmarkTrailBurst BookmarkType = "trail_burst"
	BookmarkSuspended  BookmarkType = "suspended"
)

// Minimum history before rolling-average checks fire.
const minBookmarkHistory = 3

// Bookmark marks a stats window worth a closer look.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	WindowEndMs float64      `csv:"window_end_ms"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"window_end_ms", b.WindowEndMs,
		"description", b.Description,
	)
}

// BookmarkDetector compares each window against a rolling history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	wasSuspended bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < minBookmarkHistory {
		historySize = minBookmarkHistory
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSuspended(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Hidden windows carry no motion and would drag the averages down
	if stats.Frames > stats.HiddenFrames {
		if b := bd.checkStutter(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkLinkSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkTrailBurst(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		bd.addToHistory(stats)
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// rollingMean averages field over the history, or returns ok=false while
// the history is too short.
func (bd *BookmarkDetector) rollingMean(field func(WindowStats) float64) (float64, bool) {
	history := bd.getHistory()
	if len(history) < minBookmarkHistory {
		return 0, false
	}
	var sum float64
	for _, h := range history {
		sum += field(h)
	}
	return sum / float64(len(history)), true
}

// checkStutter fires when the slow tail of frame intervals is twice the
// usual frame time.
func (bd *BookmarkDetector) checkStutter(stats WindowStats) *Bookmark {
	avg, ok := bd.rollingMean(func(h WindowStats) float64 { return h.FrameMsMean })
	if !ok || avg == 0 {
		return nil
	}
	if stats.FrameMsP90 > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkStutter,
			WindowEndMs: stats.WindowEndMs,
			Description: fmt.Sprintf("Frame p90 %.1fms is %.1fx average frame %.1fms", stats.FrameMsP90, stats.FrameMsP90/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkLinkSurge(stats WindowStats) *Bookmark {
	avg, ok := bd.rollingMean(func(h WindowStats) float64 { return h.LinksMean })
	if !ok || avg == 0 {
		return nil
	}
	if stats.LinksMean > avg*2.0 && stats.LinksMean >= 10 {
		return &Bookmark{
			Type:        BookmarkLinkSurge,
			WindowEndMs: stats.WindowEndMs,
			Description: fmt.Sprintf("Mean links %.1f is %.1fx average (%.1f)", stats.LinksMean, stats.LinksMean/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkTrailBurst(stats WindowStats) *Bookmark {
	avg, ok := bd.rollingMean(func(h WindowStats) float64 { return float64(h.TrailsEmitted) })
	if !ok {
		return nil
	}
	emitted := float64(stats.TrailsEmitted)
	if emitted > avg*3.0 && stats.TrailsEmitted >= 10 {
		return &Bookmark{
			Type:        BookmarkTrailBurst,
			WindowEndMs: stats.WindowEndMs,
			Description: fmt.Sprintf("%d trail particles emitted, average %.1f", stats.TrailsEmitted, avg),
		}
	}
	return nil
}

// checkSuspended fires once on the first window spent entirely hidden.
func (bd *BookmarkDetector) checkSuspended(stats WindowStats) *Bookmark {
	suspended := stats.Frames > 0 && stats.HiddenFrames == stats.Frames
	fire := suspended && !bd.wasSuspended
	bd.wasSuspended = suspended
	if !fire {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSuspended,
		WindowEndMs: stats.WindowEndMs,
		Description: fmt.Sprintf("All %d frames hidden", stats.Frames),
	}
}
