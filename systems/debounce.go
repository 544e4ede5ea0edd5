package systems

// Debouncer holds the latest viewport size until input has been quiet for
// the configured interval. Time is supplied by the caller in milliseconds.
type Debouncer struct {
	delayMs   float64
	pending   bool
	lastInput float64
	w, h      float32
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(delayMs float64) *Debouncer {
	return &Debouncer{delayMs: delayMs}
}

// Push records a new size at time ts, restarting the quiet interval.
func (d *Debouncer) Push(w, h float32, ts float64) {
	d.w, d.h = w, h
	d.lastInput = ts
	d.pending = true
}

// Pending reports whether a size is waiting to be applied.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Poll returns the pending size once ts is at least delay after the last push.
// It fires at most once per burst of pushes.
func (d *Debouncer) Poll(ts float64) (w, h float32, ok bool) {
	if !d.pending || ts-d.lastInput < d.delayMs {
		return 0, 0, false
	}
	d.pending = false
	return d.w, d.h, true
}
