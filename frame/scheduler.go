// Package frame provides a single-threaded animation-frame scheduler.
//
// Callbacks are requested for the next tick only. A component that wants to
// keep animating requests itself again at the end of every invocation, so a
// component that skips its work for a frame still resumes on the next one.
package frame

// Callback receives the frame timestamp in milliseconds.
type Callback func(ts float64)

// ID identifies a pending request.
type ID uint64

type request struct {
	id ID
	cb Callback
}

// Scheduler dispatches requested callbacks once per Tick.
// It is not safe for concurrent use; input handling and ticking share one goroutine.
type Scheduler struct {
	pending []request
	running []request
	nextID  ID
	lastTS  float64
	ticks   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make([]request, 0, 8),
		running: make([]request, 0, 8),
	}
}

// Request registers cb for the next Tick and returns its id.
func (s *Scheduler) Request(cb Callback) ID {
	s.nextID++
	s.pending = append(s.pending, request{id: s.nextID, cb: cb})
	return s.nextID
}

// Cancel removes a pending request. Returns false if it already ran or never existed.
func (s *Scheduler) Cancel(id ID) bool {
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of callbacks waiting for the next tick.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Ticks returns the number of ticks dispatched so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// LastTimestamp returns the timestamp passed to the most recent tick.
func (s *Scheduler) LastTimestamp() float64 {
	return s.lastTS
}

// Tick runs every callback that was pending when the tick started, in
// registration order. Requests made during the tick wait for the next one.
// Timestamps never go backwards: an older ts is clamped to the last one.
func (s *Scheduler) Tick(ts float64) {
	if ts < s.lastTS {
		ts = s.lastTS
	}
	s.lastTS = ts
	s.ticks++

	// Swap buffers so callbacks can Request without touching the batch being run
	s.running, s.pending = s.pending, s.running[:0]
	for i := range s.running {
		s.running[i].cb(ts)
		s.running[i].cb = nil
	}
	s.running = s.running[:0]
}
