package game

import (
	"log/slog"
	"math"
)

// EventKind identifies a host event.
type EventKind uint8

const (
	EventPointerMove EventKind = iota
	EventResize
	EventVisibility
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointer_move"
	case EventResize:
		return "resize"
	case EventVisibility:
		return "visibility"
	default:
		return "unknown"
	}
}

// Event is one host input. Only the fields for its Kind are meaningful.
type Event struct {
	Kind    EventKind
	X, Y    float32 // EventPointerMove: viewport pixels
	W, H    float32 // EventResize: new viewport size
	Visible bool    // EventVisibility
}

// PointerMove builds a pointer event.
func PointerMove(x, y float32) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y}
}

// Resize builds a viewport resize event.
func Resize(w, h float32) Event {
	return Event{Kind: EventResize, W: w, H: h}
}

// Visibility builds a visibility change event.
func Visibility(visible bool) Event {
	return Event{Kind: EventVisibility, Visible: visible}
}

// Dispatch delivers an event to every component that listens for it.
// Events are handled on the frame goroutine between ticks.
func (g *Game) Dispatch(ev Event) {
	switch ev.Kind {
	case EventPointerMove:
		g.field.OnPointerMove(ev.X, ev.Y)
		if g.mascot != nil {
			g.mascot.OnPointerMove(ev.X, ev.Y)
		}

	case EventResize:
		if ev.W == g.width && ev.H == g.height {
			return
		}
		g.width, g.height = ev.W, ev.H
		// The field debounces; the mascot camera follows immediately
		g.field.OnResize(ev.W, ev.H, g.scheduler.LastTimestamp())
		if g.mascot != nil {
			g.mascot.OnResize(ev.W, ev.H)
		}

	case EventVisibility:
		hidden := !ev.Visible
		if hidden == g.hidden {
			return
		}
		g.hidden = hidden
		g.field.SetVisible(ev.Visible)
		slog.Debug("visibility changed", "visible", ev.Visible)
	}
}

// Synthetic pointer orbit used in headless runs.
const (
	orbitPeriodMs = 6000
	orbitRadius   = 0.3 // Fraction of the smaller viewport side
)

// orbitPointer returns the synthetic pointer position at ts: a circle around
// the viewport center.
func orbitPointer(ts float64, w, h float32) (x, y float32) {
	r := float64(min(w, h)) * orbitRadius
	a := 2 * math.Pi * ts / orbitPeriodMs
	return w/2 + float32(r*math.Cos(a)), h/2 + float32(r*math.Sin(a))
}
