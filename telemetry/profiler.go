package telemetry

import (
	"log/slog"
	"time"
)

// FrameWork is the particle field's load for one frame. It is stored beside
// the frame's timings so cost can be read against work done.
type FrameWork struct {
	PairsChecked int
	Links        int
	Trails       int
}

// frameRecord is one finished frame. phases is indexed like
// FrameProfiler.phases.
type frameRecord struct {
	total  time.Duration
	phases []time.Duration
	work   FrameWork
}

// FrameProfiler splits every frame into the phases it was built with and
// keeps the last window frames. Time before the first phase or inside an
// unknown phase counts toward the frame but toward no phase.
type FrameProfiler struct {
	phases []string
	index  map[string]int

	ring   []frameRecord
	next   int
	filled int

	cur     frameRecord
	inFrame bool
	open    int // running phase index, -1 when none
	mark    time.Time
	started time.Time

	lastPresent time.Time
	interval    time.Duration

	now func() time.Time
}

// NewFrameProfiler creates a profiler over window frames for the given
// phases, in display order.
func NewFrameProfiler(window int, phases []string) *FrameProfiler {
	if window < 1 {
		window = 60
	}
	p := &FrameProfiler{
		phases: append([]string(nil), phases...),
		index:  make(map[string]int, len(phases)),
		ring:   make([]frameRecord, window),
		open:   -1,
		now:    time.Now,
	}
	for i, name := range p.phases {
		p.index[name] = i
	}
	for i := range p.ring {
		p.ring[i].phases = make([]time.Duration, len(p.phases))
	}
	p.cur.phases = make([]time.Duration, len(p.phases))
	return p
}

// BeginFrame starts a frame. A frame left open is discarded.
func (p *FrameProfiler) BeginFrame() {
	clear(p.cur.phases)
	p.cur.work = FrameWork{}
	p.started = p.now()
	p.open = -1
	p.inFrame = true
}

// Phase ends the running phase and starts timing the named one. Outside a
// frame it does nothing.
func (p *FrameProfiler) Phase(name string) {
	if !p.inFrame {
		return
	}
	t := p.now()
	p.closePhase(t)
	if i, ok := p.index[name]; ok {
		p.open = i
		p.mark = t
	}
}

func (p *FrameProfiler) closePhase(t time.Time) {
	if p.open >= 0 {
		p.cur.phases[p.open] += t.Sub(p.mark)
		p.open = -1
	}
}

// EndFrame closes the frame and stores it with the field's counters.
func (p *FrameProfiler) EndFrame(work FrameWork) {
	if !p.inFrame {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.inFrame = false

	slot := &p.ring[p.next]
	slot.total = t.Sub(p.started)
	slot.work = work
	copy(slot.phases, p.cur.phases)

	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// Presented marks a buffer swap. The interval between swaps gives the FPS,
// which includes the wait for vsync that frame timings leave out.
func (p *FrameProfiler) Presented() {
	t := p.now()
	if !p.lastPresent.IsZero() {
		p.interval = t.Sub(p.lastPresent)
	}
	p.lastPresent = t
}

// PhaseTiming is one phase summarized over the profiled frames.
type PhaseTiming struct {
	Name  string
	Mean  time.Duration
	Max   time.Duration
	Share float64 // Percent of the mean frame time
}

// FrameProfile summarizes the profiled frames.
type FrameProfile struct {
	Frames int
	Mean   time.Duration
	P90    time.Duration
	Max    time.Duration

	Phases       []PhaseTiming // Construction order
	Unattributed time.Duration // Mean frame time outside every phase

	FPS float64

	// Mean field load per frame
	PairsChecked float64
	Links        float64
	Trails       float64
}

// Profile summarizes the frames currently in the window.
func (p *FrameProfiler) Profile() FrameProfile {
	prof := FrameProfile{
		Frames: p.filled,
		Phases: make([]PhaseTiming, len(p.phases)),
	}
	for i, name := range p.phases {
		prof.Phases[i].Name = name
	}
	if p.interval > 0 {
		prof.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.filled == 0 {
		return prof
	}

	totals := make([]float64, p.filled)
	phaseSum := make([]time.Duration, len(p.phases))
	var work FrameWork
	for i, rec := range p.ring[:p.filled] {
		totals[i] = float64(rec.total)
		for j, d := range rec.phases {
			phaseSum[j] += d
			prof.Phases[j].Max = max(prof.Phases[j].Max, d)
		}
		work.PairsChecked += rec.work.PairsChecked
		work.Links += rec.work.Links
		work.Trails += rec.work.Trails
	}

	mean, p90, maxTotal := ComputeSeriesStats(totals)
	prof.Mean = time.Duration(mean)
	prof.P90 = time.Duration(p90)
	prof.Max = time.Duration(maxTotal)

	var attributed time.Duration
	for j := range prof.Phases {
		avg := phaseSum[j] / time.Duration(p.filled)
		prof.Phases[j].Mean = avg
		attributed += avg
		if prof.Mean > 0 {
			prof.Phases[j].Share = float64(avg) / float64(prof.Mean) * 100
		}
	}
	prof.Unattributed = max(prof.Mean-attributed, 0)

	n := float64(p.filled)
	prof.PairsChecked = float64(work.PairsChecked) / n
	prof.Links = float64(work.Links) / n
	prof.Trails = float64(work.Trails) / n
	return prof
}

// Phase returns the timing of the named phase.
func (f FrameProfile) Phase(name string) (PhaseTiming, bool) {
	for _, ph := range f.Phases {
		if ph.Name == name {
			return ph, true
		}
	}
	return PhaseTiming{}, false
}

// LogStats logs the profile using slog.
func (f FrameProfile) LogStats() {
	slog.Info("frame profile", "profile", f)
}

// LogValue implements slog.LogValuer. Phases follow construction order.
func (f FrameProfile) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", f.Frames),
		slog.Int64("mean_us", f.Mean.Microseconds()),
		slog.Int64("p90_us", f.P90.Microseconds()),
		slog.Int64("max_us", f.Max.Microseconds()),
		slog.Float64("pairs_checked", f.PairsChecked),
		slog.Float64("links", f.Links),
	}
	if f.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", f.FPS))
	}
	for _, ph := range f.Phases {
		attrs = append(attrs, slog.Group(ph.Name,
			slog.Int64("mean_us", ph.Mean.Microseconds()),
			slog.Float64("pct", ph.Share),
		))
	}
	return slog.GroupValue(attrs...)
}

// ProfileRow is one profile window in perf.csv.
type ProfileRow struct {
	WindowEndMs    float64 `csv:"window_end_ms"`
	Frames         int     `csv:"frames"`
	MeanUS         int64   `csv:"mean_us"`
	P90US          int64   `csv:"p90_us"`
	MaxUS          int64   `csv:"max_us"`
	UnattributedUS int64   `csv:"unattributed_us"`
	FPS            float64 `csv:"fps"`
	PairsChecked   float64 `csv:"pairs_checked"`
	Links          float64 `csv:"links"`
	Trails         float64 `csv:"trails"`
}

// PhaseRow is one phase of one profile window in phases.csv.
type PhaseRow struct {
	WindowEndMs float64 `csv:"window_end_ms"`
	Phase       string  `csv:"phase"`
	MeanUS      int64   `csv:"mean_us"`
	MaxUS       int64   `csv:"max_us"`
	SharePct    float64 `csv:"share_pct"`
}

// Rows flattens the profile into one perf.csv row and one phases.csv row
// per phase.
func (f FrameProfile) Rows(windowEndMs float64) (ProfileRow, []PhaseRow) {
	row := ProfileRow{
		WindowEndMs:    windowEndMs,
		Frames:         f.Frames,
		MeanUS:         f.Mean.Microseconds(),
		P90US:          f.P90.Microseconds(),
		MaxUS:          f.Max.Microseconds(),
		UnattributedUS: f.Unattributed.Microseconds(),
		FPS:            f.FPS,
		PairsChecked:   f.PairsChecked,
		Links:          f.Links,
		Trails:         f.Trails,
	}
	phases := make([]PhaseRow, len(f.Phases))
	for i, ph := range f.Phases {
		phases[i] = PhaseRow{
			WindowEndMs: windowEndMs,
			Phase:       ph.Name,
			MeanUS:      ph.Mean.Microseconds(),
			MaxUS:       ph.Max.Microseconds(),
			SharePct:    ph.Share,
		}
	}
	return row, phases
}
