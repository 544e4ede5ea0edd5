package systems

// System IDs, also used as perf phase names.
const (
	SystemParticles = "particles"
	SystemOrbs      = "orbs"
	SystemMascot    = "mascot"
	SystemDraw      = "draw"
	SystemTelemetry = "telemetry"
)

// SystemInfo describes one per-frame system for UI display.
type SystemInfo struct {
	ID          string // Perf phase identifier
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "frame", "render")
}

// SystemRegistry holds metadata about the frame's systems in execution order.
// This centralizes system naming so the perf panel and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in the order a frame runs them.
func (r *SystemRegistry) registerDefaults() {
	// Scheduled frame callbacks
	r.Register(SystemInfo{ID: SystemParticles, Name: "Particles", Description: "Ambient drift, trails and proximity links", Category: "frame"})
	r.Register(SystemInfo{ID: SystemOrbs, Name: "Orbs", Description: "Floating orb placement", Category: "frame"})
	r.Register(SystemInfo{ID: SystemMascot, Name: "Mascot", Description: "Damped look-at and turntable", Category: "frame"})

	// Output
	r.Register(SystemInfo{ID: SystemDraw, Name: "Draw", Description: "Offscreen canvases and composite", Category: "render"})
	r.Register(SystemInfo{ID: SystemTelemetry, Name: "Telemetry", Description: "Stats windows and CSV output", Category: "internal"})
}

// Register adds a system to the registry. A repeated ID replaces the display
// metadata but keeps the original position.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; ok {
		for i := range r.systems {
			if r.systems[i].ID == info.ID {
				r.systems[i] = info
			}
		}
	} else {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
