package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/config"
)

// GateID identifies one capability gate.
type GateID string

// Capability gates exposed in the tuning panel.
const (
	GateLinks      GateID = "links"
	GateGlow       GateID = "glow"
	GateAttraction GateID = "attraction"
	GateTrails     GateID = "trails"
	GateOrbs       GateID = "orbs"
)

// GateDescriptor defines a capability gate that can be toggled.
type GateDescriptor struct {
	ID          GateID
	Name        string
	Description string
	Key         int32  // Keyboard key to toggle (0 = no key)
	KeyLabel    string // Key label for display
}

// GateRegistry holds the gate descriptors in display order and the
// current on/off state of each gate.
type GateRegistry struct {
	descriptors []GateDescriptor
	enabled     map[GateID]bool
}

// NewGateRegistry creates a registry with every gate set from caps.
func NewGateRegistry(caps config.Capabilities) *GateRegistry {
	reg := &GateRegistry{enabled: make(map[GateID]bool)}
	reg.Register(GateDescriptor{ID: GateLinks, Name: "Links", Description: "Proximity lines between particles", Key: rl.KeyOne, KeyLabel: "1"})
	reg.Register(GateDescriptor{ID: GateGlow, Name: "Glow", Description: "Radial glow on particles and pointer", Key: rl.KeyTwo, KeyLabel: "2"})
	reg.Register(GateDescriptor{ID: GateAttraction, Name: "Attraction", Description: "Particles drift toward the pointer", Key: rl.KeyThree, KeyLabel: "3"})
	reg.Register(GateDescriptor{ID: GateTrails, Name: "Trails", Description: "Pointer trail emission", Key: rl.KeyFour, KeyLabel: "4"})
	reg.Register(GateDescriptor{ID: GateOrbs, Name: "Orbs", Description: "Floating background orbs", Key: rl.KeyFive, KeyLabel: "5"})
	reg.Load(caps)
	return reg
}

// Register adds a gate to the registry, initially off.
func (r *GateRegistry) Register(desc GateDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = false
}

// Descriptors returns all gates in display order.
func (r *GateRegistry) Descriptors() []GateDescriptor {
	return r.descriptors
}

// IsEnabled returns whether a gate is on.
func (r *GateRegistry) IsEnabled(id GateID) bool {
	return r.enabled[id]
}

// Set turns a gate on or off.
func (r *GateRegistry) Set(id GateID, on bool) {
	if _, ok := r.enabled[id]; ok {
		r.enabled[id] = on
	}
}

// Toggle flips a gate and returns its new state.
func (r *GateRegistry) Toggle(id GateID) bool {
	r.Set(id, !r.enabled[id])
	return r.enabled[id]
}

// HandleKey toggles the gate bound to key. Returns true if one was found.
func (r *GateRegistry) HandleKey(key int32) bool {
	for _, d := range r.descriptors {
		if d.Key != 0 && d.Key == key {
			r.Toggle(d.ID)
			return true
		}
	}
	return false
}

// Load copies the gate flags from caps.
func (r *GateRegistry) Load(caps config.Capabilities) {
	r.Set(GateLinks, caps.Links)
	r.Set(GateGlow, caps.Glow)
	r.Set(GateAttraction, caps.Attraction)
	r.Set(GateTrails, caps.Trails)
	r.Set(GateOrbs, caps.Orbs)
}

// Apply returns caps with its gate flags replaced by the registry state.
// Particle count and connection distance are left untouched.
func (r *GateRegistry) Apply(caps config.Capabilities) config.Capabilities {
	caps.Links = r.enabled[GateLinks]
	caps.Glow = r.enabled[GateGlow]
	caps.Attraction = r.enabled[GateAttraction]
	caps.Trails = r.enabled[GateTrails]
	caps.Orbs = r.enabled[GateOrbs]
	return caps
}
