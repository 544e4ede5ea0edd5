package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/config"
)

func TestGateRegistryRoundTrip(t *testing.T) {
	caps := config.Defaults().Profiles.Desktop
	reg := NewGateRegistry(caps)

	if got := reg.Apply(caps); got != caps {
		t.Errorf("Apply after Load should be identity, got %+v want %+v", got, caps)
	}

	reg.Toggle(GateLinks)
	reg.Set(GateOrbs, false)
	got := reg.Apply(caps)
	if got.Links || got.Orbs {
		t.Errorf("expected links and orbs off, got %+v", got)
	}
	if got.ParticleCount != caps.ParticleCount || got.ConnectDistance != caps.ConnectDistance {
		t.Error("Apply must not change particle count or connection distance")
	}
	if !got.Glow || !got.Attraction || !got.Trails {
		t.Errorf("untouched gates changed: %+v", got)
	}
}

func TestGateRegistryKeys(t *testing.T) {
	reg := NewGateRegistry(config.Capabilities{})

	if !reg.HandleKey(rl.KeyThree) {
		t.Fatal("key 3 should be bound")
	}
	if !reg.IsEnabled(GateAttraction) {
		t.Error("key 3 should toggle attraction on")
	}
	if reg.HandleKey(rl.KeyNine) {
		t.Error("key 9 should not be bound")
	}

	seen := make(map[int32]bool)
	for _, d := range reg.Descriptors() {
		if seen[d.Key] {
			t.Errorf("key %d bound twice", d.Key)
		}
		seen[d.Key] = true
	}
	if len(reg.Descriptors()) != 5 {
		t.Errorf("expected 5 gates, got %d", len(reg.Descriptors()))
	}
}

func TestGateRegistryIgnoresUnknown(t *testing.T) {
	reg := NewGateRegistry(config.Capabilities{})
	reg.Set(GateID("bogus"), true)
	if reg.IsEnabled(GateID("bogus")) {
		t.Error("unknown gate should not be settable")
	}
}

func TestAnchorOrigin(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 1280 - 200 - 10, 10},
		{AnchorBottomLeft, 10, 800 - 100 - 10},
		{AnchorBottomRight, 1280 - 200 - 10, 800 - 100 - 10},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Origin(1280, 800, 200, 100, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: got (%d, %d), want (%d, %d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestCenteredFill(t *testing.T) {
	tests := []struct {
		value, limit float32
		width        int32
		negative     bool
	}{
		{0, 0.5, 0, false},
		{0.25, 0.5, 50, false},
		{-0.25, 0.5, 50, true},
		{2, 0.5, 100, false},
		{-2, 0.5, 100, true},
		{1, 0, 0, false},
	}
	for _, tt := range tests {
		w, neg := centeredFill(tt.value, tt.limit, 100)
		if w != tt.width || neg != tt.negative {
			t.Errorf("centeredFill(%v, %v) = (%d, %v), want (%d, %v)", tt.value, tt.limit, w, neg, tt.width, tt.negative)
		}
	}
}

func TestStatusText(t *testing.T) {
	if statusText(false, false) != "" {
		t.Error("running should have no status")
	}
	if statusText(true, true) != "PAUSED" {
		t.Error("paused takes precedence over hidden")
	}
	if statusText(false, true) != "HIDDEN" {
		t.Error("hidden status missing")
	}
}

func TestTuningPanelToggle(t *testing.T) {
	p := NewTuningPanel(AnchorTopRight, 220)
	if p.IsVisible() {
		t.Error("panel should start hidden")
	}
	if !p.Toggle() || !p.IsVisible() {
		t.Error("toggle should show the panel")
	}
	if p.Height(5) <= p.Height(4) {
		t.Error("panel height should grow with gates")
	}
}

func TestShareColor(t *testing.T) {
	tests := []struct {
		pct  float64
		want rl.Color
	}{
		{10, rl.LightGray},
		{25, rl.LightGray},
		{30, rl.Orange},
		{75, rl.Red},
	}
	for _, tt := range tests {
		if got := shareColor(tt.pct); got != tt.want {
			t.Errorf("shareColor(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}
