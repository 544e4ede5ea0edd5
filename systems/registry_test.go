package systems

import "testing"

func TestSystemRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	want := []string{"particles", "orbs", "mascot", "draw", "telemetry"}
	got := reg.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d systems, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("system %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSystemRegistryNames(t *testing.T) {
	reg := NewSystemRegistry()
	if reg.GetName("mascot") != "Mascot" {
		t.Errorf("unexpected name %q", reg.GetName("mascot"))
	}
	if reg.GetName("unknown") != "unknown" {
		t.Error("unknown IDs should fall back to the ID")
	}

	reg.Register(SystemInfo{ID: "orbs", Name: "Backdrop", Category: "frame"})
	if reg.GetName("orbs") != "Backdrop" {
		t.Error("re-registering should replace the name")
	}
	if len(reg.All()) != 5 || reg.IDs()[1] != "orbs" {
		t.Errorf("re-registering should keep position, got %v", reg.IDs())
	}
}
