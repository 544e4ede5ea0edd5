package components

import "testing"

func TestRGB(t *testing.T) {
	r, g, b := RGB(0x00d9ff)
	if r != 0 || g != 217.0/255 || b != 1 {
		t.Errorf("RGB(0x00d9ff) = (%f, %f, %f)", r, g, b)
	}
}

func TestPartKindNames(t *testing.T) {
	if len(PartKindNames()) != int(PartGlowRing)+1 {
		t.Fatalf("expected %d names, got %d", int(PartGlowRing)+1, len(PartKindNames()))
	}
	if PartAntennaTip.String() != "AntennaTip" {
		t.Errorf("unexpected name %q", PartAntennaTip.String())
	}
	if PartKind(200).String() != "Unknown" {
		t.Errorf("out of range kind should be Unknown")
	}
	if ShapeTorus.String() != "Torus" {
		t.Errorf("unexpected shape name %q", ShapeTorus.String())
	}
}
