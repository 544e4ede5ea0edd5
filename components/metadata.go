package components

// String returns the display name for a PartKind.
func (k PartKind) String() string {
	names := PartKindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// PartKindNames returns the display names for all part kinds.
// The order matches the PartKind constants.
func PartKindNames() []string {
	return []string{"Head", "Antenna", "AntennaTip", "Eye", "Torso", "Arm", "Leg", "ChestRing", "GlowRing"}
}

// String returns the display name for a Shape.
func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "Box"
	case ShapeSphere:
		return "Sphere"
	case ShapeCylinder:
		return "Cylinder"
	case ShapeTorus:
		return "Torus"
	}
	return "Unknown"
}
