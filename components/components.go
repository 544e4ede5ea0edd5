// Package components defines ECS components for the mascot scene graph.
package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// PartKind identifies a node of the mascot figure.
type PartKind uint8

const (
	PartHead PartKind = iota
	PartAntenna
	PartAntennaTip
	PartEye
	PartTorso
	PartArm
	PartLeg
	PartChestRing
	PartGlowRing
)

// Shape is the primitive solid a mesh is drawn as.
type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeSphere
	ShapeCylinder
	ShapeTorus
)

// LightKind distinguishes ambient from point lights.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightPoint
)

// Transform is a node's placement relative to its parent.
type Transform struct {
	Position r3.Vec
	Rotation r3.Vec  // Euler angles in radians, applied Z then Y then X
	Scale    float64 // Uniform; 0 is treated as 1
}

// Part tags a figure node and links it to its parent transform.
type Part struct {
	Kind   PartKind
	Index  int // Side for eyes/arms/legs (0 left, 1 right), ring number for glow rings
	Parent ecs.Entity
}

// Mesh describes the primitive geometry.
// Box: Size is width, height, depth. Sphere: Size.X is the radius.
// Cylinder: Size.X radius, Size.Y height. Torus: Size.X major radius, Size.Y tube radius.
type Mesh struct {
	Shape Shape
	Size  r3.Vec
}

// Material holds surface colour and transparency.
type Material struct {
	Color       uint32 // 0xRRGGBB
	Emissive    float64
	Opacity     float64
	Transparent bool
}

// Light is a scene light. Position and Range are unused for ambient lights.
type Light struct {
	Kind      LightKind
	Color     uint32
	Intensity float64
	Range     float64
	Position  r3.Vec
}

// RGB splits a 0xRRGGBB colour into channels in [0, 1].
func RGB(c uint32) (r, g, b float64) {
	return float64(c>>16&0xff) / 255, float64(c>>8&0xff) / 255, float64(c&0xff) / 255
}
