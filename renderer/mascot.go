package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/components"
	"github.com/pthm-cable/ambient/systems"
)

const (
	cylinderSlices = 16
	rad2deg        = 180 / math.Pi
)

// MascotRenderer draws the mascot scene into its canvas every frame.
type MascotRenderer struct {
	canvas *Canvas

	// Chest ring is a solid torus; glow rings are thin enough for line circles
	torus       rl.Model
	torusKey    [2]float64
	initialized bool
}

// NewMascotRenderer creates a mascot renderer drawing into canvas.
func NewMascotRenderer(canvas *Canvas) *MascotRenderer {
	return &MascotRenderer{canvas: canvas}
}

// Canvas returns the backing canvas; it is the scene's mount surface.
func (r *MascotRenderer) Canvas() *Canvas {
	return r.canvas
}

// ensureTorus builds the torus model for the given major and tube radii.
func (r *MascotRenderer) ensureTorus(major, tube float64) {
	key := [2]float64{major, tube}
	if r.initialized && r.torusKey == key {
		return
	}
	if r.initialized {
		rl.UnloadModel(r.torus)
	}
	// GenMeshTorus takes the tube radius relative to a unit major radius and
	// scales the whole mesh by size/2
	mesh := rl.GenMeshTorus(float32(tube/major), float32(major*2), 24, 12)
	r.torus = rl.LoadModelFromMesh(mesh)
	r.torusKey = key
	r.initialized = true
}

// Draw renders the scene with its camera.
func (r *MascotRenderer) Draw(scene *systems.MascotScene) {
	cam := scene.Camera()
	root := scene.Root()
	items := scene.DrawList()

	r.canvas.Begin()
	rl.BeginMode3D(rl.Camera3D{
		Position:   vec3(cam.Position.X, cam.Position.Y, cam.Position.Z),
		Target:     vec3(cam.Target.X, cam.Target.Y, cam.Target.Z),
		Up:         vec3(cam.Up.X, cam.Up.Y, cam.Up.Z),
		Fovy:       float32(cam.FovY),
		Projection: rl.CameraPerspective,
	})

	rl.PushMatrix()
	pushTransform(root)
	for i := range items {
		r.drawItem(&items[i])
	}
	rl.PopMatrix()

	rl.EndMode3D()
	r.canvas.End()
}

func (r *MascotRenderer) drawItem(it *systems.DrawItem) {
	col := rl.Color{
		R: uint8(it.R * 255),
		G: uint8(it.G * 255),
		B: uint8(it.B * 255),
		A: uint8(clampUnit(it.Opacity) * 255),
	}
	size := it.Mesh.Size

	rl.PushMatrix()
	pushTransform(it.Local)

	switch it.Mesh.Shape {
	case components.ShapeBox:
		rl.DrawCube(rl.Vector3{}, float32(size.X), float32(size.Y), float32(size.Z), col)
	case components.ShapeSphere:
		rl.DrawSphere(rl.Vector3{}, float32(size.X), col)
	case components.ShapeCylinder:
		// raylib cylinders grow up from their base
		base := rl.Vector3{Y: -float32(size.Y) / 2}
		rl.DrawCylinder(base, float32(size.X), float32(size.X), float32(size.Y), cylinderSlices, col)
	case components.ShapeTorus:
		if it.Kind == components.PartGlowRing {
			rl.DrawCircle3D(rl.Vector3{}, float32(size.X), rl.Vector3{Y: 1}, 0, col)
		} else {
			r.ensureTorus(size.X, size.Y)
			rl.DrawModel(r.torus, rl.Vector3{}, 1, col)
		}
	}

	rl.PopMatrix()
}

// pushTransform applies translate, rotate X, Y, Z and scale to the current
// matrix, so vertices see scale, then Z, Y, X rotation, then translation.
func pushTransform(tf components.Transform) {
	rl.Translatef(float32(tf.Position.X), float32(tf.Position.Y), float32(tf.Position.Z))
	if tf.Rotation.X != 0 {
		rl.Rotatef(float32(tf.Rotation.X*rad2deg), 1, 0, 0)
	}
	if tf.Rotation.Y != 0 {
		rl.Rotatef(float32(tf.Rotation.Y*rad2deg), 0, 1, 0)
	}
	if tf.Rotation.Z != 0 {
		rl.Rotatef(float32(tf.Rotation.Z*rad2deg), 0, 0, 1)
	}
	if s := float32(tf.Scale); s != 0 && s != 1 {
		rl.Scalef(s, s, s)
	}
}

func vec3(x, y, z float64) rl.Vector3 {
	return rl.NewVector3(float32(x), float32(y), float32(z))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Unload frees GPU resources.
func (r *MascotRenderer) Unload() {
	if r.initialized {
		rl.UnloadModel(r.torus)
		r.initialized = false
	}
}
