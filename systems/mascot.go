package systems

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/ambient/camera"
	"github.com/pthm-cable/ambient/components"
	"github.com/pthm-cable/ambient/config"
)

// Figure colours.
const (
	bodyColor = 0x00d9ff
	eyeColor  = 0x00f0ff
)

// Pose is the smoothed orientation and bob of the figure root.
type Pose struct {
	Yaw, Pitch             float64
	TargetYaw, TargetPitch float64
	BobY                   float64
	PointerX, PointerY     float64 // Normalized pointer in [-1, 1], y up
}

// DrawItem is one mesh resolved for drawing. Local is relative to the root;
// World and the shaded colour are precomputed for the renderer.
type DrawItem struct {
	Kind        components.PartKind
	Index       int
	Mesh        components.Mesh
	Local       components.Transform
	World       r3.Vec
	R, G, B     float64
	Opacity     float64
	Transparent bool
}

// MascotScene owns the figure's scene graph, lights and camera. Every node
// lives in an ark world; the nodes mutated per frame are held as handles.
type MascotScene struct {
	cfg    config.MascotConfig
	mount  Surface
	camera *camera.Camera

	world       *ecs.World
	partMap     *ecs.Map4[components.Transform, components.Part, components.Mesh, components.Material]
	lightMap    *ecs.Map1[components.Light]
	transforms  *ecs.Map1[components.Transform]
	meshes      *ecs.Map1[components.Mesh]
	parts       *ecs.Map1[components.Part]
	materials   *ecs.Map1[components.Material]
	lightFilter *ecs.Filter1[components.Light]
	partFilter  *ecs.Filter2[components.Part, components.Mesh]

	root       ecs.Entity
	antennaTip ecs.Entity
	eyes       [2]ecs.Entity
	eyeRest    [2]r3.Vec
	rings      []ecs.Entity
	drawOrder  []ecs.Entity

	pose   Pose
	frames int

	lights []components.Light
	draw   []DrawItem
}

// NewMascotScene builds the figure once. A nil mount returns ErrNoMount; the
// caller is expected to carry on without a mascot.
func NewMascotScene(cfg config.MascotConfig, mount Surface) (*MascotScene, error) {
	if mount == nil {
		return nil, ErrNoMount
	}

	w, h := mount.Size()
	world := ecs.NewWorld()
	s := &MascotScene{
		cfg:         cfg,
		mount:       mount,
		camera:      camera.New(cfg.FovY, cfg.Near, cfg.Far, cfg.CameraZ, w, h),
		world:       world,
		partMap:     ecs.NewMap4[components.Transform, components.Part, components.Mesh, components.Material](world),
		lightMap:    ecs.NewMap1[components.Light](world),
		transforms:  ecs.NewMap1[components.Transform](world),
		meshes:      ecs.NewMap1[components.Mesh](world),
		parts:       ecs.NewMap1[components.Part](world),
		materials:   ecs.NewMap1[components.Material](world),
		lightFilter: ecs.NewFilter1[components.Light](world),
		partFilter:  ecs.NewFilter2[components.Part, components.Mesh](world),
	}

	s.buildFigure()
	s.buildLights()

	slog.Info("mascot initialized",
		"parts", s.PartCount(),
		"rings", len(s.rings),
		"lights", len(s.Lights()),
		"aspect", s.camera.Aspect,
	)

	return s, nil
}

// buildFigure creates the root and every part under it.
func (s *MascotScene) buildFigure() {
	scale := s.cfg.Scale
	if scale == 0 {
		scale = 1
	}
	root := components.Transform{Scale: scale}
	s.root = s.transforms.NewEntity(&root)

	body := components.Material{Color: bodyColor, Emissive: 0.3, Opacity: 1}
	eye := components.Material{Color: eyeColor, Emissive: 0.8, Opacity: 1}

	box := func(w, h, d float64) components.Mesh {
		return components.Mesh{Shape: components.ShapeBox, Size: r3.Vec{X: w, Y: h, Z: d}}
	}
	sphere := func(r float64) components.Mesh {
		return components.Mesh{Shape: components.ShapeSphere, Size: r3.Vec{X: r}}
	}
	cylinder := func(r, h float64) components.Mesh {
		return components.Mesh{Shape: components.ShapeCylinder, Size: r3.Vec{X: r, Y: h}}
	}
	torus := func(major, tube float64) components.Mesh {
		return components.Mesh{Shape: components.ShapeTorus, Size: r3.Vec{X: major, Y: tube}}
	}
	at := func(x, y, z float64) components.Transform {
		return components.Transform{Position: r3.Vec{X: x, Y: y, Z: z}, Scale: 1}
	}

	s.addPart(components.PartHead, 0, at(0, 1.5, 0), box(1.5, 1.5, 1.5), body)
	s.addPart(components.PartAntenna, 0, at(0, 2.5, 0), cylinder(0.05, 0.5), body)
	s.antennaTip = s.addPart(components.PartAntennaTip, 0, at(0, 2.8, 0), sphere(0.15), eye)

	for i, x := range [2]float64{-0.4, 0.4} {
		s.eyeRest[i] = r3.Vec{X: x, Y: 1.6, Z: 0.7}
		s.eyes[i] = s.addPart(components.PartEye, i, at(x, 1.6, 0.7), sphere(0.2), eye)
	}

	s.addPart(components.PartTorso, 0, at(0, -0.5, 0), box(2, 2.5, 1.5), body)

	for i, x := range [2]float64{-1.3, 1.3} {
		arm := at(x, -0.3, 0)
		arm.Rotation.Z = math.Pi / 6
		if i == 1 {
			arm.Rotation.Z = -math.Pi / 6
		}
		s.addPart(components.PartArm, i, arm, cylinder(0.2, 2), body)
	}
	for i, x := range [2]float64{-0.5, 0.5} {
		s.addPart(components.PartLeg, i, at(x, -2.5, 0), cylinder(0.25, 1.5), body)
	}

	s.addPart(components.PartChestRing, 0, at(0, -0.5, 0.8), torus(0.3, 0.05), eye)

	// Transparent rings go last so they draw over the solids
	for i := 0; i < s.cfg.RingCount; i++ {
		ring := at(0, 0, 0)
		ring.Rotation.X = math.Pi / 2
		mat := components.Material{
			Color:       bodyColor,
			Emissive:    1,
			Opacity:     math.Max(0, s.cfg.RingOpacity-0.1*float64(i)),
			Transparent: true,
		}
		s.rings = append(s.rings, s.addPart(components.PartGlowRing, i, ring, torus(2+0.5*float64(i), 0.02), mat))
	}
}

func (s *MascotScene) addPart(kind components.PartKind, index int, tf components.Transform, mesh components.Mesh, mat components.Material) ecs.Entity {
	part := components.Part{Kind: kind, Index: index, Parent: s.root}
	e := s.partMap.NewEntity(&tf, &part, &mesh, &mat)
	s.drawOrder = append(s.drawOrder, e)
	return e
}

// buildLights adds one ambient and two point lights.
func (s *MascotScene) buildLights() {
	lights := []components.Light{
		{Kind: components.LightAmbient, Color: 0xffffff, Intensity: s.cfg.AmbientLight},
		{Kind: components.LightPoint, Color: bodyColor, Intensity: s.cfg.KeyLight, Range: s.cfg.LightRange, Position: r3.Vec{X: 5, Y: 5, Z: 5}},
		{Kind: components.LightPoint, Color: eyeColor, Intensity: s.cfg.FillLight, Range: s.cfg.LightRange, Position: r3.Vec{X: -5, Y: -5, Z: 5}},
	}
	for i := range lights {
		s.lightMap.NewEntity(&lights[i])
	}
}

// OnPointerMove records the pointer in normalized viewport coordinates.
func (s *MascotScene) OnPointerMove(x, y float32) {
	nx, ny := s.camera.NormalizePointer(x, y)
	s.pose.PointerX = float64(nx)
	s.pose.PointerY = float64(ny)
}

// OnResize updates the camera aspect and the mount size.
func (s *MascotScene) OnResize(w, h float32) {
	s.camera.Resize(w, h)
	s.mount.Resize(w, h)
}

// Retune replaces the per-frame motion parameters. Geometry, lights and the
// camera keep the values the scene was built with.
func (s *MascotScene) Retune(cfg config.MascotConfig) {
	s.cfg = cfg
}

// Update advances the pose by one frame. elapsedMs is the time since start
// and drives the bob and ring pulse.
func (s *MascotScene) Update(elapsedMs float64) {
	s.frames++
	p := &s.pose

	p.TargetYaw = p.PointerX * s.cfg.YawScale
	p.TargetPitch = p.PointerY * s.cfg.PitchScale
	p.Yaw += (p.TargetYaw - p.Yaw) * s.cfg.Smoothing
	p.Pitch += (p.TargetPitch - p.Pitch) * s.cfg.Smoothing
	p.BobY = s.cfg.BobAmplitude * math.Sin(elapsedMs*s.cfg.BobFrequency)

	root := s.transforms.Get(s.root)
	root.Rotation.X = p.Pitch
	root.Rotation.Y = p.Yaw
	root.Position.Y = p.BobY

	tip := s.transforms.Get(s.antennaTip)
	tip.Rotation.Y += s.cfg.AntennaSpin

	for i, e := range s.rings {
		tf := s.transforms.Get(e)
		tf.Rotation.Z += s.cfg.RingSpin * float64(i+1)
		mat := s.materials.Get(e)
		mat.Opacity = s.cfg.RingOpacity + s.cfg.RingPulse*math.Sin(elapsedMs*s.cfg.RingPulseFreq+float64(i))
	}

	for i, e := range s.eyes {
		tf := s.transforms.Get(e)
		tf.Position.X = s.eyeRest[i].X + p.PointerX*s.cfg.EyeTrack
		tf.Position.Y = s.eyeRest[i].Y + p.PointerY*s.cfg.EyeTrack
	}
}

// Pose returns the current pose.
func (s *MascotScene) Pose() Pose {
	return s.pose
}

// Frames returns how many updates have run.
func (s *MascotScene) Frames() int {
	return s.frames
}

// Root returns the root transform.
func (s *MascotScene) Root() components.Transform {
	return *s.transforms.Get(s.root)
}

// Camera returns the scene camera.
func (s *MascotScene) Camera() *camera.Camera {
	return s.camera
}

// Mount returns the surface the scene renders into.
func (s *MascotScene) Mount() Surface {
	return s.mount
}

// PartCount returns the number of meshes in the figure.
func (s *MascotScene) PartCount() int {
	n := 0
	q := s.partFilter.Query()
	for q.Next() {
		n++
	}
	return n
}

// Lights returns the scene lights. The slice is reused between calls.
func (s *MascotScene) Lights() []components.Light {
	s.lights = s.lights[:0]
	q := s.lightFilter.Query()
	for q.Next() {
		l := q.Get()
		s.lights = append(s.lights, *l)
	}
	return s.lights
}

// AntennaTip returns the antenna tip transform.
func (s *MascotScene) AntennaTip() components.Transform {
	return *s.transforms.Get(s.antennaTip)
}

// Eye returns the transform of eye i (0 left, 1 right).
func (s *MascotScene) Eye(i int) components.Transform {
	return *s.transforms.Get(s.eyes[i])
}

// Ring returns the transform and material of glow ring i.
func (s *MascotScene) Ring(i int) (components.Transform, components.Material) {
	e := s.rings[i]
	return *s.transforms.Get(e), *s.materials.Get(e)
}

// RingCount returns the number of glow rings.
func (s *MascotScene) RingCount() int {
	return len(s.rings)
}

// DrawList resolves every part in draw order: solids first, then the
// transparent rings. The slice is reused between calls.
func (s *MascotScene) DrawList() []DrawItem {
	root := *s.transforms.Get(s.root)
	lights := s.Lights()

	s.draw = s.draw[:0]
	for _, e := range s.drawOrder {
		tf := *s.transforms.Get(e)
		part := s.parts.Get(e)
		mesh := s.meshes.Get(e)
		mat := s.materials.Get(e)

		world := ToWorld(root, tf.Position)
		normal := r3.Sub(world, root.Position)
		if r3.Norm(normal) < 1e-9 {
			normal = r3.Vec{Z: 1}
		}
		r, g, b := Shade(*mat, world, normal, lights)

		s.draw = append(s.draw, DrawItem{
			Kind:        part.Kind,
			Index:       part.Index,
			Mesh:        *mesh,
			Local:       tf,
			World:       world,
			R:           r,
			G:           g,
			B:           b,
			Opacity:     mat.Opacity,
			Transparent: mat.Transparent,
		})
	}
	return s.draw
}

// ToWorld maps a point local to parent into parent space: scale, rotate
// (Z, then Y, then X) and translate.
func ToWorld(parent components.Transform, local r3.Vec) r3.Vec {
	scale := parent.Scale
	if scale == 0 {
		scale = 1
	}
	return r3.Add(parent.Position, RotateEuler(r3.Scale(scale, local), parent.Rotation))
}

// RotateEuler rotates v by Euler angles e, Z first, then Y, then X.
func RotateEuler(v, e r3.Vec) r3.Vec {
	if e.Z != 0 {
		v = r3.NewRotation(e.Z, r3.Vec{Z: 1}).Rotate(v)
	}
	if e.Y != 0 {
		v = r3.NewRotation(e.Y, r3.Vec{Y: 1}).Rotate(v)
	}
	if e.X != 0 {
		v = r3.NewRotation(e.X, r3.Vec{X: 1}).Rotate(v)
	}
	return v
}
