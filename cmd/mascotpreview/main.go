// Mascot preview tool - interactive tuning of the mascot's motion with sliders.
//
// Usage: go run ./cmd/mascotpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ambient/config"
	"github.com/pthm-cable/ambient/renderer"
	"github.com/pthm-cable/ambient/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 30
)

// slider binds one mascot parameter to a raygui slider.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*config.MascotConfig) *float64
}

var sliders = []slider{
	{"Yaw scale (radians at the screen edge)", 0, 1.5, "%.2f", func(c *config.MascotConfig) *float64 { return &c.YawScale }},
	{"Pitch scale", 0, 1.0, "%.2f", func(c *config.MascotConfig) *float64 { return &c.PitchScale }},
	{"Smoothing (fraction of the gap per frame)", 0.01, 0.5, "%.3f", func(c *config.MascotConfig) *float64 { return &c.Smoothing }},
	{"Bob amplitude", 0, 0.6, "%.2f", func(c *config.MascotConfig) *float64 { return &c.BobAmplitude }},
	{"Antenna spin (radians per frame)", 0, 0.1, "%.3f", func(c *config.MascotConfig) *float64 { return &c.AntennaSpin }},
	{"Ring spin (radians per frame)", 0, 0.03, "%.4f", func(c *config.MascotConfig) *float64 { return &c.RingSpin }},
	{"Eye tracking", 0, 0.3, "%.2f", func(c *config.MascotConfig) *float64 { return &c.EyeTrack }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := config.Cfg().Mascot
	params := defaults

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Mascot Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	canvas := renderer.NewCanvas(previewSize, previewSize, float64(rl.GetWindowScaleDPI().X), config.Cfg().Screen.MaxPixelRatio)
	defer canvas.Unload()
	mascotRenderer := renderer.NewMascotRenderer(canvas)
	defer mascotRenderer.Unload()

	scene, err := systems.NewMascotScene(params, canvas)
	if err != nil {
		slog.Error("failed to build mascot", "error", err)
		os.Exit(1)
	}

	animating := true
	var elapsedMs float64

	for !rl.WindowShouldClose() {
		// Pointer relative to the preview square
		mouse := rl.GetMousePosition()
		preview := rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize}
		if rl.CheckCollisionPointRec(mouse, preview) {
			scene.OnPointerMove(mouse.X-preview.X, mouse.Y-preview.Y)
		}

		if animating {
			elapsedMs += float64(rl.GetFrameTime()) * 1000
			scene.Update(elapsedMs)
		}

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(mascotYAML(params))
		}

		mascotRenderer.Draw(scene)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 6, G: 10, B: 18, A: 255})

		canvas.PresentAt(preview.X, preview.Y)
		rl.DrawRectangleLinesEx(preview, 1, rl.DarkGray)

		pose := scene.Pose()
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Yaw: %+.3f -> %+.3f  Pitch: %+.3f -> %+.3f", pose.Yaw, pose.TargetYaw, pose.Pitch, pose.TargetPitch), 15, statsY, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Bob: %+.3f  Frames: %d", pose.BobY, scene.Frames()), 15, statsY+20, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Mascot Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		changed := false
		for _, s := range sliders {
			v := s.value(&params)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*v), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			if next != float32(*v) {
				*v = float64(next)
				changed = true
			}
			panelY += 35
		}
		if changed {
			scene.Retune(params)
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Freeze", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			scene.Retune(params)
		}
		panelY += 50

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		for _, line := range strings.Split(mascotYAML(params), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)

		rl.EndDrawing()
	}
}

// mascotYAML renders the tunable part of the mascot section as config YAML.
func mascotYAML(c config.MascotConfig) string {
	out := struct {
		Mascot map[string]float64 `yaml:"mascot"`
	}{
		Mascot: map[string]float64{
			"yaw_scale":     c.YawScale,
			"pitch_scale":   c.PitchScale,
			"smoothing":     c.Smoothing,
			"bob_amplitude": c.BobAmplitude,
			"antenna_spin":  c.AntennaSpin,
			"ring_spin":     c.RingSpin,
			"eye_track":     c.EyeTrack,
		},
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return strings.TrimRight(string(data), "\n")
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
