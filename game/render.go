package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/systems"
	"github.com/pthm-cable/ambient/ui"
)

var backgroundColor = rl.Color{R: 6, G: 10, B: 18, A: 255}

// Draw renders the frame back to front: orbs, particle canvas, mascot
// canvas, then UI.
func (g *Game) Draw() {
	g.perf.Phase(systems.SystemDraw)

	// Offscreen passes run before the framebuffer is bound
	g.particleRenderer.Draw(g.field)
	if g.mascot != nil {
		g.mascotRenderer.Draw(g.mascot)
	}

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.orbRenderer.Draw(g.orbs.Placements(g.width, g.height))
	g.particleCanvas.Present()
	if g.mascot != nil {
		g.mascotCanvas.Present()
	}

	g.drawUI()

	rl.EndDrawing()
	g.perf.EndFrame(g.frameWork())
}

func (g *Game) drawUI() {
	sw, sh := int32(g.width), int32(g.height)

	data := ui.HUDData{
		Title:   "Ambient",
		Profile: g.class.String(),
		FPS:     rl.GetFPS(),
		Ambient: len(g.field.Ambient()),
		Trails:  len(g.field.Trails()),
		Links:   len(g.field.Links()),
		Orbs:    len(g.orbs.Placements(g.width, g.height)),
		Paused:  g.paused,
		Hidden:  g.hidden,
	}
	if g.mascot != nil {
		pose := g.mascot.Pose()
		data.Yaw = float32(pose.Yaw)
		data.Pitch = float32(pose.Pitch)
		data.YawLimit = float32(g.cfg.Mascot.YawScale)
		data.PitchLimit = float32(g.cfg.Mascot.PitchScale)
		data.MascotFrames = g.mascot.Frames()
	}
	g.hud.Draw(data)

	if g.showPerf {
		prof := g.perf.Profile()
		data := ui.PerfPanelData{
			Total:        prof.Mean,
			P90:          prof.P90,
			FPS:          prof.FPS,
			PairsChecked: prof.PairsChecked,
			Links:        prof.Links,
		}
		for _, ph := range prof.Phases {
			data.Phases = append(data.Phases, ui.PhaseLine{
				Label: g.registry.GetName(ph.Name),
				Mean:  ph.Mean,
				Share: ph.Share,
			})
		}
		g.perfPanel.Draw(sw, sh, data)
	}

	if g.tuning.Draw(sw, sh, g.gates, &g.tuningState) {
		g.field.SetAttractForce(float64(g.tuningState.AttractForce))
		if caps := g.gates.Apply(g.caps); caps != g.caps {
			g.SetCaps(caps)
		}
	}

	g.hud.DrawControls(sh, "H: HUD | Tab: Tuning | P: Pause | 1-5: Gates | F3: Perf | F11: Fullscreen")
}
