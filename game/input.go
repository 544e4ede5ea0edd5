package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Update polls window input and runs one frame at the wall clock.
func (g *Game) Update() {
	g.perf.Presented()
	g.perf.BeginFrame()

	g.handleInput()
	g.Frame(rl.GetTime() * 1000)
}

// handleInput turns raylib window state into host events and handles keys.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyH) {
		g.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if key := rl.GetKeyPressed(); key != 0 && g.gates.HandleKey(key) {
		g.SetCaps(g.gates.Apply(g.caps))
	}

	g.syncVisibility()

	if rl.IsCursorOnScreen() {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			pos := rl.GetMousePosition()
			g.Dispatch(PointerMove(pos.X, pos.Y))
		}
	}
}

// handleResize reports a window size change and a pixel ratio change when
// the window moved to another monitor.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	dpi := rl.GetWindowScaleDPI()
	g.particleCanvas.SetPixelRatio(float64(dpi.X))
	g.mascotCanvas.SetPixelRatio(float64(dpi.X))

	g.Dispatch(Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())))
}

// syncVisibility reports the window as hidden while minimized or paused.
func (g *Game) syncVisibility() {
	visible := !g.paused && !rl.IsWindowMinimized() && !rl.IsWindowHidden()
	g.Dispatch(Visibility(visible))
}
