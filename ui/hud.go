package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Profile      string
	FPS          int32
	Ambient      int
	Trails       int
	Links        int
	Orbs         int
	Yaw          float32
	Pitch        float32
	YawLimit     float32
	PitchLimit   float32
	MascotFrames int
	Paused       bool
	Hidden       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a visible HUD.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		visible:  true,
	}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// IsVisible returns whether the HUD is shown.
func (h *HUD) IsVisible() bool {
	return h.visible
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}
	r := h.renderer

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Trails: %d | Links: %d | Orbs: %d", data.Ambient, data.Trails, data.Links, data.Orbs),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Profile: %s | FPS: %d | Mascot frames: %d", data.Profile, data.FPS, data.MascotFrames),
		10, 55, 16, rl.LightGray,
	)

	y := int32(78)
	y = r.DrawCenteredBar(10, y, "Yaw", data.Yaw, data.YawLimit, 260)
	y = r.DrawCenteredBar(10, y, "Pitch", data.Pitch, data.PitchLimit, 260)

	if status := statusText(data.Paused, data.Hidden); status != "" {
		rl.DrawText(status, 10, y+4, 16, rl.Yellow)
	}
}

// statusText returns the run-state label, empty while running.
func statusText(paused, hidden bool) string {
	switch {
	case paused:
		return "PAUSED"
	case hidden:
		return "HIDDEN"
	default:
		return ""
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	if !h.visible {
		return
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PhaseLine is one row of the perf panel.
type PhaseLine struct {
	Label string
	Mean  time.Duration
	Share float64 // Percent of the frame
}

// PerfPanelData holds frame timings and field load for display.
type PerfPanelData struct {
	Phases       []PhaseLine
	Total        time.Duration
	P90          time.Duration
	FPS          float64
	PairsChecked float64
	Links        float64
}

// PerfPanel renders the phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(anchor PanelAnchor, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		anchor:   anchor,
		width:    width,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(screenW, screenH int32, data PerfPanelData) {
	r := p.renderer
	padding := r.Theme.Padding
	height := padding*2 + r.Theme.LineHeight*int32(len(data.Phases)+3) + 4
	x, y := p.anchor.Origin(screenW, screenH, p.width, height, padding)

	r.DrawPanel(x, y, p.width, height)
	y += padding
	y = r.DrawSectionHeader(x+padding, y, fmt.Sprintf("Frame %s p90 %s (%.0f fps)",
		data.Total.Round(time.Microsecond), data.P90.Round(time.Microsecond), data.FPS))

	for _, ph := range data.Phases {
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph.Label, ph.Mean.Round(time.Microsecond), ph.Share),
			x+padding, y, r.Theme.FontSize, shareColor(ph.Share),
		)
		y += r.Theme.LineHeight
	}

	rl.DrawText(
		fmt.Sprintf("pairs %.0f  links %.0f", data.PairsChecked, data.Links),
		x+padding, y, r.Theme.FontSize, rl.Gray,
	)
}

// shareColor flags phases that dominate the frame.
func shareColor(pct float64) rl.Color {
	switch {
	case pct > 50:
		return rl.Red
	case pct > 25:
		return rl.Orange
	default:
		return rl.LightGray
	}
}
