package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Attraction force slider limits.
const (
	AttractForceMin = 0.0
	AttractForceMax = 2.0
)

// TuningState is what the tuning panel edits.
type TuningState struct {
	AttractForce float32
}

// TuningPanel renders the capability gates as raygui checkboxes and the
// attraction force as a slider.
type TuningPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(anchor PanelAnchor, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		anchor:   anchor,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (c *TuningPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *TuningPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *TuningPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height for n gates.
func (c *TuningPanel) Height(n int) int32 {
	t := c.renderer.Theme
	// Title, gates, slider label and slider
	return t.Padding*2 + t.LineHeight + 4 + int32(n)*(t.LineHeight+6) + t.LineHeight*3
}

// Draw renders the panel and applies clicks to gates and state. It returns
// true when anything changed.
func (c *TuningPanel) Draw(screenW, screenH int32, gates *GateRegistry, state *TuningState) bool {
	if !c.visible {
		return false
	}

	r := c.renderer
	padding := r.Theme.Padding
	descs := gates.Descriptors()
	height := c.Height(len(descs))
	x, y := c.anchor.Origin(screenW, screenH, c.width, height, padding)

	r.DrawPanel(x, y, c.width, height)
	y += padding
	y = r.DrawSectionHeader(x+padding, y, "Capabilities")

	changed := false
	for _, d := range descs {
		bounds := rl.Rectangle{X: float32(x + padding), Y: float32(y), Width: 14, Height: 14}
		on := gates.IsEnabled(d.ID)
		if next := gui.CheckBox(bounds, fmt.Sprintf("%s [%s]", d.Name, d.KeyLabel), on); next != on {
			gates.Set(d.ID, next)
			changed = true
		}
		y += r.Theme.LineHeight + 6
	}

	rl.DrawText(fmt.Sprintf("Attraction force: %.2f", state.AttractForce), x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	slider := rl.Rectangle{X: float32(x + padding + 24), Y: float32(y), Width: float32(c.width - padding*2 - 56), Height: 14}
	force := gui.SliderBar(slider, fmt.Sprintf("%.0f", AttractForceMin), fmt.Sprintf("%.0f", AttractForceMax), state.AttractForce, AttractForceMin, AttractForceMax)
	if force != state.AttractForce {
		state.AttractForce = force
		changed = true
	}

	return changed
}
