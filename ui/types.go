// Package ui draws the HUD and the tuning panel over the effects layer.
// Panels take plain data structs each frame and keep no simulation state.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Origin returns the top-left corner of a panel of the given size anchored
// inside a screen, inset by margin.
func (a PanelAnchor) Origin(screenW, screenH, panelW, panelH, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - panelW - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - panelH - margin
	case AnchorBottomRight:
		return screenW - panelW - margin, screenH - panelH - margin
	default:
		return margin, margin
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme, tinted to the particle cyan.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 10, G: 14, B: 22, A: 220},
		PanelBorder:     rl.Color{R: 0, G: 110, B: 130, A: 255},
		SectionHeader:   rl.Color{R: 0, G: 217, B: 255, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.White,
		BarBg:           rl.Color{R: 30, G: 36, B: 44, A: 255},
		BarFill:         rl.Color{R: 0, G: 180, B: 215, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 140, A: 255},
		BarFillPositive: rl.Color{R: 0, G: 200, B: 160, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      70,
		BarHeight:       10,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
