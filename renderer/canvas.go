// Package renderer draws the particle field, orbs and mascot with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ambient/camera"
)

// Canvas is a viewport-sized render texture. It satisfies systems.Surface:
// Size and Resize work in logical pixels, the backing texture is allocated
// at the device pixel ratio capped by maxRatio. Texture (re)allocation is
// deferred to Begin so a Canvas can be created before the window exists.
type Canvas struct {
	w, h     float32
	dpr      float64
	maxRatio float64

	target      rl.RenderTexture2D
	texW, texH  int32
	initialized bool
	dirty       bool
}

// NewCanvas creates a canvas of the given logical size.
func NewCanvas(w, h float32, dpr, maxRatio float64) *Canvas {
	return &Canvas{w: w, h: h, dpr: dpr, maxRatio: maxRatio, dirty: true}
}

// Size returns the logical size.
func (c *Canvas) Size() (float32, float32) {
	return c.w, c.h
}

// Resize changes the logical size; the texture follows on the next Begin.
func (c *Canvas) Resize(w, h float32) {
	if w == c.w && h == c.h {
		return
	}
	c.w, c.h = w, h
	c.dirty = true
}

// SetPixelRatio updates the device pixel ratio (e.g. after moving monitors).
func (c *Canvas) SetPixelRatio(dpr float64) {
	if dpr == c.dpr {
		return
	}
	c.dpr = dpr
	c.dirty = true
}

// Ratio returns the effective pixel ratio of the backing texture.
func (c *Canvas) Ratio() float32 {
	return float32(camera.EffectivePixelRatio(c.dpr, c.maxRatio))
}

func (c *Canvas) realloc() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
	}
	c.texW, c.texH = camera.BackingSize(c.w, c.h, c.dpr, c.maxRatio)
	c.target = rl.LoadRenderTexture(c.texW, c.texH)
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	c.initialized = true
	c.dirty = false
}

// Begin starts drawing into the canvas and clears it to transparent.
func (c *Canvas) Begin() {
	if c.dirty || !c.initialized {
		c.realloc()
	}
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Blank)
}

// End finishes drawing into the canvas.
func (c *Canvas) End() {
	rl.EndTextureMode()
}

// Present draws the canvas onto the current framebuffer at its logical size.
func (c *Canvas) Present() {
	c.PresentAt(0, 0)
}

// PresentAt draws the canvas with its top-left corner at (x, y).
func (c *Canvas) PresentAt(x, y float32) {
	if !c.initialized {
		return
	}
	// Render textures are stored bottom-up
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(c.texW), Height: -float32(c.texH)}
	dst := rl.Rectangle{X: x, Y: y, Width: c.w, Height: c.h}
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the backing texture.
func (c *Canvas) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
		c.initialized = false
	}
}
