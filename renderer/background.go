package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer fills the screen with a water gradient that brightens
// as the camera tilts toward the surface.
type BackgroundRenderer struct {
	screenW, screenH int32
	surface          rl.Color
	deep             rl.Color
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	base := rl.Color{R: baseR, G: baseG, B: baseB, A: 255}
	return &BackgroundRenderer{
		screenW: screenW,
		screenH: screenH,
		surface: lerpColor(base, rl.Color{R: 120, G: 190, B: 220, A: 255}, 0.6),
		deep:    lerpColor(base, rl.Color{R: 2, G: 6, B: 16, A: 255}, 0.7),
	}
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw renders the gradient. pitch is the camera pitch in radians, positive
// when looking down on the school.
func (b *BackgroundRenderer) Draw(pitch float32) {
	// Looking down shows more of the deep, looking up shows more surface light
	t := float32(0.5 + 0.5*math.Sin(float64(pitch)))
	top := lerpColor(b.surface, b.deep, t*0.6)
	bottom := lerpColor(b.surface, b.deep, 0.4+t*0.6)
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, top, bottom)
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {}
