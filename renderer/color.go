package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// V3 converts a simulation vector to a raylib vector.
func V3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

var (
	colorShallow  = rl.Color{R: 210, G: 235, B: 240, A: 255}
	colorDeep     = rl.Color{R: 40, G: 90, B: 160, A: 255}
	colorOutside  = rl.Color{R: 240, G: 110, B: 80, A: 255}
	colorSlow     = rl.Color{R: 90, G: 130, B: 220, A: 255}
	colorFast     = rl.Color{R: 250, G: 220, B: 120, A: 255}
	colorBandLine = rl.Color{R: 180, G: 220, B: 255, A: 60}
)

// DepthColor shades a fish by where y sits in the [lower, upper] band.
// Fish outside the band are tinted warm.
func DepthColor(y, upper, lower float32) rl.Color {
	if y > upper || y < lower {
		return colorOutside
	}
	span := upper - lower
	if span <= 0 {
		return colorShallow
	}
	return lerpColor(colorShallow, colorDeep, (upper-y)/span)
}

// SpeedColor shades a fish by its speed relative to its active target speed.
func SpeedColor(speed, active float32) rl.Color {
	if active <= 0 {
		return colorSlow
	}
	// 0.5x target and below is fully slow, 1.5x and above fully fast
	return lerpColor(colorSlow, colorFast, speed/active-0.5)
}

// lerpColor interpolates between two colors, t clamped to [0, 1].
func lerpColor(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}
