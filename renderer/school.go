// Package renderer draws the school and its surroundings with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/shoal/camera"
	"github.com/pthm-cable/shoal/game"
)

// ColorMode selects how fish bodies are shaded.
type ColorMode int

const (
	ColorByDepth ColorMode = iota
	ColorBySpeed
)

// SchoolOptions controls what the school renderer draws.
type SchoolOptions struct {
	Upper, Lower      float32 // vertical band
	ShowBand          bool
	ContainmentRadius float32 // 0 = hidden
	ShowVelocity      bool
	Mode              ColorMode
}

// SchoolRenderer draws every fish as a cone pointing along its facing.
type SchoolRenderer struct {
	bodyLength float32
	bodyRadius float32
	sides      int32
	bandExtent float32
}

// NewSchoolRenderer creates a school renderer.
func NewSchoolRenderer() *SchoolRenderer {
	return &SchoolRenderer{
		bodyLength: 0.9,
		bodyRadius: 0.18,
		sides:      6,
		bandExtent: 120,
	}
}

// Camera3D converts the orbit camera to a raylib camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   V3(cam.Eye()),
		Target:     V3(cam.Target),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       cam.FovY * 180 / math.Pi,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the band, the containment ring and the fish. Must be called
// between rl.BeginMode3D and rl.EndMode3D.
func (r *SchoolRenderer) Draw(cam *camera.Camera, g *game.Game, opts SchoolOptions) {
	if opts.ShowBand {
		r.drawBand(opts.Upper)
		r.drawBand(opts.Lower)
	}
	if opts.ContainmentRadius > 0 {
		r.drawContainment(opts.ContainmentRadius, (opts.Upper+opts.Lower)/2)
	}

	forward := mgl32.Vec3{0, 0, 1}
	g.EachFish(func(f game.FishState) {
		if !cam.IsVisible(f.Pos, r.bodyLength) {
			return
		}

		dir := f.Rot.Rotate(forward)
		half := dir.Mul(r.bodyLength / 2)

		var color rl.Color
		switch opts.Mode {
		case ColorBySpeed:
			color = SpeedColor(f.Vel.Len(), f.Active)
		default:
			color = DepthColor(f.Pos.Y(), opts.Upper, opts.Lower)
		}

		tail := V3(f.Pos.Sub(half))
		head := V3(f.Pos.Add(half))
		rl.DrawCylinderEx(tail, head, r.bodyRadius, 0, r.sides, color)

		if opts.ShowVelocity {
			rl.DrawLine3D(V3(f.Pos), V3(f.Pos.Add(f.Vel.Mul(0.5))), rl.Fade(rl.White, 0.5))
		}
	})
}

// drawBand draws a translucent grid at depth y.
func (r *SchoolRenderer) drawBand(y float32) {
	const lines = 12
	step := 2 * r.bandExtent / lines
	for i := 0; i <= lines; i++ {
		o := -r.bandExtent + float32(i)*step
		rl.DrawLine3D(rl.Vector3{X: o, Y: y, Z: -r.bandExtent}, rl.Vector3{X: o, Y: y, Z: r.bandExtent}, colorBandLine)
		rl.DrawLine3D(rl.Vector3{X: -r.bandExtent, Y: y, Z: o}, rl.Vector3{X: r.bandExtent, Y: y, Z: o}, colorBandLine)
	}
}

// drawContainment draws the containment radius as a horizontal ring.
func (r *SchoolRenderer) drawContainment(radius, y float32) {
	rl.DrawCircle3D(rl.Vector3{X: 0, Y: y, Z: 0}, radius, rl.Vector3{X: 1, Y: 0, Z: 0}, 90, colorOutside)
}

// Unload frees resources.
func (r *SchoolRenderer) Unload() {}
