// Package camera provides an orbit camera for viewing the school.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point in the water.
// Yaw turns around the vertical axis, pitch tilts above or below the target.
type Camera struct {
	// Target is the point the camera looks at
	Target mgl32.Vec3

	// Orbit angles in radians
	Yaw, Pitch float32

	// Distance from target to eye
	Distance float32

	// Vertical field of view in radians
	FovY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// Pitch limit, kept short of straight up/down so the up vector stays valid
	MaxPitch float32

	// Clip planes
	Near, Far float32
}

const (
	defaultDistance = 60
	defaultPitch    = 0.35
	defaultYaw      = 0.8
)

// New creates a camera looking at the origin from the default orbit.
func New(viewportW, viewportH float32) *Camera {
	c := &Camera{
		FovY:        mgl32.DegToRad(45),
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		MinDistance: 5,
		MaxDistance: 400,
		MaxPitch:    1.5,
		Near:        0.1,
		Far:         2000,
	}
	c.Reset()
	return c
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Sin(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Forward returns the unit vector from eye to target.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Eye()).Normalize()
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// WorldToScreen converts a world point to screen coordinates (origin top-left).
// ok is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float32, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, true
}

// IsVisible returns true if a sphere at p with the given radius could be
// on screen (conservative check for culling).
func (c *Camera) IsVisible(p mgl32.Vec3, radius float32) bool {
	toP := p.Sub(c.Eye())
	depth := toP.Dot(c.Forward())
	if depth+radius < c.Near || depth-radius > c.Far {
		return false
	}

	// Reject points well outside the widest half-angle of the frustum
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	halfV := float64(c.FovY / 2)
	halfH := math.Atan(math.Tan(halfV) * float64(aspect))
	halfAngle := math.Max(halfV, halfH)

	dist := toP.Len()
	if dist <= radius {
		return true
	}
	cosAngle := float64(depth / dist)
	angle := math.Acos(float64(clamp(float32(cosAngle), -1, 1)))
	margin := math.Asin(math.Min(1, float64(radius/dist)))
	return angle-margin <= halfAngle
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Orbit turns the camera by the given angles in radians.
// Yaw wraps to [0, 2π), pitch is clamped to ±MaxPitch.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dPitch, -c.MaxPitch, c.MaxPitch)
}

// Pan moves the target horizontally relative to the current yaw.
// right moves across the screen, forward moves into it.
func (c *Camera) Pan(right, forward float32) {
	fwd := mgl32.Vec3{-float32(math.Cos(float64(c.Yaw))), 0, -float32(math.Sin(float64(c.Yaw)))}
	side := fwd.Cross(mgl32.Vec3{0, 1, 0})
	c.Target = c.Target.Add(side.Mul(right)).Add(fwd.Mul(forward))
}

// Lift moves the target vertically.
func (c *Camera) Lift(dy float32) {
	c.Target[1] += dy
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy scales the orbit distance. Factors above 1 move closer.
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Follow moves the target a fraction rate of the way toward p.
// rate is clamped to [0, 1].
func (c *Camera) Follow(p mgl32.Vec3, rate float32) {
	rate = clamp(rate, 0, 1)
	c.Target = c.Target.Add(p.Sub(c.Target).Mul(rate))
}

// Reset returns the camera to the default orbit around the origin.
func (c *Camera) Reset() {
	c.Target = mgl32.Vec3{0, -10, 0}
	c.Yaw = defaultYaw
	c.Pitch = defaultPitch
	c.Distance = clamp(defaultDistance, c.MinDistance, c.MaxDistance)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
