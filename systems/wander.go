package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AdvanceAngle applies one wander step. draw is uniform in [-1, 1) and
// maxDelta is a fraction of a full turn, so a zero maxDelta never moves the angle.
func AdvanceAngle(angle, maxDelta, draw float32) float32 {
	return angle + draw*maxDelta*twoPi
}

// UpdateWanderHorizontal advances the horizontal wander angle of every agent in batch.
func UpdateWanderHorizontal(batch []Agent, rng *Stream) {
	for i := range batch {
		w := &batch[i].Wander
		w.HorizontalAngle = AdvanceAngle(w.HorizontalAngle, w.HorizontalMaxDelta, rng.Float32Range(-1, 1))
	}
}

// UpdateWanderVertical advances the vertical wander angle of every agent in batch.
func UpdateWanderVertical(batch []Agent, rng *Stream) {
	for i := range batch {
		w := &batch[i].Wander
		w.VerticalAngle = AdvanceAngle(w.VerticalAngle, w.VerticalMaxDelta, rng.Float32Range(-1, 1))
	}
}

// HorizontalWanderOffset is the point on the wander sphere selected by the horizontal angle,
// relative to the sphere centre.
func HorizontalWanderOffset(angle, radius float32) mgl32.Vec3 {
	s, c := math.Sincos(float64(angle))
	return mgl32.Vec3{float32(c), 0, float32(s)}.Mul(radius)
}

// VerticalWanderOffset is the point on the wander sphere selected by the vertical angle,
// relative to the sphere centre.
func VerticalWanderOffset(angle, radius float32) mgl32.Vec3 {
	return mgl32.Vec3{0, float32(math.Sin(float64(angle))), 0}.Mul(radius)
}

// SteerTowardWanderTarget projects the wander sphere ahead of the current heading and
// pulls vel toward centre+offset. Without a heading there is no sphere and vel is returned as is.
func SteerTowardWanderTarget(pos, vel, offset mgl32.Vec3, sphereDistance, sphereRadius, dt float32) mgl32.Vec3 {
	dir, ok := direction(vel)
	if !ok {
		return vel
	}
	centre := pos.Add(dir.Mul(sphereDistance + sphereRadius))
	target := centre.Add(offset)
	return vel.Add(target.Sub(pos).Mul(dt))
}

// SteerWanderHorizontal applies the horizontal wander pull to every agent in batch.
func SteerWanderHorizontal(batch []Agent, dt float32) {
	for i := range batch {
		a := &batch[i]
		w := &a.Wander
		offset := HorizontalWanderOffset(w.HorizontalAngle, w.SphereRadius)
		a.Vel = SteerTowardWanderTarget(a.Pos, a.Vel, offset, w.SphereDistance, w.SphereRadius, dt)
	}
}

// SteerWanderVertical applies the vertical wander pull. It must run after the
// horizontal pass: the heading it projects from includes that pass's change.
func SteerWanderVertical(batch []Agent, dt float32) {
	for i := range batch {
		a := &batch[i]
		w := &a.Wander
		offset := VerticalWanderOffset(w.VerticalAngle, w.SphereRadius)
		a.Vel = SteerTowardWanderTarget(a.Pos, a.Vel, offset, w.SphereDistance, w.SphereRadius, dt)
	}
}
