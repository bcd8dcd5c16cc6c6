package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/shoal/components"
)

// FluctuateSpeed returns the new active speed for s.
// draw is uniform in [-MaxDecrease, MaxIncrease); the result always lies in [s.Min(), s.Max()].
func FluctuateSpeed(s components.MoveSpeed, draw, dt float32) float32 {
	return clampFloat(s.Base+draw*dt, s.Min(), s.Max())
}

// FluctuateSpeeds recomputes the active speed of every agent in batch.
func FluctuateSpeeds(batch []Agent, rng *Stream, dt float32) {
	for i := range batch {
		s := &batch[i].Speed
		s.Active = FluctuateSpeed(*s, rng.Float32Range(-s.MaxDecrease, s.MaxIncrease), dt)
	}
}

// RegulateSpeed applies one corrective step that rescales vel to the active speed
// when the current speed is off by more than tolerance. A zero velocity has no
// direction to rescale and is returned unchanged.
func RegulateSpeed(vel mgl32.Vec3, active, tolerance float32) mgl32.Vec3 {
	current := vel.Len()
	if current == 0 {
		return vel
	}
	if abs32(current-active) <= tolerance {
		return vel
	}
	return vel.Add(vel.Mul(1 / current).Mul(active - current))
}

// RegulateSpeeds applies RegulateSpeed to every agent in batch.
func RegulateSpeeds(batch []Agent, tolerance float32) {
	for i := range batch {
		a := &batch[i]
		a.Vel = RegulateSpeed(a.Vel, a.Speed.Active, tolerance)
	}
}
