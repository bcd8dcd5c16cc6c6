package systems

import "github.com/go-gl/mathgl/mgl32"

// BoundaryParams describes the vertical operating band.
type BoundaryParams struct {
	Upper       float32 // above: push down by (y² + UpperBias) * dt
	Lower       float32 // below: push up by -y * dt
	UpperBias   float32
	VerticalCap float32 // inside the band |v.y| decays toward this
}

// SteerWithinBounds returns vel corrected for the fish's depth. Only the
// vertical component changes.
func SteerWithinBounds(pos, vel mgl32.Vec3, b BoundaryParams, dt float32) mgl32.Vec3 {
	y := pos.Y()
	switch {
	case y > b.Upper:
		vel[1] -= (y*y + b.UpperBias) * dt
	case y < b.Lower:
		vel[1] -= y * dt
	default:
		vy := vel[1]
		if abs32(vy) > b.VerticalCap {
			vel[1] -= sign32(vy) * (abs32(vy) - b.VerticalCap) * dt
		}
	}
	return vel
}

// SteerWithinBoundsBatch applies SteerWithinBounds to every agent in batch.
func SteerWithinBoundsBatch(batch []Agent, b BoundaryParams, dt float32) {
	for i := range batch {
		a := &batch[i]
		a.Vel = SteerWithinBounds(a.Pos, a.Vel, b, dt)
	}
}

// ContainHorizontally pulls a fish back toward the vertical axis through the origin once
// its horizontal distance d exceeds radius, with strength (d² - radius) * dt.
func ContainHorizontally(pos, vel mgl32.Vec3, radius, dt float32) mgl32.Vec3 {
	toAxis := mgl32.Vec3{-pos[0], 0, -pos[2]}
	d := toAxis.Len()
	if d <= radius {
		return vel
	}
	return vel.Add(toAxis.Mul((d*d - radius) * dt / d))
}

// ContainHorizontallyBatch applies ContainHorizontally to every agent in batch.
func ContainHorizontallyBatch(batch []Agent, radius, dt float32) {
	for i := range batch {
		a := &batch[i]
		a.Vel = ContainHorizontally(a.Pos, a.Vel, radius, dt)
	}
}
