package systems

import "github.com/go-gl/mathgl/mgl32"

// The three flocking passes scan every other agent. batch is a contiguous slice of the
// tick's agents starting at index first, and others[first+i] describes batch[i]; that
// index is how a fish recognises and skips itself. others is captured once before the
// pass and is never written, so batches can run in parallel.

// inViewCone reports whether a neighbour at offset diff (length dist) lies inside the
// forward cone of half-angle halfAngle around vel (length speed). A coincident
// neighbour or a fish without heading perceives nothing.
func inViewCone(diff mgl32.Vec3, dist float32, vel mgl32.Vec3, speed, halfAngle float32) bool {
	if dist == 0 || speed == 0 {
		return false
	}
	cos := diff.Dot(vel) / (dist * speed)
	return acos32(cos) <= halfAngle
}

// Cohere pulls each agent toward the mean position of the neighbours it perceives
// within its view distance. With no neighbours the velocity is untouched.
func Cohere(batch []Agent, first int, others []Neighbor, dt float32) {
	for i := range batch {
		a := &batch[i]
		self := first + i
		speed := a.Vel.Len()
		halfAngle := a.Flock.ViewAngle / 2

		var sum mgl32.Vec3
		count := 0
		for j := range others {
			if j == self {
				continue
			}
			diff := others[j].Pos.Sub(a.Pos)
			dist := diff.Len()
			if dist > a.Flock.ViewDistance {
				continue
			}
			if !inViewCone(diff, dist, a.Vel, speed, halfAngle) {
				continue
			}
			sum = sum.Add(others[j].Pos)
			count++
		}

		if count == 0 {
			continue
		}
		avg := sum.Mul(1 / float32(count))
		a.Vel = a.Vel.Add(avg.Sub(a.Pos).Mul(dt))
	}
}

// Align steers each agent toward the mean velocity of the neighbours it perceives
// within its view distance.
func Align(batch []Agent, first int, others []Neighbor, dt float32) {
	for i := range batch {
		a := &batch[i]
		self := first + i
		speed := a.Vel.Len()
		halfAngle := a.Flock.ViewAngle / 2

		var sum mgl32.Vec3
		count := 0
		for j := range others {
			if j == self {
				continue
			}
			diff := others[j].Pos.Sub(a.Pos)
			dist := diff.Len()
			if dist > a.Flock.ViewDistance {
				continue
			}
			if !inViewCone(diff, dist, a.Vel, speed, halfAngle) {
				continue
			}
			sum = sum.Add(others[j].Vel)
			count++
		}

		if count == 0 {
			continue
		}
		avg := sum.Mul(1 / float32(count))
		a.Vel = a.Vel.Add(avg.Sub(a.Vel).Mul(dt))
	}
}

// SeparationParams selects the separation distance rule.
type SeparationParams struct {
	Epsilon float32 // keeps the push finite as distance approaches zero
	// Within makes only neighbours strictly closer than MinDistance push.
	// When false the literal rule applies: neighbours closer than MinDistance
	// are skipped and everything at or beyond it pushes.
	Within bool
}

// triggers reports whether a neighbour at dist takes part in separation.
func (p SeparationParams) triggers(dist, minDistance float32) bool {
	if p.Within {
		return dist < minDistance
	}
	return dist >= minDistance
}

// Separate pushes each agent away from every perceived neighbour that passes the
// distance rule, one push per neighbour. Later cone tests in the same scan see the
// velocity already changed by earlier pushes.
func Separate(batch []Agent, first int, others []Neighbor, p SeparationParams, dt float32) {
	for i := range batch {
		a := &batch[i]
		self := first + i
		halfAngle := a.Flock.ViewAngle / 2

		for j := range others {
			if j == self {
				continue
			}
			diff := others[j].Pos.Sub(a.Pos)
			dist := diff.Len()
			if !p.triggers(dist, a.Flock.MinDistance) {
				continue
			}
			if !inViewCone(diff, dist, a.Vel, a.Vel.Len(), halfAngle) {
				continue
			}
			a.Vel = a.Vel.Sub(diff.Mul(dt / (dist*dist + p.Epsilon)))
		}
	}
}
