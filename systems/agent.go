package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/shoal/components"
)

// Agent is the per-tick working copy of one fish.
// A pass only writes agents inside the batch it was handed.
type Agent struct {
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Rot    mgl32.Quat
	Speed  components.MoveSpeed
	Wander components.Wander
	Flock  components.Flocking
}

// Neighbor is the read-only view of an agent that flocking passes scan.
type Neighbor struct {
	Pos mgl32.Vec3
	Vel mgl32.Vec3
}

// CaptureNeighbors copies positions and velocities of all agents into dst.
// Index i of the result always describes agents[i].
func CaptureNeighbors(dst []Neighbor, agents []Agent) []Neighbor {
	dst = dst[:0]
	for i := range agents {
		dst = append(dst, Neighbor{Pos: agents[i].Pos, Vel: agents[i].Vel})
	}
	return dst
}
