// Package components defines ECS components for the simulation.
package components

// Fish identifies a simulated fish.
type Fish struct {
	ID uint32
}

// MoveSpeed holds the cruising speed and the band the active target speed fluctuates in.
// Only Active changes after spawn.
type MoveSpeed struct {
	Base        float32 `inspect:"label,fmt:%.2f"`
	Active      float32 `inspect:"bar,max:6"`
	MaxDecrease float32 `inspect:"label,fmt:%.2f"`
	MaxIncrease float32 `inspect:"label,fmt:%.2f"`
}

// Min returns the lowest allowed active speed.
func (s MoveSpeed) Min() float32 {
	return s.Base - s.MaxDecrease
}

// Max returns the highest allowed active speed.
func (s MoveSpeed) Max() float32 {
	return s.Base + s.MaxIncrease
}

// Wander holds the free-running wander angles and the wander sphere geometry.
// Angles are radians and are never wrapped.
type Wander struct {
	HorizontalAngle    float32 `inspect:"angle"`
	VerticalAngle      float32 `inspect:"angle"`
	HorizontalMaxDelta float32 `inspect:"label,fmt:%.3f"` // fraction of a full turn per tick
	VerticalMaxDelta   float32 `inspect:"label,fmt:%.3f"` // fraction of a full turn per tick
	SphereDistance     float32 `inspect:"label,fmt:%.2f"`
	SphereRadius       float32 `inspect:"label,fmt:%.2f"`
}

// Flocking holds perception parameters.
type Flocking struct {
	ViewAngle    float32 `inspect:"angle"`           // full cone angle, radians
	ViewDistance float32 `inspect:"label,fmt:%.2f"` // cohesion/alignment radius
	MinDistance  float32 `inspect:"label,fmt:%.2f"` // separation trigger radius
}
