package components

import "github.com/go-gl/mathgl/mgl32"

// Position represents a fish's world position.
type Position struct {
	Vec mgl32.Vec3
}

// Velocity represents a fish's velocity. Its length is the current speed.
type Velocity struct {
	Vec mgl32.Vec3
}

// Rotation is the facing derived from velocity. Nothing reads it back into steering.
type Rotation struct {
	Quat mgl32.Quat
}
