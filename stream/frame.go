// Package stream broadcasts school frames to websocket observers.
package stream

// FishState is one fish in a frame.
type FishState struct {
	ID uint32     `json:"id"`
	P  [3]float32 `json:"p"`
	V  [3]float32 `json:"v"`
}

// Frame is the positions and velocities of every fish after a tick.
type Frame struct {
	Tick int32       `json:"tick"`
	Fish []FishState `json:"fish"`
}
