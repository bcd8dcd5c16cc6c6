package systems

import "math/rand/v2"

// Stream is one worker's random generator state. It is a plain value:
// copy it out of the pool, draw from it, then store it back.
type Stream struct {
	pcg rand.PCG
}

// NewStream creates a stream from two seed words.
func NewStream(seed1, seed2 uint64) Stream {
	return Stream{pcg: *rand.NewPCG(seed1, seed2)}
}

// Float32 returns a uniform value in [0, 1).
func (s *Stream) Float32() float32 {
	// 24 high bits fill the float32 mantissa exactly
	return float32(s.pcg.Uint64()>>40) * (1.0 / (1 << 24))
}

// Float32Range returns a uniform value in [lo, hi).
func (s *Stream) Float32Range(lo, hi float32) float32 {
	v := lo + (hi-lo)*s.Float32()
	if v >= hi && hi > lo {
		// rounding at the top of the interval
		return lo
	}
	return v
}

// RandomPool owns one independent stream per worker slot.
// There is no locking: a slot must only be touched by the worker with that id,
// and the scheduler runs at most one batch per worker at a time.
type RandomPool struct {
	slots []Stream
}

// NewRandomPool seeds slots streams from a single master seed.
func NewRandomPool(slots int, seed uint64) *RandomPool {
	if slots < 1 {
		slots = 1
	}
	master := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	p := &RandomPool{slots: make([]Stream, slots)}
	for i := range p.slots {
		p.slots[i] = NewStream(master.Uint64(), master.Uint64())
	}
	return p
}

// Slots returns the number of worker slots.
func (p *RandomPool) Slots() int {
	return len(p.slots)
}

// Stream returns a copy of the state in slot.
func (p *RandomPool) Stream(slot int) Stream {
	return p.slots[slot]
}

// Store writes advanced state back into slot.
func (p *RandomPool) Store(slot int, s Stream) {
	p.slots[slot] = s
}
