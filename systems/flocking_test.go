package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCohereNoNeighbours(t *testing.T) {
	agents := []Agent{testAgent(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})}
	others := CaptureNeighbors(nil, agents)

	Cohere(agents, 0, others, 0.1)
	if agents[0].Vel != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("lone fish changed velocity: %v", agents[0].Vel)
	}
}

func TestCohereTowardVisibleNeighbour(t *testing.T) {
	agents := []Agent{
		testAgent(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}),
		testAgent(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 0, 0}),
	}
	others := CaptureNeighbors(nil, agents)

	Cohere(agents[:1], 0, others, 0.1)
	want := mgl32.Vec3{1.2, 0, 0}
	if !agents[0].Vel.ApproxEqualThreshold(want, eps) {
		t.Errorf("got %v, want %v", agents[0].Vel, want)
	}
}

func TestFlockingPerception(t *testing.T) {
	tests := []struct {
		name     string
		neighbor mgl32.Vec3
		want     mgl32.Vec3
	}{
		{"behind", mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"too far", mgl32.Vec3{6, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"coincident", mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}},
		{"edge of cone", mgl32.Vec3{0, 0, 2}, mgl32.Vec3{1, 0, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents := []Agent{
				testAgent(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}),
				testAgent(tt.neighbor, mgl32.Vec3{1, 0, 0}),
			}
			others := CaptureNeighbors(nil, agents)
			Cohere(agents[:1], 0, others, 0.1)
			if !agents[0].Vel.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("got %v, want %v", agents[0].Vel, tt.want)
			}
		})
	}
}

func TestAlignTowardNeighbourVelocity(t *testing.T) {
	agents := []Agent{
		testAgent(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}),
		testAgent(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 1, 0}),
	}
	others := CaptureNeighbors(nil, agents)

	Align(agents[:1], 0, others, 0.1)
	want := mgl32.Vec3{0.9, 0.1, 0}
	if !agents[0].Vel.ApproxEqualThreshold(want, eps) {
		t.Errorf("got %v, want %v", agents[0].Vel, want)
	}
}

func TestSeparationTriggerAtMinDistance(t *testing.T) {
	const dt = 0.1
	push := float32(1.5) * dt / (1.5*1.5 + 0.01)

	tests := []struct {
		name   string
		within bool
		dist   float32
		want   mgl32.Vec3
	}{
		{"beyond at min distance", false, 1.5, mgl32.Vec3{1 - push, 0, 0}},
		{"within at min distance", true, 1.5, mgl32.Vec3{1, 0, 0}},
		{"beyond closer than min", false, 1.0, mgl32.Vec3{1, 0, 0}},
		{"within closer than min", true, 1.0, mgl32.Vec3{1 - 1.0*dt/(1.0+0.01), 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents := []Agent{
				testAgent(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}),
				testAgent(mgl32.Vec3{tt.dist, 0, 0}, mgl32.Vec3{1, 0, 0}),
			}
			others := CaptureNeighbors(nil, agents)
			Separate(agents[:1], 0, others, SeparationParams{Epsilon: 0.01, Within: tt.within}, dt)
			if !agents[0].Vel.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("got %v, want %v", agents[0].Vel, tt.want)
			}
		})
	}
}

func TestFlockingExcludesSelfByIndex(t *testing.T) {
	// Two fish sharing a position: neither counts itself, the twin is coincident
	// and therefore invisible.
	agents := []Agent{
		testAgent(mgl32.Vec3{3, -4, 1}, mgl32.Vec3{0, 0, 1}),
		testAgent(mgl32.Vec3{3, -4, 1}, mgl32.Vec3{0, 0, 1}),
	}
	others := CaptureNeighbors(nil, agents)

	Cohere(agents[1:], 1, others, 0.1)
	Align(agents[1:], 1, others, 0.1)
	Separate(agents[1:], 1, others, SeparationParams{Epsilon: 0.01}, 0.1)
	if agents[1].Vel != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("fish reacted to itself or a coincident twin: %v", agents[1].Vel)
	}
}

func TestFlockingBatchesMatchWholePass(t *testing.T) {
	var whole, split []Agent
	for i := 0; i < 40; i++ {
		p := mgl32.Vec3{float32(i%7) * 0.8, -float32(i%5) * 0.6, float32(i/7) * 0.9}
		v := mgl32.Vec3{1, 0.1 * float32(i%3), 0.2}
		whole = append(whole, testAgent(p, v))
	}
	split = append(split, whole...)

	others := CaptureNeighbors(nil, whole)
	Cohere(whole, 0, others, 0.05)
	for start := 0; start < len(split); start += 9 {
		end := min(start+9, len(split))
		Cohere(split[start:end], start, others, 0.05)
	}

	for i := range whole {
		if whole[i].Vel != split[i].Vel {
			t.Fatalf("agent %d differs between batchings: %v vs %v", i, whole[i].Vel, split[i].Vel)
		}
	}
}

func BenchmarkFlockingPasses(b *testing.B) {
	agents := make([]Agent, 1000)
	for i := range agents {
		p := mgl32.Vec3{float32(i%32) * 0.7, -float32(i%9) - 1, float32(i/32) * 0.7}
		agents[i] = testAgent(p, mgl32.Vec3{1, 0, 0.5})
	}
	others := make([]Neighbor, 0, len(agents))
	sep := SeparationParams{Epsilon: 0.01}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		others = CaptureNeighbors(others, agents)
		Cohere(agents, 0, others, 0.016)
		Align(agents, 0, others, 0.016)
		Separate(agents, 0, others, sep, 0.016)
	}
}
