package game

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/stream"
	"github.com/pthm-cable/shoal/telemetry"
)

func testConfig(t *testing.T, mods ...func(*config.Config)) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("simulation:\n  workers: 2\n  min_batch: 8\n  seed: 7\npopulation:\n  initial: 40\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, mod := range mods {
		mod(cfg)
	}
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return cfg
}

func noFish(c *config.Config) { c.Population.Initial = 0 }

func newTestGame(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Config = cfg
	opts.Headless = true
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g
}

func positions(g *Game) map[uint32]mgl32.Vec3 {
	out := make(map[uint32]mgl32.Vec3, g.FishCount())
	g.EachFish(func(f FishState) {
		out[f.ID] = f.Pos
	})
	return out
}

func TestNewGameSpawnsInitialSchool(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg, Options{})

	if g.FishCount() != 40 {
		t.Fatalf("expected 40 fish, got %d", g.FishCount())
	}
	if g.Seed() != 7 {
		t.Errorf("expected config seed 7, got %d", g.Seed())
	}

	pop := cfg.Population
	g.EachFish(func(f FishState) {
		r := mgl32.Vec2{f.Pos.X(), f.Pos.Z()}.Len()
		if float64(r) > pop.SpawnRadius+1e-3 {
			t.Errorf("fish %d spawned outside radius: %f", f.ID, r)
		}
		if float64(f.Pos.Y()) < pop.SpawnDepthMin || float64(f.Pos.Y()) > pop.SpawnDepthMax {
			t.Errorf("fish %d spawned outside depth range: %f", f.ID, f.Pos.Y())
		}
		if f.Vel.Y() != 0 {
			t.Errorf("fish %d should start swimming horizontally, got %v", f.ID, f.Vel)
		}
	})
}

func TestStepAdvancesTick(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	for i := 0; i < 5; i++ {
		g.Step(1.0 / 60)
	}
	if g.Tick() != 5 {
		t.Errorf("expected tick 5, got %d", g.Tick())
	}
}

func TestStepZeroDTKeepsPositions(t *testing.T) {
	tests := []struct {
		name string
		dt   float32
	}{
		{"zero", 0},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, testConfig(t), Options{})
			before := positions(g)
			g.Step(tt.dt)
			after := positions(g)
			for id, p := range before {
				if after[id] != p {
					t.Errorf("fish %d moved with dt=%v: %v -> %v", id, tt.dt, p, after[id])
				}
			}
		})
	}
}

func TestStepMovesFish(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})
	before := positions(g)
	g.Step(1.0 / 60)

	moved := 0
	for id, p := range positions(g) {
		if p != before[id] {
			moved++
		}
	}
	if moved == 0 {
		t.Error("expected fish to move after a positive step")
	}
}

func TestSingleWorkerIsDeterministic(t *testing.T) {
	run := func() map[uint32]mgl32.Vec3 {
		cfg := testConfig(t, func(c *config.Config) { c.Simulation.Workers = 1 })
		g := newTestGame(t, cfg, Options{Seed: 99})
		for i := 0; i < 20; i++ {
			g.Step(1.0 / 60)
		}
		return positions(g)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("population differs: %d vs %d", len(a), len(b))
	}
	for id, p := range a {
		if b[id] != p {
			t.Errorf("fish %d diverged: %v vs %v", id, p, b[id])
		}
	}
}

func TestDespawn(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	if !g.Despawn(3) {
		t.Fatal("expected despawn of fish 3 to succeed")
	}
	if _, ok := g.Fish(3); ok {
		t.Error("fish 3 still visible after despawn")
	}
	if g.Despawn(3) {
		t.Error("second despawn should report false")
	}
	if g.Despawn(12345) {
		t.Error("despawn of unknown id should report false")
	}
	if g.FishCount() != 39 {
		t.Errorf("expected 39 fish, got %d", g.FishCount())
	}

	// The school keeps stepping after removal.
	g.Step(1.0 / 60)

	g.DespawnAll()
	if g.FishCount() != 0 {
		t.Errorf("expected empty school, got %d", g.FishCount())
	}
	g.Step(1.0 / 60)
}

func TestSpawnFishAssignsNewIDs(t *testing.T) {
	g := newTestGame(t, testConfig(t, noFish), Options{})

	a := g.SpawnFish(mgl32.Vec3{0, -5, 0}, 0)
	b := g.SpawnFish(mgl32.Vec3{1, -5, 0}, 0)
	if a == b {
		t.Fatalf("expected distinct IDs, got %d twice", a)
	}
	g.Spawn(3)
	if g.FishCount() != 5 {
		t.Errorf("expected 5 fish, got %d", g.FishCount())
	}

	f, ok := g.Fish(a)
	if !ok {
		t.Fatal("spawned fish not found")
	}
	if f.Vel.X() <= 0 || f.Vel.Y() != 0 || f.Vel.Z() != 0 {
		t.Errorf("heading 0 should swim along +x, got %v", f.Vel)
	}
	if f.Active <= 0 {
		t.Errorf("expected positive active speed, got %f", f.Active)
	}
}

func TestContainmentPullsStrayBack(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		wantNeg bool
	}{
		{"disabled", false, false},
		{"enabled", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, noFish, func(c *config.Config) {
				c.Containment.Enabled = tt.enabled
				c.Containment.Radius = 150
			})
			g := newTestGame(t, cfg, Options{})
			id := g.SpawnFish(mgl32.Vec3{500, -10, 0}, 0)

			g.Step(1.0 / 60)

			f, ok := g.Fish(id)
			if !ok {
				t.Fatal("fish missing")
			}
			if got := f.Vel.X() < 0; got != tt.wantNeg {
				t.Errorf("velocity %v: expected inward x=%v", f.Vel, tt.wantNeg)
			}
		})
	}
}

type recordingSink struct {
	mu     sync.Mutex
	ticks  []int32
	counts []int
}

func (s *recordingSink) Publish(f stream.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks = append(s.ticks, f.Tick)
	s.counts = append(s.counts, len(f.Fish))
}

func TestFrameSinkEveryTicks(t *testing.T) {
	sink := &recordingSink{}
	g := newTestGame(t, testConfig(t, func(c *config.Config) { c.Stream.EveryTicks = 2 }), Options{Sink: sink})

	for i := 0; i < 6; i++ {
		g.Step(1.0 / 60)
	}

	want := []int32{2, 4, 6}
	if len(sink.ticks) != len(want) {
		t.Fatalf("expected %d frames, got %v", len(want), sink.ticks)
	}
	for i, tick := range want {
		if sink.ticks[i] != tick {
			t.Errorf("frame %d: expected tick %d, got %d", i, tick, sink.ticks[i])
		}
		if sink.counts[i] != 40 {
			t.Errorf("frame %d: expected 40 fish, got %d", i, sink.counts[i])
		}
	}
}

func TestStatsCallback(t *testing.T) {
	var got []telemetry.WindowStats
	cfg := testConfig(t, func(c *config.Config) { c.Simulation.DT = 0.125 })
	g := newTestGame(t, cfg, Options{
		StatsWindowSec: 0.5,
		StatsCallback: func(s telemetry.WindowStats) {
			got = append(got, s)
		},
	})

	// 4 ticks per window
	for i := 0; i < 9; i++ {
		g.UpdateHeadless()
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(got))
	}
	if got[0].FishCount != 40 {
		t.Errorf("expected 40 fish in window, got %d", got[0].FishCount)
	}
	if got[0].Polarization < 0 || got[0].Polarization > 1 {
		t.Errorf("polarization out of range: %f", got[0].Polarization)
	}
	if g.LastStats().WindowEndTick != got[1].WindowEndTick {
		t.Error("LastStats should match the latest window")
	}
}

func TestUpdateRespectsPause(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{StepsPerUpdate: 3})

	g.SetPaused(true)
	g.Update(1.0 / 60)
	if g.Tick() != 0 {
		t.Errorf("paused update advanced to tick %d", g.Tick())
	}

	g.SetPaused(false)
	g.Update(1.0 / 60)
	if g.Tick() != 3 {
		t.Errorf("expected 3 ticks per update, got %d", g.Tick())
	}
}

func TestSetStepsPerUpdateClamps(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	tests := []struct {
		in, want int
	}{
		{0, 1},
		{4, 4},
		{50, 10},
	}
	for _, tt := range tests {
		g.SetStepsPerUpdate(tt.in)
		if got := g.StepsPerUpdate(); got != tt.want {
			t.Errorf("SetStepsPerUpdate(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPassTimingsRecorded(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})
	for i := 0; i < 3; i++ {
		g.Step(1.0 / 60)
	}

	stats := g.PerfStats()
	for _, id := range g.Passes().IDs() {
		if id == "containment" {
			continue
		}
		if _, ok := stats.PassAvg[id]; !ok {
			t.Errorf("no timing recorded for pass %q", id)
		}
	}
}

func TestFishComponentsAndCentroid(t *testing.T) {
	g := newTestGame(t, testConfig(t, noFish), Options{})

	if c := g.Centroid(); c != (mgl32.Vec3{}) {
		t.Errorf("empty school centroid should be origin, got %v", c)
	}

	a := g.SpawnFish(mgl32.Vec3{2, -4, 0}, 0)
	g.SpawnFish(mgl32.Vec3{-2, -6, 4}, 0)
	if c := g.Centroid(); c != (mgl32.Vec3{0, -5, 2}) {
		t.Errorf("expected centroid (0,-5,2), got %v", c)
	}

	speed, wander, flock, ok := g.FishComponents(a)
	if !ok {
		t.Fatal("components missing")
	}
	fc := g.cfg.Fish
	if float64(speed.Base) < fc.BaseSpeed.Min || float64(speed.Base) > fc.BaseSpeed.Max {
		t.Errorf("base speed %f outside configured range", speed.Base)
	}
	if wander.SphereRadius <= 0 || flock.ViewDistance <= 0 {
		t.Errorf("expected positive attributes, got %+v %+v", wander, flock)
	}
	if _, _, _, ok := g.FishComponents(999); ok {
		t.Error("unknown fish should report false")
	}
}

func TestDespawnRandom(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	if got := g.DespawnRandom(0); got != 0 {
		t.Errorf("DespawnRandom(0) removed %d", got)
	}
	if got := g.DespawnRandom(15); got != 15 {
		t.Errorf("expected 15 removed, got %d", got)
	}
	if g.FishCount() != 25 {
		t.Errorf("expected 25 fish left, got %d", g.FishCount())
	}
	if got := g.DespawnRandom(100); got != 25 {
		t.Errorf("expected remaining 25 removed, got %d", got)
	}
	if g.FishCount() != 0 {
		t.Errorf("expected empty school, got %d", g.FishCount())
	}
}
