// Package game owns the fish world and drives the per-tick steering graph.
package game

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shoal/components"
	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/jobs"
	"github.com/pthm-cable/shoal/stream"
	"github.com/pthm-cable/shoal/systems"
	"github.com/pthm-cable/shoal/telemetry"
)

// FrameSink receives a frame of the school every few ticks.
type FrameSink interface {
	Publish(f stream.Frame)
}

// Options configures a new game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64          // 0 = config seed, then time-based
	LogStats       bool
	StatsWindowSec float64 // 0 = config telemetry.stats_window
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Sink           FrameSink
	StatsCallback  func(telemetry.WindowStats)
}

// FishState is a read-only view of one fish.
type FishState struct {
	ID     uint32
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Rot    mgl32.Quat
	Active float32
}

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	// Entity mapper and filter over all fish components
	fishMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.MoveSpeed,
		components.Wander,
		components.Flocking,
		components.Fish,
	]
	fishFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.MoveSpeed,
		components.Wander,
		components.Flocking,
		components.Fish,
	]

	// Individual component mappers for write-back
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	rotMap    *ecs.Map1[components.Rotation]
	speedMap  *ecs.Map1[components.MoveSpeed]
	wanderMap *ecs.Map1[components.Wander]
	fishMap   *ecs.Map1[components.Fish]

	// Lookup by fish ID
	entities map[uint32]ecs.Entity

	// Parallel steering
	scheduler *jobs.Scheduler
	randoms   *systems.RandomPool
	passes    *systems.PassRegistry
	parallel  *parallelState

	// State
	tick           int32
	paused         bool
	nextID         uint32
	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	flockSample      telemetry.FlockSample
	lastStats        telemetry.WindowStats
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// Observer stream
	sink  FrameSink
	frame stream.Frame
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game and spawns the initial school.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	world := ecs.NewWorld()
	scheduler := jobs.NewScheduler(cfg.Derived.Workers)

	g := &Game{
		cfg:     cfg,
		world:   world,
		rng:     rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		rngSeed: seed,
		fishMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.MoveSpeed,
			components.Wander,
			components.Flocking,
			components.Fish,
		](world),
		fishFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.MoveSpeed,
			components.Wander,
			components.Flocking,
			components.Fish,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		rotMap:    ecs.NewMap1[components.Rotation](world),
		speedMap:  ecs.NewMap1[components.MoveSpeed](world),
		wanderMap: ecs.NewMap1[components.Wander](world),
		fishMap:   ecs.NewMap1[components.Fish](world),
		entities:  make(map[uint32]ecs.Entity),

		scheduler: scheduler,
		randoms:   systems.NewRandomPool(scheduler.Workers(), uint64(seed)),
		passes:    systems.NewPassRegistry(),
		parallel:  newParallelState(),

		stepsPerUpdate: stepsPerUpdate,

		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		sink:             opts.Sink,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	scheduler.Start()
	g.spawnInitialPopulation()

	slog.Info("game created",
		"seed", seed,
		"fish", len(g.entities),
		"workers", scheduler.Workers(),
		"headless", opts.Headless,
	)

	return g
}

// config returns the game's configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// Step advances the simulation by one tick of dt seconds. Negative dt is treated as 0.
func (g *Game) Step(dt float32) {
	if dt < 0 {
		dt = 0
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	n := g.snapshot()

	g.perfCollector.StartPhase(telemetry.PhaseSteering)
	if n > 0 {
		g.runSteering(dt)
	}

	g.perfCollector.StartPhase(telemetry.PhaseApply)
	g.applyAgents()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseStream)
	g.publishFrame()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Update runs StepsPerUpdate ticks of frameDT each unless paused.
func (g *Game) Update(frameDT float32) {
	g.perfCollector.RecordFrame()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(frameDT)
	}
}

// UpdateHeadless runs StepsPerUpdate ticks of the configured fixed dt.
func (g *Game) UpdateHeadless() {
	dt := g.config().Derived.DT32
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(dt)
	}
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// FishCount returns the number of live fish.
func (g *Game) FishCount() int {
	return len(g.entities)
}

// Paused reports whether Update is currently skipping ticks.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes Update.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns the number of ticks run per Update call.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the number of ticks per Update call, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 10))
}

// Fish returns the state of the fish with the given ID.
func (g *Game) Fish(id uint32) (FishState, bool) {
	e, ok := g.entities[id]
	if !ok || !g.world.Alive(e) {
		return FishState{}, false
	}
	return FishState{
		ID:     id,
		Pos:    g.posMap.Get(e).Vec,
		Vel:    g.velMap.Get(e).Vec,
		Rot:    g.rotMap.Get(e).Quat,
		Active: g.speedMap.Get(e).Active,
	}, true
}

// FishComponents returns the steering attributes of the fish with the given ID.
func (g *Game) FishComponents(id uint32) (components.MoveSpeed, components.Wander, components.Flocking, bool) {
	e, ok := g.entities[id]
	if !ok || !g.world.Alive(e) {
		return components.MoveSpeed{}, components.Wander{}, components.Flocking{}, false
	}
	_, _, _, speed, wander, flock, _ := g.fishMapper.Get(e)
	return *speed, *wander, *flock, true
}

// Centroid returns the mean fish position, or the origin for an empty school.
func (g *Game) Centroid() mgl32.Vec3 {
	var sum mgl32.Vec3
	n := 0
	query := g.fishFilter.Query()
	for query.Next() {
		pos, _, _, _, _, _, _ := query.Get()
		sum = sum.Add(pos.Vec)
		n++
	}
	if n == 0 {
		return mgl32.Vec3{}
	}
	return sum.Mul(1 / float32(n))
}

// EachFish calls fn for every live fish.
func (g *Game) EachFish(fn func(FishState)) {
	query := g.fishFilter.Query()
	for query.Next() {
		pos, vel, rot, speed, _, _, fish := query.Get()
		fn(FishState{
			ID:     fish.ID,
			Pos:    pos.Vec,
			Vel:    vel.Vec,
			Rot:    rot.Quat,
			Active: speed.Active,
		})
	}
}

// Passes returns the steering pass registry.
func (g *Game) Passes() *systems.PassRegistry {
	return g.passes
}

// PerfStats returns the rolling performance statistics.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Unload stops the workers and closes output files.
func (g *Game) Unload() {
	g.scheduler.Stop()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
