package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shoal/jobs"
	"github.com/pthm-cable/shoal/systems"
)

// parallelState holds the per-tick working set shared by the steering jobs.
type parallelState struct {
	entities  []ecs.Entity
	agents    []systems.Agent
	neighbors []systems.Neighbor // rebuilt by each flocking pass's Prepare
	handles   []*jobs.Handle
}

func newParallelState() *parallelState {
	return &parallelState{
		entities:  make([]ecs.Entity, 0, 1024),
		agents:    make([]systems.Agent, 0, 1024),
		neighbors: make([]systems.Neighbor, 0, 1024),
		handles:   make([]*jobs.Handle, 0, 16),
	}
}

// snapshot copies every fish into the agent working set (single-threaded).
func (g *Game) snapshot() int {
	p := g.parallel
	p.entities = p.entities[:0]
	p.agents = p.agents[:0]

	query := g.fishFilter.Query()
	for query.Next() {
		pos, vel, rot, speed, wander, flock, _ := query.Get()
		p.entities = append(p.entities, query.Entity())
		p.agents = append(p.agents, systems.Agent{
			Pos:    pos.Vec,
			Vel:    vel.Vec,
			Rot:    rot.Quat,
			Speed:  *speed,
			Wander: *wander,
			Flock:  *flock,
		})
	}
	return len(p.agents)
}

// runSteering schedules the tick graph and waits for it.
// Order: fluctuate, wander angles, wander steering, cohesion, alignment,
// separation, regulate, boundary, containment, then orient and integrate together.
func (g *Game) runSteering(dt float32) {
	cfg := g.config()
	p := g.parallel
	agents := p.agents
	n := len(agents)
	minBatch := cfg.Derived.MinBatch
	p.handles = p.handles[:0]

	job := func(name string, run func(worker, start, end int)) jobs.Job {
		return jobs.Job{Name: name, N: n, MinBatch: minBatch, Run: run}
	}
	flockJob := func(name string, run func(worker, start, end int)) jobs.Job {
		j := job(name, run)
		j.Prepare = func() {
			p.neighbors = systems.CaptureNeighbors(p.neighbors, agents)
		}
		return j
	}
	schedule := func(j jobs.Job, deps ...*jobs.Handle) *jobs.Handle {
		h := g.scheduler.Schedule(j, deps...)
		p.handles = append(p.handles, h)
		return h
	}

	// Random passes use the stream of the worker running the batch.
	fluctuate := schedule(job(systems.PassFluctuate, func(w, s, e int) {
		rng := g.randoms.Stream(w)
		systems.FluctuateSpeeds(agents[s:e], &rng, dt)
		g.randoms.Store(w, rng)
	}))
	wanderH := schedule(job(systems.PassWanderH, func(w, s, e int) {
		rng := g.randoms.Stream(w)
		systems.UpdateWanderHorizontal(agents[s:e], &rng)
		g.randoms.Store(w, rng)
	}), fluctuate)
	wanderV := schedule(job(systems.PassWanderV, func(w, s, e int) {
		rng := g.randoms.Stream(w)
		systems.UpdateWanderVertical(agents[s:e], &rng)
		g.randoms.Store(w, rng)
	}), wanderH)

	steerH := schedule(job(systems.PassSteerH, func(_, s, e int) {
		systems.SteerWanderHorizontal(agents[s:e], dt)
	}), wanderV)
	steerV := schedule(job(systems.PassSteerV, func(_, s, e int) {
		systems.SteerWanderVertical(agents[s:e], dt)
	}), steerH)

	cohesion := schedule(flockJob(systems.PassCohesion, func(_, s, e int) {
		systems.Cohere(agents[s:e], s, p.neighbors, dt)
	}), steerV)
	alignment := schedule(flockJob(systems.PassAlignment, func(_, s, e int) {
		systems.Align(agents[s:e], s, p.neighbors, dt)
	}), cohesion)
	sep := systems.SeparationParams{
		Epsilon: float32(cfg.Flocking.SeparationEpsilon),
		Within:  cfg.Derived.SeparationWithin,
	}
	separation := schedule(flockJob(systems.PassSeparation, func(_, s, e int) {
		systems.Separate(agents[s:e], s, p.neighbors, sep, dt)
	}), alignment)

	tolerance := float32(cfg.Speed.RegulationTolerance)
	regulate := schedule(job(systems.PassRegulate, func(_, s, e int) {
		systems.RegulateSpeeds(agents[s:e], tolerance)
	}), separation)

	bounds := systems.BoundaryParams{
		Upper:       float32(cfg.Boundary.Upper),
		Lower:       float32(cfg.Boundary.Lower),
		UpperBias:   float32(cfg.Boundary.UpperBias),
		VerticalCap: float32(cfg.Boundary.VerticalCap),
	}
	last := schedule(job(systems.PassBoundary, func(_, s, e int) {
		systems.SteerWithinBoundsBatch(agents[s:e], bounds, dt)
	}), regulate)

	if cfg.Containment.Enabled {
		radius := float32(cfg.Containment.Radius)
		last = schedule(job(systems.PassContainment, func(_, s, e int) {
			systems.ContainHorizontallyBatch(agents[s:e], radius, dt)
		}), last)
	}

	// Orient writes rotation and integrate writes position; both only read velocity.
	orient := schedule(job(systems.PassOrient, func(_, s, e int) {
		systems.Orient(agents[s:e])
	}), last)
	integrate := schedule(job(systems.PassIntegrate, func(_, s, e int) {
		systems.Integrate(agents[s:e], dt)
	}), last)

	jobs.Combine(orient, integrate).Complete()

	for _, h := range p.handles {
		g.perfCollector.RecordPass(h.Name(), h.Elapsed())
	}
}

// applyAgents writes the working set back to ECS components (single-threaded).
func (g *Game) applyAgents() {
	p := g.parallel
	for i, e := range p.entities {
		a := &p.agents[i]

		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		rot := g.rotMap.Get(e)
		speed := g.speedMap.Get(e)
		wander := g.wanderMap.Get(e)
		if pos == nil || vel == nil || rot == nil || speed == nil || wander == nil {
			continue
		}

		pos.Vec = a.Pos
		vel.Vec = a.Vel
		rot.Quat = a.Rot
		speed.Active = a.Speed.Active
		wander.HorizontalAngle = a.Wander.HorizontalAngle
		wander.VerticalAngle = a.Wander.VerticalAngle
	}
}
