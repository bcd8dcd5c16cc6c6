package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shoal/components"
	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/systems"
)

// spawnInitialPopulation creates the starting school.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.config().Population.Initial; i++ {
		pos, heading := g.randomPlacement()
		g.spawnFish(pos, heading)
	}
}

// randomPlacement picks a spawn point uniformly over the spawn disc and depth
// range, and a random horizontal heading.
func (g *Game) randomPlacement() (mgl32.Vec3, float32) {
	pop := &g.config().Population

	r := pop.SpawnRadius * math.Sqrt(g.rng.Float64())
	theta := g.rng.Float64() * 2 * math.Pi
	y := pop.SpawnDepthMin + (pop.SpawnDepthMax-pop.SpawnDepthMin)*g.rng.Float64()

	pos := mgl32.Vec3{
		float32(r * math.Cos(theta)),
		float32(y),
		float32(r * math.Sin(theta)),
	}
	heading := g.rng.Float32() * 2 * math.Pi
	return pos, heading
}

// sample draws uniformly from r.
func (g *Game) sample(r config.Range) float32 {
	return float32(r.Min + (r.Max-r.Min)*g.rng.Float64())
}

// spawnFish creates a fish at pos swimming horizontally along heading at its base speed.
func (g *Game) spawnFish(pos mgl32.Vec3, heading float32) (uint32, ecs.Entity) {
	cfg := g.config()
	fc := &cfg.Fish
	viewAngle := cfg.ViewAngleRadians()

	id := g.nextID
	g.nextID++

	speed := components.MoveSpeed{
		Base:        g.sample(fc.BaseSpeed),
		MaxDecrease: g.sample(fc.SpeedMaxDecrease),
		MaxIncrease: g.sample(fc.SpeedMaxIncrease),
	}
	speed.Active = speed.Base

	wander := components.Wander{
		HorizontalAngle:    g.rng.Float32() * 2 * math.Pi,
		VerticalAngle:      g.rng.Float32() * 2 * math.Pi,
		HorizontalMaxDelta: g.sample(fc.WanderHorizontalMaxDelta),
		VerticalMaxDelta:   g.sample(fc.WanderVerticalMaxDelta),
		SphereDistance:     g.sample(fc.WanderSphereDistance),
		SphereRadius:       g.sample(fc.WanderSphereRadius),
	}

	flock := components.Flocking{
		ViewAngle:    g.sample(viewAngle),
		ViewDistance: g.sample(fc.ViewDistance),
		MinDistance:  g.sample(fc.MinDistance),
	}

	dir := mgl32.Vec3{
		float32(math.Cos(float64(heading))),
		0,
		float32(math.Sin(float64(heading))),
	}
	p := components.Position{Vec: pos}
	vel := components.Velocity{Vec: dir.Mul(speed.Base)}
	rot := components.Rotation{Quat: mgl32.QuatIdent()}
	if q, ok := systems.LookRotation(vel.Vec, systems.WorldUp); ok {
		rot.Quat = q
	}
	fish := components.Fish{ID: id}

	entity := g.fishMapper.NewEntity(&p, &vel, &rot, &speed, &wander, &flock, &fish)
	g.entities[id] = entity

	return id, entity
}
