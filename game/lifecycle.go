package game

import (
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Spawn adds n fish at random spawn points.
func (g *Game) Spawn(n int) {
	for i := 0; i < n; i++ {
		pos, heading := g.randomPlacement()
		g.spawnFish(pos, heading)
	}
	if n > 0 {
		g.collector.RecordSpawn(n)
	}
}

// SpawnFish adds one fish at pos heading horizontally along heading radians
// and returns its ID.
func (g *Game) SpawnFish(pos mgl32.Vec3, heading float32) uint32 {
	id, _ := g.spawnFish(pos, heading)
	g.collector.RecordSpawn(1)
	return id
}

// Despawn removes the fish with the given ID. It must not be called during Step.
func (g *Game) Despawn(id uint32) bool {
	e, ok := g.entities[id]
	if !ok {
		return false
	}
	delete(g.entities, id)

	if !g.world.Alive(e) {
		slog.Warn("despawn of stale entity", "id", id)
		return false
	}
	g.world.RemoveEntity(e)
	g.collector.RecordDespawn()
	return true
}

// DespawnAll removes every fish.
func (g *Game) DespawnAll() {
	for id := range g.entities {
		g.Despawn(id)
	}
}

// DespawnRandom removes up to n randomly chosen fish and returns how many were removed.
func (g *Game) DespawnRandom(n int) int {
	if n <= 0 || len(g.entities) == 0 {
		return 0
	}
	ids := make([]uint32, 0, len(g.entities))
	for id := range g.entities {
		ids = append(ids, id)
	}
	// Sorted so the draw depends only on the game seed
	slices.Sort(ids)
	g.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	removed := 0
	for _, id := range ids[:min(n, len(ids))] {
		if g.Despawn(id) {
			removed++
		}
	}
	return removed
}
