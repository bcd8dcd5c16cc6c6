package systems

// Integrate advances every agent in batch by its velocity. It runs unconditionally;
// a zero dt leaves positions unchanged.
func Integrate(batch []Agent, dt float32) {
	for i := range batch {
		a := &batch[i]
		a.Pos = a.Pos.Add(a.Vel.Mul(dt))
	}
}
