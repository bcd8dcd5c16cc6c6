package telemetry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat"
)

// nearestSample bounds the all-pairs nearest neighbour scan at flush.
const nearestSample = 64

// FlockSample is the per-fish state gathered at window end.
type FlockSample struct {
	Positions    []mgl32.Vec3
	Velocities   []mgl32.Vec3
	ActiveSpeeds []float64
}

// Reset empties the sample keeping capacity.
func (s *FlockSample) Reset() {
	s.Positions = s.Positions[:0]
	s.Velocities = s.Velocities[:0]
	s.ActiveSpeeds = s.ActiveSpeeds[:0]
}

// Add appends one fish.
func (s *FlockSample) Add(pos, vel mgl32.Vec3, active float32) {
	s.Positions = append(s.Positions, pos)
	s.Velocities = append(s.Velocities, vel)
	s.ActiveSpeeds = append(s.ActiveSpeeds, float64(active))
}

// Band is the vertical operating band used to count out-of-band fish.
type Band struct {
	Upper, Lower float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawned   int
	despawned int

	// scratch
	speeds []float64
	depths []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = int32(math.Round(windowDurationSec / float64(dt)))
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records n spawned fish.
func (c *Collector) RecordSpawn(n int) {
	c.spawned += n
}

// RecordDespawn records a removed fish.
func (c *Collector) RecordDespawn() {
	c.despawned++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample *FlockSample, band Band) WindowStats {
	c.speeds = c.speeds[:0]
	c.depths = c.depths[:0]
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		FishCount:       len(sample.Positions),
		Spawned:         c.spawned,
		Despawned:       c.despawned,
	}

	for i, v := range sample.Velocities {
		speed := float64(v.Len())
		if speed == 0 {
			stats.Stalled++
		}
		c.speeds = append(c.speeds, speed)

		y := float64(sample.Positions[i].Y())
		c.depths = append(c.depths, y)
		switch {
		case y > band.Upper:
			stats.AboveBand++
		case y < band.Lower:
			stats.BelowBand++
		}
	}

	stats.SpeedMean, stats.SpeedStd, stats.SpeedP10, stats.SpeedP50, stats.SpeedP90 = ComputeSpeedStats(c.speeds)
	if len(sample.ActiveSpeeds) > 0 {
		stats.ActiveSpeedMean = stat.Mean(sample.ActiveSpeeds, nil)
	}
	stats.Polarization = Polarization(sample.Velocities)
	stats.DepthMean, stats.DepthMin, stats.DepthMax = depthStats(c.depths)
	stats.NearestMean = MeanNearestDistance(sample.Positions, nearestSample)
	stats.Spread = HorizontalSpread(sample.Positions)

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.despawned = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
