package game

import (
	"log/slog"

	"github.com/pthm-cable/shoal/stream"
	"github.com/pthm-cable/shoal/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.sampleSchool()

	cfg := g.config()
	band := telemetry.Band{Upper: cfg.Boundary.Upper, Lower: cfg.Boundary.Lower}
	stats := g.collector.Flush(g.tick, &g.flockSample, band)
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sampleSchool gathers the per-fish values the collector aggregates.
func (g *Game) sampleSchool() {
	g.flockSample.Reset()
	query := g.fishFilter.Query()
	for query.Next() {
		pos, vel, _, speed, _, _, _ := query.Get()
		g.flockSample.Add(pos.Vec, vel.Vec, speed.Active)
	}
}

// publishFrame sends the school to the frame sink every stream.every_ticks ticks.
func (g *Game) publishFrame() {
	if g.sink == nil || g.tick%int32(g.config().Stream.EveryTicks) != 0 {
		return
	}

	g.frame.Tick = g.tick
	g.frame.Fish = g.frame.Fish[:0]
	query := g.fishFilter.Query()
	for query.Next() {
		pos, vel, _, _, _, _, fish := query.Get()
		g.frame.Fish = append(g.frame.Fish, stream.FishState{
			ID: fish.ID,
			P:  pos.Vec,
			V:  vel.Vec,
		})
	}
	g.sink.Publish(g.frame)
}
