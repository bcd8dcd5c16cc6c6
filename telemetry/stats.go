// Package telemetry provides school statistics, bookmarks, perf tracking and CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	FishCount int `csv:"fish"`
	Stalled   int `csv:"stalled"` // fish with zero velocity

	// Events during window
	Spawned   int `csv:"spawned"`
	Despawned int `csv:"despawned"`

	// Speed distribution (sampled at window end)
	SpeedMean       float64 `csv:"speed_mean"`
	SpeedStd        float64 `csv:"speed_std"`
	SpeedP10        float64 `csv:"speed_p10"`
	SpeedP50        float64 `csv:"speed_p50"`
	SpeedP90        float64 `csv:"speed_p90"`
	ActiveSpeedMean float64 `csv:"active_speed_mean"`

	// Alignment of headings, 0 = random, 1 = all parallel
	Polarization float64 `csv:"polarization"`

	// Depth
	DepthMean float64 `csv:"depth_mean"`
	DepthMin  float64 `csv:"depth_min"`
	DepthMax  float64 `csv:"depth_max"`
	AboveBand int     `csv:"above_band"`
	BelowBand int     `csv:"below_band"`

	// Spacing (sampled)
	NearestMean float64 `csv:"nearest_mean"`
	Spread      float64 `csv:"spread"` // RMS horizontal distance from the school centroid
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, population std, and percentiles.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Polarization is the length of the mean unit heading. Fish without a
// heading are ignored; with none left the result is 0.
func Polarization(vels []mgl32.Vec3) float64 {
	var sum [3]float64
	n := 0
	for _, v := range vels {
		l := v.Len()
		if l == 0 {
			continue
		}
		sum[0] += float64(v[0] / l)
		sum[1] += float64(v[1] / l)
		sum[2] += float64(v[2] / l)
		n++
	}
	if n == 0 {
		return 0
	}
	return floats.Norm(sum[:], 2) / float64(n)
}

// MeanNearestDistance averages, over up to sample evenly strided fish, the
// distance to the nearest other fish. Fewer than two fish yields 0.
func MeanNearestDistance(positions []mgl32.Vec3, sample int) float64 {
	n := len(positions)
	if n < 2 {
		return 0
	}
	if sample <= 0 || sample > n {
		sample = n
	}
	stride := n / sample

	nearest := make([]float64, 0, sample)
	for k := 0; k < sample; k++ {
		i := k * stride
		best := math.Inf(1)
		for j := range positions {
			if j == i {
				continue
			}
			d := float64(positions[j].Sub(positions[i]).Len())
			if d < best {
				best = d
			}
		}
		nearest = append(nearest, best)
	}
	return stat.Mean(nearest, nil)
}

// HorizontalSpread is the RMS horizontal distance from the centroid.
func HorizontalSpread(positions []mgl32.Vec3) float64 {
	if len(positions) == 0 {
		return 0
	}
	xs := make([]float64, len(positions))
	zs := make([]float64, len(positions))
	for i, p := range positions {
		xs[i] = float64(p[0])
		zs[i] = float64(p[2])
	}
	_, vx := stat.PopMeanVariance(xs, nil)
	_, vz := stat.PopMeanVariance(zs, nil)
	return math.Sqrt(vx + vz)
}

// depthStats returns mean, min and max of depths.
func depthStats(depths []float64) (mean, lo, hi float64) {
	if len(depths) == 0 {
		return 0, 0, 0
	}
	return stat.Mean(depths, nil), floats.Min(depths), floats.Max(depths)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fish", s.FishCount),
		slog.Int("stalled", s.Stalled),
		slog.Int("spawned", s.Spawned),
		slog.Int("despawned", s.Despawned),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("active_speed_mean", s.ActiveSpeedMean),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("depth_mean", s.DepthMean),
		slog.Float64("depth_min", s.DepthMin),
		slog.Float64("depth_max", s.DepthMax),
		slog.Int("above_band", s.AboveBand),
		slog.Int("below_band", s.BelowBand),
		slog.Float64("nearest_mean", s.NearestMean),
		slog.Float64("spread", s.Spread),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"fish", s.FishCount,
		"stalled", s.Stalled,
		"spawned", s.Spawned,
		"despawned", s.Despawned,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p50", s.SpeedP50,
		"active_speed_mean", s.ActiveSpeedMean,
		"polarization", s.Polarization,
		"depth_mean", s.DepthMean,
		"depth_min", s.DepthMin,
		"depth_max", s.DepthMax,
		"above_band", s.AboveBand,
		"below_band", s.BelowBand,
		"nearest_mean", s.NearestMean,
		"spread", s.Spread,
	)
}
