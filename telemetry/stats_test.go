package telemetry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeSpeedStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(std-2) > 1e-9 {
		t.Errorf("std = %v, want 2", std)
	}
	if p10 > p50 || p50 > p90 {
		t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
	}
	if math.Abs(p50-4.5) > 1e-9 {
		t.Errorf("p50 = %v, want 4.5", p50)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeSpeedStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestPolarization(t *testing.T) {
	tests := []struct {
		name string
		vels []mgl32.Vec3
		want float64
	}{
		{"none", nil, 0},
		{"all stalled", []mgl32.Vec3{{}, {}}, 0},
		{"parallel", []mgl32.Vec3{{1, 0, 0}, {3, 0, 0}, {0.5, 0, 0}}, 1},
		{"opposed", []mgl32.Vec3{{1, 0, 0}, {-2, 0, 0}}, 0},
		{"stalled ignored", []mgl32.Vec3{{0, 0, 1}, {}, {0, 0, 4}}, 1},
		{"right angle", []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}}, math.Sqrt2 / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polarization(tt.vels)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Polarization = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeanNearestDistance(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {5, 0, 0}}
	// nearest: 1, 1, 4
	got := MeanNearestDistance(positions, 0)
	if math.Abs(got-2) > 1e-6 {
		t.Errorf("MeanNearestDistance = %v, want 2", got)
	}

	if MeanNearestDistance(positions[:1], 10) != 0 {
		t.Error("single fish should yield 0")
	}
}

func TestHorizontalSpread(t *testing.T) {
	// Depth does not count, x and z do.
	positions := []mgl32.Vec3{{-3, -1, 0}, {3, -10, 0}, {0, -5, 4}, {0, -2, -4}}
	got := HorizontalSpread(positions)
	want := math.Sqrt(4.5 + 8)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("HorizontalSpread = %v, want %v", got, want)
	}
}
