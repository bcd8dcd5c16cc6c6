package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/telemetry"
)

func windowsOf(n int, pol, nearest float64) []telemetry.WindowStats {
	ws := make([]telemetry.WindowStats, n)
	for i := range ws {
		ws[i] = telemetry.WindowStats{FishCount: 10, Polarization: pol, NearestMean: nearest}
	}
	return ws
}

func TestScore(t *testing.T) {
	cfg := &config.Config{}
	cfg.Fish.MinDistance = config.Range{Min: 1, Max: 1}

	tests := []struct {
		name         string
		windows      []telemetry.WindowStats
		wantFitness  float64
		wantCrowding float64
	}{
		{"too few windows", windowsOf(warmupWindows, 0.9, 2), 0, 0},
		{"aligned and spaced", windowsOf(5, 0.8, 2), -0.8, 0},
		{"aligned but crowded", windowsOf(5, 0.8, 0.5), -0.8 + crowdingWeight*0.5, 0.5},
		{"empty school", windowsOf(5, 0, 0)[:0], 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := score(tt.windows, cfg)
			if math.Abs(r.Fitness-tt.wantFitness) > 1e-9 {
				t.Errorf("fitness: got %f, want %f", r.Fitness, tt.wantFitness)
			}
			if math.Abs(r.Crowding-tt.wantCrowding) > 1e-9 {
				t.Errorf("crowding: got %f, want %f", r.Crowding, tt.wantCrowding)
			}
		})
	}
}

func TestScoreSkipsLoneFish(t *testing.T) {
	cfg := &config.Config{}
	cfg.Fish.MinDistance = config.Range{Min: 1, Max: 1}

	ws := windowsOf(5, 0.5, 2)
	ws[3].FishCount = 1
	ws[3].Polarization = 1

	r := score(ws, cfg)
	if math.Abs(r.Polarization-0.5) > 1e-9 {
		t.Errorf("polarization: got %f, want 0.5", r.Polarization)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{59, "0m59s"},
		{125, "2m05s"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		d := formatDuration(time.Duration(tt.secs) * time.Second)
		if d != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.secs, d, tt.want)
		}
	}
}
