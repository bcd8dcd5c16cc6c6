package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/game"
	"github.com/pthm-cable/shoal/telemetry"
)

// Fitness weights.
const (
	crowdingWeight = 0.5
	warmupWindows  = 2 // skip first N windows while the school forms
)

// EvalResult summarizes one parameter evaluation across all seeds.
type EvalResult struct {
	Fitness      float64
	Polarization float64
	Crowding     float64
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu   sync.Mutex
	last EvalResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// Last returns the breakdown of the most recent evaluation.
func (fe *FitnessEvaluator) Last() EvalResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]EvalResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runSimulation(cfg, s)
			results[idx] = score(windows, cfg)
		}(i, seed)
	}
	wg.Wait()

	var avg EvalResult
	for _, r := range results {
		avg.Fitness += r.Fitness
		avg.Polarization += r.Polarization
		avg.Crowding += r.Crowding
	}
	n := float64(len(results))
	avg.Fitness /= n
	avg.Polarization /= n
	avg.Crowding /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return avg.Fitness
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.WindowStats {
	var windows []telemetry.WindowStats

	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// score turns a run's windows into a fitness value.
// Fitness = -polarization + crowdingWeight × crowding, where crowding is the
// mean shortfall of nearest-neighbour distance below the configured minimum distance.
func score(windows []telemetry.WindowStats, cfg *config.Config) EvalResult {
	if len(windows) <= warmupWindows {
		return EvalResult{Fitness: 0}
	}
	valid := windows[warmupWindows:]

	minDist := centre(cfg.Fish.MinDistance)
	pol := make([]float64, 0, len(valid))
	crowd := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.FishCount < 2 {
			continue
		}
		pol = append(pol, w.Polarization)
		shortfall := 0.0
		if minDist > 0 {
			shortfall = math.Max(0, minDist-w.NearestMean) / minDist
		}
		crowd = append(crowd, shortfall)
	}
	if len(pol) == 0 {
		return EvalResult{Fitness: 0}
	}

	r := EvalResult{
		Polarization: stat.Mean(pol, nil),
		Crowding:     stat.Mean(crowd, nil),
	}
	r.Fitness = -r.Polarization + crowdingWeight*r.Crowding
	return r
}
