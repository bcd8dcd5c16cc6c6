// Package main searches for perception parameters that keep the school polarized
// without crowding, using Nelder-Mead over headless runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/shoal/config"
)

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	Polarization float64 `csv:"polarization"`
	Crowding     float64 `csv:"crowding"`
	ViewDistance float64 `csv:"view_distance"`
	ViewAngleDeg float64 `csv:"view_angle_deg"`
	MinDistance  float64 `csv:"min_distance"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 3000, "Simulation duration per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	// Runs for different seeds execute concurrently; give each a single worker.
	baseCfg.Simulation.Workers = 1
	if err := baseCfg.Refresh(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, baseCfg)
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			last := evaluator.Last()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			rec := []evalRecord{{
				Eval:         evalCount,
				Fitness:      fitness,
				Polarization: last.Polarization,
				Crowding:     last.Crowding,
				ViewDistance: clamped[0],
				ViewAngleDeg: clamped[1],
				MinDistance:  clamped[2],
			}}
			write := gocsv.MarshalWithoutHeaders
			if evalCount == 1 {
				write = gocsv.Marshal
			}
			if err := write(rec, logFile); err != nil {
				log.Printf("failed to write eval row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(*maxEvals-evalCount, 0)) * avgPerEval
			fmt.Printf("Eval %d/%d: polarization=%.3f crowding=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, last.Polarization, last.Crowding, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}
	method := &optimize.NelderMead{
		SimplexSize: 0.2,
	}

	fmt.Printf("Starting Nelder-Mead with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
