package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shoal/config"
	"github.com/pthm-cable/shoal/game"
	"github.com/pthm-cable/shoal/stream"
	"github.com/pthm-cable/shoal/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	streamAddr := flag.String("stream-addr", "", "Serve school frames over websocket on this address (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Config:         cfg,
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	addr := cfg.Stream.Addr
	if *streamAddr != "" {
		addr = *streamAddr
	}

	var hub *stream.Hub
	if addr != "" {
		hub = stream.NewHub()
		srv := stream.NewServer(addr, hub)
		if err := srv.Start(); err != nil {
			slog.Error("failed to start stream server", "addr", addr, "error", err)
			os.Exit(1)
		}
		slog.Info("streaming school frames", "addr", srv.Addr(), "every_ticks", cfg.Stream.EveryTicks)
		opts.Sink = hub
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("stream server shutdown", "error", err)
			}
		}()
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Shoal")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	var counter viewer.ViewerCounter
	if hub != nil {
		counter = hub
	}
	v := viewer.New(g, cfg, counter)
	defer v.Unload()

	v.Run(*maxTicks)
}

// runHeadless steps the school as fast as possible, without raylib.
func runHeadless(opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"fish", g.FishCount(),
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	start := time.Now()
	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "elapsed", time.Since(start).String())
			return
		}
	}
}
