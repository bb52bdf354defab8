package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sonsonmagro/Sonsons-Player-Manager/config"
	"github.com/sonsonmagro/Sonsons-Player-Manager/manager"
	"github.com/sonsonmagro/Sonsons-Player-Manager/sim"
	"github.com/sonsonmagro/Sonsons-Player-Manager/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 1000, "Stop after N ticks")
	seed := flag.Int64("seed", 0, "RNG seed for the scripted world (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs")
	trackEvery := flag.Int("track-every", 100, "Log the tracking table every N ticks (0 = never)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	world := sim.NewWorld(rngSeed, cfg.Derived.TickDuration)
	mgr := manager.New(cfg, world, world,
		manager.WithLocator(cfg.Locator()),
		manager.WithOutput(output),
	)

	slog.Info("starting scripted run",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"tick_millis", cfg.Manager.TickMillis,
	)

	for tick := 0; tick < *maxTicks; tick++ {
		world.Step()
		mgr.Tick()

		if *trackEvery > 0 && tick%*trackEvery == 0 {
			os.Stderr.WriteString(mgr.TrackingTable())
		}

		if world.Health().Current == 0 {
			slog.Error("player died", "tick", world.Tick())
			os.Exit(1)
		}
	}

	slog.Info("run complete",
		"tick", world.Tick(),
		"health", world.Health().Current,
		"prayer", world.Prayer().Current,
	)
}
