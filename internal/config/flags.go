package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagScenario    = flag.String("scenario", "", "Path to scenario file")
	flagFPS         = flag.Int("fps", 0, "Simulation frames per second")
	flagFrames      = flag.Int("frames", 0, "Maximum simulated frames")
	flagWatch       = flag.Bool("watch", false, "Re-run the scenario when its file changes")
	flagNoDiagonals = flag.Bool("no-diagonals", false, "Disallow diagonal moves for every agent")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScenario != "" {
		cfg.Simulation.Scenario = *flagScenario
	}
	if *flagFPS > 0 {
		cfg.Simulation.FPS = *flagFPS
	}
	if *flagFrames > 0 {
		cfg.Simulation.MaxFrames = *flagFrames
	}
	if *flagWatch {
		cfg.Simulation.Watch = true
	}
	if *flagNoDiagonals {
		cfg.Pathfinding.AllowDiagonals = false
	}
}
