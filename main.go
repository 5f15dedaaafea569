package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/plantgrow/config"
	"github.com/pthm-cable/plantgrow/export"
	"github.com/pthm-cable/plantgrow/growth"
	"github.com/pthm-cable/plantgrow/logging"
	"github.com/pthm-cable/plantgrow/telemetry"
)

type options struct {
	configPath string
	seed       int64
	cycles     int
	outputDir  string
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config)")
	cycles := flag.Int("cycles", -1, "Resource/prune cycles (-1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory (empty = use config)")
	logFormat := flag.String("log-format", "json", "Log format: json or text")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also write text logs to this file")

	flag.Parse()

	logger, err := logging.New(logging.Options{Format: *logFormat, Level: *logLevel, File: *logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger.Logger)

	opts := options{
		configPath: *configPath,
		seed:       *seed,
		cycles:     *cycles,
		outputDir:  *outputDir,
	}
	os.Exit(execute(opts, logger))
}

// execute runs the simulation and closes the logger, returning the exit code.
func execute(opts options, logger *logging.Logger) int {
	defer logger.Close()
	if err := run(opts, logger.Logger); err != nil {
		logger.Error("run failed", "error", err)
		return 1
	}
	return 0
}

func run(opts options, logger *slog.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.seed != 0 {
		cfg.Growth.RandomSeed = opts.seed
	}
	if opts.cycles >= 0 {
		cfg.Growth.Cycles = opts.cycles
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	sim := growth.New(cfg, logger)
	sim.Generate()

	for i := 0; i < cfg.Growth.Cycles; i++ {
		stats := sim.Step()
		if err := om.WriteCycle(stats); err != nil {
			return err
		}
		if err := om.WritePerf(sim.Perf().Stats(), stats.Cycle); err != nil {
			return err
		}
	}
	logger.Info("perf", "stats", sim.Perf().Stats())

	if om == nil {
		return nil
	}
	t := sim.Tree()
	if cfg.Output.USD {
		if err := export.ExportUSDA(om.Path("tree.usda"), t); err != nil {
			return err
		}
	}
	if cfg.Output.CSV {
		if err := export.ExportCSV(om.Path("branches.csv"), t); err != nil {
			return err
		}
	}
	if cfg.Output.Text {
		if err := export.ExportText(om.Path("tree.txt"), t); err != nil {
			return err
		}
	}
	path, err := telemetry.SaveSnapshot(telemetry.NewSnapshot(t, cfg.Species, cfg.Growth.RandomSeed), om.Dir())
	if err != nil {
		return err
	}

	logger.Info("wrote output",
		"dir", om.Dir(),
		"branches", t.Len(),
		"cycles", sim.Cycle(),
		"snapshot", path,
	)
	return nil
}
