// Package growth drives generation and the resource/prune cycles of one tree.
package growth

import (
	"log/slog"

	"github.com/pthm-cable/plantgrow/config"
	"github.com/pthm-cable/plantgrow/lsystem"
	"github.com/pthm-cable/plantgrow/resources"
	"github.com/pthm-cable/plantgrow/telemetry"
	"github.com/pthm-cable/plantgrow/tree"
	"github.com/pthm-cable/plantgrow/tropism"
)

// Simulation owns one tree and the systems that grow and prune it.
type Simulation struct {
	cfg    *config.Config
	logger *slog.Logger

	resources *resources.System
	perf      *telemetry.PerfCollector

	tree         *tree.Tree
	instructions string
	cycle        int
}

// New creates a simulation from cfg. Nothing is generated until Generate or
// Step is called.
func New(cfg *config.Config, logger *slog.Logger) *Simulation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulation{
		cfg:       cfg,
		logger:    logger,
		resources: resources.New(cfg.ResourceParams()),
		perf:      telemetry.NewPerfCollector(16),
	}
}

// Generate rewrites the grammar and interprets it into a fresh tree. The
// same config always produces the same tree.
func (s *Simulation) Generate() *tree.Tree {
	s.perf.StartCycle()

	lsys := lsystem.New(s.cfg.LSystemParams())
	if s.cfg.Tropism.Enabled {
		lsys.SetTropism(tropism.New(s.cfg.TropismParams(), s.cfg.TropismEnvironment()))
	}

	s.perf.StartPhase(telemetry.PhaseRewrite)
	s.instructions = lsys.Generate()

	s.perf.StartPhase(telemetry.PhaseInterpret)
	s.tree = lsys.Interpret(s.instructions)
	s.perf.EndCycle()

	s.resources = resources.New(s.cfg.ResourceParams())
	s.cycle = 0

	s.logger.Info("generated tree",
		"species", s.cfg.Species,
		"seed", s.cfg.Growth.RandomSeed,
		"iterations", s.cfg.LSystem.Iterations,
		"symbols", len(s.instructions),
		"branches", s.tree.Len(),
		"tropism", s.cfg.Tropism.Enabled,
	)
	return s.tree
}

// Step runs one resource pass, prunes the marked branches and ages the tree.
func (s *Simulation) Step() telemetry.CycleStats {
	if s.tree == nil {
		s.Generate()
	}
	s.cycle++
	stats := telemetry.CycleStats{Cycle: s.cycle}

	s.perf.StartCycle()
	if s.cfg.Resources.Enabled {
		ts := &timedSimulator{System: s.resources, perf: s.perf, stats: &stats}
		stats.Pruned = s.tree.ApplyResourceSimulation(ts)
	} else {
		light := make([]float64, s.tree.Len())
		for i, b := range s.tree.Branches() {
			light[i] = b.LightExposure
		}
		stats.ComputeLightStats(light)
	}
	s.tree.AdvanceAge()
	s.perf.EndCycle()

	stats.Branches = s.tree.Len()
	stats.MaxDepth = maxDepth(s.tree)

	s.logger.Info("cycle complete", "stats", stats)
	if stats.Pruned > 0 {
		s.logger.Debug("pruned branches", "cycle", s.cycle, "removed", stats.Pruned, "marked", stats.Marked)
	}
	return stats
}

// Run executes n cycles and returns their stats in order.
func (s *Simulation) Run(n int) []telemetry.CycleStats {
	out := make([]telemetry.CycleStats, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.Step())
	}
	return out
}

// Tree returns the current tree, nil before the first Generate.
func (s *Simulation) Tree() *tree.Tree { return s.tree }

// Instructions returns the last generated instruction string.
func (s *Simulation) Instructions() string { return s.instructions }

// Cycle returns the number of completed resource cycles.
func (s *Simulation) Cycle() int { return s.cycle }

// Config returns the configuration the simulation reads on Generate.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Resources returns the resource system for the current tree.
func (s *Simulation) Resources() *resources.System { return s.resources }

// Perf returns the phase timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

func maxDepth(t *tree.Tree) int {
	d := 0
	for _, b := range t.Branches() {
		if b.Depth > d {
			d = b.Depth
		}
	}
	return d
}
