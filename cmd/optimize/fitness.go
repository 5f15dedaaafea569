package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/plantgrow/config"
	"github.com/pthm-cable/plantgrow/growth"
)

// FitnessEvaluator grows trees headlessly and scores how much of each
// canopy survives pruning.
type FitnessEvaluator struct {
	params     *ParamVector
	cycles     int
	seeds      []int64
	target     float64
	baseConfig *config.Config
	logger     *slog.Logger

	mu           sync.Mutex
	bestFitness  float64
	lastSurvival float64 // mean survivor fraction from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. target is the survivor
// fraction the search aims for.
func NewFitnessEvaluator(params *ParamVector, cycles int, seeds []int64, target float64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		cycles:      cycles,
		seeds:       seeds,
		target:      target,
		baseConfig:  baseCfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// BestFitness returns the lowest fitness seen so far.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// LastSurvival returns the mean survivor fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the mean squared distance between the survivor fraction and
// the target over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	survival := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			survival[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSurvival float64
	for _, frac := range survival {
		d := frac - fe.target
		totalFitness += d * d
		totalSurvival += frac
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastSurvival = totalSurvival / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation grows one tree and returns the fraction of its branches
// left after all cycles.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Growth.RandomSeed = seed
	cfg.Resources.Enabled = true
	cfg.Resources.PruningEnabled = true
	// Seeds already run in parallel.
	cfg.Resources.Workers = 1

	sim := growth.New(cfg, fe.logger)
	initial := sim.Generate().Len()
	if initial == 0 {
		return 0
	}
	sim.Run(fe.cycles)
	return float64(sim.Tree().Len()) / float64(initial)
}

// copyConfig returns a copy of the base config the evaluator may mutate.
// Rule maps are shared; nothing downstream writes to them.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
