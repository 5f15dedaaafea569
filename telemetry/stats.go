package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CycleStats holds aggregated statistics for one resource cycle.
type CycleStats struct {
	Cycle    int `csv:"cycle"`
	Branches int `csv:"branches"` // after pruning
	Pruned   int `csv:"pruned"`   // removed this cycle, subtrees included
	Marked   int `csv:"marked"`   // branches the resource pass marked

	// Light capture distribution (before pruning)
	LightMin  float64 `csv:"light_min"`
	LightMean float64 `csv:"light_mean"`
	LightP10  float64 `csv:"light_p10"`
	LightP50  float64 `csv:"light_p50"`
	LightP90  float64 `csv:"light_p90"`
	LightMax  float64 `csv:"light_max"`

	// Resource balance (before pruning)
	BalanceMean     float64 `csv:"balance_mean"`
	BalanceStd      float64 `csv:"balance_std"`
	DeficitBranches int     `csv:"deficit_branches"`

	MaxDepth int    `csv:"max_depth"`
	Strategy string `csv:"strategy"` // light scorer used
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeLightStats fills the light distribution fields.
func (s *CycleStats) ComputeLightStats(light []float64) {
	if len(light) == 0 {
		return
	}
	sorted := make([]float64, len(light))
	copy(sorted, light)
	sort.Float64s(sorted)

	s.LightMin = floats.Min(light)
	s.LightMax = floats.Max(light)
	s.LightMean = stat.Mean(light, nil)
	s.LightP10 = Percentile(sorted, 0.10)
	s.LightP50 = Percentile(sorted, 0.50)
	s.LightP90 = Percentile(sorted, 0.90)
}

// ComputeBalanceStats fills the resource balance fields.
func (s *CycleStats) ComputeBalanceStats(balance []float64) {
	s.DeficitBranches = 0
	if len(balance) == 0 {
		return
	}
	s.BalanceMean, s.BalanceStd = stat.PopMeanStdDev(balance, nil)
	for _, b := range balance {
		if b < 0 {
			s.DeficitBranches++
		}
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s CycleStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cycle", s.Cycle),
		slog.Int("branches", s.Branches),
		slog.Int("pruned", s.Pruned),
		slog.Int("marked", s.Marked),
		slog.Float64("light_min", s.LightMin),
		slog.Float64("light_mean", s.LightMean),
		slog.Float64("light_p50", s.LightP50),
		slog.Float64("light_max", s.LightMax),
		slog.Float64("balance_mean", s.BalanceMean),
		slog.Int("deficit_branches", s.DeficitBranches),
		slog.Int("max_depth", s.MaxDepth),
		slog.String("strategy", s.Strategy),
	)
}

// LogStats logs the cycle stats.
func (s CycleStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("cycle", "stats", s)
}
