package growth

import (
	"github.com/pthm-cable/plantgrow/resources"
	"github.com/pthm-cable/plantgrow/telemetry"
	"github.com/pthm-cable/plantgrow/tree"
)

// timedSimulator records phase timings and pre-prune statistics around the
// resource system.
type timedSimulator struct {
	*resources.System
	perf  *telemetry.PerfCollector
	stats *telemetry.CycleStats
}

func (t *timedSimulator) CalculateResources(branches []tree.Branch) {
	t.perf.StartPhase(telemetry.PhaseResources)
	t.System.CalculateResources(branches)

	states := t.System.States()
	light := make([]float64, len(states))
	balance := make([]float64, len(states))
	for i, st := range states {
		light[i] = st.LightCapture
		balance[i] = st.ResourceBalance
	}
	t.stats.ComputeLightStats(light)
	t.stats.ComputeBalanceStats(balance)

	sum := t.System.Summary()
	t.stats.Marked = sum.Marked
	t.stats.Strategy = sum.Strategy
}

func (t *timedSimulator) IdentifyPrunedBranches() []int {
	t.perf.StartPhase(telemetry.PhasePrune)
	return t.System.IdentifyPrunedBranches()
}

var _ tree.ResourceSimulator = (*timedSimulator)(nil)
