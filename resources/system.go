package resources

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/plantgrow/tree"
)

// Summary describes the last resource pass.
type Summary struct {
	Branches  int
	Strategy  string // light scorer used, empty when light competition is off
	LightMin  float64
	LightMean float64
	LightMax  float64
	Marked    int
	Deficit   int // branches with a negative balance
}

// System runs the light, competition, flow and pruning passes over a branch
// list. States are parallel-indexed to the branches passed in.
type System struct {
	params  Params
	states  []State
	summary Summary
	light   []float64
}

// New creates a resource system.
func New(p Params) *System {
	return &System{params: p}
}

// Params returns the configured parameters.
func (s *System) Params() Params { return s.params }

// CalculateResources scores every branch and updates its LightExposure to the
// computed capture. States carry over between passes while the branch count
// is unchanged; otherwise they restart from defaults.
func (s *System) CalculateResources(branches []tree.Branch) {
	s.summary = Summary{Branches: len(branches)}
	if len(branches) == 0 {
		s.states = s.states[:0]
		return
	}
	if len(s.states) != len(branches) {
		s.resize(len(branches))
	}

	snaps := snapshots(branches)
	if s.params.LightCompetitionEnabled {
		s.calculateLightCapture(snaps)
	}
	s.applyCompetition(snaps)
	s.resourceFlow(branches)

	if s.params.PruningEnabled {
		s.summary.Marked = s.evaluatePruning(snaps)
	} else {
		for i := range s.states {
			s.states[i].MarkedForPruning = false
		}
	}

	for i := range branches {
		branches[i].LightExposure = s.states[i].LightCapture
	}
	s.summarize()
}

func (s *System) resize(n int) {
	s.states = make([]State, n)
	for i := range s.states {
		s.states[i] = DefaultState()
	}
}

func (s *System) summarize() {
	if cap(s.light) < len(s.states) {
		s.light = make([]float64, len(s.states))
	}
	s.light = s.light[:len(s.states)]
	for i, st := range s.states {
		s.light[i] = st.LightCapture
		if st.ResourceBalance < 0 {
			s.summary.Deficit++
		}
	}
	s.summary.LightMin = floats.Min(s.light)
	s.summary.LightMax = floats.Max(s.light)
	s.summary.LightMean = stat.Mean(s.light, nil)
}

// IdentifyPrunedBranches returns the indices marked in the last pass, in
// ascending order.
func (s *System) IdentifyPrunedBranches() []int {
	var out []int
	for i := range s.states {
		if s.states[i].MarkedForPruning {
			out = append(out, i)
		}
	}
	return out
}

// State returns the state of branch i, or DefaultState when i is out of range.
func (s *System) State(i int) State {
	if i < 0 || i >= len(s.states) {
		return DefaultState()
	}
	return s.states[i]
}

// States returns all branch states. The slice is shared.
func (s *System) States() []State { return s.states }

// Summary returns statistics for the last pass.
func (s *System) Summary() Summary { return s.summary }

// Reset discards all branch states.
func (s *System) Reset() {
	s.states = nil
	s.summary = Summary{}
}

// Compact moves surviving states to their new indices after branches were
// removed. remap maps old index to new index, -1 for removed. A remap that
// does not match the current states resets them.
func (s *System) Compact(remap []int) {
	if len(remap) != len(s.states) {
		s.Reset()
		return
	}
	n := 0
	for _, to := range remap {
		if to >= 0 {
			n++
		}
	}
	out := make([]State, n)
	for from, to := range remap {
		if to >= 0 {
			out[to] = s.states[from]
			out[to].MarkedForPruning = false
		}
	}
	s.states = out
}

var _ tree.ResourceSimulator = (*System)(nil)
