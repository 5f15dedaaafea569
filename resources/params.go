// Package resources scores branches for light and resource balance and marks
// the ones that should be pruned.
package resources

// DefaultFullCheckLimit is the branch count above which the pairwise passes
// are replaced by the depth/height heuristic.
const DefaultFullCheckLimit = 1000

// Params configures the resource economy.
type Params struct {
	// Light capture
	LightCompetitionEnabled bool
	BaseLightLevel          float64
	OcclusionRadius         float64
	OcclusionFalloff        float64

	// Resource flow
	PhotosynthesisEfficiency float64
	MaintenanceCost          float64 // per unit of branch volume

	// Pruning
	PruningEnabled       bool
	MinLightThreshold    float64
	MinResourceThreshold float64
	PruningGracePeriod   int // depth proxy for age

	// Competition
	CompetitionRadius float64
	DominanceFactor   float64

	// FullCheckLimit selects the exact pairwise passes for trees with at most
	// this many branches. 0 means DefaultFullCheckLimit.
	FullCheckLimit int

	// Workers bounds the goroutines used by the pairwise passes.
	// 0 uses GOMAXPROCS, 1 runs sequentially.
	Workers int
}

// DefaultParams returns the stock resource settings.
func DefaultParams() Params {
	return Params{
		LightCompetitionEnabled:  true,
		BaseLightLevel:           1.0,
		OcclusionRadius:          2.0,
		OcclusionFalloff:         0.5,
		PhotosynthesisEfficiency: 1.0,
		MaintenanceCost:          0.1,
		PruningEnabled:           true,
		MinLightThreshold:        0.15,
		MinResourceThreshold:     0.2,
		PruningGracePeriod:       2,
		CompetitionRadius:        1.5,
		DominanceFactor:          0.7,
		FullCheckLimit:           DefaultFullCheckLimit,
	}
}

func (p Params) fullCheckLimit() int {
	if p.FullCheckLimit <= 0 {
		return DefaultFullCheckLimit
	}
	return p.FullCheckLimit
}

// State tracks the resource economy of one branch.
type State struct {
	LightCapture       float64 // 0-1
	ResourceBalance    float64 // production minus cost
	AccumulatedDeficit float64
	DeficitDuration    int // consecutive cycles in deficit
	MarkedForPruning   bool
}

// DefaultState is the state of a branch that has not been scored yet.
func DefaultState() State {
	return State{
		LightCapture:    1.0,
		ResourceBalance: 1.0,
	}
}
