package resources

import (
	"math"

	"github.com/pthm-cable/plantgrow/tree"
)

const (
	deficitDecay   = 0.8
	deficitCleared = 0.01
	agingCost      = 0.05 // extra maintenance per cycle of age
)

// production is light turned into resources over the branch surface.
func (s *System) production(b *tree.Branch, capture float64) float64 {
	surface := b.Length * b.Radius * 2
	return capture * surface * s.params.PhotosynthesisEfficiency
}

// maintenance is the per-cycle upkeep of a branch, growing with age.
func (s *System) maintenance(b *tree.Branch) float64 {
	volume := b.Length * b.Radius * b.Radius * math.Pi
	return volume * s.params.MaintenanceCost * (1 + float64(b.Age)*agingCost)
}

func (s *System) resourceFlow(branches []tree.Branch) {
	for i := range branches {
		st := &s.states[i]
		st.ResourceBalance = s.production(&branches[i], st.LightCapture) - s.maintenance(&branches[i])

		if st.ResourceBalance < 0 {
			st.AccumulatedDeficit += -st.ResourceBalance
			st.DeficitDuration++
			continue
		}
		st.AccumulatedDeficit *= deficitDecay
		if st.AccumulatedDeficit < deficitCleared {
			st.DeficitDuration = 0
		}
	}
}
