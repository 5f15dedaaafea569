package resources

import (
	"math"

	"github.com/pthm-cable/plantgrow/geom"
)

// maxCompetition caps the competition factor before it is halved and applied.
const maxCompetition = 0.8

// competitionFactor averages crowding from every branch end within the
// competition radius. Higher neighbours weigh more by the dominance factor.
func competitionFactor(snaps []Snapshot, g *grid, i int, radius, dominance float64, scratch []int) float64 {
	if radius <= 0 {
		return 0
	}
	me := snaps[i].End
	total := 0.0
	count := 0
	for _, j := range g.candidatesInto(scratch[:0], me) {
		if j == i {
			continue
		}
		other := snaps[j].End
		dist := geom.Distance(me, other)
		if dist >= radius {
			continue
		}
		strength := 1 - dist/radius
		if adv := (other.Y - me.Y) * dominance; adv > 0 {
			strength *= 1 + adv
		}
		total += strength
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Min(maxCompetition, total/float64(count))
}

// applyCompetition scales each light capture down by half its competition
// factor. Skipped above the full check limit.
func (s *System) applyCompetition(snaps []Snapshot) {
	if len(snaps) > s.params.fullCheckLimit() {
		return
	}
	g := newGrid(snaps, s.params.CompetitionRadius)
	radius, dominance := s.params.CompetitionRadius, s.params.DominanceFactor

	forChunks(len(snaps), s.params.Workers, func(lo, hi int, scratch []int) {
		for i := lo; i < hi; i++ {
			f := competitionFactor(snaps, g, i, radius, dominance, scratch)
			s.states[i].LightCapture *= 1 - f*0.5
		}
	})
}
