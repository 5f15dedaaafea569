package resources

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
	"github.com/pthm-cable/plantgrow/tree"
)

// maxOcclusion caps shading so no branch goes fully dark from neighbours.
const maxOcclusion = 0.9

// Snapshot is the per-branch geometry the scorers read during one pass.
type Snapshot struct {
	End       r3.Vec
	Direction r3.Vec
	Depth     int
}

func snapshots(branches []tree.Branch) []Snapshot {
	out := make([]Snapshot, len(branches))
	for i := range branches {
		out[i] = Snapshot{
			End:       branches[i].End(),
			Direction: branches[i].Direction,
			Depth:     branches[i].Depth,
		}
	}
	return out
}

// LightScorer estimates how much of the sky a branch loses to the branches
// around it. Prepare is called once per pass; Occlusion may then be called
// concurrently for different indices.
type LightScorer interface {
	Name() string
	Prepare(snaps []Snapshot)
	Occlusion(i int, scratch []int) float64
}

// ExactScorer sums shading from every higher branch end within the occlusion
// radius. A spatial grid limits the candidates; the sum visits them in index
// order so results match a full pairwise scan.
type ExactScorer struct {
	Radius  float64
	Falloff float64

	snaps []Snapshot
	grid  *grid
}

func (s *ExactScorer) Name() string { return "exact" }

func (s *ExactScorer) Prepare(snaps []Snapshot) {
	s.snaps = snaps
	s.grid = newGrid(snaps, s.Radius)
}

func (s *ExactScorer) Occlusion(i int, scratch []int) float64 {
	if s.Radius <= 0 {
		return 0
	}
	me := s.snaps[i].End
	cands := s.grid.candidatesInto(scratch[:0], me)

	total := 0.0
	count := 0
	for _, j := range cands {
		if j == i {
			continue
		}
		other := s.snaps[j].End
		dist := geom.Distance(me, other)
		if dist >= s.Radius {
			continue
		}
		dy := other.Y - me.Y
		if dy <= 0 {
			continue
		}
		height := geom.Clamp01(dy / (geom.HorizontalDistance(me, other) + 0.1))
		total += height * (1 - dist/s.Radius) * s.Falloff
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Min(maxOcclusion, total/math.Sqrt(float64(count)))
}

// HeuristicScorer approximates occlusion from depth and height alone. Deep,
// low branches are assumed to sit under the canopy.
type HeuristicScorer struct {
	snaps []Snapshot
}

func (s *HeuristicScorer) Name() string { return "heuristic" }

func (s *HeuristicScorer) Prepare(snaps []Snapshot) { s.snaps = snaps }

func (s *HeuristicScorer) Occlusion(i int, _ []int) float64 {
	b := s.snaps[i]
	depthFactor := math.Min(10, float64(b.Depth)) / 10
	heightFactor := geom.Clamp01((b.End.Y + 10) / 20)
	return depthFactor * (1 - heightFactor*0.5) * 0.5
}

// captureFor combines base light, occlusion and a bonus for upward-facing
// branches into a capture value in [0, 1].
func captureFor(base, occlusion float64, dir r3.Vec) float64 {
	upward := math.Max(0, r3.Dot(dir, geom.Up))
	return geom.Clamp01(base*(1-occlusion) + upward*0.3)
}

func (s *System) scorer(n int) LightScorer {
	if n > s.params.fullCheckLimit() {
		return &HeuristicScorer{}
	}
	return &ExactScorer{Radius: s.params.OcclusionRadius, Falloff: s.params.OcclusionFalloff}
}

func (s *System) calculateLightCapture(snaps []Snapshot) {
	sc := s.scorer(len(snaps))
	sc.Prepare(snaps)
	s.summary.Strategy = sc.Name()

	forChunks(len(snaps), s.params.Workers, func(lo, hi int, scratch []int) {
		for i := lo; i < hi; i++ {
			occ := sc.Occlusion(i, scratch)
			s.states[i].LightCapture = captureFor(s.params.BaseLightLevel, occ, snaps[i].Direction)
		}
	})
}
