package resources

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
	"github.com/pthm-cable/plantgrow/tree"
)

// randomTree attaches n branches to random earlier parents.
func randomTree(n int, seed int64) *tree.Tree {
	rng := rand.New(rand.NewSource(seed))
	t := tree.New()
	t.SetRoot(tree.NewBranch(r3.Vec{}, geom.Up, 1, 0.1))
	for i := 1; i < n; i++ {
		parent := rng.Intn(t.Len())
		dir := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64(), Z: rng.Float64()*2 - 1}
		b := tree.NewBranch(t.Branch(parent).End(), dir, 0.5+rng.Float64(), 0.05)
		t.Attach(parent, b)
	}
	return t
}

func cloneBranches(src []tree.Branch) []tree.Branch {
	out := make([]tree.Branch, len(src))
	copy(out, src)
	return out
}

// bruteOcclusion is the full pairwise scan ExactScorer must agree with.
func bruteOcclusion(snaps []Snapshot, i int, radius, falloff float64) float64 {
	me := snaps[i].End
	total := 0.0
	count := 0
	for j := range snaps {
		if j == i {
			continue
		}
		dist := geom.Distance(me, snaps[j].End)
		if dist >= radius {
			continue
		}
		dy := snaps[j].End.Y - me.Y
		if dy <= 0 {
			continue
		}
		total += geom.Clamp01(dy/(geom.HorizontalDistance(me, snaps[j].End)+0.1)) * (1 - dist/radius) * falloff
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Min(maxOcclusion, total/math.Sqrt(float64(count)))
}

func TestExactScorerShadowsLowerBranch(t *testing.T) {
	snaps := []Snapshot{
		{End: r3.Vec{Y: 1}, Direction: geom.Up},
		{End: r3.Vec{Y: 2}, Direction: geom.Up},
	}
	sc := &ExactScorer{Radius: 2, Falloff: 0.5}
	sc.Prepare(snaps)

	// Straight above: verticality saturates at 1, falloff 0.5 at half the radius.
	want := 0.25
	if got := sc.Occlusion(0, nil); math.Abs(got-want) > 1e-12 {
		t.Errorf("lower occlusion: expected %f, got %f", want, got)
	}
	if got := sc.Occlusion(1, nil); got != 0 {
		t.Errorf("upper branch should be unshaded, got %f", got)
	}
}

func TestExactScorerVerticalityUsesHorizontalDistance(t *testing.T) {
	snaps := []Snapshot{
		{End: r3.Vec{}, Direction: geom.Up},
		{End: r3.Vec{X: 0.9, Y: 0.5}, Direction: geom.Up},
	}
	sc := &ExactScorer{Radius: 2, Falloff: 0.5}
	sc.Prepare(snaps)

	dist := math.Hypot(0.9, 0.5)
	want := (0.5 / 1.0) * (1 - dist/2) * 0.5
	if got := sc.Occlusion(0, nil); math.Abs(got-want) > 1e-12 {
		t.Errorf("offset occluder: expected %f, got %f", want, got)
	}
}

func TestExactScorerMatchesPairwiseScan(t *testing.T) {
	tr := randomTree(400, 7)
	snaps := snapshots(tr.Branches())
	sc := &ExactScorer{Radius: 2, Falloff: 0.5}
	sc.Prepare(snaps)

	for i := range snaps {
		got := sc.Occlusion(i, nil)
		want := bruteOcclusion(snaps, i, 2, 0.5)
		if got != want {
			t.Fatalf("branch %d: grid %v, pairwise %v", i, got, want)
		}
	}
}

func TestCompetitionGridMatchesPairwiseScan(t *testing.T) {
	tr := randomTree(300, 11)
	snaps := snapshots(tr.Branches())
	radius, dominance := 1.5, 0.7
	g := newGrid(snaps, radius)
	everything := &grid{cellSize: math.Inf(1), cells: map[cellKey][]int{}}
	for i := range snaps {
		everything.cells[cellKey{}] = append(everything.cells[cellKey{}], i)
	}

	for i := range snaps {
		got := competitionFactor(snaps, g, i, radius, dominance, nil)
		want := competitionFactor(snaps, everything, i, radius, dominance, nil)
		if got != want {
			t.Fatalf("branch %d: grid %v, pairwise %v", i, got, want)
		}
	}
}

func TestHeuristicScorer(t *testing.T) {
	snaps := []Snapshot{
		{End: r3.Vec{Y: 0}, Depth: 5},
		{End: r3.Vec{Y: 0}, Depth: 20},
		{End: r3.Vec{Y: 50}, Depth: 0},
	}
	sc := &HeuristicScorer{}
	sc.Prepare(snaps)

	if got, want := sc.Occlusion(0, nil), 0.5*(1-0.25)*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
	if got, want := sc.Occlusion(1, nil), 1*(1-0.25)*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("depth should cap at 10: expected %f, got %f", want, got)
	}
	if got := sc.Occlusion(2, nil); got != 0 {
		t.Errorf("root depth should be unshaded, got %f", got)
	}
}

func TestHeuristicAboveFullCheckLimit(t *testing.T) {
	p := DefaultParams()
	p.FullCheckLimit = 10
	p.PruningEnabled = false
	s := New(p)

	tr := randomTree(30, 3)
	branches := tr.Branches()
	s.CalculateResources(branches)

	if got := s.Summary().Strategy; got != "heuristic" {
		t.Fatalf("expected heuristic strategy, got %q", got)
	}
	// Competition is skipped, so capture is exactly the heuristic capture.
	snaps := snapshots(branches)
	h := &HeuristicScorer{}
	h.Prepare(snaps)
	for i := range snaps {
		want := captureFor(p.BaseLightLevel, h.Occlusion(i, nil), snaps[i].Direction)
		if got := s.State(i).LightCapture; got != want {
			t.Fatalf("branch %d: expected %f, got %f", i, want, got)
		}
	}
}

func TestExactAtOrBelowLimit(t *testing.T) {
	p := DefaultParams()
	p.FullCheckLimit = 30
	s := New(p)
	s.CalculateResources(randomTree(30, 3).Branches())
	if got := s.Summary().Strategy; got != "exact" {
		t.Errorf("expected exact strategy, got %q", got)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	tr := randomTree(600, 21)

	seq := DefaultParams()
	seq.Workers = 1
	par := DefaultParams()
	par.Workers = 8

	a, b := New(seq), New(par)
	ba, bb := cloneBranches(tr.Branches()), cloneBranches(tr.Branches())
	for cycle := 0; cycle < 3; cycle++ {
		a.CalculateResources(ba)
		b.CalculateResources(bb)
	}

	for i := range ba {
		if a.State(i) != b.State(i) {
			t.Fatalf("branch %d: sequential %+v, parallel %+v", i, a.State(i), b.State(i))
		}
		if ba[i].LightExposure != bb[i].LightExposure {
			t.Fatalf("branch %d exposure differs", i)
		}
	}
}

func TestLightExposureBounds(t *testing.T) {
	for _, limit := range []int{1000, 5} {
		p := DefaultParams()
		p.FullCheckLimit = limit
		p.BaseLightLevel = 3
		s := New(p)
		branches := randomTree(200, 5).Branches()
		s.CalculateResources(branches)
		for i, b := range branches {
			if b.LightExposure < 0 || b.LightExposure > 1 {
				t.Fatalf("limit %d: branch %d exposure %f", limit, i, b.LightExposure)
			}
		}
	}
}

func TestPruningProtectsTrunk(t *testing.T) {
	p := DefaultParams()
	p.MinLightThreshold = 2 // every capture is below this
	p.PruningGracePeriod = 0
	s := New(p)

	tr := tree.New()
	tr.SetRoot(tree.NewBranch(r3.Vec{}, geom.Up, 1, 0.1))
	a := tr.Attach(0, tree.NewBranch(tr.Root().End(), geom.Up, 1, 0.1))
	b := tr.Attach(a, tree.NewBranch(tr.Branch(a).End(), geom.Up, 1, 0.1))
	tr.Attach(b, tree.NewBranch(tr.Branch(b).End(), geom.Up, 1, 0.1))

	s.CalculateResources(tr.Branches())
	pruned := s.IdentifyPrunedBranches()
	for _, i := range pruned {
		if tr.Branch(i).Depth <= 1 {
			t.Errorf("branch %d at depth %d marked", i, tr.Branch(i).Depth)
		}
	}
	if len(pruned) != 2 {
		t.Errorf("expected depths 2 and 3 marked, got %v", pruned)
	}
}

func TestPruningGraceDepth(t *testing.T) {
	s := New(DefaultParams()) // grace 2: eligible from depth 4
	low := State{LightCapture: 0, ResourceBalance: 1}
	if s.shouldPrune(3, low) {
		t.Error("depth 3 should be inside the grace depth")
	}
	if !s.shouldPrune(4, low) {
		t.Error("depth 4 should be eligible")
	}
}

func TestPruningTrigger(t *testing.T) {
	p := DefaultParams()
	p.MinLightThreshold = 0.15
	s := New(p)
	snaps := []Snapshot{{Depth: 5}}
	s.states = []State{{LightCapture: 0.05, ResourceBalance: 1}}

	if s.evaluatePruning(snaps) != 1 || !s.State(0).MarkedForPruning {
		t.Fatal("expected branch to be marked at capture 0.05")
	}

	s.states[0].LightCapture = 0.20
	if s.evaluatePruning(snaps) != 0 || s.State(0).MarkedForPruning {
		t.Error("expected mark to clear at capture 0.20")
	}
}

func TestPruningSustainedDeficit(t *testing.T) {
	s := New(DefaultParams())
	st := State{LightCapture: 1, ResourceBalance: 0.1, DeficitDuration: 1}
	if s.shouldPrune(5, st) {
		t.Error("one deficit cycle should not prune")
	}
	st.DeficitDuration = 2
	if !s.shouldPrune(5, st) {
		t.Error("two deficit cycles below the resource threshold should prune")
	}
}

func TestDeficitDecay(t *testing.T) {
	s := New(DefaultParams())
	branches := []tree.Branch{tree.NewBranch(r3.Vec{}, geom.Up, 1, 0.1)}
	s.resize(1)

	s.states[0].LightCapture = 0
	s.resourceFlow(branches)
	first := s.State(0)
	if first.ResourceBalance >= 0 || first.AccumulatedDeficit <= 0 {
		t.Fatalf("expected a deficit cycle, got %+v", first)
	}
	if first.DeficitDuration != 1 {
		t.Errorf("expected deficit duration 1, got %d", first.DeficitDuration)
	}

	s.states[0].LightCapture = 1
	s.resourceFlow(branches)
	second := s.State(0)
	if second.ResourceBalance < 0 {
		t.Fatalf("expected recovery, got %+v", second)
	}
	if second.AccumulatedDeficit > 0.8*first.AccumulatedDeficit+1e-15 {
		t.Errorf("deficit %f not decayed from %f", second.AccumulatedDeficit, first.AccumulatedDeficit)
	}
	if second.DeficitDuration != 0 {
		t.Errorf("expected duration reset once deficit is negligible, got %d", second.DeficitDuration)
	}
}

func TestMaintenanceGrowsWithAge(t *testing.T) {
	s := New(DefaultParams())
	b := tree.NewBranch(r3.Vec{}, geom.Up, 1, 0.1)
	young := s.maintenance(&b)
	b.Age = 10
	if old := s.maintenance(&b); math.Abs(old-young*1.5) > 1e-12 {
		t.Errorf("expected 1.5x cost at age 10, got %f vs %f", old, young)
	}
}

func TestStateOutOfRange(t *testing.T) {
	s := New(DefaultParams())
	if s.State(-1) != DefaultState() || s.State(3) != DefaultState() {
		t.Error("expected default state for out of range index")
	}
}

func TestStatesResetWhenCountChanges(t *testing.T) {
	s := New(DefaultParams())
	s.CalculateResources(randomTree(10, 1).Branches())
	s.states[0].AccumulatedDeficit = 42

	s.CalculateResources(randomTree(12, 1).Branches())
	if s.State(0).AccumulatedDeficit == 42 {
		t.Error("expected states to restart for a different branch count")
	}
}

func TestCompact(t *testing.T) {
	s := New(DefaultParams())
	s.states = []State{
		{AccumulatedDeficit: 0},
		{AccumulatedDeficit: 1, MarkedForPruning: true},
		{AccumulatedDeficit: 2},
		{AccumulatedDeficit: 3},
	}
	s.Compact([]int{0, -1, 1, 2})

	if len(s.States()) != 3 {
		t.Fatalf("expected 3 states, got %d", len(s.States()))
	}
	for i, want := range []float64{0, 2, 3} {
		if got := s.State(i).AccumulatedDeficit; got != want {
			t.Errorf("state %d: expected deficit %f, got %f", i, want, got)
		}
	}

	s.Compact([]int{0})
	if len(s.States()) != 0 {
		t.Error("mismatched remap should reset states")
	}
}

func TestApplyResourceSimulationKeepsStatesAligned(t *testing.T) {
	p := DefaultParams()
	p.MinLightThreshold = 2
	p.PruningGracePeriod = 0
	s := New(p)

	tr := randomTree(50, 9)
	removed := tr.ApplyResourceSimulation(s)
	if removed == 0 {
		t.Fatal("expected branches to be pruned")
	}
	if len(s.States()) != tr.Len() {
		t.Fatalf("states %d, branches %d", len(s.States()), tr.Len())
	}
	for i, b := range tr.Branches() {
		if b.Depth > 1 {
			t.Errorf("branch %d at depth %d survived", i, b.Depth)
		}
		if s.State(i).MarkedForPruning {
			t.Errorf("survivor %d still marked", i)
		}
	}
}

func TestLightCompetitionDisabled(t *testing.T) {
	p := DefaultParams()
	p.LightCompetitionEnabled = false
	s := New(p)
	s.CalculateResources(randomTree(20, 2).Branches())
	if s.Summary().Strategy != "" {
		t.Errorf("expected no light scorer, got %q", s.Summary().Strategy)
	}
	for i := 0; i < 20; i++ {
		if c := s.State(i).LightCapture; c > 1 || c < 0.5 {
			t.Errorf("branch %d capture %f outside competition range", i, c)
		}
	}
}

func TestSummary(t *testing.T) {
	s := New(DefaultParams())
	s.CalculateResources(randomTree(40, 4).Branches())
	sum := s.Summary()
	if sum.Branches != 40 {
		t.Errorf("expected 40 branches, got %d", sum.Branches)
	}
	if sum.LightMin > sum.LightMean || sum.LightMean > sum.LightMax {
		t.Errorf("light stats out of order: %+v", sum)
	}
	if sum.Marked != len(s.IdentifyPrunedBranches()) {
		t.Errorf("marked %d, identified %d", sum.Marked, len(s.IdentifyPrunedBranches()))
	}
}
