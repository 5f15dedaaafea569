package tree

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// buildSample creates:
//
//	0 root
//	├─ 1
//	│  ├─ 3
//	│  │  └─ 5
//	│  └─ 4
//	└─ 2
func buildSample() *Tree {
	t := New()
	up := r3.Vec{Y: 1}
	t.SetRoot(NewBranch(r3.Vec{}, up, 1, 0.1))
	t.Attach(0, NewBranch(r3.Vec{Y: 1}, up, 1, 0.1))
	t.Attach(0, NewBranch(r3.Vec{Y: 1}, r3.Vec{X: 1}, 1, 0.1))
	t.Attach(1, NewBranch(r3.Vec{Y: 2}, up, 1, 0.1))
	t.Attach(1, NewBranch(r3.Vec{Y: 2}, r3.Vec{Z: 1}, 1, 0.1))
	t.Attach(3, NewBranch(r3.Vec{Y: 3}, up, 1, 0.1))
	return t
}

func TestAttachSetsDepth(t *testing.T) {
	tr := buildSample()
	for i := 1; i < tr.Len(); i++ {
		b := tr.Branch(i)
		p := tr.Parent(i)
		if p == nil {
			t.Fatalf("branch %d has no parent", i)
		}
		if b.Depth != p.Depth+1 {
			t.Errorf("branch %d depth %d, parent depth %d", i, b.Depth, p.Depth)
		}
	}
	if tr.Root().Depth != 0 {
		t.Errorf("root depth %d", tr.Root().Depth)
	}
}

func TestChildren(t *testing.T) {
	tr := buildSample()
	if got := tr.Children(1); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("children of 1 = %v, want [3 4]", got)
	}
	if got := tr.Children(2); len(got) != 0 {
		t.Errorf("leaf has children %v", got)
	}
	if tr.Children(99) != nil {
		t.Error("out of range should be nil")
	}
}

func TestEndPosition(t *testing.T) {
	b := NewBranch(r3.Vec{X: 1}, r3.Vec{Y: 2}, 3, 0.1)
	if end := b.End(); end != (r3.Vec{X: 1, Y: 3}) {
		t.Errorf("straight end %v", end)
	}
	b.Curve = []r3.Vec{{X: 1}, {X: 2, Y: 2}}
	if end := b.End(); end != (r3.Vec{X: 2, Y: 2}) {
		t.Errorf("curved end %v", end)
	}
}

func TestNewBranchNormalizesDirection(t *testing.T) {
	b := NewBranch(r3.Vec{}, r3.Vec{X: 3, Y: 4}, 1, 0.1)
	if math.Abs(r3.Norm(b.Direction)-1) > 1e-9 {
		t.Errorf("direction not unit: %v", b.Direction)
	}
	b = NewBranch(r3.Vec{}, r3.Vec{}, 1, 0.1)
	if b.Direction != (r3.Vec{Y: 1}) {
		t.Errorf("zero direction should become up, got %v", b.Direction)
	}
}

func TestPathPointsStraight(t *testing.T) {
	b := NewBranch(r3.Vec{}, r3.Vec{Y: 1}, 2, 0.1)
	pts := b.PathPoints(4)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if pts[2] != (r3.Vec{Y: 1}) {
		t.Errorf("midpoint %v", pts[2])
	}
}

func TestWalkOrder(t *testing.T) {
	tr := buildSample()
	got := tr.Reachable()
	want := []int{0, 1, 3, 5, 4, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRemoveDropsSubtree(t *testing.T) {
	tr := buildSample()
	remap := tr.Remove([]int{3})

	if tr.Len() != 4 {
		t.Fatalf("expected 4 survivors, got %d", tr.Len())
	}
	wantRemap := []int{0, 1, 2, -1, 3, -1}
	for i := range wantRemap {
		if remap[i] != wantRemap[i] {
			t.Fatalf("remap %v, want %v", remap, wantRemap)
		}
	}

	// Old branch 4 is now index 3 and still a child of 1.
	kids := tr.Branch(1).Children
	if len(kids) != 1 || kids[0] != 3 {
		t.Errorf("branch 1 children %v", kids)
	}
	if tr.Branch(3).Parent != 1 {
		t.Errorf("branch 3 parent %d", tr.Branch(3).Parent)
	}
	if tr.Branch(3).Direction != (r3.Vec{Z: 1}) {
		t.Errorf("survivor order not preserved")
	}

	// Every reachable branch must be in the flat list and vice versa.
	if len(tr.Reachable()) != tr.Len() {
		t.Errorf("reachable %d, flat %d", len(tr.Reachable()), tr.Len())
	}
}

func TestRemoveIgnoresRootAndOutOfRange(t *testing.T) {
	tr := buildSample()
	tr.Remove([]int{0, -1, 99})
	if tr.Len() != 6 {
		t.Errorf("expected nothing removed, got %d branches", tr.Len())
	}
}

func TestAdvanceAge(t *testing.T) {
	tr := buildSample()
	tr.AdvanceAge()
	tr.AdvanceAge()
	if tr.Age != 2 {
		t.Errorf("tree age %d", tr.Age)
	}
	for i, b := range tr.Branches() {
		if b.Age != 2 {
			t.Errorf("branch %d age %d", i, b.Age)
		}
	}
}

type fakeSim struct {
	mark      []int
	compacted []int
}

func (f *fakeSim) CalculateResources(branches []Branch) {
	for i := range branches {
		branches[i].LightExposure = 0.5
	}
}

func (f *fakeSim) IdentifyPrunedBranches() []int { return f.mark }

func (f *fakeSim) Compact(remap []int) { f.compacted = remap }

func TestApplyResourceSimulation(t *testing.T) {
	tr := buildSample()
	sim := &fakeSim{mark: []int{2, 4}}

	removed := tr.ApplyResourceSimulation(sim)
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if len(sim.compacted) != 6 {
		t.Errorf("compact not called with full remap: %v", sim.compacted)
	}
	for _, b := range tr.Branches() {
		if b.LightExposure != 0.5 {
			t.Errorf("simulator writes not visible on tree")
		}
	}
	if len(tr.Root().Children) != 1 {
		t.Errorf("root children %v", tr.Root().Children)
	}
}
