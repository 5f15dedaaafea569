package tree

// Tree owns every branch and the hierarchy between them.
type Tree struct {
	branches []Branch

	// Age counts the resource cycles the tree has been through.
	Age int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// SetRoot clears the tree and installs b as the root at index 0.
func (t *Tree) SetRoot(b Branch) int {
	b.Parent = NoParent
	b.Depth = 0
	b.Children = nil
	t.branches = append(t.branches[:0], b)
	return 0
}

// Attach adds b as the last child of parent and returns its index.
// The child's depth is derived from the parent.
func (t *Tree) Attach(parent int, b Branch) int {
	idx := len(t.branches)
	b.Parent = parent
	b.Children = nil
	if parent >= 0 && parent < idx {
		b.Depth = t.branches[parent].Depth + 1
		t.branches[parent].Children = append(t.branches[parent].Children, idx)
	} else {
		b.Parent = NoParent
		b.Depth = 0
	}
	t.branches = append(t.branches, b)
	return idx
}

// Len returns the number of branches.
func (t *Tree) Len() int {
	return len(t.branches)
}

// Root returns the root branch, or nil for an empty tree.
func (t *Tree) Root() *Branch {
	if len(t.branches) == 0 {
		return nil
	}
	return &t.branches[0]
}

// Branch returns the branch at index i, or nil when out of range.
func (t *Tree) Branch(i int) *Branch {
	if i < 0 || i >= len(t.branches) {
		return nil
	}
	return &t.branches[i]
}

// Branches returns the flat, insertion-ordered branch list. The slice shares
// storage with the tree, so writes through it are visible to the tree.
func (t *Tree) Branches() []Branch {
	return t.branches
}

// Parent returns the parent of branch i, or nil for the root.
func (t *Tree) Parent(i int) *Branch {
	b := t.Branch(i)
	if b == nil {
		return nil
	}
	return t.Branch(b.Parent)
}

// Children returns the child indices of branch i, or nil when out of range.
func (t *Tree) Children(i int) []int {
	b := t.Branch(i)
	if b == nil {
		return nil
	}
	return b.Children
}

// Walk visits branches depth-first from the root, children in order.
// Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(idx int, b *Branch) bool) {
	if len(t.branches) == 0 {
		return
	}
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b := &t.branches[idx]
		if !fn(idx, b) {
			return
		}
		for c := len(b.Children) - 1; c >= 0; c-- {
			stack = append(stack, b.Children[c])
		}
	}
}

// Reachable returns the indices reachable from the root in depth-first order.
func (t *Tree) Reachable() []int {
	out := make([]int, 0, len(t.branches))
	t.Walk(func(idx int, _ *Branch) bool {
		out = append(out, idx)
		return true
	})
	return out
}

// Remove detaches the given branches from their parents and drops them, along
// with their subtrees, from the arena. The root is never removed. Survivors
// keep their relative order.
//
// The returned slice maps every old index to its new index, or -1 if the
// branch was removed.
func (t *Tree) Remove(indices []int) []int {
	n := len(t.branches)
	remap := make([]int, n)
	if n == 0 {
		return remap
	}

	removed := make([]bool, n)
	for _, idx := range indices {
		if idx > 0 && idx < n {
			removed[idx] = true
		}
	}
	// Parents precede children, so one forward pass covers whole subtrees.
	for i := 1; i < n; i++ {
		if p := t.branches[i].Parent; p >= 0 && removed[p] {
			removed[i] = true
		}
	}

	next := 0
	for i := range t.branches {
		if removed[i] {
			remap[i] = -1
			continue
		}
		remap[i] = next
		next++
	}
	if next == n {
		return remap
	}

	survivors := make([]Branch, 0, next)
	for i := range t.branches {
		if removed[i] {
			continue
		}
		b := t.branches[i]
		if b.Parent >= 0 {
			b.Parent = remap[b.Parent]
		}
		kids := make([]int, 0, len(b.Children))
		for _, c := range b.Children {
			if remap[c] >= 0 {
				kids = append(kids, remap[c])
			}
		}
		b.Children = kids
		survivors = append(survivors, b)
	}
	t.branches = survivors
	return remap
}

// AdvanceAge ages the tree and every branch by one cycle.
func (t *Tree) AdvanceAge() {
	t.Age++
	for i := range t.branches {
		t.branches[i].Age++
	}
}

// ResourceSimulator scores branches and selects some for removal.
type ResourceSimulator interface {
	CalculateResources(branches []Branch)
	IdentifyPrunedBranches() []int
	Compact(remap []int)
}

// ApplyResourceSimulation runs one resource pass and prunes the branches it
// marks. It returns the number of branches removed, subtrees included.
func (t *Tree) ApplyResourceSimulation(sim ResourceSimulator) int {
	if len(t.branches) == 0 {
		return 0
	}
	sim.CalculateResources(t.branches)

	pruned := sim.IdentifyPrunedBranches()
	if len(pruned) == 0 {
		return 0
	}
	before := len(t.branches)
	remap := t.Remove(pruned)
	sim.Compact(remap)
	return before - len(t.branches)
}
