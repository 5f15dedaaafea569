package lsystem

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
	"github.com/pthm-cable/plantgrow/tree"
)

// radiusTaper is applied once per nesting level.
const radiusTaper = 0.95

// TurtleState is the interpreter cursor.
type TurtleState struct {
	Position  r3.Vec
	Direction r3.Vec
	Up        r3.Vec // defines the local rotation frame
	Depth     int    // bracket nesting depth
}

// NewTurtleState returns the cursor pointing up with up along +Z.
func NewTurtleState() TurtleState {
	return TurtleState{
		Direction: r3.Vec{X: 0, Y: 1, Z: 0},
		Up:        r3.Vec{X: 0, Y: 0, Z: 1},
	}
}

// frame is a saved cursor together with the branch that was current when it
// was pushed.
type frame struct {
	state   TurtleState
	current int
}

// interpreter holds the mutable state of one Interpret call.
type interpreter struct {
	l       *LSystem
	tree    *tree.Tree
	state   TurtleState
	stack   []frame
	current int
}

// Interpret walks the instruction string and builds the tree. A root branch
// is placed at the origin before the first symbol.
func (l *LSystem) Interpret(s string) *tree.Tree {
	t := tree.New()
	root := tree.NewBranch(r3.Vec{}, geom.Up, l.params.SegmentLength, l.params.SegmentRadius)
	t.SetRoot(root)

	it := &interpreter{
		l:       l,
		tree:    t,
		state:   NewTurtleState(),
		current: 0,
	}
	it.state.Position = t.Root().End()

	for i := 0; i < len(s); i++ {
		it.step(s[i])
	}
	return t
}

func (it *interpreter) step(symbol byte) {
	p := &it.l.params

	switch symbol {
	case 'F':
		radius := p.SegmentRadius * math.Pow(radiusTaper, float64(it.state.Depth))
		b := tree.NewBranch(it.state.Position, it.state.Direction, p.SegmentLength, radius)
		idx := it.tree.Attach(it.current, b)
		it.current = idx
		it.l.curve(it.tree.Branch(idx))
		it.state.Position = it.tree.Branch(idx).End()

	case 'f':
		it.state.Position = geom.Advance(it.state.Position, it.state.Direction, p.SegmentLength)

	case '+':
		it.rotate(it.l.randomizedAngle(), it.state.Up)

	case '-':
		it.rotate(-it.l.randomizedAngle(), it.state.Up)

	case '&':
		it.rotate(it.l.randomizedAngle(), it.right())

	case '^':
		it.rotate(-it.l.randomizedAngle(), it.right())

	case '\\':
		it.rotate(p.BranchAngle, it.state.Direction)

	case '/':
		it.rotate(-p.BranchAngle, it.state.Direction)

	case '[':
		it.stack = append(it.stack, frame{state: it.state, current: it.current})
		it.state.Depth++

	case ']':
		if len(it.stack) == 0 {
			return
		}
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		it.state = top.state
		it.current = top.current
	}
}

// right is the pitch axis of the cursor.
func (it *interpreter) right() r3.Vec {
	return geom.Normalize(r3.Cross(it.state.Direction, it.state.Up))
}

func (it *interpreter) rotate(degrees float64, axis r3.Vec) {
	rad := geom.Radians(degrees)
	it.state.Direction = geom.Normalize(geom.Rotate(it.state.Direction, axis, rad))
	it.state.Up = geom.Normalize(geom.Rotate(it.state.Up, axis, rad))
}

// randomizedAngle is the branch angle plus a uniform jitter. Consumes one draw.
func (l *LSystem) randomizedAngle() float64 {
	v := l.params.AngleVariation
	return l.params.BranchAngle + l.randomFloat(-v, v)
}

// curve bends b with the tropism field, one sub-step at a time, and records
// its light exposure. No-op without a field or with zero curve segments.
func (l *LSystem) curve(b *tree.Branch) {
	if l.tropism == nil || l.params.CurveSegments <= 0 {
		return
	}
	n := l.params.CurveSegments
	step := b.Length / float64(n)

	b.Curve = make([]r3.Vec, 0, n+1)
	b.Curve = append(b.Curve, b.Start)

	pos := b.Start
	dir := b.Direction
	for i := 1; i <= n; i++ {
		dir = l.tropism.ApplyTropism(dir, pos, b.Depth, b.Age)
		pos = geom.Advance(pos, dir, step)
		b.Curve = append(b.Curve, pos)
	}

	b.Direction = dir
	b.LightExposure = l.tropism.ComputeLightExposure(b.Mid(), b.Direction)
}
