// Package tree holds the branch hierarchy produced by the turtle interpreter.
//
// Branches live in an arena owned by Tree and refer to each other by index.
// The arena is insertion ordered, so a parent always has a smaller index than
// any of its children.
package tree

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
)

// NoParent is the parent index of the root branch.
const NoParent = -1

// Branch is a single segment of the tree.
type Branch struct {
	Start     r3.Vec
	Direction r3.Vec // always unit length
	Length    float64
	Radius    float64

	Depth int // distance from the root (root = 0)
	Age   int // caller-driven cycles survived

	// Curve is the tropism-bent path from Start to the branch end.
	// Empty for straight branches.
	Curve []r3.Vec

	// LightExposure is the cached light level in [0, 1].
	LightExposure float64

	Parent   int
	Children []int
}

// NewBranch creates an unattached branch. The direction is normalized.
func NewBranch(start, dir r3.Vec, length, radius float64) Branch {
	return Branch{
		Start:         start,
		Direction:     geom.Normalize(dir),
		Length:        length,
		Radius:        radius,
		LightExposure: 1.0,
		Parent:        NoParent,
	}
}

// End returns the last curve point, or the straight-line end.
func (b *Branch) End() r3.Vec {
	if len(b.Curve) > 0 {
		return b.Curve[len(b.Curve)-1]
	}
	return geom.Advance(b.Start, b.Direction, b.Length)
}

// Mid returns the point halfway along the straight axis of the branch.
func (b *Branch) Mid() r3.Vec {
	return geom.Advance(b.Start, b.Direction, b.Length*0.5)
}

// IsRoot reports whether the branch has no parent.
func (b *Branch) IsRoot() bool {
	return b.Parent == NoParent
}

// PathPoints returns the curve if present, otherwise segments+1 evenly
// spaced points along the straight axis.
func (b *Branch) PathPoints(segments int) []r3.Vec {
	if len(b.Curve) > 0 {
		out := make([]r3.Vec, len(b.Curve))
		copy(out, b.Curve)
		return out
	}
	if segments < 1 {
		segments = 1
	}
	out := make([]r3.Vec, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		out = append(out, geom.Advance(b.Start, b.Direction, b.Length*t))
	}
	return out
}
