package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
	"github.com/pthm-cable/plantgrow/tree"
)

// Ray is a half line from Origin along the unit vector Dir.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// Pick returns the index of the branch hit first along the ray, or -1.
// A branch counts as hit when any of its segments passes within its radius
// plus tolerance of the ray.
func Pick(t *tree.Tree, ray Ray, tolerance float64) int {
	ray.Dir = geom.Normalize(ray.Dir)
	best, bestS := -1, math.Inf(1)
	for i, b := range t.Branches() {
		pts := b.PathPoints(1)
		limit := b.Radius + tolerance
		for k := 1; k < len(pts); k++ {
			d, s := raySegment(ray, pts[k-1], pts[k])
			if d <= limit && s < bestS {
				best, bestS = i, s
			}
		}
	}
	return best
}

// raySegment returns the closest distance between the ray and segment ab,
// and the ray parameter at the closest approach.
func raySegment(ray Ray, a, b r3.Vec) (dist, s float64) {
	u := r3.Sub(b, a)
	w := r3.Sub(ray.Origin, a)
	uu := r3.Dot(u, u)
	du := r3.Dot(ray.Dir, u)
	dw := r3.Dot(ray.Dir, w)
	uw := r3.Dot(u, w)

	var t float64
	denom := uu - du*du // |d| = 1
	if uu == 0 {
		t = 0
	} else if denom > 1e-12 {
		t = geom.Clamp((uw-du*dw)/denom, 0, 1)
	}
	// Re-project onto the ray for the clamped segment point.
	p := r3.Add(a, r3.Scale(t, u))
	s = r3.Dot(r3.Sub(p, ray.Origin), ray.Dir)
	if s < 0 {
		s = 0
	}
	q := r3.Add(ray.Origin, r3.Scale(s, ray.Dir))
	return r3.Norm(r3.Sub(p, q)), s
}

// Bounds returns the center and radius of a sphere enclosing every branch
// end point. An empty tree yields the default target.
func Bounds(t *tree.Tree) (center r3.Vec, radius float64) {
	if t.Len() == 0 {
		return DefaultTarget, 1
	}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	grow := func(p r3.Vec) {
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	for _, b := range t.Branches() {
		grow(b.Start)
		grow(b.End())
	}
	center = r3.Scale(0.5, r3.Add(lo, hi))
	radius = 0.5 * r3.Norm(r3.Sub(hi, lo))
	if radius < 1 {
		radius = 1
	}
	return center, radius
}
