package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/tree"
)

func pickTree() *tree.Tree {
	t := tree.New()
	root := t.SetRoot(tree.NewBranch(r3.Vec{}, r3.Vec{Y: 1}, 5, 0.5))
	t.Attach(root, tree.NewBranch(r3.Vec{Y: 5}, r3.Vec{X: 1}, 4, 0.2))
	t.Attach(root, tree.NewBranch(r3.Vec{Y: 5}, r3.Vec{X: -1}, 4, 0.2))
	return t
}

func TestPickHitsNearestBranch(t *testing.T) {
	tr := pickTree()

	// Straight at the trunk from +Z.
	hit := Pick(tr, Ray{Origin: r3.Vec{Y: 2, Z: 20}, Dir: r3.Vec{Z: -1}}, 0)
	if hit != 0 {
		t.Errorf("expected trunk, got %d", hit)
	}

	// Through the right branch.
	hit = Pick(tr, Ray{Origin: r3.Vec{X: 3, Y: 5, Z: 20}, Dir: r3.Vec{Z: -1}}, 0)
	if hit != 1 {
		t.Errorf("expected right branch, got %d", hit)
	}
}

func TestPickMiss(t *testing.T) {
	tr := pickTree()
	if hit := Pick(tr, Ray{Origin: r3.Vec{X: 50, Y: 50, Z: 20}, Dir: r3.Vec{Z: -1}}, 0.1); hit != -1 {
		t.Errorf("expected miss, got %d", hit)
	}
	// Pointing away from the tree.
	if hit := Pick(tr, Ray{Origin: r3.Vec{Y: 2, Z: 20}, Dir: r3.Vec{Z: 1}}, 0); hit != -1 {
		t.Errorf("expected miss behind the origin, got %d", hit)
	}
}

func TestPickTolerance(t *testing.T) {
	tr := pickTree()
	ray := Ray{Origin: r3.Vec{X: 0.8, Y: 2, Z: 20}, Dir: r3.Vec{Z: -1}}
	if hit := Pick(tr, ray, 0); hit != -1 {
		t.Errorf("expected miss without tolerance, got %d", hit)
	}
	if hit := Pick(tr, ray, 0.5); hit != 0 {
		t.Errorf("expected trunk with tolerance, got %d", hit)
	}
}

func TestBounds(t *testing.T) {
	center, radius := Bounds(pickTree())
	// Box spans x in [-4, 4], y in [0, 5], z = 0.
	if center != (r3.Vec{Y: 2.5}) {
		t.Errorf("unexpected center %v", center)
	}
	if want := 0.5 * math.Hypot(8, 5); math.Abs(radius-want) > 1e-9 {
		t.Errorf("radius = %f, want %f", radius, want)
	}

	center, radius = Bounds(tree.New())
	if center != DefaultTarget || radius != 1 {
		t.Errorf("empty tree bounds = %v %f", center, radius)
	}
}

func TestRayThroughCenterIsForward(t *testing.T) {
	cam := New()
	ray := cam.Ray(0, 0, 16.0/9.0)
	if r3.Norm(r3.Sub(ray.Dir, cam.Forward())) > 1e-9 {
		t.Errorf("center ray %v differs from forward %v", ray.Dir, cam.Forward())
	}
	if ray.Origin != cam.Position() {
		t.Error("ray should start at the eye")
	}
}

func TestRayScreenAxes(t *testing.T) {
	cam := New()
	cam.Azimuth = math.Pi / 2 // eye on +Z looking toward -Z
	cam.Elevation = 0
	up := cam.Ray(0, 1, 1)
	right := cam.Ray(1, 0, 1)
	if up.Dir.Y <= 0 {
		t.Errorf("top of screen should point up, got %v", up.Dir)
	}
	if right.Dir.X <= 0 {
		t.Errorf("right of screen should point +X, got %v", right.Dir)
	}
}
