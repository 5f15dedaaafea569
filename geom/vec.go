// Package geom provides the small set of 3D vector helpers shared by the
// interpreter, the tropism field and the resource simulator.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the canonical up vector. Degenerate directions normalize to it.
var Up = r3.Vec{X: 0, Y: 1, Z: 0}

// minLength is the length below which a vector is treated as zero.
const minLength = 1e-6

// Normalize returns v scaled to unit length, or Up if v is (nearly) zero.
func Normalize(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < minLength {
		return Up
	}
	return r3.Scale(1/n, v)
}

// Rotate rotates v about axis by angle radians using an axis-angle
// quaternion. The axis is normalized first.
func Rotate(v, axis r3.Vec, angle float64) r3.Vec {
	rot := r3.NewRotation(angle, Normalize(axis))
	return rot.Rotate(v)
}

// Lerp blends a toward b by t without clamping.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(r3.Scale(1-t, a), r3.Scale(t, b))
}

// Advance returns p moved along dir by dist.
func Advance(p, dir r3.Vec, dist float64) r3.Vec {
	return r3.Add(p, r3.Scale(dist, dir))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// HorizontalDistance ignores the Y axis.
func HorizontalDistance(a, b r3.Vec) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
