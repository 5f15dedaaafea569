// Package camera provides an orbit camera for the 3D viewer.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
)

// Default pose and control sensitivities.
const (
	DefaultDistance  = 30.0
	DefaultAzimuth   = math.Pi / 4 // 45 degrees
	DefaultElevation = math.Pi / 6 // 30 degrees

	MinDistance = 1.0
	MaxDistance = 200.0

	// Elevation stays this far from straight up or down.
	poleMargin = 0.1

	OrbitSensitivity = 0.005
	PanSensitivity   = 0.01
	ZoomSensitivity  = 1.0
)

// DefaultTarget is the point the camera looks at after Reset.
var DefaultTarget = r3.Vec{Y: 10}

// Orbit circles a target point at a given distance. Angles are in radians.
type Orbit struct {
	Target    r3.Vec
	Distance  float64
	Azimuth   float64 // around the Y axis
	Elevation float64 // above the XZ plane

	FOV float64 // degrees
}

// New creates a camera in the default pose.
func New() *Orbit {
	o := &Orbit{FOV: 60}
	o.Reset()
	return o
}

// Reset restores the default pose.
func (o *Orbit) Reset() {
	o.Target = DefaultTarget
	o.Distance = DefaultDistance
	o.Azimuth = DefaultAzimuth
	o.Elevation = DefaultElevation
}

// Rotate orbits by a mouse delta in pixels.
func (o *Orbit) Rotate(dx, dy float64) {
	o.Azimuth += dx * OrbitSensitivity
	o.Elevation = geom.Clamp(o.Elevation+dy*OrbitSensitivity, -math.Pi/2+poleMargin, math.Pi/2-poleMargin)
}

// Pan drags the scene with the mouse: the target moves opposite the pixel
// delta in the view plane. Panning is faster when zoomed out.
func (o *Orbit) Pan(dx, dy float64) {
	right, up := o.basis()
	speed := PanSensitivity * o.Distance
	o.Target = r3.Add(o.Target, r3.Scale(-dx*speed, right))
	o.Target = r3.Add(o.Target, r3.Scale(dy*speed, up))
}

// Zoom moves toward the target for positive delta.
func (o *Orbit) Zoom(delta float64) {
	o.Distance = geom.Clamp(o.Distance-delta*ZoomSensitivity, MinDistance, MaxDistance)
}

// Frame points the camera at center from far enough to see a sphere of
// the given radius.
func (o *Orbit) Frame(center r3.Vec, radius float64) {
	o.Target = center
	half := geom.Radians(o.FOV) / 2
	d := radius / math.Sin(half)
	o.Distance = geom.Clamp(d, MinDistance, MaxDistance)
}

// Position returns the eye position.
func (o *Orbit) Position() r3.Vec {
	ce := math.Cos(o.Elevation)
	offset := r3.Vec{
		X: o.Distance * ce * math.Cos(o.Azimuth),
		Y: o.Distance * math.Sin(o.Elevation),
		Z: o.Distance * ce * math.Sin(o.Azimuth),
	}
	return r3.Add(o.Target, offset)
}

// Forward returns the unit view direction.
func (o *Orbit) Forward() r3.Vec {
	return geom.Normalize(r3.Sub(o.Target, o.Position()))
}

// Ray returns the view ray through a point in normalized device
// coordinates, x and y in [-1, 1] with y up. aspect is width over height.
func (o *Orbit) Ray(x, y, aspect float64) Ray {
	right, up := o.basis()
	h := math.Tan(geom.Radians(o.FOV) / 2)
	dir := r3.Add(o.Forward(), r3.Add(r3.Scale(x*h*aspect, right), r3.Scale(y*h, up)))
	return Ray{Origin: o.Position(), Dir: geom.Normalize(dir)}
}

// basis returns the screen right and up vectors.
func (o *Orbit) basis() (right, up r3.Vec) {
	fwd := o.Forward()
	right = geom.Normalize(r3.Cross(fwd, geom.Up))
	up = r3.Cross(right, fwd)
	return right, up
}
