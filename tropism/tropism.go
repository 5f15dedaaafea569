// Package tropism bends branch growth toward light and with or against gravity.
package tropism

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/geom"
)

// Environment describes the surroundings a tree grows in.
type Environment struct {
	LightPosition    r3.Vec
	AmbientLight     float64 // 0-1
	GravityDirection r3.Vec
}

// DefaultEnvironment returns a light straight overhead and gravity along -Y.
func DefaultEnvironment() Environment {
	return Environment{
		LightPosition:    r3.Vec{X: 0, Y: 100, Z: 0},
		AmbientLight:     0.2,
		GravityDirection: r3.Vec{X: 0, Y: -1, Z: 0},
	}
}

// Params configures the tropism responses.
type Params struct {
	PhototropismEnabled  bool
	PhototropismStrength float64 // 0-1
	ResponseDistance     float64 // light falloff scale, 0 disables falloff

	GravitropismEnabled  bool
	GravitropismStrength float64 // 0-1

	AgeSensitivity  float64 // how quickly older branches stiffen
	ApicalDominance float64 // 0-1, how strongly the trunk resists bending
}

// DefaultParams returns the stock tropism settings.
func DefaultParams() Params {
	return Params{
		PhototropismEnabled:  true,
		PhototropismStrength: 0.8,
		ResponseDistance:     5.0,
		GravitropismEnabled:  true,
		GravitropismStrength: 0.6,
		AgeSensitivity:       0.5,
		ApicalDominance:      0.65,
	}
}

// System evaluates the tropism field. It is read-only after construction and
// safe for concurrent use.
type System struct {
	params Params
	env    Environment
}

// New creates a tropism system.
func New(params Params, env Environment) *System {
	env.GravityDirection = geom.Normalize(env.GravityDirection)
	return &System{params: params, env: env}
}

// Params returns the configured parameters.
func (s *System) Params() Params { return s.params }

// Environment returns the configured environment.
func (s *System) Environment() Environment { return s.env }

// ApplyTropism returns the corrected unit direction for a branch growing along
// dir at pos.
func (s *System) ApplyTropism(dir, pos r3.Vec, depth, age int) r3.Vec {
	result := geom.Normalize(dir)
	ageMod := s.ageModifier(age)

	if s.params.PhototropismEnabled {
		result = s.phototropism(result, pos, ageMod)
	}
	if s.params.GravitropismEnabled {
		result = s.gravitropism(result, depth, ageMod)
	}
	return geom.Normalize(result)
}

// ApplyPhototropism bends dir toward the light source.
func (s *System) ApplyPhototropism(dir, pos r3.Vec) r3.Vec {
	return s.phototropism(geom.Normalize(dir), pos, 1)
}

// ApplyGravitropism bends dir according to gravity and depth.
func (s *System) ApplyGravitropism(dir r3.Vec, depth int) r3.Vec {
	return s.gravitropism(geom.Normalize(dir), depth, 1)
}

// ComputeLightExposure returns how directly a branch at pos facing dir sees
// the light, floored at the ambient level. Always in [0, 1].
func (s *System) ComputeLightExposure(pos, dir r3.Vec) float64 {
	toLight := geom.Normalize(r3.Sub(s.env.LightPosition, pos))
	alignment := r3.Dot(dir, toLight)
	exposure := (alignment + 1) * 0.5
	exposure = math.Max(exposure, s.env.AmbientLight)
	return geom.Clamp01(exposure)
}

func (s *System) phototropism(dir, pos r3.Vec, ageMod float64) r3.Vec {
	offset := r3.Sub(s.env.LightPosition, pos)
	toLight := geom.Normalize(offset)
	dist := r3.Norm(offset)

	falloff := 1.0
	if s.params.ResponseDistance > 0 {
		falloff = math.Max(0, 1-dist/(s.params.ResponseDistance*100))
	}

	// Branches already facing the light bend half as much.
	alignment := r3.Dot(dir, toLight)
	alignFactor := 1 - math.Max(0, alignment)*0.5

	strength := s.params.PhototropismStrength * falloff * alignFactor * ageMod
	return bendToward(dir, toLight, strength)
}

func (s *System) gravitropism(dir r3.Vec, depth int, ageMod float64) r3.Vec {
	depthFactor := geom.Clamp01(1 - s.params.ApicalDominance/(float64(depth)+1))
	strength := s.params.GravitropismStrength * depthFactor * ageMod

	target := s.env.GravityDirection
	if depth == 0 {
		// The trunk grows against gravity, at half strength.
		target = geom.Up
		strength *= 0.5
	}
	return bendToward(dir, target, strength)
}

// ageModifier is 1 for new growth and stiffens toward 0.3 with age.
func (s *System) ageModifier(age int) float64 {
	return geom.Clamp(1-float64(age)*s.params.AgeSensitivity*0.01, 0.3, 1)
}

func bendToward(cur, target r3.Vec, strength float64) r3.Vec {
	strength = geom.Clamp01(strength)
	return geom.Normalize(geom.Lerp(cur, target, strength))
}
