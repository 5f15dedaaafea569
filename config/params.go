package config

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/lsystem"
	"github.com/pthm-cable/plantgrow/resources"
	"github.com/pthm-cable/plantgrow/tropism"
)

// LSystemParams builds grammar and turtle parameters.
func (c *Config) LSystemParams() lsystem.Params {
	return lsystem.Params{
		Axiom:               c.LSystem.Axiom,
		Rules:               c.Derived.Rules,
		AlternateRules:      c.Derived.AlternateRules,
		Iterations:          c.LSystem.Iterations,
		SegmentLength:       c.LSystem.SegmentLength,
		SegmentRadius:       c.LSystem.SegmentRadius,
		BranchAngle:         c.Branching.BaseAngleDegrees,
		AngleVariation:      c.Branching.AngleVariation,
		RandomSeed:          c.Growth.RandomSeed,
		StochasticVariation: c.LSystem.StochasticVariation,
		CurveSegments:       c.Derived.CurveSegments,
	}
}

// TropismParams builds the bending response.
func (c *Config) TropismParams() tropism.Params {
	t := c.Tropism
	return tropism.Params{
		PhototropismEnabled:  t.PhototropismEnabled,
		PhototropismStrength: t.PhototropismStrength,
		ResponseDistance:     t.ResponseDistance,
		GravitropismEnabled:  t.GravitropismEnabled,
		GravitropismStrength: t.GravitropismStrength,
		AgeSensitivity:       t.AgeSensitivity,
		ApicalDominance:      t.ApicalDominance,
	}
}

// TropismEnvironment builds the light and gravity environment.
func (c *Config) TropismEnvironment() tropism.Environment {
	e := c.Environment
	return tropism.Environment{
		LightPosition:    r3.Vec{X: e.LightX, Y: e.LightY, Z: e.LightZ},
		AmbientLight:     e.AmbientLight,
		GravityDirection: r3.Vec{X: e.GravityX, Y: e.GravityY, Z: e.GravityZ},
	}
}

// ResourceParams builds the resource economy parameters.
func (c *Config) ResourceParams() resources.Params {
	r := c.Resources
	return resources.Params{
		LightCompetitionEnabled:  r.LightCompetitionEnabled,
		BaseLightLevel:           r.BaseLightLevel,
		OcclusionRadius:          r.OcclusionRadius,
		OcclusionFalloff:         r.OcclusionFalloff,
		PhotosynthesisEfficiency: r.PhotosynthesisEfficiency,
		MaintenanceCost:          r.MaintenanceCost,
		PruningEnabled:           r.PruningEnabled,
		MinLightThreshold:        r.MinLightThreshold,
		MinResourceThreshold:     r.MinResourceThreshold,
		PruningGracePeriod:       r.PruningGracePeriod,
		CompetitionRadius:        r.CompetitionRadius,
		DominanceFactor:          r.DominanceFactor,
		FullCheckLimit:           r.FullCheckLimit,
		Workers:                  r.Workers,
	}
}
