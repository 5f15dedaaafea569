// Package lsystem rewrites a grammar into an instruction string and interprets
// that string with a 3D turtle to build a tree.
package lsystem

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Params configures rewriting and geometric interpretation.
type Params struct {
	Axiom      string
	Rules      map[byte]string
	Iterations int

	// AlternateRules are used instead of Rules when the stochastic variation
	// draw succeeds for a symbol. Optional.
	AlternateRules map[byte]string

	SegmentLength  float64
	SegmentRadius  float64
	BranchAngle    float64 // degrees
	AngleVariation float64 // degrees, uniform +/-

	RandomSeed          int64
	StochasticVariation float64 // 0-1, probability a rule application is varied

	// CurveSegments is the number of tropism sub-steps per branch. 0 keeps
	// branches straight.
	CurveSegments int
}

// DefaultParams returns a small binary tree grammar.
func DefaultParams() Params {
	return Params{
		Axiom:          "F",
		Rules:          map[byte]string{'F': "F[+F][-F]F"},
		Iterations:     5,
		SegmentLength:  1.0,
		SegmentRadius:  0.1,
		BranchAngle:    30,
		AngleVariation: 10,
		RandomSeed:     12345,
	}
}

// Field curves branch paths while they are interpreted.
type Field interface {
	ApplyTropism(dir, pos r3.Vec, depth, age int) r3.Vec
	ComputeLightExposure(pos, dir r3.Vec) float64
}

// LSystem owns one seeded random source shared by rewriting and
// interpretation, so a seed reproduces an identical tree.
type LSystem struct {
	params  Params
	rng     *rand.Rand
	tropism Field
}

// New creates an L-system. The rule maps are copied.
func New(params Params) *LSystem {
	params.Rules = copyRules(params.Rules)
	params.AlternateRules = copyRules(params.AlternateRules)
	return &LSystem{
		params: params,
		rng:    rand.New(rand.NewSource(params.RandomSeed)),
	}
}

// SetTropism installs the field used to curve branches. nil disables curving.
func (l *LSystem) SetTropism(f Field) {
	l.tropism = f
}

// Params returns a copy of the parameters.
func (l *LSystem) Params() Params {
	p := l.params
	p.Rules = copyRules(p.Rules)
	p.AlternateRules = copyRules(p.AlternateRules)
	return p
}

// randomFloat draws uniformly from [lo, hi). Always consumes one draw.
func (l *LSystem) randomFloat(lo, hi float64) float64 {
	return lo + l.rng.Float64()*(hi-lo)
}

// randomChance consumes one draw and reports whether it fell below p.
func (l *LSystem) randomChance(p float64) bool {
	return l.rng.Float64() < p
}

func copyRules(in map[byte]string) map[byte]string {
	if in == nil {
		return nil
	}
	out := make(map[byte]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
