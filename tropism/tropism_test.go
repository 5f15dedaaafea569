package tropism

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestApplyTropismReturnsUnit(t *testing.T) {
	s := New(DefaultParams(), DefaultEnvironment())
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		dir := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		pos := r3.Vec{X: rng.Float64() * 20, Y: rng.Float64() * 20, Z: rng.Float64() * 20}
		got := s.ApplyTropism(dir, pos, rng.Intn(8), rng.Intn(5))
		if math.Abs(r3.Norm(got)-1) > 1e-4 {
			t.Fatalf("non-unit direction %v", got)
		}
	}
}

func TestPhototropismBendsTowardLight(t *testing.T) {
	params := DefaultParams()
	params.GravitropismEnabled = false
	env := DefaultEnvironment()
	env.LightPosition = r3.Vec{X: 100, Y: 0, Z: 0}
	s := New(params, env)

	dir := r3.Vec{Y: 1}
	got := s.ApplyTropism(dir, r3.Vec{}, 1, 0)
	if got.X <= 0 {
		t.Errorf("expected bend toward +X light, got %v", got)
	}
}

func TestPhototropismFalloffBeyondRange(t *testing.T) {
	params := DefaultParams()
	params.ResponseDistance = 0.1 // falloff reaches zero at 10 units
	env := DefaultEnvironment()
	env.LightPosition = r3.Vec{X: 100}
	s := New(params, env)

	dir := r3.Vec{Y: 1}
	got := s.ApplyPhototropism(dir, r3.Vec{})
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("expected no bend beyond response distance, got %v", got)
	}
}

func TestPhototropismAlignedBendsLess(t *testing.T) {
	params := DefaultParams()
	env := DefaultEnvironment()
	env.LightPosition = r3.Vec{X: 10, Y: 10}
	s := New(params, env)

	// Facing roughly toward the light vs perpendicular to it.
	aligned := r3.Unit(r3.Vec{X: 1, Y: 0.8})
	perp := r3.Unit(r3.Vec{X: -1, Y: 1})

	angle := func(a, b r3.Vec) float64 { return math.Acos(math.Min(1, r3.Dot(a, b))) }
	alignedTurn := angle(aligned, s.ApplyPhototropism(aligned, r3.Vec{}))
	perpTurn := angle(perp, s.ApplyPhototropism(perp, r3.Vec{}))
	if alignedTurn >= perpTurn {
		t.Errorf("aligned branch turned %f, perpendicular %f", alignedTurn, perpTurn)
	}
}

func TestGravitropismTrunkRisesBranchesDroop(t *testing.T) {
	params := DefaultParams()
	params.PhototropismEnabled = false
	s := New(params, DefaultEnvironment())

	horizontal := r3.Vec{X: 1}

	trunk := s.ApplyTropism(horizontal, r3.Vec{}, 0, 0)
	if trunk.Y <= 0 {
		t.Errorf("trunk should bend upward, got %v", trunk)
	}

	lateral := s.ApplyTropism(horizontal, r3.Vec{}, 1, 0)
	if lateral.Y >= 0 {
		t.Errorf("lateral branch should droop, got %v", lateral)
	}

	deep := s.ApplyTropism(horizontal, r3.Vec{}, 6, 0)
	if deep.Y >= lateral.Y {
		t.Errorf("deeper branch should droop more: depth1 %v depth6 %v", lateral, deep)
	}
}

func TestAgeStiffensResponse(t *testing.T) {
	params := DefaultParams()
	params.PhototropismEnabled = false
	params.AgeSensitivity = 10
	s := New(params, DefaultEnvironment())

	dir := r3.Vec{X: 1}
	young := s.ApplyTropism(dir, r3.Vec{}, 3, 0)
	old := s.ApplyTropism(dir, r3.Vec{}, 3, 20)
	if old.Y <= young.Y {
		t.Errorf("old branch should droop less: young %v old %v", young, old)
	}
}

func TestLightExposureBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		env := Environment{
			LightPosition:    r3.Vec{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100, Z: rng.Float64()*200 - 100},
			AmbientLight:     rng.Float64()*1.5 - 0.25,
			GravityDirection: r3.Vec{Y: -1},
		}
		s := New(DefaultParams(), env)
		dir := r3.Unit(r3.Vec{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5, Z: rng.Float64() - 0.5})
		e := s.ComputeLightExposure(r3.Vec{X: rng.Float64(), Y: rng.Float64()}, dir)
		if e < 0 || e > 1 {
			t.Fatalf("exposure out of range: %f", e)
		}
	}
}

func TestLightExposureFloorsAtAmbient(t *testing.T) {
	env := DefaultEnvironment()
	env.AmbientLight = 0.3
	s := New(DefaultParams(), env)

	away := s.ComputeLightExposure(r3.Vec{}, r3.Vec{Y: -1})
	if math.Abs(away-0.3) > 1e-12 {
		t.Errorf("facing away should give ambient 0.3, got %f", away)
	}
	toward := s.ComputeLightExposure(r3.Vec{}, r3.Vec{Y: 1})
	if math.Abs(toward-1) > 1e-12 {
		t.Errorf("facing light should give 1, got %f", toward)
	}
}
