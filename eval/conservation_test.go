package eval

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/farscape-project/gaskin"
	"github.com/farscape-project/gaskin/mech/arrhenius"
)

// TestMassConservation reacts random states of a mass-balanced
// hydrogen-oxygen mechanism and checks that the sources always sum to
// zero: chemistry moves mass between species but never creates it.
func TestMassConservation(t *testing.T) {
	m, err := arrhenius.LoadFile("../mech/arrhenius/testdata/h2o2.toml")
	if err != nil {
		t.Fatal(err)
	}
	thermo, err := m.Thermo()
	if err != nil {
		t.Fatal(err)
	}
	k, err := gaskin.NewKinetics(m)
	if err != nil {
		t.Fatal(err)
	}
	mix := m.Mixture()
	n := mix.NSpecies()

	conc := make([]float64, n)
	hRTMinusSR := make([]float64, n)
	src := make([]float64, n)
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		T, rho, y, _ := randomState(rng, n)
		Rmix, err := mix.R(y)
		if err != nil {
			t.Fatal(err)
		}
		if err := mix.MolarDensities(rho, y, conc); err != nil {
			t.Fatal(err)
		}
		if err := thermo.PotentialTerms(T, hRTMinusSR); err != nil {
			t.Fatal(err)
		}
		if err := k.MassSources(T, rho, Rmix, y, conc, hRTMinusSR, src); err != nil {
			t.Fatal(err)
		}

		scale := 0.0
		for _, s := range src {
			scale = math.Max(scale, math.Abs(s))
		}
		if total := floats.Sum(src); math.Abs(total) > 1e-9*scale {
			t.Errorf("trial %d: sources sum to %g with largest source %g", trial, total, scale)
		}
	}
}
