/*
Copyright © 2025 the Gaskin authors.
This file is part of Gaskin.

Gaskin is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gaskin is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gaskin.  If not, see <http://www.gnu.org/licenses/>.
*/

package reactor

import (
	"fmt"
	"io/ioutil"
	"math"
	"strings"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/farscape-project/gaskin"
)

const testTolerance = 1.e-10

// decayMechanism is a one-reaction mechanism (2 A => B) whose rate of
// progress is k times the molar density of A. If failY is positive,
// rate evaluation fails whenever the mass fraction of A exceeds it.
type decayMechanism struct {
	mix   *gaskin.Mixture
	rxn   gaskin.Reaction
	k     float64
	failY float64
}

func (m *decayMechanism) Mixture() *gaskin.Mixture        { return m.mix }
func (m *decayMechanism) NReactions() int                 { return 1 }
func (m *decayMechanism) Reaction(i int) *gaskin.Reaction { return &m.rxn }

func (m *decayMechanism) ReactionRates(T, rho, Rmix float64, massFractions, molarDensities, hRTMinusSR, netRates []float64) error {
	if m.failY > 0 && massFractions[0] > m.failY {
		return fmt.Errorf("decay mechanism: unstable state")
	}
	netRates[0] = m.k * molarDensities[0]
	return nil
}

func decayTestMechanism(t *testing.T, k float64) *decayMechanism {
	t.Helper()
	mix, err := gaskin.NewMixture([]gaskin.Species{
		{Name: "A", MolarMass: 2},
		{Name: "B", MolarMass: 4},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &decayMechanism{
		mix: mix,
		rxn: gaskin.Reaction{
			Equation:  "2 A => B",
			Reactants: []gaskin.Stoich{{Species: 0, Coeff: 2}},
			Products:  []gaskin.Stoich{{Species: 1, Coeff: 1}},
		},
		k: k,
	}
}

func decayStateField() *StateField {
	s := NewStateField(2, 2, 3)
	for i := range s.Temperature.Elements {
		yA := 0.1 + 0.05*float64(i)
		s.Temperature.Elements[i] = 300
		s.Density.Elements[i] = 1 + 0.5*float64(i)
		s.MassFractions[0].Elements[i] = yA
		s.MassFractions[1].Elements[i] = 1 - yA
	}
	return s
}

// thermoFunc adapts a function to the Thermo interface.
type thermoFunc func(T float64, hRTMinusSR []float64) error

func (f thermoFunc) PotentialTerms(T float64, hRTMinusSR []float64) error { return f(T, hRTMinusSR) }

func TestComputeSources(t *testing.T) {
	mech := decayTestMechanism(t, 3)
	state := decayStateField()
	log := logrus.New()
	log.Out = ioutil.Discard
	f, err := ComputeSources(mech, nil, state, Config{Processors: 1, Log: log})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Names) != 2 || f.Names[0] != "A" || f.Names[1] != "B" {
		t.Fatalf("unexpected species names %v", f.Names)
	}
	for _, name := range f.Names {
		arr := f.Sources[name]
		if arr == nil {
			t.Fatalf("missing sources for %s", name)
		}
		if !sameShape(arr, state.Temperature) {
			t.Fatalf("sources for %s have shape %v; want %v", name, arr.Shape, state.Temperature.Shape)
		}
	}
	for i := range state.Temperature.Elements {
		rho := state.Density.Elements[i]
		yA := state.MassFractions[0].Elements[i]
		rate := 3 * rho * yA / 2
		if got, want := f.Sources["A"].Elements[i], -4*rate; different(got, want, testTolerance) {
			t.Errorf("cell %d: source of A is %g; want %g", i, got, want)
		}
		if got, want := f.Sources["B"].Elements[i], 4*rate; different(got, want, testTolerance) {
			t.Errorf("cell %d: source of B is %g; want %g", i, got, want)
		}
	}
}

// Splitting the cells among workers must not change the result, because
// every cell is computed independently.
func TestComputeSourcesParallel(t *testing.T) {
	mech := decayTestMechanism(t, 1.7e4)
	state := decayStateField()
	serial, err := ComputeSources(mech, nil, state, Config{Processors: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, nprocs := range []int{0, 4, 17} {
		parallel, err := ComputeSources(mech, nil, state, Config{Processors: nprocs})
		if err != nil {
			t.Fatal(err)
		}
		for _, name := range serial.Names {
			for i, want := range serial.Sources[name].Elements {
				if got := parallel.Sources[name].Elements[i]; got != want {
					t.Errorf("%d processors: cell %d of %s is %g; want %g", nprocs, i, name, got, want)
				}
			}
		}
	}
}

func TestComputeSourcesThermo(t *testing.T) {
	mech := decayTestMechanism(t, 2)
	mech.rxn.Reversible = true
	state := decayStateField()

	if _, err := ComputeSources(mech, nil, state, Config{Processors: 1}); err == nil {
		t.Error("expected an error for a reversible mechanism without thermodynamic data")
	} else if !strings.Contains(err.Error(), "reversible") {
		t.Errorf("unexpected error %v", err)
	}

	zeros := thermoFunc(func(T float64, hRTMinusSR []float64) error {
		for i := range hRTMinusSR {
			hRTMinusSR[i] = 0
		}
		return nil
	})
	if _, err := ComputeSources(mech, zeros, state, Config{Processors: 1}); err != nil {
		t.Errorf("with thermodynamic data: %v", err)
	}

	broken := thermoFunc(func(T float64, hRTMinusSR []float64) error {
		return fmt.Errorf("no fit at %g K", T)
	})
	if _, err := ComputeSources(mech, broken, state, Config{Processors: 1}); err == nil {
		t.Error("expected a thermodynamics error")
	} else if !strings.Contains(err.Error(), "no fit") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestComputeSourcesErrors(t *testing.T) {
	mech := decayTestMechanism(t, 3)

	if _, err := ComputeSources(mech, nil, NewStateField(1, 2, 3), Config{Processors: 1}); err == nil {
		t.Error("expected an error for a state field with too few species")
	}

	state := decayStateField()
	state.Density = sparse.ZerosDense(3, 2)
	if _, err := ComputeSources(mech, nil, state, Config{Processors: 1}); err == nil {
		t.Error("expected an error for mismatched array shapes")
	}

	state = decayStateField()
	state.Temperature.Elements[1] = -5
	if _, err := ComputeSources(mech, nil, state, Config{Processors: 1}); err == nil {
		t.Error("expected an error for a negative temperature")
	} else if !strings.Contains(err.Error(), "cell 1") {
		t.Errorf("unexpected error %v", err)
	}

	mech.failY = 0.2
	state = decayStateField()
	if _, err := ComputeSources(mech, nil, state, Config{Processors: 1}); err == nil {
		t.Error("expected a mechanism error to pass through")
	} else if !strings.Contains(err.Error(), "unstable") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNewStateField(t *testing.T) {
	s := NewStateField(3, 4, 5)
	if got := s.Cells(); got != 20 {
		t.Errorf("state field has %d cells; want 20", got)
	}
	if len(s.MassFractions) != 3 {
		t.Errorf("state field has %d mass fraction arrays; want 3", len(s.MassFractions))
	}
	if err := s.check(3); err != nil {
		t.Error(err)
	}
}

func BenchmarkComputeSources(b *testing.B) {
	mix, err := gaskin.NewMixture([]gaskin.Species{
		{Name: "A", MolarMass: 2},
		{Name: "B", MolarMass: 4},
	})
	if err != nil {
		b.Fatal(err)
	}
	mech := &decayMechanism{
		mix: mix,
		rxn: gaskin.Reaction{
			Equation:  "2 A => B",
			Reactants: []gaskin.Stoich{{Species: 0, Coeff: 2}},
			Products:  []gaskin.Stoich{{Species: 1, Coeff: 1}},
		},
		k: 3,
	}
	state := NewStateField(2, 10, 10, 10)
	for i := range state.Temperature.Elements {
		state.Temperature.Elements[i] = 1200
		state.Density.Elements[i] = 0.5
		state.MassFractions[0].Elements[i] = 0.4
		state.MassFractions[1].Elements[i] = 0.6
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := ComputeSources(mech, nil, state, Config{}); err != nil {
			b.Fatal(err)
		}
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
