/*
Copyright © 2024 the Gaskin authors.
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

package gaskin

import "testing"

func TestNewMixtureErrors(t *testing.T) {
	cases := []struct {
		name    string
		species []Species
	}{
		{"no species", nil},
		{"unnamed species", []Species{{"", 2.0}}},
		{"zero molar mass", []Species{{"A", 0}}},
		{"negative molar mass", []Species{{"A", -28.0}}},
		{"duplicate name", []Species{{"A", 2.0}, {"B", 4.0}, {"A", 2.0}}},
	}
	for _, test := range cases {
		if _, err := NewMixture(test.species); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestMixtureIndexing(t *testing.T) {
	mix, err := NewMixture([]Species{{"N2", 28.0134}, {"O2", 31.9988}, {"Ar", 39.948}})
	if err != nil {
		t.Fatal(err)
	}
	if n := mix.NSpecies(); n != 3 {
		t.Fatalf("have %d species, want 3", n)
	}
	if i := mix.SpeciesIndex("O2"); i != 1 {
		t.Errorf("O2 index is %d, want 1", i)
	}
	if i := mix.SpeciesIndex("CO2"); i != -1 {
		t.Errorf("missing species index is %d, want -1", i)
	}
	if s := mix.Species(2); s.Name != "Ar" || absDifferent(s.MolarMass, 39.948) {
		t.Errorf("species 2 is %+v, want Ar", s)
	}
	if absDifferent(mix.MolarMass(0), 28.0134) {
		t.Errorf("N2 molar mass is %g", mix.MolarMass(0))
	}
}

func TestMixtureR(t *testing.T) {
	// Dry air as N2/O2/Ar should give a gas constant near 287 J/(kg·K).
	mix, err := NewMixture([]Species{{"N2", 28.0134}, {"O2", 31.9988}, {"Ar", 39.948}})
	if err != nil {
		t.Fatal(err)
	}
	Y := []float64{0.7552, 0.2314, 0.0134}
	r, err := mix.R(Y)
	if err != nil {
		t.Fatal(err)
	}
	if different(r, 287.0, 1.e-2) {
		t.Errorf("air gas constant is %g, want about 287", r)
	}
	if _, err := mix.R(Y[:2]); err == nil {
		t.Error("short mass fractions: expected an error")
	}
}

func TestMixtureMolarDensities(t *testing.T) {
	mix, err := NewMixture([]Species{{"A", 2.0}, {"B", 4.0}})
	if err != nil {
		t.Fatal(err)
	}
	Y := []float64{0.5, 0.5}
	c := make([]float64, 2)
	if err := mix.MolarDensities(8.0, Y, c); err != nil {
		t.Fatal(err)
	}
	// c_i = rho*Y_i/M_i.
	if absDifferent(c[0], 2.0) || absDifferent(c[1], 1.0) {
		t.Errorf("molar densities are %v, want [2 1]", c)
	}
	if err := mix.MolarDensities(0, Y, c); err == nil {
		t.Error("zero density: expected an error")
	}
	if err := mix.MolarDensities(8.0, Y, c[:1]); err == nil {
		t.Error("short output: expected an error")
	}
}

func TestMixtureMoleFractions(t *testing.T) {
	mix, err := NewMixture([]Species{{"A", 2.0}, {"B", 4.0}})
	if err != nil {
		t.Fatal(err)
	}
	X := make([]float64, 2)
	if err := mix.MoleFractions([]float64{0.5, 0.5}, X); err != nil {
		t.Fatal(err)
	}
	// Equal masses and a 2:1 molar mass ratio give 2/3 and 1/3.
	if absDifferent(X[0], 2./3.) || absDifferent(X[1], 1./3.) {
		t.Errorf("mole fractions are %v, want [2/3 1/3]", X)
	}
	if err := mix.MoleFractions([]float64{0, 0}, X); err == nil {
		t.Error("all-zero mass fractions: expected an error")
	}
}

func TestMixtureMolarMassMixture(t *testing.T) {
	mix, err := NewMixture([]Species{{"A", 2.0}, {"B", 4.0}})
	if err != nil {
		t.Fatal(err)
	}
	m, err := mix.MolarMassMixture([]float64{0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	// 1/(0.25+0.125).
	if absDifferent(m, 8./3.) {
		t.Errorf("mixture molar mass is %g, want 8/3", m)
	}
}
