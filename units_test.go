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

package gaskin

import (
	"testing"

	"github.com/ctessum/unit"
)

func TestDimensionStrings(t *testing.T) {
	// Renderings must stay stable: mechanism files declare molar mass
	// units with the exact MolarMassDim string.
	cases := []struct {
		dims unit.Dimensions
		want string
	}{
		{MolarMassDim, "kg kmol^-1"},
		{MolarDensityDim, "kmol m^-3"},
		{RateDim, "kmol m^-3 s^-1"},
		{MassSourceDim, "kg m^-3 s^-1"},
	}
	for _, test := range cases {
		if s := test.dims.String(); s != test.want {
			t.Errorf("dimension renders as %q, want %q", s, test.want)
		}
	}
}

func TestUnitConstructors(t *testing.T) {
	m := MolarMassUnits(28.0134)
	if absDifferent(m.Value(), 28.0134) {
		t.Errorf("molar mass value is %g", m.Value())
	}
	if !m.Dimensions().Matches(MolarMassDim) {
		t.Errorf("molar mass dimensions are %v", m.Dimensions())
	}
	s := MassSourceUnits(-0.5)
	if err := s.Check(MassSourceDim); err != nil {
		t.Error(err)
	}
	if s.Dimensions().Matches(MolarMassDim) {
		t.Error("a mass source should not match a molar mass")
	}
}
