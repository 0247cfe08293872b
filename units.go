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

import "github.com/ctessum/unit"

// KiloMoleDim is the dimension for amount of substance used throughout
// this library. ("mol" is reserved by the unit package.)
var KiloMoleDim = unit.NewDimension("kmol")

// Dimensions of the quantities crossing package boundaries.
var (
	// MolarMassDim is the dimension of a molar mass [kg/kmol].
	MolarMassDim = unit.Dimensions{unit.MassDim: 1, KiloMoleDim: -1}

	// MolarDensityDim is the dimension of a species molar density
	// [kmol/m³].
	MolarDensityDim = unit.Dimensions{KiloMoleDim: 1, unit.LengthDim: -3}

	// RateDim is the dimension of a reaction rate of progress
	// [kmol/(m³·s)].
	RateDim = unit.Dimensions{KiloMoleDim: 1, unit.LengthDim: -3, unit.TimeDim: -1}

	// MassSourceDim is the dimension of a species mass source
	// [kg/(m³·s)].
	MassSourceDim = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3, unit.TimeDim: -1}
)

// MolarMassUnits returns v as a molar mass quantity.
func MolarMassUnits(v float64) *unit.Unit { return unit.New(v, MolarMassDim) }

// MassSourceUnits returns v as a mass source quantity.
func MassSourceUnits(v float64) *unit.Unit { return unit.New(v, MassSourceDim) }
