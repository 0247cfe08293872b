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

// Package gaskin computes the rate of change of species mass densities
// caused by gas-phase chemical reactions. It couples a description of a
// reacting gas mixture (Mixture, Reaction) with pluggable reaction rate
// models (Mechanism) to produce per-species mass source terms for use in
// reacting-flow solvers.
//
// All quantities are in SI units with the kilomole as the unit for
// amount of substance: molar masses are in kg/kmol (numerically equal to
// g/mol), molar densities in kmol/m³, reaction rates of progress in
// kmol/(m³·s), and mass sources in kg/(m³·s).
package gaskin

// Version gives the version number of this library.
const Version = "0.4.2"

// Physical constants.
const (
	// RUniversal is the universal gas constant [J/(kmol·K)].
	RUniversal = 8314.462618

	// P0 is the standard-state reference pressure [Pa] used when
	// converting between pressure- and concentration-based equilibrium
	// constants.
	P0 = 1.0e5
)
