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

// Mechanism is an interface for gas-phase reaction mechanisms: a fixed
// set of reactions among the species of a Mixture together with a rate
// model for each reaction.
//
// Implementations must be usable concurrently from multiple goroutines
// as long as the underlying data is not modified.
type Mechanism interface {
	// Mixture returns the species table shared by all reactions in the
	// mechanism.
	Mixture() *Mixture

	// NReactions returns the number of reactions in the mechanism.
	NReactions() int

	// Reaction returns reaction i. The returned value must not be
	// modified.
	Reaction(i int) *Reaction

	// ReactionRates computes the net rate of progress [kmol/(m³·s)] of
	// every reaction at temperature T [K], mixture mass density rho
	// [kg/m³] and mixture gas constant Rmix [J/(kg·K)], given the
	// species mass fractions, molar densities [kmol/m³], and
	// nondimensional Gibbs potentials h/(RT) − s/R. It stores the
	// result in netRates, overwriting every element, and must be
	// deterministic for identical inputs.
	ReactionRates(T, rho, Rmix float64, massFractions, molarDensities, hRTMinusSR, netRates []float64) error
}
