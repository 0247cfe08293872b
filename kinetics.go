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

import "gonum.org/v1/gonum/floats"

// Kinetics computes per-species mass source terms from the net reaction
// rates of a Mechanism. It holds a preallocated scratch buffer for the
// rates so that MassSources performs no allocation.
//
// A Kinetics must not be used from more than one goroutine at a time;
// create one instance per worker. The bound Mechanism and its Mixture
// may be shared among instances as long as they are not modified.
type Kinetics struct {
	mech       Mechanism
	molarMass  []float64
	nSpecies   int
	nReactions int

	// netRates holds the rate of progress of each reaction during a
	// call to MassSources.
	netRates []float64
}

// NewKinetics creates a Kinetics bound to mech. The species and
// reaction counts are fixed at this point; mech must not change size
// afterwards.
func NewKinetics(mech Mechanism) (*Kinetics, error) {
	if mech == nil {
		return nil, &PreconditionError{"gaskin: NewKinetics requires a non-nil mechanism"}
	}
	mix := mech.Mixture()
	if mix == nil {
		return nil, &PreconditionError{"gaskin: NewKinetics requires a mechanism with a species mixture"}
	}
	return &Kinetics{
		mech:       mech,
		molarMass:  mix.MolarMasses(),
		nSpecies:   mix.NSpecies(),
		nReactions: mech.NReactions(),
		netRates:   make([]float64, mech.NReactions()),
	}, nil
}

// NSpecies returns the number of species the Kinetics was built for.
func (k *Kinetics) NSpecies() int { return k.nSpecies }

// NReactions returns the number of reactions the Kinetics was built for.
func (k *Kinetics) NReactions() int { return k.nReactions }

// Mechanism returns the bound mechanism.
func (k *Kinetics) Mechanism() Mechanism { return k.mech }

// MassSources computes the rate of change of the mass density of each
// species [kg/(m³·s)] due to chemical reactions at temperature T [K],
// mixture mass density rho [kg/m³], and mixture gas constant Rmix
// [J/(kg·K)]. The per-species inputs are the mass fractions, the molar
// densities [kmol/m³], and the nondimensional Gibbs potentials
// h/(RT) − s/R; how much of each input is used depends on the rate
// models in the bound mechanism.
//
// The result is stored in massSources, overwriting any previous
// contents. Each element is Σ_r (ν″ − ν′)·rate_r·M, so the sources sum
// to zero over the species of any mass-balanced mechanism.
//
// T, rho and Rmix must be positive and each slice must have one element
// per species; violations return a *PreconditionError before anything
// is written. Errors from the mechanism's rate evaluation are returned
// unmodified, and massSources holds no meaningful result afterwards.
func (k *Kinetics) MassSources(T, rho, Rmix float64, massFractions, molarDensities, hRTMinusSR, massSources []float64) error {
	if !(T > 0) {
		return errPositive("temperature", T)
	}
	if !(rho > 0) {
		return errPositive("density", rho)
	}
	if !(Rmix > 0) {
		return errPositive("mixture gas constant", Rmix)
	}
	if len(massFractions) != k.nSpecies {
		return errLength("massFractions", len(massFractions), k.nSpecies)
	}
	if len(molarDensities) != k.nSpecies {
		return errLength("molarDensities", len(molarDensities), k.nSpecies)
	}
	if len(hRTMinusSR) != k.nSpecies {
		return errLength("hRTMinusSR", len(hRTMinusSR), k.nSpecies)
	}
	if len(massSources) != k.nSpecies {
		return errLength("massSources", len(massSources), k.nSpecies)
	}
	if n := k.mech.NReactions(); n != k.nReactions {
		return errLength("the net rate scratch buffer", k.nReactions, n)
	}

	for i := range massSources {
		massSources[i] = 0
	}

	if err := k.mech.ReactionRates(T, rho, Rmix, massFractions, molarDensities, hRTMinusSR, k.netRates); err != nil {
		return err
	}

	// Molar creation and destruction per species, in the stored order
	// of the reactions and their stoichiometry entries.
	for r := 0; r < k.nReactions; r++ {
		rate := k.netRates[r]
		rxn := k.mech.Reaction(r)
		for _, s := range rxn.Reactants {
			massSources[s.Species] -= float64(s.Coeff) * rate
		}
		for _, s := range rxn.Products {
			massSources[s.Species] += float64(s.Coeff) * rate
		}
	}

	// kmol/(m³·s) to kg/(m³·s).
	floats.Mul(massSources, k.molarMass)
	return nil
}
