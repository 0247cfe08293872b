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

import "fmt"

// A Stoich pairs a species index with its stoichiometric coefficient on
// one side of a reaction.
type Stoich struct {
	// Species is the index of the species in the Mixture.
	Species int

	// Coeff is the stoichiometric coefficient. It must be positive.
	Coeff int
}

// A Reaction describes one chemical reaction as ordered lists of
// reactant and product stoichiometry. A species may appear on both
// sides of a reaction, and may appear more than once in the same list;
// repeated entries accumulate additively wherever the reaction is
// applied.
type Reaction struct {
	// Equation is a human-readable label for the reaction,
	// e.g. "2 OH => H2O2".
	Equation string

	Reactants []Stoich
	Products  []Stoich

	// Reversible marks reactions whose reverse rate contributes to the
	// net rate of progress.
	Reversible bool

	// ThirdBody marks reactions whose rate is proportional to the total
	// collider concentration.
	ThirdBody bool

	// Efficiencies holds third-body collision efficiencies by species
	// index for ThirdBody reactions. Species not listed have
	// efficiency 1.
	Efficiencies map[int]float64
}

// Validate checks that every stoichiometry entry references a species
// index within [0, nSpecies) and carries a positive coefficient, and
// that any third-body efficiencies reference valid species.
func (r *Reaction) Validate(nSpecies int) error {
	for _, s := range r.Reactants {
		if err := r.validateStoich(s, nSpecies); err != nil {
			return err
		}
	}
	for _, s := range r.Products {
		if err := r.validateStoich(s, nSpecies); err != nil {
			return err
		}
	}
	for i := range r.Efficiencies {
		if i < 0 || i >= nSpecies {
			return fmt.Errorf("gaskin: reaction %q has a third-body efficiency for species index %d but the mixture has %d species", r.Equation, i, nSpecies)
		}
	}
	return nil
}

func (r *Reaction) validateStoich(s Stoich, nSpecies int) error {
	if s.Species < 0 || s.Species >= nSpecies {
		return fmt.Errorf("gaskin: reaction %q references species index %d but the mixture has %d species", r.Equation, s.Species, nSpecies)
	}
	if s.Coeff <= 0 {
		return fmt.Errorf("gaskin: reaction %q has stoichiometric coefficient %d for species index %d; coefficients must be positive", r.Equation, s.Coeff, s.Species)
	}
	return nil
}

// MolesDelta returns the change in gas moles per unit of reaction
// progress, Σν″ − Σν′.
func (r *Reaction) MolesDelta() int {
	var d int
	for _, s := range r.Products {
		d += s.Coeff
	}
	for _, s := range r.Reactants {
		d -= s.Coeff
	}
	return d
}

// MassBalance returns the net mass created by one unit of reaction
// progress, Σν″M − Σν′M [kg/kmol]. It is approximately zero for any
// mass-balanced reaction.
func (r *Reaction) MassBalance(m *Mixture) float64 {
	var b float64
	for _, s := range r.Products {
		b += float64(s.Coeff) * m.MolarMass(s.Species)
	}
	for _, s := range r.Reactants {
		b -= float64(s.Coeff) * m.MolarMass(s.Species)
	}
	return b
}
