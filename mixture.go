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

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// A Species is one chemical species in a Mixture.
type Species struct {
	// Name identifies the species, e.g. "H2" or "OH".
	Name string

	// MolarMass is the molar mass of the species [kg/kmol].
	MolarMass float64
}

// A Mixture is an ordered table of the chemical species in a reacting
// gas. The position of a species in the table is its index in every
// per-species vector used by this package. A Mixture is immutable after
// construction and may be shared among goroutines.
type Mixture struct {
	species   []Species
	indices   map[string]int
	molarMass []float64
}

// NewMixture creates a Mixture from the given species, which must have
// unique, non-empty names and positive molar masses.
func NewMixture(species []Species) (*Mixture, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("gaskin: a mixture requires at least one species")
	}
	m := &Mixture{
		species:   make([]Species, len(species)),
		indices:   make(map[string]int, len(species)),
		molarMass: make([]float64, len(species)),
	}
	copy(m.species, species)
	for i, s := range m.species {
		if s.Name == "" {
			return nil, fmt.Errorf("gaskin: species %d has no name", i)
		}
		if !(s.MolarMass > 0) {
			return nil, fmt.Errorf("gaskin: molar mass of species %s must be positive but is %g", s.Name, s.MolarMass)
		}
		if j, ok := m.indices[s.Name]; ok {
			return nil, fmt.Errorf("gaskin: species %s appears twice in the mixture, at indices %d and %d", s.Name, j, i)
		}
		m.indices[s.Name] = i
		m.molarMass[i] = s.MolarMass
	}
	return m, nil
}

// NSpecies returns the number of species in the mixture.
func (m *Mixture) NSpecies() int { return len(m.species) }

// Species returns the species at index i.
func (m *Mixture) Species(i int) Species { return m.species[i] }

// MolarMass returns the molar mass [kg/kmol] of species i.
func (m *Mixture) MolarMass(i int) float64 { return m.molarMass[i] }

// MolarMasses returns the molar masses [kg/kmol] of all species,
// indexed by species. The returned slice must not be modified.
func (m *Mixture) MolarMasses() []float64 { return m.molarMass }

// SpeciesIndex returns the index of the named species, or -1 if the
// mixture does not contain it.
func (m *Mixture) SpeciesIndex(name string) int {
	if i, ok := m.indices[name]; ok {
		return i
	}
	return -1
}

// R returns the mixture-specific gas constant [J/(kg·K)] for the given
// species mass fractions.
func (m *Mixture) R(massFractions []float64) (float64, error) {
	if len(massFractions) != len(m.species) {
		return 0, errLength("massFractions", len(massFractions), len(m.species))
	}
	var sum float64
	for i, y := range massFractions {
		sum += y / m.molarMass[i]
	}
	return RUniversal * sum, nil
}

// MolarMassMixture returns the molar mass [kg/kmol] of the mixture as a
// whole for the given species mass fractions.
func (m *Mixture) MolarMassMixture(massFractions []float64) (float64, error) {
	if len(massFractions) != len(m.species) {
		return 0, errLength("massFractions", len(massFractions), len(m.species))
	}
	var sum float64
	for i, y := range massFractions {
		sum += y / m.molarMass[i]
	}
	if !(sum > 0) {
		return 0, errPositive("the sum of massFractions over the molar masses", sum)
	}
	return 1 / sum, nil
}

// MolarDensities computes the molar density [kmol/m³] of each species
// from the mixture mass density rho [kg/m³] and the species mass
// fractions, storing the result in out.
func (m *Mixture) MolarDensities(rho float64, massFractions, out []float64) error {
	if !(rho > 0) {
		return errPositive("density", rho)
	}
	if len(massFractions) != len(m.species) {
		return errLength("massFractions", len(massFractions), len(m.species))
	}
	if len(out) != len(m.species) {
		return errLength("out", len(out), len(m.species))
	}
	for i, y := range massFractions {
		out[i] = rho * y / m.molarMass[i]
	}
	return nil
}

// MoleFractions converts species mass fractions to mole fractions,
// storing the result in out.
func (m *Mixture) MoleFractions(massFractions, out []float64) error {
	if len(massFractions) != len(m.species) {
		return errLength("massFractions", len(massFractions), len(m.species))
	}
	if len(out) != len(m.species) {
		return errLength("out", len(out), len(m.species))
	}
	var sum float64
	for i, y := range massFractions {
		out[i] = y / m.molarMass[i]
		sum += out[i]
	}
	if !(sum > 0) {
		return errPositive("the sum of the mass fractions", sum)
	}
	floats.Scale(1/sum, out)
	return nil
}
