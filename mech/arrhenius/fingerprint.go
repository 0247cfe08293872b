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

package arrhenius

import (
	"sort"

	"github.com/farscape-project/gaskin"
	"github.com/farscape-project/gaskin/internal/fingerprint"
	"github.com/farscape-project/gaskin/thermo/nasa7"
)

// Record types mirror the mechanism content with deterministic
// ordering; efficiency maps become slices sorted by species index.

type speciesRecord struct {
	Name      string
	MolarMass float64
	Thermo    []nasa7.Interval
}

type efficiencyRecord struct {
	Species int
	Value   float64
}

type reactionRecord struct {
	Equation     string
	Reactants    []gaskin.Stoich
	Products     []gaskin.Stoich
	Reversible   bool
	ThirdBody    bool
	Efficiencies []efficiencyRecord
	Params       RateParams
}

type mechanismRecord struct {
	Species   []speciesRecord
	Reactions []reactionRecord
}

// Fingerprint returns a stable hexadecimal identifier of the mechanism
// contents: species, thermodynamic fits, reactions, and rate
// parameters. Output files record it so results can be traced back to
// the mechanism that produced them.
func (m *Mechanism) Fingerprint() string {
	rec := mechanismRecord{
		Species:   make([]speciesRecord, m.mix.NSpecies()),
		Reactions: make([]reactionRecord, len(m.reactions)),
	}
	for i := range rec.Species {
		sp := m.mix.Species(i)
		rec.Species[i] = speciesRecord{Name: sp.Name, MolarMass: sp.MolarMass}
		if m.thermo != nil {
			rec.Species[i].Thermo = m.thermo[i]
		}
	}
	for i := range m.reactions {
		rxn := &m.reactions[i]
		r := reactionRecord{
			Equation:   rxn.Equation,
			Reactants:  rxn.Reactants,
			Products:   rxn.Products,
			Reversible: rxn.Reversible,
			ThirdBody:  rxn.ThirdBody,
			Params:     m.params[i],
		}
		for s, e := range rxn.Efficiencies {
			r.Efficiencies = append(r.Efficiencies, efficiencyRecord{Species: s, Value: e})
		}
		sort.Slice(r.Efficiencies, func(a, b int) bool {
			return r.Efficiencies[a].Species < r.Efficiencies[b].Species
		})
		rec.Reactions[i] = r
	}
	return fingerprint.Sum(rec)
}
