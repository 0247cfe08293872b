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

// Package arrhenius implements gas-phase reaction mechanisms whose
// forward rate coefficients follow the modified Arrhenius (Kooij) law
//
//	k(T) = A·T^β·exp(−Ea/(Ru·T)).
//
// Reverse rates of reversible reactions are derived from the forward
// rates through the equilibrium constant, which is computed from the
// caller-supplied species potential terms h/(RT) − s/R. Mechanisms can
// be built directly from reactions and rate parameters or loaded from
// a TOML description.
package arrhenius

import (
	"fmt"
	"math"

	"github.com/farscape-project/gaskin"
	"github.com/farscape-project/gaskin/thermo/nasa7"
)

// RateParams holds the modified Arrhenius parameters of one reaction.
// The units of A depend on the reaction order; Ea is in J/kmol.
type RateParams struct {
	A    float64
	Beta float64
	Ea   float64
}

// Rate returns the forward rate coefficient at temperature T [K].
func (p RateParams) Rate(T float64) float64 {
	k := p.A * math.Exp(-p.Ea/(gaskin.RUniversal*T))
	if p.Beta != 0 {
		k *= math.Pow(T, p.Beta)
	}
	return k
}

// Mechanism is a fixed set of reactions with Arrhenius rate laws. It
// fulfils the github.com/farscape-project/gaskin.Mechanism interface.
// A Mechanism is immutable after construction and may be shared among
// goroutines.
type Mechanism struct {
	mix       *gaskin.Mixture
	reactions []gaskin.Reaction
	params    []RateParams

	// name is the label given in the mechanism description, if any.
	name string

	// thermo holds per-species NASA polynomial fits when the mechanism
	// was loaded from a file that carries them; nil otherwise.
	thermo [][]nasa7.Interval
}

// New creates a Mechanism from a mixture, reactions, and rate
// parameters, one parameter set per reaction.
func New(mix *gaskin.Mixture, reactions []gaskin.Reaction, params []RateParams) (*Mechanism, error) {
	if mix == nil {
		return nil, fmt.Errorf("arrhenius: New requires a mixture")
	}
	if len(params) != len(reactions) {
		return nil, fmt.Errorf("arrhenius: have %d rate parameter sets for %d reactions", len(params), len(reactions))
	}
	for i := range reactions {
		if err := reactions[i].Validate(mix.NSpecies()); err != nil {
			return nil, err
		}
		if reactions[i].Equation == "" {
			return nil, fmt.Errorf("arrhenius: reaction %d has no equation label", i)
		}
	}
	m := &Mechanism{
		mix:       mix,
		reactions: make([]gaskin.Reaction, len(reactions)),
		params:    make([]RateParams, len(params)),
	}
	copy(m.reactions, reactions)
	copy(m.params, params)
	return m, nil
}

// Mixture returns the species table shared by all reactions.
func (m *Mechanism) Mixture() *gaskin.Mixture { return m.mix }

// Name returns the label given in the mechanism description. It is
// empty for mechanisms built with New.
func (m *Mechanism) Name() string { return m.name }

// NReactions returns the number of reactions in the mechanism.
func (m *Mechanism) NReactions() int { return len(m.reactions) }

// Reaction returns reaction i. The returned value must not be modified.
func (m *Mechanism) Reaction(i int) *gaskin.Reaction { return &m.reactions[i] }

// RateParams returns the rate parameters of reaction i.
func (m *Mechanism) RateParams(i int) RateParams { return m.params[i] }

// Thermo builds a thermodynamic evaluator from the NASA polynomial
// fits carried by the mechanism. It returns an error if the mechanism
// was not loaded from a description with thermodynamic data.
func (m *Mechanism) Thermo() (*nasa7.Evaluator, error) {
	if m.thermo == nil {
		return nil, fmt.Errorf("arrhenius: the mechanism carries no thermodynamic data")
	}
	return nasa7.NewEvaluator(m.mix, m.thermo)
}

// ReactionRates computes the net rate of progress [kmol/(m³·s)] of
// every reaction. The rate of progress of a reaction is
//
//	R = (kf·Π c_i^ν′ − kr·Π c_j^ν″) · Σ_s eff_s·c_s
//
// where the reverse coefficient kr = kf/Kc exists only for reversible
// reactions and the collider sum applies only to third-body reactions.
// The concentration equilibrium constant Kc is computed from the
// supplied potential terms as Kc = (P0/(Ru·T))^Δν · exp(−ΔG°/RT).
func (m *Mechanism) ReactionRates(T, rho, Rmix float64, massFractions, molarDensities, hRTMinusSR, netRates []float64) error {
	if !(T > 0) {
		return fmt.Errorf("arrhenius: temperature must be positive but is %g", T)
	}
	n := m.mix.NSpecies()
	if len(molarDensities) != n {
		return fmt.Errorf("arrhenius: molarDensities has length %d but the mixture has %d species", len(molarDensities), n)
	}
	if len(hRTMinusSR) != n {
		return fmt.Errorf("arrhenius: hRTMinusSR has length %d but the mixture has %d species", len(hRTMinusSR), n)
	}
	if len(netRates) != len(m.reactions) {
		return fmt.Errorf("arrhenius: netRates has length %d but the mechanism has %d reactions", len(netRates), len(m.reactions))
	}

	for r := range m.reactions {
		rxn := &m.reactions[r]
		kf := m.params[r].Rate(T)

		forward := kf
		for _, s := range rxn.Reactants {
			forward *= pow(molarDensities[s.Species], s.Coeff)
		}
		net := forward

		if rxn.Reversible {
			var dgRT float64 // ΔG°/RT
			for _, s := range rxn.Products {
				dgRT += float64(s.Coeff) * hRTMinusSR[s.Species]
			}
			for _, s := range rxn.Reactants {
				dgRT -= float64(s.Coeff) * hRTMinusSR[s.Species]
			}
			Kc := math.Exp(-dgRT) * pow(gaskin.P0/(gaskin.RUniversal*T), rxn.MolesDelta())
			backward := kf / Kc
			for _, s := range rxn.Products {
				backward *= pow(molarDensities[s.Species], s.Coeff)
			}
			net -= backward
		}

		if rxn.ThirdBody {
			var collider float64
			for i, c := range molarDensities {
				eff := 1.0
				if e, ok := rxn.Efficiencies[i]; ok {
					eff = e
				}
				collider += eff * c
			}
			net *= collider
		}
		netRates[r] = net
	}
	return nil
}

// pow returns x^n for small integer n.
func pow(x float64, n int) float64 {
	if n < 0 {
		return 1 / pow(x, -n)
	}
	p := 1.0
	for ; n > 0; n-- {
		p *= x
	}
	return p
}
