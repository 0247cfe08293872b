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

// Package nasa7 evaluates 7-coefficient NASA polynomial fits of
// species thermodynamic properties. The fits give the nondimensional
// specific heat, enthalpy, and entropy of each species as piecewise
// polynomials in temperature:
//
//	cp/R   = a0 + a1·T + a2·T² + a3·T³ + a4·T⁴
//	h/(RT) = a0 + a1/2·T + a2/3·T² + a3/4·T³ + a4/5·T⁴ + a5/T
//	s/R    = a0·ln(T) + a1·T + a2/2·T² + a3/3·T³ + a4/4·T⁴ + a6
//
// Their combination h/(RT) − s/R is the potential term consumed by
// reverse reaction rate calculations.
package nasa7

import (
	"fmt"
	"math"

	"github.com/farscape-project/gaskin"
)

// An Interval is one 7-coefficient polynomial fit, valid for
// temperatures in [Tmin, Tmax].
type Interval struct {
	Tmin, Tmax float64
	Coeffs     [7]float64
}

// An Evaluator computes nondimensional thermodynamic functions for the
// species of a mixture. It is immutable after construction and may be
// shared among goroutines.
type Evaluator struct {
	mix  *gaskin.Mixture
	fits [][]Interval
}

// NewEvaluator creates an Evaluator for mix from per-species fits,
// indexed by species. Every species must have at least one interval,
// and every interval must have Tmin < Tmax.
func NewEvaluator(mix *gaskin.Mixture, fits [][]Interval) (*Evaluator, error) {
	if mix == nil {
		return nil, fmt.Errorf("nasa7: NewEvaluator requires a mixture")
	}
	if len(fits) != mix.NSpecies() {
		return nil, fmt.Errorf("nasa7: have fits for %d species but the mixture has %d", len(fits), mix.NSpecies())
	}
	for i, f := range fits {
		if len(f) == 0 {
			return nil, fmt.Errorf("nasa7: species %s has no thermodynamic data", mix.Species(i).Name)
		}
		for _, iv := range f {
			if !(iv.Tmin < iv.Tmax) {
				return nil, fmt.Errorf("nasa7: species %s has an empty temperature interval [%g, %g]",
					mix.Species(i).Name, iv.Tmin, iv.Tmax)
			}
		}
	}
	e := &Evaluator{mix: mix, fits: make([][]Interval, len(fits))}
	for i, f := range fits {
		e.fits[i] = make([]Interval, len(f))
		copy(e.fits[i], f)
	}
	return e, nil
}

// Mixture returns the mixture the evaluator was built for.
func (e *Evaluator) Mixture() *gaskin.Mixture { return e.mix }

// interval returns the fit covering temperature T for species i.
func (e *Evaluator) interval(T float64, i int) (*Interval, error) {
	for j := range e.fits[i] {
		iv := &e.fits[i][j]
		if T >= iv.Tmin && T <= iv.Tmax {
			return iv, nil
		}
	}
	return nil, fmt.Errorf("nasa7: temperature %g K is outside the fitted range for species %s",
		T, e.mix.Species(i).Name)
}

// CpR returns the nondimensional specific heat cp/R of species i at
// temperature T [K].
func (e *Evaluator) CpR(T float64, i int) (float64, error) {
	iv, err := e.interval(T, i)
	if err != nil {
		return 0, err
	}
	a := &iv.Coeffs
	return a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4]))), nil
}

// HRT returns the nondimensional enthalpy h/(RT) of species i at
// temperature T [K].
func (e *Evaluator) HRT(T float64, i int) (float64, error) {
	iv, err := e.interval(T, i)
	if err != nil {
		return 0, err
	}
	return hRT(iv, T), nil
}

// SR returns the nondimensional entropy s/R of species i at
// temperature T [K].
func (e *Evaluator) SR(T float64, i int) (float64, error) {
	iv, err := e.interval(T, i)
	if err != nil {
		return 0, err
	}
	return sR(iv, T), nil
}

// PotentialTerms computes h/(RT) − s/R for every species at
// temperature T [K], storing the result in out, which must have one
// element per species.
func (e *Evaluator) PotentialTerms(T float64, out []float64) error {
	if !(T > 0) {
		return fmt.Errorf("nasa7: temperature must be positive but is %g", T)
	}
	if len(out) != e.mix.NSpecies() {
		return fmt.Errorf("nasa7: out has length %d but the mixture has %d species", len(out), e.mix.NSpecies())
	}
	for i := range out {
		iv, err := e.interval(T, i)
		if err != nil {
			return err
		}
		out[i] = hRT(iv, T) - sR(iv, T)
	}
	return nil
}

func hRT(iv *Interval, T float64) float64 {
	a := &iv.Coeffs
	return a[0] + T*(a[1]/2+T*(a[2]/3+T*(a[3]/4+T*a[4]/5))) + a[5]/T
}

func sR(iv *Interval, T float64) float64 {
	a := &iv.Coeffs
	return a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2+T*(a[3]/3+T*a[4]/4))) + a[6]
}
