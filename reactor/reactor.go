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

// Package reactor evaluates chemical mass sources over gridded fields
// of thermodynamic states, such as the cell values of a flow solver
// snapshot. Fields are stored as dense arrays of arbitrary shape; the
// grid geometry itself plays no role in the chemistry, so cells are
// processed independently and in parallel.
package reactor

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/farscape-project/gaskin"
)

// A StateField holds the thermodynamic state of every cell in a grid.
// All arrays must have the same shape.
type StateField struct {
	// Temperature is the cell temperature [K].
	Temperature *sparse.DenseArray

	// Density is the cell mass density [kg/m³].
	Density *sparse.DenseArray

	// MassFractions holds one array per mixture species, in species
	// order.
	MassFractions []*sparse.DenseArray
}

// NewStateField allocates a zeroed state field for nSpecies species
// over a grid with the given shape.
func NewStateField(nSpecies int, shape ...int) *StateField {
	s := &StateField{
		Temperature:   sparse.ZerosDense(shape...),
		Density:       sparse.ZerosDense(shape...),
		MassFractions: make([]*sparse.DenseArray, nSpecies),
	}
	for i := range s.MassFractions {
		s.MassFractions[i] = sparse.ZerosDense(shape...)
	}
	return s
}

// Cells returns the number of cells in the field.
func (s *StateField) Cells() int { return len(s.Temperature.Elements) }

func (s *StateField) check(nSpecies int) error {
	if s == nil || s.Temperature == nil || s.Density == nil {
		return fmt.Errorf("reactor: state field is missing temperature or density data")
	}
	if len(s.MassFractions) != nSpecies {
		return fmt.Errorf("reactor: state field has %d mass fraction arrays but the mixture has %d species",
			len(s.MassFractions), nSpecies)
	}
	if !sameShape(s.Density, s.Temperature) {
		return fmt.Errorf("reactor: density array shape %v does not match temperature array shape %v",
			s.Density.Shape, s.Temperature.Shape)
	}
	for i, y := range s.MassFractions {
		if y == nil {
			return fmt.Errorf("reactor: state field is missing mass fractions for species %d", i)
		}
		if !sameShape(y, s.Temperature) {
			return fmt.Errorf("reactor: mass fraction array %d shape %v does not match temperature array shape %v",
				i, y.Shape, s.Temperature.Shape)
		}
	}
	return nil
}

func sameShape(a, b *sparse.DenseArray) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i, n := range a.Shape {
		if n != b.Shape[i] {
			return false
		}
	}
	return true
}

// A SourceField holds the species mass source densities [kg/(m³·s)]
// produced by a mechanism over a grid.
type SourceField struct {
	// Names lists the species in mixture order.
	Names []string

	// Sources maps species names to mass source arrays.
	Sources map[string]*sparse.DenseArray

	// Derived holds extra variables computed from output expressions
	// (see Outputter). They are written to output files alongside the
	// species sources.
	Derived map[string]*sparse.DenseArray

	// Attributes holds global metadata written to output files, such
	// as the mechanism name and fingerprint.
	Attributes map[string]string
}

// Config holds the settings for a source field computation.
type Config struct {
	// Processors is the number of worker goroutines to use. Zero or
	// less means runtime.GOMAXPROCS(0).
	Processors int

	// Log receives progress information. If nil, progress is not
	// reported.
	Log logrus.FieldLogger
}

// A Thermo supplies the nondimensional Gibbs potentials h/(R·T) − s/R
// of every species in a mixture at a temperature, as needed to reverse
// the reversible reactions of a mechanism. *nasa7.Evaluator implements
// Thermo.
type Thermo interface {
	PotentialTerms(T float64, hRTMinusSR []float64) error
}

// ComputeSources evaluates the mass source density of every species in
// every cell of state. thermo may be nil if no reaction in the
// mechanism is reversible; otherwise it must describe the same mixture
// as mech. Cells are divided among c.Processors workers, each holding
// its own Kinetics instance and scratch state.
func ComputeSources(mech gaskin.Mechanism, thermo Thermo, state *StateField, c Config) (*SourceField, error) {
	mix := mech.Mixture()
	if mix == nil {
		return nil, fmt.Errorf("reactor: mechanism has no mixture")
	}
	nSpecies := mix.NSpecies()
	if err := state.check(nSpecies); err != nil {
		return nil, err
	}
	if thermo == nil && anyReversible(mech) {
		return nil, fmt.Errorf("reactor: mechanism has reversible reactions but no thermodynamic data")
	}

	out := make([]*sparse.DenseArray, nSpecies)
	for i := range out {
		out[i] = sparse.ZerosDense(state.Temperature.Shape...)
	}

	nprocs := c.Processors
	if nprocs <= 0 {
		nprocs = runtime.GOMAXPROCS(0)
	}
	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"cells":      state.Cells(),
			"species":    nSpecies,
			"reactions":  mech.NReactions(),
			"processors": nprocs,
		}).Info("computing mass sources")
	}
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(nprocs)
	errs := make([]error, nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			errs[pp] = sourceWorker(mech, thermo, state, out, pp, nprocs)
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"cells":   state.Cells(),
			"elapsed": time.Since(start),
		}).Info("finished mass sources")
	}

	f := &SourceField{
		Names:   make([]string, nSpecies),
		Sources: make(map[string]*sparse.DenseArray, nSpecies),
	}
	for i := 0; i < nSpecies; i++ {
		name := mix.Species(i).Name
		f.Names[i] = name
		f.Sources[name] = out[i]
	}
	return f, nil
}

// sourceWorker computes the sources of every nprocs'th cell starting
// at cell pp. Each worker owns a Kinetics instance because Kinetics is
// not safe for concurrent use.
func sourceWorker(mech gaskin.Mechanism, thermo Thermo, state *StateField, out []*sparse.DenseArray, pp, nprocs int) error {
	k, err := gaskin.NewKinetics(mech)
	if err != nil {
		return err
	}
	mix := mech.Mixture()
	n := mix.NSpecies()
	var (
		y          = make([]float64, n)
		conc       = make([]float64, n)
		hRTMinusSR = make([]float64, n)
		src        = make([]float64, n)
	)
	for ii := pp; ii < len(state.Temperature.Elements); ii += nprocs {
		T := state.Temperature.Elements[ii]
		rho := state.Density.Elements[ii]
		for s := 0; s < n; s++ {
			y[s] = state.MassFractions[s].Elements[ii]
		}
		rMix, err := mix.R(y)
		if err != nil {
			return fmt.Errorf("reactor: cell %d: %v", ii, err)
		}
		if err := mix.MolarDensities(rho, y, conc); err != nil {
			return fmt.Errorf("reactor: cell %d: %v", ii, err)
		}
		if thermo != nil {
			if err := thermo.PotentialTerms(T, hRTMinusSR); err != nil {
				return fmt.Errorf("reactor: cell %d: %v", ii, err)
			}
		}
		if err := k.MassSources(T, rho, rMix, y, conc, hRTMinusSR, src); err != nil {
			return fmt.Errorf("reactor: cell %d: %v", ii, err)
		}
		for s := 0; s < n; s++ {
			out[s].Elements[ii] = src[s]
		}
	}
	return nil
}

func anyReversible(mech gaskin.Mechanism) bool {
	for i := 0; i < mech.NReactions(); i++ {
		if mech.Reaction(i).Reversible {
			return true
		}
	}
	return false
}
