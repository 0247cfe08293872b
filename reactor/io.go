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

package reactor

import (
	"fmt"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"

	"github.com/farscape-project/gaskin"
)

// Variable names in state and source NetCDF files. Mass fraction and
// mass source variables carry the species name after the prefix.
const (
	TemperatureVar = "temperature"
	DensityVar     = "density"
	FractionPrefix = "Y_"
	SourcePrefix   = "S_"
)

var densityDim = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3}

// ReadStateField reads the thermodynamic state of the species in mix
// from the NetCDF file in r. The file must hold a "temperature"
// variable [K], a "density" variable [kg/m³], and one "Y_<name>" mass
// fraction variable per mixture species, all with the same dimensions.
// Variables may be stored in either single or double precision.
func ReadStateField(r cdf.ReaderWriterAt, mix *gaskin.Mixture) (*StateField, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("reactor: opening state file: %v", err)
	}
	s := new(StateField)
	if s.Temperature, err = readVar(f, TemperatureVar); err != nil {
		return nil, err
	}
	if s.Density, err = readVar(f, DensityVar); err != nil {
		return nil, err
	}
	s.MassFractions = make([]*sparse.DenseArray, mix.NSpecies())
	for i := range s.MassFractions {
		if s.MassFractions[i], err = readVar(f, FractionPrefix+mix.Species(i).Name); err != nil {
			return nil, err
		}
	}
	if err := s.check(mix.NSpecies()); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteNetCDF writes the state field to w as a NetCDF file that
// ReadStateField can read back.
func (s *StateField) WriteNetCDF(w cdf.ReaderWriterAt, mix *gaskin.Mixture) error {
	if err := s.check(mix.NSpecies()); err != nil {
		return err
	}
	dims := gridDims(s.Temperature.Shape)
	h := cdf.NewHeader(dims, s.Temperature.Shape)
	h.AddAttribute("", "comment", "Gaskin thermodynamic state file")
	h.AddVariable(TemperatureVar, dims, []float64{0})
	h.AddAttribute(TemperatureVar, "units", "K")
	h.AddVariable(DensityVar, dims, []float64{0})
	h.AddAttribute(DensityVar, "units", densityDim.String())
	for i := 0; i < mix.NSpecies(); i++ {
		v := FractionPrefix + mix.Species(i).Name
		h.AddVariable(v, dims, []float64{0})
		h.AddAttribute(v, "units", "fraction")
	}
	h.Define()
	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("reactor: creating state file: %v", err)
	}
	if err := writeVar(f, TemperatureVar, s.Temperature); err != nil {
		return err
	}
	if err := writeVar(f, DensityVar, s.Density); err != nil {
		return err
	}
	for i, y := range s.MassFractions {
		if err := writeVar(f, FractionPrefix+mix.Species(i).Name, y); err != nil {
			return err
		}
	}
	return nil
}

// WriteNetCDF writes the source field to w as a NetCDF file. Every
// species source becomes an "S_<name>" variable, derived variables are
// written under their own names, and sf.Attributes become global
// attributes.
func (sf *SourceField) WriteNetCDF(w cdf.ReaderWriterAt) error {
	if len(sf.Names) == 0 {
		return fmt.Errorf("reactor: source field has no species")
	}
	first := sf.Sources[sf.Names[0]]
	for _, name := range sf.Names {
		arr, ok := sf.Sources[name]
		if !ok || arr == nil {
			return fmt.Errorf("reactor: source field is missing data for species %s", name)
		}
		if !sameShape(arr, first) {
			return fmt.Errorf("reactor: source array %s shape %v does not match shape %v", name, arr.Shape, first.Shape)
		}
	}
	derived := make([]string, 0, len(sf.Derived))
	for name, arr := range sf.Derived {
		if !sameShape(arr, first) {
			return fmt.Errorf("reactor: derived array %s shape %v does not match shape %v", name, arr.Shape, first.Shape)
		}
		derived = append(derived, name)
	}
	sort.Strings(derived)

	dims := gridDims(first.Shape)
	h := cdf.NewHeader(dims, first.Shape)
	h.AddAttribute("", "comment", "Gaskin species mass source file")
	attrs := make([]string, 0, len(sf.Attributes))
	for k := range sf.Attributes {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)
	for _, k := range attrs {
		h.AddAttribute("", k, sf.Attributes[k])
	}
	for _, name := range sf.Names {
		v := SourcePrefix + name
		h.AddVariable(v, dims, []float64{0})
		h.AddAttribute(v, "description", fmt.Sprintf("%s mass source density", name))
		h.AddAttribute(v, "units", gaskin.MassSourceDim.String())
	}
	for _, name := range derived {
		h.AddVariable(name, dims, []float64{0})
		h.AddAttribute(name, "description", "derived output variable")
	}
	h.Define()
	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("reactor: creating source file: %v", err)
	}
	for _, name := range sf.Names {
		if err := writeVar(f, SourcePrefix+name, sf.Sources[name]); err != nil {
			return err
		}
	}
	for _, name := range derived {
		if err := writeVar(f, name, sf.Derived[name]); err != nil {
			return err
		}
	}
	return nil
}

func gridDims(shape []int) []string {
	dims := make([]string, len(shape))
	for i := range shape {
		dims[i] = fmt.Sprintf("dim%d", i)
	}
	return dims
}

func readVar(f *cdf.File, name string) (*sparse.DenseArray, error) {
	dims := f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("reactor: state file has no variable %q", name)
	}
	nread := 1
	for _, d := range dims {
		nread *= d
	}
	r := f.Reader(name, nil, nil)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("reactor: reading %q: %v", name, err)
	}
	data := sparse.ZerosDense(dims...)
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("reactor: variable %q does not hold floating point data", name)
	}
	return data, nil
}

func writeVar(f *cdf.File, name string, data *sparse.DenseArray) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data.Elements); err != nil {
		return fmt.Errorf("reactor: writing %q: %v", name, err)
	}
	return nil
}
