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
	"fmt"
	"strconv"
	"strings"

	"github.com/farscape-project/gaskin"
)

// ParseEquation parses a chemical equation such as
//
//	"2 H2 + O2 <=> 2 H2O"
//	"O2 + M => 2 O + M"
//
// into a Reaction whose species indices refer to mix. "<=>" marks a
// reversible reaction and "=>" an irreversible one. Each term is a
// species name with an optional positive integer coefficient separated
// by a space. The name "M" is reserved: it denotes a third body and
// must appear on both sides or neither. Species order within each side
// is preserved. Species whose names contain '+' or whitespace cannot be
// written in equations.
func ParseEquation(eq string, mix *gaskin.Mixture) (gaskin.Reaction, error) {
	r := gaskin.Reaction{Equation: eq}
	var lhs, rhs string
	switch {
	case strings.Contains(eq, "<=>"):
		parts := strings.SplitN(eq, "<=>", 2)
		lhs, rhs = parts[0], parts[1]
		r.Reversible = true
	case strings.Contains(eq, "=>"):
		parts := strings.SplitN(eq, "=>", 2)
		lhs, rhs = parts[0], parts[1]
	default:
		return r, fmt.Errorf("arrhenius: equation %q needs a '=>' or '<=>' separator", eq)
	}

	var err error
	var lM, rM bool
	r.Reactants, lM, err = parseSide(eq, lhs, mix)
	if err != nil {
		return r, err
	}
	r.Products, rM, err = parseSide(eq, rhs, mix)
	if err != nil {
		return r, err
	}
	if lM != rM {
		return r, fmt.Errorf("arrhenius: equation %q has a third body on only one side", eq)
	}
	r.ThirdBody = lM
	return r, nil
}

func parseSide(eq, side string, mix *gaskin.Mixture) ([]gaskin.Stoich, bool, error) {
	var out []gaskin.Stoich
	thirdBody := false
	for _, term := range strings.Split(side, "+") {
		fields := strings.Fields(term)
		var coeff int
		var name string
		switch len(fields) {
		case 1:
			coeff, name = 1, fields[0]
		case 2:
			n, err := strconv.Atoi(fields[0])
			if err != nil || n <= 0 {
				return nil, false, fmt.Errorf("arrhenius: equation %q has invalid coefficient %q", eq, fields[0])
			}
			coeff, name = n, fields[1]
		default:
			return nil, false, fmt.Errorf("arrhenius: cannot parse term %q in equation %q", strings.TrimSpace(term), eq)
		}
		if name == "M" {
			if coeff != 1 {
				return nil, false, fmt.Errorf("arrhenius: equation %q gives the third body a coefficient", eq)
			}
			thirdBody = true
			continue
		}
		i := mix.SpeciesIndex(name)
		if i < 0 {
			return nil, false, fmt.Errorf("arrhenius: equation %q uses unknown species %q", eq, name)
		}
		out = append(out, gaskin.Stoich{Species: i, Coeff: coeff})
	}
	if len(out) == 0 {
		return nil, false, fmt.Errorf("arrhenius: equation %q has a side with no species", eq)
	}
	return out, thirdBody, nil
}
