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
	"math"
	"regexp"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// An Outputter evaluates user-specified expressions over computed
// fields and returns the results as new variables.
//
// outputVariables maps the names of the variables to be created to
// expressions that define how they are calculated. Expressions can use
// the variables of the fields they are evaluated against (species
// sources as "S_<name>", state variables such as "temperature"), other
// output variables, and functions.
//
// Functions are defined in the outputFunctions variable.
type Outputter struct {
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression
	modelVariables  []string
}

var outputNameRE = regexp.MustCompile(`^[A-Za-z]\w*$`)

// NewOutputter initializes a new Outputter and adds a set of default
// output functions. Default functions include:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'abs(x)' which returns the absolute value of x.
//
// 'sum(x)' which sums a variable across all grid cells.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("reactor: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			v, ok := arg[0].(float64)
			if !ok {
				return nil, fmt.Errorf("reactor: function 'exp' needs a number, not %T", arg[0])
			}
			return math.Exp(v), nil
		},
		"abs": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("reactor: got %d arguments for function 'abs', but needs 1", len(arg))
			}
			v, ok := arg[0].(float64)
			if !ok {
				return nil, fmt.Errorf("reactor: function 'abs' needs a number, not %T", arg[0])
			}
			return math.Abs(v), nil
		},
		"sum": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("reactor: got %d arguments for function 'sum', but needs 1", len(arg))
			}
			v, ok := arg[0].([]float64)
			if !ok {
				return nil, fmt.Errorf("reactor: function 'sum' needs a whole field, not %T", arg[0])
			}
			return floats.Sum(v), nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}

	o := &Outputter{
		outputVariables: make(map[string]string, len(outputVariables)),
		outputFunctions: defaultOutputFuncs,
	}
	for name, expr := range outputVariables {
		if !outputNameRE.MatchString(name) {
			return nil, fmt.Errorf("reactor: output variable name %q is not a valid identifier", name)
		}
		o.outputVariables[name] = expr
	}
	if err := o.expandDerivatives(); err != nil {
		return nil, err
	}

	o.expressions = make(map[string]*govaluate.EvaluableExpression, len(o.outputVariables))
	seen := make(map[string]bool)
	for name, text := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(text, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("reactor: output variable %q: %v", name, err)
		}
		o.expressions[name] = expression
		for _, v := range expression.Vars() {
			if !seen[v] {
				seen[v] = true
				o.modelVariables = append(o.modelVariables, v)
			}
		}
	}
	sort.Strings(o.modelVariables)
	return o, nil
}

// expandDerivatives replaces references to other output variables in
// each output expression with the expressions that define them, so
// that every remaining variable refers to computed field data.
func (o *Outputter) expandDerivatives() error {
	// Each round resolves at least one level of references, so more
	// rounds than variables means a reference cycle.
	for round := 0; round <= len(o.outputVariables); round++ {
		changed := false
		for name, text := range o.outputVariables {
			expression, err := govaluate.NewEvaluableExpressionWithFunctions(text, o.outputFunctions)
			if err != nil {
				return fmt.Errorf("reactor: output variable %q: %v", name, err)
			}
			for _, v := range expression.Vars() {
				def, ok := o.outputVariables[v]
				if !ok || def == v {
					continue
				}
				re, err := regexp.Compile(`\b` + regexp.QuoteMeta(v) + `\b`)
				if err != nil {
					return fmt.Errorf("reactor: output variable %q: %v", name, err)
				}
				text = re.ReplaceAllString(text, "("+def+")")
				changed = true
			}
			o.outputVariables[name] = text
		}
		if !changed {
			return nil
		}
	}
	return fmt.Errorf("reactor: circular reference among output variables")
}

// ModelVariables returns the names of the field variables needed to
// evaluate the output expressions, sorted alphabetically.
func (o *Outputter) ModelVariables() []string {
	v := make([]string, len(o.modelVariables))
	copy(v, o.modelVariables)
	return v
}

// Output evaluates the output expressions against the variables in
// data. Expressions that reduce the domain to a single number, such as
// "sum(S_OH)", are returned in totals; all other expressions are
// evaluated cell by cell and returned as fields with the same shape as
// the data they are computed from.
func (o *Outputter) Output(data map[string]*sparse.DenseArray) (fields map[string]*sparse.DenseArray, totals map[string]float64, err error) {
	for name, expression := range o.expressions {
		for _, v := range expression.Vars() {
			arr, ok := data[v]
			if !ok || arr == nil {
				return nil, nil, fmt.Errorf("reactor: output variable %q needs %q, which is not among the computed variables", name, v)
			}
		}
	}

	wholeField := make(map[string]interface{}, len(data))
	for key, arr := range data {
		wholeField[key] = arr.Elements
	}

	fields = make(map[string]*sparse.DenseArray)
	totals = make(map[string]float64)
	for name, expression := range o.expressions {
		if result, err := expression.Evaluate(wholeField); err == nil {
			switch r := result.(type) {
			case float64:
				totals[name] = r
				continue
			case []float64:
				// The expression is an alias for a single field.
				vars := expression.Vars()
				arr := sparse.ZerosDense(data[vars[0]].Shape...)
				copy(arr.Elements, r)
				fields[name] = arr
				continue
			default:
				return nil, nil, fmt.Errorf("reactor: output variable %q does not evaluate to a number", name)
			}
		}
		arr, err := o.evaluateCells(name, expression, data)
		if err != nil {
			return nil, nil, err
		}
		fields[name] = arr
	}
	return fields, totals, nil
}

func (o *Outputter) evaluateCells(name string, expression *govaluate.EvaluableExpression, data map[string]*sparse.DenseArray) (*sparse.DenseArray, error) {
	vars := expression.Vars()
	ref := data[vars[0]]
	for _, v := range vars {
		if len(data[v].Elements) != len(ref.Elements) {
			return nil, fmt.Errorf("reactor: output variable %q mixes fields of different shapes", name)
		}
	}
	arr := sparse.ZerosDense(ref.Shape...)
	params := make(map[string]interface{}, len(vars))
	for i := range arr.Elements {
		for _, v := range vars {
			params[v] = data[v].Elements[i]
		}
		result, err := expression.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("reactor: evaluating output variable %q: %v", name, err)
		}
		value, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("reactor: output variable %q does not evaluate to a number", name)
		}
		arr.Elements[i] = value
	}
	return arr, nil
}
