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

// A PreconditionError reports a violated call contract, such as a
// non-positive thermodynamic scalar or a mis-sized vector. It is always
// returned before any output argument has been modified.
type PreconditionError struct {
	msg string
}

func (e *PreconditionError) Error() string { return e.msg }

func errPositive(name string, v float64) error {
	return &PreconditionError{fmt.Sprintf("gaskin: %s must be positive but is %g", name, v)}
}

func errLength(name string, got, want int) error {
	return &PreconditionError{fmt.Sprintf("gaskin: %s has length %d but must have length %d", name, got, want)}
}
