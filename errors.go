/*
Copyright © 2019 the ncstructure authors.
This file is part of ncstructure.

ncstructure is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ncstructure is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ncstructure.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncstructure

import "fmt"

// ParseError is returned when a logical line or element cannot be turned
// into a declaration. Err, if not nil, holds the underlying typed error.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ncstructure: malformed declaration %q", e.Line)
	}
	return fmt.Sprintf("ncstructure: malformed declaration %q: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// Cause returns the underlying error, for use with github.com/pkg/errors.
func (e *ParseError) Cause() error { return e.Err }

// ValueFormatError is returned when a literal token cannot be classified
// into one of the supported value types.
type ValueFormatError struct {
	Token string
}

func (e *ValueFormatError) Error() string {
	return fmt.Sprintf("ncstructure: unknown value literal %q", e.Token)
}

// DimensionNotFoundError is returned when a variable's shape refers to
// a dimension that has not been declared.
type DimensionNotFoundError struct {
	Variable, Dimension string
}

func (e *DimensionNotFoundError) Error() string {
	return fmt.Sprintf("ncstructure: variable %s: dimension %s not found", e.Variable, e.Dimension)
}

// NotFoundError is returned when an operation refers to an entity that
// does not exist. Kind is one of "dimension", "variable" or "attribute".
type NotFoundError struct {
	Kind, Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ncstructure: %s %s not found", e.Kind, e.Name)
}

// DuplicateNameError is returned when a create or rename operation would
// give two entities in the same container the same name.
type DuplicateNameError struct {
	Kind, Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("ncstructure: %s %s already exists", e.Kind, e.Name)
}

// TypeFormatError is returned when a value has an element type that
// cannot be formatted.
type TypeFormatError struct {
	Type string
}

func (e *TypeFormatError) Error() string {
	return fmt.Sprintf("ncstructure: cannot format values of type %s", e.Type)
}

// UnknownTypeError is returned when a variable or attribute is declared
// with a type name outside of the classic model.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("ncstructure: unknown type %q", e.Type)
}
