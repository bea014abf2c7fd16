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

// Package ncstructure models the structural metadata of a classic netCDF
// file: its dimensions, its variables with their shapes and the named
// attributes attached to the file and to each variable.
//
// A Structure can be read from and written to CDL (package cdl) and
// NcML (package ncml), and extracted from an actual netCDF file
// (package ncfile). Entities are kept in the order they were created,
// since the dump formats are order sensitive.
//
// A Structure is not safe for concurrent mutation. Callers that share
// one between goroutines must serialize all create, rename and delete
// calls; read-only use may proceed concurrently.
package ncstructure

import "fmt"

// Types lists the variable types of the classic model, in the
// spelling used by CDL and NcML.
var Types = []string{"byte", "char", "short", "int", "float", "double", "String"}

// IsType returns whether t is one of Types.
func IsType(t string) bool {
	for _, tt := range Types {
		if t == tt {
			return true
		}
	}
	return false
}

// Dimension is a named axis of a Structure.
type Dimension struct {
	name string

	// Length is the number of elements along the dimension. For the
	// unlimited dimension it is the current number of records.
	Length int

	// Unlimited marks the record dimension. At most one dimension in a
	// Structure is expected to be unlimited.
	Unlimited bool
}

// Name returns the name of the dimension.
func (d *Dimension) Name() string { return d.name }

// Attribute is a named value attached to a Structure or a Variable.
type Attribute struct {
	name string

	// Value holds the attribute data. Its type determines the
	// attribute's type.
	Value Value
}

// Name returns the name of the attribute.
func (a *Attribute) Name() string { return a.name }

// Type returns the type of the attribute's value, or "" if it has none.
func (a *Attribute) Type() string {
	if a.Value == nil {
		return ""
	}
	return a.Value.Type()
}

// AttributeSet is an ordered collection of uniquely named attributes.
// It is embedded in Structure (global attributes) and Variable.
type AttributeSet struct {
	attrs orderedMap[*Attribute]
}

// CreateAttribute adds an attribute with the given name and value.
func (as *AttributeSet) CreateAttribute(name string, v Value) (*Attribute, error) {
	if v == nil {
		return nil, &TypeFormatError{Type: "<nil>"}
	}
	a := &Attribute{name: name, Value: v}
	if !as.attrs.add(name, a) {
		return nil, &DuplicateNameError{Kind: "attribute", Name: name}
	}
	return a, nil
}

// Attribute returns the named attribute.
func (as *AttributeSet) Attribute(name string) (*Attribute, bool) {
	return as.attrs.get(name)
}

// Attributes returns the attributes in creation order.
func (as *AttributeSet) Attributes() []*Attribute { return as.attrs.values() }

// RenameAttribute renames an attribute, keeping its position.
func (as *AttributeSet) RenameAttribute(oldName, newName string) error {
	a, ok := as.attrs.get(oldName)
	if !ok {
		return &NotFoundError{Kind: "attribute", Name: oldName}
	}
	if oldName == newName {
		return nil
	}
	if as.attrs.has(newName) {
		return &DuplicateNameError{Kind: "attribute", Name: newName}
	}
	as.attrs.rename(oldName, newName)
	a.name = newName
	return nil
}

// DeleteAttribute removes the named attribute.
func (as *AttributeSet) DeleteAttribute(name string) error {
	if !as.attrs.remove(name) {
		return &NotFoundError{Kind: "attribute", Name: name}
	}
	return nil
}

// Variable is a named, typed array defined over an ordered list of
// dimensions.
type Variable struct {
	AttributeSet

	name string

	// Type is the declared element type, one of Types.
	Type string

	shape []string
}

// Name returns the name of the variable.
func (v *Variable) Name() string { return v.name }

// Shape returns the names of the variable's dimensions, outermost first.
// A scalar variable has an empty shape.
func (v *Variable) Shape() []string {
	o := make([]string, len(v.shape))
	copy(o, v.shape)
	return o
}

// Structure is the metadata of a classic netCDF file.
type Structure struct {
	// Global attributes.
	AttributeSet

	// Location identifies where the structure came from. Writers use
	// it for the dataset name.
	Location string

	dims orderedMap[*Dimension]
	vars orderedMap[*Variable]
}

// New returns an empty Structure.
func New(location string) *Structure {
	return &Structure{Location: location}
}

// CreateDimension adds a dimension. Unlimited dimensions keep length
// as their current record count.
func (s *Structure) CreateDimension(name string, length int, unlimited bool) (*Dimension, error) {
	if length < 0 {
		return nil, fmt.Errorf("ncstructure: dimension %s: negative length %d", name, length)
	}
	d := &Dimension{name: name, Length: length, Unlimited: unlimited}
	if !s.dims.add(name, d) {
		return nil, &DuplicateNameError{Kind: "dimension", Name: name}
	}
	return d, nil
}

// Dimension returns the named dimension.
func (s *Structure) Dimension(name string) (*Dimension, bool) { return s.dims.get(name) }

// Dimensions returns the dimensions in creation order.
func (s *Structure) Dimensions() []*Dimension { return s.dims.values() }

// Unlimited returns the first unlimited dimension, if there is one.
func (s *Structure) Unlimited() (*Dimension, bool) {
	for _, d := range s.dims.vals {
		if d.Unlimited {
			return d, true
		}
	}
	return nil, false
}

// CreateVariable adds a variable of type typ whose shape is the given
// list of dimension names. Every name in shape must already be a
// dimension of s.
func (s *Structure) CreateVariable(name, typ string, shape []string) (*Variable, error) {
	if !IsType(typ) {
		return nil, &UnknownTypeError{Type: typ}
	}
	for _, d := range shape {
		if !s.dims.has(d) {
			return nil, &DimensionNotFoundError{Variable: name, Dimension: d}
		}
	}
	if s.vars.has(name) {
		return nil, &DuplicateNameError{Kind: "variable", Name: name}
	}
	v := &Variable{name: name, Type: typ, shape: append([]string(nil), shape...)}
	s.vars.add(name, v)
	return v, nil
}

// Variable returns the named variable.
func (s *Structure) Variable(name string) (*Variable, bool) { return s.vars.get(name) }

// Variables returns the variables in creation order.
func (s *Structure) Variables() []*Variable { return s.vars.values() }

// Lengths returns the lengths of the dimensions of the named variable,
// looked up in s at the time of the call.
func (s *Structure) Lengths(variable string) ([]int, error) {
	v, ok := s.vars.get(variable)
	if !ok {
		return nil, &NotFoundError{Kind: "variable", Name: variable}
	}
	o := make([]int, len(v.shape))
	for i, name := range v.shape {
		d, ok := s.dims.get(name)
		if !ok {
			return nil, &DimensionNotFoundError{Variable: variable, Dimension: name}
		}
		o[i] = d.Length
	}
	return o, nil
}

// RenameDimension renames a dimension, keeping its position, and
// updates every variable shape that refers to it.
func (s *Structure) RenameDimension(oldName, newName string) error {
	d, ok := s.dims.get(oldName)
	if !ok {
		return &NotFoundError{Kind: "dimension", Name: oldName}
	}
	if oldName == newName {
		return nil
	}
	if s.dims.has(newName) {
		return &DuplicateNameError{Kind: "dimension", Name: newName}
	}
	s.dims.rename(oldName, newName)
	d.name = newName
	for _, v := range s.vars.vals {
		for i, dd := range v.shape {
			if dd == oldName {
				v.shape[i] = newName
			}
		}
	}
	return nil
}

// RenameVariable renames a variable, keeping its position.
func (s *Structure) RenameVariable(oldName, newName string) error {
	v, ok := s.vars.get(oldName)
	if !ok {
		return &NotFoundError{Kind: "variable", Name: oldName}
	}
	if oldName == newName {
		return nil
	}
	if s.vars.has(newName) {
		return &DuplicateNameError{Kind: "variable", Name: newName}
	}
	s.vars.rename(oldName, newName)
	v.name = newName
	return nil
}

// DeleteVariable removes the named variable and its attributes.
func (s *Structure) DeleteVariable(name string) error {
	if !s.vars.remove(name) {
		return &NotFoundError{Kind: "variable", Name: name}
	}
	return nil
}
