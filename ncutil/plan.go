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


package ncutil

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/ncstructure"
)

// Plan is an ordered list of edits to apply to a structure. It is
// usually read from a TOML file such as:
//
//	[[rename]]
//	kind = "dimension"
//	old = "b"
//	new = "bb"
//
//	[[rename]]
//	kind = "attribute"
//	variable = "temp"
//	old = "unit"
//	new = "units"
//
//	[[delete]]
//	kind = "variable"
//	name = "scratch"
//
// Renames are applied in order, followed by deletions.
type Plan struct {
	Rename []Rename `toml:"rename"`
	Delete []Delete `toml:"delete"`
}

// Rename renames a dimension, a variable or an attribute. Attributes
// belong to Variable, or are global if Variable is empty.
type Rename struct {
	Kind     string `toml:"kind"`
	Old      string `toml:"old"`
	New      string `toml:"new"`
	Variable string `toml:"variable"`
}

// Delete removes a variable or an attribute.
type Delete struct {
	Kind     string `toml:"kind"`
	Name     string `toml:"name"`
	Variable string `toml:"variable"`
}

// ReadPlan decodes a TOML plan from r.
func ReadPlan(r io.Reader) (*Plan, error) {
	p := new(Plan)
	md, err := toml.DecodeReader(r, p)
	if err != nil {
		return nil, fmt.Errorf("ncutil: reading plan: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("ncutil: unknown plan keys %v", undecoded)
	}
	return p, nil
}

// Apply performs the plan's edits on s, stopping at the first one
// that fails.
func (p *Plan) Apply(s *ncstructure.Structure) error {
	for i, r := range p.Rename {
		if err := r.apply(s); err != nil {
			return fmt.Errorf("ncutil: rename %d: %w", i+1, err)
		}
	}
	for i, d := range p.Delete {
		if err := d.apply(s); err != nil {
			return fmt.Errorf("ncutil: delete %d: %w", i+1, err)
		}
	}
	return nil
}

func (r Rename) apply(s *ncstructure.Structure) error {
	switch r.Kind {
	case "dimension":
		return s.RenameDimension(r.Old, r.New)
	case "variable":
		return s.RenameVariable(r.Old, r.New)
	case "attribute":
		as, err := attributeSet(s, r.Variable)
		if err != nil {
			return err
		}
		return as.RenameAttribute(r.Old, r.New)
	}
	return fmt.Errorf("invalid kind %q", r.Kind)
}

func (d Delete) apply(s *ncstructure.Structure) error {
	switch d.Kind {
	case "variable":
		return s.DeleteVariable(d.Name)
	case "attribute":
		as, err := attributeSet(s, d.Variable)
		if err != nil {
			return err
		}
		return as.DeleteAttribute(d.Name)
	}
	return fmt.Errorf("invalid kind %q", d.Kind)
}

// attributeSet returns the attributes of the named variable, or the
// global attributes if variable is empty.
func attributeSet(s *ncstructure.Structure, variable string) (*ncstructure.AttributeSet, error) {
	if variable == "" {
		return &s.AttributeSet, nil
	}
	v, ok := s.Variable(variable)
	if !ok {
		return nil, &ncstructure.NotFoundError{Kind: "variable", Name: variable}
	}
	return &v.AttributeSet, nil
}

// AddRenames appends renames given as old->new maps to the plan, in
// sorted order of the old names. Attribute keys have the form
// "variable:attribute", or ":attribute" or "attribute" for global
// attributes.
func (p *Plan) AddRenames(dims, vars, atts map[string]string) {
	for _, k := range sortedKeys(dims) {
		p.Rename = append(p.Rename, Rename{Kind: "dimension", Old: k, New: dims[k]})
	}
	for _, k := range sortedKeys(vars) {
		p.Rename = append(p.Rename, Rename{Kind: "variable", Old: k, New: vars[k]})
	}
	for _, k := range sortedKeys(atts) {
		r := Rename{Kind: "attribute", Old: k, New: atts[k]}
		if i := strings.Index(k, ":"); i >= 0 {
			r.Variable, r.Old = k[:i], k[i+1:]
		}
		p.Rename = append(p.Rename, r)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
