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

import (
	"errors"
	"reflect"
	"testing"
)

func dimNames(s *Structure) []string {
	var o []string
	for _, d := range s.Dimensions() {
		o = append(o, d.Name())
	}
	return o
}

func varNames(s *Structure) []string {
	var o []string
	for _, v := range s.Variables() {
		o = append(o, v.Name())
	}
	return o
}

func attNames(as []*Attribute) []string {
	var o []string
	for _, a := range as {
		o = append(o, a.Name())
	}
	return o
}

func TestEmptyStructure(t *testing.T) {
	s := New("")
	if s.Location != "" {
		t.Errorf("location: have %q, want empty", s.Location)
	}
	if len(s.Dimensions()) != 0 || len(s.Variables()) != 0 || len(s.Attributes()) != 0 {
		t.Error("new structure should be empty")
	}
	if _, ok := s.Unlimited(); ok {
		t.Error("empty structure should have no unlimited dimension")
	}
}

func TestCreate(t *testing.T) {
	s := New("test")
	if _, err := s.CreateDimension("lon", 360, false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateDimension("time", 0, true); err != nil {
		t.Fatal(err)
	}
	v, err := s.CreateVariable("time", "double", []string{"time"})
	if err != nil {
		t.Fatal(err)
	}
	v.CreateAttribute("name", Text("time"))
	v.CreateAttribute("units", Text("seconds since 1948-01-01 00:00:00"))
	u, err := s.CreateVariable("u", "float", []string{"time", "lon"})
	if err != nil {
		t.Fatal(err)
	}
	u.CreateAttribute("units", Text("meter second-1"))
	s.CreateAttribute("institution", Text("Institute of Marine Research"))
	s.CreateAttribute("author", Text("Bjørn Ådlandsvik"))

	lon, _ := s.Dimension("lon")
	if lon.Length != 360 || lon.Unlimited {
		t.Errorf("lon: have %+v", lon)
	}
	if d, ok := s.Unlimited(); !ok || d.Name() != "time" {
		t.Errorf("unlimited dimension: have %v, %v", d, ok)
	}
	uu, _ := s.Variable("u")
	if !reflect.DeepEqual(uu.Shape(), []string{"time", "lon"}) {
		t.Errorf("shape: have %v", uu.Shape())
	}
	if uu.Type != "float" {
		t.Errorf("type: have %s", uu.Type)
	}
	units, _ := uu.Attribute("units")
	if units.Value != Text("meter second-1") || units.Type() != "String" {
		t.Errorf("units: have %#v", units)
	}
	inst, _ := s.Attribute("institution")
	if inst.Name() != "institution" || inst.Value != Text("Institute of Marine Research") {
		t.Errorf("institution: have %#v", inst)
	}
	if have, want := attNames(s.Attributes()), []string{"institution", "author"}; !reflect.DeepEqual(have, want) {
		t.Errorf("global attribute order: have %v, want %v", have, want)
	}
	lengths, err := s.Lengths("u")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(lengths, []int{0, 360}) {
		t.Errorf("lengths: have %v", lengths)
	}
}

func TestMissingDimension(t *testing.T) {
	s := New("test")
	s.CreateDimension("lon", 360, false)
	_, err := s.CreateVariable("temperature", "float", []string{"lat", "lon"})
	var dnf *DimensionNotFoundError
	if !errors.As(err, &dnf) {
		t.Fatalf("have %v, want DimensionNotFoundError", err)
	}
	if dnf.Dimension != "lat" || dnf.Variable != "temperature" {
		t.Errorf("have %+v", dnf)
	}
	if _, ok := s.Variable("temperature"); ok {
		t.Error("failed variable should not be added")
	}
	s.CreateDimension("lat", 180, false)
	if _, err := s.CreateVariable("temperature", "float", []string{"lat", "lon"}); err != nil {
		t.Errorf("with both dimensions declared: %v", err)
	}
}

func TestCreateErrors(t *testing.T) {
	s := New("test")
	s.CreateDimension("x", 3, false)
	s.CreateVariable("v", "int", []string{"x"})
	s.CreateAttribute("a", Ints{1})

	var dup *DuplicateNameError
	if _, err := s.CreateDimension("x", 4, false); !errors.As(err, &dup) {
		t.Errorf("dimension: have %v", err)
	}
	if _, err := s.CreateVariable("v", "int", nil); !errors.As(err, &dup) {
		t.Errorf("variable: have %v", err)
	}
	if _, err := s.CreateAttribute("a", Text("b")); !errors.As(err, &dup) {
		t.Errorf("attribute: have %v", err)
	}
	var ut *UnknownTypeError
	if _, err := s.CreateVariable("w", "complex", nil); !errors.As(err, &ut) {
		t.Errorf("type: have %v", err)
	}
	if _, err := s.CreateDimension("y", -1, false); err == nil {
		t.Error("negative length should fail")
	}
	if _, err := s.CreateAttribute("n", nil); err == nil {
		t.Error("nil value should fail")
	}
}

func TestRenameDimension(t *testing.T) {
	s := New("test")
	s.CreateDimension("a", 10, false)
	s.CreateDimension("b", 20, false)
	s.CreateDimension("c", 30, false)
	v, _ := s.CreateVariable("lon", "float", []string{"a", "b"})
	w, _ := s.CreateVariable("lat", "float", []string{"b", "c", "b"})
	b, _ := s.Dimension("b")

	if err := s.RenameDimension("b", "bb"); err != nil {
		t.Fatal(err)
	}
	bb, ok := s.Dimension("bb")
	if !ok || bb != b {
		t.Error("renamed dimension should be the same dimension")
	}
	if bb.Name() != "bb" {
		t.Errorf("name: have %s", bb.Name())
	}
	if _, ok := s.Dimension("b"); ok {
		t.Error("old name should be gone")
	}
	if have, want := dimNames(s), []string{"a", "bb", "c"}; !reflect.DeepEqual(have, want) {
		t.Errorf("order: have %v, want %v", have, want)
	}
	if have, want := v.Shape(), []string{"a", "bb"}; !reflect.DeepEqual(have, want) {
		t.Errorf("shape: have %v, want %v", have, want)
	}
	if have, want := w.Shape(), []string{"bb", "c", "bb"}; !reflect.DeepEqual(have, want) {
		t.Errorf("shape: have %v, want %v", have, want)
	}

	var nf *NotFoundError
	if err := s.RenameDimension("longitude", "latitude"); !errors.As(err, &nf) {
		t.Errorf("missing: have %v", err)
	}
	var dup *DuplicateNameError
	if err := s.RenameDimension("a", "c"); !errors.As(err, &dup) {
		t.Errorf("taken: have %v", err)
	}
	if err := s.RenameDimension("a", "a"); err != nil {
		t.Errorf("same name: %v", err)
	}
}

func TestRenameVariable(t *testing.T) {
	s := New("test")
	s.CreateDimension("lon", 360, false)
	s.CreateVariable("a", "float", []string{"lon"})
	b, _ := s.CreateVariable("b", "float", []string{"lon"})
	s.CreateVariable("c", "float", []string{"lon"})

	if err := s.RenameVariable("b", "bb"); err != nil {
		t.Fatal(err)
	}
	bb, _ := s.Variable("bb")
	if bb != b || bb.Name() != "bb" {
		t.Errorf("have %#v", bb)
	}
	if have, want := varNames(s), []string{"a", "bb", "c"}; !reflect.DeepEqual(have, want) {
		t.Errorf("order: have %v, want %v", have, want)
	}
	var nf *NotFoundError
	if err := s.RenameVariable("longitude", "latitude"); !errors.As(err, &nf) {
		t.Errorf("missing: have %v", err)
	}
	var dup *DuplicateNameError
	if err := s.RenameVariable("a", "c"); !errors.As(err, &dup) {
		t.Errorf("taken: have %v", err)
	}
}

func TestRenameAttribute(t *testing.T) {
	s := New("test")
	s.CreateDimension("lon", 360, false)
	v, _ := s.CreateVariable("lon", "float", []string{"lon"})
	s.CreateAttribute("type", Text("Global test attribute"))
	s.CreateAttribute("history", Text("created"))
	v.CreateAttribute("long_name", Text("longitude"))
	v.CreateAttribute("units", Text("degrees_east"))

	if err := s.RenameAttribute("type", "newtype"); err != nil {
		t.Fatal(err)
	}
	a, _ := s.Attribute("newtype")
	if a.Name() != "newtype" {
		t.Errorf("name: have %s", a.Name())
	}
	if have, want := attNames(s.Attributes()), []string{"newtype", "history"}; !reflect.DeepEqual(have, want) {
		t.Errorf("order: have %v, want %v", have, want)
	}
	if err := v.RenameAttribute("long_name", "standard_name"); err != nil {
		t.Fatal(err)
	}
	if have, want := attNames(v.Attributes()), []string{"standard_name", "units"}; !reflect.DeepEqual(have, want) {
		t.Errorf("order: have %v, want %v", have, want)
	}
	var nf *NotFoundError
	if err := v.RenameAttribute("long_name", "x"); !errors.As(err, &nf) {
		t.Errorf("missing: have %v", err)
	}
	var dup *DuplicateNameError
	if err := v.RenameAttribute("units", "standard_name"); !errors.As(err, &dup) {
		t.Errorf("taken: have %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New("test")
	s.CreateDimension("x", 2, false)
	s.CreateVariable("a", "int", []string{"x"})
	s.CreateVariable("b", "int", []string{"x"})
	s.CreateVariable("c", "int", []string{"x"})
	s.CreateAttribute("g1", Ints{1})
	s.CreateAttribute("g2", Ints{2})

	if err := s.DeleteVariable("b"); err != nil {
		t.Fatal(err)
	}
	if have, want := varNames(s), []string{"a", "c"}; !reflect.DeepEqual(have, want) {
		t.Errorf("order: have %v, want %v", have, want)
	}
	// The index must still find entries that moved.
	if err := s.RenameVariable("c", "cc"); err != nil {
		t.Fatal(err)
	}
	if have, want := varNames(s), []string{"a", "cc"}; !reflect.DeepEqual(have, want) {
		t.Errorf("after rename: have %v, want %v", have, want)
	}
	var nf *NotFoundError
	if err := s.DeleteVariable("b"); !errors.As(err, &nf) {
		t.Errorf("missing: have %v", err)
	}
	if err := s.DeleteAttribute("g1"); err != nil {
		t.Fatal(err)
	}
	if have, want := attNames(s.Attributes()), []string{"g2"}; !reflect.DeepEqual(have, want) {
		t.Errorf("attributes: have %v, want %v", have, want)
	}
	if _, err := s.Lengths("b"); !errors.As(err, &nf) {
		t.Errorf("lengths of deleted variable: have %v", err)
	}
}

func TestShapeIsCopied(t *testing.T) {
	s := New("test")
	s.CreateDimension("x", 2, false)
	shape := []string{"x"}
	v, _ := s.CreateVariable("a", "int", shape)
	shape[0] = "y"
	v.Shape()[0] = "z"
	if have := v.Shape(); !reflect.DeepEqual(have, []string{"x"}) {
		t.Errorf("shape changed through an alias: %v", have)
	}
}
