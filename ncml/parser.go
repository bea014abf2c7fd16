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


// Package ncml reads and writes the NcML (netCDF Markup Language) form
// of a netCDF structure, as produced by `ncdump -x`.
package ncml

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spatialmodel/ncstructure"
)

// Namespace is the XML namespace of NcML 2.2 documents.
const Namespace = "http://www.unidata.ucar.edu/namespaces/netcdf/ncml-2.2"

// element is a generic XML element that keeps its attributes and
// children in document order.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// mustAttr returns the value of a required attribute.
func (e *element) mustAttr(name string) (string, error) {
	v, ok := e.attr(name)
	if !ok {
		return "", &ncstructure.ParseError{
			Line: "<" + e.XMLName.Local + ">",
			Err:  errors.New("missing attribute " + name),
		}
	}
	return v, nil
}

// Parse reads an NcML document and returns the structure it declares.
// Child elements other than dimension, attribute and variable are
// ignored, as is any data they carry.
func Parse(r io.Reader) (*ncstructure.Structure, error) {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, &ncstructure.ParseError{Err: err}
	}
	if root.XMLName.Local != "netcdf" {
		return nil, &ncstructure.ParseError{
			Line: "<" + root.XMLName.Local + ">",
			Err:  errors.New("root element must be netcdf"),
		}
	}
	location, err := root.mustAttr("location")
	if err != nil {
		return nil, err
	}
	s := ncstructure.New(location)
	for i := range root.Children {
		c := &root.Children[i]
		switch c.XMLName.Local {
		case "dimension":
			err = parseDimension(s, c)
		case "attribute":
			err = parseAttribute(&s.AttributeSet, c)
		case "variable":
			err = parseVariable(s, c)
		}
		if err != nil {
			return nil, wrap(c, err)
		}
	}
	return s, nil
}

// wrap places err in a ParseError naming the element, unless it
// already is one.
func wrap(e *element, err error) error {
	if _, ok := err.(*ncstructure.ParseError); ok {
		return err
	}
	name, _ := e.attr("name")
	return &ncstructure.ParseError{
		Line: "<" + e.XMLName.Local + " name=\"" + name + "\">",
		Err:  err,
	}
}

func parseDimension(s *ncstructure.Structure, e *element) error {
	name, err := e.mustAttr("name")
	if err != nil {
		return err
	}
	l, err := e.mustAttr("length")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil {
		return err
	}
	_, unlimited := e.attr("isUnlimited")
	_, err = s.CreateDimension(name, n, unlimited)
	return err
}

func parseAttribute(as *ncstructure.AttributeSet, e *element) error {
	name, err := e.mustAttr("name")
	if err != nil {
		return err
	}
	value, err := e.mustAttr("value")
	if err != nil {
		return err
	}
	typ, ok := e.attr("type")
	if !ok {
		typ = "String"
	}
	v, err := ncstructure.ParseTyped(typ, value)
	if err != nil {
		return err
	}
	_, err = as.CreateAttribute(name, v)
	return err
}

func parseVariable(s *ncstructure.Structure, e *element) error {
	name, err := e.mustAttr("name")
	if err != nil {
		return err
	}
	typ, err := e.mustAttr("type")
	if err != nil {
		return err
	}
	shape, _ := e.attr("shape")
	v, err := s.CreateVariable(name, typ, strings.Fields(shape))
	if err != nil {
		return err
	}
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local != "attribute" {
			continue
		}
		if err := parseAttribute(&v.AttributeSet, c); err != nil {
			return wrap(c, err)
		}
	}
	return nil
}
