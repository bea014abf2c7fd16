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


// Package ncfile extracts the structure of a classic netCDF file and
// creates empty classic files from a structure.
package ncfile

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/ncstructure"
)

// Header is the read-only view of a netCDF header needed to extract a
// Structure. *cdf.Header satisfies it.
type Header interface {
	// Dimensions returns the dimension names of variable v, or of the
	// whole file if v is "".
	Dimensions(v string) []string

	// Lengths returns the dimension lengths matching Dimensions. The
	// record dimension has length 0.
	Lengths(v string) []int

	Variables() []string

	// Attributes returns the attribute names of variable v, or the
	// global attribute names if v is "".
	Attributes(v string) []string

	GetAttribute(v, a string) interface{}

	// ZeroValue returns a zeroed slice of the element type of v.
	ZeroValue(v string, n int) interface{}
}

// Extract builds a Structure from h. numRecs is the current length of
// the record dimension.
func Extract(h Header, location string, numRecs int64) (*ncstructure.Structure, error) {
	s := ncstructure.New(location)
	dims, lengths := h.Dimensions(""), h.Lengths("")
	if len(dims) != len(lengths) {
		return nil, fmt.Errorf("ncfile: %d dimension names but %d lengths", len(dims), len(lengths))
	}
	for i, d := range dims {
		var err error
		if lengths[i] == 0 {
			_, err = s.CreateDimension(d, int(numRecs), true)
		} else {
			_, err = s.CreateDimension(d, lengths[i], false)
		}
		if err != nil {
			return nil, err
		}
	}
	for _, name := range h.Variables() {
		typ, err := typeOf(h.ZeroValue(name, 0))
		if err != nil {
			return nil, fmt.Errorf("ncfile: variable %s: %w", name, err)
		}
		v, err := s.CreateVariable(name, typ, h.Dimensions(name))
		if err != nil {
			return nil, err
		}
		if err := extractAttributes(h, name, &v.AttributeSet); err != nil {
			return nil, err
		}
	}
	if err := extractAttributes(h, "", &s.AttributeSet); err != nil {
		return nil, err
	}
	return s, nil
}

func extractAttributes(h Header, variable string, as *ncstructure.AttributeSet) error {
	for _, a := range h.Attributes(variable) {
		val, err := toValue(h.GetAttribute(variable, a))
		if err != nil {
			return fmt.Errorf("ncfile: attribute %s:%s: %w", variable, a, err)
		}
		if _, err := as.CreateAttribute(a, val); err != nil {
			return err
		}
	}
	return nil
}

// typeOf returns the type name of a zero value returned by a Header.
func typeOf(zero interface{}) (string, error) {
	switch zero.(type) {
	case []uint8:
		return "byte", nil
	case string:
		return "char", nil
	case []int16:
		return "short", nil
	case []int32:
		return "int", nil
	case []float32:
		return "float", nil
	case []float64:
		return "double", nil
	}
	return "", &ncstructure.TypeFormatError{Type: fmt.Sprintf("%T", zero)}
}

// toValue copies an attribute value returned by a Header.
func toValue(v interface{}) (ncstructure.Value, error) {
	switch vv := v.(type) {
	case string:
		return ncstructure.Text(vv), nil
	case []int16:
		return append(ncstructure.Shorts(nil), vv...), nil
	case []int32:
		return append(ncstructure.Ints(nil), vv...), nil
	case []float32:
		return append(ncstructure.Floats(nil), vv...), nil
	case []float64:
		return append(ncstructure.Doubles(nil), vv...), nil
	}
	return nil, &ncstructure.TypeFormatError{Type: fmt.Sprintf("%T", v)}
}

// Read extracts the Structure of the netCDF file stored in rw, whose
// total size is used to count the records.
func Read(rw cdf.ReaderWriterAt, size int64, location string) (*ncstructure.Structure, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("ncfile: opening %s: %v", location, err)
	}
	return Extract(f.Header, location, f.Header.NumRecs(size))
}

// Open extracts the Structure of the netCDF file at path.
func Open(path string) (*ncstructure.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncfile: %v", err)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("ncfile: %v", err)
	}
	return Read(f, fi.Size(), path)
}

// Create writes the header of an empty classic netCDF file defined by
// s to rw. The record dimension is written with no records, whatever
// its length in s.
func Create(rw cdf.ReaderWriterAt, s *ncstructure.Structure) (*cdf.File, error) {
	h, err := NewHeader(s)
	if err != nil {
		return nil, err
	}
	f, err := cdf.Create(rw, h)
	if err != nil {
		return nil, fmt.Errorf("ncfile: creating file: %v", err)
	}
	return f, nil
}

// NewHeader converts s into a defined cdf header. Structures the
// classic format cannot hold are reported as errors.
func NewHeader(s *ncstructure.Structure) (*cdf.Header, error) {
	dims := s.Dimensions()
	names := make([]string, len(dims))
	lengths := make([]int, len(dims))
	var record string
	for i, d := range dims {
		names[i] = d.Name()
		switch {
		case d.Unlimited && record != "":
			return nil, fmt.Errorf("ncfile: dimensions %s and %s are both unlimited", record, d.Name())
		case d.Unlimited:
			record = d.Name()
		case d.Length == 0:
			return nil, fmt.Errorf("ncfile: dimension %s has zero length", d.Name())
		default:
			lengths[i] = d.Length
		}
	}
	h := cdf.NewHeader(names, lengths)

	for _, v := range s.Variables() {
		zero, err := zeroValue(v.Type)
		if err != nil {
			return nil, fmt.Errorf("ncfile: variable %s: %w", v.Name(), err)
		}
		shape := v.Shape()
		for i, d := range shape {
			if d == record && i != 0 {
				return nil, fmt.Errorf("ncfile: variable %s: record dimension %s is not outermost", v.Name(), d)
			}
		}
		h.AddVariable(v.Name(), shape, zero)
		for _, a := range v.Attributes() {
			val, err := fromValue(a.Value)
			if err != nil {
				return nil, fmt.Errorf("ncfile: attribute %s:%s: %w", v.Name(), a.Name(), err)
			}
			h.AddAttribute(v.Name(), a.Name(), val)
		}
	}
	for _, a := range s.Attributes() {
		val, err := fromValue(a.Value)
		if err != nil {
			return nil, fmt.Errorf("ncfile: attribute :%s: %w", a.Name(), err)
		}
		h.AddAttribute("", a.Name(), val)
	}

	h.Define()
	for _, err := range h.Check() {
		return nil, fmt.Errorf("ncfile: %v", err)
	}
	return h, nil
}

func zeroValue(typ string) (interface{}, error) {
	switch typ {
	case "byte":
		return []uint8{0}, nil
	case "char":
		return "", nil
	case "short":
		return []int16{0}, nil
	case "int":
		return []int32{0}, nil
	case "float":
		return []float32{0}, nil
	case "double":
		return []float64{0}, nil
	}
	return nil, &ncstructure.UnknownTypeError{Type: typ}
}

func fromValue(v ncstructure.Value) (interface{}, error) {
	switch vv := v.(type) {
	case ncstructure.Text:
		return string(vv), nil
	case ncstructure.Shorts:
		return []int16(vv), nil
	case ncstructure.Ints:
		return []int32(vv), nil
	case ncstructure.Floats:
		return []float32(vv), nil
	case ncstructure.Doubles:
		return []float64(vv), nil
	}
	return nil, &ncstructure.TypeFormatError{Type: fmt.Sprintf("%T", v)}
}
