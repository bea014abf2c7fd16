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

// Package cdl reads and writes the Common Data Language (CDL) text
// form of a netCDF structure, as produced by `ncdump -h`.
package cdl

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spatialmodel/ncstructure"
)

// Parse reads a CDL document and returns the structure it declares.
// Anything after a "data:" line is ignored.
func Parse(r io.Reader) (*ncstructure.Structure, error) {
	l := NewLexer(r)
	if !l.Next() {
		if err := l.Err(); err != nil {
			return nil, err
		}
		return nil, &ncstructure.ParseError{Err: errors.New("empty document")}
	}
	location, err := parseHeader(l.Line())
	if err != nil {
		return nil, err
	}
	s := ncstructure.New(location)
	for l.Next() {
		if err := parseLine(s, l.Line()); err != nil {
			return nil, err
		}
	}
	if err := l.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseHeader returns the dataset name from the `netcdf <name> {` line.
func parseHeader(line string) (string, error) {
	words := strings.Fields(line)
	if len(words) != 2 || words[0] != "netcdf" {
		return "", &ncstructure.ParseError{Line: line, Err: errors.New("expected `netcdf <name> {`")}
	}
	return words[1], nil
}

// parseLine classifies one logical line and adds its declaration to s.
func parseLine(s *ncstructure.Structure, line string) error {
	var err error
	switch {
	case strings.Contains(line, ":"):
		err = parseAttribute(s, line)
	case strings.Contains(line, "="):
		err = parseDimension(s, line)
	default:
		words := strings.Fields(line)
		switch {
		case len(words) == 1 && (words[0] == "dimensions" || words[0] == "variables"):
			return nil
		case ncstructure.IsType(words[0]):
			err = parseVariable(s, line)
		default:
			return &ncstructure.ParseError{Line: line}
		}
	}
	if err != nil {
		if _, ok := err.(*ncstructure.ParseError); ok {
			return err
		}
		return &ncstructure.ParseError{Line: line, Err: err}
	}
	return nil
}

// parseDimension handles `name = length` and `name = UNLIMITED`.
func parseDimension(s *ncstructure.Structure, line string) error {
	i := strings.Index(line, "=")
	name := strings.TrimSpace(line[:i])
	val := strings.TrimSpace(line[i+1:])
	if name == "" || strings.ContainsAny(name, " \t") || val == "" {
		return &ncstructure.ParseError{Line: line}
	}
	if strings.EqualFold(val, "UNLIMITED") {
		_, err := s.CreateDimension(name, 0, true)
		return err
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return &ncstructure.ParseError{Line: line, Err: err}
	}
	_, err = s.CreateDimension(name, n, false)
	return err
}

// parseVariable handles `type name(dim0, dim1, ...)` and `type name`.
func parseVariable(s *ncstructure.Structure, line string) error {
	lp := strings.Index(line, "(")
	rp := strings.LastIndex(line, ")")
	head := line
	var shape []string
	switch {
	case lp < 0 && rp < 0:
	case lp >= 0 && rp > lp && strings.TrimSpace(line[rp+1:]) == "":
		head = line[:lp]
		shape = strings.FieldsFunc(line[lp+1:rp], func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	default:
		return &ncstructure.ParseError{Line: line}
	}
	words := strings.Fields(head)
	if len(words) != 2 {
		return &ncstructure.ParseError{Line: line}
	}
	_, err := s.CreateVariable(words[1], words[0], shape)
	return err
}

// parseAttribute handles `:name = value` (global) and
// `var:name = value`.
func parseAttribute(s *ncstructure.Structure, line string) error {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return &ncstructure.ParseError{Line: line}
	}
	lhs := line[:eq]
	colon := strings.Index(lhs, ":")
	if colon < 0 {
		return &ncstructure.ParseError{Line: line}
	}
	varName := strings.TrimSpace(lhs[:colon])
	name := strings.TrimSpace(lhs[colon+1:])
	if name == "" || strings.ContainsAny(name, " \t") {
		return &ncstructure.ParseError{Line: line}
	}
	v, err := ncstructure.ParseValue(line[eq+1:])
	if err != nil {
		return err
	}
	if varName == "" {
		_, err = s.CreateAttribute(name, v)
		return err
	}
	vv, ok := s.Variable(varName)
	if !ok {
		return &ncstructure.NotFoundError{Kind: "variable", Name: varName}
	}
	_, err = vv.CreateAttribute(name, v)
	return err
}
