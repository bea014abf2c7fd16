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
	"math"
	"reflect"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		literal string
		want    Value
	}{
		{literal: `"ASCII text"`, want: Text("ASCII text")},
		{literal: `"Bjørn Ådlandsvik"`, want: Text("Bjørn Ådlandsvik")},
		{literal: `"a; b: c = d, e"`, want: Text("a; b: c = d, e")},
		{literal: `""`, want: Text("")},
		{literal: "3s", want: Shorts{3}},
		{literal: "3", want: Ints{3}},
		{literal: "3.14f", want: Floats{3.14}},
		{literal: "3.14159", want: Doubles{3.14159}},
		{literal: "1s, 2, 3s", want: Shorts{1, 2, 3}},
		{literal: "1, 2, 3", want: Ints{1, 2, 3}},
		{literal: "1,2,3", want: Ints{1, 2, 3}},
		{literal: "1.0f, 2e16f, -4.2e11", want: Floats{1, 2e16, -4.2e11}},
		{literal: "1.0, 2e16, -4.2e11", want: Doubles{1, 2e16, -4.2e11}},
		{literal: "1.e+37f", want: Floats{1e37}},
		{literal: "-2.f, 40.f", want: Floats{-2, 40}},
		{literal: " -32767s ", want: Shorts{-32767}},
	}
	for _, test := range tests {
		t.Run(test.literal, func(t *testing.T) {
			have, err := ParseValue(test.literal)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("have %#v, want %#v", have, test.want)
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	for _, literal := range []string{"", "abc", "1b", "40000s", "1.0.0", `"unterminated`, "3, x"} {
		t.Run(literal, func(t *testing.T) {
			_, err := ParseValue(literal)
			var vfe *ValueFormatError
			if !errors.As(err, &vfe) {
				t.Errorf("have %v, want ValueFormatError", err)
			}
		})
	}
}

func TestParseTyped(t *testing.T) {
	tests := []struct {
		typ, text string
		want      Value
	}{
		{typ: "String", text: "a  b ", want: Text("a  b ")},
		{typ: "short", text: "1 -2", want: Shorts{1, -2}},
		{typ: "int", text: "7", want: Ints{7}},
		{typ: "float", text: "1. 1.e+20", want: Floats{1, 1e20}},
		{typ: "double", text: "0.5 -4.2e+11", want: Doubles{0.5, -4.2e11}},
	}
	for _, test := range tests {
		t.Run(test.typ, func(t *testing.T) {
			have, err := ParseTyped(test.typ, test.text)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("have %#v, want %#v", have, test.want)
			}
		})
	}
	var ut *UnknownTypeError
	if _, err := ParseTyped("byte", "1"); !errors.As(err, &ut) {
		t.Errorf("byte: have %v", err)
	}
	var vfe *ValueFormatError
	if _, err := ParseTyped("int", "1.5"); !errors.As(err, &vfe) {
		t.Errorf("int: have %v", err)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		x       float64
		bitSize int
		want    string
	}{
		{x: 1, bitSize: 64, want: "1."},
		{x: 0, bitSize: 64, want: "0."},
		{x: 100, bitSize: 64, want: "100."},
		{x: 0.5, bitSize: 64, want: "0.5"},
		{x: 3.14159, bitSize: 64, want: "3.14159"},
		{x: -4.2e11, bitSize: 64, want: "-420000000000."},
		{x: 1e16, bitSize: 64, want: "1.e+16"},
		{x: 1e20, bitSize: 64, want: "1.e+20"},
		{x: 1.5e-7, bitSize: 64, want: "1.5e-07"},
		{x: 1e-5, bitSize: 64, want: "1.e-05"},
		{x: 0.0001, bitSize: 64, want: "0.0001"},
		{x: float64(float32(3.14)), bitSize: 32, want: "3.14"},
		{x: float64(float32(1e37)), bitSize: 32, want: "1.e+37"},
		{x: float64(float32(9.96921e36)), bitSize: 32, want: "9.96921e+36"},
		{x: float64(float32(2e16)), bitSize: 32, want: "2.e+16"},
		{x: math.NaN(), bitSize: 64, want: "NaN"},
		{x: math.Inf(-1), bitSize: 32, want: "-Infinity"},
	}
	for _, test := range tests {
		if have := formatFloat(test.x, test.bitSize); have != test.want {
			t.Errorf("formatFloat(%g, %d): have %s, want %s", test.x, test.bitSize, have, test.want)
		}
	}
}

func TestFormatCDL(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{v: Text("test"), want: `"test"`},
		{v: Shorts{3}, want: "3s"},
		{v: Shorts{0, 1}, want: "0s, 1s"},
		{v: Ints{1, 2, 3}, want: "1, 2, 3"},
		{v: Floats{3.14}, want: "3.14f"},
		{v: Floats{-2, 40}, want: "-2.f, 40.f"},
		{v: Floats{1e37}, want: "1.e+37f"},
		{v: Doubles{0.5, 1e20}, want: "0.5, 1.e+20"},
	}
	for _, test := range tests {
		have, err := FormatCDL(test.v)
		if err != nil {
			t.Fatal(err)
		}
		if have != test.want {
			t.Errorf("have %s, want %s", have, test.want)
		}
	}
	var tfe *TypeFormatError
	if _, err := FormatCDL(nil); !errors.As(err, &tfe) {
		t.Errorf("nil: have %v", err)
	}
}

func TestFormatNcML(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{v: Text("a < b"), want: "a < b"},
		{v: Shorts{0, 1}, want: "0 1"},
		{v: Ints{1, 2, 3}, want: "1 2 3"},
		{v: Floats{-2, 40}, want: "-2. 40."},
		{v: Doubles{0.5, 1e20}, want: "0.5 1.e+20"},
	}
	for _, test := range tests {
		have, err := FormatNcML(test.v)
		if err != nil {
			t.Fatal(err)
		}
		if have != test.want {
			t.Errorf("have %s, want %s", have, test.want)
		}
	}
}

// Parsing the output of FormatCDL must give back the same value.
func TestValueRoundTrip(t *testing.T) {
	for _, v := range []Value{
		Text("Bjørn"), Shorts{-5, 5}, Ints{1 << 30}, Floats{0.1, 1e-10, 3.4e38},
		Doubles{0.1, 1e-300, 123456789.125},
	} {
		s, err := FormatCDL(v)
		if err != nil {
			t.Fatal(err)
		}
		have, err := ParseValue(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !reflect.DeepEqual(have, v) {
			t.Errorf("%s: have %#v, want %#v", s, have, v)
		}
	}
}
