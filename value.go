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
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Value is the value of an attribute. It is one of Text, Shorts, Ints,
// Floats or Doubles. Numeric values are always vectors, even when they
// hold a single element.
type Value interface {
	// Type returns the CDL name of the value's type.
	Type() string

	// Len returns the number of elements, or the byte length for Text.
	Len() int

	isValue()
}

// Text is a character string value.
type Text string

// Shorts is a vector of 16-bit integers.
type Shorts []int16

// Ints is a vector of 32-bit integers.
type Ints []int32

// Floats is a vector of 32-bit floating point numbers.
type Floats []float32

// Doubles is a vector of 64-bit floating point numbers.
type Doubles []float64

func (Text) Type() string    { return "String" }
func (Shorts) Type() string  { return "short" }
func (Ints) Type() string    { return "int" }
func (Floats) Type() string  { return "float" }
func (Doubles) Type() string { return "double" }

func (v Text) Len() int    { return len(v) }
func (v Shorts) Len() int  { return len(v) }
func (v Ints) Len() int    { return len(v) }
func (v Floats) Len() int  { return len(v) }
func (v Doubles) Len() int { return len(v) }

func (Text) isValue()    {}
func (Shorts) isValue()  {}
func (Ints) isValue()    {}
func (Floats) isValue()  {}
func (Doubles) isValue() {}

// ParseValue infers a typed value from the text following the `=` of a
// CDL attribute declaration. The first token decides the type for the
// whole list:
//
//	"text"   -> Text (everything between the first and last quote)
//	3s       -> Shorts
//	3.14f    -> Floats
//	3.14     -> Doubles
//	3        -> Ints
//
// Values may be separated by commas and white space.
func ParseValue(literal string) (Value, error) {
	literal = strings.TrimSpace(literal)
	if strings.HasPrefix(literal, `"`) {
		last := strings.LastIndex(literal, `"`)
		if last == 0 {
			return nil, &ValueFormatError{Token: literal}
		}
		return Text(literal[1:last]), nil
	}
	tokens := strings.FieldsFunc(literal, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return nil, &ValueFormatError{Token: literal}
	}
	first := tokens[0]
	switch {
	case strings.HasSuffix(first, "s"):
		o := make(Shorts, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseInt(strings.TrimRight(t, "s"), 10, 16)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = int16(x)
		}
		return o, nil
	case strings.HasSuffix(first, "f"):
		o := make(Floats, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseFloat(strings.TrimRight(t, "f"), 32)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = float32(x)
		}
		return o, nil
	case strings.Contains(first, "."):
		o := make(Doubles, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = x
		}
		return o, nil
	default:
		o := make(Ints, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseInt(t, 10, 32)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = int32(x)
		}
		return o, nil
	}
}

// ParseTyped parses text as a value of the named type, as found in an
// NcML attribute element. Numeric values are separated by white space.
func ParseTyped(typ, text string) (Value, error) {
	if typ == "String" {
		return Text(text), nil
	}
	tokens := strings.Fields(text)
	switch typ {
	case "short":
		o := make(Shorts, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseInt(t, 10, 16)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = int16(x)
		}
		return o, nil
	case "int":
		o := make(Ints, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseInt(t, 10, 32)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = int32(x)
		}
		return o, nil
	case "float":
		o := make(Floats, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseFloat(t, 32)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = float32(x)
		}
		return o, nil
	case "double":
		o := make(Doubles, len(tokens))
		for i, t := range tokens {
			x, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, &ValueFormatError{Token: t}
			}
			o[i] = x
		}
		return o, nil
	}
	return nil, &UnknownTypeError{Type: typ}
}

// FormatCDL renders a value the way ncdump writes it in CDL: text is
// quoted, and numeric elements are joined by ", " with a per-type suffix.
func FormatCDL(v Value) (string, error) {
	return formatValue(v, ", ", true)
}

// FormatNcML renders a value the way ncdump writes it in NcML: text is
// returned unchanged and numeric elements are joined by single spaces.
func FormatNcML(v Value) (string, error) {
	return formatValue(v, " ", false)
}

func formatValue(v Value, sep string, cdl bool) (string, error) {
	var s []string
	switch vv := v.(type) {
	case Text:
		if cdl {
			return `"` + string(vv) + `"`, nil
		}
		return string(vv), nil
	case Shorts:
		s = make([]string, len(vv))
		for i, x := range vv {
			s[i] = strconv.FormatInt(int64(x), 10)
			if cdl {
				s[i] += "s"
			}
		}
	case Ints:
		s = make([]string, len(vv))
		for i, x := range vv {
			s[i] = strconv.FormatInt(int64(x), 10)
		}
	case Floats:
		s = make([]string, len(vv))
		for i, x := range vv {
			s[i] = formatFloat(float64(x), 32)
			if cdl {
				s[i] += "f"
			}
		}
	case Doubles:
		s = make([]string, len(vv))
		for i, x := range vv {
			s[i] = formatFloat(x, 64)
		}
	default:
		return "", &TypeFormatError{Type: fmt.Sprintf("%T", v)}
	}
	return strings.Join(s, sep), nil
}

// formatFloat writes the shortest representation of x that reads back
// to the same value at the given bit size. Decimal exponents in
// [-4, 16) use fixed notation. Trailing zeros after the decimal point are
// removed, but the point itself is kept, so 1 becomes "1." and 1e20
// becomes "1.e+20".
func formatFloat(x float64, bitSize int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	sci := strconv.FormatFloat(x, 'e', -1, bitSize)
	i := strings.IndexByte(sci, 'e')
	mant, exp := sci[:i], sci[i+1:]
	e, _ := strconv.Atoi(exp)
	if e < -4 || e >= 16 {
		if strings.Contains(mant, ".") {
			mant = strings.TrimRight(mant, "0")
		} else {
			mant += "."
		}
		return mant + "e" + exp
	}
	s := strconv.FormatFloat(x, 'f', -1, bitSize)
	if strings.Contains(s, ".") {
		return strings.TrimRight(s, "0")
	}
	return s + "."
}
