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


package cdl

import (
	"bytes"
	"errors"
	"io/ioutil"
	"testing"

	"github.com/spatialmodel/ncstructure"
)

func TestWriteEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := Write(&b, ncstructure.New("a.nc")); err != nil {
		t.Fatal(err)
	}
	if want := "netcdf a {\n}\n"; b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

func TestWriteDimensions(t *testing.T) {
	s := ncstructure.New("dir/b.cdl")
	s.CreateDimension("t", 5, true)
	s.CreateDimension("x", 2, false)
	var b bytes.Buffer
	if err := Write(&b, s); err != nil {
		t.Fatal(err)
	}
	want := "netcdf b {\ndimensions:\n\tt = UNLIMITED ; // (5 currently)\n\tx = 2 ;\n}\n"
	if b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

func TestWriteGlobalAttribute(t *testing.T) {
	s := ncstructure.New("a")
	s.CreateAttribute("purpose", ncstructure.Text("test"))
	var b bytes.Buffer
	if err := Write(&b, s); err != nil {
		t.Fatal(err)
	}
	want := "netcdf a {\n\n// global attributes:\n\t\t:purpose = \"test\" ;\n}\n"
	if b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

type badValue struct{ ncstructure.Text }

func TestWriteBadValue(t *testing.T) {
	s := ncstructure.New("a")
	s.CreateAttribute("bad", badValue{"x"})
	var b bytes.Buffer
	err := Write(&b, s)
	var tf *ncstructure.TypeFormatError
	if !errors.As(err, &tf) {
		t.Fatalf("have %v, want a TypeFormatError", err)
	}
	if b.Len() != 0 {
		t.Errorf("partial output %q", b.String())
	}
}

func TestRoundTrip(t *testing.T) {
	want, err := ioutil.ReadFile("testdata/test.cdl")
	if err != nil {
		t.Fatal(err)
	}
	s, err := Parse(bytes.NewReader(want))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := Write(&b, s); err != nil {
		t.Fatal(err)
	}
	if b.String() != string(want) {
		t.Errorf("round trip mismatch:\nhave:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestDatasetName(t *testing.T) {
	for in, want := range map[string]string{
		"":               "",
		"a":              "a",
		"a.nc":           "a",
		"/data/x.y.nc":   "x.y",
		".hidden":        ".hidden",
		"dir/archive.nc": "archive",
	} {
		if have := DatasetName(in); have != want {
			t.Errorf("%q: have %q, want %q", in, have, want)
		}
	}
}
