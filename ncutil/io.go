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
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/spatialmodel/ncstructure"
	"github.com/spatialmodel/ncstructure/cdl"
	"github.com/spatialmodel/ncstructure/cloud"
	"github.com/spatialmodel/ncstructure/ncfile"
	"github.com/spatialmodel/ncstructure/ncml"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load reads the structure stored at path, which may be a local file
// or a blob. format is one of FormatCDL, FormatNcML or FormatNC; if
// it is empty the format is guessed from the file extension. Text
// input is decoded as UTF-8, skipping any byte order mark.
func Load(ctx context.Context, path, format string) (*ncstructure.Structure, error) {
	format, err := formatOf(path, format)
	if err != nil {
		return nil, err
	}
	if format == FormatNC {
		local, cleanup, err := cloud.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		s, err := ncfile.Open(local)
		if err != nil {
			return nil, errors.Wrapf(err, "ncutil: reading %s", path)
		}
		s.Location = path
		return s, nil
	}

	data, err := cloud.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	var s *ncstructure.Structure
	if format == FormatCDL {
		s, err = cdl.Parse(r)
	} else {
		s, err = ncml.Parse(r)
	}
	return s, errors.Wrapf(err, "ncutil: parsing %s", path)
}

// Render writes s in the given text format to w, encoded as UTF-8.
func Render(w io.Writer, s *ncstructure.Structure, format string) error {
	var b bytes.Buffer
	var err error
	switch format {
	case FormatCDL:
		err = cdl.Write(&b, s)
	case FormatNcML:
		err = ncml.Write(&b, s)
	default:
		return errors.Errorf("ncutil: cannot render structure as %q", format)
	}
	if err != nil {
		return err
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewEncoder(), b.Bytes())
	if err != nil {
		return errors.Wrap(err, "ncutil: encoding output")
	}
	_, err = w.Write(out)
	return err
}

// Save writes s in the given text format to path, which may be a local
// file or a blob. If path is empty or "-", s is written to stdout.
func Save(ctx context.Context, stdout io.Writer, s *ncstructure.Structure, path, format string) error {
	if path == "" || path == "-" {
		return Render(stdout, s, format)
	}
	var b bytes.Buffer
	if err := Render(&b, s, format); err != nil {
		return err
	}
	return cloud.WriteFile(ctx, path, b.Bytes())
}

// Generate writes an empty classic netCDF file defined by s to path,
// which may be a local file or a blob.
func Generate(ctx context.Context, s *ncstructure.Structure, path string) error {
	if path == "" || path == "-" {
		return errors.New("ncutil: an output file is required to generate a netCDF file")
	}
	if !cloud.IsBlob(path) {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "ncutil")
		}
		if _, err := ncfile.Create(f, s); err != nil {
			f.Close()
			os.Remove(path)
			return err
		}
		return errors.Wrap(f.Close(), "ncutil")
	}

	f, err := ioutil.TempFile("", "ncstructure")
	if err != nil {
		return errors.Wrap(err, "ncutil")
	}
	defer os.Remove(f.Name())
	if _, err := ncfile.Create(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "ncutil")
	}
	data, err := ioutil.ReadFile(f.Name())
	if err != nil {
		return errors.Wrap(err, "ncutil")
	}
	return cloud.WriteFile(ctx, path, data)
}
