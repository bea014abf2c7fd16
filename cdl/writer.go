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
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/ncstructure"
)

// Write writes s to w in the layout used by `ncdump -h`. Nothing is
// written if any attribute value cannot be formatted.
func Write(w io.Writer, s *ncstructure.Structure) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "netcdf %s {\n", DatasetName(s.Location))

	dims := s.Dimensions()
	if len(dims) > 0 {
		b.WriteString("dimensions:\n")
	}
	for _, d := range dims {
		if d.Unlimited {
			fmt.Fprintf(&b, "\t%s = UNLIMITED ; // (%d currently)\n", d.Name(), d.Length)
		} else {
			fmt.Fprintf(&b, "\t%s = %d ;\n", d.Name(), d.Length)
		}
	}

	vars := s.Variables()
	if len(vars) > 0 {
		b.WriteString("variables:\n")
	}
	for _, v := range vars {
		fmt.Fprintf(&b, "\t%s %s", v.Type, v.Name())
		if shape := v.Shape(); len(shape) > 0 {
			fmt.Fprintf(&b, "(%s) ;\n", strings.Join(shape, ", "))
		} else {
			b.WriteString(" ;\n")
		}
		if err := writeAttributes(&b, v.Name(), v.Attributes()); err != nil {
			return err
		}
	}

	if atts := s.Attributes(); len(atts) > 0 {
		b.WriteString("\n// global attributes:\n")
		if err := writeAttributes(&b, "", atts); err != nil {
			return err
		}
	}
	b.WriteString("}\n")
	_, err := b.WriteTo(w)
	return err
}

func writeAttributes(b *bytes.Buffer, prefix string, atts []*ncstructure.Attribute) error {
	for _, a := range atts {
		val, err := ncstructure.FormatCDL(a.Value)
		if err != nil {
			return fmt.Errorf("cdl: attribute %s:%s: %w", prefix, a.Name(), err)
		}
		fmt.Fprintf(b, "\t\t%s:%s = %s ;\n", prefix, a.Name(), val)
	}
	return nil
}

// DatasetName returns the name ncdump prints in the header line for a
// file at location: its base name with the last extension removed.
func DatasetName(location string) string {
	if location == "" {
		return ""
	}
	base := filepath.Base(location)
	if i := strings.LastIndex(base, "."); i > 0 && strings.Trim(base[:i], ".") != "" {
		return base[:i]
	}
	return base
}
