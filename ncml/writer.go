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


package ncml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spatialmodel/ncstructure"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\n", "&#xA;",
	"\r", "&#xD;",
	"\t", "&#x9;",
)

// Write writes s to w in the layout used by `ncdump -x`: dimensions,
// then global attributes, then variables. The location is given a
// ".nc" suffix if it does not already have one. Nothing is written if
// any attribute value cannot be formatted.
func Write(w io.Writer, s *ncstructure.Structure) error {
	var b bytes.Buffer
	location := s.Location
	if !strings.HasSuffix(location, ".nc") {
		location += ".nc"
	}
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<netcdf xmlns=\"%s\" location=\"%s\">\n", Namespace, escaper.Replace(location))

	for _, d := range s.Dimensions() {
		fmt.Fprintf(&b, "  <dimension name=\"%s\" length=\"%d\"", escaper.Replace(d.Name()), d.Length)
		if d.Unlimited {
			b.WriteString(" isUnlimited=\"true\"")
		}
		b.WriteString(" />\n")
	}

	if err := writeAttributes(&b, "  ", s.Attributes()); err != nil {
		return err
	}

	for _, v := range s.Variables() {
		fmt.Fprintf(&b, "  <variable name=\"%s\"", escaper.Replace(v.Name()))
		if shape := v.Shape(); len(shape) > 0 {
			fmt.Fprintf(&b, " shape=\"%s\"", escaper.Replace(strings.Join(shape, " ")))
		}
		fmt.Fprintf(&b, " type=\"%s\"", v.Type)
		atts := v.Attributes()
		if len(atts) == 0 {
			b.WriteString(" />\n")
			continue
		}
		b.WriteString(">\n")
		if err := writeAttributes(&b, "    ", atts); err != nil {
			return fmt.Errorf("ncml: variable %s: %w", v.Name(), err)
		}
		b.WriteString("  </variable>\n")
	}
	b.WriteString("</netcdf>\n")
	_, err := b.WriteTo(w)
	return err
}

func writeAttributes(b *bytes.Buffer, indent string, atts []*ncstructure.Attribute) error {
	for _, a := range atts {
		val, err := ncstructure.FormatNcML(a.Value)
		if err != nil {
			return fmt.Errorf("ncml: attribute %s: %w", a.Name(), err)
		}
		fmt.Fprintf(b, "%s<attribute name=\"%s\"", indent, escaper.Replace(a.Name()))
		if typ := a.Type(); typ != "String" {
			fmt.Fprintf(b, " type=\"%s\"", typ)
		}
		fmt.Fprintf(b, " value=\"%s\" />\n", escaper.Replace(val))
	}
	return nil
}
