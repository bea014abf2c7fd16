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
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return map[string]string{}, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("ncutil: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("ncutil: invalid type for map variable %s: %#v", varName, i)
	}
}

// Formats of structure files.
const (
	FormatCDL  = "cdl"
	FormatNcML = "ncml"
	FormatNC   = "nc"
)

// formatOf returns format if it is set, and otherwise guesses the
// format from the extension of path.
func formatOf(path, format string) (string, error) {
	if format != "" {
		switch format = strings.ToLower(format); format {
		case FormatCDL, FormatNcML, FormatNC:
			return format, nil
		}
		return "", fmt.Errorf("ncutil: invalid format %q; must be one of cdl, ncml or nc", format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cdl":
		return FormatCDL, nil
	case ".ncml", ".xml":
		return FormatNcML, nil
	case ".nc", ".ncf", ".cdf":
		return FormatNC, nil
	}
	return "", fmt.Errorf("ncutil: cannot determine the format of %q; set it explicitly", path)
}
