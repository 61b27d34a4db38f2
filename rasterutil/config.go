/*
Copyright © 2024 the RasterLab authors.
This file is part of RasterLab.

RasterLab is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RasterLab is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RasterLab.  If not, see <http://www.gnu.org/licenses/>.
*/

package rasterutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("rasterutil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// checkOutputFile makes sure that the output file's directory exists and
// expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("rasterutil: no output file specified")
	}
	f = os.ExpandEnv(f)
	d := filepath.Dir(f)
	if _, err := os.Stat(d); err != nil {
		return f, fmt.Errorf("rasterutil: output directory %s does not exist", d)
	}
	return f, nil
}

// isNetCDF reports whether path names a NetCDF file.
func isNetCDF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nc", ".cdf":
		return true
	}
	return false
}

// sortedAttrKeys returns the attribute names in deterministic order.
func sortedAttrKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
