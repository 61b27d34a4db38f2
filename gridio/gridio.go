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

// Package gridio reads and writes grids, selecting the file format from
// the file name extension: .idf for iMOD IDF, .nc or .cdf for NetCDF,
// and .asc (optionally .asc.gz) for ESRI ASCII.
package gridio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/rasterlab"
	"github.com/spatialmodel/rasterlab/ascgrid"
	"github.com/spatialmodel/rasterlab/idf"
	"github.com/spatialmodel/rasterlab/ncf"
)

// ReadFile reads the grid stored at path in the format indicated by its
// extension.
func ReadFile(path string) (*rasterlab.Grid, error) {
	switch ext(path) {
	case ".idf":
		return idf.ReadFile(path)
	case ".nc", ".cdf":
		return ncf.ReadFile(path, "")
	case ".asc":
		return ascgrid.ReadFile(path)
	default:
		return nil, fmt.Errorf("gridio: reading %s: unknown grid file extension %q", path, ext(path))
	}
}

// WriteFile writes g to path in the format indicated by its extension.
func WriteFile(path string, g *rasterlab.Grid) error {
	switch ext(path) {
	case ".idf":
		return idf.WriteFile(path, g)
	case ".nc", ".cdf":
		return ncf.WriteFile(path, g)
	case ".asc":
		return ascgrid.WriteFile(path, g)
	default:
		return fmt.Errorf("gridio: writing %s: unknown grid file extension %q", path, ext(path))
	}
}

// ext returns the lower-case extension of path, looking through a
// trailing .gz.
func ext(path string) string {
	e := strings.ToLower(filepath.Ext(path))
	if e == ".gz" {
		e = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	return e
}
