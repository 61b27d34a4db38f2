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

// Package idf reads and writes single-layer iMOD IDF files, the binary
// grid format used for groundwater model rasters. Only equidistant
// single-precision grids are supported. The format's nodata sentinel is
// translated to NaN on read and back on write.
package idf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/rasterlab"
)

// DefaultNoData is the nodata sentinel written to new IDF files.
const DefaultNoData = -9999.0

// lahey identifies a single-precision IDF record.
const lahey = 1271

// maxCells bounds allocations driven by untrusted file headers.
const maxCells = 1 << 28

// header is the fixed leading portion of an IDF file.
type header struct {
	Lahey       int32
	Ncol, Nrow  int32
	Xmin, Xmax  float32
	Ymin, Ymax  float32
	Dmin, Dmax  float32
	NoData      float32
	Ieq, Itb    byte
	Ivf, Unused byte
}

// Read reads a single-layer IDF grid from r, giving it the provided name.
func Read(r io.Reader, name string) (*rasterlab.Grid, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("idf: reading header: %v", err)
	}
	if h.Lahey != lahey {
		return nil, fmt.Errorf("idf: record identifier %d is not %d; not a single-precision IDF file", h.Lahey, lahey)
	}
	if h.Ieq != 0 {
		return nil, fmt.Errorf("idf: non-equidistant grids are not supported")
	}
	if h.Ivf != 0 {
		return nil, fmt.Errorf("idf: vector-field IDF files are not supported")
	}
	if h.Ncol < 1 || h.Nrow < 1 {
		return nil, fmt.Errorf("idf: invalid grid dimensions %d x %d", h.Ncol, h.Nrow)
	}
	if int64(h.Ncol)*int64(h.Nrow) > maxCells {
		return nil, fmt.Errorf("idf: grid dimensions %d x %d exceed %d cells", h.Ncol, h.Nrow, maxCells)
	}
	var dx, dy float32
	if err := binary.Read(r, binary.LittleEndian, &dx); err != nil {
		return nil, fmt.Errorf("idf: reading cell size: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &dy); err != nil {
		return nil, fmt.Errorf("idf: reading cell size: %v", err)
	}
	if h.Itb == 1 {
		// Skip the layer top and bottom elevations.
		var topBot [2]float32
		if err := binary.Read(r, binary.LittleEndian, &topBot); err != nil {
			return nil, fmt.Errorf("idf: reading layer top and bottom: %v", err)
		}
	}

	nx, ny := int(h.Ncol), int(h.Nrow)
	vals := make([]float32, nx*ny)
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, fmt.Errorf("idf: reading %d cell values: %v", nx*ny, err)
	}

	x := make([]float64, nx)
	for i := range x {
		x[i] = float64(h.Xmin) + float64(dx)*(float64(i)+0.5)
	}
	y := make([]float64, ny)
	for j := range y {
		y[j] = float64(h.Ymax) - float64(dy)*(float64(j)+0.5)
	}

	g := rasterlab.New(name, x, y)
	for i, v := range vals {
		if v == h.NoData {
			g.Data.Elements[i] = math.NaN()
		} else {
			g.Data.Elements[i] = float64(v)
		}
	}
	return g, nil
}

// ReadFile reads the IDF grid stored at path, naming it after the file.
func ReadFile(path string) (*rasterlab.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("idf: %v", err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(f, name)
}

// Write writes g to w as a single-layer equidistant IDF file. Missing
// cells are stored as DefaultNoData, and cell values are truncated to
// single precision.
func Write(w io.Writer, g *rasterlab.Grid) error {
	nx, ny := g.Nx(), g.Ny()
	if nx < 1 || ny < 1 {
		return fmt.Errorf("idf: writing grid %s: grid is empty", g.Name)
	}
	dx, dy, err := cellSizes(g)
	if err != nil {
		return err
	}

	dmin, dmax := float32(DefaultNoData), float32(DefaultNoData)
	if min := g.Min(); !math.IsNaN(min) {
		dmin, dmax = float32(min), float32(g.Max())
	}
	h := header{
		Lahey:  lahey,
		Ncol:   int32(nx),
		Nrow:   int32(ny),
		Xmin:   float32(g.X[0] - dx/2),
		Xmax:   float32(g.X[nx-1] + dx/2),
		Ymin:   float32(g.Y[ny-1] - dy/2),
		Ymax:   float32(g.Y[0] + dy/2),
		Dmin:   dmin,
		Dmax:   dmax,
		NoData: DefaultNoData,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("idf: writing header: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, [2]float32{float32(dx), float32(dy)}); err != nil {
		return fmt.Errorf("idf: writing cell size: %v", err)
	}
	vals := make([]float32, nx*ny)
	for i, v := range g.Data.Elements {
		if math.IsNaN(v) {
			vals[i] = DefaultNoData
		} else {
			vals[i] = float32(v)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, vals); err != nil {
		return fmt.Errorf("idf: writing cell values: %v", err)
	}
	return nil
}

// WriteFile writes g to path as an IDF file.
func WriteFile(path string, g *rasterlab.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("idf: %v", err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cellSizes returns the grid spacing, verifying that the coordinate
// vectors are equidistant; the IDF header cannot express anything else.
func cellSizes(g *rasterlab.Grid) (dx, dy float64, err error) {
	dx, dy = g.Dx(), g.Dy()
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	for i := 1; i < len(g.X); i++ {
		if d := g.X[i] - g.X[i-1]; math.Abs(d-dx) > 1e-6*math.Abs(dx) {
			return 0, 0, fmt.Errorf("idf: writing grid %s: x coordinates are not equidistant", g.Name)
		}
	}
	for j := 1; j < len(g.Y); j++ {
		if d := g.Y[j-1] - g.Y[j]; math.Abs(d-dy) > 1e-6*math.Abs(dy) {
			return 0, 0, fmt.Errorf("idf: writing grid %s: y coordinates are not equidistant", g.Name)
		}
	}
	return dx, dy, nil
}
