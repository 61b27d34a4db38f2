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

// Package ascgrid reads and writes ESRI ASCII grids, the text raster
// format commonly used for digital elevation models. Files ending in
// .gz are decompressed transparently on read. The NODATA_value sentinel
// is translated to NaN on read and back on write.
package ascgrid

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spatialmodel/rasterlab"
)

// DefaultNoData is the nodata sentinel written to new files.
const DefaultNoData = -9999.0

// Read reads an ESRI ASCII grid from r, giving it the provided name.
func Read(r io.Reader, name string) (*rasterlab.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("ascgrid: %v", err)
			}
			return "", fmt.Errorf("ascgrid: unexpected end of file")
		}
		return sc.Text(), nil
	}

	hdr := map[string]float64{}
	var firstValue string
	for {
		tok, err := next()
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(tok)
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
			vs, err := next()
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(vs, 64)
			if err != nil {
				return nil, fmt.Errorf("ascgrid: header field %s: %v", tok, err)
			}
			hdr[key] = v
			continue
		}
		// First cell value reached.
		firstValue = tok
		break
	}

	for _, k := range []string{"ncols", "nrows", "cellsize"} {
		if _, ok := hdr[k]; !ok {
			return nil, fmt.Errorf("ascgrid: missing header field %s", k)
		}
	}
	nx, ny := int(hdr["ncols"]), int(hdr["nrows"])
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("ascgrid: invalid grid dimensions %d x %d", nx, ny)
	}
	cell := hdr["cellsize"]

	// The lower-left reference is either a corner or a cell center.
	x0, ok := hdr["xllcorner"]
	if ok {
		x0 += cell / 2
	} else if x0, ok = hdr["xllcenter"]; !ok {
		return nil, fmt.Errorf("ascgrid: missing header field xllcorner")
	}
	y0, ok := hdr["yllcorner"]
	if ok {
		y0 += cell / 2
	} else if y0, ok = hdr["yllcenter"]; !ok {
		return nil, fmt.Errorf("ascgrid: missing header field yllcorner")
	}

	nodata, hasNoData := hdr["nodata_value"]

	x := make([]float64, nx)
	for i := range x {
		x[i] = x0 + cell*float64(i)
	}
	y := make([]float64, ny)
	for j := range y {
		y[j] = y0 + cell*float64(ny-1-j)
	}

	g := rasterlab.New(name, x, y)
	tok := firstValue
	for i := 0; i < nx*ny; i++ {
		if i > 0 {
			var err error
			if tok, err = next(); err != nil {
				return nil, fmt.Errorf("ascgrid: cell %d of %d: %v", i, nx*ny, err)
			}
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("ascgrid: cell %d: %v", i, err)
		}
		if hasNoData && v == nodata {
			v = math.NaN()
		}
		g.Data.Elements[i] = v
	}
	return g, nil
}

// ReadFile reads the grid stored at path, naming it after the file.
// Files ending in .gz are decompressed while reading.
func ReadFile(path string) (*rasterlab.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ascgrid: %v", err)
	}
	defer f.Close()
	var r io.Reader = f
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("ascgrid: %v", err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}
	return Read(r, strings.TrimSuffix(name, filepath.Ext(name)))
}

// Write writes g to w as an ESRI ASCII grid. Missing cells are stored
// as DefaultNoData. The grid must have square, equidistant cells, which
// is all the format's single cellsize field can express.
func Write(w io.Writer, g *rasterlab.Grid) error {
	nx, ny := g.Nx(), g.Ny()
	if nx < 1 || ny < 1 {
		return fmt.Errorf("ascgrid: writing grid %s: grid is empty", g.Name)
	}
	cell, err := cellSize(g)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", nx)
	fmt.Fprintf(bw, "nrows %d\n", ny)
	fmt.Fprintf(bw, "xllcorner %g\n", g.X[0]-cell/2)
	fmt.Fprintf(bw, "yllcorner %g\n", g.Y[ny-1]-cell/2)
	fmt.Fprintf(bw, "cellsize %g\n", cell)
	fmt.Fprintf(bw, "NODATA_value %g\n", float64(DefaultNoData))
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if i > 0 {
				bw.WriteByte(' ')
			}
			v := g.Get(j, i)
			if math.IsNaN(v) {
				v = DefaultNoData
			}
			fmt.Fprintf(bw, "%g", v)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ascgrid: writing grid %s: %v", g.Name, err)
	}
	return nil
}

// cellSize returns the grid spacing, verifying that the cells are
// square and both coordinate vectors are equidistant; the format's
// single cellsize field cannot express anything else.
func cellSize(g *rasterlab.Grid) (float64, error) {
	cell := g.Dx()
	if cell == 0 {
		cell = g.Dy()
	}
	if cell == 0 {
		cell = 1
	}
	if g.Ny() > 1 && g.Nx() > 1 && math.Abs(g.Dy()-cell) > 1e-9*math.Abs(cell) {
		return 0, fmt.Errorf("ascgrid: writing grid %s: cells are not square", g.Name)
	}
	for i := 1; i < len(g.X); i++ {
		if d := g.X[i] - g.X[i-1]; math.Abs(d-cell) > 1e-9*math.Abs(cell) {
			return 0, fmt.Errorf("ascgrid: writing grid %s: x coordinates are not equidistant", g.Name)
		}
	}
	for j := 1; j < len(g.Y); j++ {
		if d := g.Y[j-1] - g.Y[j]; math.Abs(d-cell) > 1e-9*math.Abs(cell) {
			return 0, fmt.Errorf("ascgrid: writing grid %s: y coordinates are not equidistant", g.Name)
		}
	}
	return cell, nil
}

// WriteFile writes g to path as an ESRI ASCII grid, gzip-compressing
// the output if path ends in .gz.
func WriteFile(path string, g *rasterlab.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ascgrid: %v", err)
	}
	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}
	if err := Write(w, g); err != nil {
		f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return fmt.Errorf("ascgrid: %v", err)
		}
	}
	return f.Close()
}
