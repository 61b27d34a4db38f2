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

// Package ncf reads and writes grids as classic NetCDF files using
// github.com/ctessum/cdf. A grid is stored as a float64 variable with
// dimensions (y, x) alongside float64 coordinate variables x(x) and
// y(y). Missing cells are stored as NaN, so the round trip is lossless.
package ncf

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ctessum/cdf"

	"github.com/spatialmodel/rasterlab"
)

// Write writes g to f in NetCDF format.
func Write(f *os.File, g *rasterlab.Grid) error {
	nx, ny := g.Nx(), g.Ny()
	if nx < 1 || ny < 1 {
		return fmt.Errorf("ncf: writing grid %s: grid is empty", g.Name)
	}
	h := cdf.NewHeader([]string{"y", "x"}, []int{ny, nx})
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddAttribute("x", "axis", "X")
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddAttribute("y", "axis", "Y")
	h.AddVariable(g.Name, []string{"y", "x"}, []float64{0})
	h.AddAttribute(g.Name, "_FillValue", []float64{math.NaN()})
	for _, k := range sortKeys(g.Attrs) {
		h.AddAttribute(g.Name, k, g.Attrs[k])
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("ncf: writing grid %s: %v", g.Name, err)
	}

	cf, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("ncf: writing grid %s: %v", g.Name, err)
	}
	for _, v := range []struct {
		name string
		data []float64
	}{
		{"x", g.X},
		{"y", g.Y},
		{g.Name, g.Data.Elements},
	} {
		if err := writeAll(cf, v.name, v.data); err != nil {
			return err
		}
	}
	return nil
}

// writeAll writes a complete variable. The end index points one element
// past the data: the file's writer reports io.EOF as soon as a write
// lands exactly on its end offset, even when nothing is missing.
func writeAll(cf *cdf.File, name string, data []float64) error {
	dims := cf.Header.Lengths(name)
	begin := make([]int, len(dims))
	end := make([]int, len(dims))
	for i, n := range dims {
		end[i] = n - 1
	}
	end[len(end)-1]++
	w := cf.Writer(name, begin, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("ncf: writing variable %s: %v", name, err)
	}
	return nil
}

// WriteFile writes g to path in NetCDF format.
func WriteFile(path string, g *rasterlab.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncf: %v", err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read reads the named grid variable from f. If name is empty, the file
// must contain exactly one non-coordinate variable, which is used.
func Read(f *os.File, name string) (*rasterlab.Grid, error) {
	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("ncf: %v", err)
	}
	if name == "" {
		if name, err = soleDataVariable(cf); err != nil {
			return nil, err
		}
	}
	dims := cf.Header.Lengths(name)
	if dims == nil {
		return nil, fmt.Errorf("ncf: file contains no variable named %s", name)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("ncf: variable %s has %d dimensions; need 2", name, len(dims))
	}
	ny, nx := dims[0], dims[1]

	x, err := readFloats(cf, "x", nx)
	if err != nil {
		return nil, err
	}
	y, err := readFloats(cf, "y", ny)
	if err != nil {
		return nil, err
	}
	data, err := readFloats(cf, name, nx*ny)
	if err != nil {
		return nil, err
	}

	g, err := rasterlab.NewFromData(name, x, y, data)
	if err != nil {
		return nil, fmt.Errorf("ncf: %v", err)
	}
	for _, a := range cf.Header.Attributes(name) {
		if a == "_FillValue" {
			continue
		}
		if s, ok := cf.Header.GetAttribute(name, a).(string); ok {
			if g.Attrs == nil {
				g.Attrs = make(map[string]string)
			}
			g.Attrs[a] = s
		}
	}
	return g, nil
}

// ReadFile reads the named grid variable from the NetCDF file at path.
func ReadFile(path, name string) (*rasterlab.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncf: %v", err)
	}
	defer f.Close()
	return Read(f, name)
}

// soleDataVariable returns the single variable that is not a coordinate
// variable, erroring if there is not exactly one.
func soleDataVariable(cf *cdf.File) (string, error) {
	var names []string
	for _, v := range cf.Header.Variables() {
		dims := cf.Header.Dimensions(v)
		if len(dims) == 1 && dims[0] == v {
			continue // coordinate variable
		}
		names = append(names, v)
	}
	if len(names) != 1 {
		return "", fmt.Errorf("ncf: found %d data variables %v; specify which one to read", len(names), names)
	}
	return names[0], nil
}

// readFloats reads an entire float32 or float64 variable as float64.
func readFloats(cf *cdf.File, name string, n int) ([]float64, error) {
	r := cf.Reader(name, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("ncf: reading variable %s: %v", name, err)
	}
	switch v := buf.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, f := range v {
			out[i] = float64(f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ncf: variable %s has unsupported type %T", name, buf)
	}
}

func sortKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
