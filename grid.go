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

package rasterlab

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// A Grid is a two-dimensional raster of floating-point values tagged with
// named coordinate vectors. Values are stored row-major in a dense array
// with shape [len(Y), len(X)]. X holds cell-center coordinates in ascending
// order and Y holds cell-center coordinates in descending order, following
// the north-up raster convention.
//
// Missing data is represented by NaN. All relational comparisons against
// a missing cell evaluate to false, and arithmetic involving a missing cell
// yields a missing cell.
type Grid struct {
	// Data holds the cell values with shape [len(Y), len(X)].
	Data *sparse.DenseArray

	// X and Y are the cell-center coordinates along each axis.
	X, Y []float64

	// Name identifies the variable held by this grid, for example
	// "elevation" or "head".
	Name string

	// Attrs holds free-form metadata such as units.
	Attrs map[string]string
}

// New creates a grid with the given name and coordinate vectors,
// with all cells initialized to zero.
func New(name string, x, y []float64) *Grid {
	return &Grid{
		Data: sparse.ZerosDense(len(y), len(x)),
		X:    append([]float64(nil), x...),
		Y:    append([]float64(nil), y...),
		Name: name,
	}
}

// NewFromData creates a grid from a row-major data slice with shape
// [len(y), len(x)]. The data slice is copied.
func NewFromData(name string, x, y, data []float64) (*Grid, error) {
	if len(data) != len(x)*len(y) {
		return nil, fmt.Errorf("rasterlab: grid %s: data length %d does not match %d x %d coordinates",
			name, len(data), len(x), len(y))
	}
	g := New(name, x, y)
	copy(g.Data.Elements, data)
	return g, nil
}

// Nx returns the number of columns.
func (g *Grid) Nx() int { return len(g.X) }

// Ny returns the number of rows.
func (g *Grid) Ny() int { return len(g.Y) }

// Get returns the value at row j, column i.
func (g *Grid) Get(j, i int) float64 { return g.Data.Get(j, i) }

// Set sets the value at row j, column i.
// (sparse.DenseArray.Set skips zero values, so the element is
// assigned directly.)
func (g *Grid) Set(v float64, j, i int) {
	g.Data.Elements[g.Data.Index1d(j, i)] = v
}

// IsNoData reports whether the cell at row j, column i is missing.
func (g *Grid) IsNoData(j, i int) bool { return math.IsNaN(g.Get(j, i)) }

// Dx returns the cell size in the x direction, or zero for grids
// less than two columns wide.
func (g *Grid) Dx() float64 {
	if len(g.X) < 2 {
		return 0
	}
	return g.X[1] - g.X[0]
}

// Dy returns the cell size in the y direction, or zero for grids
// less than two rows tall. The result is positive even though Y descends.
func (g *Grid) Dy() float64 {
	if len(g.Y) < 2 {
		return 0
	}
	return g.Y[0] - g.Y[1]
}

// Bounds returns the outer edges of the grid, extending the cell-center
// coordinates outward by half a cell in each direction.
func (g *Grid) Bounds() *geom.Bounds {
	if len(g.X) == 0 || len(g.Y) == 0 {
		return geom.NewBounds()
	}
	dx, dy := g.Dx(), g.Dy()
	return &geom.Bounds{
		Min: geom.Point{X: g.X[0] - dx/2, Y: g.Y[len(g.Y)-1] - dy/2},
		Max: geom.Point{X: g.X[len(g.X)-1] + dx/2, Y: g.Y[0] + dy/2},
	}
}

// Copy returns a deep copy of the grid.
func (g *Grid) Copy() *Grid {
	o := &Grid{
		Data: g.Data.Copy(),
		X:    append([]float64(nil), g.X...),
		Y:    append([]float64(nil), g.Y...),
		Name: g.Name,
	}
	if g.Attrs != nil {
		o.Attrs = make(map[string]string, len(g.Attrs))
		for k, v := range g.Attrs {
			o.Attrs[k] = v
		}
	}
	return o
}

// Rename returns the grid with its name changed to name.
func (g *Grid) Rename(name string) *Grid {
	g.Name = name
	return g
}

// coordsEqual reports whether two coordinate vectors hold identical labels.
func coordsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}

// alignedWith returns an error unless o shares g's coordinate labels.
func (g *Grid) alignedWith(xo, yo []float64, what string) error {
	if !coordsEqual(g.X, xo) || !coordsEqual(g.Y, yo) {
		return fmt.Errorf("rasterlab: %s: coordinates of grid %s are not aligned with operand",
			what, g.Name)
	}
	return nil
}
