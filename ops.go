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
)

// binop applies f elementwise to two aligned grids, returning a new grid
// with g's coordinates and name. NaN cells propagate through f per
// IEEE-754 arithmetic.
func (g *Grid) binop(o *Grid, what string, f func(a, b float64) float64) (*Grid, error) {
	if err := g.alignedWith(o.X, o.Y, what); err != nil {
		return nil, err
	}
	out := New(g.Name, g.X, g.Y)
	for i, a := range g.Data.Elements {
		out.Data.Elements[i] = f(a, o.Data.Elements[i])
	}
	return out, nil
}

// Sub returns the elementwise difference g - o. The grids must have
// aligned coordinates. Cells that are missing in either operand are
// missing in the result.
func (g *Grid) Sub(o *Grid) (*Grid, error) {
	return g.binop(o, "subtract", func(a, b float64) float64 { return a - b })
}

// Add returns the elementwise sum g + o.
func (g *Grid) Add(o *Grid) (*Grid, error) {
	return g.binop(o, "add", func(a, b float64) float64 { return a + b })
}

// Mul returns the elementwise product g * o.
func (g *Grid) Mul(o *Grid) (*Grid, error) {
	return g.binop(o, "multiply", func(a, b float64) float64 { return a * b })
}

// Div returns the elementwise quotient g / o.
func (g *Grid) Div(o *Grid) (*Grid, error) {
	return g.binop(o, "divide", func(a, b float64) float64 { return a / b })
}

// AddScalar returns a new grid with v added to every cell.
func (g *Grid) AddScalar(v float64) *Grid {
	out := g.Copy()
	for i := range out.Data.Elements {
		out.Data.Elements[i] += v
	}
	return out
}

// Scale returns a new grid with every cell multiplied by v.
func (g *Grid) Scale(v float64) *Grid {
	out := g.Copy()
	out.Data.Scale(v)
	return out
}

// compare builds a mask from an elementwise predicate. Missing cells
// always yield false: NaN is neither greater than, less than, nor equal
// to any ordinary number, so a mask and the mask of the opposite
// relational operator are not logical complements wherever data is
// missing.
func (g *Grid) compare(name string, pred func(v float64) bool) *Mask {
	m := newMaskFrom(g, name)
	for i, v := range g.Data.Elements {
		m.Values[i] = pred(v)
	}
	return m
}

// GreaterThan returns the mask g > t. Missing cells are false.
func (g *Grid) GreaterThan(t float64) *Mask {
	return g.compare(fmt.Sprintf("%s > %g", g.Name, t),
		func(v float64) bool { return v > t })
}

// GreaterEqual returns the mask g >= t. Missing cells are false.
func (g *Grid) GreaterEqual(t float64) *Mask {
	return g.compare(fmt.Sprintf("%s >= %g", g.Name, t),
		func(v float64) bool { return v >= t })
}

// LessThan returns the mask g < t. Missing cells are false.
func (g *Grid) LessThan(t float64) *Mask {
	return g.compare(fmt.Sprintf("%s < %g", g.Name, t),
		func(v float64) bool { return v < t })
}

// LessEqual returns the mask g <= t. Missing cells are false.
func (g *Grid) LessEqual(t float64) *Mask {
	return g.compare(fmt.Sprintf("%s <= %g", g.Name, t),
		func(v float64) bool { return v <= t })
}

// NotNoData returns the mask of cells holding ordinary numbers.
func (g *Grid) NotNoData() *Mask {
	return g.compare(g.Name+" not nodata",
		func(v float64) bool { return !math.IsNaN(v) })
}

// Where returns a grid keeping the source value where cond is true and
// holding missing values where cond is false.
func (g *Grid) Where(cond *Mask) (*Grid, error) {
	return g.WhereValue(cond, math.NaN())
}

// WhereValue returns a grid keeping the source value where cond is true
// and holding other where cond is false. Note that cells missing in the
// source compare false against ordinary thresholds, so a mask built from
// a comparison will replace them with other too; use ReplaceWhere to
// preserve them.
func (g *Grid) WhereValue(cond *Mask, other float64) (*Grid, error) {
	if err := g.alignedWith(cond.X, cond.Y, "where"); err != nil {
		return nil, err
	}
	out := New(g.Name, g.X, g.Y)
	if g.Attrs != nil {
		out.Attrs = make(map[string]string, len(g.Attrs))
		for k, v := range g.Attrs {
			out.Attrs[k] = v
		}
	}
	for i, v := range g.Data.Elements {
		if cond.Values[i] {
			out.Data.Elements[i] = v
		} else {
			out.Data.Elements[i] = other
		}
	}
	return out, nil
}

// ReplaceWhere returns a grid holding other where cond is false, except
// that cells that were already missing in the source stay missing. This
// is the chained-where idiom for thresholding a grid without resurrecting
// its nodata cells.
func (g *Grid) ReplaceWhere(cond *Mask, other float64) (*Grid, error) {
	filled, err := g.WhereValue(cond, other)
	if err != nil {
		return nil, err
	}
	return filled.Where(g.NotNoData())
}
