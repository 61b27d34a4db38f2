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
	"math"

	"gonum.org/v1/gonum/floats"
)

// ordinary returns the values of all non-missing cells.
func (g *Grid) ordinary() []float64 {
	out := make([]float64, 0, len(g.Data.Elements))
	for _, v := range g.Data.Elements {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Min returns the smallest ordinary value, or NaN if every cell is missing.
func (g *Grid) Min() float64 {
	v := g.ordinary()
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Min(v)
}

// Max returns the largest ordinary value, or NaN if every cell is missing.
func (g *Grid) Max() float64 {
	v := g.ordinary()
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Max(v)
}

// Sum returns the sum over ordinary values; zero if every cell is missing.
func (g *Grid) Sum() float64 {
	return floats.Sum(g.ordinary())
}

// Mean returns the mean over ordinary values, or NaN if every cell
// is missing.
func (g *Grid) Mean() float64 {
	v := g.ordinary()
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Sum(v) / float64(len(v))
}

// CountNoData returns the number of missing cells.
func (g *Grid) CountNoData() int {
	return len(g.Data.Elements) - len(g.ordinary())
}
