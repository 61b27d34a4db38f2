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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// gridXYZ adapts a Grid to plotter.GridXYZ, which requires ascending
// coordinates along both axes. Rows are stored north-up (Y descending),
// so the row index is reversed here.
type gridXYZ struct{ g *Grid }

func (p gridXYZ) Dims() (c, r int)   { return p.g.Nx(), p.g.Ny() }
func (p gridXYZ) Z(c, r int) float64 { return p.g.Get(p.g.Ny()-1-r, c) }
func (p gridXYZ) X(c int) float64    { return p.g.X[c] }
func (p gridXYZ) Y(r int) float64    { return p.g.Y[p.g.Ny()-1-r] }

// Plot renders the grid as a heat map. Missing cells are left undrawn.
func Plot(g *Grid) (*plot.Plot, error) {
	if g.Nx() == 0 || g.Ny() == 0 {
		return nil, fmt.Errorf("rasterlab: plotting grid %s: grid is empty", g.Name)
	}
	p := plot.New()
	p.Title.Text = g.Name
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	h := plotter.NewHeatMap(gridXYZ{g}, moreland.SmoothBlueRed().Palette(255))
	// NewHeatMap derives its range from the raw data, which is poisoned
	// by NaN cells; reset it from the NaN-aware statistics.
	if min := g.Min(); !math.IsNaN(min) {
		h.Min = min
		h.Max = g.Max()
		if h.Min == h.Max {
			h.Max = h.Min + 1
		}
	}
	p.Add(h)
	return p, nil
}

// SavePNG renders the grid as a heat map and writes it to path as a PNG
// image with the given dimensions. Zero width or height selects a default
// of 15 x 12 centimeters.
func SavePNG(g *Grid, path string, width, height vg.Length) error {
	if width <= 0 {
		width = 15 * vg.Centimeter
	}
	if height <= 0 {
		height = 12 * vg.Centimeter
	}
	p, err := Plot(g)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("rasterlab: saving plot of grid %s: %v", g.Name, err)
	}
	return nil
}
