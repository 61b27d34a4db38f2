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
	"reflect"
	"testing"
)

// testGrid returns the 2 x 2 grid
//
//	NaN  3
//	 12  7
//
// used throughout the masking tests.
func testGrid() *Grid {
	g, err := NewFromData("head", []float64{100, 200}, []float64{200, 100},
		[]float64{math.NaN(), 3, 12, 7})
	if err != nil {
		panic(err)
	}
	return g
}

// sameValue treats two NaNs as equal.
func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// sameGrids compares coordinates and values, treating NaN as equal to NaN.
func sameGrids(a, b *Grid) bool {
	if !reflect.DeepEqual(a.X, b.X) || !reflect.DeepEqual(a.Y, b.Y) {
		return false
	}
	for i, v := range a.Data.Elements {
		if !sameValue(v, b.Data.Elements[i]) {
			return false
		}
	}
	return true
}

func TestNewFromData(t *testing.T) {
	g := testGrid()
	if g.Nx() != 2 || g.Ny() != 2 {
		t.Fatalf("want 2 x 2 grid, got %d x %d", g.Nx(), g.Ny())
	}
	if v := g.Get(1, 0); v != 12 {
		t.Errorf("cell (1,0) = %g; want 12", v)
	}
	if !g.IsNoData(0, 0) {
		t.Error("cell (0,0) should be missing")
	}

	if _, err := NewFromData("bad", []float64{1}, []float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched data length")
	}
}

func TestSet(t *testing.T) {
	g := testGrid()
	g.Set(0, 1, 1) // sparse.DenseArray.Set would silently skip zero.
	if v := g.Get(1, 1); v != 0 {
		t.Errorf("cell (1,1) = %g; want 0", v)
	}
}

func TestSpacingAndBounds(t *testing.T) {
	g := testGrid()
	if dx := g.Dx(); dx != 100 {
		t.Errorf("Dx = %g; want 100", dx)
	}
	if dy := g.Dy(); dy != 100 {
		t.Errorf("Dy = %g; want 100", dy)
	}
	b := g.Bounds()
	if b.Min.X != 50 || b.Max.X != 250 || b.Min.Y != 50 || b.Max.Y != 250 {
		t.Errorf("bounds = (%g, %g) - (%g, %g); want (50, 50) - (250, 250)",
			b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
}

func TestCopyIndependence(t *testing.T) {
	g := testGrid()
	g.Attrs = map[string]string{"units": "m"}
	c := g.Copy()
	c.Set(99, 1, 0)
	c.Attrs["units"] = "ft"
	c.X[0] = -1
	if g.Get(1, 0) != 12 || g.Attrs["units"] != "m" || g.X[0] != 100 {
		t.Error("modifying a copy changed the original")
	}
	if !sameGrids(g, g.Copy()) {
		t.Error("copy does not equal original")
	}
}

func TestAlignmentError(t *testing.T) {
	g := testGrid()
	o := New("other", []float64{101, 201}, []float64{200, 100})
	if _, err := g.Sub(o); err == nil {
		t.Error("expected alignment error for mismatched x coordinates")
	}
	if _, err := g.Sub(New("other", []float64{100, 200}, []float64{200, 100})); err != nil {
		t.Errorf("aligned subtraction failed: %v", err)
	}
}
