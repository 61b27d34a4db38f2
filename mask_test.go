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

import "testing"

func TestNotIsTotalInversion(t *testing.T) {
	// Masks derived from comparisons against missing data still invert
	// cell by cell; negation has no special nodata state.
	for _, m := range []*Mask{
		testGrid().GreaterThan(5),
		testGrid().LessEqual(5),
		testGrid().NotNoData(),
	} {
		n := m.Not()
		for i, v := range m.Values {
			if n.Values[i] != !v {
				t.Errorf("mask %q: not() cell %d = %v; want %v", m.Name, i, n.Values[i], !v)
			}
		}
		if !n.Not().Equal(m) {
			t.Errorf("mask %q: double negation is not the identity", m.Name)
		}
	}
}

func TestAndOr(t *testing.T) {
	g := testGrid()
	a := g.GreaterThan(5) // F F T T
	b := g.LessEqual(10)  // F T F T

	and, err := a.And(b)
	if err != nil {
		t.Fatal(err)
	}
	or, err := a.Or(b)
	if err != nil {
		t.Fatal(err)
	}
	wantAnd := []bool{false, false, false, true}
	wantOr := []bool{false, true, true, true}
	for i := range wantAnd {
		if and.Values[i] != wantAnd[i] {
			t.Errorf("and cell %d = %v; want %v", i, and.Values[i], wantAnd[i])
		}
		if or.Values[i] != wantOr[i] {
			t.Errorf("or cell %d = %v; want %v", i, or.Values[i], wantOr[i])
		}
	}

	foreign := New("other", []float64{1, 2}, []float64{2, 1}).GreaterThan(0)
	if _, err := a.And(foreign); err == nil {
		t.Error("expected alignment error")
	}
}

func TestCount(t *testing.T) {
	g := testGrid()
	if n := g.GreaterThan(5).Count(); n != 2 {
		t.Errorf("count(> 5) = %d; want 2", n)
	}
	if n := g.NotNoData().Count(); n != 3 {
		t.Errorf("count(not nodata) = %d; want 3", n)
	}
}
