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

package ascgrid

import (
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spatialmodel/rasterlab"
)

const demFile = `ncols 2
nrows 2
xllcorner 0
yllcorner 50
cellsize 25
NODATA_value -9999
-9999 3
12 7
`

func TestRead(t *testing.T) {
	g, err := Read(strings.NewReader(demFile), "dem")
	if err != nil {
		t.Fatal(err)
	}
	if g.Nx() != 2 || g.Ny() != 2 {
		t.Fatalf("size = %d x %d; want 2 x 2", g.Nx(), g.Ny())
	}
	if !reflect.DeepEqual(g.X, []float64{12.5, 37.5}) {
		t.Errorf("x = %v; want [12.5 37.5]", g.X)
	}
	if !reflect.DeepEqual(g.Y, []float64{87.5, 62.5}) {
		t.Errorf("y = %v; want [87.5 62.5]", g.Y)
	}
	if !g.IsNoData(0, 0) {
		t.Error("nodata sentinel was not translated to NaN")
	}
	if g.Get(1, 0) != 12 || g.Get(0, 1) != 3 {
		t.Errorf("values = %v; rows are out of order", g.Data.Elements)
	}
}

func TestReadCellCenterReference(t *testing.T) {
	in := strings.Replace(demFile, "xllcorner 0", "xllcenter 12.5", 1)
	in = strings.Replace(in, "yllcorner 50", "yllcenter 62.5", 1)
	g, err := Read(strings.NewReader(in), "dem")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(g.X, []float64{12.5, 37.5}) {
		t.Errorf("x = %v; want [12.5 37.5]", g.X)
	}
}

func TestReadErrors(t *testing.T) {
	for _, c := range []struct {
		name, in string
	}{
		{"missing header", "ncols 2\n1 2\n"},
		{"truncated values", strings.Replace(demFile, "12 7\n", "12\n", 1)},
		{"bad number", strings.Replace(demFile, "12 7", "12 seven", 1)},
	} {
		if _, err := Read(strings.NewReader(c.in), "x"); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	g, err := Read(strings.NewReader(demFile), "dem")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dem.asc")
	if err := WriteFile(path, g); err != nil {
		t.Fatal(err)
	}
	r, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "dem" {
		t.Errorf("name = %q; want %q", r.Name, "dem")
	}
	if !reflect.DeepEqual(r.X, g.X) || !reflect.DeepEqual(r.Y, g.Y) {
		t.Errorf("coordinates changed in round trip: x=%v y=%v", r.X, r.Y)
	}
	for i, want := range g.Data.Elements {
		got := r.Data.Elements[i]
		if math.IsNaN(want) != math.IsNaN(got) || (!math.IsNaN(want) && got != want) {
			t.Errorf("cell %d = %g; want %g", i, got, want)
		}
	}
}

func TestGzipRoundTrip(t *testing.T) {
	g, err := Read(strings.NewReader(demFile), "dem")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dem.asc.gz")
	if err := WriteFile(path, g); err != nil {
		t.Fatal(err)
	}
	r, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "dem" {
		t.Errorf("name = %q; want %q", r.Name, "dem")
	}
	if r.Get(1, 1) != 7 {
		t.Errorf("cell (1,1) = %g; want 7", r.Get(1, 1))
	}
}

func TestWriteNonEquidistant(t *testing.T) {
	// Uneven x spacing cannot be represented by the single cellsize
	// field and must not be flattened silently.
	g, err := rasterlab.NewFromData("bad",
		[]float64{0, 25, 75}, []float64{75, 50, 25},
		make([]float64, 9))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "bad.asc")
	if err := WriteFile(path, g); err == nil {
		t.Error("expected error for non-equidistant x coordinates")
	}

	g, err = rasterlab.NewFromData("bad",
		[]float64{0, 25, 50}, []float64{100, 75, 0},
		make([]float64, 9))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, g); err == nil {
		t.Error("expected error for non-equidistant y coordinates")
	}
}

func TestWriteNonSquare(t *testing.T) {
	g, err := rasterlab.NewFromData("bad",
		[]float64{0, 10}, []float64{25, 0},
		make([]float64, 4))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "bad.asc")
	if err := WriteFile(path, g); err == nil {
		t.Error("expected error for non-square cells")
	}
}
