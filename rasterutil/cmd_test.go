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

package rasterutil

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/rasterlab"
	"github.com/spatialmodel/rasterlab/gridio"
)

func writeTestGrid(t *testing.T, path string, data []float64) {
	t.Helper()
	g, err := rasterlab.NewFromData("head",
		[]float64{12.5, 37.5}, []float64{87.5, 62.5}, data)
	if err != nil {
		t.Fatal(err)
	}
	if err := gridio.WriteFile(path, g); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestVersionCmd(t *testing.T) {
	out := run(t, "version")
	if !strings.Contains(out, rasterlab.Version) {
		t.Errorf("version output %q does not contain %q", out, rasterlab.Version)
	}
}

func TestInfoCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "head.nc")
	writeTestGrid(t, src, []float64{math.NaN(), 3, 12, 7})

	out := run(t, "info", src)
	for _, want := range []string{"head", "2 x 2", "1 of 4 cells"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output %q does not contain %q", out, want)
		}
	}
}

func TestConvertCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "head.asc")
	dst := filepath.Join(dir, "head.idf")
	writeTestGrid(t, src, []float64{math.NaN(), 3, 12, 7})

	run(t, "convert", src, dst)
	g, err := gridio.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if g.Get(1, 0) != 12 || !g.IsNoData(0, 0) {
		t.Error("converted grid does not match the source")
	}
}

func TestDiffCmd(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.nc")
	b := filepath.Join(dir, "b.nc")
	dst := filepath.Join(dir, "d.nc")
	writeTestGrid(t, a, []float64{math.NaN(), 3, 12, 7})
	writeTestGrid(t, b, []float64{1, 1, 1, 1})

	run(t, "diff", a, b, dst)
	d, err := gridio.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if d.Get(1, 0) != 11 || d.Get(1, 1) != 6 {
		t.Errorf("difference cells = %g, %g; want 11, 6", d.Get(1, 0), d.Get(1, 1))
	}
	if !d.IsNoData(0, 0) {
		t.Error("missing cell did not propagate through the difference")
	}
}

func TestClipCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "head.nc")
	dst := filepath.Join(dir, "clipped.nc")
	writeTestGrid(t, src, []float64{math.NaN(), 3, 12, 7})

	run(t, "clip", src, dst, "--min", "5", "--fill", "0")
	g, err := gridio.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	// 3 is below the bound and becomes 0; the missing cell stays missing.
	if g.Get(0, 1) != 0 || g.Get(1, 0) != 12 {
		t.Errorf("cells = %g, %g; want 0, 12", g.Get(0, 1), g.Get(1, 0))
	}
	if !g.IsNoData(0, 0) {
		t.Error("clip resurrected an originally-missing cell")
	}
}

func TestClipRequiresBound(t *testing.T) {
	// Earlier tests may have set bounds; NaN disables them again.
	Root.SetArgs([]string{"clip", "in.nc", "out.nc", "--min", "NaN", "--max", "NaN"})
	if err := Root.Execute(); err == nil {
		t.Error("expected error when clip is given no bounds")
	}
}
