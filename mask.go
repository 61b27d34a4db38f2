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

import "fmt"

// A Mask is a boolean grid aligned to a source grid's coordinates,
// produced by an elementwise predicate. Unlike the relational operators
// that create masks, logical negation of a mask is an exact, total
// inversion: there is no third state for missing data.
type Mask struct {
	// Values holds the cells row-major with shape [len(Y), len(X)].
	Values []bool

	// X and Y are the coordinate labels inherited from the source grid.
	X, Y []float64

	// Name identifies the predicate that produced the mask.
	Name string
}

// newMaskFrom creates an all-false mask carrying g's coordinate labels.
func newMaskFrom(g *Grid, name string) *Mask {
	return &Mask{
		Values: make([]bool, g.Nx()*g.Ny()),
		X:      append([]float64(nil), g.X...),
		Y:      append([]float64(nil), g.Y...),
		Name:   name,
	}
}

// Nx returns the number of columns.
func (m *Mask) Nx() int { return len(m.X) }

// Ny returns the number of rows.
func (m *Mask) Ny() int { return len(m.Y) }

// Get returns the value at row j, column i.
func (m *Mask) Get(j, i int) bool { return m.Values[j*m.Nx()+i] }

// Set sets the value at row j, column i.
func (m *Mask) Set(v bool, j, i int) { m.Values[j*m.Nx()+i] = v }

// Count returns the number of true cells.
func (m *Mask) Count() int {
	var n int
	for _, v := range m.Values {
		if v {
			n++
		}
	}
	return n
}

// Not returns the exact logical inversion of the mask: every true cell
// becomes false and every false cell becomes true, including cells whose
// value came from comparing missing data.
func (m *Mask) Not() *Mask {
	o := m.copyShape("not " + m.Name)
	for i, v := range m.Values {
		o.Values[i] = !v
	}
	return o
}

// And returns the elementwise conjunction of two aligned masks.
func (m *Mask) And(o *Mask) (*Mask, error) {
	if err := m.alignedWith(o, "and"); err != nil {
		return nil, err
	}
	out := m.copyShape(m.Name + " and " + o.Name)
	for i, v := range m.Values {
		out.Values[i] = v && o.Values[i]
	}
	return out, nil
}

// Or returns the elementwise disjunction of two aligned masks.
func (m *Mask) Or(o *Mask) (*Mask, error) {
	if err := m.alignedWith(o, "or"); err != nil {
		return nil, err
	}
	out := m.copyShape(m.Name + " or " + o.Name)
	for i, v := range m.Values {
		out.Values[i] = v || o.Values[i]
	}
	return out, nil
}

// Equal reports whether two masks have identical coordinates and cells.
func (m *Mask) Equal(o *Mask) bool {
	if !coordsEqual(m.X, o.X) || !coordsEqual(m.Y, o.Y) {
		return false
	}
	for i, v := range m.Values {
		if v != o.Values[i] {
			return false
		}
	}
	return true
}

func (m *Mask) copyShape(name string) *Mask {
	return &Mask{
		Values: make([]bool, len(m.Values)),
		X:      append([]float64(nil), m.X...),
		Y:      append([]float64(nil), m.Y...),
		Name:   name,
	}
}

func (m *Mask) alignedWith(o *Mask, what string) error {
	if !coordsEqual(m.X, o.X) || !coordsEqual(m.Y, o.Y) {
		return fmt.Errorf("rasterlab: %s: coordinates of mask %s are not aligned with mask %s",
			what, m.Name, o.Name)
	}
	return nil
}
