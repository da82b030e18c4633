// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cos

// This file contains the composite value types built on top of the
// elementary PdfObject kinds: rectangles and transformation matrices.

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Rectangle represents a PDF rectangle, e.g. a /MediaBox or an
// annotation's /Rect.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

// Dx returns the width of the rectangle.
func (r *Rectangle) Dx() float64 {
	return r.URx - r.LLx
}

// Dy returns the height of the rectangle.
func (r *Rectangle) Dy() float64 {
	return r.URy - r.LLy
}

// GetRectangle resolves obj and converts the resulting 4-element
// number array into a Rectangle, normalizing the corners so LLx<=URx
// and LLy<=URy regardless of the order the four numbers were given in.
// A null object returns nil, nil.
func GetRectangle(r Resolver, obj PdfObject) (*Rectangle, error) {
	values, err := GetFloatArray(r, obj)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, nil
	}
	if len(values) != 4 {
		return nil, &ParseFailureError{
			Err:   fmt.Errorf("rectangle needs 4 numbers, got %d", len(values)),
			Where: "GetRectangle",
		}
	}
	return &Rectangle{
		LLx: math.Min(values[0], values[2]),
		LLy: math.Min(values[1], values[3]),
		URx: math.Max(values[0], values[2]),
		URy: math.Max(values[1], values[3]),
	}, nil
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", r.LLx, r.LLy, r.URx, r.URy)
}

// IsZero is true if the rectangle is the zero rectangle.
func (r Rectangle) IsZero() bool {
	return r.LLx == 0 && r.LLy == 0 && r.URx == 0 && r.URy == 0
}

// Equal reports whether two rectangles have identical coordinates.
func (r *Rectangle) Equal(other *Rectangle) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.LLx == other.LLx && r.LLy == other.LLy &&
		r.URx == other.URx && r.URy == other.URy
}

// Extend enlarges the rectangle to also cover other.
func (r *Rectangle) Extend(other *Rectangle) {
	if other == nil || other.IsZero() {
		return
	}
	if r.IsZero() {
		*r = *other
		return
	}
	if other.LLx < r.LLx {
		r.LLx = other.LLx
	}
	if other.LLy < r.LLy {
		r.LLy = other.LLy
	}
	if other.URx > r.URx {
		r.URx = other.URx
	}
	if other.URy > r.URy {
		r.URy = other.URy
	}
}

// Array renders the rectangle as a 4-element PdfObject array, in
// LLx, LLy, URx, URy order.
func (r *Rectangle) Array() Array {
	return Array{
		Number(r.LLx), Number(r.LLy), Number(r.URx), Number(r.URy),
	}
}

// GetMatrix resolves obj and converts the resulting 6-element number
// array into a transformation matrix.
func GetMatrix(r Resolver, obj PdfObject) (matrix.Matrix, error) {
	var m matrix.Matrix
	values, err := GetFloatArray(r, obj)
	if err != nil {
		return m, err
	}
	if len(values) != 6 {
		return m, &ParseFailureError{
			Err:   fmt.Errorf("matrix needs 6 numbers, got %d", len(values)),
			Where: "GetMatrix",
		}
	}
	copy(m[:], values)
	return m, nil
}

// MatrixArray renders m as a 6-element PdfObject array.
func MatrixArray(m matrix.Matrix) Array {
	out := make(Array, 6)
	for i, v := range m {
		out[i] = Number(v)
	}
	return out
}
