// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

import (
	"errors"
	"testing"
)

// resolverFunc adapts a plain function to the Resolver interface, so tests
// can drive resolveChain without building the byte-level xref machinery.
type resolverFunc func(id uint32) *ParseInfo

func (f resolverFunc) Resolve(id uint32) *ParseInfo { return f(id) }

func TestResolveNonReferencePassesThrough(t *testing.T) {
	got, err := Resolve(nil, Number(5))
	if err != nil {
		t.Fatal(err)
	}
	if got != Number(5) {
		t.Errorf("got %#v, want Number(5)", got)
	}
}

func TestResolveNilObject(t *testing.T) {
	got, err := Resolve(nil, nil)
	if err != nil || got != nil {
		t.Errorf("Resolve(nil, nil) = (%#v, %v), want (nil, nil)", got, err)
	}
}

func TestResolveDanglingReference(t *testing.T) {
	_, err := Resolve(nil, Reference{ID: 1, Gen: 0})
	var mre *MissingReferenceError
	if !errors.As(err, &mre) {
		t.Fatalf("got %v, want *MissingReferenceError", err)
	}
	if mre.Ref.ID != 1 {
		t.Errorf("Ref.ID = %d, want 1", mre.Ref.ID)
	}
}

func TestResolveChainFollowsIndirection(t *testing.T) {
	prev := parseObjectAt
	defer func() { parseObjectAt = prev }()

	objects := map[uint32]PdfObject{
		1: Reference{ID: 2, Gen: 0},
		2: Number(42),
	}
	parseObjectAt = func(info *ParseInfo) (PdfObject, error) {
		return objects[uint32(info.Bounds.Start)], nil
	}
	resolver := resolverFunc(func(id uint32) *ParseInfo {
		if _, ok := objects[id]; !ok {
			return nil
		}
		return &ParseInfo{Bounds: Bounds{Start: int(id)}}
	})

	got, err := resolveChain(resolver, Reference{ID: 1, Gen: 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != Number(42) {
		t.Errorf("got %#v, want Number(42)", got)
	}
}

func TestResolveChainDetectsCycles(t *testing.T) {
	prev := parseObjectAt
	defer func() { parseObjectAt = prev }()

	// Object 1 always resolves to a reference to itself.
	parseObjectAt = func(info *ParseInfo) (PdfObject, error) {
		return Reference{ID: 1, Gen: 0}, nil
	}
	resolver := resolverFunc(func(id uint32) *ParseInfo {
		return &ParseInfo{Bounds: Bounds{Start: int(id)}}
	})

	_, err := resolveChain(resolver, Reference{ID: 1, Gen: 0}, 0)
	var pfe *ParseFailureError
	if !errors.As(err, &pfe) {
		t.Fatalf("got %v, want *ParseFailureError (too many levels of indirection)", err)
	}
}

func TestGetNumberOnNullReturnsZero(t *testing.T) {
	v, err := GetNumber(nil, nil)
	if err != nil || v != 0 {
		t.Errorf("GetNumber(nil, nil) = (%v, %v), want (0, nil)", v, err)
	}
}

func TestGetArrayWrongTypeIsError(t *testing.T) {
	_, err := GetArray(nil, Number(3))
	var pfe *ParseFailureError
	if !errors.As(err, &pfe) {
		t.Fatalf("got %v, want *ParseFailureError", err)
	}
}

func TestGetFloatArray(t *testing.T) {
	arr := Array{Number(1), Number(2.5), Number(-3)}
	got, err := GetFloatArray(nil, arr)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2.5, -3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGetFloatArrayNilOnNull(t *testing.T) {
	got, err := GetFloatArray(nil, nil)
	if err != nil || got != nil {
		t.Errorf("GetFloatArray(nil, nil) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestObjectIdString(t *testing.T) {
	id := ObjectId{ID: 3, Gen: 1}
	if got, want := id.String(), "3 1 R"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	ref := Reference(id)
	if got, want := ref.String(), "3 1 R"; got != want {
		t.Errorf("Reference.String() = %q, want %q", got, want)
	}
}
