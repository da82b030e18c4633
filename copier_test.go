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

import "testing"

func TestClonerLeafPassesThroughUnchanged(t *testing.T) {
	c := NewCloner(nil)
	got, err := c.Clone(Number(3))
	if err != nil {
		t.Fatal(err)
	}
	if got != Number(3) {
		t.Errorf("got %v, want Number(3)", got)
	}
}

func TestClonerDict(t *testing.T) {
	orig := NewPdfDict()
	orig.Set("A", Number(1))
	orig.Set("B", Name("x"))

	c := NewCloner(nil)
	got, err := c.Clone(orig)
	if err != nil {
		t.Fatal(err)
	}
	clone, ok := got.(*PdfDict)
	if !ok {
		t.Fatalf("got %T, want *PdfDict", got)
	}
	if clone == orig {
		t.Error("Clone should return a detached copy, not the same pointer")
	}
	a, _ := clone.Get("A")
	if a != Number(1) {
		t.Errorf("A = %v, want 1", a)
	}
}

func TestClonerStream(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Length", Number(5))
	orig := NewPdfStream(dict, []byte("hello"), nil)

	c := NewCloner(nil)
	got, err := c.Clone(orig)
	if err != nil {
		t.Fatal(err)
	}
	clone, ok := got.(*PdfStream)
	if !ok {
		t.Fatalf("got %T, want *PdfStream", got)
	}
	if string(clone.Payload) != "hello" {
		t.Errorf("Payload = %q, want %q", clone.Payload, "hello")
	}
	clone.Payload[0] = 'H'
	if orig.Payload[0] == 'H' {
		t.Error("clone's payload should be an independent copy, not shared with the original")
	}
}

func TestClonerArray(t *testing.T) {
	orig := Array{Number(1), Name("x"), Array{Number(2)}}
	c := NewCloner(nil)
	got, err := c.Clone(orig)
	if err != nil {
		t.Fatal(err)
	}
	clone := got.(Array)
	if len(clone) != 3 {
		t.Fatalf("got %d elements, want 3", len(clone))
	}
	nested, ok := clone[2].(Array)
	if !ok || len(nested) != 1 || nested[0] != Number(2) {
		t.Errorf("nested array = %v, want [2]", clone[2])
	}
}

func TestClonerReferenceDeduplicates(t *testing.T) {
	target := NewPdfDict()
	target.Set("K", Number(42))

	resolver := resolverFunc(func(id uint32) *ParseInfo {
		return &ParseInfo{Bounds: Bounds{Start: int(id)}}
	})
	prev := parseObjectAt
	defer func() { parseObjectAt = prev }()
	calls := 0
	parseObjectAt = func(info *ParseInfo) (PdfObject, error) {
		calls++
		return target, nil
	}

	c := NewCloner(resolver)
	ref := Reference{ID: 7, Gen: 0}

	first, err := c.Clone(ref)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Clone(ref)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected the resolver to be consulted once due to dedup, got %d calls", calls)
	}
	if first != second {
		t.Error("repeated Clone of the same reference should return the identical cached clone")
	}
}
