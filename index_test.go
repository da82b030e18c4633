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
	"fmt"
	"testing"
)

// buildMinimalPdf assembles a tiny single-section xref document, computing
// every byte offset from the actual lengths of the preceding pieces rather
// than hard-coding them.
func buildMinimalPdf() string {
	header := "%PDF-1.4\n"
	obj1 := "1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n"
	obj2 := "2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n"

	obj1Offset := len(header)
	obj2Offset := obj1Offset + len(obj1)
	xrefOffset := obj2Offset + len(obj2)

	xref := fmt.Sprintf("xref\n0 3\n%010d 65535 f \n%010d 00000 n \n%010d 00000 n \n",
		0, obj1Offset, obj2Offset)
	trailer := fmt.Sprintf("trailer\n<< /Size 3 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", xrefOffset)

	return header + obj1 + obj2 + xref + trailer
}

func newTestXrefTable(t *testing.T) *XrefTable {
	t.Helper()
	data := buildMinimalPdf()
	r, err := NewByteReader(NewByteBuffer([]byte(data)))
	if err != nil {
		t.Fatal(err)
	}
	idx, err := NewXrefTable(r, ParserOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestNewXrefTableResolvesObjects(t *testing.T) {
	idx := newTestXrefTable(t)

	obj, err := idx.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := obj.(*PdfDict)
	if !ok {
		t.Fatalf("got %T, want *PdfDict", obj)
	}
	tp, _ := dict.Get("Type")
	if tp != Name("Catalog") {
		t.Errorf("Type = %v, want Catalog", tp)
	}
}

func TestNewXrefTableFreeEntryIsDangling(t *testing.T) {
	idx := newTestXrefTable(t)
	if _, err := idx.Get(0); err == nil {
		t.Error("object 0 is the free-list head; Get should report a missing reference")
	}
}

func TestNewXrefTableObjectNumbers(t *testing.T) {
	idx := newTestXrefTable(t)
	got := idx.ObjectNumbers()
	want := []uint32{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNewXrefTableRoot(t *testing.T) {
	idx := newTestXrefTable(t)
	root, err := idx.Root()
	if err != nil {
		t.Fatal(err)
	}
	tp, _ := root.Get("Type")
	if tp != Name("Catalog") {
		t.Errorf("Root().Type = %v, want Catalog", tp)
	}
}

func TestNewXrefTableNoXrefIsError(t *testing.T) {
	r, err := NewByteReader(NewByteBuffer([]byte("just some bytes, no xref table here")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewXrefTable(r, ParserOptions{}); err == nil {
		t.Error("expected an error when no xref table is present")
	}
}

func TestXrefTableFillMissingMergesIncrementalUpdate(t *testing.T) {
	idx := &XrefTable{}
	newer := NewPdfDict()
	newer.Set("Root", Reference{ID: 1})
	older := NewPdfDict()
	older.Set("Root", Reference{ID: 99})
	older.Set("Info", Reference{ID: 5})

	idx.fillMissing(newer, older)

	root, _ := newer.Get("Root")
	if root != (Reference{ID: 1}) {
		t.Errorf("Root should keep the newer value, got %v", root)
	}
	info, ok := newer.Get("Info")
	if !ok || info != (Reference{ID: 5}) {
		t.Errorf("Info should be filled in from the older trailer, got %v, %v", info, ok)
	}
}
