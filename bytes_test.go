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

func TestByteBufferSlice(t *testing.T) {
	b := NewByteBuffer([]byte("hello world"))
	if got, want := string(b.Slice(0, 4)), "hello"; got != want {
		t.Errorf("Slice(0,4) = %q, want %q", got, want)
	}
	if got, want := b.Max(), len("hello world")-1; got != want {
		t.Errorf("Max() = %d, want %d", got, want)
	}
}

func TestByteBufferAt(t *testing.T) {
	b := NewByteBuffer([]byte("ab"))
	if c, ok := b.At(0); !ok || c != 'a' {
		t.Errorf("At(0) = (%c, %v), want ('a', true)", c, ok)
	}
	if _, ok := b.At(2); ok {
		t.Error("At(2) on 2-byte buffer should report false")
	}
}

func TestNewByteReaderRejectsEmpty(t *testing.T) {
	if _, err := NewByteReader(NewByteBuffer(nil)); err == nil {
		t.Error("NewByteReader on an empty buffer should fail")
	}
	if _, err := NewByteReader(nil); err == nil {
		t.Error("NewByteReader on a nil buffer should fail")
	}
}

func TestFindSubarrayIndex(t *testing.T) {
	r, err := NewByteReader(NewByteBuffer([]byte("1 0 obj\n<< >>\nendobj")))
	if err != nil {
		t.Fatal(err)
	}
	m := r.FindSubarrayIndex([]byte("obj"), Forward, true, Range(r.Min(), r.Max()))
	if m == nil {
		t.Fatal("expected a match for \"obj\"")
	}
	if got, want := m.Start, 4; got != want {
		t.Errorf("match start = %d, want %d", got, want)
	}

	none := r.FindSubarrayIndex([]byte("zzz"), Forward, true, Range(r.Min(), r.Max()))
	if none != nil {
		t.Errorf("expected no match, got %v", none)
	}
}

func TestFindSubarrayIndexBackward(t *testing.T) {
	r, err := NewByteReader(NewByteBuffer([]byte("xref\n0 1\ntrailer\n<< >>\nxref\n0 1\ntrailer\n<< >>")))
	if err != nil {
		t.Fatal(err)
	}
	first := r.FindSubarrayIndex([]byte("xref"), Forward, true, Range(r.Min(), r.Max()))
	last := r.FindSubarrayIndex([]byte("xref"), Backward, true, Range(r.Min(), r.Max()))
	if first == nil || last == nil {
		t.Fatal("expected matches in both directions")
	}
	if first.Start == last.Start {
		t.Error("forward and backward search should find distinct matches in a file with two \"xref\" keywords")
	}
}

func TestFindNewLineIndex(t *testing.T) {
	r, err := NewByteReader(NewByteBuffer([]byte("abc\r\ndef")))
	if err != nil {
		t.Fatal(err)
	}
	i := r.FindNewLineIndex(Forward, 0)
	if got, want := i, 5; got != want {
		t.Errorf("FindNewLineIndex = %d, want %d (index just past the CRLF)", got, want)
	}
}
