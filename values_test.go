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

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"123", 123, true},
		{"-12.5", -12.5, true},
		{".5", 0.5, true},
		{"-.5", -0.5, true},
		{"-", 0, false},
		{".", 0, false},
		{"-.", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		r, lx := newLexer(t, c.in)
		v, _, _, ok := ParseNumber(r, lx, 0, false)
		if ok != c.wantOK {
			t.Errorf("ParseNumber(%q) ok = %v, want %v", c.in, ok, c.wantOK)
			continue
		}
		if ok && v != c.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", c.in, v, c.want)
		}
	}
}

func TestParseName(t *testing.T) {
	r, lx := newLexer(t, "/Type/Catalog")
	v, _, end, ok := ParseName(r, lx, 0, false, false)
	if !ok || v != "Type" {
		t.Fatalf("ParseName = (%q, %v), want (\"Type\", true)", v, ok)
	}
	v2, _, _, ok2 := ParseName(r, lx, end+1, false, true)
	if !ok2 || v2 != "/Catalog" {
		t.Fatalf("ParseName with slash = (%q, %v), want (\"/Catalog\", true)", v2, ok2)
	}
}

func TestParseNameRejectsEmptyBody(t *testing.T) {
	r, lx := newLexer(t, "/ ")
	_, _, _, ok := ParseName(r, lx, 0, false, false)
	if ok {
		t.Error("ParseName should reject a bare \"/\" with no following regular bytes")
	}
}

func TestParseBoolean(t *testing.T) {
	r, lx := newLexer(t, "true")
	v, _, _, ok := ParseBoolean(r, lx, 0, false)
	if !ok || !v {
		t.Fatalf("ParseBoolean(true) = (%v, %v)", v, ok)
	}
	r2, lx2 := newLexer(t, "false")
	v2, _, _, ok2 := ParseBoolean(r2, lx2, 0, false)
	if !ok2 || v2 {
		t.Fatalf("ParseBoolean(false) = (%v, %v)", v2, ok2)
	}
}

func TestParseNumberArray(t *testing.T) {
	r, lx := newLexer(t, "[1 2.5 -3]")
	vals, _, _, ok := ParseNumberArray(r, lx, 0, false)
	if !ok {
		t.Fatal("expected ok")
	}
	want := []float64{1, 2.5, -3}
	if len(vals) != len(want) {
		t.Fatalf("got %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestParseNumberArrayStopsAtFirstBadElement(t *testing.T) {
	r, lx := newLexer(t, "[1 2 /NotANumber 3]")
	vals, _, _, ok := ParseNumberArray(r, lx, 0, false)
	if !ok {
		t.Fatal("bounds should still be found even though parsing stops early")
	}
	if len(vals) != 2 {
		t.Errorf("got %v, want [1 2]", vals)
	}
}

func TestLookupDictProperty(t *testing.T) {
	r, lx := newLexer(t, "/Type /Catalog /Count 3")
	v, ok := LookupDictProperty(r, lx, 0, len("/Type /Catalog /Count 3")-1, "Type")
	if !ok || v != "Catalog" {
		t.Fatalf("LookupDictProperty(Type) = (%q, %v), want (\"Catalog\", true)", v, ok)
	}
	if _, ok := LookupDictProperty(r, lx, 0, len("/Type /Catalog /Count 3")-1, "Missing"); ok {
		t.Error("expected no match for an absent key")
	}
}
