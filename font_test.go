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

func TestNewFontDictNoDescriptorIsNonFatal(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Subtype", Name("Type1"))

	fd := newFontDict(dict)
	if fd.Glyphs != nil {
		t.Error("expected nil Glyphs with no /FontDescriptor")
	}
	if fd.NumGlyphs() != 0 {
		t.Errorf("NumGlyphs() = %d, want 0", fd.NumGlyphs())
	}
}

func TestNewFontDictMissingFontFile2IsNonFatal(t *testing.T) {
	desc := NewPdfDict()
	dict := NewPdfDict()
	dict.Set("FontDescriptor", desc)

	fd := newFontDict(dict)
	if fd.Glyphs != nil {
		t.Error("expected nil Glyphs with no /FontFile2")
	}
}

func TestNewFontDictMalformedFontFile2IsNonFatal(t *testing.T) {
	desc := NewPdfDict()
	desc.Set("FontFile2", NewPdfStream(NewPdfDict(), []byte("not a real sfnt program"), nil))
	dict := NewPdfDict()
	dict.Set("FontDescriptor", desc)

	fd := newFontDict(dict)
	if fd.Glyphs != nil {
		t.Error("expected nil Glyphs for unparsable embedded font data")
	}
}

func TestInvalidDifferencesNoEncoding(t *testing.T) {
	dict := NewPdfDict()
	fd := newFontDict(dict)
	if fd.Differences != nil {
		t.Errorf("Differences = %v, want nil", fd.Differences)
	}
}

func TestInvalidDifferencesFlagsUnrecognizedNames(t *testing.T) {
	enc := NewPdfDict()
	enc.Set("Differences", Array{Name("A"), Name("this-is-not-a-glyph-name")})
	dict := NewPdfDict()
	dict.Set("Encoding", enc)

	fd := newFontDict(dict)
	found := false
	for _, bad := range fd.Differences {
		if bad == "this-is-not-a-glyph-name" {
			found = true
		}
		if bad == "A" {
			t.Error("\"A\" is a recognized glyph name and should not be flagged")
		}
	}
	if !found {
		t.Errorf("expected \"this-is-not-a-glyph-name\" to be flagged, got %v", fd.Differences)
	}
}
