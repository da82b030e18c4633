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
	"bytes"

	"seehuhn.de/go/postscript/type1/names"
	"seehuhn.de/go/sfnt"
)

// FontDict is the typed view of a /Font resource dictionary entry. It
// wraps the raw dict and, best-effort, validates the glyph data and
// glyph names a viewer would need to actually render the font.
type FontDict struct {
	*PdfDict

	// Glyphs is the parsed embedded TrueType/OpenType program found
	// under /FontDescriptor /FontFile2, or nil if the font is not
	// embedded, the descriptor is missing, or the program failed to
	// parse. A missing or malformed embedded font is not itself a
	// parse failure: PDF viewers fall back to a substitute font.
	Glyphs *sfnt.Font

	// Differences holds the subset of a simple font's /Differences
	// array entries that failed glyph-name validation, in the order
	// they were encountered. An empty slice means every name in
	// /Differences is a recognized PostScript glyph name (or there was
	// no /Differences array at all).
	Differences []string
}

func newFontDict(dict *PdfDict) *FontDict {
	fd := &FontDict{PdfDict: dict}
	fd.Glyphs = fd.loadEmbeddedGlyphs()
	fd.Differences = fd.invalidDifferences()
	return fd
}

// loadEmbeddedGlyphs resolves /FontDescriptor /FontFile2 and parses it
// as an sfnt/TrueType program. It returns nil rather than an error on
// any failure: an unparsable or absent embedded font program just
// means the glyph outlines are not available to this reader, not that
// the font dictionary itself is malformed.
func (fd *FontDict) loadEmbeddedGlyphs() *sfnt.Font {
	descObj, ok := fd.Get("FontDescriptor")
	if !ok {
		return nil
	}
	desc, ok := descObj.(*PdfDict)
	if !ok {
		return nil
	}
	fileObj, ok := desc.Get("FontFile2")
	if !ok {
		return nil
	}
	stream, ok := fileObj.(*PdfStream)
	if !ok {
		return nil
	}
	data, err := stream.Decode()
	if err != nil {
		return nil
	}
	font, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return font
}

// invalidDifferences checks every glyph name in a simple font's
// /Encoding /Differences array against the standard Adobe glyph list,
// returning the ones names.ToUnicode cannot resolve to any codepoint.
func (fd *FontDict) invalidDifferences() []string {
	encObj, ok := fd.Get("Encoding")
	if !ok {
		return nil
	}
	encDict, ok := encObj.(*PdfDict)
	if !ok {
		return nil
	}
	diffObj, ok := encDict.Get("Differences")
	if !ok {
		return nil
	}
	diffArr, ok := diffObj.(Array)
	if !ok {
		return nil
	}

	var bad []string
	for _, item := range diffArr {
		name, ok := item.(Name)
		if !ok {
			continue
		}
		if len(names.ToUnicode(string(name), false)) == 0 {
			bad = append(bad, string(name))
		}
	}
	return bad
}

// NumGlyphs returns the number of glyphs in the embedded font program,
// or 0 if none is embedded.
func (fd *FontDict) NumGlyphs() int {
	if fd.Glyphs == nil {
		return 0
	}
	return fd.Glyphs.NumGlyphs()
}
