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

import "strconv"

// ParseNumber decodes a COS number at i: an optional leading "-", an
// optional leading "." (equivalent to a leading "0."), then a run of
// digits with at most one ".". ok is false if no digit was consumed, so
// bare ".", "-" and "-." are rejected.
func ParseNumber(r *ByteReader, lx *Lexer, i int, skipEmpty bool) (value float64, start, end int, ok bool) {
	if skipEmpty {
		i = lx.SkipEmpty(i)
	}
	if i < 0 || r.IsOutside(i) {
		return 0, 0, 0, false
	}
	start = i
	pos := i
	if b, ok := r.At(pos); ok && b == '-' {
		pos++
	}

	hasDigits := false
	hasDot := false
	for {
		b, ok := r.At(pos)
		if !ok {
			break
		}
		if isDigit(b) {
			hasDigits = true
			pos++
			continue
		}
		if b == '.' && !hasDot {
			hasDot = true
			pos++
			continue
		}
		break
	}
	if !hasDigits {
		return 0, 0, 0, false
	}

	end = pos - 1
	token := r.buf.Slice(start, end)
	v, err := strconv.ParseFloat(string(token), 64)
	if err != nil {
		return 0, 0, 0, false
	}
	return v, start, end, true
}

// parseRegularRun returns the run of regular bytes starting at i, for
// internal use by name/number-adjacent parsing.
func parseRegularRun(r *ByteReader, i int) (value []byte, start, end int, ok bool) {
	if i < 0 || r.IsOutside(i) {
		return nil, 0, 0, false
	}
	if b, ok := r.At(i); !ok || !isRegular(b) {
		return nil, 0, 0, false
	}
	j := r.FindIrregularIndex(Forward, i)
	if j < 0 {
		j = r.Max() + 1
	}
	return r.buf.Slice(i, j-1), i, j - 1, true
}

// ParseName decodes a COS name at i, which must point at "/". The
// returned value omits the leading slash unless includeSlash is set.
// ok is false if the name body is empty.
func ParseName(r *ByteReader, lx *Lexer, i int, skipEmpty bool, includeSlash bool) (value string, start, end int, ok bool) {
	if skipEmpty {
		i = lx.SkipEmpty(i)
	}
	if i < 0 || r.IsOutside(i) {
		return "", 0, 0, false
	}
	if b, ok := r.At(i); !ok || b != '/' {
		return "", 0, 0, false
	}
	body, _, bodyEnd, ok := parseRegularRun(r, i+1)
	if !ok || len(body) == 0 {
		return "", 0, 0, false
	}
	if includeSlash {
		return "/" + string(body), i, bodyEnd, true
	}
	return string(body), i, bodyEnd, true
}

// ParseBoolean decodes "true" or "false" at i as a closed keyword match.
func ParseBoolean(r *ByteReader, lx *Lexer, i int, skipEmpty bool) (value bool, start, end int, ok bool) {
	if skipEmpty {
		i = lx.SkipEmpty(i)
	}
	if i < 0 || r.IsOutside(i) {
		return false, 0, 0, false
	}
	if lx.matchesClosed(i, kwTrue) {
		return true, i, i + len(kwTrue) - 1, true
	}
	if lx.matchesClosed(i, kwFalse) {
		return false, i, i + len(kwFalse) - 1, true
	}
	return false, 0, 0, false
}

// ParseNumberArray decodes a "["..."]" bounded array of numbers. Parsing
// of elements stops at the first byte that does not parse as a number;
// the array itself still succeeds as long as its bounds were found.
func ParseNumberArray(r *ByteReader, lx *Lexer, i int, skipEmpty bool) (values []float64, start, end int, ok bool) {
	if skipEmpty {
		i = lx.SkipEmpty(i)
	}
	if i < 0 {
		return nil, 0, 0, false
	}
	bounds := lx.GetArrayBoundsAt(i)
	if bounds == nil {
		return nil, 0, 0, false
	}
	var out []float64
	if bounds.HasContent {
		pos := bounds.ContentStart
		for {
			pos = lx.SkipEmpty(pos)
			if pos < 0 || pos > bounds.ContentEnd {
				break
			}
			v, _, vEnd, ok := ParseNumber(r, lx, pos, false)
			if !ok {
				break
			}
			out = append(out, v)
			pos = vEnd + 1
		}
	}
	return out, bounds.Start, bounds.End, true
}

// ParseNameArray decodes a "["..."]" bounded array of names, with the
// same stop-at-first-failure leniency as ParseNumberArray.
func ParseNameArray(r *ByteReader, lx *Lexer, i int, skipEmpty bool) (values []string, start, end int, ok bool) {
	if skipEmpty {
		i = lx.SkipEmpty(i)
	}
	if i < 0 {
		return nil, 0, 0, false
	}
	bounds := lx.GetArrayBoundsAt(i)
	if bounds == nil {
		return nil, 0, 0, false
	}
	var out []string
	if bounds.HasContent {
		pos := bounds.ContentStart
		for {
			pos = lx.SkipEmpty(pos)
			if pos < 0 || pos > bounds.ContentEnd {
				break
			}
			v, _, vEnd, ok := ParseName(r, lx, pos, false, false)
			if !ok {
				break
			}
			out = append(out, v)
			pos = vEnd + 1
		}
	}
	return out, bounds.Start, bounds.End, true
}

// LookupDictProperty scans the dict content range [contentStart,
// contentEnd] for a key named propName appearing directly inside the
// dict (not inside a nested composite value, which SkipToNextName
// jumps over whole), then parses the value that follows as a name.
// It reads one name-valued entry, such as /Type or /Subtype, without
// building a full PdfDict; no other code in this package calls it.
func LookupDictProperty(r *ByteReader, lx *Lexer, contentStart, contentEnd int, propName string) (value string, ok bool) {
	if contentStart < 0 || contentEnd < contentStart {
		return "", false
	}
	i := contentStart
	for {
		i = lx.SkipToNextName(i, contentEnd)
		if i < 0 {
			return "", false
		}
		key, _, keyEnd, ok := ParseName(r, lx, i, false, false)
		if !ok {
			return "", false
		}
		if key == propName {
			valStart := lx.SkipEmpty(keyEnd + 1)
			if valStart < 0 || valStart > contentEnd {
				return "", false
			}
			val, _, _, ok := ParseName(r, lx, valStart, false, false)
			if !ok {
				return "", false
			}
			return val, true
		}
		i = keyEnd + 1
	}
}
