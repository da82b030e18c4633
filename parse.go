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

import (
	"errors"
	"fmt"
)

func init() {
	parseObjectAt = parseIndirectObject
}

// parseIndirectObject locates the "obj" ... "endobj" body described by
// info.Bounds and parses whatever value it holds: a dict, a stream (a
// dict immediately followed by "stream" ... "endstream"), an array, or
// a bare leaf.
func parseIndirectObject(info *ParseInfo) (PdfObject, error) {
	r := info.Reader
	lx := NewLexer(r)

	objMatch := r.FindSubarrayIndex(kwObj, Forward, true, Range(info.Bounds.Start, r.Max()))
	if objMatch == nil {
		return nil, &ParseFailureError{Err: errors.New("missing obj keyword"), Where: "parseIndirectObject"}
	}
	endMatch := r.FindSubarrayIndex(kwEndobj, Forward, true, Range(objMatch.End+1, r.Max()))
	if endMatch == nil {
		return nil, &ParseFailureError{Err: errors.New("missing endobj keyword"), Where: "parseIndirectObject"}
	}

	valueStart := lx.SkipEmpty(objMatch.End + 1)
	if valueStart < 0 || valueStart > endMatch.Start-1 {
		return Null{}, nil
	}

	val, _, err := parseValueAt(r, lx, valueStart, info.Resolve)
	if err != nil {
		return nil, err
	}
	return val, nil
}

// parseValueAt dispatches on the value kind found at i, returning the
// parsed object and the index of its last byte.
func parseValueAt(r *ByteReader, lx *Lexer, i int, resolver Resolver) (PdfObject, int, error) {
	kind := lx.GetValueTypeAt(i, false)
	switch kind {
	case KindName:
		s, _, end, ok := ParseName(r, lx, i, false, false)
		if !ok {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("malformed name at byte %d", i), Where: "parseValueAt"}
		}
		return Name(s), end, nil

	case KindNumber:
		v, _, end, ok := ParseNumber(r, lx, i, false)
		if !ok {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("malformed number at byte %d", i), Where: "parseValueAt"}
		}
		return Number(v), end, nil

	case KindReference:
		ref, end, ok := parseReferenceAt(r, lx, i)
		if !ok {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("malformed reference at byte %d", i), Where: "parseValueAt"}
		}
		return ref, end, nil

	case KindBoolean:
		b, _, end, ok := ParseBoolean(r, lx, i, false)
		if !ok {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("malformed boolean at byte %d", i), Where: "parseValueAt"}
		}
		return Bool(b), end, nil

	case KindStringLiteral:
		bounds := lx.GetLiteralBoundsAt(i)
		if bounds == nil {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("unterminated string literal at byte %d", i), Where: "parseValueAt"}
		}
		var content []byte
		if bounds.HasContent {
			content = r.buf.Slice(bounds.ContentStart, bounds.ContentEnd)
		}
		return StringLit(decodeStringLiteral(content)), bounds.End, nil

	case KindHexString:
		bounds := lx.GetHexBoundsAt(i)
		if bounds == nil {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("unterminated hex string at byte %d", i), Where: "parseValueAt"}
		}
		var content []byte
		if bounds.HasContent {
			content = r.buf.Slice(bounds.ContentStart, bounds.ContentEnd)
		}
		return HexStr(decodeHexString(content)), bounds.End, nil

	case KindArray:
		bounds := lx.GetArrayBoundsAt(i)
		if bounds == nil {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("unbalanced array at byte %d", i), Where: "parseValueAt"}
		}
		arr, err := parseArrayContent(r, lx, bounds, resolver)
		return arr, bounds.End, err

	case KindDictionary:
		bounds := lx.GetDictBoundsAt(i)
		if bounds == nil {
			return nil, i, &ParseFailureError{Err: fmt.Errorf("unterminated dict at byte %d", i), Where: "parseValueAt"}
		}
		dict, err := ParseDict(r, *bounds, resolver)
		if err != nil {
			return nil, bounds.End, err
		}
		after := lx.SkipEmpty(bounds.End + 1)
		if after >= 0 && lx.matchesClosed(after, kwStream) {
			return parseStreamTail(r, lx, dict, after, resolver)
		}
		return dict, bounds.End, nil

	default:
		if lx.matchesClosed(i, kwNull) {
			return Null{}, i + len(kwNull) - 1, nil
		}
		return nil, i, &ParseFailureError{Err: fmt.Errorf("unrecognized value at byte %d", i), Where: "parseValueAt"}
	}
}

// parseReferenceAt parses the "N G R" token starting at i.
func parseReferenceAt(r *ByteReader, lx *Lexer, i int) (Reference, int, bool) {
	idVal, _, idEnd, ok := ParseNumber(r, lx, i, false)
	if !ok {
		return Reference{}, 0, false
	}
	pos := lx.SkipEmpty(idEnd + 1)
	if pos < 0 {
		return Reference{}, 0, false
	}
	genVal, _, genEnd, ok := ParseNumber(r, lx, pos, false)
	if !ok {
		return Reference{}, 0, false
	}
	pos = lx.SkipEmpty(genEnd + 1)
	if pos < 0 {
		return Reference{}, 0, false
	}
	b, ok := r.At(pos)
	if !ok || b != 'R' {
		return Reference{}, 0, false
	}
	if after, ok := r.At(pos + 1); ok && isRegular(after) {
		return Reference{}, 0, false
	}
	return Reference{ID: uint32(idVal), Gen: uint16(genVal)}, pos, true
}

func parseArrayContent(r *ByteReader, lx *Lexer, bounds *Bounds, resolver Resolver) (Array, error) {
	var out Array
	if !bounds.HasContent {
		return out, nil
	}
	pos := bounds.ContentStart
	for {
		pos = lx.SkipEmpty(pos)
		if pos < 0 || pos > bounds.ContentEnd {
			break
		}
		val, end, err := parseValueAt(r, lx, pos, resolver)
		if err != nil {
			logParseFailure(nil, err)
			break
		}
		out = append(out, val)
		pos = end + 1
	}
	return out, nil
}

// ParseDict walks a dict's content range, populating a generic PdfDict
// with every key/value pair it finds. A malformed key or value stops
// the walk early (the partially built dict is still returned) rather
// than failing the whole parse, matching the degrade-locally policy for
// parse failures.
func ParseDict(r *ByteReader, bounds Bounds, resolver Resolver) (*PdfDict, error) {
	dict := NewPdfDict()
	contentStart, contentEnd, hasContent := bounds.Content()
	if !hasContent {
		return dict, nil
	}

	lx := NewLexer(r)
	i := contentStart
	for {
		i = lx.SkipToNextName(i, contentEnd)
		if i < 0 {
			break
		}
		key, _, keyEnd, ok := ParseName(r, lx, i, false, false)
		if !ok {
			break
		}
		valStart := lx.SkipEmpty(keyEnd + 1)
		if valStart < 0 || valStart > contentEnd {
			break
		}
		val, end, err := parseValueAt(r, lx, valStart, resolver)
		if err != nil {
			logParseFailure(nil, err)
			break
		}
		dict.Set(Name(key), val)
		i = end + 1
	}
	return dict, nil
}

// parseStreamTail parses the "stream" ... "endstream" payload that
// follows dict; streamKwStart is the index of the "stream" keyword that
// comes after the dict's closing ">>".
func parseStreamTail(r *ByteReader, lx *Lexer, dict *PdfDict, streamKwStart int, resolver Resolver) (*PdfStream, int, error) {
	pos := streamKwStart + len(kwStream)
	if b, ok := r.At(pos); ok && b == '\r' {
		pos++
	}
	if b, ok := r.At(pos); ok && b == '\n' {
		pos++
	}
	dataStart := pos

	dataEnd := findStreamDataEnd(r, lx, dataStart, dict, resolver)
	endMatch := r.FindSubarrayIndex(kwEndstream, Forward, true, Range(dataEnd+1, r.Max()))
	if endMatch == nil {
		return nil, dataStart, &ParseFailureError{Err: errors.New("missing endstream keyword"), Where: "parseStreamTail"}
	}

	var payload []byte
	if dataEnd >= dataStart {
		payload = append([]byte(nil), r.buf.Slice(dataStart, dataEnd)...)
	}

	filters, err := filtersFromDict(resolver, dict)
	if err != nil {
		return nil, endMatch.End, err
	}
	return NewPdfStream(dict, payload, filters), endMatch.End, nil
}

// findStreamDataEnd prefers the dict's /Length entry (resolving an
// indirect reference if necessary); it falls back to scanning for the
// next "endstream" keyword when /Length is missing, wrong, or doesn't
// land right before "endstream" (a corrupt or stale length, common in
// incrementally-updated files).
func findStreamDataEnd(r *ByteReader, lx *Lexer, dataStart int, dict *PdfDict, resolver Resolver) int {
	if lengthObj, ok := dict.Get("Length"); ok {
		if n, err := GetNumber(resolver, lengthObj); err == nil {
			candidateEnd := dataStart + int(n) - 1
			afterData := lx.SkipEmpty(candidateEnd + 1)
			if afterData >= 0 && lx.matchesClosed(afterData, kwEndstream) {
				return candidateEnd
			}
		}
	}

	m := r.FindSubarrayIndex(kwEndstream, Forward, true, Range(dataStart, r.Max()))
	if m == nil {
		return dataStart - 1
	}
	dataEnd := m.Start - 1
	if b, ok := r.At(dataEnd); ok && b == '\n' {
		dataEnd--
		if b2, ok := r.At(dataEnd); ok && b2 == '\r' {
			dataEnd--
		}
	} else if ok && b == '\r' {
		dataEnd--
	}
	return dataEnd
}

// decodeStringLiteral resolves the escape sequences of a COS literal
// string's content bytes into the raw bytes they represent.
func decodeStringLiteral(content []byte) []byte {
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		b := content[i]
		if b != '\\' {
			out = append(out, b)
			continue
		}
		i++
		if i >= len(content) {
			break
		}
		switch c := content[i]; c {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '(', ')', '\\':
			out = append(out, c)
		case '\r':
			// line continuation; also swallow a following \n
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
		case '\n':
			// line continuation
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for k := 0; k < 2 && i+1 < len(content) && content[i+1] >= '0' && content[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(content[i]-'0')
				}
				out = append(out, byte(val))
			} else {
				out = append(out, c)
			}
		}
	}
	return out
}

// decodeHexString decodes the hex digit pairs of a COS hex string's
// content bytes. A trailing lone digit is padded with an implicit 0,
// per the PDF grammar. Non-hex bytes (whitespace) are ignored.
func decodeHexString(content []byte) []byte {
	var digits []byte
	for _, b := range content {
		if hexVal(b) >= 0 {
			digits = append(digits, b)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := 0; i < len(out); i++ {
		out[i] = byte(hexVal(digits[2*i])<<4 | hexVal(digits[2*i+1]))
	}
	return out
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}
