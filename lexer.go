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

// Lexer classifies COS values and finds their byte bounds on top of a
// ByteReader. A Lexer is a thin, stateless wrapper: all position state
// lives in the caller's index variable, matching the random-access nature
// of the underlying reader.
type Lexer struct {
	r *ByteReader
}

// NewLexer wraps r.
func NewLexer(r *ByteReader) *Lexer {
	return &Lexer{r: r}
}

var (
	kwTrue      = []byte("true")
	kwFalse     = []byte("false")
	kwNull      = []byte("null")
	kwStream    = []byte("stream")
	kwEndstream = []byte("endstream")
	kwObj       = []byte("obj")
	kwEndobj    = []byte("endobj")
	kwXref      = []byte("xref")
	kwTrailer   = []byte("trailer")
)

// GetValueTypeAt classifies the value starting at (or after, if skipEmpty)
// position i.
func (lx *Lexer) GetValueTypeAt(i int, skipEmpty bool) ValueKind {
	if skipEmpty {
		i = lx.SkipEmpty(i)
	}
	if i < 0 || lx.r.IsOutside(i) {
		return KindUnknown
	}
	b, _ := lx.r.At(i)

	switch b {
	case '/':
		if nb, ok := lx.r.At(i + 1); ok && isRegular(nb) {
			return KindName
		}
		return KindUnknown
	case '[':
		return KindArray
	case '(':
		return KindStringLiteral
	case '%':
		return KindComment
	case '<':
		if nb, ok := lx.r.At(i + 1); ok && nb == '<' {
			return KindDictionary
		}
		return KindHexString
	}

	if isDigit(b) {
		return lx.classifyNumberOrReference(i)
	}
	if b == '.' || b == '-' {
		if nb, ok := lx.r.At(i + 1); ok && isDigit(nb) {
			return KindNumber
		}
		return KindUnknown
	}
	if b == 's' || b == 't' || b == 'f' {
		return lx.classifyKeyword(i, b)
	}
	return KindUnknown
}

// classifyNumberOrReference implements the "digit -> scan to next
// delimiter, search backward for R" rule of section 4.2.1.
func (lx *Lexer) classifyNumberOrReference(i int) ValueKind {
	end := lx.r.FindDelimiterIndex(Forward, i)
	if end < 0 {
		end = lx.r.Max() + 1
	}
	tokenEnd := end - 1
	rIdx := lx.r.FindCharIndex('R', Backward, tokenEnd)
	if rIdx >= i {
		after, ok := lx.r.At(rIdx + 1)
		if !ok || !isRegular(after) {
			return KindReference
		}
	}
	return KindNumber
}

func (lx *Lexer) classifyKeyword(i int, first byte) ValueKind {
	switch first {
	case 't':
		if lx.matchesClosed(i, kwTrue) {
			return KindBoolean
		}
	case 'f':
		if lx.matchesClosed(i, kwFalse) {
			return KindBoolean
		}
	case 's':
		if lx.matchesClosed(i, kwStream) {
			return KindStream
		}
	}
	return KindUnknown
}

func (lx *Lexer) matchesClosed(i int, kw []byte) bool {
	for k, want := range kw {
		b, ok := lx.r.At(i + k)
		if !ok || b != want {
			return false
		}
	}
	after, ok := lx.r.At(i + len(kw))
	return !ok || !isRegular(after)
}

// SkipEmpty advances i past whitespace and full-line "%" comments. It
// returns -1 if the buffer is exhausted. It is idempotent: applying it
// twice in a row returns the same index both times.
func (lx *Lexer) SkipEmpty(i int) int {
	for {
		i = lx.r.FindNonSpaceIndex(Forward, i)
		if i < 0 {
			return -1
		}
		b, _ := lx.r.At(i)
		if b != '%' {
			return i
		}
		nl := lx.r.FindNewLineIndex(Forward, i)
		if nl < 0 {
			return -1
		}
		i = nl
	}
}

// GetDictBoundsAt returns the bounds of the dictionary starting at start,
// which must point at "<<". Nested "<<"/">>" pairs are depth-counted;
// pairs inside unescaped string literals are ignored. Matching is
// non-overlapping: a recognized "<<" or ">>" is consumed as a unit, so
// its second byte never begins another pair.
func (lx *Lexer) GetDictBoundsAt(start int) *Bounds {
	b0, ok0 := lx.r.At(start)
	b1, ok1 := lx.r.At(start + 1)
	if !ok0 || !ok1 || b0 != '<' || b1 != '<' {
		return nil
	}

	dictDepth := 1
	literalDepth := 0
	i := start + 2
	escaped := false
	firstContent := -1
	lastContent := -1

	for {
		b, ok := lx.r.At(i)
		if !ok {
			return nil
		}

		if literalDepth > 0 {
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '(' {
				literalDepth++
			} else if b == ')' {
				literalDepth--
			}
			if !isWhitespace(b) {
				if firstContent < 0 {
					firstContent = i
				}
				lastContent = i
			}
			i++
			continue
		}

		if b == '(' {
			literalDepth = 1
			if firstContent < 0 {
				firstContent = i
			}
			lastContent = i
			escaped = false
			i++
			continue
		}

		if b == '<' {
			if nb, ok := lx.r.At(i + 1); ok && nb == '<' {
				dictDepth++
				if firstContent < 0 {
					firstContent = i
				}
				lastContent = i + 1
				i += 2
				continue
			}
		} else if b == '>' {
			if nb, ok := lx.r.At(i + 1); ok && nb == '>' {
				dictDepth--
				if dictDepth == 0 {
					end := i + 1
					bounds := &Bounds{Start: start, End: end}
					if firstContent >= 0 && firstContent <= lastContent {
						bounds.ContentStart = firstContent
						bounds.ContentEnd = lastContent
						bounds.HasContent = true
					}
					return bounds
				}
				lastContent = i + 1
				i += 2
				continue
			}
		}

		if !isWhitespace(b) {
			if firstContent < 0 {
				firstContent = i
			}
			lastContent = i
		}
		i++
	}
}

// GetArrayBoundsAt returns the bounds of the array starting at start,
// which must point at "[". Nested "["/"]" pairs are depth-counted; string
// literals are skipped whole via GetLiteralBoundsAt, so brackets inside
// them are not counted.
// Returns nil if depth never returns to zero within the buffer.
func (lx *Lexer) GetArrayBoundsAt(start int) *Bounds {
	b, ok := lx.r.At(start)
	if !ok || b != '[' {
		return nil
	}

	depth := 1
	i := start + 1
	firstContent := -1
	lastContent := -1
	for {
		cb, ok := lx.r.At(i)
		if !ok {
			return nil
		}
		switch cb {
		case '(':
			litEnd := lx.GetLiteralBoundsAt(i)
			if litEnd == nil {
				return nil
			}
			if firstContent < 0 {
				firstContent = i
			}
			lastContent = litEnd.End
			i = litEnd.End + 1
			continue
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				bounds := &Bounds{Start: start, End: i}
				if firstContent >= 0 {
					bounds.ContentStart = firstContent
					bounds.ContentEnd = lastContent
					bounds.HasContent = true
				}
				return bounds
			}
		}
		if !isWhitespace(cb) {
			if firstContent < 0 {
				firstContent = i
			}
			lastContent = i
		}
		i++
	}
}

// GetHexBoundsAt returns the bounds of the hex string starting at start
// (a single "<", not "<<"). The closing delimiter is the first following
// ">".
func (lx *Lexer) GetHexBoundsAt(start int) *Bounds {
	b, ok := lx.r.At(start)
	if !ok || b != '<' {
		return nil
	}
	if nb, ok := lx.r.At(start + 1); ok && nb == '<' {
		return nil
	}
	end := lx.r.FindCharIndex('>', Forward, start+1)
	if end < 0 {
		return nil
	}
	bounds := &Bounds{Start: start, End: end}
	if end > start+1 {
		bounds.ContentStart = start + 1
		bounds.ContentEnd = end - 1
		bounds.HasContent = true
	}
	return bounds
}

// GetLiteralBoundsAt returns the bounds of the string literal starting at
// start (a "("). Depth tracks nested, unescaped parens.
func (lx *Lexer) GetLiteralBoundsAt(start int) *Bounds {
	b, ok := lx.r.At(start)
	if !ok || b != '(' {
		return nil
	}

	opened := 1
	i := start + 1
	escaped := false
	firstContent := -1
	lastContent := -1
	for {
		cb, ok := lx.r.At(i)
		if !ok {
			return nil
		}
		if escaped {
			escaped = false
		} else if cb == '\\' {
			escaped = true
		} else if cb == '(' {
			opened++
		} else if cb == ')' {
			opened--
			if opened == 0 {
				bounds := &Bounds{Start: start, End: i}
				if firstContent >= 0 {
					bounds.ContentStart = firstContent
					bounds.ContentEnd = lastContent
					bounds.HasContent = true
				}
				return bounds
			}
		}
		if firstContent < 0 {
			firstContent = i
		}
		lastContent = i
		i++
	}
}

// GetIndirectObjectBoundsAt looks forward from start for the keyword
// "obj", then for "endobj". The content bounds are trimmed of surrounding
// whitespace, and additionally of a leading "<<"/trailing ">>" pair so the
// caller receives the dict interior directly when the object is a
// dictionary. A stream object's content ends in "endstream", not ">>",
// so it is only trimmed of whitespace.
func (lx *Lexer) GetIndirectObjectBoundsAt(start int) *Bounds {
	objMatch := lx.r.FindSubarrayIndex(kwObj, Forward, true, Range(start, lx.r.Max()))
	if objMatch == nil {
		return nil
	}
	endMatch := lx.r.FindSubarrayIndex(kwEndobj, Forward, true, Range(objMatch.End+1, lx.r.Max()))
	if endMatch == nil {
		return nil
	}

	bounds := &Bounds{Start: start, End: endMatch.End}

	cs := lx.r.FindNonSpaceIndex(Forward, objMatch.End+1)
	ce := lx.r.FindNonSpaceIndex(Backward, endMatch.Start-1)
	if cs < 0 || ce < 0 || cs > ce {
		return bounds
	}

	if b0, _ := lx.r.At(cs); b0 == '<' {
		if b1, ok := lx.r.At(cs + 1); ok && b1 == '<' {
			if e0, _ := lx.r.At(ce); e0 == '>' {
				if e1, ok := lx.r.At(ce - 1); ok && e1 == '>' {
					cs += 2
					ce -= 2
					cs = lx.r.FindNonSpaceIndex(Forward, cs)
					ce = lx.r.FindNonSpaceIndex(Backward, ce)
				}
			}
		}
	}

	if cs >= 0 && ce >= 0 && cs <= ce {
		bounds.ContentStart = cs
		bounds.ContentEnd = ce
		bounds.HasContent = true
	}
	return bounds
}

// GetXrefBoundsAt returns the bounds spanning from the "xref" keyword at
// start through the "r" of the following "trailer" keyword. Content is
// the byte range strictly between them, whitespace-trimmed. An empty
// table (no bytes between the keywords) is illegal and returns nil.
func (lx *Lexer) GetXrefBoundsAt(start int) *Bounds {
	xrefMatch := lx.r.FindSubarrayIndex(kwXref, Forward, true, Range(start, lx.r.Max()))
	if xrefMatch == nil || xrefMatch.Start != start {
		return nil
	}
	trailerMatch := lx.r.FindSubarrayIndex(kwTrailer, Forward, true, Range(xrefMatch.End+1, lx.r.Max()))
	if trailerMatch == nil {
		return nil
	}

	cs := lx.r.FindNonSpaceIndex(Forward, xrefMatch.End+1)
	ce := lx.r.FindNonSpaceIndex(Backward, trailerMatch.Start-1)
	if cs < 0 || ce < 0 || cs > ce {
		return nil
	}

	return &Bounds{
		Start: start, End: trailerMatch.End,
		ContentStart: cs, ContentEnd: ce, HasContent: true,
	}
}

// SkipToNextName walks forward from start, skipping whole values, until it
// finds a Name, or returns -1 if none is found by maxIndex.
func (lx *Lexer) SkipToNextName(start, maxIndex int) int {
	i := start
	for {
		i = lx.SkipEmpty(i)
		if i < 0 || i > maxIndex {
			return -1
		}
		kind := lx.GetValueTypeAt(i, false)
		switch {
		case kind == KindName:
			return i
		case kind.hasBounds():
			b := lx.boundsFor(kind, i)
			if b == nil {
				i++
				continue
			}
			i = b.End + 1
		case kind == KindNumber:
			end := lx.r.FindIrregularIndex(Forward, i)
			if end < 0 {
				return -1
			}
			i = end
		case kind == KindBoolean:
			if lx.matchesClosed(i, kwTrue) {
				i += len(kwTrue)
			} else {
				i += len(kwFalse)
			}
		case kind == KindComment:
			nl := lx.r.FindNewLineIndex(Forward, i)
			if nl < 0 {
				return -1
			}
			i = nl
		default:
			i++
		}
		if i > maxIndex {
			return -1
		}
	}
}

func (lx *Lexer) boundsFor(kind ValueKind, i int) *Bounds {
	switch kind {
	case KindDictionary:
		return lx.GetDictBoundsAt(i)
	case KindArray:
		return lx.GetArrayBoundsAt(i)
	case KindStringLiteral:
		return lx.GetLiteralBoundsAt(i)
	case KindHexString:
		return lx.GetHexBoundsAt(i)
	default:
		return nil
	}
}
