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

import "errors"

var errEmptyBuffer = errors.New("empty byte buffer")

// Direction controls which way a ByteReader search scans.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// ByteReader is a random-access view over an immutable ByteBuffer. All
// indices are inclusive byte offsets into the buffer. ByteReader never
// panics and never returns an error from a search: misses are reported as
// -1 (or nil for Bounds-returning searches).
type ByteReader struct {
	buf *ByteBuffer
	min int
	max int
}

// NewByteReader constructs a reader over the whole of buf.
//
// Construction fails (returns an *InvalidInputError) if buf is empty,
// matching the spec's requirement that an empty buffer is invalid input.
func NewByteReader(buf *ByteBuffer) (*ByteReader, error) {
	if buf == nil || buf.Len() == 0 {
		return nil, &InvalidInputError{Err: errEmptyBuffer}
	}
	return &ByteReader{buf: buf, min: 0, max: buf.Max()}, nil
}

// subReader returns a reader over the same buffer restricted to
// [min, max], clipped to this reader's own range.
func (r *ByteReader) subReader(min, max int) *ByteReader {
	if min < r.min {
		min = r.min
	}
	if max > r.max {
		max = r.max
	}
	return &ByteReader{buf: r.buf, min: min, max: max}
}

// Min returns the lowest valid index for this view.
func (r *ByteReader) Min() int { return r.min }

// Max returns the highest valid index for this view.
func (r *ByteReader) Max() int { return r.max }

// Destroy drops the underlying buffer reference. Objects already parsed
// from this reader (or from sub-views sharing the buffer) remain usable
// until their own buffer references are dropped.
func (r *ByteReader) Destroy() { r.buf = nil }

// IsOutside reports whether i falls outside this view's [Min, Max] range.
func (r *ByteReader) IsOutside(i int) bool {
	return i < r.min || i > r.max
}

// byteAt returns the byte at i, or 0, false if i is outside the buffer
// (not just outside this view — bounds finders sometimes need to look one
// past the view's own max, e.g. a "closed" match).
func (r *ByteReader) byteAt(i int) (byte, bool) {
	if r.buf == nil {
		return 0, false
	}
	return r.buf.At(i)
}

// At returns the byte at i within this view's range.
func (r *ByteReader) At(i int) (byte, bool) {
	if r.IsOutside(i) {
		return 0, false
	}
	return r.byteAt(i)
}

func clipRange(lo, hi, min, max int) (int, int) {
	if lo < min {
		lo = min
	}
	if hi > max {
		hi = max
	}
	return lo, hi
}

// FindCharIndex performs a linear scan for the byte code, starting at
// start (or at Min()/Max() if start is negative, depending on dir) and
// returns the first matching index, or -1.
func (r *ByteReader) FindCharIndex(code byte, dir Direction, start int) int {
	lo, hi := r.min, r.max
	if start < 0 {
		if dir == Forward {
			start = lo
		} else {
			start = hi
		}
	}
	if dir == Forward {
		for i := start; i <= hi; i++ {
			if b, ok := r.byteAt(i); ok && b == code {
				return i
			}
		}
	} else {
		for i := start; i >= lo; i-- {
			if b, ok := r.byteAt(i); ok && b == code {
				return i
			}
		}
	}
	return -1
}

// searchRange holds the optional clipping window accepted by the find*
// family below.
type searchRange struct {
	minIndex, maxIndex int
	set                bool
}

// Range builds a clipping window for FindSubarrayIndex.
func Range(minIndex, maxIndex int) searchRange {
	return searchRange{minIndex: minIndex, maxIndex: maxIndex, set: true}
}

// FindSubarrayIndex searches for a literal byte sequence. If closedOnly is
// true, the byte immediately past the match (in the scan direction) must
// be irregular (whitespace or delimiter) for the match to count; this
// implements spec invariant 3 (no closedOnly match has a regular
// follower).
func (r *ByteReader) FindSubarrayIndex(needle []byte, dir Direction, closedOnly bool, win ...searchRange) *Bounds {
	if len(needle) == 0 {
		return nil
	}
	lo, hi := r.min, r.max
	if len(win) > 0 && win[0].set {
		lo, hi = clipRange(win[0].minIndex, win[0].maxIndex, lo, hi)
	}

	n := len(needle)
	matchAt := func(i int) bool {
		for k := 0; k < n; k++ {
			b, ok := r.byteAt(i + k)
			if !ok || b != needle[k] {
				return false
			}
		}
		return true
	}
	followerOK := func(end int) bool {
		if !closedOnly {
			return true
		}
		var followerIdx int
		if dir == Forward {
			followerIdx = end + 1
		} else {
			followerIdx = end - 1
		}
		b, ok := r.byteAt(followerIdx)
		if !ok {
			return true
		}
		return !isRegular(b)
	}

	if dir == Forward {
		for i := lo; i <= hi-n+1; i++ {
			if matchAt(i) && followerOK(i+n-1) {
				return &Bounds{Start: i, End: i + n - 1}
			}
		}
	} else {
		for i := hi - n + 1; i >= lo; i-- {
			if matchAt(i) && followerOK(i) {
				return &Bounds{Start: i, End: i + n - 1}
			}
		}
	}
	return nil
}

// FindNewLineIndex finds the next line break. Forward, it returns the
// index just past a line terminator (treating CRLF as one terminator).
// Backward, it returns the index just before the terminator.
func (r *ByteReader) FindNewLineIndex(dir Direction, start int) int {
	lo, hi := r.min, r.max
	if dir == Forward {
		if start < 0 {
			start = lo
		}
		for i := start; i <= hi; i++ {
			b, _ := r.byteAt(i)
			if b == '\n' {
				return i + 1
			}
			if b == '\r' {
				if nb, ok := r.byteAt(i + 1); ok && nb == '\n' {
					return i + 2
				}
				return i + 1
			}
		}
		return -1
	}

	if start < 0 {
		start = hi
	}
	for i := start; i >= lo; i-- {
		b, _ := r.byteAt(i)
		if b == '\n' {
			if i-1 >= lo {
				if pb, ok := r.byteAt(i - 1); ok && pb == '\r' {
					return i - 1
				}
			}
			return i
		}
		if b == '\r' {
			return i
		}
	}
	return -1
}

func (r *ByteReader) findByClass(dir Direction, start int, want func(byte) bool) int {
	lo, hi := r.min, r.max
	if dir == Forward {
		if start < 0 {
			start = lo
		}
		for i := start; i <= hi; i++ {
			if b, ok := r.byteAt(i); ok && want(b) {
				return i
			}
		}
		return -1
	}
	if start < 0 {
		start = hi
	}
	for i := start; i >= lo; i-- {
		if b, ok := r.byteAt(i); ok && want(b) {
			return i
		}
	}
	return -1
}

// FindSpaceIndex finds the next whitespace byte.
func (r *ByteReader) FindSpaceIndex(dir Direction, start int) int {
	return r.findByClass(dir, start, isWhitespace)
}

// FindNonSpaceIndex finds the next non-whitespace byte.
func (r *ByteReader) FindNonSpaceIndex(dir Direction, start int) int {
	return r.findByClass(dir, start, func(b byte) bool { return !isWhitespace(b) })
}

// FindDelimiterIndex finds the next delimiter byte.
func (r *ByteReader) FindDelimiterIndex(dir Direction, start int) int {
	return r.findByClass(dir, start, isDelimiter)
}

// FindNonDelimiterIndex finds the next byte that is not a delimiter.
func (r *ByteReader) FindNonDelimiterIndex(dir Direction, start int) int {
	return r.findByClass(dir, start, func(b byte) bool { return !isDelimiter(b) })
}

// FindRegularIndex finds the next regular (non-whitespace, non-delimiter) byte.
func (r *ByteReader) FindRegularIndex(dir Direction, start int) int {
	return r.findByClass(dir, start, isRegular)
}

// FindIrregularIndex finds the next whitespace-or-delimiter byte.
func (r *ByteReader) FindIrregularIndex(dir Direction, start int) int {
	return r.findByClass(dir, start, func(b byte) bool { return !isRegular(b) })
}

// Character classes, per PDF 1.7 section 7.2.

func isWhitespace(b byte) bool {
	switch b {
	case 0x00, '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

func isDelimiterByte(b byte) bool {
	switch b {
	case '%', '(', ')', '/', '<', '>', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

// isDelimiter is the exported-semantics alias used throughout the lexer;
// kept distinct from isDelimiterByte only to read naturally at call sites.
func isDelimiter(b byte) bool { return isDelimiterByte(b) }

func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiterByte(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
