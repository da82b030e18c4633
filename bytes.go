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

// ByteBuffer is an immutable sequence of bytes with an inclusive maximum
// index. Sub-views created from a ByteReader share the same underlying
// buffer; no copy is ever made for a sub-view.
type ByteBuffer struct {
	data []byte
}

// NewByteBuffer wraps data as an immutable buffer. The caller must not
// mutate data afterwards.
func NewByteBuffer(data []byte) *ByteBuffer {
	return &ByteBuffer{data: data}
}

// Len returns the number of bytes in the buffer.
func (b *ByteBuffer) Len() int {
	return len(b.data)
}

// Max returns the inclusive maximum valid index, or -1 for an empty buffer.
func (b *ByteBuffer) Max() int {
	return len(b.data) - 1
}

// At returns the byte at index i and whether i was in range.
func (b *ByteBuffer) At(i int) (byte, bool) {
	if i < 0 || i >= len(b.data) {
		return 0, false
	}
	return b.data[i], true
}

// Slice returns the inclusive byte range [start, end], clipped to the
// buffer's bounds. An out-of-range or empty request returns nil.
func (b *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > b.Max() {
		end = b.Max()
	}
	if start > end {
		return nil
	}
	return b.data[start : end+1]
}

// Bounds describes the inclusive byte range of a value. Composite values
// additionally carry the inclusive range of their content, i.e. the bytes
// strictly inside the opening/closing delimiters.
//
// Invariant: start <= contentStart <= contentEnd <= end. A composite with
// empty content (e.g. "<<>>" or "()") carries hasContent == false and
// contentStart/contentEnd are meaningless.
type Bounds struct {
	Start, End               int
	ContentStart, ContentEnd int
	HasContent               bool
}

// Len returns the number of bytes spanned by [Start, End].
func (b Bounds) Len() int {
	return b.End - b.Start + 1
}

// Content returns the inclusive content range and whether it is present.
func (b Bounds) Content() (start, end int, ok bool) {
	return b.ContentStart, b.ContentEnd, b.HasContent
}
