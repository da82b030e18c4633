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
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// XrefTable is the concrete Resolver built by scanning a document's
// "xref"..."trailer" tables: a map from object number to the byte
// bounds of that object's "N G obj" ... "endobj" body, plus an LRU
// cache of already-parsed objects.
type XrefTable struct {
	r       *ByteReader
	entries map[uint32]xrefEntry
	trailer *PdfDict
	cache   *lruCache
	crypt   CryptInfo
	logger  Logger
}

type xrefEntry struct {
	gen    uint16
	bounds Bounds
	free   bool
}

// NewXrefTable builds a Resolver by walking every "xref"..."trailer"
// table reachable from the last one in the file (via /Prev), using opts
// to size the object cache and select a logger and crypto hook. Entries
// from an earlier table are only kept if no later table redefines the
// same object number, matching the PDF incremental-update rule that the
// most recent definition wins.
func NewXrefTable(r *ByteReader, opts ParserOptions) (*XrefTable, error) {
	idx := &XrefTable{
		r:       r,
		entries: make(map[uint32]xrefEntry),
		cache:   newCache(opts.cacheCapacity()),
		crypt:   opts.crypt(),
		logger:  opts.logger(),
	}

	lx := NewLexer(r)
	xrefStart := r.FindSubarrayIndex(kwXref, Backward, true)
	if xrefStart == nil {
		return nil, &ParseFailureError{Err: errors.New("no xref table found"), Where: "NewXrefTable"}
	}

	seen := make(map[int]bool)
	pos := xrefStart.Start
	var trailer *PdfDict
	for pos >= 0 && !seen[pos] {
		seen[pos] = true
		bounds := lx.GetXrefBoundsAt(pos)
		if bounds == nil {
			break
		}
		if err := idx.mergeSection(lx, *bounds); err != nil {
			logParseFailure(idx.logger, err)
			break
		}

		trailerStart := lx.SkipEmpty(bounds.End + 1)
		if trailerStart < 0 {
			break
		}
		tBounds := lx.GetDictBoundsAt(trailerStart)
		if tBounds == nil {
			break
		}
		section, err := ParseDict(r, *tBounds, idx)
		if err != nil {
			logParseFailure(idx.logger, err)
			break
		}
		if trailer == nil {
			trailer = section
		} else {
			idx.fillMissing(trailer, section)
		}

		prevObj, ok := section.Get("Prev")
		if !ok {
			break
		}
		n, ok := prevObj.(Number)
		if !ok {
			break
		}
		pos = int(n)
	}

	if trailer == nil {
		return nil, &ParseFailureError{Err: errors.New("no trailer found"), Where: "NewXrefTable"}
	}
	idx.trailer = trailer
	return idx, nil
}

// fillMissing copies every key present in older but absent from newer,
// implementing the incremental-update merge rule for trailer dicts.
func (idx *XrefTable) fillMissing(newer, older *PdfDict) {
	for _, key := range older.Keys() {
		if _, ok := newer.Get(key); !ok {
			v, _ := older.Get(key)
			newer.Set(key, v)
		}
	}
}

// mergeSection parses one "N M\nentry..." classic xref subsection
// block and records any object number not already known (an earlier,
// more recent table takes priority over this one).
func (idx *XrefTable) mergeSection(lx *Lexer, bounds Bounds) error {
	if !bounds.HasContent {
		return nil
	}
	r := idx.r
	pos := bounds.ContentStart
	for pos >= 0 && pos <= bounds.ContentEnd {
		pos = lx.SkipEmpty(pos)
		if pos < 0 || pos > bounds.ContentEnd {
			break
		}
		startID, _, idEnd, ok := ParseNumber(r, lx, pos, false)
		if !ok {
			break
		}
		pos = lx.SkipEmpty(idEnd + 1)
		if pos < 0 {
			break
		}
		count, _, countEnd, ok := ParseNumber(r, lx, pos, false)
		if !ok {
			break
		}
		pos = countEnd + 1

		for k := 0; k < int(count); k++ {
			pos = lx.SkipEmpty(pos)
			if pos < 0 || pos > bounds.ContentEnd {
				return nil
			}
			offset, _, offEnd, ok := ParseNumber(r, lx, pos, false)
			if !ok {
				return nil
			}
			pos = lx.SkipEmpty(offEnd + 1)
			gen, _, genEnd, ok := ParseNumber(r, lx, pos, false)
			if !ok {
				return nil
			}
			pos = lx.SkipEmpty(genEnd + 1)
			kind, ok := r.At(pos)
			if !ok {
				return nil
			}
			pos++

			objID := uint32(startID) + uint32(k)
			if _, known := idx.entries[objID]; !known {
				if kind == 'n' {
					objBounds := lx.GetIndirectObjectBoundsAt(int(offset))
					if objBounds != nil {
						idx.entries[objID] = xrefEntry{gen: uint16(gen), bounds: *objBounds}
					}
				} else {
					idx.entries[objID] = xrefEntry{gen: uint16(gen), free: true}
				}
			}
		}
	}
	return nil
}

// Resolve implements Resolver.
func (idx *XrefTable) Resolve(id uint32) *ParseInfo {
	ent, ok := idx.entries[id]
	if !ok || ent.free {
		return nil
	}
	return &ParseInfo{Reader: idx.r, Bounds: ent.bounds, Resolve: idx, CryptInfo: idx.crypt}
}

// Get resolves id through the object cache, parsing and caching the
// result on a miss.
func (idx *XrefTable) Get(id uint32) (PdfObject, error) {
	if obj, ok := idx.cache.Get(id); ok {
		return obj, nil
	}
	info := idx.Resolve(id)
	if info == nil {
		return nil, &MissingReferenceError{Ref: ObjectId{ID: id}}
	}
	obj, err := parseObjectAt(info)
	if err != nil {
		return nil, err
	}
	idx.cache.Put(id, obj)
	return obj, nil
}

// Trailer returns the merged trailer dictionary.
func (idx *XrefTable) Trailer() *PdfDict {
	return idx.trailer
}

// ObjectNumbers returns every known object number, in ascending order.
func (idx *XrefTable) ObjectNumbers() []uint32 {
	nums := maps.Keys(idx.entries)
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

// Root resolves the document's catalog dictionary from the trailer's
// /Root entry.
func (idx *XrefTable) Root() (*PdfDict, error) {
	rootObj, ok := idx.trailer.Get("Root")
	if !ok {
		return nil, &ParseFailureError{Err: fmt.Errorf("trailer has no /Root entry"), Where: "Root"}
	}
	return GetDict(idx, rootObj)
}
