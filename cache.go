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

// lruCache is a simple LRU cache of resolved objects, keyed by bare
// object number (generation numbers live in xrefEntry instead).
type lruCache struct {
	capacity int
	byKey    map[uint32]*cacheEntry
	mru, lru *cacheEntry
}

type cacheEntry struct {
	newer, older *cacheEntry
	key          uint32
	obj          PdfObject
}

// newCache creates a new LRU cache with the given capacity. A capacity
// of 0 or less disables caching: Put becomes a no-op.
func newCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		byKey:    make(map[uint32]*cacheEntry, capacity),
	}
}

// Put adds an object to the cache.
func (l *lruCache) Put(key uint32, obj PdfObject) {
	if l.capacity <= 0 {
		return
	}

	if ent, ok := l.byKey[key]; ok {
		ent.obj = obj
		l.moveToFront(ent)
		return
	}

	ent := &cacheEntry{
		key: key,
		obj: obj,
	}
	l.byKey[key] = ent
	l.moveToFront(ent)

	if len(l.byKey) > l.capacity {
		l.removeOldest()
	}
}

// Get returns an object from the cache and marks it as recently used.
func (l *lruCache) Get(key uint32) (PdfObject, bool) {
	ent, ok := l.byKey[key]
	if !ok {
		return nil, false
	}

	l.moveToFront(ent)
	return ent.obj, true
}

// Has returns true if the cache contains the given key. The object is
// not marked as recently used.
func (l *lruCache) Has(key uint32) bool {
	_, ok := l.byKey[key]
	return ok
}

func (l *lruCache) moveToFront(ent *cacheEntry) {
	if ent == l.mru {
		return
	}

	if ent.newer != nil {
		ent.newer.older = ent.older
	}
	if ent.older != nil {
		ent.older.newer = ent.newer
	}
	if ent == l.lru {
		l.lru = ent.newer
	}

	ent.newer = nil
	ent.older = l.mru
	if l.mru != nil {
		l.mru.newer = ent
	}
	l.mru = ent
	if l.lru == nil {
		l.lru = ent
	}
}

func (l *lruCache) removeOldest() {
	if l.lru == nil {
		return
	}

	delete(l.byKey, l.lru.key)
	if l.lru.newer != nil {
		l.lru.newer.older = nil
	}
	l.lru = l.lru.newer
}
