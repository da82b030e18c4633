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

func TestLruCacheGetPut(t *testing.T) {
	c := newCache(2)
	c.Put(1, Number(1))
	c.Put(2, Number(2))

	v, ok := c.Get(1)
	if !ok || v != Number(1) {
		t.Fatalf("Get(1) = (%v, %v), want (1, true)", v, ok)
	}
	if !c.Has(2) {
		t.Error("Has(2) should report true")
	}
}

func TestLruCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newCache(2)
	c.Put(1, Number(1))
	c.Put(2, Number(2))
	c.Get(1) // 1 is now most-recently-used; 2 becomes the eviction target
	c.Put(3, Number(3))

	if c.Has(2) {
		t.Error("object 2 should have been evicted")
	}
	if !c.Has(1) || !c.Has(3) {
		t.Error("objects 1 and 3 should both still be cached")
	}
}

func TestLruCacheZeroCapacityDisablesCaching(t *testing.T) {
	c := newCache(0)
	c.Put(1, Number(1))
	if c.Has(1) {
		t.Error("a zero-capacity cache should never retain entries")
	}
}

func TestLruCachePutExistingKeyUpdatesValue(t *testing.T) {
	c := newCache(2)
	c.Put(1, Number(1))
	c.Put(1, Number(99))

	v, ok := c.Get(1)
	if !ok || v != Number(99) {
		t.Errorf("Get(1) = (%v, %v), want (99, true)", v, ok)
	}
}
