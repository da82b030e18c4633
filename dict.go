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

// PdfDict is an insertion-ordered mapping from name keys to PdfObject
// values. It carries an optional indirect-object identity, a dirty
// flag, a weak parent back-reference used only for edit propagation,
// and a change-notification channel. Typed views (ResourceDict,
// GraphicsStateDict, FontDict, ...) are built by embedding a *PdfDict
// and reading/writing specific keys out of it; properties that no
// typed view recognizes simply stay in the generic map and round-trip
// unchanged.
type PdfDict struct {
	entries map[Name]PdfObject
	order   []Name

	ref    *ObjectId
	edited bool
	parent *PdfDict
	notify chan<- struct{}
}

func (*PdfDict) isPdfObject() {}

// NewPdfDict returns an empty, unattached dict.
func NewPdfDict() *PdfDict {
	return &PdfDict{entries: make(map[Name]PdfObject)}
}

// Keys returns the dict's keys in insertion order.
func (d *PdfDict) Keys() []Name {
	out := make([]Name, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of entries.
func (d *PdfDict) Len() int {
	return len(d.entries)
}

// Get looks up key, returning ok=false if it is not present.
func (d *PdfDict) Get(key Name) (PdfObject, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Set inserts or replaces key, marking the dict (and its ancestors)
// edited.
func (d *PdfDict) Set(key Name, val PdfObject) {
	if _, exists := d.entries[key]; !exists {
		d.order = append(d.order, key)
	}
	d.entries[key] = val
	d.markEdited()
}

// Delete removes key, if present, marking the dict edited.
func (d *PdfDict) Delete(key Name) {
	if _, exists := d.entries[key]; !exists {
		return
	}
	delete(d.entries, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.markEdited()
}

// Ref returns the dict's indirect-object identity, if it has one.
func (d *PdfDict) Ref() (ObjectId, bool) {
	if d.ref == nil {
		return ObjectId{}, false
	}
	return *d.ref, true
}

// SetRef attaches an indirect-object identity to the dict.
func (d *PdfDict) SetRef(id ObjectId) {
	d.ref = &id
}

// Edited reports whether the dict has been mutated since it was parsed
// (or since the flag was last cleared).
func (d *PdfDict) Edited() bool {
	return d.edited
}

// ClearEdited resets the dirty flag without notifying observers.
func (d *PdfDict) ClearEdited() {
	d.edited = false
}

// Parent returns the weak back-reference to the owning dict, if any.
func (d *PdfDict) Parent() *PdfDict {
	return d.parent
}

// setParent installs the weak back-reference used for edit propagation.
// It never causes d to own parent, or vice versa.
func (d *PdfDict) setParent(parent *PdfDict) {
	d.parent = parent
}

// Observe attaches a channel that receives a (non-blocking) notification
// after every mutation. Only one observer may be attached at a time.
func (d *PdfDict) Observe(ch chan<- struct{}) {
	d.notify = ch
}

// markEdited sets the dirty flag, notifies any attached observer, and
// bubbles the same notification up through the parent chain so that a
// document root can invalidate caches that depend on any descendant.
func (d *PdfDict) markEdited() {
	d.edited = true
	if d.notify != nil {
		select {
		case d.notify <- struct{}{}:
		default:
		}
	}
	if d.parent != nil {
		d.parent.markEdited()
	}
}
