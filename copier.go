// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

// A Cloner detaches a parsed object tree from the byte buffer it was
// read from: every reference it encounters is resolved and copied out,
// so the result can outlive the parser that produced it. A Cloner
// deduplicates by object id, so an object referenced from more than one
// place is copied only once. Cloner does not detect reference cycles.
type Cloner struct {
	r     Resolver
	clone map[uint32]PdfObject
}

// NewCloner creates a Cloner that resolves references via r.
func NewCloner(r Resolver) *Cloner {
	return &Cloner{
		r:     r,
		clone: make(map[uint32]PdfObject),
	}
}

// Clone returns a detached copy of obj. Dictionaries and streams are
// copied as new, parser-independent values whose bytes are owned
// outright; references are resolved and replaced by the clone of the
// object they point to.
func (c *Cloner) Clone(obj PdfObject) (PdfObject, error) {
	switch x := obj.(type) {
	case *PdfDict:
		return c.cloneDict(x)
	case *PdfStream:
		return c.cloneStream(x)
	case Array:
		return c.cloneArray(x)
	case Reference:
		return c.cloneReference(x)
	default:
		return obj, nil
	}
}

func (c *Cloner) cloneDict(d *PdfDict) (*PdfDict, error) {
	res := NewPdfDict()
	for _, key := range d.Keys() {
		val, _ := d.Get(key)
		repl, err := c.Clone(val)
		if err != nil {
			return nil, err
		}
		res.Set(key, repl)
	}
	return res, nil
}

func (c *Cloner) cloneStream(s *PdfStream) (*PdfStream, error) {
	dict, err := c.cloneDict(s.PdfDict)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, len(s.Payload))
	copy(payload, s.Payload)
	return NewPdfStream(dict, payload, s.Filters), nil
}

func (c *Cloner) cloneArray(a Array) (Array, error) {
	var res Array
	for _, val := range a {
		repl, err := c.Clone(val)
		if err != nil {
			return nil, err
		}
		res = append(res, repl)
	}
	return res, nil
}

func (c *Cloner) cloneReference(ref Reference) (PdfObject, error) {
	if done, ok := c.clone[ref.ID]; ok {
		return done, nil
	}

	val, err := Resolve(c.r, ref)
	if err != nil {
		return nil, err
	}
	copied, err := c.Clone(val)
	if err != nil {
		return nil, err
	}
	c.clone[ref.ID] = copied
	return copied, nil
}
