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

import "fmt"

// PdfStream is a PdfDict plus a raw (still-filtered) byte payload and
// the chain of filters that must be applied, in order, to decode it.
type PdfStream struct {
	*PdfDict
	Payload []byte
	Filters []FilterDescriptor
}

func (*PdfStream) isPdfObject() {}

// NewPdfStream wraps dict around payload with the given filter chain.
// dict's own entries (/Filter, /DecodeParms, /Length) are left as-is;
// NewPdfStream does not try to keep them in sync with filters.
func NewPdfStream(dict *PdfDict, payload []byte, filters []FilterDescriptor) *PdfStream {
	return &PdfStream{PdfDict: dict, Payload: payload, Filters: filters}
}

// Decode runs Payload through every filter in the chain and returns the
// fully decoded bytes.
func (s *PdfStream) Decode() ([]byte, error) {
	return decodeChain(s.Payload, s.Filters)
}

// filtersFromDict builds a filter chain from a stream dict's /Filter
// and /DecodeParms entries, resolving indirect references along the
// way.
func filtersFromDict(r Resolver, dict *PdfDict) ([]FilterDescriptor, error) {
	filterObj, _ := dict.Get("Filter")
	filterObj, err := Resolve(r, filterObj)
	if err != nil {
		return nil, err
	}
	parmsObj, _ := dict.Get("DecodeParms")
	parmsObj, err = Resolve(r, parmsObj)
	if err != nil {
		return nil, err
	}

	switch f := filterObj.(type) {
	case nil:
		return nil, nil
	case Name:
		parms, err := resolvedDict(r, parmsObj)
		if err != nil {
			return nil, err
		}
		return []FilterDescriptor{{Name: f, Parms: parms}}, nil
	case Array:
		var parmsArr Array
		if pa, ok := parmsObj.(Array); ok {
			parmsArr = pa
		}
		out := make([]FilterDescriptor, 0, len(f))
		for i, fi := range f {
			fi, err := Resolve(r, fi)
			if err != nil {
				return nil, err
			}
			name, ok := fi.(Name)
			if !ok {
				return nil, &ParseFailureError{Err: fmt.Errorf("filter entry %d is not a name", i), Where: "filtersFromDict"}
			}
			var parmsEntry PdfObject
			if i < len(parmsArr) {
				parmsEntry, err = Resolve(r, parmsArr[i])
				if err != nil {
					return nil, err
				}
			}
			parms, err := resolvedDict(r, parmsEntry)
			if err != nil {
				return nil, err
			}
			out = append(out, FilterDescriptor{Name: name, Parms: parms})
		}
		return out, nil
	default:
		return nil, &ParseFailureError{Err: fmt.Errorf("invalid /Filter field"), Where: "filtersFromDict"}
	}
}

func resolvedDict(r Resolver, obj PdfObject) (*PdfDict, error) {
	if obj == nil {
		return nil, nil
	}
	d, ok := obj.(*PdfDict)
	if !ok {
		return nil, &ParseFailureError{Err: fmt.Errorf("expected dict but got %T", obj), Where: "resolvedDict"}
	}
	return d, nil
}
