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

import "fmt"

// Category prefixes used to qualify resolved resource-map keys, so a
// raw name (e.g. "/F1") can name both a font and a pattern without
// the resolved maps colliding.
const (
	prefixExtGState = "/ExtGState"
	prefixFont      = "/Font"
	prefixXObject   = "/XObject"
)

// ResourceDict is the typed view of a page or form XObject's
// /Resources dictionary. It owns both the raw name-to-object-or-ref
// sub-maps, read directly off the embedded *PdfDict, and three
// resolved sub-maps that fillMaps populates lazily once a Resolver is
// available.
type ResourceDict struct {
	*PdfDict

	graphicsStates map[string]*GraphicsStateDict
	fonts          map[string]*FontDict
	xobjects       map[string]XObject
}

// NewResourceDict wraps dict as a ResourceDict. The resolved maps are
// empty until fillMaps is called.
func NewResourceDict(dict *PdfDict) *ResourceDict {
	return &ResourceDict{PdfDict: dict}
}

func (rd *ResourceDict) rawSubMap(key Name) (*PdfDict, error) {
	obj, ok := rd.Get(key)
	if !ok {
		return nil, nil
	}
	d, ok := obj.(*PdfDict)
	if !ok {
		return nil, &ParseFailureError{Err: fmt.Errorf("/%s is not a dict", key), Where: "ResourceDict"}
	}
	return d, nil
}

// fillMaps clears and rebuilds the resolved graphics-state, font and
// XObject maps from the raw sub-dictionaries, using r to resolve
// indirect references. Entries that fail to resolve or parse are
// logged and dropped, per the dangling-reference policy.
func (rd *ResourceDict) fillMaps(r Resolver) error {
	rd.graphicsStates = make(map[string]*GraphicsStateDict)
	rd.fonts = make(map[string]*FontDict)
	rd.xobjects = make(map[string]XObject)

	if err := rd.fillExtGState(r); err != nil {
		return err
	}
	if err := rd.fillFonts(r); err != nil {
		return err
	}
	return rd.fillXObjects(r)
}

func (rd *ResourceDict) fillExtGState(r Resolver) error {
	sub, err := rd.rawSubMap("ExtGState")
	if err != nil || sub == nil {
		return err
	}
	for _, name := range sub.Keys() {
		raw, _ := sub.Get(name)
		dict, err := resolveChildDict(r, raw)
		if err != nil {
			logParseFailure(nil, err)
			continue
		}
		if dict == nil {
			continue
		}
		rd.graphicsStates[prefixExtGState+string(name)] = &GraphicsStateDict{PdfDict: dict}
	}
	return nil
}

func (rd *ResourceDict) fillFonts(r Resolver) error {
	sub, err := rd.rawSubMap("Font")
	if err != nil || sub == nil {
		return err
	}
	for _, name := range sub.Keys() {
		raw, _ := sub.Get(name)
		dict, err := resolveChildDict(r, raw)
		if err != nil {
			logParseFailure(nil, err)
			continue
		}
		if dict == nil {
			continue
		}
		rd.fonts[prefixFont+string(name)] = newFontDict(dict)
	}
	return nil
}

func (rd *ResourceDict) fillXObjects(r Resolver) error {
	sub, err := rd.rawSubMap("XObject")
	if err != nil || sub == nil {
		return err
	}
	for _, name := range sub.Keys() {
		raw, _ := sub.Get(name)
		stream, err := resolveChildStream(r, raw)
		if err != nil {
			logParseFailure(nil, err)
			continue
		}
		if stream == nil {
			continue
		}
		xobj, err := newXObject(r, stream)
		if err != nil {
			logParseFailure(nil, err)
			continue
		}
		rd.xobjects[prefixXObject+string(name)] = xobj
	}
	return nil
}

func resolveChildDict(r Resolver, obj PdfObject) (*PdfDict, error) {
	resolved, err := Resolve(r, obj)
	if err != nil || resolved == nil {
		return nil, err
	}
	d, ok := resolved.(*PdfDict)
	if !ok {
		return nil, &ParseFailureError{Err: fmt.Errorf("expected dict but got %T", resolved), Where: "resolveChildDict"}
	}
	return d, nil
}

func resolveChildStream(r Resolver, obj PdfObject) (*PdfStream, error) {
	resolved, err := Resolve(r, obj)
	if err != nil || resolved == nil {
		return nil, err
	}
	s, ok := resolved.(*PdfStream)
	if !ok {
		return nil, &ParseFailureError{Err: fmt.Errorf("expected stream but got %T", resolved), Where: "resolveChildStream"}
	}
	return s, nil
}

// GetGraphicsState looks up a resolved graphics state by its prefixed
// key (e.g. "/ExtGStateGS1").
func (rd *ResourceDict) GetGraphicsState(name string) (*GraphicsStateDict, bool) {
	gs, ok := rd.graphicsStates[name]
	return gs, ok
}

// GetFont looks up a resolved font by its prefixed key.
func (rd *ResourceDict) GetFont(name string) (*FontDict, bool) {
	f, ok := rd.fonts[name]
	return f, ok
}

// GetXObject looks up a resolved XObject by its prefixed key.
func (rd *ResourceDict) GetXObject(name string) (XObject, bool) {
	x, ok := rd.xobjects[name]
	return x, ok
}

// SetGraphicsState inserts gs under its prefixed key and marks the
// dict edited.
func (rd *ResourceDict) SetGraphicsState(rawName string, gs *GraphicsStateDict) {
	rd.graphicsStates[prefixExtGState+rawName] = gs
	rd.markEdited()
}

// SetFont inserts f under its prefixed key and marks the dict edited.
func (rd *ResourceDict) SetFont(rawName string, f *FontDict) {
	rd.fonts[prefixFont+rawName] = f
	rd.markEdited()
}

// SetXObject inserts x under its prefixed key and marks the dict
// edited.
func (rd *ResourceDict) SetXObject(rawName string, x XObject) {
	rd.xobjects[prefixXObject+rawName] = x
	rd.markEdited()
}

// GraphicsStates iterates the resolved graphics-state map in a
// deterministic (sorted by prefixed key) order.
func (rd *ResourceDict) GraphicsStates(yield func(name string, gs *GraphicsStateDict) bool) {
	for _, name := range sortedKeys(rd.graphicsStates) {
		if !yield(name, rd.graphicsStates[name]) {
			return
		}
	}
}

// Fonts iterates the resolved font map in a deterministic order.
func (rd *ResourceDict) Fonts(yield func(name string, f *FontDict) bool) {
	for _, name := range sortedKeys(rd.fonts) {
		if !yield(name, rd.fonts[name]) {
			return
		}
	}
}

// XObjects iterates the resolved XObject map in a deterministic order.
func (rd *ResourceDict) XObjects(yield func(name string, x XObject) bool) {
	for _, name := range sortedKeys(rd.xobjects) {
		if !yield(name, rd.xobjects[name]) {
			return
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// ToBytes serializes the resource dict in the strict key order the
// object model's round-trip contract requires: ExtGState (if
// non-empty) -> XObject (if non-empty) -> ColorSpace -> Pattern ->
// Shading -> Font -> Properties -> ProcSet. Prefixed keys in the
// resolved ExtGState/Font/XObject maps are re-emitted with their
// category prefix stripped, recovering the original PDF name. An
// XObject entry with no object identity of its own is a
// SerializationFailureError: images and forms are always indirect.
func (rd *ResourceDict) ToBytes(crypt CryptInfo) ([]byte, error) {
	out := NewPdfDict()

	if len(rd.graphicsStates) > 0 {
		sub := NewPdfDict()
		for _, prefixed := range sortedKeys(rd.graphicsStates) {
			sub.Set(Name(prefixed[len(prefixExtGState):]), rd.graphicsStates[prefixed].PdfDict)
		}
		out.Set("ExtGState", sub)
	}

	if len(rd.xobjects) > 0 {
		sub := NewPdfDict()
		for _, prefixed := range sortedKeys(rd.xobjects) {
			x := rd.xobjects[prefixed]
			ref, ok := x.stream().Ref()
			if !ok {
				return nil, &SerializationFailureError{
					Err:   fmt.Errorf("XObject %q has no indirect reference", prefixed),
					Where: "ResourceDict.ToBytes",
				}
			}
			sub.Set(Name(prefixed[len(prefixXObject):]), Reference(ref))
		}
		out.Set("XObject", sub)
	}

	for _, key := range []Name{"ColorSpace", "Pattern", "Shading"} {
		if v, ok := rd.Get(key); ok {
			out.Set(key, v)
		}
	}

	if len(rd.fonts) > 0 {
		sub := NewPdfDict()
		for _, prefixed := range sortedKeys(rd.fonts) {
			sub.Set(Name(prefixed[len(prefixFont):]), rd.fonts[prefixed].PdfDict)
		}
		out.Set("Font", sub)
	}

	for _, key := range []Name{"Properties", "ProcSet"} {
		if v, ok := rd.Get(key); ok {
			out.Set(key, v)
		}
	}

	return serializeDict(out, crypt)
}
