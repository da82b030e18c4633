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

// PdfObject is the tagged variant common to every COS value: Null, Bool,
// Number, Name, StringLit, HexStr, Array, *PdfDict, *PdfStream and
// Reference.
type PdfObject interface {
	isPdfObject()
}

// Null is the COS "null" value.
type Null struct{}

func (Null) isPdfObject() {}

// Bool is a COS boolean.
type Bool bool

func (Bool) isPdfObject() {}

// Number is a COS numeric value. The grammar has only one numeric kind;
// it is always represented as a 64-bit float here.
type Number float64

func (Number) isPdfObject() {}

// Name is a COS name, without the leading "/".
type Name string

func (Name) isPdfObject() {}

// StringLit is a COS literal string, "(...)", with escapes already
// resolved to the raw bytes they represent.
type StringLit []byte

func (StringLit) isPdfObject() {}

// HexStr is a COS hex string, "<...>", decoded to the raw bytes it
// represents.
type HexStr []byte

func (HexStr) isPdfObject() {}

// Array is a COS array.
type Array []PdfObject

func (Array) isPdfObject() {}

// ObjectId identifies an indirect object by object number and
// generation number.
type ObjectId struct {
	ID  uint32
	Gen uint16
}

// String renders the object id as the reference token "<id> <gen> R".
func (id ObjectId) String() string {
	return fmt.Sprintf("%d %d R", id.ID, id.Gen)
}

// Reference is a COS indirect reference, "<id> <gen> R".
type Reference ObjectId

func (Reference) isPdfObject() {}

// String renders the reference as "<id> <gen> R".
func (ref Reference) String() string {
	return ObjectId(ref).String()
}

// ParseInfo is what a Resolver hands back for a successfully located
// indirect object: a reader positioned over the whole file, the byte
// bounds of the object's content, the resolver itself (so nested
// references inside the object can be followed), and the crypto hook in
// effect for this document, if any.
type ParseInfo struct {
	Reader    *ByteReader
	Bounds    Bounds
	Resolve   Resolver
	CryptInfo CryptInfo
}

// Resolver maps an object number to the location of its definition.
// Resolve returns nil for a dangling reference; the caller drops the
// affected entry rather than failing outright (spec §6).
type Resolver interface {
	Resolve(id uint32) *ParseInfo
}

// parseObjectAt turns parser state located at an indirect object's
// content bounds into a PdfObject. The concrete dispatch (dict vs
// stream vs array vs leaf) lives in parse.go, which assigns
// parseIndirectObject to this hook.
var parseObjectAt func(info *ParseInfo) (PdfObject, error)

const maxRefDepth = 16

// Resolve follows obj if it is a Reference, repeating until a
// non-reference value is reached or the resolver returns nil for a
// dangling reference. Non-reference values are returned unchanged.
func Resolve(r Resolver, obj PdfObject) (PdfObject, error) {
	return resolveChain(r, obj, 0)
}

func resolveChain(r Resolver, obj PdfObject, depth int) (PdfObject, error) {
	if obj == nil {
		return nil, nil
	}
	ref, isRef := obj.(Reference)
	if !isRef {
		return obj, nil
	}
	if depth >= maxRefDepth {
		return nil, &ParseFailureError{
			Err:   fmt.Errorf("too many levels of indirection resolving %s", ref),
			Where: "Resolve",
		}
	}
	if r == nil {
		return nil, &MissingReferenceError{Ref: ObjectId(ref)}
	}
	info := r.Resolve(ref.ID)
	if info == nil {
		return nil, &MissingReferenceError{Ref: ObjectId(ref)}
	}
	val, err := parseObjectAt(info)
	if err != nil {
		return nil, err
	}
	return resolveChain(r, val, depth+1)
}

func resolveAndCast[T PdfObject](r Resolver, obj PdfObject) (x T, err error) {
	resolved, err := Resolve(r, obj)
	if err != nil {
		return x, err
	}
	if resolved == nil {
		return x, nil
	}
	x, isCorrectType := resolved.(T)
	if isCorrectType {
		return x, nil
	}
	return x, &ParseFailureError{
		Err: fmt.Errorf("expected %T but got %T", x, resolved),
	}
}

// Helper functions for getting objects of a specific type. Each resolves
// obj first; a null object yields a zero value without error; a value of
// the wrong type yields a ParseFailureError.
var (
	GetArray     = resolveAndCast[Array]
	GetBool      = resolveAndCast[Bool]
	GetDict      = resolveAndCast[*PdfDict]
	GetName      = resolveAndCast[Name]
	GetNumberObj = resolveAndCast[Number]
	GetStream    = resolveAndCast[*PdfStream]
	GetStringLit = resolveAndCast[StringLit]
	GetHexStr    = resolveAndCast[HexStr]
)

// GetNumber resolves obj and returns its float64 value. A null object
// returns 0, nil.
func GetNumber(r Resolver, obj PdfObject) (float64, error) {
	n, err := GetNumberObj(r, obj)
	return float64(n), err
}

// GetFloatArray resolves obj as an Array and converts every element with
// GetNumber. A null object returns nil, nil.
func GetFloatArray(r Resolver, obj PdfObject) ([]float64, error) {
	arr, err := GetArray(r, obj)
	if err != nil || arr == nil {
		return nil, err
	}
	out := make([]float64, len(arr))
	for i, item := range arr {
		v, err := GetNumber(r, item)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
