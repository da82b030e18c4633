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

import (
	"fmt"
	"strconv"
)

// InvalidInputError indicates that a byte buffer could not be used to
// construct a reader at all (an empty buffer), or that a required grammar
// element is missing at a position the caller asserted it must be present
// (e.g. the caller asked for dictionary bounds at a position that does not
// start with "<<").
type InvalidInputError struct {
	Err error
	Pos int
}

func (err *InvalidInputError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.Itoa(err.Pos) + ")"
	}
	return "invalid COS input" + middle + tail
}

func (err *InvalidInputError) Unwrap() error {
	return err.Err
}

// ParseFailureError indicates that a recognized keyword was missing, or a
// typed property could not be decoded. ParseDict logs it once and keeps
// the entries parsed so far; other functions, such as NewXrefTable, the
// Get* accessors and GetColorSpace, return it to their caller.
type ParseFailureError struct {
	Err   error
	Where string
}

func (err *ParseFailureError) Error() string {
	if err.Where != "" {
		return fmt.Sprintf("parse failure in %s: %s", err.Where, err.Err)
	}
	return fmt.Sprintf("parse failure: %s", err.Err)
}

func (err *ParseFailureError) Unwrap() error {
	return err.Err
}

// MissingReferenceError indicates that a resolver returned nil for an
// indirect reference. The affected map entry is dropped; sibling entries
// are unaffected. Callers that need strictness should post-validate rather
// than rely on this error being surfaced — per design, it usually is not.
type MissingReferenceError struct {
	Ref ObjectId
}

func (err *MissingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference %s", err.Ref)
}

// SerializationFailureError indicates that toBytes encountered an object
// that cannot be serialized at all, e.g. an XObject with no indirect
// reference of its own. Unlike parse failures, this is never swallowed: it
// aborts emission of the containing object.
type SerializationFailureError struct {
	Err   error
	Where string
}

func (err *SerializationFailureError) Error() string {
	if err.Where != "" {
		return fmt.Sprintf("cannot serialize %s: %s", err.Where, err.Err)
	}
	return fmt.Sprintf("serialization failure: %s", err.Err)
}

func (err *SerializationFailureError) Unwrap() error {
	return err.Err
}
