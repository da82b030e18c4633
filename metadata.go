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
	"bytes"

	"seehuhn.de/go/xmp"
)

// GetMetadata resolves a /Metadata entry (found on the document
// catalog, a page dict, or an XObject stream dict) into a parsed XMP
// packet. It returns nil, nil if obj is absent, matching the
// convention every other optional-entry accessor in this package
// follows: a missing metadata stream is not an error.
func GetMetadata(r Resolver, obj PdfObject) (*xmp.Packet, error) {
	if obj == nil {
		return nil, nil
	}
	stream, err := resolveChildStream(r, obj)
	if err != nil || stream == nil {
		return nil, err
	}

	subtype, _ := mustGet(stream.PdfDict, "Subtype").(Name)
	if subtype != "" && subtype != "XML" {
		return nil, &InvalidInputError{Err: errUnsupportedMetadataSubtype(subtype)}
	}

	body, err := stream.Decode()
	if err != nil {
		return nil, err
	}

	return xmp.Read(bytes.NewReader(body))
}

type errUnsupportedMetadataSubtype Name

func (e errUnsupportedMetadataSubtype) Error() string {
	return "unsupported /Metadata /Subtype /" + string(e)
}
