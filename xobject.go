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
	"context"
	"fmt"
	"image"
	_ "image/jpeg"

	"seehuhn.de/go/geom/matrix"
)

// GraphicsStateDict is the typed view of an /ExtGState resource entry.
// None of its individual parameters are interpreted here; the raw dict
// is exposed for callers that need them.
type GraphicsStateDict struct {
	*PdfDict
}

// XObject is satisfied by both XFormStream and ImageStream: the two
// subtypes a /Subtype entry in an XObject stream's dict can name.
type XObject interface {
	stream() *PdfStream
}

// XFormStream is a form XObject: a self-contained content stream with
// its own coordinate system (/Matrix) and clip boundary (/BBox).
type XFormStream struct {
	*PdfStream

	BBox   *Rectangle
	Matrix matrix.Matrix
}

func (f *XFormStream) stream() *PdfStream { return f.PdfStream }

// ImageStream is an image XObject. Decoding the sample data into an
// image.Image is deferred to AsyncDecode, since it can be expensive
// for large images and a caller may only need the dictionary metadata
// (/Width, /Height, /ColorSpace) to lay out a page.
type ImageStream struct {
	*PdfStream

	Width  int
	Height int
}

func (im *ImageStream) stream() *PdfStream { return im.PdfStream }

// AsyncDecode decodes the image's sample data into an image.Image.
// When the stream's filter chain ends in DCTDecode (or any other
// filter the standard image library recognizes by its magic bytes),
// the registered image.Decode codec is used; otherwise the raw decoded
// samples are interpreted as packed DeviceGray or DeviceRGB, matching
// the two color spaces this reader resolves without a full color
// management layer. The context is checked once before decoding so a
// caller can cancel a queued batch of image loads without blocking on
// one that has not started yet.
func (im *ImageStream) AsyncDecode(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// A trailing DCTDecode is left to image.Decode below.
	chain := im.Filters
	if n := len(chain); n > 0 && (chain[n-1].Name == "DCTDecode" || chain[n-1].Name == "DCT") {
		chain = chain[:n-1]
	}
	data, err := decodeChain(im.Payload, chain)
	if err != nil {
		return nil, err
	}

	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	switch {
	case len(data) >= im.Width*im.Height*3:
		rgba := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
		for i := 0; i < im.Width*im.Height; i++ {
			rgba.Pix[i*4+0] = data[i*3+0]
			rgba.Pix[i*4+1] = data[i*3+1]
			rgba.Pix[i*4+2] = data[i*3+2]
			rgba.Pix[i*4+3] = 255
		}
		return rgba, nil
	case len(data) >= im.Width*im.Height:
		gray := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
		copy(gray.Pix, data)
		return gray, nil
	default:
		return nil, &ParseFailureError{
			Err:   fmt.Errorf("image data too short: got %d bytes, want at least %d", len(data), im.Width*im.Height),
			Where: "ImageStream.AsyncDecode",
		}
	}
}

// newXObject discriminates a resolved XObject stream into a form or an
// image by searching the dict's own byte range for a closed match of
// "/Subtype /Form". A hit builds an XFormStream; anything else,
// including a missing or unrecognized /Subtype, builds an ImageStream.
func newXObject(r Resolver, stream *PdfStream) (XObject, error) {
	if isFormSubtype(stream.PdfDict) {
		bbox, err := GetRectangle(r, mustGet(stream.PdfDict, "BBox"))
		if err != nil {
			bbox = &Rectangle{}
		}
		m, err := GetMatrix(r, mustGet(stream.PdfDict, "Matrix"))
		if err != nil {
			m = matrix.Identity
		}
		return &XFormStream{PdfStream: stream, BBox: bbox, Matrix: m}, nil
	}

	width, _ := GetNumber(r, mustGet(stream.PdfDict, "Width"))
	height, _ := GetNumber(r, mustGet(stream.PdfDict, "Height"))
	return &ImageStream{PdfStream: stream, Width: int(width), Height: int(height)}, nil
}

// isFormSubtype renders d back to its COS byte form and searches it for
// a closed match of "/Subtype /Form", per the spec's substring-based
// form/image discrimination rule.
func isFormSubtype(d *PdfDict) bool {
	data, err := serializeDict(d, nil)
	if err != nil {
		return false
	}
	rd, err := NewByteReader(NewByteBuffer(data))
	if err != nil {
		return false
	}
	return rd.FindSubarrayIndex([]byte("/Subtype /Form"), Forward, true) != nil
}

func mustGet(d *PdfDict, key Name) PdfObject {
	v, _ := d.Get(key)
	return v
}
