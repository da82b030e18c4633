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
	"context"
	"testing"
)

func TestNewXObjectForm(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Subtype", Name("Form"))
	dict.Set("BBox", Array{Number(0), Number(0), Number(100), Number(200)})
	stream := NewPdfStream(dict, nil, nil)

	obj, err := newXObject(nil, stream)
	if err != nil {
		t.Fatal(err)
	}
	form, ok := obj.(*XFormStream)
	if !ok {
		t.Fatalf("got %T, want *XFormStream", obj)
	}
	if form.BBox.URy != 200 {
		t.Errorf("BBox.URy = %v, want 200", form.BBox.URy)
	}
	if obj.stream() != stream {
		t.Error("stream() should return the wrapped PdfStream")
	}
}

func TestNewXObjectImage(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Subtype", Name("Image"))
	dict.Set("Width", Number(4))
	dict.Set("Height", Number(2))
	stream := NewPdfStream(dict, []byte{1, 2, 3, 4, 5, 6, 7, 8}, nil)

	obj, err := newXObject(nil, stream)
	if err != nil {
		t.Fatal(err)
	}
	img, ok := obj.(*ImageStream)
	if !ok {
		t.Fatalf("got %T, want *ImageStream", obj)
	}
	if img.Width != 4 || img.Height != 2 {
		t.Errorf("dims = %dx%d, want 4x2", img.Width, img.Height)
	}
}

func TestNewXObjectUnrecognizedSubtypeDefaultsToImage(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Subtype", Name("Bogus"))
	dict.Set("Width", Number(1))
	dict.Set("Height", Number(1))
	stream := NewPdfStream(dict, nil, nil)

	obj, err := newXObject(nil, stream)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := obj.(*ImageStream); !ok {
		t.Errorf("got %T, want *ImageStream", obj)
	}
}

func TestNewXObjectMissingSubtypeDefaultsToImage(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Width", Number(1))
	dict.Set("Height", Number(1))
	stream := NewPdfStream(dict, nil, nil)

	obj, err := newXObject(nil, stream)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := obj.(*ImageStream); !ok {
		t.Errorf("got %T, want *ImageStream", obj)
	}
}

func TestImageStreamAsyncDecodeRawGray(t *testing.T) {
	dict := NewPdfDict()
	dict.Set("Subtype", Name("Image"))
	stream := NewPdfStream(dict, []byte{10, 20, 30, 40}, nil)
	img := &ImageStream{PdfStream: stream, Width: 2, Height: 2}

	decoded, err := img.AsyncDecode(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b := decoded.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("decoded bounds = %v, want 2x2", b)
	}
}

func TestImageStreamAsyncDecodeRespectsCancellation(t *testing.T) {
	dict := NewPdfDict()
	stream := NewPdfStream(dict, []byte{1, 2, 3, 4}, nil)
	img := &ImageStream{PdfStream: stream, Width: 2, Height: 2}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := img.AsyncDecode(ctx); err == nil {
		t.Error("expected AsyncDecode to report the cancelled context")
	}
}

func TestImageStreamAsyncDecodeTooShort(t *testing.T) {
	dict := NewPdfDict()
	stream := NewPdfStream(dict, []byte{1}, nil)
	img := &ImageStream{PdfStream: stream, Width: 10, Height: 10}

	if _, err := img.AsyncDecode(context.Background()); err == nil {
		t.Error("expected an error for undersized image data")
	}
}
