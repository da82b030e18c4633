// Copyright 2020 Jochen Voss <voss@seehuhn.de>
//
// Some code here, e.g. the pngUpReader, is taken from
// https://pkg.go.dev/rsc.io/pdf .  Use of this source code is governed by a
// BSD-style license, which is reproduced here:
//
//     Copyright (c) 2009 The Go Authors. All rights reserved.
//
//     Redistribution and use in source and binary forms, with or without
//     modification, are permitted provided that the following conditions are
//     met:
//
//        * Redistributions of source code must retain the above copyright
//     notice, this list of conditions and the following disclaimer.
//        * Redistributions in binary form must reproduce the above
//     copyright notice, this list of conditions and the following disclaimer
//     in the documentation and/or other materials provided with the
//     distribution.
//        * Neither the name of Google Inc. nor the names of its
//     contributors may be used to endorse or promote products derived from
//     this software without specific prior written permission.
//
//     THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
//     "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
//     LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
//     A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
//     OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
//     SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
//     LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
//     DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
//     THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
//     (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
//     OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package cos

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/image/ccitt"

	"github.com/inkpdf/cos/ascii85"
)

// filter is one element of a stream's filter chain.
type filter interface {
	Decode(r io.Reader) (io.Reader, error)
	Encode(w io.WriteCloser) (io.WriteCloser, error)
}

// FilterDescriptor is one entry of a stream's /Filter, /DecodeParms
// pair.
type FilterDescriptor struct {
	Name  Name
	Parms *PdfDict
}

func (fd FilterDescriptor) makeFilter() (filter, error) {
	switch fd.Name {
	case "FlateDecode", "Fl":
		return ffFromDict(fd.Parms), nil
	case "ASCII85Decode", "A85":
		return ascii85Filter{}, nil
	case "CCITTFaxDecode", "CCF":
		return ccittFromDict(fd.Parms), nil
	case "Crypt":
		return cryptMarkerFilter{}, nil
	default:
		return nil, fmt.Errorf("unsupported filter type %q", fd.Name)
	}
}

// decodeChain runs payload through every filter in chain, in order.
func decodeChain(payload []byte, chain []FilterDescriptor) ([]byte, error) {
	var r io.Reader = bytes.NewReader(payload)
	for _, fd := range chain {
		f, err := fd.makeFilter()
		if err != nil {
			return nil, err
		}
		r, err = f.Decode(r)
		if err != nil {
			return nil, err
		}
	}
	return io.ReadAll(r)
}

type flateFilter struct {
	Predictor        int
	Colors           int
	BitsPerComponent int
	Columns          int
	EarlyChange      bool
}

func ffFromDict(parms *PdfDict) *flateFilter {
	res := &flateFilter{
		Predictor:        1,
		Colors:           1,
		BitsPerComponent: 8,
		Columns:          1,
		EarlyChange:      true,
	}
	if parms == nil {
		return res
	}
	if v, ok := parms.Get("Predictor"); ok {
		if n, ok := v.(Number); ok && n >= 1 && n <= 15 {
			res.Predictor = int(n)
		}
	}
	if v, ok := parms.Get("Colors"); ok {
		if n, ok := v.(Number); ok && n >= 1 {
			res.Colors = int(n)
		}
	}
	if v, ok := parms.Get("BitsPerComponent"); ok {
		if n, ok := v.(Number); ok &&
			(n == 1 || n == 2 || n == 4 || n == 8 || n == 16) {
			res.BitsPerComponent = int(n)
		}
	}
	if v, ok := parms.Get("Columns"); ok {
		if n, ok := v.(Number); ok && n >= 0 {
			res.Columns = int(n)
		}
	}
	if v, ok := parms.Get("EarlyChange"); ok {
		if n, ok := v.(Number); ok {
			res.EarlyChange = n != 0
		}
	}
	return res
}

func (ff *flateFilter) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	zw := zlib.NewWriter(w)

	closeFn := func() error {
		if err := zw.Close(); err != nil {
			return err
		}
		return w.Close()
	}

	switch ff.Predictor {
	case 1:
		return &withClose{zw, closeFn}, nil
	case 12:
		columns := ff.Columns
		return &pngUpWriter{
			w:     zw,
			prev:  make([]byte, columns),
			cur:   make([]byte, columns+1),
			close: closeFn,
		}, nil
	default:
		return nil, errors.New("unsupported predictor " + strconv.Itoa(ff.Predictor))
	}
}

func (ff *flateFilter) Decode(r io.Reader) (io.Reader, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	var res io.Reader = zr
	switch ff.Predictor {
	case 1:
		// pass
	case 12:
		columns := ff.Columns
		res = &pngUpReader{
			r:    res,
			prev: make([]byte, 1+columns),
			tmp:  make([]byte, 1+columns),
			pend: []byte{},
		}
	default:
		return nil, errors.New("unsupported predictor " + strconv.Itoa(ff.Predictor))
	}
	return res, nil
}

type pngUpReader struct {
	r    io.Reader
	prev []byte
	tmp  []byte
	pend []byte
}

func (r *pngUpReader) Read(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		if len(r.pend) > 0 {
			m := copy(b, r.pend)
			n += m
			b = b[m:]
			r.pend = r.pend[m:]
			continue
		}
		_, err := io.ReadFull(r.r, r.tmp)
		if err != nil {
			return n, err
		}
		if r.tmp[0] != 2 {
			return n, fmt.Errorf("malformed PNG-Up encoding")
		}
		for i, b := range r.tmp {
			r.prev[i] += b
		}
		r.pend = r.prev[1:]
	}
	return n, nil
}

type pngUpWriter struct {
	w     io.Writer
	prev  []byte // length col
	cur   []byte // length col+1
	pos   int
	close func() error
}

func (w *pngUpWriter) Write(p []byte) (int, error) {
	tmp := w.cur[1:]
	n := 0
	for len(p) > 0 {
		l := copy(tmp[w.pos:], p)
		p = p[l:]
		w.pos += l
		n += l
		if w.pos >= len(tmp) {
			w.cur[0] = 2
			for i := 0; i < w.pos; i++ {
				tmp[i], w.prev[i] = tmp[i]-w.prev[i], tmp[i]
			}
			_, err := w.w.Write(w.cur)
			if err != nil {
				return n, err
			}
			w.pos = 0
		}
	}
	return n, nil
}

func (w *pngUpWriter) Close() error {
	if w.close != nil {
		return w.close()
	}
	return nil
}

type withClose struct {
	io.Writer
	close func() error
}

func (w *withClose) Close() error {
	return w.close()
}

// ascii85Filter wraps the ascii85 subpackage into the filter interface.
type ascii85Filter struct{}

func (ascii85Filter) Decode(r io.Reader) (io.Reader, error) {
	return ascii85.Decode(r)
}

func (ascii85Filter) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return ascii85.Encode(w, 72)
}

// ccittFilter decodes CCITT Group 3/4 fax-encoded image data.
type ccittFilter struct {
	Columns          int
	Rows             int
	K                int
	BlackIs1         bool
	EncodedByteAlign bool
}

func ccittFromDict(parms *PdfDict) *ccittFilter {
	res := &ccittFilter{Columns: 1728, K: 0}
	if parms == nil {
		return res
	}
	if v, ok := parms.Get("Columns"); ok {
		if n, ok := v.(Number); ok {
			res.Columns = int(n)
		}
	}
	if v, ok := parms.Get("Rows"); ok {
		if n, ok := v.(Number); ok {
			res.Rows = int(n)
		}
	}
	if v, ok := parms.Get("K"); ok {
		if n, ok := v.(Number); ok {
			res.K = int(n)
		}
	}
	if v, ok := parms.Get("BlackIs1"); ok {
		if b, ok := v.(Bool); ok {
			res.BlackIs1 = bool(b)
		}
	}
	if v, ok := parms.Get("EncodedByteAlign"); ok {
		if b, ok := v.(Bool); ok {
			res.EncodedByteAlign = bool(b)
		}
	}
	return res
}

func (cf *ccittFilter) Decode(r io.Reader) (io.Reader, error) {
	mode := ccitt.Group4
	if cf.K >= 0 {
		mode = ccitt.Group3
	}
	height := cf.Rows
	if height <= 0 {
		height = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{
		Invert: cf.BlackIs1,
		Align:  cf.EncodedByteAlign,
	}
	return ccitt.NewReader(r, ccitt.MSB, mode, cf.Columns, height, opts), nil
}

func (cf *ccittFilter) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return nil, errors.New("CCITTFaxDecode encoding is not supported")
}

// cryptMarkerFilter is a pass-through placeholder for the /Crypt filter:
// it returns its input unchanged and does not consult any CryptInfo, and
// nothing else in the decode path decrypts the bytes either.
type cryptMarkerFilter struct{}

func (cryptMarkerFilter) Decode(r io.Reader) (io.Reader, error) { return r, nil }

func (cryptMarkerFilter) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return withoutClose{w}, nil
}

type withoutClose struct {
	io.Writer
}

func (withoutClose) Close() error { return nil }
