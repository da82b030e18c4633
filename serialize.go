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
	"fmt"
	"strconv"
)

// toBytes renders obj as the COS byte sequence that parseValueAt would
// read back into an equal value (modulo whitespace and number
// canonicalization, per the serialization contract).
func toBytes(obj PdfObject, crypt CryptInfo) ([]byte, error) {
	switch v := obj.(type) {
	case nil, Null:
		return []byte("null"), nil
	case Bool:
		if v {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Number:
		return []byte(formatNumber(float64(v))), nil
	case Name:
		return append([]byte("/"), []byte(v)...), nil
	case StringLit:
		return encodeStringLiteral(v), nil
	case HexStr:
		return encodeHexString(v), nil
	case Reference:
		return []byte(v.String()), nil
	case Array:
		return serializeArray(v, crypt)
	case *PdfDict:
		return serializeDict(v, crypt)
	case *PdfStream:
		return serializeStream(v, crypt)
	default:
		return nil, &SerializationFailureError{Err: fmt.Errorf("unsupported type %T", obj), Where: "toBytes"}
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func serializeArray(a Array, crypt CryptInfo) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range a {
		if i > 0 {
			buf.WriteByte(' ')
		}
		b, err := toBytes(item, crypt)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// serializeDict emits "<<", then every populated entry in insertion
// order, then ">>".
func serializeDict(d *PdfDict, crypt CryptInfo) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<<")
	for _, key := range d.Keys() {
		val, _ := d.Get(key)
		buf.WriteString(" /")
		buf.WriteString(string(key))
		buf.WriteByte(' ')
		b, err := toBytes(val, crypt)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteString(" >>")
	return buf.Bytes(), nil
}

// serializeStream emits the dict, then "stream\n", the stored (still
// filtered) payload, then "\nendstream". If the stream has a reference,
// id/gen-keyed encryption is applied via crypt before emission.
func serializeStream(s *PdfStream, crypt CryptInfo) ([]byte, error) {
	dictBytes, err := serializeDict(s.PdfDict, crypt)
	if err != nil {
		return nil, err
	}

	payload := s.Payload
	if crypt != nil {
		if ref, ok := s.Ref(); ok {
			payload, err = crypt.Encrypt(ref, payload)
			if err != nil {
				return nil, &SerializationFailureError{Err: err, Where: "serializeStream"}
			}
		}
	}

	var buf bytes.Buffer
	buf.Write(dictBytes)
	buf.WriteString("\nstream\n")
	buf.Write(payload)
	buf.WriteString("\nendstream")
	return buf.Bytes(), nil
}

func encodeStringLiteral(s StringLit) []byte {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for _, b := range s {
		switch b {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case '\n':
			buf.WriteString("\\n")
		case '\r':
			buf.WriteString("\\r")
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte(')')
	return buf.Bytes()
}

func encodeHexString(h HexStr) []byte {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, 2*len(h)+2)
	out = append(out, '<')
	for _, b := range h {
		out = append(out, digits[b>>4], digits[b&0x0f])
	}
	out = append(out, '>')
	return out
}
