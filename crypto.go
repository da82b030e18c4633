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

// CryptInfo is the opaque per-document credential passed through every
// toBytes call. The core never interprets it or derives a key from a
// password; it only asks it to transform bytes belonging to a given
// indirect object, per spec §6. Key derivation (password normalization,
// RC4/AES setup) is a host-facade concern, out of scope for the core.
type CryptInfo interface {
	// Encrypt transforms plaintext bytes belonging to the object (id,
	// gen) into their on-disk form.
	Encrypt(id ObjectId, plain []byte) ([]byte, error)

	// Decrypt reverses Encrypt.
	Decrypt(id ObjectId, encrypted []byte) ([]byte, error)
}

// PlainCryptInfo is the no-op CryptInfo used for documents without an
// /Encrypt entry: both directions are the identity.
type PlainCryptInfo struct{}

// Encrypt returns plain unchanged.
func (PlainCryptInfo) Encrypt(id ObjectId, plain []byte) ([]byte, error) {
	return plain, nil
}

// Decrypt returns encrypted unchanged.
func (PlainCryptInfo) Decrypt(id ObjectId, encrypted []byte) ([]byte, error) {
	return encrypted, nil
}
