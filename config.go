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

// defaultCacheCapacity bounds how many resolved objects an XrefTable
// keeps around before evicting the least recently used one.
const defaultCacheCapacity = 256

// ParserOptions configures how a ByteReader is turned into an
// XrefTable: how many resolved objects to cache, which logger receives
// swallowed parse failures, and which CryptInfo is attached to every
// ParseInfo the table hands out (nil means PlainCryptInfo{}).
type ParserOptions struct {
	// CacheCapacity is the number of resolved objects the object cache
	// retains. Zero selects defaultCacheCapacity; a negative value
	// disables caching entirely.
	CacheCapacity int

	// Logger receives one line per swallowed parse failure. Nil
	// selects the package default logger.
	Logger Logger

	// Crypt is stored in the CryptInfo field of each ParseInfo the
	// XrefTable returns. Nil means PlainCryptInfo{}. Parsing does not
	// call Decrypt: stream payloads are kept as they appear in the file.
	Crypt CryptInfo

	// Strict is carried in the options but no parsing path reads it:
	// the lenient recovery paths (such as a /Length mismatch falling
	// back to a literal "endstream" search) are always taken.
	Strict bool
}

func (o ParserOptions) cacheCapacity() int {
	switch {
	case o.CacheCapacity < 0:
		return 0
	case o.CacheCapacity == 0:
		return defaultCacheCapacity
	default:
		return o.CacheCapacity
	}
}

func (o ParserOptions) logger() Logger {
	if o.Logger == nil {
		return defaultLogger
	}
	return o.Logger
}

func (o ParserOptions) crypt() CryptInfo {
	if o.Crypt == nil {
		return PlainCryptInfo{}
	}
	return o.Crypt
}
