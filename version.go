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

// Version identifies a PDF version, e.g. as found in a file's header
// comment "%PDF-1.7" or a document catalog's /Version entry.
type Version int

const (
	V1_0 Version = iota
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

var versionStrings = []string{
	"1.0", "1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "2.0",
}

// ParseVersion parses a version string of the form "1.7" or "2.0".
func ParseVersion(s string) (Version, error) {
	for i, want := range versionStrings {
		if s == want {
			return Version(i), nil
		}
	}
	return 0, fmt.Errorf("cos: unsupported PDF version %q", s)
}

// ToString renders v as "1.7" or "2.0".
func (v Version) ToString() (string, error) {
	if v < 0 || int(v) >= len(versionStrings) {
		return "", fmt.Errorf("cos: invalid PDF version %d", int(v))
	}
	return versionStrings[v], nil
}

func (v Version) String() string {
	s, err := v.ToString()
	if err != nil {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return s
}

// HeaderVersion reads the "%PDF-M.N" comment at the start of the
// buffer and returns the version it declares.
func HeaderVersion(r *ByteReader) (Version, error) {
	match := r.FindSubarrayIndex([]byte("%PDF-"), Forward, false, Range(r.Min(), r.Max()))
	if match == nil {
		return 0, fmt.Errorf("cos: missing %%PDF- header")
	}
	end := r.FindIrregularIndex(Forward, match.End+1)
	if end < 0 {
		end = r.Max() + 1
	}
	raw := r.buf.Slice(match.End+1, end-1)
	return ParseVersion(string(raw))
}
