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

package pdf

import "fmt"

// Version represents a version of the PDF file format standard.
type Version int

// The known PDF versions, in increasing order.
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

	// tooHighVersion is one past the last valid [Version] value, used by
	// the struct codec to recognise out-of-range version numbers.
	tooHighVersion
)

var versionStrings = [...]string{
	V1_0: "1.0",
	V1_1: "1.1",
	V1_2: "1.2",
	V1_3: "1.3",
	V1_4: "1.4",
	V1_5: "1.5",
	V1_6: "1.6",
	V1_7: "1.7",
	V2_0: "2.0",
}

// ParseVersion parses a PDF version string of the form "1.7" or "2.0".
func ParseVersion(s string) (Version, error) {
	for v, vs := range versionStrings {
		if vs == s {
			return Version(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errVersion, s)
}

func (ver Version) String() string {
	if ver < 0 || int(ver) >= len(versionStrings) {
		return fmt.Sprintf("invalid version %d", int(ver))
	}
	return versionStrings[ver]
}

// header is the byte sequence found at the start of every PDF file, before
// the version number.
const headerPrefix = "%PDF-"
