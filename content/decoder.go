// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package content

import (
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
)

// textDecoder turns the byte strings passed to "Tj"/"TJ"/"'"/"\"" into a
// sequence of glyphs, using the font referenced by a page's /Font resource
// entry.
type textDecoder struct {
	scanner  font.Scanner
	vertical bool
}

// MakeTextDecoder builds a decoder for the font stored at obj (usually an
// indirect reference taken from a page's /Font resource dictionary),
// dispatching on the font's /Subtype via [font.Read] and
// [font.FromFile.GetScanner].
func MakeTextDecoder(r pdf.Getter, obj pdf.Object) (*textDecoder, error) {
	fromFile, err := font.Read(r, obj)
	if err != nil {
		return nil, err
	}
	scanner, err := fromFile.GetScanner()
	if err != nil {
		return nil, err
	}
	return &textDecoder{
		scanner:  scanner,
		vertical: scanner.WritingMode() == font.Vertical,
	}, nil
}

// Decode iterates over the character codes in s, returning one GlyphInfo
// per decoded code (not per byte: multi-byte codes, as used by composite
// fonts, decode to a single GlyphInfo).
func (d *textDecoder) Decode(s pdf.String) []GlyphInfo {
	var out []GlyphInfo
	for code := range d.scanner.Codes(s) {
		out = append(out, GlyphInfo{
			CID:            code.CID,
			Text:           code.Text,
			Width:          code.Width,
			UseWordSpacing: code.UseWordSpacing,
		})
	}
	return out
}
