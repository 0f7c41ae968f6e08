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

import (
	"errors"
	"io"
)

// MetaInfo collects the information about a PDF file which is not itself
// a numbered object: the format version, the trailer dictionary, and
// convenient access to the catalog and information dictionary once they
// have been decoded.
type MetaInfo struct {
	Version Version
	Catalog *Catalog
	Info    *Info
	Trailer Dict

	// ID is the file identifier from the trailer dictionary (the /ID
	// entry), an array of up to two byte strings. The first entry is
	// constant across incremental updates, the second changes with every
	// save.
	ID [][]byte
}

// Filter represents one entry of a PDF stream's /Filter chain (or the
// implicit decryption "filter" applied before any of them).
//
// Info returns the Name and (optional) parameter Dict that must be
// recorded in the stream dictionary for this filter; Encode/Decode wrap a
// writer/reader to apply/undo the filter's transformation. The Version
// argument lets a filter adjust its behaviour for older readers (none of
// the filters implemented in this package currently need to).
type Filter interface {
	Info(Version) (Name, Dict, error)
	Encode(Version, io.WriteCloser) (io.WriteCloser, error)
	Decode(Version, io.Reader) (io.ReadCloser, error)
}

// appendFilter records that filter name/parms was applied to a stream,
// appending to any filters already present in dict.
func appendFilter(dict Dict, name Name, parms Dict) {
	if name == "" {
		return
	}

	switch existing := dict["Filter"].(type) {
	case nil:
		dict["Filter"] = name
		if parms != nil {
			dict["DecodeParms"] = parms
		}
	case Name:
		filters := Array{existing, name}
		dict["Filter"] = filters
		oldParms, _ := dict["DecodeParms"].(Dict)
		var p Object
		if oldParms != nil {
			p = oldParms
		} else {
			p = nil
		}
		parmsArray := Array{p, toObject(parms)}
		dict["DecodeParms"] = parmsArray
	case Array:
		dict["Filter"] = append(existing, name)
		parmsArray, _ := dict["DecodeParms"].(Array)
		for len(parmsArray) < len(existing) {
			parmsArray = append(parmsArray, nil)
		}
		parmsArray = append(parmsArray, toObject(parms))
		dict["DecodeParms"] = parmsArray
	}
}

func toObject(d Dict) Object {
	if d == nil {
		return nil
	}
	return d
}

// checkCompressed validates that refs and objects have matching length
// and that none of the objects are streams (streams cannot be stored in
// object streams, PDF 32000-1:2008 section 7.5.7).
func checkCompressed(refs []Reference, objects []Object) error {
	if len(refs) != len(objects) {
		return errors.New("checkCompressed: length mismatch between refs and objects")
	}
	for _, obj := range objects {
		if _, isStream := obj.(*Stream); isStream {
			return errors.New("checkCompressed: streams cannot be stored in object streams")
		}
	}
	return nil
}

// pdfDocEncoding maps byte values 0x18-0x1F and 0x80-0xFF of
// PDFDocEncoding (PDF 32000-1:2008, Annex D.2) to Unicode code points.
// Bytes not listed here, and all bytes below 0x18 and in 0x20-0x7E, map
// to themselves (PDFDocEncoding agrees with ASCII there; 0x7F and the
// remaining control codes are undefined and are rejected by PDFDocEncode).
var pdfDocEncoding = map[byte]rune{
	0x18: 0x02D8, 0x19: 0x02C7, 0x1A: 0x02C6, 0x1B: 0x02D9,
	0x1C: 0x02DD, 0x1D: 0x02DB, 0x1E: 0x02DA, 0x1F: 0x02DC,
	0x80: 0x2022, 0x81: 0x2020, 0x82: 0x2021, 0x83: 0x2026,
	0x84: 0x2014, 0x85: 0x2013, 0x86: 0x0192, 0x87: 0x2044,
	0x88: 0x2039, 0x89: 0x203A, 0x8A: 0x2212, 0x8B: 0x2030,
	0x8C: 0x201E, 0x8D: 0x201C, 0x8E: 0x201D, 0x8F: 0x2018,
	0x90: 0x2019, 0x91: 0x201A, 0x92: 0x2122, 0x93: 0xFB01,
	0x94: 0xFB02, 0x95: 0x0141, 0x96: 0x0152, 0x97: 0x0160,
	0x98: 0x0178, 0x99: 0x017D, 0x9A: 0x0131, 0x9B: 0x0142,
	0x9C: 0x0153, 0x9D: 0x0161, 0x9E: 0x017E, 0xA0: 0x20AC,
	// 0xA1-0xFF coincide with Unicode Latin-1 Supplement, used as-is.
}

var pdfDocDecoding map[rune]byte

func init() {
	pdfDocDecoding = make(map[rune]byte, len(pdfDocEncoding))
	for b, r := range pdfDocEncoding {
		pdfDocDecoding[r] = b
	}
}

// PDFDocDecode decodes a PDF string using PDFDocEncoding and returns the
// resulting Unicode text.
func PDFDocDecode(s String) string {
	runes := make([]rune, 0, len(s))
	for _, b := range s {
		if r, ok := pdfDocEncoding[b]; ok {
			runes = append(runes, r)
		} else if b == 0x7F || (b < 0x20 && b != 0x09 && b != 0x0A && b != 0x0D) {
			// undefined control code; keep as a private-use placeholder
			runes = append(runes, rune(0xFFFD))
		} else {
			runes = append(runes, rune(b))
		}
	}
	return string(runes)
}

// PDFDocEncode encodes s using PDFDocEncoding. It returns ok == false if s
// contains a character PDFDocEncoding cannot represent, in which case the
// caller should fall back to UTF-16BE (or UTF-8, if allowed).
func PDFDocEncode(s string) (String, bool) {
	out := make(String, 0, len(s))
	for _, r := range s {
		if r < 0x18 || (r >= 0x20 && r < 0x7F) || r == 0x09 || r == 0x0A || r == 0x0D {
			out = append(out, byte(r))
			continue
		}
		if b, ok := pdfDocDecoding[r]; ok {
			out = append(out, b)
			continue
		}
		if r >= 0xA1 && r <= 0xFF {
			out = append(out, byte(r))
			continue
		}
		return nil, false
	}
	return out, true
}
