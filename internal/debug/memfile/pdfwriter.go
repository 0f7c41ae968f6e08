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

// Package memfile provides an in-memory [pdf.Writer] for use in tests,
// so that tests can build and read back small PDF object graphs without
// touching the filesystem.
package memfile

import (
	"bytes"

	"seehuhn.de/go/pdf"
)

// NewPDFWriter creates a [pdf.Writer] of the given version, backed by an
// in-memory buffer. The returned writer can be used to Put objects and,
// since [pdf.Writer.Get] serves already-buffered objects directly, to read
// them back again without ever calling Close -- and still works for
// reading after Close, since Close only serializes the buffered objects to
// the backing buffer and does not discard them.
func NewPDFWriter(v pdf.Version, opt *pdf.WriterOptions) (*pdf.Writer, error) {
	return pdf.NewWriter(&bytes.Buffer{}, v, opt)
}
