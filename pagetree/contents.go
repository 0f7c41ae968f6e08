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

package pagetree

import (
	"bytes"
	"io"

	"seehuhn.de/go/pdf"
)

// ContentStream returns a reader for the (possibly concatenated) content
// stream of the page dictionary found at pageRef. As required by PDF
// 32000-1:2008, section 7.8.2, when /Contents is an array the decoded
// bytes of each entry are joined with a newline, so that a token is never
// accidentally formed by gluing together the tail of one stream and the
// head of the next.
//
// A missing or empty /Contents entry yields an empty, valid reader rather
// than an error.
func ContentStream(r pdf.Getter, pageRef pdf.Reference) (io.Reader, error) {
	pageDict, err := pdf.GetDict(r, pageRef)
	if err != nil {
		return nil, err
	}

	contents, err := pdf.Resolve(r, pageDict["Contents"])
	if err != nil {
		return nil, err
	}

	switch contents := contents.(type) {
	case nil:
		return bytes.NewReader(nil), nil

	case *pdf.Stream:
		return pdf.DecodeStream(r, contents, 0)

	case pdf.Array:
		var buf bytes.Buffer
		for i, entry := range contents {
			stm, err := pdf.GetStream(r, entry)
			if err != nil {
				return nil, err
			}
			if stm == nil {
				continue
			}
			dec, err := pdf.DecodeStream(r, stm, 0)
			if err != nil {
				return nil, err
			}
			if i > 0 && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			if _, err := io.Copy(&buf, dec); err != nil {
				return nil, err
			}
		}
		return &buf, nil

	default:
		return bytes.NewReader(nil), nil
	}
}
