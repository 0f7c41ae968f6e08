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

// Package page describes the attributes of a single page, independent of
// where the page sits in a document's page tree.
package page

import (
	"seehuhn.de/go/pdf"
)

// Rotation is the amount by which a page's rendering is rotated clockwise
// when displayed, relative to the orientation given by its MediaBox.
type Rotation int

const (
	// RotateInherit means the page does not specify a rotation of its own
	// and the effective value must come from an ancestor page tree node (or
	// defaults to Rotate0 if no ancestor specifies one either).
	RotateInherit Rotation = iota
	Rotate0
	Rotate90
	Rotate180
	Rotate270
)

// Degrees returns the clockwise rotation in degrees, taking RotateInherit to
// mean no rotation.
func (r Rotation) Degrees() int {
	switch r {
	case Rotate90:
		return 90
	case Rotate180:
		return 180
	case Rotate270:
		return 270
	default:
		return 0
	}
}

// RotationFromDegrees converts a /Rotate value read from a PDF file (which
// must be a multiple of 90, normalized to 0..270) into a Rotation.
func RotationFromDegrees(deg int) Rotation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 90:
		return Rotate90
	case 180:
		return Rotate180
	case 270:
		return Rotate270
	default:
		return Rotate0
	}
}

// Page holds the attributes of a single page that a page tree writer needs
// in order to place the page in the tree and, where possible, let it share
// an inherited attribute with its siblings.
//
// The zero value is not usable: MediaBox must be set, either directly or by
// relying on inheritance from the page tree (see [seehuhn.de/go/pdf/pagetree.Writer]).
type Page struct {
	// MediaBox is the page's boundary in default user space units. A nil
	// value means the page relies entirely on an inherited value.
	MediaBox *pdf.Rectangle

	// CropBox, if non-nil, restricts the visible/printable region of the
	// page. A nil value means no CropBox is written for this page (which,
	// in turn, may still inherit one from an ancestor).
	CropBox *pdf.Rectangle

	// Rotate is the clockwise rotation applied when displaying the page.
	// RotateInherit leaves the entry out of the page dictionary, letting an
	// ancestor's value (or the default of no rotation) take effect.
	Rotate Rotation

	// Resources holds the named resources (fonts, XObjects, color spaces,
	// ...) available to the page's content streams. A nil value means the
	// page relies entirely on an inherited resource dictionary.
	Resources *pdf.Resources

	// Contents lists the indirect references of the page's content
	// streams, in the order they are concatenated when interpreted.
	Contents []pdf.Reference

	// Label is an optional human-readable page label (e.g. "iv", "A-12"),
	// as established by a document's /PageLabels name tree. It has no
	// effect on the page dictionary written by the page tree writer; it is
	// carried here purely so that callers building a Page from a parsed
	// document can keep the label attached to the page it names.
	Label string

	// Extra holds additional entries to merge into the page dictionary,
	// such as /Annots or /UserUnit, that this package has no dedicated
	// field for.
	Extra pdf.Dict
}

// AsDict renders the page's own (non-inherited) attributes as a page
// dictionary fragment. Inheritable attributes which are unset on p (nil
// MediaBox/CropBox, RotateInherit, nil Resources) are omitted, so that a
// page tree writer can hoist a shared value to an ancestor node instead.
func (p *Page) AsDict() pdf.Dict {
	dict := pdf.Dict{
		"Type": pdf.Name("Page"),
	}
	for k, v := range p.Extra {
		dict[k] = v
	}

	if p.MediaBox != nil {
		dict["MediaBox"] = p.MediaBox.AsPDF(0)
	}
	if p.CropBox != nil {
		dict["CropBox"] = p.CropBox.AsPDF(0)
	}
	if p.Rotate != RotateInherit {
		dict["Rotate"] = pdf.Integer(p.Rotate.Degrees())
	}
	if p.Resources != nil {
		dict["Resources"] = p.Resources.AsDict()
	}
	if len(p.Contents) == 1 {
		dict["Contents"] = p.Contents[0]
	} else if len(p.Contents) > 1 {
		arr := make(pdf.Array, len(p.Contents))
		for i, ref := range p.Contents {
			arr[i] = ref
		}
		dict["Contents"] = arr
	}

	return dict
}
