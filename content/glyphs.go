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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdf"
)

// buildGlyphs walks t.Args, decoding any byte string with t.decoder and
// treating any number as a TJ displacement, advancing a text-space cursor
// that starts at t.StartTm exactly as described in PDF 32000-1:2008,
// section 9.4.3. It returns the resulting glyphs and the text matrix in
// effect once the whole operator has been processed.
func buildGlyphs(t *TextObject) ([]*GlyphObject, matrix.Matrix) {
	gs := t.GState
	tm := t.StartTm
	if tm == (matrix.Matrix{}) {
		tm = matrix.Identity
	}

	var glyphs []*GlyphObject
	for _, arg := range t.Args {
		switch v := arg.(type) {
		case pdf.String:
			if t.decoder == nil {
				continue
			}
			for _, info := range t.decoder.Decode(v) {
				g, next := showGlyph(gs, tm, info, t.decoder.vertical)
				g.Common = t.Common
				glyphs = append(glyphs, g)
				tm = next
			}

		case pdf.Real:
			tm = applyTJAdjustment(gs, tm, float64(v), t.decoder != nil && t.decoder.vertical)
		case pdf.Integer:
			tm = applyTJAdjustment(gs, tm, float64(v), t.decoder != nil && t.decoder.vertical)
		}
	}

	return glyphs, tm
}

// showGlyph positions a single decoded glyph at the current text-space
// cursor tm and returns the updated cursor, advanced by the glyph's width
// plus character/word spacing, scaled by the horizontal scaling factor.
func showGlyph(gs *GraphicsState, tm matrix.Matrix, info GlyphInfo, vertical bool) (*GlyphObject, matrix.Matrix) {
	fs := gs.FontSize
	th := gs.HorizScaling
	if th == 0 {
		th = 1
	}

	spacing := gs.CharSpacing
	if info.UseWordSpacing {
		spacing += gs.WordSpacing
	}

	trm := matrix.Matrix{fs * th, 0, 0, fs, 0, gs.Rise}.Mul(tm).Mul(gs.CTM)

	g := &GlyphObject{
		CID:    info.CID,
		Text:   info.Text,
		TRM:    trm,
		Origin: vec.Vec2{X: tm[4], Y: tm[5]},
	}

	w0 := info.Width / 1000
	var tx, ty float64
	if vertical {
		g.VAdvance = -(w0*fs + spacing)
		ty = g.VAdvance
	} else {
		g.Advance = (w0*fs + spacing) * th
		tx = g.Advance
	}

	next := matrix.Translate(tx, ty).Mul(tm)
	return g, next
}

// applyTJAdjustment applies a numeric element of a TJ array: the value is
// expressed in thousandths of a unit of text space, and moves the next
// glyph towards the start of the line (i.e. a positive number subtracts
// from the horizontal, or adds to the vertical, advance).
func applyTJAdjustment(gs *GraphicsState, tm matrix.Matrix, value float64, vertical bool) matrix.Matrix {
	fs := gs.FontSize
	th := gs.HorizScaling
	if th == 0 {
		th = 1
	}
	adj := value / 1000 * fs
	if vertical {
		return matrix.Translate(0, adj).Mul(tm)
	}
	return matrix.Translate(-adj*th, 0).Mul(tm)
}
