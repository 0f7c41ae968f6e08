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

	"seehuhn.de/go/pdf/color"
)

// GraphicsState holds the part of the PDF graphics state that a content
// stream interpreter needs to track in order to attach device-space
// coordinates and rendering attributes to decoded content objects.  It
// mirrors the graphics state described in PDF 32000-1:2008, section 8.4,
// but is read-only: interpreting a content stream never needs to produce
// new operators, only to follow the effect of the ones it reads.
type GraphicsState struct {
	CTM matrix.Matrix

	LineWidth    float64
	LineCap      int
	LineJoin     int
	MiterLimit   float64
	DashPattern  []float64
	DashPhase    float64
	RenderIntent string
	Flatness     float64

	StrokeSpace *color.Space
	StrokeColor color.Color
	FillSpace   *color.Space
	FillColor   color.Color

	TextState
}

// TextState holds the parts of the graphics state that only apply to text
// showing operators (PDF 32000-1:2008, section 9.3), plus the two matrices
// that position text and that are updated as glyphs are shown.
type TextState struct {
	CharSpacing    float64
	WordSpacing    float64
	HorizScaling   float64 // Tz, as a fraction (100% == 1.0)
	Leading        float64
	Font           string
	FontSize       float64
	RenderingMode  int
	Rise           float64

	Tm  matrix.Matrix // text matrix
	Tlm matrix.Matrix // text line matrix
}

// NewGraphicsState returns the initial graphics state that is in effect at
// the start of a content stream, before any operator has been processed.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:          matrix.Identity,
		LineWidth:    1,
		MiterLimit:   10,
		StrokeSpace:  color.DeviceGray,
		StrokeColor:  color.Gray(0),
		FillSpace:    color.DeviceGray,
		FillColor:    color.Gray(0),
		TextState: TextState{
			HorizScaling: 1,
		},
	}
}

// Clone returns an independent copy of the graphics state, as needed when
// "q" pushes a new entry onto the graphics state stack.
func (g *GraphicsState) Clone() *GraphicsState {
	clone := *g
	if g.DashPattern != nil {
		clone.DashPattern = append([]float64(nil), g.DashPattern...)
	}
	return &clone
}
