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

// Package content interprets PDF content streams, turning the operators
// described in PDF 32000-1:2008, section 8/9, into a sequence of typed
// content objects.
package content

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/color"
)

// Kind identifies the concrete type of a content object.
type Kind int

const (
	KindText Kind = iota
	KindGlyph
	KindPath
	KindImage
	KindXObject
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindGlyph:
		return "Glyph"
	case KindPath:
		return "Path"
	case KindImage:
		return "Image"
	case KindXObject:
		return "XObject"
	case KindTag:
		return "Tag"
	default:
		return "unknown"
	}
}

// MarkedContentEntry is one level of the marked-content stack, pushed by
// "BMC"/"BDC" and popped by "EMC".
type MarkedContentEntry struct {
	Tag        pdf.Name
	Properties pdf.Dict
}

// Object is implemented by all six content object types.  Every object
// carries a weak back-reference to the page it came from (the page's
// indirect reference, not a pointer, so that holding on to a content
// object does not keep the whole Page alive), a snapshot of the graphics
// state in effect when it was produced, the CTM, and the marked-content
// stack at that point.
type Object interface {
	Kind() Kind

	// BBox returns the device-space bounding box of the object, or nil if
	// the object has no extent (the "none" sentinel for TagObject).
	BBox() *pdf.Rectangle

	common() *Common
}

// Common is embedded in every content object.
type Common struct {
	Page pdf.Reference

	GState *GraphicsState
	CTM    matrix.Matrix

	MarkedContent []MarkedContentEntry
}

func (c *Common) common() *Common { return c }

// PageOf returns the weak back-reference to the page a content object
// came from.
func PageOf(obj Object) pdf.Reference { return obj.common().Page }

// boundingBox computes the axis-aligned bounding box of a set of
// device-space points.
func boundingBox(pts []vec.Vec2) *pdf.Rectangle {
	if len(pts) == 0 {
		return nil
	}
	r := &pdf.Rectangle{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < r.LLx {
			r.LLx = p.X
		}
		if p.X > r.URx {
			r.URx = p.X
		}
		if p.Y < r.LLy {
			r.LLy = p.Y
		}
		if p.Y > r.URy {
			r.URy = p.Y
		}
	}
	return r
}

// applyMatrix maps a point through the affine transform m = [a b c d e f],
// i.e. (x,y) -> (a*x+c*y+e, b*x+d*y+f).
func applyMatrix(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// rectBBox transforms the four corners of the unit-space rectangle
// (x0,y0)-(x1,y1) by m and returns the bounding box of the result.  Using
// all four corners, rather than just two diagonal ones, matters because m
// may include rotation or skew.
func rectBBox(m matrix.Matrix, x0, y0, x1, y1 float64) *pdf.Rectangle {
	corners := []vec.Vec2{
		applyMatrix(m, vec.Vec2{X: x0, Y: y0}),
		applyMatrix(m, vec.Vec2{X: x1, Y: y0}),
		applyMatrix(m, vec.Vec2{X: x1, Y: y1}),
		applyMatrix(m, vec.Vec2{X: x0, Y: y1}),
	}
	return boundingBox(corners)
}

// TextObject represents the result of a single text-showing operator
// ("Tj", "TJ", "'" or "\""). Glyph iteration is performed lazily: the
// object remembers the text-space cursor (Tm/Tlm) at which it starts, and
// the glyph sequence, its text, its bounding box, and the end cursor are
// computed and memoized the first time any of them is requested.
type TextObject struct {
	Common

	Op   string // "Tj", "TJ", "'" or "\""
	Args []pdf.Object

	// StartTm is the text matrix (Tm) in effect at the start of this text
	// object, before any glyph has been shown.
	StartTm matrix.Matrix

	// Line is the text line matrix (Tlm) snapshot at the start of this
	// text object. "'" and "\"" operators move to the next line (as if by
	// T* plus, for "\"", Tc/Tw) before showing text, so they need this in
	// addition to StartTm.
	Line matrix.Matrix

	decoder *textDecoder

	glyphs []*GlyphObject
	chars  string
	bbox   *pdf.Rectangle
	endTm  matrix.Matrix
	built  bool
}

// GlyphInfo is the information the font decoder provides for a single
// shown character code, before it is turned into a device-space
// GlyphObject.
type GlyphInfo struct {
	CID            cid.CID
	Text           string
	Width          float64 // glyph space units, 1000 units/em
	UseWordSpacing bool
}

func (t *TextObject) Kind() Kind { return KindText }

// Glyphs returns the glyphs produced by this text object, computing them
// on first use.
func (t *TextObject) Glyphs() []*GlyphObject {
	t.ensureBuilt()
	return t.glyphs
}

// Chars returns the concatenated Unicode text of all glyphs in this text
// object, in stream order.
func (t *TextObject) Chars() string {
	t.ensureBuilt()
	return t.chars
}

// BBox returns the union of all glyph bounding boxes in this text object.
func (t *TextObject) BBox() *pdf.Rectangle {
	t.ensureBuilt()
	return t.bbox
}

// EndMatrix returns the text matrix in effect after this text object has
// been fully shown; it becomes the starting Tm for the next text object
// in the same text block.
func (t *TextObject) EndMatrix() matrix.Matrix {
	t.ensureBuilt()
	return t.endTm
}

func (t *TextObject) ensureBuilt() {
	if t.built {
		return
	}
	t.built = true
	t.glyphs, t.endTm = buildGlyphs(t)

	var chars []byte
	var pts []vec.Vec2
	for _, g := range t.glyphs {
		chars = append(chars, g.Text...)
		if b := g.BBox(); b != nil {
			pts = append(pts, vec.Vec2{X: b.LLx, Y: b.LLy}, vec.Vec2{X: b.URx, Y: b.URy})
		}
	}
	t.chars = string(chars)
	t.bbox = boundingBox(pts)
}

// GlyphObject represents a single decoded glyph within a TextObject.
type GlyphObject struct {
	Common

	CID  cid.CID
	Text string

	// TRM is the text rendering matrix in effect for this glyph:
	// [Tfs*Th 0 0 Tfs 0 Trise] * Tm * CTM.
	TRM matrix.Matrix

	// Origin is the glyph origin in text space, before TRM is applied.
	Origin vec.Vec2

	Advance  float64 // horizontal advance, text space units
	VAdvance float64 // vertical advance, text space units (0 for horizontal writing)
}

func (g *GlyphObject) Kind() Kind { return KindGlyph }

// BBox approximates the device-space footprint of the glyph by mapping
// the unit em square through the text rendering matrix.
func (g *GlyphObject) BBox() *pdf.Rectangle {
	return rectBBox(g.TRM, 0, 0, 1, 1)
}

// PathSegment is one element of a path, in user space. Op is one of
// 'm' (moveto), 'l' (lineto), 'c'/'v'/'y' (Bezier curveto variants) or
// 'h' (closepath, no points).
type PathSegment struct {
	Op     byte
	Points []vec.Vec2
}

// PathObject represents the path accumulated by path construction
// operators and consumed by exactly one path-painting operator.
type PathObject struct {
	Common

	Segments []PathSegment

	Stroke  bool
	Fill    bool
	EvenOdd bool
	Clip    bool // a pending W/W* applied to this paint operation
}

func (p *PathObject) Kind() Kind { return KindPath }

// BBox transforms every control point of the path by the CTM and returns
// the bounding box of the result.
func (p *PathObject) BBox() *pdf.Rectangle {
	var pts []vec.Vec2
	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			pts = append(pts, applyMatrix(p.CTM, pt))
		}
	}
	return boundingBox(pts)
}

// ImageObject represents an image XObject or inline image painted by
// "Do" or "BI...ID...EI".
type ImageObject struct {
	Common

	Name pdf.Name // resource name; empty for inline images

	Width, Height    int
	BitsPerComponent int
	ImageMask        bool
	ColorSpace       *color.Space

	Stream *pdf.Stream
}

func (img *ImageObject) Kind() Kind { return KindImage }

// BBox is the unit square, transformed by the CTM.
func (img *ImageObject) BBox() *pdf.Rectangle {
	return rectBBox(img.CTM, 0, 0, 1, 1)
}

// XObjectObject represents a Form XObject painted by "Do". Recursively
// iterating its stream, with CTM' = xobj.Matrix * CTM and its own (or the
// inherited) resource dictionary, is the caller's responsibility; this
// object only carries the information needed to do so.
type XObjectObject struct {
	Common

	Name      pdf.Name
	Stream    *pdf.Stream
	Resources *pdf.Resources

	// FormBBox is the Form XObject's own /BBox entry, already transformed
	// into device space by the CTM in effect when "Do" was executed
	// (which includes the form's /Matrix). It is nil if the form has no
	// /BBox.
	FormBBox *pdf.Rectangle
}

func (x *XObjectObject) Kind() Kind { return KindXObject }

func (x *XObjectObject) BBox() *pdf.Rectangle { return x.FormBBox }

// TagObject represents a marked-content point ("MP"/"DP"), which has no
// extent.
type TagObject struct {
	Common

	Tag        pdf.Name
	Properties pdf.Dict
}

func (t *TagObject) Kind() Kind { return KindTag }

// BBox always returns nil: marked-content tags are the "none" sentinel.
func (t *TagObject) BBox() *pdf.Rectangle { return nil }
