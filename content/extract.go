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
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/color"
)

// interp holds the state of a single content stream interpreter run: the
// running graphics state, its stack, the path currently under construction,
// the marked-content stack, and the decoders for the fonts used so far.
type interp struct {
	r    pdf.Getter
	page pdf.Reference

	resources *pdf.Resources
	gs        *GraphicsState
	gsStack   []*GraphicsState

	path        []PathSegment
	pendingClip bool
	evenOddClip bool

	mc []MarkedContentEntry

	decoders map[pdf.Name]*textDecoder

	yield func(Object) error

	// formDepth guards against Form XObjects that (directly or indirectly)
	// reference themselves.
	formDepth int
}

const maxFormDepth = 16

// ForAllObjects interprets the content stream of the given page dictionary,
// calling yield once for every content object described in PDF
// 32000-1:2008, section 8/9: path paintings, text-showing operators (one
// TextObject per operator, with glyphs decoded lazily), image and form
// XObjects, inline images, and marked-content points.
//
// yield may be called again for objects produced by recursing into Form
// XObjects; every object carries its own CTM and graphics state snapshot, so
// callers do not need to track recursion themselves.
func ForAllObjects(r pdf.Getter, page pdf.Reference, pageDict pdf.Dict, yield func(Object) error) error {
	resources, err := pageResources(r, pageDict)
	if err != nil {
		return err
	}

	in := &interp{
		r:         r,
		page:      page,
		resources: resources,
		gs:        NewGraphicsState(),
		decoders:  make(map[pdf.Name]*textDecoder),
		yield:     yield,
	}
	return forAllContentStreamParts(r, pageDict["Contents"], func(r pdf.Getter, contents *pdf.Stream) error {
		stm, err := pdf.DecodeStream(r, contents, 0)
		if err != nil {
			return err
		}
		return in.run(stm)
	})
}

// ForAllText is a convenience wrapper around [ForAllObjects] for callers
// that only need the decoded text, in stream order, of every text-showing
// operator on the page.
func ForAllText(r pdf.Getter, page pdf.Reference, pageDict pdf.Dict, cb func(*TextObject) error) error {
	return ForAllObjects(r, page, pageDict, func(obj Object) error {
		t, ok := obj.(*TextObject)
		if !ok {
			return nil
		}
		return cb(t)
	})
}

func pageResources(r pdf.Getter, pageDict pdf.Dict) (*pdf.Resources, error) {
	return pdf.ExtractResources(r, pageDict["Resources"])
}

func (in *interp) common() Common {
	return Common{
		Page:          in.page,
		GState:        in.gs.Clone(),
		CTM:           in.gs.CTM,
		MarkedContent: append([]MarkedContentEntry(nil), in.mc...),
	}
}

func (in *interp) run(stm io.Reader) error {
	seq := &operatorSeq{}
	return seq.forAllCommands(stm, func(cmd pdf.Operator, args []pdf.Object) error {
		return in.do(string(cmd), args)
	})
}

func (in *interp) do(cmd string, args []pdf.Object) error {
	r := in.r
	g := in.gs

	switch cmd {

	// == General graphics state ==========================================

	case "q":
		in.gsStack = append(in.gsStack, g.Clone())
	case "Q":
		if len(in.gsStack) == 0 {
			return errors.New("unexpected operator Q")
		}
		in.gs = in.gsStack[len(in.gsStack)-1]
		in.gsStack = in.gsStack[:len(in.gsStack)-1]
	case "cm":
		m, err := getMatrix(r, args)
		if err != nil {
			return err
		}
		g.CTM = m.Mul(g.CTM)
	case "w":
		v, err := arg0(r, args, "line width")
		if err != nil {
			return err
		}
		g.LineWidth = v
	case "J":
		v, err := arg0(r, args, "line cap")
		if err != nil {
			return err
		}
		g.LineCap = int(v)
	case "j":
		v, err := arg0(r, args, "line join")
		if err != nil {
			return err
		}
		g.LineJoin = int(v)
	case "M":
		v, err := arg0(r, args, "miter limit")
		if err != nil {
			return err
		}
		g.MiterLimit = v
	case "d":
		if len(args) < 2 {
			return errTooFewArgs
		}
		arr, ok := args[0].(pdf.Array)
		if !ok {
			return fmt.Errorf("unexpected type %T for dash array", args[0])
		}
		pattern := make([]float64, len(arr))
		for i, v := range arr {
			f, ok := getReal(v)
			if !ok {
				return fmt.Errorf("unexpected type %T in dash array", v)
			}
			pattern[i] = f
		}
		phase, ok := getReal(args[1])
		if !ok {
			return fmt.Errorf("unexpected type %T for dash phase", args[1])
		}
		g.DashPattern = pattern
		g.DashPhase = phase
	case "ri":
		if len(args) < 1 {
			return errTooFewArgs
		}
		name, ok := args[0].(pdf.Name)
		if !ok {
			return fmt.Errorf("unexpected type %T for rendering intent", args[0])
		}
		g.RenderIntent = string(name)
	case "i":
		v, err := arg0(r, args, "flatness")
		if err != nil {
			return err
		}
		g.Flatness = v
	case "gs":
		return in.doExtGState(args)

	// == Special graphics state ==========================================

	// (no additional state beyond the stack already handled above)

	// == Path construction ================================================

	case "m":
		p, err := point(r, args, 0)
		if err != nil {
			return err
		}
		in.path = append(in.path, PathSegment{Op: 'm', Points: []vec.Vec2{p}})
	case "l":
		p, err := point(r, args, 0)
		if err != nil {
			return err
		}
		in.path = append(in.path, PathSegment{Op: 'l', Points: []vec.Vec2{p}})
	case "c":
		pts, err := points(r, args, 3)
		if err != nil {
			return err
		}
		in.path = append(in.path, PathSegment{Op: 'c', Points: pts})
	case "v":
		pts, err := points(r, args, 2)
		if err != nil {
			return err
		}
		in.path = append(in.path, PathSegment{Op: 'v', Points: pts})
	case "y":
		pts, err := points(r, args, 2)
		if err != nil {
			return err
		}
		in.path = append(in.path, PathSegment{Op: 'y', Points: pts})
	case "h":
		in.path = append(in.path, PathSegment{Op: 'h'})
	case "re":
		if len(args) < 4 {
			return errTooFewArgs
		}
		x, ok1 := getReal(args[0])
		y, ok2 := getReal(args[1])
		w, ok3 := getReal(args[2])
		h, ok4 := getReal(args[3])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return fmt.Errorf("unexpected type for rectangle: %T %T %T %T",
				args[0], args[1], args[2], args[3])
		}
		in.path = append(in.path,
			PathSegment{Op: 'm', Points: []vec.Vec2{{X: x, Y: y}}},
			PathSegment{Op: 'l', Points: []vec.Vec2{{X: x + w, Y: y}}},
			PathSegment{Op: 'l', Points: []vec.Vec2{{X: x + w, Y: y + h}}},
			PathSegment{Op: 'l', Points: []vec.Vec2{{X: x, Y: y + h}}},
			PathSegment{Op: 'h'},
		)

	// == Path painting =====================================================

	case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n":
		return in.paintPath(cmd)

	// == Clipping paths ====================================================

	case "W":
		in.pendingClip = true
		in.evenOddClip = false
	case "W*":
		in.pendingClip = true
		in.evenOddClip = true

	// == Text objects ======================================================

	case "BT":
		g.Tm = matrix.Identity
		g.Tlm = matrix.Identity
	case "ET":
		// no state to tear down

	// == Text state ========================================================

	case "Tc":
		v, err := arg0(r, args, "character spacing")
		if err != nil {
			return err
		}
		g.CharSpacing = v
	case "Tw":
		v, err := arg0(r, args, "word spacing")
		if err != nil {
			return err
		}
		g.WordSpacing = v
	case "Tz":
		v, err := arg0(r, args, "horizontal scaling")
		if err != nil {
			return err
		}
		g.HorizScaling = v / 100
	case "TL":
		v, err := arg0(r, args, "leading")
		if err != nil {
			return err
		}
		g.Leading = v
	case "Tf":
		if len(args) < 2 {
			return errTooFewArgs
		}
		name, ok1 := args[0].(pdf.Name)
		size, ok2 := getReal(args[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("unexpected type for font: %T %T", args[0], args[1])
		}
		g.Font = string(name)
		g.FontSize = size
	case "Tr":
		v, err := arg0(r, args, "text rendering mode")
		if err != nil {
			return err
		}
		g.RenderingMode = int(v)
	case "Ts":
		v, err := arg0(r, args, "text rise")
		if err != nil {
			return err
		}
		g.Rise = v

	// == Text positioning ==================================================

	case "Td":
		tx, ty, err := xy(r, args)
		if err != nil {
			return err
		}
		g.Tlm = matrix.Translate(tx, ty).Mul(g.Tlm)
		g.Tm = g.Tlm
	case "TD":
		tx, ty, err := xy(r, args)
		if err != nil {
			return err
		}
		g.Leading = -ty
		g.Tlm = matrix.Translate(tx, ty).Mul(g.Tlm)
		g.Tm = g.Tlm
	case "Tm":
		m, err := getMatrix(r, args)
		if err != nil {
			return err
		}
		g.Tm = m
		g.Tlm = m
	case "T*":
		g.Tlm = matrix.Translate(0, -g.Leading).Mul(g.Tlm)
		g.Tm = g.Tlm

	// == Text showing ======================================================

	case "Tj":
		if len(args) < 1 {
			return errTooFewArgs
		}
		return in.showText("Tj", args)
	case "'":
		if len(args) < 1 {
			return errTooFewArgs
		}
		g.Tlm = matrix.Translate(0, -g.Leading).Mul(g.Tlm)
		g.Tm = g.Tlm
		return in.showText("'", args)
	case "\"":
		if len(args) < 3 {
			return errTooFewArgs
		}
		aw, ok1 := getReal(args[0])
		ac, ok2 := getReal(args[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("unexpected type for \" spacing: %T %T", args[0], args[1])
		}
		g.WordSpacing = aw
		g.CharSpacing = ac
		g.Tlm = matrix.Translate(0, -g.Leading).Mul(g.Tlm)
		g.Tm = g.Tlm
		return in.showText("\"", args[2:])
	case "TJ":
		if len(args) < 1 {
			return errTooFewArgs
		}
		arr, ok := args[0].(pdf.Array)
		if !ok {
			return fmt.Errorf("unexpected type %T for text array", args[0])
		}
		return in.showText("TJ", []pdf.Object(arr))

	// == Type 3 fonts ======================================================

	case "d0", "d1":
		// glyph metrics for a Type 3 glyph description; nothing to track

	// == Color =============================================================

	case "G":
		v, err := arg0(r, args, "gray level")
		if err != nil {
			return err
		}
		g.StrokeSpace = color.DeviceGray
		g.StrokeColor = color.Gray(v)
	case "g":
		v, err := arg0(r, args, "gray level")
		if err != nil {
			return err
		}
		g.FillSpace = color.DeviceGray
		g.FillColor = color.Gray(v)
	case "RG":
		red, green, blue, err := rgb(r, args)
		if err != nil {
			return err
		}
		g.StrokeSpace = color.DeviceRGB
		g.StrokeColor = color.RGB(red, green, blue)
	case "rg":
		red, green, blue, err := rgb(r, args)
		if err != nil {
			return err
		}
		g.FillSpace = color.DeviceRGB
		g.FillColor = color.RGB(red, green, blue)
	case "K":
		c, m, y, k, err := cmyk(r, args)
		if err != nil {
			return err
		}
		g.StrokeSpace = color.DeviceCMYK
		g.StrokeColor = color.CMYK(c, m, y, k)
	case "k":
		c, m, y, k, err := cmyk(r, args)
		if err != nil {
			return err
		}
		g.FillSpace = color.DeviceCMYK
		g.FillColor = color.CMYK(c, m, y, k)
	case "CS":
		sp, err := in.resolveColorSpace(args)
		if err != nil {
			return err
		}
		g.StrokeSpace = sp
		g.StrokeColor = sp.Default()
	case "cs":
		sp, err := in.resolveColorSpace(args)
		if err != nil {
			return err
		}
		g.FillSpace = sp
		g.FillColor = sp.Default()
	case "SC", "SCN":
		col, err := setColor(g.StrokeSpace, args)
		if err != nil {
			return err
		}
		g.StrokeColor = col
	case "sc", "scn":
		col, err := setColor(g.FillSpace, args)
		if err != nil {
			return err
		}
		g.FillColor = col

	// == Shading patterns ==================================================

	case "sh":
		// paints the current clipping region; has no effect on the
		// interpreter's own state

	// == XObjects ==========================================================

	case "Do":
		return in.doXObject(args)

	// == Inline images =====================================================

	case "BI":
		return errors.New("inline images must be read by the content scanner, not dispatched as an operator")

	// == Marked content ====================================================

	case "MP":
		if len(args) < 1 {
			return errTooFewArgs
		}
		tag, ok := args[0].(pdf.Name)
		if !ok {
			return fmt.Errorf("unexpected type %T for marked-content tag", args[0])
		}
		return in.yield(&TagObject{Common: in.common(), Tag: tag})
	case "DP":
		if len(args) < 2 {
			return errTooFewArgs
		}
		tag, ok := args[0].(pdf.Name)
		if !ok {
			return fmt.Errorf("unexpected type %T for marked-content tag", args[0])
		}
		props, err := in.properties(args[1])
		if err != nil {
			return err
		}
		return in.yield(&TagObject{Common: in.common(), Tag: tag, Properties: props})
	case "BMC":
		if len(args) < 1 {
			return errTooFewArgs
		}
		tag, ok := args[0].(pdf.Name)
		if !ok {
			return fmt.Errorf("unexpected type %T for marked-content tag", args[0])
		}
		in.mc = append(in.mc, MarkedContentEntry{Tag: tag})
	case "BDC":
		if len(args) < 2 {
			return errTooFewArgs
		}
		tag, ok := args[0].(pdf.Name)
		if !ok {
			return fmt.Errorf("unexpected type %T for marked-content tag", args[0])
		}
		props, err := in.properties(args[1])
		if err != nil {
			return err
		}
		in.mc = append(in.mc, MarkedContentEntry{Tag: tag, Properties: props})
	case "EMC":
		if len(in.mc) == 0 {
			return errors.New("unexpected operator EMC")
		}
		in.mc = in.mc[:len(in.mc)-1]

	// == Compatibility =====================================================

	case "BX", "EX":
		// compatibility brackets: unknown operators between them must be
		// ignored rather than rejected, but we do not track nesting since
		// we never reject an operator we do not recognise

	default:
		// An unrecognised operator is treated as a no-op rather than a
		// hard error, matching the PDF 32000-1:2008 recommendation to
		// ignore operators introduced by extensions a reader does not
		// support.
	}

	return nil
}

func (in *interp) properties(obj pdf.Object) (pdf.Dict, error) {
	switch p := obj.(type) {
	case pdf.Dict:
		return p, nil
	case pdf.Name:
		if in.resources == nil {
			return nil, fmt.Errorf("BDC/DP: unknown property list %s", p)
		}
		dict, err := pdf.GetDict(in.r, in.resources.Properties[p])
		if err != nil {
			return nil, fmt.Errorf("BDC/DP: unknown property list %s: %w", p, err)
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unexpected type %T for marked-content property list", obj)
	}
}

func (in *interp) paintPath(cmd string) error {
	segs := in.path
	in.path = nil

	stroke := false
	fill := false
	evenOdd := false
	switch cmd {
	case "S", "s":
		stroke = true
	case "f", "F":
		fill = true
	case "f*":
		fill = true
		evenOdd = true
	case "B", "b":
		stroke = true
		fill = true
	case "B*", "b*":
		stroke = true
		fill = true
		evenOdd = true
	case "n":
		// neither stroked nor filled, but the path still contributes to
		// any pending clip
	}
	if cmd == "s" || cmd == "b" || cmd == "b*" {
		segs = append(segs, PathSegment{Op: 'h'})
	}

	obj := &PathObject{
		Common:   in.common(),
		Segments: segs,
		Stroke:   stroke,
		Fill:     fill,
		EvenOdd:  evenOdd,
		Clip:     in.pendingClip,
	}
	in.pendingClip = false
	return in.yield(obj)
}

func (in *interp) showText(op string, args []pdf.Object) error {
	g := in.gs

	dec := in.decoders[pdf.Name(g.Font)]
	if dec == nil && g.Font != "" && in.resources != nil {
		ref, ok := in.resources.Font[pdf.Name(g.Font)]
		if ok {
			d, err := MakeTextDecoder(in.r, ref)
			if err != nil {
				return err
			}
			dec = d
			in.decoders[pdf.Name(g.Font)] = dec
		}
	}

	t := &TextObject{
		Common: in.common(),
		Op:     op,
		// args is backed by operatorSeq's reused buffer, so it must be
		// copied: glyph decoding is lazy and may run long after the
		// buffer has been overwritten by later operators.
		Args:    append([]pdf.Object(nil), args...),
		StartTm: g.Tm,
		Line:    g.Tlm,
		decoder: dec,
	}
	if err := in.yield(t); err != nil {
		return err
	}
	g.Tm = t.EndMatrix()
	return nil
}

func (in *interp) doExtGState(args []pdf.Object) error {
	if len(args) < 1 {
		return errTooFewArgs
	}
	name, ok := args[0].(pdf.Name)
	if !ok {
		return fmt.Errorf("unexpected type %T for graphics state name", args[0])
	}
	if in.resources == nil {
		return nil
	}
	r := in.r
	g := in.gs

	dict, err := pdf.GetDict(r, in.resources.ExtGState[name])
	if err != nil {
		return err
	}
	for key, val := range dict {
		switch key {
		case "Type":
			// pass
		case "LW":
			lw, err := pdf.GetNumber(r, val)
			if err != nil {
				return err
			}
			g.LineWidth = float64(lw)
		case "LC":
			lc, err := pdf.GetInteger(r, val)
			if err != nil {
				return err
			}
			g.LineCap = int(lc)
		case "LJ":
			lj, err := pdf.GetInteger(r, val)
			if err != nil {
				return err
			}
			g.LineJoin = int(lj)
		case "ML":
			ml, err := pdf.GetNumber(r, val)
			if err != nil {
				return err
			}
			g.MiterLimit = float64(ml)
		case "RI":
			ri, err := pdf.GetName(r, val)
			if err != nil {
				return err
			}
			g.RenderIntent = string(ri)
		case "Font":
			arr, err := pdf.GetArray(r, val)
			if err != nil {
				return err
			}
			if len(arr) == 2 {
				if size, ok := getReal(arr[1]); ok {
					g.FontSize = size
				}
			}
		default:
			// SMask, blend modes, alpha constants and the other keys of
			// an ExtGState dictionary affect how painting operators
			// render, not the coordinate system or text state we track
			// here, so they are intentionally not modelled.
		}
	}
	return nil
}

func (in *interp) resolveColorSpace(args []pdf.Object) (*color.Space, error) {
	if len(args) < 1 {
		return nil, errTooFewArgs
	}
	name, ok := args[0].(pdf.Name)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T for color space name", args[0])
	}
	if sp, ok := color.ResolveName(name); ok {
		return sp, nil
	}
	if in.resources == nil {
		return nil, fmt.Errorf("unknown color space %s", name)
	}
	obj, ok := in.resources.ColorSpace[name]
	if !ok {
		return nil, fmt.Errorf("unknown color space %s", name)
	}
	return color.ExtractSpace(in.r, obj)
}

func setColor(sp *color.Space, args []pdf.Object) (color.Color, error) {
	comps := args
	if len(args) > 0 {
		if _, ok := args[len(args)-1].(pdf.Name); ok {
			// a pattern name trailing the (possibly empty) list of
			// underlying-space components; the pattern itself is not
			// modelled, so only the numeric components are used.
			comps = args[:len(args)-1]
		}
	}
	vals := make([]float64, len(comps))
	for i, c := range comps {
		f, ok := getReal(c)
		if !ok {
			return nil, fmt.Errorf("unexpected type %T for color component", c)
		}
		vals[i] = f
	}
	if sp == nil {
		sp = color.DeviceGray
	}
	switch len(vals) {
	case 1:
		return color.Gray(vals[0]), nil
	case 3:
		return color.RGB(vals[0], vals[1], vals[2]), nil
	case 4:
		return color.CMYK(vals[0], vals[1], vals[2], vals[3]), nil
	default:
		return sp.Default(), nil
	}
}

func (in *interp) doXObject(args []pdf.Object) error {
	if len(args) < 1 {
		return errTooFewArgs
	}
	name, ok := args[0].(pdf.Name)
	if !ok {
		return fmt.Errorf("unexpected type %T for XObject name", args[0])
	}
	if in.resources == nil {
		return fmt.Errorf("Do %s: page has no resources", name)
	}
	ref, ok := in.resources.XObject[name]
	if !ok {
		return fmt.Errorf("Do: unknown XObject %s", name)
	}
	stream, err := pdf.GetStream(in.r, ref)
	if err != nil {
		return err
	}

	subtype, err := pdf.GetName(in.r, stream.Dict["Subtype"])
	if err != nil {
		return err
	}

	switch subtype {
	case "Image":
		return in.emitImage(name, stream)
	case "Form":
		return in.doForm(name, stream)
	default:
		return fmt.Errorf("Do %s: unsupported XObject subtype %s", name, subtype)
	}
}

func (in *interp) emitImage(name pdf.Name, stream *pdf.Stream) error {
	r := in.r
	width, err := pdf.GetInteger(r, stream.Dict["Width"])
	if err != nil {
		return err
	}
	height, err := pdf.GetInteger(r, stream.Dict["Height"])
	if err != nil {
		return err
	}
	isMask, _ := pdf.GetBoolean(r, stream.Dict["ImageMask"])

	bpc := pdf.Integer(1)
	if !bool(isMask) {
		bpc, err = pdf.GetInteger(r, stream.Dict["BitsPerComponent"])
		if err != nil {
			return err
		}
	}

	var cs *color.Space
	if !bool(isMask) {
		if csObj, ok := stream.Dict["ColorSpace"]; ok {
			if csName, ok := csObj.(pdf.Name); ok {
				if sp, ok := color.ResolveName(csName); ok {
					cs = sp
				} else if in.resources != nil {
					if resObj, ok := in.resources.ColorSpace[csName]; ok {
						cs, err = color.ExtractSpace(r, resObj)
						if err != nil {
							return err
						}
					}
				}
			} else {
				cs, err = color.ExtractSpace(r, csObj)
				if err != nil {
					return err
				}
			}
		}
	}

	obj := &ImageObject{
		Common:           in.common(),
		Name:             name,
		Width:            int(width),
		Height:           int(height),
		BitsPerComponent: int(bpc),
		ImageMask:        bool(isMask),
		ColorSpace:       cs,
		Stream:           stream,
	}
	return in.yield(obj)
}

func (in *interp) doForm(name pdf.Name, stream *pdf.Stream) error {
	if in.formDepth >= maxFormDepth {
		return errors.New("Do: Form XObject recursion too deep")
	}

	m := matrix.Identity
	if arr, ok := stream.Dict["Matrix"]; ok {
		a, err := pdf.GetArray(in.r, arr)
		if err == nil && len(a) == 6 {
			for i := 0; i < 6; i++ {
				if v, ok := getReal(a[i]); ok {
					m[i] = v
				}
			}
		}
	}

	formCTM := m.Mul(in.gs.CTM)

	var bbox *pdf.Rectangle
	if b, ok := stream.Dict["BBox"]; ok {
		rect, err := pdf.GetRectangle(in.r, b)
		if err == nil && rect != nil {
			bbox = rectBBox(formCTM, rect.LLx, rect.LLy, rect.URx, rect.URy)
		}
	}

	var formResources *pdf.Resources
	if resObj, ok := stream.Dict["Resources"]; ok {
		res, err := pdf.ExtractResources(in.r, resObj)
		if err != nil {
			return err
		}
		formResources = res
	} else {
		// Pre-1.2 forms may omit /Resources and rely on the page's
		// resources instead (PDF 32000-1:2008, section 8.10.2).
		formResources = in.resources
	}

	common := in.common()
	common.CTM = formCTM
	common.GState.CTM = formCTM

	obj := &XObjectObject{
		Common:    common,
		Name:      name,
		Stream:    stream,
		Resources: formResources,
		FormBBox:  bbox,
	}
	if err := in.yield(obj); err != nil {
		return err
	}

	child := &interp{
		r:         in.r,
		page:      in.page,
		resources: formResources,
		gs:        in.gs.Clone(),
		decoders:  in.decoders,
		yield:     in.yield,
		mc:        append([]MarkedContentEntry(nil), in.mc...),
		formDepth: in.formDepth + 1,
	}
	child.gs.CTM = formCTM

	data, err := pdf.DecodeStream(in.r, stream, 0)
	if err != nil {
		return err
	}
	return child.run(data)
}

func point(r pdf.Getter, args []pdf.Object, offset int) (vec.Vec2, error) {
	if len(args) < offset+2 {
		return vec.Vec2{}, errTooFewArgs
	}
	x, ok1 := getReal(args[offset])
	y, ok2 := getReal(args[offset+1])
	if !ok1 || !ok2 {
		return vec.Vec2{}, fmt.Errorf("unexpected type for point: %T %T", args[offset], args[offset+1])
	}
	return vec.Vec2{X: x, Y: y}, nil
}

func points(r pdf.Getter, args []pdf.Object, n int) ([]vec.Vec2, error) {
	if len(args) < 2*n {
		return nil, errTooFewArgs
	}
	out := make([]vec.Vec2, n)
	for i := 0; i < n; i++ {
		p, err := point(r, args, 2*i)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func arg0(r pdf.Getter, args []pdf.Object, what string) (float64, error) {
	if len(args) < 1 {
		return 0, errTooFewArgs
	}
	v, ok := getReal(args[0])
	if !ok {
		return 0, fmt.Errorf("unexpected type for %s: %T", what, args[0])
	}
	return v, nil
}

func xy(r pdf.Getter, args []pdf.Object) (float64, float64, error) {
	if len(args) < 2 {
		return 0, 0, errTooFewArgs
	}
	x, ok1 := getReal(args[0])
	y, ok2 := getReal(args[1])
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("unexpected type for position: %T %T", args[0], args[1])
	}
	return x, y, nil
}

func rgb(r pdf.Getter, args []pdf.Object) (float64, float64, float64, error) {
	if len(args) < 3 {
		return 0, 0, 0, errTooFewArgs
	}
	red, ok1 := getReal(args[0])
	green, ok2 := getReal(args[1])
	blue, ok3 := getReal(args[2])
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, fmt.Errorf("unexpected type for RGB color: %T %T %T", args[0], args[1], args[2])
	}
	return red, green, blue, nil
}

func cmyk(r pdf.Getter, args []pdf.Object) (float64, float64, float64, float64, error) {
	if len(args) < 4 {
		return 0, 0, 0, 0, errTooFewArgs
	}
	c, ok1 := getReal(args[0])
	m, ok2 := getReal(args[1])
	y, ok3 := getReal(args[2])
	k, ok4 := getReal(args[3])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, 0, 0, 0, fmt.Errorf("unexpected type for CMYK color: %T %T %T %T", args[0], args[1], args[2], args[3])
	}
	return c, m, y, k, nil
}

func getMatrix(r pdf.Getter, args []pdf.Object) (matrix.Matrix, error) {
	if len(args) < 6 {
		return matrix.Matrix{}, errTooFewArgs
	}
	var m matrix.Matrix
	for i := 0; i < 6; i++ {
		v, ok := getReal(args[i])
		if !ok {
			return matrix.Matrix{}, fmt.Errorf("unexpected type for matrix: %T", args[i])
		}
		m[i] = v
	}
	return m, nil
}

type operatorSeq struct {
	args []pdf.Object
}

func (o *operatorSeq) forAllCommands(stm io.Reader, yield func(name pdf.Operator, args []pdf.Object) error) error {
	s := NewScanner(stm)
	for {
		obj, err := s.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		cmd, ok := obj.(pdf.Operator)
		if !ok {
			o.args = append(o.args, obj)
			continue
		}

		if err := yield(cmd, o.args); err != nil {
			return err
		}
		o.args = o.args[:0]
	}
}

func forAllContentStreamParts(r pdf.Getter, ref pdf.Object, yield func(pdf.Getter, *pdf.Stream) error) error {
	contents, err := pdf.Resolve(r, ref)
	if err != nil {
		return err
	}
	switch contents := contents.(type) {
	case *pdf.Stream:
		return yield(r, contents)
	case pdf.Array:
		for _, ref := range contents {
			contents, err := pdf.GetStream(r, ref)
			if err != nil {
				return err
			}
			err = yield(r, contents)
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unexpected type %T for page contents", contents)
	}
	return nil
}

func getReal(x pdf.Object) (float64, bool) {
	switch x := x.(type) {
	case pdf.Real:
		return float64(x), true
	case pdf.Integer:
		return float64(x), true
	case pdf.Number:
		return float64(x), true
	default:
		return 0, false
	}
}

var errTooFewArgs = errors.New("not enough arguments")
