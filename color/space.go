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

package color

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
)

// Family identifies the kind of a colour space, independent of any
// particular resource name or indirect object used to refer to it.
type Family pdf.Name

const (
	FamilyDeviceGray Family = "DeviceGray"
	FamilyDeviceRGB  Family = "DeviceRGB"
	FamilyDeviceCMYK Family = "DeviceCMYK"
	FamilyCalGray    Family = "CalGray"
	FamilyCalRGB     Family = "CalRGB"
	FamilyLab        Family = "Lab"
	FamilyICCBased   Family = "ICCBased"
	FamilyIndexed    Family = "Indexed"
	FamilySeparation Family = "Separation"
	FamilyDeviceN    Family = "DeviceN"
	FamilyPattern    Family = "Pattern"
)

// Space represents a colour space as used by the "cs"/"CS"/"scn"/"SCN"
// content stream operators, and by the /ColorSpace entry of a resource
// dictionary or image XObject.
type Space struct {
	Family Family

	// NumComponents is the number of numeric operands a "sc"/"SC" operator
	// takes in this colour space ("sc"-style operators for Pattern spaces
	// only use the trailing name operand, so NumComponents is 0 there).
	NumComponents int

	// Alternate is the alternate/base colour space, for ICCBased,
	// Separation, DeviceN and Indexed spaces.
	Alternate *Space

	// HiVal is the highest valid index value, for Indexed spaces.
	HiVal int

	// Lookup is the colour table, for Indexed spaces.
	Lookup []byte

	// Names lists the colourant names, for Separation (one name) and
	// DeviceN (one or more names) spaces.
	Names []pdf.Name

	// Underlying is the underlying colour space of a Pattern colour space,
	// for uncoloured tiling patterns.  It is nil for coloured patterns and
	// shading patterns.
	Underlying *Space
}

// Default returns the colour to use immediately after a colour space has
// been selected with "cs"/"CS" and no component values have been supplied
// yet, as required by PDF 32000-1:2008, section 8.6.3.
func (s *Space) Default() Color {
	switch s.Family {
	case FamilyDeviceRGB, FamilyCalRGB:
		return RGB(0, 0, 0)
	case FamilyDeviceCMYK:
		return CMYK(0, 0, 0, 1)
	case FamilyLab:
		return Gray(0)
	default:
		return Gray(0)
	}
}

// DeviceGray, DeviceRGB and DeviceCMYK are the built-in device colour
// spaces; they never need to be looked up in a resource dictionary.
var (
	DeviceGray = &Space{Family: FamilyDeviceGray, NumComponents: 1}
	DeviceRGB  = &Space{Family: FamilyDeviceRGB, NumComponents: 3}
	DeviceCMYK = &Space{Family: FamilyDeviceCMYK, NumComponents: 4}
)

// ResolveName maps one of the names usable directly as an operand of
// "cs"/"CS" without a /ColorSpace resource lookup to its Space.  It returns
// false if name does not name a built-in device colour space.
func ResolveName(name pdf.Name) (*Space, bool) {
	switch name {
	case "DeviceGray":
		return DeviceGray, true
	case "DeviceRGB":
		return DeviceRGB, true
	case "DeviceCMYK":
		return DeviceCMYK, true
	case "Pattern":
		return &Space{Family: FamilyPattern}, true
	default:
		return nil, false
	}
}

// ExtractSpace reads a colour space object, as found in a /ColorSpace
// resource dictionary, an image's /ColorSpace entry, or nested inside
// another colour space array.
func ExtractSpace(r pdf.Getter, obj pdf.Object) (*Space, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	switch x := obj.(type) {
	case pdf.Name:
		if sp, ok := ResolveName(x); ok {
			return sp, nil
		}
		return nil, fmt.Errorf("color: unknown color space name %q", x)

	case pdf.Array:
		if len(x) == 0 {
			return nil, fmt.Errorf("color: empty color space array")
		}
		family, ok := x[0].(pdf.Name)
		if !ok {
			return nil, fmt.Errorf("color: malformed color space array")
		}
		return extractArraySpace(r, Family(family), x)

	default:
		return nil, fmt.Errorf("color: unexpected color space object %T", obj)
	}
}

func extractArraySpace(r pdf.Getter, family Family, arr pdf.Array) (*Space, error) {
	switch family {
	case FamilyCalGray:
		return &Space{Family: family, NumComponents: 1}, nil

	case FamilyCalRGB:
		return &Space{Family: family, NumComponents: 3}, nil

	case FamilyLab:
		return &Space{Family: family, NumComponents: 3}, nil

	case FamilyICCBased:
		if len(arr) < 2 {
			return nil, fmt.Errorf("color: malformed ICCBased color space")
		}
		stream, err := pdf.GetStream(r, arr[1])
		if err != nil {
			return nil, err
		}
		n := 3
		alt := DeviceRGB
		if stream != nil {
			if num, err := pdf.GetInteger(r, stream.Dict["N"]); err == nil && num > 0 {
				n = int(num)
			}
			if altObj, ok := stream.Dict["Alternate"]; ok {
				if a, err := ExtractSpace(r, altObj); err == nil {
					alt = a
				}
			} else {
				switch n {
				case 1:
					alt = DeviceGray
				case 4:
					alt = DeviceCMYK
				default:
					alt = DeviceRGB
				}
			}
		}
		return &Space{Family: family, NumComponents: n, Alternate: alt}, nil

	case FamilyIndexed:
		if len(arr) < 4 {
			return nil, fmt.Errorf("color: malformed Indexed color space")
		}
		base, err := ExtractSpace(r, arr[1])
		if err != nil {
			return nil, err
		}
		hival, err := pdf.GetInteger(r, arr[2])
		if err != nil {
			return nil, err
		}
		var lookup []byte
		switch tbl := mustResolve(r, arr[3]).(type) {
		case pdf.String:
			lookup = []byte(tbl)
		case *pdf.Stream:
			data, err := pdf.DecodeStream(r, tbl, 0)
			if err == nil {
				lookup, _ = io.ReadAll(data)
				data.Close()
			}
		}
		return &Space{
			Family:        family,
			NumComponents: 1,
			Alternate:     base,
			HiVal:         int(hival),
			Lookup:        lookup,
		}, nil

	case FamilySeparation:
		if len(arr) < 3 {
			return nil, fmt.Errorf("color: malformed Separation color space")
		}
		name, _ := pdf.GetName(r, arr[1])
		alt, err := ExtractSpace(r, arr[2])
		if err != nil {
			return nil, err
		}
		return &Space{
			Family:        family,
			NumComponents: 1,
			Alternate:     alt,
			Names:         []pdf.Name{name},
		}, nil

	case FamilyDeviceN:
		if len(arr) < 3 {
			return nil, fmt.Errorf("color: malformed DeviceN color space")
		}
		names, err := pdf.GetArray(r, arr[1])
		if err != nil {
			return nil, err
		}
		var names2 []pdf.Name
		for _, n := range names {
			if name, ok := n.(pdf.Name); ok {
				names2 = append(names2, name)
			}
		}
		alt, err := ExtractSpace(r, arr[2])
		if err != nil {
			return nil, err
		}
		return &Space{
			Family:        family,
			NumComponents: len(names2),
			Alternate:     alt,
			Names:         names2,
		}, nil

	case FamilyPattern:
		sp := &Space{Family: family}
		if len(arr) >= 2 {
			under, err := ExtractSpace(r, arr[1])
			if err == nil {
				sp.Underlying = under
				sp.NumComponents = under.NumComponents
			}
		}
		return sp, nil

	default:
		if sp, ok := ResolveName(pdf.Name(family)); ok {
			return sp, nil
		}
		return nil, fmt.Errorf("color: unsupported color space family %q", family)
	}
}

func mustResolve(r pdf.Getter, obj pdf.Object) pdf.Object {
	out, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil
	}
	return out
}
