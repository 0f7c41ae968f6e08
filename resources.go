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

package pdf

// Resources describes the named resources available to a content stream,
// as specified in section 7.8.3 of PDF 32000-1:2008.
//
// Each field maps a resource name to the (usually indirect) object that
// defines the resource.  Fields are nil when the corresponding subdictionary
// is absent from the PDF file.
type Resources struct {
	ExtGState  Dict
	ColorSpace Dict
	Pattern    Dict
	Shading    Dict
	XObject    Dict
	Font       Dict
	Properties Dict
	ProcSet    Array
}

// ExtractResources reads a resource dictionary from a PDF file.
//
// A missing or null object is not an error: it is treated as an empty
// resource dictionary, since content streams are allowed to omit
// /Resources when every resource they use is inherited from an ancestor
// page-tree node.
func ExtractResources(r Getter, obj Object) (*Resources, error) {
	dict, err := GetDict(r, obj)
	if err != nil {
		return nil, err
	}

	res := &Resources{}
	if dict == nil {
		return res, nil
	}

	get := func(name Name) (Dict, error) {
		return GetDict(r, dict[name])
	}

	var e error
	if res.ExtGState, e = get("ExtGState"); e != nil {
		return nil, e
	}
	if res.ColorSpace, e = get("ColorSpace"); e != nil {
		return nil, e
	}
	if res.Pattern, e = get("Pattern"); e != nil {
		return nil, e
	}
	if res.Shading, e = get("Shading"); e != nil {
		return nil, e
	}
	if res.XObject, e = get("XObject"); e != nil {
		return nil, e
	}
	if res.Font, e = get("Font"); e != nil {
		return nil, e
	}
	if res.Properties, e = get("Properties"); e != nil {
		return nil, e
	}
	if procSet, e := GetArray(r, dict["ProcSet"]); e == nil {
		res.ProcSet = procSet
	}

	return res, nil
}

// AsDict converts the resource dictionary back into a plain PDF dictionary,
// omitting any subdictionary that is empty.
func (res *Resources) AsDict() Dict {
	dict := Dict{}
	add := func(name Name, d Dict) {
		if len(d) > 0 {
			dict[name] = d
		}
	}
	add("ExtGState", res.ExtGState)
	add("ColorSpace", res.ColorSpace)
	add("Pattern", res.Pattern)
	add("Shading", res.Shading)
	add("XObject", res.XObject)
	add("Font", res.Font)
	add("Properties", res.Properties)
	if len(res.ProcSet) > 0 {
		dict["ProcSet"] = res.ProcSet
	}
	return dict
}
