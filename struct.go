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
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/language"
)

// structTag describes the parsed `pdf:"..."` tag of one struct field.
type structTag struct {
	name        string // "" means "use the Go field name"
	optional    bool
	extra       bool // field holds a map[string]string of unrecognised keys
	allowString bool // Name field also accepts a PDF String in this slot
	typeValue   string
}

func parseStructTag(raw string) structTag {
	var tag structTag
	for _, part := range strings.Split(raw, ",") {
		switch {
		case part == "optional":
			tag.optional = true
		case part == "extra":
			tag.extra = true
		case part == "allowstring":
			tag.allowString = true
		case strings.HasPrefix(part, "Type="):
			tag.typeValue = strings.TrimPrefix(part, "Type=")
		case part != "":
			tag.name = part
		}
	}
	return tag
}

// Struct wraps a Go struct value (normally populated via [DecodeDict]) so
// that it can be passed wherever a reference to an [Embedder] is
// expected, matching the pattern used throughout this package's public
// API (e.g. pdf.Struct(&pdf.Catalog{...})).
func Struct(v any) Object {
	return AsDict(v)
}

// AsDict converts a struct (or pointer to struct) annotated with `pdf:"..."`
// tags into a PDF [Dict]. Unexported/blank fields are used only to supply
// a fixed "/Type" entry (via the `pdf:"Type=Name"` tag on the struct's
// leading "_ struct{}" field, if present).
func AsDict(v any) Dict {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Dict{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("pdf: AsDict: expected struct, got %s", rv.Kind()))
	}

	dict := Dict{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := parseStructTag(field.Tag.Get("pdf"))

		if field.Name == "_" {
			if tag.typeValue != "" {
				dict["Type"] = Name(tag.typeValue)
			}
			continue
		}
		if !field.IsExported() {
			continue
		}

		fv := rv.Field(i)

		if tag.extra {
			if fv.Kind() == reflect.Map {
				iter := fv.MapRange()
				for iter.Next() {
					key := Name(fmt.Sprint(iter.Key().Interface()))
					dict[key] = TextString(fmt.Sprint(iter.Value().Interface()))
				}
			}
			continue
		}

		key := Name(field.Name)
		if tag.name != "" {
			key = Name(tag.name)
		}

		obj, ok := fieldToObject(fv)
		if !ok {
			continue
		}
		dict[key] = obj
	}
	return dict
}

func fieldToObject(fv reflect.Value) (Object, bool) {
	switch v := fv.Interface().(type) {
	case Version:
		if v < V1_0 || v >= tooHighVersion {
			return nil, false
		}
		return Name(v.String()), true
	case language.Tag:
		if v == (language.Tag{}) {
			return nil, false
		}
		return TextString(v.String()), true
	case TextString:
		return v, true
	case Date:
		return v, true
	case Object:
		if fv.Kind() == reflect.Ptr && fv.IsNil() {
			return nil, false
		}
		return v, true
	}

	switch fv.Kind() {
	case reflect.Bool:
		return Boolean(fv.Bool()), true
	case reflect.String:
		return Name(fv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(fv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer(fv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return Real(fv.Float()), true
	case reflect.Ptr:
		if fv.IsNil() {
			return nil, false
		}
		return fieldToObject(fv.Elem())
	default:
		return nil, false
	}
}

// DecodeDict populates the struct (or pointer to struct) pointed to by v
// from dict, resolving indirect references via r. r may be nil if dict is
// known to contain no indirect references (as in most of this package's
// own tests).
//
// Fields must be tagged `pdf:"optional"` unless the corresponding key is
// required to be present in dict; a required, absent key is an error.
func DecodeDict(r Getter, v any, dict Dict) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("pdf: DecodeDict: expected non-nil pointer, got %T", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("pdf: DecodeDict: expected pointer to struct, got %T", v)
	}

	rt := rv.Type()
	used := make(map[Name]bool)

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := parseStructTag(field.Tag.Get("pdf"))

		if field.Name == "_" {
			continue
		}
		if !field.IsExported() {
			continue
		}
		if tag.extra {
			continue
		}

		key := Name(field.Name)
		if tag.name != "" {
			key = Name(tag.name)
		}
		used[key] = true

		raw, present := dict[key]
		if !present || raw == nil {
			if !tag.optional {
				return &MalformedFileError{
					Err: fmt.Errorf("required field %q is missing", key),
				}
			}
			continue
		}

		fv := rv.Field(i)
		if err := decodeField(r, fv, raw, tag); err != nil {
			if tag.optional {
				continue
			}
			return Wrap(err, string(key))
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := parseStructTag(field.Tag.Get("pdf"))
		if !tag.extra || !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() != reflect.Map {
			continue
		}
		m := reflect.MakeMap(fv.Type())
		for key, raw := range dict {
			if used[key] {
				continue
			}
			s, err := GetTextString(r, raw)
			if err != nil {
				continue
			}
			m.SetMapIndex(reflect.ValueOf(string(key)), reflect.ValueOf(string(s)).Convert(fv.Type().Elem()))
		}
		fv.Set(m)
	}

	return nil
}

func decodeField(r Getter, fv reflect.Value, raw Object, tag structTag) error {
	switch fv.Interface().(type) {
	case Version:
		var s string
		switch x := raw.(type) {
		case Name:
			s = string(x)
		case String:
			s = string(x)
		case Real:
			s = fmt.Sprintf("%.1f", float64(x))
		default:
			return fmt.Errorf("invalid version: %v", raw)
		}
		v, err := ParseVersion(s)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case language.Tag:
		ts, err := GetTextString(r, raw)
		if err != nil {
			return err
		}
		lang, err := language.Parse(string(ts))
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(lang))
		return nil
	case TextString:
		ts, err := GetTextString(r, raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(ts))
		return nil
	case Date:
		d, err := GetDate(r, raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(d))
		return nil
	case Reference:
		resolved, isRef := raw.(Reference)
		if !isRef {
			return fmt.Errorf("expected reference, got %T", raw)
		}
		fv.Set(reflect.ValueOf(resolved))
		return nil
	}

	if fv.Type() == reflect.TypeOf((*Object)(nil)).Elem() {
		resolved, err := Resolve(r, raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(resolved))
		return nil
	}

	resolved, err := Resolve(r, raw)
	if err != nil {
		return err
	}
	if resolved == nil {
		return nil
	}

	switch fv.Kind() {
	case reflect.Bool:
		b, ok := resolved.(Boolean)
		if !ok {
			return fmt.Errorf("expected Boolean, got %T", resolved)
		}
		fv.SetBool(bool(b))
	case reflect.String:
		switch x := resolved.(type) {
		case Name:
			fv.SetString(string(x))
		case String:
			if tag.allowString {
				fv.SetString(string(x))
			} else {
				return fmt.Errorf("expected Name, got String")
			}
		default:
			return fmt.Errorf("expected Name, got %T", resolved)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := GetInteger(r, resolved)
		if err != nil {
			return err
		}
		fv.SetInt(int64(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := GetInteger(r, resolved)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		n, err := GetNumber(r, resolved)
		if err != nil {
			return err
		}
		fv.SetFloat(float64(n))
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}
