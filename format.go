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
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Format writes the PDF object syntax for obj to w. Strings are always
// written in hexadecimal form, and dictionary keys are written in sorted
// order, so that the output is a deterministic function of the object's
// value -- this is what makes [scanner]'s round-trip fuzzing meaningful.
//
// Format cannot write *Stream objects; the stream body has no canonical
// in-memory representation once read lazily, so callers needing to emit a
// stream must write the dictionary and body separately.
func Format(w io.Writer, opt OutputOptions, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return formatNative(w, opt, obj.AsPDF(opt))
}

// AsString renders obj using [Format], for use in error messages and
// diagnostics. Formatting errors are embedded in the returned string rather
// than propagated, since this function is only used where a string is
// unconditionally required.
func AsString(obj Object) string {
	var buf bytes.Buffer
	if err := Format(&buf, 0, obj); err != nil {
		return fmt.Sprintf("<cannot format object: %s>", err)
	}
	return buf.String()
}

// ParseString decodes a single PDF string literal, in either the
// parenthesized "(...)" or hexadecimal "<...>" form, and returns its raw
// byte value.
func ParseString(data []byte) (String, error) {
	s := newScanner(bytes.NewReader(data), nil, nil)
	b, err := s.peekByte()
	if err != nil {
		return nil, err
	}

	var obj Object
	switch b {
	case '(':
		obj, err = s.readLiteralString()
	case '<':
		obj, err = s.readHexString()
	default:
		return nil, fmt.Errorf("pdf: ParseString: unexpected character %q", b)
	}
	if err != nil {
		return nil, err
	}
	str, ok := obj.(String)
	if !ok {
		return nil, fmt.Errorf("pdf: ParseString: expected a string, got %T", obj)
	}
	return str, nil
}

func formatNative(w io.Writer, opt OutputOptions, obj Native) error {
	switch x := obj.(type) {
	case nil:
		_, err := io.WriteString(w, "null")
		return err
	case Boolean:
		s := "false"
		if x {
			s = "true"
		}
		_, err := io.WriteString(w, s)
		return err
	case Integer:
		_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
		return err
	case Real:
		_, err := io.WriteString(w, strconv.FormatFloat(float64(x), 'f', -1, 64))
		return err
	case Name:
		return formatName(w, x)
	case String:
		return formatHexString(w, x)
	case Array:
		return formatArray(w, opt, x)
	case Dict:
		return formatDict(w, opt, x)
	case *Stream:
		return Error("pdf: Format cannot write a stream object")
	case Reference:
		_, err := fmt.Fprintf(w, "%d %d R", x.Number(), x.Generation())
		return err
	default:
		return fmt.Errorf("pdf: Format: unsupported type %T", obj)
	}
}

func formatName(w io.Writer, n Name) error {
	if _, err := io.WriteString(w, "/"); err != nil {
		return err
	}
	for i := 0; i < len(n); i++ {
		b := n[i]
		if b == '#' || b < 0x21 || b > 0x7E || isDelimiter(b) {
			if _, err := fmt.Fprintf(w, "#%02X", b); err != nil {
				return err
			}
			continue
		}
		if _, err := w.Write(n[i : i+1]); err != nil {
			return err
		}
	}
	return nil
}

const hexDigitsLower = "0123456789abcdef"

func formatHexString(w io.Writer, s String) error {
	if _, err := io.WriteString(w, "<"); err != nil {
		return err
	}
	for _, b := range s {
		if _, err := w.Write([]byte{hexDigitsLower[b>>4], hexDigitsLower[b&0xF]}); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">")
	return err
}

func formatArray(w io.Writer, opt OutputOptions, arr Array) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, elem := range arr {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if elem == nil {
			if _, err := io.WriteString(w, "null"); err != nil {
				return err
			}
			continue
		}
		native, ok := elem.(Native)
		if !ok {
			native = elem.AsPDF(opt)
		}
		if err := formatNative(w, opt, native); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

func formatDict(w io.Writer, opt OutputOptions, d Dict) error {
	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	for _, key := range d.sortedKeys() {
		v := d[key]
		if v == nil {
			// a missing key and a key mapped to null are equivalent
			// (PDF 32000-1:2008, 7.3.9); omit it rather than writing it out.
			continue
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := formatName(w, key); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		native, ok := v.(Native)
		if !ok {
			native = v.AsPDF(opt)
		}
		if err := formatNative(w, opt, native); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " >>")
	return err
}
