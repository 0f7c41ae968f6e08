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
	"errors"
	"io"
	"regexp"
	"strconv"
)

// xRefEntry records how to locate one numbered object: either at a direct
// byte offset in the file (classic cross-reference table/stream entries of
// type 1), or packed inside an object stream (type 2 entries).
type xRefEntry struct {
	// Pos is the byte offset of the "N G obj" header, for direct entries,
	// or the index of this object within the compressed object stream
	// InStream, for compressed entries.
	Pos int64

	// InStream is non-zero if this object is stored inside an object
	// stream, in which case Pos gives the object's index within the
	// stream's /N count rather than a byte offset.
	InStream Reference

	Generation uint16

	Free bool
}

// IsFree reports whether the entry marks a free (deleted/unused) object
// number.
func (e *xRefEntry) IsFree() bool {
	return e.Free
}

// xrefSearchWindow bounds how far back from the end of the file the
// "startxref" keyword and trailer dictionary are searched for.
const xrefSearchWindow = 4096

// findXRef locates the byte offset recorded after the last "startxref"
// keyword in the file.
func (r *Reader) findXRef() (int64, error) {
	pos, err := r.lastOccurence("startxref")
	if err != nil {
		return 0, err
	}
	if _, err := r.r.Seek(pos+int64(len("startxref")), io.SeekStart); err != nil {
		return 0, err
	}
	s := newScanner(r.r, nil, nil)
	if err := s.SkipWhiteSpace(); err != nil {
		return 0, err
	}
	n, err := s.ReadInteger()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, s.malformed("negative cross-reference offset")
	}
	return int64(n), nil
}

// lastOccurence returns the byte offset of the last occurrence of pattern
// within the final xrefSearchWindow bytes of the file.
func (r *Reader) lastOccurence(pattern string) (int64, error) {
	windowSize := int64(len(pattern)) + xrefSearchWindow
	if windowSize > r.size {
		windowSize = r.size
	}
	start := r.size - windowSize
	if start < 0 {
		start = 0
	}
	if _, err := r.r.Seek(start, io.SeekStart); err != nil {
		return 0, err
	}
	buf := make([]byte, windowSize)
	if _, err := io.ReadFull(r.r, buf); err != nil && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	idx := bytes.LastIndex(buf, []byte(pattern))
	if idx < 0 {
		return 0, errors.New("pdf: " + pattern + " not found near end of file")
	}
	return start + int64(idx), nil
}

// readXRefSection parses the cross-reference section (a classic table or a
// cross-reference stream, PDF 32000-1:2008 section 7.5.4/7.5.8) starting at
// byte offset pos, adding any entries not already present in xref (entries
// from the most recent revision take priority over those introduced by
// /Prev chains of earlier incremental updates), and returns that section's
// trailer dictionary (or, for a cross-reference stream, the stream
// dictionary itself, which plays the same role).
func (r *Reader) readXRefSection(pos int64, xref map[uint32]*xRefEntry, seen map[int64]bool) (Dict, error) {
	if seen[pos] {
		return nil, &MalformedFileError{Err: errors.New("cross-reference /Prev loop"), Pos: pos}
	}
	seen[pos] = true

	if _, err := r.r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	s := newScanner(r.r, nil, nil)
	if s.tryKeyword("xref") {
		return r.readXRefTable(s, xref, seen)
	}
	return r.readXRefStream(pos, xref, seen)
}

func (r *Reader) readXRefTable(s *scanner, xref map[uint32]*xRefEntry, seen map[int64]bool) (Dict, error) {
	for {
		if err := s.SkipWhiteSpace(); err != nil {
			return nil, err
		}
		if s.tryKeyword("trailer") {
			break
		}

		startObj, err := s.ReadInteger()
		if err != nil {
			return nil, err
		}
		count, err := s.ReadInteger()
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, s.malformed("negative cross-reference subsection size")
		}

		for i := Integer(0); i < count; i++ {
			off, err := s.ReadInteger()
			if err != nil {
				return nil, err
			}
			gen, err := s.ReadInteger()
			if err != nil {
				return nil, err
			}
			if err := s.SkipWhiteSpace(); err != nil {
				return nil, err
			}
			kw, err := s.nextByte()
			if err != nil {
				return nil, err
			}

			num := uint32(startObj + i)
			if _, exists := xref[num]; !exists {
				xref[num] = &xRefEntry{
					Pos:        int64(off),
					Generation: uint16(gen),
					Free:       kw == 'f',
				}
			}
		}
	}

	if err := s.SkipWhiteSpace(); err != nil {
		return nil, err
	}
	trailerObj, err := s.ReadObject()
	if err != nil {
		return nil, err
	}
	trailer, ok := trailerObj.(Dict)
	if !ok {
		return nil, s.malformed("trailer is not a dictionary")
	}

	return r.followXRefChain(trailer, xref, seen)
}

// readXRefStream parses a cross-reference stream (PDF 1.5+, PDF
// 32000-1:2008 section 7.5.8), whose object header starts at pos.
func (r *Reader) readXRefStream(pos int64, xref map[uint32]*xRefEntry, seen map[int64]bool) (Dict, error) {
	s := newScanner(r.r, func(obj Object) (Integer, error) {
		if n, ok := obj.(Integer); ok {
			return n, nil
		}
		return 0, errors.New("cross-reference stream: /Length must be a direct integer")
	}, nil)

	if _, err := s.ReadInteger(); err != nil { // object number
		return nil, err
	}
	if _, err := s.ReadInteger(); err != nil { // generation
		return nil, err
	}
	if err := s.SkipWhiteSpace(); err != nil {
		return nil, err
	}
	if _, err := s.readKeyword("obj", nil); err != nil {
		return nil, err
	}
	if err := s.SkipWhiteSpace(); err != nil {
		return nil, err
	}
	obj, err := s.ReadObject()
	if err != nil {
		return nil, err
	}
	stm, ok := obj.(*Stream)
	if !ok {
		return nil, s.malformed("expected a cross-reference stream")
	}
	dict := stm.Dict

	wArr, ok := dict["W"].(Array)
	if !ok || len(wArr) != 3 {
		return nil, &MalformedFileError{Err: errors.New("invalid /W in cross-reference stream")}
	}
	w := make([]int, 3)
	for i, v := range wArr {
		n, ok := v.(Integer)
		if !ok || n < 0 {
			return nil, &MalformedFileError{Err: errors.New("invalid /W in cross-reference stream")}
		}
		w[i] = int(n)
	}

	size, _ := dict["Size"].(Integer)
	var index []int64
	if idxArr, ok := dict["Index"].(Array); ok {
		for _, v := range idxArr {
			n, ok := v.(Integer)
			if !ok {
				return nil, &MalformedFileError{Err: errors.New("invalid /Index in cross-reference stream")}
			}
			index = append(index, int64(n))
		}
	} else {
		index = []int64{0, int64(size)}
	}

	decoded, err := DecodeStream(nil, stm, 0)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, err
	}

	entrySize := w[0] + w[1] + w[2]
	if entrySize <= 0 {
		return nil, &MalformedFileError{Err: errors.New("invalid /W in cross-reference stream")}
	}

	offset := 0
	for i := 0; i+1 < len(index); i += 2 {
		start := index[i]
		count := index[i+1]
		for k := int64(0); k < count; k++ {
			if offset+entrySize > len(data) {
				return nil, &MalformedFileError{Err: errors.New("truncated cross-reference stream")}
			}
			rec := data[offset : offset+entrySize]
			offset += entrySize

			fieldType := int64(1)
			if w[0] > 0 {
				fieldType = beInt(rec[:w[0]])
			}
			f2 := beInt(rec[w[0] : w[0]+w[1]])
			f3 := beInt(rec[w[0]+w[1]:])

			num := uint32(start + k)
			if _, exists := xref[num]; exists {
				continue
			}
			switch fieldType {
			case 0:
				xref[num] = &xRefEntry{Free: true}
			case 1:
				xref[num] = &xRefEntry{Pos: f2, Generation: uint16(f3)}
			case 2:
				xref[num] = &xRefEntry{InStream: NewReference(uint32(f2), 0), Pos: f3}
			}
		}
	}

	return r.followXRefChain(dict, xref, seen)
}

// followXRefChain recurses into /Prev and, for hybrid-reference files,
// /XRefStm, merging their entries into xref at lower priority.
func (r *Reader) followXRefChain(trailer Dict, xref map[uint32]*xRefEntry, seen map[int64]bool) (Dict, error) {
	if hybrid, ok := trailer["XRefStm"].(Integer); ok {
		if _, err := r.readXRefSection(int64(hybrid), xref, seen); err != nil {
			r.diag(SeverityWarning, "ignoring malformed /XRefStm: "+err.Error())
		}
	}
	if prev, ok := trailer["Prev"].(Integer); ok {
		if _, err := r.readXRefSection(int64(prev), xref, seen); err != nil {
			r.diag(SeverityWarning, "ignoring malformed /Prev cross-reference section: "+err.Error())
		}
	}
	return trailer, nil
}

func beInt(b []byte) int64 {
	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v
}

// objHeaderPattern matches an indirect object header "N G obj", used by
// reconstructXRef to rebuild a cross-reference table by brute-force
// scanning when the recorded one is missing or broken.
var objHeaderPattern = regexp.MustCompile(`(\d+)[ \t\r\n]+(\d+)[ \t\r\n]+obj\b`)

// reconstructXRef rebuilds a cross-reference table from scratch by
// scanning the whole file for object headers, for files whose recorded
// cross-reference section is missing, truncated, or corrupted.
func (r *Reader) reconstructXRef() (Dict, error) {
	if _, err := r.r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r.r)
	if err != nil {
		return nil, err
	}

	xref := map[uint32]*xRefEntry{}
	for _, m := range objHeaderPattern.FindAllSubmatchIndex(data, -1) {
		num, err := strconv.ParseUint(string(data[m[2]:m[3]]), 10, 32)
		if err != nil {
			continue
		}
		gen, err := strconv.ParseUint(string(data[m[4]:m[5]]), 10, 16)
		if err != nil {
			continue
		}
		// A later definition of the same object number (from an
		// incremental update) overrides an earlier one.
		xref[uint32(num)] = &xRefEntry{Pos: int64(m[0]), Generation: uint16(gen)}
	}
	r.xref = xref
	r.diag(SeverityWarning, "cross-reference table reconstructed by scanning for object headers")

	trailer := Dict{}
	if idx := bytes.LastIndex(data, []byte("trailer")); idx >= 0 {
		s := newScanner(bytes.NewReader(data[idx+len("trailer"):]), nil, nil)
		if err := s.SkipWhiteSpace(); err == nil {
			if obj, err := s.ReadObject(); err == nil {
				if d, ok := obj.(Dict); ok {
					trailer = d
				}
			}
		}
	}

	if trailer["Root"] == nil {
		for num, entry := range xref {
			if entry.IsFree() {
				continue
			}
			ref := NewReference(num, entry.Generation)
			obj, err := r.Get(ref, false)
			if err != nil {
				continue
			}
			d, ok := obj.(Dict)
			if !ok {
				continue
			}
			if t, _ := d["Type"].(Name); t == "Catalog" {
				trailer["Root"] = ref
				break
			}
		}
	}

	return trailer, nil
}
