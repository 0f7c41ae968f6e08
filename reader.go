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
	"fmt"
	"io"
	"os"
)

// ErrorHandling controls how [NewReader] reacts to a PDF file that
// violates the format but can be worked around.
type ErrorHandling int

const (
	// ErrorHandlingStrict returns the first error encountered while
	// locating the document's cross-reference information, even for
	// problems many PDF readers recover from.
	ErrorHandlingStrict ErrorHandling = iota

	// ErrorHandlingReport recovers from a missing or corrupted
	// cross-reference table/stream by reconstructing one through a
	// brute-force scan for indirect object headers, and records what
	// went wrong as a [Diagnostic] rather than failing outright.
	ErrorHandlingReport
)

// ReaderOptions controls the behaviour of [NewReader] and [Open].
type ReaderOptions struct {
	// ReadPassword, if non-nil, is called to obtain a password for an
	// encrypted document. try starts at 0 and increases on every failed
	// attempt; ReadPassword should return "" once it has no more
	// passwords to offer.
	ReadPassword func(ID []byte, try int) string

	ErrorHandling ErrorHandling
}

// Reader gives read access to an existing PDF document.
type Reader struct {
	size int64
	r    io.ReadSeeker
	closer io.Closer

	opt *ReaderOptions

	xref map[uint32]*xRefEntry
	meta MetaInfo
	ID   [][]byte
	enc  *encryptInfo

	objStms map[Reference]*objStmIndex

	diagnostics []Diagnostic
}

// objStmIndex is the parsed header of an object stream: for each
// compressed object it records the byte offset (relative to the data
// following /First) at which the object's value starts.
type objStmIndex struct {
	offsets []int
	data    []byte
}

// NewReader opens a PDF document for reading.  r must support seeking, so
// that the cross-reference information (which is stored at the end of the
// file) can be located before the rest of the document is parsed.
func NewReader(r io.ReadSeeker, opt *ReaderOptions) (*Reader, error) {
	if opt == nil {
		opt = &ReaderOptions{}
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	pdf := &Reader{size: size, r: r, opt: opt}

	hs := newScanner(r, nil, nil)
	version, err := hs.readHeaderVersion()
	if err != nil {
		return nil, err
	}
	pdf.meta.Version = version

	trailer, err := pdf.readXRefAll()
	if err != nil {
		trailer, err = pdf.reconstructXRef()
		if err != nil {
			return nil, err
		}
	}
	pdf.meta.Trailer = trailer

	if idArr, ok := trailer["ID"].(Array); ok {
		for _, v := range idArr {
			if s, ok := v.(String); ok {
				pdf.ID = append(pdf.ID, []byte(s))
			}
		}
	}
	pdf.meta.ID = pdf.ID

	if encObj := trailer["Encrypt"]; encObj != nil {
		enc, err := pdf.parseEncryptDict(encObj, opt.ReadPassword)
		if err != nil {
			return nil, err
		}
		pdf.enc = enc
	}

	cat := &Catalog{}
	if rootObj := trailer["Root"]; rootObj != nil {
		dict, err := GetDictTyped(pdf, rootObj, "Catalog")
		if err != nil {
			return nil, err
		}
		if dict != nil {
			if err := DecodeDict(pdf, cat, dict); err != nil {
				return nil, err
			}
		}
	}
	pdf.meta.Catalog = cat

	if infoObj := trailer["Info"]; infoObj != nil {
		dict, err := GetDict(pdf, infoObj)
		if err != nil {
			return nil, err
		}
		if dict != nil {
			info := &Info{}
			if err := DecodeDict(pdf, info, dict); err != nil {
				return nil, err
			}
			pdf.meta.Info = info
		}
	}

	return pdf, nil
}

// Open opens the named file as a PDF document.
func Open(fname string, opt *ReaderOptions) (*Reader, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(fd, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	r.closer = fd
	return r, nil
}

// Close closes the underlying file, if the Reader was created by [Open].
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// GetMeta implements the [Getter] interface.
func (r *Reader) GetMeta() *MetaInfo {
	return &r.meta
}

// Diagnostics returns the non-fatal conditions noticed while reading the
// file so far (cross-reference reconstruction, and similar recoverable
// problems).
func (r *Reader) Diagnostics() []Diagnostic {
	return r.diagnostics
}

func (r *Reader) diag(sev DiagnosticSeverity, msg string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Severity: sev, Message: msg})
}

func (r *Reader) readXRefAll() (Dict, error) {
	start, err := r.findXRef()
	if err != nil {
		return nil, err
	}
	xref := map[uint32]*xRefEntry{}
	trailer, err := r.readXRefSection(start, xref, map[int64]bool{})
	if err != nil {
		return nil, err
	}
	r.xref = xref
	return trailer, nil
}

// AuthenticateOwner tries to authenticate as the owner of an encrypted
// document, requesting passwords via the ReaderOptions.ReadPassword
// callback as needed.  For documents which are not encrypted, this is a
// no-op.
func (r *Reader) AuthenticateOwner() error {
	if r.enc == nil {
		return nil
	}
	_, err := r.enc.sec.GetKey(true)
	return err
}

// Permissions returns the operations a user authenticating with the user
// password (as opposed to the owner password) is allowed to perform. For
// a document which is not encrypted, it returns [PermAll].
func (r *Reader) Permissions() Perm {
	if r.enc == nil {
		return PermAll
	}
	return r.enc.UserPermissions
}

// Get implements the [Getter] interface: it reads the object with the
// given reference number directly from the file (or, if canObjStm is
// true and the object was stored inside an object stream, decompresses
// it from there).
func (r *Reader) Get(ref Reference, canObjStm bool) (Native, error) {
	if ref.IsInternal() {
		return nil, errors.New("pdf: cannot read internal reference")
	}

	entry := r.xref[ref.Number()]
	if entry == nil || entry.IsFree() {
		return nil, nil
	}
	if entry.InStream != 0 {
		if !canObjStm {
			return nil, &MalformedFileError{
				Err: errors.New("object stored in an object stream where a direct object is required"),
			}
		}
		return r.getCompressed(entry)
	}
	if entry.Generation != ref.Generation() {
		return nil, nil
	}
	return r.getDirect(ref, entry.Pos)
}

// getDirect parses the indirect object "N G obj ... endobj" starting at
// byte offset pos.
func (r *Reader) getDirect(ref Reference, pos int64) (Native, error) {
	if _, err := r.r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}

	// getInt resolves a (possibly indirect) /Length value for a stream
	// nested in this object. Resolving an indirect reference may itself
	// call Get recursively, moving the shared io.ReadSeeker's position;
	// save and restore it around that call so that the scanner reading
	// the outer object can keep reading from where it left off.
	getInt := func(obj Object) (Integer, error) {
		save, err := r.r.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		n, err := getIntegerNoObjStm(r, obj)
		if _, serr := r.r.Seek(save, io.SeekStart); err == nil && serr != nil {
			err = serr
		}
		return n, err
	}

	var decrypt func(String) (String, error)
	if r.enc != nil {
		decrypt = func(s String) (String, error) {
			dec, err := r.enc.DecryptBytes(ref, []byte(s))
			if err != nil {
				return nil, err
			}
			return String(dec), nil
		}
	}

	s := newScanner(r.r, getInt, decrypt)
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

	if stm, ok := obj.(*Stream); ok && r.enc != nil {
		stm.crypt = &filterCrypt{enc: r.enc, ref: ref}
	}

	if obj == nil {
		return nil, nil
	}
	native, ok := obj.(Native)
	if !ok {
		return nil, &MalformedFileError{Err: fmt.Errorf("object is not a direct value: %T", obj)}
	}
	return native, nil
}

// getCompressed decompresses one object from an object stream (PDF
// 32000-1:2008 section 7.5.7). Objects nested in object streams can never
// themselves be streams, so no decryption filter needs to be attached,
// and the only decryption that applies is to the containing stream as a
// whole (handled by DecodeStream when the index is built).
func (r *Reader) getCompressed(entry *xRefEntry) (Native, error) {
	idx, err := r.loadObjStm(entry.InStream)
	if err != nil {
		return nil, err
	}

	i := int(entry.Pos)
	if i < 0 || i >= len(idx.offsets) {
		return nil, &MalformedFileError{Err: errors.New("object index out of range in object stream")}
	}
	offset := idx.offsets[i]
	if offset < 0 || offset > len(idx.data) {
		return nil, &MalformedFileError{Err: errors.New("invalid offset in object stream")}
	}

	s := newScanner(bytes.NewReader(idx.data[offset:]), nil, nil)
	if err := s.SkipWhiteSpace(); err != nil {
		return nil, err
	}
	obj, err := s.ReadObject()
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	native, ok := obj.(Native)
	if !ok {
		return nil, &MalformedFileError{Err: fmt.Errorf("object is not a direct value: %T", obj)}
	}
	return native, nil
}

func (r *Reader) loadObjStm(ref Reference) (*objStmIndex, error) {
	if idx, ok := r.objStms[ref]; ok {
		return idx, nil
	}

	obj, err := r.Get(ref, false)
	if err != nil {
		return nil, err
	}
	stm, ok := obj.(*Stream)
	if !ok {
		return nil, &MalformedFileError{Err: fmt.Errorf("expected object stream, got %T", obj)}
	}

	n, err := GetInt(r, stm.Dict["N"])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &MalformedFileError{Err: errors.New("invalid /N in object stream")}
	}
	first, err := GetInt(r, stm.Dict["First"])
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeStream(r, stm, 0)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, err
	}
	if first < 0 || first > len(data) {
		return nil, &MalformedFileError{Err: errors.New("invalid /First in object stream")}
	}

	hs := newScanner(bytes.NewReader(data[:first]), nil, nil)
	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		if _, err := hs.ReadInteger(); err != nil { // object number, unused: entries are found by index
			return nil, err
		}
		off, err := hs.ReadInteger()
		if err != nil {
			return nil, err
		}
		offsets[i] = int(off)
	}

	idx := &objStmIndex{offsets: offsets, data: data[first:]}
	if r.objStms == nil {
		r.objStms = map[Reference]*objStmIndex{}
	}
	r.objStms[ref] = idx
	return idx, nil
}
