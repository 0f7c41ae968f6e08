// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"golang.org/x/exp/maps"
)

// WriterOptions controls the behaviour of [NewWriter] and [Create].
type WriterOptions struct {
	// ID, if non-empty, supplies the first element of the file's /ID pair
	// in the trailer (the part that stays constant across incremental
	// updates of the same document). A second element is always generated
	// at random. If ID is empty, both elements are generated at random.
	ID [][]byte

	// UserPassword and OwnerPassword, if either is non-empty, cause the
	// document to be encrypted using the PDF standard security handler.
	// An empty OwnerPassword defaults to the user password.
	UserPassword  string
	OwnerPassword string

	// UserPermissions restricts what a reader authenticating with only the
	// user password may do. Zero defaults to [PermAll].
	UserPermissions Perm
}

// Writer writes a new PDF document.
//
// Objects are buffered in memory as they are added via [Writer.Put],
// [Writer.OpenStream] and [Writer.WriteCompressed]; the file is only
// serialised to the underlying io.Writer when [Writer.Close] is called.
// This mirrors the structure of a PDF file described in section 7.5 of
// PDF 32000-1:2008: a header, a body of indirect objects, a
// cross-reference section and a trailer.
type Writer struct {
	w               io.Writer
	closeDownstream bool

	meta    MetaInfo
	objects map[Reference]Object
	xref    map[uint32]*xRefEntry
	lastRef uint32

	enc *encryptInfo

	placeholders []*Placeholder

	closed bool
}

// NewWriter creates a [Writer] which writes a PDF document of the given
// version to w.
func NewWriter(w io.Writer, v Version, opt *WriterOptions) (*Writer, error) {
	if opt == nil {
		opt = &WriterOptions{}
	}

	pdf := &Writer{
		w: w,
		meta: MetaInfo{
			Version: v,
			Catalog: &Catalog{},
		},
		objects: map[Reference]Object{},
		xref:    map[uint32]*xRefEntry{},
	}

	var id []byte
	if len(opt.ID) > 0 {
		id = opt.ID[0]
	} else {
		id = make([]byte, 16)
		if _, err := io.ReadFull(rand.Reader, id); err != nil {
			return nil, err
		}
	}
	second := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, second); err != nil {
		return nil, err
	}
	pdf.meta.ID = [][]byte{id, second}

	if opt.UserPassword != "" || opt.OwnerPassword != "" {
		cipher, length, V := encryptionParams(v)
		perm := opt.UserPermissions
		if perm == 0 {
			perm = PermAll
		}
		sec, err := createStdSecHandler(id, opt.UserPassword, opt.OwnerPassword, perm, length, V)
		if err != nil {
			return nil, err
		}
		cf := &cryptFilter{Cipher: cipher, Length: length}
		pdf.enc = &encryptInfo{
			sec:             sec,
			strF:            cf,
			stmF:            cf,
			efF:             cf,
			UserPermissions: perm,
		}
	}

	return pdf, nil
}

// encryptionParams picks the cipher, key length (in bits) and Encrypt /V
// value used by [NewWriter] to encrypt a document of the given version,
// following the version gates in [*encryptInfo.AsDict].
func encryptionParams(v Version) (cipherType, int, int) {
	switch {
	case v >= V2_0:
		return cipherAES, 256, 5
	case v >= V1_6:
		return cipherAES, 128, 4
	case v >= V1_4:
		return cipherRC4, 128, 2
	default:
		return cipherRC4, 40, 1
	}
}

// Create creates the named file and opens it for writing a new PDF
// document. The file is closed automatically when [Writer.Close] is
// called.
func Create(path string, v Version, opt *WriterOptions) (*Writer, error) {
	fd, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(fd, v, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	w.closeDownstream = true
	return w, nil
}

// GetMeta implements the [Getter] and [Putter] interfaces.
func (w *Writer) GetMeta() *MetaInfo {
	return &w.meta
}

// Alloc allocates a new object number for an indirect object.
func (w *Writer) Alloc() Reference {
	for {
		w.lastRef++
		ref := NewReference(w.lastRef, 0)
		if _, used := w.objects[ref]; used {
			continue
		}
		if _, used := w.xref[ref.Number()]; used {
			continue
		}
		return ref
	}
}

// Put writes obj to the file as the indirect object ref. Passing a nil
// obj removes any previously stored value for ref.
func (w *Writer) Put(ref Reference, obj Object) error {
	if ref.IsInternal() {
		return errors.New("pdf: cannot Put an internal reference")
	}
	if obj == nil {
		delete(w.objects, ref)
		return nil
	}
	if _, exists := w.objects[ref]; exists {
		return errDuplicateRef
	}
	w.objects[ref] = obj
	return nil
}

// Get implements the [Getter] interface, giving access to objects already
// buffered via [Writer.Put] or [Writer.OpenStream]. Objects nested inside
// object streams written via [Writer.WriteCompressed] cannot be read back
// this way.
func (w *Writer) Get(ref Reference, _ bool) (Native, error) {
	if ref.IsInternal() {
		return nil, errors.New("pdf: cannot read internal reference")
	}
	obj := w.objects[ref]
	switch x := obj.(type) {
	case *Stream:
		if ss, ok := x.R.(io.Seeker); ok {
			if _, err := ss.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
		}
	case Dict:
		obj = maps.Clone(x)
	case Array:
		obj = slices.Clone(x)
	}
	if obj == nil {
		return nil, nil
	}
	native, ok := obj.(Native)
	if !ok {
		return nil, &MalformedFileError{Err: errors.New("stored object is not a direct value")}
	}
	return native, nil
}

// OpenStream opens a stream object for writing. The caller must write the
// stream's raw data and call Close on the result; the /Length entry of
// dict is set automatically once the data and all filters have been
// flushed, unless dict already specifies one (e.g. via [NewPlaceholder],
// to support a /Length that is itself an indirect reference).
//
// If the document is encrypted, the stream contents are encrypted after
// all filters listed here have been applied, mirroring the order in which
// [DecodeStream] undoes them.
func (w *Writer) OpenStream(ref Reference, dict Dict, filters ...Filter) (io.WriteCloser, error) {
	streamDict := maps.Clone(dict)
	if streamDict == nil {
		streamDict = Dict{}
	}
	if filter, ok := streamDict["Filter"].(Array); ok {
		streamDict["Filter"] = append(Array{}, filter...)
	}
	if decodeParms, ok := streamDict["DecodeParms"].(Array); ok {
		streamDict["DecodeParms"] = append(Array{}, decodeParms...)
	}

	s := &Stream{Dict: streamDict}
	w.objects[ref] = s

	var out io.WriteCloser = &writerStreamWriter{s: s}
	var err error
	if w.enc != nil {
		cf := &filterCrypt{enc: w.enc, ref: ref}
		out, err = cf.Encode(w.meta.Version, out)
		if err != nil {
			return nil, err
		}
	}
	for _, filter := range filters {
		out, err = filter.Encode(w.meta.Version, out)
		if err != nil {
			return nil, err
		}

		name, parms, err := filter.Info(w.meta.Version)
		if err != nil {
			return nil, err
		}
		appendFilter(streamDict, name, parms)
	}
	return out, nil
}

type writerStreamWriter struct {
	bytes.Buffer
	s *Stream
}

func (sw *writerStreamWriter) Close() error {
	sw.s.R = bytes.NewReader(sw.Bytes())
	if _, alreadySet := sw.s.Dict["Length"]; !alreadySet {
		sw.s.Dict["Length"] = Integer(sw.Len())
	}
	return nil
}

// WriteCompressed writes a group of objects into a newly allocated object
// stream (PDF 32000-1:2008, section 7.5.7). None of objects may itself be
// a stream.
func (w *Writer) WriteCompressed(refs []Reference, objects ...Object) error {
	if err := checkCompressed(refs, objects); err != nil {
		return err
	}

	var header, body bytes.Buffer
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = body.Len()
		if err := Format(&body, 0, obj); err != nil {
			return err
		}
		body.WriteByte('\n')
	}
	for i, ref := range refs {
		fmt.Fprintf(&header, "%d %d ", ref.Number(), offsets[i])
	}
	first := header.Len()

	stmRef := w.Alloc()
	dict := Dict{
		"Type":  Name("ObjStm"),
		"N":     Integer(len(objects)),
		"First": Integer(first),
	}
	stmWriter, err := w.OpenStream(stmRef, dict, FilterCompress{})
	if err != nil {
		return err
	}
	if _, err := stmWriter.Write(header.Bytes()); err != nil {
		return err
	}
	if _, err := stmWriter.Write(body.Bytes()); err != nil {
		return err
	}
	if err := stmWriter.Close(); err != nil {
		return err
	}

	for i, ref := range refs {
		w.xref[ref.Number()] = &xRefEntry{
			InStream:   stmRef,
			Pos:        int64(i),
			Generation: ref.Generation(),
		}
	}
	return nil
}

// Placeholder reserves space in the output for a value (currently always
// an Integer, e.g. a stream's /Length) which is not known until after the
// value using it has already been written.
//
// If the Writer's underlying io.Writer also implements io.WriteSeeker
// (e.g. a file created via [Create]), the reserved space is patched in
// place once [Writer.Close] runs. Otherwise the placeholder is written as
// an indirect reference, and [Placeholder.Set] stores the final value via
// [Writer.Put].
type Placeholder struct {
	w    *Writer
	ref  Reference
	size int
	pos  int64
	value *Integer
}

// NewPlaceholder allocates a new [Placeholder] reserving size decimal
// digits of space.
func NewPlaceholder(w *Writer, size int) *Placeholder {
	p := &Placeholder{w: w, size: size}
	if _, seekable := w.w.(io.WriteSeeker); !seekable {
		p.ref = w.Alloc()
	}
	w.placeholders = append(w.placeholders, p)
	return p
}

// Set supplies the value for the placeholder.
func (p *Placeholder) Set(val Integer) error {
	if p.ref != 0 {
		return p.w.Put(p.ref, val)
	}
	v := val
	p.value = &v
	return nil
}

// AsPDF implements the [Object] interface.
func (p *Placeholder) AsPDF(OutputOptions) Native {
	if p.ref != 0 {
		return p.ref
	}
	if p.value != nil {
		return *p.value
	}
	return Integer(0)
}

// countingWriter wraps an io.Writer, recording the total number of bytes
// written so far. [Writer.Close] uses this to record each object's byte
// offset for the cross-reference stream, and to remember where a
// seekable [Placeholder]'s reserved digits start.
type countingWriter struct {
	w   io.Writer
	pos int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.pos += int64(n)
	return n, err
}

// writeDict writes dict in the same syntax as [Format], except that a
// *Placeholder value reserves size digits of space (recording, in the
// placeholder, the absolute byte offset at which that space starts) in
// place of the value it will later receive.
func (w *Writer) writeDict(cw *countingWriter, dict Dict) error {
	if _, err := io.WriteString(cw, "<<"); err != nil {
		return err
	}
	for _, key := range dict.sortedKeys() {
		v := dict[key]
		if v == nil {
			continue
		}
		if _, err := io.WriteString(cw, " "); err != nil {
			return err
		}
		if err := formatName(cw, key); err != nil {
			return err
		}
		if _, err := io.WriteString(cw, " "); err != nil {
			return err
		}

		if p, ok := v.(*Placeholder); ok {
			if p.ref != 0 {
				if err := formatNative(cw, 0, p.ref); err != nil {
					return err
				}
			} else {
				p.pos = cw.pos
				if _, err := fmt.Fprintf(cw, "%0*d", p.size, 0); err != nil {
					return err
				}
			}
			continue
		}

		native, ok := v.(Native)
		if !ok {
			native = v.AsPDF(0)
		}
		if err := formatNative(cw, 0, native); err != nil {
			return err
		}
	}
	_, err := io.WriteString(cw, " >>")
	return err
}

// encryptObject recursively encrypts the String values nested in obj,
// using the same Object/Native fallback as [Format]. *Placeholder values
// are passed through unencrypted, since only [Integer] is ever stored in
// one.
func encryptObject(enc *encryptInfo, ref Reference, obj Object) (Object, error) {
	if enc == nil || obj == nil {
		return obj, nil
	}
	if p, ok := obj.(*Placeholder); ok {
		return p, nil
	}

	native, ok := obj.(Native)
	if !ok {
		native = obj.AsPDF(0)
	}
	switch x := native.(type) {
	case String:
		out, err := enc.EncryptBytes(ref, append([]byte(nil), x...))
		if err != nil {
			return nil, err
		}
		return String(out), nil
	case Dict:
		out := make(Dict, len(x))
		for k, v := range x {
			ev, err := encryptObject(enc, ref, v)
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil
	case Array:
		out := make(Array, len(x))
		for i, v := range x {
			ev, err := encryptObject(enc, ref, v)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	default:
		return native, nil
	}
}

// Close writes out all buffered objects, the cross-reference stream and
// the trailer, and finishes the document.
//
// The underlying io.Writer is only closed if it implements io.Closer and
// the Writer was created via [Create] (or closeDownstream was set
// explicitly).
func (w *Writer) Close() error {
	if w.closed {
		return errors.New("pdf: Writer already closed")
	}
	w.closed = true

	catalogRef := w.Alloc()
	w.objects[catalogRef] = AsDict(w.meta.Catalog)

	var infoRef Reference
	if w.meta.Info != nil {
		infoRef = w.Alloc()
		w.objects[infoRef] = AsDict(w.meta.Info)
	}

	var encDict Dict
	if w.enc != nil {
		var err error
		encDict, err = w.enc.AsDict(w.meta.Version)
		if err != nil {
			return err
		}
	}

	idArr := Array{}
	for _, id := range w.meta.ID {
		idArr = append(idArr, String(id))
	}

	cw := &countingWriter{w: w.w}

	if _, err := fmt.Fprintf(cw, "%%PDF-%s\n%%\xe2\xe3\xcf\xd3\n", w.meta.Version); err != nil {
		return err
	}

	refs := maps.Keys(w.objects)
	sort.Slice(refs, func(i, j int) bool { return refs[i].Number() < refs[j].Number() })

	for _, ref := range refs {
		pos := cw.pos
		if _, err := fmt.Fprintf(cw, "%d %d obj\n", ref.Number(), ref.Generation()); err != nil {
			return err
		}

		obj := w.objects[ref]
		switch x := obj.(type) {
		case *Stream:
			encoded, err := encryptObject(w.enc, ref, x.Dict)
			if err != nil {
				return err
			}
			dict, _ := encoded.(Dict)
			if err := w.writeDict(cw, dict); err != nil {
				return err
			}
			if _, err := io.WriteString(cw, "\nstream\n"); err != nil {
				return err
			}
			if x.R != nil {
				if _, err := io.Copy(cw, x.R); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(cw, "\nendstream\nendobj\n"); err != nil {
				return err
			}
		case Dict:
			encoded, err := encryptObject(w.enc, ref, x)
			if err != nil {
				return err
			}
			dict, _ := encoded.(Dict)
			if err := w.writeDict(cw, dict); err != nil {
				return err
			}
			if _, err := io.WriteString(cw, "\nendobj\n"); err != nil {
				return err
			}
		default:
			encoded, err := encryptObject(w.enc, ref, obj)
			if err != nil {
				return err
			}
			native, ok := encoded.(Native)
			if !ok {
				native = encoded.AsPDF(0)
			}
			if err := formatNative(cw, 0, native); err != nil {
				return err
			}
			if _, err := io.WriteString(cw, "\nendobj\n"); err != nil {
				return err
			}
		}

		w.xref[ref.Number()] = &xRefEntry{Pos: pos, Generation: ref.Generation()}
	}

	// The cross-reference stream is itself the last, highest-numbered
	// indirect object, and refers to itself.
	xrefRef := w.Alloc()
	maxNum := xrefRef.Number()

	trailerSize := Integer(maxNum + 1)
	streamDict := Dict{
		"Type":  Name("XRef"),
		"W":     Array{Integer(1), Integer(4), Integer(2)},
		"Size":  trailerSize,
		"Root":  catalogRef,
		"ID":    idArr,
	}
	if infoRef != 0 {
		streamDict["Info"] = infoRef
	}
	if encDict != nil {
		streamDict["Encrypt"] = encDict
	}

	xrefPos := cw.pos
	w.xref[xrefRef.Number()] = &xRefEntry{Pos: xrefPos, Generation: 0}

	var body bytes.Buffer
	for n := uint32(0); n <= maxNum; n++ {
		e := w.xref[n]
		var rec [7]byte
		switch {
		case e == nil || e.Free:
			rec[0] = 0
			binary.BigEndian.PutUint16(rec[5:7], 0xFFFF)
		case e.InStream != 0:
			rec[0] = 2
			binary.BigEndian.PutUint32(rec[1:5], e.InStream.Number())
			binary.BigEndian.PutUint16(rec[5:7], uint16(e.Pos))
		default:
			rec[0] = 1
			binary.BigEndian.PutUint32(rec[1:5], uint32(e.Pos))
			binary.BigEndian.PutUint16(rec[5:7], e.Generation)
		}
		body.Write(rec[:])
	}
	streamDict["Length"] = Integer(body.Len())

	if _, err := fmt.Fprintf(cw, "%d %d obj\n", xrefRef.Number(), xrefRef.Generation()); err != nil {
		return err
	}
	if err := w.writeDict(cw, streamDict); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, "\nstream\n"); err != nil {
		return err
	}
	if _, err := cw.Write(body.Bytes()); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, "\nendstream\nendobj\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cw, "startxref\n%d\n%%%%EOF\n", xrefPos); err != nil {
		return err
	}

	if err := w.patchPlaceholders(); err != nil {
		return err
	}

	if w.closeDownstream {
		if c, ok := w.w.(io.Closer); ok {
			return c.Close()
		}
	}
	return nil
}

// patchPlaceholders fills in the reserved space left by placeholders that
// were written in place, i.e. those backed by a seekable writer.
func (w *Writer) patchPlaceholders() error {
	for _, p := range w.placeholders {
		if p.ref != 0 || p.value == nil {
			continue
		}
		seeker, ok := w.w.(io.WriteSeeker)
		if !ok {
			return errors.New("pdf: placeholder reserved in-place space, but writer is not seekable")
		}
		digits := fmt.Sprintf("%0*d", p.size, int64(*p.value))
		if len(digits) != p.size {
			return fmt.Errorf("pdf: placeholder value %d does not fit in %d digits", *p.value, p.size)
		}
		if _, err := seeker.Seek(p.pos, io.SeekStart); err != nil {
			return err
		}
		if _, err := io.WriteString(seeker, digits); err != nil {
			return err
		}
	}
	return nil
}

// compile time check that Writer implements Putter.
var _ Putter = &Writer{}
