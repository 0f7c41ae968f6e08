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
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
)

// Object represents an in-memory PDF value: either a primitive read
// directly from a file (a [Native] value), or a higher-level Go type
// (such as [Number], [Rectangle], [TextString]) that knows how to encode
// itself as one.
//
// Every concrete type implementing Object must also implement AsPDF,
// converting itself to the Native representation that is actually written
// to, or was read from, the underlying file.
type Object interface {
	// AsPDF returns the Native representation of this object, honouring
	// the given output options.
	AsPDF(opt OutputOptions) Native
}

// Native is a PDF object in one of the eight basic PDF syntactic forms:
// null, Boolean, Integer, Real, String, Name, Array, Dict, *Stream, or
// Reference.  Native values can be read from and written to a PDF file
// without further conversion.
type Native interface {
	Object

	// isNative is unexported so that only the types in this package can
	// implement Native.
	isNative()
}

// OutputOptions controls details of how [Object] values are converted to
// their [Native] representation.  Option values are bit flags and can be
// combined with bitwise or.
type OutputOptions uint32

// HasAny reports whether any of the given flags are set in opt.
func (opt OutputOptions) HasAny(flags OutputOptions) bool {
	return opt&flags != 0
}

// Output options recognised by this package.
const (
	// OptTextStringUtf8 allows [TextString] values to be encoded using
	// UTF-8 (with a byte-order-mark prefix) when PDFDocEncoding cannot
	// represent the string, instead of falling back to UTF-16BE.
	OptTextStringUtf8 OutputOptions = 1 << iota
)

// Boolean represents a PDF boolean value (true or false).
type Boolean bool

func (x Boolean) AsPDF(OutputOptions) Native { return x }
func (Boolean) isNative()                    {}

// Integer represents a PDF integer.
type Integer int64

func (x Integer) AsPDF(OutputOptions) Native { return x }
func (Integer) isNative()                    {}

// Real represents a PDF real number.
type Real float64

func (x Real) AsPDF(OutputOptions) Native { return x }
func (Real) isNative()                    {}

// Name represents a PDF name (e.g. /Foo), stored without the leading
// slash.
type Name string

func (x Name) AsPDF(OutputOptions) Native { return x }
func (Name) isNative()                    {}

// String represents a PDF string object.  The bytes are stored exactly as
// they appear in the decoded object; no particular text encoding is
// implied (see [TextString] and [Name.AsTextString] for that).
type String []byte

func (x String) AsPDF(OutputOptions) Native { return x }
func (String) isNative()                    {}

// Array represents a PDF array object.
type Array []Object

func (x Array) AsPDF(opt OutputOptions) Native {
	res := make(Array, len(x))
	for i, elem := range x {
		if elem == nil {
			continue
		}
		res[i] = elem.AsPDF(opt)
	}
	return res
}
func (Array) isNative() {}

// Dict represents a PDF dictionary object, mapping names to values.
type Dict map[Name]Object

func (x Dict) AsPDF(opt OutputOptions) Native {
	res := make(Dict, len(x))
	for k, v := range x {
		if v == nil {
			continue
		}
		res[k] = v.AsPDF(opt)
	}
	return res
}
func (Dict) isNative() {}

// sortedKeys returns the keys of a Dict in a deterministic order, used
// when the dictionary needs to be written out or hashed reproducibly.
func (x Dict) sortedKeys() []Name {
	keys := make([]Name, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Stream represents a PDF stream object: a dictionary together with a
// (possibly still encoded and/or encrypted) byte sequence.
//
// R gives access to the raw, undecoded bytes of the stream as stored in
// the file.  Use [DecodeStream] or [GetStreamReader] to obtain the
// decoded contents.
type Stream struct {
	Dict Dict
	R    io.Reader

	// crypt, if non-nil, is the per-object decryption filter that must be
	// applied (before any filters named in Dict) to recover the stream's
	// plaintext bytes.  It is set by the Reader when the document is
	// encrypted; library users never set this field directly.
	crypt Filter
}

func (x *Stream) AsPDF(OutputOptions) Native { return x }
func (*Stream) isNative()                    {}

// Operator represents a content-stream operator keyword (e.g. "Tj", "re",
// "BT") or one of the structural tokens ("<<", ">>", "[", "]") used while
// tokenizing a content stream. Operator is not a [Native] PDF object type:
// it never appears in a document's object graph, only as an intermediate
// value while the content-stream interpreter (package content) scans
// operators and their operands.
type Operator string

func (op Operator) AsPDF(OutputOptions) Native { return Name(op) }

// Reference represents a reference to an indirect PDF object, encoding
// both the object number and the generation number.
type Reference uint64

// NewReference constructs a [Reference] from an object number and a
// generation number.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(number)<<16 | Reference(generation)
}

// Number returns the object number of the reference.
func (ref Reference) Number() uint32 {
	return uint32(ref >> 16)
}

// Generation returns the generation number of the reference.
func (ref Reference) Generation() uint16 {
	return uint16(ref)
}

// IsInternal reports whether ref refers to an object synthesised in
// memory rather than one that (could) originate from a file, i.e. whether
// the object number is zero.
func (ref Reference) IsInternal() bool {
	return ref.Number() == 0
}

func (ref Reference) String() string {
	return fmt.Sprintf("%d %d R", ref.Number(), ref.Generation())
}

func (ref Reference) AsPDF(OutputOptions) Native { return ref }
func (Reference) isNative()                      {}

// IsDirect reports whether obj is guaranteed to not be (or resolve
// through) an indirect [Reference].  Most Object implementations are
// direct; [Reference] itself, and types that may internally carry a
// reference, override this via an IsDirect() bool method.
func IsDirect(obj Object) bool {
	if obj == nil {
		return true
	}
	if _, isRef := obj.(Reference); isRef {
		return false
	}
	if d, ok := obj.(interface{ IsDirect() bool }); ok {
		return d.IsDirect()
	}
	return true
}

// Embedder is implemented by higher-level Go values that know how to
// write themselves into a PDF file as one or more indirect objects,
// returning a reference to the resulting root object.  Concrete
// implementations live in the subpackages that define the corresponding
// PDF structures (fonts, functions, number/name trees, actions, ...).
type Embedder interface {
	// Embed writes the value to w and returns a reference usable at the
	// place the value is needed.
	Embed(w Putter) (Object, error)
}

// Putter is the write-side counterpart of [Getter]: the minimal
// capability an [Embedder] needs in order to store indirect objects in a
// PDF file.
type Putter interface {
	GetMeta() *MetaInfo
	Alloc() Reference
	Put(ref Reference, obj Object) error
}

// ErrKeyNotFound is returned by [NumberTree.Lookup] and [NameTree.Lookup]
// when the requested key is absent from the tree.
var ErrKeyNotFound = errors.New("key not found")

// Round rounds x to the given number of decimal digits.
func Round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

// Error is a simple string-based error type, used for conditions that do
// not need to carry structured data.
type Error string

func (e Error) Error() string { return string(e) }
