// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
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

// Package lzw implements the variant of the LZW compression algorithm
// used by the PDF LZWDecode filter (PDF 32000-1:2008, section 7.4.4).
// This is close to, but not compatible with, the TIFF/GIF variants
// implemented by the standard library's compress/lzw package: codes are
// packed MSB-first, the code width grows from 9 to 12 bits, and an
// "early change" mode (enabled by default, matching Adobe's own encoder)
// increases the code width one code early.
package lzw

import (
	"bufio"
	"io"
)

const (
	clearCode = 256
	eodCode   = 257
	firstCode = 258
	maxCode   = 4095
)

// Writer implements the PDF LZW encoder.  It implements io.WriteCloser.
type Writer struct {
	w           *bitWriter
	earlyChange bool

	table map[string]int
	next  int
	width int

	current []byte
}

// NewWriter returns a new LZW Writer that writes compressed data to w.
// If earlyChange is true (the PDF default), the code width is increased
// one code early, matching Adobe's encoder and the /EarlyChange 1
// DecodeParms entry.
func NewWriter(w io.Writer, earlyChange bool) (*Writer, error) {
	lw := &Writer{
		w:           newBitWriter(w),
		earlyChange: earlyChange,
	}
	lw.reset()
	_, err := lw.w.WriteBits(clearCode, lw.width)
	return lw, err
}

func (w *Writer) reset() {
	w.table = make(map[string]int)
	w.next = firstCode
	w.width = 9
}

func (w *Writer) codeWidth() int {
	limit := w.next
	if w.earlyChange {
		limit++
	}
	switch {
	case limit > 2048:
		return 12
	case limit > 1024:
		return 11
	case limit > 512:
		return 10
	default:
		return 9
	}
}

// Write implements io.Writer, using the standard greedy LZW match
// extension: the longest previously-seen string plus the next byte is
// looked up as a whole, a new table entry is added for it, and a code for
// the longest known prefix is emitted.
func (w *Writer) Write(p []byte) (int, error) {
	n := len(p)
	for _, c := range p {
		candidate := append(append([]byte(nil), w.current...), c)
		if _, ok := w.table[string(candidate)]; ok || len(w.current) == 0 {
			w.current = candidate
			if len(w.current) == 1 {
				// single bytes are always "in the table" (as literal codes)
				continue
			}
			continue
		}

		code := w.codeOf(w.current)
		if err := w.emit(code); err != nil {
			return n, err
		}

		if w.next <= maxCode {
			w.table[string(candidate)] = w.next
			w.next++
		} else {
			if err := w.emit(clearCode); err != nil {
				return n, err
			}
			w.reset()
		}

		w.current = []byte{c}
	}
	return n, nil
}

// codeOf returns the code for a string already known to be in the table
// (or, for single bytes, the literal byte value).
func (w *Writer) codeOf(s []byte) int {
	if len(s) == 1 {
		return int(s[0])
	}
	return w.table[string(s)]
}

func (w *Writer) emit(code int) error {
	width := w.codeWidth()
	_, err := w.w.WriteBits(uint32(code), width)
	return err
}

// Close flushes any pending data and writes the end-of-data code.
func (w *Writer) Close() error {
	if len(w.current) > 0 {
		if err := w.emit(w.codeOf(w.current)); err != nil {
			return err
		}
	}
	if err := w.emit(eodCode); err != nil {
		return err
	}
	return w.w.Flush()
}

type bitWriter struct {
	w    *bufio.Writer
	acc  uint32
	bits int
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: bufio.NewWriter(w)}
}

// WriteBits writes the low `width` bits of code, MSB first.
func (bw *bitWriter) WriteBits(code uint32, width int) (int, error) {
	bw.acc = bw.acc<<uint(width) | (code & ((1 << uint(width)) - 1))
	bw.bits += width
	for bw.bits >= 8 {
		bw.bits -= 8
		b := byte(bw.acc >> uint(bw.bits))
		if err := bw.w.WriteByte(b); err != nil {
			return 0, err
		}
	}
	return width, nil
}

func (bw *bitWriter) Flush() error {
	if bw.bits > 0 {
		b := byte(bw.acc << uint(8-bw.bits))
		if err := bw.w.WriteByte(b); err != nil {
			return err
		}
		bw.bits = 0
	}
	return bw.w.Flush()
}
