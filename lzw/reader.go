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

package lzw

import (
	"bufio"
	"errors"
	"io"
)

// reader implements the PDF LZWDecode decompressor.
type reader struct {
	r    *bitReader
	err  error
	done bool

	earlyChange bool

	table [][]byte
	next  int
	width int

	prev []byte
	out  []byte
}

// NewReader returns a reader that decompresses data written by [NewWriter]
// with the same earlyChange setting.
func NewReader(r io.Reader, earlyChange bool) io.Reader {
	lr := &reader{
		r:           newBitReader(r),
		earlyChange: earlyChange,
	}
	lr.reset()
	return lr
}

func (r *reader) reset() {
	r.table = make([][]byte, firstCode, maxCode+1)
	for i := 0; i < clearCode; i++ {
		r.table[i] = []byte{byte(i)}
	}
	r.next = firstCode
	r.width = 9
	r.prev = nil
}

func (r *reader) codeWidth() int {
	limit := r.next
	if r.earlyChange {
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

func (r *reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.out) > 0 {
			m := copy(p[n:], r.out)
			n += m
			r.out = r.out[m:]
			continue
		}
		if r.done {
			if r.err != nil {
				return n, r.err
			}
			return n, io.EOF
		}

		code, err := r.r.ReadBits(r.codeWidth())
		if err != nil {
			r.done = true
			r.err = err
			continue
		}

		switch int(code) {
		case clearCode:
			r.reset()
			continue
		case eodCode:
			r.done = true
			continue
		}

		var entry []byte
		if int(code) < len(r.table) && r.table[code] != nil {
			entry = r.table[code]
		} else if int(code) == r.next && r.prev != nil {
			entry = append(append([]byte(nil), r.prev...), r.prev[0])
		} else {
			r.done = true
			r.err = errors.New("lzw: invalid code")
			continue
		}

		r.out = entry

		if r.prev != nil && r.next <= maxCode {
			newEntry := append(append([]byte(nil), r.prev...), entry[0])
			if r.next < len(r.table) {
				r.table[r.next] = newEntry
			} else {
				r.table = append(r.table, newEntry)
			}
			r.next++
		}
		r.prev = append([]byte(nil), entry...)
	}
	return n, nil
}

type bitReader struct {
	r    *bufio.Reader
	acc  uint32
	bits int
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{r: bufio.NewReader(r)}
}

// ReadBits reads `width` bits, MSB first, and returns them right-aligned.
func (br *bitReader) ReadBits(width int) (uint32, error) {
	for br.bits < width {
		b, err := br.r.ReadByte()
		if err != nil {
			return 0, err
		}
		br.acc = br.acc<<8 | uint32(b)
		br.bits += 8
	}
	br.bits -= width
	code := (br.acc >> uint(br.bits)) & ((1 << uint(width)) - 1)
	return code, nil
}
