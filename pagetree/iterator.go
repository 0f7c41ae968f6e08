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

package pagetree

import (
	"iter"

	"seehuhn.de/go/pdf"
)

// Iterator walks the pages of a document's page tree in order, resolving
// inherited attributes onto each leaf dictionary as it is yielded.
type Iterator struct {
	r pdf.Getter
}

// NewIterator creates an Iterator over the page tree rooted at data's
// document catalog.
func NewIterator(data pdf.Getter) *Iterator {
	return &Iterator{r: data}
}

// All returns a sequence of (reference, dict) pairs, one per page, in
// document order. Each yielded dict has its Resources, MediaBox, CropBox
// and Rotate entries resolved, even when those values were only set on an
// ancestor Pages node.
//
// Iteration stops early, without error, if the yield function returns
// false. Any error encountered while walking the tree is swallowed by
// simply ending the sequence; callers that need to distinguish "done" from
// "broken file" should use [GetPage] or [Reader] instead.
func (it *Iterator) All() iter.Seq2[pdf.Reference, pdf.Dict] {
	return func(yield func(pdf.Reference, pdf.Dict) bool) {
		root := it.r.GetMeta().Catalog.Pages
		walkIterator(it.r, root, pdf.Dict{}, yield)
	}
}

// walkIterator returns false if the caller should stop (because yield
// returned false, or an error was encountered).
func walkIterator(r pdf.Getter, ref pdf.Reference, inherited pdf.Dict, yield func(pdf.Reference, pdf.Dict) bool) bool {
	dict, err := pdf.GetDict(r, ref)
	if err != nil {
		return false
	}
	merged := mergeInherited(inherited, dict)

	kids, err := pdf.GetArray(r, dict["Kids"])
	if err != nil {
		return false
	}
	if kids == nil {
		return yield(ref, merged)
	}

	for _, kid := range kids {
		kidRef, ok := kid.(pdf.Reference)
		if !ok {
			continue
		}
		if !walkIterator(r, kidRef, merged, yield) {
			return false
		}
	}
	return true
}
