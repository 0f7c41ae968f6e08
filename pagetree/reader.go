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
	"fmt"

	"seehuhn.de/go/pdf"
)

// inheritableKeys lists the page attributes which, per PDF 32000-1:2008,
// table 30, are inherited from the nearest ancestor Pages node that
// defines them when a page (or an intermediate node) omits them.
var inheritableKeys = []pdf.Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// mergeInherited returns a copy of node with every inheritableKeys entry
// node itself lacks filled in from parent (which is itself already the
// result of merging all of node's ancestors).
func mergeInherited(parent, node pdf.Dict) pdf.Dict {
	merged := make(pdf.Dict, len(node))
	for k, v := range node {
		merged[k] = v
	}
	for _, key := range inheritableKeys {
		if _, ok := merged[key]; ok {
			continue
		}
		if v, ok := parent[key]; ok {
			merged[key] = v
		}
	}
	return merged
}

// GetPage locates the idx'th page (0-based, in document order) in the
// page tree rooted at the document's catalog, and returns its reference
// together with its dictionary, with any inherited Resources, MediaBox,
// CropBox and Rotate entries resolved onto it.
func GetPage(r pdf.Getter, idx int) (pdf.Reference, pdf.Dict, error) {
	if idx < 0 {
		return 0, nil, fmt.Errorf("pagetree: page index %d out of range", idx)
	}
	root := r.GetMeta().Catalog.Pages
	remaining := idx
	ref, dict, found, err := findPage(r, root, &remaining, pdf.Dict{})
	if err != nil {
		return 0, nil, err
	}
	if !found {
		return 0, nil, fmt.Errorf("pagetree: page index %d out of range", idx)
	}
	return ref, dict, nil
}

func findPage(r pdf.Getter, ref pdf.Reference, remaining *int, inherited pdf.Dict) (pdf.Reference, pdf.Dict, bool, error) {
	dict, err := pdf.GetDict(r, ref)
	if err != nil {
		return 0, nil, false, err
	}
	merged := mergeInherited(inherited, dict)

	kids, err := pdf.GetArray(r, dict["Kids"])
	if err != nil {
		return 0, nil, false, err
	}
	if kids == nil {
		if *remaining == 0 {
			return ref, merged, true, nil
		}
		*remaining--
		return 0, nil, false, nil
	}

	for _, kid := range kids {
		kidRef, ok := kid.(pdf.Reference)
		if !ok {
			continue
		}
		foundRef, foundDict, found, err := findPage(r, kidRef, remaining, merged)
		if err != nil {
			return 0, nil, false, err
		}
		if found {
			return foundRef, foundDict, true, nil
		}
	}
	return 0, nil, false, nil
}

// FindPages returns the references of every page in the document, in
// document order, by walking the page tree depth-first.
func FindPages(r pdf.Getter) ([]pdf.Reference, error) {
	root := r.GetMeta().Catalog.Pages
	var refs []pdf.Reference

	var walk func(ref pdf.Reference) error
	walk = func(ref pdf.Reference) error {
		dict, err := pdf.GetDict(r, ref)
		if err != nil {
			return err
		}
		kids, err := pdf.GetArray(r, dict["Kids"])
		if err != nil {
			return err
		}
		if kids == nil {
			refs = append(refs, ref)
			return nil
		}
		for _, kid := range kids {
			kidRef, ok := kid.(pdf.Reference)
			if !ok {
				continue
			}
			if err := walk(kidRef); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return refs, nil
}

// Reader gives random access to the pages of a document that has already
// been fully written, by resolving the root Pages node's /Count entry
// once up front.
type Reader struct {
	r pdf.Getter
	n int
}

// NewReader creates a Reader for the document's page tree.
func NewReader(r pdf.Getter) (*Reader, error) {
	root := r.GetMeta().Catalog.Pages
	dict, err := pdf.GetDict(r, root)
	if err != nil {
		return nil, err
	}
	count, err := pdf.GetInteger(r, dict["Count"])
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, n: int(count)}, nil
}

// NumPages returns the total number of pages in the document.
func (rd *Reader) NumPages() (int, error) {
	return rd.n, nil
}

// Get returns the (inheritance-resolved) dictionary of the idx'th page.
func (rd *Reader) Get(idx pdf.Integer) (pdf.Dict, error) {
	i := int(idx)
	if i < 0 || i >= rd.n {
		return nil, fmt.Errorf("pagetree: page index %d out of range", i)
	}
	_, dict, err := GetPage(rd.r, i)
	return dict, err
}
