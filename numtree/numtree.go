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

// Package numtree reads and writes PDF number trees, as described in PDF
// 32000-1:2008, section 7.9.7.
package numtree

import (
	"errors"
	"iter"
	"sort"

	"seehuhn.de/go/pdf"
)

// ErrKeyNotFound is returned by [InMemory.Lookup] and [FromFile.Lookup]
// when the requested key is absent from the tree.
var ErrKeyNotFound = pdf.ErrKeyNotFound

// maxLeafSize is the largest number of entries a single leaf node is
// allowed to hold before [Write] starts a new leaf.
const maxLeafSize = 32

// maxKids is the largest number of children an intermediate node is
// allowed to hold before [Write] folds a run of siblings into a new
// parent one level up, mirroring the carry construction used by
// [seehuhn.de/go/pdf/pagetree.Writer].
const maxKids = 32

// InMemory is a number tree held entirely in memory.
type InMemory struct {
	Data map[pdf.Integer]pdf.Object
}

// Lookup returns the value stored under key, or [ErrKeyNotFound] if key is
// not present.
func (t *InMemory) Lookup(key pdf.Integer) (pdf.Object, error) {
	if t == nil {
		return nil, ErrKeyNotFound
	}
	v, ok := t.Data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// All returns the tree's entries in increasing key order.
func (t *InMemory) All() iter.Seq2[pdf.Integer, pdf.Object] {
	return func(yield func(pdf.Integer, pdf.Object) bool) {
		if t == nil {
			return
		}
		keys := make([]pdf.Integer, 0, len(t.Data))
		for k := range t.Data {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			if !yield(k, t.Data[k]) {
				return
			}
		}
	}
}

// Embed writes the tree to w and returns its reference, implementing
// [pdf.Embedder] so that an *InMemory can be used directly wherever a
// [pdf.NumberTree] is expected.
func (t *InMemory) Embed(w pdf.Putter) (pdf.Object, error) {
	ref, err := Write(w, t.All())
	if err != nil {
		return nil, err
	}
	if ref == 0 {
		return nil, nil
	}
	return ref, nil
}

type leafInfo struct {
	ref         pdf.Reference
	first, last pdf.Integer
}

// Write serializes data, which must yield keys in strictly increasing
// order, as a number tree and returns the reference of its root node. An
// empty tree is written as nothing at all, and Write returns the zero
// [pdf.Reference].
func Write(w pdf.Putter, data iter.Seq2[pdf.Integer, pdf.Object]) (pdf.Reference, error) {
	var leaves []leafInfo

	var batchNums pdf.Array
	var batchFirst, batchLast pdf.Integer
	haveBatch := false
	havePrev := false
	var prevKey pdf.Integer

	flush := func() error {
		if !haveBatch {
			return nil
		}
		ref := w.Alloc()
		dict := pdf.Dict{
			"Nums":   batchNums,
			"Limits": pdf.Array{batchFirst, batchLast},
		}
		if err := w.Put(ref, dict); err != nil {
			return err
		}
		leaves = append(leaves, leafInfo{ref: ref, first: batchFirst, last: batchLast})
		batchNums = nil
		haveBatch = false
		return nil
	}

	var iterErr error
	data(func(key pdf.Integer, value pdf.Object) bool {
		if havePrev && key <= prevKey {
			iterErr = errors.New("keys must be in sorted order")
			return false
		}
		havePrev = true
		prevKey = key

		if !haveBatch {
			batchFirst = key
			haveBatch = true
		}
		batchLast = key
		batchNums = append(batchNums, key, value)

		if len(batchNums)/2 >= maxLeafSize {
			if err := flush(); err != nil {
				iterErr = err
				return false
			}
		}
		return true
	})
	if iterErr != nil {
		return 0, iterErr
	}
	if err := flush(); err != nil {
		return 0, err
	}

	if len(leaves) == 0 {
		return 0, nil
	}
	for len(leaves) > 1 {
		var next []leafInfo
		for i := 0; i < len(leaves); i += maxKids {
			end := i + maxKids
			if end > len(leaves) {
				end = len(leaves)
			}
			group := leaves[i:end]
			kids := make(pdf.Array, len(group))
			for j, kid := range group {
				kids[j] = kid.ref
			}
			ref := w.Alloc()
			dict := pdf.Dict{
				"Kids":   kids,
				"Limits": pdf.Array{group[0].first, group[len(group)-1].last},
			}
			if err := w.Put(ref, dict); err != nil {
				return 0, err
			}
			next = append(next, leafInfo{ref: ref, first: group[0].first, last: group[len(group)-1].last})
		}
		leaves = next
	}
	return leaves[0].ref, nil
}

// FromFile is a number tree read from a PDF file. Lookups are resolved
// on demand, without reading the whole tree into memory.
type FromFile struct {
	r   pdf.Getter
	ref pdf.Reference
}

// ExtractFromFile creates a [FromFile] wrapping the number tree rooted at
// ref.
func ExtractFromFile(r pdf.Getter, ref pdf.Reference) (*FromFile, error) {
	if ref == 0 {
		return &FromFile{r: r}, nil
	}
	if _, err := pdf.GetDict(r, ref); err != nil {
		return nil, err
	}
	return &FromFile{r: r, ref: ref}, nil
}

// Lookup returns the value stored under key, or [ErrKeyNotFound] if key is
// not present.
func (t *FromFile) Lookup(key pdf.Integer) (pdf.Object, error) {
	if t == nil || t.ref == 0 {
		return nil, ErrKeyNotFound
	}
	return lookupNum(t.r, t.ref, key)
}

func lookupNum(r pdf.Getter, ref pdf.Reference, key pdf.Integer) (pdf.Object, error) {
	dict, err := pdf.GetDict(r, ref)
	if err != nil {
		return nil, err
	}

	if nums, err := pdf.GetArray(r, dict["Nums"]); err != nil {
		return nil, err
	} else if nums != nil {
		for i := 0; i+1 < len(nums); i += 2 {
			k, err := pdf.GetInteger(r, nums[i])
			if err != nil {
				return nil, err
			}
			if k == key {
				return nums[i+1], nil
			}
		}
		return nil, ErrKeyNotFound
	}

	kids, err := pdf.GetArray(r, dict["Kids"])
	if err != nil {
		return nil, err
	}
	for _, kid := range kids {
		kidRef, ok := kid.(pdf.Reference)
		if !ok {
			continue
		}
		kidDict, err := pdf.GetDict(r, kidRef)
		if err != nil {
			return nil, err
		}
		if !numInLimits(r, kidDict["Limits"], key) {
			continue
		}
		v, err := lookupNum(r, kidRef, key)
		if err == ErrKeyNotFound {
			continue
		}
		return v, err
	}
	return nil, ErrKeyNotFound
}

func numInLimits(r pdf.Getter, limits pdf.Object, key pdf.Integer) bool {
	arr, err := pdf.GetArray(r, limits)
	if err != nil || len(arr) != 2 {
		return true
	}
	lo, err := pdf.GetInteger(r, arr[0])
	if err != nil {
		return true
	}
	hi, err := pdf.GetInteger(r, arr[1])
	if err != nil {
		return true
	}
	return key >= lo && key <= hi
}

// All returns the tree's entries in increasing key order.
func (t *FromFile) All() iter.Seq2[pdf.Integer, pdf.Object] {
	return func(yield func(pdf.Integer, pdf.Object) bool) {
		if t == nil || t.ref == 0 {
			return
		}
		walkNums(t.r, t.ref, yield)
	}
}

func walkNums(r pdf.Getter, ref pdf.Reference, yield func(pdf.Integer, pdf.Object) bool) bool {
	dict, err := pdf.GetDict(r, ref)
	if err != nil {
		return false
	}

	nums, err := pdf.GetArray(r, dict["Nums"])
	if err != nil {
		return false
	}
	if nums != nil {
		for i := 0; i+1 < len(nums); i += 2 {
			k, err := pdf.GetInteger(r, nums[i])
			if err != nil {
				return false
			}
			if !yield(k, nums[i+1]) {
				return false
			}
		}
		return true
	}

	kids, err := pdf.GetArray(r, dict["Kids"])
	if err != nil {
		return false
	}
	for _, kid := range kids {
		kidRef, ok := kid.(pdf.Reference)
		if !ok {
			continue
		}
		if !walkNums(r, kidRef, yield) {
			return false
		}
	}
	return true
}

// ExtractInMemory reads the whole number tree rooted at ref into memory.
func ExtractInMemory(r pdf.Getter, ref pdf.Reference) (*InMemory, error) {
	ff, err := ExtractFromFile(r, ref)
	if err != nil {
		return nil, err
	}
	data := make(map[pdf.Integer]pdf.Object)
	for k, v := range ff.All() {
		data[k] = v
	}
	return &InMemory{Data: data}, nil
}

// Size returns the total number of entries in the number tree rooted at
// ref.
func Size(r pdf.Getter, ref pdf.Reference) (int, error) {
	if ref == 0 {
		return 0, nil
	}
	return sizeNum(r, ref)
}

func sizeNum(r pdf.Getter, ref pdf.Reference) (int, error) {
	dict, err := pdf.GetDict(r, ref)
	if err != nil {
		return 0, err
	}
	nums, err := pdf.GetArray(r, dict["Nums"])
	if err != nil {
		return 0, err
	}
	if nums != nil {
		return len(nums) / 2, nil
	}
	kids, err := pdf.GetArray(r, dict["Kids"])
	if err != nil {
		return 0, err
	}
	total := 0
	for _, kid := range kids {
		kidRef, ok := kid.(pdf.Reference)
		if !ok {
			continue
		}
		n, err := sizeNum(r, kidRef)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
