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

// Package pagetree builds and reads the balanced /Pages tree that a PDF
// file uses to list its pages, as described in PDF 32000-1:2008, section
// 7.7.3.
package pagetree

import (
	"reflect"
	"sort"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/page"
)

// maxDegree is the maximum number of children a single Pages node is
// allowed to accumulate before Writer folds a run of siblings into a new
// parent node one level up.
const maxDegree = 16

// dictInfo is the not-yet-written state of one page tree node.
type dictInfo struct {
	ref pdf.Reference
	dict pdf.Dict

	// children is nil for a bare page (a leaf written by AppendPageRef)
	// and holds the node's kids, in document order, for a Pages node
	// synthesized by folding.
	children []*nodeInfo
}

// nodeInfo is one entry of a Writer's pending tail: a closed subtree
// sitting at the given depth (0 for a page, d+1 for a Pages node whose
// children all sit at depth d).
type nodeInfo struct {
	*dictInfo
	depth int
}

// Writer incrementally builds a page tree. Pages are appended one at a
// time; runs of maxDegree siblings at the same depth are folded into a new
// parent as soon as they accumulate, so the tree never needs to be
// rebalanced after the fact and only a logarithmic amount of state is kept
// in memory between calls to [Writer.Close].
type Writer struct {
	// Out is where page and Pages node dictionaries are written.
	Out pdf.Putter

	rm *pdf.ResourceManager

	tail []*nodeInfo
}

// NewWriter creates a Writer which allocates references and writes
// dictionaries via w. rm is retained for embedding any resources a future
// page carries that are too large to inline, and is otherwise unused by
// the tree structure itself.
func NewWriter(w pdf.Putter, rm *pdf.ResourceManager) *Writer {
	return &Writer{Out: w, rm: rm}
}

// AppendPage appends p as the next page in the tree, allocating its
// reference.
func (w *Writer) AppendPage(p *page.Page) error {
	return w.AppendPageRef(w.Out.Alloc(), p)
}

// AppendPageRef appends p as the next page in the tree, using the
// pre-allocated reference ref. This is useful when the page's own
// reference must be known (e.g. to be recorded in an index) before the
// tree around it has been built.
func (w *Writer) AppendPageRef(ref pdf.Reference, p *page.Page) error {
	leaf := &nodeInfo{
		dictInfo: &dictInfo{ref: ref, dict: p.AsDict()},
		depth:    0,
	}
	w.tail = w.merge(w.tail, []*nodeInfo{leaf})
	return nil
}

// merge combines two tails, keeping the non-increasing-depth invariant
// [checkInvariants] (in the test suite) expects of a Writer's tail: depths
// weakly decrease from the start of the slice to the end, and no run of
// equal depths reaches maxDegree elements without being folded into a
// single node one level up.
func (w *Writer) merge(a, b []*nodeInfo) []*nodeInfo {
	all := make([]*nodeInfo, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].depth > all[j].depth })
	return w.collapse(all)
}

// collapse repeatedly folds maximal runs of maxDegree equal-depth nodes
// into a single node one level deeper, until no such run remains.
func (w *Writer) collapse(nodes []*nodeInfo) []*nodeInfo {
	for {
		out := make([]*nodeInfo, 0, len(nodes))
		changed := false

		i := 0
		for i < len(nodes) {
			j := i
			for j < len(nodes) && nodes[j].depth == nodes[i].depth {
				j++
			}
			run := nodes[i:j]
			for len(run) >= maxDegree {
				group := append([]*nodeInfo(nil), run[:maxDegree]...)
				parent := &nodeInfo{
					dictInfo: &dictInfo{ref: w.Out.Alloc(), dict: pdf.Dict{}, children: group},
					depth:    group[0].depth + 1,
				}
				out = append(out, parent)
				run = run[maxDegree:]
				changed = true
			}
			out = append(out, run...)
			i = j
		}

		nodes = out
		if !changed {
			return nodes
		}
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].depth > nodes[j].depth })
	}
}

// Close finishes the tree: any pages still pending in the tail are
// combined under a single root Pages node, inheritable attributes shared
// by every child of a node are hoisted onto that node, and every node is
// written out. It returns the reference of the root node, to be stored as
// the document's /Root/Pages entry.
func (w *Writer) Close() (pdf.Reference, error) {
	nodes := w.tail
	for len(nodes) > 1 {
		parent := &nodeInfo{
			dictInfo: &dictInfo{ref: w.Out.Alloc(), dict: pdf.Dict{}, children: append([]*nodeInfo(nil), nodes...)},
		}
		nodes = []*nodeInfo{parent}
	}

	var root *nodeInfo
	switch {
	case len(nodes) == 1 && nodes[0].children != nil:
		root = nodes[0]
	case len(nodes) == 1:
		root = &nodeInfo{dictInfo: &dictInfo{ref: w.Out.Alloc(), dict: pdf.Dict{}, children: nodes}}
	default:
		root = &nodeInfo{dictInfo: &dictInfo{ref: w.Out.Alloc(), dict: pdf.Dict{}}}
	}

	w.finalize(root)
	if err := w.write(root, 0, true); err != nil {
		return 0, err
	}
	w.tail = nil
	return root.ref, nil
}

// finalize computes the final dictionary content of node and all of its
// descendants (Type, Kids, Count, and any hoisted inheritable attribute),
// without writing anything to Out yet. It returns the number of leaf pages
// in the subtree rooted at node.
func (w *Writer) finalize(node *nodeInfo) int {
	if node.children == nil {
		return 1
	}

	count := 0
	for _, child := range node.children {
		count += w.finalize(child)
	}

	inheritAttr(node.dict, node.children, "Resources")
	inheritAttr(node.dict, node.children, "MediaBox")
	inheritAttr(node.dict, node.children, "CropBox")
	inheritRotate(node.dict, node.children)

	kids := make(pdf.Array, len(node.children))
	for i, child := range node.children {
		kids[i] = child.ref
	}
	node.dict["Type"] = pdf.Name("Pages")
	node.dict["Kids"] = kids
	node.dict["Count"] = pdf.Integer(count)
	return count
}

// write stores node (with /Parent set to parent, unless isRoot) and
// recurses into its children, now that every node's dictionary content is
// final.
func (w *Writer) write(node *nodeInfo, parent pdf.Reference, isRoot bool) error {
	if !isRoot {
		node.dict["Parent"] = parent
	}
	if err := w.Out.Put(node.ref, node.dict); err != nil {
		return err
	}
	for _, child := range node.children {
		if err := w.write(child, node.ref, false); err != nil {
			return err
		}
	}
	return nil
}

// inheritRotate hoists parentDict's children's /Rotate entry onto
// parentDict itself when every child shares the same explicit value,
// removing it from the children. A child with no explicit /Rotate (so
// that it already relies on inheritance), or children that disagree,
// leave parentDict untouched.
func inheritRotate(parentDict pdf.Dict, cc []*nodeInfo) {
	inheritAttr(parentDict, cc, "Rotate")
}

// inheritAttr hoists the named entry onto parentDict when every child in
// cc has an identical value for it, removing the entry from each child.
func inheritAttr(parentDict pdf.Dict, cc []*nodeInfo, key pdf.Name) {
	if len(cc) == 0 {
		return
	}
	first, ok := cc[0].dict[key]
	if !ok {
		return
	}
	for _, c := range cc[1:] {
		v, ok := c.dict[key]
		if !ok || !reflect.DeepEqual(v, first) {
			return
		}
	}

	parentDict[key] = first
	for _, c := range cc {
		delete(c.dict, key)
	}
}
