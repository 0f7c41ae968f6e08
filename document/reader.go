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

package document

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"golang.org/x/text/language"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/content"
	"seehuhn.de/go/pdf/nametree"
	"seehuhn.de/go/pdf/numtree"
	"seehuhn.de/go/pdf/pagetree"
)

// Document gives read access to the pages and document-level metadata of
// an already-open PDF file.
type Document struct {
	R     *pdf.Reader
	pages *pagetree.Reader
}

// ReadDocument wraps an already-open [pdf.Reader] in a Document, giving
// access to its pages and metadata.
func ReadDocument(r *pdf.Reader) (*Document, error) {
	pages, err := pagetree.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{R: r, pages: pages}, nil
}

// Version returns the version of the PDF specification the document
// claims to conform to.
func (d *Document) Version() pdf.Version {
	return d.R.GetMeta().Version
}

// Info returns the document's /Info dictionary (title, author, ...), or
// nil if the document has none.
func (d *Document) Info() *pdf.Info {
	return d.R.GetMeta().Info
}

// Lang returns the document's default natural language, as declared by
// the catalog's /Lang entry, or the zero [language.Tag] if none is set.
func (d *Document) Lang() language.Tag {
	return d.R.GetMeta().Catalog.Lang
}

// IsPrintable reports whether a user authenticating with the user
// password is allowed to print the document.
func (d *Document) IsPrintable() bool {
	return d.R.Permissions()&pdf.PermPrint != 0
}

// IsModifiable reports whether a user authenticating with the user
// password is allowed to modify the document.
func (d *Document) IsModifiable() bool {
	return d.R.Permissions()&pdf.PermModify != 0
}

// IsExtractable reports whether a user authenticating with the user
// password is allowed to extract text and graphics from the document.
func (d *Document) IsExtractable() bool {
	return d.R.Permissions()&pdf.PermCopy != 0
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	n, _ := d.pages.NumPages()
	return n
}

// Page returns the idx'th page (0-based), with inherited attributes
// already resolved onto its dictionary.
func (d *Document) Page(idx int) (*ReaderPage, error) {
	ref, dict, err := pagetree.GetPage(d.R, idx)
	if err != nil {
		return nil, err
	}
	label, err := d.Label(idx)
	if err != nil {
		label = ""
	}
	return &ReaderPage{doc: d, Ref: ref, Dict: dict, Index: idx, Label: label}, nil
}

// Pages returns every page of the document, in order, together with its
// 0-based index.
func (d *Document) Pages() iter.Seq2[int, *ReaderPage] {
	return func(yield func(int, *ReaderPage) bool) {
		idx := 0
		for ref, dict := range pagetree.NewIterator(d.R).All() {
			p := &ReaderPage{doc: d, Ref: ref, Dict: dict, Index: idx}
			if label, err := d.Label(idx); err == nil {
				p.Label = label
			}
			if !yield(idx, p) {
				return
			}
			idx++
		}
	}
}

// pageLabelTree returns the document's /PageLabels number tree, or nil if
// the document does not define one.
func (d *Document) pageLabelTree() (*numtree.FromFile, error) {
	ref, ok := d.R.GetMeta().Catalog.PageLabels.(pdf.Reference)
	if !ok {
		return nil, nil
	}
	return numtree.ExtractFromFile(d.R, ref)
}

// Label computes the page label of the idx'th page (0-based) from the
// document's /PageLabels number tree, following PDF 32000-1:2008, section
// 12.4.2. If the document defines no page labels, the 1-based decimal
// page number is returned.
func (d *Document) Label(idx int) (string, error) {
	tree, err := d.pageLabelTree()
	if err != nil {
		return "", err
	}
	if tree == nil {
		return strconv.Itoa(idx + 1), nil
	}

	var haveEntry bool
	var startIdx int
	var entryDict pdf.Dict
	for key, value := range tree.All() {
		if int(key) > idx {
			break
		}
		dict, err := pdf.GetDict(d.R, value)
		if err != nil {
			continue
		}
		haveEntry = true
		startIdx = int(key)
		entryDict = dict
	}
	if !haveEntry {
		return strconv.Itoa(idx + 1), nil
	}

	style, err := pdf.GetName(d.R, entryDict["S"])
	if err != nil {
		return "", err
	}
	prefixObj, err := pdf.GetString(d.R, entryDict["P"])
	if err != nil {
		return "", err
	}
	start := 1
	if entryDict["St"] != nil {
		st, err := pdf.GetInteger(d.R, entryDict["St"])
		if err != nil {
			return "", err
		}
		start = int(st)
	}

	number := start + (idx - startIdx)
	return string(prefixObj) + formatPageLabel(number, style), nil
}

// formatPageLabel renders number according to a /PageLabels numbering
// style ("D" decimal, "R"/"r" upper/lower-case roman, "A"/"a" upper/
// lower-case letters). An unrecognised or empty style yields no numeric
// part at all, so that a label consisting only of a prefix is possible.
func formatPageLabel(number int, style pdf.Name) string {
	switch style {
	case "D":
		return strconv.Itoa(number)
	case "R":
		return toRoman(number, true)
	case "r":
		return toRoman(number, false)
	case "A":
		return toAlpha(number, true)
	case "a":
		return toAlpha(number, false)
	default:
		return ""
	}
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var buf []byte
	for _, entry := range romanTable {
		for n >= entry.value {
			buf = append(buf, entry.symbol...)
			n -= entry.value
		}
	}
	s := string(buf)
	if !upper {
		s = toLower(s)
	}
	return s
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// toAlpha renders n (1-based) the way Excel-style spreadsheet columns do:
// 1="A", 26="Z", 27="AA", 28="AB", and so on.
func toAlpha(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	s := string(buf)
	if !upper {
		s = toLower(s)
	}
	return s
}

// Destinations returns the document's named-destination tree (the
// /Dests entry of the catalog's name dictionary), or nil if the document
// defines none.
func (d *Document) Destinations() (*nametree.FromFile, error) {
	return d.nameTree("Dests")
}

func (d *Document) nameTree(category pdf.Name) (*nametree.FromFile, error) {
	namesObj := d.R.GetMeta().Catalog.Names
	namesDict, err := pdf.GetDict(d.R, namesObj)
	if err != nil || namesDict == nil {
		return nil, err
	}
	ref, ok := namesDict[category].(pdf.Reference)
	if !ok {
		return nil, nil
	}
	return nametree.ExtractFromFile(d.R, ref)
}

// ReaderPage gives read access to a single page's attributes and content,
// as resolved from an already-open document.
type ReaderPage struct {
	doc *Document

	// Ref is the indirect reference of the page dictionary.
	Ref pdf.Reference

	// Dict is the page dictionary, with inherited Resources, MediaBox,
	// CropBox and Rotate entries already resolved onto it.
	Dict pdf.Dict

	// Index is the page's 0-based position in the document.
	Index int

	// Label is the page's label, as computed from the document's
	// /PageLabels number tree.
	Label string
}

// MediaBox returns the page's media box.
func (p *ReaderPage) MediaBox() (*pdf.Rectangle, error) {
	arr, err := pdf.GetArray(p.doc.R, p.Dict["MediaBox"])
	if err != nil || arr == nil {
		return nil, err
	}
	return rectangleFromArray(p.doc.R, arr)
}

// CropBox returns the page's crop box, falling back to its media box if
// no crop box is set.
func (p *ReaderPage) CropBox() (*pdf.Rectangle, error) {
	arr, err := pdf.GetArray(p.doc.R, p.Dict["CropBox"])
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return p.MediaBox()
	}
	return rectangleFromArray(p.doc.R, arr)
}

func rectangleFromArray(r pdf.Getter, arr pdf.Array) (*pdf.Rectangle, error) {
	if len(arr) != 4 {
		return nil, fmt.Errorf("document: invalid rectangle %v", arr)
	}
	vals := make([]float64, 4)
	for i, obj := range arr {
		num, err := pdf.GetNumber(r, obj)
		if err != nil {
			return nil, err
		}
		vals[i] = float64(num)
	}
	return &pdf.Rectangle{LLx: vals[0], LLy: vals[1], URx: vals[2], URy: vals[3]}, nil
}

// Rotate returns the page's clockwise display rotation, in degrees (one
// of 0, 90, 180, 270).
func (p *ReaderPage) Rotate() (int, error) {
	if p.Dict["Rotate"] == nil {
		return 0, nil
	}
	deg, err := pdf.GetInt(p.doc.R, p.Dict["Rotate"])
	if err != nil {
		return 0, err
	}
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg, nil
}

// Resources returns the page's resource dictionary.
func (p *ReaderPage) Resources() (*pdf.Resources, error) {
	return pdf.ExtractResources(p.doc.R, p.Dict["Resources"])
}

// ContentStream returns a reader for the page's (possibly concatenated)
// content stream.
func (p *ReaderPage) ContentStream() (io.Reader, error) {
	return pagetree.ContentStream(p.doc.R, p.Ref)
}

// Objects calls yield once for every content object on the page, in
// stream order, stopping early if yield returns an error.
func (p *ReaderPage) Objects(yield func(content.Object) error) error {
	return content.ForAllObjects(p.doc.R, p.Ref, p.Dict, yield)
}

// Texts calls yield once for every text-showing object on the page.
func (p *ReaderPage) Texts(yield func(*content.TextObject) error) error {
	return content.ForAllText(p.doc.R, p.Ref, p.Dict, yield)
}

// Paths calls yield once for every path-painting object on the page.
func (p *ReaderPage) Paths(yield func(*content.PathObject) error) error {
	return p.Objects(func(obj content.Object) error {
		path, ok := obj.(*content.PathObject)
		if !ok {
			return nil
		}
		return yield(path)
	})
}

// Images calls yield once for every image object on the page.
func (p *ReaderPage) Images(yield func(*content.ImageObject) error) error {
	return p.Objects(func(obj content.Object) error {
		img, ok := obj.(*content.ImageObject)
		if !ok {
			return nil
		}
		return yield(img)
	})
}

// XObjects calls yield once for every form/external-object invocation on
// the page.
func (p *ReaderPage) XObjects(yield func(*content.XObjectObject) error) error {
	return p.Objects(func(obj content.Object) error {
		xobj, ok := obj.(*content.XObjectObject)
		if !ok {
			return nil
		}
		return yield(xobj)
	})
}
