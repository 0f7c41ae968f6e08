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

package pdf

// ResourceManager wraps a [Putter] and makes sure that a Go value shared
// between several PDF structures (the same font used on several pages, the
// same ICC profile used by several images, ...) is only embedded once, no
// matter how many times [ResourceManagerEmbed] is called for it.
type ResourceManager struct {
	Out Putter

	done map[any]Object
}

// NewResourceManager creates a ResourceManager which allocates references
// and stores objects via w.
func NewResourceManager(w Putter) *ResourceManager {
	return &ResourceManager{
		Out:  w,
		done: make(map[any]Object),
	}
}

// Close finishes all embeddings started via this manager. Every embed in
// this package writes eagerly, so this is currently a no-op; it exists so
// that callers which bracket a sequence of [ResourceManagerEmbed] calls
// with Close keep working if a future [Embedder] needs to defer work until
// the whole resource graph is known.
func (rm *ResourceManager) Close() error {
	return nil
}

// ResourceManagerEmbed embeds obj via rm, returning the [Object] (usually
// a [Reference]) that other structures can use to refer to it. If obj was
// already embedded through this same manager, the cached result is
// returned without calling [Embedder.Embed] again.
func ResourceManagerEmbed[T Embedder](rm *ResourceManager, obj T) (Object, T, error) {
	key := any(obj)
	if out, ok := rm.done[key]; ok {
		return out, obj, nil
	}

	out, err := obj.Embed(rm.Out)
	if err != nil {
		var zero T
		return nil, zero, err
	}
	rm.done[key] = out
	return out, obj, nil
}
