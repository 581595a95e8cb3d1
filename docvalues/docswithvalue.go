// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package docvalues

import "sort"

// Bits is a fixed-size, random-access presence test over doc ids
// [0, Len()): the "does this document have a value" view a doc-values
// column exposes alongside its sparse iterator, for callers (e.g. a
// singleton wrapper, or a disjunction that needs to skip valueless
// documents without iterating them) that want presence without paying
// for a full NextDoc/Advance walk.
type Bits interface {
	// Get reports whether doc has a value.
	Get(doc int32) bool
	// Len is the exclusive upper bound of the doc id space Get accepts.
	Len() int32
}

// closureBits adapts a caller-supplied predicate to Bits, the shape
// DocsWithValue itself returns and sparseColumn.HasValue builds from its
// own docs slice.
type closureBits struct {
	maxDoc   int32
	hasValue func(doc int32) bool
}

func (b closureBits) Get(doc int32) bool { return b.hasValue(doc) }
func (b closureBits) Len() int32         { return b.maxDoc }

// DocsWithValue builds a Bits view over [0, maxDoc) from hasValue. This
// is the generic presence-bitset constructor; it is independent of any
// particular column's storage, unlike sparseColumn.HasValue which derives
// the same view from a column's own sorted docs slice.
func DocsWithValue(maxDoc int, hasValue func(doc int32) bool) Bits {
	return closureBits{maxDoc: int32(maxDoc), hasValue: hasValue}
}

// sparseColumn is a sparse, sorted (doc id, value) column: the iterator
// a Numeric/Binary doc-values adapter needs when not every document has
// a value. docs must be strictly ascending. A single generic
// implementation replaces what would otherwise be one nearly identical
// struct per value type.
type sparseColumn[T any] struct {
	docs   []int32
	values []T
	pos    int
}

// newSparseColumn builds a column over parallel docs/values slices.
// docs must already be sorted ascending; len(docs) must equal len(values).
func newSparseColumn[T any](docs []int32, values []T) *sparseColumn[T] {
	return &sparseColumn[T]{docs: docs, values: values, pos: -1}
}

// DocID implements DocIDSetIterator.
func (d *sparseColumn[T]) DocID() int32 {
	switch {
	case d.pos < 0:
		return -1
	case d.pos >= len(d.docs):
		return NoMoreDocs
	default:
		return d.docs[d.pos]
	}
}

// NextDoc implements DocIDSetIterator.
func (d *sparseColumn[T]) NextDoc() int32 {
	d.pos++
	if d.pos >= len(d.docs) {
		d.pos = len(d.docs)
		return NoMoreDocs
	}
	return d.docs[d.pos]
}

// Advance implements DocIDSetIterator, binary searching for target.
func (d *sparseColumn[T]) Advance(target int32) int32 {
	if d.pos < 0 {
		d.pos = 0
	}
	d.pos += sort.Search(len(d.docs)-d.pos, func(i int) bool {
		return d.docs[d.pos+i] >= target
	})
	if d.pos >= len(d.docs) {
		return NoMoreDocs
	}
	return d.docs[d.pos]
}

// Cost implements DocIDSetIterator.
func (d *sparseColumn[T]) Cost() int64 { return int64(len(d.docs)) }

// Value returns the value for the iterator's current document.
func (d *sparseColumn[T]) Value() T { return d.values[d.pos] }

// HasValue returns a Bits view over [0, maxDoc) backed by this column's
// own sorted docs slice, via binary search.
func (d *sparseColumn[T]) HasValue(maxDoc int) Bits {
	return DocsWithValue(maxDoc, func(doc int32) bool {
		i := sort.Search(len(d.docs), func(i int) bool { return d.docs[i] >= doc })
		return i < len(d.docs) && d.docs[i] == doc
	})
}

// numericColumn adapts a sparseColumn[int64] to NumericDocValues.
type numericColumn struct{ *sparseColumn[int64] }

// NewNumeric builds a NumericDocValues from a sparse sorted column.
func NewNumeric(docs []int32, values []int64) NumericDocValues {
	return numericColumn{newSparseColumn(docs, values)}
}

func (c numericColumn) LongValue() int64 { return c.Value() }

// binaryColumn adapts a sparseColumn[[]byte] to BinaryDocValues.
type binaryColumn struct{ *sparseColumn[[]byte] }

// NewBinary builds a BinaryDocValues from a sparse sorted column.
func NewBinary(docs []int32, values [][]byte) BinaryDocValues {
	return binaryColumn{newSparseColumn(docs, values)}
}

func (c binaryColumn) BinaryValue() []byte { return c.Value() }
