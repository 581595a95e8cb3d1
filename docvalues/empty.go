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

// emptyIterator is a DocIDSetIterator that is immediately exhausted,
// shared by every Empty* adapter below.
type emptyIterator struct{}

func (emptyIterator) DocID() int32        { return NoMoreDocs }
func (emptyIterator) NextDoc() int32      { return NoMoreDocs }
func (emptyIterator) Advance(int32) int32 { return NoMoreDocs }
func (emptyIterator) Cost() int64         { return 0 }

// HasValue returns a Bits view over [0, maxDoc) that reports false for
// every document, shared by every Empty* adapter.
func (emptyIterator) HasValue(maxDoc int) Bits {
	return DocsWithValue(maxDoc, func(int32) bool { return false })
}

// EmptyNumeric is a NumericDocValues with no documents.
type EmptyNumeric struct{ emptyIterator }

func (EmptyNumeric) LongValue() int64 { return 0 }

// EmptyBinary is a BinaryDocValues with no documents.
type EmptyBinary struct{ emptyIterator }

func (EmptyBinary) BinaryValue() []byte { return nil }

// EmptySorted is a SortedDocValues with no documents and no terms.
type EmptySorted struct{ emptyIterator }

func (EmptySorted) OrdValue() int32        { return -1 }
func (EmptySorted) LookupOrd(int32) []byte { return nil }
func (EmptySorted) ValueCount() int32      { return 0 }
func (EmptySorted) TermIterator() TermIterator {
	return NewSliceTermIterator(nil)
}

// EmptySortedSet is a SortedSetDocValues with no documents and no terms.
type EmptySortedSet struct{ emptyIterator }

func (EmptySortedSet) NextOrd() int64        { return NoMoreOrds }
func (EmptySortedSet) LookupOrd(int64) []byte { return nil }
func (EmptySortedSet) ValueCount() int64      { return 0 }

// EmptySortedNumeric is a SortedNumericDocValues with no documents.
type EmptySortedNumeric struct{ emptyIterator }

func (EmptySortedNumeric) DocValueCount() int { return 0 }
func (EmptySortedNumeric) NextValue() int64   { return 0 }
