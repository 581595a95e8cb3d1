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

// Package docvalues provides column-oriented per-document value storage
// adapters: numeric, binary, and ordinal-encoded (sorted) variants, each
// with a not-present-everywhere ("Empty") form, plus singleton adapters
// that present a single-valued sorted or numeric column as a
// multi-valued one.
package docvalues

// NoMoreDocs mirrors search.NoMoreDocs; duplicated here rather than
// imported so docvalues has no dependency on search.
const NoMoreDocs = int32(1<<31 - 1)

// NoMoreOrds is returned by a SortedSet iterator's NextOrd once a
// document's ordinal list is exhausted. SortedNumeric iterators do not
// return it; their callers read exactly DocValueCount() values.
const NoMoreOrds = int64(-1)

// DocIDSetIterator is the minimal advance/next contract every doc-values
// view's "doc with a value" iterator satisfies.
type DocIDSetIterator interface {
	DocID() int32
	NextDoc() int32
	Advance(target int32) int32
	Cost() int64
}

// NumericDocValues exposes one int64 per document, for documents that
// have a value (see DocsWithValue for a presence test).
type NumericDocValues interface {
	DocIDSetIterator
	// LongValue returns the value for the iterator's current document.
	LongValue() int64
}

// BinaryDocValues exposes one byte string per document.
type BinaryDocValues interface {
	DocIDSetIterator
	// BinaryValue returns the value for the iterator's current document.
	// The returned slice must not be retained past the next iterator
	// call.
	BinaryValue() []byte
}

// SortedDocValues exposes one ordinal-encoded term per document: the
// ordinal indexes into the field's sorted, deduplicated term dictionary.
type SortedDocValues interface {
	DocIDSetIterator
	// OrdValue returns the ordinal for the iterator's current document.
	OrdValue() int32
	// LookupOrd resolves an ordinal to its term bytes.
	LookupOrd(ord int32) []byte
	// ValueCount is the number of distinct terms in the dictionary.
	ValueCount() int32
	// TermIterator walks the field's sorted, deduplicated term
	// dictionary that OrdValue/LookupOrd index into.
	TermIterator() TermIterator
}

// SortedSetDocValues exposes zero or more ordinal-encoded terms per
// document, read back one at a time via NextOrd.
type SortedSetDocValues interface {
	DocIDSetIterator
	// NextOrd returns the next ordinal for the current document, or
	// NoMoreOrds once all of this document's ordinals have been read.
	NextOrd() int64
	LookupOrd(ord int64) []byte
	ValueCount() int64
}

// SortedNumericDocValues exposes zero or more int64 values per document.
type SortedNumericDocValues interface {
	DocIDSetIterator
	// DocValueCount is the number of values attached to the current
	// document.
	DocValueCount() int
	// NextValue returns the next of the current document's values; it
	// must be called exactly DocValueCount() times per document.
	NextValue() int64
}
