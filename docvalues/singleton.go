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

// SingletonSortedSet adapts a SortedDocValues (one term per document) to
// the SortedSetDocValues contract (zero or more terms per document), for
// callers that only want to work against the multi-valued interface.
type SingletonSortedSet struct {
	single   SortedDocValues
	consumed bool
}

// NewSingletonSortedSet wraps single.
func NewSingletonSortedSet(single SortedDocValues) *SingletonSortedSet {
	return &SingletonSortedSet{single: single}
}

func (s *SingletonSortedSet) DocID() int32 { return s.single.DocID() }

func (s *SingletonSortedSet) NextDoc() int32 {
	s.consumed = false
	return s.single.NextDoc()
}

func (s *SingletonSortedSet) Advance(target int32) int32 {
	s.consumed = false
	return s.single.Advance(target)
}

func (s *SingletonSortedSet) Cost() int64 { return s.single.Cost() }

// NextOrd returns the wrapped document's single ordinal exactly once per
// document, then NoMoreOrds.
func (s *SingletonSortedSet) NextOrd() int64 {
	if s.consumed {
		return NoMoreOrds
	}
	s.consumed = true
	return int64(s.single.OrdValue())
}

func (s *SingletonSortedSet) LookupOrd(ord int64) []byte { return s.single.LookupOrd(int32(ord)) }
func (s *SingletonSortedSet) ValueCount() int64          { return int64(s.single.ValueCount()) }

// SingletonSortedNumeric adapts a NumericDocValues (one value per
// document) to the SortedNumericDocValues contract (zero or more values
// per document).
type SingletonSortedNumeric struct {
	single   NumericDocValues
	has      Bits
	consumed bool
}

// NewSingletonSortedNumeric wraps single. has, if non-nil, is consulted
// by DocValueCount to tell a genuinely valueless document (0 values) from
// one that simply has not been iterated to yet; a nil has means every
// document single visits is assumed to carry a value, matching
// NumericDocValues' own contract of one value per visited document.
func NewSingletonSortedNumeric(single NumericDocValues, has Bits) *SingletonSortedNumeric {
	return &SingletonSortedNumeric{single: single, has: has}
}

func (s *SingletonSortedNumeric) DocID() int32 { return s.single.DocID() }

func (s *SingletonSortedNumeric) NextDoc() int32 {
	s.consumed = false
	return s.single.NextDoc()
}

func (s *SingletonSortedNumeric) Advance(target int32) int32 {
	s.consumed = false
	return s.single.Advance(target)
}

func (s *SingletonSortedNumeric) Cost() int64 { return s.single.Cost() }

// DocValueCount reports 0 for the current document if has was supplied
// and says the document has no value, and 1 otherwise.
func (s *SingletonSortedNumeric) DocValueCount() int {
	if s.has != nil && !s.has.Get(s.single.DocID()) {
		return 0
	}
	return 1
}

// NextValue returns the wrapped document's single value. Every call for
// the same document returns that same value.
func (s *SingletonSortedNumeric) NextValue() int64 {
	s.consumed = true
	return s.single.LongValue()
}
