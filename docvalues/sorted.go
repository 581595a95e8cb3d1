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

// sortedColumn adapts a sparseColumn[int32] (one ordinal per document)
// plus a sorted term dictionary to the SortedDocValues contract.
type sortedColumn struct {
	*sparseColumn[int32]
	dict [][]byte
}

// NewSorted builds a SortedDocValues over docs (strictly ascending, one
// entry per document that has a value), the parallel ordinal for each,
// and dict, the field's sorted deduplicated term dictionary.
func NewSorted(docs []int32, ords []int32, dict [][]byte) SortedDocValues {
	return &sortedColumn{sparseColumn: newSparseColumn(docs, ords), dict: dict}
}

func (s *sortedColumn) OrdValue() int32 { return s.Value() }

func (s *sortedColumn) LookupOrd(ord int32) []byte {
	if ord < 0 || int(ord) >= len(s.dict) {
		return nil
	}
	return s.dict[ord]
}

func (s *sortedColumn) ValueCount() int32 { return int32(len(s.dict)) }

// TermIterator returns a TermIterator over this field's sorted,
// deduplicated term dictionary, the same one OrdValue/LookupOrd index
// into.
func (s *sortedColumn) TermIterator() TermIterator {
	return NewSliceTermIterator(s.dict)
}

// sortedSetColumn is a SortedSetDocValues over a CSR-style ords-per-doc
// layout: docs holds one entry per document that has at least one value,
// and ords[i] is that document's full, already-sorted ordinal list.
type sortedSetColumn struct {
	*sparseColumn[[]int64]
	dict  [][]byte
	index int
}

// NewSortedSet builds a SortedSetDocValues over docs, the parallel
// per-document ordinal lists, and dict.
func NewSortedSet(docs []int32, ords [][]int64, dict [][]byte) SortedSetDocValues {
	return &sortedSetColumn{sparseColumn: newSparseColumn(docs, ords), dict: dict}
}

func (s *sortedSetColumn) NextDoc() int32 {
	s.index = 0
	return s.sparseColumn.NextDoc()
}

func (s *sortedSetColumn) Advance(target int32) int32 {
	s.index = 0
	return s.sparseColumn.Advance(target)
}

func (s *sortedSetColumn) NextOrd() int64 {
	cur := s.Value()
	if s.index >= len(cur) {
		return NoMoreOrds
	}
	ord := cur[s.index]
	s.index++
	return ord
}

func (s *sortedSetColumn) LookupOrd(ord int64) []byte {
	if ord < 0 || int(ord) >= len(s.dict) {
		return nil
	}
	return s.dict[ord]
}

func (s *sortedSetColumn) ValueCount() int64 { return int64(len(s.dict)) }

// sortedNumericColumn is a SortedNumericDocValues over a CSR-style
// values-per-doc layout.
type sortedNumericColumn struct {
	*sparseColumn[[]int64]
	index int
}

// NewSortedNumeric builds a SortedNumericDocValues over docs and the
// parallel per-document value lists.
func NewSortedNumeric(docs []int32, values [][]int64) SortedNumericDocValues {
	return &sortedNumericColumn{sparseColumn: newSparseColumn(docs, values)}
}

func (s *sortedNumericColumn) NextDoc() int32 {
	s.index = 0
	return s.sparseColumn.NextDoc()
}

func (s *sortedNumericColumn) Advance(target int32) int32 {
	s.index = 0
	return s.sparseColumn.Advance(target)
}

func (s *sortedNumericColumn) DocValueCount() int { return len(s.Value()) }

func (s *sortedNumericColumn) NextValue() int64 {
	v := s.Value()[s.index]
	s.index++
	return v
}
