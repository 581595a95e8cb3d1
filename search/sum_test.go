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

package search

import "testing"

// sliceScorer is a Scorer over a fixed ascending list of doc ids, each
// scoring a constant value.
type sliceScorer struct {
	docs  []int32
	score float64
	pos   int
}

func newSliceScorer(docs []int32, score float64) *sliceScorer {
	return &sliceScorer{docs: docs, score: score, pos: -1}
}

func (s *sliceScorer) DocID() int32 {
	if s.pos < 0 {
		return -1
	}
	if s.pos >= len(s.docs) {
		return NoMoreDocs
	}
	return s.docs[s.pos]
}

func (s *sliceScorer) Next() int32 {
	s.pos++
	return s.DocID()
}

func (s *sliceScorer) Advance(target int32) int32 {
	for s.pos < len(s.docs) && (s.pos < 0 || s.docs[s.pos] < target) {
		s.pos++
	}
	return s.DocID()
}

func (s *sliceScorer) Cost() int64    { return int64(len(s.docs)) }
func (s *sliceScorer) Score() float64 { return s.score }

func TestDisjunctionSumScorer(t *testing.T) {
	a := newSliceScorer([]int32{0, 3, 7}, 1)
	b := newSliceScorer([]int32{3, 5, 7}, 2)
	c := newSliceScorer([]int32{7, 8}, 4)

	s := NewDisjunctionSumScorer([]Scorer{a, b, c})

	var docs []int32
	for d := s.DocID(); d != NoMoreDocs; d = s.Next() {
		docs = append(docs, d)
		if d == 7 {
			if got := s.Score(); got != 7 {
				t.Fatalf("score(7) = %v, want 7 (1+2+4)", got)
			}
		}
	}

	want := []int32{0, 3, 5, 7, 8}
	if len(docs) != len(want) {
		t.Fatalf("docs = %v, want %v", docs, want)
	}
	for i := range want {
		if docs[i] != want[i] {
			t.Fatalf("docs = %v, want %v", docs, want)
		}
	}
}
