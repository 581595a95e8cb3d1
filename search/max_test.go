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

func TestDisjunctionMaxScorerTieBreaker(t *testing.T) {
	a := newSliceScorer([]int32{3}, 2.0)
	b := newSliceScorer([]int32{3}, 4.0)

	s := NewDisjunctionMaxScorer([]Scorer{a, b}, 0.5)

	if got := s.DocID(); got != 3 {
		t.Fatalf("DocID() = %d, want 3", got)
	}
	if got := s.Score(); got != 5.0 {
		t.Fatalf("Score() = %v, want 5.0 (4.0 + 0.5*2.0)", got)
	}
	if got := s.Next(); got != NoMoreDocs {
		t.Fatalf("Next() = %d, want NoMoreDocs", got)
	}
}

func TestDisjunctionMaxScorerPureMax(t *testing.T) {
	a := newSliceScorer([]int32{1}, 1.0)
	b := newSliceScorer([]int32{1}, 9.0)

	s := NewDisjunctionMaxScorer([]Scorer{a, b}, 0)
	if got := s.Score(); got != 9.0 {
		t.Fatalf("Score() = %v, want 9.0", got)
	}
}
