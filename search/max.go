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

// DisjunctionMaxScorer emits the union of its children's docs, scoring
// each emitted doc as its highest-scoring child's score plus tieBreaker
// times the sum of every other tied child's score. tieBreaker == 0
// recovers a pure max; tieBreaker == 1 recovers a pure sum.
type DisjunctionMaxScorer struct {
	queue      *DisiPriorityQueue
	doc        int32
	tieBreaker float64
}

// NewDisjunctionMaxScorer builds a max scorer over children with the
// given tieBreaker multiplier. children must be non-empty.
func NewDisjunctionMaxScorer(children []Scorer, tieBreaker float64) *DisjunctionMaxScorer {
	q := NewDisiPriorityQueue(children)
	s := &DisjunctionMaxScorer{queue: q, doc: NoMoreDocs, tieBreaker: tieBreaker}
	if top := q.Top(); top != noMatch {
		s.doc = q.At(top).Doc
	}
	return s
}

// DocID implements DocIterator.
func (s *DisjunctionMaxScorer) DocID() int32 { return s.doc }

// Cost implements DocIterator, summing the children's cost estimates.
func (s *DisjunctionMaxScorer) Cost() int64 {
	var total int64
	for i := range s.queue.wrappers {
		total += s.queue.wrappers[i].Scorer.Cost()
	}
	return total
}

// Next implements DocIterator.
func (s *DisjunctionMaxScorer) Next() int32 {
	for h := s.queue.TopList(); h != noMatch; {
		w := s.queue.At(h)
		next := w.next
		w.Doc = w.Scorer.Next()
		if w.Doc != NoMoreDocs {
			s.queue.Push(h)
		}
		h = next
	}
	return s.settle()
}

// Advance implements DocIterator.
func (s *DisjunctionMaxScorer) Advance(target int32) int32 {
	for top := s.queue.Top(); top != noMatch && s.queue.At(top).Doc < target; top = s.queue.Top() {
		h := s.queue.pop()
		w := s.queue.At(h)
		w.Doc = w.Scorer.Advance(target)
		if w.Doc != NoMoreDocs {
			s.queue.Push(h)
		}
	}
	return s.settle()
}

func (s *DisjunctionMaxScorer) settle() int32 {
	if top := s.queue.Top(); top != noMatch {
		s.doc = s.queue.At(top).Doc
	} else {
		s.doc = NoMoreDocs
	}
	return s.doc
}

// Score implements Scorer: max(tied scores) + tieBreaker * sum(the rest).
func (s *DisjunctionMaxScorer) Score() float64 {
	max := 0.0
	sum := 0.0
	first := true
	for h := s.queue.TopList(); h != noMatch; {
		w := s.queue.At(h)
		next := w.next
		sc := w.Scorer.Score()
		sum += sc
		if first || sc > max {
			max = sc
			first = false
		}
		s.queue.Push(h)
		h = next
	}
	return max + s.tieBreaker*(sum-max)
}
