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

// DisjunctionSumScorer emits the union of its children's docs, scoring
// each emitted doc as the sum of every child currently tied on it.
type DisjunctionSumScorer struct {
	queue *DisiPriorityQueue
	doc   int32
}

// NewDisjunctionSumScorer builds a sum scorer over children. children
// must be non-empty; each is advanced once (to its first doc) as part of
// queue construction.
func NewDisjunctionSumScorer(children []Scorer) *DisjunctionSumScorer {
	q := NewDisiPriorityQueue(children)
	s := &DisjunctionSumScorer{queue: q, doc: NoMoreDocs}
	if top := q.Top(); top != noMatch {
		s.doc = q.At(top).Doc
	}
	return s
}

// DocID implements DocIterator.
func (s *DisjunctionSumScorer) DocID() int32 { return s.doc }

// Cost implements DocIterator, summing the children's cost estimates.
func (s *DisjunctionSumScorer) Cost() int64 {
	var total int64
	for i := range s.queue.wrappers {
		total += s.queue.wrappers[i].Scorer.Cost()
	}
	return total
}

// Next implements DocIterator: every child currently tied on DocID() is
// advanced by one doc and reinserted into the heap, and the new minimum
// becomes the current doc.
func (s *DisjunctionSumScorer) Next() int32 {
	return s.advanceTied(func(w *DisiWrapper) int32 { return w.Scorer.Next() })
}

// Advance implements DocIterator.
func (s *DisjunctionSumScorer) Advance(target int32) int32 {
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

func (s *DisjunctionSumScorer) advanceTied(step func(*DisiWrapper) int32) int32 {
	for h := s.queue.TopList(); h != noMatch; {
		w := s.queue.At(h)
		next := w.next
		w.Doc = step(w)
		if w.Doc != NoMoreDocs {
			s.queue.Push(h)
		}
		h = next
	}
	return s.settle()
}

func (s *DisjunctionSumScorer) settle() int32 {
	if top := s.queue.Top(); top != noMatch {
		s.doc = s.queue.At(top).Doc
	} else {
		s.doc = NoMoreDocs
	}
	return s.doc
}

// Score implements Scorer, summing every child currently tied on DocID().
// The tie chain is borrowed from the heap and returned unchanged; Score
// does not advance any child.
func (s *DisjunctionSumScorer) Score() float64 {
	var total float64
	for h := s.queue.TopList(); h != noMatch; {
		w := s.queue.At(h)
		next := w.next
		total += w.Scorer.Score()
		s.queue.Push(h)
		h = next
	}
	return total
}
