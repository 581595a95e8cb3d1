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

import "github.com/lucore-io/lucore/heap"

// noMatch is the tie-chain terminator: -1, a handle that names no
// wrapper in the slab.
const noMatch = int32(-1)

// DisiWrapper pairs a child Scorer with its current doc id and a
// tie-chain link. next is a handle (an index into the owning queue's
// fixed wrapper slab) rather than a raw pointer, so TopList can thread a
// chain together without the chain's validity depending on the heap's
// backing array never moving.
type DisiWrapper struct {
	Scorer Scorer
	Doc    int32

	next int32
}

// DisiPriorityQueue is a min-heap of child iterators ordered by doc id.
// The wrapper slab is allocated once, at construction, and never
// reallocated afterward, so indices into it (including next handles
// handed out by TopList) remain valid for the queue's entire lifetime.
type DisiPriorityQueue struct {
	wrappers []DisiWrapper
	idxHeap  []int32
}

// NewDisiPriorityQueue builds a queue over children, calling Next on each
// once to establish its initial position.
func NewDisiPriorityQueue(children []Scorer) *DisiPriorityQueue {
	q := &DisiPriorityQueue{
		wrappers: make([]DisiWrapper, len(children)),
		idxHeap:  make([]int32, len(children)),
	}
	for i, c := range children {
		q.wrappers[i] = DisiWrapper{Scorer: c, Doc: c.Next(), next: noMatch}
		q.idxHeap[i] = int32(i)
	}
	heap.OrderSlice(q.idxHeap, q.less)
	return q
}

func (q *DisiPriorityQueue) less(a, b int32) bool {
	return q.wrappers[a].Doc < q.wrappers[b].Doc
}

// Size reports the number of children remaining in the heap.
func (q *DisiPriorityQueue) Size() int { return len(q.idxHeap) }

// At resolves handle to the wrapper it names.
func (q *DisiPriorityQueue) At(handle int32) *DisiWrapper { return &q.wrappers[handle] }

// Top returns the handle of the wrapper with the lowest doc id, or
// noMatch if the heap is empty.
func (q *DisiPriorityQueue) Top() int32 {
	if len(q.idxHeap) == 0 {
		return noMatch
	}
	return q.idxHeap[0]
}

// Push re-enters handle into the heap after the caller has advanced its
// doc id (or confirmed it is exhausted and should be dropped, in which
// case the caller must not call Push at all).
func (q *DisiPriorityQueue) Push(handle int32) {
	heap.PushSlice(&q.idxHeap, handle, q.less)
}

// pop removes and returns the current top handle from the heap.
func (q *DisiPriorityQueue) pop() int32 {
	return heap.PopSlice(&q.idxHeap, q.less)
}

// TopList pops every wrapper tied with the current minimum doc id off the
// heap and returns the handle of the head of a singly linked chain
// threading them together via DisiWrapper.next, terminated by noMatch.
// Popped wrappers are not in the heap anymore; the caller must Push each
// one back (after advancing its Doc) once finished with it.
func (q *DisiPriorityQueue) TopList() int32 {
	if len(q.idxHeap) == 0 {
		return noMatch
	}
	headIdx := q.pop()
	doc := q.wrappers[headIdx].Doc
	q.wrappers[headIdx].next = noMatch
	head := headIdx

	for len(q.idxHeap) > 0 && q.wrappers[q.idxHeap[0]].Doc == doc {
		nextIdx := q.pop()
		q.wrappers[nextIdx].next = head
		head = nextIdx
	}
	return head
}
