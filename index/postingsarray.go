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

package index

// ParallelPostingsArray is the set of columns every terms-hash consumer
// keeps indexed by term id: where in the byte pool each stream's current
// write head lives, and where the interned term text starts. Concrete
// consumers (FreqProxPostingsArray, TermVectorsPostingsArray) embed it
// and add their own columns.
type ParallelPostingsArray struct {
	size int

	// TextStarts holds the arena-absolute byte-pool offset of each term's
	// interned text, populated by BytesRefHash itself.
	TextStarts []int32
	// IntStarts holds the arena-absolute int-pool offset of each term's
	// stream-head record.
	IntStarts []int32
	// ByteStarts holds the arena-absolute byte-pool offset of the first
	// slice of each term's stream 0 (one entry per term). The other
	// streams' first-slice offsets are kept by TermsHashPerFieldBase, and
	// every stream's current write head lives in the int pool at
	// IntStarts.
	ByteStarts []int32
}

func newParallelPostingsArray(size int) ParallelPostingsArray {
	return ParallelPostingsArray{
		size:       size,
		TextStarts: make([]int32, size),
		IntStarts:  make([]int32, size),
		ByteStarts: make([]int32, size),
	}
}

// Size is the current capacity, in term ids, of the array's columns.
func (a *ParallelPostingsArray) Size() int { return a.size }

// grow doubles every column's capacity, copying existing values forward,
// the growth discipline every PostingsArray.Grow implementation follows.
func (a *ParallelPostingsArray) grow() {
	newSize := a.size * 2
	if newSize == 0 {
		newSize = 4
	}
	a.TextStarts = growInt32(a.TextStarts, newSize)
	a.IntStarts = growInt32(a.IntStarts, newSize)
	a.ByteStarts = growInt32(a.ByteStarts, newSize)
	a.size = newSize
}

func growInt32(old []int32, newSize int) []int32 {
	n := make([]int32, newSize)
	copy(n, old)
	return n
}

// streamCount returns how many per-term byte streams a FreqProxPostingsArray
// keeps, which is the width of each term's IntStarts record: one slice
// head per active stream (doc, and optionally pos/offset/payload combined
// into a single prox stream).
func streamCount(hasProx bool) int {
	if hasProx {
		return 2
	}
	return 1
}

// FreqProxPostingsArray holds the doc/freq/position/offset bookkeeping a
// FreqProxPerField needs per term id. There is deliberately no
// zero-argument constructor: every instance must be created through
// newFreqProxPostingsArray so its HasFreq/HasProx/HasOffsets flags (and
// therefore which columns it allocates) are always consistent with the
// field's actual IndexOptions. See DESIGN.md's Open Question decision.
type FreqProxPostingsArray struct {
	ParallelPostingsArray

	HasFreq    bool
	HasProx    bool
	HasOffsets bool

	// LastDocIDs is the most recent doc id seen for each term.
	LastDocIDs []int32
	// LastDocCodes holds each term's not-yet-written doc code for its
	// current document: docDelta<<1 when frequencies are recorded (the
	// low bit is set only when the code is written, if the freq is 1;
	// otherwise the freq follows as a separate vint), or the plain
	// docDelta when they are not.
	LastDocCodes []int32
	// TermFreqs is the in-progress frequency count for each term's
	// current document, set to 1 by the term's first occurrence in each
	// document.
	TermFreqs []int32
	// LastPositions is the most recent position written for each term
	// within its current document, used to delta-encode the next one.
	LastPositions []int32
	// LastOffsets is the most recent end-offset written for each term
	// within its current document, used to delta-encode the next start
	// offset.
	LastOffsets []int32
}

func newFreqProxPostingsArray(size int, hasFreq, hasProx, hasOffsets bool) *FreqProxPostingsArray {
	a := &FreqProxPostingsArray{
		ParallelPostingsArray: newParallelPostingsArray(size),
		HasFreq:               hasFreq,
		HasProx:               hasProx,
		HasOffsets:            hasOffsets,
		LastDocIDs:            make([]int32, size),
	}
	if hasFreq {
		a.TermFreqs = make([]int32, size)
		a.LastDocCodes = make([]int32, size)
	} else {
		a.LastDocCodes = make([]int32, size)
		for i := range a.LastDocCodes {
			a.LastDocCodes[i] = -1
		}
	}
	if hasProx {
		a.LastPositions = make([]int32, size)
		if hasOffsets {
			a.LastOffsets = make([]int32, size)
		}
	}
	return a
}

// Grow implements BytesStartArray's column-growth contract for the owning
// BytesRefHash, returning the (now larger) TextStarts column.
func (a *FreqProxPostingsArray) Grow() []int32 {
	oldSize := a.size
	a.grow()
	newSize := a.size

	a.LastDocIDs = growInt32(a.LastDocIDs, newSize)
	a.LastDocCodes = growInt32(a.LastDocCodes, newSize)
	if !a.HasFreq {
		for i := oldSize; i < newSize; i++ {
			a.LastDocCodes[i] = -1
		}
	} else {
		a.TermFreqs = growInt32(a.TermFreqs, newSize)
	}
	if a.HasProx {
		a.LastPositions = growInt32(a.LastPositions, newSize)
		if a.HasOffsets {
			a.LastOffsets = growInt32(a.LastOffsets, newSize)
		}
	}
	return a.TextStarts
}

// Starts implements BytesStartArray.
func (a *FreqProxPostingsArray) Starts() []int32 { return a.TextStarts }

// Clear implements BytesStartArray, discarding every column.
func (a *FreqProxPostingsArray) Clear() {
	*a = *newFreqProxPostingsArray(0, a.HasFreq, a.HasProx, a.HasOffsets)
}

// BytesUsed implements BytesStartArray. FreqProxPostingsArray does not
// track a running byte budget of its own (the owning ByteBlockPool/
// IntBlockPool do); it returns nil per the interface's "if tracked"
// contract.
func (a *FreqProxPostingsArray) BytesUsed() *int64 { return nil }
