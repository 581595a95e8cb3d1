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

import (
	"bytes"

	"golang.org/x/exp/slices"
)

// BytesStartArray is the growth callback a BytesRefHash uses to keep a
// parallel postings array's text_starts column (and every other column
// the owner keeps in lockstep with term ids) sized to match the hash's
// own term-id space.
type BytesStartArray interface {
	// Starts returns the current text-starts column.
	Starts() []int32
	// Grow enlarges the owner's parallel columns (including text-starts)
	// and returns the new text-starts column.
	Grow() []int32
	// Clear releases the owner's parallel columns.
	Clear()
	// BytesUsed is the owner's running bytes-used counter, if tracked.
	BytesUsed() *int64
}

// BytesRefHash interns term bytes into a dense, signed-convention term-id
// space backed by a ByteBlockPool arena.
type BytesRefHash struct {
	pool       *ByteBlockPool
	bytesStart BytesStartArray

	ids          []int32
	hashSize     int
	hashHalfSize int
	hashMask     int
	count        int
}

const emptySlot = int32(-1)

// NewBytesRefHash creates a hash backed by pool, with bytesStart as the
// growth callback for the owner's parallel columns.
func NewBytesRefHash(pool *ByteBlockPool, initSize int, bytesStart BytesStartArray) *BytesRefHash {
	h := &BytesRefHash{pool: pool, bytesStart: bytesStart}
	h.reinit(initSize)
	return h
}

func (h *BytesRefHash) reinit(size int) {
	h.hashSize = size
	h.hashHalfSize = size / 2
	h.hashMask = size - 1
	h.ids = make([]int32, size)
	for i := range h.ids {
		h.ids[i] = emptySlot
	}
}

// Size returns the number of distinct terms interned so far.
func (h *BytesRefHash) Size() int { return h.count }

// Get returns the interned bytes for id. The slice aliases pool memory.
func (h *BytesRefHash) Get(id int32) []byte {
	return h.pool.ReadTermBytes(int(h.bytesStart.Starts()[id]))
}

// Add interns b, returning +id if b is new and -(id+1) if b was already
// present, so the caller can tell a fresh term from a repeat occurrence
// without a separate lookup. It returns ErrPoolExhausted if interning a
// new term requires a buffer the backing pool cannot allocate.
func (h *BytesRefHash) Add(b []byte) (int32, error) {
	code := hashBytes(b)
	pos := int(code) & h.hashMask
	inc := probeIncrement(code)

	for {
		e := h.ids[pos]
		if e == emptySlot {
			break
		}
		if bytes.Equal(h.pool.ReadTermBytes(int(h.bytesStart.Starts()[e])), b) {
			return -(e + 1), nil
		}
		pos = (pos + inc) & h.hashMask
	}

	textStart, err := h.pool.AppendTermBytes(b)
	if err != nil {
		return 0, err
	}
	return h.insertNew(pos, textStart), nil
}

// AddByPoolOffset re-enters the hash for bytes already interned at
// textStart in the (shared) pool, avoiding a second copy of the text.
// Used by the secondary (term-vectors) consumer.
func (h *BytesRefHash) AddByPoolOffset(textStart int) int32 {
	b := h.pool.ReadTermBytes(textStart)
	code := hashBytes(b)
	pos := int(code) & h.hashMask
	inc := probeIncrement(code)

	for {
		e := h.ids[pos]
		if e == emptySlot {
			break
		}
		if int(h.bytesStart.Starts()[e]) == textStart {
			return -(e + 1)
		}
		pos = (pos + inc) & h.hashMask
	}

	return h.insertNew(pos, textStart)
}

func (h *BytesRefHash) insertNew(pos, textStart int) int32 {
	id := int32(h.count)
	h.ids[pos] = id
	h.count++

	starts := h.bytesStart.Starts()
	if int(id) >= len(starts) {
		starts = h.bytesStart.Grow()
	}
	starts[id] = int32(textStart)

	if h.count >= h.hashHalfSize {
		h.rehash(h.hashSize * 2)
	}
	return id
}

func (h *BytesRefHash) rehash(newSize int) {
	newMask := newSize - 1
	newIds := make([]int32, newSize)
	for i := range newIds {
		newIds[i] = emptySlot
	}
	starts := h.bytesStart.Starts()
	for _, id := range h.ids {
		if id == emptySlot {
			continue
		}
		b := h.pool.ReadTermBytes(int(starts[id]))
		code := hashBytes(b)
		pos := int(code) & newMask
		inc := probeIncrement(code)
		for newIds[pos] != emptySlot {
			pos = (pos + inc) & newMask
		}
		newIds[pos] = id
	}
	h.ids = newIds
	h.hashSize = newSize
	h.hashHalfSize = newSize / 2
	h.hashMask = newMask
}

// Clear resets the hash and releases the owner's parallel columns, but
// keeps the byte pool itself (the pool lifecycle is managed externally).
func (h *BytesRefHash) Clear() {
	h.reinit(4)
	h.count = 0
	h.bytesStart.Clear()
}

// Sort returns the dense id array [0, n) permuted into strict
// lexicographic ascending order of the interned term bytes.
func (h *BytesRefHash) Sort() []int32 {
	starts := h.bytesStart.Starts()
	ids := make([]int32, h.count)
	for i := range ids {
		ids[i] = int32(i)
	}
	slices.SortFunc(ids, func(a, b int32) bool {
		return bytes.Compare(h.pool.ReadTermBytes(int(starts[a])), h.pool.ReadTermBytes(int(starts[b]))) < 0
	})
	return ids
}

// probeIncrement derives a non-zero linear-probing stride from a hash
// code, the classic open-addressing trick of mixing the hash's high bits
// back in and forcing the low bit on so every bucket in the table is
// eventually visited regardless of table size.
func probeIncrement(code uint64) int {
	return int(((code >> 8) + code) | 1)
}
