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

// TermsHashPerFieldConsumer receives the new-term/add-term callbacks a
// TermsHashPerFieldBase fires while interning term occurrences.
type TermsHashPerFieldConsumer interface {
	// NewTerm is called the first time termID is seen since the base's
	// intern hash was last cleared. Streams for termID have already been
	// allocated; the consumer is responsible for its first write. An
	// error aborts the occurrence that triggered it.
	NewTerm(termID int32) error
	// AddTerm is called for every later occurrence of termID, in the same
	// document or a later one. It reports ErrNonMonotonicDoc if the
	// occurrence's doc id goes backwards, or an error from the underlying
	// arenas.
	AddTerm(termID int32) error
}

// TermsHashPerFieldBase owns the byte-pool/int-pool arenas and the intern
// hash shared by a single field's postings streams, and drives the
// new-term/add-term state machine common to every consumer (the primary
// FreqProxPerField and the secondary TermVectorsPerField).
type TermsHashPerFieldBase struct {
	cfg *Config

	streamCount int
	bytePool    *ByteBlockPool
	intPool     *IntBlockPool

	bytesHash *BytesRefHash
	postings  *FreqProxPostingsArray

	// streamStarts holds, per term id and stream, the fixed arena-absolute
	// offset of that stream's first slice (unlike the int pool's stream
	// head, which moves forward as bytes are written). Flat-indexed as
	// termID*streamCount+stream.
	streamStarts []int32

	consumer TermsHashPerFieldConsumer
}

// NewTermsHashPerFieldBase wires a base around a freshly created postings
// array and its own private byte/int pools. termBytePool backs the
// BytesRefHash's term-text interning; it may be shared across fields of
// the same document (the primary and secondary consumers for a field
// share it, so AddByPoolOffset can re-enter the hash without copying
// text).
func NewTermsHashPerFieldBase(cfg *Config, termBytePool *ByteBlockPool, streamCount int, opts IndexOptions, diag Diagnostics) *TermsHashPerFieldBase {
	postings := newFreqProxPostingsArray(cfg.HashInitSize, opts.HasFreq(), opts.HasPositions(), opts.HasOffsets())
	return &TermsHashPerFieldBase{
		cfg:         cfg,
		streamCount: streamCount,
		bytePool:    NewByteBlockPool(cfg, diag),
		intPool:     NewIntBlockPool(cfg, diag),
		bytesHash:   NewBytesRefHash(termBytePool, cfg.HashInitSize, postings),
		postings:    postings,
	}
}

// SetConsumer binds the owner that receives NewTerm/AddTerm callbacks.
// Split from the constructor because the owner typically embeds the base
// and cannot pass itself as a receiver before it exists.
func (b *TermsHashPerFieldBase) SetConsumer(c TermsHashPerFieldConsumer) { b.consumer = c }

// Postings exposes the backing FreqProxPostingsArray for consumers that
// read the doc/freq/position columns directly.
func (b *TermsHashPerFieldBase) Postings() *FreqProxPostingsArray { return b.postings }

// BytesHash exposes the intern hash, e.g. for sort_postings.
func (b *TermsHashPerFieldBase) BytesHash() *BytesRefHash { return b.bytesHash }

// Add interns termBytes, allocates fresh stream slices for a previously
// unseen term, and fires the consumer's NewTerm/AddTerm hook. It returns
// the dense term id. An error from the arenas or from the consumer
// itself (e.g. ErrNonMonotonicDoc) propagates to the caller.
func (b *TermsHashPerFieldBase) Add(termBytes []byte) (int32, error) {
	result, err := b.bytesHash.Add(termBytes)
	if err != nil {
		return 0, err
	}
	if result >= 0 {
		termID := result
		if err := b.initStreams(termID); err != nil {
			return 0, err
		}
		if err := b.consumer.NewTerm(termID); err != nil {
			return 0, err
		}
		return termID, nil
	}
	termID := -result - 1
	if err := b.consumer.AddTerm(termID); err != nil {
		return 0, err
	}
	return termID, nil
}

// AddByPoolOffset is the secondary-consumer counterpart of Add: it
// re-enters the hash for text already interned (by the primary consumer)
// at textStart, so a field's secondary consumer (e.g. term vectors) never
// copies term bytes a second time.
func (b *TermsHashPerFieldBase) AddByPoolOffset(textStart int) (int32, error) {
	result := b.bytesHash.AddByPoolOffset(textStart)
	if result >= 0 {
		termID := result
		if err := b.initStreams(termID); err != nil {
			return 0, err
		}
		if err := b.consumer.NewTerm(termID); err != nil {
			return 0, err
		}
		return termID, nil
	}
	termID := -result - 1
	if err := b.consumer.AddTerm(termID); err != nil {
		return 0, err
	}
	return termID, nil
}

func (b *TermsHashPerFieldBase) initStreams(termID int32) error {
	b.ensureStreamStarts(termID)

	bufferIdx, start, err := b.intPool.Reserve(b.streamCount)
	if err != nil {
		return err
	}
	intStart := bufferIdx*b.cfg.IntBlockSize + start
	b.postings.IntStarts[termID] = int32(intStart)

	for s := 0; s < b.streamCount; s++ {
		sLocal, err := b.bytePool.NewSlice(b.cfg.FirstLevelSize())
		if err != nil {
			return err
		}
		head := sLocal + b.bytePool.ByteOffset()
		b.intPool.Set(bufferIdx, start+s, int32(head))
		b.streamStarts[int(termID)*b.streamCount+s] = int32(head)
		if s == 0 {
			b.postings.ByteStarts[termID] = int32(head)
		}
	}
	return nil
}

func (b *TermsHashPerFieldBase) ensureStreamStarts(termID int32) {
	need := (int(termID) + 1) * b.streamCount
	if len(b.streamStarts) < need {
		grown := make([]int32, b.postings.Size()*b.streamCount)
		if len(grown) < need {
			grown = make([]int32, need)
		}
		copy(grown, b.streamStarts)
		b.streamStarts = grown
	}
}

// streamHead returns the arena-absolute write position for stream of
// termID.
func (b *TermsHashPerFieldBase) streamHead(termID int32, stream int) int {
	arenaIdx := int(b.postings.IntStarts[termID]) + stream
	bufIdx, idx := b.intPool.Locate(arenaIdx)
	return int(b.intPool.Get(bufIdx, idx))
}

func (b *TermsHashPerFieldBase) setStreamHead(termID int32, stream int, v int) {
	arenaIdx := int(b.postings.IntStarts[termID]) + stream
	bufIdx, idx := b.intPool.Locate(arenaIdx)
	b.intPool.Set(bufIdx, idx, int32(v))
}

// WriteByte appends b to termID's stream, transparently following a
// forwarding pointer (allocating a larger slice) when the current one is
// full. It returns ErrPoolExhausted if a larger slice is needed and the
// backing pool has reached its buffer cap.
func (b *TermsHashPerFieldBase) WriteByte(termID int32, stream int, v byte) error {
	upto := b.streamHead(termID, stream)
	bufIdx := upto / b.cfg.ByteBlockSize
	offset := upto % b.cfg.ByteBlockSize
	buf := b.bytePool.Buffer(bufIdx)

	if buf[offset] != 0 {
		var err error
		offset, err = b.bytePool.AllocSlice(bufIdx, offset)
		if err != nil {
			return err
		}
		bufIdx = b.bytePool.bufferUpto
		buf = b.bytePool.Buffer(bufIdx)
		upto = offset + b.bytePool.ByteOffset()
	}
	buf[offset] = v
	b.setStreamHead(termID, stream, upto+1)
	return nil
}

// WriteBytes appends every byte of p to termID's stream.
func (b *TermsHashPerFieldBase) WriteBytes(termID int32, stream int, p []byte) error {
	for _, v := range p {
		if err := b.WriteByte(termID, stream, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteVInt appends n to termID's stream using a little-endian 7-bit
// group varint encoding: each byte holds 7 data bits plus a high
// continuation bit.
func (b *TermsHashPerFieldBase) WriteVInt(termID int32, stream int, n int) error {
	for n&^0x7f != 0 {
		if err := b.WriteByte(termID, stream, byte(n&0x7f|0x80)); err != nil {
			return err
		}
		n >>= 7
	}
	return b.WriteByte(termID, stream, byte(n))
}

// StreamStart returns the arena-absolute offset of termID's first slice
// for stream, i.e. the start a Reader should begin replaying from.
func (b *TermsHashPerFieldBase) StreamStart(termID int32, stream int) int {
	return int(b.streamStarts[int(termID)*b.streamCount+stream])
}

// StreamEnd returns the current (exclusive) arena-absolute write position
// of termID's stream, i.e. the end a Reader should stop replaying at.
func (b *TermsHashPerFieldBase) StreamEnd(termID int32, stream int) int {
	return b.streamHead(termID, stream)
}

// NewReader returns a Reader that replays everything written so far to
// termID's stream, from its very first byte.
func (b *TermsHashPerFieldBase) NewReader(termID int32, stream int) *Reader {
	return b.bytePool.NewReader(b.StreamStart(termID, stream), b.StreamEnd(termID, stream))
}

// SortPostings returns term ids in ascending lexicographic order of their
// interned text.
func (b *TermsHashPerFieldBase) SortPostings() []int32 {
	return b.bytesHash.Sort()
}

// Reset releases every arena this base owns, for reuse across documents
// within the same segment.
func (b *TermsHashPerFieldBase) Reset() {
	b.bytesHash.Clear()
	b.bytePool.Reset()
	b.intPool.Reset()
	b.streamStarts = nil
}
