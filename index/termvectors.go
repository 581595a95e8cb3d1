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

// termVectorStream is the lone stream a TermVectorsPerField keeps:
// position, start/end offset and payload all interleave in it, the same
// way FreqProxPerField interleaves them in its prox stream.
const termVectorStream = 0

// TermVectorsPerField is a secondary terms-hash consumer: it is driven
// not by its own tokenizer but by a primary FreqProxPerField's
// DoNextCall hook, one occurrence at a time, re-entering its own intern
// hash by pool offset so term text is never copied twice. Unlike the
// primary consumer, a TermVectorsPerField's arenas are scoped to a
// single document: Start resets them, since each document's term vector
// is independent of every other.
type TermVectorsPerField struct {
	base *TermsHashPerFieldBase

	docID int

	pendingPosition    int
	pendingStartOffset int
	pendingEndOffset   int
	pendingPayload     []byte
}

// NewTermVectorsPerField creates a secondary consumer sharing termBytePool
// with the primary consumer it is attached to (so AddByPoolOffset resolves
// against the same interned text), with its own private stream arenas.
func NewTermVectorsPerField(cfg *Config, termBytePool *ByteBlockPool, diag Diagnostics) *TermVectorsPerField {
	v := &TermVectorsPerField{}
	v.base = NewTermsHashPerFieldBase(cfg, termBytePool, 1, IndexOptionsDocsAndFreqsAndPositionsAndOffsets, diag)
	v.base.SetConsumer(v)
	return v
}

// Base exposes the underlying arena/hash plumbing.
func (v *TermVectorsPerField) Base() *TermsHashPerFieldBase { return v.base }

// Start begins recording a new document's term vectors for this field,
// discarding whatever the previous document left behind.
func (v *TermVectorsPerField) Start(docID int) {
	v.docID = docID
	v.base.Reset()
}

// AddByOffset is the DoNextCall target a FreqProxPerField invokes for
// each occurrence: termBytes is the occurrence's text and textStart is
// where the primary consumer already interned it in the shared pool.
func (v *TermVectorsPerField) AddByOffset(termBytes []byte, textStart, position, startOffset, endOffset int, payload []byte) error {
	v.pendingPosition = position
	v.pendingStartOffset = startOffset
	v.pendingEndOffset = endOffset
	v.pendingPayload = payload
	_, err := v.base.AddByPoolOffset(textStart)
	return err
}

// NewTerm implements TermsHashPerFieldConsumer for a term's first
// occurrence in the current document.
func (v *TermVectorsPerField) NewTerm(termID int32) error {
	p := v.base.postings
	p.LastDocIDs[termID] = int32(v.docID)
	p.TermFreqs[termID] = 1
	return v.writeOccurrence(termID, v.pendingPosition)
}

// AddTerm implements TermsHashPerFieldConsumer for every occurrence of a
// term after its first in the current document.
func (v *TermVectorsPerField) AddTerm(termID int32) error {
	p := v.base.postings
	p.TermFreqs[termID]++
	return v.writeOccurrence(termID, v.pendingPosition-int(p.LastPositions[termID]))
}

func (v *TermVectorsPerField) writeOccurrence(termID int32, positionDelta int) error {
	p := v.base.postings
	if len(v.pendingPayload) > 0 {
		if err := v.base.WriteVInt(termID, termVectorStream, positionDelta<<1|1); err != nil {
			return err
		}
		if err := v.base.WriteVInt(termID, termVectorStream, len(v.pendingPayload)); err != nil {
			return err
		}
		if err := v.base.WriteBytes(termID, termVectorStream, v.pendingPayload); err != nil {
			return err
		}
	} else {
		if err := v.base.WriteVInt(termID, termVectorStream, positionDelta<<1); err != nil {
			return err
		}
	}
	p.LastPositions[termID] = int32(v.pendingPosition)

	offsetDelta := v.pendingStartOffset - int(p.LastOffsets[termID])
	if err := v.base.WriteVInt(termID, termVectorStream, offsetDelta); err != nil {
		return err
	}
	if err := v.base.WriteVInt(termID, termVectorStream, v.pendingEndOffset-v.pendingStartOffset); err != nil {
		return err
	}
	p.LastOffsets[termID] = int32(v.pendingEndOffset)
	return nil
}

// TermFrequency returns how many times termID has occurred so far in the
// current document.
func (v *TermVectorsPerField) TermFrequency(termID int32) int {
	return int(v.base.postings.TermFreqs[termID])
}
