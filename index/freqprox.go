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

const (
	docFreqStream = 0
	proxStream    = 1
)

// FreqProxPerField is the primary terms-hash consumer for one field: it
// records doc ids, term frequencies, positions, offsets and payloads,
// and optionally forwards every occurrence to a secondary consumer
// (e.g. term vectors) via DoNextCall.
type FreqProxPerField struct {
	base *TermsHashPerFieldBase
	opts IndexOptions

	State *FieldInvertState

	docID int

	// current occurrence, stashed so NewTerm/AddTerm (invoked from
	// base.Add without a token parameter) can see it.
	startOffset int
	endOffset   int
	payload     []byte

	// DoNextCall, when non-nil, is invoked for every occurrence right
	// after this field's own bookkeeping, passing along the bytes and
	// pool offset the term was interned at (so the secondary consumer
	// can re-enter its own hash via AddByPoolOffset without re-copying
	// text) plus the occurrence's position/offsets/payload.
	DoNextCall func(termBytes []byte, textStart, position, startOffset, endOffset int, payload []byte) error
}

// NewFreqProxPerField creates a primary consumer for a field with the
// given indexing options, backed by its own arenas.
func NewFreqProxPerField(cfg *Config, termBytePool *ByteBlockPool, opts IndexOptions, diag Diagnostics) *FreqProxPerField {
	f := &FreqProxPerField{
		opts:  opts,
		State: &FieldInvertState{},
	}
	f.base = NewTermsHashPerFieldBase(cfg, termBytePool, streamCount(opts.HasPositions()), opts, diag)
	f.base.SetConsumer(f)
	return f
}

// Base exposes the underlying arena/hash plumbing, e.g. for SortPostings
// or constructing readers during a flush.
func (f *FreqProxPerField) Base() *TermsHashPerFieldBase { return f.base }

// Start begins inverting a new document. Every field of a document must
// call Start (with that document's id) before its first AddToken.
func (f *FreqProxPerField) Start(docID int) {
	f.docID = docID
	f.State.Reset()
}

// NextFieldInstance begins a new value of the same field within the
// document most recently passed to Start (a multi-valued field). It
// folds the previous instance's end offset into State.Offset, so
// subsequent tokens' start/end offsets keep increasing across instances
// instead of restarting at zero; Position, UniqueTermCount and
// MaxTermFrequency are left untouched, since all three already
// accumulate per field per document rather than per instance.
func (f *FreqProxPerField) NextFieldInstance() {
	f.State.Offset = f.endOffset
}

// AddToken records one analyzed occurrence of a term in the document
// most recently passed to Start. docID must be greater than the docID
// of every earlier Start call that produced a new occurrence of this
// same term, and tok.Position must be greater than or equal to the
// previous token's position within the same field. Violations return
// ErrNonMonotonicDoc/ErrNonMonotonicPosition (or panic, if
// DebugAssertions is set).
func (f *FreqProxPerField) AddToken(tok Token) error {
	if f.opts.HasPositions() && f.State.Length > 0 && tok.Position < f.State.Position {
		return orderingViolation(ErrNonMonotonicPosition)
	}

	f.State.LastPosition = f.State.Position
	f.State.Position = tok.Position
	f.State.LastStartOffset = f.startOffset
	f.startOffset = f.State.Offset + tok.StartOffset
	f.endOffset = f.State.Offset + tok.EndOffset
	f.payload = tok.Payload
	f.State.Length++

	termID, err := f.base.Add(tok.Bytes)
	if err != nil {
		return err
	}

	if f.DoNextCall != nil {
		ts := int(f.base.postings.TextStarts[termID])
		if err := f.DoNextCall(tok.Bytes, ts, tok.Position, f.startOffset, f.endOffset, tok.Payload); err != nil {
			return err
		}
	}
	return nil
}

// NewTerm implements TermsHashPerFieldConsumer for a term's first
// occurrence anywhere in this field's current segment.
func (f *FreqProxPerField) NewTerm(termID int32) error {
	p := f.base.postings
	p.LastDocIDs[termID] = int32(f.docID)

	if !f.opts.HasFreq() {
		p.LastDocCodes[termID] = int32(f.docID)
	} else {
		p.LastDocCodes[termID] = int32(f.docID) << 1
		p.TermFreqs[termID] = 1
		if f.opts.HasPositions() {
			if err := f.writeProx(termID, f.State.Position); err != nil {
				return err
			}
			if f.opts.HasOffsets() {
				if err := f.writeOffsets(termID, f.startOffset); err != nil {
					return err
				}
			}
		}
	}
	if f.State.MaxTermFrequency < 1 {
		f.State.MaxTermFrequency = 1
	}
	f.State.UniqueTermCount++
	return nil
}

// AddTerm implements TermsHashPerFieldConsumer for every occurrence of a
// term after its first, whether in this document or a later one. If
// docID has gone backwards relative to the term's last occurrence, the
// occurrence is dropped and ErrNonMonotonicDoc is reported through
// orderingViolation (panicking under DebugAssertions).
func (f *FreqProxPerField) AddTerm(termID int32) error {
	p := f.base.postings

	if !f.opts.HasFreq() {
		if int32(f.docID) != p.LastDocIDs[termID] {
			if int32(f.docID) < p.LastDocIDs[termID] {
				return orderingViolation(ErrNonMonotonicDoc)
			}
			if err := f.base.WriteVInt(termID, docFreqStream, int(p.LastDocCodes[termID])); err != nil {
				return err
			}
			p.LastDocCodes[termID] = int32(f.docID) - p.LastDocIDs[termID]
			p.LastDocIDs[termID] = int32(f.docID)
		}
		return nil
	}

	if int32(f.docID) != p.LastDocIDs[termID] {
		if int32(f.docID) < p.LastDocIDs[termID] {
			return orderingViolation(ErrNonMonotonicDoc)
		}
		if p.TermFreqs[termID] == 1 {
			if err := f.base.WriteVInt(termID, docFreqStream, int(p.LastDocCodes[termID])|1); err != nil {
				return err
			}
		} else {
			if err := f.base.WriteVInt(termID, docFreqStream, int(p.LastDocCodes[termID])); err != nil {
				return err
			}
			if err := f.base.WriteVInt(termID, docFreqStream, int(p.TermFreqs[termID])); err != nil {
				return err
			}
		}
		p.TermFreqs[termID] = 1
		if f.State.MaxTermFrequency < 1 {
			f.State.MaxTermFrequency = 1
		}
		p.LastDocCodes[termID] = (int32(f.docID) - p.LastDocIDs[termID]) << 1
		p.LastDocIDs[termID] = int32(f.docID)
		if f.opts.HasPositions() {
			f.State.LastPosition = 0
			if err := f.writeProx(termID, f.State.Position); err != nil {
				return err
			}
			if f.opts.HasOffsets() {
				p.LastOffsets[termID] = 0
				if err := f.writeOffsets(termID, f.startOffset); err != nil {
					return err
				}
			}
		}
		f.State.UniqueTermCount++
		return nil
	}

	p.TermFreqs[termID]++
	if int(p.TermFreqs[termID]) > f.State.MaxTermFrequency {
		f.State.MaxTermFrequency = int(p.TermFreqs[termID])
	}
	if f.opts.HasPositions() {
		if err := f.writeProx(termID, f.State.Position-int(p.LastPositions[termID])); err != nil {
			return err
		}
		if f.opts.HasOffsets() {
			if err := f.writeOffsets(termID, f.startOffset); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeProx appends a position delta (and, if present, the current
// occurrence's payload) to termID's prox stream.
func (f *FreqProxPerField) writeProx(termID int32, delta int) error {
	p := f.base.postings
	if len(f.payload) > 0 {
		if err := f.base.WriteVInt(termID, proxStream, delta<<1|1); err != nil {
			return err
		}
		if err := f.base.WriteVInt(termID, proxStream, len(f.payload)); err != nil {
			return err
		}
		if err := f.base.WriteBytes(termID, proxStream, f.payload); err != nil {
			return err
		}
	} else {
		if err := f.base.WriteVInt(termID, proxStream, delta<<1); err != nil {
			return err
		}
	}
	p.LastPositions[termID] = int32(f.State.Position)
	return nil
}

// writeOffsets appends the current occurrence's start/end offsets,
// delta-encoded against the term's previous end offset, to termID's prox
// stream (offsets and positions interleave in the same stream).
func (f *FreqProxPerField) writeOffsets(termID int32, startOffset int) error {
	p := f.base.postings
	delta := startOffset - int(p.LastOffsets[termID])
	if err := f.base.WriteVInt(termID, proxStream, delta); err != nil {
		return err
	}
	if err := f.base.WriteVInt(termID, proxStream, f.endOffset-startOffset); err != nil {
		return err
	}
	p.LastOffsets[termID] = int32(f.endOffset)
	return nil
}

// FlushPendingDoc writes termID's still-unflushed final doc/freq entry to
// its doc/freq stream. Every term accumulates its most recent occurrence
// in LastDocIDs/LastDocCodes/TermFreqs rather than the stream itself, so
// a segment flush must call this once per term id after the last
// document has been inverted, to materialize the final entry.
func (f *FreqProxPerField) FlushPendingDoc(termID int32) error {
	p := f.base.postings
	if !f.opts.HasFreq() {
		return f.base.WriteVInt(termID, docFreqStream, int(p.LastDocCodes[termID]))
	}
	if p.TermFreqs[termID] == 1 {
		return f.base.WriteVInt(termID, docFreqStream, int(p.LastDocCodes[termID])|1)
	}
	if err := f.base.WriteVInt(termID, docFreqStream, int(p.LastDocCodes[termID])); err != nil {
		return err
	}
	return f.base.WriteVInt(termID, docFreqStream, int(p.TermFreqs[termID]))
}
