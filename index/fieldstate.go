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

// IndexOptions controls which postings streams a field records, ordered
// so that each variant's bit implies every Null-ward variant before it.
type IndexOptions int

const (
	// IndexOptionsNull records nothing; the field is not inverted.
	IndexOptionsNull IndexOptions = iota
	// IndexOptionsDocs records only doc ids.
	IndexOptionsDocs
	// IndexOptionsDocsAndFreqs additionally records per-doc term frequency.
	IndexOptionsDocsAndFreqs
	// IndexOptionsDocsAndFreqsAndPositions additionally records term
	// positions within each doc.
	IndexOptionsDocsAndFreqsAndPositions
	// IndexOptionsDocsAndFreqsAndPositionsAndOffsets additionally records
	// character start/end offsets for each position.
	IndexOptionsDocsAndFreqsAndPositionsAndOffsets
)

// HasFreq reports whether opts records term frequencies.
func (o IndexOptions) HasFreq() bool { return o >= IndexOptionsDocsAndFreqs }

// HasPositions reports whether opts records term positions.
func (o IndexOptions) HasPositions() bool {
	return o >= IndexOptionsDocsAndFreqsAndPositions
}

// HasOffsets reports whether opts records character offsets.
func (o IndexOptions) HasOffsets() bool {
	return o >= IndexOptionsDocsAndFreqsAndPositionsAndOffsets
}

// Token is one analyzed occurrence of a term, as delivered by the
// tokenizer/analyzer stage upstream of the terms hash.
type Token struct {
	// Bytes is the term's byte representation. It must not be retained
	// past the call that produced it; FreqProxPerField copies what it
	// needs into the byte pool immediately.
	Bytes []byte
	// Position is the term's position within its field, 0-based and
	// cumulative across multiple values of the same field in one document.
	Position int
	// StartOffset and EndOffset are character offsets into the field's
	// original text. Only meaningful when the field's IndexOptions
	// include offsets.
	StartOffset int
	EndOffset   int
	// Payload is an optional opaque byte string attached to this
	// occurrence. Nil when absent.
	Payload []byte
}

// FieldInvertState accumulates per-document, per-field statistics while a
// field's tokens are fed into the terms hash. A fresh FieldInvertState is
// used for each (document, field) pair, exported rather than kept as
// writer-local state so callers can inspect term-frequency statistics
// after inverting a document.
type FieldInvertState struct {
	// Position is the position, within the field, of the token currently
	// (or most recently) being processed.
	Position int
	// LastPosition is set by AddToken to the position of the previous
	// token in the same field, and zeroed when a term's first occurrence
	// in a new document is recorded. The position-order check compares
	// against Position, not this field.
	LastPosition int
	// Offset is the running character-offset accumulator, non-zero only
	// once multiple values of the same field have been processed within
	// one document.
	Offset int
	// LastStartOffset is the start offset of the previous token. Offsets
	// are not checked for order.
	LastStartOffset int
	// Length is the total number of tokens seen for this field so far.
	Length int
	// UniqueTermCount is the number of distinct terms seen for this
	// field so far in the current document.
	UniqueTermCount int
	// MaxTermFrequency is the highest single-term frequency observed for
	// this field so far in the current document.
	MaxTermFrequency int
}

// Reset clears s for reuse with a new (document, field) pair.
func (s *FieldInvertState) Reset() {
	*s = FieldInvertState{}
}
