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

import "github.com/google/uuid"

// FieldSpec describes how one named field should be inverted.
type FieldSpec struct {
	Name         string
	Options      IndexOptions
	StoreVectors bool
}

// Segment accumulates postings for a single in-memory segment: one
// FreqProxPerField per indexed field, plus the matching
// TermVectorsPerField for any field with StoreVectors set. All of them
// share a single term byte pool, so a field's term vectors reuse the text
// its FreqProxPerField interned; each field's own intern hash still
// stores its own copy of a term's text.
type Segment struct {
	// ID uniquely identifies this segment for the lifetime of the
	// process, the same way cmd/snellerd mints a fresh uuid.New() per
	// query plan it hands out.
	ID uuid.UUID

	cfg  *Config
	diag Diagnostics

	termBytePool *ByteBlockPool
	fields       map[string]*FreqProxPerField
	vectors      map[string]*TermVectorsPerField

	docCount int
}

// NewSegment creates an empty segment governed by cfg. A nil cfg uses
// DefaultConfig.
func NewSegment(cfg *Config, diag Diagnostics) *Segment {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	return &Segment{
		ID:           uuid.New(),
		cfg:          cfg,
		diag:         diagOrNoop(diag),
		termBytePool: NewByteBlockPool(cfg, diag),
		fields:       make(map[string]*FreqProxPerField),
		vectors:      make(map[string]*TermVectorsPerField),
	}
}

// Field returns (creating if necessary) the FreqProxPerField for spec,
// wiring a TermVectorsPerField alongside it when spec.StoreVectors is set.
func (s *Segment) Field(spec FieldSpec) *FreqProxPerField {
	f, ok := s.fields[spec.Name]
	if ok {
		return f
	}
	f = NewFreqProxPerField(s.cfg, s.termBytePool, spec.Options, s.diag)
	s.fields[spec.Name] = f

	if spec.StoreVectors {
		v := NewTermVectorsPerField(s.cfg, s.termBytePool, s.diag)
		s.vectors[spec.Name] = v
		f.DoNextCall = v.AddByOffset
	}
	return f
}

// Vectors returns the TermVectorsPerField wired to fieldName, or nil if
// that field was not created with StoreVectors set.
func (s *Segment) Vectors(fieldName string) *TermVectorsPerField {
	return s.vectors[fieldName]
}

// StartDoc begins a new document, advancing every field's and term
// vector's Start hook. Callers must invoke StartDoc before the first
// AddToken of each document, including the first.
func (s *Segment) StartDoc() int {
	docID := s.docCount
	s.docCount++
	for name, f := range s.fields {
		f.Start(docID)
		if v, ok := s.vectors[name]; ok {
			v.Start(docID)
		}
	}
	return docID
}

// DocCount is the number of documents StartDoc has been called for.
func (s *Segment) DocCount() int { return s.docCount }

// Flush walks every field's postings and materializes each term's final
// pending doc/freq entry (FlushPendingDoc). It must be called exactly
// once, after the last document has been inverted and before the
// segment's streams are read for serialization.
func (s *Segment) Flush() error {
	for _, f := range s.fields {
		n := f.Base().BytesHash().Size()
		for id := int32(0); id < int32(n); id++ {
			if err := f.FlushPendingDoc(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear releases every field's and term vector's arenas, and the shared
// term byte pool, so the segment's memory can be reused for the next one.
func (s *Segment) Clear() {
	for _, f := range s.fields {
		f.Base().Reset()
	}
	for _, v := range s.vectors {
		v.Base().Reset()
	}
	s.termBytePool.Reset()
	s.docCount = 0
}
