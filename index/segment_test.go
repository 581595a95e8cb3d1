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

import "testing"

func TestSegmentTwoFieldsShareTermPool(t *testing.T) {
	seg := NewSegment(nil, nil)
	if seg.ID.String() == "" {
		t.Fatal("NewSegment did not assign an ID")
	}

	title := seg.Field(FieldSpec{Name: "title", Options: IndexOptionsDocsAndFreqsAndPositions})
	body := seg.Field(FieldSpec{Name: "body", Options: IndexOptionsDocsAndFreqsAndPositions, StoreVectors: true})

	if again := seg.Field(FieldSpec{Name: "title", Options: IndexOptionsDocsAndFreqsAndPositions}); again != title {
		t.Fatal("Field did not return the same instance for a repeated name")
	}
	if seg.Vectors("title") != nil {
		t.Fatal("title was not created with StoreVectors, should have no vectors")
	}
	if seg.Vectors("body") == nil {
		t.Fatal("body was created with StoreVectors, should have vectors")
	}

	doc0 := seg.StartDoc()
	if doc0 != 0 {
		t.Fatalf("first StartDoc() = %d, want 0", doc0)
	}
	if err := title.AddToken(Token{Bytes: []byte("hello"), Position: 0, EndOffset: 5}); err != nil {
		t.Fatal(err)
	}
	if err := body.AddToken(Token{Bytes: []byte("hello"), Position: 0, EndOffset: 5}); err != nil {
		t.Fatal(err)
	}
	if err := body.AddToken(Token{Bytes: []byte("world"), Position: 1, StartOffset: 6, EndOffset: 11}); err != nil {
		t.Fatal(err)
	}

	doc1 := seg.StartDoc()
	if doc1 != 1 {
		t.Fatalf("second StartDoc() = %d, want 1", doc1)
	}
	if err := body.AddToken(Token{Bytes: []byte("world"), Position: 0, EndOffset: 5}); err != nil {
		t.Fatal(err)
	}

	if seg.DocCount() != 2 {
		t.Fatalf("DocCount() = %d, want 2", seg.DocCount())
	}

	if err := seg.Flush(); err != nil {
		t.Fatal(err)
	}

	// "world" occurs in doc0 and doc1: two postings once the pending entry
	// for the still-open doc1 occurrence has been flushed.
	bodyWorldID, err := body.Base().BytesHash().Add([]byte("world"))
	if err != nil {
		t.Fatal(err)
	}
	if bodyWorldID >= 0 {
		t.Fatalf("world should already be interned in body, got new id %d", bodyWorldID)
	}
	bodyWorldID = -bodyWorldID - 1
	freqs := body.Base().Postings().TermFreqs
	if freqs[bodyWorldID] == 0 {
		t.Fatal("TermFreqs for world is 0, want 1")
	}
	// doc0 code 0<<1|1 = 1, then the flushed doc1 code (1-0)<<1|1 = 3.
	assertIntsEqual(t, readAllProx(t, body, bodyWorldID, docFreqStream), []int{1, 3})

	vecWorldID, err := seg.Vectors("body").Base().BytesHash().Add([]byte("world"))
	if err != nil {
		t.Fatal(err)
	}
	if vecWorldID >= 0 {
		t.Fatalf("world should already be interned in body's vectors, got new id %d", vecWorldID)
	}

	seg.Clear()
	if seg.DocCount() != 0 {
		t.Fatalf("DocCount() after Clear() = %d, want 0", seg.DocCount())
	}
	if title.Base().BytesHash().Size() != 0 {
		t.Fatal("Clear() did not reset title's intern hash")
	}
	if body.Base().BytesHash().Size() != 0 {
		t.Fatal("Clear() did not reset body's intern hash")
	}

	// The cleared field is still usable for a fresh generation of documents.
	doc0again := seg.StartDoc()
	if doc0again != 0 {
		t.Fatalf("StartDoc() after Clear() = %d, want 0", doc0again)
	}
	if err := title.AddToken(Token{Bytes: []byte("reused"), EndOffset: 6}); err != nil {
		t.Fatal(err)
	}
	id, err := title.Base().BytesHash().Add([]byte("reused"))
	if err != nil {
		t.Fatal(err)
	}
	if id >= 0 {
		t.Fatal("reused should already be interned after AddToken")
	}
}
