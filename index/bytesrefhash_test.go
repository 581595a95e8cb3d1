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
	"fmt"
	"testing"
)

func TestBytesRefHashInternAndDedupe(t *testing.T) {
	cfg := DefaultConfig()
	pool := NewByteBlockPool(&cfg, nil)
	postings := newFreqProxPostingsArray(cfg.HashInitSize, true, false, false)
	h := NewBytesRefHash(pool, cfg.HashInitSize, postings)

	id1, err := h.Add([]byte("apple"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := h.Add([]byte("banana"))
	if err != nil {
		t.Fatal(err)
	}
	if id1 != 0 || id2 != 1 {
		t.Fatalf("first two adds = %d, %d, want 0, 1", id1, id2)
	}

	dupe, err := h.Add([]byte("apple"))
	if err != nil {
		t.Fatal(err)
	}
	if dupe != -(id1 + 1) {
		t.Fatalf("dupe add = %d, want %d", dupe, -(id1 + 1))
	}

	if !bytes.Equal(h.Get(0), []byte("apple")) {
		t.Fatalf("Get(0) = %q, want apple", h.Get(0))
	}
	if !bytes.Equal(h.Get(1), []byte("banana")) {
		t.Fatalf("Get(1) = %q, want banana", h.Get(1))
	}
	if h.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", h.Size())
	}
}

func TestBytesRefHashGrowthAndSort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HashInitSize = 4
	pool := NewByteBlockPool(&cfg, nil)
	postings := newFreqProxPostingsArray(cfg.HashInitSize, true, false, false)
	h := NewBytesRefHash(pool, cfg.HashInitSize, postings)

	words := []string{"mango", "kiwi", "apple", "banana", "fig", "date", "pear", "cherry"}
	ids := make(map[string]int32, len(words))
	for _, w := range words {
		id, err := h.Add([]byte(w))
		if err != nil {
			t.Fatal(err)
		}
		ids[w] = id
	}
	for _, w := range words {
		if got := h.Get(ids[w]); !bytes.Equal(got, []byte(w)) {
			t.Fatalf("Get(%d) = %q, want %q", ids[w], got, w)
		}
	}

	sorted := h.Sort()
	if len(sorted) != len(words) {
		t.Fatalf("Sort() returned %d ids, want %d", len(sorted), len(words))
	}
	for i := 1; i < len(sorted); i++ {
		prev := h.Get(sorted[i-1])
		cur := h.Get(sorted[i])
		if bytes.Compare(prev, cur) >= 0 {
			t.Fatalf("Sort() not ascending at %d: %q >= %q", i, prev, cur)
		}
	}
}

func TestBytesRefHashManyDistinctTerms(t *testing.T) {
	cfg := DefaultConfig()
	pool := NewByteBlockPool(&cfg, nil)
	postings := newFreqProxPostingsArray(cfg.HashInitSize, true, false, false)
	h := NewBytesRefHash(pool, cfg.HashInitSize, postings)

	const n = 2000
	seen := make(map[int32]bool, n)
	for i := 0; i < n; i++ {
		id, err := h.Add([]byte(fmt.Sprintf("term-%d", i)))
		if err != nil {
			t.Fatal(err)
		}
		if id < 0 {
			t.Fatalf("term %d unexpectedly reported as a dupe", i)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d assigned", id)
		}
		seen[id] = true
	}
	if h.Size() != n {
		t.Fatalf("Size() = %d, want %d", h.Size(), n)
	}
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("term-%d", i)
		if got := h.Get(int32(i)); string(got) != want {
			t.Fatalf("Get(%d) = %q, want %q", i, got, want)
		}
	}
}
