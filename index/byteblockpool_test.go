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
	"math/rand"
	"testing"
)

func TestByteBlockPoolSliceOverflow(t *testing.T) {
	cfg := DefaultConfig()
	pool := NewByteBlockPool(&cfg, nil)

	upto, err := pool.NewSlice(cfg.LevelSizes[0])
	if err != nil {
		t.Fatal(err)
	}
	bufIdx := pool.bufferUpto
	start := upto + pool.ByteOffset()
	head := upto

	data := []byte{10, 20, 30, 40, 50, 60}
	for _, b := range data {
		buf := pool.Buffer(bufIdx)
		if buf[head] != 0 {
			head, err = pool.AllocSlice(bufIdx, head)
			if err != nil {
				t.Fatal(err)
			}
			bufIdx = pool.bufferUpto
			buf = pool.Buffer(bufIdx)
		}
		buf[head] = b
		head++
	}
	end := head + pool.ByteOffset()

	r := pool.NewReader(start, end)
	got := r.ReadBytes(len(data))
	if !bytes.Equal(got, data) {
		t.Fatalf("got %v, want %v", got, data)
	}
	if !r.Eof() {
		t.Fatalf("reader not at eof after consuming every written byte")
	}
}

func TestByteBlockPoolTermBytesRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	pool := NewByteBlockPool(&cfg, nil)

	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("hello world"),
		bytes.Repeat([]byte("x"), 200), // forces the 2-byte length header
	}
	starts := make([]int, len(cases))
	for i, c := range cases {
		s, err := pool.AppendTermBytes(c)
		if err != nil {
			t.Fatal(err)
		}
		starts[i] = s
	}
	for i, c := range cases {
		got := pool.ReadTermBytes(starts[i])
		if !bytes.Equal(got, c) {
			t.Fatalf("case %d: got %q, want %q", i, got, c)
		}
	}
}

func TestByteBlockPoolVarintRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	pool := NewByteBlockPool(&cfg, nil)

	rng := rand.New(rand.NewSource(1))
	slice, err := pool.NewSlice(cfg.LevelSizes[0])
	if err != nil {
		t.Fatal(err)
	}
	start := slice + pool.ByteOffset()
	bufIdx := pool.bufferUpto
	head := start % cfg.ByteBlockSize

	values := make([]int, 500)
	for i := range values {
		values[i] = rng.Intn(1 << 28)
	}
	for _, v := range values {
		n := v
		for n&^0x7f != 0 {
			head, err = writeOverflowAware(pool, &bufIdx, head, byte(n&0x7f|0x80))
			if err != nil {
				t.Fatal(err)
			}
			n >>= 7
		}
		head, err = writeOverflowAware(pool, &bufIdx, head, byte(n))
		if err != nil {
			t.Fatal(err)
		}
	}
	end := head + pool.ByteOffset()

	r := pool.NewReader(start, end)
	for i, want := range values {
		got := r.ReadVInt()
		if got != want {
			t.Fatalf("value %d: got %d, want %d", i, got, want)
		}
	}
	if !r.Eof() {
		t.Fatalf("reader not at eof after consuming every varint")
	}
}

func writeOverflowAware(pool *ByteBlockPool, bufIdx *int, head int, b byte) (int, error) {
	buf := pool.Buffer(*bufIdx)
	if buf[head] != 0 {
		var err error
		head, err = pool.AllocSlice(*bufIdx, head)
		if err != nil {
			return 0, err
		}
		*bufIdx = pool.bufferUpto
		buf = pool.Buffer(*bufIdx)
	}
	buf[head] = b
	return head + 1, nil
}
