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

import "github.com/lucore-io/lucore/internal/memops"

// IntBlockPool is the int32 counterpart of ByteBlockPool: an append-only
// arena of fixed-size int32 buffers. Each per-term record reserves
// stream_count consecutive ints holding the absolute byte-pool write head
// for each of that term's streams.
type IntBlockPool struct {
	cfg     *Config
	buffers [][]int32

	bufferUpto int
	intUpto    int
	intOffset  int

	diag Diagnostics
}

// NewIntBlockPool creates an empty pool governed by cfg.
func NewIntBlockPool(cfg *Config, diag Diagnostics) *IntBlockPool {
	return &IntBlockPool{cfg: cfg, diag: diagOrNoop(diag)}
}

func (p *IntBlockPool) nextBuffer() error {
	if p.cfg.MaxBuffers > 0 && len(p.buffers) >= p.cfg.MaxBuffers {
		p.diag.OnPoolExhausted("int", ErrPoolExhausted)
		return ErrPoolExhausted
	}
	if len(p.buffers) > 0 {
		p.intOffset += p.cfg.IntBlockSize
	}
	buf := make([]int32, p.cfg.IntBlockSize)
	p.buffers = append(p.buffers, buf)
	p.bufferUpto = len(p.buffers) - 1
	p.intUpto = 0
	p.diag.OnBufferGrow("int", len(p.buffers))
	return nil
}

// Remaining reports how many int32 slots are free in the current buffer.
func (p *IntBlockPool) Remaining() int {
	if len(p.buffers) == 0 {
		return 0
	}
	return p.cfg.IntBlockSize - p.intUpto
}

// EnsureBuffer guarantees the current buffer has at least n int32s free.
func (p *IntBlockPool) EnsureBuffer(n int) error {
	if len(p.buffers) == 0 || p.Remaining() < n {
		return p.nextBuffer()
	}
	return nil
}

// Reserve ensures room for n ints, advances the write cursor past them,
// and returns the arena-local buffer index and the starting offset
// within that buffer for the reserved region.
func (p *IntBlockPool) Reserve(n int) (bufferIdx, start int, err error) {
	if err := p.EnsureBuffer(n); err != nil {
		return 0, 0, err
	}
	bufferIdx = p.bufferUpto
	start = p.intUpto
	p.intUpto += n
	return bufferIdx, start, nil
}

// IntOffset is the arena-absolute offset of the current buffer's first int.
func (p *IntBlockPool) IntOffset() int { return p.intOffset }

// Get reads ints[bufferIdx][idx].
func (p *IntBlockPool) Get(bufferIdx, idx int) int32 { return p.buffers[bufferIdx][idx] }

// Set writes ints[bufferIdx][idx] = v.
func (p *IntBlockPool) Set(bufferIdx, idx int, v int32) { p.buffers[bufferIdx][idx] = v }

// Locate decodes an arena-absolute int offset into a (bufferIdx, idx) pair.
func (p *IntBlockPool) Locate(arenaOffset int) (bufferIdx, idx int) {
	return arenaOffset / p.cfg.IntBlockSize, arenaOffset % p.cfg.IntBlockSize
}

// Reset releases all buffers past the first and rewinds the cursors.
func (p *IntBlockPool) Reset() {
	if len(p.buffers) == 0 {
		return
	}
	first := p.buffers[0]
	memops.ZeroMemory(first)
	p.buffers = p.buffers[:1]
	p.bufferUpto = 0
	p.intUpto = 0
	p.intOffset = 0
}
