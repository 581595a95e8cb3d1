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
	"math/bits"

	"github.com/lucore-io/lucore/internal/memops"
)

// nextLevel maps a slice's current growth level to the level used for its
// next (larger) reallocation. The final level loops onto itself, so long
// streams keep allocating level-9-sized slices rather than growing forever.
var nextLevel = [10]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 9}

// levelMarkerBase is written into the sole byte reserved at the end of a
// freshly allocated level-0 slice; allocSlice reads back "16|level" to
// recover which level a full slice was allocated at.
const levelMarkerBase = 16

// ByteBlockPool is an append-only arena of fixed-size byte buffers. Byte
// streams ("slices") are allocated within it using a ten-level geometric
// growth schedule; when a slice fills up, a four-byte forwarding pointer
// redirects readers to the next, larger slice in the chain.
type ByteBlockPool struct {
	cfg     *Config
	buffers [][]byte

	// bufferUpto indexes the buffer currently being written to.
	bufferUpto int
	// byteUpto is the next free offset within buffers[bufferUpto].
	byteUpto int
	// byteOffset is the arena-absolute offset of buffers[bufferUpto][0].
	byteOffset int

	diag Diagnostics
}

// NewByteBlockPool creates an empty pool governed by cfg.
func NewByteBlockPool(cfg *Config, diag Diagnostics) *ByteBlockPool {
	return &ByteBlockPool{cfg: cfg, diag: diagOrNoop(diag)}
}

// nextBuffer appends a fresh, zeroed buffer and makes it current. It
// reports ErrPoolExhausted, via diag.OnPoolExhausted, once cfg.MaxBuffers
// is set and already reached.
func (p *ByteBlockPool) nextBuffer() error {
	if p.cfg.MaxBuffers > 0 && len(p.buffers) >= p.cfg.MaxBuffers {
		p.diag.OnPoolExhausted("byte", ErrPoolExhausted)
		return ErrPoolExhausted
	}
	if len(p.buffers) > 0 {
		p.byteOffset += p.cfg.ByteBlockSize
	}
	buf := make([]byte, p.cfg.ByteBlockSize)
	p.buffers = append(p.buffers, buf)
	p.bufferUpto = len(p.buffers) - 1
	p.byteUpto = 0
	p.diag.OnBufferGrow("byte", len(p.buffers))
	return nil
}

// Remaining reports how many bytes are free in the current buffer.
func (p *ByteBlockPool) Remaining() int {
	if len(p.buffers) == 0 {
		return 0
	}
	return p.cfg.ByteBlockSize - p.byteUpto
}

// EnsureBuffer guarantees the current buffer has at least size bytes free,
// allocating a new buffer (and a new arena region) otherwise.
func (p *ByteBlockPool) EnsureBuffer(size int) error {
	if len(p.buffers) == 0 || p.Remaining() < size {
		return p.nextBuffer()
	}
	return nil
}

// ByteOffset is the arena-absolute offset of the current buffer's first byte.
func (p *ByteBlockPool) ByteOffset() int { return p.byteOffset }

// ByteUpto is the write cursor within the current buffer.
func (p *ByteBlockPool) ByteUpto() int { return p.byteUpto }

// Buffer returns the raw buffer at bufferIdx (arena-local indexing), for
// readers that need direct access.
func (p *ByteBlockPool) Buffer(bufferIdx int) []byte { return p.buffers[bufferIdx] }

// NewSlice allocates a fresh slice of levelSize bytes at the current
// write head (advancing to a new buffer first if necessary), writes the
// level-0 terminator into its last byte, and returns the buffer-local
// offset of the slice's first usable byte.
func (p *ByteBlockPool) NewSlice(levelSize int) (int, error) {
	if err := p.EnsureBuffer(levelSize); err != nil {
		return 0, err
	}
	upto := p.byteUpto
	p.byteUpto += levelSize
	p.buffers[p.bufferUpto][p.byteUpto-1] = byte(levelMarkerBase)
	return upto, nil
}

// AllocSlice is called when a writer discovers the terminator byte at
// offset (bufferIdx, offset). It computes the next growth level, allocates
// a new slice for it (possibly advancing to a new buffer), migrates the
// three data bytes that are about to be clobbered by the forwarding
// pointer into the new slice's prefix, writes the four-byte forwarding
// pointer in place of those bytes plus the terminator, and returns the
// buffer-local write head for the new slice (three bytes past its start,
// since those three bytes hold the migrated prefix).
func (p *ByteBlockPool) AllocSlice(bufferIdx, offset int) (int, error) {
	old := p.buffers[bufferIdx]
	level := int(old[offset]) & 15
	newLevel := nextLevel[level]
	newSize := p.cfg.LevelSizes[newLevel]

	if err := p.EnsureBuffer(newSize); err != nil {
		return 0, err
	}
	newUpto := p.byteUpto
	arenaOffset := newUpto + p.byteOffset
	p.byteUpto += newSize
	newBuf := p.buffers[p.bufferUpto]

	newBuf[newUpto] = old[offset-3]
	newBuf[newUpto+1] = old[offset-2]
	newBuf[newUpto+2] = old[offset-1]

	old[offset-3] = byte(arenaOffset >> 24)
	old[offset-2] = byte(arenaOffset >> 16)
	old[offset-1] = byte(arenaOffset >> 8)
	old[offset] = byte(arenaOffset)

	newBuf[p.byteUpto-1] = byte(levelMarkerBase | newLevel)
	return newUpto + 3, nil
}

// AppendTermBytes writes b into the pool prefixed with a 1- or 2-byte
// length header (supporting terms up to 32767 bytes), never splitting the
// header+bytes run across a buffer boundary, and returns the
// arena-absolute offset of the header's first byte. Used by BytesRefHash
// to intern term text.
func (p *ByteBlockPool) AppendTermBytes(b []byte) (int, error) {
	headerLen := 1
	if len(b) >= 128 {
		headerLen = 2
	}
	if err := p.EnsureBuffer(headerLen + len(b)); err != nil {
		return 0, err
	}
	start := p.byteUpto + p.byteOffset
	buf := p.buffers[p.bufferUpto]
	if headerLen == 1 {
		buf[p.byteUpto] = byte(len(b))
	} else {
		buf[p.byteUpto] = byte(len(b)&0x7f | 0x80)
		buf[p.byteUpto+1] = byte(len(b) >> 7)
	}
	copy(buf[p.byteUpto+headerLen:], b)
	p.byteUpto += headerLen + len(b)
	return start, nil
}

// ReadTermBytes reads back a length-prefixed run written by AppendTermBytes.
// The returned slice aliases the pool's backing array.
func (p *ByteBlockPool) ReadTermBytes(start int) []byte {
	bufferIdx := start / p.cfg.ByteBlockSize
	offset := start % p.cfg.ByteBlockSize
	buf := p.buffers[bufferIdx]
	b0 := buf[offset]
	var length, headerLen int
	if b0&0x80 == 0 {
		length, headerLen = int(b0), 1
	} else {
		length, headerLen = int(b0&0x7f)|int(buf[offset+1])<<7, 2
	}
	return buf[offset+headerLen : offset+headerLen+length]
}

// Reset releases all buffers past the first and rewinds the cursors,
// amortizing allocation across segments.
func (p *ByteBlockPool) Reset() {
	if len(p.buffers) == 0 {
		return
	}
	first := p.buffers[0]
	memops.ZeroMemory(first)
	p.buffers = p.buffers[:1]
	p.bufferUpto = 0
	p.byteUpto = 0
	p.byteOffset = 0
}

// Reader is a restartable byte-slice reader over a ByteBlockPool that
// transparently follows forwarding pointers.
type Reader struct {
	pool *ByteBlockPool

	bufferIdx int
	upto      int
	limit     int
	level     int
	end       int // arena-absolute exclusive end offset
}

// NewReader initializes a Reader over [start, end) arena-absolute offsets.
func (p *ByteBlockPool) NewReader(start, end int) *Reader {
	r := &Reader{pool: p, end: end}
	r.Init(start, end)
	return r
}

// Init (re)starts r over a fresh [start, end) range, allowing reuse.
func (r *Reader) Init(start, end int) {
	r.pool2Init(start, end)
}

func (r *Reader) pool2Init(start, end int) {
	shift := bits.TrailingZeros(uint(r.pool.cfg.ByteBlockSize))
	mask := r.pool.cfg.ByteBlockSize - 1

	r.level = 0
	r.bufferIdx = start >> uint(shift)
	r.upto = start & mask
	r.end = end

	firstSize := r.pool.cfg.LevelSizes[0]
	if end-start < firstSize {
		r.limit = end & mask
	} else {
		r.limit = r.upto + firstSize - 4
	}
}

// Eof reports whether the reader has consumed every byte in [start, end).
func (r *Reader) Eof() bool {
	shift := bits.TrailingZeros(uint(r.pool.cfg.ByteBlockSize))
	pos := (r.bufferIdx << uint(shift)) | r.upto
	return pos >= r.end
}

func (r *Reader) nextSlice() {
	shift := bits.TrailingZeros(uint(r.pool.cfg.ByteBlockSize))
	mask := r.pool.cfg.ByteBlockSize - 1

	buf := r.pool.buffers[r.bufferIdx]
	nextOffset := int(uint32(buf[r.limit])<<24 | uint32(buf[r.limit+1])<<16 |
		uint32(buf[r.limit+2])<<8 | uint32(buf[r.limit+3]))

	r.level = nextLevel[r.level]
	newSize := r.pool.cfg.LevelSizes[r.level]

	r.bufferIdx = nextOffset >> uint(shift)
	r.upto = nextOffset & mask

	if r.end-nextOffset < newSize {
		r.limit = r.end & mask
	} else {
		r.limit = r.upto + newSize - 4
	}
}

// ReadByte returns the next byte in the stream, following a forwarding
// pointer transparently if the current slice has been exhausted.
func (r *Reader) ReadByte() byte {
	if r.upto == r.limit {
		r.nextSlice()
	}
	b := r.pool.buffers[r.bufferIdx][r.upto]
	r.upto++
	return b
}

// ReadVInt decodes one little-endian 7-bit-group varint written by
// TermsHashPerFieldBase.WriteVInt.
func (r *Reader) ReadVInt() int {
	shift := uint(0)
	result := 0
	for {
		b := r.ReadByte()
		result |= int(b&0x7f) << shift
		if b&0x80 == 0 {
			return result
		}
		shift += 7
	}
}

// ReadBytes reads n raw bytes into a freshly allocated slice.
func (r *Reader) ReadBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = r.ReadByte()
	}
	return out
}
