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
	"crypto/rand"
	"encoding/binary"

	"github.com/dchest/siphash"
)

// hashK0, hashK1 key the siphash used by BytesRefHash to bucket interned
// term bytes. A single process-lifetime keypair is generated randomly at
// init, the same way the columnar hash-group operator keys its row hash.
var hashK0, hashK1 = newHashKeys()

func newHashKeys() (uint64, uint64) {
	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		// crypto/rand failing is catastrophic for the process; any fixed
		// fallback key is fine for a hash table that only needs
		// well-distributed buckets, not cryptographic secrecy.
		binary.LittleEndian.PutUint64(key[0:8], 0x9ae16a3b2f90404f)
		binary.LittleEndian.PutUint64(key[8:16], 0xc949d7c7509e6557)
	}
	return binary.LittleEndian.Uint64(key[0:8]), binary.LittleEndian.Uint64(key[8:16])
}

func hashBytes(b []byte) uint64 {
	lo, hi := siphash.Hash128(hashK0, hashK1, b)
	return lo ^ hi
}
