// Copyright (C) 2023 Sneller, Inc.
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

package memops

import (
	"testing"
)

func BenchmarkZeroMemory(b *testing.B) {
	buf := make([]uint64, 1024*1024)

	for n := 0; n < b.N; n++ {
		ZeroMemory(buf)
	}
}

func TestZeroMemory(t *testing.T) {
	{
		buf := make([]int32, 16)
		for i := range buf {
			buf[i] = int32(i) + 1
		}
		ZeroMemory(buf)
		for i, v := range buf {
			if v != 0 {
				t.Fatalf("buf[%d] = %d, want 0", i, v)
			}
		}
	}

	{
		buf := make([]float32, 16)
		buf[0] = 1.5
		ZeroMemory(buf)
		if buf[0] != 0 {
			t.Fatalf("buf[0] = %v, want 0", buf[0])
		}
	}

	{
		type composite = [2]int64
		buf := make([]composite, 16)
		buf[3] = composite{1, 2}
		ZeroMemory(buf)
		if buf[3] != (composite{}) {
			t.Fatalf("buf[3] = %v, want zero", buf[3])
		}
	}
}
