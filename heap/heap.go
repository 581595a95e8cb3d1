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

// package heap implements generic min-heap functions over a caller-owned
// slice. Callers that need stable handles into the heap (so a popped
// element can be re-pushed, or a tie chain can be threaded between
// elements) store an indirection, an index or id, as T rather than the
// element itself, and compare through it. DisiPriorityQueue does exactly
// this, heaping int32 handles into its own wrapper slab rather than the
// DisiWrapper values.
package heap

// FixSlice restores the min-heap invariant around x[index] after its key
// has changed in place. DisiPriorityQueue does not use it: it pops a
// handle and re-enters it with PushSlice instead.
func FixSlice[T any](x []T, index int, less func(x, y T) bool) {
	siftDown(x, index, less)
	siftUp(x, index, less)
}

// PopSlice removes and returns the "smallest" element of x, shrinking x
// by one and preserving the heap invariant. Used to repeatedly peel off
// the lowest doc id when collecting a tie chain (DisiPriorityQueue.TopList
// pops every wrapper sharing the current minimum in turn).
func PopSlice[T any](x *[]T, less func(x, y T) bool) T {
	ret := (*x)[0]
	(*x)[0], *x = (*x)[len(*x)-1], (*x)[:len(*x)-1]
	if len(*x) > 0 {
		siftDown((*x), 0, less)
	}
	return ret
}

// PushSlice appends item to x and sifts it into place, preserving the
// heap invariant.
func PushSlice[T any](x *[]T, item T, less func(x, y T) bool) {
	*x = append(*x, item)
	siftUp(*x, len(*x)-1, less)
}

// OrderSlice heapifies x in place. If len(x) > 0, the "smallest" element
// ends up at x[0]. Used once, at construction, to seed a heap from every
// child iterator's initial position.
func OrderSlice[T any](x []T, less func(x, y T) bool) {
	for i := len(x) - 1; i >= 0; i-- {
		siftDown(x, i, less)
		siftUp(x, i, less)
	}
}

func siftUp[T any](x []T, index int, less func(x, y T) bool) {
	for index > 0 {
		p := (index - 1) / 2
		if less(x[p], x[index]) {
			break
		}
		x[p], x[index] = x[index], x[p]
		index = p
	}
}

func siftDown[T any](x []T, index int, less func(x, y T) bool) {
	for {
		left := (index * 2) + 1
		right := left + 1
		if left >= len(x) {
			break
		}
		c := left
		if len(x) > right && less(x[right], x[left]) {
			c = right
		}
		if less(x[index], x[c]) {
			break
		}
		x[c], x[index] = x[index], x[c]
		index = c
	}
}
