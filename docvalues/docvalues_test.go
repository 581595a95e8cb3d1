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

package docvalues

import "testing"

func TestNumericSparseIteration(t *testing.T) {
	nv := NewNumeric([]int32{2, 5, 9}, []int64{20, 50, 90})

	var docs []int32
	for d := nv.NextDoc(); d != NoMoreDocs; d = nv.NextDoc() {
		docs = append(docs, d)
		if nv.LongValue() != int64(d)*10 {
			t.Fatalf("doc %d: value = %d, want %d", d, nv.LongValue(), d*10)
		}
	}
	want := []int32{2, 5, 9}
	if len(docs) != len(want) {
		t.Fatalf("docs = %v, want %v", docs, want)
	}
}

func TestNumericAdvance(t *testing.T) {
	nv := NewNumeric([]int32{2, 5, 9, 20}, []int64{1, 2, 3, 4})
	if got := nv.Advance(6); got != 9 {
		t.Fatalf("Advance(6) = %d, want 9", got)
	}
	if got := nv.Advance(9); got != 9 {
		t.Fatalf("Advance(9) = %d, want 9 (already there)", got)
	}
	if got := nv.Advance(21); got != NoMoreDocs {
		t.Fatalf("Advance(21) = %d, want NoMoreDocs", got)
	}
}

func TestSortedDocValues(t *testing.T) {
	dict := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	sv := NewSorted([]int32{0, 1, 2}, []int32{2, 0, 1}, dict)

	var got []string
	for d := sv.NextDoc(); d != NoMoreDocs; d = sv.NextDoc() {
		got = append(got, string(sv.LookupOrd(sv.OrdValue())))
	}
	want := []string{"gamma", "alpha", "beta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if sv.ValueCount() != 3 {
		t.Fatalf("ValueCount() = %d, want 3", sv.ValueCount())
	}
}

func TestSingletonSortedSet(t *testing.T) {
	dict := [][]byte{[]byte("x"), []byte("y")}
	sv := NewSorted([]int32{4}, []int32{1}, dict)
	ss := NewSingletonSortedSet(sv)

	if d := ss.NextDoc(); d != 4 {
		t.Fatalf("NextDoc() = %d, want 4", d)
	}
	ord := ss.NextOrd()
	if ord != 1 {
		t.Fatalf("NextOrd() = %d, want 1", ord)
	}
	if ord := ss.NextOrd(); ord != NoMoreOrds {
		t.Fatalf("second NextOrd() = %d, want NoMoreOrds", ord)
	}
}

func TestSortedSetMultiValued(t *testing.T) {
	dict := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	ssv := NewSortedSet([]int32{3}, [][]int64{{0, 2}}, dict)

	if d := ssv.NextDoc(); d != 3 {
		t.Fatalf("NextDoc() = %d, want 3", d)
	}
	var ords []int64
	for o := ssv.NextOrd(); o != NoMoreOrds; o = ssv.NextOrd() {
		ords = append(ords, o)
	}
	if len(ords) != 2 || ords[0] != 0 || ords[1] != 2 {
		t.Fatalf("ords = %v, want [0 2]", ords)
	}
}

func TestEmptyVariants(t *testing.T) {
	if (EmptyNumeric{}).NextDoc() != NoMoreDocs {
		t.Fatal("EmptyNumeric should be immediately exhausted")
	}
	if (EmptySortedSet{}).NextOrd() != NoMoreOrds {
		t.Fatal("EmptySortedSet should report no ordinals")
	}
	if (EmptySorted{}).ValueCount() != 0 {
		t.Fatal("EmptySorted should have an empty dictionary")
	}
}
