// SPDX-License-Identifier: MIT

package sparse

import (
	"math/rand/v2"
	"testing"
)

func TestSparseArrayInsertAndDelete(t *testing.T) {
	t.Parallel()
	a := new(Array256[int])

	for i := range 255 {
		a.InsertAt(uint(i), i)
		a.InsertAt(uint(i), i)
	}
	if c := len(a.Items); c != 255 {
		t.Errorf("Items count, expected 255, got %d", c)
	}

	for i := range 128 {
		a.DeleteAt(uint(i))
		a.DeleteAt(uint(i))
	}
	if c := len(a.Items); c != 127 {
		t.Errorf("Items count, expected 127, got %d", c)
	}
}

func TestSparseArrayGet(t *testing.T) {
	t.Parallel()
	a := new(Array256[int])

	for i := range 255 {
		a.InsertAt(uint(i), i)
	}

	for range 100 {
		i := rand.IntN(100)
		v, ok := a.Get(uint(i))
		if !ok {
			t.Errorf("Get, expected true, got %v", ok)
		}
		if v != i {
			t.Errorf("Get, expected %d, got %d", i, v)
		}
	}

	a.DeleteAt(0)
	if _, ok := a.Get(0); ok {
		t.Errorf("Get, expected false, got %v", ok)
	}
}

func TestSparseArrayInsertAtOverwrites(t *testing.T) {
	t.Parallel()
	a := new(Array256[int])

	if exists := a.InsertAt(5, 1); exists {
		t.Errorf("InsertAt on empty slot reported exists=true")
	}
	if exists := a.InsertAt(5, 2); !exists {
		t.Errorf("InsertAt on occupied slot reported exists=false")
	}

	v, ok := a.Get(5)
	if !ok || v != 2 {
		t.Errorf("Get(5), want (2, true), got (%d, %v)", v, ok)
	}
	if len(a.Items) != 1 {
		t.Errorf("Items, want len 1, got %d", len(a.Items))
	}
}

func TestSparseArraySetPanic(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustSet, expected panic")
		}
	}()

	a := new(Array256[int])

	// the embedded BitSet256.MustSet is shadowed and must panic
	a.MustSet(0)
}

func TestSparseArrayClearPanic(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustClear, expected panic")
		}
	}()

	a := new(Array256[int])

	// the embedded BitSet256.MustClear is shadowed and must panic
	a.MustClear(0)
}

func TestSparseArrayDeleteKeepsRemainingOrder(t *testing.T) {
	t.Parallel()
	a := new(Array256[int])

	for _, i := range []uint{1, 2, 3, 4, 5} {
		a.InsertAt(i, int(i)*10)
	}

	a.DeleteAt(3)

	for _, i := range []uint{1, 2, 4, 5} {
		v, ok := a.Get(i)
		if !ok || v != int(i)*10 {
			t.Errorf("Get(%d), want (%d, true), got (%d, %v)", i, int(i)*10, v, ok)
		}
	}
	if _, ok := a.Get(3); ok {
		t.Errorf("Get(3) after DeleteAt, want false, got true")
	}
	if len(a.Items) != 4 {
		t.Errorf("Items, want len 4, got %d", len(a.Items))
	}
}
