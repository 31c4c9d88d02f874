// SPDX-License-Identifier: MIT

// Package sparse implements a popcount-compressed slot table for up to 256
// items. The point quad-tree uses it to store a node's occupied child
// orthants (dim <= 8, so an orthant index fits in a byte) without wasting
// space on the 2^dim - len(children) empty ones.
//
// The R-tree and R*-tree do not use this table: their node fanout is bounded
// by a small split factor and a plain slice already gives them cheap linear
// scans, so there is nothing here for them to gain from popcount compaction.
package sparse

import (
	"github.com/alandefreitas/paretogo/internal/bitset"
)

// Array256 maps a sparse set of slot indices in [0, 256) to payloads of
// type T, storing only the occupied slots in Items, ordered by slot index.
type Array256[T any] struct {
	bitset.BitSet256
	Items []T
}

// MustSet of the underlying bitset is forbidden. The bitset and the items are coupled.
// An unsynchronized Set() disturbs the coupling between bitset and Items[].
func (a *Array256[T]) MustSet(uint) {
	panic("forbidden, use InsertAt")
}

// MustClear of the underlying bitset is forbidden. The bitset and the items are coupled.
// An unsynchronized Clear() disturbs the coupling between bitset and Items[].
func (a *Array256[T]) MustClear(uint) {
	panic("forbidden, use DeleteAt")
}

// Get the value at slot i.
//
// example: a.Get(5) -> a.Items[1]
//
//	                        ⬇
//	BitSet256:   [0|0|1|0|0|1|0|...|1] <- 3 bits set
//	Items:       [*|*|*]               <- len(Items) = 3
//	                ⬆
//
//	BitSet256.Test(5):     true
//	BitSet256.popcount(5): 2, for interval [0,5]
//	BitSet256.Rank0(5):    1, equal popcount(5)-1
func (a *Array256[T]) Get(i uint) (value T, ok bool) {
	if a.Test(i) {
		return a.Items[a.Rank0(i)], true
	}
	return
}

// InsertAt a value at slot i, overwriting any value already there.
func (a *Array256[T]) InsertAt(i uint, value T) (exists bool) {
	// slot exists, overwrite value
	if a.Test(i) {
		a.Items[a.Rank0(i)] = value
		return true
	}

	// new, insert into bitset ...
	a.BitSet256.MustSet(i)

	// ... and slice
	a.insertItem(a.Rank0(i), value)

	return false
}

// DeleteAt a value at slot i, zeroes the tail.
func (a *Array256[T]) DeleteAt(i uint) (value T, exists bool) {
	if len(a.Items) == 0 || !a.Test(i) {
		return
	}

	rank0 := a.Rank0(i)
	value = a.Items[rank0]

	// delete from slice
	a.deleteItem(rank0)

	// delete from bitset
	a.BitSet256.MustClear(i)

	return value, true
}

// insertItem inserts the item at index i, shift the rest one pos right
//
// It panics if i is out of range.
func (a *Array256[T]) insertItem(i int, item T) {
	if len(a.Items) < cap(a.Items) {
		a.Items = a.Items[:len(a.Items)+1] // fast resize, no alloc
	} else {
		var zero T
		a.Items = append(a.Items, zero) // append one item, mostly enlarge cap by more than one item
	}

	_ = a.Items[i]                   // BCE
	copy(a.Items[i+1:], a.Items[i:]) // shift one slot right, starting at [i]
	a.Items[i] = item                // insert new item at [i]
}

// deleteItem at index i, shift the rest one pos left and clears the tail item
//
// It panics if i is out of range.
func (a *Array256[T]) deleteItem(i int) {
	var zero T

	_ = a.Items[i]                   // BCE
	copy(a.Items[i:], a.Items[i+1:]) // shift left, overwrite item at [i]

	nl := len(a.Items) - 1 // new len

	a.Items[nl] = zero     // clear the tail item
	a.Items = a.Items[:nl] // new len, cap is unchanged
}
