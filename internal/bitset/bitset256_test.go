// SPDX-License-Identifier: MIT

package bitset

import (
	"fmt"
	"testing"
)

func TestZeroValue(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("a zero value bitset must not panic: %v", r)
		}
	}()

	var b BitSet256

	b = BitSet256{}
	b.MustSet(0)

	b = BitSet256{}
	b.MustClear(100)

	b = BitSet256{}
	b.Rank0(100)

	b = BitSet256{}
	b.Test(42)
}

func TestTest(t *testing.T) {
	t.Parallel()
	var b BitSet256
	b.MustSet(100)
	if !b.Test(100) {
		t.Errorf("Test(%d) is false", 100)
	}
	if b.Test(99) {
		t.Errorf("Test(%d) is true, want false", 99)
	}

	b.MustClear(100)
	if b.Test(100) {
		t.Errorf("Test(%d) is true after MustClear, want false", 100)
	}
}

func TestTestOutOfRange(t *testing.T) {
	t.Parallel()
	var b BitSet256
	b.MustSet(255)
	if b.Test(256) {
		t.Errorf("Test(256) is true, want false")
	}
}

// TestRank0 checks that Rank0 equals popcount-1 of the prefix up to idx.
func TestRank0(t *testing.T) {
	t.Parallel()
	u := []uint{0, 3, 5, 7, 11, 62, 63, 64, 70, 150, 255}

	tests := []struct {
		idx  uint
		want int
	}{
		{idx: 0, want: 0},
		{idx: 1, want: 0},
		{idx: 2, want: 0},
		{idx: 3, want: 1},
		{idx: 4, want: 1},
		{idx: 62, want: 5},
		{idx: 63, want: 6},
		{idx: 64, want: 7},
		{idx: 150, want: 9},
		{idx: 254, want: 9},
		{idx: 255, want: 10},
	}

	var b BitSet256
	for _, v := range u {
		b.MustSet(v)
	}

	for _, tc := range tests {
		if got := b.Rank0(tc.idx); got != tc.want {
			t.Errorf("Rank0(%d): want: %d, got: %d", tc.idx, tc.want, got)
		}
	}
}

func TestRank0TracksMustClear(t *testing.T) {
	t.Parallel()
	var b BitSet256
	b.MustSet(3)
	b.MustSet(5)
	b.MustSet(7)

	if got := b.Rank0(7); got != 2 {
		t.Errorf("Rank0(7) before clear: want 2, got %d", got)
	}

	b.MustClear(5)
	if got := b.Rank0(7); got != 1 {
		t.Errorf("Rank0(7) after clearing bit 5: want 1, got %d", got)
	}
}

var (
	boolSink bool
	intSink  int
)

func BenchmarkTest(b *testing.B) {
	aa := BitSet256{0b0000_1010_1010, 0b0000_1010_1010, 0b0000_1010_1010, 0b0000_1010_1010}
	for _, i := range []uint{64*4 - 1, 64*3 - 11, 64*2 - 11, 64*1 - 11, 1, 0} {
		b.Run(fmt.Sprintf("Test: for %d", i), func(b *testing.B) {
			b.ResetTimer()
			for range b.N {
				boolSink = aa.Test(i)
			}
		})
	}
}

func BenchmarkRank0(b *testing.B) {
	aa := BitSet256{0b0000_1010_1010, 0b0000_1010_1010, 0b0000_1010_1010, 0b0000_1010_1010}
	for _, i := range []uint{64*4 - 1, 64*3 - 11, 64*2 - 11, 64*1 - 11, 1, 0} {
		b.Run(fmt.Sprintf("for %d", i), func(b *testing.B) {
			b.ResetTimer()
			for range b.N {
				intSink = aa.Rank0(i)
			}
		})
	}
}
