package csvmask

import (
	"iter"
	"math/bits"
)

// =============================================================================
// Word Bitmask Utilities
// =============================================================================

const (
	// evenMask has every even bit position set (bit 0, 2, 4, ...).
	evenMask uint64 = 0x5555555555555555

	// oddMask has every odd bit position set. It is the complement of evenMask.
	oddMask uint64 = ^evenMask
)

// runningParity returns the prefix XOR of w: bit i of the result is set iff
// an odd number of bits in positions 0..i of w are set.
func runningParity(w uint64) uint64 {
	w ^= w << 1
	w ^= w << 2
	w ^= w << 4
	w ^= w << 8
	w ^= w << 16
	w ^= w << 32
	return w
}

// bitIndices yields offset+i for every set bit i of w, in ascending order.
// The sequence can be ranged over any number of times.
func bitIndices(w uint64, offset int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for m := w; m != 0; m &= m - 1 {
			if !yield(offset + bits.TrailingZeros64(m)) {
				return
			}
		}
	}
}

// appendBitIndices appends the positions of w's set bits to dst.
func appendBitIndices(dst []int, w uint64, offset int) []int {
	for pos := range bitIndices(w, offset) {
		dst = append(dst, pos)
	}
	return dst
}
