package csvmask

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// =============================================================================
// CPU Detection and Dispatch
// =============================================================================
//
// NOTE: The AVX-512 compare uses archsimd.Int8x32.Equal().ToBits(), which
// lowers to VPMOVB2M (AVX-512BW) and raises SIGILL on CPUs without AVX-512.
// It is only compiled with GOEXPERIMENT=simd on amd64 (see masks_simd.go) and
// only selected when all three feature flags below are present. Every other
// configuration uses the word-at-a-time compare in this file.
//
// =============================================================================

const (
	// WindowSize is the number of bytes covered by one bitmask word.
	WindowSize = 64

	// simdHalfChunk is the width of one 256-bit compare (32 bytes).
	simdHalfChunk = 32
)

// Window is one fixed-size block of input. Bit i of every mask computed from
// a Window describes byte i.
type Window [WindowSize]byte

// CompareFunc returns a mask with bit i set iff w[i] == target.
type CompareFunc func(w *Window, target byte) uint64

var (
	// hasAVX512 reports the CPU features the archsimd compare relies on:
	// AVX512F, AVX512BW (VPMOVB2M) and AVX512VL.
	hasAVX512 bool

	// useAVX512 is true when the archsimd compare is compiled in and usable.
	useAVX512 bool
)

func init() {
	hasAVX512 = cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL
	useAVX512 = simdCompiled && hasAVX512
}

// CompareWindow is the default CompareFunc. It dispatches to AVX-512 when
// available and to a portable word-at-a-time compare otherwise.
func CompareWindow(w *Window, target byte) uint64 {
	if useAVX512 {
		return compareWindowAVX512(w, target)
	}
	return compareWindowSWAR(w, target)
}

// =============================================================================
// Word-at-a-time Compare
// =============================================================================

const (
	lowBytes7 = 0x7f7f7f7f7f7f7f7f
	highBits  = 0x8080808080808080
	onesBytes = 0x0101010101010101

	// gatherHighBits moves bit 8k of a word to bit 56+k when multiplied.
	gatherHighBits = 0x0102040810204080
)

// compareWindowSWAR compares eight bytes per step using plain uint64 arithmetic.
func compareWindowSWAR(w *Window, target byte) uint64 {
	pattern := uint64(target) * onesBytes
	var mask uint64
	for i := 0; i < WindowSize/8; i++ {
		x := binary.LittleEndian.Uint64(w[i*8:]) ^ pattern
		// High bit of each byte is set iff that byte of x is zero. Exact:
		// (x&0x7f)+0x7f never carries into the neighboring byte.
		zero := ^(((x & lowBytes7) + lowBytes7) | x) & highBits
		mask |= (((zero >> 7) * gatherHighBits) >> 56) << (i * 8)
	}
	return mask
}

// =============================================================================
// Padded Tail Window
// =============================================================================

// loadPadded copies a short tail into a zeroed Window.
// Returns the window and the number of valid bytes.
func loadPadded(data []byte) (*Window, int) {
	var w Window
	n := copy(w[:], data)
	return &w, n
}

// validMask returns a mask with the low validBits bits set.
func validMask(validBits int) uint64 {
	if validBits >= WindowSize {
		return ^uint64(0)
	}
	return (uint64(1) << validBits) - 1
}
