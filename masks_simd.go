//go:build goexperiment.simd && amd64

package csvmask

import (
	"simd/archsimd"
	"unsafe"
)

const simdCompiled = true

// compareWindowAVX512 compares both 32-byte halves of the window against
// target and joins the two 32-bit results (low half in bits 0-31).
// Precondition: useAVX512.
func compareWindowAVX512(w *Window, target byte) uint64 {
	cmp := archsimd.BroadcastInt8x32(int8(target))

	low := archsimd.LoadInt8x32((*[simdHalfChunk]int8)(unsafe.Pointer(&w[0])))
	high := archsimd.LoadInt8x32((*[simdHalfChunk]int8)(unsafe.Pointer(&w[simdHalfChunk])))

	return uint64(low.Equal(cmp).ToBits()) | uint64(high.Equal(cmp).ToBits())<<32
}
