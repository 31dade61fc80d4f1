//go:build !(goexperiment.simd && amd64)

package csvmask

const simdCompiled = false

// compareWindowAVX512 is never selected in this build; it exists so the
// dispatch in CompareWindow compiles everywhere.
func compareWindowAVX512(w *Window, target byte) uint64 {
	return compareWindowSWAR(w, target)
}
