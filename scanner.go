package csvmask

import (
	"log/slog"
	"runtime"
	"sync"
)

// TailPolicy selects how a final window shorter than [WindowSize] is handled.
type TailPolicy uint8

const (
	// TailPad zero-pads the final partial window and masks off the padding.
	// Buffers of any length are accepted.
	TailPad TailPolicy = iota

	// TailReject requires a buffer of at least one window whose length is a
	// multiple of WindowSize. Shorter buffers fail with ErrInputTooSmall and
	// partial tails with a *TailError.
	TailReject
)

// String returns the policy name.
func (p TailPolicy) String() string {
	switch p {
	case TailPad:
		return "pad"
	case TailReject:
		return "reject"
	default:
		return "unknown"
	}
}

// DefaultPartitionSize is the partition size used by ScanParallel (1MB).
const DefaultPartitionSize = 1 << 20

// Scanner locates control commas and newlines in a buffer.
//
// As returned by NewScanner, a Scanner pads the final window and uses the
// default compare. The exported fields can be changed before the first scan.
// A Scanner holds no per-scan state and may be used concurrently once its
// fields are no longer modified.
type Scanner struct {
	// TailPolicy controls the final partial window. Defaults to TailPad.
	TailPolicy TailPolicy

	// Compare produces per-window byte-equality masks.
	// If nil, CompareWindow is used.
	Compare CompareFunc

	// Logger receives debug records about tail handling and partitioning.
	// If nil, logging is discarded.
	Logger *slog.Logger

	// Workers bounds the number of partitions ScanParallel scans at once.
	// If not positive, runtime.GOMAXPROCS(0) is used.
	Workers int

	// PartitionSize is the number of bytes per ScanParallel partition. It is
	// rounded down to a multiple of WindowSize. If zero, DefaultPartitionSize
	// is used.
	PartitionSize int
}

// NewScanner returns a Scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{
		TailPolicy:    TailPad,
		Compare:       CompareWindow,
		Workers:       runtime.GOMAXPROCS(0),
		PartitionSize: DefaultPartitionSize,
	}
}

// defaultScanner backs the package-level Scan.
var defaultScanner = NewScanner()

// Scan scans buf with the default Scanner.
func Scan(buf []byte) (*ScanResult, error) {
	return defaultScanner.Scan(buf)
}

func (s *Scanner) compare() CompareFunc {
	if s.Compare == nil {
		return CompareWindow
	}
	return s.Compare
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger == nil {
		return discardLogger
	}
	return s.Logger
}

var discardLogger = slog.New(slog.DiscardHandler)

// =============================================================================
// Offsets
// =============================================================================

// Offsets holds ascending absolute offsets of control delimiters.
type Offsets struct {
	Commas   []int
	Newlines []int
}

// Pool capacity constants for Offsets.
// 4096 offsets * 8 bytes = 32KB per slice.
const offsetsPoolCap = 4096

// offsetsPool provides reusable Offsets for Scan, which discards them after
// assembly.
var offsetsPool = sync.Pool{
	New: func() interface{} {
		return &Offsets{
			Commas:   make([]int, 0, offsetsPoolCap),
			Newlines: make([]int, 0, offsetsPoolCap),
		}
	},
}

func acquireOffsets() *Offsets {
	return offsetsPool.Get().(*Offsets)
}

// release returns the Offsets to the pool for reuse.
func (o *Offsets) release() {
	if o == nil {
		return
	}
	o.Commas = o.Commas[:0]
	o.Newlines = o.Newlines[:0]
	offsetsPool.Put(o)
}

// =============================================================================
// Buffer Scan
// =============================================================================

// Scan scans the whole buffer starting outside quotes and assembles records.
func (s *Scanner) Scan(buf []byte) (*ScanResult, error) {
	offsets := acquireOffsets()
	defer offsets.release()

	carry, err := s.appendOffsets(offsets, buf, 0, false)
	if err != nil {
		return nil, err
	}

	result := AssembleFields(offsets.Commas, offsets.Newlines, len(buf))
	result.UnterminatedQuote = carry
	if carry {
		s.logger().Debug("buffer ends inside a quoted field", "length", len(buf))
	}
	return result, nil
}

// ScanOffsets scans buf as the piece of a larger buffer that begins at base.
// carryIn reports whether the piece begins inside a quoted field. Every
// returned offset has base added to it, and carryOut is the state after the
// last byte, ready to be passed to the scan of the following piece.
//
// base must be a multiple of WindowSize. Pieces other than the last should be
// window multiples so that scanning them one after another matches a single
// scan of the concatenation.
func (s *Scanner) ScanOffsets(buf []byte, base int, carryIn bool) (Offsets, bool, error) {
	var offsets Offsets
	carryOut, err := s.appendOffsets(&offsets, buf, base, carryIn)
	if err != nil {
		return Offsets{}, false, err
	}
	return offsets, carryOut, nil
}

// appendOffsets folds scanWindow over buf, appending control delimiters to dst.
func (s *Scanner) appendOffsets(dst *Offsets, buf []byte, base int, carry bool) (bool, error) {
	if base%WindowSize != 0 {
		return false, ErrInvalidPartition
	}
	if err := s.checkLength(len(buf)); err != nil {
		return false, err
	}

	cmp := s.compare()
	full := len(buf) - len(buf)%WindowSize

	for start := 0; start < full; start += WindowSize {
		w := (*Window)(buf[start : start+WindowSize])
		res := scanWindow(w, cmp, ^uint64(0), carry)
		dst.Commas = appendBitIndices(dst.Commas, res.commas, base+start)
		dst.Newlines = appendBitIndices(dst.Newlines, res.newlines, base+start)
		carry = res.carryOut
	}

	if full < len(buf) {
		w, valid := loadPadded(buf[full:])
		s.logger().Debug("padding final window", "offset", base+full, "valid_bytes", valid)
		res := scanWindow(w, cmp, validMask(valid), carry)
		dst.Commas = appendBitIndices(dst.Commas, res.commas, base+full)
		dst.Newlines = appendBitIndices(dst.Newlines, res.newlines, base+full)
		carry = res.carryOut
	}

	return carry, nil
}

// checkLength applies the tail policy to a buffer length.
func (s *Scanner) checkLength(n int) error {
	if s.TailPolicy != TailReject {
		return nil
	}
	if n < WindowSize {
		return ErrInputTooSmall
	}
	if tail := n % WindowSize; tail != 0 {
		return &TailError{Length: n, TailBytes: tail}
	}
	return nil
}
