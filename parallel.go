package csvmask

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// =============================================================================
// Partitioned Scan
// =============================================================================
//
// A window's carry-out is the carry-in XOR the parity of its quote bytes, so
// flipping the carry entering a partition flips the carry leaving it. Pass 1
// scans every partition with carry-in false to learn its flip; a sequential
// prefix XOR over the flips yields each partition's true carry-in. Pass 2
// rescans the partitions with those carries to collect offsets.
//
// =============================================================================

// partition is one window-aligned slice of the buffer.
type partition struct {
	start   int
	end     int
	flip    bool    // carry-out when scanned from outside quotes
	carryIn bool    // state at start, derived from earlier partitions
	offsets Offsets // control delimiters, absolute offsets
}

// ScanParallel scans buf in window-aligned partitions on up to Workers
// goroutines. The result is identical to Scan.
func (s *Scanner) ScanParallel(ctx context.Context, buf []byte) (*ScanResult, error) {
	if err := s.checkLength(len(buf)); err != nil {
		return nil, err
	}

	parts, err := s.planPartitions(len(buf))
	if err != nil {
		return nil, err
	}
	if len(parts) <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.Scan(buf)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	s.logger().Debug("scanning partitions",
		"length", len(buf),
		"partitions", len(parts),
		"workers", workers,
	)

	// Pass 1: quote parity per partition.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range parts {
		p := &parts[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.flip = s.partitionFlip(buf[p.start:p.end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	carry := false
	for i := range parts {
		parts[i].carryIn = carry
		carry = carry != parts[i].flip
	}

	// Pass 2: offsets with the resolved carries.
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range parts {
		p := &parts[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			offsets, _, err := s.ScanOffsets(buf[p.start:p.end], p.start, p.carryIn)
			if err != nil {
				return err
			}
			p.offsets = offsets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var commaCount, newlineCount int
	for i := range parts {
		commaCount += len(parts[i].offsets.Commas)
		newlineCount += len(parts[i].offsets.Newlines)
	}
	commas := make([]int, 0, commaCount)
	newlines := make([]int, 0, newlineCount)
	for i := range parts {
		commas = append(commas, parts[i].offsets.Commas...)
		newlines = append(newlines, parts[i].offsets.Newlines...)
	}

	result := AssembleFields(commas, newlines, len(buf))
	result.UnterminatedQuote = carry
	return result, nil
}

// planPartitions splits n bytes into window-aligned partitions. Only the last
// partition may end on a partial window.
func (s *Scanner) planPartitions(n int) ([]partition, error) {
	size := s.PartitionSize
	if size == 0 {
		size = DefaultPartitionSize
	}
	size -= size % WindowSize
	if size < WindowSize {
		return nil, ErrInvalidPartition
	}

	parts := make([]partition, 0, n/size+1)
	for start := 0; start < n; start += size {
		parts = append(parts, partition{start: start, end: min(start+size, n)})
	}
	return parts, nil
}

// partitionFlip returns the carry-out of data scanned from outside quotes.
func (s *Scanner) partitionFlip(data []byte) bool {
	cmp := s.compare()
	carry := false
	full := len(data) - len(data)%WindowSize
	for start := 0; start < full; start += WindowSize {
		w := (*Window)(data[start : start+WindowSize])
		_, carry = quoteMask(cmp(w, quoteChar), carry)
	}
	if full < len(data) {
		w, valid := loadPadded(data[full:])
		_, carry = quoteMask(cmp(w, quoteChar)&validMask(valid), carry)
	}
	return carry
}
