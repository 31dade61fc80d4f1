package csvmask

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helper Functions
// =============================================================================

// maskPositions returns a slice of bit positions that are set
func maskPositions(m uint64) []int {
	var positions []int
	for i := 0; i < 64; i++ {
		if m&(1<<i) != 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// positionsMask builds a mask with the given bit positions set
func positionsMask(positions ...int) uint64 {
	var m uint64
	for _, p := range positions {
		m |= 1 << p
	}
	return m
}

// makeAligned64 creates a Window from input, padding with zeros if needed
func makeAligned64(data []byte) *Window {
	var w Window
	copy(w[:], data)
	return &w
}

// compareWindowScalar is the byte-at-a-time compare used as a test oracle.
func compareWindowScalar(w *Window, target byte) uint64 {
	var mask uint64
	for i := 0; i < WindowSize; i++ {
		if w[i] == target {
			mask |= uint64(1) << i
		}
	}
	return mask
}

// referenceOffsets scans data one byte at a time. A byte is inside quotes
// when an odd number of quote bytes precede it.
func referenceOffsets(data []byte) Offsets {
	var out Offsets
	inQuotes := false
	for i, b := range data {
		switch b {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				out.Commas = append(out.Commas, i)
			}
		case '\n':
			if !inQuotes {
				out.Newlines = append(out.Newlines, i)
			}
		}
	}
	return out
}

// recordStrings materializes a ScanResult as field strings.
func recordStrings(data []byte, res *ScanResult) [][]string {
	var out [][]string
	for _, rec := range res.Records() {
		fields := make([]string, len(rec))
		for i, f := range rec {
			fields[i] = string(f.Bytes(data))
		}
		out = append(out, fields)
	}
	return out
}

// requireRoundTrip checks that the fields plus one delimiter byte between
// each consecutive pair reconstruct data exactly.
func requireRoundTrip(t *testing.T, data []byte, res *ScanResult) {
	t.Helper()

	rebuilt := make([]byte, 0, len(data))
	if len(res.Fields) > 0 {
		require.Equal(t, 0, res.Fields[0].Start)
	}
	for i, f := range res.Fields {
		require.LessOrEqual(t, f.Start, f.End, "field %d", i)
		if i > 0 {
			prev := res.Fields[i-1]
			require.Equal(t, prev.End+1, f.Start, "field %d must follow a single delimiter", i)
			rebuilt = append(rebuilt, data[prev.End])
		}
		rebuilt = append(rebuilt, f.Bytes(data)...)
	}
	if len(res.Fields) > 0 && res.Fields[len(res.Fields)-1].End < len(data) {
		// Only a final newline may follow the last field.
		last := res.Fields[len(res.Fields)-1]
		require.Equal(t, len(data)-1, last.End)
		require.Equal(t, byte('\n'), data[last.End])
		rebuilt = append(rebuilt, data[last.End])
	}
	require.True(t, bytes.Equal(data, rebuilt), "rebuilt %q, want %q", rebuilt, data)
}

// =============================================================================
// Test Data Generators
// =============================================================================

// randomCSV returns n bytes drawn mostly from structural characters.
func randomCSV(rng *rand.Rand, n int) []byte {
	const alphabet = "ab\"\",,\n\" "
	data := make([]byte, n)
	for i := range data {
		data[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return data
}

// generateSimpleCSV generates CSV data with simple unquoted fields.
func generateSimpleCSV(numRows, numCols int) []byte {
	var buf bytes.Buffer
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("field")
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// generateQuotedCSV generates CSV data with quoted fields containing commas.
func generateQuotedCSV(numRows, numCols int) []byte {
	var buf bytes.Buffer
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`"field,with,commas"`)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// generateEscapedQuotesCSV generates CSV data with escaped double quotes.
func generateEscapedQuotesCSV(numRows, numCols int) []byte {
	var buf bytes.Buffer
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`"he said ""hello,"" to me"`)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
