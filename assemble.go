package csvmask

import "iter"

// =============================================================================
// Field and Record Types
// =============================================================================

// FieldRange is the half-open byte range [Start, End) of one field. It never
// includes the delimiter that terminated the field.
type FieldRange struct {
	Start int
	End   int
}

// Len returns the number of bytes in the field.
func (f FieldRange) Len() int {
	return f.End - f.Start
}

// Bytes returns the field's bytes within buf, the buffer it was scanned from.
func (f FieldRange) Bytes(buf []byte) []byte {
	return buf[f.Start:f.End:f.End]
}

// Record is the ordered fields of one line.
type Record []FieldRange

// Row locates one record inside [ScanResult.Fields].
type Row struct {
	FirstField int
	FieldCount int
}

// ScanResult holds every record of a buffer. Fields are stored flat, in
// buffer order, and Rows index into them.
type ScanResult struct {
	Fields []FieldRange
	Rows   []Row

	// UnterminatedQuote is true when the buffer ends inside a quoted field.
	// The last field then extends to the end of the buffer.
	UnterminatedQuote bool
}

// Len returns the number of records.
func (r *ScanResult) Len() int {
	return len(r.Rows)
}

// Record returns record i. The returned slice shares memory with r.Fields.
func (r *ScanResult) Record(i int) Record {
	row := r.Rows[i]
	end := row.FirstField + row.FieldCount
	return Record(r.Fields[row.FirstField:end:end])
}

// Records yields each record with its index, in buffer order.
func (r *ScanResult) Records() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := range r.Rows {
			if !yield(i, r.Record(i)) {
				return
			}
		}
	}
}

// =============================================================================
// Field Assembly
// =============================================================================

// AssembleFields turns ascending control-delimiter offsets into records.
// commas and newlines must be sorted and disjoint; length is the buffer
// length. A buffer ending in a newline does not produce a trailing empty
// record, and an empty buffer produces no records.
func AssembleFields(commas, newlines []int, length int) *ScanResult {
	result := &ScanResult{
		Fields: make([]FieldRange, 0, len(commas)+len(newlines)+1),
		Rows:   make([]Row, 0, len(newlines)+1),
	}

	fieldStart := 0 // start of the current field
	rowStart := 0   // index of the current record's first field
	ci, ni := 0, 0

	for ci < len(commas) || ni < len(newlines) {
		if ni < len(newlines) && (ci == len(commas) || newlines[ni] < commas[ci]) {
			nl := newlines[ni]
			ni++
			result.Fields = append(result.Fields, FieldRange{Start: fieldStart, End: nl})
			result.Rows = append(result.Rows, Row{FirstField: rowStart, FieldCount: len(result.Fields) - rowStart})
			rowStart = len(result.Fields)
			fieldStart = nl + 1
			continue
		}

		comma := commas[ci]
		ci++
		result.Fields = append(result.Fields, FieldRange{Start: fieldStart, End: comma})
		fieldStart = comma + 1
	}

	if fieldStart < length || len(result.Fields) > rowStart {
		result.Fields = append(result.Fields, FieldRange{Start: fieldStart, End: length})
		result.Rows = append(result.Rows, Row{FirstField: rowStart, FieldCount: len(result.Fields) - rowStart})
	}

	return result
}
