package csvmask

const (
	quoteChar   = '"'
	commaChar   = ','
	newlineChar = '\n'
)

// windowResult holds the control delimiters of one window.
type windowResult struct {
	commas   uint64 // commas outside quoted fields
	newlines uint64 // newlines outside quoted fields
	carryOut bool   // inside a quoted field after the last byte
}

// scanWindow finds the control commas and newlines of a window.
// valid limits the result to the first valid bytes; bits at or beyond it are
// cleared before the quote mask is computed.
func scanWindow(w *Window, cmp CompareFunc, valid uint64, carryIn bool) windowResult {
	quotes := cmp(w, quoteChar) & valid
	commas := cmp(w, commaChar) & valid
	newlines := cmp(w, newlineChar) & valid

	inside, carryOut := quoteMask(quotes, carryIn)

	return windowResult{
		commas:   commas &^ inside,
		newlines: newlines &^ inside,
		carryOut: carryOut,
	}
}
