package csvmask

import "math/bits"

// =============================================================================
// Quote Mask
// =============================================================================
//
// A window's quote bytes are grouped into maximal runs of consecutive quotes.
// An even-length run is a sequence of escaped pairs and leaves the quoted
// state alone; an odd-length run contains one real opening or closing quote.
//
// For each run start s, adding s to the quote mask ripples a carry through the
// run and deposits a single bit just past its last quote. That bit lands on
// the opposite parity from s exactly when the run length is odd, so
// intersecting with the opposite parity mask keeps one boundary per odd run.
// A prefix XOR over the boundaries then toggles "inside quotes" at each one.
//
// An odd-length run that reaches bit 63 has its boundary at bit 64, which the
// word cannot hold. The addition overflows instead and the overflow flag flips
// the carry handed to the next window.
//
// =============================================================================

// quoteMask computes which bytes of a window lie inside a quoted field.
// quoteBits marks the quote bytes of the window; carryIn reports whether the
// previous window ended inside a quoted field. The returned mask has bit i set
// when byte i is inside quotes, and carryOut is the state for the next window.
func quoteMask(quoteBits uint64, carryIn bool) (inside uint64, carryOut bool) {
	runStarts := quoteBits &^ (quoteBits << 1)

	evenRunStarts := runStarts & evenMask
	endsOfEvenStarts := (evenRunStarts + quoteBits) &^ quoteBits
	oddEndsOfEvenStarts := endsOfEvenStarts & oddMask

	oddRunStarts := runStarts & oddMask
	endsOfOddStarts, overflow := bits.Add64(oddRunStarts, quoteBits, 0)
	endsOfOddStarts &^= quoteBits
	evenEndsOfOddStarts := endsOfOddStarts & evenMask

	inside = runningParity(oddEndsOfEvenStarts | evenEndsOfOddStarts)
	if carryIn {
		inside = ^inside
	}

	carryOut = (inside>>63)^overflow == 1
	return inside, carryOut
}
