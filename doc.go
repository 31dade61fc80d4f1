// Package csvmask locates field and record boundaries in comma-separated text
// using 64-bit mask arithmetic instead of per-byte branching.
//
// The buffer is processed in 64-byte windows. For each window, byte-equality
// masks for quotes, commas and newlines are built (AVX-512 when available,
// otherwise eight bytes per step with plain integer arithmetic), quoted
// regions are derived from the quote mask with additions and a prefix XOR,
// and commas and newlines inside quotes are cleared. A single boolean carries
// the quoted state from one window to the next.
//
// The result is a list of records, each a list of byte ranges into the
// original buffer:
//
//	res, err := csvmask.Scan(data)
//	if err != nil {
//		return err
//	}
//	for _, rec := range res.Records() {
//		for _, f := range rec {
//			fmt.Printf("%q ", f.Bytes(data))
//		}
//		fmt.Println()
//	}
//
// Field bytes are returned raw: surrounding quotes and doubled quotes are not
// removed. Only '"', ',' and '\n' are structural; '\r' stays in the field.
package csvmask
