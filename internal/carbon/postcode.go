package carbon

import "strings"

// inwardCodeLen is the fixed length of the inward half of a UK postcode ("1AA" in "SW1A 1AA").
const inwardCodeLen = 3

// OutwardCode returns the outward code of a full or partial UK postcode.
//
// The input is trimmed and uppercased. When it contains a space, everything
// before the first space is returned. Otherwise inputs of five or more
// characters are assumed to be a full postcode written without a space and
// lose their trailing inward code. Shorter inputs are returned as-is.
func OutwardCode(postcode string) string {
	pc := strings.ToUpper(strings.TrimSpace(postcode))

	if i := strings.IndexByte(pc, ' '); i >= 0 {
		return pc[:i]
	}
	if len(pc) >= inwardCodeLen+2 {
		return pc[:len(pc)-inwardCodeLen]
	}
	return pc
}
