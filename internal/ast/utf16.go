package ast

import "unicode/utf16"

// UTF16Len returns the number of UTF-16 code units s would occupy, which is
// the unit selection offsets are expressed in (§9).
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if rl := utf16.RuneLen(r); rl > 0 {
			n += rl
		} else {
			n++
		}
	}
	return n
}
