package textutil

import "strings"

// whitespace is the cutset removed by Trim: space, tab, newline, carriage
// return, form feed and vertical tab.
const whitespace = " \t\n\r\f\v"

// Fold maps ASCII upper-case letters to lower case, byte for byte.
// Keyword and marker matching runs against the folded copy while slicing
// happens on the original string, so the fold must never change byte
// offsets. Full Unicode case mapping can change string length (U+0130 is
// the classic case) and would desynchronize the two, which is why this is
// not strings.ToLower.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Trim removes leading and trailing whitespace. A string of only
// whitespace trims to empty.
func Trim(s string) string {
	return strings.Trim(s, whitespace)
}
