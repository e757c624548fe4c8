package termtext

import "strings"

// Pad left-justifies s in a field of the given display width. Content
// already at or past the field width is returned unchanged.
func Pad(s string, width int) string {
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// PadLeft right-justifies s in a field of the given display width.
func PadLeft(s string, width int) string {
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}
