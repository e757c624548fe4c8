// Package termtext measures the terminal display width of diff-table
// text: ANSI escape sequences occupy no cells, East Asian wide and
// fullwidth glyphs occupy two, a carriage return occupies two (it is
// rendered as a visible `\r`), and a tab-fill byte occupies one (it is
// rendered as a single space).
package termtext

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

var cond = newCondition()

func newCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}

// Width returns the number of terminal cells str occupies. One forward
// scan, no side effects.
func Width(str string) int {
	width := 0

	for i := 0; i < len(str); {
		switch str[i] {
		case esc:
			seqLen := ansiSequenceLength(str[i:])
			if seqLen == 0 {
				seqLen = 1
			}
			i += seqLen
		case '\r':
			width += 2
			i++
		case '\t':
			width++
			i++
		default:
			end := nextSpecial(str, i)
			width += cond.StringWidth(str[i:end])
			i = end
		}
	}

	return width
}

// nextSpecial returns the index of the next byte from i that Width must
// handle on its own, or len(str).
func nextSpecial(str string, i int) int {
	if n := strings.IndexAny(str[i:], "\x1b\r\t"); n >= 0 {
		return i + n
	}
	return len(str)
}

const esc = '\x1b'

// ansiSequenceLength returns the byte length of the escape sequence at
// the start of s, or 0 if s does not begin a complete sequence.
func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != esc {
		return 0
	}
	if len(s) == 1 {
		return 1
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e { // final byte of a CSI sequence
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' { // BEL terminator
				return i + 1
			}
			if s[i] == '\\' && s[i-1] == esc { // ST terminator (ESC \)
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == esc {
				return i + 1
			}
		}
		return 0
	default:
		return 2 // ESC followed by a single-character control
	}
}

// Graphemes iterates the display units of marker-free text, one
// grapheme cluster at a time. It is the unit scan behind line wrapping.
type Graphemes struct {
	iter graphemes.Iterator[string]
}

// NewGraphemes returns an iterator over the display units of str.
func NewGraphemes(str string) *Graphemes {
	return &Graphemes{iter: graphemes.FromString(str)}
}

func (g *Graphemes) Next() bool {
	return g.iter.Next()
}

// Value returns the current grapheme cluster.
func (g *Graphemes) Value() string {
	return g.iter.Value()
}

// Width returns the cell width of the current cluster under the same
// unit rules as the package-level Width.
func (g *Graphemes) Width() int {
	v := g.iter.Value()
	switch v {
	case "\r":
		return 2
	case "\t":
		return 1
	}
	return cond.StringWidth(v)
}
