package render

import (
	"strings"
	"unicode"

	"github.com/sidediff/sidediff/internal/span"
)

// Substitutions applied to every rendered row: tab fill becomes a plain
// space, a carriage return becomes the visible two-column `\r`.
var displayReplacer = strings.NewReplacer("\t", " ", "\r", `\r`)

type colorizer struct {
	colors     ColorMap
	highlight  bool
	whitespace WhitespacePolicy
}

// renderLine converts one physical row's spans to ANSI-ready text. A
// row without changed spans comes out as plain text modulo the display
// substitutions.
func (c colorizer) renderLine(l span.Line) string {
	var b strings.Builder
	for _, sp := range l.Spans {
		c.renderSpan(&b, sp)
	}
	return b.String()
}

func (c colorizer) renderSpan(b *strings.Builder, sp span.Span) {
	text := displayReplacer.Replace(sp.Text)

	var code string
	switch sp.Cat {
	case span.Add:
		code = c.colors.code(CategoryAdd)
	case span.Delete:
		code = c.colors.code(CategorySubtract)
	case span.Change:
		code = c.colors.code(CategoryChange)
	}
	if code == "" { // Plain, Tab, or a category mapped to "none"
		b.WriteString(text)
		return
	}

	if c.highlight {
		// Every colored cell already carries a background fill, so the
		// whitespace policies do not apply.
		b.WriteString(background(code))
		b.WriteString(text)
		b.WriteString(ansiReset)
		return
	}

	switch c.whitespace {
	case WhitespaceShowNone:
		if isAllSpace(text) {
			b.WriteString(text)
			return
		}
	case WhitespaceDefault:
		if isAllSpace(text) {
			b.WriteString(background(code))
			b.WriteString(text)
			b.WriteString(ansiReset)
			return
		}
	case WhitespaceShowAll:
		c.renderShowAllSpaces(b, code, text)
		return
	}

	b.WriteString(code)
	b.WriteString(text)
	b.WriteString(ansiReset)
}

// renderShowAllSpaces gives every whitespace character of a colored
// span its own background wrapper so each one reads as an explicit
// difference. The foreground color opens lazily (nothing emitted before
// the first colored glyph) and closes ahead of each whitespace run
// (nothing left dangling where the span's end already resets), keeping
// the escape codes at the span's edges minimal.
func (c colorizer) renderShowAllSpaces(b *strings.Builder, code, text string) {
	fgOpen := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if fgOpen {
				b.WriteString(ansiReset)
				fgOpen = false
			}
			b.WriteString(background(code))
			b.WriteRune(r)
			b.WriteString(ansiReset)
			continue
		}
		if !fgOpen {
			b.WriteString(code)
			fgOpen = true
		}
		b.WriteRune(r)
	}
	if fgOpen {
		b.WriteString(ansiReset)
	}
}

func isAllSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
