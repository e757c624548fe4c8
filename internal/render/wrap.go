package render

import (
	"github.com/sidediff/sidediff/internal/span"
	"github.com/sidediff/sidediff/internal/termtext"
)

// wrapLine splits line into physical chunks whose display width is at
// most wrap. The first chunk keeps the real line number; later chunks
// carry the continuation sentinel. A span cut by the boundary simply
// continues, with its category, at the start of the next chunk, so the
// coloring of each chunk is self-contained. In truncate mode only the
// first chunk survives.
//
// The scan is one iterative pass over a cursor: every iteration either
// consumes at least one display unit or starts a fresh chunk, so a
// pathological single long line cannot exhaust the stack.
func wrapLine(line span.Line, wrap int, truncate bool) []span.Line {
	if wrap <= 0 || termtext.Width(line.Text()) <= wrap {
		return []span.Line{line}
	}

	var chunks []span.Line
	cur := span.Line{No: line.No}
	width := 0

	flush := func() {
		chunks = append(chunks, cur)
		cur = span.Line{No: span.Wrapped}
		width = 0
	}

	for _, sp := range line.Spans {
		text := sp.Text
		for text != "" {
			if width >= wrap {
				flush()
			}
			end, w := takeWidth(text, wrap-width)
			if end == 0 {
				if width > 0 {
					flush()
					continue
				}
				// A single unit wider than the wrap column is
				// unsplittable; emit it on its own over-wide row.
				end, w = takeOne(text)
			}
			cur.Append(sp.Cat, text[:end])
			width += w
			text = text[end:]
		}
	}
	if len(cur.Spans) > 0 {
		chunks = append(chunks, cur)
	}

	if truncate {
		chunks = chunks[:1]
	}
	return chunks
}

// takeWidth returns the byte length and display width of the longest
// grapheme prefix of text not exceeding budget.
func takeWidth(text string, budget int) (int, int) {
	end, width := 0, 0
	g := termtext.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if width+w > budget {
			break
		}
		end += len(g.Value())
		width += w
	}
	return end, width
}

// takeOne returns the byte length and display width of the first
// grapheme of text. text must be non-empty.
func takeOne(text string) (int, int) {
	g := termtext.NewGraphemes(text)
	g.Next()
	return len(g.Value()), g.Width()
}
