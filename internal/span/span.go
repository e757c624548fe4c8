// Package span models a diff line as an ordered sequence of tagged text
// runs. The wrapper and the colorizer operate on these structured spans,
// so a wrapped chunk is self-contained by construction and no
// marker-balance bookkeeping exists anywhere in the pipeline.
package span

import "strings"

// Category classifies one run of text within a logical diff line.
type Category int

const (
	Plain  Category = iota
	Add             // text present only on the right side
	Delete          // text present only on the left side
	Change          // text replaced between the two sides
	Tab             // filler created by tab expansion in unchanged text
)

// Span is a maximal run of text sharing one category. Text may contain
// tab-fill bytes ('\t') and literal carriage returns; both are
// substituted at colorize time.
type Span struct {
	Cat  Category
	Text string
}

// LineNo identifies the provenance of a row. Real line numbers are >= 1.
type LineNo int

const (
	Blank   LineNo = 0  // filler row equalizing the two sides' heights
	Wrapped LineNo = -1 // continuation row of a wrapped logical line
)

// Line is one row on one side of the table: a logical line before
// wrapping, a physical row after.
type Line struct {
	No    LineNo
	Spans []Span
}

// BlankLine returns the filler row used to equalize pair heights.
func BlankLine() Line {
	return Line{No: Blank, Spans: []Span{{Cat: Plain, Text: " "}}}
}

// Text returns the raw text of l with all category information dropped.
func (l Line) Text() string {
	var b strings.Builder
	for _, sp := range l.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Changed reports whether l carries any Add, Delete, or Change span.
func (l Line) Changed() bool {
	for _, sp := range l.Spans {
		switch sp.Cat {
		case Add, Delete, Change:
			return true
		}
	}
	return false
}

// Append adds text to l under cat, extending the last span when the
// category matches so spans stay maximal.
func (l *Line) Append(cat Category, text string) {
	if text == "" {
		return
	}
	if n := len(l.Spans); n > 0 && l.Spans[n-1].Cat == cat {
		l.Spans[n-1].Text += text
		return
	}
	l.Spans = append(l.Spans, Span{Cat: cat, Text: text})
}
