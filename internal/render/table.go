// Package render turns two sequences of text lines into a two-column,
// color-highlighted, width-correct terminal table. The pipeline is a
// single-threaded chain of pull iterators: tab normalization, line
// alignment, wrapping, pairing, colorizing, padding. Memory stays
// bounded to roughly one wrapped logical line, and the consumer may
// stop pulling at any point with nothing to clean up.
package render

import (
	"strconv"
	"strings"

	"github.com/sidediff/sidediff/internal/align"
	"github.com/sidediff/sidediff/internal/span"
	"github.com/sidediff/sidediff/internal/termtext"
)

// MakeTable renders the side-by-side comparison of fromLines and
// toLines (raw lines, trailing newlines still present) as a lazy
// sequence of fully colorized, width-padded physical rows. Newline
// termination of each row is left to the caller. Configuration
// problems surface here, before the first row exists.
func MakeTable(fromLines, toLines []string, opts Options) (*Rows, error) {
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	fromLines, toLines = normalizeCR(fromLines, toLines, cfg.StripCR)
	a := expandAll(fromLines, cfg.TabSize)
	b := expandAll(toLines, cfg.TabSize)

	src := align.New(a, b, align.Options{
		Context:      cfg.Context,
		ContextLines: cfg.ContextLines,
		LineJunk:     cfg.LineJunk,
	})

	r := &Rows{
		cfg:   cfg,
		col:   colorizer{colors: cfg.Colors, highlight: cfg.Highlight, whitespace: cfg.Whitespace},
		pairs: &pairIter{src: src, wrap: cfg.wrap, trunc: cfg.Truncate},
	}
	r.stageFurniture()
	return r, nil
}

func expandAll(lines []string, tabSize int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ExpandTabs(line, tabSize)
	}
	return out
}

// Rows is the pull iterator over rendered rows.
type Rows struct {
	cfg     config
	col     colorizer
	pairs   *pairIter
	pending []string
	sawRow  bool
	row     string
}

// stageFurniture queues the optional header and permission rows ahead
// of the diff body.
func (r *Rows) stageFurniture() {
	if r.cfg.FromDesc != "" || r.cfg.ToDesc != "" {
		r.pending = append(r.pending, r.joinCells(
			r.cfg.Colors.Colorize(CategoryDescription, r.cfg.FromDesc),
			r.cfg.Colors.Colorize(CategoryDescription, r.cfg.ToDesc)))
	}
	if r.cfg.FromPerm != r.cfg.ToPerm && (r.cfg.FromPerm != "" || r.cfg.ToPerm != "") {
		r.pending = append(r.pending, r.joinCells(
			r.cfg.Colors.Colorize(CategoryPermissions, r.cfg.FromPerm),
			r.cfg.Colors.Colorize(CategoryPermissions, r.cfg.ToPerm)))
	}
}

// Next advances to the next rendered row, reporting false at the end.
func (r *Rows) Next() bool {
	if len(r.pending) > 0 {
		r.row = r.pending[0]
		r.pending = r.pending[1:]
		return true
	}

	for {
		pair, ok := r.pairs.next()
		if !ok {
			return false
		}
		if pair.sep {
			if !r.sawRow {
				continue // the oracle's separator before the first real row
			}
			r.row = r.joinCells(
				r.cfg.Colors.Colorize(CategorySeparator, "---"),
				r.cfg.Colors.Colorize(CategorySeparator, "---"))
			return true
		}
		r.sawRow = true
		r.row = r.joinCells(r.renderSide(pair.left), r.renderSide(pair.right))
		return true
	}
}

// Row returns the row selected by the last successful Next.
func (r *Rows) Row() string { return r.row }

// renderSide colorizes one cell, prefixing the line-number gutter when
// enabled.
func (r *Rows) renderSide(l span.Line) string {
	trimTrailingSpace(&l)
	cell := r.col.renderLine(l)
	if !r.cfg.LineNumbers {
		return cell
	}
	return r.gutter(l.No) + cell
}

// gutter renders the 9-column line-number prefix. Filler and
// continuation rows keep a blank gutter so cells stay aligned.
func (r *Rows) gutter(no span.LineNo) string {
	if no <= 0 {
		return strings.Repeat(" ", 9)
	}
	num := termtext.PadLeft(strconv.Itoa(int(no)), 8)
	return r.cfg.Colors.Colorize(CategoryLineNumbers, num) + " "
}

func (r *Rows) joinCells(left, right string) string {
	return termtext.Pad(left, r.cfg.pad) + " " + termtext.Pad(right, r.cfg.pad)
}

// trimTrailingSpace drops unchanged trailing whitespace from a row.
// Whitespace inside changed spans is significant and stays.
func trimTrailingSpace(l *span.Line) {
	spans := l.Spans
	for len(spans) > 0 {
		last := spans[len(spans)-1]
		if last.Cat != span.Plain && last.Cat != span.Tab {
			break
		}
		last.Text = strings.TrimRight(last.Text, " \t")
		if last.Text != "" {
			spans = append(spans[:len(spans)-1:len(spans)-1], last)
			break
		}
		spans = spans[:len(spans)-1]
	}
	l.Spans = spans
}
