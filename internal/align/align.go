// Package align is the diff oracle: it aligns two sequences of
// (already tab-normalized) text lines and yields one aligned item at a
// time, each carrying tagged spans for intraline changes. Line-level
// alignment comes from difflib's SequenceMatcher; character-level
// changes within a replaced pair come from diffmatchpatch.
package align

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sidediff/sidediff/internal/span"
)

// Options configure the aligner.
type Options struct {
	// Context limits output to groups of changes surrounded by
	// ContextLines unchanged lines. A separator item precedes every
	// group, including the first; the table layer decides which to show.
	Context      bool
	ContextLines int

	// LineJunk, when non-nil, marks lines the matcher should prefer not
	// to anchor on.
	LineJunk func(string) bool
}

// Item is one aligned element: a context separator, or a pair of lines.
// One side of a pair may be the blank filler line when the other side
// was added or deleted outright.
type Item struct {
	Sep   bool
	Left  span.Line
	Right span.Line
}

// Iter yields aligned items one pull at a time. Abandoning it early
// needs no cleanup.
type Iter struct {
	a, b     []string
	groups   [][]difflib.OpCode
	emitSeps bool

	gi, oi, k int // group, opcode within group, line within opcode
	sepSent   bool

	queue []Item
	item  Item
}

// New aligns a against b. The inputs are never mutated.
func New(a, b []string, opts Options) *Iter {
	isJunk := opts.LineJunk
	m := difflib.NewMatcherWithJunk(a, b, true, isJunk)

	var groups [][]difflib.OpCode
	emitSeps := false
	if opts.Context {
		n := opts.ContextLines
		if n < 0 {
			n = 0
		}
		groups = m.GetGroupedOpCodes(n)
		emitSeps = true
	} else if ops := m.GetOpCodes(); len(ops) > 0 {
		groups = [][]difflib.OpCode{ops}
	}

	return &Iter{a: a, b: b, groups: groups, emitSeps: emitSeps}
}

// Next advances to the next item, reporting false at the end.
func (it *Iter) Next() bool {
	for len(it.queue) == 0 {
		if it.gi >= len(it.groups) {
			return false
		}
		if it.emitSeps && !it.sepSent {
			it.sepSent = true
			it.queue = append(it.queue, Item{Sep: true})
			break
		}
		group := it.groups[it.gi]
		if it.oi >= len(group) {
			it.gi++
			it.oi = 0
			it.sepSent = false
			continue
		}
		if !it.expand(group[it.oi]) {
			it.oi++
			it.k = 0
		}
	}

	it.item = it.queue[0]
	it.queue = it.queue[1:]
	return true
}

// Item returns the item selected by the last successful Next.
func (it *Iter) Item() Item {
	return it.item
}

// expand pushes the item for line it.k of op and reports whether op has
// more lines after it. One line per call keeps memory bounded.
func (it *Iter) expand(op difflib.OpCode) bool {
	nLeft := op.I2 - op.I1
	nRight := op.J2 - op.J1
	total := max(nLeft, nRight)
	if it.k >= total {
		return false
	}

	var item Item
	switch op.Tag {
	case 'e':
		item.Left = plainLine(span.LineNo(op.I1+it.k+1), it.a[op.I1+it.k])
		item.Right = plainLine(span.LineNo(op.J1+it.k+1), it.b[op.J1+it.k])
	case 'd':
		item.Left = wholeLine(span.LineNo(op.I1+it.k+1), span.Delete, it.a[op.I1+it.k])
		item.Right = span.BlankLine()
	case 'i':
		item.Left = span.BlankLine()
		item.Right = wholeLine(span.LineNo(op.J1+it.k+1), span.Add, it.b[op.J1+it.k])
	case 'r':
		switch {
		case it.k < nLeft && it.k < nRight:
			item.Left, item.Right = intraline(
				span.LineNo(op.I1+it.k+1), it.a[op.I1+it.k],
				span.LineNo(op.J1+it.k+1), it.b[op.J1+it.k])
		case it.k < nLeft:
			item.Left = wholeLine(span.LineNo(op.I1+it.k+1), span.Delete, it.a[op.I1+it.k])
			item.Right = span.BlankLine()
		default:
			item.Left = span.BlankLine()
			item.Right = wholeLine(span.LineNo(op.J1+it.k+1), span.Add, it.b[op.J1+it.k])
		}
	default:
		return false
	}

	it.queue = append(it.queue, item)
	it.k++
	return it.k < total
}

// plainLine builds an unchanged line, hoisting tab-fill runs into Tab
// spans so they render as plain spaces.
func plainLine(no span.LineNo, text string) span.Line {
	l := span.Line{No: no}
	appendPlain(&l, text)
	return l
}

// wholeLine builds a fully added or deleted line as one span; tab fill
// stays inside so the whitespace policies see it as whitespace.
func wholeLine(no span.LineNo, cat span.Category, text string) span.Line {
	l := span.Line{No: no}
	l.Append(cat, text)
	return l
}

func appendPlain(l *span.Line, text string) {
	for len(text) > 0 {
		if text[0] == '\t' {
			i := 0
			for i < len(text) && text[i] == '\t' {
				i++
			}
			l.Append(span.Tab, text[:i])
			text = text[i:]
			continue
		}
		i := strings.IndexByte(text, '\t')
		if i < 0 {
			i = len(text)
		}
		l.Append(span.Plain, text[:i])
		text = text[i:]
	}
}

// intraline diffs one replaced pair of lines character by character.
// Lone deletions tag Delete, lone insertions Add, and an adjacent
// delete/insert tags Change on both sides. A pair with no common text
// at all is not a modification of one line into another; it renders as
// a whole-line deletion against a whole-line addition.
func intraline(leftNo span.LineNo, leftText string, rightNo span.LineNo, rightText string) (span.Line, span.Line) {
	left := span.Line{No: leftNo}
	right := span.Line{No: rightNo}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(leftText, rightText, false))

	if !hasEqual(diffs) {
		return wholeLine(leftNo, span.Delete, leftText), wholeLine(rightNo, span.Add, rightText)
	}

	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			appendPlain(&left, d.Text)
			appendPlain(&right, d.Text)
		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				left.Append(span.Change, d.Text)
				right.Append(span.Change, diffs[i+1].Text)
				i++
			} else {
				left.Append(span.Delete, d.Text)
			}
		case diffmatchpatch.DiffInsert:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffDelete {
				left.Append(span.Change, diffs[i+1].Text)
				right.Append(span.Change, d.Text)
				i++
			} else {
				right.Append(span.Add, d.Text)
			}
		}
	}

	return left, right
}

func hasEqual(diffs []diffmatchpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual && d.Text != "" {
			return true
		}
	}
	return false
}
