package render

import (
	"github.com/sidediff/sidediff/internal/align"
	"github.com/sidediff/sidediff/internal/span"
)

// rowPair is one physical table row before colorizing. Pairs are
// transient: produced and consumed within one table pass.
type rowPair struct {
	sep         bool
	left, right span.Line
}

// pairIter wraps both sides of each aligned item and equalizes their
// row counts with blank filler rows, holding at most one wrapped
// logical pair in memory.
type pairIter struct {
	src   *align.Iter
	wrap  int
	trunc bool
	queue []rowPair
}

func (p *pairIter) next() (rowPair, bool) {
	for len(p.queue) == 0 {
		if !p.src.Next() {
			return rowPair{}, false
		}
		item := p.src.Item()
		if item.Sep {
			p.queue = append(p.queue, rowPair{sep: true})
			continue
		}

		left := wrapLine(item.Left, p.wrap, p.trunc)
		right := wrapLine(item.Right, p.wrap, p.trunc)
		for len(left) < len(right) {
			left = append(left, span.BlankLine())
		}
		for len(right) < len(left) {
			right = append(right, span.BlankLine())
		}
		for i := range left {
			p.queue = append(p.queue, rowPair{left: left[i], right: right[i]})
		}
	}

	pair := p.queue[0]
	p.queue = p.queue[1:]
	return pair, true
}
