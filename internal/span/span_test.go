package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMergesSameCategory(t *testing.T) {
	var l Line
	l.Append(Plain, "foo")
	l.Append(Plain, "bar")
	l.Append(Change, "baz")

	require.Len(t, l.Spans, 2)
	assert.Equal(t, Span{Cat: Plain, Text: "foobar"}, l.Spans[0])
	assert.Equal(t, Span{Cat: Change, Text: "baz"}, l.Spans[1])
}

func TestAppendEmptyIsNoop(t *testing.T) {
	var l Line
	l.Append(Add, "")
	assert.Empty(t, l.Spans)
}

func TestText(t *testing.T) {
	l := Line{Spans: []Span{
		{Cat: Plain, Text: "a"},
		{Cat: Tab, Text: "\t\t"},
		{Cat: Delete, Text: "b"},
	}}
	assert.Equal(t, "a\t\tb", l.Text())
}

func TestChanged(t *testing.T) {
	tcs := []struct {
		name    string
		spans   []Span
		changed bool
	}{
		{name: "empty", spans: nil, changed: false},
		{name: "plain only", spans: []Span{{Cat: Plain, Text: "x"}}, changed: false},
		{name: "tab fill only", spans: []Span{{Cat: Tab, Text: "\t"}}, changed: false},
		{name: "add", spans: []Span{{Cat: Plain, Text: "x"}, {Cat: Add, Text: "y"}}, changed: true},
		{name: "delete", spans: []Span{{Cat: Delete, Text: "y"}}, changed: true},
		{name: "change", spans: []Span{{Cat: Change, Text: "y"}}, changed: true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			l := Line{Spans: tc.spans}
			assert.Equal(t, tc.changed, l.Changed())
		})
	}
}

func TestBlankLine(t *testing.T) {
	l := BlankLine()
	assert.Equal(t, Blank, l.No)
	assert.Equal(t, " ", l.Text())
	assert.False(t, l.Changed())
}
