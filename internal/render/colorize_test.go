package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidediff/sidediff/internal/span"
)

func testColorizer(t *testing.T, highlight bool, ws WhitespacePolicy) colorizer {
	t.Helper()
	colors, err := ResolveColors(nil, false)
	require.NoError(t, err)
	return colorizer{colors: colors, highlight: highlight, whitespace: ws}
}

func TestRenderPlainLine(t *testing.T) {
	c := testColorizer(t, false, WhitespaceDefault)
	l := span.Line{No: 1, Spans: []span.Span{
		{Cat: span.Tab, Text: "\t\t"},
		{Cat: span.Plain, Text: "foo\r"},
	}}

	assert.Equal(t, "  foo\\r", c.renderLine(l), "tab fill renders as spaces, CR as a visible marker")
}

func TestRenderChangedSpans(t *testing.T) {
	c := testColorizer(t, false, WhitespaceDefault)
	tcs := []struct {
		name string
		cat  span.Category
		want string
	}{
		{name: "add", cat: span.Add, want: "\x1b[1;32mfoo\x1b[m"},
		{name: "delete", cat: span.Delete, want: "\x1b[1;31mfoo\x1b[m"},
		{name: "change", cat: span.Change, want: "\x1b[1;33mfoo\x1b[m"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			l := span.Line{Spans: []span.Span{{Cat: tc.cat, Text: "foo"}}}
			assert.Equal(t, tc.want, c.renderLine(l))
		})
	}
}

func TestRenderMixedLine(t *testing.T) {
	c := testColorizer(t, false, WhitespaceDefault)
	l := span.Line{Spans: []span.Span{
		{Cat: span.Plain, Text: "ab"},
		{Cat: span.Change, Text: "c"},
		{Cat: span.Plain, Text: "def"},
	}}

	assert.Equal(t, "ab\x1b[1;33mc\x1b[mdef", c.renderLine(l))
}

func TestRenderHighlightMode(t *testing.T) {
	c := testColorizer(t, true, WhitespaceDefault)
	l := span.Line{Spans: []span.Span{{Cat: span.Add, Text: "foo"}}}

	assert.Equal(t, "\x1b[7;32mfoo\x1b[m", c.renderLine(l))
}

func TestRenderWhitespaceOnlyChange(t *testing.T) {
	l := span.Line{Spans: []span.Span{{Cat: span.Change, Text: "   "}}}

	tcs := []struct {
		name string
		ws   WhitespacePolicy
		want string
	}{
		{name: "default uses background", ws: WhitespaceDefault, want: "\x1b[7;33m   \x1b[m"},
		{name: "show-none leaves plain", ws: WhitespaceShowNone, want: "   "},
		{name: "show-all wraps each character", ws: WhitespaceShowAll,
			want: "\x1b[7;33m \x1b[m\x1b[7;33m \x1b[m\x1b[7;33m \x1b[m"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			c := testColorizer(t, false, tc.ws)
			assert.Equal(t, tc.want, c.renderLine(l))
		})
	}
}

func TestRenderShowAllSpacesMixedText(t *testing.T) {
	c := testColorizer(t, false, WhitespaceShowAll)
	l := span.Line{Spans: []span.Span{{Cat: span.Change, Text: "a b"}}}

	want := "\x1b[1;33ma\x1b[m" + "\x1b[7;33m \x1b[m" + "\x1b[1;33mb\x1b[m"
	assert.Equal(t, want, c.renderLine(l))
}

func TestRenderShowNoneKeepsVisibleChanges(t *testing.T) {
	c := testColorizer(t, false, WhitespaceShowNone)
	l := span.Line{Spans: []span.Span{{Cat: span.Change, Text: "a b"}}}

	assert.Equal(t, "\x1b[1;33ma b\x1b[m", c.renderLine(l))
}

func TestRenderTabFillInsideChange(t *testing.T) {
	// Tab fill inside a changed span is whitespace to the policies: the
	// default policy backgrounds a pure-fill change.
	c := testColorizer(t, false, WhitespaceDefault)
	l := span.Line{Spans: []span.Span{{Cat: span.Add, Text: "\t\t"}}}

	assert.Equal(t, "\x1b[7;32m  \x1b[m", c.renderLine(l))
}

func TestRenderNoneColorSkipsEscapes(t *testing.T) {
	colors, err := ResolveColors(map[string]string{CategoryChange: "none"}, false)
	require.NoError(t, err)
	c := colorizer{colors: colors, whitespace: WhitespaceDefault}
	l := span.Line{Spans: []span.Span{{Cat: span.Change, Text: "foo"}}}

	assert.Equal(t, "foo", c.renderLine(l))
}
