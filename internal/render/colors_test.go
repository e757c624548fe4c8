package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColorsDefaults(t *testing.T) {
	m, err := ResolveColors(nil, false)
	require.NoError(t, err)

	assert.Equal(t, "\x1b[1;32m", m.code(CategoryAdd))
	assert.Equal(t, "\x1b[1;31m", m.code(CategorySubtract))
	assert.Equal(t, "\x1b[1;33m", m.code(CategoryChange))
	assert.Equal(t, "\x1b[0;34m", m.code(CategoryDescription))
}

func TestResolveColorsNoBold(t *testing.T) {
	m, err := ResolveColors(nil, true)
	require.NoError(t, err)

	assert.Equal(t, "\x1b[0;32m", m.code(CategoryAdd))
	assert.Equal(t, "\x1b[0;34m", m.code(CategoryDescription), "non-bold defaults are unaffected")
}

func TestResolveColorsOverride(t *testing.T) {
	m, err := ResolveColors(map[string]string{CategoryChange: "magenta"}, false)
	require.NoError(t, err)

	assert.Equal(t, "\x1b[0;35m", m.code(CategoryChange))
	assert.Equal(t, "\x1b[1;32m", m.code(CategoryAdd), "other categories keep their defaults")
}

func TestResolveColorsUnknownName(t *testing.T) {
	_, err := ResolveColors(map[string]string{CategoryChange: "mageta"}, false)
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "mageta", cerr.Token)
	assert.Equal(t, 2, cerr.ExitCode())
}

func TestResolveColorsUnknownCategory(t *testing.T) {
	_, err := ResolveColors(map[string]string{"backgroundish": "red"}, false)
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "backgroundish", cerr.Token)
}

func TestParseColorMap(t *testing.T) {
	got, err := ParseColorMap("change:magenta, subtract:red_bold")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"change": "magenta", "subtract": "red_bold"}, got)
}

func TestParseColorMapEmpty(t *testing.T) {
	got, err := ParseColorMap("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseColorMapMalformed(t *testing.T) {
	for _, bad := range []string{"change", "change:", ":magenta"} {
		_, err := ParseColorMap(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestColorizeNoneIsPlain(t *testing.T) {
	m, err := ResolveColors(map[string]string{CategoryAdd: "none"}, false)
	require.NoError(t, err)

	assert.Equal(t, "foo", m.Colorize(CategoryAdd, "foo"))
}

func TestColorize(t *testing.T) {
	m, err := ResolveColors(nil, false)
	require.NoError(t, err)

	assert.Equal(t, "\x1b[0;35mnote\x1b[m", m.Colorize(CategoryMeta, "note"))
}

func TestBackground(t *testing.T) {
	assert.Equal(t, "\x1b[7;33m", background("\x1b[0;33m"))
	assert.Equal(t, "\x1b[7;33m", background("\x1b[1;33m"))
}
