package render

import (
	"fmt"
	"sort"
	"strings"
)

// ansiReset clears all SGR attributes.
const ansiReset = "\x1b[m"

// colorCodes maps the user-facing color names to xterm SGR sequences.
// Bold variants use the bold attribute; the background form of any code
// is derived by background(), which swaps the attribute for reverse
// video.
var colorCodes = map[string]string{
	"none":         ansiReset,
	"black":        "\x1b[0;30m",
	"red":          "\x1b[0;31m",
	"green":        "\x1b[0;32m",
	"yellow":       "\x1b[0;33m",
	"blue":         "\x1b[0;34m",
	"magenta":      "\x1b[0;35m",
	"cyan":         "\x1b[0;36m",
	"white":        "\x1b[0;37m",
	"black_bold":   "\x1b[1;30m",
	"red_bold":     "\x1b[1;31m",
	"green_bold":   "\x1b[1;32m",
	"yellow_bold":  "\x1b[1;33m",
	"blue_bold":    "\x1b[1;34m",
	"magenta_bold": "\x1b[1;35m",
	"cyan_bold":    "\x1b[1;36m",
	"white_bold":   "\x1b[1;37m",
}

// Table content categories that can be independently colored.
const (
	CategoryAdd         = "add"
	CategorySubtract    = "subtract"
	CategoryChange      = "change"
	CategoryDescription = "description"
	CategorySeparator   = "separator"
	CategoryMeta        = "meta"
	CategoryPermissions = "permissions"
	CategoryLineNumbers = "line-numbers"
)

var defaultColorNames = map[string]string{
	CategoryAdd:         "green_bold",
	CategorySubtract:    "red_bold",
	CategoryChange:      "yellow_bold",
	CategoryDescription: "blue",
	CategorySeparator:   "blue",
	CategoryMeta:        "magenta",
	CategoryPermissions: "yellow",
	CategoryLineNumbers: "white",
}

// ColorMap is the resolved category -> escape code table. It is built
// once before rendering begins and never mutated afterwards.
type ColorMap struct {
	codes map[string]string
}

// ResolveColors builds the ColorMap from the defaults plus overrides.
// Unknown categories and unknown color names are configuration errors
// reported with the offending token. noBold downgrades every bold
// default (explicit *_bold overrides keep their weight).
func ResolveColors(overrides map[string]string, noBold bool) (ColorMap, error) {
	names := make(map[string]string, len(defaultColorNames))
	for cat, color := range defaultColorNames {
		if noBold {
			color = strings.TrimSuffix(color, "_bold")
		}
		names[cat] = color
	}

	// Validate in a stable order so the first bad token reported is
	// deterministic.
	cats := make([]string, 0, len(overrides))
	for cat := range overrides {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		if _, ok := names[cat]; !ok {
			return ColorMap{}, &ConfigError{Token: cat, Reason: "unknown color category"}
		}
		color := overrides[cat]
		if _, ok := colorCodes[color]; !ok {
			return ColorMap{}, &ConfigError{Token: color, Reason: "unknown color name"}
		}
		names[cat] = color
	}

	codes := make(map[string]string, len(names))
	for cat, color := range names {
		codes[cat] = colorCodes[color]
	}
	return ColorMap{codes: codes}, nil
}

// ParseColorMap parses a "category:color,category:color" override
// string as accepted by --color-map.
func ParseColorMap(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for _, entry := range strings.Split(s, ",") {
		cat, color, ok := strings.Cut(entry, ":")
		if !ok || cat == "" || color == "" {
			return nil, &ConfigError{Token: entry, Reason: "color-map entries must be category:color"}
		}
		out[strings.TrimSpace(cat)] = strings.TrimSpace(color)
	}
	return out, nil
}

// code returns the escape sequence for a category. The "none" color
// yields "", meaning no highlighting at all.
func (m ColorMap) code(category string) string {
	c := m.codes[category]
	if c == ansiReset {
		return ""
	}
	return c
}

// Colorize wraps s in the category's color. Callers use it for table
// furniture and for notices outside the table (meta, descriptions).
func (m ColorMap) Colorize(category, s string) string {
	code := m.code(category)
	if code == "" {
		return s
	}
	return code + s + ansiReset
}

func (m ColorMap) resolved() bool {
	return m.codes != nil
}

// background converts a foreground SGR sequence to its reverse-video
// form, the background fill used by highlight mode and the whitespace
// policies.
func background(code string) string {
	code = strings.Replace(code, "\x1b[1;", "\x1b[7;", 1)
	return strings.Replace(code, "\x1b[0;", "\x1b[7;", 1)
}

// ConfigError reports an invalid configuration token. It is detected
// eagerly, before any row is rendered.
type ConfigError struct {
	Token  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Token)
}

// ExitCode marks configuration mistakes as user errors (exit status 2).
func (e *ConfigError) ExitCode() int { return 2 }
