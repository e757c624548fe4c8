package render

import "strings"

// ExpandTabs rewrites one raw input line for diffing: the trailing
// newline is stripped and each tab expands to the next tab stop as a
// run of tab-fill bytes rather than spaces. Real spaces pass through
// untouched, so a tab-vs-space indentation change diffs as a real
// change; the fill renders as plain spaces at colorize time.
func ExpandTabs(line string, tabSize int) string {
	line = strings.TrimSuffix(line, "\n")
	if !strings.Contains(line, "\t") {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + tabSize)
	col := 0
	for _, r := range line {
		if r == '\t' {
			fill := tabSize - col%tabSize
			for j := 0; j < fill; j++ {
				b.WriteByte('\t')
			}
			col += fill
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// normalizeCR applies the carriage-return policy before comparison:
// CRs are stripped when the caller asked, or when both sides are
// uniformly CR-terminated (the files then differ in content, not in
// line convention). Otherwise CRs survive and render later as a
// visible two-column `\r`.
func normalizeCR(a, b []string, strip bool) ([]string, []string) {
	if !strip && !(uniformCR(a) && uniformCR(b)) {
		return a, b
	}
	return stripTrailingCR(a), stripTrailingCR(b)
}

func stripTrailingCR(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if core, ok := strings.CutSuffix(line, "\r\n"); ok {
			line = core + "\n"
		} else {
			line = strings.TrimSuffix(line, "\r") // last line, no newline
		}
		out[i] = line
	}
	return out
}

// uniformCR reports whether every line of a side is CR-terminated and
// at least one line exists.
func uniformCR(lines []string) bool {
	seen := false
	for _, line := range lines {
		switch {
		case strings.HasSuffix(line, "\r\n"), strings.HasSuffix(line, "\r"):
			seen = true
		case strings.HasSuffix(line, "\n"):
			return false
		}
	}
	return seen
}
