package editor

import "strings"

// Reindent strips the common leading whitespace from body and prefixes every
// non-blank line with baseIndent plus one indentation unit. The unit is a tab
// when baseIndent is tab-indented and four spaces otherwise. Blank lines
// become empty and a single trailing newline is dropped.
func Reindent(body, baseIndent string) string {
	body = strings.TrimSuffix(body, "\n")
	lines := strings.Split(body, "\n")

	common := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if n := len(leadingWhitespace(line)); common < 0 || n < common {
			common = n
		}
	}

	prefix := baseIndent + indentUnit(baseIndent)
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if isBlank(line) {
			lines[i] = ""
			continue
		}
		lead := len(leadingWhitespace(line))
		if lead >= common {
			line = line[common:]
		} else {
			line = line[lead:]
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func indentUnit(baseIndent string) string {
	if strings.HasPrefix(baseIndent, "\t") {
		return "\t"
	}
	return "    "
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
