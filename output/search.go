package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arjunmahishi/codeview/search"
)

// SearchResults writes matches grouped by file and then by enclosing symbol
// path, groups in order of first appearance.
func SearchResults(w io.Writer, results []search.FileMatches, overflow search.Overflow) error {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.Path)
		sb.WriteString("\n")

		var order []string
		groups := make(map[string][]search.Match)
		for _, m := range r.Matches {
			key := search.GroupKey(m.SymbolPath)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], m)
		}

		for _, key := range order {
			fmt.Fprintf(&sb, "\n  %s\n", key)
			for _, m := range groups[key] {
				fmt.Fprintf(&sb, "    L%d:%s\n", m.Line, m.Text)
			}
		}
	}

	if overflow.Matches > 0 {
		fmt.Fprintf(&sb, "\n... and %d more matches across %d files\n", overflow.Matches, overflow.Files)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// LineRange writes extracted lines, preceded by their enclosing symbols.
func LineRange(w io.Writer, r search.LineRange) error {
	var sb strings.Builder
	if len(r.Context) > 0 {
		fmt.Fprintf(&sb, "// Inside: %s\n", strings.Join(r.Context, " > "))
	}
	for _, l := range r.Lines {
		fmt.Fprintf(&sb, "L%d:%s\n", l.Line, l.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
