package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arjunmahishi/codeview/types"
)

// PlainOptions controls plain item rendering.
type PlainOptions struct {
	// Expand prints a header per item instead of one per file.
	Expand bool

	// MaxLines truncates each expanded item when positive.
	MaxLines int
}

// Plain writes items with right-aligned source line numbers.
func Plain(w io.Writer, files []types.FileItems, opts PlainOptions) error {
	var sb strings.Builder
	for _, f := range files {
		if len(f.Items) == 0 {
			continue
		}

		if !opts.Expand {
			sb.WriteString(f.Path)
			sb.WriteString("\n")
			for _, item := range f.Items {
				sb.WriteString(formatItem(item))
				sb.WriteString("\n")
			}
			continue
		}

		for _, item := range f.Items {
			if item.Name != "" {
				fmt.Fprintf(&sb, "%s::%s [%d:%d]\n", f.Path, item.Name, item.LineStart, item.LineEnd)
			} else {
				fmt.Fprintf(&sb, "%s [%d:%d]\n", f.Path, item.LineStart, item.LineEnd)
			}
			sb.WriteString(truncate(formatItem(item), opts.MaxLines))
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatItem(item types.Item) string {
	width := len(strconv.Itoa(item.LineEnd))
	mappings := item.LineMappings
	if mappings == nil {
		for i, line := range strings.Split(strings.TrimSuffix(item.Content, "\n"), "\n") {
			mappings = append(mappings, types.LineMapping{Line: item.LineStart + i, Text: line})
		}
	}

	var sb strings.Builder
	for _, m := range mappings {
		fmt.Fprintf(&sb, "%*d | %s\n", width, m.Line, m.Text)
	}
	return sb.String()
}

func truncate(formatted string, maxLines int) string {
	if maxLines <= 0 {
		return formatted
	}
	lines := strings.Split(strings.TrimSuffix(formatted, "\n"), "\n")
	if len(lines) <= maxLines {
		return formatted
	}
	return strings.Join(lines[:maxLines], "\n") +
		fmt.Sprintf("\n  ... [truncated: %d more lines]\n", len(lines)-maxLines)
}

// ListSymbols writes one line per item under each file path.
func ListSymbols(w io.Writer, files []types.FileItems) error {
	var sb strings.Builder
	for _, f := range files {
		if len(f.Items) == 0 {
			continue
		}
		sb.WriteString(f.Path)
		sb.WriteString("\n")
		for _, item := range f.Items {
			name := item.Name
			if name == "" {
				name = "_"
			}
			fmt.Fprintf(&sb, "  %s %s L%d-%d\n", item.Kind.Keyword(), name, item.LineStart, item.LineEnd)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
