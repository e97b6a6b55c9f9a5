package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arjunmahishi/codeview/types"
)

// FileStats summarizes one file.
type FileStats struct {
	Path  string         `json:"path"`
	Lines int            `json:"lines"`
	Bytes int            `json:"bytes"`
	Items int            `json:"items"`
	Kinds map[string]int `json:"kinds"`
}

// Stats summarizes a whole run.
type Stats struct {
	Files   int            `json:"files"`
	Lines   int            `json:"lines"`
	Bytes   int            `json:"bytes"`
	Items   int            `json:"items"`
	Kinds   map[string]int `json:"kinds"`
	PerFile []FileStats    `json:"per_file"`
}

// GatherStats counts lines, bytes, items and item kinds. Files without
// items are not counted unless they are the only file.
func GatherStats(files []types.FileItems) Stats {
	s := Stats{Kinds: map[string]int{}, PerFile: []FileStats{}}
	for _, f := range files {
		fs := FileStats{
			Path:  f.Path,
			Lines: f.Lines,
			Bytes: f.Bytes,
			Items: len(f.Items),
			Kinds: map[string]int{},
		}
		for _, item := range f.Items {
			fs.Kinds[string(item.Kind)]++
			s.Kinds[string(item.Kind)]++
		}
		s.Lines += f.Lines
		s.Bytes += f.Bytes
		s.Items += fs.Items
		if fs.Items > 0 || len(files) == 1 {
			s.Files++
		}
		s.PerFile = append(s.PerFile, fs)
	}
	return s
}

// PlainStats writes the totals, the kind histogram and, for several files,
// one line per file with items.
func PlainStats(w io.Writer, s Stats) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "files: %d  lines: %d  bytes: %d  items: %d\n", s.Files, s.Lines, s.Bytes, s.Items)

	if len(s.Kinds) > 0 {
		parts := make([]string, 0, len(s.Kinds))
		for _, k := range sortedKeys(s.Kinds) {
			parts = append(parts, fmt.Sprintf("%s: %d", k, s.Kinds[k]))
		}
		fmt.Fprintf(&sb, "  %s\n", strings.Join(parts, "  "))
	}

	if len(s.PerFile) > 1 {
		sb.WriteString("\n")
		for _, f := range s.PerFile {
			if f.Items == 0 {
				continue
			}
			parts := make([]string, 0, len(f.Kinds))
			for _, k := range sortedKeys(f.Kinds) {
				parts = append(parts, fmt.Sprintf("%d %s", f.Kinds[k], k))
			}
			fmt.Fprintf(&sb, "  %s - %d lines, %d bytes, %d items (%s)\n",
				f.Path, f.Lines, f.Bytes, f.Items, strings.Join(parts, ", "))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
