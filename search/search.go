// Package search finds regular expression matches in source files and
// reports each one with the chain of named symbols enclosing it.
package search

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/parser"
)

// Match is one matching line.
type Match struct {
	// Line is 1-indexed.
	Line int    `json:"line"`
	Text string `json:"text"`

	// SymbolPath lists the enclosing symbols, outermost first.
	SymbolPath []string `json:"symbol_path"`
}

// FileMatches groups the matches of one file.
type FileMatches struct {
	Path    string  `json:"path"`
	Matches []Match `json:"matches"`
}

// Overflow describes matches dropped by a result cap.
type Overflow struct {
	Matches int `json:"matches"`
	Files   int `json:"files"`
}

// Compile builds the search expression, optionally case-insensitive.
func Compile(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// File matches re against every line of the document.
func File(doc *parser.Document, re *regexp.Regexp) []Match {
	var out []Match
	for i, line := range SplitLines(string(doc.Source)) {
		if !re.MatchString(line) {
			continue
		}
		out = append(out, Match{
			Line:       i + 1,
			Text:       line,
			SymbolPath: EnclosingSymbols(doc, i),
		})
	}
	return out
}

// EnclosingSymbols returns the names of the symbols spanning the 0-indexed
// row, outermost first.
func EnclosingSymbols(doc *parser.Document, row int) []string {
	var names []string
	collectEnclosing(doc, doc.Root(), uint32(row), &names)
	return names
}

func collectEnclosing(doc *parser.Document, node *sitter.Node, row uint32, names *[]string) {
	if row < node.StartPoint().Row || row > node.EndPoint().Row {
		return
	}
	if doc.Spec.EnclosingName != nil {
		if name, ok := doc.Spec.EnclosingName(node, doc.Source); ok {
			*names = append(*names, name)
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectEnclosing(doc, node.Child(i), row, names)
	}
}

// Cap keeps at most limit matches across results, in order. Files whose
// matches were all dropped are counted in the overflow.
func Cap(results []FileMatches, limit int) ([]FileMatches, Overflow) {
	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	if limit <= 0 || total <= limit {
		return results, Overflow{}
	}

	var (
		kept    []FileMatches
		count   int
		dropped int
	)
	for _, r := range results {
		if count >= limit {
			dropped++
			continue
		}
		if remaining := limit - count; len(r.Matches) > remaining {
			r.Matches = r.Matches[:remaining]
		}
		count += len(r.Matches)
		kept = append(kept, r)
	}
	return kept, Overflow{Matches: total - limit, Files: dropped}
}

// GroupKey joins a symbol path for display.
func GroupKey(path []string) string {
	if len(path) == 0 {
		return "(top-level)"
	}
	return strings.Join(path, " > ")
}

// SplitLines splits source into lines without their terminators. A final
// newline does not start another line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
