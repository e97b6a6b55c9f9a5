// Package output renders extraction, search and edit results as plain text
// or JSON.
package output

import (
	"encoding/json"
	"io"

	"github.com/arjunmahishi/codeview/search"
	"github.com/arjunmahishi/codeview/types"
)

// JSONWriter encodes results as JSON documents, one per call. Documents are
// indented with two spaces unless the writer is compact. HTML characters are
// never escaped so source text such as `a < b` is written as is.
type JSONWriter struct {
	out     io.Writer
	compact bool
}

// NewJSON returns a JSONWriter on out.
func NewJSON(out io.Writer, compact bool) *JSONWriter {
	return &JSONWriter{out: out, compact: compact}
}

func (w *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetEscapeHTML(false)
	if !w.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Files writes the items of every file as {"files": [...]}. Files and item
// lists are never null.
func (w *JSONWriter) Files(files []types.FileItems) error {
	if files == nil {
		files = []types.FileItems{}
	}
	for i := range files {
		if files[i].Items == nil {
			files[i].Items = []types.Item{}
		}
	}
	return w.encode(struct {
		Files []types.FileItems `json:"files"`
	}{files})
}

func (w *JSONWriter) Stats(s Stats) error {
	return w.encode(s)
}

// Search writes the matching files with the overflow left by the cap.
func (w *JSONWriter) Search(results []search.FileMatches, overflow search.Overflow) error {
	if results == nil {
		results = []search.FileMatches{}
	}
	return w.encode(struct {
		Files    []search.FileMatches `json:"files"`
		Overflow search.Overflow      `json:"overflow"`
	}{results, overflow})
}

// LineRange writes the range with its enclosing symbols and a
// {"line", "text"} entry per line.
func (w *JSONWriter) LineRange(r search.LineRange) error {
	type line struct {
		Line int    `json:"line"`
		Text string `json:"text"`
	}
	lines := make([]line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, line{l.Line, l.Text})
	}
	return w.encode(struct {
		search.LineRange
		Lines []line `json:"lines"`
	}{r, lines})
}

// EditResults writes a single result as an object and several as an array.
func (w *JSONWriter) EditResults(results []types.EditResult) error {
	if len(results) == 1 {
		return w.encode(results[0])
	}
	if results == nil {
		results = []types.EditResult{}
	}
	return w.encode(results)
}

// Error writes err as {"error": "..."}.
func (w *JSONWriter) Error(err error) error {
	return w.encode(map[string]string{"error": err.Error()})
}
