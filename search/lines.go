package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

// ErrInvalidRange is returned when a line range cannot be parsed or falls
// outside the file.
var ErrInvalidRange = errors.New("invalid line range")

// LineRange is an extracted slice of a file.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`

	// Context lists the symbols enclosing the first line, outermost first.
	Context []string            `json:"context,omitempty"`
	Lines   []types.LineMapping `json:"-"`
}

// ParseRange parses "a-b" or "a" into a 1-indexed inclusive range.
func ParseRange(s string) (int, int, error) {
	from, to, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		to = from
	}
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q, expected START-END", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q, expected START-END", ErrInvalidRange, s)
	}
	if start < 1 {
		return 0, 0, fmt.Errorf("%w: line numbers are 1-indexed", ErrInvalidRange)
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: Inverted range %d-%d", ErrInvalidRange, start, end)
	}
	return start, end, nil
}

// Lines extracts lines start..end of the document. The end is clamped to
// the last line; a start past it is an error.
func Lines(doc *parser.Document, start, end int) (LineRange, error) {
	lines := SplitLines(string(doc.Source))
	if start > len(lines) {
		return LineRange{}, fmt.Errorf("%w: line %d is beyond end of file (%d lines)", ErrInvalidRange, start, len(lines))
	}
	if end > len(lines) {
		end = len(lines)
	}

	r := LineRange{
		Start:   start,
		End:     end,
		Context: EnclosingSymbols(doc, start-1),
	}
	for n := start; n <= end; n++ {
		r.Lines = append(r.Lines, types.LineMapping{Line: n, Text: lines[n-1]})
	}
	return r, nil
}
