package output

import (
	"fmt"
	"io"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/arjunmahishi/codeview/types"
)

// PlainEditResults writes one line per performed edit.
func PlainEditResults(w io.Writer, path string, results []types.EditResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s %s in %s [%d:%d]\n", r.Action, r.Symbol, path, r.LineStart, r.LineEnd); err != nil {
			return err
		}
	}
	return nil
}

// Diff writes a unified diff between before and after.
func Diff(w io.Writer, path, before, after string) error {
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	unified := gotextdiff.ToUnified("a/"+path, "b/"+path, before, edits)
	_, err := fmt.Fprint(w, unified)
	return err
}
