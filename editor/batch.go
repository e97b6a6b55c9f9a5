package editor

import (
	"fmt"
	"sort"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

// Batch applies several edits atomically. All descriptors are resolved
// against the original source, so the outcome does not depend on their
// order. The result is validated once; on any error the source is left
// untouched and no partial output is returned.
//
// Results are reported in descriptor order with line numbers taken from the
// original source.
func Batch(source string, l lang.Language, edits []types.EditDescriptor) (string, []types.EditResult, error) {
	if len(edits) == 0 {
		return source, nil, nil
	}

	for _, e := range edits {
		switch e.Action {
		case types.ActionReplace, types.ActionReplaceBody:
			if e.Content == "" {
				return "", nil, fmt.Errorf("%w for %s of symbol %q", ErrMissingContent, e.Action, e.Symbol)
			}
		case types.ActionDelete:
		default:
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Action)
		}
	}

	doc, err := parser.ParseString(source, l)
	if err != nil {
		return "", nil, err
	}
	defer doc.Close()

	resolved := make([]resolvedEdit, 0, len(edits))
	results := make([]types.EditResult, 0, len(edits))
	for _, e := range edits {
		r, err := resolve(doc, e)
		if err != nil {
			return "", nil, err
		}
		resolved = append(resolved, r)
		results = append(results, r.result)
	}

	out, err := apply(source, resolved)
	if err != nil {
		return "", nil, err
	}
	if err := Validate(out, l); err != nil {
		return "", nil, err
	}

	return out, results, nil
}

// apply splices edits from the end of the source backwards so earlier
// offsets stay valid. Overlapping ranges are rejected before anything is
// spliced.
func apply(source string, edits []resolvedEdit) (string, error) {
	sorted := make([]resolvedEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start > sorted[j].start
	})

	for i := 0; i+1 < len(sorted); i++ {
		later, earlier := sorted[i], sorted[i+1]
		if later.start < earlier.end {
			return "", fmt.Errorf("%w: %s and %s", ErrOverlappingEdits, earlier.result.Symbol, later.result.Symbol)
		}
	}

	out := source
	for _, e := range sorted {
		out = splice(out, e)
	}
	return out, nil
}
