package codeview

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"github.com/arjunmahishi/codeview/editor"
	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/types"
)

// EditResult is the outcome of Edit.
type EditResult struct {
	Results []types.EditResult
	Before  string
	After   string

	// Written is false for dry runs and for edits that changed nothing.
	Written bool
}

// Edit applies the descriptors to a file as one batch. The file is only
// written when every edit resolved and the result parses cleanly.
func Edit(ctx context.Context, opts EditOptions) (EditResult, error) {
	if opts.File == "" {
		return EditResult{}, errors.New("file is required")
	}

	info, err := os.Stat(opts.File)
	if err != nil {
		return EditResult{}, fmt.Errorf("path not found: %s", opts.File)
	}
	if info.IsDir() {
		return EditResult{}, fmt.Errorf("edits apply to files, not directories: %s", opts.File)
	}

	language, err := lang.Detect(opts.File)
	if err != nil {
		return EditResult{}, err
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return EditResult{}, fmt.Errorf("read file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return EditResult{}, err
	}

	before := string(data)
	after, results, err := editor.Batch(before, language, opts.Edits)
	if err != nil {
		return EditResult{}, err
	}

	logger := log.Ctx(ctx)
	for _, r := range results {
		logger.Debug().
			Str("symbol", r.Symbol).
			Str("action", r.Action).
			Int("line_start", r.LineStart).
			Int("line_end", r.LineEnd).
			Msg("resolved edit")
	}

	res := EditResult{Results: results, Before: before, After: after}
	if opts.DryRun || after == before {
		return res, nil
	}

	err = renameio.WriteFile(opts.File, []byte(after), info.Mode().Perm(), renameio.WithExistingPermissions())
	if err != nil {
		return EditResult{}, fmt.Errorf("write %s: %w", opts.File, err)
	}
	res.Written = true

	logger.Debug().Str("file", opts.File).Int("edits", len(results)).Msg("file updated")
	return res, nil
}
