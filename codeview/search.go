package codeview

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/search"
	"github.com/arjunmahishi/codeview/types"
)

// DefaultMaxResults caps directory searches when no limit is given.
const DefaultMaxResults = 100

// Search matches a regular expression line by line over a file or
// directory. Files without matches are left out; the result is capped at
// MaxResults matches and the remainder counted in the overflow.
func Search(ctx context.Context, opts SearchOptions) ([]search.FileMatches, search.Overflow, error) {
	if opts.Pattern == "" {
		return nil, search.Overflow{}, errors.New("pattern is required")
	}
	if opts.Walk.Jobs == 0 {
		opts.Walk.Jobs = runtime.NumCPU()
	}

	re, err := search.Compile(opts.Pattern, opts.IgnoreCase)
	if err != nil {
		return nil, search.Overflow{}, err
	}

	t, err := resolve(ctx, opts.Path, opts.Walk)
	if err != nil {
		return nil, search.Overflow{}, err
	}

	process := func(ctx context.Context, job types.FileJob) (search.FileMatches, error) {
		doc, err := parser.ParseFile(ctx, job.AbsPath)
		if err != nil {
			return search.FileMatches{}, err
		}
		defer doc.Close()
		return search.FileMatches{Path: job.DisplayPath, Matches: search.File(doc, re)}, nil
	}

	var all []search.FileMatches
	if t.single {
		fm, err := process(ctx, t.files[0])
		if err != nil {
			return nil, search.Overflow{}, err
		}
		all = []search.FileMatches{fm}
	} else {
		all = runWorkers(ctx, t.files, opts.Walk.Jobs, process)
	}

	results := make([]search.FileMatches, 0, len(all))
	for _, fm := range all {
		if len(fm.Matches) > 0 {
			results = append(results, fm)
		}
	}

	limit := 0
	switch {
	case opts.MaxResults != nil:
		limit = *opts.MaxResults
	case !t.single:
		limit = DefaultMaxResults
	}

	results, overflow := search.Cap(results, limit)
	return results, overflow, nil
}

// Lines extracts an inclusive 1-indexed line range such as "10-20" or "7"
// from a file, together with the symbols enclosing its first line.
func Lines(ctx context.Context, path, lineRange string) (search.LineRange, error) {
	info, err := os.Stat(path)
	if err != nil {
		return search.LineRange{}, errors.New("path not found: " + path)
	}
	if info.IsDir() {
		return search.LineRange{}, ErrNotAFile
	}

	start, end, err := search.ParseRange(lineRange)
	if err != nil {
		return search.LineRange{}, err
	}

	doc, err := parser.ParseFile(ctx, path)
	if err != nil {
		return search.LineRange{}, err
	}
	defer doc.Close()

	return search.Lines(doc, start, end)
}
