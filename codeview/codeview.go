// Package codeview extracts structural views of source files, searches them
// and applies syntax-checked edits to them.
package codeview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/arjunmahishi/codeview/extract"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/scanner"
	"github.com/arjunmahishi/codeview/types"
)

// ErrNotAFile is returned when a file operation is given a directory.
var ErrNotAFile = errors.New("line ranges apply to files, not directories")

// target is a resolved input path: either one file or the files of a
// directory walk.
type target struct {
	files  []types.FileJob
	single bool
}

func resolve(ctx context.Context, path string, walk WalkOptions) (target, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return target{}, fmt.Errorf("path not found: %s", path)
	}

	if !info.IsDir() {
		job, err := scanner.New(scanner.Config{}).CollectSingle(path)
		if err != nil {
			return target{}, err
		}
		return target{files: []types.FileJob{job}, single: true}, nil
	}

	files, err := scanner.New(scanner.Config{
		Root:       path,
		Depth:      walk.Depth,
		Ext:        walk.Ext,
		IgnoreDirs: walk.IgnoreDirs,
		MaxBytes:   walk.MaxBytes,
	}).Collect()
	if err != nil {
		return target{}, err
	}
	for i := range files {
		files[i].DisplayPath = filepath.ToSlash(filepath.Join(path, files[i].DisplayPath))
	}
	log.Ctx(ctx).Debug().Str("root", path).Int("files", len(files)).Msg("collected files")
	return target{files: files}, nil
}

// View extracts items from a file or every supported file of a directory.
// Per-file failures inside a directory are logged and skipped; a single
// file's failure is returned.
func View(ctx context.Context, opts ViewOptions) ([]types.FileItems, error) {
	if opts.Walk.Jobs == 0 {
		opts.Walk.Jobs = runtime.NumCPU()
	}

	t, err := resolve(ctx, opts.Path, opts.Walk)
	if err != nil {
		return nil, err
	}

	process := func(ctx context.Context, job types.FileJob) (types.FileItems, error) {
		return viewFile(ctx, job, opts)
	}

	var results []types.FileItems
	switch {
	case t.single:
		fi, err := process(ctx, t.files[0])
		if err != nil {
			return nil, err
		}
		results = []types.FileItems{fi}
	case opts.Mode() == InterfaceMode:
		results = runWorkers(ctx, t.files, opts.Walk.Jobs, process)
	default:
		results = viewUntilFound(ctx, t.files, opts, process)
	}

	for i := range results {
		results[i].Items = opts.Filter.apply(results[i].Items, opts.Mode())
	}
	return results, nil
}

// viewUntilFound processes files in walk order and stops once every
// requested name has been seen.
func viewUntilFound(
	ctx context.Context,
	files []types.FileJob,
	opts ViewOptions,
	process func(context.Context, types.FileJob) (types.FileItems, error),
) []types.FileItems {
	remaining := make(map[string]bool)
	if opts.Mode() == SignaturesMode {
		remaining[opts.Signatures] = true
	} else {
		for _, s := range opts.Symbols {
			remaining[s] = true
		}
	}

	var results []types.FileItems
	for _, job := range files {
		if ctx.Err() != nil {
			break
		}
		fi, err := process(ctx, job)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("file", job.DisplayPath).Msg("skipping file")
			continue
		}
		for _, item := range fi.Items {
			delete(remaining, item.Name)
		}
		results = append(results, fi)
		if len(remaining) == 0 {
			log.Ctx(ctx).Debug().Str("file", job.DisplayPath).Msg("all symbols found")
			break
		}
	}
	return results
}

func viewFile(ctx context.Context, job types.FileJob, opts ViewOptions) (types.FileItems, error) {
	doc, err := parser.ParseFile(ctx, job.AbsPath)
	if err != nil {
		return types.FileItems{}, err
	}
	defer doc.Close()

	var items []types.Item
	switch opts.Mode() {
	case SignaturesMode:
		items, err = extract.Signatures(doc, opts.Signatures, opts.Keep)
	case ExpandMode:
		items, err = extract.Expand(doc, opts.Symbols)
	default:
		items, err = extract.Interface(doc)
	}
	if err != nil {
		return types.FileItems{}, fmt.Errorf("%s: %w", job.DisplayPath, err)
	}

	return types.FileItems{
		Path:  job.DisplayPath,
		Items: items,
		Lines: countLines(doc.Source),
		Bytes: len(doc.Source),
	}, nil
}

// apply drops the items the filter excludes. Standalone method items are
// only listed in the interface view when functions were asked for.
func (f Filter) apply(items []types.Item, mode ViewMode) []types.Item {
	out := items[:0]
	for _, item := range items {
		if f.keep(item, mode) {
			out = append(out, item)
		}
	}
	return out
}

func (f Filter) keep(item types.Item, mode ViewMode) bool {
	if f.NoTests && item.Kind == types.KindMod && item.Name == "tests" {
		return false
	}
	if f.Pub && !item.IsPublic() {
		return false
	}
	if f.Fns || f.Types {
		if !(f.Fns && item.Kind.IsFunction()) && !(f.Types && item.Kind.IsType()) {
			return false
		}
	}
	if mode == InterfaceMode && item.Kind == types.KindMethod && !f.Fns {
		return false
	}
	return true
}

func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := strings.Count(string(src), "\n")
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}
