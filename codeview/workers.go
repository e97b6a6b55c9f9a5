package codeview

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/arjunmahishi/codeview/types"
)

// runWorkers processes files on a pool of jobs goroutines and returns the
// results in the order of files. Files whose processing fails are logged
// and left out.
func runWorkers[T any](
	ctx context.Context,
	files []types.FileJob,
	jobs int,
	process func(context.Context, types.FileJob) (T, error),
) []T {
	if len(files) == 0 {
		return nil
	}

	workerCount := jobs
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	type slot struct {
		value T
		ok    bool
	}
	slots := make([]slot, len(files))
	jobQueue := make(chan int, 128)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobQueue {
			if ctx.Err() != nil {
				continue
			}
			v, err := process(ctx, files[i])
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("file", files[i].DisplayPath).Msg("skipping file")
				continue
			}
			slots[i] = slot{value: v, ok: true}
		}
	}

	wg.Add(workerCount)
	for range workerCount {
		go worker()
	}

	go func() {
		for i := range files {
			jobQueue <- i
		}
		close(jobQueue)
	}()

	wg.Wait()

	results := make([]T, 0, len(files))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.value)
		}
	}
	return results
}
