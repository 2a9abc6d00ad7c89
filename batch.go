package jdx

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/jdx/blobstore"
)

// ErrNoInputs is returned by MergeAll when names is empty.
var ErrNoInputs = errors.New("jdx: no inputs to merge")

// MergeAll loads the named blobs concurrently and merges them into one
// dataset in the order of names.
//
// Decoding runs on up to WithWorkers goroutines, further limited by the
// worker, memory and IO budgets of WithResourceController. Merging happens on
// the calling goroutine once every input has decoded, so the result does not
// depend on which load finishes first. The first failure cancels the
// remaining loads.
func MergeAll(ctx context.Context, store blobstore.Store, names []string, optFns ...Option) (*Dataset, error) {
	if len(names) == 0 {
		return nil, ErrNoInputs
	}
	o := newOptions(optFns)

	workers := o.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := o.logger.WithCount(len(names))
	logger.DebugContext(ctx, "loading inputs", "workers", workers)

	loaded := make([]*Dataset, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			d, err := loadOne(gctx, store, name, o)
			if err != nil {
				return err
			}
			loaded[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := loaded[0]
	for i := 1; i < len(loaded); i++ {
		stats, err := merged.AppendWithStats(loaded[i])
		o.metricsCollector.RecordMerge(stats, err)
		o.logger.LogMerge(ctx, names[i], stats, err)
		if err != nil {
			return nil, fmt.Errorf("merge %s: %w", names[i], err)
		}
		loaded[i] = nil
	}
	return merged, nil
}

// loadOne decodes one blob while holding a worker slot and a memory
// reservation sized by the encoded blob.
func loadOne(ctx context.Context, store blobstore.Store, name string, o options) (*Dataset, error) {
	rc := o.controller
	if err := rc.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseWorker()

	b, err := store.Open(ctx, name)
	if err != nil {
		err = fileError(ErrOpenFile, name, err)
		o.logger.LogRead(ctx, name, nil, 0, err)
		return nil, err
	}

	reserved := b.Size()
	if err := rc.AcquireMemory(ctx, reserved); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	defer rc.ReleaseMemory(reserved)

	d, err := readBlob(ctx, b, name, o)
	if cerr := b.Close(); cerr != nil && err == nil {
		return nil, fileError(ErrCloseFile, name, cerr)
	}
	return d, err
}
