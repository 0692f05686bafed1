package ingest

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds parallel file reads so a long argument list does
// not exhaust file descriptors.
const maxConcurrentLoads = 8

// ErrNoFiles is returned when LoadAll is called without any paths.
var ErrNoFiles = errors.New("no dataset files given")

// LoadAll loads every file concurrently and merges the results in argument
// order. The engine consuming the merged dataset stays single-threaded; the
// concurrency here is confined to host-side file loading.
func LoadAll(ctx context.Context, paths []string) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	results := make([]*Dataset, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, path := range paths {
		g.Go(func() error {
			ds, err := Load(gctx, path)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := results[0]
	for _, ds := range results[1:] {
		merged.Merge(ds)
	}
	return merged, nil
}
