package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/maelle/smartcv/internal/llm"
)

// batchConcurrency bounds how many documents are extracted at once.
const batchConcurrency = 4

// BatchItem is the outcome for one input of a batch extraction.
type BatchItem struct {
	Path   string
	Result *ExtractResult
	Err    error
}

// ExtractBatch extracts every path with bounded concurrency, sharing one
// model client across the batch. Items come back in input order; a failing
// document fails its own item and nothing else.
func ExtractBatch(ctx context.Context, paths []string, opts ExtractOptions) []BatchItem {
	items := make([]BatchItem, len(paths))
	if len(paths) == 0 {
		return items
	}

	if opts.Client == nil {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			err = fmt.Errorf("failed to create model client: %w", err)
			for i, path := range paths {
				items[i] = BatchItem{Path: path, Err: err}
			}
			return items
		}
		defer func() { _ = client.Close() }()
		opts.Client = client
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			itemOpts := opts
			itemOpts.Text = ""
			itemOpts.URL = ""
			itemOpts.Path = path
			// Per-item boxes would interleave across goroutines; the caller
			// reports after Wait.
			itemOpts.Verbose = false
			result, err := ExtractResume(ctx, itemOpts)
			items[i] = BatchItem{Path: path, Result: result, Err: err}
			return nil
		})
	}
	// Every goroutine returns nil; errors live on the items.
	_ = g.Wait()

	return items
}
