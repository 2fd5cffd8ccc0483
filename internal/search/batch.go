// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pdiddy/skyquery/internal/metrics"
	"github.com/pdiddy/skyquery/internal/query"
	"github.com/pdiddy/skyquery/pkg/types"
)

// DefaultBatchConcurrency is the worker count for batch searches.
const DefaultBatchConcurrency = 3

// BatchItem is the outcome of one line of a batch search.
type BatchItem struct {
	Index   int                      `json:"index" yaml:"index"`
	Query   string                   `json:"query" yaml:"query"`
	Intent  types.Intent             `json:"intent" yaml:"intent"`
	Results []types.SearchResultItem `json:"results" yaml:"results"`
	Errors  []string                 `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// batch searches each line on a fixed pool of workers that claim lines from
// a shared counter. Per-line results are kept by index and merged in input
// order, so the output does not depend on completion order.
func (s *Searcher) batch(ctx context.Context, lines []string, opts Options, log *zap.Logger) ([]types.SearchResultItem, []BatchItem, []string) {
	items := make([]BatchItem, len(lines))
	workers := min(opts.BatchConcurrency, len(lines))

	var next atomic.Int64
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(lines) {
					return
				}
				items[i] = s.batchItem(ctx, i, lines[i], opts, log)
			}
		}()
	}
	wg.Wait()

	var all []types.SearchResultItem
	var errs []string
	for _, it := range items {
		all = append(all, it.Results...)
		for _, e := range it.Errors {
			errs = append(errs, fmt.Sprintf("line %d: %s", it.Index+1, e))
		}
	}
	merged := Merge(all, nil, MergeOptions{
		MaxResults:        opts.MaxResults,
		DedupRadiusArcsec: opts.DedupRadiusArcsec,
	})
	log.Debug("batch finished", zap.Int("lines", len(lines)), zap.Int("workers", workers))
	return merged, items, errs
}

// batchItem runs one line. A panic in the line's search is recorded on the
// item so the rest of the batch still completes.
func (s *Searcher) batchItem(ctx context.Context, i int, line string, opts Options, log *zap.Logger) (item BatchItem) {
	q := query.Parse(line)
	item = BatchItem{Index: i, Query: line, Intent: q.Intent}
	defer func() {
		if r := recover(); r != nil {
			item.Errors = append(item.Errors, fmt.Sprintf("search failed: %v", r))
			log.Error("batch line panicked", zap.Int("line", i+1), zap.Any("panic", r))
		}
		metrics.IncBatchItem(len(item.Errors) == 0)
	}()

	item.Results, item.Errors = s.single(ctx, q, opts, log.With(zap.Int("line", i+1)))
	if item.Results == nil {
		item.Results = []types.SearchResultItem{}
	}
	return item
}
