package scrape

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkerCount is a polite ceiling against the remote site.
const DefaultWorkerCount = 10

// Runner executes fetch calls over a fixed-size worker pool. The worker
// functions recover from their own failures and signal them with empty
// results, so the pool only bounds concurrency and collects what survived.
// Result ordering is not guaranteed.
type Runner struct {
	workers int
}

func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Runner{workers: workers}
}

// CollectGroups runs fn for every page number and flattens the returned
// row-group lists into one collection.
func (r *Runner) CollectGroups(ctx context.Context, pages []int, fn func(context.Context, int) []RowGroup) []RowGroup {
	var mu sync.Mutex
	var all []RowGroup

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, page := range pages {
		g.Go(func() error {
			groups := fn(ctx, page)
			if len(groups) == 0 {
				return nil
			}

			mu.Lock()
			all = append(all, groups...)
			mu.Unlock()
			return nil
		})
	}

	// workers never return errors; failures were logged and dropped inside fn
	_ = g.Wait()

	return all
}

// CollectRecords runs fn for every seed record and keeps the non-empty
// results.
func (r *Runner) CollectRecords(ctx context.Context, seeds []Record, fn func(context.Context, Record) Record) []Record {
	var mu sync.Mutex
	var all []Record

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, seed := range seeds {
		g.Go(func() error {
			record := fn(ctx, seed)
			if record.IsZero() {
				return nil
			}

			mu.Lock()
			all = append(all, record)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	return all
}
