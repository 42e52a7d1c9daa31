package extract

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/bloom"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Progress reports per-URL progress during a batch run.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as URLs are processed.
type ProgressFunc func(Progress)

// Batch processes a list of URLs through a Pipeline. Per-URL failures are
// captured as data in the returned results, never aborting the run: a
// batch is a total function over its input list.
type Batch struct {
	pipeline    *Pipeline
	limiter     *rate.Limiter
	seen        *bloom.Filter
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithRateLimit paces fetches to at most rps requests per second with no
// bursting. Unset means no pacing.
func WithRateLimit(rps float64) BatchOption {
	return func(b *Batch) { b.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithSeenFilter skips URLs already recorded in the filter, and records
// processed URLs into it. Useful across repeated batch runs.
func WithSeenFilter(f *bloom.Filter) BatchOption {
	return func(b *Batch) { b.seen = f }
}

// WithConcurrency sets the number of URLs processed in parallel.
// Defaults to 1, matching the single-writer design of the store.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger. Defaults to slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) { b.logger = logger }
}

// NewBatch creates a Batch around the pipeline.
func NewBatch(pipeline *Pipeline, opts ...BatchOption) *Batch {
	b := &Batch{
		pipeline:    pipeline,
		concurrency: 1,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run processes every URL and returns one result per input URL, in input
// order. The context cancels outstanding work; URLs not reached before
// cancellation are recorded as failed with the context error.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) []webharvest.Result {
	results := make([]webharvest.Result, len(urls))
	total := len(urls)
	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, pageURL := range urls {
		results[i] = webharvest.Result{URL: pageURL}

		if b.seen != nil && b.seen.Test(pageURL) {
			results[i].Err = "skipped: URL already processed"
			b.report(progress, pageURL, int(completed.Add(1)), total, nil)
			continue
		}

		g.Go(func() error {
			results[i] = b.processOne(ctx, pageURL)

			var err error
			if results[i].Err != "" {
				err = webharvest.Errorf(webharvest.EINTERNAL, "%s", results[i].Err)
			}
			b.report(progress, pageURL, int(completed.Add(1)), total, err)
			return nil
		})
	}

	g.Wait()

	success := 0
	for _, r := range results {
		if r.Err == "" {
			success++
		}
	}
	b.logger.Info("batch finished", "total", total, "succeeded", success, "failed", total-success)
	return results
}

func (b *Batch) processOne(ctx context.Context, pageURL string) webharvest.Result {
	result := webharvest.Result{URL: pageURL}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			result.Err = err.Error()
			return result
		}
	}

	doc, err := b.pipeline.Extract(ctx, pageURL)
	if err != nil {
		result.Err = errString(err)
		return result
	}

	result.Document = doc
	if b.seen != nil {
		b.seen.Add(pageURL)
	}
	return result
}

func (b *Batch) report(progress ProgressFunc, url string, completed, total int, err error) {
	if progress == nil {
		return
	}
	progress(Progress{URL: url, Completed: completed, Total: total, Err: err})
}

// errString prefers the application error message over the full wrapped
// error chain when one is present.
func errString(err error) string {
	if webharvest.ErrorCode(err) != webharvest.EINTERNAL {
		return webharvest.ErrorMessage(err)
	}
	return err.Error()
}
