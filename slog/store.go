package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/harvestlabs/webharvest"
)

// Ensure LoggingKnowledgeStore implements webharvest.KnowledgeStore.
var _ webharvest.KnowledgeStore = (*LoggingKnowledgeStore)(nil)

// LoggingKnowledgeStore wraps a KnowledgeStore with operation logging.
type LoggingKnowledgeStore struct {
	next   webharvest.KnowledgeStore
	logger *slog.Logger
}

// NewLoggingKnowledgeStore creates a new LoggingKnowledgeStore.
func NewLoggingKnowledgeStore(next webharvest.KnowledgeStore, logger *slog.Logger) *LoggingKnowledgeStore {
	return &LoggingKnowledgeStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingKnowledgeStore) Save(ctx context.Context, docs []*webharvest.Document) (added int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("store save",
			"documents", len(docs),
			"added", added,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, docs)
}

// Search delegates to the wrapped store and logs the operation.
func (s *LoggingKnowledgeStore) Search(ctx context.Context, query string, opts webharvest.SearchOptions) (results []webharvest.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("store search",
			"query", query,
			"top_k", opts.TopK,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}

// ByDateRange delegates to the wrapped store and logs the operation.
func (s *LoggingKnowledgeStore) ByDateRange(startDate, endDate string, topK int) (results []webharvest.Metadata, err error) {
	defer func(begin time.Time) {
		s.logger.Info("store date scan",
			"start", startDate,
			"end", endDate,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ByDateRange(startDate, endDate, topK)
}

// Statistics delegates to the wrapped store.
func (s *LoggingKnowledgeStore) Statistics() (*webharvest.Statistics, error) {
	return s.next.Statistics()
}
