package mock

import (
	"context"

	"github.com/harvestlabs/webharvest"
)

var _ webharvest.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore is a mock implementation of webharvest.KnowledgeStore.
type KnowledgeStore struct {
	SaveFn        func(ctx context.Context, docs []*webharvest.Document) (int, error)
	SearchFn      func(ctx context.Context, query string, opts webharvest.SearchOptions) ([]webharvest.SearchResult, error)
	ByDateRangeFn func(startDate, endDate string, topK int) ([]webharvest.Metadata, error)
	StatisticsFn  func() (*webharvest.Statistics, error)
}

func (s *KnowledgeStore) Save(ctx context.Context, docs []*webharvest.Document) (int, error) {
	return s.SaveFn(ctx, docs)
}

func (s *KnowledgeStore) Search(ctx context.Context, query string, opts webharvest.SearchOptions) ([]webharvest.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

func (s *KnowledgeStore) ByDateRange(startDate, endDate string, topK int) ([]webharvest.Metadata, error) {
	return s.ByDateRangeFn(startDate, endDate, topK)
}

func (s *KnowledgeStore) Statistics() (*webharvest.Statistics, error) {
	return s.StatisticsFn()
}
