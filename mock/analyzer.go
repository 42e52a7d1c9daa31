package mock

import (
	"context"

	"github.com/harvestlabs/webharvest"
)

var _ webharvest.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of webharvest.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, doc *webharvest.Document) (*webharvest.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, doc *webharvest.Document) (*webharvest.Analysis, error) {
	return a.AnalyzeFn(ctx, doc)
}
