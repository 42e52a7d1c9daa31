package mock

import (
	"context"

	"github.com/harvestlabs/webharvest"
)

var _ webharvest.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of webharvest.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL)
}
