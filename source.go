package webharvest

import "context"

// URLSource discovers article URLs for batch extraction.
// Implementations hide sitemap vs feed discovery.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}
