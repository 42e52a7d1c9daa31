// Package feed provides an RSS/Atom implementation of
// webharvest.URLSource.
package feed

import (
	"context"

	"github.com/harvestlabs/webharvest"
	"github.com/mmcdole/gofeed"
)

// Ensure Source implements webharvest.URLSource at compile time.
var _ webharvest.URLSource = (*Source)(nil)

// Source discovers article URLs from RSS and Atom feeds.
type Source struct {
	parser *gofeed.Parser
}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{parser: gofeed.NewParser()}
}

// Discover fetches the feed and returns its item links in feed order,
// deduplicated.
func (s *Source) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	feed, err := s.parser.ParseURLWithContext(sourceURL, ctx)
	if err != nil {
		return nil, webharvest.Errorf(webharvest.EUNAVAILABLE, "parsing feed %s: %v", sourceURL, err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, webharvest.Errorf(webharvest.ENOTFOUND, "feed %s contains no items", sourceURL)
	}

	seen := make(map[string]bool)
	urls := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		urls = append(urls, item.Link)
	}
	if len(urls) == 0 {
		return nil, webharvest.Errorf(webharvest.ENOTFOUND, "no item links in feed %s", sourceURL)
	}
	return urls, nil
}
