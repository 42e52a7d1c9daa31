package webharvest

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may issue a plain HTTP GET or drive a headless browser
// for JavaScript-rendered pages; the pipeline does not care which.
type Fetcher interface {
	// Fetch returns the page HTML for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
