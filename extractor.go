package webharvest

// Draft holds the raw output of a single extraction strategy, before
// normalization and metric attachment.
type Draft struct {
	Title string

	// Content is plain text with IMAGE_PLACEHOLDER_<n> markers.
	Content string

	// Images co-indexed with the markers in Content.
	Images []Image

	// Optional metadata as reported by the strategy.
	Excerpt string
	Author  string
	Date    string
}

// Strategy extracts article content from raw HTML.
// Implementations return an error when they cannot produce a usable
// draft; the pipeline decides whether to fall back to another strategy.
type Strategy interface {
	// Name identifies the strategy in Document.Source.
	Name() Source

	// Extract processes raw HTML and returns a content draft.
	// baseURL is used to resolve relative image URLs.
	Extract(html string, baseURL string) (*Draft, error)
}
