// Package trafilatura implements the primary extraction strategy using
// go-trafilatura's generic content extractor.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Strategy implements webharvest.Strategy at compile time.
var _ webharvest.Strategy = (*Strategy)(nil)

// Strategy wraps go-trafilatura to produce a content draft with inline
// image markers.
type Strategy struct{}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

// Name identifies the strategy in Document.Source.
func (s *Strategy) Name() webharvest.Source {
	return webharvest.SourcePrimary
}

// Extract processes raw HTML and returns a content draft. The marked text
// produced by the selector-based region walk is preferred; when it comes
// back empty, trafilatura's own text extraction is used instead.
func (s *Strategy) Extract(rawHTML string, baseURL string) (*webharvest.Draft, error) {
	if rawHTML == "" {
		return nil, webharvest.Errorf(webharvest.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		ExcludeTables:  true,
	}
	if u, err := url.Parse(baseURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	marked, images, err := goquery.ExtractWithMarkers(rawHTML, baseURL)
	if err != nil {
		return nil, err
	}

	content := marked
	if content == "" {
		content = result.ContentText
	}

	draft := &webharvest.Draft{
		Title:   result.Metadata.Title,
		Content: content,
		Images:  images,
		Excerpt: result.Metadata.Description,
		Author:  result.Metadata.Author,
	}
	if !result.Metadata.Date.IsZero() {
		draft.Date = result.Metadata.Date.Format("2006-01-02")
	}

	if draft.Title == "" {
		draft.Title = titleFromHTML(rawHTML)
	}

	return draft, nil
}

// titleFromHTML extracts the document title tag as a last resort when
// trafilatura's metadata extraction finds none.
func titleFromHTML(rawHTML string) string {
	title, err := goquery.DocumentTitle(rawHTML)
	if err != nil {
		return ""
	}
	return title
}
