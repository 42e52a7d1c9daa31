// Package readability implements the fallback extraction strategy using
// go-readability's scoring heuristic, which is more robust than the
// primary extractor on heavily templated pages at the cost of noisier
// output.
package readability

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	readability "github.com/go-shiori/go-readability"
	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/goquery"
)

// Ensure Strategy implements webharvest.Strategy at compile time.
var _ webharvest.Strategy = (*Strategy)(nil)

// Strategy wraps go-readability to produce a content draft with inline
// image markers.
type Strategy struct {
	conv *converter.Converter
}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Name identifies the strategy in Document.Source.
func (s *Strategy) Name() webharvest.Source {
	return webharvest.SourceFallback
}

// Extract processes raw HTML and returns a content draft. The marked text
// produced by the selector-based region walk is preferred; when it comes
// back empty, readability's article HTML is converted to markdown text
// instead (markerless, since the region walk found no images to anchor).
func (s *Strategy) Extract(rawHTML string, baseURL string) (*webharvest.Draft, error) {
	if rawHTML == "" {
		return nil, webharvest.Errorf(webharvest.EINVALID, "empty HTML input")
	}

	pageURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, webharvest.Errorf(webharvest.EINVALID, "invalid base URL: %v", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	marked, images, err := goquery.ExtractWithMarkers(rawHTML, baseURL)
	if err != nil {
		return nil, err
	}

	content := marked
	if content == "" {
		content, err = s.contentText(article)
		if err != nil {
			return nil, err
		}
	}

	return &webharvest.Draft{
		Title:   article.Title,
		Content: content,
		Images:  images,
		Excerpt: article.Excerpt,
		Author:  article.Byline,
	}, nil
}

// contentText turns the article's cleaned HTML into markdown text,
// degrading to readability's plain text extraction when conversion fails.
func (s *Strategy) contentText(article readability.Article) (string, error) {
	if strings.TrimSpace(article.Content) == "" {
		return article.TextContent, nil
	}
	md, err := s.conv.ConvertString(article.Content)
	if err != nil {
		return article.TextContent, nil
	}
	return md, nil
}
