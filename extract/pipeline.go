// Package extract orchestrates the content extraction pipeline: fetch,
// strategy attempts with fallback, whitespace normalization, publish-time
// detection and metric attachment.
package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/goquery"
)

// DefaultMinContentLength is the acceptance threshold for the primary
// strategy, in runes. The primary extractor sometimes returns a non-empty
// but near-vacuous result on heavily templated pages; anything shorter
// than this triggers the fallback strategy.
const DefaultMinContentLength = 100

// Pipeline runs the extraction state machine for a single URL.
type Pipeline struct {
	fetcher  webharvest.Fetcher
	primary  webharvest.Strategy
	fallback webharvest.Strategy

	minContentLength int
	logger           *slog.Logger
	now              func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMinContentLength overrides the primary-strategy acceptance
// threshold. Defaults to DefaultMinContentLength.
func WithMinContentLength(n int) Option {
	return func(p *Pipeline) { p.minContentLength = n }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a Pipeline with the given fetch delegate and
// extraction strategies.
func NewPipeline(fetcher webharvest.Fetcher, primary, fallback webharvest.Strategy, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:          fetcher,
		primary:          primary,
		fallback:         fallback,
		minContentLength: DefaultMinContentLength,
		logger:           slog.Default(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract fetches the URL and runs the extraction state machine.
// The primary strategy's result is accepted when it yields at least the
// minimum content length; otherwise the fallback strategy runs on the
// same HTML. Failures are returned as errors; batch callers convert them
// to per-URL results.
func (p *Pipeline) Extract(ctx context.Context, pageURL string) (*webharvest.Document, error) {
	begin := p.now()

	html, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.logger.Warn("fetch failed", "url", pageURL, "error", err)
		return nil, err
	}

	draft, source, err := p.applyStrategies(html, pageURL)
	if err != nil {
		p.logger.Error("extraction failed", "url", pageURL, "error", err)
		return nil, err
	}

	content := Normalize(draft.Content)

	publishTime := goquery.ExtractPublishTime(html)
	if publishTime == "" {
		publishTime = draft.Date
	}

	doc := &webharvest.Document{
		ID:             uuid.New().String(),
		URL:            pageURL,
		Title:          draft.Title,
		Content:        content,
		Images:         draft.Images,
		Source:         source,
		PublishTime:    publishTime,
		ExtractionTime: p.now().Format("2006-01-02 15:04:05"),
		ContentLength:  utf8.RuneCountInString(content),
		ImageCount:     len(draft.Images),
		ContentHash:    webharvest.HashContent(content),
		Author:         draft.Author,
		Excerpt:        draft.Excerpt,
	}

	p.logger.Info("extracted",
		"url", pageURL,
		"source", source,
		"content_length", doc.ContentLength,
		"images", doc.ImageCount,
		"duration", p.now().Sub(begin),
	)
	return doc, nil
}

// applyStrategies runs the primary strategy and, when its output is
// missing or too short, the fallback strategy on the same HTML.
func (p *Pipeline) applyStrategies(html, pageURL string) (*webharvest.Draft, webharvest.Source, error) {
	draft, err := p.primary.Extract(html, pageURL)
	if err == nil && draft != nil && utf8.RuneCountInString(draft.Content) >= p.minContentLength {
		return draft, p.primary.Name(), nil
	}
	switch {
	case err != nil:
		p.logger.Debug("primary strategy failed", "url", pageURL, "error", err)
	case draft == nil:
		p.logger.Debug("primary strategy returned no draft", "url", pageURL)
	default:
		p.logger.Debug("primary strategy content too short", "url", pageURL,
			"length", utf8.RuneCountInString(draft.Content))
	}

	draft, err = p.fallback.Extract(html, pageURL)
	if err != nil || draft == nil {
		return nil, "", webharvest.Errorf(webharvest.EUNAVAILABLE, "all extraction strategies failed")
	}
	return draft, p.fallback.Name(), nil
}

var (
	horizontalWS = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineWS    = regexp.MustCompile(` ?\n ?`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses whitespace: horizontal runs become a single space,
// runs of blank lines become exactly one blank line, and the ends are
// trimmed. Normalize is idempotent.
func Normalize(s string) string {
	s = horizontalWS.ReplaceAllString(s, " ")
	s = newlineWS.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
