package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/harvestlabs/webharvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestResolveRegion(t *testing.T) {
	t.Parallel()

	t.Run("prefers article over later selectors", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<main>navigation text</main>
<article>article body</article>
</body></html>`)

		region := goquery.ResolveRegion(doc)
		assert.Equal(t, "article body", strings.TrimSpace(region.Text()))
	})

	t.Run("matches content class", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<div class="sidebar">links</div>
<div class="content">the story</div>
</body></html>`)

		region := goquery.ResolveRegion(doc)
		assert.Equal(t, "the story", strings.TrimSpace(region.Text()))
	})

	t.Run("matches partial class name", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<div class="main-article-wrap">wrapped body</div>
</body></html>`)

		region := goquery.ResolveRegion(doc)
		assert.Equal(t, "wrapped body", strings.TrimSpace(region.Text()))
	})

	t.Run("skips empty matches", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<article></article>
<main>actual text</main>
</body></html>`)

		region := goquery.ResolveRegion(doc)
		assert.Equal(t, "actual text", strings.TrimSpace(region.Text()))
	})

	t.Run("image-only region is not empty", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<article><img src="/a.jpg"></article>
<main>fallback</main>
</body></html>`)

		region := goquery.ResolveRegion(doc)
		assert.Equal(t, 1, region.Find("img").Length())
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span>loose text</span></body></html>`)

		region := goquery.ResolveRegion(doc)
		assert.Equal(t, "loose text", strings.TrimSpace(region.Text()))
	})
}
