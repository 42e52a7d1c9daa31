// Package goquery provides CSS-selector based HTML analysis: content
// region resolution, image-marker extraction and publish-time detection.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// regionSelectors is the fixed priority list for locating the main
// content region. Order matters; the first non-empty match wins.
var regionSelectors = []string{
	"article",
	".content",
	".article-content",
	".post-content",
	".entry-content",
	`[class*="content"]`,
	`[class*="article"]`,
	"main",
}

// ResolveRegion locates the most plausible main content region of the
// document. It tries the selector priority list in order and returns the
// first match that carries text or images, degrading to the document body
// and finally to the whole document. It never fails: absence of a match
// widens the scope instead.
func ResolveRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range regionSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if strings.TrimSpace(sel.Text()) != "" || sel.Find("img").Length() > 0 {
			return sel
		}
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
