package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/harvestlabs/webharvest"
)

// DocumentTitle returns the trimmed text of the document's title tag.
func DocumentTitle(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", webharvest.Errorf(webharvest.EINVALID, "failed to parse HTML: %v", err)
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
