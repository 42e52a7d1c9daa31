package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// infoTimePattern matches the timestamp carried by the structural "info"
// region some news sites place under the headline (e.g. 2025-09-21 06:05).
var infoTimePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}`)

// datePatterns are date literals tried in order against the text of each
// candidate element. The first match wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}(?: \d{2}:\d{2}(?::\d{2})?)?`),
	regexp.MustCompile(`\d{4}/\d{2}/\d{2}`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`),
}

// timeSelectors are the generic publish-time locations tried after the
// structural marker, in priority order.
var timeSelectors = []string{
	".time",
	".pubtime",
	".release-time",
	"span.time",
	"time[datetime]",
	`meta[name="pubdate"]`,
	`meta[property="article:published_time"]`,
}

// ExtractPublishTime finds the publication timestamp of a page.
// It checks the site-specific "info" region first, then a prioritized
// list of time-like classes and meta tags, testing each candidate against
// the ordered date patterns. Returns the empty string when nothing
// matches; absence of a publish time is not an error.
func ExtractPublishTime(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	if info := doc.Find("div.info").First(); info.Length() > 0 {
		if m := infoTimePattern.FindString(info.Text()); m != "" {
			return m
		}
	}

	for _, selector := range timeSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}

		candidate := candidateText(sel)
		if candidate == "" {
			continue
		}
		for _, pattern := range datePatterns {
			if m := pattern.FindString(candidate); m != "" {
				return m
			}
		}
	}

	return ""
}

// candidateText returns the date-bearing text of a candidate element:
// the content attribute for meta tags, the datetime attribute for time
// elements when present, and the element text otherwise.
func candidateText(sel *goquery.Selection) string {
	if goquery.NodeName(sel) == "meta" {
		content, _ := sel.Attr("content")
		return content
	}
	if dt, ok := sel.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return strings.TrimSpace(sel.Text())
}
