package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/harvestlabs/webharvest"
	"golang.org/x/net/html"
)

// srcAttrs are tried in order when resolving an image source. Lazy-loaded
// images often carry their real source in a data attribute.
var srcAttrs = []string{"src", "data-src", "data-original"}

// blockTags delimit paragraphs during serialization.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dd": true, "dt": true, "figure": true,
	"figcaption": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

// skipTags never contribute text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"iframe": true, "svg": true,
}

// ExtractWithMarkers walks the main content region of the HTML document,
// replaces each image that has a resolvable source with an inline
// IMAGE_PLACEHOLDER_<n> marker and returns the serialized text together
// with the ordered image records. Images without any source attribute
// contribute neither a marker nor a record. The parsed document is not
// modified.
//
// Serialization preserves paragraph structure: block boundaries become a
// blank line, whitespace within a block collapses to a single space, and
// each marker stands as its own paragraph.
func ExtractWithMarkers(rawHTML string, baseURL string) (string, []webharvest.Image, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", nil, webharvest.Errorf(webharvest.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", nil, webharvest.Errorf(webharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	region := ResolveRegion(doc)

	w := &regionWalker{base: base}
	for _, node := range region.Nodes {
		w.walk(node)
	}
	w.flush()

	return strings.Join(w.paragraphs, "\n\n"), w.images, nil
}

// regionWalker serializes a content subtree into paragraphs, collecting
// image records along the way.
type regionWalker struct {
	base       *url.URL
	paragraphs []string
	current    strings.Builder
	images     []webharvest.Image
}

func (w *regionWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
		switch n.Data {
		case "img":
			w.image(n)
			return
		case "br":
			w.flush()
			return
		}
		block := blockTags[n.Data]
		if block {
			w.flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		if block {
			w.flush()
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// text appends a text run to the current paragraph, collapsing
// whitespace runs to single spaces.
func (w *regionWalker) text(s string) {
	for _, field := range strings.Fields(s) {
		if w.current.Len() > 0 {
			w.current.WriteByte(' ')
		}
		w.current.WriteString(field)
	}
}

// image resolves the element's source and, when resolvable, records the
// image and emits its marker as a standalone paragraph.
func (w *regionWalker) image(n *html.Node) {
	src := imageSource(n)
	if src == "" {
		return
	}
	ref, err := url.Parse(src)
	if err != nil {
		return
	}

	position := len(w.images)
	w.images = append(w.images, webharvest.Image{
		URL:      w.base.ResolveReference(ref).String(),
		Alt:      attr(n, "alt"),
		Width:    attr(n, "width"),
		Height:   attr(n, "height"),
		Position: position,
		ID:       webharvest.ImageID(position),
	})

	w.flush()
	w.paragraphs = append(w.paragraphs, webharvest.ImageMarker(position))
}

// flush closes the current paragraph if it has content.
func (w *regionWalker) flush() {
	if s := strings.TrimSpace(w.current.String()); s != "" {
		w.paragraphs = append(w.paragraphs, s)
	}
	w.current.Reset()
}

func imageSource(n *html.Node) string {
	for _, name := range srcAttrs {
		if v := strings.TrimSpace(attr(n, name)); v != "" {
			return v
		}
	}
	return ""
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
