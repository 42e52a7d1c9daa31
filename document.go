package webharvest

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Source identifies which extraction strategy produced a document.
type Source string

// Source values for Document.Source.
const (
	SourcePrimary  Source = "trafilatura"
	SourceFallback Source = "readability"
)

// markerPattern matches positional image markers embedded in content.
var markerPattern = regexp.MustCompile(`IMAGE_PLACEHOLDER_(\d+)`)

// ImageMarker returns the inline marker token for the image at the given
// position. The token is a committed wire contract: downstream renderers
// scan content for it to reinsert images at the correct position.
func ImageMarker(position int) string {
	return fmt.Sprintf("IMAGE_PLACEHOLDER_%d", position)
}

// ImageID returns the identifier paired with the marker at the given
// position.
func ImageID(position int) string {
	return fmt.Sprintf("img_%d", position)
}

// MarkerPositions returns the positions of all image markers found in
// content, in order of appearance.
func MarkerPositions(content string) []int {
	matches := markerPattern.FindAllStringSubmatch(content, -1)
	positions := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		positions = append(positions, n)
	}
	return positions
}

// HashContent computes the xxHash of content as a 16-character hex string.
// The same hash identifies a document's content in the archive and in the
// extraction metrics.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// Image represents an inline image extracted from a content region.
type Image struct {
	// Absolute URL, resolved against the page's base URL.
	URL string `json:"url"`

	// Alternative text, may be empty.
	Alt string `json:"alt"`

	// Declared dimensions as found in the source attributes, unvalidated.
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`

	// Zero-based order of appearance within the content region.
	// Matches the index of the IMAGE_PLACEHOLDER_<n> marker in content.
	Position int `json:"position"`

	// Identifier of the form img_<position>.
	ID string `json:"id"`
}

// Document represents an extracted article page.
type Document struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`

	// Normalized text with IMAGE_PLACEHOLDER_<n> markers where images
	// occurred. Markers and Images are co-indexed.
	Content string  `json:"content"`
	Images  []Image `json:"images"`

	// Strategy that produced the result.
	Source Source `json:"source"`

	// Best-effort original-language publish date string. Format is not
	// normalized at this layer; see ParseDate.
	PublishTime string `json:"publish_time,omitempty"`

	// Wall-clock timestamp of extraction, YYYY-MM-DD HH:MM:SS.
	ExtractionTime string `json:"extraction_time"`

	// Derived metrics, set at emission time. ContentLength counts runes.
	ContentLength int `json:"content_length"`
	ImageCount    int `json:"image_count"`

	// xxHash of Content, for re-crawl deduplication.
	ContentHash string `json:"content_hash,omitempty"`

	// Author and Excerpt as reported by the extraction strategy.
	Author  string `json:"author,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`

	// Optional channel/module tags attached by batch callers.
	Channel     string `json:"channel,omitempty"`
	ChannelName string `json:"channel_name,omitempty"`
	Module      string `json:"module,omitempty"`
	ModuleName  string `json:"module_name,omitempty"`

	// Optional pre-attached analysis (see Analyzer).
	Summary   string   `json:"summary,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// Result is the per-URL outcome of an extraction. Exactly one of Document
// and Err is set: failures are recorded as data so batch runs are total
// over their input list.
type Result struct {
	URL      string    `json:"url"`
	Document *Document `json:"document,omitempty"`
	Err      string    `json:"error,omitempty"`
}
