package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harvestlabs/webharvest"
)

var markerPattern = regexp.MustCompile(`IMAGE_PLACEHOLDER_(\d+)`)

// ExportMarkdown renders a document as markdown, reinserting its images
// at their placeholder markers. Markers without a matching image record
// are dropped rather than left in the text.
func ExportMarkdown(doc *webharvest.Document) string {
	byPosition := make(map[int]webharvest.Image, len(doc.Images))
	for _, img := range doc.Images {
		byPosition[img.Position] = img
	}

	content := markerPattern.ReplaceAllStringFunc(doc.Content, func(marker string) string {
		pos, err := strconv.Atoi(markerPattern.FindStringSubmatch(marker)[1])
		if err != nil {
			return ""
		}
		img, ok := byPosition[pos]
		if !ok {
			return ""
		}
		alt := img.Alt
		if alt == "" {
			alt = img.ID
		}
		return fmt.Sprintf("![%s](%s)", alt, img.URL)
	})

	var sb strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	}
	if doc.PublishTime != "" {
		fmt.Fprintf(&sb, "> Published: %s\n", doc.PublishTime)
	}
	if doc.Author != "" {
		fmt.Fprintf(&sb, "> Author: %s\n", doc.Author)
	}
	fmt.Fprintf(&sb, "> Source: %s\n\n", doc.URL)

	if doc.Summary != "" {
		fmt.Fprintf(&sb, "**Summary:** %s\n\n", doc.Summary)
	}

	sb.WriteString(strings.TrimSpace(content))
	sb.WriteString("\n")
	return sb.String()
}
