package goquery_test

import (
	"testing"

	"github.com/harvestlabs/webharvest/goquery"
	"github.com/stretchr/testify/assert"
)

func TestExtractPublishTime(t *testing.T) {
	t.Parallel()

	t.Run("info region wins", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="info">2025-09-21 06:05 来源: 示例网</div>
<span class="time">2024-01-01</span>
</body></html>`

		assert.Equal(t, "2025-09-21 06:05", goquery.ExtractPublishTime(html))
	})

	t.Run("time class", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span class="time">发布于 2025-09-21</span></body></html>`
		assert.Equal(t, "2025-09-21", goquery.ExtractPublishTime(html))
	})

	t.Run("chinese date literal", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="pubtime">2025年9月21日</div></body></html>`
		assert.Equal(t, "2025年9月21日", goquery.ExtractPublishTime(html))
	})

	t.Run("meta publication date", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="article:published_time" content="2025-09-21T06:05:00+08:00">
</head><body></body></html>`

		assert.Equal(t, "2025-09-21", goquery.ExtractPublishTime(html))
	})

	t.Run("time element datetime attribute", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><time datetime="2025/09/21">last Sunday</time></body></html>`
		assert.Equal(t, "2025/09/21", goquery.ExtractPublishTime(html))
	})

	t.Run("absence yields empty string", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>no dates here</p></body></html>`
		assert.Empty(t, goquery.ExtractPublishTime(html))
	})
}
