package webharvest_test

import (
	"testing"

	"github.com/harvestlabs/webharvest"
	"github.com/stretchr/testify/assert"
)

func TestImageMarker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "IMAGE_PLACEHOLDER_0", webharvest.ImageMarker(0))
	assert.Equal(t, "IMAGE_PLACEHOLDER_12", webharvest.ImageMarker(12))
	assert.Equal(t, "img_3", webharvest.ImageID(3))
}

func TestMarkerPositions(t *testing.T) {
	t.Parallel()

	t.Run("finds markers in order of appearance", func(t *testing.T) {
		t.Parallel()

		content := "intro\n\nIMAGE_PLACEHOLDER_0\n\nmiddle IMAGE_PLACEHOLDER_2 end\n\nIMAGE_PLACEHOLDER_1"
		assert.Equal(t, []int{0, 2, 1}, webharvest.MarkerPositions(content))
	})

	t.Run("empty content has no markers", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, webharvest.MarkerPositions(""))
		assert.Empty(t, webharvest.MarkerPositions("plain text without images"))
	})
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	h := webharvest.HashContent("hello world")
	assert.Len(t, h, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", h)

	assert.Equal(t, h, webharvest.HashContent("hello world"))
	assert.NotEqual(t, h, webharvest.HashContent("hello worlds"))
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		doc := &webharvest.Document{URL: "https://example.com/a", Content: "text"}
		assert.NoError(t, doc.Validate())
	})

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()

		doc := &webharvest.Document{Content: "text"}
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(doc.Validate()))
	})

	t.Run("missing content", func(t *testing.T) {
		t.Parallel()

		doc := &webharvest.Document{URL: "https://example.com/a"}
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(doc.Validate()))
	})
}
