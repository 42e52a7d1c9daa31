//go:build integration

package rod_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harvestlabs/webharvest/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Integration_RenderedPage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	// example.com is static, but it still exercises the full launch,
	// navigate and render path.
	html, err := fetcher.Fetch(ctx, "https://example.com/")
	require.NoError(t, err)

	lower := strings.ToLower(strings.TrimSpace(html))
	assert.True(t, strings.HasPrefix(lower, "<!doctype html>") || strings.HasPrefix(lower, "<html"))
	assert.Contains(t, html, "Example Domain")
}

func TestFetcher_Integration_RespectsTimeout(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher(rod.WithTimeout(1 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), "https://example.com/")
	require.Error(t, err)
}
