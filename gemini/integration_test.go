//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func integrationClient(t *testing.T, ctx context.Context) *genai.Client {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client
}

func TestEmbedder_Integration_ReturnsFixedDimensionVector(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	e := gemini.NewEmbedder(integrationClient(t, ctx), gemini.WithStrictErrors())

	vec, err := e.Embed(ctx, "Go is a statically typed, compiled programming language.")
	require.NoError(t, err)
	assert.Len(t, vec, e.Dimension())
}

func TestAnalyzer_Integration_ReturnsAnalysis(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	analyzer := gemini.NewAnalyzer(integrationClient(t, ctx))

	analysis, err := analyzer.Analyze(ctx, &webharvest.Document{
		URL:     "https://example.com/go",
		Title:   "Go release",
		Content: "The Go team announced a new release with faster builds and improved garbage collection. Benchmarks show a 10% speedup across typical workloads.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.Summary)
	assert.NotEmpty(t, analysis.Keywords)
	assert.Contains(t, []string{"positive", "neutral", "negative"}, analysis.Sentiment)
}
