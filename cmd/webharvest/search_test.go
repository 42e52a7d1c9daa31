package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/harvestlabs/webharvest"
	main "github.com/harvestlabs/webharvest/cmd/webharvest"
	"github.com/harvestlabs/webharvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints ranked results", func(t *testing.T) {
		t.Parallel()

		store := &mock.KnowledgeStore{
			SearchFn: func(_ context.Context, query string, opts webharvest.SearchOptions) ([]webharvest.SearchResult, error) {
				assert.Equal(t, "go releases", query)
				assert.Equal(t, 3, opts.TopK)
				return []webharvest.SearchResult{
					{
						Metadata: webharvest.Metadata{
							Title:       "Go 1.25 released",
							URL:         "https://example.com/go125",
							PublishTime: "2025-08-12",
							Content:     "The latest Go release...",
						},
						Distance: 0.41,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Store:  store,
		}

		cmd := &main.SearchCmd{Query: "go releases", TopK: 3}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "1. Go 1.25 released")
		assert.Contains(t, out, "distance 0.4100")
		assert.Contains(t, out, "https://example.com/go125")
		assert.Contains(t, out, "2025-08-12")
	})

	t.Run("empty result set prints a notice", func(t *testing.T) {
		t.Parallel()

		store := &mock.KnowledgeStore{
			SearchFn: func(context.Context, string, webharvest.SearchOptions) ([]webharvest.SearchResult, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Store:  store,
		}

		cmd := &main.SearchCmd{Query: "anything", TopK: 5}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No results.")
	})

	t.Run("store errors are reported", func(t *testing.T) {
		t.Parallel()

		store := &mock.KnowledgeStore{
			SearchFn: func(context.Context, string, webharvest.SearchOptions) ([]webharvest.SearchResult, error) {
				return nil, webharvest.Errorf(webharvest.EINVALID, "invalid start date \"nope\"")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Store:  store,
		}

		cmd := &main.SearchCmd{Query: "anything", StartDate: "nope"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "invalid start date")
	})
}
