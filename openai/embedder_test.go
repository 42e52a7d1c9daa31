package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddingsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewEmbedder_RequiresDimension(t *testing.T) {
	t.Parallel()

	_, err := openai.NewEmbedder(openai.Config{APIKey: "k"})
	assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("returns the provider vector", func(t *testing.T) {
		t.Parallel()

		srv := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/embeddings", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"data": []map[string]any{
					{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2, 0.3}},
				},
				"model": "text-embedding-3-small",
			})
		})

		e, err := openai.NewEmbedder(openai.Config{APIKey: "k", BaseURL: srv.URL, Dimension: 3})
		require.NoError(t, err)

		vec, err := e.Embed(context.Background(), "some text")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	})

	t.Run("truncates long input", func(t *testing.T) {
		t.Parallel()

		var gotInput string
		srv := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Input []string `json:"input"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Input, 1)
			gotInput = req.Input[0]
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"embedding": []float32{0, 0}}},
			})
		})

		e, err := openai.NewEmbedder(openai.Config{APIKey: "k", BaseURL: srv.URL, Dimension: 2})
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), strings.Repeat("中", 1000))
		require.NoError(t, err)
		assert.Equal(t, 512, len([]rune(gotInput)))
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		e, err := openai.NewEmbedder(openai.Config{APIKey: "k", Dimension: 3})
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "")
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
	})

	t.Run("provider errors map to unavailable", func(t *testing.T) {
		t.Parallel()

		srv := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": {"message": "overloaded"}}`))
		})

		e, err := openai.NewEmbedder(openai.Config{APIKey: "k", BaseURL: srv.URL, Dimension: 3})
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "text")
		assert.Equal(t, webharvest.EUNAVAILABLE, webharvest.ErrorCode(err))
	})

	t.Run("dimension mismatch is an internal error", func(t *testing.T) {
		t.Parallel()

		srv := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"embedding": []float32{0.1}}},
			})
		})

		e, err := openai.NewEmbedder(openai.Config{APIKey: "k", BaseURL: srv.URL, Dimension: 3})
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "text")
		assert.Equal(t, webharvest.EINTERNAL, webharvest.ErrorCode(err))
	})
}
