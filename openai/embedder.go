// Package openai implements embedding against any OpenAI-compatible
// embeddings API, as an alternative to the Gemini backend.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/harvestlabs/webharvest"
	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = openai.SmallEmbedding3

// embedInputRunes caps the text sent to the embedding model, matching
// the Gemini backend so either can serve the same store.
const embedInputRunes = 512

// Ensure Embedder implements webharvest.Embedder at compile time.
var _ webharvest.Embedder = (*Embedder)(nil)

// Embedder implements webharvest.Embedder over the OpenAI embeddings
// API. A custom base URL points it at compatible providers.
type Embedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey string

	// BaseURL overrides the API endpoint for compatible providers.
	// Empty means api.openai.com.
	BaseURL string

	// Model defaults to text-embedding-3-small.
	Model string

	// Dimension is the fixed output dimension. Required.
	Dimension int
}

// NewEmbedder creates an OpenAI-compatible embedding provider.
func NewEmbedder(cfg Config) (*Embedder, error) {
	if cfg.Dimension <= 0 {
		return nil, webharvest.Errorf(webharvest.EINVALID, "embedding dimension required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := defaultModel
	if cfg.Model != "" {
		model = openai.EmbeddingModel(cfg.Model)
	}

	return &Embedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		dimension: cfg.Dimension,
	}, nil
}

// Embed returns the embedding for the text, truncated to the model
// window first.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, webharvest.Errorf(webharvest.EINVALID, "text required")
	}

	runes := []rune(text)
	if len(runes) > embedInputRunes {
		text = string(runes[:embedInputRunes])
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		Dimensions:     e.dimension,
	})
	if err != nil {
		return nil, webharvest.Errorf(webharvest.EUNAVAILABLE, "embedding failed: %v", apiError(err))
	}
	if len(resp.Data) == 0 {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "empty embedding response")
	}
	if len(resp.Data[0].Embedding) != e.dimension {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "embedding has dimension %d, expected %d", len(resp.Data[0].Embedding), e.dimension)
	}

	return resp.Data[0].Embedding, nil
}

// Dimension returns the fixed output dimension.
func (e *Embedder) Dimension() int { return e.dimension }

// Model returns the embedding model identifier.
func (e *Embedder) Model() string { return string(e.model) }

// apiError extracts a readable message from the provider response.
func apiError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}
	return err
}
