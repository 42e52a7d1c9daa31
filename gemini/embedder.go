// Package gemini implements embedding and content analysis using Google
// Gemini.
package gemini

import (
	"context"
	"log/slog"

	"github.com/harvestlabs/webharvest"
	"google.golang.org/genai"
)

const (
	embeddingModel = "gemini-embedding-001"

	// defaultDimension keeps vectors compact; the model truncates its
	// native output to this length.
	defaultDimension = 768

	// embedInputRunes caps the text sent to the embedding model. The
	// head of an article carries most of its topical signal.
	embedInputRunes = 512
)

// Ensure Embedder implements webharvest.Embedder at compile time.
var _ webharvest.Embedder = (*Embedder)(nil)

// Embedder implements webharvest.Embedder using Gemini.
//
// By default an API failure degrades to a zero vector instead of an
// error: a zero vector ranks last in every similarity query, so the
// document stays retrievable by date while never polluting search
// results. WithStrictErrors turns failures back into errors.
type Embedder struct {
	client    *genai.Client
	dimension int
	strict    bool
	logger    *slog.Logger
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithDimension overrides the output dimension.
func WithDimension(dim int) EmbedderOption {
	return func(e *Embedder) { e.dimension = dim }
}

// WithStrictErrors makes API failures return errors instead of
// degrading to zero vectors.
func WithStrictErrors() EmbedderOption {
	return func(e *Embedder) { e.strict = true }
}

// WithEmbedderLogger sets the logger. Defaults to slog.Default().
func WithEmbedderLogger(logger *slog.Logger) EmbedderOption {
	return func(e *Embedder) { e.logger = logger }
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client:    client,
		dimension: defaultDimension,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
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

	dim := int32(e.dimension)
	result, err := e.client.Models.EmbedContent(ctx, embeddingModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		&genai.EmbedContentConfig{OutputDimensionality: &dim},
	)
	if err != nil {
		return e.degrade(err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) != e.dimension {
		return e.degrade(webharvest.Errorf(webharvest.EINTERNAL, "gemini returned malformed embedding"))
	}

	return result.Embeddings[0].Values, nil
}

func (e *Embedder) degrade(err error) ([]float32, error) {
	if e.strict {
		return nil, webharvest.Errorf(webharvest.EUNAVAILABLE, "embedding failed: %v", err)
	}
	e.logger.Warn("embedding failed, degrading to zero vector", "error", err)
	return make([]float32, e.dimension), nil
}

// Dimension returns the fixed output dimension.
func (e *Embedder) Dimension() int { return e.dimension }

// Model returns the embedding model identifier.
func (e *Embedder) Model() string { return embeddingModel }
