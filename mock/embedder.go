package mock

import (
	"context"

	"github.com/harvestlabs/webharvest"
)

var _ webharvest.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of webharvest.Embedder.
type Embedder struct {
	EmbedFn     func(ctx context.Context, text string) ([]float32, error)
	DimensionFn func() int
	ModelFn     func() string
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) Dimension() int {
	if e.DimensionFn == nil {
		return 384
	}
	return e.DimensionFn()
}

func (e *Embedder) Model() string {
	if e.ModelFn == nil {
		return "mock"
	}
	return e.ModelFn()
}
