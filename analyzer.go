package webharvest

import "context"

// Analysis holds the LLM-generated digest of a document.
type Analysis struct {
	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	KeyPoints []string `json:"key_points"`
	Sentiment string   `json:"sentiment"`
}

// Analyzer produces a digest of an extracted document, attached to the
// document before it is handed to the knowledge store.
type Analyzer interface {
	Analyze(ctx context.Context, doc *Document) (*Analysis, error)
}

// Attach copies the analysis onto the document.
func (a *Analysis) Attach(doc *Document) {
	doc.Summary = a.Summary
	doc.Keywords = a.Keywords
	doc.KeyPoints = a.KeyPoints
}
