package webharvest

import "context"

// Embedder generates fixed-dimension vector embeddings for text.
type Embedder interface {
	// Embed returns the embedding for the text. Input longer than the
	// model's window is represented by its prefix only.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the fixed output dimension.
	Dimension() int

	// Model returns the embedding model identifier, for statistics.
	Model() string
}

// Metadata is the persisted, search-returnable summary of a Document,
// paired 1:1 with a stored embedding. Array order is the index-to-metadata
// join key; field order is insignificant.
type Metadata struct {
	Title string `json:"title"`

	// Truncated content excerpt, at most 200 runes plus ellipsis.
	Content string `json:"content"`

	URL            string `json:"url"`
	PublishTime    string `json:"publish_time"`
	ExtractionTime string `json:"extraction_time"`

	Channel     string `json:"channel"`
	ChannelName string `json:"channel_name"`
	Module      string `json:"module"`
	ModuleName  string `json:"module_name"`

	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	KeyPoints []string `json:"key_points"`
}

// SearchResult is a metadata record returned by a similarity query.
// Distance is the raw L2 distance so callers can apply their own
// relevance threshold.
type SearchResult struct {
	Metadata
	Distance float32 `json:"distance"`
}

// SearchOptions configures a similarity query.
type SearchOptions struct {
	// Maximum number of results. Defaults to 5 when zero.
	TopK int

	// Optional inclusive date range, YYYY-MM-DD. EndDate extends to the
	// end of its day. Records whose resolved date cannot be parsed are
	// kept (fail-open).
	StartDate string
	EndDate   string
}

// Statistics summarizes the contents of a knowledge store.
type Statistics struct {
	TotalDocuments int    `json:"total_documents"`
	IndexSize      int64  `json:"index_size"`
	MetadataSize   int64  `json:"metadata_size"`
	EmbeddingModel string `json:"embedding_model"`

	// Histogram by channel tag; records without one count under "unknown".
	Channels map[string]int `json:"channels"`

	// Histogram by resolved calendar date (YYYY-MM-DD). Records whose
	// date matches no known format are bucketed under the raw string.
	Dates map[string]int `json:"dates"`
}

// KnowledgeStore embeds documents, maintains a nearest-neighbor index and
// answers similarity queries. Implementations are not safe for concurrent
// use: the design assumes a single writer process.
type KnowledgeStore interface {
	// Save embeds and indexes the documents, persisting the index and
	// metadata. Documents without content are skipped with a warning.
	// Returns the number of records actually added.
	Save(ctx context.Context, docs []*Document) (int, error)

	// Search returns the nearest records for the query text, ranked by
	// ascending L2 distance.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)

	// ByDateRange returns records whose resolved date falls in the
	// inclusive range, sorted by date descending, capped at topK.
	// This is a pure metadata scan; no embedding is performed.
	ByDateRange(startDate, endDate string, topK int) ([]Metadata, error)

	// Statistics reports aggregate information about the store.
	Statistics() (*Statistics, error)
}
