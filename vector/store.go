package vector

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/fs"
)

// Ensure Store implements webharvest.KnowledgeStore at compile time.
var _ webharvest.KnowledgeStore = (*Store)(nil)

// excerptRunes caps the content excerpt stored in metadata.
const excerptRunes = 200

// Store is a file-backed knowledge store. Embeddings live in a flat
// binary index, metadata in a JSON array alongside it; array position is
// the join key between the two, so every mutation appends to both in
// lock step and persists both atomically.
//
// Not safe for concurrent use: a single writer process is assumed.
type Store struct {
	indexPath string
	metaPath  string

	embedder webharvest.Embedder
	logger   *slog.Logger

	index *Index
	meta  []webharvest.Metadata
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Store persisting to the two paths. Call Open before
// use.
func NewStore(indexPath, metaPath string, embedder webharvest.Embedder, opts ...StoreOption) *Store {
	s := &Store{
		indexPath: indexPath,
		metaPath:  metaPath,
		embedder:  embedder,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted index and metadata. A store without an
// embedder is unusable, so that fails fast. Missing files mean a fresh
// store; corrupt or mutually inconsistent files are discarded with a
// warning rather than poisoning every later append.
func (s *Store) Open() error {
	if s.embedder == nil {
		return webharvest.Errorf(webharvest.EINVALID, "knowledge store requires an embedder")
	}

	dim := s.embedder.Dimension()
	index, meta, err := loadFiles(s.indexPath, s.metaPath, dim)
	if err != nil {
		s.logger.Warn("discarding persisted store state", "error", err)
		index, meta = nil, nil
	}
	if index == nil {
		if index, err = NewIndex(dim); err != nil {
			return err
		}
		meta = nil
	}

	s.index = index
	s.meta = meta
	s.logger.Info("knowledge store opened", "documents", s.index.Count(), "model", s.embedder.Model())
	return nil
}

// loadFiles reads both persistence files. Both missing is a fresh store
// (nil index, nil error); any other inconsistency is an error.
func loadFiles(indexPath, metaPath string, dim int) (*Index, []webharvest.Metadata, error) {
	_, indexErr := os.Stat(indexPath)
	_, metaErr := os.Stat(metaPath)
	if os.IsNotExist(indexErr) && os.IsNotExist(metaErr) {
		return nil, nil, nil
	}
	if os.IsNotExist(indexErr) != os.IsNotExist(metaErr) {
		return nil, nil, webharvest.Errorf(webharvest.EINTERNAL, "index and metadata files out of sync: one is missing")
	}

	index, err := ReadIndexFile(indexPath, dim)
	if err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, nil, err
	}
	var meta []webharvest.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil, webharvest.Errorf(webharvest.EINTERNAL, "metadata file is not a JSON array: %v", err)
	}

	if index.Count() != len(meta) {
		return nil, nil, webharvest.Errorf(webharvest.EINTERNAL, "index has %d vectors but metadata has %d records", index.Count(), len(meta))
	}
	return index, meta, nil
}

// Save embeds and indexes the documents, then persists both files.
// Documents without content are skipped with a warning, as are documents
// the embedder rejects. Returns the number of records actually added.
func (s *Store) Save(ctx context.Context, docs []*webharvest.Document) (int, error) {
	var vecs [][]float32
	var added []webharvest.Metadata

	for _, doc := range docs {
		if doc.Content == "" {
			s.logger.Warn("skipping document without content", "url", doc.URL)
			continue
		}

		vec, err := s.embedder.Embed(ctx, doc.Content)
		if err != nil {
			s.logger.Warn("skipping document: embedding failed", "url", doc.URL, "error", err)
			continue
		}

		vecs = append(vecs, vec)
		added = append(added, metadataFor(doc))
	}

	if len(vecs) == 0 {
		return 0, nil
	}

	if err := s.index.Add(vecs); err != nil {
		return 0, err
	}
	s.meta = append(s.meta, added...)

	if err := s.persist(); err != nil {
		return 0, err
	}
	s.logger.Info("documents saved", "added", len(added), "total", s.index.Count())
	return len(added), nil
}

func metadataFor(doc *webharvest.Document) webharvest.Metadata {
	return webharvest.Metadata{
		Title:          doc.Title,
		Content:        excerpt(doc.Content),
		URL:            doc.URL,
		PublishTime:    doc.PublishTime,
		ExtractionTime: doc.ExtractionTime,
		Channel:        doc.Channel,
		ChannelName:    doc.ChannelName,
		Module:         doc.Module,
		ModuleName:     doc.ModuleName,
		Summary:        doc.Summary,
		Keywords:       doc.Keywords,
		KeyPoints:      doc.KeyPoints,
	}
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptRunes {
		return content
	}
	return string(runes[:excerptRunes]) + "..."
}

func (s *Store) persist() error {
	if err := s.index.WriteFile(s.indexPath); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return err
	}
	return fs.WriteFileAtomic(s.metaPath, raw, 0644)
}

// Search embeds the query and returns the nearest records by ascending
// L2 distance. An optional date range filters results after ranking;
// the scan over-fetches so filtering does not starve the result set.
func (s *Store) Search(ctx context.Context, query string, opts webharvest.SearchOptions) ([]webharvest.SearchResult, error) {
	if query == "" {
		return nil, webharvest.Errorf(webharvest.EINVALID, "search query is required")
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}

	dateRange, err := webharvest.NewDateRange(opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, webharvest.Errorf(webharvest.EUNAVAILABLE, "embedding query failed: %v", err)
	}

	fetch := topK
	if !dateRange.Empty() {
		fetch = topK * 2
	}
	candidates, err := s.index.Search(vec, fetch)
	if err != nil {
		return nil, err
	}

	results := make([]webharvest.SearchResult, 0, topK)
	for _, c := range candidates {
		m := s.meta[c.Position]
		if !dateRange.Contains(webharvest.ResolveDate(m.PublishTime, m.ExtractionTime)) {
			continue
		}
		results = append(results, webharvest.SearchResult{Metadata: m, Distance: c.Distance})
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

// ByDateRange scans metadata for records whose resolved date falls in the
// inclusive range, newest first, capped at topK. Records without a
// parseable date are excluded: they cannot be ordered by date.
func (s *Store) ByDateRange(startDate, endDate string, topK int) ([]webharvest.Metadata, error) {
	if topK <= 0 {
		topK = 10
	}
	dateRange, err := webharvest.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	type dated struct {
		meta webharvest.Metadata
		date string
	}
	var matched []dated
	for _, m := range s.meta {
		date := webharvest.ResolveDate(m.PublishTime, m.ExtractionTime)
		if dateRange.ContainsStrict(date) {
			matched = append(matched, dated{meta: m, date: date})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ti, _ := webharvest.ParseDate(matched[i].date)
		tj, _ := webharvest.ParseDate(matched[j].date)
		return ti.After(tj)
	})

	if len(matched) > topK {
		matched = matched[:topK]
	}
	results := make([]webharvest.Metadata, 0, len(matched))
	for _, d := range matched {
		results = append(results, d.meta)
	}
	return results, nil
}

// Statistics reports aggregate information about the store.
func (s *Store) Statistics() (*webharvest.Statistics, error) {
	stats := &webharvest.Statistics{
		TotalDocuments: s.index.Count(),
		EmbeddingModel: s.embedder.Model(),
		Channels:       make(map[string]int),
		Dates:          make(map[string]int),
	}

	if info, err := os.Stat(s.indexPath); err == nil {
		stats.IndexSize = info.Size()
	}
	if info, err := os.Stat(s.metaPath); err == nil {
		stats.MetadataSize = info.Size()
	}

	for _, m := range s.meta {
		channel := m.Channel
		if channel == "" {
			channel = "unknown"
		}
		stats.Channels[channel]++

		date := webharvest.ResolveDate(m.PublishTime, m.ExtractionTime)
		if t, ok := webharvest.ParseDate(date); ok {
			stats.Dates[t.Format("2006-01-02")]++
		} else {
			stats.Dates[date]++
		}
	}
	return stats, nil
}
