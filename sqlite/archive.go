package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/harvestlabs/webharvest"
)

// Compile-time interface verification.
var _ webharvest.ArchiveService = (*ArchiveService)(nil)

// ArchiveService implements webharvest.ArchiveService using SQLite.
// It keeps the full extraction result for each URL; the knowledge store
// keeps only a compact metadata excerpt.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

const documentColumns = `id, url, title, content, images, source, publish_time, extraction_time,
	content_length, image_count, content_hash, author, excerpt,
	channel, channel_name, module, module_name, summary, keywords, key_points`

// CreateDocument archives a document. Saving a URL that is already
// archived replaces the previous extraction, keeping the original ID.
func (s *ArchiveService) CreateDocument(ctx context.Context, doc *webharvest.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = webharvest.HashContent(doc.Content)
	}

	images, err := json.Marshal(doc.Images)
	if err != nil {
		return err
	}
	keywords, err := json.Marshal(doc.Keywords)
	if err != nil {
		return err
	}
	keyPoints, err := json.Marshal(doc.KeyPoints)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			images = excluded.images,
			source = excluded.source,
			publish_time = excluded.publish_time,
			extraction_time = excluded.extraction_time,
			content_length = excluded.content_length,
			image_count = excluded.image_count,
			content_hash = excluded.content_hash,
			author = excluded.author,
			excerpt = excluded.excerpt,
			channel = excluded.channel,
			channel_name = excluded.channel_name,
			module = excluded.module,
			module_name = excluded.module_name,
			summary = excluded.summary,
			keywords = excluded.keywords,
			key_points = excluded.key_points
	`, doc.ID, doc.URL, doc.Title, doc.Content, string(images), string(doc.Source),
		doc.PublishTime, doc.ExtractionTime, doc.ContentLength, doc.ImageCount,
		doc.ContentHash, doc.Author, doc.Excerpt, doc.Channel, doc.ChannelName,
		doc.Module, doc.ModuleName, doc.Summary, string(keywords), string(keyPoints))

	return err
}

// FindDocumentByURL retrieves an archived document by URL.
func (s *ArchiveService) FindDocumentByURL(ctx context.Context, url string) (*webharvest.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE url = ?
	`, url)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, webharvest.Errorf(webharvest.ENOTFOUND, "document not found for URL %s", url)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves archived documents matching the filter, newest
// extraction first. Date bounds apply to the resolved document date and
// filter out documents whose date cannot be parsed.
func (s *ArchiveService) FindDocuments(ctx context.Context, filter webharvest.DocumentFilter) ([]*webharvest.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	query.WriteString(" ORDER BY extraction_time DESC")

	// Date bounds are matched in Go against the resolved date, so the
	// SQL limit can only apply when no bounds are set.
	byDate := filter.StartDate != nil || filter.EndDate != nil
	if !byDate {
		appendPagination(&query, &args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dateRange *webharvest.DateRange
	if byDate {
		start, end := "", ""
		if filter.StartDate != nil {
			start = *filter.StartDate
		}
		if filter.EndDate != nil {
			end = *filter.EndDate
		}
		if dateRange, err = webharvest.NewDateRange(start, end); err != nil {
			return nil, err
		}
	}

	var docs []*webharvest.Document
	skipped := 0
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		if dateRange != nil {
			if !dateRange.ContainsStrict(webharvest.ResolveDate(doc.PublishTime, doc.ExtractionTime)) {
				continue
			}
			if filter.Offset > 0 && skipped < filter.Offset {
				skipped++
				continue
			}
			if filter.Limit > 0 && len(docs) == filter.Limit {
				break
			}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes an archived document by ID.
func (s *ArchiveService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return webharvest.Errorf(webharvest.ENOTFOUND, "document not found")
	}
	return nil
}

// scanDocument reads one document row via the given scan function.
func scanDocument(scan func(dest ...any) error) (*webharvest.Document, error) {
	var doc webharvest.Document
	var images, keywords, keyPoints, source string

	if err := scan(&doc.ID, &doc.URL, &doc.Title, &doc.Content, &images, &source,
		&doc.PublishTime, &doc.ExtractionTime, &doc.ContentLength, &doc.ImageCount,
		&doc.ContentHash, &doc.Author, &doc.Excerpt, &doc.Channel, &doc.ChannelName,
		&doc.Module, &doc.ModuleName, &doc.Summary, &keywords, &keyPoints); err != nil {
		return nil, err
	}

	doc.Source = webharvest.Source(source)
	if err := json.Unmarshal([]byte(images), &doc.Images); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &doc.Keywords); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keyPoints), &doc.KeyPoints); err != nil {
		return nil, err
	}
	return &doc, nil
}
