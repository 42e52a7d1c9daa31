package webharvest

import "context"

// DocumentFilter selects archived documents. Nil fields are ignored.
type DocumentFilter struct {
	ID  *string
	URL *string

	// Inclusive bounds on the resolved document date, YYYY-MM-DD.
	StartDate *string
	EndDate   *string

	Limit  int
	Offset int
}

// ArchiveService persists full extraction results relationally, keeping
// everything the knowledge store's compact metadata drops. Saving a URL
// that is already archived replaces the previous extraction.
type ArchiveService interface {
	CreateDocument(ctx context.Context, doc *Document) error
	FindDocumentByURL(ctx context.Context, url string) (*Document, error)
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
	DeleteDocument(ctx context.Context, id string) error
}
