package mock

import (
	"context"

	"github.com/harvestlabs/webharvest"
)

var _ webharvest.ArchiveService = (*ArchiveService)(nil)

// ArchiveService is a mock implementation of webharvest.ArchiveService.
type ArchiveService struct {
	CreateDocumentFn    func(ctx context.Context, doc *webharvest.Document) error
	FindDocumentByURLFn func(ctx context.Context, url string) (*webharvest.Document, error)
	FindDocumentsFn     func(ctx context.Context, filter webharvest.DocumentFilter) ([]*webharvest.Document, error)
	DeleteDocumentFn    func(ctx context.Context, id string) error
}

func (s *ArchiveService) CreateDocument(ctx context.Context, doc *webharvest.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *ArchiveService) FindDocumentByURL(ctx context.Context, url string) (*webharvest.Document, error) {
	return s.FindDocumentByURLFn(ctx, url)
}

func (s *ArchiveService) FindDocuments(ctx context.Context, filter webharvest.DocumentFilter) ([]*webharvest.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *ArchiveService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
