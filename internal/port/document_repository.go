package port

import (
	"context"

	"github.com/google/uuid"

	"grantflow/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	UpdateStatus(ctx context.Context, doc *domain.Document) error
	UpdateParseResults(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}
