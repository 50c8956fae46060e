package port

import (
	"context"

	"github.com/google/uuid"

	"grantflow/internal/domain"
)

// AuditRepository defines the contract for the append-only patch audit log.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByDocument(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
}
