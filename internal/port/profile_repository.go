package port

import (
	"context"

	"github.com/google/uuid"

	"grantflow/internal/domain"
)

// ProfileRepository defines the contract for profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context, offset, limit int) ([]domain.Profile, int, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
