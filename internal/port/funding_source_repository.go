package port

import (
	"context"

	"github.com/google/uuid"

	"grantflow/internal/domain"
)

// FundingSourceRepository defines the contract for funding source
// persistence. GetByName matches exactly; it backs the upsert-by-name
// behavior of patch application. TableExists reports whether the backing
// table has been migrated yet, since patch application must degrade
// gracefully on databases that predate the funding_sources migration.
type FundingSourceRepository interface {
	Create(ctx context.Context, fs *domain.FundingSource) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingSource, error)
	GetByName(ctx context.Context, name string) (*domain.FundingSource, error)
	List(ctx context.Context, offset, limit int) ([]domain.FundingSource, int, error)
	Update(ctx context.Context, fs *domain.FundingSource) error
	TableExists(ctx context.Context) (bool, error)
}
