package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"grantflow/internal/domain"
	"grantflow/internal/port"
)

type fundingSourceRepo struct {
	db *sqlx.DB
}

// NewFundingSourceRepo creates a new PostgreSQL-backed FundingSourceRepository.
func NewFundingSourceRepo(db *sqlx.DB) port.FundingSourceRepository {
	return &fundingSourceRepo{db: db}
}

func (r *fundingSourceRepo) Create(ctx context.Context, fs *domain.FundingSource) error {
	now := time.Now().UTC()
	if fs.CreatedAt.IsZero() {
		fs.CreatedAt = now
	}
	fs.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO funding_sources (id, name, email, phone, address, award_amount, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fs.ID, fs.Name, fs.Email, fs.Phone, fs.Address, fs.AwardAmount,
		fs.CreatedAt, fs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("fundingSourceRepo.Create: %w", err)
	}
	return nil
}

func (r *fundingSourceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingSource, error) {
	var fs domain.FundingSource
	err := r.db.GetContext(ctx, &fs,
		"SELECT * FROM funding_sources WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFundingSourceNotFound
		}
		return nil, fmt.Errorf("fundingSourceRepo.GetByID: %w", err)
	}
	return &fs, nil
}

func (r *fundingSourceRepo) GetByName(ctx context.Context, name string) (*domain.FundingSource, error) {
	var fs domain.FundingSource
	err := r.db.GetContext(ctx, &fs,
		"SELECT * FROM funding_sources WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFundingSourceNotFound
		}
		return nil, fmt.Errorf("fundingSourceRepo.GetByName: %w", err)
	}
	return &fs, nil
}

func (r *fundingSourceRepo) List(ctx context.Context, offset, limit int) ([]domain.FundingSource, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM funding_sources")
	if err != nil {
		return nil, 0, fmt.Errorf("fundingSourceRepo.List count: %w", err)
	}

	var sources []domain.FundingSource
	err = r.db.SelectContext(ctx, &sources,
		`SELECT * FROM funding_sources ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("fundingSourceRepo.List: %w", err)
	}
	return sources, total, nil
}

func (r *fundingSourceRepo) Update(ctx context.Context, fs *domain.FundingSource) error {
	fs.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE funding_sources SET
			name = $2, email = $3, phone = $4, address = $5, award_amount = $6, updated_at = $7
		 WHERE id = $1`,
		fs.ID, fs.Name, fs.Email, fs.Phone, fs.Address, fs.AwardAmount, fs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("fundingSourceRepo.Update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrFundingSourceNotFound
	}
	return nil
}

// TableExists reports whether the funding_sources table has been migrated.
// Databases created before the funding source migration can still apply
// profile patches; the applier skips the funding phase when this is false.
func (r *fundingSourceRepo) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'funding_sources'
		)`)
	if err != nil {
		return false, fmt.Errorf("fundingSourceRepo.TableExists: %w", err)
	}
	return exists, nil
}
