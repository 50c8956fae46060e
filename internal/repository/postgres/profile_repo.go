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

type profileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new PostgreSQL-backed ProfileRepository.
func NewProfileRepo(db *sqlx.DB) port.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (
			id, profile_type, display_name, notes,
			full_name, dob, address_line1, address_line2, city, state, zip,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		profile.ID, profile.ProfileType, profile.DisplayName, profile.Notes,
		profile.FullName, profile.DOB, profile.AddressLine1, profile.AddressLine2,
		profile.City, profile.State, profile.Zip,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("profileRepo.Create: %w", err)
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.GetContext(ctx, &profile,
		"SELECT * FROM profiles WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetByID: %w", err)
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context, offset, limit int) ([]domain.Profile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM profiles")
	if err != nil {
		return nil, 0, fmt.Errorf("profileRepo.List count: %w", err)
	}

	var profiles []domain.Profile
	err = r.db.SelectContext(ctx, &profiles,
		`SELECT * FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("profileRepo.List: %w", err)
	}
	return profiles, total, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET
			profile_type = $2, display_name = $3, notes = $4,
			full_name = $5, dob = $6, address_line1 = $7, address_line2 = $8,
			city = $9, state = $10, zip = $11, updated_at = $12
		 WHERE id = $1`,
		profile.ID, profile.ProfileType, profile.DisplayName, profile.Notes,
		profile.FullName, profile.DOB, profile.AddressLine1, profile.AddressLine2,
		profile.City, profile.State, profile.Zip, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("profileRepo.Update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("profileRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
