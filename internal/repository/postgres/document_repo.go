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

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, profile_id, original_filename, mime_type,
		s3_bucket, s3_key, sha256, size_bytes,
		status, doc_type, extracted_json, suggested_patches_json,
		applied_at, parse_error, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14, $15, $16
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ProfileID, doc.OriginalFilename, doc.MimeType,
		doc.S3Bucket, doc.S3Key, doc.SHA256, doc.SizeBytes,
		doc.Status, doc.DocType, doc.ExtractedJSON, doc.SuggestedPatchesJSON,
		doc.AppliedAt, doc.ParseError, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE profile_id = $1", profileID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByProfile count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE profile_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByProfile: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $2, applied_at = $3, updated_at = $4 WHERE id = $1`,
		doc.ID, doc.Status, doc.AppliedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateParseResults(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			status = $2, doc_type = $3, extracted_json = $4,
			suggested_patches_json = $5, parse_error = $6, updated_at = $7
		 WHERE id = $1`,
		doc.ID, doc.Status, doc.DocType, doc.ExtractedJSON,
		doc.SuggestedPatchesJSON, doc.ParseError, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateParseResults: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
