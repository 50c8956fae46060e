package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile represents a grant-seeker profile (person or organization).
type Profile struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	ProfileType  ProfileType `db:"profile_type" json:"profile_type"`
	DisplayName  string      `db:"display_name" json:"display_name"`
	Notes        string      `db:"notes" json:"notes"`
	FullName     string      `db:"full_name" json:"full_name"`
	DOB          string      `db:"dob" json:"dob"`
	AddressLine1 string      `db:"address_line1" json:"address_line1"`
	AddressLine2 string      `db:"address_line2" json:"address_line2"`
	City         string      `db:"city" json:"city"`
	State        string      `db:"state" json:"state"`
	Zip          string      `db:"zip" json:"zip"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// FundingSource represents a scholarship/grant provider discovered from
// uploaded letters or crawls. Records are looked up by exact name during
// patch application.
type FundingSource struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Address     string    `db:"address" json:"address"`
	AwardAmount float64   `db:"award_amount" json:"award_amount"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Document represents an uploaded file and the extraction derived from it.
type Document struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	ProfileID        uuid.UUID      `db:"profile_id" json:"profile_id"`
	OriginalFilename string         `db:"original_filename" json:"original_filename"`
	MimeType         string         `db:"mime_type" json:"mime_type"`
	S3Bucket         string         `db:"s3_bucket" json:"-"`
	S3Key            string         `db:"s3_key" json:"-"`
	SHA256           string         `db:"sha256" json:"sha256"`
	SizeBytes        int64          `db:"size_bytes" json:"size_bytes"`
	Status           DocumentStatus `db:"status" json:"status"`
	DocType          string         `db:"doc_type" json:"doc_type"`
	// ExtractedJSON holds the text, classification, and typed extraction for
	// a parsed document. SuggestedPatchesJSON holds the proposed patch
	// document consumed by the apply step.
	ExtractedJSON        json.RawMessage `db:"extracted_json" json:"extracted,omitempty"`
	SuggestedPatchesJSON json.RawMessage `db:"suggested_patches_json" json:"suggested_patches,omitempty"`
	AppliedAt            *time.Time      `db:"applied_at" json:"applied_at"`
	ParseError           string          `db:"parse_error" json:"parse_error"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// AuditEntry is an append-only record of a patch-application mutation.
// One entry is written per mutated entity per apply call.
type AuditEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	DocumentID uuid.UUID       `db:"document_id" json:"document_id"`
	Entity     AuditEntity     `db:"entity" json:"entity"`
	RecordID   string          `db:"record_id" json:"record_id"`
	Action     AuditAction     `db:"action" json:"action"`
	Before     json.RawMessage `db:"before_snapshot" json:"before"`
	After      json.RawMessage `db:"after_snapshot" json:"after"`
	Changes    json.RawMessage `db:"changes" json:"changes"`
	CreatedAt  time.Time       `db:"created_at" json:"timestamp"`
}
