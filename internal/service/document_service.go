package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"grantflow/internal/domain"
	"grantflow/internal/extractor"
	"grantflow/internal/parser"
	"grantflow/internal/patch"
	"grantflow/internal/port"
)

const parseTimeout = 2 * time.Minute

// UploadDocumentInput is the DTO for uploading a document against a profile.
type UploadDocumentInput struct {
	ProfileID   uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ApplyResult is returned by ApplyPatches: the updated document plus the
// changes the apply made.
type ApplyResult struct {
	Document *domain.Document `json:"document"`
	Changes  *patch.Summary   `json:"changes"`
}

// DocumentService owns the document lifecycle: upload to object storage,
// background parsing, patch application, and deletion.
type DocumentService struct {
	docs        port.DocumentRepository
	profiles    port.ProfileRepository
	audit       port.AuditRepository
	storage     port.ObjectStorage
	extractors  *extractor.Registry
	applier     *patch.Applier
	bucket      string
	maxFileSize int64
}

// NewDocumentService wires a DocumentService. maxFileSizeMB bounds uploads.
func NewDocumentService(
	docs port.DocumentRepository,
	profiles port.ProfileRepository,
	audit port.AuditRepository,
	storage port.ObjectStorage,
	extractors *extractor.Registry,
	applier *patch.Applier,
	bucket string,
	maxFileSizeMB int64,
) *DocumentService {
	return &DocumentService{
		docs:        docs,
		profiles:    profiles,
		audit:       audit,
		storage:     storage,
		extractors:  extractors,
		applier:     applier,
		bucket:      bucket,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}
}

// Upload validates and stores a new document, then kicks off parsing in the
// background. The returned document is in the uploaded state; callers poll
// for the parse outcome.
func (s *DocumentService) Upload(ctx context.Context, input UploadDocumentInput) (*domain.Document, error) {
	if _, ok := domain.AllowedContentTypes[input.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, input.ContentType)
	}
	if input.Size > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	if _, err := s.profiles.GetByID(ctx, input.ProfileID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("documentService.Upload: read body: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}

	sum := sha256.Sum256(data)

	doc := &domain.Document{
		ID:               uuid.New(),
		ProfileID:        input.ProfileID,
		OriginalFilename: input.Filename,
		MimeType:         input.ContentType,
		S3Bucket:         s.bucket,
		SHA256:           hex.EncodeToString(sum[:]),
		SizeBytes:        int64(len(data)),
		Status:           domain.DocumentStatusUploaded,
		DocType:          string(parser.DocTypeUnknown),
	}
	doc.S3Key = fmt.Sprintf("documents/%s/%s/%s", input.ProfileID, doc.ID, input.Filename)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         doc.S3Key,
		Body:        bytes.NewReader(data),
		ContentType: input.ContentType,
		Size:        doc.SizeBytes,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	go s.parseInBackground(doc.ID)

	return doc, nil
}

func (s *DocumentService) parseInBackground(docID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()

	log.Printf("documentService.parseInBackground: starting parsing for document %s", docID)

	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		log.Printf("documentService.parseInBackground: failed to get document %s: %v", docID, err)
		return
	}

	doc.Status = domain.DocumentStatusParsing
	if err := s.docs.UpdateStatus(ctx, doc); err != nil {
		log.Printf("documentService.parseInBackground: failed to set parsing status for %s: %v", docID, err)
		return
	}

	s.parseDocument(ctx, doc)
}

// parseDocument downloads, extracts, classifies, and builds patch
// suggestions for a document, then records the outcome. It is called by both
// the upload path and Reparse.
func (s *DocumentService) parseDocument(ctx context.Context, doc *domain.Document) {
	data, err := s.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		s.failParsing(ctx, doc, fmt.Sprintf("downloading file: %v", err))
		return
	}

	text, err := s.extractors.Extract(ctx, data, doc.MimeType)
	if err != nil {
		s.failParsing(ctx, doc, fmt.Sprintf("extracting text: %v", err))
		return
	}

	result := parser.Parse(text)
	patches := patch.Build(result)

	extractedJSON, err := json.Marshal(result)
	if err != nil {
		s.failParsing(ctx, doc, fmt.Sprintf("encoding extraction: %v", err))
		return
	}
	patchesJSON, err := json.Marshal(patches)
	if err != nil {
		s.failParsing(ctx, doc, fmt.Sprintf("encoding patches: %v", err))
		return
	}

	doc.Status = domain.DocumentStatusParsed
	doc.DocType = string(result.DocType)
	doc.ExtractedJSON = extractedJSON
	doc.SuggestedPatchesJSON = patchesJSON
	doc.ParseError = ""

	if err := s.docs.UpdateParseResults(ctx, doc); err != nil {
		log.Printf("documentService.parseDocument: failed to store results for %s: %v", doc.ID, err)
		return
	}
	log.Printf("documentService.parseDocument: document %s parsed as %s (confidence %.2f)",
		doc.ID, result.DocType, result.Classification.Confidence)
}

func (s *DocumentService) failParsing(ctx context.Context, doc *domain.Document, errMsg string) {
	log.Printf("documentService.failParsing: document %s failed: %s", doc.ID, errMsg)
	doc.Status = domain.DocumentStatusFailed
	doc.ParseError = errMsg
	if err := s.docs.UpdateParseResults(ctx, doc); err != nil {
		log.Printf("documentService.failParsing: failed to update status for %s: %v", doc.ID, err)
	}
}

// Reparse re-runs the parse pipeline over a document's stored file. Useful
// after extraction fixes, and the only way out of the failed state.
func (s *DocumentService) Reparse(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	doc.Status = domain.DocumentStatusParsing
	if err := s.docs.UpdateStatus(ctx, doc); err != nil {
		return nil, err
	}

	go s.parseInBackground(doc.ID)

	return doc, nil
}

// ApplyPatches writes a parsed document's suggested patches to the owning
// profile and any proposed funding sources, then marks the document applied.
// Re-applying an already applied document is allowed; fill-only semantics
// make the second pass a field-level no-op.
func (s *DocumentService) ApplyPatches(ctx context.Context, docID uuid.UUID) (*ApplyResult, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if doc.Status != domain.DocumentStatusParsed && doc.Status != domain.DocumentStatusApplied {
		return nil, domain.ErrDocumentNotParsed
	}
	if len(doc.SuggestedPatchesJSON) == 0 {
		return nil, domain.ErrNoPatchesAvailable
	}

	var patches patch.Document
	if err := json.Unmarshal(doc.SuggestedPatchesJSON, &patches); err != nil {
		return nil, fmt.Errorf("documentService.ApplyPatches: decoding patches for %s: %w", docID, err)
	}

	summary, err := s.applier.Apply(ctx, patches, doc.ID, doc.ProfileID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc.Status = domain.DocumentStatusApplied
	doc.AppliedAt = &now
	if err := s.docs.UpdateStatus(ctx, doc); err != nil {
		return nil, err
	}

	return &ApplyResult{Document: doc, Changes: summary}, nil
}

// Get returns a document by ID.
func (s *DocumentService) Get(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	return s.docs.GetByID(ctx, docID)
}

// ListByProfile returns a page of a profile's documents, newest first.
func (s *DocumentService) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, 0, err
	}
	return s.docs.ListByProfile(ctx, profileID, offset, limit)
}

// GetDownloadURL returns a presigned URL for the document's stored file.
func (s *DocumentService) GetDownloadURL(ctx context.Context, docID uuid.UUID, expirySeconds int64) (string, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, expirySeconds)
}

// GetAuditTrail returns the patch audit entries recorded against a document.
func (s *DocumentService) GetAuditTrail(ctx context.Context, docID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	if _, err := s.docs.GetByID(ctx, docID); err != nil {
		return nil, 0, err
	}
	return s.audit.ListByDocument(ctx, docID, offset, limit)
}

// Delete removes the document record and its stored file. A storage delete
// failure is logged but does not block the record delete; orphaned objects
// are cheaper than undeletable documents.
func (s *DocumentService) Delete(ctx context.Context, docID uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		log.Printf("documentService.Delete: failed to delete object %s/%s: %v", doc.S3Bucket, doc.S3Key, err)
	}

	return s.docs.Delete(ctx, docID)
}
