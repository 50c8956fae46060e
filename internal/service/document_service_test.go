package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grantflow/internal/domain"
	"grantflow/internal/extractor"
	"grantflow/internal/patch"
	"grantflow/internal/port"
	"grantflow/internal/service"
	"grantflow/mocks"
)

func setupDocumentService() (
	*service.DocumentService,
	*mocks.MockDocumentRepo,
	*mocks.MockProfileRepo,
	*mocks.MockAuditRepo,
	*mocks.MockObjectStorage,
	*mocks.MockTextExtractor,
) {
	docs := new(mocks.MockDocumentRepo)
	profiles := new(mocks.MockProfileRepo)
	audit := new(mocks.MockAuditRepo)
	storage := new(mocks.MockObjectStorage)
	text := new(mocks.MockTextExtractor)
	funding := new(mocks.MockFundingSourceRepo)
	applier := patch.NewApplier(profiles, funding, audit, 0.7)
	svc := service.NewDocumentService(
		docs, profiles, audit, storage,
		extractor.NewRegistry(text), applier,
		"grantflow-uploads", 10,
	)
	return svc, docs, profiles, audit, storage, text
}

// --- Upload ---

func TestDocumentService_Upload_Success(t *testing.T) {
	svc, docs, profiles, _, storage, text := setupDocumentService()
	profileID := uuid.New()

	profiles.On("GetByID", mock.Anything, profileID).Return(&domain.Profile{ID: profileID}, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "s3://grantflow-uploads/x"}, nil)
	docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	// Background goroutine calls - we need to allow these
	docs.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Document{
		ID:        uuid.New(),
		ProfileID: profileID,
		S3Bucket:  "grantflow-uploads",
		S3Key:     "documents/x",
		MimeType:  "application/pdf",
		Status:    domain.DocumentStatusUploaded,
	}, nil).Maybe()
	docs.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil).Maybe()
	docs.On("UpdateParseResults", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil).Maybe()
	storage.On("Download", mock.Anything, "grantflow-uploads", mock.Anything).
		Return([]byte("%PDF-1.4 content"), nil).Maybe()
	text.On("Supports", "application/pdf").Return(true).Maybe()
	text.On("Extract", mock.Anything, mock.Anything).Return("DRIVER LICENSE DOB 03/15/1990", nil).Maybe()

	doc, err := svc.Upload(context.Background(), service.UploadDocumentInput{
		ProfileID:   profileID,
		Filename:    "license.pdf",
		ContentType: "application/pdf",
		Size:        16,
		Body:        bytes.NewReader([]byte("%PDF-1.4 content")),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusUploaded, doc.Status)
	assert.Equal(t, "license.pdf", doc.OriginalFilename)
	assert.Equal(t, "grantflow-uploads", doc.S3Bucket)
	assert.Contains(t, doc.S3Key, "documents/"+profileID.String())
	assert.Len(t, doc.SHA256, 64)
	assert.Equal(t, int64(16), doc.SizeBytes)

	// Wait briefly for the parse goroutine to start (not for completion)
	time.Sleep(50 * time.Millisecond)

	profiles.AssertExpectations(t)
	storage.AssertCalled(t, "Upload", mock.Anything, mock.AnythingOfType("port.UploadInput"))
	docs.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.Document"))
}

func TestDocumentService_Upload_UnsupportedContentType(t *testing.T) {
	svc, _, _, _, storage, _ := setupDocumentService()

	doc, err := svc.Upload(context.Background(), service.UploadDocumentInput{
		ProfileID:   uuid.New(),
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Size:        10,
		Body:        bytes.NewReader([]byte("hello")),
	})

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentService_Upload_FileTooLarge(t *testing.T) {
	svc, _, _, _, _, _ := setupDocumentService()

	doc, err := svc.Upload(context.Background(), service.UploadDocumentInput{
		ProfileID:   uuid.New(),
		Filename:    "huge.pdf",
		ContentType: "application/pdf",
		Size:        11 * 1024 * 1024,
		Body:        bytes.NewReader([]byte("x")),
	})

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestDocumentService_Upload_ProfileNotFound(t *testing.T) {
	svc, _, profiles, _, _, _ := setupDocumentService()
	profileID := uuid.New()

	profiles.On("GetByID", mock.Anything, profileID).Return(nil, domain.ErrProfileNotFound)

	doc, err := svc.Upload(context.Background(), service.UploadDocumentInput{
		ProfileID:   profileID,
		Filename:    "license.pdf",
		ContentType: "application/pdf",
		Size:        5,
		Body:        bytes.NewReader([]byte("x")),
	})

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestDocumentService_Upload_StorageFailure(t *testing.T) {
	svc, docs, profiles, _, storage, _ := setupDocumentService()
	profileID := uuid.New()

	profiles.On("GetByID", mock.Anything, profileID).Return(&domain.Profile{ID: profileID}, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, assert.AnError)

	doc, err := svc.Upload(context.Background(), service.UploadDocumentInput{
		ProfileID:   profileID,
		Filename:    "license.pdf",
		ContentType: "application/pdf",
		Size:        5,
		Body:        bytes.NewReader([]byte("x")),
	})

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	docs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- ApplyPatches ---

func TestDocumentService_ApplyPatches_NotParsed(t *testing.T) {
	svc, docs, _, _, _, _ := setupDocumentService()
	docID := uuid.New()

	docs.On("GetByID", mock.Anything, docID).
		Return(&domain.Document{ID: docID, Status: domain.DocumentStatusUploaded}, nil)

	result, err := svc.ApplyPatches(context.Background(), docID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDocumentNotParsed)
}

func TestDocumentService_ApplyPatches_NoPatches(t *testing.T) {
	svc, docs, _, _, _, _ := setupDocumentService()
	docID := uuid.New()

	docs.On("GetByID", mock.Anything, docID).
		Return(&domain.Document{ID: docID, Status: domain.DocumentStatusParsed}, nil)

	result, err := svc.ApplyPatches(context.Background(), docID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNoPatchesAvailable)
}

func TestDocumentService_ApplyPatches_Success(t *testing.T) {
	svc, docs, profiles, audit, _, _ := setupDocumentService()
	docID := uuid.New()
	profileID := uuid.New()

	patches := json.RawMessage(`{
		"profile": {"set": {"full_name": {"value": "John Doe", "confidence": 0.9}}},
		"funding_sources": []
	}`)
	docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:                   docID,
		ProfileID:            profileID,
		Status:               domain.DocumentStatusParsed,
		SuggestedPatchesJSON: patches,
	}, nil)
	profiles.On("GetByID", mock.Anything, profileID).Return(&domain.Profile{ID: profileID}, nil)
	profiles.On("Update", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)
	audit.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditEntry")).Return(nil)
	docs.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	result, err := svc.ApplyPatches(context.Background(), docID)

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusApplied, result.Document.Status)
	assert.NotNil(t, result.Document.AppliedAt)
	assert.Len(t, result.Changes.Profile, 1)
	assert.Equal(t, "full_name", result.Changes.Profile[0].Field)
	docs.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestDocumentService_ApplyPatches_ReapplyIsFieldLevelNoOp(t *testing.T) {
	svc, docs, profiles, _, _, _ := setupDocumentService()
	docID := uuid.New()
	profileID := uuid.New()

	patches := json.RawMessage(`{
		"profile": {"set": {"full_name": {"value": "John Doe", "confidence": 0.9}}},
		"funding_sources": []
	}`)
	docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:                   docID,
		ProfileID:            profileID,
		Status:               domain.DocumentStatusApplied,
		SuggestedPatchesJSON: patches,
	}, nil)
	profiles.On("GetByID", mock.Anything, profileID).
		Return(&domain.Profile{ID: profileID, FullName: "John Doe"}, nil)
	docs.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	result, err := svc.ApplyPatches(context.Background(), docID)

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusApplied, result.Document.Status)
	assert.Empty(t, result.Changes.Profile)
	profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// --- Reparse ---

func TestDocumentService_Reparse(t *testing.T) {
	svc, docs, _, _, storage, text := setupDocumentService()
	docID := uuid.New()

	doc := &domain.Document{
		ID:       docID,
		S3Bucket: "grantflow-uploads",
		S3Key:    "documents/x",
		MimeType: "application/pdf",
		Status:   domain.DocumentStatusFailed,
	}
	docs.On("GetByID", mock.Anything, docID).Return(doc, nil)
	docs.On("UpdateStatus", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)
	docs.On("UpdateParseResults", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil).Maybe()
	storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return([]byte("data"), nil).Maybe()
	text.On("Supports", mock.Anything).Return(true).Maybe()
	text.On("Extract", mock.Anything, mock.Anything).Return("text", nil).Maybe()

	updated, err := svc.Reparse(context.Background(), docID)

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusParsing, updated.Status)

	time.Sleep(50 * time.Millisecond)
}

func TestDocumentService_Reparse_NotFound(t *testing.T) {
	svc, docs, _, _, _, _ := setupDocumentService()
	docID := uuid.New()

	docs.On("GetByID", mock.Anything, docID).Return(nil, domain.ErrDocumentNotFound)

	updated, err := svc.Reparse(context.Background(), docID)

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

// --- Download / Delete ---

func TestDocumentService_GetDownloadURL(t *testing.T) {
	svc, docs, _, _, storage, _ := setupDocumentService()
	docID := uuid.New()

	docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:       docID,
		S3Bucket: "grantflow-uploads",
		S3Key:    "documents/x/license.pdf",
	}, nil)
	storage.On("GetPresignedURL", mock.Anything, "grantflow-uploads", "documents/x/license.pdf", int64(3600)).
		Return("https://s3.example.com/presigned", nil)

	url, err := svc.GetDownloadURL(context.Background(), docID, 3600)

	assert.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/presigned", url)
}

func TestDocumentService_Delete_StorageFailureStillDeletesRecord(t *testing.T) {
	svc, docs, _, _, storage, _ := setupDocumentService()
	docID := uuid.New()

	docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{
		ID:       docID,
		S3Bucket: "grantflow-uploads",
		S3Key:    "documents/x",
	}, nil)
	storage.On("Delete", mock.Anything, "grantflow-uploads", "documents/x").Return(assert.AnError)
	docs.On("Delete", mock.Anything, docID).Return(nil)

	err := svc.Delete(context.Background(), docID)

	assert.NoError(t, err)
	docs.AssertExpectations(t)
}

// --- Audit trail ---

func TestDocumentService_GetAuditTrail(t *testing.T) {
	svc, docs, _, audit, _, _ := setupDocumentService()
	docID := uuid.New()

	docs.On("GetByID", mock.Anything, docID).Return(&domain.Document{ID: docID}, nil)
	audit.On("ListByDocument", mock.Anything, docID, 0, 20).
		Return([]domain.AuditEntry{{DocumentID: docID}}, 1, nil)

	entries, total, err := svc.GetAuditTrail(context.Background(), docID, 0, 20)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, total)
}
