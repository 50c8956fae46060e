package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grantflow/internal/export"
	"grantflow/internal/service"
)

// DocumentHandler handles document upload, parsing, and patch endpoints.
type DocumentHandler struct {
	documentService *service.DocumentService
	presignExpiry   int64
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *service.DocumentService, presignExpiry int64) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, presignExpiry: presignExpiry}
}

// Upload handles POST /api/profiles/:id/documents (multipart form, "file" field).
func (h *DocumentHandler) Upload(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.Request.Context(), service.UploadDocumentInput{
		ProfileID:   profileID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, doc)
}

// ListByProfile handles GET /api/profiles/:id/documents
func (h *DocumentHandler) ListByProfile(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.ListByProfile(c.Request.Context(), profileID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Download handles GET /api/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), docID, h.presignExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Reparse handles POST /api/documents/:id/reparse
func (h *DocumentHandler) Reparse(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Reparse(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, doc)
}

// Apply handles POST /api/documents/:id/apply
func (h *DocumentHandler) Apply(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.documentService.ApplyPatches(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// AuditTrail handles GET /api/documents/:id/audit
func (h *DocumentHandler) AuditTrail(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, total, err := h.documentService.GetAuditTrail(c.Request.Context(), docID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// ExportCSV handles GET /api/profiles/:id/documents/export
func (h *DocumentHandler) ExportCSV(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	docs, _, err := h.documentService.ListByProfile(c.Request.Context(), profileID, 0, 10000)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("documents_"+profileID.String(), "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Writer.WriteHeader(http.StatusOK)
	_, _ = c.Writer.Write(export.BOM)

	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteDocuments(docs); err != nil {
		return
	}
	w.Flush()
}
