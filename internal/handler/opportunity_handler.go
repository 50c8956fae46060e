package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grantflow/internal/export"
	"grantflow/internal/service"
)

// OpportunityHandler handles funding source listing and export endpoints.
type OpportunityHandler struct {
	opportunityService *service.OpportunityService
}

// NewOpportunityHandler creates a new OpportunityHandler.
func NewOpportunityHandler(opportunityService *service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// List handles GET /api/opportunities
func (h *OpportunityHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	sources, total, err := h.opportunityService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, sources, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/opportunities/:id
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	source, err := h.opportunityService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, source)
}

// ExportXLSX handles GET /api/opportunities/export
func (h *OpportunityHandler) ExportXLSX(c *gin.Context) {
	data, err := h.opportunityService.ExportXLSX(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("funding_sources", "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
