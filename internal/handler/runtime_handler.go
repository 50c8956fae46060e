package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grantflow/internal/runtime"
)

// RuntimeHandler handles admin runtime endpoints.
type RuntimeHandler struct {
	controller *runtime.Controller
}

// NewRuntimeHandler creates a new RuntimeHandler.
func NewRuntimeHandler(controller *runtime.Controller) *RuntimeHandler {
	return &RuntimeHandler{controller: controller}
}

type executeActionRequest struct {
	Action  string         `json:"action"`
	Actor   string         `json:"actor"`
	Payload map[string]any `json:"payload"`
}

// Status handles GET /api/admin/runtime/status
func (h *RuntimeHandler) Status(c *gin.Context) {
	RespondOK(c, h.controller.Status())
}

// Execute handles POST /api/admin/runtime/actions
func (h *RuntimeHandler) Execute(c *gin.Context) {
	var req executeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if req.Actor == "" {
		req.Actor = "admin"
	}

	entry, err := h.controller.Execute(c.Request.Context(), req.Action, req.Actor, req.Payload)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// ActionLog handles GET /api/admin/runtime/log
func (h *RuntimeHandler) ActionLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	entries, err := h.controller.RecentLog(limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
