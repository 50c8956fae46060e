package router

import (
	"github.com/gin-gonic/gin"

	"grantflow/internal/config"
	"grantflow/internal/handler"
	"grantflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	profileH *handler.ProfileHandler,
	documentH *handler.DocumentHandler,
	opportunityH *handler.OpportunityHandler,
	runtimeH *handler.RuntimeHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	api := r.Group("/api")

	// Profiles
	profiles := api.Group("/profiles")
	profiles.POST("", profileH.Create)
	profiles.GET("", profileH.List)
	profiles.GET("/:id", profileH.Get)
	profiles.PATCH("/:id", profileH.Update)
	profiles.DELETE("/:id", profileH.Delete)

	// Profile-scoped document routes
	profiles.POST("/:id/documents", documentH.Upload)
	profiles.GET("/:id/documents", documentH.ListByProfile)
	profiles.GET("/:id/documents/export", documentH.ExportCSV)

	// Documents
	documents := api.Group("/documents")
	documents.GET("/:id", documentH.Get)
	documents.GET("/:id/download", documentH.Download)
	documents.GET("/:id/audit", documentH.AuditTrail)
	documents.POST("/:id/reparse", documentH.Reparse)
	documents.POST("/:id/apply", documentH.Apply)
	documents.DELETE("/:id", documentH.Delete)

	// Opportunities (funding sources)
	opportunities := api.Group("/opportunities")
	opportunities.GET("", opportunityH.List)
	opportunities.GET("/export", opportunityH.ExportXLSX)
	opportunities.GET("/:id", opportunityH.Get)

	// Admin runtime - static token gate
	admin := api.Group("/admin")
	admin.Use(middleware.AdminToken(cfg.Admin.Token))
	admin.GET("/runtime/status", runtimeH.Status)
	admin.GET("/runtime/log", runtimeH.ActionLog)
	admin.POST("/runtime/actions", runtimeH.Execute)

	return r
}
