package main

import (
	"fmt"
	"log"

	"grantflow/internal/config"
	"grantflow/internal/crawler"
	"grantflow/internal/extractor"
	"grantflow/internal/handler"
	"grantflow/internal/patch"
	"grantflow/internal/repository/postgres"
	"grantflow/internal/router"
	"grantflow/internal/runtime"
	"grantflow/internal/service"
	s3storage "grantflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	fundingRepo := postgres.NewFundingSourceRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize parsing collaborators
	extractors := extractor.NewRegistry(
		extractor.NewPDFExtractor(),
		extractor.NewDOCXExtractor(),
		extractor.NewOCRExtractor(extractor.OCRConfig{
			Binary:   cfg.OCR.Binary,
			Language: cfg.OCR.Language,
		}, nil),
	)
	applier := patch.NewApplier(profileRepo, fundingRepo, auditRepo, cfg.Parser.ApplyThreshold)

	// Initialize services
	profileSvc := service.NewProfileService(profileRepo)
	documentSvc := service.NewDocumentService(
		documentRepo, profileRepo, auditRepo, s3Client, extractors, applier,
		cfg.S3.Bucket, cfg.S3.MaxFileSizeMB)
	opportunitySvc := service.NewOpportunityService(fundingRepo)

	// Initialize admin runtime
	actionLog := runtime.NewActionLog(cfg.Runtime.ActionLogPath, cfg.Runtime.ActionLogMaxEntries)
	localFunding := crawler.NewLocalFunding(fundingRepo)
	controller := runtime.NewController(actionLog, localFunding)

	// Initialize handlers
	profileH := handler.NewProfileHandler(profileSvc)
	documentH := handler.NewDocumentHandler(documentSvc, cfg.S3.PresignExpiry)
	opportunityH := handler.NewOpportunityHandler(opportunitySvc)
	runtimeH := handler.NewRuntimeHandler(controller)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, profileH, documentH, opportunityH, runtimeH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
