package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"grantflow/internal/domain"
	"grantflow/internal/export"
	"grantflow/internal/port"
)

// OpportunityService surfaces the funding sources known to the system,
// whether discovered from uploaded letters or seeded by crawls.
type OpportunityService struct {
	funding port.FundingSourceRepository
}

// NewOpportunityService wires an OpportunityService.
func NewOpportunityService(funding port.FundingSourceRepository) *OpportunityService {
	return &OpportunityService{funding: funding}
}

// List returns a page of funding sources ordered by name. A database that
// predates the funding_sources migration simply has no opportunities yet,
// so the absent table reads as an empty page rather than an error.
func (s *OpportunityService) List(ctx context.Context, offset, limit int) ([]domain.FundingSource, int, error) {
	exists, err := s.funding.TableExists(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		log.Printf("opportunityService.List: funding_sources table not found, returning empty list")
		return []domain.FundingSource{}, 0, nil
	}
	return s.funding.List(ctx, offset, limit)
}

// Get returns a funding source by ID.
func (s *OpportunityService) Get(ctx context.Context, id uuid.UUID) (*domain.FundingSource, error) {
	return s.funding.GetByID(ctx, id)
}

// ExportXLSX renders every funding source as an XLSX workbook.
func (s *OpportunityService) ExportXLSX(ctx context.Context) ([]byte, error) {
	sources, _, err := s.List(ctx, 0, 10000)
	if err != nil {
		return nil, err
	}
	return export.FundingSourcesXLSX(sources)
}
