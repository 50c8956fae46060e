package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grantflow/internal/domain"
	"grantflow/internal/service"
	"grantflow/mocks"
)

func setupOpportunityService() (*service.OpportunityService, *mocks.MockFundingSourceRepo) {
	funding := new(mocks.MockFundingSourceRepo)
	return service.NewOpportunityService(funding), funding
}

func TestOpportunityService_List(t *testing.T) {
	svc, funding := setupOpportunityService()

	funding.On("TableExists", mock.Anything).Return(true, nil)
	funding.On("List", mock.Anything, 0, 20).
		Return([]domain.FundingSource{{Name: "The Smith Foundation"}}, 1, nil)

	sources, total, err := svc.List(context.Background(), 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, sources, 1)
	assert.Equal(t, "The Smith Foundation", sources[0].Name)
}

func TestOpportunityService_List_MissingTableReturnsEmpty(t *testing.T) {
	svc, funding := setupOpportunityService()

	funding.On("TableExists", mock.Anything).Return(false, nil)

	sources, total, err := svc.List(context.Background(), 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)
	funding.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpportunityService_Get(t *testing.T) {
	svc, funding := setupOpportunityService()
	id := uuid.New()

	funding.On("GetByID", mock.Anything, id).
		Return(&domain.FundingSource{ID: id, Name: "Local Community Grant - 19700"}, nil)

	source, err := svc.Get(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "Local Community Grant - 19700", source.Name)
}

func TestOpportunityService_Get_NotFound(t *testing.T) {
	svc, funding := setupOpportunityService()
	id := uuid.New()

	funding.On("GetByID", mock.Anything, id).Return(nil, domain.ErrFundingSourceNotFound)

	_, err := svc.Get(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrFundingSourceNotFound)
}

func TestOpportunityService_ExportXLSX_MissingTableStillExports(t *testing.T) {
	svc, funding := setupOpportunityService()

	funding.On("TableExists", mock.Anything).Return(false, nil)

	raw, err := svc.ExportXLSX(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, raw)
	funding.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
