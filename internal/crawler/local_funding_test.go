package crawler_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grantflow/internal/crawler"
	"grantflow/internal/domain"
	"grantflow/mocks"
)

func TestLocalFunding_CrawlDiscoversAndPersists(t *testing.T) {
	funding := new(mocks.MockFundingSourceRepo)
	var created *domain.FundingSource
	funding.On("GetByName", mock.Anything, "Local Community Grant - 19700").
		Return(nil, domain.ErrFundingSourceNotFound)
	funding.On("Create", mock.Anything, mock.AnythingOfType("*domain.FundingSource")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.FundingSource) }).
		Return(nil)

	c := crawler.NewLocalFunding(funding)

	// Delaware has a single 300-code ZIP range, so exactly one ZIP is sampled.
	result := c.Crawl(context.Background(), []string{"DE"}, 10)

	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.OpportunitiesFound)
	assert.Empty(t, result.Errors)

	assert.NotNil(t, created)
	assert.Equal(t, "Local Community Grant - 19700", created.Name)
	assert.Equal(t, "19700", created.Address)
	assert.Equal(t, 50000.0, created.AwardAmount)
}

func TestLocalFunding_ZipsKeepLeadingZeros(t *testing.T) {
	funding := new(mocks.MockFundingSourceRepo)
	funding.On("GetByName", mock.Anything, "Local Community Grant - 02800").
		Return(nil, domain.ErrFundingSourceNotFound)
	funding.On("Create", mock.Anything, mock.AnythingOfType("*domain.FundingSource")).Return(nil)

	c := crawler.NewLocalFunding(funding)

	result := c.Crawl(context.Background(), []string{"RI"}, 10)

	assert.Equal(t, 1, result.OpportunitiesFound)
	funding.AssertExpectations(t)
}

func TestLocalFunding_ExistingSourceCountedNotRewritten(t *testing.T) {
	funding := new(mocks.MockFundingSourceRepo)
	funding.On("GetByName", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.FundingSource{Name: "Local Community Grant - 19700"}, nil)

	c := crawler.NewLocalFunding(funding)

	result := c.Crawl(context.Background(), []string{"DE"}, 10)

	assert.Equal(t, 1, result.OpportunitiesFound)
	funding.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLocalFunding_UnknownStateRecordedAsError(t *testing.T) {
	funding := new(mocks.MockFundingSourceRepo)

	c := crawler.NewLocalFunding(funding)

	result := c.Crawl(context.Background(), []string{"ZZ"}, 10)

	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 0, result.OpportunitiesFound)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "ZZ", result.Errors[0].Item)
}

func TestAllStates_CoversFiftyStates(t *testing.T) {
	states := crawler.AllStates()

	assert.Len(t, states, 50)
	assert.Contains(t, states, "CA")
	assert.Contains(t, states, "WY")
}

func TestAllStates_SortedAndStable(t *testing.T) {
	states := crawler.AllStates()

	assert.True(t, sort.StringsAreSorted(states))
	assert.Equal(t, states, crawler.AllStates())
}
