package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"grantflow/internal/domain"
)

type MockFundingSourceRepo struct {
	mock.Mock
}

func (m *MockFundingSourceRepo) Create(ctx context.Context, fs *domain.FundingSource) error {
	args := m.Called(ctx, fs)
	return args.Error(0)
}

func (m *MockFundingSourceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingSource), args.Error(1)
}

func (m *MockFundingSourceRepo) GetByName(ctx context.Context, name string) (*domain.FundingSource, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingSource), args.Error(1)
}

func (m *MockFundingSourceRepo) List(ctx context.Context, offset, limit int) ([]domain.FundingSource, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.FundingSource), args.Int(1), args.Error(2)
}

func (m *MockFundingSourceRepo) Update(ctx context.Context, fs *domain.FundingSource) error {
	args := m.Called(ctx, fs)
	return args.Error(0)
}

func (m *MockFundingSourceRepo) TableExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
