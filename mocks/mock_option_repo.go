package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargoquote/internal/domain"
)

// MockOptionRepo is a mock implementation of port.OptionRepository.
type MockOptionRepo struct {
	mock.Mock
}

func (m *MockOptionRepo) Create(ctx context.Context, option *domain.QuoteOption) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockOptionRepo) GetByID(ctx context.Context, tenantID, optionID uuid.UUID) (*domain.QuoteOption, error) {
	args := m.Called(ctx, tenantID, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteOption), args.Error(1)
}

func (m *MockOptionRepo) ListByVersion(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.QuoteOption, error) {
	args := m.Called(ctx, tenantID, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteOption), args.Error(1)
}

func (m *MockOptionRepo) UpdateTotals(ctx context.Context, tenantID, optionID uuid.UUID, totals domain.OptionTotals) error {
	args := m.Called(ctx, tenantID, optionID, totals)
	return args.Error(0)
}
