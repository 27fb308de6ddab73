package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargoquote/internal/domain"
)

// MockChargeRepo is a mock implementation of port.ChargeRepository.
type MockChargeRepo struct {
	mock.Mock
}

func (m *MockChargeRepo) CreateBatch(ctx context.Context, charges []domain.QuoteCharge) error {
	args := m.Called(ctx, charges)
	return args.Error(0)
}

func (m *MockChargeRepo) TotalsBySide(ctx context.Context, tenantID, optionID, buySideID, sellSideID uuid.UUID) (float64, float64, error) {
	args := m.Called(ctx, tenantID, optionID, buySideID, sellSideID)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}
