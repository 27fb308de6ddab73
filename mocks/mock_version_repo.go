package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargoquote/internal/domain"
)

// MockVersionRepo is a mock implementation of port.VersionRepository.
type MockVersionRepo struct {
	mock.Mock
}

func (m *MockVersionRepo) GetByID(ctx context.Context, tenantID, versionID uuid.UUID) (*domain.QuotationVersion, error) {
	args := m.Called(ctx, tenantID, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuotationVersion), args.Error(1)
}

func (m *MockVersionRepo) AppendAnomaly(ctx context.Context, tenantID, versionID uuid.UUID, anomaly domain.Anomaly) error {
	args := m.Called(ctx, tenantID, versionID, anomaly)
	return args.Error(0)
}

func (m *MockVersionRepo) ListAnomalies(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.Anomaly, error) {
	args := m.Called(ctx, tenantID, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Anomaly), args.Error(1)
}
