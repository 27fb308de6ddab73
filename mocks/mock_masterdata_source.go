package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargoquote/internal/port"
)

// MockMasterDataSource is a mock implementation of port.MasterDataSource.
type MockMasterDataSource struct {
	mock.Mock
}

func (m *MockMasterDataSource) LoadResolver(ctx context.Context, tenantID uuid.UUID) (port.MasterDataResolver, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.MasterDataResolver), args.Error(1)
}
