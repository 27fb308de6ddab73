package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cargoquote/internal/domain"
)

// MockLegRepo is a mock implementation of port.LegRepository.
type MockLegRepo struct {
	mock.Mock
}

func (m *MockLegRepo) CreateBatch(ctx context.Context, legs []domain.OptionLeg) error {
	args := m.Called(ctx, legs)
	return args.Error(0)
}
