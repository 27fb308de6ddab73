package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargoquote/internal/domain"
	"cargoquote/internal/service"
	"cargoquote/mocks"
)

func intPtr(v int) *int { return &v }

func TestVersionService_ListOptions_TrendsAndRanking(t *testing.T) {
	versionRepo := new(mocks.MockVersionRepo)
	optionRepo := new(mocks.MockOptionRepo)
	svc := service.NewVersionService(versionRepo, optionRepo)

	tenantID := uuid.New()
	versionID := uuid.New()

	options := []domain.QuoteOption{
		{ID: uuid.New(), CarrierName: "Maersk", TotalAmount: 1200, TotalTransitDays: intPtr(30), TotalCO2Kg: 900},
		{ID: uuid.New(), CarrierName: "CMA CGM", TotalAmount: 1000, TotalTransitDays: intPtr(35), TotalCO2Kg: 1100},
		{ID: uuid.New(), CarrierName: "Emirates SkyCargo", TotalAmount: 4000, TotalTransitDays: intPtr(4), TotalCO2Kg: 5200},
	}

	versionRepo.On("GetByID", mock.Anything, tenantID, versionID).
		Return(&domain.QuotationVersion{ID: versionID}, nil)
	optionRepo.On("ListByVersion", mock.Anything, tenantID, versionID).
		Return(options, nil)

	result, err := svc.ListOptions(context.Background(), tenantID, versionID, []string{"Maersk"})
	require.NoError(t, err)

	assert.Len(t, result.Options, 3)
	// The preferred carrier outranks cheaper and faster alternatives.
	assert.Equal(t, "Maersk", result.Options[0].CarrierName)

	require.NotNil(t, result.Trends.Cheapest)
	assert.Equal(t, "CMA CGM", result.Trends.Cheapest.CarrierName)
	require.NotNil(t, result.Trends.Fastest)
	assert.Equal(t, "Emirates SkyCargo", result.Trends.Fastest.CarrierName)
	require.NotNil(t, result.Trends.Greenest)
	assert.Equal(t, "Maersk", result.Trends.Greenest.CarrierName)

	optionRepo.AssertExpectations(t)
}

func TestVersionService_ListOptions_TenantRequired(t *testing.T) {
	svc := service.NewVersionService(new(mocks.MockVersionRepo), new(mocks.MockOptionRepo))

	_, err := svc.ListOptions(context.Background(), uuid.Nil, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrTenantRequired)
}

func TestVersionService_ListOptions_VersionNotFound(t *testing.T) {
	versionRepo := new(mocks.MockVersionRepo)
	svc := service.NewVersionService(versionRepo, new(mocks.MockOptionRepo))

	tenantID := uuid.New()
	versionID := uuid.New()
	versionRepo.On("GetByID", mock.Anything, tenantID, versionID).
		Return(nil, domain.ErrNotFound)

	_, err := svc.ListOptions(context.Background(), tenantID, versionID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionService_ListAnomalies(t *testing.T) {
	versionRepo := new(mocks.MockVersionRepo)
	svc := service.NewVersionService(versionRepo, new(mocks.MockOptionRepo))

	tenantID := uuid.New()
	versionID := uuid.New()
	expected := []domain.Anomaly{{
		Type:      domain.AnomalyTransferMismatch,
		Severity:  domain.SeverityCritical,
		Message:   "[Data Integrity Failure] Transfer Mismatch: Incoming 1500 vs Stored 1400 (Diff: 100)",
		Timestamp: time.Now().UTC(),
	}}

	versionRepo.On("ListAnomalies", mock.Anything, tenantID, versionID).Return(expected, nil)

	anomalies, err := svc.ListAnomalies(context.Background(), tenantID, versionID)
	require.NoError(t, err)
	assert.Equal(t, expected, anomalies)
	versionRepo.AssertExpectations(t)
}
