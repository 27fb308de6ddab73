package port

import (
	"context"

	"github.com/google/uuid"

	"cargoquote/internal/domain"
)

// VersionRepository defines the contract for quotation version persistence.
type VersionRepository interface {
	GetByID(ctx context.Context, tenantID, versionID uuid.UUID) (*domain.QuotationVersion, error)
	AppendAnomaly(ctx context.Context, tenantID, versionID uuid.UUID, anomaly domain.Anomaly) error
	ListAnomalies(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.Anomaly, error)
}

// OptionRepository defines the contract for quote option header persistence.
type OptionRepository interface {
	Create(ctx context.Context, option *domain.QuoteOption) error
	GetByID(ctx context.Context, tenantID, optionID uuid.UUID) (*domain.QuoteOption, error)
	ListByVersion(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.QuoteOption, error)
	UpdateTotals(ctx context.Context, tenantID, optionID uuid.UUID, totals domain.OptionTotals) error
}

// LegRepository defines the contract for option leg persistence.
type LegRepository interface {
	CreateBatch(ctx context.Context, legs []domain.OptionLeg) error
}

// ChargeRepository defines the contract for charge row persistence.
type ChargeRepository interface {
	CreateBatch(ctx context.Context, charges []domain.QuoteCharge) error
	// TotalsBySide sums stored amounts for an option grouped into buy and
	// sell figures by the given charge side identifiers.
	TotalsBySide(ctx context.Context, tenantID, optionID, buySideID, sellSideID uuid.UUID) (buy, sell float64, err error)
}
