package service

import (
	"context"

	"github.com/google/uuid"

	"cargoquote/internal/domain"
	"cargoquote/internal/port"
	"cargoquote/internal/quote"
)

// VersionOptions is the advisor view of one version: ranked options plus the
// headline trend picks.
type VersionOptions struct {
	Options []domain.QuoteOption `json:"options"`
	Trends  quote.MarketTrends   `json:"trends"`
}

// VersionService reads quotation versions and their transferred options.
type VersionService interface {
	ListOptions(ctx context.Context, tenantID, versionID uuid.UUID, preferredCarriers []string) (*VersionOptions, error)
	ListAnomalies(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.Anomaly, error)
}

type versionService struct {
	versionRepo port.VersionRepository
	optionRepo  port.OptionRepository
}

// NewVersionService creates a new VersionService implementation.
func NewVersionService(versionRepo port.VersionRepository, optionRepo port.OptionRepository) VersionService {
	return &versionService{versionRepo: versionRepo, optionRepo: optionRepo}
}

func (s *versionService) ListOptions(ctx context.Context, tenantID, versionID uuid.UUID, preferredCarriers []string) (*VersionOptions, error) {
	if tenantID == uuid.Nil {
		return nil, domain.ErrTenantRequired
	}
	if _, err := s.versionRepo.GetByID(ctx, tenantID, versionID); err != nil {
		return nil, err
	}

	options, err := s.optionRepo.ListByVersion(ctx, tenantID, versionID)
	if err != nil {
		return nil, err
	}

	ranked := quote.RankOptions(options, preferredCarriers)
	return &VersionOptions{
		Options: ranked,
		Trends:  quote.SelectMarketTrends(ranked),
	}, nil
}

func (s *versionService) ListAnomalies(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.Anomaly, error) {
	if tenantID == uuid.Nil {
		return nil, domain.ErrTenantRequired
	}
	return s.versionRepo.ListAnomalies(ctx, tenantID, versionID)
}
