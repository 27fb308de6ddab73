package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargoquote/internal/domain"
	"cargoquote/internal/port"
)

type optionRepo struct {
	db *sqlx.DB
}

// NewOptionRepo creates a new PostgreSQL-backed OptionRepository.
func NewOptionRepo(db *sqlx.DB) port.OptionRepository {
	return &optionRepo{db: db}
}

func (r *optionRepo) Create(ctx context.Context, option *domain.QuoteOption) error {
	query := `
		INSERT INTO quotation_version_options (
			id, tenant_id, quotation_version_id, carrier_rate_id,
			option_name, carrier_name,
			total_amount, total_sell, total_buy, margin_amount, margin_percentage,
			quote_currency_id, transit_time, total_transit_days, valid_until,
			reliability_score, ai_generated, ai_explanation,
			source, source_attribution, total_co2_kg, status
		) VALUES (
			:id, :tenant_id, :quotation_version_id, :carrier_rate_id,
			:option_name, :carrier_name,
			:total_amount, :total_sell, :total_buy, :margin_amount, :margin_percentage,
			:quote_currency_id, :transit_time, :total_transit_days, :valid_until,
			:reliability_score, :ai_generated, :ai_explanation,
			:source, :source_attribution, :total_co2_kg, :status
		)`
	_, err := r.db.NamedExecContext(ctx, query, option)
	if err != nil {
		return fmt.Errorf("optionRepo.Create: %w", err)
	}
	return nil
}

func (r *optionRepo) GetByID(ctx context.Context, tenantID, optionID uuid.UUID) (*domain.QuoteOption, error) {
	var option domain.QuoteOption
	err := r.db.GetContext(ctx, &option,
		"SELECT * FROM quotation_version_options WHERE tenant_id = $1 AND id = $2",
		tenantID, optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("optionRepo.GetByID: %w", err)
	}
	return &option, nil
}

func (r *optionRepo) ListByVersion(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.QuoteOption, error) {
	var options []domain.QuoteOption
	err := r.db.SelectContext(ctx, &options,
		`SELECT * FROM quotation_version_options
		 WHERE tenant_id = $1 AND quotation_version_id = $2
		 ORDER BY created_at`,
		tenantID, versionID)
	if err != nil {
		return nil, fmt.Errorf("optionRepo.ListByVersion: %w", err)
	}
	return options, nil
}

func (r *optionRepo) UpdateTotals(ctx context.Context, tenantID, optionID uuid.UUID, totals domain.OptionTotals) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quotation_version_options
		 SET total_amount = $3, total_sell = $3, total_buy = $4,
		     margin_amount = $5, margin_percentage = $6, updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, optionID,
		totals.TotalSell, totals.TotalBuy, totals.MarginAmount, totals.MarginPercentage)
	if err != nil {
		return fmt.Errorf("optionRepo.UpdateTotals: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("optionRepo.UpdateTotals rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
