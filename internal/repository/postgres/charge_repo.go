package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargoquote/internal/domain"
	"cargoquote/internal/port"
)

type chargeRepo struct {
	db *sqlx.DB
}

// NewChargeRepo creates a new PostgreSQL-backed ChargeRepository.
func NewChargeRepo(db *sqlx.DB) port.ChargeRepository {
	return &chargeRepo{db: db}
}

func (r *chargeRepo) CreateBatch(ctx context.Context, charges []domain.QuoteCharge) error {
	if len(charges) == 0 {
		return nil
	}

	const cols = 13
	valueStrings := make([]string, 0, len(charges))
	valueArgs := make([]interface{}, 0, len(charges)*cols)

	for i, charge := range charges {
		base := i * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			charge.ID, charge.TenantID, charge.OptionID, charge.LegID,
			charge.CategoryID, charge.BasisID, charge.ChargeSideID,
			charge.Quantity, charge.Rate, charge.Amount,
			charge.CurrencyID, charge.Note, charge.Unit)
	}

	query := fmt.Sprintf(
		`INSERT INTO quote_charges (
			id, tenant_id, quote_option_id, leg_id,
			category_id, basis_id, charge_side_id,
			quantity, rate, amount,
			currency_id, note, unit
		) VALUES %s`,
		strings.Join(valueStrings, ", "))

	_, err := r.db.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		return fmt.Errorf("chargeRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *chargeRepo) TotalsBySide(ctx context.Context, tenantID, optionID, buySideID, sellSideID uuid.UUID) (float64, float64, error) {
	var totals struct {
		Buy  float64 `db:"buy"`
		Sell float64 `db:"sell"`
	}
	err := r.db.GetContext(ctx, &totals,
		`SELECT
			COALESCE(SUM(CASE WHEN charge_side_id = $3 THEN amount ELSE 0 END), 0) AS buy,
			COALESCE(SUM(CASE WHEN charge_side_id = $4 THEN amount ELSE 0 END), 0) AS sell
		 FROM quote_charges
		 WHERE tenant_id = $1 AND quote_option_id = $2`,
		tenantID, optionID, buySideID, sellSideID)
	if err != nil {
		return 0, 0, fmt.Errorf("chargeRepo.TotalsBySide: %w", err)
	}
	return totals.Buy, totals.Sell, nil
}
