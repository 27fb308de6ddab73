package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"cargoquote/internal/domain"
	"cargoquote/internal/port"
)

type legRepo struct {
	db *sqlx.DB
}

// NewLegRepo creates a new PostgreSQL-backed LegRepository.
func NewLegRepo(db *sqlx.DB) port.LegRepository {
	return &legRepo{db: db}
}

func (r *legRepo) CreateBatch(ctx context.Context, legs []domain.OptionLeg) error {
	if len(legs) == 0 {
		return nil
	}

	const cols = 16
	valueStrings := make([]string, 0, len(legs))
	valueArgs := make([]interface{}, 0, len(legs)*cols)

	for i, leg := range legs {
		base := i * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			leg.ID, leg.TenantID, leg.OptionID,
			leg.ModeID, leg.Mode, leg.ServiceTypeID, leg.ProviderID,
			leg.OriginLocation, leg.DestinationLocation,
			leg.OriginLocationID, leg.DestinationLocationID,
			leg.SortOrder, leg.LegType, leg.TransitTimeHours, leg.CO2Kg, leg.VoyageNumber)
	}

	query := fmt.Sprintf(
		`INSERT INTO quotation_version_option_legs (
			id, tenant_id, quotation_version_option_id,
			mode_id, mode, service_type_id, provider_id,
			origin_location, destination_location,
			origin_location_id, destination_location_id,
			sort_order, leg_type, transit_time_hours, co2_kg, voyage_number
		) VALUES %s`,
		strings.Join(valueStrings, ", "))

	_, err := r.db.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		return fmt.Errorf("legRepo.CreateBatch: %w", err)
	}
	return nil
}
