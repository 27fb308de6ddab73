package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargoquote/internal/masterdata"
	"cargoquote/internal/port"
)

type masterDataRepo struct {
	db *sqlx.DB
}

// NewMasterDataRepo creates a new PostgreSQL-backed MasterDataSource.
func NewMasterDataRepo(db *sqlx.DB) port.MasterDataSource {
	return &masterDataRepo{db: db}
}

// LoadResolver reads the tenant's master data into an immutable snapshot.
// One load serves a whole transfer; individual lookups never hit the
// database.
func (r *masterDataRepo) LoadResolver(ctx context.Context, tenantID uuid.UUID) (port.MasterDataResolver, error) {
	named := func(table string) ([]masterdata.Row, error) {
		var rows []masterdata.Row
		query := fmt.Sprintf("SELECT id, name FROM %s WHERE tenant_id = $1 ORDER BY name", table)
		if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
			return nil, fmt.Errorf("masterDataRepo.LoadResolver %s: %w", table, err)
		}
		return rows, nil
	}

	categories, err := named("charge_categories")
	if err != nil {
		return nil, err
	}
	sides, err := named("charge_sides")
	if err != nil {
		return nil, err
	}
	bases, err := named("charge_bases")
	if err != nil {
		return nil, err
	}
	currencies, err := named("currencies")
	if err != nil {
		return nil, err
	}
	modes, err := named("transport_modes")
	if err != nil {
		return nil, err
	}
	providers, err := named("providers")
	if err != nil {
		return nil, err
	}

	var serviceTypes []masterdata.ServiceTypeRow
	err = r.db.SelectContext(ctx, &serviceTypes,
		`SELECT st.id, tm.name AS mode, st.name
		 FROM service_types st
		 JOIN transport_modes tm ON tm.id = st.mode_id
		 WHERE st.tenant_id = $1`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("masterDataRepo.LoadResolver service_types: %w", err)
	}

	var carrierModes []masterdata.CarrierModeRow
	err = r.db.SelectContext(ctx, &carrierModes,
		"SELECT provider_id, mode_id FROM provider_modes WHERE tenant_id = $1",
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("masterDataRepo.LoadResolver provider_modes: %w", err)
	}

	return masterdata.NewSnapshot(categories, sides, bases, currencies, modes, providers, serviceTypes, carrierModes), nil
}
