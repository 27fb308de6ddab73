package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargoquote/internal/domain"
	"cargoquote/internal/port"
)

type versionRepo struct {
	db *sqlx.DB
}

// NewVersionRepo creates a new PostgreSQL-backed VersionRepository.
func NewVersionRepo(db *sqlx.DB) port.VersionRepository {
	return &versionRepo{db: db}
}

func (r *versionRepo) GetByID(ctx context.Context, tenantID, versionID uuid.UUID) (*domain.QuotationVersion, error) {
	var version domain.QuotationVersion
	err := r.db.GetContext(ctx, &version,
		"SELECT * FROM quotation_versions WHERE tenant_id = $1 AND id = $2",
		tenantID, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("versionRepo.GetByID: %w", err)
	}
	return &version, nil
}

func (r *versionRepo) AppendAnomaly(ctx context.Context, tenantID, versionID uuid.UUID, anomaly domain.Anomaly) error {
	payload, err := json.Marshal(anomaly)
	if err != nil {
		return fmt.Errorf("versionRepo.AppendAnomaly marshal: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE quotation_versions
		 SET anomalies = COALESCE(anomalies, '[]'::jsonb) || $3::jsonb,
		     updated_at = NOW()
		 WHERE tenant_id = $1 AND id = $2`,
		tenantID, versionID, payload)
	if err != nil {
		return fmt.Errorf("versionRepo.AppendAnomaly: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("versionRepo.AppendAnomaly rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *versionRepo) ListAnomalies(ctx context.Context, tenantID, versionID uuid.UUID) ([]domain.Anomaly, error) {
	var raw json.RawMessage
	err := r.db.GetContext(ctx, &raw,
		"SELECT COALESCE(anomalies, '[]'::jsonb) FROM quotation_versions WHERE tenant_id = $1 AND id = $2",
		tenantID, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("versionRepo.ListAnomalies: %w", err)
	}

	var anomalies []domain.Anomaly
	if err := json.Unmarshal(raw, &anomalies); err != nil {
		return nil, fmt.Errorf("versionRepo.ListAnomalies decode: %w", err)
	}
	return anomalies, nil
}
