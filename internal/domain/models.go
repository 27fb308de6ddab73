package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuotationVersion is one priced revision of a quotation. Options attach to a
// version; data-integrity anomalies detected while transferring options are
// appended to its anomaly list.
type QuotationVersion struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	QuotationID   uuid.UUID       `db:"quotation_id" json:"quotation_id"`
	VersionNumber int             `db:"version_number" json:"version_number"`
	Anomalies     json.RawMessage `db:"anomalies" json:"anomalies"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Anomaly is a structured data-integrity signal recorded on a version.
type Anomaly struct {
	Type      AnomalyType     `json:"type"`
	Severity  AnomalySeverity `json:"severity"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	OptionID  uuid.UUID       `json:"option_id"`
}

// QuoteOption is the header row of one transferred rate option. Aggregate
// totals are estimates until the reconciliation step overwrites them from the
// charge rows that were actually stored.
type QuoteOption struct {
	ID                 uuid.UUID    `db:"id" json:"id"`
	TenantID           uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	QuotationVersionID uuid.UUID    `db:"quotation_version_id" json:"quotation_version_id"`
	CarrierRateID      *uuid.UUID   `db:"carrier_rate_id" json:"carrier_rate_id"`
	OptionName         string       `db:"option_name" json:"option_name"`
	CarrierName        string       `db:"carrier_name" json:"carrier_name"`
	TotalAmount        float64      `db:"total_amount" json:"total_amount"`
	TotalSell          float64      `db:"total_sell" json:"total_sell"`
	TotalBuy           float64      `db:"total_buy" json:"total_buy"`
	MarginAmount       float64      `db:"margin_amount" json:"margin_amount"`
	MarginPercentage   float64      `db:"margin_percentage" json:"margin_percentage"`
	QuoteCurrencyID    *uuid.UUID   `db:"quote_currency_id" json:"quote_currency_id"`
	TransitTime        string       `db:"transit_time" json:"transit_time"`
	TotalTransitDays   *int         `db:"total_transit_days" json:"total_transit_days"`
	ValidUntil         *time.Time   `db:"valid_until" json:"valid_until"`
	ReliabilityScore   float64      `db:"reliability_score" json:"reliability_score"`
	AIGenerated        bool         `db:"ai_generated" json:"ai_generated"`
	AIExplanation      string       `db:"ai_explanation" json:"ai_explanation"`
	Source             QuoteSource  `db:"source" json:"source"`
	SourceAttribution  string       `db:"source_attribution" json:"source_attribution"`
	TotalCO2Kg         float64      `db:"total_co2_kg" json:"total_co2_kg"`
	Status             OptionStatus `db:"status" json:"status"`
	CreatedAt          time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at" json:"updated_at"`
}

// OptionTotals carries the authoritative aggregate figures recomputed from
// stored charge rows during reconciliation.
type OptionTotals struct {
	TotalBuy         float64
	TotalSell        float64
	MarginAmount     float64
	MarginPercentage float64
}

// OptionLeg is one transport segment of a persisted quote option. Master-data
// identifiers that failed to resolve are stored as NULL rather than aborting
// the leg.
type OptionLeg struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	TenantID              uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	OptionID              uuid.UUID  `db:"quotation_version_option_id" json:"quotation_version_option_id"`
	ModeID                *uuid.UUID `db:"mode_id" json:"mode_id"`
	Mode                  string     `db:"mode" json:"mode"`
	ServiceTypeID         *uuid.UUID `db:"service_type_id" json:"service_type_id"`
	ProviderID            *uuid.UUID `db:"provider_id" json:"provider_id"`
	OriginLocation        string     `db:"origin_location" json:"origin_location"`
	DestinationLocation   string     `db:"destination_location" json:"destination_location"`
	OriginLocationID      *uuid.UUID `db:"origin_location_id" json:"origin_location_id"`
	DestinationLocationID *uuid.UUID `db:"destination_location_id" json:"destination_location_id"`
	SortOrder             int        `db:"sort_order" json:"sort_order"`
	LegType               LegType    `db:"leg_type" json:"leg_type"`
	TransitTimeHours      *int       `db:"transit_time_hours" json:"transit_time_hours"`
	CO2Kg                 *float64   `db:"co2_kg" json:"co2_kg"`
	VoyageNumber          string     `db:"voyage_number" json:"voyage_number"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
}

// QuoteCharge is one stored charge row. Every logical charge becomes exactly
// two rows sharing leg, category, basis, and currency and differing only in
// charge side and amount.
type QuoteCharge struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	OptionID     uuid.UUID  `db:"quote_option_id" json:"quote_option_id"`
	LegID        uuid.UUID  `db:"leg_id" json:"leg_id"`
	CategoryID   uuid.UUID  `db:"category_id" json:"category_id"`
	BasisID      *uuid.UUID `db:"basis_id" json:"basis_id"`
	ChargeSideID uuid.UUID  `db:"charge_side_id" json:"charge_side_id"`
	Quantity     float64    `db:"quantity" json:"quantity"`
	Rate         float64    `db:"rate" json:"rate"`
	Amount       float64    `db:"amount" json:"amount"`
	CurrencyID   *uuid.UUID `db:"currency_id" json:"currency_id"`
	Note         string     `db:"note" json:"note"`
	Unit         string     `db:"unit" json:"unit"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
