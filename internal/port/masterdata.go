package port

import (
	"context"

	"github.com/google/uuid"
)

// MasterDataResolver translates free-text rate vocabulary into tenant
// master-data identifiers. Every lookup returns uuid.Nil when nothing
// matches; unresolved identifiers are an expected condition, not an error.
type MasterDataResolver interface {
	CategoryID(name string) uuid.UUID
	SideID(code string) uuid.UUID
	BasisID(code string) uuid.UUID
	CurrencyID(code string) uuid.UUID
	ServiceTypeID(mode, tier string) uuid.UUID
	ModeID(name string) uuid.UUID
	ProviderID(name string) uuid.UUID
	// CarrierServesMode reports whether the provider is registered for the
	// transport mode. Unknown identifiers report false.
	CarrierServesMode(providerID, modeID uuid.UUID) bool
}

// MasterDataSource loads a point-in-time resolver for one tenant.
type MasterDataSource interface {
	LoadResolver(ctx context.Context, tenantID uuid.UUID) (MasterDataResolver, error)
}

// Ref is a caller-supplied reference row used as a secondary lookup when the
// resolver has no match.
type Ref struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// ServiceTypeRef is a caller-supplied service type row.
type ServiceTypeRef struct {
	ID   uuid.UUID `json:"id"`
	Mode string    `json:"mode"`
	Name string    `json:"name"`
}

// QuoteContext carries the request-scoped reference data that accompanies a
// rate transfer. All slices may be empty.
type QuoteContext struct {
	Origin       string           `json:"origin"`
	Destination  string           `json:"destination"`
	Ports        []Ref            `json:"ports"`
	Categories   []Ref            `json:"categories"`
	Carriers     []Ref            `json:"carriers"`
	ServiceTypes []ServiceTypeRef `json:"service_types"`
}
