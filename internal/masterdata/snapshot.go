// Package masterdata resolves free-text rate vocabulary (category names,
// charge sides, currency and carrier names) against a tenant's master data
// using an immutable in-memory snapshot.
package masterdata

import (
	"strings"

	"github.com/google/uuid"
)

// Row is one named master-data record.
type Row struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// ServiceTypeRow is one service type record with its transport mode.
type ServiceTypeRow struct {
	ID   uuid.UUID `db:"id"`
	Mode string    `db:"mode"`
	Name string    `db:"name"`
}

// CarrierModeRow links a provider to a transport mode it services.
type CarrierModeRow struct {
	ProviderID uuid.UUID `db:"provider_id"`
	ModeID     uuid.UUID `db:"mode_id"`
}

// Snapshot is a point-in-time view of one tenant's master data. It is
// immutable after construction and safe for concurrent use.
type Snapshot struct {
	categories map[string]uuid.UUID
	sides      map[string]uuid.UUID
	bases      map[string]uuid.UUID
	currencies map[string]uuid.UUID
	modes      map[string]uuid.UUID

	providerIDs   map[string]uuid.UUID
	providerNames []string

	serviceByModeTier map[string]uuid.UUID
	serviceByMode     map[string]uuid.UUID

	carrierModes map[string]bool
}

// NewSnapshot indexes the given rows. All lookups are case-insensitive.
func NewSnapshot(categories, sides, bases, currencies, modes, providers []Row, serviceTypes []ServiceTypeRow, carrierModes []CarrierModeRow) *Snapshot {
	s := &Snapshot{
		categories:        indexRows(categories),
		sides:             indexRows(sides),
		bases:             indexRows(bases),
		currencies:        indexRows(currencies),
		modes:             indexRows(modes),
		providerIDs:       indexRows(providers),
		serviceByModeTier: make(map[string]uuid.UUID, len(serviceTypes)),
		serviceByMode:     make(map[string]uuid.UUID),
		carrierModes:      make(map[string]bool, len(carrierModes)),
	}
	for _, p := range providers {
		s.providerNames = append(s.providerNames, strings.ToLower(p.Name))
	}
	for _, st := range serviceTypes {
		mode := strings.ToLower(st.Mode)
		s.serviceByModeTier[mode+"|"+strings.ToLower(st.Name)] = st.ID
		if _, ok := s.serviceByMode[mode]; !ok {
			s.serviceByMode[mode] = st.ID
		}
	}
	for _, cm := range carrierModes {
		s.carrierModes[cm.ProviderID.String()+"|"+cm.ModeID.String()] = true
	}
	return s
}

func indexRows(rows []Row) map[string]uuid.UUID {
	m := make(map[string]uuid.UUID, len(rows))
	for _, r := range rows {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key == "" {
			continue
		}
		if _, ok := m[key]; !ok {
			m[key] = r.ID
		}
	}
	return m
}

func (s *Snapshot) CategoryID(name string) uuid.UUID { return s.categories[normalize(name)] }
func (s *Snapshot) SideID(code string) uuid.UUID     { return s.sides[normalize(code)] }
func (s *Snapshot) BasisID(code string) uuid.UUID    { return s.bases[normalize(code)] }
func (s *Snapshot) CurrencyID(code string) uuid.UUID { return s.currencies[normalize(code)] }
func (s *Snapshot) ModeID(name string) uuid.UUID     { return s.modes[normalize(name)] }

// ServiceTypeID resolves mode plus tier, falling back to any service type of
// the mode when the tier is unknown.
func (s *Snapshot) ServiceTypeID(mode, tier string) uuid.UUID {
	m := normalize(mode)
	if id, ok := s.serviceByModeTier[m+"|"+normalize(tier)]; ok {
		return id
	}
	return s.serviceByMode[m]
}

// ProviderID resolves a carrier name, exact first, then by substring in
// either direction. Carrier names in rate payloads are rarely verbatim.
func (s *Snapshot) ProviderID(name string) uuid.UUID {
	key := normalize(name)
	if key == "" {
		return uuid.Nil
	}
	if id, ok := s.providerIDs[key]; ok {
		return id
	}
	for _, known := range s.providerNames {
		if strings.Contains(known, key) || strings.Contains(key, known) {
			return s.providerIDs[known]
		}
	}
	return uuid.Nil
}

// CarrierServesMode reports whether the provider is registered for the mode.
func (s *Snapshot) CarrierServesMode(providerID, modeID uuid.UUID) bool {
	if providerID == uuid.Nil || modeID == uuid.Nil {
		return false
	}
	return s.carrierModes[providerID.String()+"|"+modeID.String()]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
