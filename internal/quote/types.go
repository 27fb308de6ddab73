package quote

import "cargoquote/internal/domain"

// Charge is one monetary line item. A charge is either explicitly tied to a
// leg (LegID set, authoritative) or implicit and classified by keyword.
type Charge struct {
	Category string  `json:"category,omitempty"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Note     string  `json:"note,omitempty"`
	LegID    string  `json:"leg_id,omitempty"`
	LegIndex *int    `json:"leg_index,omitempty"`
}

// TransportLeg is one transport segment of a multi-modal shipment.
type TransportLeg struct {
	ID              string                 `json:"id"`
	Mode            string                 `json:"mode"`
	LegType         domain.LegType         `json:"leg_type,omitempty"`
	BifurcationRole domain.BifurcationRole `json:"bifurcation_role,omitempty"`
	Origin          string                 `json:"origin,omitempty"`
	Destination     string                 `json:"destination,omitempty"`
	Sequence        int                    `json:"sequence"`
	Carrier         string                 `json:"carrier,omitempty"`
	TransitTime     string                 `json:"transit_time,omitempty"`
	CO2Kg           float64                `json:"co2_kg,omitempty"`
	VoyageNumber    string                 `json:"voyage_number,omitempty"`
	Charges         []Charge               `json:"charges"`
}

// PriceBreakdown is the summarized price structure of a quote. It is derived
// from leg charges when a source omits it, and synthesized into flat charges
// when a source provides only this summary.
type PriceBreakdown struct {
	Total      float64              `json:"total"`
	Currency   string               `json:"currency"`
	BaseFare   float64              `json:"base_fare"`
	Taxes      float64              `json:"taxes"`
	Surcharges map[string]float64   `json:"surcharges"`
	Fees       map[string]float64   `json:"fees"`
	Components []BreakdownComponent `json:"components,omitempty"`
}

// BreakdownComponent is one leaf of the recursive price_breakdown walk: a
// numeric value, or an object carrying an amount plus optional code, unit,
// and an explicit leg index. Key is the underscore-joined path to the leaf.
type BreakdownComponent struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit,omitempty"`
	LegIndex *int    `json:"leg_index,omitempty"`
}

// TransitTime wraps a free-text transit description.
type TransitTime struct {
	Details string `json:"details"`
}

// NormalizedQuote is the canonical quote representation every source shape
// normalizes into. After normalization, Breakdown.Total equals the sum of all
// leg charges plus all remaining global charges within the amount tolerance.
type NormalizedQuote struct {
	ID                string         `json:"id,omitempty"`
	CarrierName       string         `json:"carrier_name"`
	OptionName        string         `json:"option_name,omitempty"`
	TotalAmount       float64        `json:"total_amount"`
	Currency          string         `json:"currency"`
	Mode              string         `json:"mode"`
	Tier              string         `json:"tier"`
	TransitTime       TransitTime    `json:"transit_time"`
	ValidUntil        string         `json:"valid_until,omitempty"`
	Origin            string         `json:"origin,omitempty"`
	Destination       string         `json:"destination,omitempty"`
	Source            string         `json:"source,omitempty"`
	SourceAttribution string         `json:"source_attribution,omitempty"`
	AIGenerated       bool           `json:"ai_generated"`
	AIExplanation     string         `json:"ai_explanation,omitempty"`
	ReliabilityScore  float64        `json:"reliability_score"`
	BuyPrice          float64        `json:"buy_price"`
	MarginAmount      float64        `json:"margin_amount"`
	MarginPercent     float64        `json:"margin_percent"`
	MarkupPercent     float64        `json:"markup_percent"`
	TotalCO2Kg        float64        `json:"total_co2_kg,omitempty"`
	Breakdown         PriceBreakdown `json:"price_breakdown"`
	Legs              []TransportLeg `json:"legs"`
	Charges           []Charge       `json:"charges"`
}

// LegsTotal sums all charges attached to legs.
func (q *NormalizedQuote) LegsTotal() float64 {
	var sum float64
	for i := range q.Legs {
		for j := range q.Legs[i].Charges {
			sum += q.Legs[i].Charges[j].Amount
		}
	}
	return sum
}

// GlobalTotal sums the remaining unassigned charges.
func (q *NormalizedQuote) GlobalTotal() float64 {
	var sum float64
	for i := range q.Charges {
		sum += q.Charges[i].Amount
	}
	return sum
}
