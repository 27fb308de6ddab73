package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargoquote/internal/domain"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(NewCalculator(0, nil))
}

func TestNormalize_NilInput(t *testing.T) {
	assert.Nil(t, newTestNormalizer().Normalize(nil))
}

func TestNormalize_CanonicalInputUnchanged(t *testing.T) {
	raw := RawRate{
		"carrier_name": "Maersk",
		"total_amount": 1000.02,
		"price_breakdown": map[string]any{
			"total": 1000.02, "base_fare": 1000.02, "currency": "USD",
		},
		"transit_time": map[string]any{"details": "25 days"},
		"charges":      []any{},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)
	// Canonical input skips the repair pipeline entirely: no adjustment
	// charge is appended even though no line items back the total.
	assert.Equal(t, 1000.02, q.Breakdown.Total)
	assert.Empty(t, q.Charges)
	assert.Empty(t, q.Legs)
	assert.Equal(t, "25 days", q.TransitTime.Details)
}

func TestNormalize_AISummaryQuote(t *testing.T) {
	raw := RawRate{
		"carrier_name":       "Maersk",
		"total_amount":       5000.0,
		"mode":               "Ocean - FCL",
		"transitTime":        "28 days",
		"source_attribution": "AI Smart Engine",
		"price_breakdown": map[string]any{
			"total":     5000.0,
			"base_fare": 4000.0,
			"currency":  "USD",
			"surcharges": map[string]any{
				"Bunker Surcharge":      500.0,
				"Peak Season Surcharge": 300.0,
			},
			"fees": map[string]any{"Documentation Fee": 200.0},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	assert.True(t, q.AIGenerated)
	assert.Equal(t, "ocean", q.Mode)
	assert.Equal(t, 5000.0, q.Breakdown.Total)

	// The summary breakdown becomes one synthetic leg carrying four charges.
	require.Len(t, q.Legs, 1)
	assert.Equal(t, "generated-leg-1", q.Legs[0].ID)
	assert.Equal(t, domain.RoleMain, q.Legs[0].BifurcationRole)
	require.Len(t, q.Legs[0].Charges, 4)
	assert.Empty(t, q.Charges)

	var sum float64
	for _, c := range q.Legs[0].Charges {
		sum += c.Amount
	}
	assert.InDelta(t, 5000, sum, 0.01)

	// No explicit buy price arrived, so financials are recomputed.
	assert.Equal(t, 4250.0, q.BuyPrice)
	assert.Equal(t, 750.0, q.MarginAmount)
	assert.Equal(t, 15.0, q.MarginPercent)
}

func TestNormalize_AdjustmentChargeForResidual(t *testing.T) {
	raw := RawRate{
		"carrier_name": "CMA CGM",
		"total_amount": 100.02,
		"legs": []any{
			map[string]any{
				"mode": "ocean", "leg_type": "transport",
				"charges": []any{
					map[string]any{"name": "Ocean Freight", "amount": 100.0, "currency": "USD"},
				},
			},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	require.Len(t, q.Charges, 1)
	assert.Equal(t, "Ancillary Fees", q.Charges[0].Name)
	assert.Equal(t, "Adjustment", q.Charges[0].Category)
	assert.InDelta(t, 0.02, q.Charges[0].Amount, 0.001)
	assert.InDelta(t, q.Breakdown.Total, q.LegsTotal()+q.GlobalTotal(), 0.01)
}

func TestNormalize_SubToleranceResidualIgnored(t *testing.T) {
	raw := RawRate{
		"carrier_name": "CMA CGM",
		"total_amount": 100.006,
		"legs": []any{
			map[string]any{
				"mode": "ocean", "leg_type": "transport",
				"charges": []any{
					map[string]any{"name": "Ocean Freight", "amount": 100.0, "currency": "USD"},
				},
			},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)
	assert.Empty(t, q.Charges)
}

func TestNormalize_DuplicateTopLevelChargesDropped(t *testing.T) {
	raw := RawRate{
		"carrier_name": "Hapag",
		"total_amount": 1000.0,
		"legs": []any{
			map[string]any{
				"mode": "ocean", "leg_type": "transport",
				"charges": []any{
					map[string]any{"name": "Ocean Freight", "amount": 1000.0, "currency": "USD"},
				},
			},
		},
		"charges": []any{
			map[string]any{"name": "Ocean Freight", "amount": 1000.0, "currency": "USD"},
			map[string]any{"name": "Total", "amount": 1000.0, "currency": "USD"},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	assert.Empty(t, q.Charges)
	require.Len(t, q.Legs, 1)
	assert.Len(t, q.Legs[0].Charges, 1)
	assert.Equal(t, 1000.0, q.Breakdown.Total)
}

func TestNormalize_GlobalChargeAllocatedByKeyword(t *testing.T) {
	raw := RawRate{
		"carrier_name": "Hapag",
		"total_amount": 1200.0,
		"legs": []any{
			map[string]any{
				"id": "pre", "mode": "road", "leg_type": "pickup", "sequence": 1,
				"charges": []any{
					map[string]any{"name": "Pickup Charge", "amount": 200.0, "currency": "USD"},
				},
			},
			map[string]any{
				"id": "main", "mode": "ocean", "leg_type": "transport", "sequence": 2,
				"charges": []any{
					map[string]any{"name": "Ocean Freight", "amount": 900.0, "currency": "USD"},
				},
			},
		},
		"charges": []any{
			map[string]any{"name": "Bunker Surcharge", "amount": 100.0, "currency": "USD"},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	assert.Empty(t, q.Charges)
	require.Len(t, q.Legs, 2)
	// The bunker surcharge lands on the ocean leg via the keyword table.
	assert.Len(t, q.Legs[1].Charges, 2)
	assert.InDelta(t, 1200, q.LegsTotal(), 0.01)
}

func TestNormalize_RoleAssignment(t *testing.T) {
	raw := RawRate{
		"carrier_name": "DHL",
		"total_amount": 300.0,
		"legs": []any{
			map[string]any{"id": "a", "mode": "road", "sequence": 1, "charges": []any{
				map[string]any{"name": "Pickup", "amount": 100.0},
			}},
			map[string]any{"id": "b", "mode": "ocean", "sequence": 2, "charges": []any{
				map[string]any{"name": "Freight", "amount": 100.0},
			}},
			map[string]any{"id": "c", "mode": "road", "sequence": 3, "charges": []any{
				map[string]any{"name": "Delivery", "amount": 100.0},
			}},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)
	require.Len(t, q.Legs, 3)
	assert.Equal(t, domain.RoleOrigin, q.Legs[0].BifurcationRole)
	assert.Equal(t, domain.RoleMain, q.Legs[1].BifurcationRole)
	assert.Equal(t, domain.RoleDestination, q.Legs[2].BifurcationRole)
}

func TestCanonicalMode(t *testing.T) {
	assert.Equal(t, "ocean", CanonicalMode("Ocean - FCL"))
	assert.Equal(t, "ocean", CanonicalMode("Sea Freight"))
	assert.Equal(t, "air", CanonicalMode("Air Cargo"))
	assert.Equal(t, "road", CanonicalMode("Trucking"))
	assert.Equal(t, "rail", CanonicalMode("Train"))
	assert.Equal(t, "courier", CanonicalMode("Express Parcel"))
	assert.Equal(t, "ocean", CanonicalMode(""))
	assert.Equal(t, "ocean", CanonicalMode("hovercraft"))
}

func TestSafeNumber(t *testing.T) {
	assert.Equal(t, 1234.5, SafeNumber("1,234.50"))
	assert.Equal(t, 99.0, SafeNumber("$99"))
	assert.Equal(t, 42.0, SafeNumber(42))
	assert.Equal(t, 0.0, SafeNumber("not a number"))
	assert.Equal(t, 0.0, SafeNumber(nil))
}

func TestNormalize_LegsSortedBySequence(t *testing.T) {
	raw := RawRate{
		"carrier_name": "Hapag",
		"total_amount": 1000.0,
		"legs": []any{
			map[string]any{
				"id": "main", "mode": "ocean", "leg_type": "transport", "sequence": 2,
				"from": "Mundra", "to": "Rotterdam",
				"charges": []any{
					map[string]any{"name": "Ocean Freight", "amount": 900.0, "currency": "USD"},
				},
			},
			map[string]any{
				"id": "pre", "mode": "road", "leg_type": "pickup", "sequence": 1,
				"from": "Ahmedabad", "to": "Mundra",
				"charges": []any{
					map[string]any{"name": "Pickup Charges", "amount": 100.0, "currency": "USD"},
				},
			},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)
	require.Len(t, q.Legs, 2)

	assert.Equal(t, "pre", q.Legs[0].ID)
	assert.Equal(t, "road", q.Legs[0].Mode)
	assert.Equal(t, domain.RoleOrigin, q.Legs[0].BifurcationRole)
	assert.Equal(t, "main", q.Legs[1].ID)
	assert.Equal(t, domain.RoleDestination, q.Legs[1].BifurcationRole)
}

func TestNormalize_BreakdownObjectComponents(t *testing.T) {
	raw := RawRate{
		"carrier_name": "MSC",
		"total_amount": 4500.0,
		"mode":         "ocean",
		"price_breakdown": map[string]any{
			"total":     4500.0,
			"base_fare": 4000.0,
			"currency":  "USD",
			"surcharges": map[string]any{
				"Bunker": map[string]any{"amount": 500.0, "unit": "per_container"},
			},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	assert.Equal(t, 500.0, q.Breakdown.Surcharges["Bunker"])

	// The object-valued surcharge itemizes instead of degrading into an
	// anonymous adjustment.
	require.Len(t, q.Legs, 1)
	require.Len(t, q.Legs[0].Charges, 2)
	var bunker *Charge
	for i := range q.Legs[0].Charges {
		c := &q.Legs[0].Charges[i]
		assert.NotEqual(t, "Ancillary Fees", c.Name)
		if c.Name == "Bunker" {
			bunker = c
		}
	}
	require.NotNil(t, bunker)
	assert.Equal(t, 500.0, bunker.Amount)
	assert.Equal(t, "per_container", bunker.Unit)
}

func TestNormalize_BreakdownComponentWalk(t *testing.T) {
	raw := RawRate{
		"carrier_name": "MSC",
		"total_amount": 1000.0,
		"price_breakdown": map[string]any{
			"total":     1000.0,
			"base_fare": 700.0,
			"currency":  "USD",
			"surcharges": map[string]any{
				"fuel": map[string]any{"amount": 200.0, "code": "BAF", "leg_index": 1},
			},
			"handling": 100.0,
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	byKey := map[string]BreakdownComponent{}
	for _, comp := range q.Breakdown.Components {
		byKey[comp.Key] = comp
	}
	require.Contains(t, byKey, "surcharges_BAF")
	assert.Equal(t, 200.0, byKey["surcharges_BAF"].Amount)
	require.NotNil(t, byKey["surcharges_BAF"].LegIndex)
	assert.Equal(t, 1, *byKey["surcharges_BAF"].LegIndex)
	require.Contains(t, byKey, "handling")
	assert.Equal(t, 100.0, byKey["handling"].Amount)

	// The non-standard "handling" key still becomes a line item.
	require.Len(t, q.Legs, 1)
	var names []string
	for _, c := range q.Legs[0].Charges {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "handling")
	assert.NotContains(t, names, "Ancillary Fees")
	assert.InDelta(t, 1000, q.LegsTotal()+q.GlobalTotal(), 0.01)
}

func TestDeriveBreakdown_FeesOnly(t *testing.T) {
	raw := RawRate{
		"carrier_name": "DHL",
		"total_amount": 200.0,
		"legs": []any{
			map[string]any{
				"mode": "air", "leg_type": "transport",
				"charges": []any{
					map[string]any{"name": "Handling Fee", "amount": 200.0, "currency": "USD"},
				},
			},
		},
	}

	q := newTestNormalizer().Normalize(raw)
	require.NotNil(t, q)

	// A fees-only itemization must not also be restated as base fare.
	assert.Equal(t, 0.0, q.Breakdown.BaseFare)
	assert.Equal(t, 200.0, q.Breakdown.Fees["Handling Fee"])
	assert.Equal(t, 200.0, q.Breakdown.Total)
}
