package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargoquote/internal/domain"
)

func tripartiteLegs() []TransportLeg {
	return []TransportLeg{
		{ID: "leg-1", Mode: "road", LegType: domain.LegTypePickup, Sequence: 1},
		{ID: "leg-2", Mode: "ocean", LegType: domain.LegTypeTransport, Sequence: 2},
		{ID: "leg-3", Mode: "road", LegType: domain.LegTypeDelivery, Sequence: 3},
	}
}

func TestMatchLegForCharge_PickupKeyword(t *testing.T) {
	leg := MatchLegForCharge("Pickup Charge", tripartiteLegs())
	require.NotNil(t, leg)
	assert.Equal(t, "leg-1", leg.ID)
}

func TestMatchLegForCharge_OceanFreight(t *testing.T) {
	leg := MatchLegForCharge("Ocean Freight", tripartiteLegs())
	require.NotNil(t, leg)
	assert.Equal(t, "leg-2", leg.ID)
}

func TestMatchLegForCharge_TerminalHandling(t *testing.T) {
	leg := MatchLegForCharge("THC at origin port", tripartiteLegs())
	require.NotNil(t, leg)
	// THC is a specific ocean charge; it beats the positional "origin" keyword.
	assert.Equal(t, "leg-2", leg.ID)
}

func TestMatchLegForCharge_DeliveryKeyword(t *testing.T) {
	leg := MatchLegForCharge("Destination Drayage", tripartiteLegs())
	require.NotNil(t, leg)
	assert.Equal(t, "leg-3", leg.ID)
}

func TestMatchLegForCharge_AirSurcharge(t *testing.T) {
	legs := []TransportLeg{
		{ID: "leg-1", Mode: "air", LegType: domain.LegTypeTransport, Sequence: 1},
	}
	leg := MatchLegForCharge("FSC", legs)
	require.NotNil(t, leg)
	assert.Equal(t, "leg-1", leg.ID)
}

func TestMatchLegForCharge_NoRuleMatches(t *testing.T) {
	assert.Nil(t, MatchLegForCharge("Mystery Item", tripartiteLegs()))
}

func TestMatchLegForCharge_PickupAgainstSingleMainLeg(t *testing.T) {
	legs := []TransportLeg{
		{ID: "leg-1", Mode: "ocean", LegType: domain.LegTypeTransport, Sequence: 1},
	}
	// A single-leg routing has no pickup leg and no positional fallback.
	assert.Nil(t, MatchLegForCharge("Pickup Charge", legs))
}

func TestMatchLegForCharge_PositionalFallback(t *testing.T) {
	legs := []TransportLeg{
		{ID: "leg-1", Mode: "road", LegType: domain.LegTypeTransport, Sequence: 1},
		{ID: "leg-2", Mode: "ocean", LegType: domain.LegTypeTransport, Sequence: 2},
	}
	leg := MatchLegForCharge("Pickup Charge", legs)
	require.NotNil(t, leg)
	assert.Equal(t, "leg-1", leg.ID)
}

func TestLegTypesEquivalent(t *testing.T) {
	assert.True(t, LegTypesEquivalent("origin", "pickup"))
	assert.True(t, LegTypesEquivalent("Pre-Carriage", "PICKUP"))
	assert.True(t, LegTypesEquivalent("main", "transport"))
	assert.True(t, LegTypesEquivalent("delivery", "on-carriage"))
	assert.False(t, LegTypesEquivalent("pickup", "delivery"))
	assert.False(t, LegTypesEquivalent("main", "pickup"))
}
