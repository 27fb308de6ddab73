package quote

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_CostBased(t *testing.T) {
	calc := NewCalculator(0, nil)

	fin := calc.Calculate(1000, 15, true)
	assert.Equal(t, 1000.0, fin.BuyPrice)
	assert.Equal(t, 1176.47, fin.SellPrice)
	assert.Equal(t, 176.47, fin.MarginAmount)
	assert.Equal(t, 15.0, fin.MarginPercent)
}

func TestCalculator_SellBased(t *testing.T) {
	calc := NewCalculator(0, nil)

	fin := calc.Calculate(1000, 15, false)
	assert.Equal(t, 1000.0, fin.SellPrice)
	assert.Equal(t, 850.0, fin.BuyPrice)
	assert.Equal(t, 150.0, fin.MarginAmount)
	assert.Equal(t, 17.65, fin.MarkupPercent)
}

func TestCalculator_RoundTripSymmetry(t *testing.T) {
	calc := NewCalculator(0, nil)

	costBased := calc.Calculate(1000, 15, true)
	back := calc.Calculate(costBased.SellPrice, 15, false)

	assert.InDelta(t, 1000, back.BuyPrice, 0.01)
	assert.InDelta(t, costBased.MarginAmount, back.MarginAmount, 0.01)
}

func TestCalculator_DegenerateMarginCostBased(t *testing.T) {
	calc := NewCalculator(0, nil)

	// A 100% margin would divide by zero; the sell price degrades to the cost.
	fin := calc.Calculate(500, 100, true)
	assert.Equal(t, 500.0, fin.SellPrice)
	assert.Equal(t, 500.0, fin.BuyPrice)
	assert.Equal(t, 0.0, fin.MarginAmount)
}

func TestCalculator_NonFiniteInputDegrades(t *testing.T) {
	calc := NewCalculator(0, nil)

	fin := calc.Calculate(math.NaN(), 15, false)
	assert.Equal(t, 0.0, fin.SellPrice)
	assert.Equal(t, 0.0, fin.BuyPrice)
	assert.Equal(t, 0.0, fin.MarginAmount)
}

func TestCalculator_CacheExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	calc := NewCalculator(5*time.Minute, clock)

	first := calc.Calculate(1000, 15, false)

	// Within the TTL the cached result is served.
	now = now.Add(4 * time.Minute)
	assert.Equal(t, first, calc.Calculate(1000, 15, false))

	// Past the TTL the entry is recomputed; identical inputs still agree.
	now = now.Add(2 * time.Minute)
	assert.Equal(t, first, calc.Calculate(1000, 15, false))
}

func TestCalculator_DistinctInputsDistinctResults(t *testing.T) {
	calc := NewCalculator(0, nil)

	a := calc.Calculate(1000, 15, false)
	b := calc.Calculate(1000, 20, false)
	assert.NotEqual(t, a.MarginAmount, b.MarginAmount)
}
