package quote

import (
	"sort"
	"strconv"
	"strings"

	"cargoquote/internal/domain"
)

// UnknownTransitDays sorts options with unparseable transit text last.
const UnknownTransitDays = 999

// TransitDays extracts the first integer from a free-text transit
// description ("25-30 days" yields 25). Text with no digits yields the
// unknown sentinel so such options rank last on speed.
func TransitDays(details string) int {
	start := -1
	for i, r := range details {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(details[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(details[start:])
		return n
	}
	return UnknownTransitDays
}

// MarketTrends holds the headline pick for each buyer priority. A field is
// nil when no option qualifies for that trend.
type MarketTrends struct {
	Cheapest *domain.QuoteOption `json:"cheapest"`
	Fastest  *domain.QuoteOption `json:"fastest"`
	Greenest *domain.QuoteOption `json:"greenest"`
}

// SelectMarketTrends picks the cheapest, fastest, and greenest options.
// Options with a zero total are skipped for cheapest and ones without any
// emission figure are skipped for greenest.
func SelectMarketTrends(options []domain.QuoteOption) MarketTrends {
	var trends MarketTrends
	for i := range options {
		o := &options[i]
		if o.TotalAmount > 0 && (trends.Cheapest == nil || o.TotalAmount < trends.Cheapest.TotalAmount) {
			trends.Cheapest = o
		}
		if trends.Fastest == nil || optionTransitDays(o) < optionTransitDays(trends.Fastest) {
			trends.Fastest = o
		}
		if o.TotalCO2Kg > 0 && (trends.Greenest == nil || o.TotalCO2Kg < trends.Greenest.TotalCO2Kg) {
			trends.Greenest = o
		}
	}
	return trends
}

// RankOptions returns a copy of options ordered best-first for the advisor
// view. Preferred carriers dominate; among equals, reliability wins, then
// price, then transit time.
func RankOptions(options []domain.QuoteOption, preferredCarriers []string) []domain.QuoteOption {
	ranked := make([]domain.QuoteOption, len(options))
	copy(ranked, options)

	sort.SliceStable(ranked, func(i, j int) bool {
		return optionScore(&ranked[i], preferredCarriers) > optionScore(&ranked[j], preferredCarriers)
	})
	return ranked
}

func optionScore(o *domain.QuoteOption, preferredCarriers []string) float64 {
	var score float64
	if carrierPreferred(o.CarrierName, preferredCarriers) {
		score += 1000
	}
	score += o.ReliabilityScore * 10
	score -= o.TotalAmount / 100
	score -= float64(optionTransitDays(o)) * 5
	return score
}

func carrierPreferred(carrier string, preferred []string) bool {
	c := strings.ToLower(carrier)
	for _, p := range preferred {
		if p != "" && strings.Contains(c, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func optionTransitDays(o *domain.QuoteOption) int {
	if o.TotalTransitDays != nil && *o.TotalTransitDays > 0 {
		return *o.TotalTransitDays
	}
	return TransitDays(o.TransitTime)
}
