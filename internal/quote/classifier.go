package quote

import (
	"sort"
	"strings"

	"cargoquote/internal/domain"
)

// keywordRule maps a set of charge-description keywords to a target leg type
// and an optional preferred mode substring. Rules are evaluated in order and
// the first match wins, so specific terms ("air freight") must precede
// generic ones ("freight").
type keywordRule struct {
	keywords []string
	legType  domain.LegType
	mode     string
}

var keywordRules = []keywordRule{
	// Specific charge types override positional keywords.
	{keywords: []string{"thc", "terminal", "wharfage", "baf", "bunker", "isf", "ams", "imo", "bl fee", "doc fee"}, legType: domain.LegTypeTransport, mode: "ocean"},
	{keywords: []string{"air freight", "fsc", "myc", "screening", "security", "aft", "air"}, legType: domain.LegTypeTransport, mode: "air"},
	{keywords: []string{"rail freight", "rail", "train"}, legType: domain.LegTypeTransport, mode: "rail"},

	// Main freight keywords.
	{keywords: []string{"ocean freight", "sea freight", "freight", "base fare", "base rate", "basic freight", "fuel", "sea"}, legType: domain.LegTypeTransport, mode: "ocean"},

	// Positional keywords.
	{keywords: []string{"pickup", "origin", "export", "drayage origin", "cartage origin", "pre-carriage"}, legType: domain.LegTypePickup, mode: "road"},
	{keywords: []string{"delivery", "destination", "import", "drayage dest", "cartage dest", "on-carriage"}, legType: domain.LegTypeDelivery, mode: "road"},

	// Generic fallbacks.
	{keywords: []string{"trucking", "haulage", "road freight"}, legType: domain.LegTypeTransport, mode: "road"},
	{keywords: []string{"customs", "duty", "tax", "vat"}, legType: domain.LegTypeDelivery, mode: "road"},
	{keywords: []string{"doc", "admin", "handling"}, legType: domain.LegTypeTransport, mode: "ocean"},
}

// legTypeAliases groups leg-type strings that are equivalent for matching.
var legTypeAliases = [][]string{
	{"origin", "pickup", "pre-carriage", "drayage origin"},
	{"destination", "delivery", "on-carriage", "drayage dest"},
	{"main", "transport", "freight"},
}

// LegTypesEquivalent reports whether two leg-type strings belong to the same
// alias group, case-insensitively.
func LegTypesEquivalent(a, b string) bool {
	na := strings.ToLower(a)
	nb := strings.ToLower(b)
	if na == nb {
		return true
	}
	for _, group := range legTypeAliases {
		var hasA, hasB bool
		for _, t := range group {
			if t == na {
				hasA = true
			}
			if t == nb {
				hasB = true
			}
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

// MatchLegForCharge returns the best-matching leg for a charge description,
// or nil when no rule matches or no leg satisfies the matched rule. Absence
// of a match is a normal outcome the caller must handle.
func MatchLegForCharge(description string, legs []TransportLeg) *TransportLeg {
	desc := strings.ToLower(description)

	var matched *keywordRule
	for i := range keywordRules {
		rule := &keywordRules[i]
		for _, k := range rule.keywords {
			if strings.Contains(desc, k) {
				matched = rule
				break
			}
		}
		if matched != nil {
			break
		}
	}
	if matched == nil {
		return nil
	}

	// Exact: leg type equivalent and mode contains the rule's preference.
	for i := range legs {
		leg := &legs[i]
		if LegTypesEquivalent(string(leg.LegType), string(matched.legType)) &&
			(matched.mode == "" || strings.Contains(strings.ToLower(leg.Mode), matched.mode)) {
			return leg
		}
	}

	// Relaxed: any leg with an equivalent leg type.
	for i := range legs {
		if LegTypesEquivalent(string(legs[i].LegType), string(matched.legType)) {
			return &legs[i]
		}
	}

	// Positional fallback for pickup/delivery rules: the first or last road
	// leg of a multi-leg routing.
	if matched.legType == domain.LegTypePickup || matched.legType == domain.LegTypeDelivery {
		if len(legs) > 1 {
			ordered := make([]*TransportLeg, 0, len(legs))
			for i := range legs {
				ordered = append(ordered, &legs[i])
			}
			sort.SliceStable(ordered, func(i, j int) bool {
				return ordered[i].Sequence < ordered[j].Sequence
			})
			if matched.legType == domain.LegTypePickup {
				if first := ordered[0]; strings.EqualFold(first.Mode, "road") {
					return first
				}
			} else {
				if last := ordered[len(ordered)-1]; strings.EqualFold(last.Mode, "road") {
					return last
				}
			}
		}
	}

	return nil
}
