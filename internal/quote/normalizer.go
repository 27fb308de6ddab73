package quote

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cargoquote/internal/domain"
)

// amountTolerance is the epsilon under which two monetary amounts are
// considered equal. Confirmed business constant.
const amountTolerance = 0.01

// Normalizer converts any heterogeneous rate payload into a canonical
// NormalizedQuote with a reconciled price breakdown. Normalization is pure:
// it never errors and touches no external state beyond the calculator cache.
type Normalizer struct {
	calc *Calculator
}

// NewNormalizer creates a Normalizer backed by the given financial calculator.
func NewNormalizer(calc *Calculator) *Normalizer {
	return &Normalizer{calc: calc}
}

// Normalize converts a raw rate into its canonical form. Nil input returns
// nil. Input that already looks canonical (has price_breakdown, transit_time,
// and charges) is decoded and returned unchanged. Malformed fields never
// cause an error; numeric coercion degrades to 0 and structural gaps are
// filled with generated defaults.
func (n *Normalizer) Normalize(raw RawRate) *NormalizedQuote {
	if raw == nil {
		return nil
	}

	canonical := raw.Has("price_breakdown") && raw.Has("transit_time") && raw.Has("charges")

	q, hadBuy := decodeRate(raw)
	if canonical {
		return q
	}

	duplicatesRemoved := false
	declaredTotal := q.TotalAmount

	n.deriveBreakdown(q, raw)
	n.synthesizeCharges(q)
	n.materializeLegs(q)
	duplicatesRemoved = n.suppressDuplicates(q) || duplicatesRemoved
	assignLegRoles(q.Legs)
	duplicatesRemoved = n.allocateGlobalCharges(q) || duplicatesRemoved
	n.reconcileTotal(q, duplicatesRemoved)
	n.recomputeFinancials(q, declaredTotal, hadBuy)

	q.TotalAmount = q.Breakdown.Total
	return q
}

// decodeRate unifies field aliases across the four source shapes into the
// canonical struct. It reports whether the payload carried an explicit buy
// price, which step 9 uses to decide on a financial recompute.
func decodeRate(raw RawRate) (*NormalizedQuote, bool) {
	q := &NormalizedQuote{
		ID:         raw.Str("id"),
		OptionName: raw.Str("option_name", "name"),
		Currency:   decodeCurrency(raw),
		Tier:       raw.Str("tier"),
		ValidUntil: raw.Str("valid_until", "validUntil"),
		Origin:     raw.Str("origin"),
		Destination: raw.Str("destination"),
		Source:      raw.Str("source"),
		SourceAttribution: raw.Str("source_attribution"),
		AIExplanation:     raw.Str("ai_explanation"),
	}

	// Carrier may arrive as a plain string or as an object with a name.
	q.CarrierName = raw.Str("carrier_name")
	if q.CarrierName == "" {
		if c := raw.Child("carrier"); c != nil {
			q.CarrierName = c.Str("name")
		} else {
			q.CarrierName = raw.Str("carrier")
		}
	}
	if q.CarrierName == "" {
		q.CarrierName = "Unknown Carrier"
	}

	q.TotalAmount = raw.Num("total_amount", "price")
	q.Mode = CanonicalMode(raw.Str("mode", "transport_mode"))
	q.TransitTime = decodeTransitTime(raw)

	buy, hadBuy := raw.NumSet("buyPrice", "total_buy", "buy_price")
	q.BuyPrice = buy
	q.MarginAmount, _ = raw.NumSet("marginAmount", "margin_amount")
	q.MarginPercent, _ = raw.NumSet("marginPercent", "margin_percent")
	q.MarkupPercent, _ = raw.NumSet("markupPercent", "markup_percent", "margin_percentage")

	q.ReliabilityScore = raw.Num("reliability_score")
	if q.ReliabilityScore == 0 {
		if rel := raw.Child("reliability"); rel != nil {
			q.ReliabilityScore = rel.Num("score")
		}
	}

	q.AIGenerated = raw.Bool("ai_generated") ||
		q.Source == string(domain.SourceAIGenerated) ||
		strings.Contains(q.SourceAttribution, "AI")

	q.Legs = decodeLegs(raw)
	for _, c := range raw.Slice("charges") {
		if cm, ok := c.(map[string]any); ok {
			q.Charges = append(q.Charges, decodeCharge(RawRate(cm)))
		}
	}

	q.TotalCO2Kg = raw.Num("total_co2_kg", "co2_kg")
	if q.TotalCO2Kg == 0 {
		for i := range q.Legs {
			q.TotalCO2Kg += q.Legs[i].CO2Kg
		}
	}

	if pb := raw.Child("price_breakdown"); pb != nil {
		q.Breakdown = decodeBreakdown(pb, q.Currency)
	}

	return q, hadBuy
}

func decodeCurrency(raw RawRate) string {
	if c := raw.Child("currency"); c != nil {
		return c.Str("code")
	}
	return raw.Str("currency")
}

func decodeTransitTime(raw RawRate) TransitTime {
	if s := raw.Str("transitTime"); s != "" {
		return TransitTime{Details: s}
	}
	if tt := raw.Child("transit_time"); tt != nil {
		return TransitTime{Details: tt.Str("details")}
	}
	return TransitTime{Details: raw.Str("transit_time")}
}

func decodeBreakdown(pb RawRate, currency string) PriceBreakdown {
	out := PriceBreakdown{
		Total:      pb.Num("total", "total_amount", "total_price"),
		Currency:   pb.Str("currency"),
		BaseFare:   pb.Num("base_fare", "baseFare"),
		Taxes:      pb.Num("taxes", "tax"),
		Surcharges: map[string]float64{},
		Fees:       map[string]float64{},
	}
	if out.Currency == "" {
		out.Currency = currency
	}
	for key, bucket := range map[string]map[string]float64{"surcharges": out.Surcharges, "fees": out.Fees} {
		child := pb.Child(key)
		for k, v := range child {
			// Components may arrive as objects ({"amount": 500, "code":
			// "BAF"}) instead of plain numbers.
			if m, ok := v.(map[string]any); ok {
				if comp, isLeaf := amountLeaf(RawRate(m), k); isLeaf {
					bucket[comp.Name] = comp.Amount
					continue
				}
			}
			bucket[k] = SafeNumber(v)
		}
	}
	out.Components = walkBreakdown(pb, "")
	return out
}

// breakdownMetaKeys are summary fields of a price_breakdown that never
// itemize into charges.
var breakdownMetaKeys = map[string]bool{
	"total": true, "total_amount": true, "total_price": true, "subtotal": true,
	"currency": true, "currency_code": true, "exchange_rate": true, "symbol": true,
}

var legIndexKeyRe = regexp.MustCompile(`(?i)legs?_?\[?(\d+)\]?`)

// walkBreakdown recursively flattens a price_breakdown into components.
// Every numeric leaf and every object-with-amount leaf becomes one
// component, keyed by its underscore-joined path.
func walkBreakdown(node RawRate, parent string) []BreakdownComponent {
	var out []BreakdownComponent
	for _, key := range sortedAnyKeys(node) {
		if breakdownMetaKeys[strings.ToLower(key)] {
			continue
		}
		composite := key
		if parent != "" {
			composite = parent + "_" + key
		}

		if m, ok := node[key].(map[string]any); ok {
			if comp, isLeaf := amountLeaf(RawRate(m), key); isLeaf {
				comp.Key = comp.Name
				if parent != "" {
					comp.Key = parent + "_" + comp.Name
				}
				out = append(out, comp)
				continue
			}
			out = append(out, walkBreakdown(RawRate(m), composite)...)
			continue
		}

		amount := SafeNumber(node[key])
		if amount == 0 {
			continue
		}
		out = append(out, BreakdownComponent{
			Key:      composite,
			Name:     key,
			Amount:   amount,
			LegIndex: legIndexFromKey(parent),
		})
	}
	return out
}

// amountLeaf decodes an object-shaped breakdown component. The fallback name
// is the object's key in its parent.
func amountLeaf(m RawRate, key string) (BreakdownComponent, bool) {
	amount, ok := m.NumSet("amount", "price", "value", "total")
	if !ok {
		return BreakdownComponent{}, false
	}
	comp := BreakdownComponent{
		Name:   firstNonEmpty(m.Str("code", "name", "type", "description", "id", "charge_code"), key),
		Amount: amount,
		Unit:   m.Str("unit", "basis", "per"),
	}
	for _, k := range []string{"leg_index", "leg_id", "segment_index"} {
		switch m[k].(type) {
		case float64, float32, int, int64:
			idx := int(SafeNumber(m[k]))
			comp.LegIndex = &idx
		}
		if comp.LegIndex != nil {
			break
		}
	}
	return comp, true
}

// legIndexFromKey extracts an explicit leg index embedded in a breakdown key
// ("leg_0_fuel", "legs[1]").
func legIndexFromKey(key string) *int {
	match := legIndexKeyRe.FindStringSubmatch(key)
	if match == nil {
		return nil
	}
	idx, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &idx
}

func sortedAnyKeys(m RawRate) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decodeLegs(raw RawRate) []TransportLeg {
	items := raw.Slice("legs")
	legs := make([]TransportLeg, 0, len(items))
	for _, item := range items {
		lm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lr := RawRate(lm)
		leg := TransportLeg{
			ID:              lr.Str("id"),
			Mode:            lr.Str("mode"),
			LegType:         domain.LegType(strings.ToLower(lr.Str("leg_type"))),
			BifurcationRole: domain.BifurcationRole(strings.ToLower(lr.Str("bifurcation_role"))),
			Origin:          lr.Str("from", "origin", "pol"),
			Destination:     lr.Str("to", "destination", "pod"),
			Sequence:        int(lr.Num("sequence", "leg_order")),
			Carrier:         lr.Str("carrier"),
			TransitTime:     lr.Str("transit_time"),
			CO2Kg:           lr.Num("co2_emission", "co2"),
			VoyageNumber:    lr.Str("voyage_number", "voyage"),
		}
		for _, c := range lr.Slice("charges") {
			if cm, cok := c.(map[string]any); cok {
				leg.Charges = append(leg.Charges, decodeCharge(RawRate(cm)))
			}
		}
		legs = append(legs, leg)
	}

	// Sequence numbers are authoritative over slice order, but only when
	// every leg carries one; mixed payloads keep their arrival order.
	if len(legs) > 1 {
		allSequenced := true
		for i := range legs {
			if legs[i].Sequence == 0 {
				allSequenced = false
				break
			}
		}
		if allSequenced {
			sort.SliceStable(legs, func(i, j int) bool { return legs[i].Sequence < legs[j].Sequence })
		}
	}
	for i := range legs {
		if legs[i].Sequence == 0 {
			legs[i].Sequence = i + 1
		}
	}
	return legs
}

func decodeCharge(cr RawRate) Charge {
	c := Charge{
		Name:     cr.Str("name", "description", "code"),
		Category: cr.Str("category"),
		Currency: cr.Str("currency"),
		Unit:     cr.Str("unit", "basis"),
		Note:     cr.Str("note"),
		LegID:    cr.Str("leg_id"),
	}
	if cat := cr.Child("charge_categories"); cat != nil && c.Category == "" {
		c.Category = cat.Str("name")
	}
	if c.Name == "" {
		c.Name = c.Category
	}
	if sell := cr.Child("sell"); sell != nil {
		c.Amount = sell.Num("amount")
	}
	if c.Amount == 0 {
		c.Amount = cr.Num("amount", "price", "total")
	}
	return c
}

// CanonicalMode reduces free-text mode descriptions ("Ocean - FCL",
// "trucking") to the canonical mode enum. Unrecognized text defaults to
// ocean.
func CanonicalMode(s string) string {
	m := strings.ToLower(s)
	switch {
	case strings.Contains(m, "courier"), strings.Contains(m, "express"), strings.Contains(m, "parcel"):
		return string(domain.ModeCourier)
	case strings.Contains(m, "mover"), strings.Contains(m, "packer"):
		return string(domain.ModeMoversPackers)
	case strings.Contains(m, "air"):
		return string(domain.ModeAir)
	case strings.Contains(m, "rail"), strings.Contains(m, "train"):
		return string(domain.ModeRail)
	case strings.Contains(m, "road"), strings.Contains(m, "truck"), strings.Contains(m, "haul"), strings.Contains(m, "ftl"), strings.Contains(m, "ltl"):
		return string(domain.ModeRoad)
	default:
		return string(domain.ModeOcean)
	}
}

// deriveBreakdown builds a price breakdown from leg charges when the source
// supplied none.
func (n *Normalizer) deriveBreakdown(q *NormalizedQuote, raw RawRate) {
	if raw.Child("price_breakdown") != nil {
		return
	}

	total := q.TotalAmount
	var baseFare, taxes float64
	surcharges := map[string]float64{}
	fees := map[string]float64{}

	for i := range q.Legs {
		for j := range q.Legs[i].Charges {
			c := &q.Legs[i].Charges[j]
			name := strings.ToLower(firstNonEmpty(c.Category, c.Name))
			label := firstNonEmpty(c.Category, c.Name)
			switch {
			case strings.Contains(name, "tax"), strings.Contains(name, "duty"):
				taxes += c.Amount
			case strings.Contains(name, "fuel"), strings.Contains(name, "surcharge"):
				surcharges[firstNonEmpty(label, "Surcharge")] += c.Amount
			case strings.Contains(name, "fee"):
				fees[firstNonEmpty(label, "Fee")] += c.Amount
			default:
				baseFare += c.Amount
			}
		}
	}

	var componentSum float64
	componentSum = baseFare + taxes
	for _, v := range surcharges {
		componentSum += v
	}
	for _, v := range fees {
		componentSum += v
	}
	componentSum = Round2(componentSum)

	if total == 0 && componentSum > 0 {
		total = componentSum
	}
	if baseFare == 0 && taxes == 0 && len(surcharges) == 0 && len(fees) == 0 {
		baseFare = total
	}

	q.Breakdown = PriceBreakdown{
		Total:      total,
		Currency:   firstNonEmpty(q.Currency, "USD"),
		BaseFare:   baseFare,
		Taxes:      taxes,
		Surcharges: surcharges,
		Fees:       fees,
	}
}

// synthesizeCharges emits one flat charge per non-zero breakdown component
// when the source provided only a summary and no line items anywhere.
func (n *Normalizer) synthesizeCharges(q *NormalizedQuote) {
	if len(q.Charges) > 0 {
		return
	}
	for i := range q.Legs {
		if len(q.Legs[i].Charges) > 0 {
			return
		}
	}

	currency := firstNonEmpty(q.Breakdown.Currency, q.Currency, "USD")
	componentFor := func(name string) *BreakdownComponent {
		for i := range q.Breakdown.Components {
			if strings.EqualFold(q.Breakdown.Components[i].Name, name) {
				return &q.Breakdown.Components[i]
			}
		}
		return nil
	}
	add := func(category, name string, amount float64) {
		c := Charge{
			Category: category,
			Name:     name,
			Amount:   amount,
			Currency: currency,
			Unit:     "per_shipment",
			Note:     name,
		}
		if comp := componentFor(name); comp != nil {
			if comp.Unit != "" {
				c.Unit = comp.Unit
			}
			c.LegIndex = comp.LegIndex
		}
		q.Charges = append(q.Charges, c)
	}

	if q.Breakdown.BaseFare > 0 {
		add("Freight", "Base Freight", q.Breakdown.BaseFare)
	}
	if q.Breakdown.Taxes > 0 {
		add("Tax", "Taxes & Duties", q.Breakdown.Taxes)
	}
	for _, key := range sortedKeys(q.Breakdown.Surcharges) {
		if v := q.Breakdown.Surcharges[key]; v > 0 {
			add("Surcharge", key, v)
		}
	}
	for _, key := range sortedKeys(q.Breakdown.Fees) {
		if v := q.Breakdown.Fees[key]; v > 0 {
			add("Fee", key, v)
		}
	}

	// Non-standard breakdown keys ("handling", "customs_clearance") still
	// itemize instead of degrading into an anonymous adjustment.
	for i := range q.Breakdown.Components {
		comp := &q.Breakdown.Components[i]
		if comp.Amount <= 0 || bucketedComponent(q, comp) {
			continue
		}
		q.Charges = append(q.Charges, Charge{
			Category: inferCategory(comp.Key),
			Name:     comp.Name,
			Amount:   comp.Amount,
			Currency: currency,
			Unit:     firstNonEmpty(comp.Unit, "per_shipment"),
			Note:     comp.Name,
			LegIndex: comp.LegIndex,
		})
	}
}

// bucketedComponent reports whether a component is already represented by
// the base fare, taxes, or one of the surcharge/fee buckets.
func bucketedComponent(q *NormalizedQuote, comp *BreakdownComponent) bool {
	switch strings.ToLower(comp.Key) {
	case "base_fare", "basefare", "taxes", "tax":
		return true
	}
	if _, ok := q.Breakdown.Surcharges[comp.Name]; ok {
		return true
	}
	if _, ok := q.Breakdown.Fees[comp.Name]; ok {
		return true
	}
	return false
}

// materializeLegs guarantees at least one leg exists when there are charges,
// and backfills leg defaults and charge categories on existing legs.
func (n *Normalizer) materializeLegs(q *NormalizedQuote) {
	if len(q.Legs) == 0 && len(q.Charges) > 0 {
		q.Legs = []TransportLeg{{
			ID:              "generated-leg-1",
			Mode:            q.Mode,
			LegType:         domain.LegTypeTransport,
			BifurcationRole: domain.RoleMain,
			Origin:          firstNonEmpty(q.Origin, "Origin"),
			Destination:     firstNonEmpty(q.Destination, "Destination"),
			Sequence:        1,
			Charges:         q.Charges,
		}}
		q.Charges = nil
		return
	}

	for i := range q.Legs {
		leg := &q.Legs[i]
		if leg.ID == "" {
			leg.ID = fmt.Sprintf("leg-%d", i+1)
		}
		if leg.Mode == "" {
			leg.Mode = q.Mode
		}
		if leg.Origin == "" && i == 0 {
			leg.Origin = q.Origin
		}
		if leg.Destination == "" && i == len(q.Legs)-1 {
			leg.Destination = q.Destination
		}
		for j := range leg.Charges {
			if leg.Charges[j].Category == "" {
				leg.Charges[j].Category = inferCategory(leg.Charges[j].Name)
			}
		}
	}
}

// inferCategory guesses a charge category from its name.
func inferCategory(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "fuel"), strings.Contains(n, "surcharge"):
		return "Surcharge"
	case strings.Contains(n, "doc"), strings.Contains(n, "fee"):
		return "Fee"
	case strings.Contains(n, "tax"), strings.Contains(n, "duty"), strings.Contains(n, "vat"):
		return "Tax"
	case strings.Contains(n, "pickup"), strings.Contains(n, "delivery"), strings.Contains(n, "haulage"):
		return "Transport"
	case strings.Contains(n, "freight"):
		return "Freight"
	default:
		return "General"
	}
}

// suppressDuplicates drops top-level charges that restate leg charges or the
// quote total. Reports whether anything was dropped.
func (n *Normalizer) suppressDuplicates(q *NormalizedQuote) bool {
	if len(q.Charges) == 0 || len(q.Legs) == 0 {
		return false
	}

	signatures := map[string]bool{}
	for i := range q.Legs {
		for j := range q.Legs[i].Charges {
			signatures[chargeSignature(&q.Legs[i].Charges[j])] = true
		}
	}

	kept := q.Charges[:0]
	removed := false
	for _, c := range q.Charges {
		name := strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Name, c.Category)))
		isTotalSummary := name == "total" || name == "total amount" || name == "total price"
		if isTotalSummary && c.Amount == q.TotalAmount {
			removed = true
			continue
		}
		if signatures[chargeSignature(&c)] {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	q.Charges = kept
	return removed
}

func chargeSignature(c *Charge) string {
	name := strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Name, c.Category)))
	return fmt.Sprintf("%s|%v|%s", name, c.Amount, c.Currency)
}

// assignLegRoles derives each leg's bifurcation role from its position.
func assignLegRoles(legs []TransportLeg) {
	for i := range legs {
		if legs[i].LegType == "" {
			legs[i].LegType = domain.LegTypeTransport
		}
	}
	switch {
	case len(legs) == 1:
		legs[0].BifurcationRole = domain.RoleMain
	case len(legs) > 1:
		for i := range legs {
			switch i {
			case 0:
				legs[i].BifurcationRole = domain.RoleOrigin
			case len(legs) - 1:
				legs[i].BifurcationRole = domain.RoleDestination
			default:
				legs[i].BifurcationRole = domain.RoleMain
			}
		}
	}
}

// allocateGlobalCharges moves remaining top-level charges onto their
// best-matching legs, discarding near-duplicates already present on the
// target. Reports whether any duplicate was discarded.
func (n *Normalizer) allocateGlobalCharges(q *NormalizedQuote) bool {
	if len(q.Charges) == 0 || len(q.Legs) == 0 {
		return false
	}

	removedDup := false
	var remaining []Charge

	for _, c := range q.Charges {
		desc := firstNonEmpty(c.Name, c.Category)
		target := MatchLegForCharge(desc, q.Legs)
		if target == nil && len(q.Legs) == 1 {
			target = &q.Legs[0]
		}
		if target == nil {
			remaining = append(remaining, c)
			continue
		}
		if legHasDuplicate(target, &c) {
			removedDup = true
			continue
		}
		target.Charges = append(target.Charges, c)
	}

	q.Charges = remaining
	return removedDup
}

// legHasDuplicate checks amount (within tolerance), currency, and a loose
// name match: substring either direction, or both names sharing a
// "freight"/"fee" token. The heuristic is deliberately approximate.
func legHasDuplicate(leg *TransportLeg, c *Charge) bool {
	name := strings.ToLower(firstNonEmpty(c.Name, c.Category))
	curr := firstNonEmpty(c.Currency, "USD")
	for i := range leg.Charges {
		ex := &leg.Charges[i]
		if math.Abs(ex.Amount-c.Amount) >= amountTolerance {
			continue
		}
		if firstNonEmpty(ex.Currency, "USD") != curr {
			continue
		}
		exName := strings.ToLower(firstNonEmpty(ex.Name, ex.Category))
		nameMatch := strings.Contains(exName, name) || strings.Contains(name, exName) ||
			(strings.Contains(exName, "freight") && strings.Contains(name, "freight")) ||
			(strings.Contains(exName, "fee") && strings.Contains(name, "fee"))
		if nameMatch {
			return true
		}
	}
	return false
}

// reconcileTotal forces the breakdown total and the itemized charges to
// agree. When duplicates were removed the calculated sum is authoritative;
// otherwise a positive residual becomes an Adjustment charge and a negative
// one means the line items win.
func (n *Normalizer) reconcileTotal(q *NormalizedQuote, duplicatesRemoved bool) {
	calculated := Round2(q.LegsTotal() + q.GlobalTotal())

	if duplicatesRemoved {
		q.Breakdown.Total = calculated
		if q.Breakdown.BaseFare > calculated {
			q.Breakdown.BaseFare = calculated
		}
		return
	}

	if math.Abs(q.Breakdown.Total-calculated) <= amountTolerance {
		return
	}

	if q.AIGenerated && calculated > 0 {
		q.Breakdown.Total = calculated
		return
	}

	discrepancy := q.Breakdown.Total - calculated
	if discrepancy > 0 {
		q.Charges = append(q.Charges, Charge{
			Category: "Adjustment",
			Name:     "Ancillary Fees",
			Amount:   Round2(discrepancy),
			Currency: firstNonEmpty(q.Breakdown.Currency, q.Currency, "USD"),
			Unit:     "per_shipment",
			Note:     "Unitemized surcharges",
		})
	} else {
		q.Breakdown.Total = calculated
	}
}

// recomputeFinancials refreshes buy/margin figures when the total moved or
// the source carried no usable buy price.
func (n *Normalizer) recomputeFinancials(q *NormalizedQuote, declaredTotal float64, hadBuy bool) {
	totalChanged := math.Abs(declaredTotal-q.Breakdown.Total) > amountTolerance
	if q.MarginPercent <= 0 {
		q.MarginPercent = DefaultMarginPercent
	}
	if !totalChanged && hadBuy && q.BuyPrice > 0 {
		return
	}
	fin := n.calc.Calculate(q.Breakdown.Total, q.MarginPercent, false)
	q.BuyPrice = fin.BuyPrice
	q.MarginAmount = fin.MarginAmount
	q.MarkupPercent = fin.MarkupPercent
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
