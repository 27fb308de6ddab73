package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"cargoquote/internal/domain"
	"cargoquote/internal/port"
	"cargoquote/internal/quote"
)

// amountTolerance is the epsilon under which stored and incoming totals are
// considered equal.
const amountTolerance = 0.01

// AddOptionInput carries the data needed to transfer one rate option onto a
// quotation version.
type AddOptionInput struct {
	TenantID  uuid.UUID
	VersionID uuid.UUID
	Rate      quote.RawRate
	Context   port.QuoteContext
}

// AddOptionResult reports the stored option and, when the stored charges do
// not add up to the incoming total, the anomaly that was recorded.
type AddOptionResult struct {
	Option  *domain.QuoteOption `json:"option"`
	Anomaly *domain.Anomaly     `json:"anomaly,omitempty"`
}

// QuoteOptionService transfers rate options into versioned quotations.
type QuoteOptionService interface {
	AddOptionToVersion(ctx context.Context, input AddOptionInput) (*AddOptionResult, error)
}

type quoteOptionService struct {
	versionRepo port.VersionRepository
	optionRepo  port.OptionRepository
	legRepo     port.LegRepository
	chargeRepo  port.ChargeRepository
	masterData  port.MasterDataSource

	normalizer    *quote.Normalizer
	calc          *quote.Calculator
	defaultMargin float64
}

// NewQuoteOptionService creates a new QuoteOptionService implementation.
func NewQuoteOptionService(
	versionRepo port.VersionRepository,
	optionRepo port.OptionRepository,
	legRepo port.LegRepository,
	chargeRepo port.ChargeRepository,
	masterData port.MasterDataSource,
	calc *quote.Calculator,
	defaultMargin float64,
) QuoteOptionService {
	if defaultMargin <= 0 {
		defaultMargin = quote.DefaultMarginPercent
	}
	return &quoteOptionService{
		versionRepo:   versionRepo,
		optionRepo:    optionRepo,
		legRepo:       legRepo,
		chargeRepo:    chargeRepo,
		masterData:    masterData,
		normalizer:    quote.NewNormalizer(calc),
		calc:          calc,
		defaultMargin: defaultMargin,
	}
}

// AddOptionToVersion normalizes the rate, persists the option header, its
// legs, and buy/sell charge pairs, then reconciles the header totals from
// the rows that were actually stored. A mismatch between the incoming total
// and the stored total is recorded as a critical anomaly on the version but
// does not fail the transfer.
func (s *quoteOptionService) AddOptionToVersion(ctx context.Context, input AddOptionInput) (*AddOptionResult, error) {
	if input.TenantID == uuid.Nil {
		return nil, domain.ErrTenantRequired
	}
	if input.Rate == nil {
		return nil, domain.ErrInvalidRatePayload
	}

	if _, err := s.versionRepo.GetByID(ctx, input.TenantID, input.VersionID); err != nil {
		return nil, err
	}

	q := s.normalizer.Normalize(input.Rate)
	if q == nil || (q.TotalAmount == 0 && len(q.Legs) == 0) {
		return nil, domain.ErrInvalidRatePayload
	}
	if len(q.Legs) == 0 {
		return nil, domain.ErrNoLegsInserted
	}

	resolver, err := s.masterData.LoadResolver(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("quoteOptionService.AddOptionToVersion: %w", err)
	}

	option, err := s.insertHeader(ctx, input, q, resolver)
	if err != nil {
		return nil, err
	}

	legIDs, err := s.insertLegs(ctx, input, q, option, resolver)
	if err != nil {
		return nil, err
	}

	if err := s.insertCharges(ctx, input, q, option, legIDs, resolver); err != nil {
		return nil, err
	}

	anomaly, err := s.reconcile(ctx, input, option, resolver)
	if err != nil {
		return nil, err
	}

	return &AddOptionResult{Option: option, Anomaly: anomaly}, nil
}

func (s *quoteOptionService) insertHeader(ctx context.Context, input AddOptionInput, q *quote.NormalizedQuote, resolver port.MasterDataResolver) (*domain.QuoteOption, error) {
	marginPct := q.MarginPercent
	if marginPct <= 0 {
		marginPct = s.defaultMargin
	}

	totalSell := q.TotalAmount
	totalBuy := q.BuyPrice
	marginAmount := q.MarginAmount
	if totalBuy <= 0 || marginAmount == 0 {
		fin := s.calc.Calculate(totalSell, marginPct, false)
		totalBuy = fin.BuyPrice
		marginAmount = fin.MarginAmount
	}

	currencyCode := q.Currency
	if currencyCode == "" {
		currencyCode = "USD"
	}
	currencyID := resolver.CurrencyID(currencyCode)
	if currencyID == uuid.Nil {
		currencyID = resolver.CurrencyID("USD")
	}
	if currencyID == uuid.Nil {
		return nil, domain.ErrCurrencyUnresolved
	}

	option := &domain.QuoteOption{
		ID:                 uuid.New(),
		TenantID:           input.TenantID,
		QuotationVersionID: input.VersionID,
		CarrierRateID:      parseOptionalUUID(q.ID),
		OptionName:         firstNonEmpty(q.OptionName, q.CarrierName+" Option"),
		CarrierName:        q.CarrierName,
		TotalAmount:        totalSell,
		TotalSell:          totalSell,
		TotalBuy:           totalBuy,
		MarginAmount:       marginAmount,
		MarginPercentage:   marginPct,
		QuoteCurrencyID:    &currencyID,
		TransitTime:        q.TransitTime.Details,
		TotalTransitDays:   transitDaysPtr(q.TransitTime.Details),
		ValidUntil:         parseValidUntil(q.ValidUntil),
		ReliabilityScore:   q.ReliabilityScore,
		AIGenerated:        q.AIGenerated,
		AIExplanation:      q.AIExplanation,
		Source:             sourceOf(q),
		SourceAttribution:  q.SourceAttribution,
		TotalCO2Kg:         q.TotalCO2Kg,
		Status:             domain.OptionStatusActive,
	}

	if err := s.optionRepo.Create(ctx, option); err != nil {
		return nil, err
	}
	log.Printf("quoteOptionService.AddOptionToVersion: inserted option %s (%s, total %.2f)",
		option.ID, option.CarrierName, option.TotalSell)
	return option, nil
}

// insertLegs stores the transport legs in sequence order and returns a map
// from normalized leg ID to stored leg UUID. Unresolvable master-data
// references become NULL columns; an incompatible carrier/mode pairing
// aborts the transfer.
func (s *quoteOptionService) insertLegs(ctx context.Context, input AddOptionInput, q *quote.NormalizedQuote, option *domain.QuoteOption, resolver port.MasterDataResolver) (map[string]uuid.UUID, error) {
	legIDs := make(map[string]uuid.UUID, len(q.Legs))
	rows := make([]domain.OptionLeg, 0, len(q.Legs))

	prevDestination := ""
	for i := range q.Legs {
		leg := &q.Legs[i]
		id := uuid.New()
		legIDs[leg.ID] = id

		mode := quote.CanonicalMode(leg.Mode)
		modeID := resolver.ModeID(mode)

		serviceTypeID := resolver.ServiceTypeID(mode, q.Tier)
		if serviceTypeID == uuid.Nil {
			serviceTypeID = contextServiceType(input.Context, mode)
		}

		providerID := resolver.ProviderID(firstNonEmpty(leg.Carrier, q.CarrierName))
		if providerID == uuid.Nil {
			providerID = contextCarrier(input.Context, firstNonEmpty(leg.Carrier, q.CarrierName))
		}
		if providerID != uuid.Nil && modeID != uuid.Nil && !resolver.CarrierServesMode(providerID, modeID) {
			return nil, domain.ErrCarrierModeIncompatible
		}

		origin := firstNonEmpty(leg.Origin, prevDestination)
		if origin == "" && i == 0 {
			origin = input.Context.Origin
		}
		destination := leg.Destination
		if destination == "" && i == len(q.Legs)-1 {
			destination = input.Context.Destination
		}
		prevDestination = destination

		rows = append(rows, domain.OptionLeg{
			ID:                    id,
			TenantID:              input.TenantID,
			OptionID:              option.ID,
			ModeID:                nilIfEmpty(modeID),
			Mode:                  mode,
			ServiceTypeID:         nilIfEmpty(serviceTypeID),
			ProviderID:            nilIfEmpty(providerID),
			OriginLocation:        origin,
			DestinationLocation:   destination,
			OriginLocationID:      contextPort(input.Context, origin),
			DestinationLocationID: contextPort(input.Context, destination),
			SortOrder:             i + 1,
			LegType:               leg.LegType,
			TransitTimeHours:      durationToHours(leg.TransitTime),
			CO2Kg:                 nilIfZero(leg.CO2Kg),
			VoyageNumber:          leg.VoyageNumber,
		})
	}

	if len(rows) == 0 {
		return nil, domain.ErrNoLegsInserted
	}
	if err := s.legRepo.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}
	return legIDs, nil
}

// insertCharges stores every charge as a buy/sell row pair. Charges already
// attached to legs go first, then unassigned charges are classified onto a
// leg by keyword, and finally the price breakdown components are walked when
// no line items exist at all. A residual against the expected sell total
// becomes a balancing pair; a completely chargeless option gets a single
// freight pair for the full amount.
func (s *quoteOptionService) insertCharges(ctx context.Context, input AddOptionInput, q *quote.NormalizedQuote, option *domain.QuoteOption, legIDs map[string]uuid.UUID, resolver port.MasterDataResolver) error {
	buySideID := firstResolved(resolver.SideID(domain.SideBuy), resolver.SideID(domain.SideCost))
	sellSideID := firstResolved(resolver.SideID(domain.SideSell), resolver.SideID(domain.SideRevenue))
	if buySideID == uuid.Nil || sellSideID == uuid.Nil {
		return fmt.Errorf("quoteOptionService.insertCharges: charge sides missing from master data")
	}

	mainLegID := mainLegUUID(q, legIDs)
	marginPct := option.MarginPercentage

	var rows []domain.QuoteCharge
	var insertedSell float64
	pairs := 0

	addPair := func(legID uuid.UUID, category, name string, amount float64, currency, unit, note string) {
		categoryID := s.resolveCategory(input.Context, resolver, category, name)
		if categoryID == uuid.Nil {
			log.Printf("quoteOptionService.insertCharges: no category for %q, charge dropped", name)
			return
		}
		basisID := firstResolved(resolver.BasisID(unit), resolver.BasisID("per_shipment"))
		currencyID := firstResolved(resolver.CurrencyID(currency), resolver.CurrencyID(firstNonEmpty(q.Currency, "USD")))

		fin := s.calc.Calculate(amount, marginPct, false)
		for _, side := range []struct {
			sideID uuid.UUID
			amount float64
		}{
			{buySideID, fin.BuyPrice},
			{sellSideID, amount},
		} {
			rows = append(rows, domain.QuoteCharge{
				ID:           uuid.New(),
				TenantID:     input.TenantID,
				OptionID:     option.ID,
				LegID:        legID,
				CategoryID:   categoryID,
				BasisID:      nilIfEmpty(basisID),
				ChargeSideID: side.sideID,
				Quantity:     1,
				Rate:         side.amount,
				Amount:       quote.Round2(side.amount),
				CurrencyID:   nilIfEmpty(currencyID),
				Note:         firstNonEmpty(note, name),
				Unit:         firstNonEmpty(unit, "per_shipment"),
			})
		}
		insertedSell += quote.Round2(amount)
		pairs++
	}

	// Priority 1: charges explicitly attached to legs.
	for i := range q.Legs {
		leg := &q.Legs[i]
		legID := legIDs[leg.ID]
		for j := range leg.Charges {
			c := &leg.Charges[j]
			addPair(legID, c.Category, c.Name, c.Amount, c.Currency, c.Unit, c.Note)
		}
	}

	// Priority 2: unassigned charges, routed by explicit leg reference first
	// and keyword classification second.
	for i := range q.Charges {
		c := &q.Charges[i]
		legID := uuid.Nil
		if c.LegID != "" {
			if id, ok := legIDs[c.LegID]; ok {
				legID = id
			}
		}
		if legID == uuid.Nil {
			legID = legForChargeKey(q, legIDs, mainLegID, firstNonEmpty(c.Name, c.Category), c.LegIndex)
		}
		addPair(legID, c.Category, c.Name, c.Amount, c.Currency, c.Unit, c.Note)
	}

	// Priority 3: no line items anywhere, walk the breakdown components.
	// Each component classifies onto a leg by its composite key, with an
	// explicit leg index taking precedence.
	if pairs == 0 {
		currency := firstNonEmpty(q.Breakdown.Currency, q.Currency, "USD")
		if len(q.Breakdown.Components) > 0 {
			for i := range q.Breakdown.Components {
				comp := &q.Breakdown.Components[i]
				if comp.Amount == 0 {
					continue
				}
				legID := legForChargeKey(q, legIDs, mainLegID, comp.Key, comp.LegIndex)
				addPair(legID, comp.Name, comp.Name, comp.Amount, currency, comp.Unit, "")
			}
		} else {
			if q.Breakdown.BaseFare > 0 {
				addPair(mainLegID, "Freight", "Base Freight", q.Breakdown.BaseFare, currency, "per_shipment", "")
			}
			if q.Breakdown.Taxes > 0 {
				addPair(mainLegID, "Tax", "Taxes & Duties", q.Breakdown.Taxes, currency, "per_shipment", "")
			}
			for name, amount := range q.Breakdown.Surcharges {
				if amount > 0 {
					addPair(mainLegID, "Surcharge", name, amount, currency, "per_shipment", "")
				}
			}
			for name, amount := range q.Breakdown.Fees {
				if amount > 0 {
					addPair(mainLegID, "Fee", name, amount, currency, "per_shipment", "")
				}
			}
		}
	}

	// Balancing pair for any residual against the expected sell total.
	expectedSell := option.TotalSell
	if diff := quote.Round2(expectedSell - insertedSell); math.Abs(diff) > amountTolerance && pairs > 0 {
		name := "Ancillary Fees"
		if diff < 0 {
			name = "Discount / Adjustment"
		}
		addPair(mainLegID, "Adjustment", name, diff, q.Currency, "per_shipment", "Balances itemized charges to the quoted total")
	}

	// Last resort: one freight pair carrying the whole amount, even when
	// that amount is zero. An option never stores zero charge rows.
	if pairs == 0 {
		addPair(mainLegID, "Freight", "Total Freight", expectedSell, q.Currency, "per_shipment", "Unitemized freight total")
	}

	return s.chargeRepo.CreateBatch(ctx, rows)
}

// legForChargeKey resolves the target leg for an unattached charge: an
// explicit leg index wins, then keyword classification, then positional
// hints in the key, then the main leg.
func legForChargeKey(q *quote.NormalizedQuote, legIDs map[string]uuid.UUID, mainLegID uuid.UUID, key string, legIndex *int) uuid.UUID {
	if legIndex != nil && *legIndex >= 0 && *legIndex < len(q.Legs) {
		return legIDs[q.Legs[*legIndex].ID]
	}
	if target := quote.MatchLegForCharge(key, q.Legs); target != nil {
		if id, ok := legIDs[target.ID]; ok {
			return id
		}
	}
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "pickup"), strings.Contains(k, "origin"),
		strings.Contains(k, "pre_carriage"), strings.Contains(k, "export"):
		return legIDs[q.Legs[0].ID]
	case strings.Contains(k, "delivery"), strings.Contains(k, "destination"),
		strings.Contains(k, "on_carriage"), strings.Contains(k, "import"):
		return legIDs[q.Legs[len(q.Legs)-1].ID]
	}
	return mainLegID
}

// reconcile recomputes the option totals strictly from the stored charge
// rows and flags a transfer mismatch on the version when the stored sell
// total disagrees with the incoming one.
func (s *quoteOptionService) reconcile(ctx context.Context, input AddOptionInput, option *domain.QuoteOption, resolver port.MasterDataResolver) (*domain.Anomaly, error) {
	buySideID := firstResolved(resolver.SideID(domain.SideBuy), resolver.SideID(domain.SideCost))
	sellSideID := firstResolved(resolver.SideID(domain.SideSell), resolver.SideID(domain.SideRevenue))

	buy, sell, err := s.chargeRepo.TotalsBySide(ctx, input.TenantID, option.ID, buySideID, sellSideID)
	if err != nil {
		return nil, err
	}

	totals := domain.OptionTotals{
		TotalBuy:     quote.Round2(buy),
		TotalSell:    quote.Round2(sell),
		MarginAmount: quote.Round2(sell - buy),
	}
	if sell > 0 {
		totals.MarginPercentage = quote.Round2((sell - buy) / sell * 100)
	}
	if err := s.optionRepo.UpdateTotals(ctx, input.TenantID, option.ID, totals); err != nil {
		return nil, err
	}

	incoming := option.TotalSell
	option.TotalAmount = totals.TotalSell
	option.TotalSell = totals.TotalSell
	option.TotalBuy = totals.TotalBuy
	option.MarginAmount = totals.MarginAmount
	option.MarginPercentage = totals.MarginPercentage

	diff := quote.Round2(incoming - totals.TotalSell)
	if math.Abs(diff) <= amountTolerance {
		return nil, nil
	}

	anomaly := domain.Anomaly{
		Type:     domain.AnomalyTransferMismatch,
		Severity: domain.SeverityCritical,
		Message: fmt.Sprintf("[Data Integrity Failure] Transfer Mismatch: Incoming %v vs Stored %v (Diff: %v)",
			incoming, totals.TotalSell, diff),
		Timestamp: time.Now().UTC(),
		OptionID:  option.ID,
	}
	// Recording the anomaly is best effort; the transfer itself stands.
	if err := s.versionRepo.AppendAnomaly(ctx, input.TenantID, input.VersionID, anomaly); err != nil {
		log.Printf("quoteOptionService.reconcile: failed to record anomaly on version %s: %v", input.VersionID, err)
	} else {
		log.Printf("quoteOptionService.reconcile: transfer mismatch on option %s (incoming %.2f, stored %.2f)",
			option.ID, incoming, totals.TotalSell)
	}
	return &anomaly, nil
}

// resolveCategory tries the specific category, then the generic buckets,
// then the first caller-supplied category.
func (s *quoteOptionService) resolveCategory(qc port.QuoteContext, resolver port.MasterDataResolver, category, name string) uuid.UUID {
	for _, candidate := range []string{category, name, "General", "Other", "Freight", "SURCHARGE"} {
		if candidate == "" {
			continue
		}
		if id := resolver.CategoryID(candidate); id != uuid.Nil {
			return id
		}
	}
	for _, ref := range qc.Categories {
		if strings.EqualFold(ref.Name, category) || strings.EqualFold(ref.Name, name) {
			return ref.ID
		}
	}
	if len(qc.Categories) > 0 {
		return qc.Categories[0].ID
	}
	return uuid.Nil
}

// mainLegUUID picks the leg carrying the main haul: the transport leg whose
// mode matches the quote's base mode, then any leg in the main role, then
// the first leg.
func mainLegUUID(q *quote.NormalizedQuote, legIDs map[string]uuid.UUID) uuid.UUID {
	targetMode := quote.CanonicalMode(q.Mode)
	modeSeen := false
	for i := range q.Legs {
		if quote.CanonicalMode(q.Legs[i].Mode) == targetMode {
			modeSeen = true
			break
		}
	}
	// A defaulted base mode may describe none of the legs (ocean header over
	// air/road legs); infer the haul mode from the legs instead.
	if !modeSeen {
		for i := range q.Legs {
			leg := &q.Legs[i]
			mode := quote.CanonicalMode(leg.Mode)
			longHaul := mode == string(domain.ModeAir) || mode == string(domain.ModeOcean) || mode == string(domain.ModeRail)
			if leg.LegType == domain.LegTypeTransport || longHaul {
				targetMode = mode
				break
			}
		}
	}

	for i := range q.Legs {
		leg := &q.Legs[i]
		if quote.CanonicalMode(leg.Mode) == targetMode && leg.LegType == domain.LegTypeTransport {
			return legIDs[leg.ID]
		}
	}
	for i := range q.Legs {
		if q.Legs[i].BifurcationRole == domain.RoleMain {
			return legIDs[q.Legs[i].ID]
		}
	}
	return legIDs[q.Legs[0].ID]
}

func contextServiceType(qc port.QuoteContext, mode string) uuid.UUID {
	for _, st := range qc.ServiceTypes {
		if strings.EqualFold(st.Mode, mode) {
			return st.ID
		}
	}
	return uuid.Nil
}

func contextCarrier(qc port.QuoteContext, name string) uuid.UUID {
	n := strings.ToLower(name)
	if n == "" {
		return uuid.Nil
	}
	for _, c := range qc.Carriers {
		known := strings.ToLower(c.Name)
		if known == n || strings.Contains(known, n) || strings.Contains(n, known) {
			return c.ID
		}
	}
	return uuid.Nil
}

func contextPort(qc port.QuoteContext, location string) *uuid.UUID {
	n := strings.ToLower(strings.TrimSpace(location))
	if n == "" {
		return nil
	}
	for _, p := range qc.Ports {
		known := strings.ToLower(p.Name)
		if known == n || strings.Contains(known, n) || strings.Contains(n, known) {
			id := p.ID
			return &id
		}
	}
	return nil
}

// durationToHours parses free-text durations ("3 days", "36 hours", "2-3
// days"). Day figures convert to hours; a bare number is taken as days.
func durationToHours(s string) *int {
	days := quote.TransitDays(s)
	if days == quote.UnknownTransitDays {
		return nil
	}
	hours := days * 24
	lower := strings.ToLower(s)
	if strings.Contains(lower, "hour") || strings.Contains(lower, "hr") {
		hours = days
	}
	return &hours
}

func transitDaysPtr(details string) *int {
	days := quote.TransitDays(details)
	if days == quote.UnknownTransitDays {
		return nil
	}
	return &days
}

func parseValidUntil(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseOptionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func sourceOf(q *quote.NormalizedQuote) domain.QuoteSource {
	switch q.Source {
	case string(domain.SourceManual), string(domain.SourceQuickQuote), string(domain.SourceSmartQuote), string(domain.SourceAIGenerated):
		return domain.QuoteSource(q.Source)
	}
	if q.AIGenerated {
		return domain.SourceAIGenerated
	}
	return domain.SourceManual
}

func firstResolved(ids ...uuid.UUID) uuid.UUID {
	for _, id := range ids {
		if id != uuid.Nil {
			return id
		}
	}
	return uuid.Nil
}

func nilIfEmpty(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func nilIfZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
