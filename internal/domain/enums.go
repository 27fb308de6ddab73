package domain

// TransportMode is the canonical transport mode of a quote or leg.
type TransportMode string

const (
	ModeOcean         TransportMode = "ocean"
	ModeAir           TransportMode = "air"
	ModeRoad          TransportMode = "road"
	ModeRail          TransportMode = "rail"
	ModeCourier       TransportMode = "courier"
	ModeMoversPackers TransportMode = "movers_packers"
)

// QuoteSource identifies which engine produced a rate.
type QuoteSource string

const (
	SourceManual      QuoteSource = "manual"
	SourceQuickQuote  QuoteSource = "quick_quote"
	SourceSmartQuote  QuoteSource = "smart_quote"
	SourceAIGenerated QuoteSource = "ai_generated"
)

// LegType classifies a transport leg within an option.
type LegType string

const (
	LegTypePickup    LegType = "pickup"
	LegTypeDelivery  LegType = "delivery"
	LegTypeTransport LegType = "transport"
)

// BifurcationRole marks a leg's position-derived role in a multi-leg routing.
type BifurcationRole string

const (
	RoleOrigin      BifurcationRole = "origin"
	RoleMain        BifurcationRole = "main"
	RoleDestination BifurcationRole = "destination"
)

// Charge side codes understood by the master-data resolver.
const (
	SideBuy     = "buy"
	SideCost    = "cost"
	SideSell    = "sell"
	SideRevenue = "revenue"
)

// AnomalyType categorizes a data-integrity anomaly on a quotation version.
type AnomalyType string

const (
	AnomalyTransferMismatch AnomalyType = "TRANSFER_MISMATCH"
)

// AnomalySeverity grades an anomaly.
type AnomalySeverity string

const (
	SeverityCritical AnomalySeverity = "CRITICAL"
	SeverityWarning  AnomalySeverity = "WARNING"
)

// OptionStatus is the lifecycle status of a quote option.
type OptionStatus string

const (
	OptionStatusActive   OptionStatus = "active"
	OptionStatusArchived OptionStatus = "archived"
)
