package quote

import (
	"fmt"
	"sync"
	"time"
)

// DefaultMarginPercent is the business default applied when a rate carries no
// explicit margin.
const DefaultMarginPercent = 15.0

// DefaultCacheTTL bounds how long a computed financial figure is reused.
const DefaultCacheTTL = 5 * time.Minute

// Financials is the result of one margin computation.
type Financials struct {
	SellPrice     float64 `json:"sell_price"`
	BuyPrice      float64 `json:"buy_price"`
	MarginAmount  float64 `json:"margin_amount"`
	MarginPercent float64 `json:"margin_percent"`
	MarkupPercent float64 `json:"markup_percent"`
}

type cacheEntry struct {
	result Financials
	at     time.Time
}

// Calculator performs margin math with a TTL cache. The cache is shared
// process-wide mutable state; concurrent readers may observe a stale-but-not-
// expired value, which is acceptable because the math is idempotent for
// identical inputs. The clock is injectable so tests control expiry.
type Calculator struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewCalculator creates a Calculator. A zero ttl falls back to the default;
// a nil clock uses time.Now.
func NewCalculator(ttl time.Duration, now func() time.Time) *Calculator {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Calculator{ttl: ttl, now: now, cache: make(map[string]cacheEntry)}
}

// Calculate computes buy/sell/margin figures from an amount and a margin
// percent. Cost-based mode treats the amount as the buy price (cost-plus);
// sell-based mode treats it as the sell price (discount). It never errors:
// degenerate inputs produce identity figures with zero margin.
func (c *Calculator) Calculate(amount, marginPercent float64, costBased bool) Financials {
	key := fmt.Sprintf("fin:%v:%v:%v", amount, marginPercent, costBased)
	t := c.now()

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok {
		if t.Sub(entry.at) < c.ttl {
			c.mu.Unlock()
			return entry.result
		}
		delete(c.cache, key)
	}
	c.mu.Unlock()

	result := computeFinancials(amount, marginPercent, costBased)

	c.mu.Lock()
	c.cache[key] = cacheEntry{result: result, at: t}
	c.mu.Unlock()

	return result
}

func computeFinancials(amount, marginPercent float64, costBased bool) Financials {
	safeAmount := SafeNumber(amount)
	safeMargin := SafeNumber(marginPercent)

	var sellPrice, buyPrice, marginAmount float64
	if costBased {
		// Cost-plus: sell = cost / (1 - margin%).
		buyPrice = safeAmount
		divisor := 1 - safeMargin/100
		if divisor > 0 {
			sellPrice = Round2(buyPrice / divisor)
		} else {
			sellPrice = buyPrice
		}
		marginAmount = Round2(sellPrice - buyPrice)
	} else {
		// Sell-based: buy = sell * (1 - margin%).
		sellPrice = safeAmount
		marginAmount = Round2(sellPrice * safeMargin / 100)
		buyPrice = Round2(sellPrice - marginAmount)
	}

	var markup float64
	if buyPrice > 0 {
		markup = Round2(marginAmount / buyPrice * 100)
	}

	return Financials{
		SellPrice:     sellPrice,
		BuyPrice:      buyPrice,
		MarginAmount:  marginAmount,
		MarginPercent: safeMargin,
		MarkupPercent: markup,
	}
}
