package cache

import (
	"time"

	"github.com/shopspring/decimal"
)

const defaultRateTTL = 30 * time.Second

const rateKey = "rate:current"

// RateCache keeps the base rate hot between administrative updates, so the
// quote path does not hit the rates table on every request.
type RateCache interface {
	Get() (decimal.Decimal, bool)
	Set(price decimal.Decimal)
	Invalidate()
}

type rateCache struct {
	inner Cache[string, decimal.Decimal]
	ttl   time.Duration
}

// NewRateCache returns an in-memory rate cache with the default TTL.
func NewRateCache() RateCache {
	return &rateCache{
		inner: NewTTLCache[string, decimal.Decimal](),
		ttl:   defaultRateTTL,
	}
}

func (c *rateCache) Get() (decimal.Decimal, bool) {
	return c.inner.Get(rateKey)
}

func (c *rateCache) Set(price decimal.Decimal) {
	c.inner.Set(rateKey, price, c.ttl)
}

func (c *rateCache) Invalidate() {
	c.inner.Delete(rateKey)
}
