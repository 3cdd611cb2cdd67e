// Package pricing computes quote margins and unit prices from the base rate.
// All arithmetic is exact decimal; callers round only when shaping responses.
package pricing

import (
	"errors"
	"strings"

	"github.com/bluedrop/aquarate/internal/config"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when gallons is not positive or the base
// price is not a positive amount. Callers map it to a validation error.
var ErrInvalidInput = errors.New("invalid_input")

// Inputs are the per-quote facts the margin depends on.
type Inputs struct {
	// State is the customer's two-letter delivery state.
	State string
	// Gallons is the requested volume. Must already be validated positive.
	Gallons int64
	// HistoryCount is how many quotes the customer has on the ledger.
	HistoryCount int64
}

// MarginRate returns the fractional margin applied on top of the base rate:
// a location factor, minus a repeat-customer discount, plus a volume factor,
// plus the profit factor.
func MarginRate(cfg config.PricingConfig, in Inputs) decimal.Decimal {
	location := decimal.NewFromFloat(cfg.OutOfStateFactor)
	if strings.EqualFold(strings.TrimSpace(in.State), cfg.HomeState) {
		location = decimal.NewFromFloat(cfg.InStateFactor)
	}

	history := decimal.Zero
	if in.HistoryCount > 0 {
		history = decimal.NewFromFloat(cfg.HistoryFactor)
	}

	volume := decimal.NewFromFloat(cfg.StandardVolumeFactor)
	if in.Gallons > cfg.BulkThresholdGallons {
		volume = decimal.NewFromFloat(cfg.BulkVolumeFactor)
	}

	profit := decimal.NewFromFloat(cfg.ProfitFactor)

	return location.Sub(history).Add(volume).Add(profit)
}

// Margin returns the per-gallon margin in currency units: the base rate
// scaled by the margin rate.
func Margin(cfg config.PricingConfig, basePrice decimal.Decimal, in Inputs) decimal.Decimal {
	return basePrice.Mul(MarginRate(cfg, in))
}

// UnitPrice returns the suggested price per gallon: base rate plus margin.
// Because all factors are non-negative and the history discount is bounded
// by the profit factor, the unit price never drops below the base rate.
func UnitPrice(cfg config.PricingConfig, basePrice decimal.Decimal, in Inputs) decimal.Decimal {
	return basePrice.Add(Margin(cfg, basePrice, in))
}

// TotalDue returns the amount owed for the delivery at the given unit price.
func TotalDue(unitPrice decimal.Decimal, gallons int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(gallons))
}

// Price validates its inputs and returns the unit price and total due.
func Price(cfg config.PricingConfig, basePrice decimal.Decimal, in Inputs) (unitPrice, totalDue decimal.Decimal, err error) {
	if in.Gallons <= 0 || !basePrice.IsPositive() {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInvalidInput
	}
	unitPrice = UnitPrice(cfg, basePrice, in)
	return unitPrice, TotalDue(unitPrice, in.Gallons), nil
}
