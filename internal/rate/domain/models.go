// Package domain contains core types for the base rate source.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the single shared base price per gallon. Exactly one row exists;
// it is a point-in-time value with no history.
type Rate struct {
	ID             int64           `gorm:"primaryKey"`
	PricePerGallon decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	UpdatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Rate) TableName() string { return "rates" }

// CurrentRateID is the primary key of the singleton rate row.
const CurrentRateID int64 = 1

type Service interface {
	// Current returns the base price per gallon used for new quotes.
	Current(ctx context.Context) (decimal.Decimal, error)
	// Set replaces the base rate. Administrative path, not exposed on
	// customer routes.
	Set(ctx context.Context, price decimal.Decimal) error
}

var (
	ErrUnavailable = errors.New("rate_unavailable")
	ErrInvalidRate = errors.New("invalid_rate")
)
