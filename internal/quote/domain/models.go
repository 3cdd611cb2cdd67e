// Package domain contains core types for the quote ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Quote is one immutable ledger entry: who, how much, where, when, and at
// what unit price. TotalCost is a projection and is never stored.
type Quote struct {
	ID             snowflake.ID    `gorm:"primaryKey" json:"id"`
	Username       string          `gorm:"type:text;not null;index;uniqueIndex:ux_quotes_username_seq,priority:1" json:"username"`
	SequenceNumber int64           `gorm:"not null;uniqueIndex:ux_quotes_username_seq,priority:2" json:"sequence_number"`
	Gallons        int64           `gorm:"not null" json:"gallons"`
	// DeliveryAddress is the customer's full address frozen at creation
	// time. Later profile edits do not touch it.
	DeliveryAddress string          `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryState   string          `gorm:"type:text;not null" json:"delivery_state"`
	DeliveryDate    time.Time       `gorm:"type:date;not null" json:"delivery_date"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,6);not null" json:"unit_price"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Quote) TableName() string { return "quotes" }

// TotalCost is always computed from its inputs so it can never drift from
// the stored gallons and unit price.
func (q Quote) TotalCost() decimal.Decimal {
	return q.UnitPrice.Mul(decimal.NewFromInt(q.Gallons))
}

// QuoteSequence is the per-customer counter behind sequence assignment.
// The next number is claimed with a single atomic upsert inside the same
// transaction that inserts the quote.
type QuoteSequence struct {
	Username string `gorm:"type:text;primaryKey"`
	NextSeq  int64  `gorm:"not null"`
}

// TableName sets the database table name.
func (QuoteSequence) TableName() string { return "quote_sequences" }
