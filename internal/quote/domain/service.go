package domain

import (
	"context"
	"time"

	"github.com/bluedrop/aquarate/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest carries the caller-supplied facts for a new quote.
// State overrides the profile state for pricing when set; the address
// snapshot always comes from the profile.
type CreateQuoteRequest struct {
	Username     string
	Gallons      int64
	State        string
	DeliveryDate time.Time
}

// PreviewRequest asks for a price without touching the ledger.
type PreviewRequest struct {
	Username string
	Gallons  int64
	State    string
}

// PriceBreakdown is the computed pricing for a volume, at full precision.
type PriceBreakdown struct {
	BasePrice decimal.Decimal
	Margin    decimal.Decimal
	UnitPrice decimal.Decimal
	TotalDue  decimal.Decimal
}

type Service interface {
	// Create prices the request and appends it to the customer's ledger,
	// returning the stored quote with its assigned sequence number.
	Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error)
	// Preview computes pricing for a volume without recording anything.
	Preview(ctx context.Context, req PreviewRequest) (*PriceBreakdown, error)
	// History returns one page of the customer's quotes in sequence order.
	History(ctx context.Context, username string, page pagination.Pagination) ([]Quote, *pagination.PageInfo, error)
	HistoryCount(ctx context.Context, username string) (int64, error)
	Get(ctx context.Context, username string, id snowflake.ID) (*Quote, error)
}
