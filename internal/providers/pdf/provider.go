package pdf

import (
	"context"
	"io"
)

// QuoteDocument is the presentation-ready content for a quote PDF. All
// money fields arrive pre-formatted; rounding happened at the boundary.
type QuoteDocument struct {
	QuoteNumber  string
	CustomerName string
	Address      string
	DeliveryDate string
	CreatedAt    string

	Gallons   string
	UnitPrice string
	TotalDue  string
}

type Provider interface {
	GenerateQuote(ctx context.Context, doc QuoteDocument) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateQuote(ctx context.Context, doc QuoteDocument) (io.Reader, error) {
	return nil, nil
}
