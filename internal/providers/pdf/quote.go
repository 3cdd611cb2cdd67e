package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateQuote(ctx context.Context, doc QuoteDocument) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Water Delivery Quote", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	// Quote meta
	m.AddRow(20,
		col.New(6).Add(
			text.New("Quote number: "+doc.QuoteNumber, props.Text{Top: 0}),
			text.New("Created: "+doc.CreatedAt, props.Text{Top: 4}),
			text.New("Delivery date: "+doc.DeliveryDate, props.Text{Top: 8}),
		),
		col.New(6),
	)

	// Delivery details
	m.AddRow(30,
		col.New(6).Add(
			text.New("Deliver to", props.Text{Style: fontstyle.Bold}),
			text.New(doc.CustomerName, props.Text{Top: 5}),
			text.New(doc.Address, props.Text{Top: 9}),
		),
		col.New(6),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Gallons", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	m.AddRow(15,
		text.NewCol(6, "Bulk water delivery", props.Text{Size: 9}),
		text.NewCol(2, doc.Gallons, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, doc.UnitPrice, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, doc.TotalDue, props.Text{Size: 9, Align: align.Right}),
	)

	// Footer total
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total due", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, doc.TotalDue, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	generated, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(generated.GetBytes()), nil
}
