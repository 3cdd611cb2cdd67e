package pricing

import (
	"testing"

	"github.com/bluedrop/aquarate/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMargin(t *testing.T) {
	cfg := config.DefaultPricingConfig()
	base := decimal.RequireFromString("1.50")

	tests := []struct {
		name string
		in   Inputs
		want string
	}{
		{
			name: "in-state repeat customer standard volume",
			in:   Inputs{State: "TX", Gallons: 500, HistoryCount: 1},
			// 0.02 - 0.01 + 0.03 + 0.10 = 0.14 -> 1.50 * 0.14
			want: "0.21",
		},
		{
			name: "out-of-state new customer bulk volume",
			in:   Inputs{State: "CA", Gallons: 1500, HistoryCount: 0},
			// 0.04 - 0 + 0.02 + 0.10 = 0.16 -> 1.50 * 0.16
			want: "0.24",
		},
		{
			name: "threshold gallons count as standard volume",
			in:   Inputs{State: "CA", Gallons: 1000, HistoryCount: 0},
			// 0.04 - 0 + 0.03 + 0.10 = 0.17 -> 1.50 * 0.17
			want: "0.255",
		},
		{
			name: "state comparison ignores case",
			in:   Inputs{State: "tx", Gallons: 500, HistoryCount: 1},
			want: "0.21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Margin(cfg, base, tt.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"margin = %s, want %s", got, tt.want)
		})
	}
}

func TestUnitPrice(t *testing.T) {
	cfg := config.DefaultPricingConfig()

	got := UnitPrice(cfg, decimal.RequireFromString("1.50"), Inputs{
		State:        "TX",
		Gallons:      100,
		HistoryCount: 0,
	})
	// 1.50 + 1.50 * (0.02 + 0.03 + 0.10) = 1.725
	assert.True(t, got.Equal(decimal.RequireFromString("1.725")),
		"unit price = %s, want 1.725", got)
}

func TestUnitPriceNeverBelowBase(t *testing.T) {
	cfg := config.DefaultPricingConfig()
	base := decimal.RequireFromString("3.50")

	inputs := []Inputs{
		{State: "TX", Gallons: 1, HistoryCount: 100},
		{State: "TX", Gallons: 5000, HistoryCount: 100},
		{State: "NY", Gallons: 1, HistoryCount: 0},
		{State: "NY", Gallons: 5000, HistoryCount: 50},
	}
	for _, in := range inputs {
		got := UnitPrice(cfg, base, in)
		assert.True(t, got.GreaterThanOrEqual(base),
			"unit price %s below base %s for %+v", got, base, in)
	}
}

func TestPriceRejectsInvalidInput(t *testing.T) {
	cfg := config.DefaultPricingConfig()
	base := decimal.RequireFromString("1.50")

	_, _, err := Price(cfg, base, Inputs{State: "TX", Gallons: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Price(cfg, base, Inputs{State: "TX", Gallons: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Price(cfg, decimal.Zero, Inputs{State: "TX", Gallons: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	unit, total, err := Price(cfg, base, Inputs{State: "TX", Gallons: 100})
	assert.NoError(t, err)
	assert.True(t, unit.Equal(decimal.RequireFromString("1.725")))
	assert.True(t, total.Equal(unit.Mul(decimal.NewFromInt(100))))
}

func TestTotalDue(t *testing.T) {
	unit := decimal.RequireFromString("1.725")
	got := TotalDue(unit, 100)
	assert.True(t, got.Equal(decimal.RequireFromString("172.5")),
		"total = %s, want 172.5", got)
}
