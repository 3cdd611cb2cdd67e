package config

import "testing"

func TestValidatePricingConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PricingConfig)
		wantErr bool
	}{
		{"defaults", func(c *PricingConfig) {}, false},
		{"blank home state", func(c *PricingConfig) { c.HomeState = "" }, true},
		{"long home state", func(c *PricingConfig) { c.HomeState = "Texas" }, true},
		{"negative factor", func(c *PricingConfig) { c.OutOfStateFactor = -0.01 }, true},
		{"discount exceeds profit", func(c *PricingConfig) { c.HistoryFactor = 0.2 }, true},
		{"zero bulk threshold", func(c *PricingConfig) { c.BulkThresholdGallons = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPricingConfig()
			tt.mutate(&cfg)
			err := validatePricingConfig(cfg)
			if tt.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStaticHolderPinsConfig(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.HomeState = "CA"

	holder := NewStaticPricingHolder(cfg)
	if got := holder.Get().HomeState; got != "CA" {
		t.Fatalf("expected home state CA, got %q", got)
	}
}
