package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig holds the margin factors applied on top of the base rate.
// The defaults reproduce the published pricing sheet; overriding them via
// pricing.yml lets operations tune margins without a deploy.
type PricingConfig struct {
	HomeState            string  `mapstructure:"homeState"`
	InStateFactor        float64 `mapstructure:"inStateFactor"`
	OutOfStateFactor     float64 `mapstructure:"outOfStateFactor"`
	HistoryFactor        float64 `mapstructure:"historyFactor"`
	BulkVolumeFactor     float64 `mapstructure:"bulkVolumeFactor"`
	StandardVolumeFactor float64 `mapstructure:"standardVolumeFactor"`
	ProfitFactor         float64 `mapstructure:"profitFactor"`
	BulkThresholdGallons int64   `mapstructure:"bulkThresholdGallons"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		HomeState:            "TX",
		InStateFactor:        0.02,
		OutOfStateFactor:     0.04,
		HistoryFactor:        0.01,
		BulkVolumeFactor:     0.02,
		StandardVolumeFactor: 0.03,
		ProfitFactor:         0.10,
		BulkThresholdGallons: 1000,
	}
}

// PricingHolder exposes the current pricing configuration with hot reload.
type PricingHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingHolder() (*PricingHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/aquarate/config")
	v.AddConfigPath("/etc/aquarate")
	v.AddConfigPath(".")

	v.SetEnvPrefix("AQUARATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingConfig()
	v.SetDefault("pricing.homeState", defaults.HomeState)
	v.SetDefault("pricing.inStateFactor", defaults.InStateFactor)
	v.SetDefault("pricing.outOfStateFactor", defaults.OutOfStateFactor)
	v.SetDefault("pricing.historyFactor", defaults.HistoryFactor)
	v.SetDefault("pricing.bulkVolumeFactor", defaults.BulkVolumeFactor)
	v.SetDefault("pricing.standardVolumeFactor", defaults.StandardVolumeFactor)
	v.SetDefault("pricing.profitFactor", defaults.ProfitFactor)
	v.SetDefault("pricing.bulkThresholdGallons", defaults.BulkThresholdGallons)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingHolder returns a holder pinned to cfg, for tests.
func NewStaticPricingHolder(cfg PricingConfig) *PricingHolder {
	holder := &PricingHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	if len(strings.TrimSpace(cfg.HomeState)) != 2 {
		return errors.New("pricing.homeState must be a two-letter state code")
	}
	if cfg.InStateFactor < 0 || cfg.OutOfStateFactor < 0 || cfg.HistoryFactor < 0 ||
		cfg.BulkVolumeFactor < 0 || cfg.StandardVolumeFactor < 0 || cfg.ProfitFactor < 0 {
		return errors.New("pricing factors cannot be negative")
	}
	// The history discount is subtracted from the other factors; the profit
	// factor must cover it so the margin never goes negative.
	if cfg.HistoryFactor > cfg.ProfitFactor {
		return errors.New("pricing.historyFactor cannot exceed pricing.profitFactor")
	}
	if cfg.BulkThresholdGallons <= 0 {
		return errors.New("pricing.bulkThresholdGallons must be positive")
	}
	return nil
}
