package service

import (
	"context"
	"time"

	"github.com/bluedrop/aquarate/internal/cache"
	obsmetrics "github.com/bluedrop/aquarate/internal/observability/metrics"
	"github.com/bluedrop/aquarate/internal/rate/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       domain.Repository
	Cache      cache.RateCache     `optional:"true"`
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       domain.Repository
	cache      cache.RateCache
	obsMetrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("rate.service"),
		repo:       p.Repo,
		cache:      p.Cache,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) Current(ctx context.Context) (decimal.Decimal, error) {
	if s.cache != nil {
		if price, ok := s.cache.Get(); ok {
			s.obsMetrics.RecordRateRead(ctx, "cache")
			return price, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return decimal.Decimal{}, ctx.Err()
			case <-time.After(readBackoff):
			}
		}

		rate, err := s.repo.Get(ctx, s.db)
		if err != nil {
			lastErr = err
			continue
		}
		if rate == nil {
			// The singleton row is seeded at startup; a missing row means
			// the store is not usable for quoting.
			return decimal.Decimal{}, domain.ErrUnavailable
		}

		if s.cache != nil {
			s.cache.Set(rate.PricePerGallon)
		}
		s.obsMetrics.RecordRateRead(ctx, "db")
		return rate.PricePerGallon, nil
	}

	s.log.Error("base rate read failed", zap.Error(lastErr))
	return decimal.Decimal{}, domain.ErrUnavailable
}

func (s *Service) Set(ctx context.Context, price decimal.Decimal) error {
	if !price.IsPositive() {
		return domain.ErrInvalidRate
	}

	rate := &domain.Rate{
		ID:             domain.CurrentRateID,
		PricePerGallon: price,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, s.db, rate); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate()
	}
	return nil
}
