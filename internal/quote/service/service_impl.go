package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bluedrop/aquarate/internal/clock"
	"github.com/bluedrop/aquarate/internal/config"
	obsmetrics "github.com/bluedrop/aquarate/internal/observability/metrics"
	"github.com/bluedrop/aquarate/internal/pricing"
	profiledomain "github.com/bluedrop/aquarate/internal/profile/domain"
	quotedomain "github.com/bluedrop/aquarate/internal/quote/domain"
	ratedomain "github.com/bluedrop/aquarate/internal/rate/domain"
	"github.com/bluedrop/aquarate/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var stateRe = regexp.MustCompile(`^[A-Za-z]{2}$`)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Pricing    *config.PricingHolder
	Repo       quotedomain.Repository
	ProfileSvc profiledomain.Service
	RateSvc    ratedomain.Service
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	pricing    *config.PricingHolder
	repo       quotedomain.Repository
	profileSvc profiledomain.Service
	rateSvc    ratedomain.Service
	obsMetrics *obsmetrics.Metrics
}

func New(p Params) quotedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("quote.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		pricing:    p.Pricing,
		repo:       p.Repo,
		profileSvc: p.ProfileSvc,
		rateSvc:    p.RateSvc,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) Create(ctx context.Context, req quotedomain.CreateQuoteRequest) (*quotedomain.Quote, error) {
	if req.Gallons <= 0 {
		return nil, quotedomain.ErrInvalidGallons
	}

	profile, err := s.profileSvc.Get(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	state, err := resolveState(req.State, profile.State)
	if err != nil {
		return nil, err
	}

	date := req.DeliveryDate
	if date.IsZero() {
		date = s.clock.Now()
	}
	date = date.UTC().Truncate(24 * time.Hour)

	breakdown, err := s.priceFor(ctx, req.Username, req.Gallons, state)
	if err != nil {
		return nil, err
	}

	quote := &quotedomain.Quote{
		ID:              s.genID.Generate(),
		Username:        req.Username,
		Gallons:         req.Gallons,
		DeliveryAddress: profile.FullAddress(),
		DeliveryState:   state,
		DeliveryDate:    date,
		UnitPrice:       breakdown.UnitPrice,
		CreatedAt:       s.clock.Now(),
	}

	if err := s.repo.Append(ctx, s.db, quote); err != nil {
		if errors.Is(err, quotedomain.ErrStorageConflict) {
			s.obsMetrics.RecordSequenceConflict(ctx)
			s.log.Error("quote append lost sequence race",
				zap.String("username", req.Username), zap.Error(err))
		}
		return nil, err
	}

	s.obsMetrics.RecordQuoteCreated(ctx, state)
	s.log.Info("quote created",
		zap.String("username", quote.Username),
		zap.Int64("sequence_number", quote.SequenceNumber),
		zap.Int64("gallons", quote.Gallons),
	)
	return quote, nil
}

func (s *Service) Preview(ctx context.Context, req quotedomain.PreviewRequest) (*quotedomain.PriceBreakdown, error) {
	if req.Gallons <= 0 {
		return nil, quotedomain.ErrInvalidGallons
	}

	state := req.State
	if strings.TrimSpace(state) == "" {
		profile, err := s.profileSvc.Get(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		state = profile.State
	}
	state, err := resolveState(state, "")
	if err != nil {
		return nil, err
	}

	return s.priceFor(ctx, req.Username, req.Gallons, state)
}

func (s *Service) History(ctx context.Context, username string, page pagination.Pagination) ([]quotedomain.Quote, *pagination.PageInfo, error) {
	var afterSeq int64
	if strings.TrimSpace(page.PageToken) != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, nil, quotedomain.ErrInvalidCursor
		}
		afterSeq = cursor.Seq
	}

	limit := page.Limit()
	quotes, err := s.repo.ListByUsername(ctx, s.db, username, afterSeq, limit+1)
	if err != nil {
		return nil, nil, err
	}

	info := &pagination.PageInfo{}
	if len(quotes) > limit {
		quotes = quotes[:limit]
		info.HasMore = true
		token, err := pagination.EncodeCursor(pagination.Cursor{Seq: quotes[len(quotes)-1].SequenceNumber})
		if err != nil {
			return nil, nil, err
		}
		info.NextPageToken = token
	}
	return quotes, info, nil
}

func (s *Service) HistoryCount(ctx context.Context, username string) (int64, error) {
	return s.repo.CountByUsername(ctx, s.db, username)
}

func (s *Service) Get(ctx context.Context, username string, id snowflake.ID) (*quotedomain.Quote, error) {
	quote, err := s.repo.FindByID(ctx, s.db, username, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, quotedomain.ErrNotFound
	}
	return quote, nil
}

// priceFor reads the base rate and the customer's history count, then runs
// the margin calculation at full precision.
func (s *Service) priceFor(ctx context.Context, username string, gallons int64, state string) (*quotedomain.PriceBreakdown, error) {
	basePrice, err := s.rateSvc.Current(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.CountByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	cfg := s.pricing.Get()
	in := pricing.Inputs{State: state, Gallons: gallons, HistoryCount: history}
	unitPrice, totalDue, err := pricing.Price(cfg, basePrice, in)
	if err != nil {
		return nil, quotedomain.ErrInvalidGallons
	}

	return &quotedomain.PriceBreakdown{
		BasePrice: basePrice,
		Margin:    unitPrice.Sub(basePrice),
		UnitPrice: unitPrice,
		TotalDue:  totalDue,
	}, nil
}

// resolveState prefers the caller's override, falls back to the profile
// state, and normalizes to the uppercase two-letter code.
func resolveState(override, fallback string) (string, error) {
	state := strings.TrimSpace(override)
	if state == "" {
		state = strings.TrimSpace(fallback)
	}
	if !stateRe.MatchString(state) {
		return "", quotedomain.ErrInvalidState
	}
	return strings.ToUpper(state), nil
}
