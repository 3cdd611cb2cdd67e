package service

import (
	"context"
	"testing"
	"time"

	"github.com/bluedrop/aquarate/internal/clock"
	"github.com/bluedrop/aquarate/internal/config"
	profiledomain "github.com/bluedrop/aquarate/internal/profile/domain"
	quotedomain "github.com/bluedrop/aquarate/internal/quote/domain"
	"github.com/bluedrop/aquarate/internal/quote/repository"
	ratedomain "github.com/bluedrop/aquarate/internal/rate/domain"
	"github.com/bluedrop/aquarate/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockProfileSvc struct {
	mock.Mock
}

func (m *mockProfileSvc) CreateDefault(ctx context.Context, username string) (profiledomain.Profile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(profiledomain.Profile), args.Error(1)
}

func (m *mockProfileSvc) Get(ctx context.Context, username string) (profiledomain.Profile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(profiledomain.Profile), args.Error(1)
}

func (m *mockProfileSvc) Update(ctx context.Context, username string, req profiledomain.UpdateProfileRequest) (profiledomain.Profile, error) {
	args := m.Called(ctx, username, req)
	return args.Get(0).(profiledomain.Profile), args.Error(1)
}

type mockRateSvc struct {
	mock.Mock
}

func (m *mockRateSvc) Current(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRateSvc) Set(ctx context.Context, price decimal.Decimal) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func texasProfile() profiledomain.Profile {
	return profiledomain.Profile{
		Username: "alice",
		FullName: "Alice Fisher",
		Address1: "500 River Rd",
		City:     "Houston",
		ZipCode:  "77002",
		State:    "TX",
	}
}

func newService(t *testing.T, profileSvc profiledomain.Service, rateSvc ratedomain.Service) (quotedomain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&quotedomain.Quote{}, &quotedomain.QuoteSequence{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         gdb,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)),
		Pricing:    config.NewStaticPricingHolder(config.DefaultPricingConfig()),
		Repo:       repository.Provide(),
		ProfileSvc: profileSvc,
		RateSvc:    rateSvc,
	})
	return svc, gdb
}

func TestCreateQuotePricesAndAppends(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	profileSvc.On("Get", mock.Anything, "alice").Return(texasProfile(), nil)
	rateSvc := new(mockRateSvc)
	rateSvc.On("Current", mock.Anything).Return(decimal.RequireFromString("1.50"), nil)

	svc, _ := newService(t, profileSvc, rateSvc)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{
		Username: "alice",
		Gallons:  100,
	})
	require.NoError(t, err)

	// 1.50 + 1.50 * (0.02 + 0.03 + 0.10) for a first-time in-state order.
	assert.True(t, quote.UnitPrice.Equal(decimal.RequireFromString("1.725")),
		"unit price = %s", quote.UnitPrice)
	assert.Equal(t, int64(1), quote.SequenceNumber)
	assert.Equal(t, "500 River Rd, Houston, TX 77002", quote.DeliveryAddress)
	assert.Equal(t, "TX", quote.DeliveryState)
	// Date defaults to the clock's current day.
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), quote.DeliveryDate)
}

func TestCreateQuoteRepeatCustomerGetsDiscount(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	profileSvc.On("Get", mock.Anything, "alice").Return(texasProfile(), nil)
	rateSvc := new(mockRateSvc)
	rateSvc.On("Current", mock.Anything).Return(decimal.RequireFromString("1.50"), nil)

	svc, _ := newService(t, profileSvc, rateSvc)
	ctx := context.Background()

	first, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{Username: "alice", Gallons: 500})
	require.NoError(t, err)
	second, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{Username: "alice", Gallons: 500})
	require.NoError(t, err)

	// History discount kicks in on the second order: margin rate drops
	// from 0.15 to 0.14.
	assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("1.725")))
	assert.True(t, second.UnitPrice.Equal(decimal.RequireFromString("1.71")),
		"second unit price = %s", second.UnitPrice)
	assert.Equal(t, int64(2), second.SequenceNumber)
}

func TestCreateQuoteSnapshotsAddress(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	profileSvc.On("Get", mock.Anything, "alice").Return(texasProfile(), nil).Once()
	rateSvc := new(mockRateSvc)
	rateSvc.On("Current", mock.Anything).Return(decimal.RequireFromString("1.50"), nil)

	svc, _ := newService(t, profileSvc, rateSvc)
	ctx := context.Background()

	quote, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{Username: "alice", Gallons: 100})
	require.NoError(t, err)

	// The customer moves after the quote was created.
	moved := texasProfile()
	moved.Address1 = "99 New Town Ave"
	moved.City = "Austin"
	moved.ZipCode = "73301"
	profileSvc.On("Get", mock.Anything, "alice").Return(moved, nil)

	stored, err := svc.Get(ctx, "alice", quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "500 River Rd, Houston, TX 77002", stored.DeliveryAddress)
}

func TestCreateQuoteInvalidGallonsNeverRecorded(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	profileSvc.On("Get", mock.Anything, "alice").Return(texasProfile(), nil)
	rateSvc := new(mockRateSvc)
	rateSvc.On("Current", mock.Anything).Return(decimal.RequireFromString("1.50"), nil)

	svc, _ := newService(t, profileSvc, rateSvc)
	ctx := context.Background()

	for _, gallons := range []int64{0, -5} {
		_, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{Username: "alice", Gallons: gallons})
		assert.ErrorIs(t, err, quotedomain.ErrInvalidGallons)
	}

	count, err := svc.HistoryCount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCreateQuoteRateUnavailable(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	profileSvc.On("Get", mock.Anything, "alice").Return(texasProfile(), nil)
	rateSvc := new(mockRateSvc)
	rateSvc.On("Current", mock.Anything).Return(decimal.Decimal{}, ratedomain.ErrUnavailable)

	svc, _ := newService(t, profileSvc, rateSvc)
	ctx := context.Background()

	_, err := svc.Create(ctx, quotedomain.CreateQuoteRequest{Username: "alice", Gallons: 100})
	assert.ErrorIs(t, err, ratedomain.ErrUnavailable)

	count, err := svc.HistoryCount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPreviewDoesNotTouchLedger(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	profileSvc.On("Get", mock.Anything, "alice").Return(texasProfile(), nil)
	rateSvc := new(mockRateSvc)
	rateSvc.On("Current", mock.Anything).Return(decimal.RequireFromString("1.50"), nil)

	svc, _ := newService(t, profileSvc, rateSvc)
	ctx := context.Background()

	breakdown, err := svc.Preview(ctx, quotedomain.PreviewRequest{Username: "alice", Gallons: 1500, State: "CA"})
	require.NoError(t, err)

	// Out-of-state bulk order for a new customer: margin rate 0.16.
	assert.True(t, breakdown.Margin.Equal(decimal.RequireFromString("0.24")),
		"margin = %s", breakdown.Margin)
	assert.True(t, breakdown.TotalDue.Equal(breakdown.UnitPrice.Mul(decimal.NewFromInt(1500))))

	count, err := svc.HistoryCount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPreviewRejectsMalformedState(t *testing.T) {
	profileSvc := new(mockProfileSvc)
	rateSvc := new(mockRateSvc)

	svc, _ := newService(t, profileSvc, rateSvc)

	_, err := svc.Preview(context.Background(), quotedomain.PreviewRequest{
		Username: "alice",
		Gallons:  100,
		State:    "Texas",
	})
	assert.ErrorIs(t, err, quotedomain.ErrInvalidState)
}
