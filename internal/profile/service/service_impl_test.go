package service

import (
	"context"
	"testing"

	"github.com/bluedrop/aquarate/internal/profile/domain"
	"github.com/bluedrop/aquarate/internal/profile/repository"
	"github.com/bluedrop/aquarate/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Profile{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateDefaultWritesPlaceholders(t *testing.T) {
	svc := newService(t)

	profile, err := svc.CreateDefault(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "John Doe", profile.FullName)
	assert.Equal(t, "TX", profile.State)
	assert.Equal(t, "1234 Placeholder Ln, Houston, TX 77002", profile.FullAddress())
}

func TestUpdateReplacesDeliveryDetails(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateDefault(ctx, "alice")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", domain.UpdateProfileRequest{
		FullName: "Alice Rivers",
		Address1: "500 River Rd",
		Address2: "Suite 4",
		City:     "Austin",
		ZipCode:  "73301",
		State:    "tx",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Rivers", updated.FullName)
	assert.Equal(t, "TX", updated.State, "state should be uppercased")
	assert.Equal(t, "500 River Rd Suite 4, Austin, TX 73301", updated.FullAddress())

	fetched, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, updated.FullAddress(), fetched.FullAddress())
}

func TestUpdateRejectsBlankFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateDefault(ctx, "alice")
	require.NoError(t, err)

	valid := domain.UpdateProfileRequest{
		FullName: "Alice Rivers",
		Address1: "500 River Rd",
		City:     "Austin",
		ZipCode:  "73301",
		State:    "TX",
	}

	tests := []struct {
		name    string
		mutate  func(*domain.UpdateProfileRequest)
		wantErr error
	}{
		{"blank name", func(r *domain.UpdateProfileRequest) { r.FullName = "  " }, domain.ErrInvalidFullName},
		{"blank address", func(r *domain.UpdateProfileRequest) { r.Address1 = "" }, domain.ErrInvalidAddress},
		{"blank city", func(r *domain.UpdateProfileRequest) { r.City = "" }, domain.ErrInvalidCity},
		{"blank zip", func(r *domain.UpdateProfileRequest) { r.ZipCode = "" }, domain.ErrInvalidZipCode},
		{"long state", func(r *domain.UpdateProfileRequest) { r.State = "Texas" }, domain.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Update(ctx, "alice", req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetUnknownUsername(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateUnknownUsername(t *testing.T) {
	svc := newService(t)

	_, err := svc.Update(context.Background(), "nobody", domain.UpdateProfileRequest{
		FullName: "Alice Rivers",
		Address1: "500 River Rd",
		City:     "Austin",
		ZipCode:  "73301",
		State:    "TX",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
