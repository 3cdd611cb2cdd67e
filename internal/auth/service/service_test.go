package service

import (
	"context"
	"testing"

	authdomain "github.com/bluedrop/aquarate/internal/auth/domain"
	"github.com/bluedrop/aquarate/internal/auth/repository"
	"github.com/bluedrop/aquarate/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.Account{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node)
}

func TestRegisterNormalizesUsername(t *testing.T) {
	svc := newTestService(t)

	account, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Username: "  Alice  ",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if account.Username != "alice" {
		t.Fatalf("expected username alice, got %q", account.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Username: "alice",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err = svc.Register(context.Background(), authdomain.RegisterRequest{
		Username: "alice",
		Password: "another-password",
	})
	if err != authdomain.ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Username: "alice",
		Password: "short",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Username: "alice",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, authdomain.RegisterRequest{
		Username: "alice",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	result, err := svc.Login(ctx, authdomain.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("expected a session token")
	}

	session, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if session.Username != "alice" {
		t.Fatalf("expected session for alice, got %q", session.Username)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, authdomain.RegisterRequest{
		Username: "alice",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	result, err := svc.Login(ctx, authdomain.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}

	if err := svc.Logout(ctx, result.RawToken); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}

	if _, err := svc.Authenticate(ctx, result.RawToken); err != authdomain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}
