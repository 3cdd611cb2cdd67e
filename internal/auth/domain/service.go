package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}

type RegisterRequest struct {
	Username string
	Password string
}

type LoginRequest struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Account   *Account
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
