package domain

import (
	"context"
	"errors"
)

type UpdateProfileRequest struct {
	FullName string
	Address1 string
	Address2 string
	City     string
	ZipCode  string
	State    string
}

type Service interface {
	// CreateDefault provisions the placeholder profile written at
	// registration time, before the customer fills in real details.
	CreateDefault(ctx context.Context, username string) (Profile, error)
	Get(ctx context.Context, username string) (Profile, error)
	Update(ctx context.Context, username string, req UpdateProfileRequest) (Profile, error)
}

var (
	ErrNotFound        = errors.New("profile_not_found")
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidFullName = errors.New("invalid_fullname")
	ErrInvalidAddress  = errors.New("invalid_address1")
	ErrInvalidCity     = errors.New("invalid_city")
	ErrInvalidZipCode  = errors.New("invalid_zipcode")
	ErrInvalidState    = errors.New("invalid_state")
)
