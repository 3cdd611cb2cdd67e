package domain

import "errors"

var (
	ErrInvalidGallons  = errors.New("invalid_gallons")
	ErrInvalidDate     = errors.New("invalid_date")
	ErrInvalidState    = errors.New("invalid_state")
	ErrInvalidCursor   = errors.New("invalid_page_token")
	ErrNotFound        = errors.New("quote_not_found")
	ErrStorageConflict = errors.New("storage_conflict")
)
