package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Get(ctx context.Context, db *gorm.DB) (*Rate, error)
	Upsert(ctx context.Context, db *gorm.DB, rate *Rate) error
}
