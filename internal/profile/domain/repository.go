package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, profile *Profile) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*Profile, error)
	Update(ctx context.Context, db *gorm.DB, profile *Profile) error
}
