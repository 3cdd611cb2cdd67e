package repository

import (
	"context"
	"errors"

	"github.com/bluedrop/aquarate/internal/profile/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).Where("username = ?", username).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	tx := db.WithContext(ctx).Model(&domain.Profile{}).
		Where("username = ?", profile.Username).
		Updates(map[string]any{
			"full_name":  profile.FullName,
			"address1":   profile.Address1,
			"address2":   profile.Address2,
			"city":       profile.City,
			"zip_code":   profile.ZipCode,
			"state":      profile.State,
			"updated_at": profile.UpdatedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
