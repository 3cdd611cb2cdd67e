package repository

import (
	"context"
	"errors"

	"github.com/bluedrop/aquarate/internal/rate/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.Rate, error) {
	var rate domain.Rate
	err := db.WithContext(ctx).Where("id = ?", domain.CurrentRateID).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, rate *domain.Rate) error {
	rate.ID = domain.CurrentRateID
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_per_gallon", "updated_at"}),
	}).Create(rate).Error
}
