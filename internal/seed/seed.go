package seed

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/bluedrop/aquarate/internal/auth/domain"
	"github.com/bluedrop/aquarate/internal/auth/password"
	profiledomain "github.com/bluedrop/aquarate/internal/profile/domain"
	ratedomain "github.com/bluedrop/aquarate/internal/rate/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultDemoUsername = "demo"
	defaultDemoPassword = "water-demo"
)

// defaultBaseRate is the launch price per gallon. Administrators change it
// through the rates table afterwards; seeding never overwrites an existing
// value.
var defaultBaseRate = decimal.RequireFromString("3.50")

// EnsureBaseRate inserts the singleton base rate row when missing.
func EnsureBaseRate(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	rate := ratedomain.Rate{
		ID:             ratedomain.CurrentRateID,
		PricePerGallon: defaultBaseRate,
		UpdatedAt:      time.Now().UTC(),
	}
	return db.WithContext(context.Background()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rate).Error
}

// EnsureDemoCustomer seeds a demo account with a placeholder profile for
// local development.
func EnsureDemoCustomer(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing authdomain.Account
		err := tx.Where("username = ?", defaultDemoUsername).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := password.Hash(defaultDemoPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		account := authdomain.Account{
			ID:           node.Generate(),
			Username:     defaultDemoUsername,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		profile := profiledomain.Profile{
			ID:        node.Generate(),
			Username:  defaultDemoUsername,
			FullName:  "John Doe",
			Address1:  "1234 Placeholder Ln",
			City:      "Houston",
			ZipCode:   "77002",
			State:     "TX",
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&profile).Error
	})
}
