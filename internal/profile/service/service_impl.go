package service

import (
	"context"
	"strings"
	"time"

	"github.com/bluedrop/aquarate/internal/profile/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Placeholder values written at registration, matching the update form
// defaults shown to a brand-new customer.
const (
	defaultFullName = "John Doe"
	defaultAddress1 = "1234 Placeholder Ln"
	defaultCity     = "Houston"
	defaultZipCode  = "77002"
	defaultState    = "TX"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("profile.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateDefault(ctx context.Context, username string) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Profile{}, domain.ErrInvalidUsername
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:        s.genID.Generate(),
		Username:  username,
		FullName:  defaultFullName,
		Address1:  defaultAddress1,
		Address2:  "",
		City:      defaultCity,
		ZipCode:   defaultZipCode,
		State:     defaultState,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &profile); err != nil {
		return domain.Profile{}, err
	}

	return profile, nil
}

func (s *Service) Get(ctx context.Context, username string) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Profile{}, domain.ErrInvalidUsername
	}

	profile, err := s.repo.FindByUsername(ctx, s.db, username)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil {
		return domain.Profile{}, domain.ErrNotFound
	}
	return *profile, nil
}

func (s *Service) Update(ctx context.Context, username string, req domain.UpdateProfileRequest) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Profile{}, domain.ErrInvalidUsername
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.Profile{}, domain.ErrInvalidFullName
	}
	address1 := strings.TrimSpace(req.Address1)
	if address1 == "" {
		return domain.Profile{}, domain.ErrInvalidAddress
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		return domain.Profile{}, domain.ErrInvalidCity
	}
	zipCode := strings.TrimSpace(req.ZipCode)
	if zipCode == "" {
		return domain.Profile{}, domain.ErrInvalidZipCode
	}
	state := strings.ToUpper(strings.TrimSpace(req.State))
	if len(state) != 2 {
		return domain.Profile{}, domain.ErrInvalidState
	}

	existing, err := s.repo.FindByUsername(ctx, s.db, username)
	if err != nil {
		return domain.Profile{}, err
	}
	if existing == nil {
		return domain.Profile{}, domain.ErrNotFound
	}

	existing.FullName = fullName
	existing.Address1 = address1
	existing.Address2 = strings.TrimSpace(req.Address2)
	existing.City = city
	existing.ZipCode = zipCode
	existing.State = state
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.Profile{}, err
	}

	return *existing, nil
}
