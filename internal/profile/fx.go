package profile

import (
	"github.com/bluedrop/aquarate/internal/profile/repository"
	"github.com/bluedrop/aquarate/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
