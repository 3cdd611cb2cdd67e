package auth

import (
	"github.com/bluedrop/aquarate/internal/auth/repository"
	"github.com/bluedrop/aquarate/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
