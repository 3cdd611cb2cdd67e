package rate

import (
	"github.com/bluedrop/aquarate/internal/rate/repository"
	"github.com/bluedrop/aquarate/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
