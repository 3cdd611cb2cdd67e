package quote

import (
	"github.com/bluedrop/aquarate/internal/quote/repository"
	"github.com/bluedrop/aquarate/internal/quote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quote.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
