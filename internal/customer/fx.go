package customer

import (
	"github.com/studiokit/atelier/internal/customer/repository"
	"github.com/studiokit/atelier/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
