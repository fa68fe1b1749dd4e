package payment

import (
	"github.com/studiokit/atelier/internal/payment/repository"
	"github.com/studiokit/atelier/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
