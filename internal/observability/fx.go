package observability

import (
	"github.com/studiokit/atelier/internal/observability/logger"
	"github.com/studiokit/atelier/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(logger.New),
	fx.Provide(metrics.NewHTTPMetrics),
)
