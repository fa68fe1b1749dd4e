package reconcile

import (
	"context"

	"github.com/studiokit/atelier/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.reconcile",
	fx.Provide(NewWorker),
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, worker *Worker) {
		if !cfg.Reconciler.Enabled {
			return
		}
		runCtx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go worker.RunForever(runCtx)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}),
)
