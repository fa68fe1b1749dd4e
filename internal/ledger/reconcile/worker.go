package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/config"
	ledgerdomain "github.com/studiokit/atelier/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Cfg       config.Config
	LedgerSvc ledgerdomain.Service
}

// Worker sweeps customers in batches and re-runs the ledger recalculation.
// A recalculation that failed after a committed payment write leaves the
// aggregate stale; the sweep repairs it on the next pass.
type Worker struct {
	db        *gorm.DB
	log       *zap.Logger
	cfg       config.ReconcilerConfig
	ledgerSvc ledgerdomain.Service

	cursor snowflake.ID
}

func NewWorker(p Params) *Worker {
	return &Worker{
		db:        p.DB,
		log:       p.Log.Named("ledger.reconcile"),
		cfg:       p.Cfg.Reconciler.WithDefaults(),
		ledgerSvc: p.LedgerSvc,
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if _, err := w.RunOnce(ctx); err != nil {
			w.log.Warn("ledger reconcile run failed", zap.Error(err))
		}
	}
}

// RunOnce processes one batch, advancing a persistent id cursor so every
// customer is visited eventually. Returns the number of customers swept.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	if w.db == nil || w.ledgerSvc == nil {
		return 0, errors.New("reconciler_unavailable")
	}

	ids, err := w.nextBatch(ctx, w.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		// Wrapped around; restart from the beginning next pass.
		w.cursor = 0
		return 0, nil
	}

	processed := 0
	for _, id := range ids {
		if err := w.ledgerSvc.Recalculate(ctx, id); err != nil {
			w.log.Warn("reconcile recalculation failed",
				zap.String("customer_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		processed++
	}
	w.cursor = ids[len(ids)-1]
	return processed, nil
}

func (w *Worker) nextBatch(ctx context.Context, limit int) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := w.db.WithContext(ctx).Raw(
		`SELECT id
		 FROM customers
		 WHERE id > ?
		 ORDER BY id ASC
		 LIMIT ?`,
		w.cursor,
		limit,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
