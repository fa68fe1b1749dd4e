package reconcile

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/config"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	ledgerservice "github.com/studiokit/atelier/internal/ledger/service"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReconcileTest(t *testing.T, batchSize int) (*Worker, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&customerdomain.Customer{}, &paymentdomain.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	worker := NewWorker(Params{
		DB:  db,
		Log: zap.NewNop(),
		Cfg: config.Config{
			Reconciler: config.ReconcilerConfig{
				Enabled:      true,
				BatchSize:    batchSize,
				PollInterval: time.Minute,
			},
		},
		LedgerSvc: ledgerservice.NewService(ledgerservice.Params{DB: db, Log: zap.NewNop()}),
	})
	return worker, db, node
}

func seedStaleCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node, completed int64) snowflake.ID {
	t.Helper()

	now := time.Now().UTC()
	customer := &customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Stale",
		Status:    customerdomain.CustomerStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	customer.Email = fmt.Sprintf("stale-%s@example.com", customer.ID)
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	payment := &paymentdomain.Payment{
		ID:            node.Generate(),
		CustomerID:    customer.ID,
		Amount:        completed,
		Currency:      "USD",
		PaymentType:   paymentdomain.PaymentTypeOther,
		PaymentMethod: paymentdomain.PaymentMethodOther,
		Status:        paymentdomain.PaymentStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	payment.InvoiceNumber = fmt.Sprintf("INV-test-%s", payment.ID)
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return customer.ID
}

func TestRunOnceRepairsStaleAggregates(t *testing.T) {
	worker, db, node := setupReconcileTest(t, 10)

	id := seedStaleCustomer(t, db, node, 500)

	processed, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if processed != 1 {
		t.Fatalf("processed = %d, want 1", processed)
	}

	var customer customerdomain.Customer
	if err := db.Where("id = ?", id).First(&customer).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if customer.TotalRevenue != 500 {
		t.Fatalf("total revenue = %d, want 500", customer.TotalRevenue)
	}
}

func TestRunOnceAdvancesCursorAcrossBatches(t *testing.T) {
	worker, db, node := setupReconcileTest(t, 2)

	for i := 0; i < 5; i++ {
		seedStaleCustomer(t, db, node, 100)
	}

	total := 0
	for i := 0; i < 3; i++ {
		processed, err := worker.RunOnce(context.Background())
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		total += processed
	}
	if total != 5 {
		t.Fatalf("processed %d customers across batches, want 5", total)
	}

	// Exhausted table resets the cursor for the next full sweep.
	processed, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("wraparound run: %v", err)
	}
	if processed != 0 {
		t.Fatalf("processed = %d on exhausted cursor, want 0", processed)
	}

	processed, err = worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("restarted run: %v", err)
	}
	if processed != 2 {
		t.Fatalf("processed = %d after cursor reset, want 2", processed)
	}
}

func TestRunOnceEmptyTable(t *testing.T) {
	worker, _, _ := setupReconcileTest(t, 10)

	processed, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if processed != 0 {
		t.Fatalf("processed = %d, want 0", processed)
	}
}
