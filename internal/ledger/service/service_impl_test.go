package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	"github.com/studiokit/atelier/internal/ledger/domain"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTest(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
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

	svc := NewService(Params{DB: db, Log: zap.NewNop()})
	return svc, db, node
}

func insertLedgerCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node, budgets ...int64) *customerdomain.Customer {
	t.Helper()

	now := time.Now().UTC()
	projects := make(datatypes.JSONSlice[customerdomain.Project], 0, len(budgets))
	for i, budget := range budgets {
		projects = append(projects, customerdomain.Project{
			ID:        node.Generate(),
			Title:     fmt.Sprintf("Project %d", i+1),
			Status:    customerdomain.ProjectStatusAccepted,
			Stage:     customerdomain.ProjectStageDesign,
			Budget:    budget,
			CreatedAt: now,
		})
	}

	customer := &customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Ledger Test",
		Status:    customerdomain.CustomerStatusActive,
		Projects:  projects,
		CreatedAt: now,
		UpdatedAt: now,
	}
	customer.Email = fmt.Sprintf("ledger-%s@example.com", customer.ID)
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return customer
}

func insertPayment(t *testing.T, db *gorm.DB, node *snowflake.Node, customerID snowflake.ID, amount int64, status paymentdomain.PaymentStatus) {
	t.Helper()

	now := time.Now().UTC()
	payment := &paymentdomain.Payment{
		ID:            node.Generate(),
		CustomerID:    customerID,
		Amount:        amount,
		Currency:      "USD",
		PaymentType:   paymentdomain.PaymentTypeOther,
		PaymentMethod: paymentdomain.PaymentMethodOther,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	payment.InvoiceNumber = fmt.Sprintf("INV-test-%s", payment.ID)
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("insert payment: %v", err)
	}
}

func TestRecalculateSumsOnlyCompletedPayments(t *testing.T) {
	svc, db, node := setupLedgerTest(t)
	customer := insertLedgerCustomer(t, db, node, 1000)

	insertPayment(t, db, node, customer.ID, 400, paymentdomain.PaymentStatusCompleted)
	insertPayment(t, db, node, customer.ID, 300, paymentdomain.PaymentStatusPending)
	insertPayment(t, db, node, customer.ID, 200, paymentdomain.PaymentStatusFailed)

	if err := svc.Recalculate(context.Background(), customer.ID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	var got customerdomain.Customer
	if err := db.Where("id = ?", customer.ID).First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalRevenue != 400 || got.OutstandingBalance != 600 {
		t.Fatalf("aggregates = %d/%d, want 400/600", got.TotalRevenue, got.OutstandingBalance)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	svc, db, node := setupLedgerTest(t)
	customer := insertLedgerCustomer(t, db, node, 1000)
	insertPayment(t, db, node, customer.ID, 400, paymentdomain.PaymentStatusCompleted)

	for i := 0; i < 3; i++ {
		if err := svc.Recalculate(context.Background(), customer.ID); err != nil {
			t.Fatalf("recalculate pass %d: %v", i, err)
		}
	}

	var got customerdomain.Customer
	if err := db.Where("id = ?", customer.ID).First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalRevenue != 400 || got.OutstandingBalance != 600 {
		t.Fatalf("aggregates drifted: %d/%d", got.TotalRevenue, got.OutstandingBalance)
	}
}

func TestRecalculateOutstandingNeverNegative(t *testing.T) {
	svc, db, node := setupLedgerTest(t)
	customer := insertLedgerCustomer(t, db, node, 100)
	insertPayment(t, db, node, customer.ID, 500, paymentdomain.PaymentStatusCompleted)

	if err := svc.Recalculate(context.Background(), customer.ID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	var got customerdomain.Customer
	if err := db.Where("id = ?", customer.ID).First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalRevenue != 500 {
		t.Fatalf("total revenue = %d, want 500", got.TotalRevenue)
	}
	if got.OutstandingBalance != 0 {
		t.Fatalf("outstanding balance = %d, want 0", got.OutstandingBalance)
	}
}

func TestRecalculateSumsAllProjectBudgets(t *testing.T) {
	svc, db, node := setupLedgerTest(t)
	customer := insertLedgerCustomer(t, db, node, 300, 700)
	insertPayment(t, db, node, customer.ID, 250, paymentdomain.PaymentStatusCompleted)

	if err := svc.Recalculate(context.Background(), customer.ID); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	var got customerdomain.Customer
	if err := db.Where("id = ?", customer.ID).First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalRevenue != 250 || got.OutstandingBalance != 750 {
		t.Fatalf("aggregates = %d/%d, want 250/750", got.TotalRevenue, got.OutstandingBalance)
	}
}

func TestRecalculateMissingCustomerIsNoop(t *testing.T) {
	svc, _, node := setupLedgerTest(t)

	if err := svc.Recalculate(context.Background(), node.Generate()); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestRecalculateRejectsZeroID(t *testing.T) {
	svc, _, _ := setupLedgerTest(t)

	if err := svc.Recalculate(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero customer id")
	}
}
