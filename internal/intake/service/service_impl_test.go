package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/intake/domain"
	"github.com/studiokit/atelier/internal/notify"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIntakeTest(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.ContactMessage{},
		&domain.QuoteRequest{},
		&domain.ProjectRequest{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS notification_events (
			id BIGINT PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload TEXT,
			dedupe_key TEXT UNIQUE,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create notification_events: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Outbox:   notify.NewOutbox(db, node),
		Notifier: notify.NewLogNotifier(zap.NewNop()),
	})
	return svc, db
}

func countOutboxEvents(t *testing.T, db *gorm.DB, eventType string) int64 {
	t.Helper()

	var count int64
	if err := db.Raw(
		`SELECT COUNT(1) FROM notification_events WHERE event_type = ?`, eventType,
	).Scan(&count).Error; err != nil {
		t.Fatalf("count outbox events: %v", err)
	}
	return count
}

func TestCreateContactWritesOutboxEvent(t *testing.T) {
	svc, db := setupIntakeTest(t)

	record, err := svc.CreateContact(context.Background(), domain.CreateContactRequest{
		Name:    "Sam",
		Email:   "Sam@Example.com",
		Subject: "Hello",
		Message: "I need a website.",
	})
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if record.Status != domain.IntakeStatusNew {
		t.Fatalf("status = %q, want new", record.Status)
	}
	if record.Email != "sam@example.com" {
		t.Fatalf("email = %q, want normalized", record.Email)
	}
	if got := countOutboxEvents(t, db, "intake.contact"); got != 1 {
		t.Fatalf("outbox events = %d, want 1", got)
	}
}

func TestCreateContactValidates(t *testing.T) {
	svc, db := setupIntakeTest(t)

	cases := []struct {
		name string
		req  domain.CreateContactRequest
		want error
	}{
		{"missing name", domain.CreateContactRequest{Email: "a@b.c", Message: "hi"}, domain.ErrInvalidName},
		{"missing email", domain.CreateContactRequest{Name: "A", Message: "hi"}, domain.ErrInvalidEmail},
		{"missing message", domain.CreateContactRequest{Name: "A", Email: "a@b.c"}, domain.ErrInvalidMessage},
	}
	for _, tc := range cases {
		if _, err := svc.CreateContact(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	var count int64
	if err := db.Model(&domain.ContactMessage{}).Count(&count).Error; err != nil {
		t.Fatalf("count contacts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows after rejected submissions, got %d", count)
	}
}

func TestContactStatusWorkflow(t *testing.T) {
	svc, _ := setupIntakeTest(t)

	record, err := svc.CreateContact(context.Background(), domain.CreateContactRequest{
		Name:    "Sam",
		Email:   "sam@example.com",
		Message: "I need a website.",
	})
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	updated, err := svc.UpdateContactStatus(context.Background(), record.ID.String(), domain.IntakeStatusReplied)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.IntakeStatusReplied {
		t.Fatalf("status = %q, want replied", updated.Status)
	}

	if _, err := svc.UpdateContactStatus(context.Background(), record.ID.String(), "spam"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}

func TestListContactsFiltersByStatus(t *testing.T) {
	svc, _ := setupIntakeTest(t)

	first, err := svc.CreateContact(context.Background(), domain.CreateContactRequest{
		Name: "Sam", Email: "sam@example.com", Message: "One",
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.CreateContact(context.Background(), domain.CreateContactRequest{
		Name: "Alex", Email: "alex@example.com", Message: "Two",
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := svc.UpdateContactStatus(context.Background(), first.ID.String(), domain.IntakeStatusArchived); err != nil {
		t.Fatalf("archive first: %v", err)
	}

	resp, err := svc.ListContacts(context.Background(), domain.ListRequest{Status: "new"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Messages) != 1 {
		t.Fatalf("expected 1 new message, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Name != "Alex" {
		t.Fatalf("unexpected message: %+v", resp.Messages[0])
	}
}

func TestCreateQuoteWritesOutboxEvent(t *testing.T) {
	svc, db := setupIntakeTest(t)

	record, err := svc.CreateQuote(context.Background(), domain.CreateQuoteRequest{
		Name:        "Sam",
		Email:       "sam@example.com",
		ServiceType: "web-design",
		Details:     "Five page marketing site.",
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if record.Status != domain.IntakeStatusNew {
		t.Fatalf("status = %q, want new", record.Status)
	}
	if got := countOutboxEvents(t, db, "intake.quote"); got != 1 {
		t.Fatalf("outbox events = %d, want 1", got)
	}
}

func TestProjectRequestLifecycle(t *testing.T) {
	svc, db := setupIntakeTest(t)

	record, err := svc.CreateProjectRequest(context.Background(), domain.CreateProjectRequestInput{
		Name:        "Sam",
		Email:       "sam@example.com",
		ProjectType: "ecommerce",
		Description: "Shop with about 40 products.",
	})
	if err != nil {
		t.Fatalf("create project request: %v", err)
	}
	if got := countOutboxEvents(t, db, "intake.project_request"); got != 1 {
		t.Fatalf("outbox events = %d, want 1", got)
	}

	if err := svc.DeleteProjectRequest(context.Background(), record.ID.String()); err != nil {
		t.Fatalf("delete project request: %v", err)
	}
	if err := svc.DeleteProjectRequest(context.Background(), record.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found on second delete, got %v", err)
	}
}
