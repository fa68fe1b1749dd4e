package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/catalog/domain"
	"github.com/studiokit/atelier/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.ServiceOffering{},
		&domain.PortfolioItem{},
		&domain.PricingPlan{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	svc := NewService(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Objects: storage.NewUnconfigured(zap.NewNop()),
	})
	return svc, db
}

func TestCreateServiceNormalizesSlug(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	offering, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name: "Web Design & Build",
		Slug: "  Web Design & Build  ",
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if offering.Slug != "web-design--build" {
		t.Fatalf("slug = %q", offering.Slug)
	}
	if !offering.Active {
		t.Fatal("new offering should default to active")
	}
}

func TestCreateServiceRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	if _, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name: "Branding",
	}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	_, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name: "Branding",
	})
	if !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Fatalf("expected duplicate_slug, got %v", err)
	}
}

func TestPublicServicesExcludesInactive(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	if _, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name: "Branding",
	}); err != nil {
		t.Fatalf("create active: %v", err)
	}
	inactive := false
	if _, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name:   "Legacy Offering",
		Active: &inactive,
	}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	offerings, err := svc.PublicServices(context.Background())
	if err != nil {
		t.Fatalf("public services: %v", err)
	}
	if len(offerings) != 1 || offerings[0].Name != "Branding" {
		t.Fatalf("unexpected listing: %+v", offerings)
	}
}

func TestPublicServicesCacheInvalidatedOnMutation(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	if _, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name: "Branding",
	}); err != nil {
		t.Fatalf("create first: %v", err)
	}

	// Prime the cache.
	if _, err := svc.PublicServices(context.Background()); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	if _, err := svc.CreateService(context.Background(), domain.UpsertServiceRequest{
		Name: "Maintenance",
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	offerings, err := svc.PublicServices(context.Background())
	if err != nil {
		t.Fatalf("public services: %v", err)
	}
	if len(offerings) != 2 {
		t.Fatalf("stale cache after mutation: %d offerings", len(offerings))
	}
}

func TestPublicPortfolioOnlyPublished(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	published := true
	if _, err := svc.CreatePortfolio(context.Background(), domain.UpsertPortfolioRequest{
		Title:     "Cafe Website",
		Published: &published,
	}); err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := svc.CreatePortfolio(context.Background(), domain.UpsertPortfolioRequest{
		Title: "Draft Case Study",
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	items, err := svc.PublicPortfolio(context.Background())
	if err != nil {
		t.Fatalf("public portfolio: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Cafe Website" {
		t.Fatalf("unexpected listing: %+v", items)
	}
}

func TestPricingPlanLifecycle(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	plan, err := svc.CreatePricing(context.Background(), domain.UpsertPricingRequest{
		Name:     "Starter",
		Price:    150000,
		Features: []string{"Up to 5 pages"},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	if plan.Currency != "USD" {
		t.Fatalf("currency = %q, want USD default", plan.Currency)
	}

	price := domain.UpsertPricingRequest{ID: plan.ID.String(), Price: 180000}
	updated, err := svc.UpdatePricing(context.Background(), price)
	if err != nil {
		t.Fatalf("update plan: %v", err)
	}
	if updated.Price != 180000 {
		t.Fatalf("price = %d, want 180000", updated.Price)
	}

	if err := svc.DeletePricing(context.Background(), plan.ID.String()); err != nil {
		t.Fatalf("delete plan: %v", err)
	}
	if err := svc.DeletePricing(context.Background(), plan.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCreatePricingRejectsNegativePrice(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	if _, err := svc.CreatePricing(context.Background(), domain.UpsertPricingRequest{
		Name:  "Broken",
		Price: -5,
	}); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("expected invalid_price, got %v", err)
	}
}
