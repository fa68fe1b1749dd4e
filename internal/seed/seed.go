package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/studiokit/atelier/internal/catalog/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaultCatalog seeds the public catalog with a starter set of
// offerings and plans so a fresh install has something to show. Idempotent:
// rows are only inserted when the tables are empty.
func EnsureDefaultCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureOfferings(ctx, tx, node); err != nil {
			return err
		}
		return ensurePlans(ctx, tx, node)
	})
}

func ensureOfferings(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.ServiceOffering{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	offerings := []catalogdomain.ServiceOffering{
		{ID: node.Generate(), Name: "Web Design", Slug: "web-design", Description: "Custom responsive websites.", PriceFrom: 150000, Active: true, SortOrder: 1, CreatedAt: now, UpdatedAt: now},
		{ID: node.Generate(), Name: "Branding", Slug: "branding", Description: "Logo and identity packages.", PriceFrom: 80000, Active: true, SortOrder: 2, CreatedAt: now, UpdatedAt: now},
		{ID: node.Generate(), Name: "Maintenance", Slug: "maintenance", Description: "Ongoing site care and updates.", PriceFrom: 20000, Active: true, SortOrder: 3, CreatedAt: now, UpdatedAt: now},
	}
	return tx.WithContext(ctx).Create(&offerings).Error
}

func ensurePlans(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&catalogdomain.PricingPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	plans := []catalogdomain.PricingPlan{
		{
			ID: node.Generate(), Name: "Starter", Price: 150000, Currency: "USD",
			Features:  datatypes.JSONSlice[string]{"Up to 5 pages", "Mobile responsive", "Contact form"},
			Active:    true, SortOrder: 1, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: node.Generate(), Name: "Business", Price: 350000, Currency: "USD",
			Features:  datatypes.JSONSlice[string]{"Up to 15 pages", "CMS integration", "SEO setup", "Analytics"},
			Popular:   true, Active: true, SortOrder: 2, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: node.Generate(), Name: "Custom", Price: 750000, Currency: "USD",
			Features:  datatypes.JSONSlice[string]{"Unlimited pages", "Custom features", "Priority support"},
			Active:    true, SortOrder: 3, CreatedAt: now, UpdatedAt: now,
		},
	}
	return tx.WithContext(ctx).Create(&plans).Error
}
