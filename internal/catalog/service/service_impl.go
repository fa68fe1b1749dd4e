package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/cache"
	"github.com/studiokit/atelier/internal/catalog/domain"
	"github.com/studiokit/atelier/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	publicListTTL = 5 * time.Minute

	cacheKeyServices  = "catalog:services"
	cacheKeyPortfolio = "catalog:portfolio"
	cacheKeyPricing   = "catalog:pricing"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Objects storage.ObjectStorage
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	objects storage.ObjectStorage

	services  *cache.TTLCache[string, []domain.ServiceOffering]
	portfolio *cache.TTLCache[string, []domain.PortfolioItem]
	pricing   *cache.TTLCache[string, []domain.PricingPlan]
}

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("catalog.service"),
		genID:     p.GenID,
		objects:   p.Objects,
		services:  cache.NewTTLCache[string, []domain.ServiceOffering](),
		portfolio: cache.NewTTLCache[string, []domain.PortfolioItem](),
		pricing:   cache.NewTTLCache[string, []domain.PricingPlan](),
	}
}

func (s *Service) PublicServices(ctx context.Context) ([]domain.ServiceOffering, error) {
	if cached, ok := s.services.Get(cacheKeyServices); ok {
		return cached, nil
	}
	var offerings []domain.ServiceOffering
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&offerings).Error
	if err != nil {
		return nil, err
	}
	s.services.Set(cacheKeyServices, offerings, publicListTTL)
	return offerings, nil
}

func (s *Service) PublicPortfolio(ctx context.Context) ([]domain.PortfolioItem, error) {
	if cached, ok := s.portfolio.Get(cacheKeyPortfolio); ok {
		return cached, nil
	}
	var items []domain.PortfolioItem
	err := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("sort_order ASC, created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	s.portfolio.Set(cacheKeyPortfolio, items, publicListTTL)
	return items, nil
}

func (s *Service) PublicPricing(ctx context.Context) ([]domain.PricingPlan, error) {
	if cached, ok := s.pricing.Get(cacheKeyPricing); ok {
		return cached, nil
	}
	var plans []domain.PricingPlan
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC, price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	s.pricing.Set(cacheKeyPricing, plans, publicListTTL)
	return plans, nil
}

func (s *Service) CreateService(ctx context.Context, req domain.UpsertServiceRequest) (*domain.ServiceOffering, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	slug := normalizeSlug(req.Slug, name)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}
	if req.PriceFrom < 0 {
		return nil, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	offering := &domain.ServiceOffering{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		PriceFrom:   req.PriceFrom,
		Active:      true,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Active != nil {
		offering.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Create(offering).Error; err != nil {
		return nil, mapSlugError(err)
	}
	s.services.Flush()
	return offering, nil
}

func (s *Service) UpdateService(ctx context.Context, req domain.UpsertServiceRequest) (*domain.ServiceOffering, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	var offering domain.ServiceOffering
	if err := s.first(ctx, &offering, id); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		offering.Name = name
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		offering.Slug = normalizeSlug(slug, offering.Name)
	}
	if req.Description != "" {
		offering.Description = strings.TrimSpace(req.Description)
	}
	if req.PriceFrom < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.PriceFrom > 0 {
		offering.PriceFrom = req.PriceFrom
	}
	if req.Active != nil {
		offering.Active = *req.Active
	}
	if req.SortOrder != 0 {
		offering.SortOrder = req.SortOrder
	}
	offering.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&offering).Error; err != nil {
		return nil, mapSlugError(err)
	}
	s.services.Flush()
	return &offering, nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	if err := s.deleteByID(ctx, &domain.ServiceOffering{}, id); err != nil {
		return err
	}
	s.services.Flush()
	return nil
}

func (s *Service) CreatePortfolio(ctx context.Context, req domain.UpsertPortfolioRequest) (*domain.PortfolioItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidName
	}
	slug := normalizeSlug(req.Slug, title)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	now := time.Now().UTC()
	item := &domain.PortfolioItem{
		ID:        s.genID.Generate(),
		Title:     title,
		Slug:      slug,
		Summary:   strings.TrimSpace(req.Summary),
		ImageKey:  strings.TrimSpace(req.ImageKey),
		Tags:      datatypes.JSONSlice[string](req.Tags),
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Published != nil {
		item.Published = *req.Published
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, mapSlugError(err)
	}
	s.portfolio.Flush()
	return item, nil
}

func (s *Service) UpdatePortfolio(ctx context.Context, req domain.UpsertPortfolioRequest) (*domain.PortfolioItem, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	var item domain.PortfolioItem
	if err := s.first(ctx, &item, id); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		item.Title = title
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		item.Slug = normalizeSlug(slug, item.Title)
	}
	if req.Summary != "" {
		item.Summary = strings.TrimSpace(req.Summary)
	}
	if req.ImageKey != "" {
		item.ImageKey = strings.TrimSpace(req.ImageKey)
	}
	if req.Tags != nil {
		item.Tags = datatypes.JSONSlice[string](req.Tags)
	}
	if req.Published != nil {
		item.Published = *req.Published
	}
	if req.SortOrder != 0 {
		item.SortOrder = req.SortOrder
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, mapSlugError(err)
	}
	s.portfolio.Flush()
	return &item, nil
}

func (s *Service) DeletePortfolio(ctx context.Context, rawID string) error {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return err
	}
	var item domain.PortfolioItem
	if err := s.first(ctx, &item, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.PortfolioItem{}).Error; err != nil {
		return err
	}
	s.portfolio.Flush()

	// Image cleanup is best effort; an orphaned object never blocks the
	// record delete.
	if key := strings.TrimSpace(item.ImageKey); key != "" && s.objects != nil {
		if err := s.objects.Delete(ctx, key); err != nil {
			s.log.Warn("portfolio image cleanup failed",
				zap.String("image_key", key),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Service) CreatePricing(ctx context.Context, req domain.UpsertPricingRequest) (*domain.PricingPlan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	plan := &domain.PricingPlan{
		ID:        s.genID.Generate(),
		Name:      name,
		Price:     req.Price,
		Currency:  currency,
		Features:  datatypes.JSONSlice[string](req.Features),
		Active:    true,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Popular != nil {
		plan.Popular = *req.Popular
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, err
	}
	s.pricing.Flush()
	return plan, nil
}

func (s *Service) UpdatePricing(ctx context.Context, req domain.UpsertPricingRequest) (*domain.PricingPlan, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	var plan domain.PricingPlan
	if err := s.first(ctx, &plan, id); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		plan.Name = name
	}
	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.Price > 0 {
		plan.Price = req.Price
	}
	if currency := strings.ToUpper(strings.TrimSpace(req.Currency)); currency != "" {
		plan.Currency = currency
	}
	if req.Features != nil {
		plan.Features = datatypes.JSONSlice[string](req.Features)
	}
	if req.Popular != nil {
		plan.Popular = *req.Popular
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}
	if req.SortOrder != 0 {
		plan.SortOrder = req.SortOrder
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&plan).Error; err != nil {
		return nil, err
	}
	s.pricing.Flush()
	return &plan, nil
}

func (s *Service) DeletePricing(ctx context.Context, id string) error {
	if err := s.deleteByID(ctx, &domain.PricingPlan{}, id); err != nil {
		return err
	}
	s.pricing.Flush()
	return nil
}

func (s *Service) first(ctx context.Context, dest any, id snowflake.ID) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (s *Service) deleteByID(ctx context.Context, model any, rawID string) error {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func normalizeSlug(raw, fallback string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" {
		slug = strings.ToLower(strings.TrimSpace(fallback))
	}
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

func mapSlugError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate") {
		return domain.ErrDuplicateSlug
	}
	return err
}
