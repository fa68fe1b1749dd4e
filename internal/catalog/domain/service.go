package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type UpsertServiceRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	PriceFrom   int64   `json:"price_from"`
	Active      *bool   `json:"active"`
	SortOrder   int     `json:"sort_order"`
}

type UpsertPortfolioRequest struct {
	ID        string   `json:"-"`
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Summary   string   `json:"summary"`
	ImageKey  string   `json:"image_key"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
	SortOrder int      `json:"sort_order"`
}

type UpsertPricingRequest struct {
	ID        string   `json:"-"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Currency  string   `json:"currency"`
	Features  []string `json:"features"`
	Popular   *bool    `json:"popular"`
	Active    *bool    `json:"active"`
	SortOrder int      `json:"sort_order"`
}

// Service manages the public catalog: services, portfolio, pricing. Public
// listings are cached; any mutation invalidates.
type Service interface {
	PublicServices(ctx context.Context) ([]ServiceOffering, error)
	PublicPortfolio(ctx context.Context) ([]PortfolioItem, error)
	PublicPricing(ctx context.Context) ([]PricingPlan, error)

	CreateService(ctx context.Context, req UpsertServiceRequest) (*ServiceOffering, error)
	UpdateService(ctx context.Context, req UpsertServiceRequest) (*ServiceOffering, error)
	DeleteService(ctx context.Context, id string) error

	CreatePortfolio(ctx context.Context, req UpsertPortfolioRequest) (*PortfolioItem, error)
	UpdatePortfolio(ctx context.Context, req UpsertPortfolioRequest) (*PortfolioItem, error)
	DeletePortfolio(ctx context.Context, id string) error

	CreatePricing(ctx context.Context, req UpsertPricingRequest) (*PricingPlan, error)
	UpdatePricing(ctx context.Context, req UpsertPricingRequest) (*PricingPlan, error)
	DeletePricing(ctx context.Context, id string) error
}

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

var (
	ErrInvalidID     = errors.New("invalid_catalog_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidSlug   = errors.New("invalid_slug")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrDuplicateSlug = errors.New("duplicate_slug")
	ErrNotFound      = errors.New("catalog_not_found")
)
