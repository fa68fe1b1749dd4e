package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ServiceOffering is an entry on the public services page.
type ServiceOffering struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Slug        string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	PriceFrom   int64        `gorm:"not null;default:0" json:"price_from"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	SortOrder   int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ServiceOffering) TableName() string { return "service_offerings" }

// PortfolioItem is a published piece of past work.
type PortfolioItem struct {
	ID        snowflake.ID                `gorm:"primaryKey" json:"id"`
	Title     string                      `gorm:"type:text;not null" json:"title"`
	Slug      string                      `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Summary   string                      `gorm:"type:text" json:"summary,omitempty"`
	ImageKey  string                      `gorm:"type:text" json:"image_key,omitempty"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Published bool                        `gorm:"not null;default:false;index" json:"published"`
	SortOrder int                         `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PortfolioItem) TableName() string { return "portfolio_items" }

// PricingPlan is a package on the public pricing page.
type PricingPlan struct {
	ID        snowflake.ID                `gorm:"primaryKey" json:"id"`
	Name      string                      `gorm:"type:text;not null" json:"name"`
	Price     int64                       `gorm:"not null" json:"price"`
	Currency  string                      `gorm:"type:text;not null;default:'USD'" json:"currency"`
	Features  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"features"`
	Popular   bool                        `gorm:"not null;default:false" json:"popular"`
	Active    bool                        `gorm:"not null;default:true" json:"active"`
	SortOrder int                         `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PricingPlan) TableName() string { return "pricing_plans" }
