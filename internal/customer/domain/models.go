package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CustomerStatus tracks where a customer sits in the sales funnel.
type CustomerStatus string

const (
	CustomerStatusLead     CustomerStatus = "lead"
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusVIP      CustomerStatus = "vip"
)

// ProjectStatus tracks an embedded project's lifecycle.
type ProjectStatus string

const (
	ProjectStatusInquiry       ProjectStatus = "inquiry"
	ProjectStatusQuotationSent ProjectStatus = "quotation-sent"
	ProjectStatusAccepted      ProjectStatus = "accepted"
	ProjectStatusInProgress    ProjectStatus = "in-progress"
	ProjectStatusReview        ProjectStatus = "review"
	ProjectStatusCompleted     ProjectStatus = "completed"
	ProjectStatusDelivered     ProjectStatus = "delivered"
	ProjectStatusCancelled     ProjectStatus = "cancelled"
)

// ProjectStage tracks the delivery phase of a project.
type ProjectStage string

const (
	ProjectStageDiscovery   ProjectStage = "discovery"
	ProjectStageDesign      ProjectStage = "design"
	ProjectStageDevelopment ProjectStage = "development"
	ProjectStageTesting     ProjectStage = "testing"
	ProjectStageLaunch      ProjectStage = "launch"
	ProjectStageMaintenance ProjectStage = "maintenance"
)

// Milestone is a checklist item inside a project.
type Milestone struct {
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
}

// Project is owned exclusively by its parent Customer and has no identity
// lifecycle outside it. Budgets feed the customer ledger.
type Project struct {
	ID          snowflake.ID  `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Stage       ProjectStage  `json:"stage"`
	Progress    int           `json:"progress"`
	Budget      int64         `json:"budget"`
	ActualCost  int64         `json:"actual_cost"`
	Milestones  []Milestone   `json:"milestones,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Customer is a CRM record. TotalRevenue and OutstandingBalance are derived
// fields owned by the ledger recalculation engine; nothing else writes them.
type Customer struct {
	ID                 snowflake.ID                  `gorm:"primaryKey" json:"id"`
	Name               string                        `gorm:"type:text;not null" json:"name"`
	Email              string                        `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone              string                        `gorm:"type:text" json:"phone,omitempty"`
	Company            string                        `gorm:"type:text" json:"company,omitempty"`
	Status             CustomerStatus                `gorm:"type:text;not null;default:'lead'" json:"status"`
	Notes              string                        `gorm:"type:text" json:"notes,omitempty"`
	Projects           datatypes.JSONSlice[Project]  `gorm:"type:jsonb" json:"projects"`
	TotalRevenue       int64                         `gorm:"not null;default:0" json:"total_revenue"`
	OutstandingBalance int64                         `gorm:"not null;default:0" json:"outstanding_balance"`
	CreatedAt          time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// ValidCustomerStatus reports whether the status is a known value.
func ValidCustomerStatus(status CustomerStatus) bool {
	switch status {
	case CustomerStatusLead, CustomerStatusActive, CustomerStatusInactive, CustomerStatusVIP:
		return true
	default:
		return false
	}
}

// ValidProjectStatus reports whether the status is a known value.
func ValidProjectStatus(status ProjectStatus) bool {
	switch status {
	case ProjectStatusInquiry, ProjectStatusQuotationSent, ProjectStatusAccepted,
		ProjectStatusInProgress, ProjectStatusReview, ProjectStatusCompleted,
		ProjectStatusDelivered, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// ValidProjectStage reports whether the stage is a known value.
func ValidProjectStage(stage ProjectStage) bool {
	switch stage {
	case ProjectStageDiscovery, ProjectStageDesign, ProjectStageDevelopment,
		ProjectStageTesting, ProjectStageLaunch, ProjectStageMaintenance:
		return true
	default:
		return false
	}
}
