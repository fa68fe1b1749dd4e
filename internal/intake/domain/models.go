package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// IntakeStatus tracks how far an admin has taken a submission.
type IntakeStatus string

const (
	IntakeStatusNew       IntakeStatus = "new"
	IntakeStatusReviewing IntakeStatus = "reviewing"
	IntakeStatusReplied   IntakeStatus = "replied"
	IntakeStatusArchived  IntakeStatus = "archived"
)

// ContactMessage is a plain contact-form submission.
type ContactMessage struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;not null;index" json:"email"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Subject   string       `gorm:"type:text" json:"subject,omitempty"`
	Message   string       `gorm:"type:text;not null" json:"message"`
	Status    IntakeStatus `gorm:"type:text;not null;default:'new';index" json:"status"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ContactMessage) TableName() string { return "contact_messages" }

// Attachment references an object stored with the external provider.
type Attachment struct {
	Key         string `json:"key"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// QuoteRequest is a quote-form submission, optionally carrying attachment
// references.
type QuoteRequest struct {
	ID          snowflake.ID                    `gorm:"primaryKey" json:"id"`
	Name        string                          `gorm:"type:text;not null" json:"name"`
	Email       string                          `gorm:"type:text;not null;index" json:"email"`
	Company     string                          `gorm:"type:text" json:"company,omitempty"`
	ServiceType string                          `gorm:"type:text" json:"service_type,omitempty"`
	BudgetRange string                          `gorm:"type:text" json:"budget_range,omitempty"`
	Timeline    string                          `gorm:"type:text" json:"timeline,omitempty"`
	Details     string                          `gorm:"type:text;not null" json:"details"`
	Attachments datatypes.JSONSlice[Attachment] `gorm:"type:jsonb" json:"attachments"`
	Status      IntakeStatus                    `gorm:"type:text;not null;default:'new';index" json:"status"`
	CreatedAt   time.Time                       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (QuoteRequest) TableName() string { return "quote_requests" }

// ProjectRequest is a structured new-project inquiry.
type ProjectRequest struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Email       string       `gorm:"type:text;not null;index" json:"email"`
	ProjectType string       `gorm:"type:text" json:"project_type,omitempty"`
	Description string       `gorm:"type:text;not null" json:"description"`
	BudgetRange string       `gorm:"type:text" json:"budget_range,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Status      IntakeStatus `gorm:"type:text;not null;default:'new';index" json:"status"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ProjectRequest) TableName() string { return "project_requests" }

// ValidIntakeStatus reports whether the status is a known value.
func ValidIntakeStatus(status IntakeStatus) bool {
	switch status {
	case IntakeStatusNew, IntakeStatusReviewing, IntakeStatusReplied, IntakeStatusArchived:
		return true
	default:
		return false
	}
}
