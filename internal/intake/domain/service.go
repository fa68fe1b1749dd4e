package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/pkg/db/pagination"
)

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type CreateQuoteRequest struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Company     string       `json:"company"`
	ServiceType string       `json:"service_type"`
	BudgetRange string       `json:"budget_range"`
	Timeline    string       `json:"timeline"`
	Details     string       `json:"details"`
	Attachments []Attachment `json:"attachments"`
}

type CreateProjectRequestInput struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	ProjectType string     `json:"project_type"`
	Description string     `json:"description"`
	BudgetRange string     `json:"budget_range"`
	Deadline    *time.Time `json:"deadline"`
}

type ListRequest struct {
	pagination.Pagination
	Status string
}

type ListContactResponse struct {
	pagination.PageInfo
	Messages []ContactMessage `json:"messages"`
}

type ListQuoteResponse struct {
	pagination.PageInfo
	Quotes []QuoteRequest `json:"quotes"`
}

type ListProjectRequestResponse struct {
	pagination.PageInfo
	Requests []ProjectRequest `json:"requests"`
}

// Service handles intake submissions and their admin workflow. Creation
// notifies the site owner; the record write never depends on delivery.
type Service interface {
	CreateContact(ctx context.Context, req CreateContactRequest) (*ContactMessage, error)
	ListContacts(ctx context.Context, req ListRequest) (ListContactResponse, error)
	UpdateContactStatus(ctx context.Context, id string, status IntakeStatus) (*ContactMessage, error)
	DeleteContact(ctx context.Context, id string) error

	CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteRequest, error)
	ListQuotes(ctx context.Context, req ListRequest) (ListQuoteResponse, error)
	UpdateQuoteStatus(ctx context.Context, id string, status IntakeStatus) (*QuoteRequest, error)
	DeleteQuote(ctx context.Context, id string) error

	CreateProjectRequest(ctx context.Context, req CreateProjectRequestInput) (*ProjectRequest, error)
	ListProjectRequests(ctx context.Context, req ListRequest) (ListProjectRequestResponse, error)
	UpdateProjectRequestStatus(ctx context.Context, id string, status IntakeStatus) (*ProjectRequest, error)
	DeleteProjectRequest(ctx context.Context, id string) error
}

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

var (
	ErrInvalidID      = errors.New("invalid_intake_id")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidMessage = errors.New("invalid_message")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrNotFound       = errors.New("intake_not_found")
)
