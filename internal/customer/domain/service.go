package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Company string         `json:"company"`
	Status  CustomerStatus `json:"status"`
	Notes   string         `json:"notes"`
}

type UpdateCustomerRequest struct {
	ID      string          `json:"-"`
	Name    *string         `json:"name"`
	Email   *string         `json:"email"`
	Phone   *string         `json:"phone"`
	Company *string         `json:"company"`
	Status  *CustomerStatus `json:"status"`
	Notes   *string         `json:"notes"`
}

type ListCustomerRequest struct {
	pagination.Pagination
	Name   string
	Email  string
	Status string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type AddProjectRequest struct {
	CustomerID  string        `json:"-"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Stage       ProjectStage  `json:"stage"`
	Budget      int64         `json:"budget"`
}

type UpdateProjectRequest struct {
	CustomerID string         `json:"-"`
	ProjectID  string         `json:"-"`
	Title      *string        `json:"title"`
	Status     *ProjectStatus `json:"status"`
	Stage      *ProjectStage  `json:"stage"`
	Progress   *int           `json:"progress"`
	Budget     *int64         `json:"budget"`
	ActualCost *int64         `json:"actual_cost"`
}

type AddMilestoneRequest struct {
	CustomerID string     `json:"-"`
	ProjectID  string     `json:"-"`
	Title      string     `json:"title"`
	DueDate    *time.Time `json:"due_date"`
}

// Service is the customer CRM surface. Project mutations flow through the
// owning customer so budget changes stay inside the ledger's consistency
// boundary.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (*Customer, error)
	Delete(ctx context.Context, id string) error

	AddProject(ctx context.Context, req AddProjectRequest) (*Customer, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*Customer, error)
	RemoveProject(ctx context.Context, customerID, projectID string) (*Customer, error)
	AddMilestone(ctx context.Context, req AddMilestoneRequest) (*Customer, error)
	SetMilestoneCompleted(ctx context.Context, customerID, projectID string, index int, completed bool) (*Customer, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

var (
	ErrInvalidID        = errors.New("invalid_customer_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrDuplicateEmail   = errors.New("duplicate_email")
	ErrNotFound         = errors.New("customer_not_found")
	ErrInvalidProject   = errors.New("invalid_project")
	ErrProjectNotFound  = errors.New("project_not_found")
	ErrInvalidBudget    = errors.New("invalid_budget")
	ErrInvalidProgress  = errors.New("invalid_progress")
	ErrInvalidMilestone = errors.New("invalid_milestone")
)
