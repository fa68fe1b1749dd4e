package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/pkg/db/pagination"
)

type CreatePaymentRequest struct {
	CustomerID    string        `json:"customer_id"`
	ProjectID     string        `json:"project_id"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	PaymentType   PaymentType   `json:"payment_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        PaymentStatus `json:"status"`
	DueDate       *time.Time    `json:"due_date"`
	Description   string        `json:"description"`
}

// UpdatePaymentRequest is a partial patch. CustomerID and InvoiceNumber are
// not patchable.
type UpdatePaymentRequest struct {
	ID            string         `json:"-"`
	Amount        *int64         `json:"amount"`
	Currency      *string        `json:"currency"`
	PaymentType   *PaymentType   `json:"payment_type"`
	PaymentMethod *PaymentMethod `json:"payment_method"`
	Status        *PaymentStatus `json:"status"`
	DueDate       *time.Time     `json:"due_date"`
	PaidDate      *time.Time     `json:"paid_date"`
	Description   *string        `json:"description"`
}

type ListPaymentRequest struct {
	pagination.Pagination
	CustomerID string
	Status     string
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

// Service is the payment lifecycle coordinator. Every successful mutation
// leaves the owning customer's ledger aggregates consistent with the
// committed payment set.
type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	Update(ctx context.Context, req UpdatePaymentRequest) (*Payment, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, req ListPaymentRequest) (ListPaymentResponse, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

var (
	ErrInvalidID              = errors.New("invalid_payment_id")
	ErrInvalidCustomer        = errors.New("invalid_customer")
	ErrCustomerNotFound       = errors.New("customer_not_found")
	ErrInvalidAmount          = errors.New("invalid_amount")
	ErrInvalidCurrency        = errors.New("invalid_currency")
	ErrInvalidType            = errors.New("invalid_payment_type")
	ErrInvalidMethod          = errors.New("invalid_payment_method")
	ErrInvalidStatus          = errors.New("invalid_status")
	ErrNotFound               = errors.New("payment_not_found")
	ErrDuplicateInvoiceNumber = errors.New("duplicate_invoice_number")
)
