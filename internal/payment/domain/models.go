package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PaymentType classifies what part of an engagement a payment covers.
type PaymentType string

const (
	PaymentTypeDeposit   PaymentType = "deposit"
	PaymentTypeMilestone PaymentType = "milestone"
	PaymentTypeFinal     PaymentType = "final"
	PaymentTypeFull      PaymentType = "full"
	PaymentTypeOther     PaymentType = "other"
)

// PaymentMethod records how the money moved.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMobileMoney  PaymentMethod = "mobile-money"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodOther        PaymentMethod = "other"
)

// PaymentStatus is the settlement state. Only completed payments count
// toward customer revenue.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusOverdue   PaymentStatus = "overdue"
)

// Payment is a single payment transaction. CustomerID and InvoiceNumber are
// immutable once set.
type Payment struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID    snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	ProjectID     *snowflake.ID `gorm:"index" json:"project_id,omitempty"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"type:text;not null;default:'USD'" json:"currency"`
	PaymentType   PaymentType   `gorm:"type:text;not null" json:"payment_type"`
	PaymentMethod PaymentMethod `gorm:"type:text;not null" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
	InvoiceNumber string        `gorm:"type:text;not null;uniqueIndex" json:"invoice_number"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// InvoiceSequence is the atomic counter row backing invoice numbers, one per
// calendar year. It only ever increments, so deleted payments never free
// their numbers for reuse.
type InvoiceSequence struct {
	Year      int       `gorm:"primaryKey" json:"year"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }

// ValidPaymentType reports whether the type is a known value.
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeDeposit, PaymentTypeMilestone, PaymentTypeFinal, PaymentTypeFull, PaymentTypeOther:
		return true
	default:
		return false
	}
}

// ValidPaymentMethod reports whether the method is a known value.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCash,
		PaymentMethodMobileMoney, PaymentMethodPaypal, PaymentMethodOther:
		return true
	default:
		return false
	}
}

// ValidPaymentStatus reports whether the status is a known value.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusOverdue:
		return true
	default:
		return false
	}
}
