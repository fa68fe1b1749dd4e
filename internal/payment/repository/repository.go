package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/payment/domain"
	"gorm.io/gorm"
)

type paymentRepository struct{}

// New returns the gorm-backed payment repository.
func New() domain.Repository {
	return paymentRepository{}
}

func (paymentRepository) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	err := db.WithContext(ctx).Create(payment).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateInvoiceNumber
	}
	return err
}

func (paymentRepository) Update(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	// customer_id and invoice_number are immutable and deliberately absent.
	result := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]any{
			"amount":         payment.Amount,
			"currency":       payment.Currency,
			"payment_type":   payment.PaymentType,
			"payment_method": payment.PaymentMethod,
			"status":         payment.Status,
			"due_date":       payment.DueDate,
			"paid_date":      payment.PaidDate,
			"description":    payment.Description,
			"updated_at":     payment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (paymentRepository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Payment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (paymentRepository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (paymentRepository) FindByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC, id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (paymentRepository) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Payment, int64, error) {
	query := db.WithContext(ctx).Model(&domain.Payment{})
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := query.
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
