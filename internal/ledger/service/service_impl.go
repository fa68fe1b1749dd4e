package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	"github.com/studiokit/atelier/internal/ledger/domain"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("ledger.service"),
	}
}

// Recalculate loads the customer's full payment set, sums completed amounts
// into total_revenue, derives outstanding_balance from the project budgets,
// and persists both fields in a single write.
func (s *Service) Recalculate(ctx context.Context, customerID snowflake.ID) error {
	if customerID == 0 {
		return paymentdomain.ErrInvalidCustomer
	}

	var customer customerdomain.Customer
	err := s.db.WithContext(ctx).Where("id = ?", customerID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The payment mutation stands even when its customer is gone.
			s.log.Debug("recalculation skipped, customer missing",
				zap.String("customer_id", customerID.String()))
			return nil
		}
		return err
	}

	var totalRevenue int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM payments
		 WHERE customer_id = ? AND status = ?`,
		customerID,
		paymentdomain.PaymentStatusCompleted,
	).Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var totalCharged int64
	for _, project := range customer.Projects {
		totalCharged += project.Budget
	}

	outstanding := totalCharged - totalRevenue
	if outstanding < 0 {
		outstanding = 0
	}

	return s.db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET total_revenue = ?, outstanding_balance = ?, updated_at = ?
		 WHERE id = ?`,
		totalRevenue,
		outstanding,
		time.Now().UTC(),
		customerID,
	).Error
}
