package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/clock"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	"github.com/studiokit/atelier/internal/invoice"
	ledgerdomain "github.com/studiokit/atelier/internal/ledger/domain"
	"github.com/studiokit/atelier/internal/payment/domain"
	"github.com/studiokit/atelier/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
	Invoices     *invoice.Generator
	LedgerSvc    ledgerdomain.Service
}

// Service coordinates the payment lifecycle: invoice numbering and the row
// write commit together, then the customer's ledger aggregates are re-derived.
type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	customerRepo customerdomain.Repository
	invoices     *invoice.Generator
	ledgerSvc    ledgerdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("payment.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		invoices:     p.Invoices,
		ledgerSvc:    p.LedgerSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (*domain.Payment, error) {
	customerID, err := domain.ParseID(req.CustomerID)
	if err != nil {
		return nil, domain.ErrInvalidCustomer
	}
	if req.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, domain.ErrInvalidCurrency
	}
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = domain.PaymentTypeOther
	}
	if !domain.ValidPaymentType(paymentType) {
		return nil, domain.ErrInvalidType
	}
	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentMethodOther
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.ErrInvalidMethod
	}
	status := req.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}
	if !domain.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	if _, err := s.customerRepo.FindByID(ctx, s.db, customerID); err != nil {
		if err == customerdomain.ErrNotFound {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	var projectID *snowflake.ID
	if raw := strings.TrimSpace(req.ProjectID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		projectID = &parsed
	}

	now := s.clock.Now()
	payment := &domain.Payment{
		ID:            s.genID.Generate(),
		CustomerID:    customerID,
		ProjectID:     projectID,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentType:   paymentType,
		PaymentMethod: method,
		Status:        status,
		DueDate:       req.DueDate,
		Description:   strings.TrimSpace(req.Description),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == domain.PaymentStatusCompleted {
		paid := now
		payment.PaidDate = &paid
	}

	// Number allocation and the insert commit or roll back together, so a
	// consumed sequence value always has a payment row behind it.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if payment.InvoiceNumber == "" {
			number, err := s.invoices.Next(ctx, tx)
			if err != nil {
				return err
			}
			payment.InvoiceNumber = number
		}
		return s.repo.Insert(ctx, tx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.recalculate(ctx, customerID, "create", payment.ID)
	return payment, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePaymentRequest) (*domain.Payment, error) {
	paymentID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, domain.ErrInvalidAmount
		}
		payment.Amount = *req.Amount
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return nil, domain.ErrInvalidCurrency
		}
		payment.Currency = currency
	}
	if req.PaymentType != nil {
		if !domain.ValidPaymentType(*req.PaymentType) {
			return nil, domain.ErrInvalidType
		}
		payment.PaymentType = *req.PaymentType
	}
	if req.PaymentMethod != nil {
		if !domain.ValidPaymentMethod(*req.PaymentMethod) {
			return nil, domain.ErrInvalidMethod
		}
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.Status != nil {
		if !domain.ValidPaymentStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		if *req.Status == domain.PaymentStatusCompleted && payment.Status != domain.PaymentStatusCompleted && req.PaidDate == nil {
			paid := s.clock.Now()
			payment.PaidDate = &paid
		}
		payment.Status = *req.Status
	}
	if req.DueDate != nil {
		payment.DueDate = req.DueDate
	}
	if req.PaidDate != nil {
		payment.PaidDate = req.PaidDate
	}
	if req.Description != nil {
		payment.Description = strings.TrimSpace(*req.Description)
	}

	payment.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, payment); err != nil {
		return nil, err
	}

	// Unconditional by design: even a patch that left amount and status
	// untouched re-derives, tolerating external corrective edits.
	s.recalculate(ctx, payment.CustomerID, "update", payment.ID)
	return payment, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	paymentID, err := domain.ParseID(id)
	if err != nil {
		return err
	}
	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, paymentID); err != nil {
		return err
	}

	// Aggregates re-derive from the post-delete payment set.
	s.recalculate(ctx, payment.CustomerID, "delete", paymentID)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	paymentID, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, paymentID)
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	filter := domain.ListFilter{
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		customerID, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListPaymentResponse{}, domain.ErrInvalidCustomer
		}
		filter.CustomerID = customerID
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status := domain.PaymentStatus(raw)
		if !domain.ValidPaymentStatus(status) {
			return domain.ListPaymentResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = status
	}

	payments, total, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}
	return domain.ListPaymentResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(filter.Offset, filter.Limit, total),
			TotalCount:    total,
		},
		Payments: payments,
	}, nil
}

// recalculate runs after the triggering write is committed. A failure here
// leaves the aggregate stale until the next successful recalculation for the
// customer; it never rolls back the payment write.
func (s *Service) recalculate(ctx context.Context, customerID snowflake.ID, op string, paymentID snowflake.ID) {
	if err := s.ledgerSvc.Recalculate(ctx, customerID); err != nil {
		s.log.Warn("ledger recalculation failed",
			zap.String("operation", op),
			zap.String("customer_id", customerID.String()),
			zap.String("payment_id", paymentID.String()),
			zap.Error(err),
		)
	}
}
