package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/intake/domain"
	"github.com/studiokit/atelier/internal/notify"
	"github.com/studiokit/atelier/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Outbox   *notify.Outbox
	Notifier notify.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	outbox   *notify.Outbox
	notifier notify.Notifier
}

func NewService(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("intake.service"),
		genID:    p.GenID,
		outbox:   p.Outbox,
		notifier: p.Notifier,
	}
}

func (s *Service) CreateContact(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactMessage, error) {
	name, email, err := validateIdentity(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.ErrInvalidMessage
	}

	now := time.Now().UTC()
	record := &domain.ContactMessage{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   message,
		Status:    domain.IntakeStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, notify.Event{
			Type:      "intake.contact",
			Payload:   map[string]any{"id": record.ID.String(), "email": email, "subject": record.Subject},
			DedupeKey: "contact:" + record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, "contact", record.Subject, email, map[string]any{
		"name":    name,
		"message": message,
	})
	return record, nil
}

func (s *Service) ListContacts(ctx context.Context, req domain.ListRequest) (domain.ListContactResponse, error) {
	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return domain.ListContactResponse{}, err
	}
	var messages []domain.ContactMessage
	total, err := s.list(ctx, &messages, status, req)
	if err != nil {
		return domain.ListContactResponse{}, err
	}
	return domain.ListContactResponse{
		PageInfo: pageInfo(req, total),
		Messages: messages,
	}, nil
}

func (s *Service) UpdateContactStatus(ctx context.Context, id string, status domain.IntakeStatus) (*domain.ContactMessage, error) {
	var record domain.ContactMessage
	if err := s.updateStatus(ctx, &record, id, status); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	return s.delete(ctx, &domain.ContactMessage{}, id)
}

func (s *Service) CreateQuote(ctx context.Context, req domain.CreateQuoteRequest) (*domain.QuoteRequest, error) {
	name, email, err := validateIdentity(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	details := strings.TrimSpace(req.Details)
	if details == "" {
		return nil, domain.ErrInvalidMessage
	}

	now := time.Now().UTC()
	record := &domain.QuoteRequest{
		ID:          s.genID.Generate(),
		Name:        name,
		Email:       email,
		Company:     strings.TrimSpace(req.Company),
		ServiceType: strings.TrimSpace(req.ServiceType),
		BudgetRange: strings.TrimSpace(req.BudgetRange),
		Timeline:    strings.TrimSpace(req.Timeline),
		Details:     details,
		Attachments: datatypes.JSONSlice[domain.Attachment](req.Attachments),
		Status:      domain.IntakeStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, notify.Event{
			Type:      "intake.quote",
			Payload:   map[string]any{"id": record.ID.String(), "email": email, "service_type": record.ServiceType},
			DedupeKey: "quote:" + record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, "quote", "Quote request: "+record.ServiceType, email, map[string]any{
		"name":         name,
		"budget_range": record.BudgetRange,
		"timeline":     record.Timeline,
	})
	return record, nil
}

func (s *Service) ListQuotes(ctx context.Context, req domain.ListRequest) (domain.ListQuoteResponse, error) {
	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return domain.ListQuoteResponse{}, err
	}
	var quotes []domain.QuoteRequest
	total, err := s.list(ctx, &quotes, status, req)
	if err != nil {
		return domain.ListQuoteResponse{}, err
	}
	return domain.ListQuoteResponse{
		PageInfo: pageInfo(req, total),
		Quotes:   quotes,
	}, nil
}

func (s *Service) UpdateQuoteStatus(ctx context.Context, id string, status domain.IntakeStatus) (*domain.QuoteRequest, error) {
	var record domain.QuoteRequest
	if err := s.updateStatus(ctx, &record, id, status); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) DeleteQuote(ctx context.Context, id string) error {
	return s.delete(ctx, &domain.QuoteRequest{}, id)
}

func (s *Service) CreateProjectRequest(ctx context.Context, req domain.CreateProjectRequestInput) (*domain.ProjectRequest, error) {
	name, email, err := validateIdentity(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.ErrInvalidMessage
	}

	now := time.Now().UTC()
	record := &domain.ProjectRequest{
		ID:          s.genID.Generate(),
		Name:        name,
		Email:       email,
		ProjectType: strings.TrimSpace(req.ProjectType),
		Description: description,
		BudgetRange: strings.TrimSpace(req.BudgetRange),
		Deadline:    req.Deadline,
		Status:      domain.IntakeStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(record).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, notify.Event{
			Type:      "intake.project_request",
			Payload:   map[string]any{"id": record.ID.String(), "email": email, "project_type": record.ProjectType},
			DedupeKey: "project_request:" + record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, "project_request", "Project request: "+record.ProjectType, email, map[string]any{
		"name":         name,
		"budget_range": record.BudgetRange,
	})
	return record, nil
}

func (s *Service) ListProjectRequests(ctx context.Context, req domain.ListRequest) (domain.ListProjectRequestResponse, error) {
	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return domain.ListProjectRequestResponse{}, err
	}
	var requests []domain.ProjectRequest
	total, err := s.list(ctx, &requests, status, req)
	if err != nil {
		return domain.ListProjectRequestResponse{}, err
	}
	return domain.ListProjectRequestResponse{
		PageInfo: pageInfo(req, total),
		Requests: requests,
	}, nil
}

func (s *Service) UpdateProjectRequestStatus(ctx context.Context, id string, status domain.IntakeStatus) (*domain.ProjectRequest, error) {
	var record domain.ProjectRequest
	if err := s.updateStatus(ctx, &record, id, status); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) DeleteProjectRequest(ctx context.Context, id string) error {
	return s.delete(ctx, &domain.ProjectRequest{}, id)
}

func (s *Service) list(ctx context.Context, dest any, status domain.IntakeStatus, req domain.ListRequest) (int64, error) {
	query := s.db.WithContext(ctx).Model(dest)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	err := query.
		Order("created_at DESC, id DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Find(dest).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) updateStatus(ctx context.Context, dest any, rawID string, status domain.IntakeStatus) error {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return err
	}
	if !domain.ValidIntakeStatus(status) {
		return domain.ErrInvalidStatus
	}
	result := s.db.WithContext(ctx).
		Model(dest).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	err = s.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (s *Service) delete(ctx context.Context, model any, rawID string) error {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// notifyOwner is best effort; a mailer outage never fails the submission.
func (s *Service) notifyOwner(ctx context.Context, kind, subject, replyTo string, fields map[string]any) {
	err := s.notifier.Notify(ctx, notify.Message{
		Kind:    kind,
		Subject: subject,
		ReplyTo: replyTo,
		Fields:  fields,
	})
	if err != nil {
		s.log.Warn("intake notification failed",
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
}

func validateIdentity(rawName, rawEmail string) (string, string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", "", domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(rawEmail))
	if email == "" || !strings.Contains(email, "@") {
		return "", "", domain.ErrInvalidEmail
	}
	return name, email, nil
}

func parseStatusFilter(raw string) (domain.IntakeStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	status := domain.IntakeStatus(raw)
	if !domain.ValidIntakeStatus(status) {
		return "", domain.ErrInvalidStatus
	}
	return status, nil
}

func pageInfo(req domain.ListRequest, total int64) pagination.PageInfo {
	return pagination.PageInfo{
		NextPageToken: pagination.NextToken(req.Offset(), req.Limit(), total),
		TotalCount:    total,
	}
}
