package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/customer/domain"
	ledgerdomain "github.com/studiokit/atelier/internal/ledger/domain"
	"github.com/studiokit/atelier/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	LedgerSvc ledgerdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	ledgerSvc ledgerdomain.Service
}

func nowUTC() time.Time { return time.Now().UTC() }

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		ledgerSvc: p.LedgerSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	status := req.Status
	if status == "" {
		status = domain.CustomerStatusLead
	}
	if !domain.ValidCustomerStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	if existing, err := s.repo.FindByEmail(ctx, s.db, email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	now := nowUTC()
	customer := &domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Company:   strings.TrimSpace(req.Company),
		Status:    status,
		Notes:     strings.TrimSpace(req.Notes),
		Projects:  datatypes.JSONSlice[domain.Project]{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	status := domain.CustomerStatus(strings.TrimSpace(req.Status))
	if status != "" && !domain.ValidCustomerStatus(status) {
		return domain.ListCustomerResponse{}, domain.ErrInvalidStatus
	}

	limit := req.Limit()
	offset := req.Offset()
	customers, total, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Name:   req.Name,
		Email:  req.Email,
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	return domain.ListCustomerResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, limit, total),
			TotalCount:    total,
		},
		Customers: customers,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customerID, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, customerID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customerID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ErrInvalidEmail
		}
		if email != customer.Email {
			if existing, err := s.repo.FindByEmail(ctx, s.db, email); err == nil && existing != nil && existing.ID != customer.ID {
				return nil, domain.ErrDuplicateEmail
			} else if err != nil && err != domain.ErrNotFound {
				return nil, err
			}
		}
		customer.Email = email
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		customer.Company = strings.TrimSpace(*req.Company)
	}
	if req.Status != nil {
		if !domain.ValidCustomerStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		customer.Status = *req.Status
	}
	if req.Notes != nil {
		customer.Notes = strings.TrimSpace(*req.Notes)
	}

	customer.UpdatedAt = nowUTC()
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, customerID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	customerID, err := domain.ParseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, customerID)
}

func (s *Service) AddProject(ctx context.Context, req domain.AddProjectRequest) (*domain.Customer, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidProject
	}
	if req.Budget < 0 {
		return nil, domain.ErrInvalidBudget
	}
	status := req.Status
	if status == "" {
		status = domain.ProjectStatusInquiry
	}
	if !domain.ValidProjectStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	stage := req.Stage
	if stage == "" {
		stage = domain.ProjectStageDiscovery
	}
	if !domain.ValidProjectStage(stage) {
		return nil, domain.ErrInvalidStatus
	}

	return s.mutateProjects(ctx, req.CustomerID, func(projects []domain.Project) ([]domain.Project, error) {
		project := domain.Project{
			ID:          s.genID.Generate(),
			Title:       title,
			Description: strings.TrimSpace(req.Description),
			Status:      status,
			Stage:       stage,
			Budget:      req.Budget,
			Milestones:  []domain.Milestone{},
			CreatedAt:   nowUTC(),
		}
		return append(projects, project), nil
	})
}

func (s *Service) UpdateProject(ctx context.Context, req domain.UpdateProjectRequest) (*domain.Customer, error) {
	projectID, err := domain.ParseID(req.ProjectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	return s.mutateProjects(ctx, req.CustomerID, func(projects []domain.Project) ([]domain.Project, error) {
		idx := indexOfProject(projects, projectID)
		if idx < 0 {
			return nil, domain.ErrProjectNotFound
		}
		project := projects[idx]

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return nil, domain.ErrInvalidProject
			}
			project.Title = title
		}
		if req.Status != nil {
			if !domain.ValidProjectStatus(*req.Status) {
				return nil, domain.ErrInvalidStatus
			}
			project.Status = *req.Status
		}
		if req.Stage != nil {
			if !domain.ValidProjectStage(*req.Stage) {
				return nil, domain.ErrInvalidStatus
			}
			project.Stage = *req.Stage
		}
		if req.Progress != nil {
			if *req.Progress < 0 || *req.Progress > 100 {
				return nil, domain.ErrInvalidProgress
			}
			project.Progress = *req.Progress
		}
		if req.Budget != nil {
			if *req.Budget < 0 {
				return nil, domain.ErrInvalidBudget
			}
			project.Budget = *req.Budget
		}
		if req.ActualCost != nil {
			if *req.ActualCost < 0 {
				return nil, domain.ErrInvalidBudget
			}
			project.ActualCost = *req.ActualCost
		}

		projects[idx] = project
		return projects, nil
	})
}

func (s *Service) RemoveProject(ctx context.Context, customerID, projectID string) (*domain.Customer, error) {
	id, err := domain.ParseID(projectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}
	return s.mutateProjects(ctx, customerID, func(projects []domain.Project) ([]domain.Project, error) {
		idx := indexOfProject(projects, id)
		if idx < 0 {
			return nil, domain.ErrProjectNotFound
		}
		return append(projects[:idx], projects[idx+1:]...), nil
	})
}

func (s *Service) AddMilestone(ctx context.Context, req domain.AddMilestoneRequest) (*domain.Customer, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidMilestone
	}
	projectID, err := domain.ParseID(req.ProjectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}
	return s.mutateProjects(ctx, req.CustomerID, func(projects []domain.Project) ([]domain.Project, error) {
		idx := indexOfProject(projects, projectID)
		if idx < 0 {
			return nil, domain.ErrProjectNotFound
		}
		projects[idx].Milestones = append(projects[idx].Milestones, domain.Milestone{
			Title:   title,
			DueDate: req.DueDate,
		})
		return projects, nil
	})
}

func (s *Service) SetMilestoneCompleted(ctx context.Context, customerID, projectID string, index int, completed bool) (*domain.Customer, error) {
	id, err := domain.ParseID(projectID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}
	return s.mutateProjects(ctx, customerID, func(projects []domain.Project) ([]domain.Project, error) {
		idx := indexOfProject(projects, id)
		if idx < 0 {
			return nil, domain.ErrProjectNotFound
		}
		if index < 0 || index >= len(projects[idx].Milestones) {
			return nil, domain.ErrInvalidMilestone
		}
		projects[idx].Milestones[index].Completed = completed
		return projects, nil
	})
}

// mutateProjects applies fn to the customer's project list, persists the
// result, and re-derives the ledger aggregates (project budgets feed the
// outstanding balance).
func (s *Service) mutateProjects(
	ctx context.Context,
	rawCustomerID string,
	fn func(projects []domain.Project) ([]domain.Project, error),
) (*domain.Customer, error) {
	customerID, err := domain.ParseID(rawCustomerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}

	projects, err := fn([]domain.Project(customer.Projects))
	if err != nil {
		return nil, err
	}
	customer.Projects = datatypes.JSONSlice[domain.Project](projects)
	customer.UpdatedAt = nowUTC()
	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}

	if err := s.ledgerSvc.Recalculate(ctx, customerID); err != nil {
		s.log.Warn("ledger recalculation failed after project mutation",
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
	}
	return s.repo.FindByID(ctx, s.db, customerID)
}

func indexOfProject(projects []domain.Project, id snowflake.ID) int {
	for i, project := range projects {
		if project.ID == id {
			return i
		}
	}
	return -1
}
