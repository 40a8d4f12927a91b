package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/rules"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	workers  *repository.WorkerRepository
}

func NewProjectService(projects *repository.ProjectRepository, workers *repository.WorkerRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		workers:  workers,
	}
}

type ProjectInput struct {
	Name        string
	Description string
	ManagerID   string
	StartDate   time.Time
	Deadline    time.Time
}

func (s *ProjectService) Create(ctx context.Context, cu authz.CurrentUser, in ProjectInput) (*model.Project, error) {
	if err := requirePrivilege(cu); err != nil {
		return nil, err
	}

	verr, err := s.validate(ctx, in, "")
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	project := &model.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ManagerID:   in.ManagerID,
		StartDate:   rules.Date(in.StartDate),
		Deadline:    rules.Date(in.Deadline),
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, cu authz.CurrentUser, id string, in ProjectInput) (*model.Project, error) {
	if err := requirePrivilege(cu); err != nil {
		return nil, err
	}

	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return nil, err
	}

	verr, err := s.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	project := &model.Project{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		ManagerID:   in.ManagerID,
		StartDate:   rules.Date(in.StartDate),
		Deadline:    rules.Date(in.Deadline),
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return s.projects.FindByID(ctx, id)
}

// List preserves the historical access asymmetry: privileged managers
// see only the projects they manage while everyone else sees all of
// them. Likely an inverted condition in the original, kept until the
// intended behavior is confirmed.
func (s *ProjectService) List(ctx context.Context, cu authz.CurrentUser) ([]model.Project, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}

	if authz.IsPrivileged(cu) {
		return s.projects.List(ctx, cu.WorkerID)
	}
	return s.projects.List(ctx, "")
}

func (s *ProjectService) Detail(ctx context.Context, cu authz.CurrentUser, id string) (*model.Project, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) Complete(ctx context.Context, cu authz.CurrentUser, id string) error {
	if err := requireLogin(cu); err != nil {
		return err
	}
	return s.projects.Complete(ctx, id)
}

func (s *ProjectService) validate(ctx context.Context, in ProjectInput, excludeID string) (*apperrors.ValidationError, error) {
	var verr *apperrors.ValidationError

	if in.Name == "" {
		verr = apperrors.Append(verr, "name", "This field is required.")
	}
	if in.Description == "" {
		verr = apperrors.Append(verr, "description", "This field is required.")
	}

	manager, err := s.workers.FindByID(ctx, in.ManagerID)
	if err != nil {
		return nil, err
	}
	verr = apperrors.Merge(verr, rules.CheckManagerRole("manager", manager))

	today := rules.Today()
	verr = apperrors.Merge(verr, rules.CheckDateNotPast("start_date", in.StartDate, today))
	verr = apperrors.Merge(verr, rules.CheckDateNotPast("deadline", in.Deadline, today))

	if in.Name != "" {
		taken, err := s.projects.PairTaken(ctx, in.Name, in.ManagerID, excludeID)
		if err != nil {
			return nil, err
		}
		verr = apperrors.Merge(verr, rules.CheckProjectUnique(taken))
	}

	return verr, nil
}
