package services

import (
	"context"

	"github.com/google/uuid"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/rules"
)

type TeamService struct {
	teams   *repository.TeamRepository
	workers *repository.WorkerRepository
}

func NewTeamService(teams *repository.TeamRepository, workers *repository.WorkerRepository) *TeamService {
	return &TeamService{
		teams:   teams,
		workers: workers,
	}
}

type TeamInput struct {
	Name             string
	ProjectManagerID string
}

func (s *TeamService) Create(ctx context.Context, cu authz.CurrentUser, in TeamInput) (*model.Team, error) {
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

	team := &model.Team{
		ID:               uuid.NewString(),
		Name:             in.Name,
		ProjectManagerID: in.ProjectManagerID,
	}

	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) Update(ctx context.Context, cu authz.CurrentUser, id string, in TeamInput) (*model.Team, error) {
	if err := requirePrivilege(cu); err != nil {
		return nil, err
	}

	if _, err := s.teams.FindByID(ctx, id); err != nil {
		return nil, err
	}

	verr, err := s.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	team := &model.Team{
		ID:               id,
		Name:             in.Name,
		ProjectManagerID: in.ProjectManagerID,
	}

	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}

	return s.teams.FindByID(ctx, id)
}

func (s *TeamService) Detail(ctx context.Context, cu authz.CurrentUser, id string) (*model.Team, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}
	return s.teams.FindByID(ctx, id)
}

func (s *TeamService) validate(ctx context.Context, in TeamInput, excludeID string) (*apperrors.ValidationError, error) {
	var verr *apperrors.ValidationError

	if in.Name == "" {
		verr = apperrors.Append(verr, "name", "This field is required.")
	} else {
		taken, err := s.teams.NameTaken(ctx, in.Name, excludeID)
		if err != nil {
			return nil, err
		}
		verr = apperrors.Merge(verr, rules.CheckUniqueName("name", "team", taken))
	}

	manager, err := s.workers.FindByID(ctx, in.ProjectManagerID)
	if err != nil {
		return nil, err
	}
	verr = apperrors.Merge(verr, rules.CheckManagerRole("project_manager", manager))

	return verr, nil
}
