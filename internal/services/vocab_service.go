package services

import (
	"context"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/rules"
)

// VocabService manages the reference vocabularies: positions and task
// types. Both are administrator-maintained.
type VocabService struct {
	positions *repository.PositionRepository
	taskTypes *repository.TaskTypeRepository
}

func NewVocabService(positions *repository.PositionRepository, taskTypes *repository.TaskTypeRepository) *VocabService {
	return &VocabService{
		positions: positions,
		taskTypes: taskTypes,
	}
}

func (s *VocabService) CreatePosition(ctx context.Context, cu authz.CurrentUser, name string) (*model.Position, error) {
	if err := requirePrivilege(cu); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperrors.NewValidation("name", "This field is required.")
	}

	taken, err := s.positions.NameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if verr := rules.CheckUniqueName("name", "position", taken); verr != nil {
		return nil, verr
	}

	return s.positions.Create(ctx, name)
}

func (s *VocabService) DeletePosition(ctx context.Context, cu authz.CurrentUser, id string) error {
	if err := requirePrivilege(cu); err != nil {
		return err
	}
	return s.positions.Delete(ctx, id)
}

func (s *VocabService) CreateTaskType(ctx context.Context, cu authz.CurrentUser, name string) (*model.TaskType, error) {
	if err := requirePrivilege(cu); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, apperrors.NewValidation("name", "This field is required.")
	}

	return s.taskTypes.Create(ctx, name)
}

func (s *VocabService) DeleteTaskType(ctx context.Context, cu authz.CurrentUser, id string) error {
	if err := requirePrivilege(cu); err != nil {
		return err
	}
	return s.taskTypes.Delete(ctx, id)
}
