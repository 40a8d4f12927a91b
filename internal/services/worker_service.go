package services

import (
	"context"
	"time"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/rules"
)

type WorkerService struct {
	workers   *repository.WorkerRepository
	positions *repository.PositionRepository
	teams     *repository.TeamRepository
}

func NewWorkerService(
	workers *repository.WorkerRepository,
	positions *repository.PositionRepository,
	teams *repository.TeamRepository,
) *WorkerService {
	return &WorkerService{
		workers:   workers,
		positions: positions,
		teams:     teams,
	}
}

func (s *WorkerService) List(ctx context.Context, cu authz.CurrentUser, filter query.WorkerFilter) ([]model.Worker, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}
	return s.workers.List(ctx, filter)
}

// WorkerDetail is the worker plus the derivations the detail page shows.
type WorkerDetail struct {
	Worker    *model.Worker `json:"worker"`
	Label     string        `json:"label"`
	TasksDone int64         `json:"tasks_done"`
}

func (s *WorkerService) Detail(ctx context.Context, cu authz.CurrentUser, id string) (*WorkerDetail, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}

	worker, err := s.workers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tasksDone, err := s.workers.CountTasksDone(ctx, id)
	if err != nil {
		return nil, err
	}

	return &WorkerDetail{
		Worker:    worker,
		Label:     worker.Label(),
		TasksDone: tasksDone,
	}, nil
}

type HireInput struct {
	Email      string
	Salary     *uint
	HireDate   *time.Time
	PositionID *string
	Status     model.WorkerStatus
	TeamID     *string
}

// Hire applies the multi-field hire update to a worker. Privileged
// callers only; the status/team consistency rule runs before anything is
// written, and the write itself is a single transaction.
func (s *WorkerService) Hire(ctx context.Context, cu authz.CurrentUser, id string, in HireInput) (*model.Worker, error) {
	if err := requirePrivilege(cu); err != nil {
		return nil, err
	}

	if in.PositionID != nil {
		if _, err := s.positions.FindByID(ctx, *in.PositionID); err != nil {
			return nil, err
		}
	}
	if in.TeamID != nil {
		if _, err := s.teams.FindByID(ctx, *in.TeamID); err != nil {
			return nil, err
		}
	}

	var verr *apperrors.ValidationError
	if in.Email == "" {
		verr = apperrors.Append(verr, "email", "This field is required.")
	}
	if !in.Status.Valid() {
		verr = apperrors.Append(verr, "status", "Select a valid choice.")
	}
	verr = apperrors.Merge(verr, rules.CheckWorkerStatus(in.Status, in.TeamID))
	if verr != nil {
		return nil, verr
	}

	return s.workers.UpdateHire(ctx, id, repository.HireUpdate{
		Email:      in.Email,
		Salary:     in.Salary,
		HireDate:   in.HireDate,
		PositionID: in.PositionID,
		Status:     in.Status,
		TeamID:     in.TeamID,
	})
}
