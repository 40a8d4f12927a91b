package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Preload("Position").
		Preload("Team").
		First(&worker, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (r *WorkerRepository) FindByUsername(ctx context.Context, username string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Preload("Position").
		First(&worker, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (r *WorkerRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *WorkerRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// List returns workers ordered by username, excluding those holding the
// project-manager role, optionally narrowed by a case-insensitive
// first-name substring.
func (r *WorkerRepository) List(ctx context.Context, filter query.WorkerFilter) ([]model.Worker, error) {
	q := r.db.WithContext(ctx).Model(&model.Worker{}).
		Preload("Position").
		Joins("LEFT JOIN positions ON positions.id = workers.position_id").
		Where("positions.role IS NULL OR positions.role <> ?", model.RoleProjectManager)

	if filter.FirstNameContains != "" {
		pattern := "%" + strings.ToLower(filter.FirstNameContains) + "%"
		q = q.Where("LOWER(workers.first_name) LIKE ?", pattern)
	}

	var workers []model.Worker
	err := q.Order("workers.username asc").Find(&workers).Error
	return workers, err
}

func (r *WorkerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Worker{}).Count(&count).Error
	return count, err
}

// CountTasksDone counts the distinct completed tasks the worker is
// assigned to.
func (r *WorkerRepository) CountTasksDone(ctx context.Context, workerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.assignee_id = ? AND tasks.is_completed = ?", workerID, true).
		Distinct("tasks.id").
		Count(&count).Error
	return count, err
}

// HireUpdate carries the fields the hire operation writes. They are
// applied in one transaction so a concurrent hire never observes a
// partially updated worker.
type HireUpdate struct {
	Email      string
	Salary     *uint
	HireDate   *time.Time
	PositionID *string
	Status     model.WorkerStatus
	TeamID     *string
}

func (r *WorkerRepository) UpdateHire(ctx context.Context, id string, upd HireUpdate) (*model.Worker, error) {
	var updated model.Worker

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var worker model.Worker
		if err := tx.First(&worker, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWorkerNotFound
			}
			return err
		}

		res := tx.Model(&model.Worker{}).Where("id = ?", id).
			Select("email", "salary", "hire_date", "position_id", "status", "team_id").
			Updates(map[string]interface{}{
				"email":       upd.Email,
				"salary":      upd.Salary,
				"hire_date":   upd.HireDate,
				"position_id": upd.PositionID,
				"status":      upd.Status,
				"team_id":     upd.TeamID,
			})
		if res.Error != nil {
			return res.Error
		}

		return tx.Preload("Position").Preload("Team").
			First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
