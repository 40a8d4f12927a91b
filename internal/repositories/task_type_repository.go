package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
)

type TaskTypeRepository struct {
	db *gorm.DB
}

func NewTaskTypeRepository(db *gorm.DB) *TaskTypeRepository {
	return &TaskTypeRepository{db: db}
}

func (r *TaskTypeRepository) Create(ctx context.Context, name string) (*model.TaskType, error) {
	taskType := &model.TaskType{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := r.db.WithContext(ctx).Create(taskType).Error; err != nil {
		return nil, err
	}
	return taskType, nil
}

func (r *TaskTypeRepository) FindByID(ctx context.Context, id string) (*model.TaskType, error) {
	var taskType model.TaskType
	err := r.db.WithContext(ctx).First(&taskType, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskTypeNotFound
		}
		return nil, err
	}
	return &taskType, nil
}

// Delete removes the task type together with its tasks and their
// assignments.
func (r *TaskTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskType model.TaskType
		if err := tx.First(&taskType, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskTypeNotFound
			}
			return err
		}

		if err := tx.
			Where("task_id IN (?)", tx.Model(&model.Task{}).Select("id").Where("tag_id = ?", id)).
			Delete(&model.TaskAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.Task{}, "tag_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&model.TaskType{}, "id = ?", id).Error
	})
}
