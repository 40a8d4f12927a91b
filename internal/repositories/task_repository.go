package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Tag").
		Preload("Project").
		Preload("Assignments").
		Preload("Assignments.Assignee").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List returns open tasks: those with no project or whose project is not
// completed. Filters and ordering come from the query options; the
// default order is priority rank ascending, so urgent tasks come first.
func (r *TaskRepository) List(ctx context.Context, filter query.TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Preload("Tag").
		Joins("JOIN task_types ON task_types.id = tasks.tag_id").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.project_id IS NULL OR projects.is_completed = ?", false)

	if filter.TitleContains != "" {
		pattern := "%" + strings.ToLower(filter.TitleContains) + "%"
		q = q.Where("LOWER(tasks.title) LIKE ?", pattern)
	}

	if filter.Completed != nil {
		q = q.Where("tasks.is_completed = ?", *filter.Completed)
	}

	if filter.AssigneeID != "" {
		q = q.Joins(
			"JOIN task_assignments ON task_assignments.task_id = tasks.id AND task_assignments.assignee_id = ?",
			filter.AssigneeID,
		)
	}

	var tasks []model.Task
	err := q.Order(orderClause(filter.Sort)).Find(&tasks).Error
	return tasks, err
}

func orderClause(sort query.SortState) string {
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}

	switch sort.Key {
	case query.SortTitle:
		return "LOWER(tasks.title) " + direction
	case query.SortDeadline:
		return "tasks.deadline " + direction
	case query.SortPriority:
		return "tasks.priority " + direction
	case query.SortTag:
		return "LOWER(task_types.name) " + direction
	}
	return "tasks.priority ASC"
}

func (r *TaskRepository) Complete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("is_completed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// Assign links a worker to a task. The assignment date is written once
// here and never updated afterwards.
func (r *TaskRepository) Assign(ctx context.Context, taskID, workerID string) (*model.TaskAssignment, error) {
	assignment := &model.TaskAssignment{
		TaskID:       taskID,
		AssigneeID:   workerID,
		AssignedDate: todayUTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TaskAssignment{}).
			Where("task_id = ? AND assignee_id = ?", taskID, workerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrAlreadyAssigned
		}
		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}
