package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Project
		if err := tx.First(&existing, "id = ?", project.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrProjectNotFound
			}
			return err
		}

		return tx.Model(&model.Project{}).Where("id = ?", project.ID).
			Select("name", "description", "manager_id", "start_date", "deadline").
			Updates(map[string]interface{}{
				"name":        project.Name,
				"description": project.Description,
				"manager_id":  project.ManagerID,
				"start_date":  project.StartDate,
				"deadline":    project.Deadline,
			}).Error
	})
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Manager.Position").
		Preload("Tasks").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) FindByNameAndManager(ctx context.Context, name, managerID string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		First(&project, "name = ? AND manager_id = ?", name, managerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// PairTaken reports whether another project already uses the
// (name, manager) pair.
func (r *ProjectRepository) PairTaken(ctx context.Context, name, managerID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("name = ? AND manager_id = ?", name, managerID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// List returns projects ordered by name. A non-empty managerID restricts
// the listing to that manager's projects.
func (r *ProjectRepository) List(ctx context.Context, managerID string) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{})
	if managerID != "" {
		q = q.Where("manager_id = ?", managerID)
	}

	var projects []model.Project
	err := q.Order("name asc").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Complete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("is_completed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}
