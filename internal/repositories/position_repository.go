package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// Create stores a position; its role is fixed from the name here.
func (r *PositionRepository) Create(ctx context.Context, name string) (*model.Position, error) {
	position := &model.Position{
		ID:   uuid.NewString(),
		Name: name,
		Role: model.RoleForPosition(name),
	}

	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return nil, err
	}
	return position, nil
}

func (r *PositionRepository) FindByID(ctx context.Context, id string) (*model.Position, error) {
	var position model.Position
	err := r.db.WithContext(ctx).First(&position, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPositionNotFound
		}
		return nil, err
	}
	return &position, nil
}

func (r *PositionRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Position{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Delete removes the position and nulls out the position of every
// worker that held it; there is no cascade delete of workers.
func (r *PositionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var position model.Position
		if err := tx.First(&position, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPositionNotFound
			}
			return err
		}

		if err := tx.Model(&model.Worker{}).
			Where("position_id = ?", id).
			Update("position_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Position{}, "id = ?", id).Error
	})
}
