package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Team
		if err := tx.First(&existing, "id = ?", team.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTeamNotFound
			}
			return err
		}

		return tx.Model(&model.Team{}).Where("id = ?", team.ID).
			Select("name", "project_manager_id").
			Updates(map[string]interface{}{
				"name":               team.Name,
				"project_manager_id": team.ProjectManagerID,
			}).Error
	})
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("ProjectManager").
		Preload("ProjectManager.Position").
		Preload("Members").
		First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// NameTaken reports whether another team already uses the name.
// excludeID skips the team being updated.
func (r *TeamRepository) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Team{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// BestTeam is the team whose members completed the most tasks. Found is
// false when no teams exist at all.
type BestTeam struct {
	TeamID    string `json:"team_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Completed int64  `json:"completed"`
	Found     bool   `json:"found"`
}

// FindBestTeam counts completed tasks per team through its members'
// assignments, breaking count ties by team name ascending.
func (r *TeamRepository) FindBestTeam(ctx context.Context) (BestTeam, error) {
	var rows []struct {
		TeamID    string
		Name      string
		Completed int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT teams.id AS team_id, teams.name AS name, COUNT(DISTINCT tasks.id) AS completed
		FROM teams
		LEFT JOIN workers ON workers.team_id = teams.id
		LEFT JOIN task_assignments ON task_assignments.assignee_id = workers.id
		LEFT JOIN tasks ON tasks.id = task_assignments.task_id AND tasks.is_completed = ?
		GROUP BY teams.id, teams.name
		ORDER BY completed DESC, teams.name ASC
		LIMIT 1`, true).Scan(&rows).Error
	if err != nil {
		return BestTeam{}, err
	}

	if len(rows) == 0 {
		return BestTeam{}, nil
	}

	return BestTeam{
		TeamID:    rows[0].TeamID,
		Name:      rows[0].Name,
		Completed: rows[0].Completed,
		Found:     true,
	}, nil
}
