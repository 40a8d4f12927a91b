package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// WorkerStatus describes a worker's employment state.
type WorkerStatus int

const (
	StatusNotWorker WorkerStatus = 0
	StatusInTeam    WorkerStatus = 1
	StatusFreeAgent WorkerStatus = 2
)

func (s WorkerStatus) Valid() bool {
	switch s {
	case StatusNotWorker, StatusInTeam, StatusFreeAgent:
		return true
	}
	return false
}

func (s WorkerStatus) String() string {
	switch s {
	case StatusInTeam:
		return "In team"
	case StatusFreeAgent:
		return "Free agent"
	default:
		return "Not a worker"
	}
}

type Worker struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Username     string       `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName    string       `gorm:"size:150" json:"first_name"`
	LastName     string       `gorm:"size:150" json:"last_name"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	IsSuperuser  bool         `gorm:"not null;default:false" json:"is_superuser"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	Salary       *uint        `json:"salary,omitempty"`
	About        string       `gorm:"type:text" json:"about,omitempty"`
	HireDate     *time.Time   `json:"hire_date,omitempty"`
	PositionID   *string      `gorm:"size:36" json:"position,omitempty"`
	Position     *Position    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Status       WorkerStatus `gorm:"not null;default:0" json:"status"`
	TeamID       *string      `gorm:"size:36" json:"team,omitempty"`
	Team         *Team        `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Assignments []TaskAssignment `gorm:"foreignKey:AssigneeID" json:"-"`
}

// Label renders the worker's display string. The format depends on
// whether the worker holds the project-manager position, some other
// position, or none at all.
func (w *Worker) Label() string {
	switch {
	case w.Position != nil && w.Position.Role == RoleProjectManager:
		return fmt.Sprintf("%s: `%s` %s", capitalize(w.Position.Name), w.FirstName, w.Email)
	case w.Position != nil:
		return fmt.Sprintf("Worker: %s (%s %s)", w.Position.Name, w.FirstName, w.LastName)
	default:
		return fmt.Sprintf("Attendant: %s (%s %s)", w.Username, w.FirstName, w.LastName)
	}
}

// capitalize upper-cases the first rune and lower-cases the rest,
// so "ProjectManager" renders as "Projectmanager".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
