package model

import "time"

// TaskPriority keeps the original single-character choice values so
// that ordering by the column yields Urgent first.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "1"
	PriorityHigh   TaskPriority = "2"
	PriorityMedium TaskPriority = "3"
	PriorityLow    TaskPriority = "4"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (p TaskPriority) Label() string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return "Unknown"
}

type Task struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Deadline    time.Time    `gorm:"not null" json:"deadline"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	Priority    TaskPriority `gorm:"type:varchar(1);not null" json:"priority"`
	TagID       string       `gorm:"size:36;not null" json:"tag"`
	Tag         *TaskType    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
	ProjectID   *string      `gorm:"size:36" json:"project,omitempty"`
	Project     *Project     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`

	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
