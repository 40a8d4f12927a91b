package model

import "time"

// TaskAssignment links a worker to a task. AssignedDate is set when the
// row is created and never changes afterwards.
type TaskAssignment struct {
	TaskID       string    `gorm:"primaryKey;size:36" json:"task_id"`
	AssigneeID   string    `gorm:"primaryKey;size:36" json:"assignee_id"`
	AssignedDate time.Time `gorm:"not null" json:"assigned_date"`

	Task     *Task   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Assignee *Worker `gorm:"foreignKey:AssigneeID;constraint:OnDelete:CASCADE" json:"-"`
}
