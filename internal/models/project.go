package model

import "time"

type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_project_name_manager" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ManagerID   string    `gorm:"size:36;not null;uniqueIndex:idx_project_name_manager" json:"manager"`
	Manager     *Worker   `gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE" json:"-"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Tasks       []Task    `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
