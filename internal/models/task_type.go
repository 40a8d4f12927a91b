package model

// TaskType is the tag vocabulary for tasks.
type TaskType struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}
