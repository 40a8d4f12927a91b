package model

type Team struct {
	ID               string   `gorm:"primaryKey;size:36" json:"id"`
	Name             string   `gorm:"size:110;uniqueIndex;not null" json:"name"`
	ProjectManagerID string   `gorm:"size:36;not null" json:"project_manager"`
	ProjectManager   *Worker  `gorm:"foreignKey:ProjectManagerID;constraint:OnDelete:CASCADE" json:"-"`
	Members          []Worker `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}
