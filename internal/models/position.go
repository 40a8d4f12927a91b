package model

// Role is the access role a position grants. It replaces comparing
// position names directly: the role is fixed when the position is created
// and every privilege or manager check reads it instead of the name.
type Role string

const (
	RoleWorker         Role = "worker"
	RoleProjectManager Role = "project_manager"
)

// ProjectManagerPosition is the position name that grants the
// project-manager role. The match is exact and case-sensitive.
const ProjectManagerPosition = "ProjectManager"

func RoleForPosition(name string) Role {
	if name == ProjectManagerPosition {
		return RoleProjectManager
	}
	return RoleWorker
}

type Position struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:127;uniqueIndex;not null" json:"name"`
	Role Role   `gorm:"type:varchar(20);not null" json:"role"`
}
