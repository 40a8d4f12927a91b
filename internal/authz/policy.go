package authz

import (
	model "staff-forge.com/staff-forge/internal/models"
)

// CurrentUser is the resolved caller of a request. The zero value is an
// anonymous caller, so the policy below is total: it never needs to
// distinguish "no user" from "user without privilege" by panicking.
type CurrentUser struct {
	Authenticated bool   `json:"authenticated"`
	WorkerID      string `json:"worker_id,omitempty"`
	IsActive      bool   `json:"-"`
	IsSuperuser   bool   `json:"-"`
	Role          model.Role
}

func Anonymous() CurrentUser {
	return CurrentUser{}
}

func ForWorker(w *model.Worker) CurrentUser {
	cu := CurrentUser{
		Authenticated: true,
		WorkerID:      w.ID,
		IsActive:      w.IsActive,
		IsSuperuser:   w.IsSuperuser,
	}
	if w.Position != nil {
		cu.Role = w.Position.Role
	}
	return cu
}

// IsPrivileged reports whether the caller may perform manager-level
// operations: team and project mutations, worker hire, and the "all
// tasks" listing. True for an active superuser or an active worker
// holding the project-manager role, false for everyone else including
// anonymous callers.
func IsPrivileged(u CurrentUser) bool {
	if !u.Authenticated || !u.IsActive {
		return false
	}
	return u.IsSuperuser || u.Role == model.RoleProjectManager
}
