// Package rules holds the pre-save business checks. Every function is a
// pure predicate over proposed field values plus already-resolved
// reference data; callers load whatever entities a rule needs and feed
// the answer in.
package rules

import (
	"time"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
)

const msgManagerRole = "Manager must have position of ProjectManager."

// Original wording kept as-is, including the swapped-sounding message on
// the in-team branch.
const (
	msgInTeamWithoutTeam = "Worker in a team can't be a 'free agent'"
	msgFreeAgentWithTeam = "Free agent can't belong to a team."
)

// CheckManagerRole rejects a worker assigned as a team or project
// manager unless they hold the project-manager position.
func CheckManagerRole(field string, manager *model.Worker) *apperrors.ValidationError {
	if manager == nil || manager.Position == nil || manager.Position.Role != model.RoleProjectManager {
		return apperrors.NewValidation(field, msgManagerRole)
	}
	return nil
}

// CheckWorkerStatus enforces the status/team consistency rule on hire
// and update: in-team requires a team, free agent forbids one.
func CheckWorkerStatus(status model.WorkerStatus, teamID *string) *apperrors.ValidationError {
	if status == model.StatusInTeam && teamID == nil {
		return apperrors.NewValidation("team", msgInTeamWithoutTeam)
	}
	if status == model.StatusFreeAgent && teamID != nil {
		return apperrors.NewValidation("team", msgFreeAgentWithTeam)
	}
	return nil
}

// CheckDateNotPast rejects a date strictly before today. Today itself is
// accepted. Comparison is by civil date, not instant.
func CheckDateNotPast(field string, value, today time.Time) *apperrors.ValidationError {
	if Date(value).Before(Date(today)) {
		return apperrors.NewValidation(field, "Ensure this date is not earlier than today.")
	}
	return nil
}

// CheckUniqueName rejects a name the repository already knows.
func CheckUniqueName(field, kind string, taken bool) *apperrors.ValidationError {
	if taken {
		return apperrors.NewValidation(field, "A "+kind+" with that name already exists.")
	}
	return nil
}

// CheckProjectUnique rejects a (name, manager) pair that already exists.
func CheckProjectUnique(taken bool) *apperrors.ValidationError {
	if taken {
		return apperrors.NewValidation("name", "A project with that name and manager already exists.")
	}
	return nil
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current civil date.
func Today() time.Time {
	return Date(time.Now().UTC())
}
