package model

import "testing"

func TestWorkerLabel(t *testing.T) {
	pm := &Worker{
		Username:  "boss",
		Email:     "boss@forge.dev",
		FirstName: "Ada",
		LastName:  "Stone",
		Position:  &Position{Name: "ProjectManager", Role: RoleProjectManager},
	}
	if got := pm.Label(); got != "Projectmanager: `Ada` boss@forge.dev" {
		t.Errorf("unexpected manager label: %q", got)
	}

	dev := &Worker{
		Username:  "dev1",
		FirstName: "Bob",
		LastName:  "Hill",
		Position:  &Position{Name: "Developer", Role: RoleWorker},
	}
	if got := dev.Label(); got != "Worker: Developer (Bob Hill)" {
		t.Errorf("unexpected worker label: %q", got)
	}

	attendant := &Worker{
		Username:  "newbie",
		FirstName: "Cam",
		LastName:  "Reed",
	}
	if got := attendant.Label(); got != "Attendant: newbie (Cam Reed)" {
		t.Errorf("unexpected attendant label: %q", got)
	}
}

func TestRoleForPosition(t *testing.T) {
	if RoleForPosition("ProjectManager") != RoleProjectManager {
		t.Error("exact name should grant the project-manager role")
	}
	// Match is case-sensitive.
	if RoleForPosition("projectmanager") != RoleWorker {
		t.Error("case-insensitive match must not grant the role")
	}
	if RoleForPosition("Developer") != RoleWorker {
		t.Error("other positions get the worker role")
	}
}

func TestWorkerStatusValid(t *testing.T) {
	for _, status := range []WorkerStatus{StatusNotWorker, StatusInTeam, StatusFreeAgent} {
		if !status.Valid() {
			t.Errorf("%d should be valid", status)
		}
	}
	if WorkerStatus(3).Valid() {
		t.Error("out-of-range status should not be valid")
	}
}

func TestTaskPriority(t *testing.T) {
	if !PriorityUrgent.Valid() || PriorityUrgent.Label() != "Urgent" {
		t.Error("urgent priority should be valid with label Urgent")
	}
	if TaskPriority("5").Valid() {
		t.Error("unknown priority should not be valid")
	}
	// Rank values order urgent before low when sorted ascending.
	if !(PriorityUrgent < PriorityLow) {
		t.Error("urgent must sort before low")
	}
}
