// Package query defines the listing options the repositories execute:
// filters, sort keys, and the sort-toggle state machine. Toggle state is
// explicit — the caller passes the last state in and stores the result —
// so the behavior is pure and testable.
package query

type SortKey string

const (
	SortNone     SortKey = ""
	SortTitle    SortKey = "title"
	SortDeadline SortKey = "deadline"
	SortPriority SortKey = "priority"
	SortTag      SortKey = "tag"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortTitle, SortDeadline, SortPriority, SortTag:
		return true
	}
	return false
}

type SortState struct {
	Key  SortKey `json:"key"`
	Desc bool    `json:"desc"`
}

// Toggle computes the next sort state: requesting the key already in
// effect flips the direction, requesting a different key resets to
// ascending.
func Toggle(last SortState, requested SortKey) SortState {
	if last.Key == requested {
		return SortState{Key: requested, Desc: !last.Desc}
	}
	return SortState{Key: requested}
}

type TaskFilter struct {
	// TitleContains matches the task title case-insensitively.
	TitleContains string
	// Completed filters on the task's own completion flag; nil keeps
	// both completed and open tasks.
	Completed *bool
	// AssigneeID restricts the listing to one worker's tasks. Empty
	// means no restriction.
	AssigneeID string
	Sort       SortState
}

type WorkerFilter struct {
	// FirstNameContains matches case-insensitively.
	FirstNameContains string
}
