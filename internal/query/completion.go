package query

import (
	apperrors "staff-forge.com/staff-forge/internal/errors"
)

// ParseCompletionFilter turns the "+"/"-" completion condition into a
// tri-state filter: "+" keeps completed tasks, "-" keeps open ones, and
// an empty condition keeps both.
func ParseCompletionFilter(condition string) (*bool, *apperrors.ValidationError) {
	switch condition {
	case "":
		return nil, nil
	case "+":
		v := true
		return &v, nil
	case "-":
		v := false
		return &v, nil
	}
	return nil, apperrors.NewValidation("completed", "Invalid condition. Must be '+' or '-'.")
}
