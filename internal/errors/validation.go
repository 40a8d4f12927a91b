package errors

import (
	"sort"
	"strings"
)

// ValidationError carries field → message pairs for a rejected request.
// The request is never applied when one of these is returned.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
	return e
}

// Append adds a field rejection, allocating the error when e is nil so
// callers can accumulate rejections without checking first.
func Append(e *ValidationError, field, message string) *ValidationError {
	if e == nil {
		return NewValidation(field, message)
	}
	return e.Add(field, message)
}

// Merge folds another validation error into this one. Either side may
// be nil; the merged result is nil only when both are.
func Merge(a, b *ValidationError) *ValidationError {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	for field, message := range b.Fields {
		a.Add(field, message)
	}
	return a
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return strings.Join(parts, "; ")
}
