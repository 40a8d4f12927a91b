// Package session keeps the per-session state the application needs
// between requests: auth tokens, each session's remembered task sort
// order, and the visit counter shown on the index page.
package session

import (
	"context"
	"errors"
	"time"

	"staff-forge.com/staff-forge/internal/query"
)

var ErrSessionNotFound = errors.New("session not found")

type Store interface {
	// SetSession binds an auth token to a worker id for ttl.
	SetSession(ctx context.Context, token, workerID string, ttl time.Duration) error

	// GetSession resolves a token to a worker id, or ErrSessionNotFound.
	GetSession(ctx context.Context, token string) (string, error)

	DeleteSession(ctx context.Context, token string) error

	// SortState returns the session's remembered task sort order; the
	// bool reports whether one was stored.
	SortState(ctx context.Context, sessionKey string) (query.SortState, bool, error)

	SetSortState(ctx context.Context, sessionKey string, state query.SortState) error

	// IncrementVisits bumps and returns the session's visit counter.
	IncrementVisits(ctx context.Context, sessionKey string) (int64, error)
}
