package session

import (
	"context"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"staff-forge.com/staff-forge/internal/query"
)

type RedisStore struct {
	client rueidis.Client
}

func NewRedisStore(client rueidis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SetSession(ctx context.Context, token, workerID string, ttl time.Duration) error {
	cmd := s.client.B().Set().Key(sessionKey(token)).Value(workerID).Ex(ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *RedisStore) GetSession(ctx context.Context, token string) (string, error) {
	cmd := s.client.B().Get().Key(sessionKey(token)).Build()
	result := s.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return result.ToString()
}

func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	cmd := s.client.B().Del().Key(sessionKey(token)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *RedisStore) SortState(ctx context.Context, key string) (query.SortState, bool, error) {
	cmd := s.client.B().Get().Key(sortKey(key)).Build()
	result := s.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return query.SortState{}, false, nil
		}
		return query.SortState{}, false, err
	}

	raw, err := result.ToString()
	if err != nil {
		return query.SortState{}, false, err
	}

	return decodeSortState(raw), true, nil
}

func (s *RedisStore) SetSortState(ctx context.Context, key string, state query.SortState) error {
	cmd := s.client.B().Set().Key(sortKey(key)).Value(encodeSortState(state)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *RedisStore) IncrementVisits(ctx context.Context, key string) (int64, error) {
	cmd := s.client.B().Incr().Key(visitsKey(key)).Build()
	return s.client.Do(ctx, cmd).AsInt64()
}

func sessionKey(token string) string { return "session:" + token }
func sortKey(key string) string      { return "sort:" + key }
func visitsKey(key string) string    { return "visits:" + key }

func encodeSortState(state query.SortState) string {
	direction := "asc"
	if state.Desc {
		direction = "desc"
	}
	return string(state.Key) + "|" + direction
}

func decodeSortState(raw string) query.SortState {
	key, direction, _ := strings.Cut(raw, "|")
	return query.SortState{
		Key:  query.SortKey(key),
		Desc: direction == "desc",
	}
}
