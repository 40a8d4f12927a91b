package services

import (
	"context"

	"staff-forge.com/staff-forge/internal/authz"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/session"
)

type StatsService struct {
	workers *repository.WorkerRepository
	teams   *repository.TeamRepository
	store   session.Store
}

func NewStatsService(
	workers *repository.WorkerRepository,
	teams *repository.TeamRepository,
	store session.Store,
) *StatsService {
	return &StatsService{
		workers: workers,
		teams:   teams,
		store:   store,
	}
}

type IndexStats struct {
	NumWorkers int64 `json:"num_workers"`
	NumVisits  int64 `json:"num_visits"`
}

// Index returns the home page numbers, bumping this session's visit
// counter as a side effect.
func (s *StatsService) Index(ctx context.Context, cu authz.CurrentUser, sessionKey string) (*IndexStats, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}

	numWorkers, err := s.workers.Count(ctx)
	if err != nil {
		return nil, err
	}

	visits, err := s.store.IncrementVisits(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	return &IndexStats{
		NumWorkers: numWorkers,
		NumVisits:  visits,
	}, nil
}

// BestTeam reports the team with the most completed tasks. With no teams
// in the system it returns the empty sentinel, not an error.
func (s *StatsService) BestTeam(ctx context.Context, cu authz.CurrentUser) (repository.BestTeam, error) {
	if err := requireLogin(cu); err != nil {
		return repository.BestTeam{}, err
	}
	return s.teams.FindBestTeam(ctx)
}
