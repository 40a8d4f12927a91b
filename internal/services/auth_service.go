package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/session"
)

type AuthService struct {
	workers    *repository.WorkerRepository
	store      session.Store
	sessionTTL time.Duration
}

func NewAuthService(workers *repository.WorkerRepository, store session.Store, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		workers:    workers,
		store:      store,
		sessionTTL: sessionTTL,
	}
}

// RegisterInput carries the open registration fields. Hire-related
// fields (hire date, position, status, team) are deliberately absent;
// they are set later through the privileged hire operation.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Salary    *uint
	About     string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Worker, error) {
	var verr *apperrors.ValidationError

	if in.Username == "" {
		verr = apperrors.Append(verr, "username", "This field is required.")
	}
	if in.Email == "" {
		verr = apperrors.Append(verr, "email", "This field is required.")
	}
	if in.Password == "" {
		verr = apperrors.Append(verr, "password", "This field is required.")
	}

	if in.Username != "" {
		taken, err := s.workers.UsernameTaken(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			verr = apperrors.Append(verr, "username", "A worker with that username already exists.")
		}
	}
	if in.Email != "" {
		taken, err := s.workers.EmailTaken(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			verr = apperrors.Append(verr, "email", "A worker with that email already exists.")
		}
	}

	if verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	worker := &model.Worker{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		Salary:       in.Salary,
		About:        in.About,
		Status:       model.StatusNotWorker,
	}

	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, err
	}

	return worker, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	worker, err := s.workers.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrWorkerNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}

	if !worker.IsActive {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.store.SetSession(ctx, token, worker.ID, s.sessionTTL); err != nil {
		return "", err
	}

	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// Resolve maps a session token to the current user. It never fails:
// a missing, expired, or unreadable session resolves to Anonymous.
func (s *AuthService) Resolve(ctx context.Context, token string) authz.CurrentUser {
	if token == "" {
		return authz.Anonymous()
	}

	workerID, err := s.store.GetSession(ctx, token)
	if err != nil {
		return authz.Anonymous()
	}

	worker, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		return authz.Anonymous()
	}

	return authz.ForWorker(worker)
}
