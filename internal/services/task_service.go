package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/rules"
	"staff-forge.com/staff-forge/internal/session"
)

type TaskService struct {
	tasks     *repository.TaskRepository
	taskTypes *repository.TaskTypeRepository
	projects  *repository.ProjectRepository
	workers   *repository.WorkerRepository
	store     session.Store
}

func NewTaskService(
	tasks *repository.TaskRepository,
	taskTypes *repository.TaskTypeRepository,
	projects *repository.ProjectRepository,
	workers *repository.WorkerRepository,
	store session.Store,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		taskTypes: taskTypes,
		projects:  projects,
		workers:   workers,
		store:     store,
	}
}

type TaskInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Priority    model.TaskPriority
	TagID       string
	ProjectID   *string
}

func (s *TaskService) Create(ctx context.Context, cu authz.CurrentUser, in TaskInput) (*model.Task, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}

	if _, err := s.taskTypes.FindByID(ctx, in.TagID); err != nil {
		return nil, err
	}
	if in.ProjectID != nil {
		if _, err := s.projects.FindByID(ctx, *in.ProjectID); err != nil {
			return nil, err
		}
	}

	var verr *apperrors.ValidationError
	if in.Title == "" {
		verr = apperrors.Append(verr, "title", "This field is required.")
	}
	if in.Description == "" {
		verr = apperrors.Append(verr, "description", "This field is required.")
	}
	if !in.Priority.Valid() {
		verr = apperrors.Append(verr, "priority", "Select a valid choice.")
	}
	verr = apperrors.Merge(verr, rules.CheckDateNotPast("deadline", in.Deadline, rules.Today()))
	if verr != nil {
		return nil, verr
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Deadline:    rules.Date(in.Deadline),
		Priority:    in.Priority,
		TagID:       in.TagID,
		ProjectID:   in.ProjectID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ListOptions are the task listing parameters a request carries. Sort is
// the key the caller clicked, if any; the effective state comes from
// toggling it against what the session remembers.
type ListOptions struct {
	SessionKey          string
	TitleContains       string
	CompletionCondition string
	Sort                query.SortKey
}

func (s *TaskService) List(ctx context.Context, cu authz.CurrentUser, opts ListOptions) ([]model.Task, query.SortState, error) {
	if err := requireLogin(cu); err != nil {
		return nil, query.SortState{}, err
	}

	completed, verr := query.ParseCompletionFilter(opts.CompletionCondition)
	if verr != nil {
		return nil, query.SortState{}, verr
	}

	state, _, err := s.store.SortState(ctx, opts.SessionKey)
	if err != nil {
		return nil, query.SortState{}, err
	}

	if opts.Sort != query.SortNone {
		if !opts.Sort.Valid() {
			return nil, query.SortState{}, apperrors.NewValidation("sort", "Invalid sort key.")
		}
		state = query.Toggle(state, opts.Sort)
		if err := s.store.SetSortState(ctx, opts.SessionKey, state); err != nil {
			return nil, query.SortState{}, err
		}
	}

	filter := query.TaskFilter{
		TitleContains: opts.TitleContains,
		Completed:     completed,
		Sort:          state,
	}

	// Non-privileged callers only see their own tasks.
	if !authz.IsPrivileged(cu) {
		filter.AssigneeID = cu.WorkerID
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, query.SortState{}, err
	}

	return tasks, state, nil
}

func (s *TaskService) Detail(ctx context.Context, cu authz.CurrentUser, id string) (*model.Task, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) Complete(ctx context.Context, cu authz.CurrentUser, id string) error {
	if err := requireLogin(cu); err != nil {
		return err
	}
	return s.tasks.Complete(ctx, id)
}

func (s *TaskService) Assign(ctx context.Context, cu authz.CurrentUser, taskID, workerID string) (*model.TaskAssignment, error) {
	if err := requireLogin(cu); err != nil {
		return nil, err
	}

	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	if _, err := s.workers.FindByID(ctx, workerID); err != nil {
		return nil, err
	}

	return s.tasks.Assign(ctx, taskID, workerID)
}
