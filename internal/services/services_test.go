package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/rules"
	"staff-forge.com/staff-forge/internal/session"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Named per test so shared-cache in-memory databases stay isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Position{},
		&model.Team{},
		&model.Worker{},
		&model.TaskType{},
		&model.Project{},
		&model.Task{},
		&model.TaskAssignment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type testEnv struct {
	db       *gorm.DB
	store    *session.MemoryStore
	auth     *AuthService
	workers  *WorkerService
	teams    *TeamService
	projects *ProjectService
	tasks    *TaskService
	stats    *StatsService
	vocab    *VocabService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	store := session.NewMemoryStore()

	workerRepo := repository.NewWorkerRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	taskTypeRepo := repository.NewTaskTypeRepository(db)

	return &testEnv{
		db:       db,
		store:    store,
		auth:     NewAuthService(workerRepo, store, time.Hour),
		workers:  NewWorkerService(workerRepo, positionRepo, teamRepo),
		teams:    NewTeamService(teamRepo, workerRepo),
		projects: NewProjectService(projectRepo, workerRepo),
		tasks:    NewTaskService(taskRepo, taskTypeRepo, projectRepo, workerRepo, store),
		stats:    NewStatsService(workerRepo, teamRepo, store),
		vocab:    NewVocabService(positionRepo, taskTypeRepo),
	}
}

func seedPosition(t *testing.T, db *gorm.DB, name string) *model.Position {
	t.Helper()
	position := &model.Position{
		ID:   uuid.NewString(),
		Name: name,
		Role: model.RoleForPosition(name),
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("failed to seed position %s: %v", name, err)
	}
	return position
}

func seedWorker(t *testing.T, db *gorm.DB, username string, position *model.Position) *model.Worker {
	t.Helper()
	worker := &model.Worker{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@forge.dev",
		FirstName:    "First" + username,
		LastName:     "Last" + username,
		PasswordHash: "x",
		IsActive:     true,
	}
	if position != nil {
		worker.PositionID = &position.ID
		worker.Position = position
	}
	if err := db.Create(worker).Error; err != nil {
		t.Fatalf("failed to seed worker %s: %v", username, err)
	}
	return worker
}

func seedTeam(t *testing.T, db *gorm.DB, name string, manager *model.Worker) *model.Team {
	t.Helper()
	team := &model.Team{
		ID:               uuid.NewString(),
		Name:             name,
		ProjectManagerID: manager.ID,
	}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to seed team %s: %v", name, err)
	}
	return team
}

func seedTaskType(t *testing.T, db *gorm.DB, name string) *model.TaskType {
	t.Helper()
	taskType := &model.TaskType{ID: uuid.NewString(), Name: name}
	if err := db.Create(taskType).Error; err != nil {
		t.Fatalf("failed to seed task type %s: %v", name, err)
	}
	return taskType
}

func seedTask(t *testing.T, db *gorm.DB, title string, tag *model.TaskType, project *model.Project, completed bool) *model.Task {
	t.Helper()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: "desc",
		Deadline:    rules.Today().AddDate(0, 0, 7),
		IsCompleted: completed,
		Priority:    model.PriorityMedium,
		TagID:       tag.ID,
	}
	if project != nil {
		task.ProjectID = &project.ID
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task %s: %v", title, err)
	}
	return task
}

func seedAssignment(t *testing.T, db *gorm.DB, task *model.Task, worker *model.Worker) {
	t.Helper()
	assignment := &model.TaskAssignment{
		TaskID:       task.ID,
		AssigneeID:   worker.ID,
		AssignedDate: rules.Today(),
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
}

func superuser(id string) authz.CurrentUser {
	return authz.CurrentUser{Authenticated: true, WorkerID: id, IsActive: true, IsSuperuser: true}
}

func plainUser(id string) authz.CurrentUser {
	return authz.CurrentUser{Authenticated: true, WorkerID: id, IsActive: true, Role: model.RoleWorker}
}

func managerUser(id string) authz.CurrentUser {
	return authz.CurrentUser{Authenticated: true, WorkerID: id, IsActive: true, Role: model.RoleProjectManager}
}

func uptr(v uint) *uint { return &v }

func asValidation(t *testing.T, err error) *apperrors.ValidationError {
	t.Helper()
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	worker, err := env.auth.Register(ctx, RegisterInput{
		Username: "ada",
		Email:    "ada@forge.dev",
		Password: "secret12345",
		Salary:   uptr(4200),
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if worker.Status != model.StatusNotWorker {
		t.Errorf("new registrations start as not-a-worker, got %d", worker.Status)
	}

	token, err := env.auth.Login(ctx, "ada", "secret12345")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	cu := env.auth.Resolve(ctx, token)
	if !cu.Authenticated || cu.WorkerID != worker.ID {
		t.Errorf("token should resolve to the registered worker, got %+v", cu)
	}

	if _, err := env.auth.Login(ctx, "ada", "wrong"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password should be rejected, got %v", err)
	}

	if err := env.auth.Logout(ctx, token); err != nil {
		t.Fatalf("failed to logout: %v", err)
	}
	if cu := env.auth.Resolve(ctx, token); cu.Authenticated {
		t.Error("token should be anonymous after logout")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Register(ctx, RegisterInput{Username: "ada", Email: "ada@forge.dev", Password: "pw1234"}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err := env.auth.Register(ctx, RegisterInput{Username: "ada2", Email: "ada@forge.dev", Password: "pw1234"})
	verr := asValidation(t, err)
	if verr.Fields["email"] == "" {
		t.Errorf("expected email rejection, got %v", verr.Fields)
	}
}

func TestAuthService_ResolveUnknownTokenIsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	cu := env.auth.Resolve(context.Background(), "no-such-token")
	if cu.Authenticated {
		t.Error("unknown token should resolve to anonymous")
	}
	if authz.IsPrivileged(cu) {
		t.Error("anonymous caller must not be privileged")
	}
}

func TestWorkerService_HireRequiresPrivilege(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	worker := seedWorker(t, env.db, "bob", nil)

	_, err := env.workers.Hire(ctx, plainUser(worker.ID), worker.ID, HireInput{
		Email:  "bob@forge.dev",
		Status: model.StatusFreeAgent,
	})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("plain worker should be rejected, got %v", err)
	}

	_, err = env.workers.Hire(ctx, authz.Anonymous(), worker.ID, HireInput{
		Email:  "bob@forge.dev",
		Status: model.StatusFreeAgent,
	})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("anonymous caller should be rejected, got %v", err)
	}
}

func TestWorkerService_HireStatusTeamConsistency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	team := seedTeam(t, env.db, "Alpha", manager)
	worker := seedWorker(t, env.db, "bob", nil)
	admin := superuser(manager.ID)

	_, err := env.workers.Hire(ctx, admin, worker.ID, HireInput{
		Email:  "bob@forge.dev",
		Status: model.StatusInTeam,
	})
	verr := asValidation(t, err)
	if verr.Fields["team"] != "Worker in a team can't be a 'free agent'" {
		t.Errorf("unexpected message: %q", verr.Fields["team"])
	}

	_, err = env.workers.Hire(ctx, admin, worker.ID, HireInput{
		Email:  "bob@forge.dev",
		Status: model.StatusFreeAgent,
		TeamID: &team.ID,
	})
	if _, ok := asValidation(t, err).Fields["team"]; !ok {
		t.Error("free agent with a team should be rejected on the team field")
	}

	hired, err := env.workers.Hire(ctx, admin, worker.ID, HireInput{
		Email:    "bob@forge.dev",
		Salary:   uptr(5000),
		Status:   model.StatusInTeam,
		TeamID:   &team.ID,
		HireDate: func() *time.Time { d := rules.Today(); return &d }(),
	})
	if err != nil {
		t.Fatalf("valid hire should succeed, got %v", err)
	}
	if hired.Status != model.StatusInTeam || hired.TeamID == nil || *hired.TeamID != team.ID {
		t.Errorf("team and status must be persisted together, got status=%d team=%v", hired.Status, hired.TeamID)
	}
	if hired.Salary == nil || *hired.Salary != 5000 {
		t.Errorf("salary should be persisted, got %v", hired.Salary)
	}
}

func TestWorkerService_HireNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workers.Hire(context.Background(), superuser("admin"), "missing", HireInput{
		Email:  "x@forge.dev",
		Status: model.StatusFreeAgent,
	})
	if !errors.Is(err, apperrors.ErrWorkerNotFound) {
		t.Errorf("expected worker not found, got %v", err)
	}
}

func TestWorkerService_ConcurrentHiresDoNotInterleave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	worker := seedWorker(t, env.db, "bob", nil)
	admin := superuser("admin")

	inputs := []HireInput{
		{Email: "first@forge.dev", Salary: uptr(1000), Status: model.StatusFreeAgent},
		{Email: "second@forge.dev", Salary: uptr(2000), Status: model.StatusFreeAgent},
	}

	var wg sync.WaitGroup
	wg.Add(len(inputs))
	for _, in := range inputs {
		go func(in HireInput) {
			defer wg.Done()
			if _, err := env.workers.Hire(ctx, admin, worker.ID, in); err != nil {
				t.Errorf("hire failed: %v", err)
			}
		}(in)
	}
	wg.Wait()

	detail, err := env.workers.Detail(ctx, admin, worker.ID)
	if err != nil {
		t.Fatalf("failed to load worker: %v", err)
	}

	final := detail.Worker
	matches := false
	for _, in := range inputs {
		if final.Email == in.Email && final.Salary != nil && *final.Salary == *in.Salary {
			matches = true
		}
	}
	if !matches {
		t.Errorf("final state mixes two hires: email=%s salary=%v", final.Email, final.Salary)
	}
}

func TestWorkerService_ListExcludesProjectManagers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	devPosition := seedPosition(t, env.db, "Developer")
	seedWorker(t, env.db, "boss", pmPosition)
	dev := seedWorker(t, env.db, "bob", devPosition)
	seedWorker(t, env.db, "carl", nil)

	workers, err := env.workers.List(ctx, plainUser(dev.ID), query.WorkerFilter{})
	if err != nil {
		t.Fatalf("failed to list workers: %v", err)
	}
	if len(workers) != 2 {
		t.Fatalf("expected 2 workers (managers excluded), got %d", len(workers))
	}
	for _, w := range workers {
		if w.Username == "boss" {
			t.Error("project manager must not appear in the worker listing")
		}
	}

	workers, err = env.workers.List(ctx, plainUser(dev.ID), query.WorkerFilter{FirstNameContains: "firstBO"})
	if err != nil {
		t.Fatalf("failed to filter workers: %v", err)
	}
	if len(workers) != 1 || workers[0].Username != "bob" {
		t.Errorf("case-insensitive first-name filter should match bob, got %d", len(workers))
	}
}

func TestTeamService_ManagerMustBeProjectManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	devPosition := seedPosition(t, env.db, "Developer")
	dev := seedWorker(t, env.db, "bob", devPosition)
	admin := superuser("admin")

	_, err := env.teams.Create(ctx, admin, TeamInput{Name: "Alpha", ProjectManagerID: dev.ID})
	verr := asValidation(t, err)
	if verr.Fields["project_manager"] != "Manager must have position of ProjectManager." {
		t.Errorf("unexpected message: %q", verr.Fields["project_manager"])
	}

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)

	team, err := env.teams.Create(ctx, admin, TeamInput{Name: "Alpha", ProjectManagerID: manager.ID})
	if err != nil {
		t.Fatalf("valid team should be created, got %v", err)
	}
	if team.ProjectManagerID != manager.ID {
		t.Errorf("team manager mismatch: %s", team.ProjectManagerID)
	}

	_, err = env.teams.Create(ctx, admin, TeamInput{Name: "Alpha", ProjectManagerID: manager.ID})
	if _, ok := asValidation(t, err).Fields["name"]; !ok {
		t.Error("duplicate team name should be rejected on the name field")
	}
}

func TestTeamService_CreateRequiresPrivilege(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	worker := seedWorker(t, env.db, "bob", nil)

	_, err := env.teams.Create(ctx, plainUser(worker.ID), TeamInput{Name: "Alpha", ProjectManagerID: manager.ID})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("non-privileged caller should be rejected, got %v", err)
	}

	var count int64
	env.db.Model(&model.Team{}).Count(&count)
	if count != 0 {
		t.Errorf("no team row should exist after an authorization error, got %d", count)
	}
}

func TestProjectService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	admin := superuser("admin")
	today := rules.Today()

	project, err := env.projects.Create(ctx, admin, ProjectInput{
		Name:        "Launch",
		Description: "Ship it",
		ManagerID:   manager.ID,
		StartDate:   today,
		Deadline:    today.AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("valid project should be created, got %v", err)
	}

	found, err := env.projects.projects.FindByNameAndManager(ctx, "Launch", manager.ID)
	if err != nil {
		t.Fatalf("project should be retrievable by (name, manager): %v", err)
	}
	if found.ID != project.ID {
		t.Errorf("retrieved project mismatch: %s vs %s", found.ID, project.ID)
	}

	// Same pair again.
	_, err = env.projects.Create(ctx, admin, ProjectInput{
		Name:        "Launch",
		Description: "Again",
		ManagerID:   manager.ID,
		StartDate:   today,
		Deadline:    today.AddDate(0, 0, 30),
	})
	if _, ok := asValidation(t, err).Fields["name"]; !ok {
		t.Error("duplicate (name, manager) should be rejected")
	}

	// Yesterday's deadline.
	_, err = env.projects.Create(ctx, admin, ProjectInput{
		Name:        "Late",
		Description: "Too late",
		ManagerID:   manager.ID,
		StartDate:   today,
		Deadline:    today.AddDate(0, 0, -1),
	})
	if _, ok := asValidation(t, err).Fields["deadline"]; !ok {
		t.Error("past deadline should be rejected")
	}

	// Manager without the project-manager position.
	dev := seedWorker(t, env.db, "bob", nil)
	_, err = env.projects.Create(ctx, admin, ProjectInput{
		Name:        "Side",
		Description: "Side work",
		ManagerID:   dev.ID,
		StartDate:   today,
		Deadline:    today.AddDate(0, 0, 10),
	})
	if asValidation(t, err).Fields["manager"] != "Manager must have position of ProjectManager." {
		t.Error("non-manager should be rejected with the manager-role message")
	}

	var count int64
	env.db.Model(&model.Project{}).Count(&count)
	if count != 1 {
		t.Errorf("rejected projects must not be stored, got %d rows", count)
	}
}

// Pins the historical asymmetry: privileged managers see only their own
// projects while everyone else sees all of them.
func TestProjectService_ListAsymmetry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	managerA := seedWorker(t, env.db, "bossa", pmPosition)
	managerB := seedWorker(t, env.db, "bossb", pmPosition)
	worker := seedWorker(t, env.db, "bob", nil)
	admin := superuser("admin")
	today := rules.Today()

	for i, m := range []*model.Worker{managerA, managerB} {
		_, err := env.projects.Create(ctx, admin, ProjectInput{
			Name:        fmt.Sprintf("Project %d", i),
			Description: "d",
			ManagerID:   m.ID,
			StartDate:   today,
			Deadline:    today.AddDate(0, 0, 5),
		})
		if err != nil {
			t.Fatalf("failed to create project: %v", err)
		}
	}

	own, err := env.projects.List(ctx, managerUser(managerA.ID))
	if err != nil {
		t.Fatalf("failed to list projects: %v", err)
	}
	if len(own) != 1 || own[0].ManagerID != managerA.ID {
		t.Errorf("manager should see only own projects, got %d", len(own))
	}

	all, err := env.projects.List(ctx, plainUser(worker.ID))
	if err != nil {
		t.Fatalf("failed to list projects: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("plain worker should see all projects, got %d", len(all))
	}
}

func TestTaskService_ListRoleAndOpenFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	worker := seedWorker(t, env.db, "bob", nil)
	tag := seedTaskType(t, env.db, "bug")
	today := rules.Today()

	openProject := &model.Project{
		ID: uuid.NewString(), Name: "Open", Description: "d",
		ManagerID: manager.ID, StartDate: today, Deadline: today.AddDate(0, 0, 9),
	}
	doneProject := &model.Project{
		ID: uuid.NewString(), Name: "Done", Description: "d",
		ManagerID: manager.ID, IsCompleted: true, StartDate: today, Deadline: today.AddDate(0, 0, 9),
	}
	if err := env.db.Create(openProject).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	if err := env.db.Create(doneProject).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	mine := seedTask(t, env.db, "Fix login", tag, openProject, false)
	seedTask(t, env.db, "Fix logout", tag, openProject, false)
	seedTask(t, env.db, "Old chore", tag, doneProject, false)
	seedAssignment(t, env.db, mine, worker)

	tasks, _, err := env.tasks.List(ctx, managerUser(manager.ID), ListOptions{SessionKey: "pm"})
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("privileged caller should see all open tasks, got %d", len(tasks))
	}

	tasks, _, err = env.tasks.List(ctx, plainUser(worker.ID), ListOptions{SessionKey: "bob"})
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != mine.ID {
		t.Errorf("plain worker should see only own open tasks, got %d", len(tasks))
	}

	tasks, _, err = env.tasks.List(ctx, managerUser(manager.ID), ListOptions{SessionKey: "pm", TitleContains: "LOGIN"})
	if err != nil {
		t.Fatalf("failed to filter tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != mine.ID {
		t.Errorf("title filter should be case-insensitive, got %d", len(tasks))
	}

	_, _, err = env.tasks.List(ctx, managerUser(manager.ID), ListOptions{SessionKey: "pm", CompletionCondition: "bogus"})
	if asValidation(t, err).Fields["completed"] != "Invalid condition. Must be '+' or '-'." {
		t.Error("invalid completion condition should be rejected")
	}
}

func TestTaskService_SortToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	tag := seedTaskType(t, env.db, "bug")
	cu := managerUser(manager.ID)

	banana := seedTask(t, env.db, "banana", tag, nil, false)
	apple := seedTask(t, env.db, "apple", tag, nil, false)
	cherry := seedTask(t, env.db, "cherry", tag, nil, false)
	env.db.Model(banana).Update("deadline", rules.Today().AddDate(0, 0, 1))
	env.db.Model(apple).Update("deadline", rules.Today().AddDate(0, 0, 3))
	env.db.Model(cherry).Update("deadline", rules.Today().AddDate(0, 0, 2))

	tasks, state, err := env.tasks.List(ctx, cu, ListOptions{SessionKey: "s", Sort: query.SortTitle})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if state.Desc || tasks[0].Title != "apple" {
		t.Errorf("first title sort should be ascending, got %+v first=%s", state, tasks[0].Title)
	}

	tasks, state, err = env.tasks.List(ctx, cu, ListOptions{SessionKey: "s", Sort: query.SortTitle})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if !state.Desc || tasks[0].Title != "cherry" {
		t.Errorf("repeated title sort should flip to descending, got %+v first=%s", state, tasks[0].Title)
	}

	tasks, state, err = env.tasks.List(ctx, cu, ListOptions{SessionKey: "s", Sort: query.SortDeadline})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if state.Desc || state.Key != query.SortDeadline || tasks[0].Title != "banana" {
		t.Errorf("new sort key should reset to ascending, got %+v first=%s", state, tasks[0].Title)
	}

	// A different session keeps its own toggle state.
	_, state, err = env.tasks.List(ctx, cu, ListOptions{SessionKey: "other", Sort: query.SortTitle})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if state.Desc {
		t.Error("fresh session should start ascending")
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	worker := seedWorker(t, env.db, "bob", nil)
	tag := seedTaskType(t, env.db, "bug")
	cu := plainUser(worker.ID)
	today := rules.Today()

	task, err := env.tasks.Create(ctx, cu, TaskInput{
		Title:       "Fix it",
		Description: "now",
		Deadline:    today,
		Priority:    model.PriorityUrgent,
		TagID:       tag.ID,
	})
	if err != nil {
		t.Fatalf("deadline today should be accepted, got %v", err)
	}
	if task.Priority != model.PriorityUrgent {
		t.Errorf("priority not persisted: %s", task.Priority)
	}

	_, err = env.tasks.Create(ctx, cu, TaskInput{
		Title:       "Too late",
		Description: "d",
		Deadline:    today.AddDate(0, 0, -1),
		Priority:    model.PriorityLow,
		TagID:       tag.ID,
	})
	if _, ok := asValidation(t, err).Fields["deadline"]; !ok {
		t.Error("past deadline should be rejected")
	}

	_, err = env.tasks.Create(ctx, cu, TaskInput{
		Title:       "Bad priority",
		Description: "d",
		Deadline:    today,
		Priority:    model.TaskPriority("9"),
		TagID:       tag.ID,
	})
	if _, ok := asValidation(t, err).Fields["priority"]; !ok {
		t.Error("unknown priority should be rejected")
	}

	_, err = env.tasks.Create(ctx, cu, TaskInput{
		Title:       "No tag",
		Description: "d",
		Deadline:    today,
		Priority:    model.PriorityLow,
		TagID:       "missing",
	})
	if !errors.Is(err, apperrors.ErrTaskTypeNotFound) {
		t.Errorf("missing tag should be not-found, got %v", err)
	}
}

func TestTaskService_AssignAndComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	worker := seedWorker(t, env.db, "bob", nil)
	tag := seedTaskType(t, env.db, "bug")
	task := seedTask(t, env.db, "Fix it", tag, nil, false)
	cu := plainUser(worker.ID)

	assignment, err := env.tasks.Assign(ctx, cu, task.ID, worker.ID)
	if err != nil {
		t.Fatalf("failed to assign: %v", err)
	}
	if assignment.AssignedDate.IsZero() {
		t.Error("assignment date should be set at creation")
	}

	if _, err := env.tasks.Assign(ctx, cu, task.ID, worker.ID); !errors.Is(err, apperrors.ErrAlreadyAssigned) {
		t.Errorf("double assignment should conflict, got %v", err)
	}

	if err := env.tasks.Complete(ctx, cu, task.ID); err != nil {
		t.Fatalf("failed to complete: %v", err)
	}

	detail, err := env.workers.Detail(ctx, cu, worker.ID)
	if err != nil {
		t.Fatalf("failed to load worker: %v", err)
	}
	if detail.TasksDone != 1 {
		t.Errorf("expected 1 completed task, got %d", detail.TasksDone)
	}
}

func TestStatsService_BestTeam(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cu := superuser("admin")

	best, err := env.stats.BestTeam(ctx, cu)
	if err != nil {
		t.Fatalf("best team with no teams should not fail: %v", err)
	}
	if best.Found || best.Name != "" || best.Completed != 0 {
		t.Errorf("expected empty sentinel, got %+v", best)
	}

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	teamA := seedTeam(t, env.db, "Alpha", manager)
	teamB := seedTeam(t, env.db, "Beta", manager)
	tag := seedTaskType(t, env.db, "bug")

	a1 := seedWorker(t, env.db, "a1", nil)
	a2 := seedWorker(t, env.db, "a2", nil)
	b1 := seedWorker(t, env.db, "b1", nil)
	env.db.Model(a1).Update("team_id", teamA.ID)
	env.db.Model(a2).Update("team_id", teamA.ID)
	env.db.Model(b1).Update("team_id", teamB.ID)

	for i := 0; i < 3; i++ {
		task := seedTask(t, env.db, fmt.Sprintf("a-task-%d", i), tag, nil, true)
		if i%2 == 0 {
			seedAssignment(t, env.db, task, a1)
		} else {
			seedAssignment(t, env.db, task, a2)
		}
	}
	seedAssignment(t, env.db, seedTask(t, env.db, "b-task", tag, nil, true), b1)
	// Open tasks don't count.
	seedAssignment(t, env.db, seedTask(t, env.db, "b-open", tag, nil, false), b1)

	best, err = env.stats.BestTeam(ctx, cu)
	if err != nil {
		t.Fatalf("failed to compute best team: %v", err)
	}
	if !best.Found || best.Name != "Alpha" || best.Completed != 3 {
		t.Errorf("expected Alpha with 3 completed tasks, got %+v", best)
	}
}

func TestStatsService_BestTeamTieBreaksByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pmPosition := seedPosition(t, env.db, model.ProjectManagerPosition)
	manager := seedWorker(t, env.db, "boss", pmPosition)
	seedTeam(t, env.db, "Zeta", manager)
	seedTeam(t, env.db, "Alpha", manager)

	best, err := env.stats.BestTeam(ctx, superuser("admin"))
	if err != nil {
		t.Fatalf("failed to compute best team: %v", err)
	}
	if !best.Found || best.Name != "Alpha" {
		t.Errorf("tie should break by name ascending, got %+v", best)
	}
}

func TestStatsService_IndexVisits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	worker := seedWorker(t, env.db, "bob", nil)
	cu := plainUser(worker.ID)

	first, err := env.stats.Index(ctx, cu, "s1")
	if err != nil {
		t.Fatalf("failed to load index stats: %v", err)
	}
	second, err := env.stats.Index(ctx, cu, "s1")
	if err != nil {
		t.Fatalf("failed to load index stats: %v", err)
	}

	if first.NumWorkers != 1 {
		t.Errorf("expected 1 worker, got %d", first.NumWorkers)
	}
	if second.NumVisits != first.NumVisits+1 {
		t.Errorf("visit counter should increment per request: %d then %d", first.NumVisits, second.NumVisits)
	}

	if _, err := env.stats.Index(ctx, authz.Anonymous(), "s2"); !errors.Is(err, apperrors.ErrLoginRequired) {
		t.Errorf("anonymous caller should be asked to log in, got %v", err)
	}
}

func TestVocabService_PositionDeleteNullsWorkers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := superuser("admin")

	position, err := env.vocab.CreatePosition(ctx, admin, "Developer")
	if err != nil {
		t.Fatalf("failed to create position: %v", err)
	}
	if position.Role != model.RoleWorker {
		t.Errorf("non-manager position should get the worker role, got %s", position.Role)
	}

	worker := seedWorker(t, env.db, "bob", position)

	if err := env.vocab.DeletePosition(ctx, admin, position.ID); err != nil {
		t.Fatalf("failed to delete position: %v", err)
	}

	var reloaded model.Worker
	if err := env.db.First(&reloaded, "id = ?", worker.ID).Error; err != nil {
		t.Fatalf("worker should survive position deletion: %v", err)
	}
	if reloaded.PositionID != nil {
		t.Error("worker position should be nulled out, not cascaded")
	}

	_, err = env.vocab.CreatePosition(ctx, plainUser(worker.ID), "Tester")
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("vocabulary changes require privilege, got %v", err)
	}
}

func TestVocabService_TaskTypeDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := superuser("admin")
	worker := seedWorker(t, env.db, "bob", nil)
	tag := seedTaskType(t, env.db, "bug")
	task := seedTask(t, env.db, "Fix it", tag, nil, false)
	seedAssignment(t, env.db, task, worker)

	if err := env.vocab.DeleteTaskType(ctx, admin, tag.ID); err != nil {
		t.Fatalf("failed to delete task type: %v", err)
	}

	var tasks, assignments int64
	env.db.Model(&model.Task{}).Count(&tasks)
	env.db.Model(&model.TaskAssignment{}).Count(&assignments)
	if tasks != 0 || assignments != 0 {
		t.Errorf("task type deletion should cascade, got %d tasks %d assignments", tasks, assignments)
	}
}
