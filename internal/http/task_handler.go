package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
	"staff-forge.com/staff-forge/internal/services"
)

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, sort, err := h.tasks.List(c.Request().Context(), currentUser(c), services.ListOptions{
		SessionKey:          sessionKey(c),
		TitleContains:       c.QueryParam("name"),
		CompletionCondition: c.QueryParam("completed"),
		Sort:                query.SortKey(c.QueryParam("sort")),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
		"sort":  sort,
	})
}

type createTaskRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Deadline    string  `json:"deadline" form:"deadline"`
	Priority    string  `json:"priority" form:"priority"`
	TagID       string  `json:"tag" form:"tag"`
	ProjectID   *string `json:"project" form:"project"`
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	deadline, verr := parseDate("deadline", req.Deadline)
	if verr != nil {
		return respondError(c, verr)
	}

	task, err := h.tasks.Create(c.Request().Context(), currentUser(c), services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    model.TaskPriority(req.Priority),
		TagID:       req.TagID,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.tasks.Detail(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CompleteTask(c echo.Context) error {
	if err := h.tasks.Complete(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type assignTaskRequest struct {
	WorkerID string `json:"worker" form:"worker"`
}

func (h *Handler) AssignTask(c echo.Context) error {
	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	assignment, err := h.tasks.Assign(c.Request().Context(), currentUser(c), c.Param("id"), req.WorkerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, assignment)
}
