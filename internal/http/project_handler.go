package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "staff-forge.com/staff-forge/internal/errors"
	"staff-forge.com/staff-forge/internal/services"
)

type projectRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	ManagerID   string `json:"manager" form:"manager"`
	StartDate   string `json:"start_date" form:"start_date"`
	Deadline    string `json:"deadline" form:"deadline"`
}

func (r *projectRequest) toInput() (services.ProjectInput, *apperrors.ValidationError) {
	startDate, verr := parseDate("start_date", r.StartDate)
	deadline, dverr := parseDate("deadline", r.Deadline)
	if verr = apperrors.Merge(verr, dverr); verr != nil {
		return services.ProjectInput{}, verr
	}

	return services.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		ManagerID:   r.ManagerID,
		StartDate:   startDate,
		Deadline:    deadline,
	}, nil
}

func (h *Handler) CreateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, verr := req.toInput()
	if verr != nil {
		return respondError(c, verr)
	}

	project, err := h.projects.Create(c.Request().Context(), currentUser(c), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, verr := req.toInput()
	if verr != nil {
		return respondError(c, verr)
	}

	project, err := h.projects.Update(c.Request().Context(), currentUser(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) ListProjects(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) GetProject(c echo.Context) error {
	project, err := h.projects.Detail(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handler) CompleteProject(c echo.Context) error {
	if err := h.projects.Complete(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
