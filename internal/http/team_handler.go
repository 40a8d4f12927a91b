package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"staff-forge.com/staff-forge/internal/services"
)

type teamRequest struct {
	Name             string `json:"name" form:"name"`
	ProjectManagerID string `json:"project_manager" form:"project_manager"`
}

func (h *Handler) CreateTeam(c echo.Context) error {
	var req teamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	team, err := h.teams.Create(c.Request().Context(), currentUser(c), services.TeamInput{
		Name:             req.Name,
		ProjectManagerID: req.ProjectManagerID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, team)
}

func (h *Handler) UpdateTeam(c echo.Context) error {
	var req teamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	team, err := h.teams.Update(c.Request().Context(), currentUser(c), c.Param("id"), services.TeamInput{
		Name:             req.Name,
		ProjectManagerID: req.ProjectManagerID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, team)
}

func (h *Handler) GetTeam(c echo.Context) error {
	team, err := h.teams.Detail(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, team)
}
