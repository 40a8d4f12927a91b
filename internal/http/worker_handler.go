package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	model "staff-forge.com/staff-forge/internal/models"
	"staff-forge.com/staff-forge/internal/query"
	"staff-forge.com/staff-forge/internal/services"
)

func (h *Handler) ListWorkers(c echo.Context) error {
	workers, err := h.workers.List(c.Request().Context(), currentUser(c), query.WorkerFilter{
		FirstNameContains: c.QueryParam("name"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(workers),
		"workers": workers,
	})
}

func (h *Handler) GetWorker(c echo.Context) error {
	detail, err := h.workers.Detail(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

type hireRequest struct {
	Email      string  `json:"email" form:"email"`
	Salary     *uint   `json:"salary" form:"salary"`
	HireDate   string  `json:"hire_date" form:"hire_date"`
	PositionID *string `json:"position" form:"position"`
	Status     int     `json:"status" form:"status"`
	TeamID     *string `json:"team" form:"team"`
}

func (h *Handler) HireWorker(c echo.Context) error {
	var req hireRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	hireDate, verr := parseOptionalDate("hire_date", req.HireDate)
	if verr != nil {
		return respondError(c, verr)
	}

	worker, err := h.workers.Hire(c.Request().Context(), currentUser(c), c.Param("id"), services.HireInput{
		Email:      req.Email,
		Salary:     req.Salary,
		HireDate:   hireDate,
		PositionID: req.PositionID,
		Status:     model.WorkerStatus(req.Status),
		TeamID:     req.TeamID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, worker)
}
