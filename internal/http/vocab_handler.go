package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type nameRequest struct {
	Name string `json:"name" form:"name"`
}

func (h *Handler) CreatePosition(c echo.Context) error {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	position, err := h.vocab.CreatePosition(c.Request().Context(), currentUser(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, position)
}

func (h *Handler) DeletePosition(c echo.Context) error {
	if err := h.vocab.DeletePosition(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateTaskType(c echo.Context) error {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	taskType, err := h.vocab.CreateTaskType(c.Request().Context(), currentUser(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, taskType)
}

func (h *Handler) DeleteTaskType(c echo.Context) error {
	if err := h.vocab.DeleteTaskType(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
