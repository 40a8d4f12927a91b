package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "staff-forge.com/staff-forge/internal/http/middlewares"
	"staff-forge.com/staff-forge/internal/services"
)

type registerRequest struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Password  string `json:"password" form:"password"`
	Salary    *uint  `json:"salary" form:"salary"`
	About     string `json:"about" form:"about"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	worker, err := h.auth.Register(c.Request().Context(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Salary:    req.Salary,
		About:     req.About,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, worker)
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (h *Handler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.SessionTokenKey).(string)
	if token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return respondError(c, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
