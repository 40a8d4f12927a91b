package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"staff-forge.com/staff-forge/internal/authz"
	apperrors "staff-forge.com/staff-forge/internal/errors"
	middleware "staff-forge.com/staff-forge/internal/http/middlewares"
	"staff-forge.com/staff-forge/internal/services"
)

type Handler struct {
	auth     *services.AuthService
	workers  *services.WorkerService
	teams    *services.TeamService
	projects *services.ProjectService
	tasks    *services.TaskService
	stats    *services.StatsService
	vocab    *services.VocabService
}

func NewHandler(
	auth *services.AuthService,
	workers *services.WorkerService,
	teams *services.TeamService,
	projects *services.ProjectService,
	tasks *services.TaskService,
	stats *services.StatsService,
	vocab *services.VocabService,
) *Handler {
	return &Handler{
		auth:     auth,
		workers:  workers,
		teams:    teams,
		projects: projects,
		tasks:    tasks,
		stats:    stats,
		vocab:    vocab,
	}
}

func (h *Handler) Index(c echo.Context) error {
	stats, err := h.stats.Index(c.Request().Context(), currentUser(c), sessionKey(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) BestTeam(c echo.Context) error {
	best, err := h.stats.BestTeam(c.Request().Context(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, best)
}

// respondError maps service errors to responses: validation rejections
// become a field → message object, everything else takes the status its
// error kind carries.
func respondError(c echo.Context, err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Fields})
	}
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func currentUser(c echo.Context) authz.CurrentUser {
	if cu, ok := c.Get(middleware.CurrentUserKey).(authz.CurrentUser); ok {
		return cu
	}
	return authz.Anonymous()
}

// sessionKey scopes per-session state (sort memory, visit counter). The
// session token serves as the key; anonymous callers fall back to their
// address, which only matters for pages they can reach.
func sessionKey(c echo.Context) string {
	if token, ok := c.Get(middleware.SessionTokenKey).(string); ok && token != "" {
		return token
	}
	return c.RealIP()
}

func parseDate(field, value string) (time.Time, *apperrors.ValidationError) {
	if value == "" {
		return time.Time{}, apperrors.NewValidation(field, "This field is required.")
	}

	date, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidation(field, "Enter a valid date.")
	}
	return date, nil
}

func parseOptionalDate(field, value string) (*time.Time, *apperrors.ValidationError) {
	if value == "" {
		return nil, nil
	}

	date, verr := parseDate(field, value)
	if verr != nil {
		return nil, verr
	}
	return &date, nil
}
