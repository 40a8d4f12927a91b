package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "staff-forge.com/staff-forge/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, resolver middleware.UserResolver, rateLimitPerMinute int) {
	e.Use(middleware.Authenticate(resolver))
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/", h.Index)
	e.GET("/teams/best", h.BestTeam)

	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.POST("/tasks/:id/complete", h.CompleteTask)
	e.POST("/tasks/:id/assign", h.AssignTask)

	e.GET("/workers", h.ListWorkers)
	e.GET("/workers/:id", h.GetWorker)
	e.PUT("/workers/:id/hire", h.HireWorker)

	e.POST("/teams", h.CreateTeam)
	e.PUT("/teams/:id", h.UpdateTeam)
	e.GET("/teams/:id", h.GetTeam)

	e.GET("/projects", h.ListProjects)
	e.POST("/projects", h.CreateProject)
	e.GET("/projects/:id", h.GetProject)
	e.PUT("/projects/:id", h.UpdateProject)
	e.POST("/projects/:id/complete", h.CompleteProject)

	e.POST("/positions", h.CreatePosition)
	e.DELETE("/positions/:id", h.DeletePosition)
	e.POST("/task-types", h.CreateTaskType)
	e.DELETE("/task-types/:id", h.DeleteTaskType)
}
