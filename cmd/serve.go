package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "staff-forge.com/staff-forge/internal/configs"
	httpapi "staff-forge.com/staff-forge/internal/http"
	repository "staff-forge.com/staff-forge/internal/repositories"
	"staff-forge.com/staff-forge/internal/services"
	"staff-forge.com/staff-forge/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the workforce management HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.NewDatabase(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		store := session.NewRedisStore(redisClient)

		workerRepo := repository.NewWorkerRepository(database)
		teamRepo := repository.NewTeamRepository(database)
		projectRepo := repository.NewProjectRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		positionRepo := repository.NewPositionRepository(database)
		taskTypeRepo := repository.NewTaskTypeRepository(database)

		sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
		authService := services.NewAuthService(workerRepo, store, sessionTTL)
		workerService := services.NewWorkerService(workerRepo, positionRepo, teamRepo)
		teamService := services.NewTeamService(teamRepo, workerRepo)
		projectService := services.NewProjectService(projectRepo, workerRepo)
		taskService := services.NewTaskService(taskRepo, taskTypeRepo, projectRepo, workerRepo, store)
		statsService := services.NewStatsService(workerRepo, teamRepo, store)
		vocabService := services.NewVocabService(positionRepo, taskTypeRepo)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()

		handler := httpapi.NewHandler(
			authService,
			workerService,
			teamService,
			projectService,
			taskService,
			statsService,
			vocabService,
		)
		httpapi.Register(e, handler, authService, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
