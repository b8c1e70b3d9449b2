package router

import (
	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/container"
	pginfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	tokens := container.GetTokens()

	userRepo := pginfra.NewUserRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)

	authSvc := application.NewAuthService(userRepo, tokens, logger)
	taskSvc := application.NewTaskService(taskRepo, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, logger), tokens))
}
