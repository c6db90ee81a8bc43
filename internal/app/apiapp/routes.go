package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akulikov/tasklist/internal/config"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	listssvc "github.com/akulikov/tasklist/internal/services/lists"
	taskssvc "github.com/akulikov/tasklist/internal/services/tasks"
	"github.com/akulikov/tasklist/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService  *authsvc.Service
	ListService  *listssvc.Service
	TaskService  *taskssvc.Service
	LoginLimiter handlers.LoginLimiter
	Logger       *zap.Logger
	Config       config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	if deps.LoginLimiter != nil {
		authHandler.AttachLoginLimiter(deps.LoginLimiter)
	}
	healthHandler := handlers.NewHealthHandler()
	listsHandler := handlers.NewListsHandler(deps.ListService)
	tasksHandler := handlers.NewTasksHandler(deps.TaskService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	sessionMW := SessionMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Healthz)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.With(sessionMW).Get("/me/access-token", authHandler.AccessToken)
	})

	r.Route("/lists", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", listsHandler.List)
		r.Post("/", listsHandler.Create)
		r.Patch("/{listId}", listsHandler.Update)
		r.Delete("/{listId}", listsHandler.Delete)

		r.Route("/{listId}/tasks", func(r chi.Router) {
			r.Get("/", tasksHandler.List)
			r.Post("/", tasksHandler.Create)
			r.Patch("/{taskId}", tasksHandler.Update)
			r.Delete("/{taskId}", tasksHandler.Delete)
		})
	})
}
