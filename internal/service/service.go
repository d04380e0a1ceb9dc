package service

import (
	"context"
	"errors"

	"github.com/taskflow-labs/taskflow-backend/internal/config"
	"github.com/taskflow-labs/taskflow-backend/internal/db"
	"github.com/taskflow-labs/taskflow-backend/internal/email"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidState       = errors.New("operation not allowed in current status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth     AuthService
	Employee EmployeeService
	Sprint   SprintService
	Task     TaskService
	Board    BoardService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	EmailSvc *email.Service
	Cache    *db.RedisDB
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth:     NewAuthService(deps.Config, deps.Repos.EmployeeRepo),
		Employee: NewEmployeeService(deps.Repos.EmployeeRepo, deps.Repos.TaskRepo, deps.EmailSvc),
		Sprint:   NewSprintService(deps.Repos.SprintRepo, deps.Repos.TaskRepo, deps.Repos.EmployeeRepo, deps.Cache),
		Task:     NewTaskService(deps.Repos.TaskRepo, deps.Repos.SprintRepo, deps.Repos.EmployeeRepo, deps.Cache),
		Board:    NewBoardService(deps.Repos.TaskRepo, deps.Repos.SprintRepo, deps.Repos.EmployeeRepo, deps.Cache),
	}
}

// invalidateBoardCache drops every cached board projection. Called after any
// task or sprint mutation; a nil cache is a no-op.
func invalidateBoardCache(cache *db.RedisDB) {
	if cache == nil {
		return
	}
	// Best effort, errors are not surfaced to the caller.
	_ = cache.InvalidateCache(context.Background(), "board:*")
}
