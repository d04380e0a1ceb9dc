// internal/service/task_service.go
package service

import (
	"context"

	"github.com/taskflow-labs/taskflow-backend/internal/db"
	"github.com/taskflow-labs/taskflow-backend/internal/numbering"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
)

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	Points      int
	SprintID    string
	AssigneeID  *string
	QAOwnerID   *string
}

// UpdateTaskInput merges into the stored task; nil means "not provided".
// Assignee/QA owner accept an empty string to clear the reference. The sprint
// association is never touched by the generic update path; MoveToSprint is
// the dedicated operation for that.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	Points      *int
	AssigneeID  *string
	QAOwnerID   *string
}

type TaskService interface {
	Create(ctx context.Context, in *CreateTaskInput) (*repository.Task, error)
	Get(ctx context.Context, taskID string) (*repository.Task, error)
	Update(ctx context.Context, taskID string, in *UpdateTaskInput) (*repository.Task, error)
	SetStatus(ctx context.Context, taskID, status string) (*repository.Task, error)
	MoveToSprint(ctx context.Context, taskID string, sprintID *string) (*repository.Task, error)
	Delete(ctx context.Context, taskID string) error
	ListBySprint(ctx context.Context, sprintID string) ([]*repository.Task, error)
	ListByStatusGroup(ctx context.Context, sprintID string) (map[string][]*repository.Task, error)
}

type taskService struct {
	taskRepo     repository.TaskRepository
	sprintRepo   repository.SprintRepository
	employeeRepo repository.EmployeeRepository
	cache        *db.RedisDB
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	sprintRepo repository.SprintRepository,
	employeeRepo repository.EmployeeRepository,
	cache *db.RedisDB,
) TaskService {
	return &taskService{
		taskRepo:     taskRepo,
		sprintRepo:   sprintRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

func (s *taskService) Create(ctx context.Context, in *CreateTaskInput) (*repository.Task, error) {
	if in.Title == "" {
		return nil, validationErr("title", "title is required")
	}

	status := in.Status
	if status == "" {
		status = types.StatusToDo
	}
	if !types.IsValidTaskStatus(status) {
		return nil, validationErr("status", "invalid task status")
	}
	if !types.IsValidPriority(in.Priority) {
		return nil, validationErr("priority", "invalid priority")
	}
	if !types.IsValidStoryPoints(in.Points) {
		return nil, validationErr("points", "points must be between 1 and 20")
	}

	sprint, err := s.sprintRepo.FindByID(ctx, in.SprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}

	if err := s.checkEmployeeRef(ctx, in.AssigneeID); err != nil {
		return nil, err
	}
	if err := s.checkEmployeeRef(ctx, in.QAOwnerID); err != nil {
		return nil, err
	}

	// The task number high-water mark is recomputed from the stored set on
	// every allocation. Deleting a lower-numbered task leaves a permanent
	// gap; deleting the current maximum rolls the mark back.
	numbers, err := s.taskRepo.AllTaskNumbers(ctx)
	if err != nil {
		return nil, err
	}

	task := &repository.Task{
		ID:          numbering.NewID(),
		TaskNo:      numbering.NextTaskNumber(numbers),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    in.Priority,
		Points:      in.Points,
		SprintID:    &in.SprintID,
		AssigneeID:  normalizeRef(in.AssigneeID),
		QAOwnerID:   normalizeRef(in.QAOwnerID),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	invalidateBoardCache(s.cache)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, taskID string) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, taskID string, in *UpdateTaskInput) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, validationErr("title", "title is required")
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = in.Description
	}
	if in.Priority != nil {
		if !types.IsValidPriority(*in.Priority) {
			return nil, validationErr("priority", "invalid priority")
		}
		task.Priority = *in.Priority
	}
	if in.Points != nil {
		if !types.IsValidStoryPoints(*in.Points) {
			return nil, validationErr("points", "points must be between 1 and 20")
		}
		task.Points = *in.Points
	}
	if in.AssigneeID != nil {
		if err := s.checkEmployeeRef(ctx, in.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = normalizeRef(in.AssigneeID)
	}
	if in.QAOwnerID != nil {
		if err := s.checkEmployeeRef(ctx, in.QAOwnerID); err != nil {
			return nil, err
		}
		task.QAOwnerID = normalizeRef(in.QAOwnerID)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	invalidateBoardCache(s.cache)
	return task, nil
}

// SetStatus overwrites the task status unconditionally. The six statuses form
// a suggested linear path but any jump is allowed; the order is a board
// affordance, not a server-enforced state machine.
func (s *taskService) SetStatus(ctx context.Context, taskID, status string) (*repository.Task, error) {
	if !types.IsValidTaskStatus(status) {
		return nil, validationErr("status", "invalid task status")
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, err
	}
	task.Status = status
	invalidateBoardCache(s.cache)
	return task, nil
}

// MoveToSprint reassigns a task to another sprint, or detaches it when
// sprintID is nil.
func (s *taskService) MoveToSprint(ctx context.Context, taskID string, sprintID *string) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if sprintID != nil {
		sprint, err := s.sprintRepo.FindByID(ctx, *sprintID)
		if err != nil {
			return nil, err
		}
		if sprint == nil {
			return nil, ErrNotFound
		}
	}

	if err := s.taskRepo.UpdateSprint(ctx, taskID, sprintID); err != nil {
		return nil, err
	}
	task.SprintID = sprintID
	invalidateBoardCache(s.cache)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, taskID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	invalidateBoardCache(s.cache)
	return nil
}

func (s *taskService) ListBySprint(ctx context.Context, sprintID string) ([]*repository.Task, error) {
	return s.taskRepo.FindBySprintID(ctx, sprintID)
}

// ListByStatusGroup groups a sprint's tasks into the six fixed buckets. Every
// bucket is present even when empty.
func (s *taskService) ListByStatusGroup(ctx context.Context, sprintID string) (map[string][]*repository.Task, error) {
	tasks, err := s.taskRepo.FindBySprintID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	return groupByStatus(tasks), nil
}

// checkEmployeeRef validates an optional employee reference. Nil and empty
// (clear) are fine; anything else must resolve to a stored employee.
func (s *taskService) checkEmployeeRef(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	exists, err := s.employeeRepo.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

// normalizeRef maps the empty string to a cleared (nil) reference.
func normalizeRef(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
