// internal/service/sprint_service.go
package service

import (
	"context"
	"time"

	"github.com/taskflow-labs/taskflow-backend/internal/db"
	"github.com/taskflow-labs/taskflow-backend/internal/numbering"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
)

type CreateSprintInput struct {
	Name        string
	Description *string
	Status      string
	StartDate   time.Time
	EndDate     time.Time
}

type UpdateSprintInput struct {
	Name        *string
	Description *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// TaskWithNames pairs a task with its resolved assignee/QA owner names for
// the sprint history view.
type TaskWithNames struct {
	Task         *repository.Task
	AssigneeName *string
	QAOwnerName  *string
}

type SprintHistory struct {
	Sprint *repository.Sprint
	Tasks  []*TaskWithNames
}

type SprintService interface {
	Create(ctx context.Context, in *CreateSprintInput) (*repository.Sprint, error)
	Get(ctx context.Context, sprintID string) (*repository.Sprint, error)
	List(ctx context.Context) ([]*repository.Sprint, error)
	ListActive(ctx context.Context) ([]*repository.Sprint, error)
	ListCompleted(ctx context.Context) ([]*repository.Sprint, error)
	Update(ctx context.Context, sprintID string, in *UpdateSprintInput) (*repository.Sprint, error)
	Delete(ctx context.Context, sprintID string) error
	Start(ctx context.Context, sprintID string) (*repository.Sprint, error)
	Complete(ctx context.Context, sprintID string) (*repository.Sprint, error)
	History(ctx context.Context, sprintID string) (*SprintHistory, error)
}

type sprintService struct {
	sprintRepo   repository.SprintRepository
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
	cache        *db.RedisDB
}

func NewSprintService(
	sprintRepo repository.SprintRepository,
	taskRepo repository.TaskRepository,
	employeeRepo repository.EmployeeRepository,
	cache *db.RedisDB,
) SprintService {
	return &sprintService{
		sprintRepo:   sprintRepo,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

func (s *sprintService) Create(ctx context.Context, in *CreateSprintInput) (*repository.Sprint, error) {
	if in.Name == "" {
		return nil, validationErr("name", "name is required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, validationErr("endDate", "end date must not be before start date")
	}

	status := in.Status
	if status == "" {
		status = types.SprintToBeStarted
	}
	if !types.IsValidSprintStatus(status) {
		return nil, validationErr("status", "invalid sprint status")
	}

	sprint := &repository.Sprint{
		ID:          numbering.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.sprintRepo.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *sprintService) Get(ctx context.Context, sprintID string) (*repository.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}
	return sprint, nil
}

func (s *sprintService) List(ctx context.Context) ([]*repository.Sprint, error) {
	return s.sprintRepo.FindAll(ctx)
}

// ListActive returns sprints still relevant to the board: not yet started
// plus currently running. A pure filter over status, not a storage partition.
func (s *sprintService) ListActive(ctx context.Context) ([]*repository.Sprint, error) {
	return s.sprintRepo.FindByStatuses(ctx, []string{types.SprintToBeStarted, types.SprintInProgress})
}

func (s *sprintService) ListCompleted(ctx context.Context) ([]*repository.Sprint, error) {
	return s.sprintRepo.FindByStatuses(ctx, []string{types.SprintCompleted})
}

func (s *sprintService) Update(ctx context.Context, sprintID string, in *UpdateSprintInput) (*repository.Sprint, error) {
	existing, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.Status == types.SprintCompleted {
		return nil, ErrInvalidState
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, validationErr("name", "name is required")
		}
		existing.Name = *in.Name
	}
	if in.Description != nil {
		existing.Description = in.Description
	}
	if in.Status != nil {
		if !types.IsValidSprintStatus(*in.Status) {
			return nil, validationErr("status", "invalid sprint status")
		}
		existing.Status = *in.Status
	}
	if in.StartDate != nil {
		existing.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		existing.EndDate = *in.EndDate
	}

	// Re-check the date invariant whenever either date changed.
	if existing.EndDate.Before(existing.StartDate) {
		return nil, validationErr("endDate", "end date must not be before start date")
	}

	if err := s.sprintRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	invalidateBoardCache(s.cache)
	return existing, nil
}

// Delete removes the sprint and detaches its tasks. Tasks are preserved with
// a cleared sprint reference.
func (s *sprintService) Delete(ctx context.Context, sprintID string) error {
	sprint, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return err
	}
	if sprint == nil {
		return ErrNotFound
	}

	if err := s.taskRepo.ClearSprint(ctx, sprintID); err != nil {
		return err
	}
	if err := s.sprintRepo.Delete(ctx, sprintID); err != nil {
		return err
	}
	invalidateBoardCache(s.cache)
	return nil
}

func (s *sprintService) Start(ctx context.Context, sprintID string) (*repository.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}
	if sprint.Status != types.SprintToBeStarted {
		return nil, ErrInvalidState
	}

	if err := s.sprintRepo.UpdateStatus(ctx, sprintID, types.SprintInProgress); err != nil {
		return nil, err
	}
	sprint.Status = types.SprintInProgress
	invalidateBoardCache(s.cache)
	return sprint, nil
}

// Complete archives a sprint. Allowed from either not-yet-started or running;
// completing twice is rejected. The sprint and its tasks move to the history
// view purely by status, no data migration happens.
func (s *sprintService) Complete(ctx context.Context, sprintID string) (*repository.Sprint, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil {
		return nil, ErrNotFound
	}
	if sprint.Status == types.SprintCompleted {
		return nil, ErrInvalidState
	}

	if err := s.sprintRepo.UpdateStatus(ctx, sprintID, types.SprintCompleted); err != nil {
		return nil, err
	}
	sprint.Status = types.SprintCompleted
	invalidateBoardCache(s.cache)
	return sprint, nil
}

func (s *sprintService) History(ctx context.Context, sprintID string) (*SprintHistory, error) {
	sprint, err := s.sprintRepo.FindByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil || sprint.Status != types.SprintCompleted {
		return nil, ErrNotFound
	}

	tasks, err := s.taskRepo.FindBySprintID(ctx, sprintID)
	if err != nil {
		return nil, err
	}

	history := &SprintHistory{Sprint: sprint, Tasks: make([]*TaskWithNames, 0, len(tasks))}
	names := map[string]*string{}
	resolve := func(id *string) *string {
		if id == nil {
			return nil
		}
		if name, ok := names[*id]; ok {
			return name
		}
		emp, err := s.employeeRepo.FindByID(ctx, *id)
		var name *string
		if err == nil && emp != nil {
			name = &emp.Name
		}
		names[*id] = name
		return name
	}

	for _, t := range tasks {
		history.Tasks = append(history.Tasks, &TaskWithNames{
			Task:         t,
			AssigneeName: resolve(t.AssigneeID),
			QAOwnerName:  resolve(t.QAOwnerID),
		})
	}
	return history, nil
}
