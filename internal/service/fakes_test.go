package service

import (
	"context"
	"sort"
	"time"

	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/types"
)

// In-memory repository fakes. They mirror the contract of the Postgres
// implementations: lookups return (nil, nil) when nothing matches, and list
// methods preserve insertion order where the real queries order by created_at.

type fakeEmployeeRepo struct {
	employees []*repository.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *repository.Employee) error {
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.employees = append(r.employees, e)
	return nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*repository.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*repository.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) FindAll(_ context.Context) ([]*repository.Employee, error) {
	return r.employees, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *repository.Employee) error {
	for i, existing := range r.employees {
		if existing.ID == e.ID {
			e.UpdatedAt = time.Now()
			r.employees[i] = e
			return nil
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, id, hashed string, forceChange bool) error {
	for _, e := range r.employees {
		if e.ID == id {
			e.Password = hashed
			e.ForcePasswordChange = forceChange
			return nil
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.employees {
		if e.ID == id {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) Exists(_ context.Context, id string) (bool, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeSprintRepo struct {
	sprints []*repository.Sprint
}

func (r *fakeSprintRepo) Create(_ context.Context, s *repository.Sprint) error {
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.sprints = append(r.sprints, s)
	return nil
}

func (r *fakeSprintRepo) FindByID(_ context.Context, id string) (*repository.Sprint, error) {
	for _, s := range r.sprints {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSprintRepo) FindAll(_ context.Context) ([]*repository.Sprint, error) {
	out := make([]*repository.Sprint, len(r.sprints))
	copy(out, r.sprints)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (r *fakeSprintRepo) FindByStatuses(_ context.Context, statuses []string) ([]*repository.Sprint, error) {
	var out []*repository.Sprint
	for _, s := range r.sprints {
		for _, status := range statuses {
			if s.Status == status {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeSprintRepo) FindEndingSoon(_ context.Context, within time.Duration) ([]*repository.Sprint, error) {
	cutoff := time.Now().Add(within)
	var out []*repository.Sprint
	for _, s := range r.sprints {
		if s.Status == types.SprintInProgress && s.EndDate.After(time.Now()) && s.EndDate.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSprintRepo) FindExpired(_ context.Context) ([]*repository.Sprint, error) {
	var out []*repository.Sprint
	for _, s := range r.sprints {
		if s.Status == types.SprintInProgress && s.EndDate.Before(time.Now()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSprintRepo) Update(_ context.Context, s *repository.Sprint) error {
	for i, existing := range r.sprints {
		if existing.ID == s.ID {
			s.UpdatedAt = time.Now()
			r.sprints[i] = s
			return nil
		}
	}
	return nil
}

func (r *fakeSprintRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, s := range r.sprints {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeSprintRepo) Delete(_ context.Context, id string) error {
	for i, s := range r.sprints {
		if s.ID == id {
			r.sprints = append(r.sprints[:i], r.sprints[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeTaskRepo struct {
	tasks []*repository.Task
}

func (r *fakeTaskRepo) Create(_ context.Context, t *repository.Task) error {
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tasks = append(r.tasks, t)
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*repository.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context) ([]*repository.Task, error) {
	return r.tasks, nil
}

func (r *fakeTaskRepo) FindBySprintID(_ context.Context, sprintID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.SprintID != nil && *t.SprintID == sprintID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByAssigneeID(_ context.Context, assigneeID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == assigneeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) AllTaskNumbers(_ context.Context) ([]string, error) {
	numbers := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		numbers = append(numbers, t.TaskNo)
	}
	return numbers, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *repository.Task) error {
	for i, existing := range r.tasks {
		if existing.ID == t.ID {
			t.UpdatedAt = time.Now()
			r.tasks[i] = t
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, t := range r.tasks {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) UpdateSprint(_ context.Context, id string, sprintID *string) error {
	for _, t := range r.tasks {
		if t.ID == id {
			t.SprintID = sprintID
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) ClearSprint(_ context.Context, sprintID string) error {
	for _, t := range r.tasks {
		if t.SprintID != nil && *t.SprintID == sprintID {
			t.SprintID = nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}
